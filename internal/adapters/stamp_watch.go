package adapters

import (
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"brwatch/internal/ports"
)

// StampWatchAdapter watches the build-output directory and invokes a
// callback on filesystem activity so a refresh can run before the next
// poll tick. The watch is non-recursive: the useful signal is a
// package build directory appearing or disappearing; stamp changes
// inside existing directories are covered by the regular poll.
type StampWatchAdapter struct {
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

func NewStampWatchAdapter() *StampWatchAdapter {
	return &StampWatchAdapter{}
}

func (a *StampWatchAdapter) Start(dir string, notify func()) error {
	if a.watcher != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("stamp watcher already started")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create filesystem watcher").
			WithCause(err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("failed to watch build directory").
			WithCause(err)
	}
	a.watcher = watcher
	a.stopCh = make(chan struct{})
	a.wg.Add(1)
	go a.run(notify)
	return nil
}

func (a *StampWatchAdapter) run(notify func()) {
	defer a.wg.Done()
	for {
		select {
		case event, ok := <-a.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Write) {
				notify()
			}
		case err, ok := <-a.watcher.Errors:
			if !ok {
				return
			}
			// Transient; the poll loop covers anything missed here.
			log.Debug().Err(err).Msg("stamp watcher error")
		case <-a.stopCh:
			return
		}
	}
}

func (a *StampWatchAdapter) Stop() error {
	if a.watcher == nil {
		return nil
	}
	close(a.stopCh)
	err := a.watcher.Close()
	a.wg.Wait()
	a.watcher = nil
	return err
}

var _ ports.StampWatcherPort = (*StampWatchAdapter)(nil)
