package app

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"brwatch/internal/core"
	"brwatch/internal/ports"
	"brwatch/internal/types"
)

// pkgState is the engine-owned mutable state of one package. It is
// only touched while the scan guard is held.
type pkgState struct {
	stage        types.BuildStage
	lastProbedAt time.Time
}

type fatalError struct {
	err error
}

// Engine drives the refresh cycle: probe every package's stamp files,
// aggregate progress, publish an immutable snapshot. At most one scan
// runs at a time; consumers only ever read published snapshots, never
// the engine's mutable state.
type Engine struct {
	graph *core.Graph
	probe ports.StampProbePort
	clock func() time.Time

	interval time.Duration

	// scanMu is the single-flight guard; pending records a refresh
	// request that arrived while a scan held the guard.
	scanMu  sync.Mutex
	pending atomic.Bool
	states  map[string]*pkgState

	snapshot atomic.Pointer[Snapshot]
	fatal    atomic.Pointer[fatalError]

	started    atomic.Bool
	stopOnce   sync.Once
	stopCh     chan struct{}
	refreshCh  chan struct{}
	intervalCh chan time.Duration
	wg         sync.WaitGroup

	subMu sync.Mutex
	subs  []chan struct{}
}

func NewEngine(graph *core.Graph, probe ports.StampProbePort, interval time.Duration, clock func() time.Time) *Engine {
	states := make(map[string]*pkgState, graph.Len())
	for _, name := range graph.Names() {
		states[name] = &pkgState{stage: types.StageNotBuilt}
	}
	return &Engine{
		graph:      graph,
		probe:      probe,
		clock:      clock,
		interval:   interval,
		states:     states,
		stopCh:     make(chan struct{}),
		refreshCh:  make(chan struct{}, 1),
		intervalCh: make(chan time.Duration, 1),
	}
}

// Graph returns the immutable dependency graph.
func (e *Engine) Graph() *core.Graph {
	return e.graph
}

// Start launches the timer-driven refresh loop. The first scan runs
// immediately so consumers see real state without waiting a full
// interval.
func (e *Engine) Start() error {
	if err := e.Err(); err != nil {
		return err
	}
	if !e.started.CompareAndSwap(false, true) {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("engine already started")
	}
	e.wg.Add(1)
	go e.run()
	return nil
}

func (e *Engine) run() {
	defer e.wg.Done()
	e.scan()
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			e.scan()
		case <-e.refreshCh:
			e.scan()
		case interval := <-e.intervalCh:
			ticker.Reset(interval)
			log.Debug().Dur("interval", interval).Msg("refresh interval changed")
			continue
		case <-e.stopCh:
			return
		}
		if err := e.Err(); err != nil {
			log.Error().Err(err).Msg("refresh engine stopped; reload required")
			return
		}
	}
}

// Stop shuts the loop down. Safe to call from any point and more than
// once; it waits for an in-flight cycle to finish.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.stopCh)
	})
	e.wg.Wait()
}

// RefreshNow requests an immediate scan. Requests are coalesced: while
// one is queued or a scan is in flight, further requests are no-ops.
func (e *Engine) RefreshNow() {
	select {
	case e.refreshCh <- struct{}{}:
	default:
	}
}

// SetInterval reconfigures the polling interval. It takes effect on
// the next scheduling decision, not retroactively.
func (e *Engine) SetInterval(interval time.Duration) error {
	if interval <= 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("refresh interval must be positive")
	}
	for {
		select {
		case e.intervalCh <- interval:
			return nil
		default:
			// Replace a not-yet-applied value.
			select {
			case <-e.intervalCh:
			default:
			}
		}
	}
}

// ScanOnce runs one synchronous refresh cycle. When another scan holds
// the guard the request is coalesced into it and ScanOnce returns
// without scanning.
func (e *Engine) ScanOnce() error {
	e.scan()
	return e.Err()
}

// Subscribe registers for snapshot publication notifications. The
// returned channel receives at most one pending signal; slow consumers
// miss intermediate publications, never block the engine. The cancel
// function releases the subscription.
func (e *Engine) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	e.subMu.Lock()
	e.subs = append(e.subs, ch)
	e.subMu.Unlock()
	cancel := func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		for i, sub := range e.subs {
			if sub == ch {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
	return ch, cancel
}

// Snapshot returns the last published snapshot.
func (e *Engine) Snapshot() (*Snapshot, error) {
	if err := e.Err(); err != nil {
		return nil, err
	}
	snap := e.snapshot.Load()
	if snap == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no snapshot published yet")
	}
	return snap, nil
}

// Err returns the engine's terminal error, if any. A non-nil result
// means polling has stopped and a fresh load is required.
func (e *Engine) Err() error {
	if fatal := e.fatal.Load(); fatal != nil {
		return fatal.err
	}
	return nil
}

func (e *Engine) scan() {
	if !e.scanMu.TryLock() {
		e.pending.Store(true)
		log.Debug().Msg("refresh already in flight, coalescing")
		return
	}
	defer e.scanMu.Unlock()
	for {
		e.scanLocked()
		// Run one follow-up cycle when a refresh arrived mid-scan.
		if !e.pending.CompareAndSwap(true, false) || e.Err() != nil {
			return
		}
	}
}

func (e *Engine) scanLocked() {
	if e.Err() != nil {
		return
	}
	now := e.clock()
	stages := make(map[string]types.BuildStage, len(e.states))
	for name, state := range e.states {
		pkg, ok := e.graph.Package(name)
		if !ok {
			e.setFatal(errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("package state without graph node: " + name))
			return
		}
		stage := e.probe.Probe(pkg)
		if stage != state.stage {
			log.Debug().
				Str("package", name).
				Stringer("stage", stage).
				Msg("build stage changed")
			state.stage = stage
		}
		state.lastProbedAt = now
		stages[name] = stage
	}

	progress, err := core.Aggregate(e.graph, stages)
	if err != nil {
		e.setFatal(err)
		return
	}
	e.snapshot.Store(newSnapshot(e.graph, progress, now))
	e.notify()
}

func (e *Engine) setFatal(err error) {
	if e.fatal.CompareAndSwap(nil, &fatalError{err: err}) {
		// Wake subscribers so they observe the terminal error.
		e.notify()
	}
}

func (e *Engine) notify() {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	for _, sub := range e.subs {
		select {
		case sub <- struct{}{}:
		default:
		}
	}
}
