package ports

import "brwatch/internal/types"

// StampProbePort classifies a package's build stage from the stamp
// files present in its build directory. Probe never fails: a missing
// directory or a transient filesystem error reads as StageNotBuilt
// for that call.
type StampProbePort interface {
	Probe(pkg types.Package) types.BuildStage
}

// StampWatcherPort reports filesystem activity under the build-output
// directory so a refresh can run before the next poll tick. The notify
// callback must be safe to call from the watcher's own goroutine and
// may be called more often than events warrant.
type StampWatcherPort interface {
	Start(dir string, notify func()) error
	Stop() error
}
