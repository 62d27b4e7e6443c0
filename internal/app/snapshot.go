package app

import (
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"brwatch/internal/core"
	"brwatch/internal/types"
)

// Snapshot is an immutable, fully consistent view of all package
// states at one point in time. It is published by atomic replacement
// and never mutated, so any number of readers can query it without
// locking.
type Snapshot struct {
	graph    *core.Graph
	packages map[string]types.PackageProgress
	counts   types.GlobalCounts
	takenAt  time.Time
}

func newSnapshot(graph *core.Graph, progress core.Progress, takenAt time.Time) *Snapshot {
	return &Snapshot{
		graph:    graph,
		packages: progress.Packages,
		counts:   progress.Counts,
		takenAt:  takenAt,
	}
}

// LastUpdateTime returns when the snapshot was taken.
func (s *Snapshot) LastUpdateTime() time.Time {
	return s.takenAt
}

// GlobalCounts returns the aggregate build counts.
func (s *Snapshot) GlobalCounts() types.GlobalCounts {
	return s.counts
}

// Names returns all package names, sorted.
func (s *Snapshot) Names() []string {
	return s.graph.Names()
}

// PackageByName returns the immutable package metadata.
func (s *Snapshot) PackageByName(name string) (types.Package, error) {
	pkg, ok := s.graph.Package(name)
	if !ok {
		return types.Package{}, notFound(name)
	}
	return pkg, nil
}

// Progress returns the package's per-snapshot progress.
func (s *Snapshot) Progress(name string) (types.PackageProgress, error) {
	progress, ok := s.packages[name]
	if !ok {
		return types.PackageProgress{}, notFound(name)
	}
	return progress, nil
}

// StageOf returns the package's build stage at snapshot time.
func (s *Snapshot) StageOf(name string) (types.BuildStage, error) {
	progress, err := s.Progress(name)
	if err != nil {
		return types.StageNotBuilt, err
	}
	return progress.Stage, nil
}

// DirectDependencies returns the names of the package's direct
// dependencies, sorted.
func (s *Snapshot) DirectDependencies(name string) ([]string, error) {
	pkg, err := s.PackageByName(name)
	if err != nil {
		return nil, err
	}
	return pkg.Dependencies, nil
}

// DirectDependants returns the names of packages that directly depend
// on the named package, sorted.
func (s *Snapshot) DirectDependants(name string) ([]string, error) {
	if _, ok := s.graph.Package(name); !ok {
		return nil, notFound(name)
	}
	return s.graph.Dependants(name), nil
}

// Match returns the package names matching a glob pattern, sorted.
func (s *Snapshot) Match(pattern string) ([]string, error) {
	return core.MatchNames(s.graph.Names(), pattern)
}

// BuildReport renders the snapshot as an exportable report.
func (s *Snapshot) BuildReport() types.Report {
	report := types.Report{
		GeneratedAt: s.takenAt,
		Counts:      s.counts,
		Packages:    make([]types.ReportPackage, 0, len(s.packages)),
	}
	for _, name := range s.graph.Names() {
		pkg, _ := s.graph.Package(name)
		progress := s.packages[name]
		report.Packages = append(report.Packages, types.ReportPackage{
			Name:      name,
			Version:   pkg.Version,
			Kind:      pkg.Kind,
			Stage:     progress.Stage.String(),
			DepsBuilt: progress.DepsBuilt,
			DepsTotal: progress.DepsTotal,
		})
	}
	return report
}

func notFound(name string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("unknown package " + name)
}
