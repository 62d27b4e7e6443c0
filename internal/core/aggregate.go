package core

import (
	"github.com/ZanzyTHEbar/errbuilder-go"

	"brwatch/internal/types"
)

// Progress is the pure output of one aggregation pass.
type Progress struct {
	Packages map[string]types.PackageProgress
	Counts   types.GlobalCounts
}

// Aggregate computes per-package dependency progress and global counts
// from one probe pass. It is a pure function of its inputs and runs in
// a single pass over nodes and edges. A package present in the graph
// but absent from stages (or the other way round) means the engine's
// state no longer matches the graph, which is fatal to the caller.
func Aggregate(graph *Graph, stages map[string]types.BuildStage) (Progress, error) {
	if len(stages) != graph.Len() {
		return Progress{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("probed state does not match the dependency graph")
	}

	progress := Progress{
		Packages: make(map[string]types.PackageProgress, graph.Len()),
	}
	for _, name := range graph.Names() {
		pkg, _ := graph.Package(name)
		stage, ok := stages[name]
		if !ok {
			return Progress{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("no probed stage for package " + name)
		}

		// The package counts as its own dependency, so a package whose
		// dependencies are all built still shows incomplete progress
		// until it is built itself.
		depsTotal := len(pkg.Dependencies) + 1
		depsBuilt := 0
		if stage >= types.StageBuilt {
			depsBuilt++
		}
		for _, dep := range pkg.Dependencies {
			depStage, ok := stages[dep]
			if !ok {
				return Progress{}, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("no probed stage for dependency " + dep)
			}
			if depStage >= types.StageBuilt {
				depsBuilt++
			}
		}

		progress.Packages[name] = types.PackageProgress{
			Name:          name,
			Stage:         stage,
			DepsBuilt:     depsBuilt,
			DepsTotal:     depsTotal,
			BuiltFraction: float64(depsBuilt) / float64(depsTotal),
		}
		countPackage(&progress.Counts, pkg.Kind, stage)
	}
	return progress, nil
}

func countPackage(counts *types.GlobalCounts, kind types.PackageKind, stage types.BuildStage) {
	switch kind {
	case types.PackageKindHost:
		counts.HostTotal++
		if stage >= types.StageBuilt {
			counts.HostBuilt++
		}
		if stage >= types.StageInstalled {
			counts.HostInstalled++
		}
	default:
		counts.TargetTotal++
		if stage >= types.StageBuilt {
			counts.TargetBuilt++
		}
		if stage >= types.StageInstalled {
			counts.TargetInstalled++
		}
	}
}
