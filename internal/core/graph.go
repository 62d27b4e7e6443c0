package core

import (
	"context"
	"sort"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"brwatch/internal/types"
)

// Graph is the immutable package dependency graph. Forward edges come
// straight from the introspection records; the reverse (dependants)
// index is derived once at construction. Safe for concurrent readers.
type Graph struct {
	packages   map[string]types.Package
	names      []string
	dependants map[string][]string
}

// BuildGraph validates raw introspection records and assembles the
// dependency graph. Root filesystem records are not packages and are
// skipped; dependency references to them are pruned. Any other
// unresolved reference, an unknown record type, or a dependency cycle
// fails the load.
func BuildGraph(ctx context.Context, records map[string]types.PackageRecord) (*Graph, error) {
	packages := make(map[string]types.Package, len(records))
	for name, record := range records {
		assert.NotEmpty(ctx, name, "package name must not be empty")
		if record.Type == types.RecordTypeRootFS {
			continue
		}
		kind, err := kindOf(name, record.Type)
		if err != nil {
			return nil, err
		}
		packages[name] = types.Package{
			Name:           name,
			Version:        record.Version,
			Kind:           kind,
			Virtual:        record.Virtual,
			Licenses:       record.Licenses,
			DownloadDir:    record.DownloadDir,
			InstallTarget:  record.InstallTarget,
			InstallStaging: record.InstallStaging,
			InstallImages:  record.InstallImages,
		}
	}
	if len(packages) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no packages found")
	}

	for name := range packages {
		deps, err := resolveDependencies(name, records[name].Dependencies, packages, records)
		if err != nil {
			return nil, err
		}
		pkg := packages[name]
		pkg.Dependencies = deps
		packages[name] = pkg
	}

	if err := checkAcyclic(packages); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(packages))
	for name := range packages {
		names = append(names, name)
	}
	sort.Strings(names)

	dependants := make(map[string][]string)
	for _, name := range names {
		for _, dep := range packages[name].Dependencies {
			dependants[dep] = append(dependants[dep], name)
		}
	}

	log.Ctx(ctx).Debug().Int("packages", len(packages)).Msg("dependency graph built")
	return &Graph{packages: packages, names: names, dependants: dependants}, nil
}

func kindOf(name string, recordType string) (types.PackageKind, error) {
	switch recordType {
	case string(types.PackageKindTarget):
		return types.PackageKindTarget, nil
	case string(types.PackageKindHost):
		return types.PackageKindHost, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package " + name + " has unknown type " + recordType)
	}
}

func resolveDependencies(name string, depNames []string, packages map[string]types.Package,
	records map[string]types.PackageRecord) ([]string, error) {
	var deps []string
	for _, depName := range depNames {
		if _, ok := packages[depName]; ok {
			deps = append(deps, depName)
			continue
		}
		// References to skipped rootfs records are pruned, not errors.
		if raw, exists := records[depName]; exists && raw.Type == types.RecordTypeRootFS {
			continue
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package " + name + " depends on unknown package " + depName)
	}
	sort.Strings(deps)
	return deps, nil
}

// checkAcyclic runs a three-colour depth-first search over the forward
// edges and fails on the first cycle found, reporting its path.
func checkAcyclic(packages map[string]types.Package) error {
	const (
		white = iota // unvisited
		grey         // on the current DFS path
		black        // fully explored
	)
	colours := make(map[string]int, len(packages))
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		colours[name] = grey
		path = append(path, name)
		for _, dep := range packages[name].Dependencies {
			switch colours[dep] {
			case grey:
				cycle := append(cycleStart(path, dep), dep)
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("dependency cycle: " + strings.Join(cycle, " -> "))
			case white:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		path = path[:len(path)-1]
		colours[name] = black
		return nil
	}

	for name := range packages {
		if colours[name] == white {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func cycleStart(path []string, name string) []string {
	for i, entry := range path {
		if entry == name {
			return append([]string(nil), path[i:]...)
		}
	}
	return append([]string(nil), path...)
}

// Len returns the number of packages in the graph.
func (g *Graph) Len() int {
	return len(g.packages)
}

// Names returns the package names, sorted. Callers must not mutate the
// returned slice.
func (g *Graph) Names() []string {
	return g.names
}

// Package looks up a package by name.
func (g *Graph) Package(name string) (types.Package, bool) {
	pkg, ok := g.packages[name]
	return pkg, ok
}

// Dependants returns the names of packages that directly depend on the
// named package, sorted. Callers must not mutate the returned slice.
func (g *Graph) Dependants(name string) []string {
	return g.dependants[name]
}
