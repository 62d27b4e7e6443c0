package types

// PackageProgress is the per-package slice of a published snapshot.
type PackageProgress struct {
	Name  string
	Stage BuildStage

	// DepsBuilt counts how many of the package's direct dependencies,
	// the package itself included, have reached StageBuilt.
	// DepsTotal is the size of that set: len(dependencies) + 1.
	DepsBuilt int
	DepsTotal int

	// BuiltFraction is DepsBuilt / DepsTotal.
	BuiltFraction float64
}

// GlobalCounts aggregates build progress over the whole graph.
type GlobalCounts struct {
	TargetTotal     int `yaml:"target_total"`
	TargetBuilt     int `yaml:"target_built"`
	TargetInstalled int `yaml:"target_installed"`
	HostTotal       int `yaml:"host_total"`
	HostBuilt       int `yaml:"host_built"`
	HostInstalled   int `yaml:"host_installed"`
}

// Total returns the number of monitored packages.
func (c GlobalCounts) Total() int {
	return c.TargetTotal + c.HostTotal
}

// Built returns the number of packages at StageBuilt or later.
func (c GlobalCounts) Built() int {
	return c.TargetBuilt + c.HostBuilt
}

// Installed returns the number of packages at StageInstalled.
func (c GlobalCounts) Installed() int {
	return c.TargetInstalled + c.HostInstalled
}
