package types

// PackageRecord is one raw entry of the `make show-info` JSON object,
// keyed by package name in the surrounding map. Optional fields keep
// their zero value when Buildroot omits them.
type PackageRecord struct {
	Type           string   `json:"type"`
	Version        string   `json:"version"`
	Virtual        bool     `json:"virtual"`
	Licenses       string   `json:"licenses"`
	DownloadDir    string   `json:"dl_dir"`
	InstallTarget  bool     `json:"install_target"`
	InstallStaging bool     `json:"install_staging"`
	InstallImages  bool     `json:"install_images"`
	Dependencies   []string `json:"dependencies"`
}

// Package is an immutable node of the dependency graph, created once
// during metadata load and never mutated afterwards.
type Package struct {
	Name           string
	Version        string
	Kind           PackageKind
	Virtual        bool
	Licenses       string
	DownloadDir    string
	InstallTarget  bool
	InstallStaging bool
	InstallImages  bool

	// Dependencies holds direct dependency names, sorted. Every name
	// is guaranteed to resolve within the graph the package belongs to.
	Dependencies []string
}

// BuildDirName returns the name of the package's build subdirectory:
// the package name, suffixed with the version when one is set.
func (p Package) BuildDirName() string {
	if p.Version == "" {
		return p.Name
	}
	return p.Name + "-" + p.Version
}

// Installable reports whether the package installs anything at all.
// Host packages always install; target packages only when at least one
// install destination is enabled.
func (p Package) Installable() bool {
	if p.Kind == PackageKindHost {
		return true
	}
	return p.InstallTarget || p.InstallStaging || p.InstallImages
}
