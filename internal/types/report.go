package types

import "time"

// Report is the exportable form of a progress snapshot.
type Report struct {
	GeneratedAt time.Time       `yaml:"generated_at"`
	Counts      GlobalCounts    `yaml:"counts"`
	Packages    []ReportPackage `yaml:"packages"`
}

// ReportPackage is one package entry of an exported report, sorted by
// name in the containing Report.
type ReportPackage struct {
	Name      string      `yaml:"name"`
	Version   string      `yaml:"version,omitempty"`
	Kind      PackageKind `yaml:"kind"`
	Stage     string      `yaml:"stage"`
	DepsBuilt int         `yaml:"deps_built"`
	DepsTotal int         `yaml:"deps_total"`
}
