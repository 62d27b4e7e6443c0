package types

// PackageKind distinguishes packages built for the target system from
// packages built for the build host itself.
type PackageKind string

const (
	PackageKindTarget PackageKind = "target"
	PackageKindHost   PackageKind = "host"
)

// BuildStage classifies how far a package's build has progressed.
// The values are totally ordered: a later stage means the build system
// has completed every earlier phase for the package.
type BuildStage int

const (
	StageNotBuilt BuildStage = iota
	StageDownloaded
	StageExtracted
	StagePatched
	StageConfigured
	StageBuilt
	StageInstalled
)

func (s BuildStage) String() string {
	switch s {
	case StageDownloaded:
		return "downloaded"
	case StageExtracted:
		return "extracted"
	case StagePatched:
		return "patched"
	case StageConfigured:
		return "configured"
	case StageBuilt:
		return "built"
	case StageInstalled:
		return "installed"
	default:
		return "not-built"
	}
}

// StampPrefix prefixes every stamp file Buildroot writes into a
// package's build directory.
const StampPrefix = ".stamp_"

// Stamp file suffixes (without StampPrefix). The set is a versioned
// contract with Buildroot; this list tracks Buildroot >= 2020.02.
const (
	StampDownloaded       = "downloaded"
	StampExtracted        = "extracted"
	StampPatched          = "patched"
	StampConfigured       = "configured"
	StampBuilt            = "built"
	StampTargetInstalled  = "target_installed"
	StampStagingInstalled = "staging_installed"
	StampImagesInstalled  = "images_installed"
	StampHostInstalled    = "host_installed"
)

// RecordTypeRootFS marks show-info records that describe a root
// filesystem image rather than a package; the loader skips them.
const RecordTypeRootFS = "rootfs"
