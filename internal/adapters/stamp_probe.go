package adapters

import (
	"os"
	"path/filepath"

	"brwatch/internal/ports"
	"brwatch/internal/types"
)

// stageStamps maps pre-install stages to their stamp file suffix,
// ordered from latest to earliest so the first hit wins.
var stageStamps = []struct {
	stage types.BuildStage
	stamp string
}{
	{types.StageBuilt, types.StampBuilt},
	{types.StageConfigured, types.StampConfigured},
	{types.StagePatched, types.StampPatched},
	{types.StageExtracted, types.StampExtracted},
	{types.StageDownloaded, types.StampDownloaded},
}

// StampProbeAdapter reads build stages from the stamp files under
// <BuildDir>/<package-dir>. It is a pure function of the filesystem at
// call time: no state is kept between probes, and any I/O anomaly on a
// single probe reads as StageNotBuilt for that cycle.
type StampProbeAdapter struct {
	BuildDir string
}

func NewStampProbeAdapter(buildDir string) StampProbeAdapter {
	return StampProbeAdapter{BuildDir: buildDir}
}

func (a StampProbeAdapter) Probe(pkg types.Package) types.BuildStage {
	dir := filepath.Join(a.BuildDir, pkg.BuildDirName())
	if pkg.Installable() && a.installed(dir, pkg) {
		return types.StageInstalled
	}
	for _, entry := range stageStamps {
		if hasStamp(dir, entry.stamp) {
			return entry.stage
		}
	}
	return types.StageNotBuilt
}

// installed checks the kind-appropriate install stamps. Target
// packages only count destinations they are configured to install to;
// host packages have a single install stamp.
func (a StampProbeAdapter) installed(dir string, pkg types.Package) bool {
	if pkg.Kind == types.PackageKindHost {
		return hasStamp(dir, types.StampHostInstalled)
	}
	if pkg.InstallTarget && hasStamp(dir, types.StampTargetInstalled) {
		return true
	}
	if pkg.InstallStaging && hasStamp(dir, types.StampStagingInstalled) {
		return true
	}
	if pkg.InstallImages && hasStamp(dir, types.StampImagesInstalled) {
		return true
	}
	return false
}

func hasStamp(dir string, name string) bool {
	info, err := os.Stat(filepath.Join(dir, types.StampPrefix+name))
	return err == nil && !info.IsDir()
}

var _ ports.StampProbePort = StampProbeAdapter{}
