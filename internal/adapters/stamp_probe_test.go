package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brwatch/internal/types"
)

func writeStamp(t *testing.T, dir string, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, types.StampPrefix+name), nil, 0o644))
}

func TestProbeNoBuildDir(t *testing.T) {
	probe := NewStampProbeAdapter(filepath.Join(t.TempDir(), "missing"))
	pkg := types.Package{Name: "busybox", Version: "1.31.1", Kind: types.PackageKindTarget}
	assert.Equal(t, types.StageNotBuilt, probe.Probe(pkg))
}

func TestProbeStageLadder(t *testing.T) {
	buildDir := t.TempDir()
	probe := NewStampProbeAdapter(buildDir)
	pkg := types.Package{Name: "busybox", Version: "1.31.1", Kind: types.PackageKindTarget, InstallTarget: true}
	pkgDir := filepath.Join(buildDir, "busybox-1.31.1")

	steps := []struct {
		stamp string
		want  types.BuildStage
	}{
		{types.StampDownloaded, types.StageDownloaded},
		{types.StampExtracted, types.StageExtracted},
		{types.StampPatched, types.StagePatched},
		{types.StampConfigured, types.StageConfigured},
		{types.StampBuilt, types.StageBuilt},
		{types.StampTargetInstalled, types.StageInstalled},
	}
	for _, step := range steps {
		writeStamp(t, pkgDir, step.stamp)
		assert.Equal(t, step.want, probe.Probe(pkg), "after %s stamp", step.stamp)
	}
}

func TestProbeUnversionedBuildDir(t *testing.T) {
	buildDir := t.TempDir()
	probe := NewStampProbeAdapter(buildDir)
	pkg := types.Package{Name: "host-skeleton", Kind: types.PackageKindHost}

	writeStamp(t, filepath.Join(buildDir, "host-skeleton"), types.StampBuilt)
	assert.Equal(t, types.StageBuilt, probe.Probe(pkg))
}

func TestProbeInstalledIsKindAware(t *testing.T) {
	buildDir := t.TempDir()
	probe := NewStampProbeAdapter(buildDir)

	// A host-install stamp means nothing to a target package.
	target := types.Package{Name: "foo", Kind: types.PackageKindTarget, InstallTarget: true}
	targetDir := filepath.Join(buildDir, "foo")
	writeStamp(t, targetDir, types.StampBuilt)
	writeStamp(t, targetDir, types.StampHostInstalled)
	assert.Equal(t, types.StageBuilt, probe.Probe(target))

	writeStamp(t, targetDir, types.StampTargetInstalled)
	assert.Equal(t, types.StageInstalled, probe.Probe(target))

	host := types.Package{Name: "host-foo", Kind: types.PackageKindHost}
	hostDir := filepath.Join(buildDir, "host-foo")
	writeStamp(t, hostDir, types.StampBuilt)
	writeStamp(t, hostDir, types.StampTargetInstalled)
	assert.Equal(t, types.StageBuilt, probe.Probe(host))

	writeStamp(t, hostDir, types.StampHostInstalled)
	assert.Equal(t, types.StageInstalled, probe.Probe(host))
}

func TestProbeInstallStampGatedByFlags(t *testing.T) {
	buildDir := t.TempDir()
	probe := NewStampProbeAdapter(buildDir)

	// The staging stamp only counts when the package installs to staging.
	pkg := types.Package{Name: "bar", Kind: types.PackageKindTarget, InstallTarget: true}
	pkgDir := filepath.Join(buildDir, "bar")
	writeStamp(t, pkgDir, types.StampBuilt)
	writeStamp(t, pkgDir, types.StampStagingInstalled)
	assert.Equal(t, types.StageBuilt, probe.Probe(pkg))

	pkg.InstallStaging = true
	assert.Equal(t, types.StageInstalled, probe.Probe(pkg))
}

func TestProbeBuildDirDeletedBetweenPolls(t *testing.T) {
	buildDir := t.TempDir()
	probe := NewStampProbeAdapter(buildDir)
	pkg := types.Package{Name: "baz", Kind: types.PackageKindTarget}
	pkgDir := filepath.Join(buildDir, "baz")

	writeStamp(t, pkgDir, types.StampBuilt)
	require.Equal(t, types.StageBuilt, probe.Probe(pkg))

	require.NoError(t, os.RemoveAll(pkgDir))
	assert.Equal(t, types.StageNotBuilt, probe.Probe(pkg))
}
