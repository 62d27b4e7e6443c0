package app

import (
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brwatch/internal/types"
)

func publishedSnapshot(t *testing.T, stages map[string]types.BuildStage, at time.Time) *Snapshot {
	t.Helper()
	engine := NewEngine(testGraph(t), &fakeProbe{stages: stages}, time.Second, func() time.Time { return at })
	require.NoError(t, engine.ScanOnce())
	snap, err := engine.Snapshot()
	require.NoError(t, err)
	return snap
}

func TestSnapshotQueries(t *testing.T) {
	at := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	snap := publishedSnapshot(t, map[string]types.BuildStage{
		"host-skeleton": types.StageInstalled,
		"skeleton":      types.StageBuilt,
	}, at)

	assert.Equal(t, at, snap.LastUpdateTime())
	assert.Equal(t, []string{"busybox", "host-skeleton", "skeleton"}, snap.Names())

	pkg, err := snap.PackageByName("busybox")
	require.NoError(t, err)
	assert.Equal(t, "1.31.1", pkg.Version)

	stage, err := snap.StageOf("host-skeleton")
	require.NoError(t, err)
	assert.Equal(t, types.StageInstalled, stage)

	deps, err := snap.DirectDependencies("skeleton")
	require.NoError(t, err)
	assert.Equal(t, []string{"host-skeleton"}, deps)

	dependants, err := snap.DirectDependants("host-skeleton")
	require.NoError(t, err)
	assert.Equal(t, []string{"skeleton"}, dependants)

	dependants, err = snap.DirectDependants("busybox")
	require.NoError(t, err)
	assert.Empty(t, dependants)

	counts := snap.GlobalCounts()
	assert.Equal(t, 2, counts.Built())
	assert.Equal(t, 1, counts.Installed())
}

func TestSnapshotUnknownName(t *testing.T) {
	snap := publishedSnapshot(t, map[string]types.BuildStage{}, time.Now())

	for _, query := range []func() error{
		func() error { _, err := snap.PackageByName("nope"); return err },
		func() error { _, err := snap.StageOf("nope"); return err },
		func() error { _, err := snap.Progress("nope"); return err },
		func() error { _, err := snap.DirectDependencies("nope"); return err },
		func() error { _, err := snap.DirectDependants("nope"); return err },
	} {
		err := query()
		require.Error(t, err)
		assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	}
}

func TestSnapshotMatch(t *testing.T) {
	snap := publishedSnapshot(t, map[string]types.BuildStage{}, time.Now())

	matched, err := snap.Match("host-*")
	require.NoError(t, err)
	assert.Equal(t, []string{"host-skeleton"}, matched)

	_, err = snap.Match("[bad")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestSnapshotBuildReport(t *testing.T) {
	at := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	snap := publishedSnapshot(t, map[string]types.BuildStage{
		"busybox": types.StageBuilt,
	}, at)

	report := snap.BuildReport()
	assert.Equal(t, at, report.GeneratedAt)
	assert.Equal(t, 1, report.Counts.TargetBuilt)
	require.Len(t, report.Packages, 3)
	assert.Equal(t, "busybox", report.Packages[0].Name)
	assert.Equal(t, "built", report.Packages[0].Stage)
	assert.Equal(t, types.PackageKindHost, report.Packages[1].Kind)
}
