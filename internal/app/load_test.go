package app

import (
	"context"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brwatch/internal/ports"
	"brwatch/internal/types"
)

type fakePackageInfo struct {
	records map[string]types.PackageRecord
	err     error
	rootDir string
}

func (f *fakePackageInfo) ListPackages(_ context.Context, rootDir string) (map[string]types.PackageRecord, error) {
	f.rootDir = rootDir
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func testService(info ports.PackageInfoPort) Service {
	return Service{
		PackageInfo: info,
		NewProbe: func(string) ports.StampProbePort {
			return &fakeProbe{stages: map[string]types.BuildStage{}}
		},
		Clock: time.Now,
	}
}

func TestLoadBuildsEngine(t *testing.T) {
	info := &fakePackageInfo{records: map[string]types.PackageRecord{
		"busybox":       {Type: "target"},
		"host-skeleton": {Type: "host"},
	}}
	service := testService(info)

	engine, err := service.Load(t.Context(), LoadRequest{RootDir: "/br"})
	require.NoError(t, err)
	assert.Equal(t, "/br", info.rootDir)
	assert.Equal(t, 2, engine.Graph().Len())
}

func TestLoadCommandFailure(t *testing.T) {
	loadErr := errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("show-info failed")
	service := testService(&fakePackageInfo{err: loadErr})

	engine, err := service.Load(t.Context(), LoadRequest{RootDir: "/br"})
	require.Error(t, err)
	assert.Nil(t, engine, "no graph may be published on a failed load")
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestLoadEmptyGraphFails(t *testing.T) {
	service := testService(&fakePackageInfo{records: map[string]types.PackageRecord{
		"rootfs-ext2": {Type: types.RecordTypeRootFS},
	}})

	_, err := service.Load(t.Context(), LoadRequest{RootDir: "/br"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestResolveBuildDir(t *testing.T) {
	assert.Equal(t, "/br/output/build", ResolveBuildDir("/br", ""))
	assert.Equal(t, "/elsewhere/build", ResolveBuildDir("/br", "/elsewhere/build"))
}

func TestLoadDefaultsBuildDirAndInterval(t *testing.T) {
	info := &fakePackageInfo{records: map[string]types.PackageRecord{
		"busybox": {Type: "target"},
	}}
	var gotBuildDir string
	service := Service{
		PackageInfo: info,
		NewProbe: func(buildDir string) ports.StampProbePort {
			gotBuildDir = buildDir
			return &fakeProbe{stages: map[string]types.BuildStage{}}
		},
		Clock: time.Now,
	}

	engine, err := service.Load(t.Context(), LoadRequest{RootDir: "/br"})
	require.NoError(t, err)
	assert.Equal(t, "/br/output/build", gotBuildDir)
	assert.Equal(t, DefaultInterval, engine.interval)
}
