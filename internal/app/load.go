package app

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"brwatch/internal/core"
)

// DefaultInterval is the refresh interval used when none is configured.
const DefaultInterval = 2 * time.Second

// LoadRequest configures a one-time metadata load.
type LoadRequest struct {
	// RootDir is the build-system root directory (required).
	RootDir string
	// BuildDir is the build-output directory; defaults to
	// <RootDir>/output/build.
	BuildDir string
	// Interval is the initial refresh interval; defaults to
	// DefaultInterval.
	Interval time.Duration
}

// ResolveBuildDir applies the default build-output location when no
// explicit directory is configured.
func ResolveBuildDir(rootDir string, buildDir string) string {
	if strings.TrimSpace(buildDir) != "" {
		return buildDir
	}
	return filepath.Join(rootDir, "output", "build")
}

// Load runs the introspection command once, validates the dependency
// graph, and returns a refresh engine ready to poll. This is the only
// long-blocking operation in the system; it is never retried
// automatically and its result lives for the process lifetime.
func (s Service) Load(ctx context.Context, req LoadRequest) (*Engine, error) {
	assert.NotEmpty(ctx, req.RootDir, "root directory must be set")
	rootDir := strings.TrimSpace(req.RootDir)
	if rootDir == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("root directory is required")
	}
	buildDir := ResolveBuildDir(rootDir, req.BuildDir)
	interval := req.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	log.Ctx(ctx).Info().Str("root_dir", rootDir).Msg("loading package metadata")
	records, err := s.PackageInfo.ListPackages(ctx, rootDir)
	if err != nil {
		return nil, err
	}
	graph, err := core.BuildGraph(ctx, records)
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Int("packages", graph.Len()).
		Str("build_dir", buildDir).
		Dur("interval", interval).
		Msg("package metadata loaded")
	return NewEngine(graph, s.NewProbe(buildDir), interval, s.Clock), nil
}
