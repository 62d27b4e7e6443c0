package ports

import (
	"context"

	"brwatch/internal/types"
)

// PackageInfoPort lists the configured packages of a build tree by
// invoking the build system's introspection target. The call spawns
// one external process and blocks until it exits, which can take
// seconds on a large configuration; callers must keep it off the
// polling path.
type PackageInfoPort interface {
	ListPackages(ctx context.Context, rootDir string) (map[string]types.PackageRecord, error)
}
