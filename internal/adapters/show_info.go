package adapters

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"brwatch/internal/ports"
	"brwatch/internal/types"
)

// showInfoArgs invokes Buildroot's quiet, non-interactive introspection
// target, which prints one JSON object describing every configured
// package.
var showInfoArgs = []string{"-s", "--no-print-directory", "show-info"}

type ShowInfoAdapter struct{}

func NewShowInfoAdapter() ShowInfoAdapter {
	return ShowInfoAdapter{}
}

func (a ShowInfoAdapter) ListPackages(ctx context.Context, rootDir string) (map[string]types.PackageRecord, error) {
	if strings.TrimSpace(rootDir) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("root directory is empty")
	}
	info, err := os.Stat(rootDir)
	if err != nil || !info.IsDir() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("root directory does not exist").
			WithCause(err)
	}

	cmd := exec.CommandContext(ctx, "make", showInfoArgs...)
	cmd.Dir = rootDir
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("show-info failed: " + strings.TrimSpace(string(exitErr.Stderr))).
				WithCause(err)
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("failed to run show-info").
			WithCause(err)
	}

	records, err := parseShowInfo(output)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Int("records", len(records)).Msg("show-info parsed")
	return records, nil
}

// parseShowInfo decodes the show-info JSON object into raw package
// records keyed by name.
func parseShowInfo(output []byte) (map[string]types.PackageRecord, error) {
	var records map[string]types.PackageRecord
	if err := json.Unmarshal(output, &records); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse show-info output").
			WithCause(err)
	}
	return records, nil
}

var _ ports.PackageInfoPort = ShowInfoAdapter{}
