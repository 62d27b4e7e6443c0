package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"brwatch/internal/app"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [glob]",
		Short: "List packages and their build stages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := "*"
			if len(args) == 1 {
				pattern = args[0]
			}
			return runList(cmd, pattern)
		},
	}
}

func runList(cmd *cobra.Command, pattern string) error {
	if err := requireRoot(); err != nil {
		return err
	}
	service := app.NewService()
	engine, err := service.Load(cmd.Context(), loadRequest())
	if err != nil {
		return err
	}
	if err := engine.ScanOnce(); err != nil {
		return err
	}
	snap, err := engine.Snapshot()
	if err != nil {
		return err
	}

	names, err := snap.Match(pattern)
	if err != nil {
		return err
	}
	for _, name := range names {
		pkg, err := snap.PackageByName(name)
		if err != nil {
			return err
		}
		progress, err := snap.Progress(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-40s %-6s %-12s deps %d/%d\n",
			name, pkg.Kind, progress.Stage, progress.DepsBuilt, progress.DepsTotal)
	}
	fmt.Printf("%d packages\n", len(names))
	return nil
}
