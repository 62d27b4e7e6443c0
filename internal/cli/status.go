package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"brwatch/internal/app"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current build progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd)
		},
	}
}

func runStatus(cmd *cobra.Command) error {
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

	counts := snap.GlobalCounts()
	fmt.Printf("packages:  %d (%d target, %d host)\n", counts.Total(), counts.TargetTotal, counts.HostTotal)
	fmt.Printf("built:     %d/%d (%d target, %d host)\n", counts.Built(), counts.Total(), counts.TargetBuilt, counts.HostBuilt)
	fmt.Printf("installed: %d (%d target, %d host)\n", counts.Installed(), counts.TargetInstalled, counts.HostInstalled)
	fmt.Printf("updated:   %s\n", snap.LastUpdateTime().Format("15:04:05"))
	return nil
}
