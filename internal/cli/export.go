package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"brwatch/internal/app"
)

type exportOptions struct {
	Output string
}

func newExportCommand() *cobra.Command {
	opts := exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current progress snapshot as a YAML report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Output, "output", "brwatch-report.yaml", "Report file path")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runExport(cmd *cobra.Command, opts exportOptions) error {
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

	if err := service.Reports.WriteReport(opts.Output, snap.BuildReport()); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d packages)\n", opts.Output, len(snap.Names()))
	return nil
}
