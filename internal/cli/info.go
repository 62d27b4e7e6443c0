package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"brwatch/internal/app"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <package>",
		Short: "Show one package's metadata, stage, and neighbours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}
}

func runInfo(cmd *cobra.Command, name string) error {
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

	pkg, err := snap.PackageByName(name)
	if err != nil {
		return err
	}
	progress, err := snap.Progress(name)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", pkg.Name)
	fmt.Printf("  kind:      %s\n", pkg.Kind)
	fmt.Printf("  version:   %s\n", orNA(pkg.Version))
	fmt.Printf("  licenses:  %s\n", orNA(pkg.Licenses))
	fmt.Printf("  virtual:   %t\n", pkg.Virtual)
	fmt.Printf("  stage:     %s\n", progress.Stage)
	fmt.Printf("  progress:  %d/%d direct dependencies built (self included)\n",
		progress.DepsBuilt, progress.DepsTotal)
	fmt.Printf("  install:   target=%t staging=%t images=%t\n",
		pkg.InstallTarget, pkg.InstallStaging, pkg.InstallImages)

	deps, err := snap.DirectDependencies(name)
	if err != nil {
		return err
	}
	fmt.Printf("  dependencies (%d):\n", len(deps))
	for _, dep := range deps {
		stage, err := snap.StageOf(dep)
		if err != nil {
			return err
		}
		fmt.Printf("    %-38s %s\n", dep, stage)
	}

	dependants, err := snap.DirectDependants(name)
	if err != nil {
		return err
	}
	fmt.Printf("  dependants (%d):\n", len(dependants))
	for _, dependant := range dependants {
		fmt.Printf("    %s\n", dependant)
	}
	return nil
}

func orNA(value string) string {
	if value == "" {
		return "n/a"
	}
	return value
}
