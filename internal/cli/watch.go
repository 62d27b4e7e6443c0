package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"brwatch/internal/app"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll the build tree and print progress on every change",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd)
		},
	}
}

func runWatch(cmd *cobra.Command) error {
	if err := requireRoot(); err != nil {
		return err
	}
	service := app.NewService()
	req := loadRequest()
	engine, err := service.Load(cmd.Context(), req)
	if err != nil {
		return err
	}

	graph := engine.Graph()
	log.Info().Int("packages", graph.Len()).Msg("watching build tree")
	for _, name := range graph.Names() {
		pkg, _ := graph.Package(name)
		log.Debug().Str("package", name).Int("dependencies", len(pkg.Dependencies)).Send()
	}

	sub, cancel := engine.Subscribe()
	defer cancel()
	if err := engine.Start(); err != nil {
		return err
	}
	defer engine.Stop()

	// The filesystem watcher only accelerates refreshes between ticks;
	// a missing build directory just means polling carries the load
	// until the first package starts building.
	buildDir := app.ResolveBuildDir(viper.GetString("root_dir"), req.BuildDir)
	watcher := service.NewWatcher()
	if err := watcher.Start(buildDir, engine.RefreshNow); err != nil {
		log.Debug().Err(err).Str("build_dir", buildDir).Msg("build directory not watchable, polling only")
	} else {
		defer func() { _ = watcher.Stop() }()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sub:
			snap, err := engine.Snapshot()
			if err != nil {
				return err
			}
			counts := snap.GlobalCounts()
			fmt.Printf("%s  built %d/%d  installed %d\n",
				snap.LastUpdateTime().Format("15:04:05"),
				counts.Built(), counts.Total(), counts.Installed())
		case sig := <-sigCh:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
			return nil
		case <-cmd.Context().Done():
			if err := engine.Err(); err != nil {
				return fmt.Errorf("%s", errorMessage(err))
			}
			return nil
		}
	}
}
