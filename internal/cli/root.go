package cli

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"brwatch/internal/app"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "BRWATCH"

type RootConfig struct {
	ConfigFile string
	LogLevel   string
	RootDir    string
	BuildDir   string
	Interval   time.Duration
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:     "brwatch",
		Short:   "Buildroot build progress monitor",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().StringVar(&cfg.RootDir, "root", "", "Buildroot root directory")
	cmd.PersistentFlags().StringVar(&cfg.BuildDir, "build-dir", "", "Build output directory (default: <root>/output/build)")
	cmd.PersistentFlags().DurationVar(&cfg.Interval, "interval", app.DefaultInterval, "Refresh interval")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("root_dir", cmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("build_dir", cmd.PersistentFlags().Lookup("build-dir"))
	_ = viper.BindPFlag("interval", cmd.PersistentFlags().Lookup("interval"))

	cmd.AddCommand(newStatusCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newInfoCommand())
	cmd.AddCommand(newWatchCommand())
	cmd.AddCommand(newExportCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("brwatch")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/brwatch")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// requireRoot rejects the command early when no root directory was
// configured via flag, environment, or config file.
func requireRoot() error {
	if strings.TrimSpace(viper.GetString("root_dir")) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("root directory is required (--root)")
	}
	return nil
}

// loadRequest assembles the load parameters from flags, environment,
// and config file.
func loadRequest() app.LoadRequest {
	return app.LoadRequest{
		RootDir:  viper.GetString("root_dir"),
		BuildDir: viper.GetString("build_dir"),
		Interval: viper.GetDuration("interval"),
	}
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument:
		return 2
	case errbuilder.CodeFailedPrecondition:
		return 3
	case errbuilder.CodeNotFound:
		return 4
	case errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
