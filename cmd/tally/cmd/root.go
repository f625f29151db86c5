package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/MeKo-Tech/tally/internal/config"
	"github.com/MeKo-Tech/tally/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries state shared by the commands of one command tree.
type app struct {
	loader  *config.Loader
	cfgFile string
	cfg     *config.Config
}

// NewRootCommand builds the tally command tree with its own viper
// instance, so separate trees never share flag state.
func NewRootCommand() *cobra.Command {
	a := &app{loader: config.NewLoaderWithViper(viper.New())}

	rootCmd := &cobra.Command{
		Use:   "tally",
		Short: "Time commands and report accumulated durations",
		Long: `tally measures how long commands take and accumulates the durations
under named timers, then reports the totals.

Examples:
  tally exec -- make build
  tally exec --name tests --repeat 5 --format table -- go test ./...
  tally exec --metrics -- sleep 0.1
  tally config show`,
		Version:      version.String(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is search in ., $HOME, $HOME/.config/tally, /etc/tally)")
	flags.BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	v := a.loader.GetViper()
	_ = v.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))

	rootCmd.AddCommand(newExecCommand(a))
	rootCmd.AddCommand(newConfigCommand(a))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command and exits with a non-zero status on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// init loads configuration and installs the default structured logger.
func (a *app) init(logOut io.Writer) error {
	cfg, err := a.loader.LoadWithFile(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	slog.SetDefault(newLogger(logOut, cfg))
	return nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	var logLevel slog.Level

	// Verbose wins over log-level
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	} else {
		switch cfg.LogLevel {
		case "debug":
			logLevel = slog.LevelDebug
		case "warn":
			logLevel = slog.LevelWarn
		case "error":
			logLevel = slog.LevelError
		default:
			logLevel = slog.LevelInfo
		}
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}
