package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"uiid/internal/config"
	"uiid/internal/prof"
	"uiid/internal/version"
)

var (
	// logger is replaced in PersistentPreRunE once flags are parsed.
	logger = zap.NewNop()

	profiling *prof.Session
)

var rootCmd = &cobra.Command{
	Use:   "uiid",
	Short: "Inject stable test identifiers into HTML and JSX/TSX files",
	Long: `uiid adds matching id and data-testid attributes to interactive and
structural elements that have neither, so UI tests get stable selectors.
Files are rewritten in place and a second run changes nothing.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupRun,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := profiling.Stop(); err != nil {
			logger.Warn("failed to write profiles", zap.Error(err))
		}
		profiling = nil
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.AddCommand(injectCmd)
	rootCmd.AddCommand(stubsCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("verbose", false, "print per-element counts and debug logs")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("config", "", "path to uiid.toml (default: nearest one above the working directory)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to file")
}

// main sets the version and executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	rootCmd.Version = version.Version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupRun(cmd *cobra.Command, args []string) error {
	flags := cmd.Root().PersistentFlags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return err
	}
	colorMode, err := readToggleMode("--color", colorFlag)
	if err != nil {
		return err
	}
	color.NoColor = !colorMode.enabled(isTerminal(os.Stdout))

	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return err
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return err
	}
	if verbose && quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	l, err := newLogger(verbose, quiet)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l

	opts := prof.Options{}
	for flag, dst := range map[string]*string{"cpu-profile": &opts.CPU, "mem-profile": &opts.Mem, "runtime-trace": &opts.Trace} {
		if *dst, err = flags.GetString(flag); err != nil {
			return err
		}
	}
	if opts.Enabled() {
		if profiling, err = prof.Start(opts); err != nil {
			return err
		}
	}
	return nil
}

// newLogger builds the stderr console logger.
func newLogger(verbose, quiet bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	switch {
	case verbose:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case quiet:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	return cfg.Build()
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.Load(explicit, wd)
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Path != "" {
		logger.Debug("loaded configuration", zap.String("path", cfg.Path))
	}
	return cfg, nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
