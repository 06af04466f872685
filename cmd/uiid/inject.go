package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uiid/internal/inject"
	"uiid/internal/observ"
)

var injectCmd = &cobra.Command{
	Use:   "inject [flags] <paths...>",
	Short: "Add id and data-testid attributes to HTML and JSX/TSX files",
	Long: `Rewrite each file in place, giving every recognised element that has
neither an id nor a data-testid a fresh identifier such as button-1.
Arguments are split on whitespace, so a single space-separated list of
changed files works as well as separate arguments. Failures on one file are
logged and the remaining files are still processed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInject,
}

func init() {
	injectCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	injectCmd.Flags().Bool("cache", false, "skip files recorded as clean by an earlier run (overrides [inject].cache)")
	injectCmd.Flags().Bool("clear-cache", false, "forget every clean-file record before running")
	injectCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
}

func runInject(cmd *cobra.Command, args []string) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	uiMode, err := readToggleMode("--ui", uiFlag)
	if err != nil {
		return err
	}
	flags := cmd.Root().PersistentFlags()
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return err
	}
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return err
	}
	showTimings, err := flags.GetBool("timings")
	if err != nil {
		return err
	}

	paths := inject.SplitBatch(args)
	if len(paths) == 0 {
		return fmt.Errorf("inject: no files given")
	}

	timer := observ.NewTimer()
	phase := timer.Begin("config")
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	markupVocab, componentVocab, err := cfg.Vocabularies()
	if err != nil {
		return err
	}
	timer.End(phase, cfg.Path)

	useCache := cfg.Inject.Cache
	if cmd.Flags().Changed("cache") {
		if useCache, err = cmd.Flags().GetBool("cache"); err != nil {
			return err
		}
	}
	var cache inject.CleanCache
	if useCache {
		dc, cacheErr := inject.OpenDiskCache(cfg.Inject.CacheDir)
		if cacheErr != nil {
			logger.Warn("clean-file cache disabled", zap.Error(cacheErr))
		} else {
			cache = dc
			logger.Debug("using clean-file cache", zap.String("dir", dc.Dir()))
			drop, err := cmd.Flags().GetBool("clear-cache")
			if err != nil {
				return err
			}
			if drop {
				if err := dc.DropAll(); err != nil {
					return fmt.Errorf("failed to clear cache: %w", err)
				}
			}
		}
	}

	runner := &inject.Runner{
		Injector: inject.New(inject.Options{
			Markup:    markupVocab,
			Component: componentVocab,
			DryRun:    dryRun,
			Cache:     cache,
			Logger:    logger,
		}),
		Rules:  cfg.Rules(),
		Logger: logger,
	}

	out := cmd.OutOrStdout()
	phase = timer.Begin("inject")
	var sum inject.Summary
	if !quiet && uiMode.enabled(isTerminal(os.Stdout)) {
		sum = runInjectWithUI("uiid inject", paths, runner)
	} else {
		runner.Progress = newConsoleReport(out, reportOptions{quiet: quiet, verbose: verbose, dryRun: dryRun})
		sum = runner.Run(paths)
	}
	timer.End(phase, fmt.Sprintf("%d files, %d identifiers", sum.Processed, sum.Injected))

	printSummary(out, sum, dryRun)
	if showTimings {
		fmt.Fprint(out, timer.Summary())
	}
	return nil
}
