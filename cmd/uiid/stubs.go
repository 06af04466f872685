package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"uiid/internal/inject"
	"uiid/internal/observ"
	"uiid/internal/stubgen"
)

var stubsCmd = &cobra.Command{
	Use:   "stubs [flags] <paths...>",
	Short: "Generate Jest test templates for JavaScript sources",
	Long: `Write <name>.test<ext> next to each source with one describe block per
function found in it. Existing test files are left alone unless --force is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStubs,
}

func init() {
	stubsCmd.Flags().Bool("force", false, "overwrite existing test files (overrides [stubs].force)")
	stubsCmd.Flags().Int("jobs", 0, "max parallel files (0 = number of CPUs, overrides [stubs].jobs)")
}

func runStubs(cmd *cobra.Command, args []string) error {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	gen := &stubgen.Generator{
		SkipMarkers: cfg.Inject.SkipMarkers,
		Force:       cfg.Stubs.Force,
		Jobs:        cfg.Stubs.Jobs,
		Logger:      logger,
	}
	if cmd.Flags().Changed("force") {
		if gen.Force, err = cmd.Flags().GetBool("force"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("jobs") {
		if gen.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return err
		}
		if gen.Jobs < 0 {
			return fmt.Errorf("--jobs must not be negative")
		}
	}

	timer := observ.NewTimer()
	phase := timer.Begin("stubs")
	results, err := gen.Generate(cmd.Context(), inject.SplitBatch(args))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	written := 0
	for _, res := range results {
		switch res.Status {
		case stubgen.StatusWritten:
			written++
			if !quiet {
				reportOK.Fprintf(out, "Generated test file: %s\n", res.Output)
			}
		case stubgen.StatusFailed:
			reportErr.Fprintf(out, "Error generating tests for %s: %v\n", res.Source, res.Err)
		case stubgen.StatusSkipped:
			if quiet {
				continue
			}
			reportWarn.Fprintf(out, "Skipped %s: %s\n", res.Source, res.Reason)
		}
	}
	timer.End(phase, fmt.Sprintf("%d files", len(results)))

	reportSummary.Fprintf(out, "\nTest generation complete: %d of %d files\n", written, len(results))
	if showTimings {
		fmt.Fprint(out, timer.Summary())
	}
	return nil
}
