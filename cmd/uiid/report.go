package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"uiid/internal/inject"
	"uiid/internal/markup"
	"uiid/internal/pipeline"
)

var (
	reportOK      = color.New(color.FgGreen)
	reportInfo    = color.New(color.FgCyan)
	reportWarn    = color.New(color.FgYellow)
	reportErr     = color.New(color.FgRed, color.Bold)
	reportSummary = color.New(color.Bold)
)

type reportOptions struct {
	quiet   bool
	verbose bool
	dryRun  bool
}

// consoleReport prints one line per file event as the batch runs.
type consoleReport struct {
	out  io.Writer
	opts reportOptions
}

func newConsoleReport(out io.Writer, opts reportOptions) *consoleReport {
	return &consoleReport{out: out, opts: opts}
}

func (r *consoleReport) OnEvent(evt pipeline.Event) {
	if evt.File == "" {
		return
	}
	switch evt.Status {
	case pipeline.StatusWorking:
		if r.opts.quiet {
			return
		}
		fmt.Fprintf(r.out, "Processing %s file: %s\n", syntaxTitle(evt.Syntax), evt.File)
	case pipeline.StatusDone:
		if r.opts.verbose {
			for _, c := range evt.Counts {
				fmt.Fprintf(r.out, "  - Added IDs to %d %s elements\n", c.Count, c.Label)
			}
		}
		if r.opts.quiet {
			return
		}
		verb := "Added IDs to:"
		if r.opts.dryRun {
			verb = "Would add IDs to:"
		}
		reportOK.Fprintf(r.out, "%s %s\n", verb, evt.File)
	case pipeline.StatusUnchanged:
		if r.opts.quiet {
			return
		}
		suffix := ""
		if evt.Note != "" {
			suffix = " (" + evt.Note + ")"
		}
		reportInfo.Fprintf(r.out, "No changes needed for: %s%s\n", evt.File, suffix)
	case pipeline.StatusSkipped:
		if !r.opts.verbose {
			return
		}
		reportWarn.Fprintf(r.out, "Skipped %s: %s\n", evt.File, evt.Note)
	case pipeline.StatusError:
		reportErr.Fprintf(r.out, "Error processing %s\n", evt.File)
	}
}

func syntaxTitle(syntax string) string {
	switch syntax {
	case markup.SyntaxMarkup.String():
		return "HTML"
	case markup.SyntaxComponent.String():
		return "JSX/TSX"
	default:
		return syntax
	}
}

func printSummary(out io.Writer, sum inject.Summary, dryRun bool) {
	verb := "modified"
	if dryRun {
		verb = "would modify"
	}
	fmt.Fprintln(out)
	reportSummary.Fprintf(out, "Processed %d files, %s %d files\n", sum.Processed, verb, sum.Modified)
	if sum.Failed > 0 {
		reportErr.Fprintf(out, "%d files could not be processed\n", sum.Failed)
	}
}
