package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"uiid/internal/inject"
	"uiid/internal/pipeline"
	"uiid/internal/ui"
)

// runProgram drives a bubbletea model to completion.
var runProgram = func(model tea.Model) error {
	_, err := tea.NewProgram(model, tea.WithOutput(os.Stdout)).Run()
	return err
}

// runInjectWithUI runs the batch on a background goroutine and renders its
// events until the batch finishes. A failing UI does not fail the batch.
func runInjectWithUI(title string, files []string, runner *inject.Runner) inject.Summary {
	events := make(chan pipeline.Event, 256)
	outcome := make(chan inject.Summary, 1)

	go func() {
		r := *runner
		r.Progress = pipeline.ChannelSink{Ch: events}
		outcome <- r.Run(files)
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	if err := runProgram(model); err != nil {
		logger.Warn("progress ui failed", zap.Error(err))
	}

	// the batch keeps running if the UI was closed early
	go func() {
		for range events {
		}
	}()
	return <-outcome
}
