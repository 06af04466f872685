package inject

import (
	"time"

	"go.uber.org/zap"

	"uiid/internal/pipeline"
)

// Summary aggregates the outcome of a batch.
type Summary struct {
	// Processed counts every supplied entry, including skipped ones.
	Processed int
	Modified  int
	Unchanged int
	Skipped   int
	Failed    int
	Injected  int
}

// Runner processes a batch of paths one file at a time.
type Runner struct {
	Injector *Injector
	Rules    Rules
	Logger   *zap.Logger
	Progress pipeline.ProgressSink
}

// Run processes paths in order. A failure on one file is logged and counted,
// and never stops the batch.
func (r *Runner) Run(paths []string) Summary {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sum := Summary{Processed: len(paths)}

	for _, path := range paths {
		pipeline.Emit(r.Progress, pipeline.Event{File: path, Status: pipeline.StatusQueued})
	}

	for _, path := range paths {
		if reason := r.Rules.SkipReason(path); reason != "" {
			sum.Skipped++
			logger.Debug("skipping path", zap.String("path", path), zap.String("reason", reason))
			pipeline.Emit(r.Progress, pipeline.Event{File: path, Status: pipeline.StatusSkipped, Note: reason})
			continue
		}
		syntax, ok := r.Rules.SyntaxFor(path)
		if !ok {
			sum.Skipped++
			pipeline.Emit(r.Progress, pipeline.Event{File: path, Status: pipeline.StatusSkipped, Note: "unsupported extension"})
			continue
		}

		started := time.Now()
		pipeline.Emit(r.Progress, pipeline.Event{
			File:   path,
			Syntax: syntax.String(),
			Stage:  pipeline.StageRead,
			Status: pipeline.StatusWorking,
		})

		res, err := r.Injector.ProcessFile(path, syntax)
		elapsed := time.Since(started)
		if err != nil {
			sum.Failed++
			logger.Error("failed to process file", zap.String("path", path), zap.Error(err))
			pipeline.Emit(r.Progress, pipeline.Event{
				File:    path,
				Syntax:  syntax.String(),
				Stage:   pipeline.StageRead,
				Status:  pipeline.StatusError,
				Err:     err,
				Elapsed: elapsed,
			})
			continue
		}

		evt := pipeline.Event{
			File:    path,
			Syntax:  syntax.String(),
			Stage:   pipeline.StageScan,
			Status:  pipeline.StatusUnchanged,
			Elapsed: elapsed,
			Counts:  res.Counts,
		}
		if res.Cached {
			evt.Note = "cached"
		}
		if res.Modified {
			sum.Modified++
			sum.Injected += len(res.Injections)
			evt.Stage = pipeline.StageWrite
			evt.Status = pipeline.StatusDone
			for _, in := range res.Injections {
				logger.Debug("injected identifier",
					zap.String("path", path),
					zap.String("id", in.ID),
					zap.String("tag", in.Tag),
					zap.Uint32("line", in.Pos.Line),
					zap.Uint32("col", in.Pos.Col))
			}
		} else {
			sum.Unchanged++
		}
		pipeline.Emit(r.Progress, evt)
	}
	return sum
}
