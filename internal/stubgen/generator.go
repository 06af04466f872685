package stubgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"uiid/internal/inject"
)

// ErrNoFunctions is reported for sources without any detectable function.
var ErrNoFunctions = errors.New("no functions found")

// SourceExt lists the extensions stubs are generated for.
var SourceExt = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx"}

// Status is the outcome for one source file.
type Status string

const (
	StatusWritten Status = "written"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result describes what happened to one source file.
type Result struct {
	Source    string
	Output    string
	Functions []string
	Status    Status
	// Reason explains a skip.
	Reason string
	Err    error
}

// Generator writes Jest test stubs next to JavaScript sources.
type Generator struct {
	// SkipMarkers are substrings that exclude a path, on top of node_modules.
	SkipMarkers []string
	// Force overwrites existing test files.
	Force bool
	// Jobs bounds parallelism; zero means GOMAXPROCS.
	Jobs   int
	Now    func() time.Time
	Logger *zap.Logger
}

// TestPath returns the stub path for source: <dir>/<name>.test<ext>.
func TestPath(source string) string {
	ext := filepath.Ext(source)
	name := strings.TrimSuffix(filepath.Base(source), ext)
	return filepath.Join(filepath.Dir(source), name+".test"+ext)
}

// IsTestFile reports whether path already is a test or spec file.
func IsTestFile(path string) bool {
	base := filepath.Base(path)
	return strings.Contains(base, ".test.") || strings.Contains(base, ".spec.")
}

// Generate processes paths in parallel. Per-file failures are recorded in
// the results; the returned error is only set when ctx is cancelled.
func (g *Generator) Generate(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	jobs := g.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		eg.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = g.generateOne(path)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (g *Generator) generateOne(source string) Result {
	logger := g.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	res := Result{Source: source, Output: TestPath(source), Status: StatusSkipped}

	if reason := g.skipReason(source); reason != "" {
		res.Output = ""
		res.Reason = reason
		return res
	}

	src, err := os.ReadFile(source)
	if err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("read %s: %w", source, err)
		logger.Error("failed to read source", zap.String("path", source), zap.Error(err))
		return res
	}
	res.Functions = ExtractFunctions(src)
	if len(res.Functions) == 0 {
		res.Reason = "no functions found"
		res.Err = fmt.Errorf("%s: %w", source, ErrNoFunctions)
		return res
	}

	if !g.Force {
		if _, err := os.Stat(res.Output); err == nil {
			res.Reason = "test file exists"
			return res
		}
	}

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	ext := filepath.Ext(source)
	content, err := Render(Template{
		Module:      strings.TrimSuffix(filepath.Base(source), ext),
		Ext:         ext,
		Functions:   res.Functions,
		GeneratedAt: now(),
	})
	if err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("render %s: %w", source, err)
		return res
	}
	if err := os.WriteFile(res.Output, content, 0o644); err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("write %s: %w", res.Output, err)
		logger.Error("failed to write test file", zap.String("path", res.Output), zap.Error(err))
		return res
	}
	res.Status = StatusWritten
	logger.Debug("generated test file",
		zap.String("path", res.Output),
		zap.Int("functions", len(res.Functions)))
	return res
}

func (g *Generator) skipReason(source string) string {
	for _, m := range inject.SkipMarkers(g.SkipMarkers) {
		if m != "" && strings.Contains(source, m) {
			return "contains " + m
		}
	}
	if IsTestFile(source) {
		return "is a test file"
	}
	ext := strings.ToLower(filepath.Ext(source))
	for _, e := range SourceExt {
		if ext == e {
			return ""
		}
	}
	return "unsupported extension"
}
