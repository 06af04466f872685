package inject

import (
	"crypto/sha256"
	"fmt"
	"os"

	"go.uber.org/zap"

	"uiid/internal/markup"
	"uiid/internal/pipeline"
	"uiid/internal/source"
)

// Options configures an Injector.
type Options struct {
	Markup    Vocabulary
	Component Vocabulary
	// DryRun computes the rewrite without writing it back.
	DryRun bool
	Cache  CleanCache
	Logger *zap.Logger
}

// Injector assigns identifiers to the elements of one document at a time.
type Injector struct {
	opts   Options
	logger *zap.Logger
}

// PlacedInjection is an Injection resolved to a line and column.
type PlacedInjection struct {
	Injection
	Pos source.LineCol
}

// FileResult describes what happened to one document.
type FileResult struct {
	Path       string
	Syntax     markup.Syntax
	Modified   bool
	Cached     bool
	Injections []PlacedInjection
	Counts     []pipeline.LabelCount
}

// New returns an Injector. Zero vocabularies fall back to the defaults.
func New(opts Options) *Injector {
	if len(opts.Markup.Elements) == 0 && !opts.Markup.Components {
		opts.Markup = DefaultMarkupVocabulary()
	}
	if len(opts.Component.Elements) == 0 && !opts.Component.Components {
		opts.Component = DefaultComponentVocabulary()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Injector{opts: opts, logger: logger}
}

// Vocabulary returns the vocabulary used for syntax.
func (inj *Injector) Vocabulary(syntax markup.Syntax) Vocabulary {
	if syntax == markup.SyntaxComponent {
		return inj.opts.Component
	}
	return inj.opts.Markup
}

// ProcessFile rewrites the document at path in place when at least one element
// needed an identifier. Read and write failures are returned wrapped with the path.
func (inj *Injector) ProcessFile(path string, syntax markup.Syntax) (FileResult, error) {
	res := FileResult{Path: path, Syntax: syntax}

	// fresh set per document: nothing is shared between files
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return res, fmt.Errorf("read %s: %w", path, err)
	}
	file := fileSet.Get(id)

	vocab := inj.Vocabulary(syntax)
	fingerprint := syntax.String() + ":" + vocab.Fingerprint()
	if inj.opts.Cache != nil {
		clean, err := inj.opts.Cache.IsClean(path, fingerprint, file.Hash)
		if err != nil {
			inj.logger.Warn("cache lookup failed", zap.String("path", path), zap.Error(err))
		} else if clean {
			inj.logger.Debug("cache hit", zap.String("path", path))
			res.Cached = true
			return res, nil
		}
	}

	out := Rewrite(file.Content, syntax, vocab)
	res.Counts = out.Counts()
	for _, in := range out.Injections {
		res.Injections = append(res.Injections, PlacedInjection{
			Injection: in,
			Pos:       file.Position(in.Offset),
		})
	}

	if !out.Modified() {
		inj.markClean(path, fingerprint, file.Hash)
		return res, nil
	}
	res.Modified = true
	if inj.opts.DryRun {
		return res, nil
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, out.Content, mode); err != nil {
		return res, fmt.Errorf("write %s: %w", path, err)
	}
	inj.markClean(path, fingerprint, sha256.Sum256(out.Content))
	return res, nil
}

func (inj *Injector) markClean(path, fingerprint string, hash [32]byte) {
	if inj.opts.Cache == nil || inj.opts.DryRun {
		return
	}
	if err := inj.opts.Cache.MarkClean(path, fingerprint, hash); err != nil {
		inj.logger.Warn("cache update failed", zap.String("path", path), zap.Error(err))
	}
}
