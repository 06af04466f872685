package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"uiid/internal/inject"
)

// FileName is the configuration file looked up from the working directory upwards.
const FileName = "uiid.toml"

// Config is the decoded uiid.toml.
type Config struct {
	Inject InjectConfig `toml:"inject"`
	Stubs  StubsConfig  `toml:"stubs"`

	// Path is the file the configuration was read from; empty for defaults.
	Path string `toml:"-"`
}

// InjectConfig configures `uiid inject`.
type InjectConfig struct {
	SkipMarkers       []string `toml:"skip_markers"`
	Exclude           []string `toml:"exclude"`
	MarkupExt         []string `toml:"markup_ext"`
	ComponentExt      []string `toml:"component_ext"`
	MarkupElements    []string `toml:"markup_elements"`
	ComponentElements []string `toml:"component_elements"`
	// ReplaceDefaults makes the element lists replace the built-in vocabularies
	// instead of extending them.
	ReplaceDefaults bool   `toml:"replace_defaults"`
	Cache           bool   `toml:"cache"`
	CacheDir        string `toml:"cache_dir"`
}

// StubsConfig configures `uiid stubs`.
type StubsConfig struct {
	Jobs  int  `toml:"jobs"`
	Force bool `toml:"force"`
}

// Default returns the configuration used when no uiid.toml exists.
func Default() Config {
	rules := inject.DefaultRules()
	return Config{
		Inject: InjectConfig{
			SkipMarkers:  rules.SkipMarkers,
			MarkupExt:    rules.MarkupExt,
			ComponentExt: rules.ComponentExt,
		},
	}
}

// Find walks up from startDir looking for uiid.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads explicitPath when given, otherwise the nearest uiid.toml above
// startDir, otherwise the defaults.
func Load(explicitPath, startDir string) (Config, error) {
	path := explicitPath
	if path == "" {
		found, ok, err := Find(startDir)
		if err != nil {
			return Config{}, err
		}
		if !ok {
			return Default(), nil
		}
		path = found
	}
	return LoadFile(path)
}

// LoadFile decodes and validates one configuration file. Keys left out keep
// their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks patterns, selectors, and extensions.
func (c *Config) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("[inject].exclude: %w", err)
	}
	for _, ext := range append(append([]string(nil), c.Inject.MarkupExt...), c.Inject.ComponentExt...) {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("[inject]: extension %q must start with '.'", ext)
		}
	}
	if _, err := c.vocabulary(c.Inject.MarkupElements, inject.DefaultMarkupVocabulary()); err != nil {
		return fmt.Errorf("[inject].markup_elements: %w", err)
	}
	if _, err := c.vocabulary(c.Inject.ComponentElements, inject.DefaultComponentVocabulary()); err != nil {
		return fmt.Errorf("[inject].component_elements: %w", err)
	}
	if c.Stubs.Jobs < 0 {
		return fmt.Errorf("[stubs].jobs must not be negative")
	}
	return nil
}

// Rules returns the dispatch and skip rules.
func (c *Config) Rules() inject.Rules {
	return inject.Rules{
		SkipMarkers:  inject.SkipMarkers(c.Inject.SkipMarkers),
		Exclude:      c.Inject.Exclude,
		MarkupExt:    c.Inject.MarkupExt,
		ComponentExt: c.Inject.ComponentExt,
	}
}

// Vocabularies returns the markup and component vocabularies.
func (c *Config) Vocabularies() (markupVocab, componentVocab inject.Vocabulary, err error) {
	markupVocab, err = c.vocabulary(c.Inject.MarkupElements, inject.DefaultMarkupVocabulary())
	if err != nil {
		return inject.Vocabulary{}, inject.Vocabulary{}, err
	}
	componentVocab, err = c.vocabulary(c.Inject.ComponentElements, inject.DefaultComponentVocabulary())
	if err != nil {
		return inject.Vocabulary{}, inject.Vocabulary{}, err
	}
	return markupVocab, componentVocab, nil
}

func (c *Config) vocabulary(selectors []string, defaults inject.Vocabulary) (inject.Vocabulary, error) {
	extra := make([]inject.Element, 0, len(selectors))
	for _, sel := range selectors {
		e, err := inject.ParseSelector(sel)
		if err != nil {
			return inject.Vocabulary{}, err
		}
		extra = append(extra, e)
	}
	if c.Inject.ReplaceDefaults {
		return inject.Vocabulary{Elements: extra, Components: defaults.Components}, nil
	}
	return defaults.With(extra...), nil
}
