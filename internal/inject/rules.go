package inject

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"uiid/internal/markup"
)

// DefaultSkipMarkers are path fragments whose files are never opened.
var DefaultSkipMarkers = []string{"node_modules"}

// Rules decide which supplied paths are processed and in which syntax.
type Rules struct {
	SkipMarkers  []string
	Exclude      []string // doublestar patterns matched against slash paths
	MarkupExt    []string
	ComponentExt []string
}

// DefaultRules returns the stock dispatch table.
func DefaultRules() Rules {
	return Rules{
		SkipMarkers:  append([]string(nil), DefaultSkipMarkers...),
		MarkupExt:    []string{".html", ".htm", ".ejs", ".hbs", ".njk", ".vue"},
		ComponentExt: []string{".jsx", ".tsx"},
	}
}

// Validate checks the exclude patterns.
func (r Rules) Validate() error {
	for _, pattern := range r.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

// SkipMarkers returns DefaultSkipMarkers followed by every extra marker not
// already present. The defaults cannot be configured away.
func SkipMarkers(extra []string) []string {
	markers := append([]string(nil), DefaultSkipMarkers...)
	for _, m := range extra {
		if m != "" && !slices.Contains(markers, m) {
			markers = append(markers, m)
		}
	}
	return markers
}

// SkipReason returns why path must not be opened, or "" when it may be.
func (r Rules) SkipReason(path string) string {
	for _, marker := range SkipMarkers(r.SkipMarkers) {
		if marker != "" && strings.Contains(path, marker) {
			return "contains " + marker
		}
	}
	slashed := filepath.ToSlash(path)
	for _, pattern := range r.Exclude {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return "excluded by " + pattern
		}
	}
	return ""
}

// SyntaxFor maps path to a scanning syntax by extension.
func (r Rules) SyntaxFor(path string) (markup.Syntax, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return 0, false
	}
	for _, e := range r.MarkupExt {
		if strings.EqualFold(e, ext) {
			return markup.SyntaxMarkup, true
		}
	}
	for _, e := range r.ComponentExt {
		if strings.EqualFold(e, ext) {
			return markup.SyntaxComponent, true
		}
	}
	return 0, false
}

// SplitBatch splits whitespace-separated batch arguments into paths.
func SplitBatch(args []string) []string {
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		paths = append(paths, strings.Fields(arg)...)
	}
	return paths
}
