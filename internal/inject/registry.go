package inject

import (
	"strconv"
	"strings"

	"uiid/internal/markup"
)

// Registry is the set of identifiers in use within one document.
type Registry struct {
	ids  map[string]struct{}
	next map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ids:  make(map[string]struct{}),
		next: make(map[string]int),
	}
}

// SeedRegistry returns a registry holding every literal identifier value
// carried by the tags of content.
func SeedRegistry(content []byte, syntax markup.Syntax) *Registry {
	return seedFromTags(markup.Scan(content, syntax))
}

func seedFromTags(tags []markup.Tag) *Registry {
	r := NewRegistry()
	for i := range tags {
		for _, a := range tags[i].Attrs {
			if !strings.EqualFold(a.Name, "id") && !strings.EqualFold(a.Name, "data-testid") {
				continue
			}
			if v, ok := literalValue(a); ok && v != "" {
				r.Add(v)
			}
		}
	}
	return r
}

// literalValue returns the constant value of a. Brace expressions only count
// when they hold a single string literal: id={"x"}, id={`x`}.
func literalValue(a markup.Attr) (string, bool) {
	if a.Quote != '{' {
		return a.Value, true
	}
	v := strings.TrimSpace(a.Value)
	if len(v) < 2 {
		return "", false
	}
	q := v[0]
	if q != '"' && q != '\'' && q != '`' || v[len(v)-1] != q {
		return "", false
	}
	inner := v[1 : len(v)-1]
	if strings.IndexByte(inner, q) >= 0 || strings.IndexByte(inner, '\\') >= 0 ||
		(q == '`' && strings.Contains(inner, "${")) {
		return "", false
	}
	return inner, true
}

// Add registers id as taken.
func (r *Registry) Add(id string) {
	r.ids[id] = struct{}{}
}

// Has reports whether id is taken.
func (r *Registry) Has(id string) bool {
	_, ok := r.ids[id]
	return ok
}

// Len returns the number of registered identifiers.
func (r *Registry) Len() int {
	return len(r.ids)
}

// Allocate returns the first free "<label>-<n>" identifier for elementType,
// counting n from 1, and registers it.
func (r *Registry) Allocate(elementType string) string {
	base := Label(elementType)
	// every candidate below the hint was already taken when it was recorded,
	// and the set only grows
	n := max(r.next[base], 1)
	for {
		id := base + "-" + strconv.Itoa(n)
		if !r.Has(id) {
			r.Add(id)
			r.next[base] = n + 1
			return id
		}
		n++
	}
}

// Label derives the identifier base from an element type name: characters
// outside [a-z0-9] (case-insensitive) become '-', the rest is lower-cased.
func Label(elementType string) string {
	var b strings.Builder
	b.Grow(len(elementType))
	for _, r := range elementType {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
