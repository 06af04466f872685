package markup

import "strings"

// Syntax selects the surface syntax a document is scanned with.
type Syntax uint8

const (
	// SyntaxMarkup covers static HTML and template-engine markup (.html, .vue, ...).
	SyntaxMarkup Syntax = iota
	// SyntaxComponent covers component templates embedded in code (.jsx, .tsx).
	SyntaxComponent
)

func (s Syntax) String() string {
	switch s {
	case SyntaxMarkup:
		return "markup"
	case SyntaxComponent:
		return "component"
	}
	return "unknown"
}

// Attr is one attribute of an opening tag.
type Attr struct {
	Name  string
	Value string
	// Quote is '"', '\'', '{' for brace expressions, or 0 for unquoted and
	// boolean attributes.
	Quote byte
	Start int
	End   int
}

// Tag is an opening tag located in a document. All offsets are byte offsets
// into the scanned content.
type Tag struct {
	Name        string
	Start       int // '<'
	NameEnd     int
	Close       int // '/' of "/>" or '>'
	End         int // just past '>'
	SelfClosing bool
	Attrs       []Attr
}

// Attr returns the first attribute named name (ASCII case-insensitive).
func (t *Tag) Attr(name string) (Attr, bool) {
	for _, a := range t.Attrs {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return Attr{}, false
}

// HasAttr reports whether the tag carries an attribute named name.
func (t *Tag) HasAttr(name string) bool {
	_, ok := t.Attr(name)
	return ok
}

// IsComponent reports whether the tag name is a capitalised component name.
func (t *Tag) IsComponent() bool {
	return t.Name != "" && t.Name[0] >= 'A' && t.Name[0] <= 'Z'
}

// AttrEnd returns the offset just after the last attribute, i.e. the closing
// marker position with any whitespace in front of it stepped over.
func (t *Tag) AttrEnd(content []byte) int {
	p := t.Close
	for p > t.NameEnd && isSpace(content[p-1]) {
		p--
	}
	return p
}
