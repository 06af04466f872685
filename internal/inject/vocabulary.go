package inject

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"uiid/internal/markup"
)

// ErrInvalidSelector is returned for element selectors that cannot be parsed.
var ErrInvalidSelector = errors.New("invalid element selector")

// Element describes one taggable element type.
type Element struct {
	Name string
	// Label is the identifier base; Name is used when empty.
	Label string
	// Require names an attribute the tag must carry to match.
	Require string
	// Contains, when set, must be a substring of the Require attribute value.
	Contains string
}

func (e Element) label() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Name
}

// Matches reports whether tag is an occurrence of e.
func (e Element) Matches(tag *markup.Tag) bool {
	if !strings.EqualFold(tag.Name, e.Name) {
		return false
	}
	if e.Require == "" {
		return true
	}
	attr, ok := tag.Attr(e.Require)
	if !ok {
		return false
	}
	return e.Contains == "" || strings.Contains(attr.Value, e.Contains)
}

// String renders e in selector syntax.
func (e Element) String() string {
	var b strings.Builder
	b.WriteString(e.Name)
	if e.Require != "" {
		b.WriteByte('[')
		b.WriteString(e.Require)
		if e.Contains != "" {
			fmt.Fprintf(&b, "*=%q", e.Contains)
		}
		b.WriteByte(']')
	}
	if e.Label != "" && e.Label != e.Name {
		b.WriteString(" as ")
		b.WriteString(e.Label)
	}
	return b.String()
}

var selectorPattern = regexp.MustCompile(
	`^([A-Za-z][A-Za-z0-9:._-]*)(?:\[\s*([^\]\s*=]+)\s*(?:\*=\s*(?:"([^"]*)"|'([^']*)'|([^\]\s"']+))\s*)?\])?(?:\s+as\s+([A-Za-z0-9_-]+))?$`,
)

// ParseSelector parses "name", "name[attr]", `name[attr*="text"]`, each
// optionally followed by "as label".
func ParseSelector(s string) (Element, error) {
	m := selectorPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Element{}, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
	}
	e := Element{
		Name:    m[1],
		Require: m[2],
		Label:   m[6],
	}
	for _, v := range m[3:6] {
		if v != "" {
			e.Contains = v
			break
		}
	}
	return e, nil
}

// Vocabulary is the set of element types a syntax mode tags.
type Vocabulary struct {
	Elements []Element
	// Components also matches every capitalised component tag.
	Components bool
}

// Match returns the element type name of tag when the vocabulary covers it.
func (v Vocabulary) Match(tag *markup.Tag) (string, bool) {
	if v.Components && tag.IsComponent() {
		return tag.Name, true
	}
	for _, e := range v.Elements {
		if e.Matches(tag) {
			return e.label(), true
		}
	}
	return "", false
}

// With returns a copy of v extended with extra elements.
func (v Vocabulary) With(extra ...Element) Vocabulary {
	elems := make([]Element, 0, len(v.Elements)+len(extra))
	elems = append(elems, v.Elements...)
	elems = append(elems, extra...)
	return Vocabulary{Elements: elems, Components: v.Components}
}

// Fingerprint identifies the vocabulary in cache keys.
func (v Vocabulary) Fingerprint() string {
	parts := make([]string, 0, len(v.Elements)+1)
	if v.Components {
		parts = append(parts, "<Components>")
	}
	for _, e := range v.Elements {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ",")
}

// DefaultMarkupVocabulary covers interactive and structural HTML elements.
func DefaultMarkupVocabulary() Vocabulary {
	return Vocabulary{Elements: []Element{
		{Name: "button"},
		{Name: "input"},
		{Name: "select"},
		{Name: "textarea"},
		{Name: "a", Label: "link", Require: "href"},
		{Name: "form"},
		{Name: "nav"},
		{Name: "section"},
		{Name: "article"},
		{Name: "aside"},
	}}
}

// DefaultComponentVocabulary covers custom components plus common JSX elements.
func DefaultComponentVocabulary() Vocabulary {
	return Vocabulary{
		Components: true,
		Elements: []Element{
			{Name: "button"},
			{Name: "input"},
			{Name: "select"},
			{Name: "textarea"},
			{Name: "a", Label: "link"},
			{Name: "form"},
			{Name: "div"},
			{Name: "section"},
		},
	}
}
