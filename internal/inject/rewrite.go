package inject

import (
	"bytes"
	"sort"
	"strings"

	"uiid/internal/markup"
	"uiid/internal/pipeline"
)

// Edit is a zero-width insertion of Text at byte Offset.
type Edit struct {
	Offset int
	Text   string
}

// Injection records one identifier assigned during a rewrite.
type Injection struct {
	ID      string
	Element string // element type the label was derived from
	Tag     string
	Offset  int
}

// Result is the outcome of rewriting one document in memory.
type Result struct {
	Content    []byte
	Injections []Injection
}

// Modified reports whether any identifier was injected.
func (r *Result) Modified() bool {
	return len(r.Injections) > 0
}

// Counts groups injections by identifier label in first-seen order.
func (r *Result) Counts() []pipeline.LabelCount {
	counts := make([]pipeline.LabelCount, 0)
	index := make(map[string]int)
	for _, inj := range r.Injections {
		label := Label(inj.Element)
		if i, ok := index[label]; ok {
			counts[i].Count++
			continue
		}
		index[label] = len(counts)
		counts = append(counts, pipeline.LabelCount{Label: label, Count: 1})
	}
	return counts
}

// HasIdentifier reports whether tag already carries an id or data-testid
// attribute, in any value form. Bound attributes (:id, v-bind:id) count too.
func HasIdentifier(tag *markup.Tag) bool {
	for _, a := range tag.Attrs {
		if isIdentifierAttr(a.Name) {
			return true
		}
	}
	return false
}

func isIdentifierAttr(name string) bool {
	name = strings.ToLower(name)
	if rest, ok := strings.CutPrefix(name, "v-bind:"); ok {
		name = rest
	} else {
		name = strings.TrimPrefix(name, ":")
	}
	return name == "id" || name == "data-testid"
}

// Rewrite assigns identifiers to every element of vocab in content that lacks
// one. The registry is seeded from content and discarded afterwards.
//
// In markup syntax the attributes follow the tag name; in component syntax
// they follow the existing attributes, before "/>" or ">".
func Rewrite(content []byte, syntax markup.Syntax, vocab Vocabulary) Result {
	tags := markup.Scan(content, syntax)
	registry := seedFromTags(tags)

	edits := make([]Edit, 0)
	injections := make([]Injection, 0)
	for i := range tags {
		tag := &tags[i]
		if HasIdentifier(tag) {
			continue
		}
		elementType, ok := vocab.Match(tag)
		if !ok {
			continue
		}
		id := registry.Allocate(elementType)
		offset := tag.NameEnd
		if syntax == markup.SyntaxComponent {
			offset = tag.AttrEnd(content)
		}
		edits = append(edits, Edit{Offset: offset, Text: identifierAttrText(id)})
		injections = append(injections, Injection{
			ID:      id,
			Element: elementType,
			Tag:     tag.Name,
			Offset:  offset,
		})
	}

	if len(edits) == 0 {
		return Result{Content: content, Injections: injections}
	}
	return Result{Content: applyEdits(content, edits), Injections: injections}
}

func identifierAttrText(id string) string {
	return ` id="` + id + `" data-testid="` + id + `"`
}

// applyEdits returns a copy of content with every insertion applied.
func applyEdits(content []byte, edits []Edit) []byte {
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Offset < edits[j].Offset
	})
	extra := 0
	for _, e := range edits {
		extra += len(e.Text)
	}

	var buf bytes.Buffer
	buf.Grow(len(content) + extra)
	prev := 0
	for _, e := range edits {
		buf.Write(content[prev:e.Offset])
		buf.WriteString(e.Text)
		prev = e.Offset
	}
	buf.Write(content[prev:])
	return buf.Bytes()
}
