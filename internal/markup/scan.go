package markup

import (
	"bytes"
)

// rawTextElements hold text that must not be scanned for tags in markup syntax.
var rawTextElements = map[string]struct{}{
	"script":   {},
	"style":    {},
	"textarea": {},
	"title":    {},
}

// jsxKeywords may directly precede an element: return<div/>.
var jsxKeywords = map[string]bool{
	"return":  true,
	"yield":   true,
	"await":   true,
	"default": true,
}

type scanner struct {
	src    []byte
	pos    int
	syntax Syntax
}

// Scan returns the opening tags of content in document order.
func Scan(content []byte, syntax Syntax) []Tag {
	s := &scanner{src: content, syntax: syntax}
	tags := make([]Tag, 0, bytes.Count(content, []byte{'<'})/2)

	for s.pos < len(s.src) {
		i := bytes.IndexByte(s.src[s.pos:], '<')
		if i < 0 {
			break
		}
		start := s.pos + i
		s.pos = start + 1
		if start+1 >= len(s.src) {
			break
		}

		next := s.src[start+1]
		switch {
		case bytes.HasPrefix(s.src[start:], []byte("<!--")):
			s.skipPast(start+4, []byte("-->"))
		case next == '!' || next == '?':
			s.skipPast(start+2, []byte(">"))
		case isLetter(next):
			// useState<User>() is a type argument, not a tag
			if s.syntax == SyntaxComponent && start > 0 && isIdentByte(s.src[start-1]) &&
				!jsxKeywords[wordBefore(s.src, start)] {
				continue
			}
			tag, ok := s.readTag(start)
			if !ok {
				continue
			}
			// <T>(x: T) => x is a generic arrow function
			if s.syntax == SyntaxComponent && tag.IsComponent() && !tag.SelfClosing &&
				tag.End < len(s.src) && s.src[tag.End] == '(' {
				continue
			}
			tags = append(tags, tag)
			s.pos = tag.End
			if s.syntax == SyntaxMarkup && !tag.SelfClosing {
				s.skipRawText(tag.Name)
			}
		}
	}
	return tags
}

func (s *scanner) skipPast(from int, marker []byte) {
	if from > len(s.src) {
		s.pos = len(s.src)
		return
	}
	idx := bytes.Index(s.src[from:], marker)
	if idx < 0 {
		s.pos = len(s.src)
		return
	}
	s.pos = from + idx + len(marker)
}

// skipRawText moves past the body of script-like elements so markup inside
// string literals is not mistaken for tags.
func (s *scanner) skipRawText(name string) {
	lower := bytes.ToLower([]byte(name))
	if _, ok := rawTextElements[string(lower)]; !ok {
		return
	}
	closing := append([]byte("</"), lower...)
	rest := bytes.ToLower(s.src[s.pos:])
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		s.pos = len(s.src)
		return
	}
	s.pos += idx
}

// readTag reads the opening tag starting at the '<' at start.
func (s *scanner) readTag(start int) (Tag, bool) {
	src := s.src
	n := len(src)
	i := start + 1
	for i < n && isNameByte(src[i]) {
		i++
	}
	tag := Tag{
		Name:    string(src[start+1 : i]),
		Start:   start,
		NameEnd: i,
	}
	if i >= n || !(isSpace(src[i]) || src[i] == '>' || src[i] == '/') {
		return Tag{}, false
	}

	for {
		for i < n && isSpace(src[i]) {
			i++
		}
		if i >= n {
			return Tag{}, false
		}
		c := src[i]
		switch {
		case c == '>':
			tag.Close = i
			tag.End = i + 1
			return tag, true
		case c == '/' && i+1 < n && src[i+1] == '>':
			tag.Close = i
			tag.End = i + 2
			tag.SelfClosing = true
			return tag, true
		case c == '/':
			i++
		case c == '<':
			return Tag{}, false
		case c == '{' && s.syntax == SyntaxComponent:
			// spread attributes: {...props}
			end, ok := s.skipBraces(i)
			if !ok {
				return Tag{}, false
			}
			i = end
		default:
			attr, end, ok := s.readAttr(i)
			if !ok {
				return Tag{}, false
			}
			tag.Attrs = append(tag.Attrs, attr)
			i = end
		}
	}
}

func (s *scanner) readAttr(i int) (Attr, int, bool) {
	src := s.src
	n := len(src)
	start := i
	for i < n && s.isAttrNameByte(src[i]) {
		i++
	}
	if i == start {
		return Attr{}, 0, false
	}
	attr := Attr{Name: string(src[start:i]), Start: start}

	j := i
	for j < n && isSpace(src[j]) {
		j++
	}
	if j >= n || src[j] != '=' {
		// boolean attribute
		attr.End = i
		return attr, i, true
	}
	j++
	for j < n && isSpace(src[j]) {
		j++
	}
	if j >= n {
		return Attr{}, 0, false
	}

	switch q := src[j]; {
	case q == '"' || q == '\'':
		k := bytes.IndexByte(src[j+1:], q)
		if k < 0 {
			return Attr{}, 0, false
		}
		attr.Value = string(src[j+1 : j+1+k])
		attr.Quote = q
		i = j + 1 + k + 1
	case q == '{' && s.syntax == SyntaxComponent:
		end, ok := s.skipBraces(j)
		if !ok {
			return Attr{}, 0, false
		}
		attr.Value = string(src[j+1 : end-1])
		attr.Quote = '{'
		i = end
	default:
		k := j
		for k < n && !isSpace(src[k]) && src[k] != '>' {
			k++
		}
		attr.Value = string(src[j:k])
		i = k
	}
	attr.End = i
	return attr, i, true
}

// skipBraces returns the offset just past the '}' matching the '{' at i.
// String literals, template literals, and block comments inside the
// expression are stepped over as units.
func (s *scanner) skipBraces(i int) (int, bool) {
	src := s.src
	n := len(src)
	depth := 0
	for i < n {
		c := src[i]
		switch {
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		case c == '"' || c == '\'' || c == '`':
			end, ok := skipString(src, i)
			if !ok {
				return 0, false
			}
			i = end
			continue
		case c == '/' && i+1 < n && src[i+1] == '*':
			idx := bytes.Index(src[i+2:], []byte("*/"))
			if idx < 0 {
				return 0, false
			}
			i += 2 + idx + 2
			continue
		}
		i++
	}
	return 0, false
}

func skipString(src []byte, i int) (int, bool) {
	q := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case q:
			return j + 1, true
		case '\n':
			if q != '`' {
				return 0, false
			}
		}
	}
	return 0, false
}

func (s *scanner) isAttrNameByte(b byte) bool {
	if s.syntax == SyntaxComponent {
		return isLetter(b) || isDigit(b) || b == '-' || b == '_' || b == ':' || b == '.' || b == '$'
	}
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '"', '\'', '<', '>', '/', '=':
		return false
	}
	return b > 0x1f && b != 0x7f
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isNameByte(b byte) bool {
	return isLetter(b) || isDigit(b) || b == '-' || b == ':' || b == '.' || b == '_'
}

// wordBefore returns the run of letters ending just before end.
func wordBefore(src []byte, end int) string {
	i := end
	for i > 0 && isLetter(src[i-1]) {
		i--
	}
	if i > 0 && isIdentByte(src[i-1]) {
		return ""
	}
	return string(src[i:end])
}

func isIdentByte(b byte) bool {
	return isLetter(b) || isDigit(b) || b == '_' || b == '$' || b == '.'
}
