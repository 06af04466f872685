// Package markup locates opening tags in HTML-like and JSX-like documents.
//
// It is not a parser: it finds tag boundaries and attribute lists well enough
// to decide where attributes can be inserted, and leaves everything between
// tags alone. Malformed or unterminated tags are skipped rather than repaired.
package markup
