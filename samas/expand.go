package samas

import "strings"

// Expand rewrites text by replacing every occurrence of each matched word with its
// meaning. Words are processed in the order given and each replacement runs against
// the output of the previous one, so an expansion that contains another matched word
// is rewritten again. Words missing from the dataset are left alone.
func Expand(text string, matched []string, ds *Dataset) string {
	out := text
	for _, word := range matched {
		row, ok := ds.Lookup(word)
		if !ok {
			continue
		}
		out = strings.ReplaceAll(out, word, row.Meaning())
	}
	return out
}

// ExpandSpans replaces exactly the given token spans of text with their meanings.
// Text outside the spans, including whitespace, is copied unchanged, and substitutions
// never feed into each other. Spans must be ordered and non-overlapping, as produced
// by TokenSpans.
func ExpandSpans(text string, spans []Token, ds *Dataset) string {
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, t := range spans {
		row, ok := ds.Lookup(t.Text)
		if !ok || t.Start < last || t.End > len(text) {
			continue
		}
		b.WriteString(text[last:t.Start])
		b.WriteString(row.Meaning())
		last = t.End
	}
	b.WriteString(text[last:])
	return b.String()
}
