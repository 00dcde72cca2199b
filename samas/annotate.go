package samas

import "fmt"

// Annotate produces one "word: category" line per matched word, in order. Labels are
// resolved through mapping; unknown codes are shown as-is. Words absent from the
// dataset are skipped.
func Annotate(matched []string, ds *Dataset, mapping CategoryMapping) []string {
	lines := make([]string, 0, len(matched))
	for _, word := range matched {
		row, ok := ds.Lookup(word)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", word, mapping.Display(row.Label)))
	}
	return lines
}
