package samas

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Token is a maximal run of non-whitespace characters with its byte offsets.
// text[t.Start:t.End] == t.Text for every token.
type Token struct {
	Text  string
	Start int
	End   int
}

// String returns a debug representation, e.g. "राजपुत्र"[0:24].
func (t Token) String() string {
	return fmt.Sprintf("%q[%d:%d]", t.Text, t.Start, t.End)
}

// Tokenize splits text on runs of Unicode whitespace. No punctuation is stripped and
// nothing is normalized. Empty or whitespace-only input yields an empty slice.
func Tokenize(text string) []string {
	spans := TokenSpans(text)
	out := make([]string, len(spans))
	for i, t := range spans {
		out[i] = t.Text
	}
	return out
}

// TokenSpans is Tokenize with byte offsets into text.
func TokenSpans(text string) []Token {
	var tokens []Token
	start := -1
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, Token{Text: text[start:i], Start: start, End: i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
		i += size
	}
	if start >= 0 {
		tokens = append(tokens, Token{Text: text[start:], Start: start, End: len(text)})
	}
	return tokens
}
