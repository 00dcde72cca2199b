package samas

// Match returns the tokens that are known compounds, in input order. A word that occurs
// several times is returned once per occurrence.
func Match(tokens []string, ds *Dataset) []string {
	matched := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if ds.Contains(tok) {
			matched = append(matched, tok)
		}
	}
	return matched
}

// MatchSpans is Match over positioned tokens.
func MatchSpans(tokens []Token, ds *Dataset) []Token {
	matched := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if ds.Contains(tok.Text) {
			matched = append(matched, tok)
		}
	}
	return matched
}

func spanWords(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}
