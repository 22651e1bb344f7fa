package forms

// ExtractTokens returns the placeholder names referenced in text, in order of
// appearance. A token starts at '<' (a later '<' restarts it) and ends at the
// next '>' when at least one character sits between the delimiters. Duplicates
// are kept; unmatched delimiters yield nothing.
func ExtractTokens(text string) []string {
	tokens := []string{}
	start := -1

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '<':
			start = i
		case '>':
			if start >= 0 && i-start > 1 {
				tokens = append(tokens, text[start+1:i])
			}
			start = -1
		}
	}

	return tokens
}
