package owsql

// tokenize splits a composed query into an ordered sequence of tokens,
// consulting overwrite and errorMsg to decide whether each whitespace-
// delimited word is a known placeholder. Everything else accumulates into
// maximal UserString runs, preserving the intervening whitespace so that a
// multi-word untrusted run is quoted as a single literal.
func tokenize(query string, overwrite, errorMsg *BidiRegistry[string, string]) []token {
	s := NewScanner(query)
	var tokens []token

outer:
	for {
		s.SkipWhitespace()
		if s.Eof() {
			return tokens
		}

		w, err := s.ConsumeExceptWhitespace()
		if err != nil {
			return tokens
		}
		if tok, ok := placeholderToken(w, overwrite, errorMsg); ok {
			tokens = append(tokens, tok)
			continue outer
		}

		u := w
		for {
			mark := s.pos
			ws, _ := s.ConsumeWhitespace()
			if s.Eof() {
				s.pos = mark
				break
			}
			w2, err := s.ConsumeExceptWhitespace()
			if err != nil {
				s.pos = mark
				break
			}
			if tok, ok := placeholderToken(w2, overwrite, errorMsg); ok {
				tokens = append(tokens, token{kind: tokenUserString, text: u})
				tokens = append(tokens, tok)
				continue outer
			}
			u += ws + w2
		}
		tokens = append(tokens, token{kind: tokenUserString, text: u})
	}
}

// placeholderToken reports whether w is a registered placeholder in either
// registry, and if so the token it resolves to.
func placeholderToken(w string, overwrite, errorMsg *BidiRegistry[string, string]) (token, bool) {
	if frag, ok := overwrite.GetReverse(w); ok {
		return token{kind: tokenPlaceholder, text: frag}, true
	}
	if key, ok := errorMsg.GetReverse(w); ok {
		return token{kind: tokenErrorPlaceholder, errKey: key}, true
	}
	return token{}, false
}
