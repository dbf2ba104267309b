// Package parser turns raw move text and PGN files into SAN tokens and game records.
package parser

import (
	"strings"
	"unicode"
)

// Result markers that terminate a move list. They are not moves.
var resultMarkers = map[string]bool{
	"1-0":     true,
	"0-1":     true,
	"1/2-1/2": true,
	"½-½":     true,
	"*":       true,
}

// IsResultMarker reports whether tok is a game termination marker.
func IsResultMarker(tok string) bool {
	return resultMarkers[tok]
}

// Tokenize splits movetext into SAN move tokens. Move numbers, result markers,
// NAGs, {brace} and ;line comments and (variations) are discarded, so the
// output can be fed straight to the move resolver.
func Tokenize(text string) []string {
	var tokens []string
	var word strings.Builder
	braceDepth := 0
	ravDepth := 0
	lineComment := false

	flush := func() {
		if word.Len() == 0 {
			return
		}
		if tok := cleanWord(word.String()); tok != "" {
			tokens = append(tokens, tok)
		}
		word.Reset()
	}

	for _, r := range text {
		switch {
		case lineComment:
			if r == '\n' {
				lineComment = false
			}
		case braceDepth > 0:
			if r == '}' {
				braceDepth--
			}
		case r == '{':
			flush()
			braceDepth++
		case r == ';':
			flush()
			lineComment = true
		case r == '(':
			flush()
			ravDepth++
		case r == ')':
			flush()
			if ravDepth > 0 {
				ravDepth--
			}
		case ravDepth > 0:
			// Inside a variation; skip everything.
		case unicode.IsSpace(r):
			flush()
		default:
			word.WriteRune(r)
		}
	}
	flush()

	return tokens
}

// cleanWord strips a leading move number from a word and drops words that are
// not moves (bare move numbers, results, NAGs, "e.p." markers).
func cleanWord(w string) string {
	w = stripMoveNumber(w)
	switch {
	case w == "":
		return ""
	case IsResultMarker(w):
		return ""
	case w[0] == '$':
		return ""
	case w == "e.p." || w == "ep":
		return ""
	}
	return w
}

// stripMoveNumber removes "12." / "12..." / "12…" prefixes.
func stripMoveNumber(w string) string {
	i := 0
	for i < len(w) && w[i] >= '0' && w[i] <= '9' {
		i++
	}
	if i == 0 || i == len(w) {
		return w
	}
	rest := w[i:]
	switch {
	case strings.HasPrefix(rest, "."):
		return strings.TrimLeft(rest, ".")
	case strings.HasPrefix(rest, "…"):
		return strings.TrimLeft(rest, "…")
	}
	return w
}
