package wordiff

import (
	"strings"
	"unicode"
)

// Tokenize splits text into alternating runs of non-whitespace and
// whitespace characters. Concatenating the result reproduces text exactly.
//
// The sequence always starts and ends with a non-whitespace run, which is
// the empty string when text starts or ends with whitespace:
//
//	Tokenize("a b")  // ["a", " ", "b"]
//	Tokenize(" a ")  // ["", " ", "a", " ", ""]
//	Tokenize("")     // []
//
// Whitespace is the class matched by \s in ECMAScript regular expressions,
// so text splits the way a browser would split it. Bytes that are not valid
// UTF-8 are kept as non-whitespace.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	tokens := make([]string, 0, len(text)/4+1)
	start := 0
	inSpace := false
	for i, r := range text {
		space := isSpace(r)
		if space == inSpace {
			continue
		}
		tokens = append(tokens, text[start:i])
		start = i
		inSpace = space
	}
	tokens = append(tokens, text[start:])

	// Trailing whitespace closes with an empty word run.
	if inSpace {
		tokens = append(tokens, "")
	}
	return tokens
}

// isSpace reports whether r is ECMAScript whitespace. It differs from
// unicode.IsSpace in two runes: U+0085 (NEL) is not whitespace and U+FEFF
// (byte order mark) is.
func isSpace(r rune) bool {
	switch r {
	case '\u0085':
		return false
	case '\ufeff':
		return true
	}
	return unicode.IsSpace(r)
}

// blank reports whether s holds only whitespace.
func blank(s string) bool {
	return strings.TrimFunc(s, isSpace) == ""
}
