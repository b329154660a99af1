package wordiff

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Summary describes an alignment in numbers.
type Summary struct {
	SameTokens    int
	AddedTokens   int
	RemovedTokens int

	// Word counts skip whitespace tokens.
	SameWords    int
	AddedWords   int
	RemovedWords int

	// ChangeRegions counts maximal stretches of Added/Removed segments.
	ChangeRegions int

	// Characters is the length of the transformed text in user-perceived
	// characters (grapheme clusters).
	Characters int
}

// ChangeRatio is the share of words in the transformed text that were added.
// It returns 0 when the transformed text has no words.
func (s Summary) ChangeRatio() float64 {
	total := s.SameWords + s.AddedWords
	if total == 0 {
		return 0
	}
	return float64(s.AddedWords) / float64(total)
}

// Stats summarizes segments produced by Align.
func Stats(segments []Segment) Summary {
	var s Summary
	var transformed strings.Builder
	inChange := false

	for _, seg := range segments {
		word := !blank(seg.Text)

		switch seg.Kind {
		case Same:
			s.SameTokens++
			if word {
				s.SameWords++
			}
			inChange = false
			transformed.WriteString(seg.Text)
		case Added:
			s.AddedTokens++
			if word {
				s.AddedWords++
			}
			transformed.WriteString(seg.Text)
		case Removed:
			s.RemovedTokens++
			if word {
				s.RemovedWords++
			}
		}

		if seg.Kind != Same && !inChange {
			s.ChangeRegions++
			inChange = true
		}
	}

	s.Characters = uniseg.GraphemeClusterCount(transformed.String())
	return s
}
