package wordiff

import "strings"

// Run is a maximal stretch of consecutive segments sharing the same kind.
type Run struct {
	Kind   Kind
	Text   string
	Tokens int // number of segments merged into this run
}

// Blank reports whether the run consists only of whitespace.
func (r Run) Blank() bool {
	return blank(r.Text)
}

// Runs merges consecutive segments of the same kind.
func Runs(segments []Segment) []Run {
	if len(segments) == 0 {
		return nil
	}

	runs := make([]Run, 0, len(segments))
	var b strings.Builder
	current := Run{Kind: segments[0].Kind}

	for _, seg := range segments {
		if seg.Kind != current.Kind {
			current.Text = b.String()
			runs = append(runs, current)
			b.Reset()
			current = Run{Kind: seg.Kind}
		}
		b.WriteString(seg.Text)
		current.Tokens++
	}

	current.Text = b.String()
	runs = append(runs, current)
	return runs
}

// Visible drops Removed segments. Deletions are tracked by the engine but
// never shown in the highlighted comparison.
func Visible(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.Kind != Removed {
			out = append(out, seg)
		}
	}
	return out
}

// Join concatenates the text of every segment whose kind is in kinds.
//
//	Join(segs, Same, Removed) // the original text
//	Join(segs, Same, Added)   // the transformed text
func Join(segments []Segment, kinds ...Kind) string {
	var b strings.Builder
	for _, seg := range segments {
		for _, k := range kinds {
			if seg.Kind == k {
				b.WriteString(seg.Text)
				break
			}
		}
	}
	return b.String()
}
