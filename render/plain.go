package render

import (
	"io"

	"github.com/dacharyc/wordiff"
)

// Plain writes text without markers. With default options the output is
// exactly the transformed text.
type Plain struct {
	Options Options
}

// Render implements Renderer.
func (p *Plain) Render(w io.Writer, segments []wordiff.Segment) error {
	if !p.Options.ShowRemoved {
		_, err := io.WriteString(w, wordiff.Join(segments, wordiff.Same, wordiff.Added))
		return err
	}
	return markup(w, runs(segments, p.Options), func(r wordiff.Run) string { return r.Text }, identity)
}
