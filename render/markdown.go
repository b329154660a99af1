package render

import (
	"io"

	"github.com/dacharyc/wordiff"
)

// Markdown marks added text in bold and removed text with strikethrough.
// Text is not escaped.
type Markdown struct {
	Options Options
}

// Render implements Renderer.
func (m *Markdown) Render(w io.Writer, segments []wordiff.Segment) error {
	return markup(w, runs(segments, m.Options), func(r wordiff.Run) string {
		if r.Kind == wordiff.Removed {
			return "~~" + r.Text + "~~"
		}
		return "**" + r.Text + "**"
	}, identity)
}
