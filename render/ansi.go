package render

import (
	"io"

	"github.com/dacharyc/wordiff"
	"github.com/muesli/termenv"
)

// ANSI styles output for a terminal: added text underlined in the highlight
// colour, removed text struck through in red.
type ANSI struct {
	Options Options
	Profile termenv.Profile
}

// NewANSI creates an ANSI renderer using the colour profile detected from
// the environment.
func NewANSI(opts Options) *ANSI {
	return &ANSI{Options: opts, Profile: termenv.EnvColorProfile()}
}

// Render implements Renderer.
func (a *ANSI) Render(w io.Writer, segments []wordiff.Segment) error {
	hex := a.Options.HighlightColor
	if hex == "" {
		hex = DefaultHighlightColor
	}
	added := a.Profile.Color(hex)
	removed := a.Profile.Color("#ef4444")

	return markup(w, runs(segments, a.Options), func(r wordiff.Run) string {
		if r.Kind == wordiff.Removed {
			return a.Profile.String(r.Text).Foreground(removed).CrossOut().String()
		}
		return a.Profile.String(r.Text).Foreground(added).Underline().String()
	}, identity)
}
