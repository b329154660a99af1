package render

import (
	"fmt"
	"html"
	"io"

	"github.com/dacharyc/wordiff"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultHighlightColor is the colour behind added text.
const DefaultHighlightColor = "#eab308"

// highlightAlpha is the opacity of the added-text background.
const highlightAlpha = 0.2

// HTML writes escaped text with added runs in highlighted spans. Whitespace
// is preserved by the wrapping element's style.
type HTML struct {
	Options    Options
	background string // css rgba() value
}

// NewHTML creates an HTML renderer. It fails if the highlight colour is not
// a valid hex colour.
func NewHTML(opts Options) (*HTML, error) {
	hex := opts.HighlightColor
	if hex == "" {
		hex = DefaultHighlightColor
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid highlight color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return &HTML{
		Options:    opts,
		background: fmt.Sprintf("rgba(%d,%d,%d,%.2f)", r, g, b, highlightAlpha),
	}, nil
}

// Render implements Renderer.
func (h *HTML) Render(w io.Writer, segments []wordiff.Segment) error {
	if _, err := io.WriteString(w, `<div class="diff" style="white-space:pre-wrap">`); err != nil {
		return err
	}

	err := markup(w, runs(segments, h.Options), func(r wordiff.Run) string {
		if r.Kind == wordiff.Removed {
			return `<del class="diff-removed" data-diff="removed">` + html.EscapeString(r.Text) + `</del>`
		}
		return fmt.Sprintf(`<span class="diff-added" data-diff="added" style="background-color:%s;text-decoration:underline">%s</span>`,
			h.background, html.EscapeString(r.Text))
	}, html.EscapeString)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, "</div>")
	return err
}
