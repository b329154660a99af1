package render

import (
	"encoding/json"
	"io"

	"github.com/dacharyc/wordiff"
)

// JSON writes the segments as an array of {"kind","text"} objects. Removed
// segments are kept only when Options.ShowRemoved is set.
type JSON struct {
	Options Options
	Indent  string
}

// Render implements Renderer.
func (j *JSON) Render(w io.Writer, segments []wordiff.Segment) error {
	if !j.Options.ShowRemoved {
		segments = wordiff.Visible(segments)
	}
	if segments == nil {
		segments = []wordiff.Segment{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if j.Indent != "" {
		enc.SetIndent("", j.Indent)
	}
	return enc.Encode(segments)
}
