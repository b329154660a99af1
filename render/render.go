// Package render turns aligned segments into highlighted output.
//
// Every renderer follows the same presentation contract: Same text is
// written as-is, Added text is marked, and Removed text is suppressed
// unless Options.ShowRemoved is set.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dacharyc/wordiff"
)

// Renderer writes a highlighted comparison.
type Renderer interface {
	Render(w io.Writer, segments []wordiff.Segment) error
}

// Options configures what renderers show.
type Options struct {
	// ShowRemoved includes removed text, marked as such. Off by default:
	// the comparison shows the transformed text with its additions.
	ShowRemoved bool
	// HighlightColor is the hex colour used for added text where the
	// format supports colour. Empty means DefaultHighlightColor.
	HighlightColor string
}

// String renders segments into a string.
func String(r Renderer, segments []wordiff.Segment) (string, error) {
	var b strings.Builder
	if err := r.Render(&b, segments); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Formats lists the names accepted by ByName.
var Formats = []string{"plain", "markdown", "html", "ansi", "json"}

// ByName returns the renderer for a format name.
func ByName(name string, opts Options) (Renderer, error) {
	switch strings.ToLower(name) {
	case "plain", "text":
		return &Plain{Options: opts}, nil
	case "markdown", "md":
		return &Markdown{Options: opts}, nil
	case "html":
		h, err := NewHTML(opts)
		if err != nil {
			return nil, err
		}
		return h, nil
	case "ansi", "color":
		return NewANSI(opts), nil
	case "json":
		return &JSON{Options: opts, Indent: "  "}, nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(Formats, ", "))
}

// runs prepares segments for marked-up output.
func runs(segments []wordiff.Segment, opts Options) []wordiff.Run {
	if !opts.ShowRemoved {
		segments = wordiff.Visible(segments)
	}
	return dropRemovedSpace(wordiff.TrimRuns(wordiff.Runs(segments)))
}

// dropRemovedSpace drops blank Removed runs that sit next to whitespace that
// is still written, so a removed space never widens the visible gap. A blank
// Removed run between two words is kept to separate them.
func dropRemovedSpace(rs []wordiff.Run) []wordiff.Run {
	out := rs[:0:0]
	for i, r := range rs {
		if r.Kind == wordiff.Removed && r.Blank() {
			prevSpace := len(out) > 0 && endsInSpace(out[len(out)-1].Text)
			nextSpace := i+1 < len(rs) && startsWithSpace(rs[i+1].Text)
			if r.Text == "" || prevSpace || nextSpace {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func startsWithSpace(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsSpace(r)
}

func endsInSpace(s string) bool {
	r, size := utf8.DecodeLastRuneInString(s)
	return size > 0 && unicode.IsSpace(r)
}

// markup writes runs through wrap, which is called only for non-blank
// changed runs. Blank changed runs are written unmarked.
func markup(w io.Writer, rs []wordiff.Run, wrap func(wordiff.Run) string, plain func(string) string) error {
	for _, r := range rs {
		var s string
		if r.Kind == wordiff.Same || r.Blank() {
			s = plain(r.Text)
		} else {
			s = wrap(r)
		}
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func identity(s string) string { return s }
