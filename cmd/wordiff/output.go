package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dacharyc/wordiff"
	"github.com/dacharyc/wordiff/internal/config"
	"github.com/dacharyc/wordiff/render"
)

// renderFlags are shared by every command that prints a comparison.
type renderFlags struct {
	format      string
	showRemoved bool
	stats       bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: auto, "+strings.Join(render.Formats, ", ")+" (default from config)")
	cmd.Flags().BoolVar(&f.showRemoved, "show-removed", false, "also show removed words")
	cmd.Flags().BoolVar(&f.stats, "stats", false, "print change counts to stderr")
}

// apply resolves flags against the loaded config.
func (f *renderFlags) apply(cmd *cobra.Command, cfg *config.Config) (render.Options, string) {
	opts := cfg.RenderOptions()
	if cmd.Flags().Changed("show-removed") {
		opts.ShowRemoved = f.showRemoved
	}
	format := cfg.Render.Format
	if f.format != "" {
		format = f.format
	}
	return opts, format
}

// show renders segments to the command's output and the summary to stderr.
func (f *renderFlags) show(cmd *cobra.Command, cfg *config.Config, segments []wordiff.Segment) error {
	opts, format := f.apply(cmd, cfg)
	out := cmd.OutOrStdout()

	r, err := renderer(out, format, opts)
	if err != nil {
		return err
	}
	if err := r.Render(out, segments); err != nil {
		return err
	}
	if format != "json" {
		fmt.Fprintln(out)
	}

	writeSummary(cmd.ErrOrStderr(), wordiff.Stats(segments), f.stats)
	return nil
}

// renderer picks the renderer for out, resolving "auto" by checking whether
// out is a terminal.
func renderer(out io.Writer, format string, opts render.Options) (render.Renderer, error) {
	if format == "" || format == "auto" {
		format = "plain"
		if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			format = "ansi"
		}
	}
	return render.ByName(format, opts)
}

// printer formats numbers for the user's locale.
func printer() *message.Printer {
	tag := language.English
	if lang := os.Getenv("LANG"); lang != "" {
		lang, _, _ = strings.Cut(lang, ".")
		if t, err := language.Parse(lang); err == nil {
			tag = t
		}
	}
	return message.NewPrinter(tag)
}

// writeSummary prints the character count and, when detailed, change counts.
func writeSummary(w io.Writer, s wordiff.Summary, detailed bool) {
	p := printer()
	p.Fprintf(w, "%d characters\n", s.Characters)
	if detailed {
		p.Fprintf(w, "%d words added, %d removed, %d unchanged (%d change regions, %.0f%% new)\n",
			s.AddedWords, s.RemovedWords, s.SameWords, s.ChangeRegions, s.ChangeRatio()*100)
	}
}
