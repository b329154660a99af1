package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"golang.design/x/clipboard"

	"github.com/dacharyc/wordiff/internal/history"
	"github.com/dacharyc/wordiff/internal/transform"
)

var log = commonlog.GetLogger("wordiff")

type humanizeFlags struct {
	renderFlags
	mode      string
	formality int
	audience  string
	verbosity string
	deep      bool
	provider  string
	copy      bool
	noHistory bool
}

func newHumanizeCmd(a *app) *cobra.Command {
	var f humanizeFlags

	cmd := &cobra.Command{
		Use:   "humanize [FILE]",
		Short: "Rewrite text with the configured provider and show what changed",
		Long: `Send text to the configured provider, print the rewrite with added words
highlighted, and save the result to history. Text is read from FILE, or from
standard input when FILE is omitted or "-".`,
		Example: `  wordiff humanize essay.txt
  echo "Utilize the aforementioned methodology." | wordiff humanize --mode vocabulary
  wordiff humanize --provider anthropic --audience academic --formality 80 essay.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			text, err := readInput(cmd, name)
			if err != nil {
				return err
			}

			req := transform.Request{Text: text}
			if req.Settings, err = f.settings(cmd, a.cfg.Defaults); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}

			tc := a.cfg.TransformConfig()
			if f.provider != "" {
				tc.Name = f.provider
			}
			provider, err := a.newProvider(tc)
			if err != nil {
				return err
			}

			resp, err := provider.Transform(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("transformation failed: %w", err)
			}

			if a.cfg.History.Enabled && !f.noHistory {
				if err := saveHistory(cmd, a.cfg.History.Path, resp); err != nil {
					log.Warningf("could not save history: %s", err)
				}
			}

			if f.copy {
				if err := copyText(resp.HumanizedText); err != nil {
					log.Warningf("could not copy to clipboard: %s", err)
				}
			}

			segments := a.cfg.Comparer().Compare(resp.OriginalText, resp.HumanizedText)
			return f.show(cmd, a.cfg, segments)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "transformation mode: "+choices(transform.Modes))
	cmd.Flags().IntVar(&f.formality, "formality", 0, "formality from 0 (casual) to 100 (formal)")
	cmd.Flags().StringVarP(&f.audience, "audience", "a", "", "target audience: "+choices(transform.Audiences))
	cmd.Flags().StringVar(&f.verbosity, "verbosity", "", "output length: "+choices(transform.Verbosities))
	cmd.Flags().BoolVar(&f.deep, "deep", true, "apply deeper humanization")
	cmd.Flags().StringVarP(&f.provider, "provider", "p", "", "provider: http, anthropic or openai (default from config)")
	cmd.Flags().BoolVarP(&f.copy, "copy", "c", false, "copy the rewritten text to the clipboard")
	cmd.Flags().BoolVar(&f.noHistory, "no-history", false, "do not save this transformation")
	return cmd
}

// settings overlays flags on the configured defaults.
func (f *humanizeFlags) settings(cmd *cobra.Command, s transform.Settings) (transform.Settings, error) {
	var err error
	if f.mode != "" {
		if s.Mode, err = transform.ParseMode(f.mode); err != nil {
			return s, err
		}
	}
	if f.audience != "" {
		if s.Audience, err = transform.ParseAudience(f.audience); err != nil {
			return s, err
		}
	}
	if f.verbosity != "" {
		if s.Verbosity, err = transform.ParseVerbosity(f.verbosity); err != nil {
			return s, err
		}
	}
	if cmd.Flags().Changed("formality") {
		s.Formality = f.formality
	}
	if cmd.Flags().Changed("deep") {
		s.DeepHumanization = f.deep
	}
	return s, nil
}

func saveHistory(cmd *cobra.Command, path string, resp *transform.Response) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Add(cmd.Context(), history.FromResponse(resp))
	if err != nil {
		return err
	}
	log.Infof("saved transformation %s", rec.ID)
	return nil
}

func copyText(text string) error {
	if err := clipboard.Init(); err != nil {
		return err
	}
	// The returned channel fires when another program takes the clipboard.
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func choices[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
