package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dacharyc/wordiff"
)

type diffFlags struct {
	renderFlags
	lookahead int
	empty     string
}

func newDiffCmd(a *app) *cobra.Command {
	var f diffFlags

	cmd := &cobra.Command{
		Use:   "diff ORIGINAL TRANSFORMED",
		Short: "Compare two texts word by word",
		Long: `Compare two files word by word and highlight what TRANSFORMED adds.
Use "-" for either argument to read it from standard input.`,
		Example: `  wordiff diff draft.txt rewrite.txt
  wordiff diff --format markdown --show-removed draft.txt rewrite.txt
  pbpaste | wordiff diff draft.txt -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" && args[1] == "-" {
				return fmt.Errorf("only one argument can be read from standard input")
			}

			original, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			transformed, err := readInput(cmd, args[1])
			if err != nil {
				return err
			}

			cmp, err := f.comparer(cmd, a)
			if err != nil {
				return err
			}
			return f.show(cmd, a.cfg, cmp.Compare(original, transformed))
		},
	}

	f.register(cmd)
	cmd.Flags().IntVar(&f.lookahead, "lookahead", wordiff.DefaultLookahead, "tokens to search ahead before treating a mismatch as a substitution")
	cmd.Flags().StringVar(&f.empty, "empty", "", "empty input policy: skip or align (default from config)")
	return cmd
}

// comparer builds the configured Comparer with flag overrides.
func (f *diffFlags) comparer(cmd *cobra.Command, a *app) (*wordiff.Comparer, error) {
	cmp := a.cfg.Comparer()
	if cmd.Flags().Changed("lookahead") {
		if f.lookahead < 0 {
			return nil, fmt.Errorf("--lookahead must not be negative")
		}
		cmp.Options = []wordiff.Option{wordiff.WithLookahead(f.lookahead)}
	}
	if f.empty != "" {
		policy, err := wordiff.ParseEmptyPolicy(f.empty)
		if err != nil {
			return nil, err
		}
		cmp.EmptyInput = policy
	}
	return cmp, nil
}

// readInput reads a file, or standard input for "-".
func readInput(cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}
