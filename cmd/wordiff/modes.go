package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dacharyc/wordiff/internal/transform"
)

func newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List transformation modes, audiences and verbosities",
		Args:  cobra.NoArgs,
		// Needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

			fmt.Fprintln(tw, "MODE\tLABEL\tDESCRIPTION")
			for _, m := range transform.Modes {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m, m.Label(), m.Description())
			}
			fmt.Fprintln(tw)

			fmt.Fprintln(tw, "AUDIENCE\tLABEL")
			for _, au := range transform.Audiences {
				fmt.Fprintf(tw, "%s\t%s\n", au, au.Label())
			}
			fmt.Fprintln(tw)

			fmt.Fprintln(tw, "VERBOSITY")
			for _, v := range transform.Verbosities {
				fmt.Fprintln(tw, v)
			}
			return tw.Flush()
		},
	}
}
