package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dacharyc/wordiff/internal/config"
	"github.com/dacharyc/wordiff/internal/transform"
)

// app holds state shared by the subcommands of one invocation.
type app struct {
	configPath string
	verbosity  int
	logFile    string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config

	newProvider func(transform.Config) (transform.Provider, error)
}

func newRootCmd() *cobra.Command {
	a := &app{newProvider: transform.New}

	cmd := &cobra.Command{
		Use:   "wordiff",
		Short: "Rewrite text and highlight what changed, word by word",
		Long: `wordiff compares an original text with a rewritten version and highlights
the words that were added. It can also send text to a humanizer backend or a
language model, keep a local history of rewrites, and re-render past results.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")

	cmd.AddCommand(
		newDiffCmd(a),
		newHumanizeCmd(a),
		newHistoryCmd(a),
		newConfigCmd(a),
		newModesCmd(),
	)
	return cmd
}

// setup loads configuration and configures logging.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Log.Verbosity = a.verbosity
	}
	if a.logFile != "" {
		cfg.Log.File = a.logFile
	}

	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, path)

	a.cfg = cfg
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
