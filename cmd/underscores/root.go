// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/disrpt/underscores/internal/layout"
	"github.com/disrpt/underscores/internal/logger"
	"github.com/disrpt/underscores/internal/runner"
)

type options struct {
	mode         string
	configPath   string
	dataRoot     string
	debugFile    string
	strictDocIDs bool
	raw          map[string]string
	logLevel     string
	logJSON      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "underscores [corpus|all]",
		Short: "Redact or restore licensed text in underscored corpus files",
		Long: "Handles corpora whose underlying text is licensed (e.g. LDC data) and cannot be posted online.\n" +
			"Mode 'del' replaces token, lemma and sentence text with underscores; mode 'add' restores it\n" +
			"from your copy of the licensed raw data.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogger(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := layout.AllCorpora
			if len(args) == 1 {
				selector = args[0]
			}
			return run(cmd.Context(), opts, selector)
		},
	}
	cmd.ValidArgsFunction = func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		cfg, err := layout.Load(opts.configPath)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return append(cfg.Names(), layout.AllCorpora), cobra.ShellCompDirectiveNoFileComp
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.mode, "mode", "m", "add", "use 'add' to restore data and 'del' to replace text with underscores")
	flags.StringToStringVar(&opts.raw, "raw", nil, "raw data directory per corpus, e.g. --raw pdtb=/ldc/treebank_2/raw/wsj (prompted for when missing)")
	addConfigFlags(cmd, opts)

	cmd.AddCommand(newServeCmd(opts))
	return cmd
}

func addConfigFlags(cmd *cobra.Command, opts *options) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "corpus layout file (defaults to the built-in layout)")
	pf.StringVar(&opts.dataRoot, "data-root", "", "directory holding the corpus data directories")
	pf.StringVar(&opts.debugFile, "debug-file", "", "where to dump source and restored text on a length mismatch")
	pf.BoolVar(&opts.strictDocIDs, "strict-doc-ids", false, "fail when two raw files map to the same document id")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.BoolVar(&opts.logJSON, "log-json", false, "log as JSON")
}

func setupLogger(_ *cobra.Command, opts *options) {
	cfg := logger.DefaultConfig()
	cfg.Level = logger.ParseLevel(opts.logLevel)
	cfg.JSON = opts.logJSON
	logger.SetDefault(logger.NewLogger(cfg))
}

// loadConfig applies command-line overrides to the layout.
func loadConfig(opts *options) (*layout.Config, error) {
	cfg, err := layout.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.dataRoot != "" {
		cfg.DataRoot = opts.dataRoot
	}
	if opts.debugFile != "" {
		cfg.DebugFile = opts.debugFile
	}
	if opts.strictDocIDs {
		cfg.StrictDocIDs = true
	}
	return cfg, nil
}

func run(ctx context.Context, opts *options, selector string) error {
	log := logger.FromContext(ctx)
	mode, err := runner.ParseMode(opts.mode)
	if err != nil {
		return report(log, err)
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return report(log, err)
	}

	r := runner.New(cfg)
	outcomes, err := r.Run(ctx, selector, mode, rawPathResolver(opts.raw))
	for _, o := range outcomes {
		if o.Err == nil {
			log.Info("corpus done", "corpus", o.Corpus, "files", len(o.Report.Files))
		}
	}
	if err != nil {
		return report(log, err)
	}
	return nil
}

func report(log logger.Logger, err error) error {
	for _, line := range strings.Split(err.Error(), "\n") {
		log.Error(line)
	}
	return fmt.Errorf("underscores: %w", err)
}
