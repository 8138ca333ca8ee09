// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/disrpt/underscores/internal/logger"
	"github.com/disrpt/underscores/internal/runner"
	"github.com/disrpt/underscores/internal/tool"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the redact and restore tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.FromContext(cmd.Context())
			cfg, err := loadConfig(opts)
			if err != nil {
				return report(log, err)
			}
			log.Info("serving MCP tools on stdio", "corpora", len(cfg.Corpora))
			if err := tool.ServeStdio(cmd.Context(), runner.New(cfg), version); err != nil {
				return report(log, err)
			}
			return nil
		},
	}
}
