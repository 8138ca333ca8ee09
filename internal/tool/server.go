// SPDX-License-Identifier: Apache-2.0

// Package tool exposes redaction and restoration as MCP tools.
package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/disrpt/underscores/internal/runner"
)

// NewServer registers all tools on a new MCP server.
func NewServer(r *runner.Runner, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "disrpt-underscores", Version: version}, nil)
	tools := NewTools(r)
	mcp.AddTool(server, MetadataListCorpora, tools.ListCorpora)
	mcp.AddTool(server, MetadataRedactCorpus, tools.RedactCorpus)
	mcp.AddTool(server, MetadataRestoreCorpus, tools.RestoreCorpus)
	return server
}

// ServeStdio runs the server over stdin/stdout until ctx is done or the
// client disconnects.
func ServeStdio(ctx context.Context, r *runner.Runner, version string) error {
	return NewServer(r, version).Run(ctx, &mcp.StdioTransport{})
}
