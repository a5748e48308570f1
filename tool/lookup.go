// Package tool exposes knowledge lookup to agents as the MCP tool
// "lookup_knowledge".
package tool

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Name is the registered tool name.
const Name = "lookup_knowledge"

const description = "Look up passages in the local knowledge base that are most relevant to a query. " +
	"Returns the matched passages, one per line."

// Service answers lookups; *service.Service implements it.
type Service interface {
	Lookup(ctx context.Context, query string, k int) (string, error)
	TopK() int
}

// Lookup handles lookup_knowledge calls.
type Lookup struct {
	service Service
	logger  logr.Logger
}

// New returns a lookup tool backed by service.
func New(service Service, logger logr.Logger) *Lookup {
	return &Lookup{service: service, logger: logger}
}

// Definition returns the MCP tool schema.
func (l *Lookup) Definition() mcp.Tool {
	return mcp.NewTool(Name,
		mcp.WithDescription(description),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("natural language question or keywords"),
		),
		mcp.WithNumber("k",
			mcp.Description(fmt.Sprintf("number of passages to return (default %d)", l.service.TopK())),
		),
	)
}

// Handle runs one lookup. Retrieval failures are reported as tool errors so
// the agent can continue.
func (l *Lookup) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	k := request.GetInt("k", l.service.TopK())
	l.logger.Info("lookup tool triggered", "query", query, "k", k)
	text, err := l.service.Lookup(ctx, query, k)
	if err != nil {
		l.logger.Error(err, "lookup failed", "query", query)
		return mcp.NewToolResultError(fmt.Sprintf("knowledge lookup failed: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

// NewServer returns an MCP server with the lookup tool registered.
func NewServer(lookup *Lookup, version string) *server.MCPServer {
	srv := server.NewMCPServer("kbvec", version, server.WithToolCapabilities(false))
	srv.AddTool(lookup.Definition(), lookup.Handle)
	return srv
}

// ServeStdio serves srv over stdin and stdout until the input closes.
func ServeStdio(srv *server.MCPServer) error {
	return server.ServeStdio(srv)
}
