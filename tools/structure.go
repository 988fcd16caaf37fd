package tools

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkozlov/promptpack-mcp/filter"
	"github.com/pkozlov/promptpack-mcp/tree"
)

// StructureArgs defines the input parameters for the promptpack_structure tool.
type StructureArgs struct {
	MaxDepth       int `json:"maxDepth,omitempty" jsonschema:"Maximum directory depth to render (default 3)"`
	MaxItemsPerDir int `json:"maxItemsPerDir,omitempty" jsonschema:"Maximum entries rendered per directory before the overflow line (default 15)"`
}

// StructureHandler holds the dependencies for the structure tool.
type StructureHandler struct {
	RootDir string
	Filter  *filter.Matcher
	Logger  *slog.Logger
}

// Handle processes a promptpack_structure request.
func (h *StructureHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StructureArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	options := tree.Options{
		MaxDepth:       args.MaxDepth,
		MaxItemsPerDir: args.MaxItemsPerDir,
		Filter:         h.Filter,
	}

	rendered := tree.Render(h.RootDir, options)
	output := fmt.Sprintf("Project: %s\n%s", filepath.Base(h.RootDir), rendered)

	elapsed := time.Since(start)
	h.Logger.Info("promptpack_structure",
		"maxDepth", args.MaxDepth,
		"maxItemsPerDir", args.MaxItemsPerDir,
		"elapsed", elapsed,
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}, nil, nil
}
