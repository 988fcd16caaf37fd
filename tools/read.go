package tools

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkozlov/promptpack-mcp/cache"
)

// ReadArgs defines the input parameters for the promptpack_read tool.
type ReadArgs struct {
	FilePath string `json:"filePath" jsonschema:"Relative file path to read (e.g. src/main.go)"`
}

// ReadHandler holds the dependencies for the read tool.
type ReadHandler struct {
	RootDir string
	Files   *cache.FileCache
	Logger  *slog.Logger
}

// Handle processes a promptpack_read request. Content comes through the file
// cache, so repeated reads of the same file do not touch disk.
func (h *ReadHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ReadArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.FilePath == "" {
		h.Logger.Warn("promptpack_read called with empty filePath")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: filePath parameter is required"}},
			IsError: true,
		}, nil, nil
	}

	path := args.FilePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(h.RootDir, path)
	}

	entry, err := h.Files.Load(path)
	if err != nil {
		h.Logger.Info("promptpack_read failed", "filePath", args.FilePath, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Cannot read file %s: %v", args.FilePath, err)}},
			IsError: true,
		}, nil, nil
	}

	elapsed := time.Since(start)
	h.Logger.Info("promptpack_read", "filePath", args.FilePath, "lines", entry.LineCount(), "elapsed", elapsed)

	output := FormatFileContent(args.FilePath, entry.Content)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}, nil, nil
}
