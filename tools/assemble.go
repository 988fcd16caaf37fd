package tools

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkozlov/promptpack-mcp/assemble"
	"github.com/pkozlov/promptpack-mcp/index"
)

// DefaultProjectFileCap limits how many indexed files an assemble call packs
// when no explicit path list is given.
const DefaultProjectFileCap = 50

// AssembleArgs defines the input parameters for the promptpack_assemble tool.
type AssembleArgs struct {
	Paths            []string `json:"paths,omitempty" jsonschema:"Relative file paths to include, in order. Omit to pack all indexed files (capped at 50)"`
	Template         string   `json:"template,omitempty" jsonschema:"Prompt template: Standard, Debug, Review or Refactor (default Standard)"`
	IncludeStructure *bool    `json:"includeStructure,omitempty" jsonschema:"Include the project structure tree (default true)"`
	StripComments    bool     `json:"stripComments,omitempty" jsonschema:"Strip comments from file contents before packing"`
	MaxFileChars     int      `json:"maxFileChars,omitempty" jsonschema:"Per-file character cap before truncation (default 10000, -1 for unlimited)"`
	TokenBudget      int      `json:"tokenBudget,omitempty" jsonschema:"Approximate token budget for the whole prompt (0 for unbounded, files that do not fit are omitted)"`
}

// AssembleHandler holds the dependencies for the assemble tool.
type AssembleHandler struct {
	Assembler *assemble.Assembler
	Runner    *assemble.Runner
	FileIndex *index.FileIndex
	Logger    *slog.Logger
}

// Handle processes a promptpack_assemble request. Only one assembly runs at a
// time: concurrent calls get a busy notice and requests that were superseded
// by a newer one report that instead of stale output.
func (h *AssembleHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args AssembleArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	paths := h.resolvePaths(args.Paths)

	cfg := assemble.Config{
		IncludeStructure: true,
		StripComments:    args.StripComments,
		Template:         args.Template,
		MaxFileChars:     assemble.DefaultMaxFileChars,
	}
	if args.IncludeStructure != nil {
		cfg.IncludeStructure = *args.IncludeStructure
	}
	switch {
	case args.MaxFileChars > 0:
		cfg.MaxFileChars = args.MaxFileChars
	case args.MaxFileChars < 0:
		cfg.MaxFileChars = 0 // unlimited
	}

	requestToken := h.Runner.Issue()
	result, err := h.Runner.Run(requestToken, func() assemble.Result {
		if args.TokenBudget > 0 {
			return h.Assembler.AssembleBudgeted(paths, cfg, args.TokenBudget)
		}
		return h.Assembler.Assemble(paths, cfg)
	})
	switch {
	case errors.Is(err, assemble.ErrBusy):
		h.Logger.Info("promptpack_assemble busy", "files", len(paths))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "A prompt is already being generated. Please wait."}},
		}, nil, nil
	case errors.Is(err, assemble.ErrSuperseded):
		h.Logger.Info("promptpack_assemble superseded", "files", len(paths))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Prompt generation was superseded by a newer request."}},
		}, nil, nil
	}

	elapsed := time.Since(start)
	h.Logger.Info("promptpack_assemble",
		"files", len(paths),
		"included", result.IncludedFiles,
		"omitted", result.OmittedFiles,
		"status", result.Status,
		"elapsed", elapsed,
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: result.Text}},
	}, nil, nil
}

// resolvePaths turns the request path list into absolute paths, falling back
// to the first DefaultProjectFileCap indexed files when none were given.
func (h *AssembleHandler) resolvePaths(requested []string) []string {
	if len(requested) == 0 {
		files := h.FileIndex.AllFiles()
		if len(files) > DefaultProjectFileCap {
			files = files[:DefaultProjectFileCap]
		}
		paths := make([]string, 0, len(files))
		for _, file := range files {
			paths = append(paths, file.Path)
		}
		return paths
	}

	paths := make([]string, 0, len(requested))
	for _, p := range requested {
		if !filepath.IsAbs(p) {
			p = filepath.Join(h.Assembler.RootDir, p)
		}
		paths = append(paths, p)
	}
	return paths
}
