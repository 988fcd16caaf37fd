package tools

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkozlov/promptpack-mcp/index"
	"github.com/pkozlov/promptpack-mcp/secrets"
)

const (
	// secretScanFileCap bounds how many files a single scan touches.
	secretScanFileCap = 80
	// secretFindingsPerFileCap bounds how many findings get reported per file.
	secretFindingsPerFileCap = 10
)

// SecretsArgs defines the input parameters for the promptpack_secrets tool.
type SecretsArgs struct {
	Paths []string `json:"paths,omitempty" jsonschema:"Relative file paths to scan. Omit to scan all indexed files (capped at 80)"`
}

// SecretsHandler holds the dependencies for the secrets tool.
type SecretsHandler struct {
	RootDir   string
	FileIndex *index.FileIndex
	Logger    *slog.Logger
}

// Handle processes a promptpack_secrets request.
func (h *SecretsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SecretsArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	paths := h.scanPaths(args.Paths)
	findings := secrets.ScanFiles(paths)
	output := h.formatReport(findings)

	elapsed := time.Since(start)
	h.Logger.Info("promptpack_secrets",
		"scanned", len(paths),
		"filesWithFindings", len(findings),
		"elapsed", elapsed,
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}, nil, nil
}

func (h *SecretsHandler) scanPaths(requested []string) []string {
	if len(requested) == 0 {
		files := h.FileIndex.AllFiles()
		if len(files) > secretScanFileCap {
			files = files[:secretScanFileCap]
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
			p = filepath.Join(h.RootDir, p)
		}
		paths = append(paths, p)
	}
	if len(paths) > secretScanFileCap {
		paths = paths[:secretScanFileCap]
	}
	return paths
}

func (h *SecretsHandler) formatReport(results []secrets.FileFindings) string {
	var builder strings.Builder
	builder.WriteString("🔐 SECRET SCAN REPORT\n")
	builder.WriteString(strings.Repeat("=", 60))
	builder.WriteString("\n")

	if len(results) == 0 {
		builder.WriteString("✅ No obvious secrets detected.\n")
		return builder.String()
	}

	for _, fileResult := range results {
		builder.WriteString(fmt.Sprintf("📄 %s\n", h.displayPath(fileResult.Path)))
		findings := fileResult.Findings
		if len(findings) > secretFindingsPerFileCap {
			findings = findings[:secretFindingsPerFileCap]
		}
		for _, finding := range findings {
			builder.WriteString(fmt.Sprintf("  • %s (hash:%s)\n", finding.Label, finding.Fingerprint))
		}
	}

	return builder.String()
}

func (h *SecretsHandler) displayPath(path string) string {
	rel, err := filepath.Rel(h.RootDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
