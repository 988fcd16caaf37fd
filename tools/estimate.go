package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkozlov/promptpack-mcp/token"
)

// EstimateArgs defines the input parameters for the promptpack_estimate tool.
type EstimateArgs struct {
	Text string `json:"text" jsonschema:"Text to estimate a token count for"`
}

// EstimateHandler holds the dependencies for the estimate tool.
type EstimateHandler struct {
	Logger *slog.Logger
}

// Handle processes a promptpack_estimate request.
func (h *EstimateHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args EstimateArgs) (*mcp.CallToolResult, any, error) {
	estimated := token.Estimate(args.Text)

	h.Logger.Info("promptpack_estimate", "chars", len(args.Text), "tokens", estimated)

	output := fmt.Sprintf("📏 Approx tokens: %s", token.FormatCount(estimated))

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}, nil, nil
}
