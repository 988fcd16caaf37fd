package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkozlov/promptpack-mcp/tools"
)

// Handlers collects the tool handlers the server registers.
type Handlers struct {
	Assemble  *tools.AssembleHandler
	Structure *tools.StructureHandler
	Secrets   *tools.SecretsHandler
	Estimate  *tools.EstimateHandler
	Read      *tools.ReadHandler
	Search    *tools.SearchHandler
	Files     *tools.FilesHandler
	Status    *tools.StatusHandler
	Reindex   *tools.ReindexHandler
}

// Setup creates and configures the MCP server with all tool registrations.
func Setup(handlers Handlers) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "promptpack-mcp",
			Version: "0.1.0",
		},
		&mcp.ServerOptions{
			Instructions: `This server assembles AI-ready prompts from project files. It keeps an in-memory index of the project, so its tools are faster than scanning the filesystem on every call.

Typical flow:
- Use promptpack_files or promptpack_search to pick candidate files
- Use promptpack_assemble to pack them into a single prompt with a template, project tree, and optional token budget
- Use promptpack_secrets before sharing a prompt to check for credential leaks
- Use promptpack_estimate to size a text against a model context window
- The index and file cache update automatically when files change (via filesystem watcher)`,
		},
	)

	// Register promptpack_assemble tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "promptpack_assemble",
		Description: `Assemble a prompt from project files. The output starts with a template header (Standard, Debug, Review or Refactor), optionally a project structure tree, then each file as a fenced code block, then the template footer.

Options:
  - paths: relative file paths to include, in order. Omit to pack all indexed files (capped at 50).
  - tokenBudget: approximate token ceiling. Files that do not fit are omitted whole and counted in a summary line.
  - stripComments: remove comments from file contents before packing.
  - maxFileChars: per-file character cap before truncation (default 10000, -1 for unlimited).`,
	}, handlers.Assemble.Handle)

	// Register promptpack_structure tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "promptpack_structure",
		Description: "Render the project directory tree with the same filtering the assembler uses (depth default 3, 15 entries per directory).",
	}, handlers.Structure.Handle)

	// Register promptpack_secrets tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "promptpack_secrets",
		Description: "Scan project files for credential-like content (API keys, tokens, private keys, database URLs). Findings report a label and a hash fingerprint, never the matched text.",
	}, handlers.Secrets.Handle)

	// Register promptpack_estimate tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "promptpack_estimate",
		Description: "Estimate the token count of a text using the same approximation the assembler budgets with (about 4 characters per token).",
	}, handlers.Estimate.Handle)

	// Register promptpack_read tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "promptpack_read",
		Description: "Read a project file with numbered lines. Served from the bounded file cache, so repeated reads do not touch disk.",
	}, handlers.Read.Handle)

	// Register promptpack_search tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "promptpack_search",
		Description: `Search file contents using full-text indexed search. Useful for finding the files worth packing into a prompt.

Query formats:
  - Plain text: word-level matching (e.g., "handleRequest")
  - "quoted text": exact phrase matching (e.g., "\"func main\"")
  - /regex/: regular expression matching (e.g., "/func\s+\w+Handler/")

Filtering:
  - filePath: exact relative path to search in a single file (e.g., "src/main.go"). Overrides fileGlob.
  - fileGlob: glob pattern to filter by file type (e.g., "**/*.go").`,
	}, handlers.Search.Handle)

	// Register promptpack_files tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "promptpack_files",
		Description: `Find files by glob pattern.

Pattern examples:
  - "**/*.go" - all Go files
  - "src/**/*.ts" - TypeScript files under src/
  - "**/test_*.py" - Python test files
  - "*.json" - JSON files in root only`,
	}, handlers.Files.Handle)

	// Register promptpack_status tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "promptpack_status",
		Description: "Show server status: indexed file count, size, languages, file cache utilization, memory usage, and uptime.",
	}, handlers.Status.Handle)

	// Register promptpack_reindex tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "promptpack_reindex",
		Description: "Force a full re-index of the project. Rebuilds the indexes, reloads ignore rules, and clears the file cache.",
	}, handlers.Reindex.Handle)

	return mcpServer
}
