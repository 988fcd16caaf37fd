package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkozlov/promptpack-mcp/assemble"
	"github.com/pkozlov/promptpack-mcp/cache"
	"github.com/pkozlov/promptpack-mcp/filter"
	"github.com/pkozlov/promptpack-mcp/index"
	"github.com/pkozlov/promptpack-mcp/register"
	"github.com/pkozlov/promptpack-mcp/server"
	"github.com/pkozlov/promptpack-mcp/tools"
	"github.com/pkozlov/promptpack-mcp/watcher"
)

// excludePatterns is a repeatable CLI flag for custom ignore patterns.
type excludePatterns []string

func (e *excludePatterns) String() string { return strings.Join(*e, ", ") }
func (e *excludePatterns) Set(value string) error {
	*e = append(*e, value)
	return nil
}

func main() {
	// "promptpack-mcp register project|user ..." installs the server into an
	// MCP client config instead of serving.
	if len(os.Args) > 1 && os.Args[1] == "register" {
		serverName := register.DeriveServerName(os.Args[0])
		configPath, err := register.Run(serverName, os.Args[2:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registered %q in %s\n", serverName, configPath)
		return
	}

	// Parse CLI flags
	var rootDir string
	var maxFileSizeBytes int64
	var syncIntervalSeconds int
	var logLevel string
	var logFile string
	var excludes excludePatterns

	flag.StringVar(&rootDir, "root", "", "Project root directory (default: current working directory)")
	flag.Var(&excludes, "exclude", "Extra ignore pattern (repeatable)")
	flag.Int64Var(&maxFileSizeBytes, "max-file-size", 1024*1024, "Maximum file size in bytes (default: 1MB)")
	flag.IntVar(&syncIntervalSeconds, "sync-interval", 300, "Index consistency sweep interval in seconds (0 disables)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (default: promptpack-mcp.log in the root directory)")
	flag.Parse()

	// Resolve root directory
	if rootDir == "" {
		var err error
		rootDir, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
			os.Exit(1)
		}
	}
	rootDir, _ = filepath.Abs(rootDir)

	if logFile == "" {
		logFile = filepath.Join(rootDir, "promptpack-mcp.log")
	}

	// Setup logger (always to file or stderr, never to stdout - stdout is for MCP stdio)
	logger := setupLogger(logLevel, logFile)

	logger.Info("starting promptpack-mcp",
		"root", rootDir,
		"maxFileSize", maxFileSizeBytes,
		"excludes", excludes.String(),
	)

	startTime := time.Now()

	// Shared filtering policy: default exclusions, included extensions,
	// .gitignore/.promptignore, custom CLI patterns, size cap
	matcher := filter.NewMatcher(filter.Options{
		RootDir:          rootDir,
		CustomPatterns:   excludes,
		MaxFileSizeBytes: maxFileSizeBytes,
	})

	// Bounded LRU cache backing prompt assembly and the read tool
	fileCache := cache.NewFileCache(cache.DefaultCapacity)

	// Create indexes
	fileIndex := index.NewFileIndex()
	contentIndex, err := index.NewContentIndex()
	if err != nil {
		logger.Error("failed to create content index", "error", err)
		os.Exit(1)
	}
	defer contentIndex.Close()

	// Perform initial indexing
	indexedCount, totalSize := performIndexing(rootDir, fileIndex, contentIndex, matcher, logger)
	indexDuration := time.Since(startTime)
	logger.Info("initial indexing complete",
		"files", indexedCount,
		"totalSize", totalSize,
		"duration", indexDuration,
	)

	// Start file watcher: keeps indexes current and drops cached file contents
	// the moment the underlying file changes
	fileWatcher, err := watcher.NewWatcher(rootDir, matcher, logger)
	if err != nil {
		logger.Warn("failed to start file watcher, continuing without live updates", "error", err)
	} else {
		go fileWatcher.Start()
		go handleWatcherEvents(fileWatcher, rootDir, fileIndex, contentIndex, fileCache, matcher, logger)
		defer fileWatcher.Close()
	}

	// Periodic consistency sweep behind the watcher
	if syncIntervalSeconds > 0 {
		syncStop := make(chan struct{})
		go runPeriodicSync(syncIntervalSeconds, rootDir, fileIndex, contentIndex, fileCache, matcher, logger, syncStop)
		defer close(syncStop)
	}

	assembler := &assemble.Assembler{
		RootDir: rootDir,
		Files:   fileCache,
		Filter:  matcher,
		Logger:  logger,
	}

	// Create tool handlers
	handlers := server.Handlers{
		Assemble: &tools.AssembleHandler{
			Assembler: assembler,
			Runner:    &assemble.Runner{},
			FileIndex: fileIndex,
			Logger:    logger,
		},
		Structure: &tools.StructureHandler{RootDir: rootDir, Filter: matcher, Logger: logger},
		Secrets:   &tools.SecretsHandler{RootDir: rootDir, FileIndex: fileIndex, Logger: logger},
		Estimate:  &tools.EstimateHandler{Logger: logger},
		Read:      &tools.ReadHandler{RootDir: rootDir, Files: fileCache, Logger: logger},
		Search:    &tools.SearchHandler{ContentIndex: contentIndex, Logger: logger},
		Files:     &tools.FilesHandler{FileIndex: fileIndex, Logger: logger},
		Status: &tools.StatusHandler{
			FileIndex:    fileIndex,
			ContentIndex: contentIndex,
			FileCache:    fileCache,
			StartTime:    startTime,
			RootDir:      rootDir,
			Logger:       logger,
		},
		Reindex: &tools.ReindexHandler{
			Logger: logger,
			DoReindex: func() (int, int64, string, error) {
				start := time.Now()
				fileIndex.Clear()
				if err := contentIndex.Clear(); err != nil {
					return 0, 0, "", fmt.Errorf("clearing content index: %w", err)
				}
				fileCache.Clear()
				// Reload ignore rules in case .gitignore or .promptignore changed
				matcher.Reload()
				count, size := performIndexing(rootDir, fileIndex, contentIndex, matcher, logger)
				elapsed := time.Since(start).Round(time.Millisecond).String()
				return count, size, elapsed, nil
			},
		},
	}

	// Setup and run MCP server on stdio
	mcpServer := server.Setup(handlers)

	logger.Info("MCP server starting on stdio")
	if err := mcpServer.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}

// setupLogger creates an slog.Logger writing to stderr or a file.
func setupLogger(level string, logFile string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var writer *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v, falling back to stderr\n", logFile, err)
			writer = os.Stderr
		} else {
			writer = f
		}
	} else {
		writer = os.Stderr
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}
