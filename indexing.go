package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/pkozlov/promptpack-mcp/cache"
	"github.com/pkozlov/promptpack-mcp/filter"
	"github.com/pkozlov/promptpack-mcp/index"
	"github.com/pkozlov/promptpack-mcp/language"
	"github.com/pkozlov/promptpack-mcp/watcher"
)

// performIndexing walks the root directory and indexes all eligible files.
// Returns the number of files indexed and total bytes processed.
func performIndexing(
	rootDir string,
	fileIndex *index.FileIndex,
	contentIndex *index.ContentIndex,
	matcher *filter.Matcher,
	logger *slog.Logger,
) (int, int64) {
	var indexedCount int
	var totalSize int64
	var mu sync.Mutex

	// Use a bounded worker pool for parallel file reading
	const workerCount = 8
	type indexJob struct {
		path    string
		relPath string
		info    os.FileInfo
	}
	jobs := make(chan indexJob, 100)

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if err := indexSingleFile(job.path, job.relPath, job.info, fileIndex, contentIndex); err != nil {
					logger.Debug("skipped file", "path", job.relPath, "error", err)
					continue
				}
				mu.Lock()
				indexedCount++
				totalSize += job.info.Size()
				mu.Unlock()
			}
		}()
	}

	// Walk directory tree
	filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != rootDir && matcher.ShouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isEligibleFile(path, matcher) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if matcher.IsFileTooLarge(info.Size()) {
			return nil
		}
		relPath, _ := filepath.Rel(rootDir, path)
		relPath = filepath.ToSlash(relPath)
		jobs <- indexJob{path: path, relPath: relPath, info: info}
		return nil
	})

	close(jobs)
	wg.Wait()
	return indexedCount, totalSize
}

// isEligibleFile applies the full filtering policy to one file path: ignore
// rules plus the extension-inclusion and hidden-file rules.
func isEligibleFile(path string, matcher *filter.Matcher) bool {
	if matcher.ShouldIgnore(path) {
		return false
	}
	return matcher.IncludeFile(filepath.Base(path))
}

// indexSingleFile reads and indexes one file into both indexes.
func indexSingleFile(
	absolutePath string,
	relativePath string,
	info os.FileInfo,
	fileIndex *index.FileIndex,
	contentIndex *index.ContentIndex,
) error {
	// Read file content with retry for Windows file locking
	content, err := readFileWithRetry(absolutePath)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	// Skip binary files
	if language.IsBinaryContent(content) {
		return fmt.Errorf("binary file")
	}

	contentStr := string(content)
	lineCount := strings.Count(contentStr, "\n") + 1
	lang := language.DetectLanguage(absolutePath)

	fileIndex.AddFile(&index.ProjectFile{
		Path:         absolutePath,
		RelativePath: relativePath,
		Language:     lang,
		SizeBytes:    info.Size(),
		ModTime:      info.ModTime(),
		LineCount:    lineCount,
	})

	if err := contentIndex.IndexFile(relativePath, contentStr, lang); err != nil {
		return fmt.Errorf("indexing content: %w", err)
	}

	return nil
}

// readFileWithRetry attempts to read a file, retrying once after a short delay
// if the file is locked (common on Windows when editors are saving).
func readFileWithRetry(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Retry after 50ms for Windows file locking
		time.Sleep(50 * time.Millisecond)
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

// handleWatcherEvents processes debounced file system events, keeping the
// indexes and the assembler's file cache in step with the working tree. Cached
// file contents are invalidated on every change, so the next assembled prompt
// rereads from disk.
func handleWatcherEvents(
	fileWatcher *watcher.Watcher,
	rootDir string,
	fileIndex *index.FileIndex,
	contentIndex *index.ContentIndex,
	fileCache *cache.FileCache,
	matcher *filter.Matcher,
	logger *slog.Logger,
) {
	for events := range fileWatcher.Events() {
		for _, event := range events {
			relPath, _ := filepath.Rel(rootDir, event.Path)
			relPath = filepath.ToSlash(relPath)

			switch event.Op {
			case watcher.OpRemove, watcher.OpRename:
				fileIndex.RemoveFile(relPath)
				contentIndex.RemoveFile(relPath)
				fileCache.Invalidate(event.Path)
				logger.Debug("removed from index", "path", relPath, "op", event.Op)

			case watcher.OpCreate, watcher.OpWrite:
				fileCache.Invalidate(event.Path)

				// An edit to an ignore file changes the filtering policy
				baseName := filepath.Base(event.Path)
				if baseName == ".gitignore" || baseName == ".promptignore" {
					matcher.Reload()
					logger.Info("reloaded ignore rules", "trigger", baseName)
					continue
				}

				if !isEligibleFile(event.Path, matcher) {
					continue
				}

				info, err := os.Stat(event.Path)
				if err != nil {
					continue
				}
				if info.IsDir() {
					continue
				}
				if matcher.IsFileTooLarge(info.Size()) {
					continue
				}

				if err := indexSingleFile(event.Path, relPath, info, fileIndex, contentIndex); err != nil {
					logger.Debug("skipped file update", "path", relPath, "error", err)
					continue
				}
				logger.Debug("updated index", "path", relPath, "op", event.Op)
			}
		}
	}
}
