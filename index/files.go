package index

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// FileIndex is an in-memory index of eligible project files, supporting
// glob-based selection of the paths fed into prompt assembly.
// It uses a map for O(1) lookups and a sorted slice for stable iteration.
type FileIndex struct {
	mu          sync.RWMutex
	files       map[string]*ProjectFile // key: relative path (forward slashes)
	sortedPaths []string
}

// NewFileIndex creates a new empty file index.
func NewFileIndex() *FileIndex {
	return &FileIndex{
		files:       make(map[string]*ProjectFile),
		sortedPaths: make([]string, 0),
	}
}

// AddFile adds or updates a file in the index.
func (fi *FileIndex) AddFile(file *ProjectFile) {
	fi.mu.Lock()
	defer fi.mu.Unlock()

	_, exists := fi.files[file.RelativePath]
	fi.files[file.RelativePath] = file

	if !exists {
		fi.sortedPaths = append(fi.sortedPaths, file.RelativePath)
		sort.Strings(fi.sortedPaths)
	}
}

// RemoveFile removes a file from the index by its relative path.
func (fi *FileIndex) RemoveFile(relativePath string) {
	fi.mu.Lock()
	defer fi.mu.Unlock()

	if _, exists := fi.files[relativePath]; !exists {
		return
	}

	delete(fi.files, relativePath)

	idx := sort.SearchStrings(fi.sortedPaths, relativePath)
	if idx < len(fi.sortedPaths) && fi.sortedPaths[idx] == relativePath {
		fi.sortedPaths = append(fi.sortedPaths[:idx], fi.sortedPaths[idx+1:]...)
	}
}

// GetFile returns the ProjectFile for a relative path, or nil if not found.
func (fi *FileIndex) GetFile(relativePath string) *ProjectFile {
	fi.mu.RLock()
	defer fi.mu.RUnlock()
	return fi.files[relativePath]
}

// FileCount returns the number of indexed files.
func (fi *FileIndex) FileCount() int {
	fi.mu.RLock()
	defer fi.mu.RUnlock()
	return len(fi.files)
}

// TotalSizeBytes returns the total size of all indexed files.
func (fi *FileIndex) TotalSizeBytes() int64 {
	fi.mu.RLock()
	defer fi.mu.RUnlock()

	var totalSize int64
	for _, file := range fi.files {
		totalSize += file.SizeBytes
	}
	return totalSize
}

// LanguageCounts returns a map of language -> file count.
func (fi *FileIndex) LanguageCounts() map[string]int {
	fi.mu.RLock()
	defer fi.mu.RUnlock()

	counts := make(map[string]int)
	for _, file := range fi.files {
		counts[file.Language]++
	}
	return counts
}

// FileSearchResult holds a file match from a glob search.
type FileSearchResult struct {
	File *ProjectFile
}

// SearchByGlob returns files matching a doublestar glob pattern, matched
// against relative paths (forward slashes), in sorted path order.
func (fi *FileIndex) SearchByGlob(pattern string, maxResults int) ([]FileSearchResult, error) {
	fi.mu.RLock()
	defer fi.mu.RUnlock()

	if maxResults <= 0 {
		maxResults = 50
	}

	pattern = strings.ReplaceAll(pattern, "\\", "/")

	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	var results []FileSearchResult
	for _, path := range fi.sortedPaths {
		if len(results) >= maxResults {
			break
		}

		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			continue
		}
		if matched {
			if file, ok := fi.files[path]; ok {
				results = append(results, FileSearchResult{File: file})
			}
		}
	}

	return results, nil
}

// AllFiles returns all indexed files in sorted path order. This is the file
// list a whole-project assembly or secret scan starts from.
func (fi *FileIndex) AllFiles() []*ProjectFile {
	fi.mu.RLock()
	defer fi.mu.RUnlock()

	result := make([]*ProjectFile, 0, len(fi.sortedPaths))
	for _, path := range fi.sortedPaths {
		if file, ok := fi.files[path]; ok {
			result = append(result, file)
		}
	}
	return result
}

// Clear removes all files from the index.
func (fi *FileIndex) Clear() {
	fi.mu.Lock()
	defer fi.mu.Unlock()

	fi.files = make(map[string]*ProjectFile)
	fi.sortedPaths = make([]string, 0)
}
