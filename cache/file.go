package cache

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Annotation marks a tagged region of a file's content (offsets in bytes).
type Annotation struct {
	Tag   string
	Start int
	End   int
}

// Entry is everything derived from a single file read. Entries are replaced
// wholesale on update, never partially mutated.
type Entry struct {
	Content     string
	Annotations []Annotation
	LineIndex   string // newline-separated line numbers, one per content line
}

// LineCount returns the number of lines in the cached content.
func (e Entry) LineCount() int {
	return strings.Count(e.Content, "\n") + 1
}

// Annotator computes annotations for freshly loaded content.
type Annotator func(path string, content string) []Annotation

// FileCache memoizes file load results keyed by absolute path, bounded by an
// LRU with DefaultCapacity entries unless configured otherwise.
type FileCache struct {
	lru      *LRU[string, Entry]
	annotate Annotator
}

// NewFileCache creates a file cache holding at most capacity entries.
func NewFileCache(capacity int) *FileCache {
	return &FileCache{lru: NewLRU[string, Entry](capacity)}
}

// SetAnnotator installs the hook that computes annotations on load.
func (fc *FileCache) SetAnnotator(fn Annotator) {
	fc.annotate = fn
}

// Load returns the cached entry for path, reading and caching the file on a
// miss. File bytes are decoded lossily: invalid UTF-8 sequences are dropped,
// a read never fails on encoding.
func (fc *FileCache) Load(path string) (Entry, error) {
	if entry, ok := fc.lru.Get(path); ok {
		return entry, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("reading file: %w", err)
	}

	content := strings.ToValidUTF8(string(data), "")
	entry := Entry{
		Content:   content,
		LineIndex: buildLineIndex(content),
	}
	if fc.annotate != nil {
		entry.Annotations = fc.annotate(path, content)
	}

	fc.lru.Set(path, entry)
	return entry, nil
}

// Invalidate drops the cached entry for path, forcing a re-read on next Load.
func (fc *FileCache) Invalidate(path string) {
	fc.lru.Remove(path)
}

// Clear empties the cache.
func (fc *FileCache) Clear() {
	fc.lru.Clear()
}

// Len returns the number of cached files.
func (fc *FileCache) Len() int {
	return fc.lru.Len()
}

// Capacity returns the maximum number of cached files.
func (fc *FileCache) Capacity() int {
	return fc.lru.Capacity()
}

// buildLineIndex precomputes the line-number gutter for content.
func buildLineIndex(content string) string {
	lineCount := strings.Count(content, "\n") + 1

	var builder strings.Builder
	for i := 1; i <= lineCount; i++ {
		if i > 1 {
			builder.WriteByte('\n')
		}
		builder.WriteString(strconv.Itoa(i))
	}
	return builder.String()
}
