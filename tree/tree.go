// Package tree renders a depth- and item-limited ASCII view of a directory,
// applying the shared project filters. Used standalone and embedded in
// assembled prompts.
package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultMaxDepth and DefaultMaxItemsPerDir are the limits used for the
// structure section of assembled prompts.
const (
	DefaultMaxDepth       = 3
	DefaultMaxItemsPerDir = 15
)

// EntryFilter decides which directory entries appear in the tree. The
// renderer applies the policy, it does not own it.
type EntryFilter interface {
	ExcludeName(name string) bool
	IncludeFile(name string) bool
}

// Options configures a render.
type Options struct {
	MaxDepth       int
	MaxItemsPerDir int
	Filter         EntryFilter
}

// fileGlyphs maps extensions to the marker shown before file names.
var fileGlyphs = map[string]string{
	".py":   "🐍",
	".js":   "📜",
	".jsx":  "📜",
	".ts":   "📘",
	".tsx":  "📘",
	".go":   "🐹",
	".rs":   "🦀",
	".rb":   "💎",
	".java": "☕",
	".html": "🌐",
	".css":  "🎨",
	".json": "🔧",
	".yml":  "🔧",
	".yaml": "🔧",
	".md":   "📖",
	".txt":  "📝",
	".sql":  "🗃️",
	".sh":   "🖥️",
}

// Glyph returns the marker for a file name, falling back to a plain page.
func Glyph(name string) string {
	if glyph, ok := fileGlyphs[strings.ToLower(filepath.Ext(name))]; ok {
		return glyph
	}
	return "📄"
}

// Render produces the ASCII tree of rootPath's contents. Directories render
// as "📁 name/", files with their extension glyph; entries beyond
// MaxItemsPerDir collapse into a "... (k more items hidden)" line, and a
// directory that cannot be listed yields a single "⚠️ Access denied" leaf.
func Render(rootPath string, options Options) string {
	if options.MaxDepth <= 0 {
		options.MaxDepth = DefaultMaxDepth
	}
	if options.MaxItemsPerDir <= 0 {
		options.MaxItemsPerDir = DefaultMaxItemsPerDir
	}
	return renderLevel(rootPath, "", 0, options)
}

func renderLevel(path string, prefix string, depth int, options Options) string {
	if depth > options.MaxDepth {
		return ""
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return prefix + "└── ⚠️ Access denied\n"
	}

	names := make([]string, 0, len(entries))
	isDir := make(map[string]bool, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if options.Filter != nil && options.Filter.ExcludeName(name) {
			continue
		}
		if !entry.IsDir() && options.Filter != nil && !options.Filter.IncludeFile(name) {
			continue
		}
		names = append(names, name)
		isDir[name] = entry.IsDir()
	}
	sort.Strings(names)

	var builder strings.Builder
	for i, name := range names {
		if i >= options.MaxItemsPerDir {
			builder.WriteString(prefix)
			builder.WriteString(fmt.Sprintf("└── ... (%d more items hidden)\n", len(names)-i))
			break
		}

		isLast := i == len(names)-1
		connector := "├── "
		if isLast {
			connector = "└── "
		}
		builder.WriteString(prefix)
		builder.WriteString(connector)

		if isDir[name] {
			builder.WriteString("📁 ")
			builder.WriteString(name)
			builder.WriteString("/\n")
			if depth < options.MaxDepth {
				continuation := "│   "
				if isLast {
					continuation = "    "
				}
				builder.WriteString(renderLevel(filepath.Join(path, name), prefix+continuation, depth+1, options))
			}
		} else {
			builder.WriteString(Glyph(name))
			builder.WriteString(" ")
			builder.WriteString(name)
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
