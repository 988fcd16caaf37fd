// Package filter owns the project filtering policy shared by the scanner,
// the directory-tree renderer, and the secret scan: excluded name patterns,
// included extensions, .gitignore/.promptignore rules, and a file size cap.
package filter

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// Matcher decides whether a path participates in scanning and rendering.
// Thread-safe: Reload acquires a write lock, the query methods a read lock.
type Matcher struct {
	mu                 sync.RWMutex
	rootDir            string
	gitIgnore          gitignore.GitIgnore
	promptIgnore       gitignore.GitIgnore
	excludedPatterns   []string
	includedExtensions map[string]bool
	customPatterns     []string
	maxFileSizeBytes   int64
}

// Options configures a Matcher. Zero-value fields fall back to the defaults
// above (1 MiB size cap).
type Options struct {
	RootDir            string
	ExcludedPatterns   []string
	IncludedExtensions []string
	CustomPatterns     []string
	MaxFileSizeBytes   int64
}

// NewMatcher creates the shared filtering policy for a project root.
func NewMatcher(options Options) *Matcher {
	m := &Matcher{
		rootDir:          options.RootDir,
		excludedPatterns: options.ExcludedPatterns,
		customPatterns:   options.CustomPatterns,
		maxFileSizeBytes: options.MaxFileSizeBytes,
	}

	if len(m.excludedPatterns) == 0 {
		m.excludedPatterns = DefaultExcludedPatterns
	}
	if m.maxFileSizeBytes <= 0 {
		m.maxFileSizeBytes = 1024 * 1024
	}

	extensions := options.IncludedExtensions
	if extensions == nil {
		extensions = DefaultIncludedExtensions
	}
	m.includedExtensions = make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		m.includedExtensions[strings.ToLower(ext)] = true
	}

	m.gitIgnore = loadIgnoreFile(filepath.Join(options.RootDir, ".gitignore"), options.RootDir)
	m.promptIgnore = loadIgnoreFile(filepath.Join(options.RootDir, ".promptignore"), options.RootDir)

	return m
}

// ExcludeName reports whether a single directory or file name matches the
// exclusion patterns. Used per-entry by the tree renderer.
func (m *Matcher) ExcludeName(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.excludeNameLocked(name)
}

func (m *Matcher) excludeNameLocked(name string) bool {
	nameLower := strings.ToLower(name)
	for _, pattern := range m.excludedPatterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			if nameLower == strings.ToLower(pattern) {
				return true
			}
			continue
		}
		if matched, err := doublestar.Match(strings.ToLower(pattern), nameLower); err == nil && matched {
			return true
		}
	}
	return false
}

// IncludeFile reports whether a file name passes the extension-inclusion and
// hidden-file rules. Directories are not subject to this check.
func (m *Matcher) IncludeFile(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ext := strings.ToLower(filepath.Ext(name))
	if len(m.includedExtensions) > 0 {
		if !m.includedExtensions[ext] && !(ext == "" && m.includedExtensions["no ext"]) {
			return false
		}
	}
	if strings.HasPrefix(name, ".") && !hiddenAllowlist[name] {
		return false
	}
	return true
}

// ShouldIgnore returns true if the path should be excluded from scanning.
// Checks exclusion patterns on every path component, then .gitignore,
// .promptignore, and custom CLI patterns.
func (m *Matcher) ShouldIgnore(absolutePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	relativePath, err := filepath.Rel(m.rootDir, absolutePath)
	if err != nil {
		relativePath = absolutePath
	}
	relativePath = filepath.ToSlash(relativePath)

	for _, part := range strings.Split(relativePath, "/") {
		if m.excludeNameLocked(part) {
			return true
		}
	}

	isDir := false
	if info, err := os.Stat(absolutePath); err == nil {
		isDir = info.IsDir()
	}

	// Relative() does not require the file to still exist on disk.
	if m.gitIgnore != nil {
		if match := m.gitIgnore.Relative(relativePath, isDir); match != nil && match.Ignore() {
			return true
		}
	}
	if m.promptIgnore != nil {
		if match := m.promptIgnore.Relative(relativePath, isDir); match != nil && match.Ignore() {
			return true
		}
	}

	return m.matchesCustomPatterns(relativePath)
}

// ShouldIgnoreDir returns true if a directory should be skipped entirely
// during traversal.
func (m *Matcher) ShouldIgnoreDir(absolutePath string) bool {
	if m.ExcludeName(filepath.Base(absolutePath)) {
		return true
	}
	return m.ShouldIgnore(absolutePath)
}

// IsFileTooLarge returns true if the file exceeds the size cap.
func (m *Matcher) IsFileTooLarge(fileSize int64) bool {
	return fileSize > m.maxFileSizeBytes
}

// MaxFileSizeBytes returns the configured size cap.
func (m *Matcher) MaxFileSizeBytes() int64 {
	return m.maxFileSizeBytes
}

// RootDir returns the project root this matcher is scoped to.
func (m *Matcher) RootDir() string {
	return m.rootDir
}

func (m *Matcher) matchesCustomPatterns(relativePath string) bool {
	baseName := filepath.Base(relativePath)
	for _, pattern := range m.customPatterns {
		if matched, err := doublestar.Match(pattern, relativePath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, baseName); err == nil && matched {
			return true
		}
	}
	return false
}

// Reload re-reads .gitignore and .promptignore from disk. Called by the
// watcher when either file changes.
func (m *Matcher) Reload() {
	newGitIgnore := loadIgnoreFile(filepath.Join(m.rootDir, ".gitignore"), m.rootDir)
	newPromptIgnore := loadIgnoreFile(filepath.Join(m.rootDir, ".promptignore"), m.rootDir)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.gitIgnore = newGitIgnore
	m.promptIgnore = newPromptIgnore
}

// loadIgnoreFile reads an ignore file into a GitIgnore matcher. Uses the
// io.Reader form so the handle is closed promptly on Windows.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}
