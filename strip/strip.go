// Package strip removes comment syntax from source text before it is packed
// into a prompt. It is a best-effort, per-language-family heuristic over
// regular expressions, not a parser: comment markers inside string literals
// are handled only as far as the unquoted-marker rule reaches.
package strip

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// First # whose preceding character is not a quote. Lines that begin
	// with # (after whitespace) are dropped before this rule applies.
	unquotedHash = regexp.MustCompile(`[^"']#`)

	cBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	cLineComment  = regexp.MustCompile(`//[^\n]*`)
	markupComment = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// Strip returns content with comments removed according to the family the
// file path's extension (or basename) belongs to. The result is trimmed;
// unknown extensions pass through otherwise unchanged.
func Strip(content string, filePath string) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	base := strings.ToLower(filepath.Base(filePath))

	switch {
	case ext == ".py":
		content = stripHashComments(content, false)

	case ext == ".js" || ext == ".jsx" || ext == ".ts" || ext == ".tsx" ||
		ext == ".c" || ext == ".cpp" || ext == ".java" || ext == ".php" ||
		ext == ".go" || ext == ".rs" || ext == ".swift":
		content = cBlockComment.ReplaceAllString(content, "")
		content = cLineComment.ReplaceAllString(content, "")

	case ext == ".html" || ext == ".xml" || ext == ".vue" || ext == ".md":
		content = markupComment.ReplaceAllString(content, "")

	case ext == ".css":
		content = cBlockComment.ReplaceAllString(content, "")

	case ext == ".yml" || ext == ".yaml" || ext == ".rb" || ext == ".sh" ||
		base == "dockerfile" || base == "makefile" || base == ".env":
		content = stripHashComments(content, true)

	case ext == ".ini":
		content = stripSemicolonComments(content)
	}

	return strings.TrimSpace(content)
}

// stripHashComments drops whole-line # comments and truncates lines at the
// first # not preceded by a quote. When preserveShebang is set, a #!/ first
// line survives verbatim.
func stripHashComments(content string, preserveShebang bool) string {
	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if preserveShebang && i == 0 && strings.HasPrefix(trimmed, "#!/") {
			cleaned = append(cleaned, line)
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.Contains(line, "#") {
			if loc := unquotedHash.FindStringIndex(line); loc != nil {
				line = strings.TrimRight(line[:loc[1]-1], " \t")
			}
		}
		cleaned = append(cleaned, line)
	}
	return strings.Join(cleaned, "\n")
}

// stripSemicolonComments handles INI files: drop ; comment lines, truncate
// at the first ; otherwise.
func stripSemicolonComments(content string) string {
	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, ";") {
			continue
		}
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = strings.TrimRight(line[:idx], " \t")
		}
		cleaned = append(cleaned, line)
	}
	return strings.Join(cleaned, "\n")
}
