package language

import "strings"

// fenceOverrides maps detected languages whose fenced-block tag is not simply
// the lowercased name.
var fenceOverrides = map[string]string{
	"C++":              "cpp",
	"C#":               "csharp",
	"reStructuredText": "rst",
	"Git Config":       "text",
	"Text":             "text",
}

// FenceTag returns the language tag for a fenced code block, guessing from
// the file name first and falling back to sniffing a content sample.
// "text" is the first-class unknown, never an error.
func FenceTag(filePath string, sample string) string {
	lang := DetectLanguage(filePath)
	if lang != "Unknown" {
		if tag, ok := fenceOverrides[lang]; ok {
			return tag
		}
		tag := strings.ToLower(lang)
		if tag == "" || strings.Contains(tag, " ") {
			return "text"
		}
		return tag
	}
	return sniffTag(sample)
}

// sniffTag makes a best-effort guess from the leading bytes of a file.
func sniffTag(sample string) string {
	trimmed := strings.TrimSpace(sample)

	if strings.HasPrefix(trimmed, "#!") {
		firstLine, _, _ := strings.Cut(trimmed, "\n")
		switch {
		case strings.Contains(firstLine, "python"):
			return "python"
		case strings.Contains(firstLine, "node"):
			return "javascript"
		case strings.Contains(firstLine, "ruby"):
			return "ruby"
		case strings.Contains(firstLine, "sh"):
			return "bash"
		}
		return "text"
	}

	switch {
	case strings.HasPrefix(trimmed, "<?php"):
		return "php"
	case strings.HasPrefix(trimmed, "<?xml"):
		return "xml"
	case strings.HasPrefix(strings.ToLower(trimmed), "<!doctype html"),
		strings.HasPrefix(trimmed, "<html"):
		return "html"
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		return "json"
	}
	return "text"
}
