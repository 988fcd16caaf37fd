package language

import (
	"path/filepath"
	"strings"
)

// extensionToLanguage maps file extensions (without dot) to language names.
// The names double as the source for fenced-code-block tags, so they stay
// human-readable ("C++", "reStructuredText") and FenceTag lowercases or
// overrides them.
var extensionToLanguage = map[string]string{
	// Go
	"go": "Go",
	// JavaScript / TypeScript
	"js": "JavaScript", "jsx": "JavaScript", "mjs": "JavaScript", "cjs": "JavaScript",
	"ts": "TypeScript", "tsx": "TypeScript", "mts": "TypeScript", "cts": "TypeScript",
	// Python
	"py": "Python", "pyi": "Python", "pyw": "Python",
	// Rust
	"rs": "Rust",
	// Java / Kotlin
	"java": "Java", "kt": "Kotlin", "kts": "Kotlin",
	// C / C++
	"c": "C", "h": "C",
	"cpp": "C++", "cc": "C++", "cxx": "C++", "hpp": "C++", "hxx": "C++",
	// C#
	"cs": "C#", "csx": "C#",
	// Swift
	"swift": "Swift",
	// Dart
	"dart": "Dart",
	// Ruby
	"rb": "Ruby", "erb": "Ruby",
	// PHP
	"php": "PHP",
	// Shell
	"sh": "Shell", "bash": "Shell", "zsh": "Shell", "fish": "Shell",
	"ps1": "PowerShell", "psm1": "PowerShell", "psd1": "PowerShell",
	// Web
	"html": "HTML", "htm": "HTML",
	"css": "CSS", "scss": "SCSS", "sass": "Sass", "less": "Less",
	"vue": "Vue", "svelte": "Svelte",
	// Data / Config
	"json": "JSON", "jsonc": "JSON",
	"yaml": "YAML", "yml": "YAML",
	"toml": "TOML",
	"xml": "XML", "xsl": "XML", "xslt": "XML",
	"ini": "INI", "cfg": "INI", "conf": "INI",
	"env": "Env",
	"properties": "Properties",
	// Markup
	"md": "Markdown", "mdx": "Markdown",
	"rst": "reStructuredText",
	"tex": "LaTeX",
	// SQL
	"sql": "SQL",
	// GraphQL
	"graphql": "GraphQL", "gql": "GraphQL",
	// Protocol Buffers
	"proto": "Protobuf",
	// Terraform
	"tf": "Terraform", "tfvars": "Terraform",
	// Lua
	"lua": "Lua",
	// R
	"r": "R", "rmd": "R",
	// Scala
	"scala": "Scala",
	// Elixir / Erlang
	"ex": "Elixir", "exs": "Elixir",
	"erl": "Erlang", "hrl": "Erlang",
	// Haskell
	"hs": "Haskell",
	// Zig
	"zig": "Zig",
	// Misc
	"txt": "Text",
	"csv": "CSV",
	"svg": "SVG",
	"bat": "Batch", "cmd": "Batch",
	"cmake": "CMake",
	"gradle": "Gradle",
}

// specialFileNames maps well-known file names (extension-free or with a
// misleading extension, like CMakeLists.txt) to languages.
var specialFileNames = map[string]string{
	"makefile":       "Makefile",
	"gnumakefile":    "Makefile",
	"dockerfile":     "Dockerfile",
	"cmakelists.txt": "CMake",
	"gemfile":        "Ruby",
	"rakefile":       "Ruby",
	".gitignore":     "Git Config",
	".gitattributes": "Git Config",
	".promptignore":  "Git Config",
	".env":           "Env",
	".env.local":     "Env",
	".env.example":   "Env",
}

// DetectLanguage returns the language for a file path. Well-known file names
// win over the extension; unrecognized files come back as "Unknown".
func DetectLanguage(filePath string) string {
	base := strings.ToLower(filepath.Base(filePath))
	if lang, ok := specialFileNames[base]; ok {
		return lang
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
	if lang, ok := extensionToLanguage[ext]; ok {
		return lang
	}
	return "Unknown"
}
