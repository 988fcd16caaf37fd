package filter

// DefaultExcludedPatterns are directory and file names skipped everywhere:
// project scan, tree rendering, and secret scans.
var DefaultExcludedPatterns = []string{
	".git",
	"__pycache__",
	"node_modules",
	".vscode",
	".idea",
	"venv",
	"env",
	".next",
	"dist",
	"build",
}

// DefaultIncludedExtensions are the file extensions eligible for prompt
// assembly. An empty inclusion set means every extension is eligible.
var DefaultIncludedExtensions = []string{
	".py", ".js", ".ts", ".jsx", ".tsx", ".vue",
	".html", ".css", ".json", ".md", ".txt",
	".yml", ".yaml", ".xml", ".sql",
	".java", ".cpp", ".c", ".h",
	".php", ".rb", ".go", ".rs", ".swift",
}

// hiddenAllowlist lists dotfiles that stay visible despite being hidden.
var hiddenAllowlist = map[string]bool{
	".gitignore":    true,
	".env.example":  true,
	".dockerignore": true,
	"Dockerfile":    true,
	"LICENSE":       true,
	"README":        true,
}
