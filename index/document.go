package index

import "time"

// ProjectFile is a file known to the project index. It is the unit both the
// glob index and the content index operate on, and what the assembler
// receives when a whole project is packed.
type ProjectFile struct {
	Path         string    // Absolute file path
	RelativePath string    // Path relative to project root (forward slashes)
	Language     string    // Detected programming language
	SizeBytes    int64     // File size in bytes
	ModTime      time.Time // Last modification time
	LineCount    int       // Number of lines in the file
}
