// Package secrets flags credential-like substrings in text. Findings carry a
// truncated hash of the match, never the matched text itself.
package secrets

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"regexp"
)

// MaxScanFileSize is the per-file size ceiling for project scans. Larger
// files are skipped outright instead of risking long scans.
const MaxScanFileSize = 2 * 1024 * 1024

// FingerprintLength is the number of hex characters kept from the hash.
const FingerprintLength = 10

// Finding is a single flagged match.
type Finding struct {
	Label       string // which pattern matched, e.g. "AWS Access Key"
	Fingerprint string // first hex chars of sha256(match), never the raw text
}

// FileFindings pairs a file path with its findings.
type FileFindings struct {
	Path     string
	Findings []Finding
}

type pattern struct {
	re    *regexp.Regexp
	label string
}

// patterns is the fixed ordered list of credential heuristics.
var patterns = []pattern{
	{regexp.MustCompile(`AKIA[0-9A-Z]{16}`), "AWS Access Key"},
	{regexp.MustCompile(`(?i)aws_secret_access_key\s*=\s*["']?[0-9a-zA-Z/+]{40}["']?`), "AWS Secret Key"},
	{regexp.MustCompile(`(?i)api[_-]?key\s*[:=]\s*["']?[A-Za-z0-9_\-]{16,}["']?`), "Generic API Key"},
	{regexp.MustCompile(`(?i)secret\s*[:=]\s*["']?.{8,}["']?`), "Generic Secret"},
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-\._~\+/]+=*`), "Bearer Token"},
	{regexp.MustCompile(`(?i)-----BEGIN (RSA|EC|OPENSSH) PRIVATE KEY-----`), "Private Key Block"},
	{regexp.MustCompile(`(?i)firebase[_-]?api[_-]?key\s*[:=]\s*["']?[A-Za-z0-9_\-]{10,}["']?`), "Firebase Key"},
	{regexp.MustCompile(`(?i)postgres(ql)?://[^ \n]+`), "Database URL"},
}

// Scan runs every pattern over text and returns one finding per match,
// in pattern order.
func Scan(text string) []Finding {
	var findings []Finding
	for _, p := range patterns {
		for _, match := range p.re.FindAllString(text, -1) {
			findings = append(findings, Finding{
				Label:       p.label,
				Fingerprint: fingerprint(match),
			})
		}
	}
	return findings
}

// ScanFiles scans each path and returns per-file findings. Files over
// MaxScanFileSize and files that cannot be read are skipped silently; files
// with no findings are omitted from the result.
func ScanFiles(paths []string) []FileFindings {
	var results []FileFindings
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || info.Size() > MaxScanFileSize {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		findings := Scan(string(data))
		if len(findings) == 0 {
			continue
		}
		results = append(results, FileFindings{Path: path, Findings: findings})
	}
	return results
}

func fingerprint(match string) string {
	sum := sha256.Sum256([]byte(match))
	return hex.EncodeToString(sum[:])[:FingerprintLength]
}
