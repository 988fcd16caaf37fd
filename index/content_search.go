package index

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/bmatcuk/doublestar/v4"
)

// ContentSearchResult groups a file's search matches.
type ContentSearchResult struct {
	RelativePath string
	Matches      []LineMatch
}

// LineMatch is a single matching line with optional surrounding context.
type LineMatch struct {
	LineNumber    int
	LineText      string
	ContextBefore []string
	ContextAfter  []string
}

// SearchOptions configures a content search.
type SearchOptions struct {
	Query        string
	FilePath     string // exact relative path, overrides FileGlob
	FileGlob     string
	MaxResults   int
	ContextLines int
}

// Search performs a full-text search across all indexed files.
// Query format:
//   - Plain text: match query (word-level matching)
//   - "quoted text": phrase query (exact phrase match)
//   - /regex/: regexp query
func (ci *ContentIndex) Search(options SearchOptions) ([]ContentSearchResult, int, error) {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	if options.MaxResults <= 0 {
		options.MaxResults = 50
	}
	if options.ContextLines < 0 {
		options.ContextLines = 0
	}

	searchRequest := bleve.NewSearchRequest(buildQuery(options.Query))
	searchRequest.Size = options.MaxResults * 5 // over-fetch: results are filtered and grouped by file
	searchRequest.Fields = []string{"path", "language"}

	searchResults, err := ci.index.Search(searchRequest)
	if err != nil {
		return nil, 0, fmt.Errorf("searching index: %w", err)
	}

	resultMap := make(map[string]*ContentSearchResult)
	var orderedPaths []string
	totalMatches := 0

	normalizedFilePath := strings.ReplaceAll(options.FilePath, "\\", "/")
	normalizedGlob := strings.ReplaceAll(options.FileGlob, "\\", "/")

	for _, hit := range searchResults.Hits {
		relativePath := hit.ID
		content, ok := ci.fileContents[relativePath]
		if !ok {
			continue
		}

		if normalizedFilePath != "" {
			if relativePath != normalizedFilePath {
				continue
			}
		} else if normalizedGlob != "" {
			matched, err := doublestar.Match(normalizedGlob, relativePath)
			if err != nil || !matched {
				continue
			}
		}

		lineMatches := findMatchingLines(content, options.Query, options.ContextLines)
		if len(lineMatches) == 0 {
			continue
		}

		totalMatches += len(lineMatches)

		if _, exists := resultMap[relativePath]; !exists {
			resultMap[relativePath] = &ContentSearchResult{RelativePath: relativePath}
			orderedPaths = append(orderedPaths, relativePath)
		}
		resultMap[relativePath].Matches = append(resultMap[relativePath].Matches, lineMatches...)

		if len(orderedPaths) >= options.MaxResults {
			break
		}
	}

	results := make([]ContentSearchResult, 0, len(orderedPaths))
	for _, path := range orderedPaths {
		results = append(results, *resultMap[path])
	}

	return results, totalMatches, nil
}

// buildQuery parses the query string into a Bleve query.
func buildQuery(queryString string) query.Query {
	queryString = strings.TrimSpace(queryString)

	if strings.HasPrefix(queryString, "/") && strings.HasSuffix(queryString, "/") && len(queryString) > 2 {
		return bleve.NewRegexpQuery(queryString[1 : len(queryString)-1])
	}

	if strings.HasPrefix(queryString, "\"") && strings.HasSuffix(queryString, "\"") && len(queryString) > 2 {
		return bleve.NewMatchPhraseQuery(queryString[1 : len(queryString)-1])
	}

	return bleve.NewMatchQuery(queryString)
}

// findMatchingLines searches content line by line for the query term and
// attaches context lines.
func findMatchingLines(content string, queryString string, contextLines int) []LineMatch {
	lines := strings.Split(content, "\n")
	searchTermLower := strings.ToLower(extractSearchTerm(queryString))

	var matches []LineMatch

	for lineIdx, line := range lines {
		if !strings.Contains(strings.ToLower(line), searchTermLower) {
			continue
		}

		match := LineMatch{
			LineNumber: lineIdx + 1, // 1-based
			LineText:   line,
		}

		if contextLines > 0 {
			startCtx := lineIdx - contextLines
			if startCtx < 0 {
				startCtx = 0
			}
			for i := startCtx; i < lineIdx; i++ {
				match.ContextBefore = append(match.ContextBefore, lines[i])
			}

			endCtx := lineIdx + contextLines + 1
			if endCtx > len(lines) {
				endCtx = len(lines)
			}
			for i := lineIdx + 1; i < endCtx; i++ {
				match.ContextAfter = append(match.ContextAfter, lines[i])
			}
		}

		matches = append(matches, match)
	}

	return matches
}

// extractSearchTerm strips query syntax to get the raw term for line matching.
func extractSearchTerm(queryString string) string {
	queryString = strings.TrimSpace(queryString)

	if strings.HasPrefix(queryString, "/") && strings.HasSuffix(queryString, "/") && len(queryString) > 2 {
		return queryString[1 : len(queryString)-1]
	}
	if strings.HasPrefix(queryString, "\"") && strings.HasSuffix(queryString, "\"") && len(queryString) > 2 {
		return queryString[1 : len(queryString)-1]
	}
	return queryString
}
