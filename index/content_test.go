package index

import (
	"strings"
	"testing"
)

func newTestContentIndex(t *testing.T) *ContentIndex {
	t.Helper()
	ci, err := NewContentIndex()
	if err != nil {
		t.Fatalf("failed to create content index: %v", err)
	}
	t.Cleanup(func() { ci.Close() })
	return ci
}

func Test_ContentIndex_IndexAndSearch(t *testing.T) {
	ci := newTestContentIndex(t)
	ci.IndexFile("main.go", "package main\n\nfunc handleRequest() {}\n", "Go")
	ci.IndexFile("util.go", "package main\n\nfunc helper() {}\n", "Go")

	results, totalMatches, err := ci.Search(SearchOptions{Query: "handleRequest"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 file result, got %d", len(results))
	}
	if results[0].RelativePath != "main.go" {
		t.Errorf("expected main.go, got %s", results[0].RelativePath)
	}
	if totalMatches != 1 {
		t.Errorf("expected 1 match, got %d", totalMatches)
	}
	if results[0].Matches[0].LineNumber != 3 {
		t.Errorf("expected match on line 3, got %d", results[0].Matches[0].LineNumber)
	}
}

func Test_ContentIndex_SearchWithContext(t *testing.T) {
	ci := newTestContentIndex(t)
	ci.IndexFile("ctx.go", "before\ntarget line\nafter\n", "Go")

	results, _, err := ci.Search(SearchOptions{Query: "target", ContextLines: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || len(results[0].Matches) == 0 {
		t.Fatal("expected a match")
	}
	match := results[0].Matches[0]
	if len(match.ContextBefore) != 1 || match.ContextBefore[0] != "before" {
		t.Errorf("expected context before, got %v", match.ContextBefore)
	}
	if len(match.ContextAfter) != 1 || match.ContextAfter[0] != "after" {
		t.Errorf("expected context after, got %v", match.ContextAfter)
	}
}

func Test_ContentIndex_SearchGlobFilter(t *testing.T) {
	ci := newTestContentIndex(t)
	ci.IndexFile("src/app.go", "shared term\n", "Go")
	ci.IndexFile("docs/readme.md", "shared term\n", "Markdown")

	results, _, err := ci.Search(SearchOptions{Query: "shared", FileGlob: "**/*.go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].RelativePath != "src/app.go" {
		t.Errorf("expected only the .go file, got %+v", results)
	}
}

func Test_ContentIndex_SearchFilePathFilter(t *testing.T) {
	ci := newTestContentIndex(t)
	ci.IndexFile("a.go", "needle\n", "Go")
	ci.IndexFile("b.go", "needle\n", "Go")

	results, _, err := ci.Search(SearchOptions{Query: "needle", FilePath: "b.go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].RelativePath != "b.go" {
		t.Errorf("expected only b.go, got %+v", results)
	}
}

func Test_ContentIndex_PhraseQuery(t *testing.T) {
	ci := newTestContentIndex(t)
	ci.IndexFile("main.go", "func main() {\n\tstart server now\n}\n", "Go")

	results, _, err := ci.Search(SearchOptions{Query: "\"start server\""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected phrase match, got %d results", len(results))
	}
}

func Test_ContentIndex_RemoveFile(t *testing.T) {
	ci := newTestContentIndex(t)
	ci.IndexFile("gone.go", "unique_marker_xyz\n", "Go")
	ci.RemoveFile("gone.go")

	results, _, err := ci.Search(SearchOptions{Query: "unique_marker_xyz"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results after removal, got %d", len(results))
	}
	if _, ok := ci.GetFileContent("gone.go"); ok {
		t.Error("expected content removed")
	}
}

func Test_ContentIndex_GetFileContent(t *testing.T) {
	ci := newTestContentIndex(t)
	content := "package main\n"
	ci.IndexFile("main.go", content, "Go")

	got, ok := ci.GetFileContent("main.go")
	if !ok || got != content {
		t.Errorf("expected stored content, got %q (ok=%v)", got, ok)
	}
	// Backslash paths normalize to forward slashes
	ci.IndexFile("src/deep.go", "x\n", "Go")
	if _, ok := ci.GetFileContent("src\\deep.go"); !ok {
		t.Error("expected backslash path to normalize")
	}
}

func Test_ContentIndex_Clear(t *testing.T) {
	ci := newTestContentIndex(t)
	ci.IndexFile("main.go", "package main\n", "Go")

	if err := ci.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ci.DocumentCount() != 0 {
		t.Errorf("expected empty index after clear, got %d docs", ci.DocumentCount())
	}
}

func Test_ContentIndex_CaseInsensitiveLineMatch(t *testing.T) {
	ci := newTestContentIndex(t)
	ci.IndexFile("main.go", "HandleRequest does things\n", "Go")

	results, _, err := ci.Search(SearchOptions{Query: "handlerequest"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected case-insensitive match, got %d results", len(results))
	}
	if !strings.Contains(results[0].Matches[0].LineText, "HandleRequest") {
		t.Errorf("expected original line text, got %q", results[0].Matches[0].LineText)
	}
}
