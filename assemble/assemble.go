// Package assemble builds a single formatted prompt artifact from a set of
// source files and a configuration, either unconstrained or under a hard
// token budget. Budget accounting is conservative: the file-block loop never
// pushes the running token count past the budget, at the cost of sometimes
// omitting a file that would have just barely fit.
package assemble

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pkozlov/promptpack-mcp/cache"
	"github.com/pkozlov/promptpack-mcp/filter"
	"github.com/pkozlov/promptpack-mcp/language"
	"github.com/pkozlov/promptpack-mcp/strip"
	"github.com/pkozlov/promptpack-mcp/token"
	"github.com/pkozlov/promptpack-mcp/tree"
)

const (
	// DefaultTokenBudget applies when a budgeted assembly is requested
	// without a positive budget.
	DefaultTokenBudget = 32000

	// DefaultMaxFileChars is the per-file content cap for unbudgeted use.
	DefaultMaxFileChars = 10000

	// fenceSampleSize is how much content feeds the language guess.
	fenceSampleSize = 1024
)

// Config is the per-invocation assembly configuration.
type Config struct {
	IncludeStructure bool
	StripComments    bool
	Template         string // Standard, Debug, Review, Refactor
	MaxFileChars     int    // 0 means unlimited
}

// Result is the finished artifact plus summary statistics. Created fresh per
// invocation and never mutated afterwards.
type Result struct {
	Text          string
	IncludedFiles int
	OmittedFiles  int
	Status        string
}

// Assembler produces prompt text from file paths. All dependencies are
// explicit; construct one per project root.
type Assembler struct {
	RootDir string
	Files   *cache.FileCache
	Filter  *filter.Matcher
	Logger  *slog.Logger
}

// Assemble builds the artifact without a budget: every path yields a block
// (content, skip placeholder, or error placeholder) in input order.
func (a *Assembler) Assemble(paths []string, cfg Config) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = failureResult(r)
		}
	}()

	parts := make([]string, 0, len(paths)+4)
	parts = append(parts, templateHeader(cfg.Template))
	if cfg.IncludeStructure && a.RootDir != "" {
		parts = append(parts, a.structureSection())
	}
	parts = append(parts, filesBanner())

	for _, path := range paths {
		parts = append(parts, a.fileBlock(path, cfg))
	}

	parts = append(parts, templateFooter(cfg.Template))

	return Result{
		Text:   strings.Join(parts, ""),
		Status: "✅ Prompt generated!",
	}
}

// AssembleBudgeted builds the artifact under a hard token budget. Files that
// do not fit are counted as omitted, never partially emitted; placeholders
// obey the same fit check. tokenBudget defaults to DefaultTokenBudget when
// non-positive.
func (a *Assembler) AssembleBudgeted(paths []string, cfg Config, tokenBudget int) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = failureResult(r)
		}
	}()

	if tokenBudget <= 0 {
		tokenBudget = DefaultTokenBudget
	}

	parts := make([]string, 0, len(paths)+6)
	parts = append(parts, templateHeader(cfg.Template))
	if cfg.IncludeStructure && a.RootDir != "" {
		parts = append(parts, a.structureSection())
	}
	parts = append(parts, filesBanner())

	usedTokens := token.Estimate(strings.Join(parts, ""))
	includedFiles := 0
	omittedFiles := 0

	appendIfFits := func(block string) {
		blockTokens := token.Estimate(block)
		if usedTokens+blockTokens <= tokenBudget {
			parts = append(parts, block)
			usedTokens += blockTokens
		} else {
			omittedFiles++
		}
	}

	for _, path := range paths {
		if usedTokens >= tokenBudget {
			omittedFiles++
			continue
		}

		relativePath := a.relativePath(path)

		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			appendIfFits(fmt.Sprintf("### FILE: %s (Skipped: Not a valid file or does not exist)\n\n", relativePath))
			continue
		}

		entry, err := a.Files.Load(path)
		if err != nil {
			a.logDebug("file load failed", "path", relativePath, "error", err)
			appendIfFits(fmt.Sprintf("### FILE: %s (Error: %v)\n\n", relativePath, err))
			continue
		}

		content := a.prepareContent(entry.Content, path, cfg)

		blockHeader := fmt.Sprintf("### FILE: %s\n```%s\n", relativePath, fenceTag(path, content))
		blockFooter := "\n```\n\n"

		remainingTokens := tokenBudget - usedTokens
		overheadTokens := token.Estimate(blockHeader + blockFooter)
		remainingContentTokens := remainingTokens - overheadTokens
		if remainingContentTokens <= 0 {
			omittedFiles++
			continue
		}

		maxContentChars := remainingContentTokens * token.CharsPerToken
		if len(content) > maxContentChars {
			content = truncateUTF8(content, maxContentChars) + "\n... (truncated to fit token budget)"
		}

		block := blockHeader + content + blockFooter
		blockTokens := token.Estimate(block)
		// Re-check after building: estimator rounding can still overshoot.
		if usedTokens+blockTokens > tokenBudget {
			omittedFiles++
			continue
		}

		parts = append(parts, block)
		usedTokens += blockTokens
		includedFiles++
	}

	footer := templateFooter(cfg.Template)
	if usedTokens+token.Estimate(footer) <= tokenBudget {
		parts = append(parts, footer)
	} else {
		parts = append(parts, "\n"+divider60+"\n", "Prompt footer omitted due to token budget.\n")
	}

	if omittedFiles > 0 {
		parts = append(parts, "\n"+divider60+"\n",
			fmt.Sprintf("Token budget reached: included %d file(s), omitted %d file(s).\n", includedFiles, omittedFiles))
	}

	return Result{
		Text:          strings.Join(parts, ""),
		IncludedFiles: includedFiles,
		OmittedFiles:  omittedFiles,
		Status:        fmt.Sprintf("✅ Prompt generated (budget ~%s tokens).", token.FormatCount(tokenBudget)),
	}
}

// fileBlock renders one file for the unbudgeted mode.
func (a *Assembler) fileBlock(path string, cfg Config) string {
	relativePath := a.relativePath(path)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Sprintf("### FILE: %s (Skipped: Not a valid file or does not exist)\n\n", relativePath)
	}

	entry, err := a.Files.Load(path)
	if err != nil {
		a.logDebug("file load failed", "path", relativePath, "error", err)
		return fmt.Sprintf("### FILE: %s (Error: %v)\n\n", relativePath, err)
	}

	content := a.prepareContent(entry.Content, path, cfg)

	return fmt.Sprintf("### FILE: %s\n```%s\n%s\n```\n\n", relativePath, fenceTag(path, content), content)
}

// prepareContent applies the MaxFileChars cap and comment stripping, in that
// order (the original behavior: truncate first, then strip).
func (a *Assembler) prepareContent(content string, path string, cfg Config) string {
	if cfg.MaxFileChars > 0 && len(content) > cfg.MaxFileChars {
		content = truncateUTF8(content, cfg.MaxFileChars) + "\n... (file content truncated)"
	}
	if cfg.StripComments {
		content = strip.Strip(content, path)
	}
	return content
}

// structureSection renders the 📁 PROJECT STRUCTURE block embedded before
// the file list.
func (a *Assembler) structureSection() string {
	options := tree.Options{
		MaxDepth:       tree.DefaultMaxDepth,
		MaxItemsPerDir: tree.DefaultMaxItemsPerDir,
	}
	if a.Filter != nil {
		options.Filter = a.Filter
	}

	var builder strings.Builder
	builder.WriteString("\n📁 PROJECT STRUCTURE:\n")
	builder.WriteString(divider40)
	builder.WriteString("\n")
	builder.WriteString("Project: ")
	builder.WriteString(filepath.Base(a.RootDir))
	builder.WriteString("\n")
	builder.WriteString(tree.Render(a.RootDir, options))
	builder.WriteString("\n")
	return builder.String()
}

func (a *Assembler) relativePath(path string) string {
	if a.RootDir == "" {
		return path
	}
	relativePath, err := filepath.Rel(a.RootDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(relativePath)
}

func (a *Assembler) logDebug(msg string, args ...any) {
	if a.Logger != nil {
		a.Logger.Debug(msg, args...)
	}
}

func fenceTag(path string, content string) string {
	sample := content
	if len(sample) > fenceSampleSize {
		sample = truncateUTF8(sample, fenceSampleSize)
	}
	return language.FenceTag(path, sample)
}

// failureResult shapes a catastrophic failure as a normal Result so callers
// stay uniform.
func failureResult(cause any) Result {
	return Result{
		Text:   fmt.Sprintf("Error generating prompt: %v", cause),
		Status: "❌ Error generating prompt.",
	}
}

// truncateUTF8 cuts s to at most maxBytes without splitting a rune.
func truncateUTF8(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
