package assemble

import "strings"

// Template names accepted by Config.Template. Anything else falls back to
// TemplateStandard.
const (
	TemplateStandard = "Standard"
	TemplateDebug    = "Debug"
	TemplateReview   = "Review"
	TemplateRefactor = "Refactor"
)

var (
	divider40 = strings.Repeat("=", 40)
	divider60 = strings.Repeat("=", 60)
)

var templateHeaders = map[string]string{
	TemplateStandard: "🤖 AI CODING ASSISTANT\n" + divider40 + "\n\nPlease analyze the following code:\n\n",
	TemplateDebug:    "🐛 DEBUG REQUEST\n" + divider40 + "\n\nPlease help debug this code:\n\n",
	TemplateReview:   "👀 CODE REVIEW\n" + divider40 + "\n\nPlease review this code:\n\n",
	TemplateRefactor: "♻️ REFACTOR REQUEST\n" + divider40 + "\n\nPlease suggest refactoring:\n\n",
}

var templateFooters = map[string]string{
	TemplateStandard: "\n" + divider60 + "\nPlease provide analysis and suggestions.",
	TemplateDebug:    "\n" + divider60 + "\nFocus on finding and fixing bugs.",
	TemplateReview:   "\n" + divider60 + "\nProvide detailed code review feedback.",
	TemplateRefactor: "\n" + divider60 + "\nSuggest improvements and refactoring.",
}

func templateHeader(name string) string {
	if header, ok := templateHeaders[name]; ok {
		return header
	}
	return templateHeaders[TemplateStandard]
}

func templateFooter(name string) string {
	if footer, ok := templateFooters[name]; ok {
		return footer
	}
	return templateFooters[TemplateStandard]
}

func filesBanner() string {
	return "\n" + divider60 + "\n📁 FILES:\n" + divider60 + "\n\n"
}
