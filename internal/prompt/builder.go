// Package prompt builds the LLM prompts used by the summary, recommendation
// and translation pipelines.
package prompt

import (
	"fmt"
	"strings"

	"bookai/backend/internal/sanitize"
)

// Builder constructs prompts
type Builder struct{}

// NewBuilder creates a new prompt builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Summary returns the user prompt for a book summary.
// The description is expected to be truncated by the caller.
func (b *Builder) Summary(title, author, description string) string {
	return fmt.Sprintf(SummaryUser, title, author, sanitize.ForPrompt(description))
}

// GenreAnalysis returns the user prompt listing the given titles one per line
func (b *Builder) GenreAnalysis(titles []string) string {
	var sb strings.Builder
	for i, title := range titles {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(sanitize.ForPrompt(title))
	}
	return fmt.Sprintf(GenreAnalysisUser, sb.String())
}

// BookList returns the user prompt asking for count books in the given genres
func (b *Builder) BookList(genres []string, count int) string {
	return fmt.Sprintf(BookListUser, count, strings.Join(genres, ", "))
}

// TranslationSystem returns the system prompt for a language pair
func (b *Builder) TranslationSystem(sourceName, targetName string) string {
	return fmt.Sprintf(TranslationSystem, sourceName, targetName)
}

// Translation returns the user prompt for one chunk
func (b *Builder) Translation(sourceName, targetName, text string) string {
	return fmt.Sprintf(TranslationUser, sourceName, targetName, text)
}

// GenericSummary returns the template summary used when no description is known
func GenericSummary(title, author string) string {
	return fmt.Sprintf(GenericSummaryTemplate, title, author)
}
