// Package summary produces short, spoiler-free book summaries.
package summary

import (
	"context"
	"strings"
	"time"

	"bookai/backend/internal/fallback"
	"bookai/backend/internal/llm"
	"bookai/backend/internal/logger"
	"bookai/backend/internal/model"
	"bookai/backend/internal/prompt"
	"bookai/backend/internal/textutil"
)

const (
	llmTimeout     = 15 * time.Second
	llmTemperature = 0.5
	llmMaxTokens   = 200

	// maxPromptDescription bounds the description embedded in the prompt
	maxPromptDescription = 1500
	// MinDescriptionLength is the shortest description worth summarizing
	MinDescriptionLength = 50

	maxFallbackSentences = 3
	maxFallbackLength    = 300
	fallbackPrefixLength = 250
)

// MetadataLookup resolves a book description
type MetadataLookup interface {
	Lookup(ctx context.Context, title, author string) (*model.BookMetadata, error)
}

// Generator summarizes books with the LLM and falls back to sentence
// extraction. A nil llm.Client disables the LLM stage.
type Generator struct {
	llm     llm.Client
	books   MetadataLookup
	prompts *prompt.Builder
}

// NewGenerator creates a summary generator
func NewGenerator(client llm.Client, books MetadataLookup) *Generator {
	return &Generator{
		llm:     client,
		books:   books,
		prompts: prompt.NewBuilder(),
	}
}

// ForBook resolves the description of a book and summarizes it. Books
// with no known or a too short description get a generic summary without
// any LLM call.
func (g *Generator) ForBook(ctx context.Context, title, author string) model.Summary {
	defer logger.Track(ctx, "summary")()

	result := model.Summary{Title: title, Author: author}

	meta, err := g.books.Lookup(ctx, title, author)
	if err != nil {
		logger.For(ctx).WithError(err).Info("no metadata, using generic summary")
		result.Text = prompt.GenericSummary(title, author)
		return result
	}
	if textutil.Len(meta.Description) < MinDescriptionLength {
		logger.For(ctx).Info("description too short, using generic summary")
		result.Text = prompt.GenericSummary(title, author)
		return result
	}

	result.Text = g.Summarize(ctx, title, author, meta.Description)
	return result
}

// Summarize always returns a summary of description
func (g *Generator) Summarize(ctx context.Context, title, author, description string) string {
	chain := fallback.NewChain("summary",
		fallback.Func("llm", func(ctx context.Context) (string, error) {
			return g.summarizeWithLLM(ctx, title, author, description)
		}),
		fallback.Func("extract", func(ctx context.Context) (string, error) {
			return Fallback(description), nil
		}),
	)

	result, err := chain.Run(ctx)
	if err != nil {
		// unreachable while extract never fails
		return Fallback(description)
	}
	return result.Value
}

func (g *Generator) summarizeWithLLM(ctx context.Context, title, author, description string) (string, error) {
	if g.llm == nil {
		return "", llm.ErrNoCredential
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	return g.llm.Complete(ctx, llm.Request{
		System:      prompt.SummarySystem,
		Prompt:      g.prompts.Summary(title, author, textutil.Truncate(description, maxPromptDescription)),
		Temperature: llmTemperature,
		MaxTokens:   llmMaxTokens,
	})
}

// Fallback builds a summary from the first sentences of description: up to
// three sentences while the joined text stays within 300 characters, else
// the first 250 characters followed by "...".
func Fallback(description string) string {
	if strings.TrimSpace(description) == "" {
		return prompt.SummaryUnavailable
	}

	var picked []string
	length := 0
	for i, sentence := range sentences(description) {
		if i == maxFallbackSentences {
			break
		}
		n := textutil.Len(sentence)
		if len(picked) > 0 {
			n++ // joining space
		}
		if sentence == "" || length+n > maxFallbackLength {
			break
		}
		picked = append(picked, sentence)
		length += n
	}

	if len(picked) == 0 {
		return textutil.Truncate(description, fallbackPrefixLength) + "..."
	}
	return strings.Join(picked, " ")
}

// sentences splits text after '.', '!' or '?' followed by a space,
// keeping the punctuation with its sentence.
func sentences(text string) []string {
	runes := []rune(text)

	var out []string
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		switch runes[i] {
		case '.', '!', '?':
			if runes[i+1] == ' ' {
				out = append(out, strings.TrimSpace(string(runes[start:i+1])))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(string(runes[start:])); rest != "" || len(out) == 0 {
		out = append(out, rest)
	}
	return out
}
