// Package handler exposes the summary, recommendation and translation
// pipelines over HTTP.
package handler

import (
	"context"
	"time"

	"bookai/backend/internal/model"
)

// Summarizer produces a summary for a title/author pair
type Summarizer interface {
	ForBook(ctx context.Context, title, author string) model.Summary
}

// Recommender produces recommendations from a reader's library
type Recommender interface {
	Recommend(ctx context.Context, userID int64, libraryTitles []string, limit int) model.RecommendationResult
}

// TrendingSource lists currently popular books
type TrendingSource interface {
	Trending(ctx context.Context, limit int) ([]model.Recommendation, error)
}

// Translator translates free text
type Translator interface {
	Translate(ctx context.Context, text, source, target string) model.TranslationResult
}

// Handler holds the services behind the HTTP endpoints
type Handler struct {
	summaries   Summarizer
	recommender Recommender
	trending    TrendingSource
	translator  Translator
	llmEnabled  bool
	now         func() time.Time
}

// New creates a Handler. llmEnabled is only reported by /health.
func New(summaries Summarizer, recommender Recommender, trending TrendingSource, translator Translator, llmEnabled bool) *Handler {
	return &Handler{
		summaries:   summaries,
		recommender: recommender,
		trending:    trending,
		translator:  translator,
		llmEnabled:  llmEnabled,
		now:         time.Now,
	}
}
