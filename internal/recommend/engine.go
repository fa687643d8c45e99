// Package recommend suggests books from a reader's library using the LLM,
// enriched with provider metadata, with a curated list as fallback.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookai/backend/internal/fallback"
	"bookai/backend/internal/llm"
	"bookai/backend/internal/llm/llmjson"
	"bookai/backend/internal/logger"
	"bookai/backend/internal/model"
	"bookai/backend/internal/prompt"
	"bookai/backend/internal/textutil"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultLimit is used when the caller gives no usable limit
	DefaultLimit = 4

	llmTimeout        = 15 * time.Second
	llmTemperature    = 0.7
	genreMaxTokens    = 200
	bookListMaxTokens = 400

	analyzedTitles = 5
	promptGenres   = 2
	generatedBooks = 4

	enrichTimeout = 3 * time.Second
	defaultReason = "Recommended"
)

// ErrAllExcluded is returned when every generated book is already owned
var ErrAllExcluded = errors.New("recommend: every suggestion is already in the library")

// MetadataLookup resolves canonical book metadata
type MetadataLookup interface {
	Lookup(ctx context.Context, title, author string) (*model.BookMetadata, error)
}

// Engine produces recommendations. A nil llm.Client always yields the
// curated list.
type Engine struct {
	llm     llm.Client
	books   MetadataLookup
	prompts *prompt.Builder
}

// NewEngine creates a recommendation engine
func NewEngine(client llm.Client, books MetadataLookup) *Engine {
	return &Engine{
		llm:     client,
		books:   books,
		prompts: prompt.NewBuilder(),
	}
}

// Recommend never fails; every stage failure degrades to the curated list.
// The result holds at most limit items, in LLM order.
func (e *Engine) Recommend(ctx context.Context, userID int64, libraryTitles []string, limit int) model.RecommendationResult {
	defer logger.Track(ctx, "recommendation")()

	if limit <= 0 {
		limit = DefaultLimit
	}
	titles := nonBlank(libraryTitles)

	log := logger.For(ctx).WithFields(logrus.Fields{"user_id": userID, "library_size": len(titles)})
	if len(titles) == 0 {
		log.Info("empty library, nothing to recommend")
		return model.RecommendationResult{
			Recommendations: []model.Recommendation{},
			Count:           0,
			Reason:          model.ReasonEmptyLibrary,
		}
	}

	chain := fallback.NewChain("recommendation",
		fallback.Func("llm", func(ctx context.Context) ([]model.Recommendation, error) {
			return e.recommendWithLLM(ctx, titles)
		}),
		fallback.Func("curated", func(ctx context.Context) ([]model.Recommendation, error) {
			return Curated(titles, limit), nil
		}),
	)

	result, err := chain.Run(ctx)
	if err != nil {
		// unreachable while the curated stage never fails
		result.Value, result.Stage = Curated(titles, limit), "curated"
	}

	recs := result.Value
	if len(recs) > limit {
		recs = recs[:limit]
	}
	reason := model.ReasonFallback
	if result.Stage == "llm" {
		reason = model.ReasonAIPowered
	}
	log.WithFields(logrus.Fields{"count": len(recs), "reason": reason}).Info("recommendations ready")

	return model.RecommendationResult{
		Recommendations: recs,
		Count:           len(recs),
		Reason:          reason,
	}
}

func (e *Engine) recommendWithLLM(ctx context.Context, libraryTitles []string) ([]model.Recommendation, error) {
	if e.llm == nil {
		return nil, llm.ErrNoCredential
	}

	analysis, err := e.analyzeGenres(ctx, libraryTitles)
	if err != nil {
		return nil, fmt.Errorf("genre analysis: %w", err)
	}
	logger.For(ctx).WithField("genres", analysis.Genres).Debug("inferred genres")

	suggestions, err := e.generateBooks(ctx, analysis.Genres)
	if err != nil {
		return nil, fmt.Errorf("book generation: %w", err)
	}

	recs := e.enrich(ctx, suggestions, libraryTitles)
	if len(recs) == 0 {
		return nil, ErrAllExcluded
	}
	return recs, nil
}

func (e *Engine) analyzeGenres(ctx context.Context, libraryTitles []string) (*model.GenreAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	text, err := e.llm.Complete(ctx, llm.Request{
		System:      prompt.GenreAnalysisSystem,
		Prompt:      e.prompts.GenreAnalysis(libraryTitles[:min(analyzedTitles, len(libraryTitles))]),
		Temperature: llmTemperature,
		MaxTokens:   genreMaxTokens,
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}
	return llmjson.DecodeGenreAnalysis(text)
}

func (e *Engine) generateBooks(ctx context.Context, genres []string) ([]llmjson.BookSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	text, err := e.llm.Complete(ctx, llm.Request{
		System:      prompt.BookListSystem,
		Prompt:      e.prompts.BookList(genres[:min(promptGenres, len(genres))], generatedBooks),
		Temperature: llmTemperature,
		MaxTokens:   bookListMaxTokens,
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}

	books, err := llmjson.DecodeBookList(text)
	if err != nil {
		return nil, err
	}
	if len(books) > generatedBooks {
		books = books[:generatedBooks]
	}
	return books, nil
}

// enrich drops owned titles and resolves the rest concurrently, each
// within its own budget. A failed lookup keeps the LLM title and author
// without a cover. Owned titles are checked again on the canonical title.
// Order follows suggestions.
func (e *Engine) enrich(ctx context.Context, suggestions []llmjson.BookSuggestion, libraryTitles []string) []model.Recommendation {
	owned := textutil.TitleSet(libraryTitles)

	recs := make([]model.Recommendation, 0, len(suggestions))
	for _, s := range suggestions {
		if _, ok := owned[textutil.TitleKey(s.Title)]; ok {
			continue
		}
		reason := s.Reason
		if reason == "" {
			reason = defaultReason
		}
		recs = append(recs, model.Recommendation{Title: s.Title, Author: s.Author, Reason: reason})
	}

	var g errgroup.Group
	for i := range recs {
		g.Go(func() error {
			lookupCtx, cancel := context.WithTimeout(ctx, enrichTimeout)
			defer cancel()

			meta, err := e.books.Lookup(lookupCtx, recs[i].Title, recs[i].Author)
			if err != nil {
				logger.For(ctx).WithField("title", recs[i].Title).WithError(err).Debug("enrichment skipped")
				return nil
			}
			recs[i].Title = meta.Title
			recs[i].Author = meta.Author
			recs[i].CoverURL = model.StringPtr(meta.CoverURL)
			return nil
		})
	}
	_ = g.Wait()

	kept := recs[:0]
	for _, r := range recs {
		if _, ok := owned[textutil.TitleKey(r.Title)]; ok {
			logger.For(ctx).WithField("title", r.Title).Debug("canonical title already owned")
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// nonBlank returns the trimmed, non-empty titles
func nonBlank(titles []string) []string {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
