// Package translate translates free text with the LLM, falling back to
// MyMemory.
package translate

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
	"bookai/backend/internal/mymemory"
	"bookai/backend/internal/prompt"
	"bookai/backend/internal/textutil"

	"golang.org/x/sync/errgroup"
)

const (
	// LLMChunk is the chunk size, in code points, of the LLM path
	LLMChunk = 2000

	llmTimeout     = 20 * time.Second
	llmTemperature = 0.3
	llmMaxTokens   = 2000

	bothFailedError = "Both translation services failed"
)

// ErrEmptyTranslation is returned when a chunk translates to nothing
var ErrEmptyTranslation = errors.New("translate: empty translation")

// ChunkTranslator translates one chunk through a secondary provider
type ChunkTranslator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Service runs the translation fallback chain. A nil llm.Client skips the
// LLM stage.
type Service struct {
	llm         llm.Client
	memory      ChunkTranslator
	prompts     *prompt.Builder
	concurrency int
}

// NewService creates a translation service. concurrency bounds parallel
// LLM chunk calls; values below 1 mean sequential.
func NewService(client llm.Client, memory ChunkTranslator, concurrency int) *Service {
	return &Service{
		llm:         client,
		memory:      memory,
		prompts:     prompt.NewBuilder(),
		concurrency: max(1, concurrency),
	}
}

// Translate never fails: when both providers fail the result carries
// method none and an error message. Codes are expected normalized.
func (s *Service) Translate(ctx context.Context, text, source, target string) model.TranslationResult {
	if text == "" {
		return model.TranslationResult{}
	}
	defer logger.Track(ctx, "translation")()

	type translation struct {
		text   string
		method model.TranslationMethod
	}

	chain := fallback.NewChain("translation",
		fallback.Func("llm", func(ctx context.Context) (translation, error) {
			out, err := s.translateWithLLM(ctx, text, source, target)
			return translation{out, model.MethodLLM}, err
		}),
		fallback.Func("mymemory", func(ctx context.Context) (translation, error) {
			out, err := s.translateWithMyMemory(ctx, text, source, target)
			return translation{out, model.MethodMyMemory}, err
		}),
	)

	result, err := chain.Run(ctx)
	if err != nil {
		logger.For(ctx).WithError(err).Error("translation failed")
		return model.TranslationResult{
			Original:   text,
			Translated: prompt.TranslationUnavailable,
			Method:     model.MethodNone,
			Error:      bothFailedError,
		}
	}
	return model.TranslationResult{
		Original:   text,
		Translated: result.Value.text,
		Method:     result.Value.method,
	}
}

// translateWithLLM translates chunks with bounded concurrency. Output order
// follows input order; the first chunk failure cancels the rest.
func (s *Service) translateWithLLM(ctx context.Context, text, source, target string) (string, error) {
	if s.llm == nil {
		return "", llm.ErrNoCredential
	}

	sourceName, targetName := LanguageName(source), LanguageName(target)
	system := s.prompts.TranslationSystem(sourceName, targetName)

	chunks := textutil.Split(text, LLMChunk)
	out := make([]string, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			translated, err := s.translateChunk(gctx, system, s.prompts.Translation(sourceName, targetName, chunk))
			if err != nil {
				return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
			}
			out[i] = translated
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(out, " "), nil
}

func (s *Service) translateChunk(ctx context.Context, system, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	text, err := s.llm.Complete(ctx, llm.Request{
		System:      system,
		Prompt:      userPrompt,
		Temperature: llmTemperature,
		MaxTokens:   llmMaxTokens,
	})
	if err != nil {
		return "", err
	}
	text = llmjson.StripFences(text)
	if text == "" {
		return "", ErrEmptyTranslation
	}
	return text, nil
}

// translateWithMyMemory translates chunks sequentially; pacing is left to
// the provider client.
func (s *Service) translateWithMyMemory(ctx context.Context, text, source, target string) (string, error) {
	chunks := textutil.Split(text, mymemory.MaxChunk)
	out := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		translated, err := s.memory.Translate(ctx, chunk, source, target)
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		out = append(out, translated)
	}
	return strings.Join(out, " "), nil
}
