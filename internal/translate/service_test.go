package translate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"bookai/backend/internal/llm"
	"bookai/backend/internal/llm/llmtest"
	"bookai/backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMemory struct {
	mu     sync.Mutex
	chunks []string
	failAt int // 1-based call that fails; 0 never fails
	langs  string
}

func (f *fakeMemory) Translate(ctx context.Context, text, source, target string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chunks = append(f.chunks, text)
	f.langs = source + "|" + target
	if f.failAt == len(f.chunks) {
		return "", errors.New("status 503")
	}
	if text == "Hello" {
		return "Bonjour", nil
	}
	return "<" + string([]rune(text)[0]) + ">", nil
}

// chunkOf extracts the chunk embedded at the end of a translation prompt
func chunkOf(req llm.Request) string {
	parts := strings.SplitN(req.Prompt, "\n\n", 2)
	return parts[1]
}

func TestTranslateEmptyText(t *testing.T) {
	fake := &llmtest.Client{}
	memory := &fakeMemory{}

	got := NewService(fake, memory, 1).Translate(context.Background(), "", "en", "fr")
	assert.Equal(t, model.TranslationResult{}, got)
	assert.Empty(t, fake.Requests())
	assert.Empty(t, memory.chunks)
}

func TestTranslateWithLLM(t *testing.T) {
	fake := &llmtest.Client{Replies: []llmtest.Reply{{Text: "```\nBonjour le monde\n```"}}}

	got := NewService(fake, &fakeMemory{}, 1).Translate(context.Background(), "Hello world", "en", "fr")
	assert.Equal(t, model.TranslationResult{Original: "Hello world", Translated: "Bonjour le monde", Method: model.MethodLLM}, got)

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].System, "from English to French")
	assert.Equal(t, "Translate the following text from English to French. Only provide the translation, no explanations:\n\nHello world", reqs[0].Prompt)
	assert.InDelta(t, 0.3, reqs[0].Temperature, 0.001)
	assert.Equal(t, 2000, reqs[0].MaxTokens)
}

func TestTranslateUnmappedLanguagePassesThrough(t *testing.T) {
	fake := &llmtest.Client{Replies: []llmtest.Reply{{Text: "Hallo"}}}

	NewService(fake, &fakeMemory{}, 1).Translate(context.Background(), "Hello", "en", "nl")
	assert.Contains(t, fake.Requests()[0].Prompt, "from English to nl")
}

func TestTranslateLLMChunksKeepOrder(t *testing.T) {
	text := strings.Repeat("a", 2000) + strings.Repeat("b", 2000) + strings.Repeat("c", 500)

	fake := &llmtest.Client{Handler: func(req llm.Request) (string, error) {
		chunk := chunkOf(req)
		// later chunks finish first
		switch chunk[0] {
		case 'a':
			time.Sleep(30 * time.Millisecond)
		case 'b':
			time.Sleep(10 * time.Millisecond)
		}
		return strings.ToUpper(chunk[:1]) + "x" + string(rune('0'+len(chunk)/500)), nil
	}}

	got := NewService(fake, &fakeMemory{}, 3).Translate(context.Background(), text, "en", "fr")
	assert.Equal(t, model.MethodLLM, got.Method)
	assert.Equal(t, "Ax4 Bx4 Cx1", got.Translated)

	reqs := fake.Requests()
	require.Len(t, reqs, 3, "ceil(4500/2000) chunks")
	for _, req := range reqs {
		assert.LessOrEqual(t, len([]rune(chunkOf(req))), LLMChunk)
	}
}

func TestTranslateFallsBackToMyMemory(t *testing.T) {
	testCases := []struct {
		name   string
		client llm.Client
	}{
		{name: "no credential", client: nil},
		{name: "provider error", client: &llmtest.Client{Replies: []llmtest.Reply{{Err: errors.New("status 500")}}}},
		{name: "empty after fences", client: &llmtest.Client{Replies: []llmtest.Reply{{Text: "```\n```"}}}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			memory := &fakeMemory{}
			got := NewService(testCase.client, memory, 1).Translate(context.Background(), "Hello", "en", "fr")
			assert.Equal(t, model.TranslationResult{Original: "Hello", Translated: "Bonjour", Method: model.MethodMyMemory}, got)
			assert.Equal(t, "en|fr", memory.langs)
		})
	}
}

func TestTranslateAnyChunkFailureAbortsLLM(t *testing.T) {
	text := strings.Repeat("a", 2000) + strings.Repeat("b", 100)
	fake := &llmtest.Client{Handler: func(req llm.Request) (string, error) {
		if chunkOf(req)[0] == 'b' {
			return "", context.DeadlineExceeded
		}
		return "ok", nil
	}}
	memory := &fakeMemory{}

	got := NewService(fake, memory, 1).Translate(context.Background(), text, "en", "fr")
	assert.Equal(t, model.MethodMyMemory, got.Method)
	assert.NotContains(t, got.Translated, "ok")
}

func TestTranslateMyMemoryChunks(t *testing.T) {
	text := strings.Repeat("a", 450) + strings.Repeat("b", 450) + "c"
	memory := &fakeMemory{}

	got := NewService(nil, memory, 1).Translate(context.Background(), text, "en", "de")
	assert.Equal(t, "<a> <b> <c>", got.Translated)
	require.Len(t, memory.chunks, 3)
	for _, chunk := range memory.chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), 450)
	}
}

func TestTranslateBothFail(t *testing.T) {
	memory := &fakeMemory{failAt: 2}
	text := strings.Repeat("a", 900)

	got := NewService(nil, memory, 1).Translate(context.Background(), text, "en", "fr")
	assert.Equal(t, model.TranslationResult{
		Original:   text,
		Translated: "Translation unavailable. Please try again.",
		Method:     model.MethodNone,
		Error:      "Both translation services failed",
	}, got)
	assert.Len(t, memory.chunks, 2, "no calls after the failing chunk")
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, "fr", NormalizeLanguage("fr-FR", "ar"))
	assert.Equal(t, "pt", NormalizeLanguage("PT_br", "ar"))
	assert.Equal(t, "ar", NormalizeLanguage("  ", "ar"))
	assert.Equal(t, "en", NormalizeLanguage("", "en"))
	assert.Equal(t, "ja", NormalizeLanguage("ja", "en"))
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Arabic", LanguageName("ar"))
	assert.Equal(t, "Chinese", LanguageName("zh"))
	assert.Equal(t, "xx", LanguageName("xx"))
}
