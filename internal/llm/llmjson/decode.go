// Package llmjson absorbs the shape variability of JSON produced by LLMs.
// It is the only place that knows which shapes are accepted.
package llmjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bookai/backend/internal/model"

	"github.com/xeipuuv/gojsonschema"
)

var (
	ErrNoGenres = errors.New("llmjson: response has no usable genres")
	ErrNoBooks  = errors.New("llmjson: response has no usable books")
)

// BookListKeys are the object keys accepted for a book list, in priority order
var BookListKeys = []string{"books", "recommendations", "results", "data"}

const genreAnalysisSchema = `{
  "type": "object",
  "required": ["genres"],
  "properties": {
    "genres": {
      "type": "array",
      "minItems": 1,
      "items": {"type": "string"}
    }
  }
}`

var genreSchema = mustSchema(genreAnalysisSchema)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("llmjson: invalid schema: %v", err))
	}
	return schema
}

// BookSuggestion is one book proposed by the LLM
type BookSuggestion struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Reason string `json:"reason"`
}

// StripFences removes a surrounding markdown code fence (``` or ```json)
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```JSON")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// DecodeGenreAnalysis parses {"genres": [...], "reasoning": "..."}.
// A missing or empty genres list is an error.
func DecodeGenreAnalysis(text string) (*model.GenreAnalysis, error) {
	body := StripFences(text)

	result, err := genreSchema.Validate(gojsonschema.NewStringLoader(body))
	if err != nil {
		return nil, fmt.Errorf("llmjson: invalid JSON: %w", err)
	}
	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			reasons = append(reasons, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrNoGenres, strings.Join(reasons, "; "))
	}

	var raw struct {
		Genres    []string        `json:"genres"`
		Reasoning json.RawMessage `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("llmjson: invalid JSON: %w", err)
	}

	analysis := &model.GenreAnalysis{Reasoning: rawString(raw.Reasoning)}
	for _, g := range raw.Genres {
		if g = strings.TrimSpace(g); g != "" {
			analysis.Genres = append(analysis.Genres, g)
		}
	}
	if len(analysis.Genres) == 0 {
		return nil, ErrNoGenres
	}
	return analysis, nil
}

// DecodeBookList accepts either a bare JSON array of books or an object
// holding the array under one of BookListKeys (first list found wins).
// Items that are not objects or have no title are dropped; order is kept.
func DecodeBookList(text string) ([]BookSuggestion, error) {
	body := []byte(StripFences(text))

	items, err := bookListItems(body)
	if err != nil {
		return nil, err
	}

	books := make([]BookSuggestion, 0, len(items))
	for _, item := range items {
		var b BookSuggestion
		if err := json.Unmarshal(item, &b); err != nil {
			continue
		}
		b.Title = strings.TrimSpace(b.Title)
		b.Author = strings.TrimSpace(b.Author)
		b.Reason = strings.TrimSpace(b.Reason)
		if b.Title == "" {
			continue
		}
		books = append(books, b)
	}
	if len(books) == 0 {
		return nil, ErrNoBooks
	}
	return books, nil
}

func bookListItems(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrNoBooks
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("llmjson: invalid JSON: %w", err)
		}
		return items, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("llmjson: invalid JSON: %w", err)
	}
	for _, key := range BookListKeys {
		value, ok := obj[key]
		if !ok {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(value, &items); err != nil || items == nil {
			// present but not a list
			continue
		}
		return items, nil
	}
	return nil, ErrNoBooks
}

// rawString returns a JSON string value, or the raw text for other types
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
