package model

// BookQuery identifies a book by its title/author pair
type BookQuery struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// BookMetadata is a single volume as resolved by the metadata provider
type BookMetadata struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url,omitempty"` // empty when the provider has no thumbnail
}

// Summary is the response body of the book summary endpoint
type Summary struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Text   string `json:"summary"`
}

// GenreAnalysis is the intermediate result of reading-pattern inference.
// It is never returned to callers.
type GenreAnalysis struct {
	Genres    []string `json:"genres"`
	Reasoning string   `json:"reasoning"`
}

// Recommendation is a single suggested book
type Recommendation struct {
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	CoverURL *string `json:"coverId"` // wire name kept for the web front end; null when unknown
	Reason   string  `json:"reason"`
}

// RecommendationReason tags how a recommendation set was produced
type RecommendationReason string

const (
	ReasonEmptyLibrary RecommendationReason = "empty_library"
	ReasonAIPowered    RecommendationReason = "ai_powered"
	ReasonFallback     RecommendationReason = "fallback"
	ReasonError        RecommendationReason = "error"
)

// RecommendationResult is the output of the recommendation engine
type RecommendationResult struct {
	Recommendations []Recommendation     `json:"recommendations"`
	Count           int                  `json:"count"`
	Reason          RecommendationReason `json:"reason"`
}

// TranslationMethod tags which path produced a translation
type TranslationMethod string

const (
	MethodLLM      TranslationMethod = "llm"
	MethodMyMemory TranslationMethod = "mymemory"
	MethodNone     TranslationMethod = "none"
)

// TranslationResult is the response body of the translation endpoint
type TranslationResult struct {
	Original   string            `json:"original"`
	Translated string            `json:"translated"`
	Method     TranslationMethod `json:"method,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// StringPtr returns a pointer to s, or nil when s is empty
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
