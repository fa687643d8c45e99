package prompt

// Summary templates
const (
	SummarySystem = "You are a helpful book reviewer. Write concise, engaging summaries in 2-3 sentences. No spoilers."

	// Args: title, author, description
	SummaryUser = `Summarize this book in 2-3 sentences. Be concise and engaging.

Book: "%s" by %s

Description: %s

Write a brief, compelling summary that captures what the book is about without spoilers.`
)

// Recommendation templates
const (
	GenreAnalysisSystem = "You are a book recommendation expert. Always respond with valid JSON only."

	// Args: bullet list of titles
	GenreAnalysisUser = `Analyze this reading list briefly.

Books:
%s

Return JSON only:
{"genres": ["genre1", "genre2"], "reasoning": "brief explanation"}`

	BookListSystem = "Return valid JSON only. Be concise."

	// Args: book count, comma separated genres
	BookListUser = `Recommend %d popular books for: %s
Return JSON: {"books": [{"title": "Book Title", "author": "Author Name", "reason": "5 words max"}]}`
)

// Translation templates
const (
	// Args: source language name, target language name
	TranslationSystem = "You are a professional translator. Translate text accurately from %s to %s. Provide only the translation without any explanations or notes."

	// Args: source language name, target language name, text
	TranslationUser = "Translate the following text from %s to %s. Only provide the translation, no explanations:\n\n%s"
)

// Fixed response texts
const (
	// Args: title, author
	GenericSummaryTemplate = "'%s' by %s is a book worth exploring. Check it out to discover what makes it special!"

	SummaryUnavailable     = "Summary not available for this book."
	TranslationUnavailable = "Translation unavailable. Please try again."
)
