// Package sanitize cleans provider-supplied text before it is shown to
// users or embedded in an LLM prompt.
package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy = bluemonday.StrictPolicy()

	// block-level tags become a space so adjacent sentences don't fuse
	breakTags  = regexp.MustCompile(`(?i)<\s*/?\s*(br|p|div|li)\b[^>]*>`)
	whitespace = regexp.MustCompile(`\s+`)
)

// instructionPatterns detects instruction-like content in third-party
// descriptions (indirect prompt injection).
var instructionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+|any\s+)?(previous|prior|above)\s+instructions`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+|the\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+(a|an|the)\b`),
	regexp.MustCompile(`(?i)\bsystem\s*prompt\b`),
	regexp.MustCompile(`(?i)</?\s*(system|assistant|user)\s*>`),
}

// Description strips HTML from a metadata description, unescapes
// entities and collapses whitespace.
func Description(raw string) string {
	if raw == "" {
		return ""
	}
	text := breakTags.ReplaceAllString(raw, " ")
	text = stripPolicy.Sanitize(text)
	text = html.UnescapeString(text)
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// ForPrompt neutralizes instruction-like patterns by wrapping them in 【】
// brackets so the model reads them as quoted text.
func ForPrompt(text string) string {
	result := text
	for _, pattern := range instructionPatterns {
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			return "【" + match + "】"
		})
	}
	return result
}
