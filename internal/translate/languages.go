package translate

import "strings"

const (
	DefaultSource = "en"
	DefaultTarget = "ar"
)

var languageNames = map[string]string{
	"ar": "Arabic",
	"fr": "French",
	"es": "Spanish",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"en": "English",
}

// LanguageName returns the English name of a language code, or the code
// itself when it is not in the table
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// NormalizeLanguage extracts the lower-cased base code ("fr-FR" -> "fr").
// An empty code yields def.
func NormalizeLanguage(code, def string) string {
	code = strings.TrimSpace(code)
	if idx := strings.IndexAny(code, "-_"); idx != -1 {
		code = code[:idx]
	}
	if code == "" {
		return def
	}
	return strings.ToLower(code)
}
