// Package textutil holds the rune-aware string helpers shared by the
// summary, recommendation and translation pipelines. All lengths are in
// Unicode code points.
package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Len returns the number of code points in s
func Len(s string) int {
	return len([]rune(s))
}

// Truncate returns at most max code points of s
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max])
	}
	return s
}

// Split cuts s into contiguous chunks of at most size code points. Only
// the final chunk may be shorter. An empty s yields no chunks.
func Split(s string, size int) []string {
	if size <= 0 {
		return []string{s}
	}
	runes := []rune(s)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// TitleKey is the comparison key for titles: NFC-normalized, trimmed and
// case-folded. A Caser is stateful, so each call builds its own.
func TitleKey(title string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(title)))
}

// TitleSet builds a lookup set of TitleKey values
func TitleSet(titles []string) map[string]struct{} {
	set := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		set[TitleKey(t)] = struct{}{}
	}
	return set
}
