package recommend

import (
	"bookai/backend/internal/model"
	"bookai/backend/internal/textutil"
)

type curatedBook struct {
	title, author, cover, tag string
}

var curatedBooks = []curatedBook{
	{"The Midnight Library", "Matt Haig", "https://books.google.com/books/content?id=Y54CEAAAQBAJ&printsec=frontcover&img=1&zoom=1", "Popular Fiction"},
	{"Project Hail Mary", "Andy Weir", "https://books.google.com/books/content?id=gcCOEAAAQBAJ&printsec=frontcover&img=1&zoom=1", "Sci-Fi"},
	{"Atomic Habits", "James Clear", "https://books.google.com/books/content?id=lFhbDwAAQBAJ&printsec=frontcover&img=1&zoom=1", "Self-Improvement"},
	{"The Silent Patient", "Alex Michaelides", "https://books.google.com/books/content?id=IjpGDwAAQBAJ&printsec=frontcover&img=1&zoom=1", "Thriller"},
}

// Curated returns the static popular list minus the library titles,
// truncated to limit
func Curated(libraryTitles []string, limit int) []model.Recommendation {
	owned := textutil.TitleSet(libraryTitles)

	out := make([]model.Recommendation, 0, len(curatedBooks))
	for _, b := range curatedBooks {
		if len(out) == limit {
			break
		}
		if _, ok := owned[textutil.TitleKey(b.title)]; ok {
			continue
		}
		out = append(out, model.Recommendation{
			Title:    b.title,
			Author:   b.author,
			CoverURL: model.StringPtr(b.cover),
			Reason:   b.tag,
		})
	}
	return out
}
