package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mrlokans/bookstore/internal/entities"
)

type SortKey string

const (
	SortByTitle  SortKey = "title"
	SortByPrice  SortKey = "price"
	SortByRating SortKey = "rating"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ListParams describes one invocation of the filter/sort pipeline.
// Zero values mean "no query", "no genre filter", title/ascending and
// no truncation.
type ListParams struct {
	Query     string
	Genre     string
	SortBy    SortKey
	Direction SortDirection
	Limit     int
}

// Apply runs the filter/sort pipeline over the full catalog and
// returns a new ordered slice. The input is never modified.
//
// The free-text query matches title, author or any genre tag with a
// case-insensitive substring comparison. Matching genre tags is the
// behavior of the original storefront's search box, so a query like
// "fantasy" finds every book tagged with the genre even when the word
// appears in no title.
//
// The genre filter is a case-sensitive exact match on a tag, sorting
// is stable, and truncation happens after sorting so that asking for a
// larger limit later extends the previously shown list instead of
// reshuffling it.
func Apply(books []entities.Book, p ListParams) []entities.Book {
	result := make([]entities.Book, 0, len(books))

	query := strings.ToLower(strings.TrimSpace(p.Query))
	for _, book := range books {
		if query != "" && !matchesQuery(book, query) {
			continue
		}
		if p.Genre != "" && !book.Genres.Contains(p.Genre) {
			continue
		}
		result = append(result, book)
	}

	sortBooks(result, p.SortBy, p.Direction)

	if p.Limit > 0 && len(result) > p.Limit {
		result = result[:p.Limit]
	}

	return result
}

func matchesQuery(book entities.Book, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(book.Title), lowerQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(book.Author), lowerQuery) {
		return true
	}
	for _, genre := range book.Genres {
		if strings.Contains(strings.ToLower(genre), lowerQuery) {
			return true
		}
	}
	return false
}

func sortBooks(books []entities.Book, key SortKey, direction SortDirection) {
	if key == "" {
		key = SortByTitle
	}

	// Collators are not safe for concurrent use, so each pipeline run
	// gets its own.
	coll := collate.New(language.Und, collate.IgnoreCase)

	less := func(a, b entities.Book) bool {
		switch key {
		case SortByPrice:
			return a.Price < b.Price
		case SortByRating:
			return a.Rating < b.Rating
		default:
			return coll.CompareString(a.Title, b.Title) < 0
		}
	}

	sort.SliceStable(books, func(i, j int) bool {
		if direction == Descending {
			return less(books[j], books[i])
		}
		return less(books[i], books[j])
	})
}

// Genres returns the distinct genre tags across the catalog, sorted
// alphabetically.
func Genres(books []entities.Book) []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, book := range books {
		for _, genre := range book.Genres {
			if _, ok := seen[genre]; ok {
				continue
			}
			seen[genre] = struct{}{}
			genres = append(genres, genre)
		}
	}
	sort.Strings(genres)
	return genres
}

// Featured returns books flagged for the featured shelf.
func Featured(books []entities.Book) []entities.Book {
	var result []entities.Book
	for _, book := range books {
		if book.IsFeatured {
			result = append(result, book)
		}
	}
	return result
}

// NewReleases returns books flagged as new arrivals.
func NewReleases(books []entities.Book) []entities.Book {
	var result []entities.Book
	for _, book := range books {
		if book.IsNew {
			result = append(result, book)
		}
	}
	return result
}
