package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstore/internal/entities"
)

func testCatalog() []entities.Book {
	return []entities.Book{
		{ID: "1", Title: "1984", Author: "George Orwell", Price: 1999, Rating: 4.8, Genres: entities.GenreList{"Fiction"}},
		{ID: "2", Title: "Dune", Author: "Frank Herbert", Price: 2500, Rating: 4.5, Genres: entities.GenreList{"SciFi"}},
		{ID: "3", Title: "Emma", Author: "Jane Austen", Price: 1500, Rating: 4.2, Genres: entities.GenreList{"Fiction", "Romance"}},
	}
}

func ids(books []entities.Book) []string {
	result := make([]string, len(books))
	for i, b := range books {
		result[i] = b.ID
	}
	return result
}

func TestApply_NoFilters_SortsByTitleAscending(t *testing.T) {
	result := Apply(testCatalog(), ListParams{})

	assert.Equal(t, []string{"1", "2", "3"}, ids(result))
}

func TestApply_SortByPrice(t *testing.T) {
	asc := Apply(testCatalog(), ListParams{SortBy: SortByPrice, Direction: Ascending})
	assert.Equal(t, []string{"3", "1", "2"}, ids(asc))

	desc := Apply(testCatalog(), ListParams{SortBy: SortByPrice, Direction: Descending})
	assert.Equal(t, []string{"2", "1", "3"}, ids(desc))
}

func TestApply_SortByPrice_DescendingReversesAscending(t *testing.T) {
	// No price ties in the test catalog, so descending must be the
	// exact reverse of ascending.
	asc := Apply(testCatalog(), ListParams{SortBy: SortByPrice, Direction: Ascending})
	desc := Apply(testCatalog(), ListParams{SortBy: SortByPrice, Direction: Descending})

	require.Equal(t, len(asc), len(desc))
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
}

func TestApply_SortByRating(t *testing.T) {
	result := Apply(testCatalog(), ListParams{SortBy: SortByRating, Direction: Descending})

	assert.Equal(t, []string{"1", "2", "3"}, ids(result))
}

func TestApply_StableOnEqualKeys(t *testing.T) {
	books := []entities.Book{
		{ID: "a", Title: "Alpha", Price: 1000},
		{ID: "b", Title: "Beta", Price: 1000},
		{ID: "c", Title: "Gamma", Price: 1000},
	}

	result := Apply(books, ListParams{SortBy: SortByPrice, Direction: Ascending})

	// Equal prices keep their relative input order.
	assert.Equal(t, []string{"a", "b", "c"}, ids(result))
}

func TestApply_QueryMatchesTitleCaseInsensitive(t *testing.T) {
	result := Apply(testCatalog(), ListParams{Query: "dUnE"})

	require.Len(t, result, 1)
	assert.Equal(t, "2", result[0].ID)
}

func TestApply_QueryMatchesAuthor(t *testing.T) {
	result := Apply(testCatalog(), ListParams{Query: "orwell"})

	require.Len(t, result, 1)
	assert.Equal(t, "1", result[0].ID)
}

func TestApply_QueryMatchesGenreTags(t *testing.T) {
	// The search box also matches genre tags: "fiction" finds both
	// Fiction-tagged books even though neither title contains it.
	result := Apply(testCatalog(), ListParams{Query: "fiction"})

	assert.Equal(t, []string{"1", "3"}, ids(result))
}

func TestApply_BlankQueryIsNoOp(t *testing.T) {
	result := Apply(testCatalog(), ListParams{Query: "   "})

	assert.Len(t, result, 3)
}

func TestApply_GenreFilterExactMatch(t *testing.T) {
	result := Apply(testCatalog(), ListParams{Genre: "Romance"})
	require.Len(t, result, 1)
	assert.Equal(t, "3", result[0].ID)

	// Case-sensitive exact tag match: no partials, no case folding.
	assert.Empty(t, Apply(testCatalog(), ListParams{Genre: "romance"}))
	assert.Empty(t, Apply(testCatalog(), ListParams{Genre: "Rom"}))
}

func TestApply_LimitIsPrefixCompatible(t *testing.T) {
	params := ListParams{SortBy: SortByPrice, Direction: Ascending}

	params.Limit = 2
	first := Apply(testCatalog(), params)
	params.Limit = 3
	second := Apply(testCatalog(), params)

	require.Len(t, first, 2)
	require.Len(t, second, 3)
	// A larger limit extends the list; previously shown books keep
	// their positions.
	assert.Equal(t, ids(first), ids(second)[:2])
}

func TestApply_EmptyCatalog(t *testing.T) {
	result := Apply(nil, ListParams{Query: "anything", Genre: "Fiction"})

	assert.Empty(t, result)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	books := testCatalog()
	Apply(books, ListParams{SortBy: SortByPrice, Direction: Descending})

	assert.Equal(t, []string{"1", "2", "3"}, ids(books))
}

func TestGenres(t *testing.T) {
	genres := Genres(testCatalog())

	assert.Equal(t, []string{"Fiction", "Romance", "SciFi"}, genres)
}

func TestFeaturedAndNewReleases(t *testing.T) {
	books := []entities.Book{
		{ID: "1", IsFeatured: true},
		{ID: "2", IsNew: true},
		{ID: "3", IsFeatured: true, IsNew: true},
	}

	assert.Equal(t, []string{"1", "3"}, ids(Featured(books)))
	assert.Equal(t, []string{"2", "3"}, ids(NewReleases(books)))
}
