package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/catalog"
	"github.com/mrlokans/bookstore/internal/database/books"
)

type BooksController struct {
	catalog         *catalog.Service
	defaultPageSize int
}

func NewBooksController(svc *catalog.Service, defaultPageSize int) *BooksController {
	return &BooksController{
		catalog:         svc,
		defaultPageSize: defaultPageSize,
	}
}

// ListBooks serves the browse page data: free-text query, genre
// filter, sorting and limit all in one call. The total reflects the
// filtered set before truncation so clients can render "load more".
func (controller *BooksController) ListBooks(c *gin.Context) {
	sortBy := catalog.SortKey(c.DefaultQuery("sort", string(catalog.SortByTitle)))
	switch sortBy {
	case catalog.SortByTitle, catalog.SortByPrice, catalog.SortByRating:
	default:
		respondBadRequest(c, "invalid sort key")
		return
	}

	direction := catalog.SortDirection(c.DefaultQuery("order", string(catalog.Ascending)))
	switch direction {
	case catalog.Ascending, catalog.Descending:
	default:
		respondBadRequest(c, "invalid sort order")
		return
	}

	limit, ok := parseLimitQuery(c, controller.defaultPageSize)
	if !ok {
		return
	}

	filtered, err := controller.catalog.List(catalog.ListParams{
		Query:     c.Query("q"),
		Genre:     c.Query("genre"),
		SortBy:    sortBy,
		Direction: direction,
	})
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	total := len(filtered)
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"books": filtered,
		"count": len(filtered),
		"total": total,
	})
}

// GetBook serves a single book by its catalog ID.
func (controller *BooksController) GetBook(c *gin.Context) {
	book, err := controller.catalog.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

// FeaturedBooks serves the books flagged for the featured shelf.
func (controller *BooksController) FeaturedBooks(c *gin.Context) {
	all, err := controller.catalog.Books()
	if err != nil {
		respondInternalError(c, err, "featured books")
		return
	}
	featured := catalog.Featured(all)
	c.IndentedJSON(http.StatusOK, gin.H{"books": featured, "count": len(featured)})
}

// NewReleases serves the books flagged as new arrivals.
func (controller *BooksController) NewReleases(c *gin.Context) {
	all, err := controller.catalog.Books()
	if err != nil {
		respondInternalError(c, err, "new releases")
		return
	}
	fresh := catalog.NewReleases(all)
	c.IndentedJSON(http.StatusOK, gin.H{"books": fresh, "count": len(fresh)})
}

// ListGenres serves the distinct genre tags across the catalog.
func (controller *BooksController) ListGenres(c *gin.Context) {
	genres, err := controller.catalog.Genres()
	if err != nil {
		respondInternalError(c, err, "list genres")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"genres": genres, "count": len(genres)})
}
