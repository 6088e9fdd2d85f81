package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/catalog"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/wishlist"
)

type WishlistController struct {
	wishlist *wishlist.Store
	catalog  *catalog.Service
}

func NewWishlistController(wishlistStore *wishlist.Store, svc *catalog.Service) *WishlistController {
	return &WishlistController{
		wishlist: wishlistStore,
		catalog:  svc,
	}
}

func (controller *WishlistController) wishlistPayload() gin.H {
	saved := controller.wishlist.Books()
	return gin.H{
		"books": saved,
		"count": len(saved),
	}
}

// GetWishlist serves the saved books in insertion order.
func (controller *WishlistController) GetWishlist(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, controller.wishlistPayload())
}

// AddToWishlist saves the book identified in the URL. Saving a book
// twice is a no-op.
func (controller *WishlistController) AddToWishlist(c *gin.Context) {
	book, err := controller.catalog.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "add to wishlist")
		return
	}

	controller.wishlist.Add(*book)
	c.IndentedJSON(http.StatusOK, controller.wishlistPayload())
}

// RemoveFromWishlist deletes the saved entry; absent books are a no-op.
func (controller *WishlistController) RemoveFromWishlist(c *gin.Context) {
	controller.wishlist.Remove(c.Param("id"))
	c.IndentedJSON(http.StatusOK, controller.wishlistPayload())
}

// ClearWishlist empties the wishlist.
func (controller *WishlistController) ClearWishlist(c *gin.Context) {
	controller.wishlist.Clear()
	c.IndentedJSON(http.StatusOK, controller.wishlistPayload())
}
