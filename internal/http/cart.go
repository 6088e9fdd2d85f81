package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/cart"
	"github.com/mrlokans/bookstore/internal/catalog"
	"github.com/mrlokans/bookstore/internal/database/books"
)

type CartController struct {
	cart    *cart.Store
	catalog *catalog.Service
}

func NewCartController(cartStore *cart.Store, svc *catalog.Service) *CartController {
	return &CartController{
		cart:    cartStore,
		catalog: svc,
	}
}

// cartPayload is the response shape shared by every cart endpoint, so
// the client always gets back the full post-mutation state.
func (controller *CartController) cartPayload() gin.H {
	return gin.H{
		"items":      controller.cart.Lines(),
		"totalItems": controller.cart.TotalItems(),
		"totalPrice": controller.cart.TotalPrice(),
	}
}

// GetCart serves the current cart state.
func (controller *CartController) GetCart(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, controller.cartPayload())
}

type addToCartRequest struct {
	ID string `json:"id" binding:"required"`
}

// AddToCart adds one copy of a book identified in the JSON body.
func (controller *CartController) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "id is required")
		return
	}
	controller.addBook(c, req.ID)
}

// AddItem adds one copy of the book identified in the URL.
func (controller *CartController) AddItem(c *gin.Context) {
	controller.addBook(c, c.Param("id"))
}

func (controller *CartController) addBook(c *gin.Context, id string) {
	book, err := controller.catalog.Get(id)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "add to cart")
		return
	}

	controller.cart.Add(*book)
	c.IndentedJSON(http.StatusOK, controller.cartPayload())
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateItem sets the quantity of an existing cart line. Quantities
// below 1 remove the line; a book that isn't in the cart is left
// alone, matching the store's semantics.
func (controller *CartController) UpdateItem(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "quantity is required")
		return
	}

	controller.cart.UpdateQuantity(c.Param("id"), *req.Quantity)
	c.IndentedJSON(http.StatusOK, controller.cartPayload())
}

// RemoveItem deletes a cart line. Removing an absent book is a no-op.
func (controller *CartController) RemoveItem(c *gin.Context) {
	controller.cart.Remove(c.Param("id"))
	c.IndentedJSON(http.StatusOK, controller.cartPayload())
}

// ClearCart empties the cart.
func (controller *CartController) ClearCart(c *gin.Context) {
	controller.cart.Clear()
	c.IndentedJSON(http.StatusOK, controller.cartPayload())
}
