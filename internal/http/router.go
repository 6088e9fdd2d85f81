package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/config"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	health := NewHealthController(cfg.Database, cfg.Catalog, cfg.Version)
	booksController := NewBooksController(cfg.Catalog, cfg.DefaultPageSize)
	cartController := NewCartController(cfg.Cart, cfg.Catalog)
	wishlistController := NewWishlistController(cfg.Wishlist, cfg.Catalog)
	catalogAdmin := NewCatalogAdminController(cfg.Catalog, cfg.TaskClient)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Catalog endpoints
	router.GET("/api/books", booksController.ListBooks)
	router.GET("/api/books/featured", booksController.FeaturedBooks)
	router.GET("/api/books/new", booksController.NewReleases)
	router.GET("/api/books/:id", booksController.GetBook)
	router.GET("/api/genres", booksController.ListGenres)
	router.POST("/api/catalog/refresh", catalogAdmin.Refresh)

	// Cart endpoints
	router.GET("/api/cart", cartController.GetCart)
	router.POST("/api/cart", cartController.AddToCart)
	router.DELETE("/api/cart", cartController.ClearCart)
	router.POST("/api/cart/items/:id", cartController.AddItem)
	router.PUT("/api/cart/items/:id", cartController.UpdateItem)
	router.DELETE("/api/cart/items/:id", cartController.RemoveItem)

	// Wishlist endpoints
	router.GET("/api/wishlist", wishlistController.GetWishlist)
	router.DELETE("/api/wishlist", wishlistController.ClearWishlist)
	router.POST("/api/wishlist/:id", wishlistController.AddToWishlist)
	router.DELETE("/api/wishlist/:id", wishlistController.RemoveFromWishlist)

	// Auth endpoints, only when an auth backend is configured
	if cfg.AuthConfig.Mode != config.AuthModeNone && cfg.SessionManager != nil {
		authController := NewAuthController(
			cfg.AuthConfig.Mode,
			cfg.AuthService,
			cfg.UpstreamClient,
			cfg.SessionManager,
			cfg.RateLimiter,
			cfg.AuthStorage,
		)
		router.POST("/api/auth/login", authController.Login)
		router.POST("/api/auth/register", authController.Register)
		router.POST("/api/auth/logout", authController.Logout)
		router.GET("/api/auth/session", authController.Session)
	}

	return router
}
