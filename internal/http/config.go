package http

import (
	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/cart"
	"github.com/mrlokans/bookstore/internal/catalog"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/tasks"
	"github.com/mrlokans/bookstore/internal/wishlist"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Catalog  *catalog.Service
	Cart     *cart.Store
	Wishlist *wishlist.Store

	// Authentication
	AuthConfig     config.Auth
	AuthService    *auth.Service
	UpstreamClient *auth.UpstreamClient
	SessionManager *auth.SessionManager
	RateLimiter    *auth.RateLimiter
	AuthStorage    AuthStorage

	// Task queue client (optional; nil falls back to synchronous refresh)
	TaskClient *tasks.Client

	// Security
	CSRFSecret    []byte
	SecureCookies bool

	// Listing page size when the client sends no limit
	DefaultPageSize int

	// Application info
	Version string
}
