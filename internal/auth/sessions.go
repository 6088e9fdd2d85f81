package auth

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/bookstore/internal/config"
)

// Session data keys
const (
	SessionKeyUserID    = "user_id"
	SessionKeyUserName  = "user_name"
	SessionKeyUserEmail = "user_email"
	SessionKeyToken     = "token"
)

// SessionManager wraps scs.SessionManager with storefront-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) (*SessionManager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = cfg.SessionLifetime
	sm.IdleTimeout = cfg.SessionLifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// CreateSession records the logged-in user after the collaborator (or
// the local service) has validated the credentials.
func (sm *SessionManager) CreateSession(r *http.Request, user User, token string) error {
	// Renew token to prevent session fixation
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	sm.Put(r.Context(), SessionKeyUserID, user.ID)
	sm.Put(r.Context(), SessionKeyUserName, user.Name)
	sm.Put(r.Context(), SessionKeyUserEmail, user.Email)
	sm.Put(r.Context(), SessionKeyToken, token)

	return nil
}

// DestroySession removes all session data and invalidates the session.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// CurrentUser returns the session's user, or nil when not logged in.
func (sm *SessionManager) CurrentUser(r *http.Request) *User {
	id := sm.GetString(r.Context(), SessionKeyUserID)
	if id == "" {
		return nil
	}
	return &User{
		ID:    id,
		Name:  sm.GetString(r.Context(), SessionKeyUserName),
		Email: sm.GetString(r.Context(), SessionKeyUserEmail),
	}
}

// Token returns the access token held in the session, if any.
func (sm *SessionManager) Token(r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyToken)
}

// IsAuthenticated reports whether the request carries a valid session.
func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	return sm.CurrentUser(r) != nil
}
