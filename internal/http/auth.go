package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/entities"
)

// AuthStorage is the slice of the key-value store the auth handlers
// write the logged-in user and access token through, mirroring what
// the storefront UI keeps in browser storage.
type AuthStorage interface {
	Set(key, value string) error
	Delete(key string) error
}

type AuthController struct {
	mode     config.AuthMode
	service  *auth.Service
	upstream *auth.UpstreamClient
	sessions *auth.SessionManager
	limiter  *auth.RateLimiter
	storage  AuthStorage
}

func NewAuthController(
	mode config.AuthMode,
	service *auth.Service,
	upstream *auth.UpstreamClient,
	sessions *auth.SessionManager,
	limiter *auth.RateLimiter,
	storage AuthStorage,
) *AuthController {
	return &AuthController{
		mode:     mode,
		service:  service,
		upstream: upstream,
		sessions: sessions,
		limiter:  limiter,
		storage:  storage,
	}
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials against the configured backend (local
// user table or the remote auth API) and establishes a session.
func (controller *AuthController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondBadRequest(c, "email and password are required")
		return
	}

	key := controller.limitKey(c, req.Email)
	if controller.limiter != nil && !controller.limiter.Allow(key) {
		respondError(c, http.StatusTooManyRequests, "too many login attempts, try again later")
		return
	}

	var (
		user  auth.User
		token string
	)

	switch controller.mode {
	case config.AuthModeUpstream:
		upstreamUser, accessToken, err := controller.upstream.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			controller.recordFailure(key)
			respondError(c, http.StatusUnauthorized, err.Error())
			return
		}
		user, token = *upstreamUser, accessToken

	default:
		account, err := controller.service.Authenticate(req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				controller.recordFailure(key)
				respondError(c, http.StatusUnauthorized, err.Error())
				return
			}
			respondInternalError(c, err, "login")
			return
		}
		user = auth.ProfileFor(account)
		token, err = auth.GenerateLocalToken()
		if err != nil {
			respondInternalError(c, err, "login token")
			return
		}
	}

	if controller.limiter != nil {
		controller.limiter.RecordSuccess(key)
	}

	if err := controller.establishSession(c, user, token); err != nil {
		respondInternalError(c, err, "login session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "message": "Login successful"})
}

// Register creates an account and, unless the backend defers to email
// confirmation, logs the new user straight in.
func (controller *AuthController) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	var (
		user  auth.User
		token string
	)

	switch controller.mode {
	case config.AuthModeUpstream:
		upstreamUser, accessToken, err := controller.upstream.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrEmailConfirmationRequired) {
				respondSuccess(c, err.Error())
				return
			}
			respondBadRequest(c, err.Error())
			return
		}
		user, token = *upstreamUser, accessToken

	default:
		account, err := controller.service.CreateUser(req.Name, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrUserExists):
				respondError(c, http.StatusConflict, err.Error())
			case errors.Is(err, auth.ErrNameRequired),
				errors.Is(err, auth.ErrEmailRequired),
				errors.Is(err, auth.ErrPasswordRequired),
				errors.Is(err, auth.ErrEmailInvalid),
				errors.Is(err, auth.ErrPasswordTooShort),
				errors.Is(err, auth.ErrPasswordTooLong):
				respondBadRequest(c, err.Error())
			default:
				respondInternalError(c, err, "register")
			}
			return
		}
		user = auth.ProfileFor(account)
		token, err = auth.GenerateLocalToken()
		if err != nil {
			respondInternalError(c, err, "register token")
			return
		}
	}

	if err := controller.establishSession(c, user, token); err != nil {
		respondInternalError(c, err, "register session")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "message": "Registration successful"})
}

// Logout destroys the session and drops the persisted auth state.
func (controller *AuthController) Logout(c *gin.Context) {
	if err := controller.sessions.DestroySession(c.Request); err != nil {
		respondInternalError(c, err, "logout")
		return
	}
	controller.clearPersistedAuth()
	respondSuccess(c, "Logged out")
}

// Session reports who is logged in, if anyone. Always 200 so the UI
// can bootstrap its auth state with a single unauthenticated call.
func (controller *AuthController) Session(c *gin.Context) {
	user := controller.sessions.CurrentUser(c.Request)
	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"authenticated": user != nil,
	})
}

func (controller *AuthController) establishSession(c *gin.Context, user auth.User, token string) error {
	if err := controller.sessions.CreateSession(c.Request, user, token); err != nil {
		return err
	}
	controller.persistAuth(user, token)
	return nil
}

// persistAuth writes the user and token through to the durable store
// under the same keys the storefront UI uses. Failures are logged, not
// surfaced: the session is already established.
func (controller *AuthController) persistAuth(user auth.User, token string) {
	if controller.storage == nil {
		return
	}

	data, err := json.Marshal(user)
	if err != nil {
		log.Printf("Auth: failed to serialize user: %v", err)
		return
	}
	if err := controller.storage.Set(entities.StorageKeyAuthUser, string(data)); err != nil {
		log.Printf("Auth: failed to persist user: %v", err)
	}
	if err := controller.storage.Set(entities.StorageKeyAuthToken, token); err != nil {
		log.Printf("Auth: failed to persist token: %v", err)
	}
}

func (controller *AuthController) clearPersistedAuth() {
	if controller.storage == nil {
		return
	}
	if err := controller.storage.Delete(entities.StorageKeyAuthUser); err != nil {
		log.Printf("Auth: failed to clear persisted user: %v", err)
	}
	if err := controller.storage.Delete(entities.StorageKeyAuthToken); err != nil {
		log.Printf("Auth: failed to clear persisted token: %v", err)
	}
}

func (controller *AuthController) limitKey(c *gin.Context, email string) string {
	return c.ClientIP() + "|" + email
}

func (controller *AuthController) recordFailure(key string) {
	if controller.limiter != nil {
		controller.limiter.RecordFailure(key)
	}
}
