package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dndsfx/soundboard/internal/entities"
)

// Context keys for the request-scoped identity
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyUser   = "auth_user"
)

// Middleware resolves the session cookie into a request-scoped user
// identity. It never rejects requests itself; handlers that need a caller
// opt in with RequireAuth.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, sessionManager *SessionManager) *Middleware {
	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
	}
}

// Handler returns a Gin middleware that attaches the authenticated user,
// if any, to the request context.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := m.sessionManager.GetUserID(c.Request)
		if userID != 0 {
			user, err := m.service.GetUserByID(userID)
			if err == nil && user.IsActive {
				c.Set(ContextKeyUserID, user.ID)
				c.Set(ContextKeyUser, user)
			}
		}
		c.Next()
	}
}

// RequireAuth aborts with a 401 JSON error when no authenticated user is
// attached to the request.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the authenticated user's ID from the context.
// Returns 0 when the request is unauthenticated.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetUser retrieves the authenticated user from the context, or nil.
func GetUser(c *gin.Context) *entities.User {
	if u, exists := c.Get(ContextKeyUser); exists {
		if user, ok := u.(*entities.User); ok {
			return user
		}
	}
	return nil
}
