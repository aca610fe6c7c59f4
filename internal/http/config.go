package http

import (
	"github.com/dndsfx/soundboard/internal/auth"
	"github.com/dndsfx/soundboard/internal/database"
	"github.com/dndsfx/soundboard/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database

	// Stores
	CatalogStore     CatalogStore
	SessionListStore SessionListStore

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	RateLimiter    *auth.RateLimiter
	CSRFSecret     []byte
	SecureCookies  bool

	// Audio file serving
	AudioDir       string
	AudioURLPrefix string

	// Task queue client and inline fallback for admin-triggered syncs
	TaskClient *tasks.Client
	Syncer     tasks.CatalogSyncer

	// Application info
	Version string
}
