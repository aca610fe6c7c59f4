package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dndsfx/soundboard/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so the session context survives CSRF's
	// request replacement
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	router.Use(cfg.SessionManager.SessionLoadSave())
	router.Use(cfg.AuthMiddleware.Handler())

	// Audio files are served verbatim under the configured prefix
	if cfg.AudioDir != "" {
		router.Static(strings.TrimSuffix(cfg.AudioURLPrefix, "/"), cfg.AudioDir)
	}

	views := newViewBuilder(cfg.AudioURLPrefix)
	health := NewHealthController(cfg.Database, cfg.Version)
	catalog := NewCatalogController(cfg.CatalogStore, views)
	sessionLists := NewSessionListsController(cfg.SessionListStore, views)
	account := NewAccountController(cfg.AuthService, cfg.SessionManager, cfg.RateLimiter)
	admin := NewAdminController(cfg.TaskClient, cfg.Syncer)

	requireAuth := cfg.AuthMiddleware.RequireAuth()

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Catalog endpoints (public)
	router.GET("/api/categories", catalog.ListCategories)
	router.GET("/api/sounds", catalog.ListSounds)
	router.GET("/api/sounds/:id", catalog.GetSound)

	// Account endpoints
	router.POST("/api/auth/register", account.Register)
	router.POST("/api/auth/login", account.Login)
	router.POST("/api/auth/logout", requireAuth, account.Logout)
	router.GET("/api/auth/me", account.Me)
	router.GET("/api/auth/profile", requireAuth, account.GetProfile)
	router.PUT("/api/auth/profile", requireAuth, account.UpdateProfile)
	router.POST("/api/auth/profile/request-email-change", requireAuth, account.RequestEmailChange)
	router.POST("/api/auth/profile/confirm-email-change", requireAuth, account.ConfirmEmailChange)
	router.POST("/api/auth/change-password", requireAuth, account.ChangePassword)

	// Session list endpoints
	router.GET("/api/session-lists", requireAuth, sessionLists.ListSessionLists)
	router.POST("/api/session-lists", requireAuth, sessionLists.CreateSessionList)
	router.GET("/api/session-lists/:id", requireAuth, sessionLists.GetSessionList)
	router.PUT("/api/session-lists/:id", requireAuth, sessionLists.UpdateSessionList)
	router.DELETE("/api/session-lists/:id", requireAuth, sessionLists.DeleteSessionList)
	router.POST("/api/session-lists/:id/sounds", requireAuth, sessionLists.AddSound)
	router.DELETE("/api/session-lists/:id/sounds/:soundId", requireAuth, sessionLists.RemoveSound)
	router.PUT("/api/session-lists/:id/sounds/reorder", requireAuth, sessionLists.ReorderSounds)

	// Operational endpoints
	router.POST("/api/admin/sync", requireAuth, admin.TriggerCatalogSync)

	return router
}
