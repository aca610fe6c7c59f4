// Package auth provides user accounts and session authentication.
//
// Users register with an email and password and sign in with either the
// email or their optional username. Sessions are server-side (scs backed
// by the SQLite database) and carried in an HttpOnly cookie. Email address
// changes go through a two-step verification flow with a short-lived
// numeric code.
//
// # Configuration
//
//	AUTH_SESSION_LIFETIME=720h   # Session duration (30 days default)
//	AUTH_BCRYPT_COST=12          # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true     # HTTPS-only cookies
//	AUTH_CSRF_SECRET=<secret>    # Enables CSRF protection when set
//	AUTH_MAX_LOGIN_ATTEMPTS=5    # Failed logins before lockout
//
// # Usage
//
// Initialize in the entrypoint:
//
//	authService := auth.NewService(db.DB, mailer, cfg.Auth)
//	sessionManager, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	middleware := auth.NewMiddleware(authService, sessionManager)
//	router.Use(auth.SessionLoadSave(sessionManager), middleware.Handler())
//
// Extract the signed-in user in handlers:
//
//	userID := auth.GetUserID(c) // 0 when anonymous
package auth
