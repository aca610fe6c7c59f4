package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dndsfx/soundboard/internal/auth"
)

// AccountController handles registration, login and profile management.
// The session cookie is the only credential; responses never distinguish a
// foreign resource from a missing one.
type AccountController struct {
	service        *auth.Service
	sessionManager *auth.SessionManager
	rateLimiter    *auth.RateLimiter
}

func NewAccountController(service *auth.Service, sm *auth.SessionManager, rl *auth.RateLimiter) *AccountController {
	return &AccountController{
		service:        service,
		sessionManager: sm,
		rateLimiter:    rl,
	}
}

// Register creates an account and signs the new user in.
// POST /api/auth/register
func (ac *AccountController) Register(c *gin.Context) {
	var req struct {
		Email     string `json:"email"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Password  string `json:"password"`
		Remember  bool   `json:"remember"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Missing request body")
		return
	}

	user, err := ac.service.Register(auth.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			respondBadRequest(c, "Email, first name, last name, and password are required")
		case errors.Is(err, auth.ErrEmailInvalid):
			respondBadRequest(c, "Invalid email format")
		case errors.Is(err, auth.ErrEmailTaken):
			respondBadRequest(c, "Email already registered")
		case errors.Is(err, auth.ErrUsernameTaken):
			respondBadRequest(c, "Username already taken")
		case isPasswordRuleError(err):
			respondBadRequest(c, passwordRuleMessage(err))
		default:
			respondInternalError(c, err, "register")
		}
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user, req.Remember); err != nil {
		respondInternalError(c, err, "create session")
		return
	}
	respondCreated(c, gin.H{"message": "Registration successful", "user": user})
}

// Login authenticates by email or username and establishes a session.
// POST /api/auth/login
func (ac *AccountController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
		Remember bool   `json:"remember"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Missing request body")
		return
	}

	identifier := strings.TrimSpace(req.Email)
	if identifier == "" {
		identifier = strings.TrimSpace(req.Username)
	}
	password := strings.TrimSpace(req.Password)
	if identifier == "" || password == "" {
		respondBadRequest(c, "Email/username and password are required")
		return
	}

	if ac.rateLimiter != nil {
		allowed, retryAfter := ac.rateLimiter.Allow(c.ClientIP(), identifier)
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			respondError(c, http.StatusTooManyRequests, "Too many login attempts. Try again later.")
			return
		}
	}

	user, err := ac.service.Authenticate(identifier, password)
	if err != nil {
		if ac.rateLimiter != nil {
			ac.rateLimiter.RecordFailure(c.ClientIP(), identifier)
		}
		switch {
		case errors.Is(err, auth.ErrUnknownAccount):
			respondError(c, http.StatusUnauthorized, "No account found with that email or username")
		case errors.Is(err, auth.ErrInvalidPassword):
			respondError(c, http.StatusUnauthorized, "Invalid password")
		case errors.Is(err, auth.ErrAccountDeactivated):
			respondError(c, http.StatusUnauthorized, "Account is deactivated")
		default:
			respondInternalError(c, err, "login")
		}
		return
	}

	if ac.rateLimiter != nil {
		ac.rateLimiter.RecordSuccess(c.ClientIP(), identifier)
	}
	if err := ac.sessionManager.CreateSession(c.Request, user, req.Remember); err != nil {
		respondInternalError(c, err, "create session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user})
}

// Logout destroys the caller's session.
// POST /api/auth/logout
func (ac *AccountController) Logout(c *gin.Context) {
	if err := ac.sessionManager.DestroySession(c.Request); err != nil {
		respondInternalError(c, err, "destroy session")
		return
	}
	respondMessage(c, "Logout successful")
}

// Me reports the signed-in user, or null for anonymous callers. Always 200.
// GET /api/auth/me
func (ac *AccountController) Me(c *gin.Context) {
	user := auth.GetUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetProfile returns the caller's account.
// GET /api/auth/profile
func (ac *AccountController) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": auth.GetUser(c)})
}

// UpdateProfile applies non-empty name changes. Email edits are rejected
// here and redirected to the verification flow.
// PUT /api/auth/profile
func (ac *AccountController) UpdateProfile(c *gin.Context) {
	var req struct {
		FirstName string  `json:"first_name"`
		LastName  string  `json:"last_name"`
		Email     *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Missing request body")
		return
	}

	current := auth.GetUser(c)
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != current.Email {
			respondBadRequest(c, `Email cannot be changed here. Use "Request email change" and then enter the verification code sent to your new address.`)
			return
		}
	}

	user, err := ac.service.UpdateProfile(GetUserID(c), req.FirstName, req.LastName)
	if err != nil {
		respondInternalError(c, err, "update profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}

// RequestEmailChange starts the email verification flow by mailing a code
// to the new address. Without a configured mail server the code comes back
// in the response for local development.
// POST /api/auth/profile/request-email-change
func (ac *AccountController) RequestEmailChange(c *gin.Context) {
	var req struct {
		NewEmail string `json:"new_email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.NewEmail) == "" {
		respondBadRequest(c, "new_email is required")
		return
	}

	result, err := ac.service.RequestEmailChange(GetUserID(c), req.NewEmail)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailInvalid):
			respondBadRequest(c, "Invalid email format")
		case errors.Is(err, auth.ErrSameEmail):
			respondBadRequest(c, "New email is the same as your current email")
		case errors.Is(err, auth.ErrEmailInUse):
			respondBadRequest(c, "Email already in use")
		case errors.Is(err, auth.ErrMailDeliveryFailed):
			respondError(c, http.StatusServiceUnavailable, "Failed to send verification email. Try again later.")
		default:
			respondInternalError(c, err, "request email change")
		}
		return
	}

	if result.DevCode != "" {
		c.JSON(http.StatusOK, gin.H{
			"message":         "Verification code generated (email not configured). Use the code below.",
			"expires_minutes": result.ExpiresInMins,
			"dev_code":        result.DevCode,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Verification code sent to " + result.NewEmail,
		"expires_minutes": result.ExpiresInMins,
	})
}

// ConfirmEmailChange applies the pending email change when the code checks
// out. An expired code deletes the pending request.
// POST /api/auth/profile/confirm-email-change
func (ac *AccountController) ConfirmEmailChange(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		respondBadRequest(c, "code is required")
		return
	}

	user, err := ac.service.ConfirmEmailChange(GetUserID(c), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNoPendingChange):
			respondBadRequest(c, "No pending email change. Request a new code first.")
		case errors.Is(err, auth.ErrCodeExpired):
			respondBadRequest(c, "Verification code has expired. Request a new code.")
		case errors.Is(err, auth.ErrCodeMismatch):
			respondBadRequest(c, "Invalid verification code")
		default:
			respondInternalError(c, err, "confirm email change")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email updated", "user": user})
}

// ChangePassword verifies the current password and applies a new one.
// POST /api/auth/change-password
func (ac *AccountController) ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		respondBadRequest(c, "Current and new password required")
		return
	}

	err := ac.service.ChangePassword(GetUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidPassword):
			respondBadRequest(c, "Current password is incorrect")
		case isPasswordRuleError(err):
			respondBadRequest(c, passwordRuleMessage(err))
		default:
			respondInternalError(c, err, "change password")
		}
		return
	}
	respondMessage(c, "Password changed")
}

// isPasswordRuleError reports whether err is one of the password
// complexity violations.
func isPasswordRuleError(err error) bool {
	return errors.Is(err, auth.ErrPasswordTooShort) ||
		errors.Is(err, auth.ErrPasswordTooLong) ||
		errors.Is(err, auth.ErrPasswordNoUpper) ||
		errors.Is(err, auth.ErrPasswordNoLower) ||
		errors.Is(err, auth.ErrPasswordNoDigit)
}

// passwordRuleMessage rewords a password rule violation for API clients.
func passwordRuleMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrPasswordTooShort):
		return "Password must be at least 8 characters"
	case errors.Is(err, auth.ErrPasswordTooLong):
		return "Password exceeds maximum length of 72 bytes"
	case errors.Is(err, auth.ErrPasswordNoUpper):
		return "Password must contain at least one uppercase letter"
	case errors.Is(err, auth.ErrPasswordNoLower):
		return "Password must contain at least one lowercase letter"
	case errors.Is(err, auth.ErrPasswordNoDigit):
		return "Password must contain at least one number"
	default:
		return "Invalid password"
	}
}
