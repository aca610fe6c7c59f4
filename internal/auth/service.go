package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dndsfx/soundboard/internal/config"
	"github.com/dndsfx/soundboard/internal/database/users"
	"github.com/dndsfx/soundboard/internal/entities"
)

// CodeExpiryMinutes is how long an email-change verification code stays valid.
const CodeExpiryMinutes = 15

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrMissingFields      = errors.New("email, first name, last name, and password are required")
	ErrEmailInvalid       = errors.New("invalid email format")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUnknownAccount     = errors.New("no account found with that email or username")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrUserNotFound       = errors.New("user not found")

	ErrSameEmail          = errors.New("new email is the same as your current email")
	ErrEmailInUse         = errors.New("email already in use")
	ErrNoPendingChange    = errors.New("no pending email change")
	ErrCodeExpired        = errors.New("verification code has expired")
	ErrCodeMismatch       = errors.New("invalid verification code")
	ErrMailDeliveryFailed = errors.New("failed to send verification email")
)

// Mailer delivers verification emails. Configured reports whether a real
// transport exists; when it does not, the service falls back to returning
// codes directly (local/dev only).
type Mailer interface {
	Configured() bool
	Send(to, subject, body string) error
}

// Service handles account management: registration, login, profile updates,
// the email-change verification flow and password changes.
type Service struct {
	users  *users.Repository
	mailer Mailer
	config config.Auth
}

// NewService creates a new account service. mailer may not be nil; use a
// mail.Mailer built from empty config for the unconfigured fallback.
func NewService(db *gorm.DB, mailer Mailer, cfg config.Auth) *Service {
	return &Service{
		users:  users.NewRepository(db),
		mailer: mailer,
		config: cfg,
	}
}

// ValidateEmail checks an address against the standard pattern.
func ValidateEmail(email string) bool {
	return len(email) <= 254 && emailPattern.MatchString(email)
}

// RegisterInput carries the registration form fields. Username is optional.
type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// Register validates the input, creates the user and returns it. The
// caller is responsible for establishing the session.
func (s *Service) Register(input RegisterInput) (*entities.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	password := strings.TrimSpace(input.Password)

	if email == "" || firstName == "" || lastName == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !ValidateEmail(email) {
		return nil, ErrEmailInvalid
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	taken, err := s.users.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	var username *string
	if trimmed := strings.TrimSpace(input.Username); trimmed != "" {
		taken, err := s.users.UsernameExists(trimmed)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing username: %w", err)
		}
		if taken {
			return nil, ErrUsernameTaken
		}
		username = &trimmed
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Email:        email,
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate validates credentials against an email-or-username
// identifier and returns the user. Unknown identifier, wrong password and
// deactivated account each return a distinct error.
func (s *Service) Authenticate(identifier, password string) (*entities.User, error) {
	user, err := s.users.GetUserByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownAccount
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	if err := s.users.TouchLastLogin(user.ID); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	return s.GetUserByID(user.ID)
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	user, err := s.users.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies non-empty name changes and returns the fresh user.
// Email changes never go through here; they require the verification flow.
func (s *Service) UpdateProfile(userID uint, firstName, lastName string) (*entities.User, error) {
	err := s.users.UpdateNames(userID, strings.TrimSpace(firstName), strings.TrimSpace(lastName))
	if err != nil {
		return nil, err
	}
	return s.GetUserByID(userID)
}

// EmailChangeRequest is the outcome of RequestEmailChange. DevCode is set
// only when no mail transport is configured, so local setups can complete
// the flow without SMTP.
type EmailChangeRequest struct {
	NewEmail      string
	ExpiresInMins int
	DevCode       string
}

// RequestEmailChange starts the verification flow: prior pending requests
// for the user are superseded, a fresh 6-digit code is stored with a
// 15-minute expiry and mailed to the new address. A failed send deletes
// the pending row again and returns ErrMailDeliveryFailed.
func (s *Service) RequestEmailChange(userID uint, newEmail string) (*EmailChangeRequest, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	newEmail = strings.ToLower(strings.TrimSpace(newEmail))
	if !ValidateEmail(newEmail) {
		return nil, ErrEmailInvalid
	}
	if newEmail == user.Email {
		return nil, ErrSameEmail
	}
	taken, err := s.users.EmailExists(newEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if taken {
		return nil, ErrEmailInUse
	}

	code, err := GenerateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	pending := &entities.PendingEmailChange{
		UserID:    userID,
		NewEmail:  newEmail,
		Code:      code,
		ExpiresAt: time.Now().Add(CodeExpiryMinutes * time.Minute),
	}
	if err := s.users.ReplacePendingEmailChange(pending); err != nil {
		return nil, fmt.Errorf("failed to store pending email change: %w", err)
	}

	result := &EmailChangeRequest{
		NewEmail:      newEmail,
		ExpiresInMins: CodeExpiryMinutes,
	}

	if !s.mailer.Configured() {
		// Local/dev fallback: surface the code in the response instead of
		// mailing it. Must never be the production path.
		result.DevCode = code
		return result, nil
	}

	subject := "Verify your new email – D&D SFX"
	body := fmt.Sprintf(
		"You requested to change your email to this address.\n\n"+
			"Your verification code is: %s\n\n"+
			"Enter this code on your profile page to complete the change. "+
			"The code expires in %d minutes.\n\n"+
			"If you did not request this change, you can ignore this email.",
		code, CodeExpiryMinutes)

	if err := s.mailer.Send(newEmail, subject, body); err != nil {
		// Compensating delete so a dead transport leaves no half-open flow
		if delErr := s.users.DeletePendingEmailChange(pending.ID); delErr != nil {
			return nil, fmt.Errorf("failed to roll back pending change: %w", delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrMailDeliveryFailed, err)
	}
	return result, nil
}

// ConfirmEmailChange applies the most recent pending request if the code
// matches and has not expired. An expired row is deleted as a side effect,
// so a retry with the originally-correct code fails with ErrNoPendingChange.
func (s *Service) ConfirmEmailChange(userID uint, code string) (*entities.User, error) {
	pending, err := s.users.LatestPendingEmailChange(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPendingChange
		}
		return nil, err
	}

	if time.Now().After(pending.ExpiresAt) {
		if err := s.users.DeletePendingEmailChange(pending.ID); err != nil {
			return nil, fmt.Errorf("failed to delete expired pending change: %w", err)
		}
		return nil, ErrCodeExpired
	}
	if pending.Code != strings.TrimSpace(code) {
		return nil, ErrCodeMismatch
	}

	if err := s.users.UpdateEmail(userID, pending.NewEmail); err != nil {
		return nil, fmt.Errorf("failed to apply email change: %w", err)
	}
	if err := s.users.DeletePendingEmailChange(pending.ID); err != nil {
		return nil, fmt.Errorf("failed to delete pending change: %w", err)
	}
	return s.GetUserByID(userID)
}

// ChangePassword verifies the current password and applies a new one that
// meets the registration complexity rule.
func (s *Service) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if err := CheckPassword(currentPassword, user.PasswordHash); err != nil {
		return err
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword, s.config.BcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(userID, hash)
}
