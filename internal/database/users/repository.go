// Package users provides database operations for accounts and pending
// email changes.
package users

import (
	"time"

	"gorm.io/gorm"

	"github.com/dndsfx/soundboard/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser persists a new user record.
func (r *Repository) CreateUser(user *entities.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByIdentifier looks a user up by email or username.
func (r *Repository) GetUserByIdentifier(identifier string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ? OR username = ?", identifier, identifier).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists reports whether any user has the given email address.
func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// UsernameExists reports whether any user has the given username.
func (r *Repository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// TouchLastLogin records a successful login.
func (r *Repository) TouchLastLogin(userID uint) error {
	now := time.Now()
	return r.db.Model(&entities.User{}).Where("id = ?", userID).
		Update("last_login", now).Error
}

// UpdateNames applies non-empty name changes to the user row.
func (r *Repository) UpdateNames(userID uint, firstName, lastName string) error {
	updates := map[string]any{}
	if firstName != "" {
		updates["first_name"] = firstName
	}
	if lastName != "" {
		updates["last_name"] = lastName
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&entities.User{}).Where("id = ?", userID).Updates(updates).Error
}

// UpdateEmail applies a verified email change.
func (r *Repository) UpdateEmail(userID uint, email string) error {
	return r.db.Model(&entities.User{}).Where("id = ?", userID).
		Update("email", email).Error
}

// UpdatePasswordHash replaces the stored password hash.
func (r *Repository) UpdatePasswordHash(userID uint, hash string) error {
	return r.db.Model(&entities.User{}).Where("id = ?", userID).
		Update("password_hash", hash).Error
}

// DeleteUser removes a user and any pending email changes. Session lists
// are removed separately by sessionlists.Repository.DeleteAllForUser so the
// cascade is explicit at the call site.
func (r *Repository) DeleteUser(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&entities.PendingEmailChange{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.User{}, userID).Error
	})
}

// ReplacePendingEmailChange deletes any prior pending change for the user
// and stores the new one, inside one transaction.
func (r *Repository) ReplacePendingEmailChange(pending *entities.PendingEmailChange) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", pending.UserID).
			Delete(&entities.PendingEmailChange{}).Error; err != nil {
			return err
		}
		return tx.Create(pending).Error
	})
}

// LatestPendingEmailChange returns the most recent pending change for the
// user, or gorm.ErrRecordNotFound.
func (r *Repository) LatestPendingEmailChange(userID uint) (*entities.PendingEmailChange, error) {
	var pending entities.PendingEmailChange
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&pending).Error
	if err != nil {
		return nil, err
	}
	return &pending, nil
}

// DeletePendingEmailChange removes one pending change row.
func (r *Repository) DeletePendingEmailChange(id uint) error {
	return r.db.Delete(&entities.PendingEmailChange{}, id).Error
}
