package entities

import "time"

// User is an account that can save session lists. Username is optional;
// unset usernames are stored as NULL so the unique index allows many of them.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     *string    `gorm:"uniqueIndex;size:80" json:"username,omitempty"`
	Email        string     `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	FirstName    string     `gorm:"size:50;not null" json:"first_name"`
	LastName     string     `gorm:"size:50;not null" json:"last_name"`
	IsActive     bool       `gorm:"default:true" json:"-"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"-"`

	SessionLists []SessionList `gorm:"foreignKey:UserID" json:"-"`
}

// PendingEmailChange holds a short-lived verification code sent to a new
// address. At most one effective row per user: creating a new request
// deletes prior ones. Expiry is checked lazily at confirmation time.
type PendingEmailChange struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	NewEmail  string    `gorm:"size:120;not null" json:"new_email"`
	Code      string    `gorm:"size:10;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
