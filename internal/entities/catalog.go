package entities

import "time"

// Category groups sounds (e.g. Combat, Magic, Ambience).
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:80;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:80" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	IsActive    bool      `gorm:"default:true" json:"-"`
	CreatedAt   time.Time `json:"-"`

	Sounds []Sound `gorm:"foreignKey:CategoryID" json:"-"`
}

// Sound is one catalog entry with a default audio file and zero or more
// variants. Catalog rows are written by the sync process or seeding and are
// deactivated, never deleted, when their files disappear.
type Sound struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"index;size:120;not null" json:"name"`
	CategoryID      uint      `gorm:"index;not null" json:"category_id"`
	FilePath        string    `gorm:"index;size:500;not null" json:"file_path"`
	DurationSeconds *float64  `json:"duration_seconds,omitempty"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time `json:"-"`

	Category Category       `gorm:"foreignKey:CategoryID" json:"-"`
	Variants []SoundVariant `gorm:"foreignKey:SoundID;constraint:OnDelete:CASCADE" json:"-"`
}

// SoundVariant is an alternate audio file for the same logical sound,
// chosen at play time.
type SoundVariant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SoundID   uint      `gorm:"index;not null" json:"sound_id"`
	FilePath  string    `gorm:"size:500;not null" json:"file_path"`
	Label     string    `gorm:"size:80" json:"label,omitempty"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"-"`
}
