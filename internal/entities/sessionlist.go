package entities

import "time"

// SessionList is a user-owned ordered playlist of sounds for a game session.
type SessionList struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Entries []SessionListSound `gorm:"foreignKey:SessionListID" json:"-"`
}

// SessionListSound is a junction row: one sound (or a specific variant of
// it) at a position in a session list.
//
// The composite unique index enforces one row per (list, sound, variant).
// SQLite treats NULL variant ids as distinct inside the index, so the
// store's pre-insert check is authoritative for no-variant entries and the
// index backstops the variant-qualified ones.
type SessionListSound struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SessionListID  uint      `gorm:"index;not null;uniqueIndex:uq_list_sound_variant" json:"session_list_id"`
	SoundID        uint      `gorm:"not null;uniqueIndex:uq_list_sound_variant" json:"sound_id"`
	SoundVariantID *uint     `gorm:"uniqueIndex:uq_list_sound_variant" json:"sound_variant_id"`
	SortOrder      int       `gorm:"default:0" json:"sort_order"`
	AddedAt        time.Time `gorm:"autoCreateTime" json:"added_at"`

	Sound        Sound         `gorm:"foreignKey:SoundID" json:"-"`
	SoundVariant *SoundVariant `gorm:"foreignKey:SoundVariantID" json:"-"`
}
