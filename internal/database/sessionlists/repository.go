// Package sessionlists provides database operations for user-owned session
// lists and their ordered sound entries.
//
// All lookups are scoped to the owning user: a list id owned by someone
// else surfaces as gorm.ErrRecordNotFound, indistinguishable from an id
// that does not exist.
package sessionlists

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/dndsfx/soundboard/internal/entities"
)

var (
	// ErrSoundNotFound means the referenced sound id does not exist.
	ErrSoundNotFound = errors.New("sound not found")
	// ErrVariantMismatch means the referenced variant does not belong to the
	// referenced sound.
	ErrVariantMismatch = errors.New("variant not found for this sound")
	// ErrAlreadyInList means the (sound, variant) pair is already present.
	ErrAlreadyInList = errors.New("sound already in list")
	// ErrNotInList means no entry for the sound exists in the list.
	ErrNotInList = errors.New("sound not in list")
)

// Repository handles all session list database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new session lists repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// preloadEntries loads a list's entries in play order along with the sound,
// its category and variants, and the chosen variant if any.
func preloadEntries(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Entries.Sound").
		Preload("Entries.Sound.Category").
		Preload("Entries.Sound.Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Entries.SoundVariant")
}

// ListForUser returns all lists owned by the user, most recently updated
// first.
func (r *Repository) ListForUser(userID uint) ([]entities.SessionList, error) {
	var lists []entities.SessionList
	err := preloadEntries(r.db).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&lists).Error
	return lists, err
}

// GetForUser returns one list owned by the user, or gorm.ErrRecordNotFound.
func (r *Repository) GetForUser(id, userID uint) (*entities.SessionList, error) {
	var list entities.SessionList
	err := preloadEntries(r.db).
		Where("id = ? AND user_id = ?", id, userID).
		First(&list).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// Create persists a new empty list owned by the user.
func (r *Repository) Create(userID uint, name string) (*entities.SessionList, error) {
	list := &entities.SessionList{
		UserID: userID,
		Name:   name,
	}
	if err := r.db.Create(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Rename updates the name of a caller-owned list.
func (r *Repository) Rename(id, userID uint, name string) (*entities.SessionList, error) {
	var list entities.SessionList
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&list).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&list).Update("name", name).Error; err != nil {
		return nil, err
	}
	return r.GetForUser(id, userID)
}

// Delete removes a caller-owned list and all its entries.
func (r *Repository) Delete(id, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var list entities.SessionList
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&list).Error; err != nil {
			return err
		}
		if err := tx.Where("session_list_id = ?", list.ID).
			Delete(&entities.SessionListSound{}).Error; err != nil {
			return err
		}
		return tx.Delete(&list).Error
	})
}

// DeleteAllForUser removes every list owned by the user along with their
// entries. Used by account deletion.
func (r *Repository) DeleteAllForUser(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var listIDs []uint
		if err := tx.Model(&entities.SessionList{}).
			Where("user_id = ?", userID).
			Pluck("id", &listIDs).Error; err != nil {
			return err
		}
		if len(listIDs) == 0 {
			return nil
		}
		if err := tx.Where("session_list_id IN ?", listIDs).
			Delete(&entities.SessionListSound{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&entities.SessionList{}).Error
	})
}

// AddSound appends a sound (optionally a specific variant) to the end of a
// caller-owned list. The new entry's sort position is the current maximum
// plus one; an empty list starts at 1.
//
// A concurrent duplicate insert that slips past the existence check trips
// the unique index and is reported as ErrAlreadyInList.
func (r *Repository) AddSound(listID, userID, soundID uint, variantID *uint) (*entities.SessionListSound, error) {
	var entryID uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var list entities.SessionList
		if err := tx.Where("id = ? AND user_id = ?", listID, userID).First(&list).Error; err != nil {
			return err
		}

		var sound entities.Sound
		if err := tx.First(&sound, soundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSoundNotFound
			}
			return err
		}

		if variantID != nil {
			var variant entities.SoundVariant
			err := tx.Where("id = ? AND sound_id = ?", *variantID, soundID).First(&variant).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrVariantMismatch
				}
				return err
			}
		}

		var count int64
		dupQuery := tx.Model(&entities.SessionListSound{}).
			Where("session_list_id = ? AND sound_id = ?", listID, soundID)
		if variantID != nil {
			dupQuery = dupQuery.Where("sound_variant_id = ?", *variantID)
		} else {
			dupQuery = dupQuery.Where("sound_variant_id IS NULL")
		}
		if err := dupQuery.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyInList
		}

		var maxOrder int64
		err := tx.Model(&entities.SessionListSound{}).
			Where("session_list_id = ?", listID).
			Select("COALESCE(MAX(sort_order), 0)").
			Scan(&maxOrder).Error
		if err != nil {
			return err
		}

		entry := &entities.SessionListSound{
			SessionListID:  listID,
			SoundID:        soundID,
			SoundVariantID: variantID,
			SortOrder:      int(maxOrder) + 1,
		}
		if err := tx.Create(entry).Error; err != nil {
			if isUniqueConstraintError(err) {
				return ErrAlreadyInList
			}
			return err
		}
		entryID = entry.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	var entry entities.SessionListSound
	err = r.db.
		Preload("Sound").
		Preload("Sound.Category").
		Preload("Sound.Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("SoundVariant").
		First(&entry, entryID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to reload entry: %w", err)
	}
	return &entry, nil
}

// RemoveSound removes a sound entry from a caller-owned list. With a
// variant id it targets the exact (sound, variant) entry, without one the
// entry with no variant. When no exact match exists it falls back to
// removing any entry for the sound id regardless of variant.
func (r *Repository) RemoveSound(listID, userID, soundID uint, variantID *uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var list entities.SessionList
		if err := tx.Where("id = ? AND user_id = ?", listID, userID).First(&list).Error; err != nil {
			return err
		}

		exact := tx.Where("session_list_id = ? AND sound_id = ?", listID, soundID)
		if variantID != nil {
			exact = exact.Where("sound_variant_id = ?", *variantID)
		} else {
			exact = exact.Where("sound_variant_id IS NULL")
		}

		var entry entities.SessionListSound
		err := exact.Order("id ASC").First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Fall back to any entry for this sound id. This can remove a
			// different variant than the caller named; preserved behavior,
			// flagged for product review.
			err = tx.Where("session_list_id = ? AND sound_id = ?", listID, soundID).
				Order("id ASC").First(&entry).Error
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotInList
			}
			return err
		}

		return tx.Delete(&entry).Error
	})
}

// Reorder assigns sort positions 0..n-1 following the order of soundIDs.
// Sound ids without an entry in the list are silently skipped; entries not
// mentioned keep their old positions, which can produce ties.
func (r *Repository) Reorder(listID, userID uint, soundIDs []uint) (*entities.SessionList, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var list entities.SessionList
		if err := tx.Where("id = ? AND user_id = ?", listID, userID).First(&list).Error; err != nil {
			return err
		}

		for position, soundID := range soundIDs {
			var entry entities.SessionListSound
			err := tx.Where("session_list_id = ? AND sound_id = ?", listID, soundID).
				Order("id ASC").First(&entry).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if err := tx.Model(&entry).Update("sort_order", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetForUser(listID, userID)
}

// isUniqueConstraintError reports whether err is a SQLite unique
// constraint violation.
func isUniqueConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
