// Package catalog provides read-only database operations over the sound
// library: categories, sounds and their variants.
//
// Catalog rows are written by the sync process (internal/catalogsync) or by
// seeding; the API surface in this package never mutates them.
package catalog

import (
	"gorm.io/gorm"

	"github.com/dndsfx/soundboard/internal/entities"
)

// Repository handles catalog database queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActiveCategories returns active categories ordered by (sort_order, name).
func (r *Repository) ListActiveCategories() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Where("is_active = ?", true).
		Order("sort_order, name").
		Find(&categories).Error
	return categories, err
}

// CountActiveSoundsByCategory returns the number of active sounds per
// category id, for embedding in category listings.
func (r *Repository) CountActiveSoundsByCategory() (map[uint]int64, error) {
	type row struct {
		CategoryID uint
		Count      int64
	}
	var rows []row
	err := r.db.Model(&entities.Sound{}).
		Select("category_id, count(*) as count").
		Where("is_active = ?", true).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, rw := range rows {
		counts[rw.CategoryID] = rw.Count
	}
	return counts, nil
}

// ListActiveSounds returns active sounds joined through active categories,
// ordered by name. categoryID filters by category when non-nil; search
// applies a case-insensitive substring match on the sound name.
func (r *Repository) ListActiveSounds(categoryID *uint, search string) ([]entities.Sound, error) {
	query := r.db.
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Category").
		Joins("JOIN categories ON categories.id = sounds.category_id AND categories.is_active = ?", true).
		Where("sounds.is_active = ?", true)

	if categoryID != nil {
		query = query.Where("sounds.category_id = ?", *categoryID)
	}
	if search != "" {
		query = query.Where("LOWER(sounds.name) LIKE LOWER(?)", "%"+search+"%")
	}

	var sounds []entities.Sound
	err := query.Order("sounds.name").Find(&sounds).Error
	return sounds, err
}

// GetActiveSound fetches one active sound by id. Inactive and absent sounds
// are both gorm.ErrRecordNotFound.
func (r *Repository) GetActiveSound(id uint) (*entities.Sound, error) {
	var sound entities.Sound
	err := r.db.
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Category").
		Where("id = ? AND is_active = ?", id, true).
		First(&sound).Error
	if err != nil {
		return nil, err
	}
	return &sound, nil
}
