package catalog

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dndsfx/soundboard/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_catalog_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Category{},
		&entities.Sound{},
		&entities.SoundVariant{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func createTestCategory(t *testing.T, db *gorm.DB, name, slug string, sortOrder int, active bool) *entities.Category {
	category := &entities.Category{
		Name:      name,
		Slug:      slug,
		SortOrder: sortOrder,
		IsActive:  active,
	}
	err := db.Create(category).Error
	require.NoError(t, err)
	return category
}

func createTestSound(t *testing.T, db *gorm.DB, categoryID uint, name string, active bool) *entities.Sound {
	sound := &entities.Sound{
		Name:       name,
		CategoryID: categoryID,
		FilePath:   "files/" + name + ".mp3",
		IsActive:   active,
	}
	err := db.Create(sound).Error
	require.NoError(t, err)
	return sound
}

func TestRepository_ListActiveCategories(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestCategory(t, db, "Magic", "magic", 2, true)
	createTestCategory(t, db, "Combat", "combat", 1, true)
	createTestCategory(t, db, "Retired", "retired", 0, false)

	categories, err := repo.ListActiveCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Combat", categories[0].Name)
	assert.Equal(t, "Magic", categories[1].Name)
}

func TestRepository_CountActiveSoundsByCategory(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	combat := createTestCategory(t, db, "Combat", "combat", 0, true)
	magic := createTestCategory(t, db, "Magic", "magic", 1, true)

	createTestSound(t, db, combat.ID, "Sword Slash", true)
	createTestSound(t, db, combat.ID, "Shield Block", true)
	createTestSound(t, db, combat.ID, "Broken Horn", false)

	counts, err := repo.CountActiveSoundsByCategory()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[combat.ID])
	assert.Zero(t, counts[magic.ID])
}

func TestRepository_ListActiveSounds(t *testing.T) {
	t.Run("skips inactive sounds and inactive categories", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		combat := createTestCategory(t, db, "Combat", "combat", 0, true)
		hidden := createTestCategory(t, db, "Hidden", "hidden", 1, false)

		createTestSound(t, db, combat.ID, "Sword Slash", true)
		createTestSound(t, db, combat.ID, "Broken Horn", false)
		createTestSound(t, db, hidden.ID, "Secret Chime", true)

		sounds, err := repo.ListActiveSounds(nil, "")
		require.NoError(t, err)
		require.Len(t, sounds, 1)
		assert.Equal(t, "Sword Slash", sounds[0].Name)
		assert.Equal(t, "Combat", sounds[0].Category.Name)
	})

	t.Run("filters by category id", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		combat := createTestCategory(t, db, "Combat", "combat", 0, true)
		magic := createTestCategory(t, db, "Magic", "magic", 1, true)

		createTestSound(t, db, combat.ID, "Sword Slash", true)
		createTestSound(t, db, magic.ID, "Fireball", true)

		sounds, err := repo.ListActiveSounds(&magic.ID, "")
		require.NoError(t, err)
		require.Len(t, sounds, 1)
		assert.Equal(t, "Fireball", sounds[0].Name)
	})

	t.Run("searches name case-insensitively", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		combat := createTestCategory(t, db, "Combat", "combat", 0, true)
		createTestSound(t, db, combat.ID, "Sword Slash", true)
		createTestSound(t, db, combat.ID, "Shield Block", true)

		sounds, err := repo.ListActiveSounds(nil, "SWORD")
		require.NoError(t, err)
		require.Len(t, sounds, 1)
		assert.Equal(t, "Sword Slash", sounds[0].Name)
	})

	t.Run("orders variants by sort order", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		combat := createTestCategory(t, db, "Combat", "combat", 0, true)
		sound := createTestSound(t, db, combat.ID, "Sword Slash", true)

		err := db.Create(&entities.SoundVariant{
			SoundID: sound.ID, FilePath: "v/b.mp3", Label: "Slash 2", SortOrder: 1,
		}).Error
		require.NoError(t, err)
		err = db.Create(&entities.SoundVariant{
			SoundID: sound.ID, FilePath: "v/a.mp3", Label: "Slash 1", SortOrder: 0,
		}).Error
		require.NoError(t, err)

		sounds, err := repo.ListActiveSounds(nil, "")
		require.NoError(t, err)
		require.Len(t, sounds, 1)
		require.Len(t, sounds[0].Variants, 2)
		assert.Equal(t, "Slash 1", sounds[0].Variants[0].Label)
		assert.Equal(t, "Slash 2", sounds[0].Variants[1].Label)
	})
}

func TestRepository_GetActiveSound(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	combat := createTestCategory(t, db, "Combat", "combat", 0, true)
	sound := createTestSound(t, db, combat.ID, "Sword Slash", true)
	retired := createTestSound(t, db, combat.ID, "Broken Horn", false)

	fetched, err := repo.GetActiveSound(sound.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sword Slash", fetched.Name)

	_, err = repo.GetActiveSound(retired.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetActiveSound(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
