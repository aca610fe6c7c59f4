package database

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dndsfx/soundboard/internal/entities"
)

func setupTestDatabase(t *testing.T) (*Database, func()) {
	t.Helper()
	dbPath := "./test_database_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestNewDatabase_SeedsDefaultCategories(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	var categories []entities.Category
	require.NoError(t, db.DB.Order("sort_order").Find(&categories).Error)
	require.Len(t, categories, 5)
	assert.Equal(t, "Combat", categories[0].Name)
	assert.Equal(t, "combat", categories[0].Slug)
	assert.Equal(t, "UI & Misc", categories[4].Name)
	assert.Equal(t, "ui-misc", categories[4].Slug)
}

func TestSeedSampleSounds(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, db.SeedSampleSounds())

	var soundCount int64
	require.NoError(t, db.DB.Model(&entities.Sound{}).Count(&soundCount).Error)
	assert.Equal(t, int64(15), soundCount)

	var sword entities.Sound
	require.NoError(t, db.DB.Where("name = ?", "Sword Slash").First(&sword).Error)
	assert.Equal(t, "combat/sword-slash.mp3", sword.FilePath)

	var variantCount int64
	require.NoError(t, db.DB.Model(&entities.SoundVariant{}).
		Where("sound_id = ?", sword.ID).Count(&variantCount).Error)
	assert.Equal(t, int64(2), variantCount)
}

func TestSeedSampleSounds_SkipsPopulatedCategories(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, db.SeedSampleSounds())
	require.NoError(t, db.SeedSampleSounds())

	var soundCount, variantCount int64
	require.NoError(t, db.DB.Model(&entities.Sound{}).Count(&soundCount).Error)
	require.NoError(t, db.DB.Model(&entities.SoundVariant{}).Count(&variantCount).Error)
	assert.Equal(t, int64(15), soundCount)
	assert.Equal(t, int64(2), variantCount)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "sword-slash", slugify("Sword Slash"))
	assert.Equal(t, "quest-complete", slugify("Quest Complete"))
	assert.Equal(t, "level-up", slugify("  Level Up!  "))
}
