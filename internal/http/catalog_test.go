package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogController_ListCategories(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	ts.createSound(t, "combat", "Sword Slash", "combat/sword-slash.mp3")
	ts.createSound(t, "combat", "Shield Block", "combat/shield-block.mp3")

	w := ts.do(t, "GET", "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	categories := decodeBody(t, w)["categories"].([]any)
	require.Len(t, categories, 5)

	first := categories[0].(map[string]any)
	assert.Equal(t, "Combat", first["name"])
	assert.Equal(t, "combat", first["slug"])
	assert.Equal(t, float64(2), first["sound_count"])

	second := categories[1].(map[string]any)
	assert.Equal(t, "Magic", second["name"])
	assert.Equal(t, float64(0), second["sound_count"])
}

func TestCatalogController_ListSounds(t *testing.T) {
	t.Run("returns sounds with playable urls", func(t *testing.T) {
		ts, cleanup := setupTestServer(t)
		defer cleanup()

		ts.createSound(t, "combat", "Sword Slash", "combat/sword-slash.mp3")

		w := ts.do(t, "GET", "/api/sounds", nil)
		require.Equal(t, http.StatusOK, w.Code)

		sounds := decodeBody(t, w)["sounds"].([]any)
		require.Len(t, sounds, 1)
		sound := sounds[0].(map[string]any)
		assert.Equal(t, "Sword Slash", sound["name"])
		assert.Equal(t, "Combat", sound["category_name"])
		assert.Equal(t, "/static/audio/combat/sword-slash.mp3", sound["url"])
		assert.Equal(t, []any{}, sound["variants"])
	})

	t.Run("filters by category and search term", func(t *testing.T) {
		ts, cleanup := setupTestServer(t)
		defer cleanup()

		combat := ts.createSound(t, "combat", "Sword Slash", "combat/sword-slash.mp3")
		ts.createSound(t, "magic", "Fireball", "magic/fireball.mp3")

		byCategory := ts.do(t, "GET", fmt.Sprintf("/api/sounds?category_id=%d", combat.CategoryID), nil)
		require.Equal(t, http.StatusOK, byCategory.Code)
		sounds := decodeBody(t, byCategory)["sounds"].([]any)
		require.Len(t, sounds, 1)
		assert.Equal(t, "Sword Slash", sounds[0].(map[string]any)["name"])

		bySearch := ts.do(t, "GET", "/api/sounds?q=FIRE", nil)
		require.Equal(t, http.StatusOK, bySearch.Code)
		sounds = decodeBody(t, bySearch)["sounds"].([]any)
		require.Len(t, sounds, 1)
		assert.Equal(t, "Fireball", sounds[0].(map[string]any)["name"])
	})

	t.Run("treats a malformed category id as no filter", func(t *testing.T) {
		ts, cleanup := setupTestServer(t)
		defer cleanup()

		ts.createSound(t, "combat", "Sword Slash", "combat/sword-slash.mp3")
		ts.createSound(t, "magic", "Fireball", "magic/fireball.mp3")

		w := ts.do(t, "GET", "/api/sounds?category_id=banana", nil)
		require.Equal(t, http.StatusOK, w.Code)
		sounds := decodeBody(t, w)["sounds"].([]any)
		assert.Len(t, sounds, 2)
	})
}

func TestCatalogController_GetSound(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	sound := ts.createSound(t, "combat", "Sword Slash", "combat/sword-slash.mp3")
	ts.createVariant(t, sound.ID, "Slash 2", "combat/sword-slash/2.mp3", 1)
	ts.createVariant(t, sound.ID, "Slash 1", "combat/sword-slash/1.mp3", 0)

	w := ts.do(t, "GET", fmt.Sprintf("/api/sounds/%d", sound.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Sword Slash", body["name"])
	variants := body["variants"].([]any)
	require.Len(t, variants, 2)
	assert.Equal(t, "Slash 1", variants[0].(map[string]any)["label"])
	assert.Equal(t, "Slash 2", variants[1].(map[string]any)["label"])

	missing := ts.do(t, "GET", "/api/sounds/9999", nil)
	require.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "Sound not found", decodeBody(t, missing)["error"])
}
