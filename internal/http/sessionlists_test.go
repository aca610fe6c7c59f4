package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionListsController_CreateAndList(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	ts.register(t, "dm@example.com")

	w := ts.do(t, "POST", "/api/session-lists", gin.H{"name": "Dungeon Crawl"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody(t, w)
	assert.Equal(t, "Dungeon Crawl", created["name"])

	lists := ts.do(t, "GET", "/api/session-lists", nil)
	require.Equal(t, http.StatusOK, lists.Code)
	body := decodeBody(t, lists)
	sessionLists := body["session_lists"].([]any)
	require.Len(t, sessionLists, 1)
}

func TestSessionListsController_CreateRequiresName(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	ts.register(t, "dm@example.com")

	w := ts.do(t, "POST", "/api/session-lists", gin.H{"name": "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "List name is required", decodeBody(t, w)["error"])

	w = ts.do(t, "POST", "/api/session-lists", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "List name is required", decodeBody(t, w)["error"])
}

func TestSessionListsController_OwnerScoping(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	ts.register(t, "owner@example.com")
	w := ts.do(t, "POST", "/api/session-lists", gin.H{"name": "Private"})
	require.Equal(t, http.StatusCreated, w.Code)
	listID := decodeBody(t, w)["id"].(float64)

	// Sign in as someone else; the list id behaves like a missing one.
	ts.do(t, "POST", "/api/auth/logout", nil)
	ts.register(t, "stranger@example.com")

	get := ts.do(t, "GET", fmt.Sprintf("/api/session-lists/%.0f", listID), nil)
	require.Equal(t, http.StatusNotFound, get.Code)
	assert.Equal(t, "Session list not found", decodeBody(t, get)["error"])
}

func TestSessionListsController_Rename(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	ts.register(t, "dm@example.com")
	w := ts.do(t, "POST", "/api/session-lists", gin.H{"name": "Old"})
	listID := decodeBody(t, w)["id"].(float64)

	renamed := ts.do(t, "PUT", fmt.Sprintf("/api/session-lists/%.0f", listID), gin.H{"name": "New"})
	require.Equal(t, http.StatusOK, renamed.Code)
	assert.Equal(t, "New", decodeBody(t, renamed)["name"])

	// An empty name leaves the list untouched.
	unchanged := ts.do(t, "PUT", fmt.Sprintf("/api/session-lists/%.0f", listID), gin.H{"name": ""})
	require.Equal(t, http.StatusOK, unchanged.Code)
	assert.Equal(t, "New", decodeBody(t, unchanged)["name"])
}

func TestSessionListsController_Delete(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	ts.register(t, "dm@example.com")
	w := ts.do(t, "POST", "/api/session-lists", gin.H{"name": "Short-lived"})
	listID := decodeBody(t, w)["id"].(float64)

	deleted := ts.do(t, "DELETE", fmt.Sprintf("/api/session-lists/%.0f", listID), nil)
	require.Equal(t, http.StatusOK, deleted.Code)
	assert.Equal(t, "Deleted", decodeBody(t, deleted)["message"])

	get := ts.do(t, "GET", fmt.Sprintf("/api/session-lists/%.0f", listID), nil)
	require.Equal(t, http.StatusNotFound, get.Code)
}

func TestSessionListsController_AddSound(t *testing.T) {
	t.Run("appends a sound and returns the entry", func(t *testing.T) {
		ts, cleanup := setupTestServer(t)
		defer cleanup()

		ts.register(t, "dm@example.com")
		sound := ts.createSound(t, "combat", "Sword Slash", "combat/sword-slash.mp3")
		w := ts.do(t, "POST", "/api/session-lists", gin.H{"name": "Combat Mix"})
		listID := decodeBody(t, w)["id"].(float64)

		added := ts.do(t, "POST", fmt.Sprintf("/api/session-lists/%.0f/sounds", listID),
			gin.H{"sound_id": sound.ID})
		require.Equal(t, http.StatusCreated, added.Code, added.Body.String())
		entry := decodeBody(t, added)
		assert.Equal(t, float64(1), entry["sort_order"])
		entrySound := entry["sound"].(map[string]any)
		assert.Equal(t, "Sword Slash", entrySound["name"])
		assert.Equal(t, "/static/audio/combat/sword-slash.mp3", entrySound["url"])
	})

	t.Run("rejects duplicates with the original message", func(t *testing.T) {
		ts, cleanup := setupTestServer(t)
		defer cleanup()

		ts.register(t, "dm@example.com")
		sound := ts.createSound(t, "combat", "Sword Slash", "combat/sword-slash.mp3")
		w := ts.do(t, "POST", "/api/session-lists", gin.H{"name": "Combat Mix"})
		listID := decodeBody(t, w)["id"].(float64)

		path := fmt.Sprintf("/api/session-lists/%.0f/sounds", listID)
		ts.do(t, "POST", path, gin.H{"sound_id": sound.ID})

		dup := ts.do(t, "POST", path, gin.H{"sound_id": sound.ID})
		require.Equal(t, http.StatusBadRequest, dup.Code)
		assert.Equal(t, "This sound (or variant) is already in the list",
			decodeBody(t, dup)["error"])
	})

	t.Run("requires sound_id", func(t *testing.T) {
		ts, cleanup := setupTestServer(t)
		defer cleanup()

		ts.register(t, "dm@example.com")
		w := ts.do(t, "POST", "/api/session-lists", gin.H{"name": "Combat Mix"})
		listID := decodeBody(t, w)["id"].(float64)

		missing := ts.do(t, "POST", fmt.Sprintf("/api/session-lists/%.0f/sounds", listID), gin.H{})
		require.Equal(t, http.StatusBadRequest, missing.Code)
		assert.Equal(t, "sound_id required", decodeBody(t, missing)["error"])
	})

	t.Run("rejects a foreign variant", func(t *testing.T) {
		ts, cleanup := setupTestServer(t)
		defer cleanup()

		ts.register(t, "dm@example.com")
		slash := ts.createSound(t, "combat", "Sword Slash", "combat/sword-slash.mp3")
		block := ts.createSound(t, "combat", "Shield Block", "combat/shield-block.mp3")
		variant := ts.createVariant(t, slash.ID, "Slash 1", "combat/sword-slash/1.mp3", 0)

		w := ts.do(t, "POST", "/api/session-lists", gin.H{"name": "Combat Mix"})
		listID := decodeBody(t, w)["id"].(float64)

		bad := ts.do(t, "POST", fmt.Sprintf("/api/session-lists/%.0f/sounds", listID),
			gin.H{"sound_id": block.ID, "sound_variant_id": variant.ID})
		require.Equal(t, http.StatusBadRequest, bad.Code)
		assert.Equal(t, "Variant not found for this sound", decodeBody(t, bad)["error"])
	})

	t.Run("rejects an unknown sound", func(t *testing.T) {
		ts, cleanup := setupTestServer(t)
		defer cleanup()

		ts.register(t, "dm@example.com")
		w := ts.do(t, "POST", "/api/session-lists", gin.H{"name": "Combat Mix"})
		listID := decodeBody(t, w)["id"].(float64)

		missing := ts.do(t, "POST", fmt.Sprintf("/api/session-lists/%.0f/sounds", listID),
			gin.H{"sound_id": 9999})
		require.Equal(t, http.StatusNotFound, missing.Code)
		assert.Equal(t, "Sound not found", decodeBody(t, missing)["error"])
	})
}

func TestSessionListsController_RemoveSound(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	ts.register(t, "dm@example.com")
	sound := ts.createSound(t, "combat", "Sword Slash", "combat/sword-slash.mp3")
	w := ts.do(t, "POST", "/api/session-lists", gin.H{"name": "Combat Mix"})
	listID := decodeBody(t, w)["id"].(float64)

	ts.do(t, "POST", fmt.Sprintf("/api/session-lists/%.0f/sounds", listID),
		gin.H{"sound_id": sound.ID})

	path := fmt.Sprintf("/api/session-lists/%.0f/sounds/%d", listID, sound.ID)
	removed := ts.do(t, "DELETE", path, nil)
	require.Equal(t, http.StatusOK, removed.Code)
	assert.Equal(t, "Removed", decodeBody(t, removed)["message"])

	again := ts.do(t, "DELETE", path, nil)
	require.Equal(t, http.StatusNotFound, again.Code)
	assert.Equal(t, "Sound not in list", decodeBody(t, again)["error"])
}

func TestSessionListsController_RemoveSound_MalformedVariantID(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	ts.register(t, "dm@example.com")
	sound := ts.createSound(t, "combat", "Sword Slash", "combat/sword-slash.mp3")
	w := ts.do(t, "POST", "/api/session-lists", gin.H{"name": "Combat Mix"})
	listID := decodeBody(t, w)["id"].(float64)

	ts.do(t, "POST", fmt.Sprintf("/api/session-lists/%.0f/sounds", listID),
		gin.H{"sound_id": sound.ID})

	// An unparseable variant_id reads as no variant, not as an error.
	path := fmt.Sprintf("/api/session-lists/%.0f/sounds/%d?variant_id=banana", listID, sound.ID)
	removed := ts.do(t, "DELETE", path, nil)
	require.Equal(t, http.StatusOK, removed.Code, removed.Body.String())
	assert.Equal(t, "Removed", decodeBody(t, removed)["message"])
}

func TestSessionListsController_ReorderSounds(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	ts.register(t, "dm@example.com")
	slash := ts.createSound(t, "combat", "Sword Slash", "combat/sword-slash.mp3")
	block := ts.createSound(t, "combat", "Shield Block", "combat/shield-block.mp3")
	w := ts.do(t, "POST", "/api/session-lists", gin.H{"name": "Combat Mix"})
	listID := decodeBody(t, w)["id"].(float64)

	soundsPath := fmt.Sprintf("/api/session-lists/%.0f/sounds", listID)
	ts.do(t, "POST", soundsPath, gin.H{"sound_id": slash.ID})
	ts.do(t, "POST", soundsPath, gin.H{"sound_id": block.ID})

	missing := ts.do(t, "PUT", soundsPath+"/reorder", gin.H{})
	require.Equal(t, http.StatusBadRequest, missing.Code)
	assert.Equal(t, "sound_ids array required", decodeBody(t, missing)["error"])

	reordered := ts.do(t, "PUT", soundsPath+"/reorder",
		gin.H{"sound_ids": []uint{block.ID, slash.ID}})
	require.Equal(t, http.StatusOK, reordered.Code, reordered.Body.String())

	sounds := decodeBody(t, reordered)["sounds"].([]any)
	require.Len(t, sounds, 2)
	first := sounds[0].(map[string]any)["sound"].(map[string]any)
	assert.Equal(t, "Shield Block", first["name"])
}
