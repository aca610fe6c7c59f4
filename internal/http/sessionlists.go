package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dndsfx/soundboard/internal/database/sessionlists"
	"github.com/dndsfx/soundboard/internal/entities"
)

// SessionListStore defines database operations for session list management.
// Every lookup is scoped to the owning user; a foreign or nonexistent list
// id surfaces as gorm.ErrRecordNotFound either way.
type SessionListStore interface {
	ListForUser(userID uint) ([]entities.SessionList, error)
	GetForUser(id, userID uint) (*entities.SessionList, error)
	Create(userID uint, name string) (*entities.SessionList, error)
	Rename(id, userID uint, name string) (*entities.SessionList, error)
	Delete(id, userID uint) error
	AddSound(listID, userID, soundID uint, variantID *uint) (*entities.SessionListSound, error)
	RemoveSound(listID, userID, soundID uint, variantID *uint) error
	Reorder(listID, userID uint, soundIDs []uint) (*entities.SessionList, error)
}

type SessionListsController struct {
	store SessionListStore
	views *viewBuilder
}

func NewSessionListsController(store SessionListStore, views *viewBuilder) *SessionListsController {
	return &SessionListsController{store: store, views: views}
}

// ListSessionLists returns the caller's lists, most recently updated first.
// GET /api/session-lists
func (sc *SessionListsController) ListSessionLists(c *gin.Context) {
	lists, err := sc.store.ListForUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list session lists")
		return
	}

	views := make([]SessionListView, 0, len(lists))
	for _, lst := range lists {
		views = append(views, sc.views.SessionList(lst))
	}
	c.JSON(http.StatusOK, gin.H{"session_lists": views})
}

// CreateSessionList creates an empty list for the caller.
// POST /api/session-lists
func (sc *SessionListsController) CreateSessionList(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	// A missing body reads the same as a missing name
	_ = c.ShouldBindJSON(&req)
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondBadRequest(c, "List name is required")
		return
	}

	list, err := sc.store.Create(GetUserID(c), name)
	if err != nil {
		respondInternalError(c, err, "create session list")
		return
	}
	respondCreated(c, sc.views.SessionList(*list))
}

// GetSessionList returns one of the caller's lists with its entries.
// GET /api/session-lists/:id
func (sc *SessionListsController) GetSessionList(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	list, err := sc.store.GetForUser(id, GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Session list")
			return
		}
		respondInternalError(c, err, "get session list")
		return
	}
	c.JSON(http.StatusOK, sc.views.SessionList(*list))
}

// UpdateSessionList renames a list when a non-empty name is supplied;
// absent or empty fields leave the list untouched.
// PUT /api/session-lists/:id
func (sc *SessionListsController) UpdateSessionList(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	// A missing body means nothing to change
	_ = c.ShouldBindJSON(&req)

	userID := GetUserID(c)
	name := strings.TrimSpace(req.Name)

	var list *entities.SessionList
	var err error
	if name != "" {
		list, err = sc.store.Rename(id, userID, name)
	} else {
		list, err = sc.store.GetForUser(id, userID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Session list")
			return
		}
		respondInternalError(c, err, "update session list")
		return
	}
	c.JSON(http.StatusOK, sc.views.SessionList(*list))
}

// DeleteSessionList removes a list and all its entries.
// DELETE /api/session-lists/:id
func (sc *SessionListsController) DeleteSessionList(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := sc.store.Delete(id, GetUserID(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Session list")
			return
		}
		respondInternalError(c, err, "delete session list")
		return
	}
	respondMessage(c, "Deleted")
}

// AddSound appends a sound, or a specific variant of it, to the end of a
// list. Duplicate (sound, variant) pairs are rejected.
// POST /api/session-lists/:id/sounds
func (sc *SessionListsController) AddSound(c *gin.Context) {
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		SoundID        uint  `json:"sound_id"`
		SoundVariantID *uint `json:"sound_variant_id"`
	}
	// A missing body reads the same as a missing sound_id
	_ = c.ShouldBindJSON(&req)
	if req.SoundID == 0 {
		respondBadRequest(c, "sound_id required")
		return
	}

	entry, err := sc.store.AddSound(listID, GetUserID(c), req.SoundID, req.SoundVariantID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondNotFound(c, "Session list")
		case errors.Is(err, sessionlists.ErrSoundNotFound):
			respondNotFound(c, "Sound")
		case errors.Is(err, sessionlists.ErrVariantMismatch):
			respondBadRequest(c, "Variant not found for this sound")
		case errors.Is(err, sessionlists.ErrAlreadyInList):
			respondBadRequest(c, "This sound (or variant) is already in the list")
		default:
			respondInternalError(c, err, "add sound to session list")
		}
		return
	}
	respondCreated(c, sc.views.Entry(*entry))
}

// RemoveSound removes a sound entry from a list. With variant_id it targets
// the exact (sound, variant) entry, without one the variant-free entry; when
// no exact match exists any entry for the sound id is removed.
// DELETE /api/session-lists/:id/sounds/:soundId?variant_id=
func (sc *SessionListsController) RemoveSound(c *gin.Context) {
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	soundID, ok := parseIDParam(c, "soundId")
	if !ok {
		return
	}
	variantID := parseOptionalQueryID(c, "variant_id")

	err := sc.store.RemoveSound(listID, GetUserID(c), soundID, variantID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondNotFound(c, "Session list")
		case errors.Is(err, sessionlists.ErrNotInList):
			respondError(c, http.StatusNotFound, "Sound not in list")
		default:
			respondInternalError(c, err, "remove sound from session list")
		}
		return
	}
	respondMessage(c, "Removed")
}

// ReorderSounds assigns positions 0..n-1 following the supplied sound id
// order. Unknown ids are skipped; unmentioned entries keep their positions.
// PUT /api/session-lists/:id/sounds/reorder
func (sc *SessionListsController) ReorderSounds(c *gin.Context) {
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		SoundIDs *[]uint `json:"sound_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SoundIDs == nil {
		respondBadRequest(c, "sound_ids array required")
		return
	}

	list, err := sc.store.Reorder(listID, GetUserID(c), *req.SoundIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Session list")
			return
		}
		respondInternalError(c, err, "reorder session list")
		return
	}
	c.JSON(http.StatusOK, sc.views.SessionList(*list))
}
