package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dndsfx/soundboard/internal/entities"
)

// CatalogStore defines database operations for catalog browsing.
type CatalogStore interface {
	ListActiveCategories() ([]entities.Category, error)
	CountActiveSoundsByCategory() (map[uint]int64, error)
	ListActiveSounds(categoryID *uint, search string) ([]entities.Sound, error)
	GetActiveSound(id uint) (*entities.Sound, error)
}

type CatalogController struct {
	store CatalogStore
	views *viewBuilder
}

func NewCatalogController(store CatalogStore, views *viewBuilder) *CatalogController {
	return &CatalogController{store: store, views: views}
}

// ListCategories returns all active categories with their sound counts.
// GET /api/categories
func (cc *CatalogController) ListCategories(c *gin.Context) {
	categories, err := cc.store.ListActiveCategories()
	if err != nil {
		respondInternalError(c, err, "list categories")
		return
	}
	counts, err := cc.store.CountActiveSoundsByCategory()
	if err != nil {
		respondInternalError(c, err, "count sounds per category")
		return
	}

	views := make([]CategoryView, 0, len(categories))
	for _, cat := range categories {
		views = append(views, cc.views.Category(cat, counts[cat.ID]))
	}
	c.JSON(http.StatusOK, gin.H{"categories": views})
}

// ListSounds returns active sounds, optionally filtered by category and by
// a case-insensitive name search.
// GET /api/sounds?category_id=&q=
func (cc *CatalogController) ListSounds(c *gin.Context) {
	categoryID := parseOptionalQueryID(c, "category_id")
	search := strings.TrimSpace(c.Query("q"))

	sounds, err := cc.store.ListActiveSounds(categoryID, search)
	if err != nil {
		respondInternalError(c, err, "list sounds")
		return
	}

	views := make([]SoundView, 0, len(sounds))
	for _, s := range sounds {
		views = append(views, cc.views.Sound(s))
	}
	c.JSON(http.StatusOK, gin.H{"sounds": views})
}

// GetSound returns a single active sound.
// GET /api/sounds/:id
func (cc *CatalogController) GetSound(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sound, err := cc.store.GetActiveSound(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Sound")
			return
		}
		respondInternalError(c, err, "get sound")
		return
	}
	c.JSON(http.StatusOK, cc.views.Sound(*sound))
}
