package http

import (
	"strings"
	"time"

	"github.com/dndsfx/soundboard/internal/entities"
)

// CategoryView is the JSON shape of a catalog category.
type CategoryView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
	SoundCount  int64  `json:"sound_count"`
}

// VariantView is the JSON shape of a sound variant, with its playable URL.
type VariantView struct {
	ID       uint    `json:"id"`
	FilePath string  `json:"file_path"`
	URL      *string `json:"url"`
	Label    string  `json:"label"`
}

// SoundView is the JSON shape of a catalog sound.
type SoundView struct {
	ID              uint          `json:"id"`
	Name            string        `json:"name"`
	CategoryID      uint          `json:"category_id"`
	CategoryName    string        `json:"category_name"`
	FilePath        string        `json:"file_path"`
	URL             *string       `json:"url"`
	DurationSeconds *float64      `json:"duration_seconds"`
	IsActive        bool          `json:"is_active"`
	Variants        []VariantView `json:"variants"`
}

// EntryView is the JSON shape of one sound entry inside a session list.
type EntryView struct {
	ID             uint       `json:"id"`
	SessionListID  uint       `json:"session_list_id"`
	SoundID        uint       `json:"sound_id"`
	SoundVariantID *uint      `json:"sound_variant_id"`
	SortOrder      int        `json:"sort_order"`
	Sound          *SoundView `json:"sound"`
	VariantURL     *string    `json:"variant_url"`
	VariantLabel   *string    `json:"variant_label"`
}

// SessionListView is the JSON shape of a session list with its entries in
// play order.
type SessionListView struct {
	ID        uint        `json:"id"`
	UserID    uint        `json:"user_id"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Sounds    []EntryView `json:"sounds"`
}

// viewBuilder turns entities into response views, resolving stored relative
// file paths against the configured audio URL prefix.
type viewBuilder struct {
	urlPrefix string
}

func newViewBuilder(urlPrefix string) *viewBuilder {
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &viewBuilder{urlPrefix: urlPrefix}
}

// audioURL resolves a stored relative path to a playable URL. Empty paths
// stay null so clients can distinguish a missing file from a bad prefix.
func (b *viewBuilder) audioURL(filePath string) *string {
	if filePath == "" {
		return nil
	}
	url := b.urlPrefix + filePath
	return &url
}

func (b *viewBuilder) Category(cat entities.Category, soundCount int64) CategoryView {
	return CategoryView{
		ID:          cat.ID,
		Name:        cat.Name,
		Slug:        cat.Slug,
		Description: cat.Description,
		SortOrder:   cat.SortOrder,
		SoundCount:  soundCount,
	}
}

func (b *viewBuilder) Variant(v entities.SoundVariant) VariantView {
	return VariantView{
		ID:       v.ID,
		FilePath: v.FilePath,
		URL:      b.audioURL(v.FilePath),
		Label:    v.Label,
	}
}

func (b *viewBuilder) Sound(s entities.Sound) SoundView {
	variants := make([]VariantView, 0, len(s.Variants))
	for _, v := range s.Variants {
		variants = append(variants, b.Variant(v))
	}
	return SoundView{
		ID:              s.ID,
		Name:            s.Name,
		CategoryID:      s.CategoryID,
		CategoryName:    s.Category.Name,
		FilePath:        s.FilePath,
		URL:             b.audioURL(s.FilePath),
		DurationSeconds: s.DurationSeconds,
		IsActive:        s.IsActive,
		Variants:        variants,
	}
}

func (b *viewBuilder) Entry(e entities.SessionListSound) EntryView {
	view := EntryView{
		ID:             e.ID,
		SessionListID:  e.SessionListID,
		SoundID:        e.SoundID,
		SoundVariantID: e.SoundVariantID,
		SortOrder:      e.SortOrder,
	}
	if e.Sound.ID != 0 {
		sound := b.Sound(e.Sound)
		view.Sound = &sound
	}
	if e.SoundVariantID != nil && e.SoundVariant != nil {
		view.VariantURL = b.audioURL(e.SoundVariant.FilePath)
		if e.SoundVariant.Label != "" {
			label := e.SoundVariant.Label
			view.VariantLabel = &label
		}
	}
	return view
}

func (b *viewBuilder) SessionList(lst entities.SessionList) SessionListView {
	sounds := make([]EntryView, 0, len(lst.Entries))
	for _, e := range lst.Entries {
		sounds = append(sounds, b.Entry(e))
	}
	return SessionListView{
		ID:        lst.ID,
		UserID:    lst.UserID,
		Name:      lst.Name,
		CreatedAt: lst.CreatedAt,
		UpdatedAt: lst.UpdatedAt,
		Sounds:    sounds,
	}
}
