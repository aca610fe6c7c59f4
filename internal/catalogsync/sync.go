// Package catalogsync reconciles a directory tree of audio files into the
// sound catalog.
//
// Two layouts are recognized under the audio root:
//
//	<category>/<file>.mp3      one sound with a single file
//	<category>/<dir>/*.mp3     one sound with one variant per file
//
// Loose files directly under the root land in the "Uncategorized" category.
// The pass is idempotent: sounds are upserted by file path (single files)
// or by (category, name) (variant groups), and sounds whose files have all
// disappeared are deactivated, never deleted.
package catalogsync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/dndsfx/soundboard/internal/entities"
)

var allowedExtensions = map[string]bool{
	".mp3": true,
	".ogg": true,
	".wav": true,
	".m4a": true,
}

var slugStrip = regexp.MustCompile(`[^a-z0-9\-]`)

// Result summarizes one sync pass.
type Result struct {
	CategoriesCreated int
	SoundsAdded       int
	SoundsUpdated     int
	SoundsDeactivated int
}

func (r Result) String() string {
	return fmt.Sprintf("added=%d updated=%d deactivated=%d new_categories=%d",
		r.SoundsAdded, r.SoundsUpdated, r.SoundsDeactivated, r.CategoriesCreated)
}

// Syncer walks the audio directory and upserts the catalog.
type Syncer struct {
	db       *gorm.DB
	audioDir string
	logger   *charmlog.Logger
}

// NewSyncer creates a syncer rooted at audioDir.
func NewSyncer(db *gorm.DB, audioDir string, logger *charmlog.Logger) *Syncer {
	if logger == nil {
		logger = charmlog.Default()
	}
	return &Syncer{db: db, audioDir: audioDir, logger: logger}
}

// Sync runs one reconciliation pass. The whole pass commits atomically.
func (s *Syncer) Sync(ctx context.Context) (Result, error) {
	if info, err := os.Stat(s.audioDir); err != nil || !info.IsDir() {
		return Result{}, fmt.Errorf("audio directory not found: %s", s.audioDir)
	}

	var result Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pass := &syncPass{tx: tx, audioDir: s.audioDir, logger: s.logger, seen: map[string]bool{}}
		if err := pass.run(); err != nil {
			return err
		}
		result = pass.result
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logger.Info("catalog sync complete",
		"added", result.SoundsAdded,
		"updated", result.SoundsUpdated,
		"deactivated", result.SoundsDeactivated)
	return result, nil
}

// syncPass carries the state of one reconciliation pass.
type syncPass struct {
	tx       *gorm.DB
	audioDir string
	logger   *charmlog.Logger
	seen     map[string]bool
	result   Result
}

func (p *syncPass) run() error {
	if _, err := p.ensureCategory("uncategorized", "Uncategorized", 999); err != nil {
		return err
	}

	entries, err := os.ReadDir(p.audioDir)
	if err != nil {
		return fmt.Errorf("reading audio directory: %w", err)
	}

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if entry.IsDir() {
			if err := p.syncCategoryDir(entry.Name()); err != nil {
				return err
			}
			continue
		}
		if !isAudioFile(entry.Name()) {
			continue
		}
		cat, err := p.findCategory("uncategorized")
		if err != nil {
			return err
		}
		if err := p.upsertSingleFile(cat, entry.Name(), entry.Name()); err != nil {
			return err
		}
	}

	return p.deactivateMissing()
}

// syncCategoryDir reconciles one <category>/ directory: plain audio files
// become single sounds, subdirectories become variant groups.
func (p *syncPass) syncCategoryDir(dirName string) error {
	slug := normSlug(dirName)
	cat, err := p.findCategory(slug)
	if err != nil {
		return err
	}
	if cat == nil {
		var count int64
		if err := p.tx.Model(&entities.Category{}).Count(&count).Error; err != nil {
			return err
		}
		cat, err = p.ensureCategory(slug, slugToName(dirName), int(count))
		if err != nil {
			return err
		}
	}

	entries, err := os.ReadDir(filepath.Join(p.audioDir, dirName))
	if err != nil {
		return fmt.Errorf("reading category directory %s: %w", dirName, err)
	}

	for _, entry := range entries {
		relPath := dirName + "/" + entry.Name()
		if entry.IsDir() {
			if err := p.upsertVariantGroup(cat, dirName, entry.Name()); err != nil {
				return err
			}
			continue
		}
		if !isAudioFile(entry.Name()) {
			continue
		}
		if err := p.upsertSingleFile(cat, entry.Name(), relPath); err != nil {
			return err
		}
	}
	return nil
}

// upsertSingleFile records one audio file as a sound, keyed by its path.
// An existing sound that moved category is reassigned and counted as an
// update.
func (p *syncPass) upsertSingleFile(cat *entities.Category, fileName, relPath string) error {
	p.seen[relPath] = true

	var existing entities.Sound
	err := p.tx.Where("file_path = ?", relPath).First(&existing).Error
	if err == nil {
		if existing.CategoryID != cat.ID {
			if err := p.tx.Model(&existing).Update("category_id", cat.ID).Error; err != nil {
				return err
			}
			p.result.SoundsUpdated++
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	sound := entities.Sound{
		Name:       filenameToName(fileName),
		CategoryID: cat.ID,
		FilePath:   relPath,
		IsActive:   true,
	}
	if err := p.tx.Create(&sound).Error; err != nil {
		return err
	}
	p.result.SoundsAdded++
	p.logger.Debug("added sound", "path", relPath, "name", sound.Name)
	return nil
}

// upsertVariantGroup records a subdirectory of audio files as one sound
// with ordered variants, keyed by (category, name). Variants are rebuilt
// from the directory contents on every pass so renames and deletions on
// disk win.
func (p *syncPass) upsertVariantGroup(cat *entities.Category, dirName, groupName string) error {
	groupDir := filepath.Join(p.audioDir, dirName, groupName)
	entries, err := os.ReadDir(groupDir)
	if err != nil {
		return fmt.Errorf("reading variant directory %s: %w", groupDir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && isAudioFile(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	if len(files) == 0 {
		return nil
	}
	sort.Strings(files)

	soundName := slugToName(groupName)
	firstPath := dirName + "/" + groupName + "/" + files[0]
	for _, f := range files {
		p.seen[dirName+"/"+groupName+"/"+f] = true
	}

	var existing entities.Sound
	err = p.tx.Where("category_id = ? AND name = ?", cat.ID, soundName).First(&existing).Error
	if err == nil {
		if err := p.tx.Where("sound_id = ?", existing.ID).
			Delete(&entities.SoundVariant{}).Error; err != nil {
			return err
		}
		if err := p.tx.Model(&existing).Update("file_path", firstPath).Error; err != nil {
			return err
		}
		if err := p.createVariants(existing.ID, dirName, groupName, files); err != nil {
			return err
		}
		p.result.SoundsUpdated++
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	sound := entities.Sound{
		Name:       soundName,
		CategoryID: cat.ID,
		FilePath:   firstPath,
		IsActive:   true,
	}
	if err := p.tx.Create(&sound).Error; err != nil {
		return err
	}
	if err := p.createVariants(sound.ID, dirName, groupName, files); err != nil {
		return err
	}
	p.result.SoundsAdded++
	p.logger.Debug("added sound", "path", firstPath, "name", soundName, "variants", len(files))
	return nil
}

func (p *syncPass) createVariants(soundID uint, dirName, groupName string, files []string) error {
	for i, f := range files {
		variant := entities.SoundVariant{
			SoundID:   soundID,
			FilePath:  dirName + "/" + groupName + "/" + f,
			Label:     filenameToName(f),
			SortOrder: i,
		}
		if err := p.tx.Create(&variant).Error; err != nil {
			return err
		}
	}
	return nil
}

// deactivateMissing marks active sounds inactive when neither this pass nor
// the filesystem knows any of their files. Rows are never deleted so
// session list entries keep resolving.
func (p *syncPass) deactivateMissing() error {
	var sounds []entities.Sound
	if err := p.tx.Preload("Variants").Where("is_active = ?", true).Find(&sounds).Error; err != nil {
		return err
	}

	for _, sound := range sounds {
		paths := []string{sound.FilePath}
		for _, v := range sound.Variants {
			paths = append(paths, v.FilePath)
		}

		known := false
		for _, path := range paths {
			if p.seen[path] {
				known = true
				break
			}
			if info, err := os.Stat(filepath.Join(p.audioDir, filepath.FromSlash(path))); err == nil && !info.IsDir() {
				known = true
				break
			}
		}
		if known {
			continue
		}

		if err := p.tx.Model(&sound).Update("is_active", false).Error; err != nil {
			return err
		}
		p.result.SoundsDeactivated++
		p.logger.Debug("deactivated sound", "path", sound.FilePath)
	}
	return nil
}

// findCategory fetches a category by slug, returning nil when absent.
func (p *syncPass) findCategory(slug string) (*entities.Category, error) {
	var cat entities.Category
	err := p.tx.Where("slug = ?", slug).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// ensureCategory fetches or creates a category by slug.
func (p *syncPass) ensureCategory(slug, name string, sortOrder int) (*entities.Category, error) {
	cat, err := p.findCategory(slug)
	if err != nil {
		return nil, err
	}
	if cat != nil {
		return cat, nil
	}

	cat = &entities.Category{
		Name:      name,
		Slug:      slug,
		SortOrder: sortOrder,
		IsActive:  true,
	}
	if err := p.tx.Create(cat).Error; err != nil {
		return nil, err
	}
	p.result.CategoriesCreated++
	p.logger.Info("created category", "name", name)
	return cat, nil
}

func isAudioFile(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// normSlug lowercases, turns spaces and underscores into hyphens and strips
// everything outside [a-z0-9-].
func normSlug(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	s = slugStrip.ReplaceAllString(s, "")
	if s == "" {
		return "uncategorized"
	}
	return s
}

// slugToName turns a directory name into a display name: hyphens and
// underscores become spaces and each word is title-cased.
func slugToName(s string) string {
	if s == "" {
		return "Uncategorized"
	}
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return titleCase(s)
}

// filenameToName derives a display name from a file name, dropping the
// extension.
func filenameToName(fileName string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	return titleCase(base)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
