package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/dndsfx/soundboard/internal/entities"
)

// placeholderSounds maps default category names to sample sound names used
// by the seed command. File paths point under the audio directory; real
// files can be dropped in later and picked up by catalog sync.
var placeholderSounds = map[string][]string{
	"Combat":    {"Sword Slash", "Shield Block", "Arrow Hit"},
	"Magic":     {"Fireball", "Heal Spell", "Teleport"},
	"Ambience":  {"Tavern Murmur", "Rain", "Dungeon Echo"},
	"Creatures": {"Dragon Roar", "Wolf Howl", "Goblin Grunt"},
	"UI & Misc": {"Button Click", "Level Up", "Quest Complete"},
}

// SeedSampleSounds adds placeholder sounds to every category that has none
// yet, for local development. "Sword Slash" gets two variants so the
// variant picker can be exercised without real audio.
func (d *Database) SeedSampleSounds() error {
	var categories []entities.Category
	if err := d.DB.Find(&categories).Error; err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	for _, cat := range categories {
		var count int64
		if err := d.DB.Model(&entities.Sound{}).
			Where("category_id = ?", cat.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		names, ok := placeholderSounds[cat.Name]
		if !ok {
			names = []string{"Sample Sound"}
		}
		for _, name := range names {
			sound := entities.Sound{
				Name:       name,
				CategoryID: cat.ID,
				FilePath:   cat.Slug + "/" + slugify(name) + ".mp3",
				IsActive:   true,
			}
			if err := d.DB.Create(&sound).Error; err != nil {
				return fmt.Errorf("failed to seed sound %s: %w", name, err)
			}
		}
		log.Printf("Seeded %d sounds in %s", len(names), cat.Name)
	}

	return d.seedDemoVariants()
}

// seedDemoVariants gives "Sword Slash" two variants for testing the
// multi-audio picker.
func (d *Database) seedDemoVariants() error {
	var sword entities.Sound
	err := d.DB.Where("name = ?", "Sword Slash").First(&sword).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var count int64
	if err := d.DB.Model(&entities.SoundVariant{}).
		Where("sound_id = ?", sword.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	variants := []entities.SoundVariant{
		{SoundID: sword.ID, FilePath: sword.FilePath, Label: "Slash 1", SortOrder: 0},
		{SoundID: sword.ID, FilePath: sword.FilePath, Label: "Slash 2", SortOrder: 1},
	}
	for _, v := range variants {
		if err := d.DB.Create(&v).Error; err != nil {
			return err
		}
	}
	log.Printf(`Added 2 variants for "Sword Slash"`)
	return nil
}

// slugify lowercases a name and keeps only alphanumerics and hyphens.
func slugify(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-':
			out = append(out, r)
		case r == ' ':
			out = append(out, '-')
		}
	}
	for len(out) > 0 && out[0] == '-' {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}
