package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dndsfx/soundboard/internal/entities"
)

var defaultCategories = []entities.Category{
	{Name: "Combat", Slug: "combat", Description: "Swords, impacts, hits, battle", SortOrder: 0},
	{Name: "Magic", Slug: "magic", Description: "Spells, whooshes, enchantments", SortOrder: 1},
	{Name: "Ambience", Slug: "ambience", Description: "Tavern, forest, dungeon, weather", SortOrder: 2},
	{Name: "Creatures", Slug: "creatures", Description: "Dragons, monsters, animals", SortOrder: 3},
	{Name: "UI & Misc", Slug: "ui-misc", Description: "Clicks, notifications, fanfare", SortOrder: 4},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite ships with foreign keys off; the store layer relies on them
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.PendingEmailChange{},
		&entities.Category{},
		&entities.Sound{},
		&entities.SoundVariant{},
		&entities.SessionList{},
		&entities.SessionListSound{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedCategories(); err != nil {
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) seedCategories() error {
	for _, category := range defaultCategories {
		var existing entities.Category
		result := d.DB.Where("slug = ?", category.Slug).First(&existing)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := d.DB.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to create category %s: %w", category.Name, err)
			}
			log.Printf("Created category: %s", category.Name)
		}
	}
	return nil
}
