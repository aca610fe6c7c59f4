package main

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/dndsfx/soundboard/internal/catalogsync"
	"github.com/dndsfx/soundboard/internal/config"
	"github.com/dndsfx/soundboard/internal/database"
	"github.com/dndsfx/soundboard/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{ReportTimestamp: true})

	app := &cli.Command{
		Name:           "soundboard",
		Usage:          "Tabletop sound-effects library with session playlists",
		Version:        Version,
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP API server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.NewConfig()
					entrypoint.Run(cfg, Version)
					return nil
				},
			},
			{
				Name:  "sync",
				Usage: "Reconcile the audio directory into the sound catalog",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.NewConfig()
					db, err := database.NewDatabase(cfg.Database.Path)
					if err != nil {
						return err
					}
					defer db.Close()

					syncer := catalogsync.NewSyncer(db.DB, cfg.Audio.Dir, logger)
					result, err := syncer.Sync(ctx)
					if err != nil {
						return err
					}
					logger.Info("sync finished",
						"added", result.SoundsAdded,
						"updated", result.SoundsUpdated,
						"deactivated", result.SoundsDeactivated,
						"new_categories", result.CategoriesCreated)
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed placeholder sounds for local development",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.NewConfig()
					db, err := database.NewDatabase(cfg.Database.Path)
					if err != nil {
						return err
					}
					defer db.Close()

					if err := db.SeedSampleSounds(); err != nil {
						return err
					}
					logger.Info("seed finished")
					return nil
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
