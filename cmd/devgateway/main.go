// devgateway is a local implementation of the kiosk data service the
// console talks to: operator accounts, the media playlist with its
// bulk-replace endpoint, and video uploads. It exists so the console can
// run and be exercised end to end without the production gateway.
package main

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/smartkiosk/console/internal/config"
	"github.com/smartkiosk/console/internal/db"
	"github.com/smartkiosk/console/internal/storage"
)

func main() {
	cfg, err := config.LoadGateway()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	store, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	defer store.Close()

	if err := store.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	files := initStorage(cfg)

	r := gin.Default()
	registerRoutes(r, store, files)

	if !cfg.UseSpaces {
		r.Static("/videos", filepath.Join(cfg.UploadDir, "videos"))
	}

	log.Info().Str("addr", cfg.ServerAddress).Msg("dev gateway listening")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// initStorage selects the configured upload backend.
func initStorage(cfg *config.Gateway) storage.Storage {
	if cfg.UseSpaces {
		spaces, err := storage.NewSpacesStorage(
			cfg.SpacesEndpoint,
			cfg.SpacesRegion,
			cfg.SpacesBucket,
			cfg.SpacesCDNURL,
			cfg.SpacesAccessKey,
			cfg.SpacesSecretKey,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Spaces storage")
		}
		log.Info().Str("cdn", cfg.SpacesCDNURL).Msg("using DigitalOcean Spaces storage")
		return spaces
	}

	log.Info().Str("dir", cfg.UploadDir).Msg("using local file storage")
	return storage.NewLocalStorage(cfg.UploadDir)
}
