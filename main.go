// main.go
//
// glyphword server entry point.
// Startup order: .env → logging → word list → glyph catalogue (optionally
// hot reloaded) → SQLite + migrations → HTTP server.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/glyphword/internal/config"
	"github.com/robalobadob/glyphword/internal/db"
	"github.com/robalobadob/glyphword/internal/glyph"
	"github.com/robalobadob/glyphword/internal/httpserver"
	"github.com/robalobadob/glyphword/internal/store"
	"github.com/robalobadob/glyphword/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	log.Info().Int("words", words.Stats()).Msg("word list loaded")

	cat := glyph.DefaultCatalog()
	if cfg.GlyphCatalogFile != "" {
		c, err := glyph.LoadCatalogFile(cfg.GlyphCatalogFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load glyph catalog")
		}
		cat = c
	}

	sqlDB, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer sqlDB.Close()
	if err := db.Migrate(sqlDB); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	srv := httpserver.New(cfg, store.NewMemoryStore(), sqlDB, words.Default(), cat)
	if cfg.GlyphCatalogFile != "" {
		go func() {
			if err := glyph.Watch(ctx, cfg.GlyphCatalogFile, srv.SetCatalog); err != nil {
				log.Warn().Err(err).Msg("glyph catalog watcher stopped")
			}
		}()
	}

	log.Info().Str("port", cfg.Port).Int("glyphs", cat.Len()).Bool("legacyMirror", cfg.LegacyMirror).Msg("starting glyphword server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
