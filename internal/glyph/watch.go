package glyph

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch reloads the catalogue at path whenever it changes on disk and hands
// each successfully parsed catalogue to onReload. Parse failures are logged
// and the previous catalogue stays in effect. Watch blocks until ctx is done.
//
// The parent directory is watched rather than the file so editors that
// replace files via rename are still seen.
func Watch(ctx context.Context, path string, onReload func(*Catalog)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			c, err := LoadCatalogFile(path)
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("glyph catalog reload failed")
				continue
			}
			log.Info().Str("path", path).Int("glyphs", c.Len()).Msg("glyph catalog reloaded")
			onReload(c)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("glyph catalog watcher")
		}
	}
}
