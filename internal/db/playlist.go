package db

import (
	"github.com/rs/zerolog/log"

	"github.com/smartkiosk/console/internal/model"
)

// ListMedia returns the full playlist ordered by position.
func (s *Store) ListMedia() ([]model.MediaItem, error) {
	items := []model.MediaItem{}
	const q = `
	SELECT id, "key", source, kind, duration_ms, "position", active
	FROM playlist_items
	ORDER BY "position";`
	if err := s.db.Select(&items, q); err != nil {
		log.Error().Err(err).Msg("[db] failed to list playlist items")
		return nil, err
	}
	return items, nil
}

// ReplaceMedia swaps the whole collection for the submitted one inside a
// single transaction: the bulk-replace semantics of the playlist endpoint.
func (s *Store) ReplaceMedia(items []model.MediaItem) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM playlist_items;`); err != nil {
		log.Error().Err(err).Msg("[db] failed to clear playlist")
		return err
	}

	const q = `
	INSERT INTO playlist_items (id, "key", source, kind, duration_ms, "position", active)
	VALUES ($1, $2, $3, $4, $5, $6, $7);`
	for _, it := range items {
		if _, err := tx.Exec(q, it.ID, it.Key, it.Source, it.Kind, it.DurationMs, it.Position, it.Active); err != nil {
			log.Error().Err(err).Int("id", it.ID).Msg("[db] failed to insert playlist item")
			return err
		}
	}
	return tx.Commit()
}
