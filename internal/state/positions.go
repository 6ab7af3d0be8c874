package state

import (
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/wavecast/internal/playlist"
	"github.com/llehouerou/wavecast/internal/position"
)

const (
	kindMusic   = "music"
	kindPodcast = "podcast"
)

// PositionStore persists resume positions for one media kind, in whole seconds.
type PositionStore struct {
	db   *sql.DB
	kind string
}

func (s *PositionStore) GetLastPosition(t playlist.Track) (time.Duration, error) {
	var seconds int64
	err := s.db.QueryRow(
		`SELECT seconds FROM positions WHERE kind = ? AND track_key = ?`,
		s.kind, t.Identity(),
	).Scan(&seconds)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, position.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

func (s *PositionStore) SetLastPosition(t playlist.Track, pos time.Duration) error {
	_, err := s.db.Exec(`
		INSERT INTO positions (kind, track_key, seconds, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(kind, track_key) DO UPDATE SET
			seconds = excluded.seconds,
			updated_at = excluded.updated_at
	`, s.kind, t.Identity(), int64(pos/time.Second), time.Now().Unix())
	return err
}

var _ position.Store = (*PositionStore)(nil)
