package state

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/wavecast/internal/db"
	"github.com/llehouerou/wavecast/internal/playlist"
)

// QueueState represents the saved queue state.
type QueueState struct {
	CurrentIndex int
	LoopMode     playlist.LoopMode
	Tracks       []playlist.Track
}

// CaptureQueue snapshots q for saving.
func CaptureQueue(q *playlist.Queue) QueueState {
	return QueueState{
		CurrentIndex: q.ResumeIndex(),
		LoopMode:     q.LoopMode(),
		Tracks:       q.Tracks(),
	}
}

// RestoreQueue loads s into q. The queue is left stopped on the saved index.
func (s QueueState) RestoreQueue(q *playlist.Queue) {
	q.Replace(s.CurrentIndex, s.Tracks...)
	q.SetLoopMode(s.LoopMode)
}

func getQueue(db *sql.DB) (*QueueState, error) {
	var currentIndex, loopMode int
	row := db.QueryRow(`SELECT current_index, loop_mode FROM queue_state WHERE id = 1`)
	err := row.Scan(&currentIndex, &loopMode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT track_key, path, title, artist, album, media_type, duration_ms
		FROM queue_tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []playlist.Track
	for rows.Next() {
		var t playlist.Track
		var artist, album sql.NullString
		var mediaType string
		var durationMS sql.NullInt64

		if err := rows.Scan(&t.Key, &t.Path, &t.Title, &artist, &album, &mediaType, &durationMS); err != nil {
			return nil, err
		}
		t.Artist = dbutil.NullStringValue(artist)
		t.Album = dbutil.NullStringValue(album)
		t.MediaType = playlist.ParseMediaType(mediaType)
		t.Duration = time.Duration(dbutil.NullInt64Value(durationMS)) * time.Millisecond
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &QueueState{
		CurrentIndex: currentIndex,
		LoopMode:     playlist.LoopMode(loopMode),
		Tracks:       tracks,
	}, nil
}

func saveQueue(ctx context.Context, sqlDB *sql.DB, state QueueState) error {
	return dbutil.WithTx(ctx, sqlDB, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM queue_tracks`); err != nil {
			return err
		}

		_, err := tx.Exec(`
			INSERT INTO queue_state (id, current_index, loop_mode)
			VALUES (1, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index,
				loop_mode = excluded.loop_mode
		`, state.CurrentIndex, int(state.LoopMode))
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO queue_tracks (position, track_key, path, title, artist, album, media_type, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range state.Tracks {
			var duration any
			if t.Duration > 0 {
				duration = t.Duration.Milliseconds()
			}
			_, err = stmt.Exec(i, t.Identity(), t.Path, t.Title, t.Artist, t.Album, t.MediaType.String(), duration)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
