package state

import (
	"database/sql"
	"errors"
)

const defaultVolume = 100

// GetVolume returns the saved volume in percent, 100 when never saved.
func (m *Manager) GetVolume() (int, error) {
	var volume int
	err := m.db.QueryRow(`SELECT volume FROM queue_state WHERE id = 1`).Scan(&volume)
	if errors.Is(err, sql.ErrNoRows) {
		return defaultVolume, nil
	}
	if err != nil {
		return 0, err
	}
	return volume, nil
}

// SaveVolume persists the volume level to the database.
func (m *Manager) SaveVolume(volume int) error {
	_, err := m.db.Exec(`
		INSERT INTO queue_state (id, current_index, loop_mode, volume)
		VALUES (1, -1, 0, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume
	`, volume)
	return err
}
