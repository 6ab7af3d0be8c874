package state

import (
	"context"
	"database/sql"
	"embed"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"

	dbutil "github.com/llehouerou/wavecast/internal/db"
)

const (
	appName      = "wavecast"
	dbFileName   = "wavecast.db"
	saveDebounce = 500 * time.Millisecond
)

//go:embed migrations/*.sql
var migrations embed.FS

type Manager struct {
	db        *sql.DB
	music     *PositionStore
	podcast   *PositionStore
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *QueueState
}

// Open opens the database in the XDG data directory.
func Open() (*Manager, error) {
	path, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenPath(path)
}

// OpenPath opens the database at path, migrating it if needed.
func OpenPath(path string) (*Manager, error) {
	db, err := dbutil.Open(path, migrations, "migrations")
	if err != nil {
		return nil, err
	}
	return &Manager{
		db:      db,
		music:   &PositionStore{db: db, kind: kindMusic},
		podcast: &PositionStore{db: db, kind: kindPodcast},
	}, nil
}

// Close flushes a pending debounced queue save and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		if err := saveQueue(context.Background(), m.db, *pending); err != nil {
			log.Error().Err(err).Msg("flush queue state")
		}
	}
	return m.db.Close()
}

func (m *Manager) MusicPositions() *PositionStore { return m.music }

func (m *Manager) PodcastPositions() *PositionStore { return m.podcast }

// GetQueue returns the saved queue, or nil if no queue was ever saved.
func (m *Manager) GetQueue() (*QueueState, error) {
	return getQueue(m.db)
}

func (m *Manager) SaveQueue(state QueueState) error {
	return saveQueue(context.Background(), m.db, state)
}

// ScheduleQueueSave saves state after a short quiet period; repeated calls
// within the period only keep the latest state.
func (m *Manager) ScheduleQueueSave(state QueueState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &state

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			if err := saveQueue(context.Background(), m.db, *pending); err != nil {
				log.Error().Err(err).Msg("save queue state")
			}
		}
	})
}
