// Package downloads renders the podcast download list.
package downloads

import (
	"github.com/llehouerou/wavecast/internal/downloads"
	"github.com/llehouerou/wavecast/internal/ui"
)

// Model shows a snapshot of the download tracker, newest last.
type Model struct {
	ui.Base
	items []downloads.Progress
}

func New() Model {
	return Model{}
}

// SetDownloads replaces the displayed snapshot.
func (m *Model) SetDownloads(items []downloads.Progress) {
	m.items = items
}

func (m Model) IsEmpty() bool {
	return len(m.items) == 0
}

// Active counts jobs that are queued or running.
func (m Model) Active() int {
	n := 0
	for _, p := range m.items {
		if !p.Status.IsFinished() {
			n++
		}
	}
	return n
}
