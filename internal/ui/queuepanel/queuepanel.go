// Package queuepanel renders the play queue with a movable cursor.
package queuepanel

import (
	"github.com/llehouerou/wavecast/internal/ui"
)

// Model is the cursor and viewport over the queue. The tracks themselves are
// passed to View, so the panel never holds a stale copy.
type Model struct {
	ui.Base
	cursor int
	offset int
}

func New() Model {
	return Model{}
}

// Cursor returns the index under the cursor.
func (m Model) Cursor() int {
	return m.cursor
}

// Move shifts the cursor by delta within a list of n items.
func (m *Model) Move(delta, n int) {
	if n == 0 {
		return
	}
	m.cursor = max(0, min(m.cursor+delta, n-1))
	m.ensureVisible(n)
}

// Clamp keeps the cursor valid after the list shrank.
func (m *Model) Clamp(n int) {
	if n == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = min(m.cursor, n-1)
	m.ensureVisible(n)
}

func (m *Model) ensureVisible(n int) {
	h := m.listHeight()
	if h <= 0 {
		return
	}
	margin := min(ui.ScrollMargin, (h-1)/2)
	if m.cursor < m.offset+margin {
		m.offset = max(m.cursor-margin, 0)
	}
	if m.cursor >= m.offset+h-margin {
		m.offset = m.cursor - h + margin + 1
	}
	m.offset = max(0, min(m.offset, n-h))
}

func (m Model) listHeight() int {
	return m.Height() - ui.PanelOverhead
}
