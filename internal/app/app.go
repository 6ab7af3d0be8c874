// Package app is the bubbletea host: it ticks the event router, maps keys to
// session operations, and renders the session state.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavecast/internal/downloads"
	"github.com/llehouerou/wavecast/internal/keymap"
	"github.com/llehouerou/wavecast/internal/session"
	uidownloads "github.com/llehouerou/wavecast/internal/ui/downloads"
	"github.com/llehouerou/wavecast/internal/ui/prompt"
	"github.com/llehouerou/wavecast/internal/ui/queuepanel"
)

const (
	seekStep     = 5 * time.Second
	seekLongStep = 30 * time.Second
	volumeStep   = 5

	// clockRefresh forces a redraw even without events so elapsed time
	// keeps moving on backends that report progress sparsely.
	clockRefresh = time.Second
)

// Downloader accepts episode downloads and exposes their progress.
type Downloader interface {
	Submit(job downloads.Job) (string, error)
	Tracker() *downloads.Tracker
}

// Deps are the collaborators main wires up.
type Deps struct {
	Controller  *session.Controller
	Router      *session.Router
	Downloads   Downloader // nil disables episode downloads
	DownloadDir string
	Keys        *keymap.Resolver
}

// Model is the root application model.
type Model struct {
	ctrl        *session.Controller
	router      *session.Router
	dl          Downloader
	downloadDir string
	keys        *keymap.Resolver

	queuePanel queuepanel.Model
	dlPanel    uidownloads.Model
	prompt     prompt.Model

	Width  int
	Height int

	view string
}

func New(d Deps) Model {
	keys := d.Keys
	if keys == nil {
		keys = keymap.NewResolver(keymap.All)
	}
	qp := queuepanel.New()
	qp.SetFocused(true)
	return Model{
		ctrl:        d.Controller,
		router:      d.Router,
		dl:          d.Downloads,
		downloadDir: d.DownloadDir,
		keys:        keys,
		queuePanel:  qp,
		dlPanel:     uidownloads.New(),
		prompt:      prompt.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return TickCmd()
}
