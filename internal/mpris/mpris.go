//go:build linux

package mpris

import (
	"errors"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/wavecast/internal/player"
	"github.com/llehouerou/wavecast/internal/remote"
)

var errBusy = errors.New("mpris: command queue full")

// Adapter serves the snapshot on the session bus and forwards media keys to
// the command queue.
type Adapter struct {
	*Snapshot
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(cmds *remote.Queue, art func() string) (*Adapter, error) {
	snap := NewSnapshot(art)
	a := &Adapter{Snapshot: snap}
	a.server = server.NewServer("wavecast", &rootAdapter{}, &playerAdapter{snap: snap, cmds: cmds})

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil
}

func (r *rootAdapter) Quit() error {
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Wavecast", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	snap *Snapshot
	cmds *remote.Queue
}

func (p *playerAdapter) send(a remote.Action, offset time.Duration) error {
	if !p.cmds.Send(remote.Command{Action: a, Offset: offset}) {
		return errBusy
	}
	return nil
}

func (p *playerAdapter) Next() error {
	return p.send(remote.Next, 0)
}

func (p *playerAdapter) Previous() error {
	return p.send(remote.Previous, 0)
}

func (p *playerAdapter) Pause() error {
	return p.send(remote.Pause, 0)
}

func (p *playerAdapter) PlayPause() error {
	return p.send(remote.PlayPause, 0)
}

func (p *playerAdapter) Stop() error {
	return p.send(remote.Stop, 0)
}

func (p *playerAdapter) Play() error {
	return p.send(remote.Play, 0)
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.send(remote.Seek, time.Duration(offset)*time.Microsecond)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.send(remote.SetPosition, time.Duration(position)*time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.snap.State() {
	case player.Playing:
		return types.PlaybackStatusPlaying, nil
	case player.Paused:
		return types.PlaybackStatusPaused, nil
	case player.Stopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track, ok := p.snap.Track()
	if !ok {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.Identity())),
		Length:  types.Microseconds(track.Duration.Microseconds()),
		Title:   track.Title,
		Album:   track.Album,
		ArtUrl:  p.snap.ArtURL(),
	}
	if meta.Title == "" {
		meta.Title = track.DisplayName()
	}
	if track.Artist != "" {
		meta.Artist = []string{track.Artist}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.snap.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	_, ok := p.snap.Track()
	return ok, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	_, ok := p.snap.Track()
	return ok, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.snap.State().IsActive(), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.snap.State().IsActive(), nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}
