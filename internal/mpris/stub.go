//go:build !linux

package mpris

import "github.com/llehouerou/wavecast/internal/remote"

// Adapter only keeps the snapshot on non-Linux platforms.
type Adapter struct {
	*Snapshot
}

// New returns an adapter that serves nothing on non-Linux platforms.
func New(_ *remote.Queue, art func() string) (*Adapter, error) {
	return &Adapter{Snapshot: NewSnapshot(art)}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
