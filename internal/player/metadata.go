package player

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/llehouerou/wavecast/internal/playlist"
)

// ReadTrack builds a music track from a local file. Tags are optional; the
// duration is read from the decoded stream header.
func ReadTrack(path string) (playlist.Track, error) {
	t := playlist.Track{
		Key:       path,
		Path:      path,
		Title:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		MediaType: playlist.MediaMusic,
	}

	f, err := os.Open(path)
	if err != nil {
		return t, err
	}
	defer f.Close()

	if m, err := tag.ReadFrom(f); err == nil {
		if m.Title() != "" {
			t.Title = m.Title()
		}
		t.Artist = m.Artist()
		t.Album = m.Album()
	}

	if _, err := f.Seek(0, 0); err != nil {
		return t, err
	}
	streamer, format, err := decode(f)
	if err != nil {
		return t, err
	}
	defer streamer.Close()
	t.Duration = format.SampleRate.D(streamer.Len())
	return t, nil
}
