package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavecast/internal/playlist"
	"github.com/llehouerou/wavecast/internal/state"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestCollectTracks(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "album", "02 second.mp3"))
	touch(t, filepath.Join(dir, "album", "01 first.flac"))
	touch(t, filepath.Join(dir, "album", "cover.jpg"))
	single := filepath.Join(dir, "single.wav")
	touch(t, single)
	notes := filepath.Join(dir, "notes.txt")
	touch(t, notes)

	tracks := collectTracks([]string{filepath.Join(dir, "album"), single, notes, filepath.Join(dir, "missing.mp3")})

	require.Len(t, tracks, 3)
	assert.Equal(t, "01 first", tracks[0].Title)
	assert.Equal(t, "02 second", tracks[1].Title)
	assert.Equal(t, "single", tracks[2].Title)
	for _, tr := range tracks {
		assert.Equal(t, playlist.MediaMusic, tr.MediaType)
		assert.Equal(t, tr.Path, tr.Key)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "music"), expandHome("~/music"))
	assert.Equal(t, "/abs", expandHome("/abs"))
	assert.Equal(t, "~", expandHome("~"))
}

type fakeAuth struct {
	tokenErr   error
	sessionErr error
}

func (f fakeAuth) GetToken() (string, error) { return "tok", f.tokenErr }

func (f fakeAuth) GetAuthURL(token string) string { return "https://last.fm/auth?token=" + token }

func (f fakeAuth) GetSession(string) (string, error) { return "sk-123", f.sessionErr }

func TestRunAuthFlow(t *testing.T) {
	var out bytes.Buffer

	err := runAuthFlow(fakeAuth{}, strings.NewReader("\n"), &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "https://last.fm/auth?token=tok")
	assert.Contains(t, out.String(), `session_key = "sk-123"`)
}

func TestRunAuthFlow_Errors(t *testing.T) {
	boom := errors.New("boom")

	err := runAuthFlow(fakeAuth{tokenErr: boom}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, boom)

	err = runAuthFlow(fakeAuth{sessionErr: boom}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, boom)
}

func TestRestoreQueue(t *testing.T) {
	mgr, err := state.OpenPath(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })

	t.Run("first launch uses the configured loop mode", func(t *testing.T) {
		q := playlist.NewQueue()
		restoreQueue(mgr, q, playlist.LoopQueue)

		assert.Equal(t, playlist.LoopQueue, q.LoopMode())
		assert.True(t, q.IsEmpty())
	})

	t.Run("saved queue keeps its own loop mode", func(t *testing.T) {
		require.NoError(t, mgr.SaveQueue(state.QueueState{
			CurrentIndex: 1,
			LoopMode:     playlist.LoopSingle,
			Tracks:       []playlist.Track{{Path: "/a.mp3"}, {Path: "/b.mp3"}},
		}))

		q := playlist.NewQueue()
		restoreQueue(mgr, q, playlist.LoopQueue)

		assert.Equal(t, playlist.LoopSingle, q.LoopMode())
		assert.True(t, q.IsStopped())
		assert.Equal(t, "/b.mp3", q.Start().Path)
	})
}
