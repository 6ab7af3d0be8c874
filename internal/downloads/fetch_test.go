package downloads

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	body := strings.Repeat("x", 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	dir := t.TempDir()
	var lastRead, lastTotal int64
	path, err := NewHTTPFetcher(srv.Client()).Fetch(context.Background(),
		Job{ID: "id", URL: srv.URL + "/feed/episode-12.mp3", Dir: dir},
		func(read, total int64) { lastRead, lastTotal = read, total })

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "episode-12.mp3"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
	assert.Equal(t, int64(len(body)), lastRead)
	assert.Equal(t, int64(len(body)), lastTotal)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be gone")
}

func TestHTTPFetcher_SameNameKeepsBothEpisodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("audio of " + r.URL.Path))
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := NewHTTPFetcher(srv.Client())
	first, err := f.Fetch(context.Background(), Job{ID: "a", URL: srv.URL + "/showA/media.mp3", Dir: dir}, nil)
	require.NoError(t, err)
	second, err := f.Fetch(context.Background(), Job{ID: "b", URL: srv.URL + "/showB/media.mp3", Dir: dir}, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "media.mp3"), first)
	assert.Equal(t, filepath.Join(dir, "media-2.mp3"), second)
	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "audio of /showA/media.mp3", string(data))
	data, err = os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "audio of /showB/media.mp3", string(data))
}

func TestReserve(t *testing.T) {
	dir := t.TempDir()

	var got []string
	for range 3 {
		p, err := reserve(dir, "ep.mp3")
		require.NoError(t, err)
		got = append(got, filepath.Base(p))
	}
	noExt, err := reserve(dir, "stream")
	require.NoError(t, err)

	assert.Equal(t, []string{"ep.mp3", "ep-2.mp3", "ep-3.mp3"}, got)
	assert.Equal(t, "stream", filepath.Base(noExt))
}

func TestHTTPFetcher_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dir := t.TempDir()
	_, err := NewHTTPFetcher(srv.Client()).Fetch(context.Background(),
		Job{ID: "id", URL: srv.URL + "/missing.mp3", Dir: dir}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name        string
		job         Job
		contentType string
		want        string
	}{
		{"from url", Job{ID: "x", URL: "https://cdn/ep/42.mp3?token=1"}, "", "42.mp3"},
		{"root url uses id", Job{ID: "abc", URL: "https://cdn/"}, "", "abc"},
		{"extension from mime", Job{ID: "x", URL: "https://cdn/stream"}, "audio/mpeg", "stream.mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fileName(tt.job, tt.contentType))
		})
	}
}
