package lyrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/llehouerou/wavecast/internal/lrclib"
	"github.com/llehouerou/wavecast/internal/playlist"
)

// Where a FetchResult came from.
const (
	FromLocal    = "local"
	FromCache    = "cache"
	FromAPI      = "api"
	FromNotFound = "not_found"
)

// Finder looks lyrics up remotely.
type Finder interface {
	Find(ctx context.Context, artist, title string, duration time.Duration) (*lrclib.LyricsResult, error)
}

// Source provides lyrics from a sidecar .lrc file, the cache, or lrclib.
type Source struct {
	finder   Finder
	cacheDir string
}

// NewSource caches lyrics under the XDG cache directory.
func NewSource(finder Finder) *Source {
	return &Source{
		finder:   finder,
		cacheDir: filepath.Join(xdg.CacheHome, "wavecast", "lyrics"),
	}
}

// FetchResult contains the result of a lyrics fetch.
type FetchResult struct {
	Lyrics *Lyrics
	Source string
	Err    error
}

// Fetch tries, in order: the .lrc next to the audio file, the cache, the API.
// API results with synced lyrics are cached.
func (s *Source) Fetch(ctx context.Context, t playlist.Track) FetchResult {
	if t.Path != "" {
		if l, err := loadFile(lrcPathForAudio(t.Path)); err == nil {
			return FetchResult{Lyrics: l, Source: FromLocal}
		}
	}
	if t.Artist == "" || t.Title == "" {
		return FetchResult{Source: FromNotFound}
	}
	if l, err := loadFile(s.cachePath(t.Artist, t.Title)); err == nil {
		return FetchResult{Lyrics: l, Source: FromCache}
	}
	if s.finder == nil {
		return FetchResult{Source: FromNotFound}
	}

	res, err := s.finder.Find(ctx, t.Artist, t.Title, t.Duration)
	if errors.Is(err, lrclib.ErrNotFound) {
		return FetchResult{Source: FromNotFound}
	}
	if err != nil {
		return FetchResult{Source: FromNotFound, Err: err}
	}

	l := fromResult(res)
	if l == nil || len(l.Lines) == 0 {
		return FetchResult{Source: FromNotFound}
	}
	if res.HasSyncedLyrics() {
		_ = s.saveToCache(t.Artist, t.Title, res.SyncedLyrics)
	}
	return FetchResult{Lyrics: l, Source: FromAPI}
}

// fromResult parses synced lyrics, or wraps plain ones as unsynced lines.
func fromResult(res *lrclib.LyricsResult) *Lyrics {
	var l *Lyrics
	switch {
	case res.HasSyncedLyrics():
		parsed, err := ParseLRC(strings.NewReader(res.SyncedLyrics))
		if err != nil {
			return nil
		}
		l = parsed
	case res.HasPlainLyrics():
		l = &Lyrics{}
		for line := range strings.SplitSeq(res.PlainLyrics, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				l.Lines = append(l.Lines, Line{Text: line})
			}
		}
	default:
		return nil
	}
	if l.Artist == "" {
		l.Artist = res.ArtistName
	}
	if l.Title == "" {
		l.Title = res.TrackName
	}
	if l.Album == "" {
		l.Album = res.AlbumName
	}
	return l
}

func lrcPathForAudio(audioPath string) string {
	return strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".lrc"
}

func loadFile(path string) (*Lyrics, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseLRC(f)
}

func (s *Source) cachePath(artist, title string) string {
	if s.cacheDir == "" {
		return ""
	}
	return filepath.Join(s.cacheDir, sanitizeFilename(artist), sanitizeFilename(title)+".lrc")
}

func (s *Source) saveToCache(artist, title, content string) error {
	path := s.cachePath(artist, title)
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o600)
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

func sanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, " .")
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "_"
	}
	return name
}
