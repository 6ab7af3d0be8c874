// Package cover resolves album art for the playing track to a file path that
// desktop integrations can reference.
package cover

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhowden/tag"

	"github.com/llehouerou/wavecast/internal/playlist"
)

// folderNames lists album art filenames in priority order.
var folderNames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"album.jpg", "album.jpeg", "album.png",
	"front.jpg", "front.jpeg", "front.png",
}

// Resolver tracks the art of the current track. Embedded pictures are written
// once to cacheDir.
type Resolver struct {
	cacheDir string

	mu      sync.RWMutex
	current string
}

func NewResolver(cacheDir string) *Resolver {
	return &Resolver{cacheDir: cacheDir}
}

// Update resolves art for t. Having no art is not an error.
func (r *Resolver) Update(t playlist.Track) error {
	path, err := r.resolve(t)
	r.mu.Lock()
	r.current = path
	r.mu.Unlock()
	return err
}

// Clear forgets the current art.
func (r *Resolver) Clear() {
	r.mu.Lock()
	r.current = ""
	r.mu.Unlock()
}

// Current returns the art path of the current track, or "".
func (r *Resolver) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

func (r *Resolver) resolve(t playlist.Track) (string, error) {
	if t.Path == "" {
		return "", nil
	}
	if p := FindFolderArt(filepath.Dir(t.Path)); p != "" {
		return p, nil
	}
	return r.extractEmbedded(t.Path)
}

// FindFolderArt returns the first known art file in dir, or "".
func FindFolderArt(dir string) string {
	for _, name := range folderNames {
		for _, candidate := range []string{name, strings.ToUpper(name)} {
			p := filepath.Join(dir, candidate)
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p
			}
		}
	}
	return ""
}

func (r *Resolver) extractEmbedded(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		// untagged or unsupported container
		return "", nil //nolint:nilerr // no tags means no art
	}
	pic := m.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return "", nil
	}

	target := filepath.Join(r.cacheDir, cacheName(path, pic.MIMEType))
	if _, err := os.Stat(target); err == nil {
		return target, nil
	}
	if err := os.MkdirAll(r.cacheDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, pic.Data, 0o600); err != nil {
		return "", fmt.Errorf("write cover: %w", err)
	}
	return target, nil
}

func cacheName(path, mimeType string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	ext := ".jpg"
	if mimeType == "image/png" {
		ext = ".png"
	}
	return fmt.Sprintf("%x%s", h.Sum64(), ext)
}
