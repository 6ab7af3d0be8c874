package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavecast/internal/player"
	"github.com/llehouerou/wavecast/internal/playlist"
)

// collectTracks expands files and directories into music tracks. Directories
// are walked recursively in lexical order; unreadable metadata still yields
// a track named after the file.
func collectTracks(paths []string) []playlist.Track {
	var files []string
	for _, p := range paths {
		p = expandHome(p)
		info, err := os.Stat(p)
		if err != nil {
			log.Warn().Err(err).Str("path", p).Msg("skip argument")
			continue
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		var found []string
		_ = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() && player.IsAudioFile(path) {
				found = append(found, path)
			}
			return nil
		})
		sort.Strings(found)
		files = append(files, found...)
	}

	tracks := make([]playlist.Track, 0, len(files))
	for _, f := range files {
		if !player.IsAudioFile(f) {
			log.Warn().Str("path", f).Msg("unsupported file")
			continue
		}
		t, err := player.ReadTrack(f)
		if err != nil {
			log.Debug().Err(err).Str("path", f).Msg("read track")
		}
		tracks = append(tracks, t)
	}
	return tracks
}

func expandHome(p string) string {
	if len(p) < 2 || p[:2] != "~/" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
