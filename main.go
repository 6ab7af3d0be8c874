package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavecast/internal/app"
	"github.com/llehouerou/wavecast/internal/config"
	"github.com/llehouerou/wavecast/internal/cover"
	"github.com/llehouerou/wavecast/internal/downloads"
	"github.com/llehouerou/wavecast/internal/keymap"
	"github.com/llehouerou/wavecast/internal/lastfm"
	"github.com/llehouerou/wavecast/internal/logging"
	"github.com/llehouerou/wavecast/internal/lrclib"
	"github.com/llehouerou/wavecast/internal/lyrics"
	"github.com/llehouerou/wavecast/internal/mpris"
	"github.com/llehouerou/wavecast/internal/notify"
	"github.com/llehouerou/wavecast/internal/player"
	"github.com/llehouerou/wavecast/internal/playlist"
	"github.com/llehouerou/wavecast/internal/position"
	"github.com/llehouerou/wavecast/internal/remote"
	"github.com/llehouerou/wavecast/internal/session"
	"github.com/llehouerou/wavecast/internal/sink"
	"github.com/llehouerou/wavecast/internal/state"
	"github.com/llehouerou/wavecast/internal/stderr"
)

const (
	remoteBuffer     = 16
	downloadShutdown = 5 * time.Second
)

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return fmt.Sprint(*s) }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "wavecast: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var episodes stringList
	flag.Var(&episodes, "episode", "download a podcast episode URL and queue it (repeatable)")
	lastfmAuth := flag.Bool("lastfm-auth", false, "authorize Last.fm scrobbling and print the session key")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: wavecast [flags] [file|dir ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *lastfmAuth {
		return authorizeLastfm(cfg, os.Stdin, os.Stdout)
	}

	logCfg := cfg.GetLogConfig()
	logFile, err := logging.Setup(logCfg.File, logCfg.Level)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logFile.Close()

	policy, err := cfg.PositionPolicy()
	if err != nil {
		return err
	}
	loopMode, err := cfg.GetLoopMode()
	if err != nil {
		return err
	}

	mgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer mgr.Close()

	queue := playlist.NewQueue()
	restoreQueue(mgr, queue, loopMode)

	tracks := collectTracks(flag.Args())
	if len(tracks) == 0 && queue.IsEmpty() && cfg.MusicDir != "" {
		tracks = collectTracks([]string{cfg.MusicDir})
	}
	queue.Add(tracks...)

	volume, err := mgr.GetVolume()
	if err != nil {
		log.Warn().Err(err).Msg("read saved volume")
	}
	if cfg.Volume != nil || err != nil {
		volume = cfg.GetVolume()
	}

	capture, err := stderr.Start()
	if err != nil {
		log.Warn().Err(err).Msg("capture stderr")
	} else {
		defer capture.Stop()
	}

	backend := player.New(volume)
	defer backend.Close()

	art := cover.NewResolver(filepath.Join(xdg.CacheHome, "wavecast", "covers"))
	commands := remote.NewQueue(remoteBuffer)
	sinks, sinkErrs, closeSinks := openSinks(cfg, commands, art.Current)
	defer closeSinks()

	pod := cfg.GetPodcastConfig()
	pool := downloads.NewPool(pod.SimultaneousDownloads, downloads.NewHTTPFetcher(nil))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), downloadShutdown)
		defer cancel()
		if err := pool.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("download shutdown")
		}
	}()

	opts := session.Options{
		Backend:   backend,
		Queue:     queue,
		Stores:    position.Stores{Music: mgr.MusicPositions(), Podcast: mgr.PodcastPositions()},
		Policy:    policy,
		Sink:      sink.Join(sinks...),
		Cover:     art,
		Persister: mgr,
		Volume:    volume,
		Probe:     player.ReadTrack,
	}
	src := session.Sources{
		Backend:   backend.Events(),
		Downloads: pool.Progress(),
		Commands:  commands.Commands(),
		SinkErrs:  sinkErrs,
	}
	if capture != nil {
		src.Stderr = capture.Lines()
	}
	if cfg.LyricsEnabled() {
		searcher := lyrics.NewSearcher(lyrics.NewSource(lrclib.New(cfg.Lyrics.Server)))
		defer searcher.Close()
		opts.Lyrics = searcher
		src.Lyrics = searcher.Results()
	}

	ctrl := session.New(opts)
	for _, u := range episodes {
		job := downloads.Job{URL: u, EpisodeKey: u, Title: app.EpisodeTitle(u), Dir: pod.DownloadDir, Enqueue: true}
		if _, err := pool.Submit(job); err != nil {
			log.Warn().Err(err).Str("url", u).Msg("queue episode")
		}
	}

	m := app.New(app.Deps{
		Controller:  ctrl,
		Router:      session.NewRouter(ctrl, src),
		Downloads:   pool,
		DownloadDir: pod.DownloadDir,
		Keys:        keymap.NewResolver(keymap.All),
	})

	log.Info().Int("tracks", queue.Len()).Msg("starting")
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		ctrl.Shutdown()
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func restoreQueue(mgr *state.Manager, q *playlist.Queue, fallback playlist.LoopMode) {
	saved, err := mgr.GetQueue()
	if err != nil {
		log.Warn().Err(err).Msg("restore queue")
	}
	if saved == nil {
		q.SetLoopMode(fallback)
		return
	}
	saved.RestoreQueue(q)
}

// openSinks starts the desktop integrations the config enables. Failures
// only disable the integration.
func openSinks(cfg *config.Config, commands *remote.Queue, art func() string) ([]sink.Sink, <-chan error, func()) {
	var (
		sinks   []sink.Sink
		errs    <-chan error
		closers []func()
	)
	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(commands, art)
		if err != nil {
			log.Warn().Err(err).Msg("start MPRIS")
		} else {
			sinks = append(sinks, adapter)
			closers = append(closers, func() { _ = adapter.Close() })
		}
	}
	if cfg.NotificationsEnabled() {
		n, err := notify.New()
		if err != nil {
			log.Warn().Err(err).Msg("connect notifications")
		} else {
			sinks = append(sinks, notify.NewTrackSink(n, art))
		}
	}
	if cfg.HasLastfmConfig() {
		client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
		client.SetSessionKey(cfg.Lastfm.SessionKey)
		scrobbler := lastfm.NewScrobbler(client)
		sinks = append(sinks, scrobbler)
		errs = scrobbler.Errors()
		closers = append(closers, scrobbler.Close)
	}
	return sinks, errs, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}
