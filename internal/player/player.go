package player

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavecast/internal/playlist"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"

	monitorInterval = 500 * time.Millisecond
	seekMuteDelay   = 100 * time.Millisecond
	eventBuffer     = 64
)

// Player is the beep-backed Backend.
type Player struct {
	mu      sync.Mutex
	cur     *stream
	level   int
	events  chan Event
	closed  chan struct{}
	once    sync.Once
	sr      beep.SampleRate
	speaker bool
}

// stream is everything owned by one Play call.
type stream struct {
	token    Token
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	done     chan struct{}
	released bool // set under speaker lock once streamer is closed
	ended    atomic.Bool
}

func New(level int) *Player {
	return &Player{
		level:  clampLevel(level),
		events: make(chan Event, eventBuffer),
		closed: make(chan struct{}),
	}
}

func (p *Player) Events() <-chan Event { return p.events }

// SupportsSeekWhilePaused is true: beep streams seek under the speaker lock
// regardless of the Ctrl pause flag.
func (p *Player) SupportsSeekWhilePaused() bool { return true }

// Play stops whatever is playing and starts t.
func (p *Player) Play(t playlist.Track, token Token) error {
	p.Stop()

	f, err := os.Open(t.Path)
	if err != nil {
		return err
	}
	streamer, format, err := decode(f)
	if err != nil {
		f.Close()
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.speaker {
		p.sr = format.SampleRate
		if err := speaker.Init(p.sr, p.sr.N(time.Second/10)); err != nil {
			streamer.Close()
			f.Close()
			return err
		}
		p.speaker = true
	}

	var out beep.Streamer = streamer
	if format.SampleRate != p.sr {
		out = beep.Resample(4, format.SampleRate, p.sr, streamer)
	}

	s := &stream{
		token:    token,
		file:     f,
		streamer: streamer,
		format:   format,
		done:     make(chan struct{}),
	}
	s.ctrl = &beep.Ctrl{Streamer: out}
	s.volume = &effects.Volume{Streamer: s.ctrl, Base: 2}
	applyLevel(s.volume, p.level)
	p.cur = s

	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		// runs on the speaker goroutine with the lock held
		go p.finish(s, false)
	})))
	go p.monitor(s)

	log.Debug().Str("path", t.Path).Uint64("token", uint64(token)).Msg("playback started")
	return nil
}

// Stop stops playback and releases resources. No event is emitted.
func (p *Player) Stop() {
	p.mu.Lock()
	s := p.cur
	p.cur = nil
	p.mu.Unlock()
	if s != nil {
		p.release(s)
	}
}

func (p *Player) release(s *stream) {
	close(s.done)
	speaker.Clear()
	speaker.Lock()
	s.released = true
	s.streamer.Close()
	speaker.Unlock()
	s.file.Close()
}

// Skip ends the current track and reports it as ended.
func (p *Player) Skip() {
	p.mu.Lock()
	s := p.cur
	p.cur = nil
	p.mu.Unlock()
	if s == nil {
		return
	}
	p.release(s)
	p.finish(s, true)
}

// finish emits TrackEnded once per stream.
func (p *Player) finish(s *stream, skipped bool) {
	if !s.ended.CompareAndSwap(false, true) {
		return
	}
	p.emit(TrackEnded{Token: s.token, Skipped: skipped})
}

func (p *Player) Pause() {
	p.setPaused(true)
}

func (p *Player) Resume() {
	p.setPaused(false)
}

func (p *Player) setPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return
	}
	speaker.Lock()
	p.cur.ctrl.Paused = paused
	speaker.Unlock()
}

func (p *Player) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.cur.ctrl.Paused
}

// Seek moves the playback position by delta. Seeking past the end ends the track.
func (p *Player) Seek(delta time.Duration) error {
	p.mu.Lock()
	s := p.cur
	p.mu.Unlock()
	if s == nil {
		return ErrNotPlaying
	}
	speaker.Lock()
	pos := s.format.SampleRate.D(s.streamer.Position())
	speaker.Unlock()
	return p.seek(s, pos+delta)
}

// SeekTo moves the playback position to pos.
func (p *Player) SeekTo(pos time.Duration) error {
	p.mu.Lock()
	s := p.cur
	p.mu.Unlock()
	if s == nil {
		return ErrNotPlaying
	}
	return p.seek(s, pos)
}

func (p *Player) seek(s *stream, target time.Duration) error {
	n := max(s.format.SampleRate.N(target), 0)

	speaker.Lock()
	if s.released {
		speaker.Unlock()
		return ErrNotPlaying
	}
	if n >= s.streamer.Len() {
		speaker.Unlock()
		go p.finish(s, false)
		return nil
	}
	// mute around the seek to avoid a click
	s.volume.Silent = true
	err := s.streamer.Seek(n)
	speaker.Unlock()

	time.AfterFunc(seekMuteDelay, func() {
		p.mu.Lock()
		level := p.level
		p.mu.Unlock()
		speaker.Lock()
		if !s.released {
			s.volume.Silent = level == 0
		}
		speaker.Unlock()
	})
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	return nil
}

// SetVolume sets the volume level in percent, clamped to 0-100.
func (p *Player) SetVolume(level int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = clampLevel(level)
	if p.cur != nil {
		speaker.Lock()
		applyLevel(p.cur.volume, p.level)
		speaker.Unlock()
	}
}

// Close stops playback and unblocks pending event sends.
func (p *Player) Close() {
	p.Stop()
	p.once.Do(func() { close(p.closed) })
}

// monitor reports the position of s until it is released.
func (p *Player) monitor(s *stream) {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			speaker.Lock()
			if s.released {
				speaker.Unlock()
				return
			}
			pos := s.format.SampleRate.D(s.streamer.Position())
			dur := s.format.SampleRate.D(s.streamer.Len())
			paused := s.ctrl.Paused
			speaker.Unlock()
			if paused {
				continue
			}
			p.emitProgress(Progress{Token: s.token, Position: pos, Duration: dur})
		}
	}
}

// emitProgress drops the update when the channel is half full, keeping room
// for terminal events.
func (p *Player) emitProgress(e Progress) {
	if len(p.events) >= cap(p.events)/2 {
		return
	}
	select {
	case p.events <- e:
	default:
	}
}

func (p *Player) emit(e Event) {
	select {
	case p.events <- e:
	case <-p.closed:
	}
}

func decode(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(f.Name()))
	switch ext {
	case extMP3:
		return mp3.Decode(f)
	case extFLAC:
		// some taggers prepend an ID3v2 tag the FLAC decoder chokes on
		if err := skipID3v2(f); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(f)
	case extWAV:
		return wav.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// IsAudioFile reports whether path has an extension the backend decodes.
func IsAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extFLAC, extWAV:
		return true
	}
	return false
}

func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := r.Read(header)
	if err != nil {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}
	// syncsafe integer: 7 bits per byte
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}

func clampLevel(level int) int {
	return min(max(level, 0), 100)
}

func applyLevel(v *effects.Volume, level int) {
	v.Volume = levelToVolume(float64(level) / 100)
	v.Silent = level == 0
}

// levelToVolume converts a 0.0-1.0 level to beep's base-2 Volume:
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
