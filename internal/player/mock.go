// internal/player/mock.go
package player

import (
	"sync"
	"time"

	"github.com/llehouerou/wavecast/internal/playlist"
)

// PlayCall records one Mock.Play invocation.
type PlayCall struct {
	Track playlist.Track
	Token Token
}

// Mock is a test double for Backend. Every call is appended to Calls so tests
// can assert ordering.
type Mock struct {
	mu              sync.Mutex
	playing         bool
	paused          bool
	token           Token
	volume          int
	seekWhilePaused bool
	playErr         error
	seekErr         error
	playCalls       []PlayCall
	seekCalls       []time.Duration
	seekToCalls     []time.Duration
	volumeCalls     []int
	calls           []string
	events          chan Event
}

// NewMock creates a mock backend that supports seeking while paused.
func NewMock() *Mock {
	return &Mock{
		seekWhilePaused: true,
		volume:          100,
		events:          make(chan Event, eventBuffer),
	}
}

func (m *Mock) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *Mock) Play(t playlist.Track, token Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("play")
	m.playCalls = append(m.playCalls, PlayCall{Track: t, Token: token})
	if m.playErr != nil {
		m.playing = false
		return m.playErr
	}
	m.playing, m.paused, m.token = true, false, token
	return nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("pause")
	if m.playing {
		m.paused = true
	}
}

func (m *Mock) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("resume")
	m.paused = false
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("stop")
	m.playing, m.paused = false, false
}

// Skip emits TrackEnded for the current token, like a real backend.
func (m *Mock) Skip() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("skip")
	if !m.playing {
		return
	}
	m.playing, m.paused = false, false
	m.events <- TrackEnded{Token: m.token, Skipped: true}
}

func (m *Mock) Seek(delta time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("seek")
	m.seekCalls = append(m.seekCalls, delta)
	return m.seekErr
}

func (m *Mock) SeekTo(pos time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("seek_to")
	m.seekToCalls = append(m.seekToCalls, pos)
	return m.seekErr
}

func (m *Mock) SetVolume(level int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("volume")
	m.volume = level
	m.volumeCalls = append(m.volumeCalls, level)
}

func (m *Mock) IsPaused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

func (m *Mock) SupportsSeekWhilePaused() bool { return m.seekWhilePaused }

func (m *Mock) Events() <-chan Event { return m.events }

// Test helpers

func (m *Mock) SetSeekWhilePaused(ok bool) { m.seekWhilePaused = ok }

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) SetSeekError(err error) { m.seekErr = err }

// Emit queues an event as if the backend produced it.
func (m *Mock) Emit(e Event) { m.events <- e }

// CurrentToken returns the token of the last successful Play.
func (m *Mock) CurrentToken() Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Mock) Volume() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) PlayCalls() []PlayCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PlayCall(nil), m.playCalls...)
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) SeekToCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekToCalls...)
}

func (m *Mock) VolumeCalls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.volumeCalls...)
}

// Calls returns the method names in call order.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// ResetCalls forgets recorded calls, keeping state.
func (m *Mock) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.playCalls = nil
	m.seekCalls = nil
	m.seekToCalls = nil
	m.volumeCalls = nil
}

// Verify Mock implements Backend at compile time.
var _ Backend = (*Mock)(nil)
