package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/wavecast/internal/player"
	"github.com/llehouerou/wavecast/internal/playlist"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{83 * time.Second, "1:23"},
		{time.Hour + 2*time.Second, "60:02"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d))
	}
}

func TestRenderProgressBar(t *testing.T) {
	t.Run("half filled", func(t *testing.T) {
		got := ansi.Strip(RenderProgressBar(30*time.Second, time.Minute, 31, player.Playing))

		assert.True(t, strings.HasPrefix(got, "▶  0:30  "))
		assert.True(t, strings.HasSuffix(got, "  1:00"))
		assert.Equal(t, 31, lipgloss.Width(got))
		assert.Equal(t, strings.Count(got, filledBlock), strings.Count(got, emptyBlock))
	})

	t.Run("zero duration", func(t *testing.T) {
		got := ansi.Strip(RenderProgressBar(0, 0, 30, player.Stopped))

		assert.True(t, strings.HasPrefix(got, "■"))
		assert.Zero(t, strings.Count(got, filledBlock))
	})

	t.Run("position past duration", func(t *testing.T) {
		got := ansi.Strip(RenderProgressBar(2*time.Minute, time.Minute, 30, player.Paused))

		assert.True(t, strings.HasPrefix(got, "⏸"))
		assert.Zero(t, strings.Count(got, emptyBlock))
	})

	t.Run("too narrow", func(t *testing.T) {
		got := RenderProgressBar(time.Second, time.Minute, 10, player.Playing)

		assert.Equal(t, "▶  0:01 / 1:00", got)
	})
}

func TestRenderLoopAndVolume(t *testing.T) {
	assert.Equal(t, "⟲ off", ansi.Strip(RenderLoop(playlist.LoopNone)))
	assert.Equal(t, "⟲ one", ansi.Strip(RenderLoop(playlist.LoopSingle)))
	assert.Equal(t, "⟲ all", ansi.Strip(RenderLoop(playlist.LoopQueue)))

	assert.Equal(t, "mute", ansi.Strip(RenderVolume(0)))
	assert.Equal(t, "vol  80%", ansi.Strip(RenderVolume(80)))
}

func TestRender(t *testing.T) {
	track := &playlist.Track{Title: "Song", Artist: "Band", Album: "Record", MediaType: playlist.MediaMusic}

	t.Run("playing", func(t *testing.T) {
		out := Render(State{
			Status:    player.Playing,
			Track:     track,
			Position:  10 * time.Second,
			Duration:  time.Minute,
			Volume:    50,
			LyricLine: "la la",
		}, 80)
		plain := ansi.Strip(out)

		assert.Len(t, strings.Split(out, "\n"), Height)
		assert.Contains(t, plain, "Song")
		assert.Contains(t, plain, "Band · Record")
		assert.Contains(t, plain, "la la")
		assert.Contains(t, plain, "vol  50%")
		for _, l := range strings.Split(out, "\n") {
			assert.Equal(t, 80, lipgloss.Width(l))
		}
	})

	t.Run("stopped", func(t *testing.T) {
		plain := ansi.Strip(Render(State{Status: player.Stopped, Duration: time.Minute}, 60))

		assert.Contains(t, plain, "Stopped")
		assert.Contains(t, plain, "1:00")
	})

	t.Run("long title truncated", func(t *testing.T) {
		long := &playlist.Track{Title: strings.Repeat("x", 200)}
		out := Render(State{Status: player.Playing, Track: long}, 50)

		for _, l := range strings.Split(out, "\n") {
			assert.Equal(t, 50, lipgloss.Width(l))
		}
	})
}
