package styles

import (
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func TestApplyGradient_KeepsText(t *testing.T) {
	tests := []string{"", "a", "wavecast", "héllo wörld", "日本語"}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			got := ApplyGradient(text, "#ff0000", "#0000ff")
			assert.Equal(t, text, ansi.Strip(got))
		})
	}
}

func TestBlendColors_Endpoints(t *testing.T) {
	colors := blendColors(5, "#ff0000", "#0000ff")

	assert.Len(t, colors, 5)
	assert.True(t, asColorful(colors[0]).AlmostEqualRgb(colorful.Color{R: 1}))
	assert.True(t, asColorful(colors[4]).AlmostEqualRgb(colorful.Color{B: 1}))
}

func TestBlendColors_ANSIFallsBackToGray(t *testing.T) {
	colors := blendColors(2, "240", "240")

	gray, _ := colorful.Hex("#808080")
	assert.True(t, asColorful(colors[0]).AlmostEqualRgb(gray))
}

func asColorful(c color.Color) colorful.Color {
	cf, _ := colorful.MakeColor(c)
	return cf
}

func TestPanel(t *testing.T) {
	out := Panel("Queue", "one\ntwo", 20, 6, false)
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 6)
	for _, l := range lines {
		assert.Equal(t, 20, lipgloss.Width(l))
	}
	assert.Contains(t, ansi.Strip(out), "Queue")
	assert.Contains(t, ansi.Strip(out), "two")
}

func TestPanel_FocusedKeepsTitle(t *testing.T) {
	out := Panel("Downloads", "", 30, 4, true)

	assert.Contains(t, ansi.Strip(out), "Downloads")
}
