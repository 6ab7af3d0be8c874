package playerbar

import (
	"fmt"

	"github.com/llehouerou/wavecast/internal/playlist"
)

// RenderVolume renders "vol  80%"; muted shows as "mute".
func RenderVolume(volume int) string {
	if volume <= 0 {
		return metaStyle().Render("mute")
	}
	return metaStyle().Render(fmt.Sprintf("vol %3d%%", volume))
}

// RenderLoop renders the loop mode indicator.
func RenderLoop(m playlist.LoopMode) string {
	switch m {
	case playlist.LoopSingle:
		return loopActiveStyle().Render("⟲ one")
	case playlist.LoopQueue:
		return loopActiveStyle().Render("⟲ all")
	default:
		return metaStyle().Render("⟲ off")
	}
}
