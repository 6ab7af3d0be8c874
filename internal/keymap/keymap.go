package keymap

// Binding maps keys to an action, with a description for the help line.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "queue" or "downloads"
}

// All contains all key bindings.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionClearNotice, []string{"esc"}, "Dismiss message", "global"},
	{ActionAddEpisode, []string{"e"}, "Download episode", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek +5s", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek -5s", "playback"},
	{ActionSeekForwardLong, []string{"shift+right", "L"}, "Seek +30s", "playback"},
	{ActionSeekBackLong, []string{"shift+left", "H"}, "Seek -30s", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionCycleLoop, []string{"r"}, "Cycle loop mode", "playback"},

	// Queue panel
	{ActionMoveUp, []string{"k", "up"}, "Move up", "queue"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "queue"},
	{ActionSelect, []string{"enter"}, "Play track", "queue"},
	{ActionDelete, []string{"d", "delete"}, "Remove track", "queue"},

	// Downloads panel
	{ActionClearDownloads, []string{"x"}, "Clear finished downloads", "downloads"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
