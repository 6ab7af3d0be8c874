// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionClearNotice Action = "clear_notice"
	ActionAddEpisode  Action = "add_episode"

	// Downloads panel
	ActionClearDownloads Action = "clear_downloads" // drop finished rows

	// Playback actions
	ActionPlayPause       Action = "play_pause"
	ActionStop            Action = "stop"
	ActionNextTrack       Action = "next_track"
	ActionPrevTrack       Action = "prev_track"
	ActionSeekForward     Action = "seek_forward"
	ActionSeekBack        Action = "seek_back"
	ActionSeekForwardLong Action = "seek_forward_long"
	ActionSeekBackLong    Action = "seek_back_long"
	ActionVolumeUp        Action = "volume_up"
	ActionVolumeDown      Action = "volume_down"
	ActionCycleLoop       Action = "cycle_loop"

	// Queue panel
	ActionMoveUp   Action = "move_up"
	ActionMoveDown Action = "move_down"
	ActionSelect   Action = "select" // play the track under the cursor
	ActionDelete   Action = "delete"
)
