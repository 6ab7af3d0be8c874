// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"
	OpPlayback      Op = "play"

	// Desktop integrations
	OpSinkUpdate Op = "update desktop integration"
	OpCoverLoad  Op = "load cover art"
	OpScrobble   Op = "reach Last.fm"

	// Queue operations
	OpQueueLoad Op = "load queue"
	OpQueueSave Op = "save queue"
	OpQueueAdd  Op = "add to queue"

	// Download operations
	OpDownloadQueue Op = "queue download"
	OpDownload      Op = "download episode"

	// Lyrics
	OpLyricsLoad Op = "load lyrics"

	// File operations
	OpFileLoad Op = "load file"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
