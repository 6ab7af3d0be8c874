//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackSeek,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPlaybackSeek,
			err:      errors.New("not playing"),
			expected: "Failed to seek: not playing",
		},
		{
			name:     "download operation",
			op:       OpDownload,
			err:      errors.New("network error"),
			expected: "Failed to download episode: network error",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpFileLoad,
			context:  "song.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpFileLoad,
			context:  "song.mp3",
			err:      errors.New("permission denied"),
			expected: "Failed to load file 'song.mp3': permission denied",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpFileLoad,
			context:  "",
			err:      errors.New("permission denied"),
			expected: "Failed to load file: permission denied",
		},
		{
			name:     "download with episode context",
			op:       OpDownload,
			context:  "Episode 12",
			err:      errors.New("status 404"),
			expected: "Failed to download episode 'Episode 12': status 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpPlaybackStart, OpPlaybackSeek, OpPlayback,
		OpSinkUpdate, OpCoverLoad, OpScrobble,
		OpQueueLoad, OpQueueSave, OpQueueAdd,
		OpDownloadQueue, OpDownload,
		OpLyricsLoad,
		OpFileLoad,
		OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
