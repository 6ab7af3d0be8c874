//go:build windows

// Package stderr provides a no-op implementation for Windows.
// Windows audio libraries don't produce the same stderr noise as ALSA.
package stderr

import "os"

// Capture is inert on Windows.
type Capture struct {
	lines chan string
}

func Start() (*Capture, error) {
	return &Capture{lines: make(chan string)}, nil
}

func (c *Capture) Lines() <-chan string { return c.lines }

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

func (c *Capture) Stop() { close(c.lines) }
