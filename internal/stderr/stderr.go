//go:build !windows

// Package stderr captures stderr output from C libraries (ALSA, minimp3)
// that write directly to file descriptor 2, bypassing Go's os.Stderr.
// This prevents raw error messages from corrupting the TUI layout.
package stderr

import (
	"os"
	"syscall"
)

// Capture redirects fd 2 into a pipe until Stop.
type Capture struct {
	orig  int
	r, w  *os.File
	lines chan string
	done  chan struct{}
}

// Start begins capturing stderr output.
// Must be called early in main(), before any C library initialization.
// On error the program can continue; output just goes to the terminal.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		orig:  orig,
		r:     r,
		w:     w,
		lines: make(chan string, lineBuffer),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(c.done)
		forward(r, c.lines)
	}()
	return c, nil
}

// Lines receives captured lines. It is closed after Stop.
func (c *Capture) Lines() <-chan string { return c.lines }

// WriteOriginal writes directly to the original stderr, bypassing capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = syscall.Write(c.orig, []byte(msg))
}

// Stop restores the original stderr.
func (c *Capture) Stop() {
	_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(c.orig)
	c.w.Close()
	<-c.done
	c.r.Close()
}
