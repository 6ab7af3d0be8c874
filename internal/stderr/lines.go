package stderr

import (
	"bufio"
	"io"
	"strings"
)

const lineBuffer = 100

// forward sends non-empty lines of r to out until EOF, then closes out.
// Repeats of the previous line are dropped, as is anything that does not fit.
func forward(r io.Reader, out chan<- string) {
	defer close(out)
	var last string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == last {
			continue
		}
		last = line
		select {
		case out <- line:
		default:
		}
	}
}
