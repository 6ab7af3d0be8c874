// Package lyrics parses LRC lyrics and finds them for the playing track.
package lyrics

import (
	"bufio"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Line is a single timestamped lyric line.
type Line struct {
	Time time.Duration
	Text string
}

// Lyrics holds parsed lyrics. Offset shifts every timestamp (LRC [offset:]
// tag, in the LRC sign convention: positive means lyrics show earlier).
type Lyrics struct {
	Lines  []Line
	Title  string
	Artist string
	Album  string
	Offset time.Duration
}

var (
	// [00:12.34], [00:12:34] or [00:12]
	timestampRe = regexp.MustCompile(`\[(\d+):(\d+)(?:[.:](\d+))?\]`)
	// [ar:Artist Name]
	metadataRe = regexp.MustCompile(`^\[([a-z]+):(.+)\]$`)
)

// ParseLRC parses LRC lyrics. Lines with several timestamps produce one
// Line per timestamp; the result is sorted by time.
func ParseLRC(r io.Reader) (*Lyrics, error) {
	l := &Lyrics{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if meta := metadataRe.FindStringSubmatch(line); meta != nil {
			l.setTag(strings.ToLower(meta[1]), strings.TrimSpace(meta[2]))
			continue
		}
		l.Lines = append(l.Lines, parseLine(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	slices.SortStableFunc(l.Lines, func(a, b Line) int {
		return int(a.Time - b.Time)
	})
	return l, nil
}

func (l *Lyrics) setTag(tag, value string) {
	switch tag {
	case "ar":
		l.Artist = value
	case "ti":
		l.Title = value
	case "al":
		l.Album = value
	case "offset":
		if ms, err := strconv.Atoi(strings.TrimPrefix(value, "+")); err == nil {
			l.Offset = time.Duration(ms) * time.Millisecond
		}
	}
}

func parseLine(line string) []Line {
	matches := timestampRe.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return nil
	}
	idx := timestampRe.FindAllStringIndex(line, -1)
	text := strings.TrimSpace(line[idx[len(idx)-1][1]:])

	out := make([]Line, 0, len(matches))
	for _, m := range matches {
		out = append(out, Line{Time: timestamp(m[1], m[2], m[3]), Text: text})
	}
	return out
}

// timestamp accepts centiseconds (.xx) and milliseconds (.xxx).
func timestamp(min, sec, frac string) time.Duration {
	m, _ := strconv.Atoi(min)
	s, _ := strconv.Atoi(sec)
	ms := 0
	if frac != "" {
		ms, _ = strconv.Atoi(frac)
		switch len(frac) {
		case 1:
			ms *= 100
		case 2:
			ms *= 10
		}
	}
	return time.Duration(m)*time.Minute + time.Duration(s)*time.Second + time.Duration(ms)*time.Millisecond
}

// IsSynced reports whether any line has a non-zero timestamp.
func (l *Lyrics) IsSynced() bool {
	return slices.ContainsFunc(l.Lines, func(line Line) bool { return line.Time > 0 })
}

// LineAt returns the index of the line active at pos, or -1 before the first
// line or for unsynced lyrics.
func (l *Lyrics) LineAt(pos time.Duration) int {
	if !l.IsSynced() {
		return -1
	}
	pos += l.Offset
	idx := -1
	for i, line := range l.Lines {
		if line.Time > pos {
			break
		}
		idx = i
	}
	return idx
}

// TextAt returns the text of the line active at pos, or "".
func (l *Lyrics) TextAt(pos time.Duration) string {
	if l == nil {
		return ""
	}
	if i := l.LineAt(pos); i >= 0 {
		return l.Lines[i].Text
	}
	return ""
}

// Adjust shifts the lyrics by delta; positive shows lines earlier.
func (l *Lyrics) Adjust(delta time.Duration) {
	l.Offset += delta
}
