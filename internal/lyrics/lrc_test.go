package lyrics

import (
	"strings"
	"testing"
	"time"
)

const sampleLRC = `[ar:Some Artist]
[ti:Some Song]
[al:Some Album]

[00:01.00]First line
[00:05.50][00:20.000]Chorus
[00:10.5]Second line
not a lyric line
`

func TestParseLRC(t *testing.T) {
	l, err := ParseLRC(strings.NewReader(sampleLRC))
	if err != nil {
		t.Fatalf("ParseLRC() error = %v", err)
	}

	if l.Artist != "Some Artist" || l.Title != "Some Song" || l.Album != "Some Album" {
		t.Errorf("metadata = %q/%q/%q", l.Artist, l.Title, l.Album)
	}

	want := []Line{
		{time.Second, "First line"},
		{5500 * time.Millisecond, "Chorus"},
		{10500 * time.Millisecond, "Second line"},
		{20 * time.Second, "Chorus"},
	}
	if len(l.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(l.Lines), len(want), l.Lines)
	}
	for i, w := range want {
		if l.Lines[i] != w {
			t.Errorf("Lines[%d] = %+v, want %+v", i, l.Lines[i], w)
		}
	}
}

func TestLyrics_TextAt(t *testing.T) {
	l, _ := ParseLRC(strings.NewReader(sampleLRC))

	tests := []struct {
		pos  time.Duration
		want string
	}{
		{0, ""},
		{time.Second, "First line"},
		{7 * time.Second, "Chorus"},
		{15 * time.Second, "Second line"},
		{time.Hour, "Chorus"},
	}
	for _, tt := range tests {
		if got := l.TextAt(tt.pos); got != tt.want {
			t.Errorf("TextAt(%v) = %q, want %q", tt.pos, got, tt.want)
		}
	}
}

func TestLyrics_Offset(t *testing.T) {
	l, _ := ParseLRC(strings.NewReader("[offset:+500]\n[00:02.00]Line"))

	if l.TextAt(1600*time.Millisecond) != "Line" {
		t.Error("positive offset should show the line earlier")
	}

	l.Adjust(-time.Second)
	if l.TextAt(2*time.Second) != "" {
		t.Error("after Adjust(-1s) the line should start at 2.5s")
	}
}

func TestLyrics_Unsynced(t *testing.T) {
	l := &Lyrics{Lines: []Line{{0, "a"}, {0, "b"}}}

	if l.IsSynced() {
		t.Error("IsSynced() = true for all-zero timestamps")
	}
	if got := l.LineAt(time.Minute); got != -1 {
		t.Errorf("LineAt() = %d, want -1", got)
	}
}

func TestLyrics_NilTextAt(t *testing.T) {
	var l *Lyrics
	if l.TextAt(time.Second) != "" {
		t.Error("nil lyrics should have no text")
	}
}
