package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestCompose(t *testing.T) {
	base := "aaaaaa\nbbbbbb\ncccccc"

	got := Compose(base, "XY\nZW", 2, 1, 6)

	assert.Equal(t, "aaaaaa\nbbXYbb\nccZWcc", got)
}

func TestCompose_ClipsRowsPastBase(t *testing.T) {
	got := Compose("aaaa\nbbbb", "X\nY\nZ", 0, 1, 4)

	assert.Equal(t, "aaaa\nXbbb", got)
}

func TestCompose_PadsShortLines(t *testing.T) {
	got := Compose("a", "X", 3, 0, 5)

	assert.Equal(t, "a  X ", got)
}

func TestCompose_StyledBase(t *testing.T) {
	base := "\x1b[1mhello world\x1b[0m"

	got := Compose(base, "__", 5, 0, 11)

	assert.Equal(t, "hello__orld", ansi.Strip(got))
}

func TestCenter(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 10)+"\n", 4) + strings.Repeat(".", 10)

	got := strings.Split(Center(base, "##\n##", 10, 5), "\n")

	assert.Equal(t, "..........", got[0])
	assert.Equal(t, "....##....", got[1])
	assert.Equal(t, "....##....", got[2])
	assert.Equal(t, "..........", got[3])
}
