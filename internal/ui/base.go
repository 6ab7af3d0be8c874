package ui

// Base carries the focus and size every panel needs. Embed it in panel models.
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) {
	b.focused = focused
}

func (b Base) IsFocused() bool {
	return b.focused
}

func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

func (b Base) Width() int {
	return b.width
}

func (b Base) Height() int {
	return b.height
}
