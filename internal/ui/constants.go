// Package ui holds layout constants and the embeddable Base shared by the
// panels.
package ui

const (
	// ScrollMargin is the number of rows kept visible above and below a cursor.
	ScrollMargin = 3

	// BorderHeight is the space a rounded border takes on each axis.
	BorderHeight = 2

	// HeaderHeight is the title line plus its separator.
	HeaderHeight = 2

	// PanelOverhead is what a panel spends on anything but its rows.
	PanelOverhead = BorderHeight + HeaderHeight
)
