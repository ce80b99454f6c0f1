package constants

// Display cell constants shared across the width engine consumers.
const (
	// TabWidth is the number of columns a tab occupies in a scroll buffer.
	TabWidth = 4

	// MaxNonscrollWidth caps the column width of a scroll buffer's
	// non-scrolling prefix.
	MaxNonscrollWidth = 5

	// MaskRune replaces visible characters in password mode.
	MaskRune = '*'

	// Ellipsis marks omitted text in justified lines.
	Ellipsis = "…"
)
