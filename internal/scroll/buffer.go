// Package scroll implements a cursor-addressed single-line text buffer with
// horizontal scrolling, word-boundary motions, an optional non-scrolling
// prefix, and cyclic tab completion layered on top.
package scroll

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/xonecas/inkline/internal/constants"
	"github.com/xonecas/inkline/internal/textwidth"
)

var (
	// ErrWidth is returned for display widths too small to scroll in.
	ErrWidth = errors.New("scroll: display width too small")

	// ErrNonscrollWidth is returned when a non-scrolling prefix reaches
	// the configured ceiling.
	ErrNonscrollWidth = errors.New("scroll: nonscroll prefix too wide")
)

// Buffer is a mutable line of text with a cursor and a column-bounded
// viewport. The cursor is a rune index in [0, len]; the viewport start is
// re-anchored by every motion so the cursor stays visible.
type Buffer struct {
	text  []rune
	pos   int // cursor
	disp  int // first visible rune index
	width int

	nonscroll      string
	nonscrollWidth int

	onChange func()
}

// New creates a buffer with the cursor at the end of initial. The display
// width must exceed the tab width.
func New(width int, initial string) (*Buffer, error) {
	if width <= constants.TabWidth {
		return nil, fmt.Errorf("%w: %d columns (tab width %d)", ErrWidth, width, constants.TabWidth)
	}
	b := &Buffer{text: []rune(sanitize(initial)), width: width}
	b.pos = len(b.text)
	b.scrollToCursor()
	return b, nil
}

// sanitize strips DEL, which terminals render unpredictably.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\x7f", "")
}

// OnChange registers the hook invoked exactly once after each mutating
// operation settles. Hosts use it to trigger redraw.
func (b *Buffer) OnChange(fn func()) { b.onChange = fn }

func (b *Buffer) notify() {
	if b.onChange != nil {
		b.onChange()
	}
}

// String returns the raw buffer contents.
func (b *Buffer) String() string { return string(b.text) }

// Cursor returns the cursor's rune index.
func (b *Buffer) Cursor() int { return b.pos }

// Width returns the display width.
func (b *Buffer) Width() int { return b.width }

// cellw returns the columns a buffer rune occupies when shown: tabs pad to
// the tab width, newlines display escaped as two cells, other control runes
// are hidden.
func cellw(r rune) int {
	switch {
	case r == '\t':
		return constants.TabWidth
	case r == '\n' || r == '\r':
		return 2
	case r < 32 || r == 0x7f:
		return 0
	}
	return runewidth.RuneWidth(r)
}

// Show returns the visible window of the buffer, prefixed with the
// non-scrolling prefix. The window is re-anchored so the cursor lies inside
// it and its width stays under the display width. Under password, every
// visible rune is masked. Use CursorCol for the cursor's column within the
// returned string.
func (b *Buffer) Show(password bool) string {
	start, end := b.window()
	b.disp = start

	if password {
		return b.nonscroll + strings.Repeat(string(constants.MaskRune), end-start)
	}

	var out strings.Builder
	out.WriteString(b.nonscroll)
	for _, r := range b.text[start:end] {
		switch {
		case r == '\t':
			out.WriteString(strings.Repeat(" ", constants.TabWidth))
		case r == '\n':
			out.WriteString(`\n`)
		case r == '\r':
			out.WriteString(`\r`)
		case r < 32 || r == 0x7f:
			// hidden
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

// CursorCol returns the cursor's column offset within the string Show
// returns, non-scrolling prefix included.
func (b *Buffer) CursorCol() int {
	start, _ := b.window()
	b.disp = start
	col := b.nonscrollWidth
	for _, r := range b.text[start:b.pos] {
		col += cellw(r)
	}
	return col
}

// window computes the visible rune range [start, end): it grows the tail
// from the anchored viewport start until the cursor is covered and the
// window fills the width, then shrinks the head until the total fits.
func (b *Buffer) window() (int, int) {
	if b.disp > len(b.text) {
		b.disp = len(b.text)
	}
	if b.disp < 0 {
		b.disp = 0
	}
	start, end := b.disp, b.disp
	if start > b.pos {
		start, end = b.pos, b.pos
	}
	w := b.nonscrollWidth
	for end < b.pos || (w < b.width && end < len(b.text)) {
		if end == len(b.text) {
			break
		}
		cw := cellw(b.text[end])
		// past the cursor, never let a wide rune push the window over the
		// display width
		if end >= b.pos && w+cw > b.width {
			break
		}
		w += cw
		end++
	}
	for w >= b.width && start < b.pos {
		w -= cellw(b.text[start])
		start++
	}
	return start, end
}

// scrollToCursor re-anchors the viewport without touching the cursor.
func (b *Buffer) scrollToCursor() {
	start, _ := b.window()
	b.disp = start
}

// SetString replaces the contents and moves the cursor to the end.
func (b *Buffer) SetString(s string) {
	b.text = []rune(sanitize(s))
	b.pos = len(b.text)
	b.disp = 0
	b.scrollToCursor()
	b.notify()
}

// Clear empties the buffer.
func (b *Buffer) Clear() { b.SetString("") }

// SetNonscroll replaces the non-scrolling prefix. Prefixes at or over the
// configured ceiling fail with ErrNonscrollWidth.
func (b *Buffer) SetNonscroll(s string) error {
	w := textwidth.Cells(s)
	if w >= constants.MaxNonscrollWidth {
		return fmt.Errorf("%w: %d columns (max %d)", ErrNonscrollWidth, w, constants.MaxNonscrollWidth)
	}
	b.nonscroll = s
	b.nonscrollWidth = w
	b.scrollToCursor()
	b.notify()
	return nil
}

// SetWidth updates the display width and re-anchors the viewport.
func (b *Buffer) SetWidth(width int) error {
	if width <= constants.TabWidth {
		return fmt.Errorf("%w: %d columns (tab width %d)", ErrWidth, width, constants.TabWidth)
	}
	b.width = width
	b.scrollToCursor()
	b.notify()
	return nil
}

// MovePos moves the cursor by dist runes, clamping at the buffer edges.
// An unchanged position does not notify.
func (b *Buffer) MovePos(dist int) {
	target := b.pos + dist
	if target < 0 {
		target = 0
	}
	if target > len(b.text) {
		target = len(b.text)
	}
	if target == b.pos {
		return
	}
	b.pos = target
	b.scrollToCursor()
	b.notify()
}

// Home moves the cursor to the start.
func (b *Buffer) Home() {
	b.pos = 0
	b.disp = 0
	b.notify()
}

// End moves the cursor past the last rune.
func (b *Buffer) End() {
	b.pos = len(b.text)
	b.scrollToCursor()
	b.notify()
}

// wordBackIndex returns the cursor target of a backward word motion:
// skip any whitespace run behind the cursor, then the word behind it.
func (b *Buffer) wordBackIndex() int {
	i := b.pos
	for i > 0 && unicode.IsSpace(b.text[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(b.text[i-1]) {
		i--
	}
	return i
}

// wordNextIndex returns the cursor target of a forward word motion: skip
// any whitespace run ahead of the cursor, then through the end of the word.
func (b *Buffer) wordNextIndex() int {
	i := b.pos
	for i < len(b.text) && unicode.IsSpace(b.text[i]) {
		i++
	}
	for i < len(b.text) && !unicode.IsSpace(b.text[i]) {
		i++
	}
	return i
}

// WordBack moves the cursor to the start of the word behind it.
func (b *Buffer) WordBack() { b.MovePos(b.wordBackIndex() - b.pos) }

// WordNext moves the cursor past the end of the word ahead of it.
func (b *Buffer) WordNext() { b.MovePos(b.wordNextIndex() - b.pos) }

// Append inserts text at the cursor and advances past it.
func (b *Buffer) Append(s string) {
	runes := []rune(sanitize(s))
	if len(runes) == 0 {
		return
	}
	b.text = append(b.text[:b.pos], append(runes, b.text[b.pos:]...)...)
	b.pos += len(runes)
	b.scrollToCursor()
	b.notify()
}

// Backspace removes the rune before the cursor; a no-op at the start.
func (b *Buffer) Backspace() {
	if b.pos == 0 {
		return
	}
	b.text = append(b.text[:b.pos-1], b.text[b.pos:]...)
	b.pos--
	b.scrollToCursor()
	b.notify()
}

// DelChar removes the rune at the cursor; a no-op at the end.
func (b *Buffer) DelChar() {
	if b.pos >= len(b.text) {
		return
	}
	b.text = append(b.text[:b.pos], b.text[b.pos+1:]...)
	b.scrollToCursor()
	b.notify()
}

// DelWord removes from the backward word boundary to the cursor as one
// edit with one notification.
func (b *Buffer) DelWord() {
	target := b.wordBackIndex()
	if target == b.pos {
		return
	}
	b.text = append(b.text[:target], b.text[b.pos:]...)
	b.pos = target
	b.scrollToCursor()
	b.notify()
}

// DelWordForward removes from the cursor to the forward word boundary as
// one edit with one notification.
func (b *Buffer) DelWordForward() {
	target := b.wordNextIndex()
	if target == b.pos {
		return
	}
	b.text = append(b.text[:b.pos], b.text[target:]...)
	b.scrollToCursor()
	b.notify()
}
