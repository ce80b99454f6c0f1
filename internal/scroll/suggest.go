package scroll

// Completer produces ordered completion candidates for a buffer's content
// and cursor position. An empty result leaves the buffer untouched.
type Completer interface {
	Complete(content string, cursor int) []string
}

// CompleterFunc adapts a function to the Completer capability.
type CompleterFunc func(content string, cursor int) []string

// Complete implements Completer.
func (f CompleterFunc) Complete(content string, cursor int) []string {
	return f(content, cursor)
}

// Suggest layers cyclic tab completion over a Buffer. Buffer operations are
// exposed through delegation so every outside edit funnels through the
// suggestion-clearing wrappers; only Complete and BackComplete themselves
// preserve the cycling state.
type Suggest struct {
	buf *Buffer

	active     bool
	candidates []string
	index      int
}

// NewSuggest creates a completion-capable buffer.
func NewSuggest(width int, initial string) (*Suggest, error) {
	buf, err := New(width, initial)
	if err != nil {
		return nil, err
	}
	return &Suggest{buf: buf}, nil
}

// Tabbing reports whether a completion cycle is active.
func (s *Suggest) Tabbing() bool { return s.active }

// drop discards any in-flight completion cycle.
func (s *Suggest) drop() {
	s.active = false
	s.candidates = nil
	s.index = 0
}

// Complete starts or advances a completion cycle. Outside a cycle it asks
// the completer for candidates against the current content and applies the
// first; inside one it advances to the next candidate, wrapping around.
// Reports whether the buffer changed.
func (s *Suggest) Complete(c Completer) bool {
	if !s.active {
		candidates := c.Complete(s.buf.String(), s.buf.Cursor())
		if len(candidates) == 0 {
			return false
		}
		s.candidates = candidates
		s.index = 0
		s.active = true
		s.buf.SetString(s.candidates[0])
		return true
	}
	s.index = (s.index + 1) % len(s.candidates)
	s.buf.SetString(s.candidates[s.index])
	return true
}

// BackComplete steps a cycle backward with wraparound. It never starts a
// cycle; outside one it is a no-op.
func (s *Suggest) BackComplete() bool {
	if !s.active {
		return false
	}
	s.index = (s.index - 1 + len(s.candidates)) % len(s.candidates)
	s.buf.SetString(s.candidates[s.index])
	return true
}

// --- delegated buffer surface; every mutation clears the cycle ---

// OnChange registers the host's redraw hook on the underlying buffer.
func (s *Suggest) OnChange(fn func()) { s.buf.OnChange(fn) }

// Show returns the visible window; see Buffer.Show.
func (s *Suggest) Show(password bool) string { return s.buf.Show(password) }

// CursorCol returns the cursor column; see Buffer.CursorCol.
func (s *Suggest) CursorCol() int { return s.buf.CursorCol() }

// String returns the raw buffer contents.
func (s *Suggest) String() string { return s.buf.String() }

// Cursor returns the cursor's rune index.
func (s *Suggest) Cursor() int { return s.buf.Cursor() }

// Width returns the display width.
func (s *Suggest) Width() int { return s.buf.Width() }

// SetString replaces the contents and clears any completion cycle.
func (s *Suggest) SetString(v string) {
	s.drop()
	s.buf.SetString(v)
}

// Clear empties the buffer and clears any completion cycle.
func (s *Suggest) Clear() {
	s.drop()
	s.buf.Clear()
}

// SetNonscroll replaces the non-scrolling prefix.
func (s *Suggest) SetNonscroll(v string) error { return s.buf.SetNonscroll(v) }

// SetWidth updates the display width.
func (s *Suggest) SetWidth(w int) error { return s.buf.SetWidth(w) }

// MovePos moves the cursor by dist runes.
func (s *Suggest) MovePos(dist int) { s.buf.MovePos(dist) }

// Home moves the cursor to the start.
func (s *Suggest) Home() { s.buf.Home() }

// End moves the cursor past the last rune.
func (s *Suggest) End() { s.buf.End() }

// WordBack moves the cursor to the start of the word behind it.
func (s *Suggest) WordBack() { s.buf.WordBack() }

// WordNext moves the cursor past the end of the word ahead of it.
func (s *Suggest) WordNext() { s.buf.WordNext() }

// Append inserts text at the cursor and clears any completion cycle.
func (s *Suggest) Append(v string) {
	s.drop()
	s.buf.Append(v)
}

// Backspace removes the rune before the cursor and clears any completion
// cycle.
func (s *Suggest) Backspace() {
	s.drop()
	s.buf.Backspace()
}

// DelChar removes the rune at the cursor and clears any completion cycle.
func (s *Suggest) DelChar() {
	s.drop()
	s.buf.DelChar()
}

// DelWord removes the word behind the cursor and clears any completion
// cycle.
func (s *Suggest) DelWord() {
	s.drop()
	s.buf.DelWord()
}

// DelWordForward removes the word ahead of the cursor and clears any
// completion cycle.
func (s *Suggest) DelWordForward() {
	s.drop()
	s.buf.DelWordForward()
}
