// Package styled implements position-indexed text styling: a string with an
// attached timeline of color changes and effect ranges, renderable to an
// ANSI escape-decorated string or broken into column-bounded lines.
//
// Timeline offsets are byte offsets into the string. A color key applies
// from its offset until the next key or the end of the string; effect spans
// are half-open and may overlap.
package styled

import (
	"errors"
	"fmt"
	"sort"

	"github.com/xonecas/inkline/internal/style"
)

// ErrRange is returned for timeline or splice indices that fall outside the
// string after negative-index resolution.
var ErrRange = errors.New("styled: index out of range")

type colorKey struct {
	pos   int
	color style.ColorID
}

type span struct {
	start, end int
	effect     style.EffectID
}

// Text owns a string and its style timeline.
type Text struct {
	reg       *style.Registry
	str       string
	keys      []colorKey // sorted by pos, unique positions
	spans     []span     // insertion order
	normalize bool
	rev       int // bumped by every mutation; justified views memoize on it
}

// Option configures Text construction.
type Option func(*Text)

// WithoutNormalization keeps mathematical alphanumeric and fraktur letters
// verbatim instead of folding them to ASCII.
func WithoutNormalization() Option {
	return func(t *Text) { t.normalize = false }
}

// New wraps s in an empty timeline bound to reg. Construction freezes the
// registry so color and effect ids stay stable for the life of the text.
// By default the problematic wide script blocks are folded to ASCII; see
// WithoutNormalization.
func New(reg *style.Registry, s string, opts ...Option) *Text {
	t := &Text{reg: reg, normalize: true}
	for _, opt := range opts {
		opt(t)
	}
	if t.normalize {
		s = foldBadBlocks(s)
	}
	t.str = s
	reg.Freeze()
	return t
}

// String returns the raw contained text, without escapes.
func (t *Text) String() string { return t.str }

// Len returns the byte length of the contained text.
func (t *Text) Len() int { return len(t.str) }

// Registry returns the registry the timeline's ids belong to.
func (t *Text) Registry() *style.Registry { return t.reg }

// Clear drops all color keys and effect spans.
func (t *Text) Clear() {
	t.keys = t.keys[:0]
	t.spans = t.spans[:0]
	t.rev++
}

// SetString replaces the contained text and clears the timeline, applying
// the same normalization the text was constructed with.
func (t *Text) SetString(s string) {
	if t.normalize {
		s = foldBadBlocks(s)
	}
	t.str = s
	t.Clear()
}

// InsertColor sets the color applying from pos until the next key. An
// existing key at pos is replaced. pos must lie in [0, Len()].
func (t *Text) InsertColor(pos int, c style.ColorID) error {
	if pos < 0 || pos > len(t.str) {
		return fmt.Errorf("%w: color position %d (len %d)", ErrRange, pos, len(t.str))
	}
	t.insertKey(pos, c)
	t.rev++
	return nil
}

// insertKey places a key at pos, replacing any key already there.
func (t *Text) insertKey(pos int, c style.ColorID) {
	i := sort.Search(len(t.keys), func(i int) bool { return t.keys[i].pos >= pos })
	if i < len(t.keys) && t.keys[i].pos == pos {
		t.keys[i].color = c
		return
	}
	t.keys = append(t.keys, colorKey{})
	copy(t.keys[i+1:], t.keys[i:])
	t.keys[i] = colorKey{pos, c}
}

// EffectRange marks str[start:end] with an effect. Negative start resolves
// relative to Len(); end values <= 0 resolve as Len()+end, so end == 0
// means "through the end of the string" and end == -1 stops short of the
// final byte. An empty resolved range is a no-op; out-of-bounds ranges fail
// with ErrRange.
func (t *Text) EffectRange(start, end int, e style.EffectID) error {
	if start < 0 {
		start += len(t.str)
	}
	if end <= 0 {
		end += len(t.str)
	}
	if start < 0 || end > len(t.str) {
		return fmt.Errorf("%w: effect range [%d, %d) (len %d)", ErrRange, start, end, len(t.str))
	}
	if start >= end {
		return nil
	}
	t.spans = append(t.spans, span{start, end, e})
	t.rev++
	return nil
}

// AddGlobalEffect applies an effect from pos through the end of the string.
func (t *Text) AddGlobalEffect(e style.EffectID, pos int) error {
	if pos < 0 || pos > len(t.str) {
		return fmt.Errorf("%w: effect position %d (len %d)", ErrRange, pos, len(t.str))
	}
	if pos == len(t.str) {
		return nil
	}
	t.spans = append(t.spans, span{pos, len(t.str), e})
	t.rev++
	return nil
}

// FindColor returns the color whose key is the greatest offset strictly
// before end, or style.NoColor when no key precedes it.
func (t *Text) FindColor(end int) style.ColorID {
	i := sort.Search(len(t.keys), func(i int) bool { return t.keys[i].pos >= end })
	if i == 0 {
		return style.NoColor
	}
	return t.keys[i-1].color
}

// ColoredAt reports whether a color key exists exactly at pos.
func (t *Text) ColoredAt(pos int) bool {
	i := sort.Search(len(t.keys), func(i int) bool { return t.keys[i].pos >= pos })
	return i < len(t.keys) && t.keys[i].pos == pos
}

// colorAt returns the key color at exactly pos.
func (t *Text) colorAt(pos int) (style.ColorID, bool) {
	i := sort.Search(len(t.keys), func(i int) bool { return t.keys[i].pos >= pos })
	if i < len(t.keys) && t.keys[i].pos == pos {
		return t.keys[i].color, true
	}
	return style.NoColor, false
}

// Matcher yields match group byte offsets for a string. *regexp.Regexp
// satisfies it; any engine with equivalent semantics does too.
type Matcher interface {
	FindAllStringSubmatchIndex(s string, n int) [][]int
}

// ColorByPattern colors every match of m: sel maps the matched group text
// to a color id, inserted at the group start, and the color that applied
// just before the match (FindColor, or fallback when none, or Default when
// both are unset) is reinserted at the group end so the surrounding style
// resumes after the span.
func (t *Text) ColorByPattern(m Matcher, group int, sel func(string) style.ColorID, fallback style.ColorID) {
	for _, idx := range m.FindAllStringSubmatchIndex(t.str, -1) {
		if 2*group+1 >= len(idx) {
			continue
		}
		begin, end := idx[2*group], idx[2*group+1]
		if begin < 0 || begin >= end {
			continue
		}
		resume := t.FindColor(begin)
		if resume == style.NoColor {
			resume = fallback
		}
		if resume == style.NoColor {
			resume = style.Default
		}
		t.insertKey(begin, sel(t.str[begin:end]))
		t.insertKey(end, resume)
	}
	t.rev++
}

// FixedColor adapts a plain color id to ColorByPattern's selector shape.
func FixedColor(id style.ColorID) func(string) style.ColorID {
	return func(string) style.ColorID { return id }
}

// EffectByPattern applies an effect across every match of m's given group.
func (t *Text) EffectByPattern(m Matcher, group int, e style.EffectID) {
	for _, idx := range m.FindAllStringSubmatchIndex(t.str, -1) {
		if 2*group+1 >= len(idx) {
			continue
		}
		begin, end := idx[2*group], idx[2*group+1]
		if begin < 0 || begin >= end {
			continue
		}
		t.spans = append(t.spans, span{begin, end, e})
	}
	t.rev++
}

// SubSlice replaces str[start:end] with sub, preserving the timeline around
// the edit: keys and spans strictly inside the replaced region are dropped
// or clipped to its edges, boundaries exactly at start stay put, and
// everything at or beyond end shifts by the length difference.
//
// Negative start resolves relative to Len() and clamps at 0; end values
// <= 0 resolve as Len()+end, so end == 0 splices through the end.
func (t *Text) SubSlice(sub string, start, end int) error {
	if start < 0 {
		start += len(t.str)
		if start < 0 {
			start = 0
		}
	}
	if end <= 0 {
		end += len(t.str)
	}
	if start > len(t.str) || end > len(t.str) || end < start {
		return fmt.Errorf("%w: splice [%d, %d) (len %d)", ErrRange, start, end, len(t.str))
	}
	if t.normalize {
		sub = foldBadBlocks(sub)
	}
	delta := len(sub) - (end - start)

	keys := t.keys[:0]
	for _, k := range t.keys {
		switch {
		case k.pos <= start:
			keys = append(keys, k)
		case k.pos >= end:
			// a shifted key can collide with the key kept at start when
			// the replacement is shorter; the later key wins
			if n := len(keys); n > 0 && keys[n-1].pos == k.pos+delta {
				keys[n-1].color = k.color
				continue
			}
			keys = append(keys, colorKey{k.pos + delta, k.color})
		}
		// keys strictly inside the replaced region are dropped
	}
	t.keys = keys

	spans := t.spans[:0]
	for _, sp := range t.spans {
		sp.start = mapSplice(sp.start, start, end, delta, len(sub))
		sp.end = mapSplice(sp.end, start, end, delta, 0)
		if sp.start < sp.end {
			spans = append(spans, sp)
		}
	}
	t.spans = spans

	t.str = t.str[:start] + sub + t.str[end:]
	t.rev++
	return nil
}

// mapSplice relocates a timeline offset across a splice of [start, end)
// by text of the given length. Offsets inside the replaced region clip to
// its near edge: span starts land after the inserted text (inside == subLen
// past start), span ends land before it (inside == 0 past start).
func mapSplice(pos, start, end, delta, inside int) int {
	switch {
	case pos <= start:
		return pos
	case pos >= end:
		return pos + delta
	default:
		return start + inside
	}
}

// Merge appends other's text and timeline to the receiver, re-basing
// other's offsets by the receiver's prior length, and returns the receiver.
func (t *Text) Merge(other *Text) *Text {
	base := len(t.str)
	t.str += other.str
	for _, k := range other.keys {
		t.insertKey(base+k.pos, k.color)
	}
	for _, sp := range other.spans {
		t.spans = append(t.spans, span{base + sp.start, base + sp.end, sp.effect})
	}
	t.rev++
	return t
}

// clone returns an independent deep copy sharing only the registry.
func (t *Text) clone() *Text {
	c := &Text{reg: t.reg, str: t.str, normalize: t.normalize}
	c.keys = append([]colorKey(nil), t.keys...)
	c.spans = append([]span(nil), t.spans...)
	return c
}
