package styled

import (
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/inkline/internal/style"
)

// Render walks the text left to right, emitting color and effect escapes at
// their timeline offsets. Effects close in reverse order of opening so
// nested state unwinds correctly. A trailing full reset is appended iff any
// escape was emitted, so an unstyled Text renders byte-identical to its
// contents.
func (t *Text) Render() string {
	if len(t.keys) == 0 && len(t.spans) == 0 {
		return t.str
	}
	var b strings.Builder
	b.Grow(len(t.str) + 16*(len(t.keys)+len(t.spans)))

	last := 0
	emitted := false
	var open []span
	for _, pos := range t.boundaries() {
		b.WriteString(t.str[last:pos])
		last = pos
		for i := len(open) - 1; i >= 0; i-- {
			if open[i].end == pos {
				b.WriteString(t.reg.EffectOff(open[i].effect))
				open = append(open[:i], open[i+1:]...)
				emitted = true
			}
		}
		if c, ok := t.colorAt(pos); ok {
			b.WriteString(t.reg.Sequence(c))
			emitted = true
		}
		for _, sp := range t.spans {
			if sp.start == pos {
				b.WriteString(t.reg.EffectOn(sp.effect))
				open = append(open, sp)
				emitted = true
			}
		}
	}
	b.WriteString(t.str[last:])
	if emitted {
		b.WriteString(ansi.ResetStyle)
	}
	return b.String()
}

// boundaries returns the sorted, de-duplicated offsets where the timeline
// changes state.
func (t *Text) boundaries() []int {
	set := make(map[int]struct{}, len(t.keys)+2*len(t.spans))
	for _, k := range t.keys {
		set[k.pos] = struct{}{}
	}
	for _, sp := range t.spans {
		set[sp.start] = struct{}{}
		set[sp.end] = struct{}{}
	}
	bounds := make([]int, 0, len(set))
	for pos := range set {
		bounds = append(bounds, pos)
	}
	sort.Ints(bounds)
	return bounds
}

// effectsAt returns the effects whose spans cover pos, in span insertion
// order.
func (t *Text) effectsAt(pos int) []style.EffectID {
	var active []style.EffectID
	for _, sp := range t.spans {
		if sp.start <= pos && pos < sp.end {
			active = append(active, sp.effect)
		}
	}
	return active
}
