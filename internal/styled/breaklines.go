package styled

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/xonecas/inkline/internal/style"
	"github.com/xonecas/inkline/internal/textwidth"
)

// isBreaking reports runes a line may be split after: space, hyphen, and
// ideographic space.
func isBreaking(r rune) bool {
	return r == ' ' || r == '-' || r == '　'
}

// BreakLines splits the styled text into physical lines of at most length
// columns. Splits prefer the last breaking rune when it falls in the
// trailing half of the line, else cut hard at the width; wide runes never
// straddle a cut. Newlines force breaks, tabs pad to the outdent width, and
// other control runes are dropped. Style state active at a cut is closed at
// the end of the line and reopened after the outdent on the next, so every
// line renders independently. Continuation lines are prefixed with outdent.
// When keepEmpty is false, lines with no visible content are dropped.
func (t *Text) BreakLines(length int, outdent string, keepEmpty bool) []string {
	if length <= 0 {
		return nil
	}
	outdentLen := textwidth.Cells(outdent)

	bounds := t.boundaries()
	bi := 0

	var lines []string
	var line strings.Builder
	lineStyled := false
	indent := 0 // columns of outdent on the current line
	used := 0   // columns consumed on the current line, indent included
	start := 0  // first byte not yet flushed into line

	curColor := style.NoColor
	var open []span
	hasBreak := false
	breakUsed := 0 // used at the last breaking rune

	flush := func(to int) {
		line.WriteString(t.str[start:to])
		start = to
	}

	push := func(contentWidth int) {
		s := line.String()
		if lineStyled {
			s += ansi.ResetStyle
		}
		if keepEmpty || contentWidth > 0 {
			lines = append(lines, s)
		}
	}

	// newLine restarts the buffer with the outdent and reopens the style
	// state carried across the cut.
	newLine := func() {
		line.Reset()
		lineStyled = false
		line.WriteString(outdent)
		if curColor != style.NoColor {
			line.WriteString(t.reg.Sequence(curColor))
			lineStyled = true
		}
		for _, sp := range open {
			line.WriteString(t.reg.EffectOn(sp.effect))
			lineStyled = true
		}
		indent = outdentLen
		used = outdentLen
		hasBreak = false
	}

	applyEvents := func(pos int) {
		for bi < len(bounds) && bounds[bi] < pos {
			bi++ // offset landed inside a rune; treat as passed
		}
		if bi >= len(bounds) || bounds[bi] != pos {
			return
		}
		bi++
		flush(pos)
		for i := len(open) - 1; i >= 0; i-- {
			if open[i].end == pos {
				line.WriteString(t.reg.EffectOff(open[i].effect))
				open = append(open[:i], open[i+1:]...)
				lineStyled = true
			}
		}
		if c, ok := t.colorAt(pos); ok {
			curColor = c
			line.WriteString(t.reg.Sequence(c))
			lineStyled = true
		}
		for _, sp := range t.spans {
			if sp.start == pos {
				line.WriteString(t.reg.EffectOn(sp.effect))
				open = append(open, sp)
				lineStyled = true
			}
		}
	}

	for pos := 0; pos < len(t.str); {
		applyEvents(pos)
		r, size := utf8.DecodeRuneInString(t.str[pos:])

		switch {
		case r == '\n' || r == '\r':
			flush(pos)
			push(used - indent)
			start = pos + size
			newLine()
			pos += size
			continue
		case r == '\t':
			flush(pos)
			pad := outdentLen
			if pad > length-used {
				pad = length - used
			}
			if pad > 0 {
				line.WriteString(strings.Repeat(" ", pad))
				used += pad
			}
			start = pos + size
			pos += size
			continue
		case r < 32 || r == 0x7f:
			flush(pos)
			start = pos + size
			pos += size
			continue
		}

		w := runewidth.RuneWidth(r)
		for used+w > length {
			if hasBreak && length-breakUsed > 0 && length-breakUsed < length/2 {
				// split after the last breaking rune; the text beyond it
				// is still unflushed and carries to the next line
				carried := used - breakUsed
				push(breakUsed - indent)
				newLine()
				used += carried
				continue
			}
			// hard cut at the width boundary
			flush(pos)
			push(used - indent)
			newLine()
			if used+w > length {
				// outdent leaves no room at all; emit the rune oversized
				// rather than loop forever
				break
			}
		}
		used += w
		if isBreaking(r) && used < length {
			flush(pos + size)
			hasBreak = true
			breakUsed = used
		}
		pos += size
	}

	applyEvents(len(t.str))
	flush(len(t.str))
	push(used - indent)
	return lines
}
