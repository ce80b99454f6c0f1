package styled

import "strings"

// badBlocks lists script blocks whose glyphs report unreliable widths on
// common terminals (mathematical and fraktur letter styles). Each folds
// onto a plain ASCII run of the same length.
var badBlocks = []struct {
	lo   rune
	n    rune
	onto rune
}{
	{0x1D49C, 26, 'A'}, // mathematical script capital
	{0x1D4B6, 26, 'a'}, // mathematical script small
	{0x1D434, 26, 'A'}, // mathematical italic capital
	{0x1D44E, 26, 'a'}, // mathematical italic small
	{0x1D56C, 26, 'A'}, // mathematical bold fraktur capital
	{0x1D586, 26, 'a'}, // mathematical bold fraktur small
	{0x1D504, 26, 'A'}, // mathematical fraktur capital
	{0x1D51E, 26, 'a'}, // mathematical fraktur small
}

// foldBadBlocks maps denylisted wide-ambiguous letters to their ASCII
// equivalents and drops U+0088.
func foldBadBlocks(s string) string {
	const minBad = 0x1D434
	changed := false
	for _, r := range s {
		if r == 0x88 || r >= minBad {
			changed = true
			break
		}
	}
	if !changed {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == 0x88 {
			continue
		}
		for _, blk := range badBlocks {
			if r >= blk.lo && r < blk.lo+blk.n {
				r = blk.onto + (r - blk.lo)
				break
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
