// Package textwidth measures the terminal column width of strings that may
// contain ANSI escape sequences, and slices strings to column budgets.
//
// Escape sequences (ESC through the next alphabetic terminator) occupy zero
// columns and are treated atomically: a slice never ends inside one.
package textwidth

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const esc = '\x1b'

// Cells returns the number of terminal columns s occupies. Escape sequences
// contribute zero; combining marks contribute zero; East-Asian wide and
// fullwidth runes contribute two.
func Cells(s string) int {
	width := 0
	escape := false
	for _, r := range s {
		if escape {
			if unicode.IsLetter(r) {
				escape = false
			}
			continue
		}
		if r == esc {
			escape = true
			continue
		}
		width += runewidth.RuneWidth(r)
	}
	return width
}

// Slice returns the largest byte index i such that Cells(s[:i]) <= width.
// Escape sequences are included or excluded whole, a wide rune that would
// overflow the budget is excluded entirely, and combining marks stay attached
// to their base (slicing walks grapheme clusters, not runes). Ties break
// toward the longer prefix: trailing zero-width content is included.
func Slice(s string, width int) int {
	if width < 0 {
		width = 0
	}
	pos := 0
	remaining := width
	state := -1
	for pos < len(s) {
		if s[pos] == esc {
			pos += escLen(s[pos:])
			state = -1
			continue
		}
		cluster, _, _, next := uniseg.FirstGraphemeClusterInString(s[pos:], state)
		w := clusterWidth(cluster)
		if w > remaining {
			return pos
		}
		remaining -= w
		pos += len(cluster)
		state = next
	}
	return pos
}

// SliceSuffix returns the smallest byte index i such that Cells(s[i:]) <= width.
// The returned index never lands inside an escape sequence or grapheme cluster.
func SliceSuffix(s string, width int) int {
	if width < 0 {
		width = 0
	}
	// Collect segment boundaries and widths, then scan from the tail.
	type seg struct {
		pos int
		w   int
	}
	var segs []seg
	pos := 0
	state := -1
	for pos < len(s) {
		if s[pos] == esc {
			segs = append(segs, seg{pos, 0})
			pos += escLen(s[pos:])
			state = -1
			continue
		}
		cluster, _, _, next := uniseg.FirstGraphemeClusterInString(s[pos:], state)
		segs = append(segs, seg{pos, clusterWidth(cluster)})
		pos += len(cluster)
		state = next
	}
	remaining := width
	cut := len(s)
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i].w > remaining {
			return cut
		}
		remaining -= segs[i].w
		cut = segs[i].pos
	}
	return cut
}

// Fit truncates s to at most width columns.
func Fit(s string, width int) string {
	return s[:Slice(s, width)]
}

// clusterWidth sums per-rune widths so totals agree with Cells.
func clusterWidth(cluster string) int {
	w := 0
	for _, r := range cluster {
		w += runewidth.RuneWidth(r)
	}
	return w
}

// escLen returns the byte length of the escape sequence starting at s[0],
// which runs until the first alphabetic rune (inclusive).
func escLen(s string) int {
	i := 1
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if unicode.IsLetter(r) {
			break
		}
	}
	return i
}
