package styled

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/inkline/internal/constants"
	"github.com/xonecas/inkline/internal/style"
	"github.com/xonecas/inkline/internal/textwidth"
)

type indicator struct {
	text   string
	color  style.ColorID
	effect style.EffectID
}

// Justified is a styled text fitted to an exact column count, with an
// optional right-aligned indicator. It composes a Text; all timeline
// operations remain available through the embedded value.
type Justified struct {
	*Text
	ind *indicator

	// memoized render, keyed on the text revision and justify arguments
	memoRev    int
	memoLength int
	memoPad    rune
	memoEnsure int
	memoValid  bool
	rendered   string
}

// NewJustified wraps s for exact-width rendering.
func NewJustified(reg *style.Registry, s string, opts ...Option) *Justified {
	return &Justified{Text: New(reg, s, opts...)}
}

// AddIndicator records the single right-side indicator, replacing any
// previous one. Pass style.NoColor / style.NoEffect to leave it unstyled.
// An empty text is a no-op.
func (j *Justified) AddIndicator(text string, color style.ColorID, effect style.EffectID) {
	if text == "" {
		return
	}
	j.ind = &indicator{text, color, effect}
	j.memoValid = false
}

// Indicator returns the indicator text, or "" when none is set.
func (j *Justified) Indicator() string {
	if j.ind == nil {
		return ""
	}
	return j.ind.text
}

// Justify renders the text to exactly length display columns: the middle is
// replaced with an ellipsis when too wide, and the tail is padded with pad
// when too narrow. When an indicator is set, ensureIndicator columns are
// reserved at the right edge; the indicator renders right-aligned inside
// the reservation, trimmed with an ellipsis if over-wide and padded if
// narrow, and dropped outright when the main text leaves it no columns.
// The result is memoized until the text or arguments change.
func (j *Justified) Justify(length int, pad rune, ensureIndicator int) string {
	if length <= 0 {
		return ""
	}
	if j.memoValid && j.memoRev == j.rev && j.memoLength == length &&
		j.memoPad == pad && j.memoEnsure == ensureIndicator {
		return j.rendered
	}

	ensure := 0
	if j.ind != nil {
		ensure = ensureIndicator
		if ensure > length {
			ensure = length
		}
		if ensure < 0 {
			ensure = 0
		}
	}

	main, mainWidth := j.ellipsized(length - ensure)
	avail := length - mainWidth

	indSeq, indText, indWidth := "", "", 0
	if j.ind != nil && avail > 0 {
		indText = j.ind.text
		indWidth = textwidth.Cells(indText)
		if indWidth > avail {
			cut := textwidth.Slice(indText, avail-1)
			indText = indText[:cut] + constants.Ellipsis
			indWidth = textwidth.Cells(indText)
		}
		indSeq = j.reg.Sequence(j.ind.color) + j.reg.EffectOn(j.ind.effect)
	}

	var b strings.Builder
	b.WriteString(main)
	if n := length - mainWidth - indWidth; n > 0 {
		b.WriteString(strings.Repeat(string(pad), n))
	}
	b.WriteString(indSeq)
	b.WriteString(indText)
	if indSeq != "" {
		b.WriteString(ansi.ResetStyle)
	}

	j.memoRev, j.memoLength, j.memoPad, j.memoEnsure = j.rev, length, pad, ensureIndicator
	j.memoValid = true
	j.rendered = b.String()
	return j.rendered
}

// ellipsized renders the main text into at most target columns, replacing
// the middle with an ellipsis when it runs over, and returns the rendered
// string with its column width.
func (j *Justified) ellipsized(target int) (string, int) {
	if target <= 0 {
		return "", 0
	}
	natural := textwidth.Cells(j.str)
	if natural <= target {
		return j.Render(), natural
	}

	// budget the halves around a one-column ellipsis, favoring the head
	leftBudget := target / 2
	rightBudget := target - 1 - leftBudget
	left := textwidth.Slice(j.str, leftBudget)
	right := textwidth.SliceSuffix(j.str, rightBudget)
	if right < left {
		right = left
	}

	// splice the ellipsis in on a copy so the timeline machinery clips and
	// shifts the style state; the color live at the resume point would be
	// dropped with the elided middle, so pin it back first
	resume := j.FindColor(right + 1)
	clone := j.Text.clone()
	_ = clone.SubSlice(constants.Ellipsis, left, right)
	if resume != style.NoColor {
		clone.insertKey(left+len(constants.Ellipsis), resume)
	}
	out := clone.Render()
	return out, textwidth.Cells(out)
}
