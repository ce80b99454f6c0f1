package styled

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/xonecas/inkline/internal/style"
	"github.com/xonecas/inkline/internal/textwidth"
)

func TestJustifyPad(t *testing.T) {
	reg := style.New()
	j := NewJustified(reg, "hi")
	if got, want := j.Justify(10, ' ', 0), "hi        "; got != want {
		t.Errorf("Justify = %q, want %q", got, want)
	}
	if got, want := j.Justify(5, '.', 0), "hi..."; got != want {
		t.Errorf("Justify = %q, want %q", got, want)
	}
}

func TestJustifyEllipsis(t *testing.T) {
	reg := style.New()
	j := NewJustified(reg, "abcdefghij")
	if got, want := j.Justify(5, ' ', 0), "ab…ij"; got != want {
		t.Errorf("Justify = %q, want %q", got, want)
	}
	j = NewJustified(reg, "abcdefghij")
	if got, want := j.Justify(1, ' ', 0), "…"; got != want {
		t.Errorf("Justify = %q, want %q", got, want)
	}
}

func TestJustifyExactWidth(t *testing.T) {
	reg := style.New()
	j := NewJustified(reg, "the quick brown fox")
	for length := 1; length <= 25; length++ {
		got := j.Justify(length, ' ', 0)
		if w := textwidth.Cells(got); w != length {
			t.Errorf("Justify(%d) = %q: %d columns", length, got, w)
		}
		// independent width measurement as a cross-check
		if w := lipgloss.Width(got); w != length {
			t.Errorf("Justify(%d) = %q: lipgloss measures %d columns", length, got, w)
		}
	}
}

func TestJustifyEllipsisResumesColor(t *testing.T) {
	reg := style.New()
	j := NewJustified(reg, "hello world")
	if err := j.InsertColor(6, style.Green); err != nil {
		t.Fatal(err)
	}
	want := "hel…\x1b[32;22;49mrld\x1b[m"
	if got := j.Justify(7, ' ', 0); got != want {
		t.Errorf("Justify = %q, want %q", got, want)
	}
}

func TestJustifyIndicator(t *testing.T) {
	reg := style.New()

	j := NewJustified(reg, "hello")
	j.AddIndicator("ok", style.Green, style.NoEffect)
	want := "hello     \x1b[32;22;49mok\x1b[m"
	if got := j.Justify(12, ' ', 3); got != want {
		t.Errorf("styled indicator = %q, want %q", got, want)
	}

	j = NewJustified(reg, "hello")
	j.AddIndicator("ok", style.NoColor, style.NoEffect)
	if got, want := j.Justify(12, ' ', 3), "hello     ok"; got != want {
		t.Errorf("unstyled indicator = %q, want %q", got, want)
	}
	if got := j.Indicator(); got != "ok" {
		t.Errorf("Indicator = %q", got)
	}
}

func TestJustifyIndicatorReservation(t *testing.T) {
	reg := style.New()
	j := NewJustified(reg, "abcdefghij")
	j.AddIndicator("ok", style.NoColor, style.NoEffect)
	// five columns reserved: the main text ellipsizes into the other five
	if got, want := j.Justify(10, ' ', 5), "ab…ij   ok"; got != want {
		t.Errorf("Justify = %q, want %q", got, want)
	}
}

func TestJustifyIndicatorWithoutReservation(t *testing.T) {
	reg := style.New()
	j := NewJustified(reg, "abcdefghij")
	j.AddIndicator("ok", style.Green, style.NoEffect)
	// the main text fills every column, leaving the indicator no room
	if got, want := j.Justify(10, ' ', 0), "abcdefghij"; got != want {
		t.Errorf("Justify = %q, want %q", got, want)
	}
	// the exact-width invariant holds with an indicator and no reservation
	for length := 1; length <= 14; length++ {
		got := j.Justify(length, ' ', 0)
		if w := textwidth.Cells(got); w != length {
			t.Errorf("Justify(%d) = %q: %d columns", length, got, w)
		}
	}
}

func TestJustifyIndicatorTrim(t *testing.T) {
	reg := style.New()
	j := NewJustified(reg, "hi")
	j.AddIndicator("verylongstatus", style.NoColor, style.NoEffect)
	got := j.Justify(8, ' ', 8)
	if w := textwidth.Cells(got); w != 8 {
		t.Errorf("Justify = %q: %d columns, want 8", got, w)
	}
	if got != "verylon…" {
		t.Errorf("Justify = %q, want %q", got, "verylon…")
	}
}

func TestJustifyEmptyIndicatorIgnored(t *testing.T) {
	reg := style.New()
	j := NewJustified(reg, "hi")
	j.AddIndicator("", style.Green, style.NoEffect)
	if got := j.Indicator(); got != "" {
		t.Errorf("Indicator = %q, want empty", got)
	}
	// with no indicator set, no columns are reserved
	if got, want := j.Justify(4, ' ', 3), "hi  "; got != want {
		t.Errorf("Justify = %q, want %q", got, want)
	}
}

func TestJustifyMemoization(t *testing.T) {
	reg := style.New()
	j := NewJustified(reg, "hello world")
	first := j.Justify(8, ' ', 0)
	if !j.memoValid {
		t.Fatal("memo not recorded")
	}
	if second := j.Justify(8, ' ', 0); second != first {
		t.Errorf("memoized render changed: %q vs %q", second, first)
	}
	// different arguments bypass the memo
	if other := j.Justify(9, ' ', 0); other == first {
		t.Error("width change should re-render")
	}
	// a timeline edit invalidates it
	if err := j.InsertColor(0, style.Red); err != nil {
		t.Fatal(err)
	}
	if recolored := j.Justify(9, ' ', 0); recolored == first {
		t.Error("timeline edit should re-render")
	}
}

func TestJustifyDegenerate(t *testing.T) {
	reg := style.New()
	j := NewJustified(reg, "hello")
	if got := j.Justify(0, ' ', 0); got != "" {
		t.Errorf("Justify(0) = %q, want empty", got)
	}
	if got := j.Justify(-3, ' ', 0); got != "" {
		t.Errorf("Justify(-3) = %q, want empty", got)
	}
}
