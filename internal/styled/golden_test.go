package styled

import (
	"regexp"
	"testing"

	"github.com/charmbracelet/x/exp/golden"

	"github.com/xonecas/inkline/internal/style"
)

// stripANSI removes ANSI escape codes for golden file comparison
func stripANSI(s string) string {
	ansiRe := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRe.ReplaceAllString(s, "")
}

func TestRenderGolden(t *testing.T) {
	reg := style.New()
	txt := New(reg, "status: ok since 12:00")
	if err := txt.InsertColor(8, style.Green); err != nil {
		t.Fatal(err)
	}
	if err := txt.InsertColor(10, style.Default); err != nil {
		t.Fatal(err)
	}
	if err := txt.EffectRange(17, 0, style.Underline); err != nil {
		t.Fatal(err)
	}

	output := txt.Render()

	t.Run("ANSI", func(t *testing.T) {
		golden.RequireEqual(t, []byte(output))
	})

	t.Run("Stripped", func(t *testing.T) {
		golden.RequireEqual(t, []byte(stripANSI(output)))
	})
}
