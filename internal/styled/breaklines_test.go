package styled

import (
	"reflect"
	"testing"

	"github.com/xonecas/inkline/internal/style"
	"github.com/xonecas/inkline/internal/textwidth"
)

func TestBreakLines(t *testing.T) {
	reg := style.New()
	cases := []struct {
		name    string
		in      string
		length  int
		outdent string
		want    []string
	}{
		{
			name: "fits", in: "hello", length: 10,
			want: []string{"hello"},
		},
		{
			name: "soft breaks at spaces", in: "hello world foo", length: 8,
			want: []string{"hello ", "world ", "foo"},
		},
		{
			name: "outdent prefixes continuations", in: "hello world foo", length: 8, outdent: "  ",
			want: []string{"hello ", "  world ", "  foo"},
		},
		{
			name: "hard cut without break point", in: "abcdefghij", length: 4,
			want: []string{"abcd", "efgh", "ij"},
		},
		{
			name: "break in leading half is ignored", in: "ab cdefghij", length: 8,
			want: []string{"ab cdefg", "hij"},
		},
		{
			name: "hyphen breaks", in: "some well-known words", length: 12,
			want: []string{"some well-", "known words"},
		},
		{
			name: "newlines force breaks", in: "one\ntwo", length: 10,
			want: []string{"one", "two"},
		},
		{
			name: "wide runes never straddle", in: "あいう", length: 3,
			want: []string{"あ", "い", "う"},
		},
		{
			name: "tab pads to outdent width", in: "a\tb", length: 10, outdent: "  ",
			want: []string{"a  b"},
		},
		{
			name: "tab without outdent vanishes", in: "a\tb", length: 10,
			want: []string{"ab"},
		},
		{
			name: "control runes dropped", in: "a\x01b", length: 10,
			want: []string{"ab"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := New(reg, tc.in).BreakLines(tc.length, tc.outdent, false)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("BreakLines(%q, %d, %q) = %q, want %q", tc.in, tc.length, tc.outdent, got, tc.want)
			}
		})
	}
}

func TestBreakLinesKeepEmpty(t *testing.T) {
	reg := style.New()
	txt := New(reg, "a\n\nb")
	if got, want := txt.BreakLines(10, "", true), []string{"a", "", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("keepEmpty = %q, want %q", got, want)
	}
	if got, want := txt.BreakLines(10, "", false), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("dropEmpty = %q, want %q", got, want)
	}
}

func TestBreakLinesWidthInvariant(t *testing.T) {
	reg := style.New()
	texts := []string{
		"the quick brown fox jumps over the lazy dog",
		"unbroken-run-of-hyphenated-words-without-spaces",
		"wide 全角文字 mixed into ascii text here",
		"hard\nbreaks\nand one very long trailing line of words",
	}
	for _, s := range texts {
		txt := New(reg, s)
		for length := 4; length <= 20; length++ {
			for _, line := range txt.BreakLines(length, "", false) {
				if w := textwidth.Cells(line); w > length {
					t.Errorf("BreakLines(%q, %d): line %q is %d columns", s, length, line, w)
				}
			}
		}
	}
}

func TestBreakLinesStyleCarry(t *testing.T) {
	reg := style.New()

	txt := New(reg, "hello world")
	if err := txt.InsertColor(0, style.Red); err != nil {
		t.Fatal(err)
	}
	want := []string{"\x1b[31;22;49mhello \x1b[m", "\x1b[31;22;49mworld\x1b[m"}
	if got := txt.BreakLines(6, "", false); !reflect.DeepEqual(got, want) {
		t.Errorf("color carry = %q, want %q", got, want)
	}

	txt = New(reg, "hello world")
	if err := txt.EffectRange(0, 0, style.Underline); err != nil {
		t.Fatal(err)
	}
	want = []string{"\x1b[4mhello \x1b[m", "\x1b[4mworld\x1b[24m\x1b[m"}
	if got := txt.BreakLines(6, "", false); !reflect.DeepEqual(got, want) {
		t.Errorf("effect carry = %q, want %q", got, want)
	}
}

func TestBreakLinesDegenerate(t *testing.T) {
	reg := style.New()
	if got := New(reg, "hello").BreakLines(0, "", false); got != nil {
		t.Errorf("zero length = %q, want nil", got)
	}
	if got := New(reg, "").BreakLines(10, "", false); len(got) != 0 {
		t.Errorf("empty text = %q, want none", got)
	}
	if got, want := New(reg, "").BreakLines(10, "", true), []string{""}; !reflect.DeepEqual(got, want) {
		t.Errorf("empty text kept = %q, want %q", got, want)
	}
}
