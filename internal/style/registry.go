// Package style catalogs terminal colors and effects and their ANSI
// encodings. A Registry hands out stable numeric ids; styled text freezes
// the registry it renders with, so ids cannot shift under timelines that
// were already built against it.
package style

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ColorID identifies a color pair defined in a Registry.
type ColorID int

// EffectID identifies a reversible effect defined in a Registry.
type EffectID int

// NoColor and NoEffect are "unset" sentinels accepted wherever an id is
// optional.
const (
	NoColor  ColorID  = -1
	NoEffect EffectID = -1
)

// Predefined color ids, fixed at registry creation.
const (
	Default ColorID = iota // terminal default foreground/background
	System                 // red on white
	Red                    // red on default
	Green                  // green on default
	Yellow                 // yellow on default
)

// Predefined effect ids, fixed at registry creation.
const (
	Reverse EffectID = iota
	Underline
)

var (
	// ErrFrozen is returned when defining colors or effects after a styled
	// text instance froze the registry.
	ErrFrozen = errors.New("style: registry is frozen")

	// ErrFormat is returned for unusable color specifications.
	ErrFormat = errors.New("style: bad color specification")
)

// basicNames maps basic color names to their SGR index. The empty name and
// "none" both select the terminal default ground.
var basicNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// Ground selects a foreground or background: a basic named color, a
// 256-palette index, or no ground at all.
type Ground struct {
	name    string
	index   int
	indexed bool
}

// Named selects a basic color by name, one of black, red, green, yellow,
// blue, magenta, cyan, white, or ""/"none" for the terminal default.
func Named(name string) Ground { return Ground{name: name} }

// Indexed selects a 256-palette entry. Requires 256-color mode.
func Indexed(n int) Ground { return Ground{index: n, indexed: true} }

// NoGround leaves the corresponding ground at the terminal default.
var NoGround = Ground{name: "none"}

type effectDef struct {
	on, off string
}

// Registry is a catalog of color pairs and effects. The zero value is not
// usable; construct with New.
type Registry struct {
	colors     []string
	effects    []effectDef
	two56      bool
	two56Start ColorID // id of palette entry 0, -1 until materialized
	frozen     bool
}

// New returns a registry populated with the predefined colors and effects.
func New() *Registry {
	return &Registry{
		colors: []string{
			"\x1b[39;22;49m", // Default
			"\x1b[31;22;47m", // System
			"\x1b[31;22;49m", // Red
			"\x1b[32;22;49m", // Green
			"\x1b[33;22;49m", // Yellow
		},
		effects: []effectDef{
			{"\x1b[7m", "\x1b[27m"},
			{"\x1b[4m", "\x1b[24m"},
		},
		two56Start: -1,
	}
}

// Freeze permanently rejects further color and effect definitions. Styled
// text calls this on construction so ids stay stable across instances.
func (r *Registry) Freeze() { r.frozen = true }

// Frozen reports whether definitions are still accepted.
func (r *Registry) Frozen() bool { return r.frozen }

// Two56 reports whether 256-color mode is enabled.
func (r *Registry) Two56() bool { return r.two56 }

// Set256 toggles 256-color mode. Enabling it the first time materializes
// the full palette as indexed foreground entries so quantized lookups stay
// valid after the registry freezes. The palette is appended, never mutated,
// so ids handed out earlier are unaffected.
func (r *Registry) Set256(on bool) {
	r.two56 = on
	if on && r.two56Start < 0 {
		r.two56Start = ColorID(len(r.colors))
		for n := 0; n < 256; n++ {
			r.colors = append(r.colors, fmt.Sprintf("\x1b[38;5;%d;49m", n))
		}
	}
}

// DefineColor registers a foreground/background pair and returns its id.
// Basic grounds take an intensity flag; indexed grounds require 256-color
// mode.
func (r *Registry) DefineColor(fore, back Ground, intense bool) (ColorID, error) {
	if r.frozen {
		return NoColor, ErrFrozen
	}
	var b strings.Builder
	b.WriteString("\x1b[3")
	if fore.indexed {
		if err := r.checkIndexed(fore.index); err != nil {
			return NoColor, err
		}
		b.WriteString("8;5;")
		b.WriteString(strconv.Itoa(fore.index))
	} else {
		n, err := basicIndex(fore.name)
		if err != nil {
			return NoColor, err
		}
		b.WriteString(strconv.Itoa(n))
		if intense {
			b.WriteString(";1")
		} else {
			b.WriteString(";22")
		}
	}
	if back.indexed {
		if err := r.checkIndexed(back.index); err != nil {
			return NoColor, err
		}
		b.WriteString(";48;5;")
		b.WriteString(strconv.Itoa(back.index))
	} else {
		n, err := basicIndex(back.name)
		if err != nil {
			return NoColor, err
		}
		b.WriteString(";4")
		b.WriteString(strconv.Itoa(n))
	}
	b.WriteByte('m')
	r.colors = append(r.colors, b.String())
	return ColorID(len(r.colors) - 1), nil
}

// DefineEffect registers a reversible effect and returns its id. The on and
// off strings are emitted verbatim around styled spans.
func (r *Registry) DefineEffect(on, off string) (EffectID, error) {
	if r.frozen {
		return NoEffect, ErrFrozen
	}
	r.effects = append(r.effects, effectDef{on, off})
	return EffectID(len(r.effects) - 1), nil
}

// Sequence returns the escape string for a color id, or "" for NoColor and
// unknown ids.
func (r *Registry) Sequence(id ColorID) string {
	if id < 0 || int(id) >= len(r.colors) {
		return ""
	}
	return r.colors[id]
}

// EffectOn returns the escape string that enables an effect.
func (r *Registry) EffectOn(id EffectID) string {
	if id < 0 || int(id) >= len(r.effects) {
		return ""
	}
	return r.effects[id].on
}

// EffectOff returns the escape string that disables an effect.
func (r *Registry) EffectOff(id EffectID) string {
	if id < 0 || int(id) >= len(r.effects) {
		return ""
	}
	return r.effects[id].off
}

func (r *Registry) checkIndexed(n int) error {
	if !r.two56 {
		return fmt.Errorf("%w: indexed color %d requires 256-color mode", ErrFormat, n)
	}
	if n < 0 || n > 255 {
		return fmt.Errorf("%w: indexed color %d out of range", ErrFormat, n)
	}
	return nil
}

func basicIndex(name string) (int, error) {
	if name == "" || name == "none" {
		return 9, nil
	}
	for i, candidate := range basicNames {
		if name == candidate {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown color name %q", ErrFormat, name)
}
