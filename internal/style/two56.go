package style

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Quant tunes 256-color quantization. The zero value applies the defaults.
type Quant struct {
	// TooBlack and TooWhite are brightness cutoffs; inputs darker or
	// lighter than them quantize to Default instead of an unreadable
	// near-black/near-white entry. Zero means 0.1 and 0.9.
	TooBlack, TooWhite float64

	// Reweight, when set, remaps the channels before quantizing and
	// disables the brightness cutoffs.
	Reweight func(rgb [3]float64) [3]float64
}

func (q *Quant) cutoffs() (float64, float64) {
	tooBlack, tooWhite := 0.1, 0.9
	if q != nil {
		if q.TooBlack != 0 {
			tooBlack = q.TooBlack
		}
		if q.TooWhite != 0 {
			tooWhite = q.TooWhite
		}
	}
	return tooBlack, tooWhite
}

// To256Index returns the id of palette entry n, or Default when 256-color
// mode is off or n is out of range.
func (r *Registry) To256Index(n int) ColorID {
	if !r.two56 || n < 0 || n > 255 {
		return Default
	}
	return r.two56Start + ColorID(n)
}

// To256Hex quantizes a "#RRGGBB", "RRGGBB", "#RGB" or "RGB" string to the
// nearest 256-color palette entry. Unparseable strings fail with ErrFormat;
// disabled 256-color mode and out-of-cutoff brightness fall back to Default
// without error.
func (r *Registry) To256Hex(hex string, q *Quant) (ColorID, error) {
	spec := hex
	if !strings.HasPrefix(spec, "#") {
		spec = "#" + spec
	}
	c, err := colorful.Hex(spec)
	if err != nil {
		return Default, fmt.Errorf("%w: %q", ErrFormat, hex)
	}
	return r.To256RGB(c.R, c.G, c.B, q), nil
}

// To256RGB quantizes normalized channels in [0, 1] to the nearest 256-color
// palette entry: near-gray inputs map to the grayscale ramp and the rest to
// the 6x6x6 cube. Returns Default when 256-color mode is off or brightness
// falls outside the cutoffs.
func (r *Registry) To256RGB(red, green, blue float64, q *Quant) ColorID {
	if !r.two56 {
		return Default
	}
	rgb := [3]float64{clamp01(red), clamp01(green), clamp01(blue)}
	avg := (rgb[0] + rgb[1] + rgb[2]) / 3

	tooBlack, tooWhite := q.cutoffs()
	if q != nil && q.Reweight != nil {
		rgb = q.Reweight(rgb)
	} else if avg < tooBlack || avg > tooWhite {
		return Default
	}

	// Channels within 0.05 RMS of their average are effectively gray.
	dev := math.Sqrt(sq(rgb[0]-avg) + sq(rgb[1]-avg) + sq(rgb[2]-avg))
	if dev < 0.05 {
		return r.Grayscale(int(avg * 24))
	}

	n := 16 + cube(rgb[0])*36 + cube(rgb[1])*6 + cube(rgb[2])
	return r.To256Index(n)
}

// Grayscale maps a step in [0, 23] to the 24-entry grayscale ramp of the
// 256-color palette (entries 232-255), or Default when 256-color mode is
// off. Out-of-range steps clamp.
func (r *Registry) Grayscale(step int) ColorID {
	if step < 0 {
		step = 0
	}
	if step > 23 {
		step = 23
	}
	return r.To256Index(232 + step)
}

// Reweight is the default channel curve for Quant.Reweight: it brightens
// very dark inputs, dims very light ones, and pulls hard blues toward
// readable entries.
func Reweight(rgb [3]float64) [3]float64 {
	avg := (rgb[0] + rgb[1] + rgb[2]) / 3
	switch {
	case avg < 0.1:
		rgb = scale(rgb, 1.25, 1.25, 1.25)
	case avg > 0.9:
		rgb = scale(rgb, 0.75, 0.75, 0.75)
	}
	avg = (rgb[0] + rgb[1] + rgb[2]) / 3
	unblueness := rgb[0] + rgb[1]
	switch {
	case math.Abs(unblueness-avg) < 5e-3:
		rgb = scale(rgb, 1.20, 1.20, 1.10)
	case unblueness < 0.15:
		if rgb[2] < 0.35 {
			rgb = [3]float64{0.2, 0.2, 0.6}
		} else {
			rgb[1] = rgb[2] / 4
		}
	}
	return rgb
}

func cube(f float64) int {
	n := int(f * 5)
	if n > 5 {
		n = 5
	}
	return n
}

func scale(rgb [3]float64, r, g, b float64) [3]float64 {
	return [3]float64{rgb[0] * r, rgb[1] * g, rgb[2] * b}
}

func clamp01(f float64) float64 {
	return math.Min(1, math.Max(0, f))
}

func sq(f float64) float64 { return f * f }
