// Package slidedoc is the in-memory presentation model that renderers draw
// into and encoders serialize. It knows nothing about plans or templates.
package slidedoc

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// EMU is an English Metric Unit, the length unit of OOXML drawings.
type EMU int64

const (
	EMUPerCm    = 360000
	EMUPerPoint = 12700
)

// Cm converts centimetres to EMU, rounding to the nearest unit.
func Cm(v float64) EMU { return EMU(math.Round(v * EMUPerCm)) }

func (e EMU) Cm() float64 { return float64(e) / EMUPerCm }

type Size struct {
	W EMU `json:"w"`
	H EMU `json:"h"`
}

type Rect struct {
	X EMU `json:"x"`
	Y EMU `json:"y"`
	W EMU `json:"w"`
	H EMU `json:"h"`
}

// RectCm builds a Rect from centimetre coordinates.
func RectCm(x, y, w, h float64) Rect {
	return Rect{X: Cm(x), Y: Cm(y), W: Cm(w), H: Cm(h)}
}

func (r Rect) Right() EMU  { return r.X + r.W }
func (r Rect) Bottom() EMU { return r.Y + r.H }

// Within reports whether r lies entirely inside a canvas of size s.
func (r Rect) Within(s Size) bool {
	return r.X >= 0 && r.Y >= 0 && r.W >= 0 && r.H >= 0 && r.Right() <= s.W && r.Bottom() <= s.H
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.2f,%.2f %.2fx%.2f cm)", r.X.Cm(), r.Y.Cm(), r.W.Cm(), r.H.Cm())
}

// Color is an opaque RGB color. It marshals as a six digit hex string.
type Color struct {
	R, G, B uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// ParseColor accepts "RRGGBB" with or without a leading '#'.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("slidedoc: invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("slidedoc: invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the color as uppercase RRGGBB.
func (c Color) Hex() string { return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B) }

func (c Color) String() string { return "#" + c.Hex() }

func (c Color) NRGBA() color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff} }

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Ptr returns a pointer to a copy of c, for optional fills and lines.
func (c Color) Ptr() *Color { return &c }
