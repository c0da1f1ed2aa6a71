package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidHex = errors.New("invalid hex colour")

// Color is a non-linear sRGB colour with alpha, each channel in [0, 1].
type Color struct {
	R, G, B, A float32
}

func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

var (
	Transparent = Color{}

	Black   = RGB(0, 0, 0)
	Silver  = RGB(0.75, 0.75, 0.75)
	Gray    = RGB(0.5, 0.5, 0.5)
	White   = RGB(1, 1, 1)
	Maroon  = RGB(0.5, 0, 0)
	Red     = RGB(1, 0, 0)
	Purple  = RGB(0.5, 0, 0.5)
	Fuchsia = RGB(1, 0, 1)
	Green   = RGB(0, 0.5, 0)
	Lime    = RGB(0, 1, 0)
	Olive   = RGB(0.5, 0.5, 0)
	Yellow  = RGB(1, 1, 0)
	Navy    = RGB(0, 0, 0.5)
	Blue    = RGB(0, 0, 1)
	Teal    = RGB(0, 0.5, 0.5)
	Aqua    = RGB(0, 1, 1)
)

var basicColors = map[string]Color{
	"black":   Black,
	"silver":  Silver,
	"gray":    Gray,
	"grey":    Gray,
	"white":   White,
	"maroon":  Maroon,
	"red":     Red,
	"purple":  Purple,
	"fuchsia": Fuchsia,
	"green":   Green,
	"lime":    Lime,
	"olive":   Olive,
	"yellow":  Yellow,
	"navy":    Navy,
	"blue":    Blue,
	"teal":    Teal,
	"aqua":    Aqua,
}

// NamedColor looks up one of the basic colour keywords, case-insensitively.
func NamedColor(name string) (Color, bool) {
	c, ok := basicColors[strings.ToLower(name)]
	return c, ok
}

// Hex parses RGB, RGBA, RRGGBB or RRGGBBAA digits with an optional leading #.
func Hex(s string) (Color, error) {
	digits := strings.TrimPrefix(s, "#")
	switch len(digits) {
	case 3, 4:
		var channels [4]float32
		channels[3] = 1
		for i := 0; i < len(digits); i++ {
			v, err := strconv.ParseUint(digits[i:i+1], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
			}
			channels[i] = float32(v*17) / 255
		}
		return Color{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
	case 6, 8:
		var channels [4]float32
		channels[3] = 1
		for i := 0; i < len(digits)/2; i++ {
			v, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
			}
			channels[i] = float32(v) / 255
		}
		return Color{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
}
