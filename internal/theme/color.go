// Package theme provides colors, highlight styles and the highlight group table
// shared by the status line renderer and the painters.
package theme

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit color. The zero value means "no color", letting the
// painter fall back to whatever the surrounding group uses.
type Color struct {
	R, G, B uint8
	Valid   bool
}

// NoColor is the unset color.
var NoColor = Color{}

// RGB creates a color from components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Valid: true}
}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(hex string) (Color, error) {
	if len(hex) == 4 && hex[0] == '#' {
		hex = string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	if len(hex) != 7 || hex[0] != '#' {
		return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// MustHex is ParseHex for compile-time constants.
func MustHex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// IsNone reports whether the color is unset.
func (c Color) IsNone() bool {
	return !c.Valid
}

// Hex returns "#rrggbb", or "" for an unset color.
func (c Color) Hex() string {
	if !c.Valid {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns a readable form of the color.
func (c Color) String() string {
	if !c.Valid {
		return "none"
	}
	return c.Hex()
}

// Blend mixes c toward other in Lab space. Amount 0 is c, 1 is other.
func (c Color) Blend(other Color, amount float64) Color {
	if !c.Valid {
		return other
	}
	if !other.Valid || amount <= 0 {
		return c
	}
	if amount >= 1 {
		return other
	}
	r, g, b := c.colorful().BlendLab(other.colorful(), amount).Clamped().RGB255()
	return RGB(r, g, b)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
