package theme

import (
	"fmt"
	"sort"
	"strings"
)

// Palette holds the named colors of the color scheme.
type Palette struct {
	Pink   Color
	Red    Color
	Orange Color
	Yellow Color
	Green  Color
	Cyan   Color
	Blue   Color
	Purple Color

	White Color
	Gray  Color

	Bg0 Color // editor background
	Bg1 Color
	Bg2 Color
	Bg3 Color // lightest
}

// DefaultPalette returns the built-in dark palette.
func DefaultPalette() *Palette {
	return &Palette{
		Pink:   MustHex("#ff4f9b"),
		Red:    MustHex("#f65866"),
		Orange: MustHex("#fa9534"),
		Yellow: MustHex("#efbd5d"),
		Green:  MustHex("#8bcd5b"),
		Cyan:   MustHex("#00b8b8"),
		Blue:   MustHex("#41a7fc"),
		Purple: MustHex("#c75ae8"),

		White: MustHex("#829bcd"),
		Gray:  MustHex("#68687a"),

		Bg0: MustHex("#101010"),
		Bg1: MustHex("#242424"),
		Bg2: MustHex("#404040"),
		Bg3: MustHex("#5e5e5e"),
	}
}

func (p *Palette) slots() map[string]*Color {
	return map[string]*Color{
		"pink":   &p.Pink,
		"red":    &p.Red,
		"orange": &p.Orange,
		"yellow": &p.Yellow,
		"green":  &p.Green,
		"cyan":   &p.Cyan,
		"blue":   &p.Blue,
		"purple": &p.Purple,
		"white":  &p.White,
		"gray":   &p.Gray,
		"bg0":    &p.Bg0,
		"bg1":    &p.Bg1,
		"bg2":    &p.Bg2,
		"bg3":    &p.Bg3,
	}
}

// Lookup returns the color with the given name (case-insensitive).
func (p *Palette) Lookup(name string) (Color, error) {
	slot, ok := p.slots()[strings.ToLower(name)]
	if !ok {
		return NoColor, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return *slot, nil
}

// Resolve accepts either a palette name or a hex color.
func (p *Palette) Resolve(spec string) (Color, error) {
	if strings.HasPrefix(spec, "#") {
		return ParseHex(spec)
	}
	return p.Lookup(spec)
}

// Set overrides a named color with a hex value.
func (p *Palette) Set(name, hex string) error {
	slot, ok := p.slots()[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	c, err := ParseHex(hex)
	if err != nil {
		return err
	}
	*slot = c
	return nil
}

// Names returns the palette color names in sorted order.
func (p *Palette) Names() []string {
	names := make([]string, 0, 14)
	for name := range p.slots() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
