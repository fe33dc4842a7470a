package vdp

import (
	"fmt"
	"strings"
)

// Mode controls how many colors a Palette must hold.
type Mode int

const (
	// Fixed palettes hold exactly 16 colors.
	Fixed Mode = iota
	// Variable palettes hold up to 16 colors.
	Variable
)

func (m Mode) check(n int) error {
	switch {
	case m != Fixed && m != Variable:
		return fmt.Errorf("vdp: unknown palette mode %d: %w", m, ErrInvalidArgument)
	case n > colorsPerPalette:
		return fmt.Errorf("vdp: palette has %d colors, maximum is %d: %w", n, colorsPerPalette, ErrInvalidArgument)
	case m == Fixed && n != colorsPerPalette:
		return fmt.Errorf("vdp: fixed palette needs %d colors, got %d: %w", colorsPerPalette, n, ErrInvalidArgument)
	}
	return nil
}

// Palette is an ordered set of up to 16 colors. Palettes can be compared
// with ==.
type Palette struct {
	colors [colorsPerPalette]Color
	n      int
}

// NewPalette returns a palette holding a copy of colors.
func NewPalette(colors []Color, mode Mode) (Palette, error) {
	if err := mode.check(len(colors)); err != nil {
		return Palette{}, err
	}
	var p Palette
	p.n = copy(p.colors[:], colors)
	return p, nil
}

// DecodePalette decodes the VDP palette b, two bytes per color.
func DecodePalette(b []byte, mode Mode) (Palette, error) {
	if len(b)%colorBytes != 0 {
		return Palette{}, fmt.Errorf("vdp: palette length %d is not a multiple of %d: %w", len(b), colorBytes, ErrInvalidArgument)
	}
	if err := mode.check(len(b) / colorBytes); err != nil {
		return Palette{}, err
	}
	var p Palette
	for i := 0; i < len(b)/colorBytes; i++ {
		p.colors[i], _ = DecodePaletteColor(b, i)
	}
	p.n = len(b) / colorBytes
	return p, nil
}

// Len returns the number of colors in the palette.
func (p Palette) Len() int {
	return p.n
}

// At returns the color in slot i. It panics if i is out of range.
func (p Palette) At(i int) Color {
	if i < 0 || i >= p.n {
		panic(fmt.Sprintf("vdp: palette index %d out of range", i))
	}
	return p.colors[i]
}

// Colors returns a copy of the colors in the palette.
func (p Palette) Colors() []Color {
	c := make([]Color, p.n)
	copy(c, p.colors[:])
	return c
}

// Index returns the first slot holding c, or -1.
func (p Palette) Index(c Color) int {
	for i, pc := range p.colors[:p.n] {
		if pc == c {
			return i
		}
	}
	return -1
}

// MarshalBinary encodes the palette, two bytes per color.
func (p Palette) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, p.n*colorBytes)
	for _, c := range p.colors[:p.n] {
		tmp := c.pack()
		b = append(b, tmp[:]...)
	}
	return b, nil
}

// UnmarshalBinary decodes a palette of up to 16 colors.
func (p *Palette) UnmarshalBinary(b []byte) error {
	n, err := DecodePalette(b, Variable)
	if err != nil {
		return err
	}
	*p = n
	return nil
}

func (p Palette) String() string {
	s := make([]string, p.n)
	for i, c := range p.colors[:p.n] {
		s[i] = c.String()
	}
	return strings.Join(s, " ")
}
