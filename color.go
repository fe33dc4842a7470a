package vdp

import "fmt"

// Color is a VDP color. Each channel is a 3-bit intensity stored in bits 1-3
// so the value is always one of 0, 2, 4, ..., 14.
type Color struct {
	r, g, b uint8
}

func quantize(v uint8) uint8 {
	return v / 16 & 0x0e
}

// NewColor returns the VDP color closest to the 8-bit per channel color
// r, g, b by discarding the low five bits of each channel.
func NewColor(r, g, b uint8) Color {
	return Color{quantize(r), quantize(g), quantize(b)}
}

func unpackColor(b0, b1 byte) Color {
	// Color is packed as 0000BBB0GGG0RRR0
	return Color{
		r: b1 & 0x0e,
		g: b1 >> 4 & 0x0e,
		b: b0 & 0x0e,
	}
}

// DecodeColor decodes the 2-byte VDP color word b.
func DecodeColor(b []byte) (Color, error) {
	if len(b) != colorBytes {
		return Color{}, fmt.Errorf("vdp: color needs %d bytes, got %d: %w", colorBytes, len(b), ErrInvalidArgument)
	}
	return unpackColor(b[0], b[1]), nil
}

// DecodePaletteColor decodes the color in slot index of the VDP palette p.
func DecodePaletteColor(p []byte, index int) (Color, error) {
	if index < 0 || index*colorBytes+colorBytes > len(p) {
		return Color{}, fmt.Errorf("vdp: palette slot %d out of range: %w", index, ErrInvalidArgument)
	}
	return unpackColor(p[index*colorBytes], p[index*colorBytes+1]), nil
}

// R returns the red channel.
func (c Color) R() uint8 { return c.r }

// G returns the green channel.
func (c Color) G() uint8 { return c.g }

// B returns the blue channel.
func (c Color) B() uint8 { return c.b }

func (c Color) pack() [colorBytes]byte {
	return [colorBytes]byte{c.b, c.g<<4 | c.r}
}

// MarshalBinary encodes the color as a 2-byte VDP color word.
func (c Color) MarshalBinary() ([]byte, error) {
	b := c.pack()
	return b[:], nil
}

// UnmarshalBinary decodes a 2-byte VDP color word.
func (c *Color) UnmarshalBinary(b []byte) error {
	n, err := DecodeColor(b)
	if err != nil {
		return err
	}
	*c = n
	return nil
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.r) << 4
	r |= r << 8
	g = uint32(c.g) << 4
	g |= g << 8
	b = uint32(c.b) << 4
	b |= b << 8
	a = 0xffff
	return
}

// String returns the color as $RGB with one hex digit per channel.
func (c Color) String() string {
	return fmt.Sprintf("$%X%X%X", c.r, c.g, c.b)
}
