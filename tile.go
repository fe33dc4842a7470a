package vdp

import (
	"fmt"
	"strings"
)

// Tile is an 8 by 8 pixel tile stored as 32 bytes with a 4-bit palette index
// per pixel, two pixels per byte with the leftmost pixel in the upper nibble.
// The zero value is a blank tile. Tiles can be compared with ==.
type Tile struct {
	pix [tileBytes]byte
}

func upperNibble(b byte) byte {
	return b & 0xf0
}

func lowerNibble(b byte) byte {
	return b & 0x0f
}

// NewTile returns a tile holding a copy of the 32 packed bytes in b.
func NewTile(b []byte) (Tile, error) {
	if len(b) != tileBytes {
		return Tile{}, fmt.Errorf("vdp: tile needs %d bytes, got %d: %w", tileBytes, len(b), ErrInvalidArgument)
	}
	var t Tile
	copy(t.pix[:], b)
	return t, nil
}

// TileFromPixels packs 64 palette indices, row by row, into a tile. Only the
// lower four bits of each index are used.
func TileFromPixels(pixels []byte) (Tile, error) {
	if len(pixels) != tilePixels {
		return Tile{}, fmt.Errorf("vdp: tile needs %d pixels, got %d: %w", tilePixels, len(pixels), ErrInvalidArgument)
	}
	var t Tile
	for i := range t.pix {
		// This is masking off any bits leaving a 0-15 value
		t.pix[i] = lowerNibble(pixels[i<<1])<<4 | lowerNibble(pixels[i<<1+1])
	}
	return t, nil
}

// Pixels returns the 64 palette indices of the tile, row by row.
func (t Tile) Pixels() []byte {
	pixels := make([]byte, tilePixels)
	for i, b := range t.pix {
		pixels[i<<1] = upperNibble(b) >> 4
		pixels[i<<1+1] = lowerNibble(b)
	}
	return pixels
}

// At returns the palette index of the pixel at x, y.
func (t Tile) At(x, y int) uint8 {
	b := t.pix[y*tileWidth>>1+x>>1]
	if x&1 == 0 {
		return upperNibble(b) >> 4
	}
	return lowerNibble(b)
}

// IsBlank reports whether every pixel uses palette index 0.
func (t Tile) IsBlank() bool {
	return t == Tile{}
}

// FlipH returns the tile mirrored left to right.
func (t Tile) FlipH() Tile {
	var f Tile
	for y := 0; y < tileHeight; y++ {
		row := y * tileWidth >> 1
		for x := 0; x < tileWidth>>1; x++ {
			b := t.pix[row+tileWidth>>1-1-x]
			f.pix[row+x] = b<<4 | b>>4
		}
	}
	return f
}

// FlipV returns the tile mirrored top to bottom.
func (t Tile) FlipV() Tile {
	var f Tile
	for y := 0; y < tileHeight; y++ {
		copy(f.pix[y*tileWidth>>1:(y+1)*tileWidth>>1], t.pix[(tileHeight-1-y)*tileWidth>>1:])
	}
	return f
}

// MarshalBinary returns a copy of the 32 packed bytes.
func (t Tile) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), t.pix[:]...), nil
}

// UnmarshalBinary copies the 32 packed bytes in b.
func (t *Tile) UnmarshalBinary(b []byte) error {
	n, err := NewTile(b)
	if err != nil {
		return err
	}
	*t = n
	return nil
}

// String returns the tile as eight rows of hex digits.
func (t Tile) String() string {
	var sb strings.Builder
	for y := 0; y < tileHeight; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%X", t.pix[y*tileWidth>>1:(y+1)*tileWidth>>1])
	}
	return sb.String()
}
