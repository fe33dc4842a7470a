package vdp

import "fmt"

const (
	priorityBit = 1 << 15
	paletteMask = 0x6000
	vFlipBit    = 1 << 12
	hFlipBit    = 1 << 11
	tileMask    = 0x07ff
)

// MappingEntry places a tile in a name table. The zero value references tile
// 0 using palette 0 with no flipping and low priority.
type MappingEntry struct {
	Tile     uint16 // 11 bits
	Palette  uint8  // 2 bits
	VFlip    bool
	HFlip    bool
	Priority bool
}

// MappingOption configures optional fields of a MappingEntry.
type MappingOption func(*MappingEntry)

// WithPalette selects one of the four palettes.
func WithPalette(palette uint8) MappingOption {
	return func(e *MappingEntry) {
		e.Palette = palette
	}
}

// WithFlip sets the vertical and horizontal flip flags.
func WithFlip(v, h bool) MappingOption {
	return func(e *MappingEntry) {
		e.VFlip = v
		e.HFlip = h
	}
}

// WithPriority sets the priority flag.
func WithPriority(priority bool) MappingOption {
	return func(e *MappingEntry) {
		e.Priority = priority
	}
}

// NewMappingEntry returns an entry referencing tile, with any unset fields
// left at their zero value.
func NewMappingEntry(tile uint16, options ...MappingOption) (MappingEntry, error) {
	e := MappingEntry{Tile: tile}
	for _, o := range options {
		o(&e)
	}
	if err := e.validate(); err != nil {
		return MappingEntry{}, err
	}
	return e, nil
}

func (e MappingEntry) validate() error {
	if e.Tile > maxTileIndex {
		return fmt.Errorf("vdp: tile index %d exceeds %d: %w", e.Tile, maxTileIndex, ErrInvalidArgument)
	}
	if e.Palette > maxPaletteIndex {
		return fmt.Errorf("vdp: palette index %d exceeds %d: %w", e.Palette, maxPaletteIndex, ErrInvalidArgument)
	}
	return nil
}

// MappingEntryFromUint16 unpacks a name table word. Every bit pattern is
// valid.
func MappingEntryFromUint16(w uint16) MappingEntry {
	return MappingEntry{
		Tile:     w & tileMask,
		Palette:  uint8(w & paletteMask >> 13),
		VFlip:    w&vFlipBit != 0,
		HFlip:    w&hFlipBit != 0,
		Priority: w&priorityBit != 0,
	}
}

// DecodeMappingEntry decodes the 2-byte name table entry at offset in b.
func DecodeMappingEntry(b []byte, offset int) (MappingEntry, error) {
	if offset < 0 || offset+mappingBytes > len(b) {
		return MappingEntry{}, fmt.Errorf("vdp: mapping offset %d out of range: %w", offset, ErrInvalidArgument)
	}
	return MappingEntryFromUint16(uint16(b[offset])<<8 | uint16(b[offset+1])), nil
}

// Uint16 packs the entry as PCCVHTTTTTTTTTTT. Fields wider than their bit
// width are truncated, use MarshalBinary to reject them instead.
func (e MappingEntry) Uint16() uint16 {
	w := e.Tile & tileMask
	w |= uint16(e.Palette) << 13 & paletteMask
	if e.VFlip {
		w |= vFlipBit
	}
	if e.HFlip {
		w |= hFlipBit
	}
	if e.Priority {
		w |= priorityBit
	}
	return w
}

// MarshalBinary encodes the entry as a big-endian name table word.
func (e MappingEntry) MarshalBinary() ([]byte, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	w := e.Uint16()
	return []byte{byte(w >> 8), byte(w)}, nil
}

// UnmarshalBinary decodes a 2-byte name table entry.
func (e *MappingEntry) UnmarshalBinary(b []byte) error {
	if len(b) != mappingBytes {
		return fmt.Errorf("vdp: mapping entry needs %d bytes, got %d: %w", mappingBytes, len(b), ErrInvalidArgument)
	}
	*e, _ = DecodeMappingEntry(b, 0)
	return nil
}

func (e MappingEntry) String() string {
	flag := func(set bool, c byte) byte {
		if set {
			return c
		}
		return '-'
	}
	return fmt.Sprintf("%04d pal=%d %c%c%c", e.Tile, e.Palette, flag(e.Priority, 'P'), flag(e.VFlip, 'V'), flag(e.HFlip, 'H'))
}
