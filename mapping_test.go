package vdp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMappingEntry(t *testing.T) {
	e, err := NewMappingEntry(42)
	require.NoError(t, err)
	assert.Equal(t, MappingEntry{Tile: 42}, e)

	e, err = NewMappingEntry(42, WithPalette(3), WithFlip(true, false), WithPriority(true))
	require.NoError(t, err)
	assert.Equal(t, MappingEntry{Tile: 42, Palette: 3, VFlip: true, Priority: true}, e)

	_, err = NewMappingEntry(2048)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = NewMappingEntry(0, WithPalette(4))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestDecodeMappingEntry(t *testing.T) {
	tables := []struct {
		b    []byte
		want MappingEntry
	}{
		{[]byte{0x00, 0x00}, MappingEntry{}},
		{[]byte{0x80, 0x00}, MappingEntry{Priority: true}},
		{[]byte{0x60, 0x00}, MappingEntry{Palette: 3}},
		{[]byte{0x10, 0x00}, MappingEntry{VFlip: true}},
		{[]byte{0x08, 0x00}, MappingEntry{HFlip: true}},
		{[]byte{0x07, 0xff}, MappingEntry{Tile: 2047}},
		{[]byte{0x01, 0x80}, MappingEntry{Tile: 0x180}},
		{[]byte{0xd0, 0x05}, MappingEntry{Tile: 5, Palette: 2, VFlip: true, Priority: true}},
		{[]byte{0xff, 0xff}, MappingEntry{Tile: 2047, Palette: 3, VFlip: true, HFlip: true, Priority: true}},
	}

	for _, table := range tables {
		got, err := DecodeMappingEntry(table.b, 0)
		require.NoError(t, err)
		assert.Equal(t, table.want, got, "% x", table.b)
	}
}

func TestDecodeMappingEntryOffset(t *testing.T) {
	b := []byte{0xff, 0x00, 0x2a, 0xff}

	e, err := DecodeMappingEntry(b, 1)
	require.NoError(t, err)
	assert.Equal(t, MappingEntry{Tile: 42}, e)

	for _, offset := range []int{-1, 3, 4} {
		_, err := DecodeMappingEntry(b, offset)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "offset %d", offset)
	}
}

func TestMappingEntryBitIsolation(t *testing.T) {
	e := MappingEntry{Tile: 5, Palette: 2, VFlip: true, Priority: true}

	b, err := e.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xd0, 0x05}, b)

	var got MappingEntry
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, e, got)

	e.HFlip = true
	flipped, err := e.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, b[0]^0x08, flipped[0])
	assert.Equal(t, b[1], flipped[1])
}

func TestMappingEntryRoundTrip(t *testing.T) {
	for _, tile := range []uint16{0, 1, 0xff, 0x100, 0x2ff, 0x7ff} {
		for palette := uint8(0); palette < 4; palette++ {
			for flags := 0; flags < 8; flags++ {
				e := MappingEntry{
					Tile:     tile,
					Palette:  palette,
					VFlip:    flags&1 != 0,
					HFlip:    flags&2 != 0,
					Priority: flags&4 != 0,
				}
				b, err := e.MarshalBinary()
				require.NoError(t, err)

				got, err := DecodeMappingEntry(b, 0)
				require.NoError(t, err)
				assert.Equal(t, e, got)
				assert.Equal(t, e, MappingEntryFromUint16(e.Uint16()))
			}
		}
	}
}

func TestMappingEntryOverflow(t *testing.T) {
	_, err := MappingEntry{Tile: 2048}.MarshalBinary()
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = MappingEntry{Palette: 4}.MarshalBinary()
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	// Uint16 truncates rather than failing
	assert.Equal(t, uint16(0x0001), MappingEntry{Tile: 0x801}.Uint16())
	assert.Equal(t, uint16(0x2000), MappingEntry{Palette: 5}.Uint16())

	var e MappingEntry
	assert.True(t, errors.Is(e.UnmarshalBinary([]byte{0x00}), ErrInvalidArgument))
}

func TestMappingEntryString(t *testing.T) {
	assert.Equal(t, "0005 pal=2 PV-", MappingEntry{Tile: 5, Palette: 2, VFlip: true, Priority: true}.String())
	assert.Equal(t, "2047 pal=0 --H", MappingEntry{Tile: 2047, HFlip: true}.String())
}
