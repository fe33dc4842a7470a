package tileset

import (
	"errors"
	"testing"

	"github.com/bodgit/vdp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTile(t *testing.T, seed int) vdp.Tile {
	pixels := make([]byte, 64)
	for i := range pixels {
		pixels[i] = byte((i*seed + seed) % 16)
	}
	tile, err := vdp.TileFromPixels(pixels)
	require.NoError(t, err)
	return tile
}

func TestAdd(t *testing.T) {
	s := New()
	a, b := makeTile(t, 3), makeTile(t, 5)

	e, err := s.Add(a, 1)
	require.NoError(t, err)
	assert.Equal(t, vdp.MappingEntry{Tile: 0, Palette: 1}, e)

	e, err = s.Add(b, 0)
	require.NoError(t, err)
	assert.Equal(t, vdp.MappingEntry{Tile: 1}, e)

	e, err = s.Add(a, 2)
	require.NoError(t, err)
	assert.Equal(t, vdp.MappingEntry{Tile: 0, Palette: 2}, e)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []vdp.Tile{a, b}, s.Tiles())
}

func TestAddFlips(t *testing.T) {
	a := makeTile(t, 3)

	tables := []struct {
		tile vdp.Tile
		want vdp.MappingEntry
	}{
		{a, vdp.MappingEntry{Tile: 0}},
		{a.FlipH(), vdp.MappingEntry{Tile: 0, HFlip: true}},
		{a.FlipV(), vdp.MappingEntry{Tile: 0, VFlip: true}},
		{a.FlipH().FlipV(), vdp.MappingEntry{Tile: 0, VFlip: true, HFlip: true}},
	}

	s := New(WithFlips(true))
	for _, table := range tables {
		e, err := s.Add(table.tile, 0)
		require.NoError(t, err)
		assert.Equal(t, table.want, e)
	}
	assert.Equal(t, 1, s.Len())

	// Without flip matching every orientation is a new tile
	s = New()
	for _, table := range tables {
		_, err := s.Add(table.tile, 0)
		require.NoError(t, err)
	}
	assert.Equal(t, 4, s.Len())
}

func TestWithBlank(t *testing.T) {
	s := New(WithBlank(true))
	assert.Equal(t, 1, s.Len())

	e, err := s.Add(vdp.Tile{}, 0)
	require.NoError(t, err)
	assert.Equal(t, vdp.MappingEntry{}, e)

	e, err = s.Add(makeTile(t, 7), 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), e.Tile)
}

func TestAddInvalidPalette(t *testing.T) {
	_, err := New().Add(vdp.Tile{}, 4)
	assert.True(t, errors.Is(err, vdp.ErrInvalidArgument))
}

func TestFull(t *testing.T) {
	s := New()
	pixels := make([]byte, 64)
	for i := 0; i < maxTiles; i++ {
		pixels[0], pixels[1], pixels[2] = byte(i>>8), byte(i>>4), byte(i)
		tile, err := vdp.TileFromPixels(pixels)
		require.NoError(t, err)
		_, err = s.Add(tile, 0)
		require.NoError(t, err)
	}
	assert.Equal(t, maxTiles, s.Len())

	// Existing tiles can still be referenced
	_, err := s.Add(vdp.Tile{}, 0)
	assert.NoError(t, err)

	pixels[3] = 1
	tile, err := vdp.TileFromPixels(pixels)
	require.NoError(t, err)
	_, err = s.Add(tile, 0)
	assert.Equal(t, ErrFull, err)
}
