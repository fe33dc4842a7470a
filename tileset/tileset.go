/*
Package tileset builds a deduplicated set of VDP tiles along with the name
table entries that reference them.

A tile that is identical to one already in the set, optionally after being
mirrored horizontally, vertically or both, reuses the existing tile with the
appropriate flip flags set in the returned name table entry.
*/
package tileset

import (
	"errors"

	"github.com/bodgit/vdp"
	"github.com/cespare/xxhash"
)

const maxTiles = 2048

// ErrFull is returned when adding a tile would need more tiles than a name
// table entry can reference.
var ErrFull = errors.New("tileset: too many unique tiles")

type flip struct {
	v, h bool
}

var flips = []flip{
	{false, true},
	{true, false},
	{true, true},
}

// Set is a deduplicated set of tiles. It is not safe for concurrent use.
type Set struct {
	tiles []vdp.Tile
	index map[uint64][]uint16

	flips bool
	blank bool
}

// Option configures a Set.
type Option func(*Set)

// WithFlips enables matching tiles against mirrored versions of the tiles
// already in the set.
func WithFlips(enabled bool) Option {
	return func(s *Set) {
		s.flips = enabled
	}
}

// WithBlank reserves tile 0 for the blank tile.
func WithBlank(enabled bool) Option {
	return func(s *Set) {
		s.blank = enabled
	}
}

// New returns an empty Set.
func New(options ...Option) *Set {
	s := &Set{
		index: make(map[uint64][]uint16),
	}
	for _, o := range options {
		o(s)
	}
	if s.blank {
		s.append(vdp.Tile{})
	}
	return s
}

func key(t vdp.Tile) uint64 {
	b, _ := t.MarshalBinary()
	return xxhash.Sum64(b)
}

func (s *Set) find(t vdp.Tile) (uint16, bool) {
	for _, i := range s.index[key(t)] {
		// Guard against hash collisions
		if s.tiles[i] == t {
			return i, true
		}
	}
	return 0, false
}

func (s *Set) append(t vdp.Tile) uint16 {
	i := uint16(len(s.tiles))
	s.tiles = append(s.tiles, t)
	k := key(t)
	s.index[k] = append(s.index[k], i)
	return i
}

// Add adds t to the set unless it, or a mirrored version of it, is already
// present and returns a name table entry using the given palette that
// reproduces t.
func (s *Set) Add(t vdp.Tile, palette uint8) (vdp.MappingEntry, error) {
	if i, ok := s.find(t); ok {
		return vdp.NewMappingEntry(i, vdp.WithPalette(palette))
	}

	if s.flips {
		for _, f := range flips {
			m := t
			if f.h {
				m = m.FlipH()
			}
			if f.v {
				m = m.FlipV()
			}
			if i, ok := s.find(m); ok {
				return vdp.NewMappingEntry(i, vdp.WithPalette(palette), vdp.WithFlip(f.v, f.h))
			}
		}
	}

	if len(s.tiles) >= maxTiles {
		return vdp.MappingEntry{}, ErrFull
	}

	return vdp.NewMappingEntry(s.append(t), vdp.WithPalette(palette))
}

// Len returns the number of unique tiles.
func (s *Set) Len() int {
	return len(s.tiles)
}

// Tiles returns a copy of the unique tiles in the order they were added.
func (s *Set) Tiles() []vdp.Tile {
	return append([]vdp.Tile(nil), s.tiles...)
}
