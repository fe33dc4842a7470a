package vdp

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"

	"github.com/32bitkid/bitreader"
)

var errOddMapping = errors.New("vdp: name table has an odd number of bytes")

// ReadTiles reads consecutive 32-byte tiles from r until EOF.
func ReadTiles(r io.Reader) ([]Tile, error) {
	var tiles []Tile
	for {
		var t Tile
		// A partial tile is reported as io.ErrUnexpectedEOF
		switch _, err := io.ReadFull(r, t.pix[:]); err {
		case io.EOF:
			return tiles, nil
		case nil:
		default:
			return nil, err
		}
		tiles = append(tiles, t)
	}
}

// WriteTiles writes each tile to w in packed form.
func WriteTiles(w io.Writer, tiles []Tile) error {
	for _, t := range tiles {
		if _, err := w.Write(t.pix[:]); err != nil {
			return err
		}
	}
	return nil
}

func readEntry(br bitreader.BitReader) (MappingEntry, error) {
	var e MappingEntry
	var err error
	if e.Priority, err = br.Read1(); err != nil {
		return e, err
	}
	if e.Palette, err = br.Read8(2); err != nil {
		return e, err
	}
	if e.VFlip, err = br.Read1(); err != nil {
		return e, err
	}
	if e.HFlip, err = br.Read1(); err != nil {
		return e, err
	}
	e.Tile, err = br.Read16(11)
	return e, err
}

// ReadMapping reads a name table from r until EOF.
func ReadMapping(r io.Reader) ([]MappingEntry, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(b)%mappingBytes != 0 {
		return nil, errOddMapping
	}

	br := bitreader.NewReader(bytes.NewReader(b))
	entries := make([]MappingEntry, len(b)/mappingBytes)
	for i := range entries {
		if entries[i], err = readEntry(br); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// WriteMapping writes each entry to w as a big-endian name table word.
func WriteMapping(w io.Writer, entries []MappingEntry) error {
	for _, e := range entries {
		b, err := e.MarshalBinary()
		if err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}
