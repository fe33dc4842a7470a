/*
Package vdp implements an encoder and decoder for the graphics formats used by
the Sega Genesis/Mega Drive Video Display Processor.

Colors are 9-bit values packed into a 16-bit word as 0000BBB0GGG0RRR0,
palettes hold up to 16 colors, tiles are 8 by 8 pixels with a 4-bit palette
index per pixel and name table (mapping) entries are 16-bit words of the form
PCCVHTTTTTTTTTTT.
*/
package vdp

import "errors"

const (
	colorBytes       = 2
	colorsPerPalette = 16
	tileWidth        = 8
	tileHeight       = tileWidth
	tilePixels       = tileWidth * tileHeight
	tileBytes        = tilePixels >> 1
	mappingBytes     = 2
	maxTileIndex     = 1<<11 - 1
	maxPaletteIndex  = 1<<2 - 1
)

// ErrInvalidArgument is returned, possibly wrapped, whenever a value is
// constructed from a buffer or collection of the wrong size or a field
// doesn't fit its bit width.
var ErrInvalidArgument = errors.New("vdp: invalid argument")
