/*
Package tile implements a decoder and encoder for SNES planar 8 by 8 tiles.

A tile in a format with n bitplanes is stored as n*8 bytes. Each row of the
tile is described by one byte per bitplane and bit 7 of each byte is the
leftmost pixel. The rows of the first two bitplanes are interleaved, as are
the rows of the third and fourth which follow 16 bytes later:

	format  plane 1  plane 2  plane 3  plane 4
	1bpp    r
	2bpp    2r       2r+1
	3bpp    2r       2r+1     16+r
	4bpp    2r       2r+1     16+2r    17+2r
*/
package tile

import "github.com/bodgit/smwgfx/bpp"

const (
	tileWidth  = 8
	tileHeight = tileWidth
	tilePixels = tileWidth * tileHeight
	maxPlanes  = 4
)

// Tile holds the palette index of each of the 64 pixels of a tile in
// row-major order.
type Tile [tilePixels]uint8

// At returns the palette index of the pixel at (x, y).
func (t *Tile) At(x, y int) uint8 {
	return t[y*tileWidth+x]
}

// Set sets the palette index of the pixel at (x, y).
func (t *Tile) Set(x, y int, i uint8) {
	t[y*tileWidth+x] = i
}

// Set is an ordered sequence of tiles, in the order they appear in the source
// binary.
type Set []Tile

// planeOffsets returns the chunk offset of each bitplane byte for row r. Unused
// planes are -1.
func planeOffsets(f bpp.Format, r int) [maxPlanes]int {
	o := [maxPlanes]int{-1, -1, -1, -1}
	switch f {
	case bpp.Format1:
		o[0] = r
	case bpp.Format2:
		o[0], o[1] = 2*r, 2*r+1
	case bpp.Format3:
		o[0], o[1], o[2] = 2*r, 2*r+1, 16+r
	case bpp.Format4:
		o[0], o[1], o[2], o[3] = 2*r, 2*r+1, 16+2*r, 17+2*r
	}
	return o
}
