/*
Package bpp describes the planar tile formats supported by the SNES, from one
to four bitplanes per pixel.

Each bitplane contributes one bit of a pixel's palette index and is stored as
one byte per row of an 8 by 8 tile, so a tile in a format with n bitplanes
occupies n*8 bytes.
*/
package bpp

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is returned by Parse for anything other than "1", "2", "3"
// or "4".
var ErrInvalidFormat = errors.New("bpp: unsupported format")

// Format is the number of bitplanes packing each pixel. The underlying value
// is not the bit depth, use Bits.
type Format uint8

// Supported formats.
const (
	Format1 Format = iota
	Format2
	Format3
	Format4
)

// Formats lists every supported format in ascending bit depth.
var Formats = []Format{Format1, Format2, Format3, Format4}

// Parse returns the Format named by s.
func Parse(s string) (Format, error) {
	switch s {
	case "1":
		return Format1, nil
	case "2":
		return Format2, nil
	case "3":
		return Format3, nil
	case "4":
		return Format4, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// Bits returns the number of bitplanes, between 1 and 4. It returns 0 for an
// unknown format.
func (f Format) Bits() int {
	switch f {
	case Format1:
		return 1
	case Format2:
		return 2
	case Format3:
		return 3
	case Format4:
		return 4
	}
	return 0
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	return f.Bits() != 0
}

// BytesPerTile returns the size of one 8 by 8 tile.
func (f Format) BytesPerTile() int {
	return f.Bits() * 8
}

// MaxPaletteIndex returns the largest palette index a pixel can hold.
func (f Format) MaxPaletteIndex() uint8 {
	return uint8(1<<uint(f.Bits()) - 1)
}

// Colors returns the number of palette indices a pixel can address.
func (f Format) Colors() int {
	return 1 << uint(f.Bits())
}

func (f Format) String() string {
	if !f.Valid() {
		return fmt.Sprintf("bpp.Format(%d)", uint8(f))
	}
	return fmt.Sprintf("%dbpp", f.Bits())
}
