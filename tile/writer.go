package tile

import (
	"errors"
	"fmt"
	"io"

	"github.com/bodgit/smwgfx/bpp"
)

// ErrPaletteIndexOutOfRange is matched by a RangeError.
var ErrPaletteIndexOutOfRange = errors.New("tile: palette index out of range")

// RangeError records a pixel whose palette index can't be represented in the
// requested format.
type RangeError struct {
	Tile   int
	X, Y   int
	Index  uint8
	Format bpp.Format
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("tile: palette index %d at (%d, %d) of tile %d exceeds %d for %s", e.Index, e.X, e.Y, e.Tile, e.Format.MaxPaletteIndex(), e.Format)
}

// Unwrap returns ErrPaletteIndexOutOfRange.
func (e *RangeError) Unwrap() error {
	return ErrPaletteIndexOutOfRange
}

func check(t *Tile, n int, f bpp.Format) error {
	max := f.MaxPaletteIndex()
	for y := 0; y < tileHeight; y++ {
		for x := 0; x < tileWidth; x++ {
			if i := t.At(x, y); i > max {
				return &RangeError{Tile: n, X: x, Y: y, Index: i, Format: f}
			}
		}
	}
	return nil
}

func encode(b []byte, t *Tile, f bpp.Format) {
	for y := 0; y < tileHeight; y++ {
		var planes [maxPlanes]byte
		for c := 0; c < tileWidth; c++ {
			// Bit c holds the pixel c places in from the right
			i := t.At(tileWidth-1-c, y)
			for p := range planes {
				if i&(1<<uint(p)) != 0 {
					planes[p] |= 1 << uint(c)
				}
			}
		}
		for p, o := range planeOffsets(f, y) {
			if o >= 0 {
				b[o] = planes[p]
			}
		}
	}
}

// Encode returns t packed into f. Every palette index must be no greater than
// f.MaxPaletteIndex(), otherwise a *RangeError is returned.
func Encode(t Tile, f bpp.Format) ([]byte, error) {
	if !f.Valid() {
		return nil, errBadFormat
	}
	if err := check(&t, 0, f); err != nil {
		return nil, err
	}
	b := make([]byte, f.BytesPerTile())
	encode(b, &t, f)
	return b, nil
}

type encoder struct {
	w      io.Writer
	format bpp.Format
}

func (e *encoder) encode(s Set) error {
	b := make([]byte, e.format.BytesPerTile())
	for i := range s {
		for j := range b {
			b[j] = 0
		}
		encode(b, &s[i], e.format)
		if _, err := e.w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// Write encodes every tile in s to w. The whole set is checked before anything
// is written so a *RangeError leaves w untouched.
func Write(w io.Writer, s Set, f bpp.Format) error {
	if !f.Valid() {
		return errBadFormat
	}
	for i := range s {
		if err := check(&s[i], i, f); err != nil {
			return err
		}
	}
	e := encoder{w: w, format: f}
	return e.encode(s)
}
