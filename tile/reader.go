package tile

import (
	"errors"
	"io"

	"github.com/bodgit/smwgfx/bpp"
)

var (
	// ErrUnexpectedLength describes input that is not a whole number of
	// tiles. The final tile is zero-padded rather than dropped.
	ErrUnexpectedLength = errors.New("tile: unexpected length")

	errBadFormat = errors.New("tile: invalid format")
)

func readFull(r io.Reader, b []byte) (int, error) {
	n, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}

// Decode decodes one tile from chunk. Bytes beyond the end of chunk are read
// as zero.
func Decode(chunk []byte, f bpp.Format) Tile {
	var t Tile
	for y := 0; y < tileHeight; y++ {
		var planes [maxPlanes]byte
		for p, o := range planeOffsets(f, y) {
			if o >= 0 && o < len(chunk) {
				planes[p] = chunk[o]
			}
		}
		for x := 0; x < tileWidth; x++ {
			mask := byte(1) << uint(tileWidth-1-x)
			var i uint8
			for p, b := range planes {
				if b&mask != 0 {
					i |= 1 << uint(p)
				}
			}
			t.Set(x, y, i)
		}
	}
	return t
}

type decoder struct {
	r      io.Reader
	format bpp.Format
	tiles  Set
	padded int
}

func (d *decoder) decode() error {
	chunk := make([]byte, d.format.BytesPerTile())
	for {
		n, err := readFull(d.r, chunk)
		switch err {
		case nil:
		case io.ErrUnexpectedEOF:
			if n == 0 {
				return nil
			}
			for i := n; i < len(chunk); i++ {
				chunk[i] = 0
			}
			d.tiles = append(d.tiles, Decode(chunk, d.format))
			d.padded = len(chunk) - n
			return nil
		default:
			return err
		}
		d.tiles = append(d.tiles, Decode(chunk, d.format))
	}
}

// Read decodes every tile from r until EOF. If the data ends partway through a
// tile, that tile is decoded as though the missing bytes were zero and the
// number of missing bytes is returned as padded, allowing the caller to report
// it with ErrUnexpectedLength.
func Read(r io.Reader, f bpp.Format) (s Set, padded int, err error) {
	if !f.Valid() {
		return nil, 0, errBadFormat
	}
	d := decoder{r: r, format: f}
	if err := d.decode(); err != nil {
		return nil, 0, err
	}
	return d.tiles, d.padded, nil
}
