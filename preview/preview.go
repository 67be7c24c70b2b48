// Package preview renders tiles to a terminal using ANSI 256 color escape
// sequences. It is a debugging aid; the output has no stable format.
package preview

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/smwgfx/tile"
)

const (
	tileWidth  = 8
	tileHeight = tileWidth
	reset      = "\x1b[0m"
)

// Background colors keyed on palette index. Index 0 is blue to stand out as
// transparency; indices without an entry are printed uncolored.
var backgrounds = map[uint8]string{
	0: "\x1b[48;5;18m",
	1: "\x1b[48;5;255m\x1b[38;5;232m",
	2: "\x1b[48;5;232m",
	3: "\x1b[48;5;243m",
	4: "\x1b[48;5;246m",
	5: "\x1b[48;5;243m",
	6: "\x1b[48;5;249m",
	7: "\x1b[48;5;252m",
}

// Options controls the layout of the preview.
type Options struct {
	TilesPerRow int  // Tiles per line, defaults to 16
	PixelWidth  int  // Times each index is repeated, defaults to 1
	Space       bool // Separate adjacent tiles with a space
}

func (o *Options) defaults() {
	if o.TilesPerRow < 1 {
		o.TilesPerRow = 16
	}
	if o.PixelWidth < 1 {
		o.PixelWidth = 1
	}
}

// Write renders s to w.
func Write(w io.Writer, s tile.Set, opts Options) error {
	opts.defaults()

	bw := bufio.NewWriter(w)
	for start := 0; start < len(s); start += opts.TilesPerRow {
		end := start + opts.TilesPerRow
		if end > len(s) {
			end = len(s)
		}
		for y := 0; y < tileHeight; y++ {
			for i := start; i < end; i++ {
				for x := 0; x < tileWidth; x++ {
					p := s[i].At(x, y)
				// One hex digit keeps every pixel a single column wide
					fmt.Fprintf(bw, "%s%s%s", backgrounds[p], strings.Repeat(fmt.Sprintf("%X", p), opts.PixelWidth), reset)
				}
				if opts.Space {
					bw.WriteByte(' ')
				}
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
