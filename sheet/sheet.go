/*
Package sheet lays out a set of tiles as a raster image and splits such an
image back into tiles.

Tiles are arranged 16 to a row in the order they were decoded. Every pixel is
replicated into a square block of scale by scale pixels using nearest
neighbour scaling and grid cells after the last tile are left transparent.
*/
package sheet

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/smwgfx/tile"
	xdraw "golang.org/x/image/draw"
)

const (
	// TilesPerRow is the width of a sheet in tiles.
	TilesPerRow = 16

	tileWidth  = 8
	tileHeight = tileWidth
	maxColors  = 16
)

var (
	// ErrBadScale is returned for a scale less than one.
	ErrBadScale = errors.New("sheet: scale must be at least 1")

	errBadSize = errors.New("sheet: image is wrong size")
)

func rows(n int) int {
	return (n + TilesPerRow - 1) / TilesPerRow
}

// Bounds returns the bounds of a sheet holding n tiles at the given scale.
func Bounds(n, scale int) image.Rectangle {
	return image.Rect(0, 0, TilesPerRow*tileWidth*scale, rows(n)*tileHeight*scale)
}

// cell returns the unscaled position of the top-left pixel of tile i.
func cell(i int) image.Point {
	return image.Pt(i%TilesPerRow*tileWidth, i/TilesPerRow*tileHeight)
}

// padPalette returns p extended with transparent entries so that every
// palette index a tile can hold has a color.
func padPalette(p color.Palette) color.Palette {
	dup := append(color.Palette{}, p...)
	for len(dup) < maxColors {
		dup = append(dup, color.RGBA{0, 0, 0, 0})
	}
	return dup
}

func layout(s tile.Set, p color.Palette) *image.Paletted {
	m := image.NewPaletted(Bounds(len(s), 1), padPalette(p))
	for i := range s {
		pt := cell(i)
		for y := 0; y < tileHeight; y++ {
			for x := 0; x < tileWidth; x++ {
				m.SetColorIndex(pt.X+x, pt.Y+y, s[i].At(x, y)&(maxColors-1))
			}
		}
	}
	return m
}

// Compose returns the tiles in s laid out as an RGBA image, with each palette
// index looked up in p.
func Compose(s tile.Set, scale int, p color.Palette) (*image.RGBA, error) {
	if scale < 1 {
		return nil, ErrBadScale
	}

	dst := image.NewRGBA(Bounds(len(s), scale))
	if len(s) == 0 {
		return dst, nil
	}

	src := layout(s, p)
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	// Clear any unused cells on the last row
	if rem := len(s) % TilesPerRow; rem > 0 {
		b := dst.Bounds()
		r := image.Rect(rem*tileWidth*scale, b.Max.Y-tileHeight*scale, b.Max.X, b.Max.Y)
		draw.Draw(dst, r, image.Transparent, image.Point{}, draw.Src)
	}

	return dst, nil
}
