package sheet

import (
	"image"
	"image/color"
	"sort"

	"github.com/bodgit/smwgfx/bpp"
	"github.com/bodgit/smwgfx/palette"
	"github.com/bodgit/smwgfx/tile"
	"github.com/ericpauley/go-quantize/quantize"
	xdraw "golang.org/x/image/draw"
)

func luminance(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

func transparent(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a == 0
}

// samePalette reports whether the indices of an image using palette q mean
// the same colors in p.
func samePalette(p, q color.Palette) bool {
	if len(q) > len(p) {
		return false
	}
	for i := range q {
		if transparent(p[i]) && transparent(q[i]) {
			continue
		}
		r1, g1, b1, a1 := p[i].RGBA()
		r2, g2, b2, a2 := q[i].RGBA()
		if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
			return false
		}
	}
	return true
}

// opaqueIndices returns the opaque indices of p usable in f, darkest first.
func opaqueIndices(p color.Palette, f bpp.Format) []uint8 {
	var indices []uint8
	for i := 0; i < len(p) && i <= int(f.MaxPaletteIndex()); i++ {
		if !transparent(p[i]) {
			indices = append(indices, uint8(i))
		}
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return luminance(p[indices[i]]) < luminance(p[indices[j]])
	})
	return indices
}

type splitter struct {
	format  bpp.Format
	palette color.Palette
	rect    image.Rectangle
	indices []uint8
}

func (s *splitter) set(x, y int, i uint8) {
	s.indices[y*s.rect.Dx()+x] = i
}

func (s *splitter) fromPaletted(m *image.Paletted, scale int) {
	b := m.Bounds()
	for y := 0; y < s.rect.Dy(); y++ {
		for x := 0; x < s.rect.Dx(); x++ {
			s.set(x, y, m.ColorIndexAt(b.Min.X+x*scale, b.Min.Y+y*scale))
		}
	}
}

// fromColors matches every pixel exactly against the palette, returning false
// if any color is missing.
func (s *splitter) fromColors(m image.Image) bool {
	for y := 0; y < s.rect.Dy(); y++ {
		for x := 0; x < s.rect.Dx(); x++ {
			i, ok := palette.Lookup(s.palette, m.At(x, y))
			if !ok {
				return false
			}
			s.set(x, y, i)
		}
	}
	return true
}

// fromQuantized reduces m to as many colors as the format has opaque
// palette entries and assigns them by brightness.
func (s *splitter) fromQuantized(m image.Image) {
	targets := opaqueIndices(s.palette, s.format)
	if len(targets) == 0 {
		return
	}

	q := quantize.MedianCutQuantizer{}
	qp := q.Quantize(make(color.Palette, 0, len(targets)), m)
	sort.SliceStable(qp, func(i, j int) bool {
		return luminance(qp[i]) < luminance(qp[j])
	})

	ranks := make([]uint8, len(qp))
	for k := range qp {
		switch {
		case len(qp) == len(targets):
			ranks[k] = targets[k]
		case len(qp) == 1:
			ranks[k] = targets[len(targets)-1]
		default:
			ranks[k] = targets[k*(len(targets)-1)/(len(qp)-1)]
		}
	}

	for y := 0; y < s.rect.Dy(); y++ {
		for x := 0; x < s.rect.Dx(); x++ {
			c := m.At(x, y)
			if transparent(c) || len(qp) == 0 {
				s.set(x, y, 0)
				continue
			}
			s.set(x, y, ranks[qp.Index(c)])
		}
	}
}

func (s *splitter) tiles(count int) tile.Set {
	w := s.rect.Dx()
	n := s.rect.Dx() / tileWidth * (s.rect.Dy() / tileHeight)
	if count > 0 && count < n {
		n = count
	}
	set := make(tile.Set, n)
	for i := range set {
		pt := cell(i)
		for y := 0; y < tileHeight; y++ {
			for x := 0; x < tileWidth; x++ {
				set[i].Set(x, y, s.indices[(pt.Y+y)*w+pt.X+x])
			}
		}
	}
	return set
}

// Split is the inverse of Compose. The width of m must be that of a sheet at
// the given scale and its height a whole number of scaled tile rows.
//
// A paletted image whose palette agrees with p is read by color index, which
// keeps apart indices that share a color. Any other image is sampled once per
// block and matched exactly against p, and failing that reduced with a median
// cut quantizer to the opaque colors of p available in f. A positive count
// truncates the result to that many tiles, dropping the empty cells Compose
// pads the last row with.
//
// Split doesn't check the indices against f; tile.Encode reports any that are
// out of range.
func Split(m image.Image, scale int, f bpp.Format, p color.Palette, count int) (tile.Set, error) {
	if scale < 1 {
		return nil, ErrBadScale
	}

	b := m.Bounds()
	if b.Dx() != TilesPerRow*tileWidth*scale || b.Dy()%(tileHeight*scale) != 0 {
		return nil, errBadSize
	}

	s := splitter{
		format:  f,
		palette: p,
		rect:    image.Rect(0, 0, b.Dx()/scale, b.Dy()/scale),
	}
	s.indices = make([]uint8, s.rect.Dx()*s.rect.Dy())

	if pm, ok := m.(*image.Paletted); ok && samePalette(p, pm.Palette) {
		s.fromPaletted(pm, scale)
		return s.tiles(count), nil
	}

	small := image.NewRGBA(s.rect)
	xdraw.NearestNeighbor.Scale(small, small.Bounds(), m, b, xdraw.Src, nil)

	if !s.fromColors(small) {
		s.fromQuantized(small)
	}

	return s.tiles(count), nil
}
