// Package palette provides the fixed 16 color table used to render palette
// indices.
package palette

import "image/color"

// Size is the number of entries in Default.
const Size = 16

var transparent = color.RGBA{0, 0, 0, 0}

func grey(y uint8) color.RGBA {
	return color.RGBA{y, y, y, 0xff}
}

// Default maps indices 0 and 8 to transparent black and every other index to
// a distinct opaque grey. Index 1 is white and 2 to 7 run from black to light
// grey. 9 to 15 fill the gaps of that ramp so no two opaque entries collide.
var Default = color.Palette{
	transparent,
	grey(0xff),
	grey(0x00),
	grey(0x2a),
	grey(0x55),
	grey(0x80),
	grey(0xaa),
	grey(0xd4),
	transparent,
	grey(0x15),
	grey(0x3f),
	grey(0x6a),
	grey(0x95),
	grey(0xbf),
	grey(0xe9),
	grey(0xf4),
}

// Transparent reports whether index i composes to a fully transparent pixel.
func Transparent(i uint8) bool {
	return i == 0 || i == 8
}

// Lookup returns the exact palette index of c in p, treating any fully
// transparent color as index 0. It returns false if c isn't in p.
func Lookup(p color.Palette, c color.Color) (uint8, bool) {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return 0, true
	}
	for i, pc := range p {
		pr, pg, pb, pa := pc.RGBA()
		if pr == r && pg == g && pb == b && pa == a {
			return uint8(i), true
		}
	}
	return 0, false
}
