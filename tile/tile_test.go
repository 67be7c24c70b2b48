package tile

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/bodgit/smwgfx/bpp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBytes(t *testing.T, seed int64, n int) []byte {
	b := make([]byte, n)
	_, err := rand.New(rand.NewSource(seed)).Read(b)
	require.NoError(t, err)
	return b
}

func TestDecode1bpp(t *testing.T) {
	got := Decode([]byte{0xff, 0, 0, 0, 0, 0, 0, 0}, bpp.Format1)

	var want Tile
	for x := 0; x < 8; x++ {
		want[x] = 1
	}
	assert.Equal(t, want, got)
}

func TestDecodeLeftmostBit(t *testing.T) {
	tests := []struct {
		name  string
		f     bpp.Format
		chunk []byte
		x, y  int
		want  uint8
	}{
		{"1bpp row 3", bpp.Format1, []byte{0, 0, 0, 0x80, 0, 0, 0, 0}, 0, 3, 1},
		{"2bpp plane 2", bpp.Format2, append([]byte{0, 0x01}, make([]byte, 14)...), 7, 0, 2},
		{"3bpp plane 3", bpp.Format3, append(make([]byte, 18), 0x40, 0, 0, 0, 0, 0), 1, 2, 4},
		{"4bpp plane 4", bpp.Format4, append(make([]byte, 31), 0x80), 0, 7, 8},
		{"4bpp all planes", bpp.Format4, append([]byte{0x10, 0x10}, append(make([]byte, 14), append([]byte{0x10, 0x10}, make([]byte, 14)...)...)...), 3, 0, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Len(t, tt.chunk, tt.f.BytesPerTile())
			got := Decode(tt.chunk, tt.f)
			assert.Equal(t, tt.want, got.At(tt.x, tt.y))
			for i, v := range got {
				if i != tt.y*8+tt.x {
					assert.Zero(t, v, "pixel %d", i)
				}
			}
		})
	}
}

func TestDecodeZero4bpp(t *testing.T) {
	chunk := make([]byte, 32)
	tile := Decode(chunk, bpp.Format4)
	assert.Equal(t, Tile{}, tile)

	b, err := Encode(tile, bpp.Format4)
	require.NoError(t, err)
	assert.Equal(t, chunk, b)
}

func TestDecodeShortChunk(t *testing.T) {
	// Missing bytes are zero
	full := []byte{0xaa, 0x55, 0xff, 0x00, 0x0f, 0xf0, 0x00, 0x00, 0, 0, 0, 0, 0, 0, 0, 0}
	assert.Equal(t, Decode(full, bpp.Format2), Decode(full[:6], bpp.Format2))
	assert.Equal(t, Tile{}, Decode(nil, bpp.Format4))
}

func TestRoundTrip(t *testing.T) {
	for _, f := range bpp.Formats {
		t.Run(f.String(), func(t *testing.T) {
			in := randomBytes(t, int64(f.Bits()), f.BytesPerTile()*37)

			s, padded, err := Read(bytes.NewReader(in), f)
			require.NoError(t, err)
			assert.Zero(t, padded)
			assert.Len(t, s, 37)

			out := new(bytes.Buffer)
			require.NoError(t, Write(out, s, f))
			assert.Equal(t, in, out.Bytes())
		})
	}
}

func TestRoundTripSingle(t *testing.T) {
	for _, f := range bpp.Formats {
		t.Run(f.String(), func(t *testing.T) {
			for seed := int64(0); seed < 64; seed++ {
				in := randomBytes(t, seed, f.BytesPerTile())
				b, err := Encode(Decode(in, f), f)
				require.NoError(t, err)
				assert.Equal(t, in, b)
			}
		})
	}
}

func TestDecodeRange(t *testing.T) {
	for _, f := range bpp.Formats {
		t.Run(f.String(), func(t *testing.T) {
			in := randomBytes(t, 42, f.BytesPerTile()*16)
			s, _, err := Read(bytes.NewReader(in), f)
			require.NoError(t, err)
			for _, tile := range s {
				assert.Len(t, tile, 64)
				for _, i := range tile {
					assert.LessOrEqual(t, i, f.MaxPaletteIndex())
				}
			}
		})
	}
}

func TestReadPartial(t *testing.T) {
	in := randomBytes(t, 7, 16*2+5)

	s, padded, err := Read(bytes.NewReader(in), bpp.Format2)
	require.NoError(t, err)
	assert.Len(t, s, 3)
	assert.Equal(t, 11, padded)

	// The padded tile re-encodes to the original bytes followed by zeroes
	out := new(bytes.Buffer)
	require.NoError(t, Write(out, s, bpp.Format2))
	assert.Equal(t, append(in, make([]byte, 11)...), out.Bytes())
}

func TestReadEmpty(t *testing.T) {
	s, padded, err := Read(bytes.NewReader(nil), bpp.Format3)
	require.NoError(t, err)
	assert.Empty(t, s)
	assert.Zero(t, padded)
}

func TestReadBadFormat(t *testing.T) {
	_, _, err := Read(bytes.NewReader([]byte{1, 2, 3}), bpp.Format(7))
	assert.Error(t, err)
}

func TestEncodeOutOfRange(t *testing.T) {
	tests := []struct {
		f     bpp.Format
		index uint8
	}{
		{bpp.Format1, 2},
		{bpp.Format2, 4},
		{bpp.Format3, 8},
		{bpp.Format4, 16},
		{bpp.Format4, 255},
	}

	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			var tile Tile
			tile.Set(5, 6, tt.index)

			b, err := Encode(tile, tt.f)
			assert.Nil(t, b)
			require.True(t, errors.Is(err, ErrPaletteIndexOutOfRange))

			var re *RangeError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, 5, re.X)
			assert.Equal(t, 6, re.Y)
			assert.Equal(t, tt.index, re.Index)
		})
	}
}

func TestWriteOutOfRangeWritesNothing(t *testing.T) {
	s := make(Set, 4)
	s[3].Set(0, 0, 4)

	out := new(bytes.Buffer)
	err := Write(out, s, bpp.Format2)
	require.True(t, errors.Is(err, ErrPaletteIndexOutOfRange))
	assert.Zero(t, out.Len())

	var re *RangeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 3, re.Tile)
}

func TestTileAtSet(t *testing.T) {
	var tile Tile
	tile.Set(7, 2, 9)
	assert.Equal(t, uint8(9), tile.At(7, 2))
	assert.Equal(t, uint8(9), tile[2*8+7])
}
