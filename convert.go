package smwgfx

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/smwgfx/bpp"
	"github.com/bodgit/smwgfx/palette"
	"github.com/bodgit/smwgfx/preview"
	"github.com/bodgit/smwgfx/sheet"
	"github.com/bodgit/smwgfx/tile"
	"github.com/disintegration/imaging"
)

var (
	errBadFormat = errors.New("smwgfx: unsupported format")
	errBadScale  = errors.New("smwgfx: scale must be at least 1")

	// ErrMismatch is returned by Verify for a file that does not survive
	// decoding and encoding unchanged.
	ErrMismatch = errors.New("smwgfx: round trip mismatch")
)

func (o *Options) validate(f bpp.Format) error {
	if !f.Valid() {
		return errBadFormat
	}
	o.defaults()
	if o.Scale < 1 {
		return errBadScale
	}
	return nil
}

func replaceExt(file, ext string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + ext
}

// checkLength warns if the final tile in b is short and will be padded.
func (g *GFX) checkLength(file string, b []byte, f bpp.Format) {
	if rem := len(b) % f.BytesPerTile(); rem > 0 {
		g.logger.Warnf("%s: %v, %d bytes is not a multiple of %d, padding the final tile with %d zero bytes", file, tile.ErrUnexpectedLength, len(b), f.BytesPerTile(), f.BytesPerTile()-rem)
	}
}

func tiles(b []byte, f bpp.Format) (tile.Set, error) {
	s, _, err := tile.Read(bytes.NewReader(b), f)
	return s, err
}

// render returns the PNG sheet for the contents of file, using the catalog
// when there is one.
func (g *GFX) render(file string, b []byte, f bpp.Format, scale int) ([]byte, error) {
	if g.db != nil {
		cached, err := g.db.FindSheet(b, f, scale)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			g.logger.Debugf("%s: using cached sheet of %d tiles", file, cached.Tiles)
			if err := g.db.AddSource(file, cached.ID); err != nil {
				return nil, err
			}
			return cached.PNG, nil
		}
	}

	s, err := tiles(b, f)
	if err != nil {
		return nil, err
	}

	m, err := sheet.Compose(s, scale, palette.Default)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, m, imaging.PNG); err != nil {
		return nil, err
	}

	if g.db != nil {
		id, err := g.db.AddSheet(b, f, scale, len(s), buf.Bytes())
		if err != nil {
			return nil, err
		}
		if err := g.db.AddSource(file, id); err != nil {
			return nil, err
		}
	}

	g.logger.Debugf("%s: rendered %d tiles", file, len(s))

	return buf.Bytes(), nil
}

func (g *GFX) printPreview(file string, b []byte, f bpp.Format, opts Options) error {
	s, err := tiles(b, f)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%s:\n", file)
	if err := preview.Write(buf, s, preview.Options{TilesPerRow: sheet.TilesPerRow}); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	_, err = buf.WriteTo(opts.Output)
	return err
}

func (g *GFX) decodeFile(file string, f bpp.Format, opts Options) error {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}

	g.checkLength(file, b, f)

	if opts.Print {
		if err := g.printPreview(file, b, f, opts); err != nil {
			return err
		}
	}

	png, err := g.render(file, b, f, opts.Scale)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(replaceExt(file, pngExt), png, 0666)
}

func (g *GFX) encodeFile(file string, f bpp.Format, opts Options) error {
	m, err := imaging.Open(file)
	if err != nil {
		return err
	}

	s, err := sheet.Split(m, opts.Scale, f, palette.Default, opts.Tiles)
	if err != nil {
		return err
	}

	// Encode everything before touching the destination
	buf := new(bytes.Buffer)
	if err := tile.Write(buf, s, f); err != nil {
		return err
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !opts.Overwrite {
		flag |= os.O_EXCL
	}

	w, err := os.OpenFile(replaceExt(file, binExt), flag, 0666)
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err := buf.WriteTo(w); err != nil {
		return err
	}

	g.logger.Debugf("%s: encoded %d tiles", file, len(s))

	return w.Close()
}

func (g *GFX) verifyFile(file string, f bpp.Format) error {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}

	g.checkLength(file, b, f)

	s, err := tiles(b, f)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	if err := tile.Write(buf, s, f); err != nil {
		return err
	}

	// Anything past the input is padding from a short final tile
	got := buf.Bytes()
	for i := range got {
		if i >= len(b) {
			if got[i] != 0 {
				return fmt.Errorf("%w: padding byte %d is %#02x", ErrMismatch, i, got[i])
			}
			continue
		}
		if got[i] != b[i] {
			return fmt.Errorf("%w: byte %d is %#02x, want %#02x", ErrMismatch, i, got[i], b[i])
		}
	}

	g.logger.Debugf("%s: verified %d tiles", file, len(s))

	return nil
}

// Decode renders every .bin file at path, either a file or a directory, as a
// PNG sheet with the same base name alongside it. Files larger than
// MaxFileSize are skipped.
func (g *GFX) Decode(path string, f bpp.Format, opts Options) error {
	if err := opts.validate(f); err != nil {
		return err
	}
	return g.run(path, binExt, MaxFileSize, opts, func(file string) error {
		return g.decodeFile(file, f, opts)
	})
}

// Encode converts every PNG sheet at path back to a .bin file with the same
// base name. Existing files are only replaced if opts.Overwrite is set.
func (g *GFX) Encode(path string, f bpp.Format, opts Options) error {
	if err := opts.validate(f); err != nil {
		return err
	}
	return g.run(path, pngExt, 0, opts, func(file string) error {
		return g.encodeFile(file, f, opts)
	})
}

// Verify checks that every .bin file at path decodes and encodes back to the
// same bytes.
func (g *GFX) Verify(path string, f bpp.Format, opts Options) error {
	if err := opts.validate(f); err != nil {
		return err
	}
	return g.run(path, binExt, MaxFileSize, opts, func(file string) error {
		return g.verifyFile(file, f)
	})
}
