/*
Package smwgfx is a library for converting SNES planar tile graphics, as found
in Super Mario World and other 16-bit era ROMs, to PNG sheets and back.
*/
package smwgfx

import (
	"io"
	"io/ioutil"
	"runtime"
	"sync"
)

const (
	binExt = ".bin"
	pngExt = ".png"

	// MaxFileSize is the largest .bin file that will be considered.
	MaxFileSize = 256 << 10

	// DefaultScale is used when Options.Scale is zero.
	DefaultScale = 4
)

// GFX converts graphics files, optionally caching results in a Catalog.
type GFX struct {
	db     *Catalog
	logger Logger

	// Serializes previews
	mu sync.Mutex
}

// New returns a GFX using db, which may be nil to disable caching, and
// reporting diagnostics to logger.
func New(db *Catalog, logger Logger) *GFX {
	if logger == nil {
		logger = NewLogger(nil, false)
	}
	return &GFX{
		db:     db,
		logger: logger,
	}
}

// Options controls a batch operation.
type Options struct {
	// Scale is the size of each tile pixel in the PNG sheet.
	Scale int
	// Jobs is the number of files processed concurrently, defaults to the
	// number of CPUs.
	Jobs int
	// Print writes a terminal preview of each decoded file to Output.
	Print  bool
	Output io.Writer
	// Overwrite allows Encode to replace existing .bin files.
	Overwrite bool
	// Tiles truncates each encoded file to this many tiles when positive.
	Tiles int
}

func (o *Options) defaults() {
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Jobs < 1 {
		o.Jobs = runtime.NumCPU()
	}
	if o.Output == nil {
		o.Output = ioutil.Discard
	}
}
