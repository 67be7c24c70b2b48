package smwgfx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// accept reports whether file should be processed, warning about any file
// that is skipped. Files in a directory with the wrong extension are only
// noted at debug level.
func (g *GFX) accept(file string, info os.FileInfo, ext string, maxSize int64, named bool) bool {
	if !info.Mode().IsRegular() {
		g.logger.Warnf("%s is not a regular file, skipping", file)
		return false
	}

	if !strings.EqualFold(filepath.Ext(file), ext) {
		if named {
			g.logger.Warnf("%s is not a %s file, skipping", file, ext)
		} else {
			g.logger.Debugf("%s is not a %s file, skipping", file, ext)
		}
		return false
	}

	if maxSize > 0 && info.Size() > maxSize {
		g.logger.Warnf("%s is %d bytes, larger than the maximum of %d, skipping", file, info.Size(), maxSize)
		return false
	}

	return true
}

// findFiles sends every acceptable file at base to the returned channel. If
// base is a directory its immediate children are considered; subdirectories
// and hidden files are ignored.
func (g *GFX) findFiles(ctx context.Context, base, ext string, maxSize int64) (<-chan string, <-chan error, error) {
	info, err := os.Stat(base)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)

		send := func(file string) error {
			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}
			return nil
		}

		if !info.IsDir() {
			if g.accept(base, info, ext, maxSize, true) {
				errc <- send(base)
			}
			return
		}

		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if file == base {
				return nil
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if info.Mode().IsDir() {
				g.logger.Debugf("%s is a directory, skipping", file)
				return filepath.SkipDir
			}

			if !g.accept(file, info, ext, maxSize, false) {
				return nil
			}

			return send(file)
		})
	}()
	return out, errc, nil
}
