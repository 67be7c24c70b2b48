package smwgfx

import (
	"context"
	"fmt"
	"sync"
)

// BatchError collects the failures of a batch operation. Each failing file is
// reported without stopping the others.
type BatchError struct {
	Errors []error
}

func (e *BatchError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed", len(e.Errors))
}

func (g *GFX) fileWorker(ctx context.Context, in <-chan string, fn func(string) error) <-chan error {
	errc := make(chan error)
	go func() {
		defer close(errc)
		for file := range in {
			g.logger.Debugf("processing %s", file)
			if err := fn(file); err != nil {
				select {
				case errc <- fmt.Errorf("%s: %w", file, err):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return errc
}

// waitForPipeline drains every channel, logging each error as it arrives.
func (g *GFX) waitForPipeline(errs ...<-chan error) error {
	var failed []error
	for err := range mergeErrors(errs...) {
		if err != nil {
			g.logger.Warnf("%v", err)
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return &BatchError{Errors: failed}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// run applies fn to every file with extension ext found at path using
// opts.Jobs workers.
func (g *GFX) run(path, ext string, maxSize int64, opts Options, fn func(string) error) error {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := g.findFiles(ctx, path, ext, maxSize)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < opts.Jobs; i++ {
		errcList = append(errcList, g.fileWorker(ctx, files, fn))
	}

	return g.waitForPipeline(errcList...)
}
