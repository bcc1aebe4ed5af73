package palc

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

const numWorkers = 4

func (c *Compiler) queueFiles(ctx context.Context, files []string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, file := range files {
			select {
			case out <- file:
			case <-ctx.Done():
				errc <- errors.New("compile cancelled")
				return
			}
		}
	}()
	return out, errc
}

func (c *Compiler) fileWorker(in <-chan string, compile func(string) error) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := compile(file); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
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

// Compile every file with a fixed number of workers
func (c *Compiler) run(ctx context.Context, files []string, compile func(string) error) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	queue, errc := c.queueFiles(ctx, files)
	errcList = append(errcList, errc)

	workers := numWorkers
	if len(files) < workers {
		workers = len(files)
	}

	for i := 0; i < workers; i++ {
		errcList = append(errcList, c.fileWorker(queue, compile))
	}

	return waitForPipeline(errcList...)
}
