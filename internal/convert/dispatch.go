package convert

import (
	"context"
	"sync"
)

// Run executes Convert for every file. A worker count of one runs jobs
// strictly sequentially in input order; otherwise a bounded pool drains the
// files with unspecified completion order. Jobs share no mutable state, so
// the only synchronization is the results channel.
func (c *Converter) Run(ctx context.Context, files []string) []Result {
	if len(files) == 0 {
		return nil
	}

	workers := c.opts.Workers
	if workers < 1 {
		workers = 1
	}

	if workers == 1 {
		results := make([]Result, 0, len(files))
		for _, src := range files {
			results = append(results, c.Convert(ctx, src))
		}
		return results
	}

	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan string)
	out := make(chan Result, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				out <- c.Convert(ctx, src)
			}
		}()
	}

	for _, src := range files {
		jobs <- src
	}
	close(jobs)
	wg.Wait()
	close(out)

	results := make([]Result, 0, len(files))
	for result := range out {
		results = append(results, result)
	}
	return results
}
