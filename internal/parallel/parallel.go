// Package parallel runs independent training jobs on a bounded pool of
// goroutines.
package parallel

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
	}
}

// Run executes job(i) for i in [0, n) and returns the error of the lowest
// failing index, or nil.
//
// Falls back to sequential execution if parallelism is disabled, only one
// worker is configured or n < 2. The sequential path stops at the first
// error; the parallel path lets every job finish. Jobs must not share
// mutable state.
func Run(n int, cfg Config, job func(i int) error) error {
	if n < 0 {
		return errors.Errorf("parallel: negative job count %d", n)
	}

	workers := min(cfg.NumWorkers, n)
	if !cfg.Enabled || workers < 2 {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			if err := job(i); err != nil {
				return errors.Wrapf(err, "job %d", i)
			}
		}
		return nil
	}

	jobErrs := make([]error, n)
	indices := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				jobErrs[i] = job(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		indices <- i
	}
	close(indices)
	wg.Wait()

	for i, err := range jobErrs {
		if err != nil {
			return errors.Wrapf(err, "job %d", i)
		}
	}
	return nil
}
