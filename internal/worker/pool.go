// Package worker runs independent per-document resolution jobs in parallel.
// Concurrency exists only across documents: each job builds its own mention
// table and cluster store, so workers never share resolver state.
package worker

import (
	"context"
	"sync"
)

// Job resolves one document end to end.
type Job struct {
	Input  string
	Output string
	Run    func(input, output string) error
}

// Result is the outcome of one document job.
type Result struct {
	Input string
	Err   error
}

// Pool executes jobs with a fixed number of workers.
type Pool struct {
	workers int
}

// NewPool creates a pool with the specified number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all jobs and returns one result per job. When the context is
// cancelled, jobs not yet started report the context error.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	jobCh := make(chan Job)
	results := make([]Result, 0, len(jobs))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				err := job.Run(job.Input, job.Output)
				mu.Lock()
				results = append(results, Result{Input: job.Input, Err: err})
				mu.Unlock()
			}
		}()
	}

	for i, job := range jobs {
		if ctx.Err() != nil {
			close(jobCh)
			wg.Wait()
			for _, rest := range jobs[i:] {
				results = append(results, Result{Input: rest.Input, Err: ctx.Err()})
			}
			return results
		}
		select {
		case <-ctx.Done():
			close(jobCh)
			wg.Wait()
			for _, rest := range jobs[i:] {
				results = append(results, Result{Input: rest.Input, Err: ctx.Err()})
			}
			return results
		case jobCh <- job:
		}
	}

	close(jobCh)
	wg.Wait()
	return results
}
