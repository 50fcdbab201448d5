package concurrent

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type JobFunc[T any, G any] func(job T) G

// WorkerPool. runs a job function over a batch with at most numWorkers goroutines,
// results keep the order of the jobs.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobFunc    JobFunc[T, G]
}

func NewWorkerPool[T any, G any](numWorkers int, jobFunc JobFunc[T, G]) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobFunc:    jobFunc,
	}
}

func (wp *WorkerPool[T, G]) NumWorkers() int {
	return wp.numWorkers
}

// Run. stops handing out jobs once ctx is done and returns its error.
func (wp *WorkerPool[T, G]) Run(ctx context.Context, jobs []T) ([]G, error) {
	results := make([]G, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = wp.jobFunc(job)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
