package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerError wraps a failure raised by one concurrent unit of work. The
// original error can be accessed via errors.Unwrap.
type WorkerError struct {
	Index int
	cause error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker failed on index %d: %v", e.Index, e.cause)
}

func (e *WorkerError) Unwrap() error { return e.cause }

// Map applies fn to every index in [0, n) using at most workers
// goroutines. If workers <= 0, runtime.GOMAXPROCS(0) is used.
//
// fn is responsible for writing its result into an index-addressed slot
// owned by the caller; Map itself carries no results, which is what makes
// the merged output independent of scheduling.
//
// The first error cancels the remaining work and is returned as a
// *WorkerError (context cancellation is returned as-is). On error the
// caller must treat the whole phase as failed; slots written by other
// workers are not rolled back.
func Map(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		// Stop spawning once a worker failed or the caller cancelled.
		// gctx is also cancelled when Wait returns, so completion status
		// is judged against the caller's ctx below, never against gctx.
		select {
		case <-gctx.Done():
			if err := g.Wait(); err != nil {
				return err
			}
			return ctx.Err()
		default:
		}

		g.Go(func() error {
			// A worker may be scheduled after cancellation; skip the work
			// instead of running it. Wait keeps the first real error.
			if err := gctx.Err(); err != nil {
				return err
			}

			if err := fn(gctx, i); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				return &WorkerError{Index: i, cause: err}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}
