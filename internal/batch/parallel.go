// Package batch runs independent per-file jobs on a pool of workers and
// hands results back in submission order.
package batch

import (
	"context"
	"runtime"
	"sync"
)

// WorkItem holds one job input.
type WorkItem[T any] struct {
	Seq   int
	Input T
}

// WorkResult holds the output for a single job.
type WorkResult[T, R any] struct {
	Seq    int
	Input  T
	Output R
	Err    error
}

// Parallel runs fn over items using a pool of workers.
// Results are sent to the returned channel in arrival order (not sequence order).
// Use OrderedCollect to consume results in sequence-number order.
// If workers is 0, runtime.NumCPU() is used. Items received after ctx is
// cancelled are reported with ctx.Err() instead of being run.
func Parallel[T, R any](ctx context.Context, items <-chan WorkItem[T], workers int, fn func(context.Context, T) (R, error)) <-chan WorkResult[T, R] {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult[T, R], 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for item := range items {
				res := WorkResult[T, R]{Seq: item.Seq, Input: item.Input}
				if err := ctx.Err(); err != nil {
					res.Err = err
				} else {
					res.Output, res.Err = fn(ctx, item.Input)
				}
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// Items returns a closed, buffered channel holding inputs in order.
func Items[T any](inputs []T) <-chan WorkItem[T] {
	ch := make(chan WorkItem[T], len(inputs))
	for i, in := range inputs {
		ch <- WorkItem[T]{Seq: i, Input: in}
	}
	close(ch)
	return ch
}

// OrderedCollect calls fn for each result in sequence-number order.
// It buffers out-of-order results in a pending map and emits them
// as soon as the next expected sequence number is available.
// Blocks until the results channel is closed.
func OrderedCollect[T, R any](results <-chan WorkResult[T, R], fn func(WorkResult[T, R]) error) error {
	pending := make(map[int]WorkResult[T, R])
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
