// Package batch fetches many identifiers with bounded concurrency and
// staggered starts. All requests against one provider share its rate
// limiting, so windows run sequentially and requests within a window start
// 150ms apart rather than simultaneously.
package batch

import (
	"context"
	"sync"
	"time"
)

const (
	// windowSize is the number of identifiers fetched concurrently.
	windowSize = 3

	// stagger is the per-position start delay within a window.
	stagger = 150 * time.Millisecond
)

// FetchAll fetches every identifier in ids using fetch, windowSize at a time.
// Individual failures are dropped silently at this layer; the caller decides
// whether a missing item is a problem. Result order follows window grouping
// but is otherwise unspecified.
func FetchAll[ID any, T any](ctx context.Context, ids []ID, fetch func(context.Context, ID) (T, error)) []T {
	return fetchAll(ctx, ids, fetch, windowSize, stagger)
}

func fetchAll[ID any, T any](ctx context.Context, ids []ID, fetch func(context.Context, ID) (T, error), window int, delay time.Duration) []T {
	results := make([]T, 0, len(ids))

	for start := 0; start < len(ids); start += window {
		end := start + window
		if end > len(ids) {
			end = len(ids)
		}

		var (
			mu sync.Mutex
			wg sync.WaitGroup
		)
		for i, id := range ids[start:end] {
			wg.Add(1)
			go func(pos int, id ID) {
				defer wg.Done()

				if pos > 0 {
					select {
					case <-time.After(time.Duration(pos) * delay):
					case <-ctx.Done():
						return
					}
				}

				value, err := fetch(ctx, id)
				if err != nil {
					return
				}
				mu.Lock()
				results = append(results, value)
				mu.Unlock()
			}(i, id)
		}
		wg.Wait()

		if ctx.Err() != nil {
			break
		}
	}

	return results
}
