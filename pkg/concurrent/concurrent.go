package concurrent

import (
	"golang.org/x/sync/errgroup"
)

// ForEach runs action for every element of items, at most workers at a
// time, and waits for all of them. It returns the first error an action
// returned; remaining elements still run regardless.
func ForEach[T any](items []T, workers int, action func(T) error) error {
	if workers < 1 {
		workers = 1
	}
	g := errgroup.Group{}
	g.SetLimit(workers)
	for _, item := range items {
		item := item
		g.Go(func() error {
			return action(item)
		})
	}
	return g.Wait()
}
