package discovery

import "sync"

// outcome is one fan-out item's result. Degraded items carry err; the
// caller decides what degradation means, the group never drops an item.
type outcome[T any] struct {
	value T
	err   error
}

// fanOut runs task for indexes 0..n-1 concurrently and collects every
// outcome in input order. A failed task cannot abort its siblings; the
// caller inspects each outcome individually.
func fanOut[T any](n int, task func(i int) (T, error)) []outcome[T] {
	outcomes := make([]outcome[T], n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, err := task(i)
			outcomes[i] = outcome[T]{value: value, err: err}
		}(i)
	}
	wg.Wait()
	return outcomes
}
