package planner

import (
	"runtime"
	"sync"
)

// workerCount resolves a requested worker count, defaulting to
// runtime.NumCPU() for n <= 0.
func workerCount(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

type indexedJob[T any] struct {
	index int
	input T
}

type indexedResult[R any] struct {
	index int
	value R
	err   error
}

// ExecuteParallel applies operation to every element of inputs across n
// workers (n <= 0 defaults to runtime.NumCPU()) and returns the results in
// input order. If any operation returns an error, the first one encountered
// in input order is returned; every in-flight operation still runs to
// completion first.
func ExecuteParallel[T, R any](n int, inputs []T, operation func(T) (R, error)) ([]R, error) {
	workers := workerCount(n)
	if workers > len(inputs) {
		workers = len(inputs)
	}
	if workers == 0 {
		return nil, nil
	}

	jobs := make(chan indexedJob[T], len(inputs))
	results := make(chan indexedResult[R], len(inputs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				v, err := operation(j.input)
				results <- indexedResult[R]{index: j.index, value: v, err: err}
			}
		}()
	}

	for i, in := range inputs {
		jobs <- indexedJob[T]{index: i, input: in}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]R, len(inputs))
	var firstErr error
	firstErrIndex := -1
	for res := range results {
		if res.err != nil && (firstErrIndex < 0 || res.index < firstErrIndex) {
			firstErr = res.err
			firstErrIndex = res.index
		}
		out[res.index] = res.value
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
