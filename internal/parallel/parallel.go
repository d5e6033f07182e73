// Package parallel fans batch work out over the available cores.
package parallel

import (
	"runtime"
	"sync"
)

// For runs f(i) for every i in [0, n). When serial is set, or the batch
// is too small for the fan-out to pay off, everything runs on the calling
// goroutine.
func For(n int, serial bool, f func(i int)) {
	workers := runtime.NumCPU()
	if serial || n <= 1 || workers <= 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
