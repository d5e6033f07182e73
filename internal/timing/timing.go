// Package timing accumulates wall-clock totals per activation entry
// point. Purely diagnostic; it never affects results.
package timing

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

type record struct {
	calls int64
	total time.Duration
}

var (
	mu      sync.Mutex
	records = make(map[string]*record)
)

// Scope starts a named timer and returns the stop function:
//
//	defer timing.Scope("crbm.activate_hidden")()
func Scope(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		r := records[name]
		if r == nil {
			r = &record{}
			records[name] = r
		}
		r.calls++
		r.total += d
		mu.Unlock()
	}
}

// Report writes one CSV record per scope: name, calls, total, mean.
func Report(w io.Writer) error {
	mu.Lock()
	defer mu.Unlock()

	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r := records[name]
		mean := time.Duration(0)
		if r.calls > 0 {
			mean = r.total / time.Duration(r.calls)
		}
		if _, err := fmt.Fprintf(w, "%s,%d,%v,%v\n", name, r.calls, r.total, mean); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops everything accumulated so far.
func Reset() {
	mu.Lock()
	records = make(map[string]*record)
	mu.Unlock()
}
