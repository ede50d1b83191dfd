// Package allocator hands out channel numbers for a connection.
package allocator

import "sync"

// Allocator allocates integers from the inclusive range [low, high],
// always returning the lowest free value.
type Allocator struct {
	mu        sync.Mutex
	low, high int
	used      map[int]struct{}
}

// New creates an allocator over [low, high].
func New(low, high int) *Allocator {
	return &Allocator{low: low, high: high, used: make(map[int]struct{})}
}

// Next reserves and returns the lowest free value. ok is false when the
// range is exhausted.
func (a *Allocator) Next() (n int, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := a.low; i <= a.high; i++ {
		if _, taken := a.used[i]; !taken {
			a.used[i] = struct{}{}
			return i, true
		}
	}
	return 0, false
}

// Release returns n to the pool. It reports false if n was not allocated.
func (a *Allocator) Release(n int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, taken := a.used[n]; !taken {
		return false
	}
	delete(a.used, n)
	return true
}

// Len returns the number of allocated values.
func (a *Allocator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.used)
}
