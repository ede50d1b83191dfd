package allocator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocator_Next(t *testing.T) {
	a := New(1, 3)

	for _, expected := range []int{1, 2, 3} {
		n, ok := a.Next()
		require.True(t, ok)
		assert.Equal(t, expected, n)
	}

	_, ok := a.Next()
	assert.False(t, ok, "range should be exhausted")
	assert.Equal(t, 3, a.Len())
}

func TestAllocator_Release(t *testing.T) {
	tt := []struct {
		Name     string
		Release  int
		Expected bool
	}{
		{"Allocated", 2, true},
		{"NeverAllocated", 5, false},
		{"OutOfRange", 0, false},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			a := New(1, 3)
			_, _ = a.Next()
			_, _ = a.Next()
			assert.Equal(t, tc.Expected, a.Release(tc.Release))
		})
	}
}

func TestAllocator_ReusesLowestFree(t *testing.T) {
	a := New(1, 10)
	for i := 0; i < 5; i++ {
		_, _ = a.Next()
	}

	require.True(t, a.Release(2))
	require.True(t, a.Release(4))

	n, ok := a.Next()
	require.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = a.Next()
	require.True(t, ok)
	assert.Equal(t, 4, n)

	n, ok = a.Next()
	require.True(t, ok)
	assert.Equal(t, 6, n)
}

func TestAllocator_Concurrent(t *testing.T) {
	a := New(1, 100)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int]bool)
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, ok := a.Next()
			if !ok {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			assert.False(t, seen[n], "duplicate allocation %d", n)
			seen[n] = true
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 100)
}
