package buffer

import (
	"sync"
	"testing"
)

func TestNewPool(t *testing.T) {
	pool := NewPool(0)
	if pool == nil {
		t.Fatal("NewPool() returned nil")
	}
	if pool.capacity != DefaultCapacity {
		t.Errorf("default capacity = %d, want %d", pool.capacity, DefaultCapacity)
	}
}

func TestNewPoolWithCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
	}{
		{"small", 64},
		{"medium", 256},
		{"large", 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(tt.capacity)
			b := pool.Get()
			if len(b) != 0 {
				t.Errorf("Get() returned non-empty buffer, len = %d", len(b))
			}
			if cap(b) < tt.capacity {
				t.Errorf("Get() cap = %d, want >= %d", cap(b), tt.capacity)
			}
			pool.Put(b)
		})
	}
}

func TestGetReturnsCleanBuffer(t *testing.T) {
	pool := NewPool(64)
	b := pool.Get()
	b = append(b, "leftover"...)
	pool.Put(b)

	b2 := pool.Get()
	if len(b2) != 0 {
		t.Errorf("recycled buffer not reset, len = %d", len(b2))
	}
}

func TestPutDropsOversizedBuffers(t *testing.T) {
	pool := NewPool(64)
	huge := make([]byte, 0, 64*64)
	// Must not panic; an oversized buffer is simply not retained.
	pool.Put(huge)
}

func TestConcurrentGetPut(t *testing.T) {
	pool := NewPool(128)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				b := pool.Get()
				b = append(b, byte(i))
				pool.Put(b)
			}
		}()
	}
	wg.Wait()
}
