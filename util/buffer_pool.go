package util

import (
	"strconv"
	"sync"
	"sync/atomic"
)

// SampleAllocator hands out irradiance sample buffers. Every buffer obtained
// from Alloc is passed to Free at most once by its owner.
type SampleAllocator interface {
	Alloc(n int) []float32
	Free(buf []float32)
}

// HeapAllocator allocates with make and leaves reclamation to the GC.
type HeapAllocator struct{}

func (HeapAllocator) Alloc(n int) []float32 {
	return make([]float32, n)
}

func (HeapAllocator) Free(buf []float32) {}

// SamplePool provides pooling for flat sample buffers to reduce allocations
// when frames of the same size are created repeatedly.
type SamplePool struct {
	pools map[string]*sync.Pool
	mu    sync.RWMutex

	// Metrics
	hits   atomic.Int64
	misses atomic.Int64
	frees  atomic.Int64
}

func NewSamplePool() *SamplePool {
	return &SamplePool{pools: make(map[string]*sync.Pool)}
}

// getPoolKey generates a key for the pool map
func getPoolKey(n int) string {
	return strconv.Itoa(n)
}

// Alloc retrieves a buffer from the pool or creates a new one
func (p *SamplePool) Alloc(n int) []float32 {
	if n == 0 {
		return make([]float32, 0)
	}

	key := getPoolKey(n)

	// Fast path: read lock
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		if buf := pool.Get(); buf != nil {
			p.hits.Add(1)
			return *(buf.(*[]float32))
		}
	} else {
		// Slow path: create new pool
		p.mu.Lock()
		// Double-check after acquiring write lock
		if _, exists = p.pools[key]; !exists {
			p.pools[key] = &sync.Pool{}
		}
		p.mu.Unlock()
	}

	p.misses.Add(1)
	return make([]float32, n)
}

// Free returns a buffer to the pool after clearing it
func (p *SamplePool) Free(buf []float32) {
	if len(buf) == 0 {
		return
	}

	key := getPoolKey(len(buf))

	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		clear(buf)
		p.frees.Add(1)
		pool.Put(&buf)
	}
}

// GetMetrics returns pool usage statistics
func (p *SamplePool) GetMetrics() (hits, misses, frees int64) {
	return p.hits.Load(), p.misses.Load(), p.frees.Load()
}
