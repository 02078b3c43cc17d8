package testcommon

import (
	"sync"
	"testing"
	"unsafe"
)

// TrackingAllocator records every buffer it hands out and fails the test if
// one is freed twice or was never allocated by it.
type TrackingAllocator struct {
	T *testing.T

	mu     sync.Mutex
	live   map[*float32]int
	Allocs int
	Frees  int
}

func NewTrackingAllocator(t *testing.T) *TrackingAllocator {
	return &TrackingAllocator{T: t, live: make(map[*float32]int)}
}

func (a *TrackingAllocator) Alloc(n int) []float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	buf := make([]float32, n)
	a.Allocs++
	if n > 0 {
		a.live[unsafe.SliceData(buf)] = n
	}
	return buf
}

func (a *TrackingAllocator) Free(buf []float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Frees++
	if len(buf) == 0 {
		return
	}
	key := unsafe.SliceData(buf)
	if _, ok := a.live[key]; !ok {
		a.T.Errorf("free of buffer not live (double free or foreign buffer), len %d", len(buf))
		return
	}
	delete(a.live, key)
}

// Live returns the number of buffers allocated and not yet freed.
func (a *TrackingAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// ShortAllocator hands out buffers one sample shorter than asked for after
// FailAfter successful allocations.
type ShortAllocator struct {
	FailAfter int
	calls     int
	Frees     int
}

func (a *ShortAllocator) Alloc(n int) []float32 {
	a.calls++
	if a.calls > a.FailAfter && n > 0 {
		return make([]float32, n-1)
	}
	return make([]float32, n)
}

func (a *ShortAllocator) Free(buf []float32) {
	a.Frees++
}

// Ramp fills buf with start, start+step, start+2*step...
func Ramp(buf []float32, start float32, step float32) {
	for i := range buf {
		buf[i] = start + float32(i)*step
	}
}
