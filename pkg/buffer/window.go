package buffer

import (
	"sync"
)

// Window is a thread-safe bounded FIFO sample window.
// Once full, adding a new item evicts the oldest one. Items are kept in
// arrival order, which is what short-term charting wants.
type Window[T any] struct {
	mu       sync.RWMutex
	data     []T
	capacity int
	size     int
	head     int
}

// New creates a Window with the specified capacity.
func New[T any](capacity int) *Window[T] {
	return &Window[T]{
		data:     make([]T, capacity),
		capacity: capacity,
	}
}

// Add inserts a new item, evicting the oldest when the window is full.
func (w *Window[T]) Add(item T) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.data[w.head] = item
	w.head = (w.head + 1) % w.capacity

	if w.size < w.capacity {
		w.size++
	}
}

// Items returns a copy of the window contents in arrival order, oldest first.
func (w *Window[T]) Items() []T {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.size == 0 {
		return nil
	}

	results := make([]T, w.size)
	if w.size < w.capacity {
		copy(results, w.data[:w.size])
	} else {
		// full window: oldest sits at head, newest at head-1
		tail := w.head
		for i := 0; i < w.size; i++ {
			idx := (tail + i) % w.capacity
			results[i] = w.data[idx]
		}
	}
	return results
}

// Len returns the current number of items in the window.
func (w *Window[T]) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.size
}

// Cap returns the maximum capacity of the window.
func (w *Window[T]) Cap() int {
	return w.capacity
}
