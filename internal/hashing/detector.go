package hashing

import (
	"sync"
)

// DuplicateDetector counts how often each position hash has been seen.
type DuplicateDetector struct {
	seen           map[uint64]int
	duplicateCount int
}

// NewDuplicateDetector creates an empty detector.
func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{seen: make(map[uint64]int)}
}

// CheckAndAddHash records a position hash and reports whether it had
// already been seen.
func (d *DuplicateDetector) CheckAndAddHash(h uint64) bool {
	d.seen[h]++
	if d.seen[h] > 1 {
		d.duplicateCount++
		return true
	}
	return false
}

// DuplicateCount returns the number of repeated positions added.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of distinct positions added.
func (d *DuplicateDetector) UniqueCount() int {
	return len(d.seen)
}

// ThreadSafeDuplicateDetector wraps DuplicateDetector with a mutex for use
// from several workers.
type ThreadSafeDuplicateDetector struct {
	detector *DuplicateDetector
	mu       sync.RWMutex
}

// NewThreadSafeDuplicateDetector creates an empty thread-safe detector.
func NewThreadSafeDuplicateDetector() *ThreadSafeDuplicateDetector {
	return &ThreadSafeDuplicateDetector{detector: NewDuplicateDetector()}
}

// CheckAndAddHash atomically records h and reports whether it was seen before.
func (d *ThreadSafeDuplicateDetector) CheckAndAddHash(h uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detector.CheckAndAddHash(h)
}

// DuplicateCount returns the number of repeated positions added.
func (d *ThreadSafeDuplicateDetector) DuplicateCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.DuplicateCount()
}

// UniqueCount returns the number of distinct positions added.
func (d *ThreadSafeDuplicateDetector) UniqueCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.UniqueCount()
}
