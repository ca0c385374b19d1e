// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package arena provides the memory-arena abstraction Block construction
// accepts but does not assume a concrete allocator.
package arena

import "sync"

// Allocator obtains and releases the byte slices backing Block payloads.
//
// Get must return a slice of length size (capacity may exceed size).
// Put returns a previously obtained slice for reuse; callers must not
// retain the slice after calling Put.
type Allocator interface {
	Get(size int) []byte
	Put(buf []byte)
}

// Pooled is a sync.Pool-backed Allocator bucketed by rounded-up size class.
// It is the default arena used when callers do not supply their own.
type Pooled struct {
	pools sync.Map // map[int]*sync.Pool, keyed by size class
}

// NewPooled returns a ready-to-use pooled allocator.
func NewPooled() *Pooled { return &Pooled{} }

func classFor(size int) int {
	// Round up to the next power of two, minimum 64 bytes, to keep the
	// number of distinct pools small and bounded.
	const min = 64
	if size <= min {
		return min
	}
	c := min
	for c < size {
		c <<= 1
	}
	return c
}

func (a *Pooled) poolFor(class int) *sync.Pool {
	if p, ok := a.pools.Load(class); ok {
		return p.(*sync.Pool)
	}
	p := &sync.Pool{New: func() any {
		b := make([]byte, class)
		return &b
	}}
	actual, _ := a.pools.LoadOrStore(class, p)
	return actual.(*sync.Pool)
}

// Get returns a slice of exactly size bytes drawn from the pool for
// size's class. For size <= 0 it returns nil.
func (a *Pooled) Get(size int) []byte {
	if size <= 0 {
		return nil
	}
	class := classFor(size)
	p := a.poolFor(class)
	bp := p.Get().(*[]byte)
	buf := *bp
	if cap(buf) < size {
		buf = make([]byte, size)
	}
	return buf[:size]
}

// Put returns buf to the pool matching its capacity's class.
func (a *Pooled) Put(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	class := classFor(cap(buf))
	p := a.poolFor(class)
	b := buf[:cap(buf)]
	p.Put(&b)
}

// Default is the package-level Pooled allocator used when a caller does
// not provide one explicitly.
var Default = NewPooled()
