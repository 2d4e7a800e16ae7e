// Package mempool implements the size-classed allocator (spec §4.7): one
// free list per item size, growing its backing blocks by a constant factor
// up to a per-batch cap, with an optional clear-on-release mode that zeroes
// memory as it is returned to the pool.
//
// Grounded on SEAL's MemoryPoolHeadMT/MemoryPoolHeadST and MemoryPoolMT/ST
// (original_source/native/src/seal/util/mempool.cpp): same size-class
// lookup, same block growth rule, same multi-threaded/single-threaded split
// and clear-on-destruction contract, expressed with sync.Mutex/RWMutex
// instead of the spin lock and reader/writer lock SEAL hand-rolls in C++
// (the teacher's own Go code reaches for sync.RWMutex wherever the original
// C++ used a hand-rolled lock, see ring/galois.go's permutation cache).
package mempool

import (
	"sync"
	"sync/atomic"

	"github.com/latticecore/engine/cryptoerr"
)

const (
	firstBlockItemCount = 16
	growthFactor        = 1.2
	maxBlockItemCount    = 1 << 16
	maxItemSize          = 1 << 20
)

// Pool is a collection of size classes, each a growable set of blocks
// divided into equally sized items. Safe for concurrent use when built with
// New; a pool built with NewSingleThreaded performs no internal locking and
// must not be shared across goroutines.
type Pool struct {
	threadSafe  bool
	clearOnFree bool

	classesMu sync.RWMutex
	classes   map[int]*sizeClass

	refCount int64
	tornMu   sync.Mutex
	torn     bool
}

// sizeClass owns every block for one item size and the free list of
// released items.
type sizeClass struct {
	mu       sync.Mutex
	owner    *Pool
	itemSize int
	blocks   [][]uint64
	lastSize int
	free     [][]uint64
}

// New builds a thread-safe pool: a per-size-class mutex guards each class's
// free list and block chain, and an RWMutex guards the class index itself
// (read-locked on lookup, write-locked only when a new size class is first
// created), matching MemoryPoolMT's reader/writer split.
func New(clearOnFree bool) *Pool {
	return &Pool{threadSafe: true, clearOnFree: clearOnFree, classes: make(map[int]*sizeClass)}
}

// NewSingleThreaded builds a pool with no internal synchronization,
// matching MemoryPoolST: cheaper when the caller already guarantees
// single-goroutine access.
func NewSingleThreaded(clearOnFree bool) *Pool {
	return &Pool{threadSafe: false, clearOnFree: clearOnFree, classes: make(map[int]*sizeClass)}
}

// Handle is a reference-counted lease on one pool item. Release returns the
// item to its size class's free list, clearing it first if the owning pool
// was built with clearOnFree.
type Handle struct {
	pool     *Pool
	class    *sizeClass
	Buf      []uint64
	released bool
}

// Get leases an item of itemSize uint64 words from the pool, growing or
// creating the size class as needed.
func (p *Pool) Get(itemSize int) (*Handle, *cryptoerr.Error) {
	if itemSize <= 0 || itemSize > maxItemSize {
		return nil, cryptoerr.Argument("mempool: invalid item size %d", itemSize)
	}

	c := p.classFor(itemSize)

	var buf []uint64
	if p.threadSafe {
		c.mu.Lock()
		buf = c.acquireLocked()
		c.mu.Unlock()
	} else {
		buf = c.acquireLocked()
	}

	atomic.AddInt64(&p.refCount, 1)
	return &Handle{pool: p, class: c, Buf: buf}, nil
}

// classFor returns (creating if necessary) the size class for itemSize.
func (p *Pool) classFor(itemSize int) *sizeClass {
	if p.threadSafe {
		p.classesMu.RLock()
		c, ok := p.classes[itemSize]
		p.classesMu.RUnlock()
		if ok {
			return c
		}
		p.classesMu.Lock()
		defer p.classesMu.Unlock()
		if c, ok = p.classes[itemSize]; ok {
			return c
		}
		c = &sizeClass{owner: p, itemSize: itemSize}
		p.classes[itemSize] = c
		return c
	}

	c, ok := p.classes[itemSize]
	if !ok {
		c = &sizeClass{owner: p, itemSize: itemSize}
		p.classes[itemSize] = c
	}
	return c
}

// acquireLocked pops a free item, growing the block chain first if the free
// list is empty. Caller holds c.mu (or the pool is single-threaded). An
// item popped from the free list is handed back as-is: it is zeroed only if
// the owning pool clears on release, matching the teacher's contract that a
// freshly obtained item carries no implicit zero-initialization guarantee.
func (c *sizeClass) acquireLocked() []uint64 {
	if n := len(c.free); n > 0 {
		buf := c.free[n-1]
		c.free = c.free[:n-1]
		return buf
	}

	size := firstBlockItemCount
	if c.lastSize > 0 {
		grown := int(float64(c.lastSize) * growthFactor)
		if grown > maxBlockItemCount {
			grown = c.lastSize
		}
		if grown < 1 {
			grown = c.lastSize
		}
		size = grown
	}
	c.lastSize = size

	block := make([]uint64, size*c.itemSize)
	c.blocks = append(c.blocks, block)

	for i := 1; i < size; i++ {
		c.free = append(c.free, block[i*c.itemSize:(i+1)*c.itemSize])
	}
	return block[0:c.itemSize]
}

// Release returns h's item to its size class's free list. Releasing an
// already-released handle is a no-op. Releasing a handle against the wrong
// pool (one that did not issue it) panics: cross-pool release is always a
// caller bug, not a recoverable condition.
func (h *Handle) Release() {
	if h.released {
		return
	}
	if h.class.owner != h.pool {
		panic("mempool: handle released against a pool that did not issue it")
	}
	h.released = true

	if h.pool.clearOnFree {
		for i := range h.Buf {
			h.Buf[i] = 0
		}
	}

	if h.pool.threadSafe {
		h.class.mu.Lock()
		h.class.free = append(h.class.free, h.Buf)
		h.class.mu.Unlock()
	} else {
		h.class.free = append(h.class.free, h.Buf)
	}

	if atomic.AddInt64(&h.pool.refCount, -1) == 0 {
		h.pool.maybeTeardown()
	}
}

// maybeTeardown clears every block across every size class once the pool's
// last outstanding handle has been released, if the pool was built with
// clearOnFree. A pool may still be used after this point (a fresh Get call
// simply starts a new generation of blocks); this only guarantees that no
// byte of a previously leased item survives unzeroed once nothing
// references it.
func (p *Pool) maybeTeardown() {
	if !p.clearOnFree {
		return
	}
	p.tornMu.Lock()
	defer p.tornMu.Unlock()

	if p.threadSafe {
		p.classesMu.RLock()
		defer p.classesMu.RUnlock()
	}
	for _, c := range p.classes {
		if p.threadSafe {
			c.mu.Lock()
		}
		for _, block := range c.blocks {
			zeroVolatile(block)
		}
		if p.threadSafe {
			c.mu.Unlock()
		}
	}
}

// zeroVolatile clears buf a word at a time. The loop form (rather than a
// single clear idiom) mirrors the original's volatile byte-at-a-time write,
// so the zeroing cannot be optimized away even though Go's compiler is, in
// practice, not known to elide it.
func zeroVolatile(buf []uint64) {
	for i := range buf {
		buf[i] = 0
	}
}

// AllocItemCount returns the total number of items currently backing every
// size class (free and leased), for diagnostics and tests.
func (p *Pool) AllocItemCount() int {
	if p.threadSafe {
		p.classesMu.RLock()
		defer p.classesMu.RUnlock()
	}
	total := 0
	for _, c := range p.classes {
		if p.threadSafe {
			c.mu.Lock()
		}
		for _, b := range c.blocks {
			total += len(b) / c.itemSize
		}
		if p.threadSafe {
			c.mu.Unlock()
		}
	}
	return total
}
