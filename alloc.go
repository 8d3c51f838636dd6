package djcifex

import "sync"

// Allocator abstracts pixel-buffer allocation: two operations, allocate and
// release. A garbage-collected language has no real use for a libc-style
// allocator, but the interface is kept so that callers decoding many images
// back-to-back can supply a pooled implementation and avoid repeatedly
// growing the garbage collector's working set — the direct analog of the
// original C library's swappable cifex_allocator_t (see
// original_source's alloc.c).
type Allocator interface {
	// Allocate returns a zero-filled buffer of exactly size bytes.
	Allocate(size int) []byte
	// Release returns a buffer previously obtained from Allocate. Callers
	// must not use buf after calling Release.
	Release(buf []byte)
}

// GCAllocator is the default Allocator: Allocate makes a fresh slice and
// Release is a no-op, leaving reclamation to the garbage collector. It is
// the Go equivalent of cifex_libc_allocator.
type GCAllocator struct{}

// Allocate returns make([]byte, size).
func (GCAllocator) Allocate(size int) []byte { return make([]byte, size) }

// Release does nothing; the garbage collector reclaims buf once
// unreferenced.
func (GCAllocator) Release([]byte) {}

// defaultAllocator is used whenever a caller does not supply one.
var defaultAllocator Allocator = GCAllocator{}

// PooledAllocator recycles same-sized buffers through a sync.Pool, useful
// for a server decoding a steady stream of CIF images of similar
// dimensions. It is safe for concurrent use by multiple goroutines, unlike
// the Image/ImageInfo/Reader/Writer values it helps allocate.
type PooledAllocator struct {
	pool sync.Pool
}

// NewPooledAllocator creates a ready-to-use PooledAllocator.
func NewPooledAllocator() *PooledAllocator {
	return &PooledAllocator{}
}

// Allocate returns a zero-filled buffer of exactly size bytes, reusing a
// pooled buffer when one of sufficient capacity is available.
func (p *PooledAllocator) Allocate(size int) []byte {
	if v := p.pool.Get(); v != nil {
		buf := v.([]byte)
		if cap(buf) >= size {
			buf = buf[:size]
			for i := range buf {
				buf[i] = 0
			}
			return buf
		}
		// Too small to reuse; let the GC reclaim it.
	}
	return make([]byte, size)
}

// Release returns buf to the pool for reuse by a future Allocate call.
func (p *PooledAllocator) Release(buf []byte) {
	if buf == nil {
		return
	}
	p.pool.Put(buf)
}
