// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"github.com/cznic/malloc/errs"
	"github.com/cznic/malloc/heap"
)

// Allocator manages a single heap.Provider's region as a segregated
// free-list heap. The zero value is not usable; construct one with New.
type Allocator struct {
	heap heap.Provider

	nAllocs   int64
	nFrees    int64
	nGrows    int64
	bytesLive int64
}

// Config tunes the heap an Allocator starts with.
type Config struct {
	// InitialExtend is how many usable bytes (beyond the prelude) New
	// reserves up front. Zero selects a 512-byte default, matching the
	// first extend_heap call of the allocator this package is modeled
	// on.
	InitialExtend int64
}

// New wraps p in an Allocator, writing the heap prelude (free-list roots,
// prologue, epilogue) and an initial free block. p must be freshly
// constructed (High() == 0); New does not attempt to parse an existing
// heap image.
func New(p heap.Provider) (*Allocator, error) {
	return NewConfig(p, Config{})
}

// NewConfig is New with explicit tuning.
func NewConfig(p heap.Provider, cfg Config) (*Allocator, error) {
	if cfg.InitialExtend <= 0 {
		cfg.InitialExtend = defaultInitialExtend
	}

	a := &Allocator{heap: p}
	if err := a.init(cfg.InitialExtend); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Allocator) init(initialExtend int64) error {
	old := a.heap.Extend(preludeBytes)
	if old == heap.Sentinel {
		return &errs.ErrINVAL{Msg: "malloc: failed to reserve heap prelude", Arg: preludeBytes}
	}
	if old != 0 {
		return &errs.ErrPERM{Msg: "malloc: heap provider must start empty"}
	}

	for class := 0; class < numClasses; class++ {
		a.setRootHead(class, NullPtr)
	}
	a.putWord(prologueHeaderOffset, pack(dsize, 1))
	a.putWord(prologueFooterOffset, pack(dsize, 1))
	a.putWord(epilogueHeaderOffset, pack(0, 3))

	bp := a.extendHeap(initialExtend)
	if bp == NullPtr {
		return &errs.ErrINVAL{Msg: "malloc: failed initial heap extension", Arg: initialExtend}
	}
	a.insertFree(bp, a.blockSize(bp))
	return nil
}

// extendHeap grows the underlying provider by enough bytes to add one new
// free block of at least minBytes total size, and returns that block's
// payload pointer, or NullPtr if the provider refused to grow.
//
// The new block's header reuses the heap's current epilogue slot (the
// last committed word) rather than claiming a fresh word of its own: the
// provider is only grown by exactly the new block's total size, with a
// fresh epilogue header written as the new last word. This mirrors how a
// brk-based allocator's epilogue sentinel is perpetually "about to be
// overwritten" by the next extension.
func (a *Allocator) extendHeap(minBytes int64) Ptr {
	size := align16(minBytes)
	if size < minBlockSize {
		size = minBlockSize
	}

	old := a.heap.Extend(size)
	if old == heap.Sentinel {
		return NullPtr
	}
	a.nGrows++

	bp := Ptr(old)
	a.putWord(a.header(bp), pack(size, 0))
	a.writeLink(bp, NullPtr)
	a.writeLink(bp+wordSize, NullPtr)
	a.putWord(a.footer(bp), pack(size, 0))
	a.putWord(a.header(a.nextBlock(bp)), pack(0, 3))
	return bp
}

// findFit returns a free block of at least need total bytes, scanning
// size classes from the smallest that could hold need upward, and within
// a class scanning its list front to back (first fit, not best fit: the
// "sorted-ish" list only approximates smallest-first). Returns NullPtr if
// no block large enough exists anywhere.
func (a *Allocator) findFit(need int64) Ptr {
	for class := pickClass(need); class < numClasses; class++ {
		for bp := a.rootHead(class); bp != NullPtr; bp = a.readLink(bp + wordSize) {
			if a.blockSize(bp) >= need {
				return bp
			}
		}
	}
	return NullPtr
}

// allocateBlock marks the free block at bp (of known total size) as
// allocated, sized to hold payloadSize bytes, splitting off and
// re-inserting a remainder block when one large enough to be useful would
// be left over. bp must currently be filed in its free list.
func (a *Allocator) allocateBlock(bp Ptr, payloadSize int64) {
	total := a.blockSize(bp)
	need := payloadSize + dsize
	remainder := total - need

	a.unlinkFree(bp)

	if remainder < minBlockSize {
		a.putWord(a.header(bp), pack(total, 1))
		a.putWord(a.footer(bp), pack(total, 1))
		return
	}

	a.putWord(a.header(bp), pack(need, 1))
	a.putWord(a.footer(bp), pack(need, 1))

	rem := bp + Ptr(need)
	a.putWord(a.header(rem), pack(remainder, 0))
	a.putWord(a.footer(rem), pack(remainder, 0))
	a.writeLink(rem, NullPtr)
	a.writeLink(rem+wordSize, NullPtr)

	merged := a.coalesce(rem)
	a.insertFree(merged, a.blockSize(merged))
}

// Allocate reserves a block able to hold size bytes of payload and
// returns its payload pointer, or NullPtr if size is non-positive or the
// heap cannot be grown to satisfy the request.
func (a *Allocator) Allocate(size int64) Ptr {
	if size <= 0 {
		return NullPtr
	}

	r := align16(size)
	need := r + dsize

	if bp := a.findFit(need); bp != NullPtr {
		a.allocateBlock(bp, r)
		a.nAllocs++
		a.bytesLive += a.blockSize(bp)
		return bp
	}

	bp := a.extendHeap(need)
	if bp == NullPtr {
		return NullPtr
	}
	total := a.blockSize(bp)
	a.putWord(a.header(bp), pack(total, 1))
	a.putWord(a.footer(bp), pack(total, 1))
	a.nAllocs++
	a.bytesLive += total
	return bp
}

// Calloc is Allocate(nmemb*size) with the payload zeroed.
func (a *Allocator) Calloc(nmemb, size int64) Ptr {
	total := nmemb * size
	bp := a.Allocate(total)
	if bp != NullPtr {
		a.heap.MemSet(int64(bp), 0, total)
	}
	return bp
}

// Free releases the block at p. Freeing NullPtr, or a block that is
// already free, is a silent no-op.
//
// Free unconditionally sets the prev_alloc bit of the following block's
// header to 1, regardless of whether this block's own alloc bit is
// actually about to become 0. That following block's prev_alloc bit is
// therefore wrong from the instant this call returns until something else
// corrects it; nothing in this package ever does. This is a preserved
// property, not a bug to fix — prev_alloc is never consulted as ground
// truth by anything this package does per-block (only the header/footer
// alloc bit of a block's own header is authoritative for that block, and
// coalesce reads the previous block's footer directly rather than trusting
// this bit), so the staleness is inert in practice; Verify ignores it too,
// but it is directly observable in the next block's header word.
func (a *Allocator) Free(p Ptr) {
	if p == NullPtr {
		return
	}

	h := a.header(p)
	w := a.word(h)
	if !isAlloc(w) {
		return
	}

	size := sizeOf(w)
	a.bytesLive -= size
	a.nFrees++

	a.putWord(h, pack(size, 0))
	a.putWord(a.footer(p), pack(size, 0))
	a.setPrevAllocBit(a.header(a.nextBlock(p)))
	a.writeLink(p, NullPtr)
	a.writeLink(p+wordSize, NullPtr)

	merged := a.coalesce(p)
	a.insertFree(merged, a.blockSize(merged))
}

// Reallocate resizes the block at p to hold size bytes of payload,
// preserving existing content, and returns the (possibly different)
// payload pointer.
//
//   - size <= 0 frees p and returns NullPtr.
//   - p == NullPtr behaves like Allocate(size).
//   - if p's current block already has exactly the right total size for
//     the aligned request, p is returned unchanged.
//   - otherwise a new block is allocated, content is copied, and p is
//     freed.
//
// When growing, the copy deliberately spans the old block's full total
// size (header+payload+footer width), not just its payload: bytes past
// the old payload's end — the old footer word and the following block's
// header word — are copied into the new block as if they were payload. This is a preserved quirk, not a bug to
// fix.
func (a *Allocator) Reallocate(p Ptr, size int64) Ptr {
	if size <= 0 {
		a.Free(p)
		return NullPtr
	}
	if p == NullPtr {
		return a.Allocate(size)
	}

	oldTotal := a.blockSize(p)
	r := align16(size)

	if oldTotal == r+dsize {
		return p
	}

	newPtr := a.Allocate(size)
	if newPtr == NullPtr {
		return NullPtr
	}

	oldPayload := oldTotal - dsize
	switch {
	case r < oldPayload:
		a.heap.MemCopy(int64(newPtr), int64(p), r)
	default:
		a.heap.MemCopy(int64(newPtr), int64(p), oldTotal)
	}

	a.Free(p)
	return newPtr
}

// View exposes the live bytes of the block at p as a Go slice, for callers
// that want to read or write payload content directly rather than through
// MemCopy/MemSet. The slice is invalidated by any call that may grow the
// heap (Allocate, Calloc, Reallocate, or a provider Extend performed
// externally).
func (a *Allocator) View(p Ptr) []byte {
	if p == NullPtr {
		return nil
	}
	size := a.blockSize(p) - dsize
	b := a.heap.Bytes()
	return b[p : int64(p)+size]
}
