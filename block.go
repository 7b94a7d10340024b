// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "encoding/binary"

// word reads the 8-byte little-endian word at byte offset off.
func (a *Allocator) word(off Ptr) uint64 {
	b := a.heap.Bytes()
	return binary.LittleEndian.Uint64(b[off : off+wordSize])
}

// putWord writes v as the 8-byte little-endian word at byte offset off.
func (a *Allocator) putWord(off Ptr, v uint64) {
	b := a.heap.Bytes()
	binary.LittleEndian.PutUint64(b[off:off+wordSize], v)
}

// pack combines a block's total size with its alloc/prev_alloc flag bits
// into the value stored in a header or footer word. flags is the low bits
// to OR into the (already 16-byte-aligned) size.
func pack(size int64, flags uint64) uint64 {
	return uint64(size) | flags
}

// sizeOf extracts a block's total size from a header/footer word.
func sizeOf(w uint64) int64 {
	return int64(w &^ 0xf)
}

// isAlloc reports whether a header/footer word's alloc bit is set.
func isAlloc(w uint64) bool { return w&1 != 0 }

// isPrevAlloc reports whether a header/footer word's prev_alloc bit is
// set.
func isPrevAlloc(w uint64) bool { return w&2 != 0 }

// blockSize returns the total size of the block whose payload is at bp.
func (a *Allocator) blockSize(bp Ptr) int64 {
	return sizeOf(a.word(a.header(bp)))
}

// header returns the offset of bp's header word.
func (a *Allocator) header(bp Ptr) Ptr {
	return bp - wordSize
}

// footer returns the offset of bp's footer word, derived from the size
// recorded in its header.
func (a *Allocator) footer(bp Ptr) Ptr {
	return bp + Ptr(a.blockSize(bp)) - dsize
}

// nextBlock returns the payload pointer of the block physically following
// bp, derived from bp's own header. When bp is the last real block this
// returns the heap's epilogue sentinel's "payload" address (the epilogue
// itself has no payload; only header(nextBlock(bp)) is meaningful there).
func (a *Allocator) nextBlock(bp Ptr) Ptr {
	return bp + Ptr(a.blockSize(bp))
}

// prevBlock returns the payload pointer of the block physically preceding
// bp. Only valid to call when the preceding block is known free (its size
// is recoverable from the footer word immediately before bp's header) or
// is the prologue.
func (a *Allocator) prevBlock(bp Ptr) Ptr {
	sz := sizeOf(a.word(bp - dsize))
	return bp - Ptr(sz)
}

// readLink reads a free-list pointer word (prev or next) and decodes it as
// a Ptr, preserving the NullPtr sentinel.
func (a *Allocator) readLink(off Ptr) Ptr {
	return Ptr(int64(a.word(off)))
}

// writeLink encodes p and writes it as a free-list pointer word.
func (a *Allocator) writeLink(off Ptr, p Ptr) {
	a.putWord(off, uint64(int64(p)))
}

// setPrevAllocBit unconditionally sets the prev_alloc bit of the
// header/footer word at off, leaving the rest of the word untouched. It
// never clears the bit — see Free for why that asymmetry is kept.
func (a *Allocator) setPrevAllocBit(off Ptr) {
	w := a.word(off)
	a.putWord(off, w|2)
}
