// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

// coalesce merges bp, already marked free in its header/footer, with
// whichever physically adjacent neighbors are also free, and returns the
// payload pointer of the resulting (possibly larger, possibly unchanged)
// free block. Callers insert the returned block into its free list; they
// must not also insert bp or its neighbors.
func (a *Allocator) coalesce(bp Ptr) Ptr {
	// The previous block's allocation state is read straight from its own
	// footer word, not from bp's prev_alloc flag bit: nothing on the
	// allocation path ever sets that bit (only Free's deliberately stale
	// write ever touches it — see Free), so it cannot be trusted here. The
	// footer is always current.
	prevAlloc := isAlloc(a.word(bp - dsize))
	next := a.nextBlock(bp)
	nextAlloc := isAlloc(a.word(a.header(next)))

	switch {
	case prevAlloc && nextAlloc:
		return bp

	case !prevAlloc && nextAlloc:
		prev := a.prevBlock(bp)
		total := a.blockSize(prev) + a.blockSize(bp)
		a.unlinkFree(prev)
		a.putWord(a.header(prev), pack(total, 0))
		a.putWord(a.footer(bp), pack(total, 0))
		return prev

	case prevAlloc && !nextAlloc:
		total := a.blockSize(bp) + a.blockSize(next)
		a.unlinkFree(next)
		a.putWord(a.header(bp), pack(total, 0))
		a.putWord(a.footer(next), pack(total, 0))
		return bp

	default:
		prev := a.prevBlock(bp)
		total := a.blockSize(prev) + a.blockSize(bp) + a.blockSize(next)
		a.unlinkFree(prev)
		a.unlinkFree(next)
		a.putWord(a.header(prev), pack(total, 0))
		a.putWord(a.footer(next), pack(total, 0))
		return prev
	}
}
