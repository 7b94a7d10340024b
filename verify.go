// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "github.com/cznic/malloc/errs"

// AllocStats reports running totals an Allocator has accumulated since
// construction. It imposes no cost on Allocate/Free/Reallocate beyond a
// handful of counter updates; unlike Verify it never walks the heap.
type AllocStats struct {
	Allocs    int64 // total successful Allocate/Calloc/Reallocate-as-new calls
	Frees     int64 // total Free calls that actually freed something
	Grows     int64 // total successful heap extensions (the prelude reservation is not counted)
	BytesLive int64 // sum of total block size (header+payload+footer) currently allocated
}

// Stats returns a's current AllocStats.
func (a *Allocator) Stats() AllocStats {
	return AllocStats{
		Allocs:    a.nAllocs,
		Frees:     a.nFrees,
		Grows:     a.nGrows,
		BytesLive: a.bytesLive,
	}
}

// Verify walks the entire heap once, checking structural invariants a
// correct sequence of Allocate/Free/Reallocate calls must preserve:
//
//   - every block's header and footer agree;
//   - sizes are positive multiples of 16;
//   - no two physically adjacent blocks are both free (coalescing must
//     have merged them);
//   - every free block is reachable by walking its size class's list from
//     the class root, and no two free blocks claim the same class-root
//     prev link;
//   - a class's free list, walked from its root, never visits a block
//     filed under the wrong class.
//
// It does not check prev_alloc bits for correctness, since Free
// deliberately leaves them stale (see Free's doc comment); a mismatch
// there is expected, not reported.
func (a *Allocator) Verify() error {
	reachable := make(map[Ptr]bool)
	for class := 0; class < numClasses; class++ {
		prevLink := classRoot(class)
		for bp := a.rootHead(class); bp != NullPtr; bp = a.readLink(bp + wordSize) {
			if a.readLink(bp) != prevLink {
				return &errs.ErrILSEQ{Type: errs.ErrFreeChaining, Off: int64(bp)}
			}
			size := a.blockSize(bp)
			if pickClass(size) != class {
				return &errs.ErrILSEQ{Type: errs.ErrWrongClass, Off: int64(bp), Arg: size, Arg2: int64(class)}
			}
			if reachable[bp] {
				return &errs.ErrILSEQ{Type: errs.ErrFreeChaining, Off: int64(bp)}
			}
			reachable[bp] = true
			prevLink = bp
		}
	}

	bp := Ptr(firstBlockPayloadBytes)
	var prevFree bool
	for {
		hw := a.word(a.header(bp))
		size := sizeOf(hw)
		if size == 0 {
			break // epilogue
		}
		if size <= 0 || size%dsize != 0 {
			return &errs.ErrILSEQ{Type: errs.ErrBadSize, Off: int64(bp), Arg: size}
		}

		// Compare size and alloc bit only, not the raw word: Free leaves a
		// stale prev_alloc bit (bit 1) on the *next* block's header without
		// touching that block's footer, so a header/footer word mismatch
		// confined to bit 1 is expected, not a structural inconsistency.
		fw := a.word(a.footer(bp))
		if sizeOf(fw) != sizeOf(hw) || isAlloc(fw) != isAlloc(hw) {
			return &errs.ErrILSEQ{Type: errs.ErrOther, Off: int64(bp), Arg: int64(hw), Arg2: int64(fw)}
		}

		free := !isAlloc(hw)
		if free && prevFree {
			return &errs.ErrILSEQ{Type: errs.ErrAdjacentFree, Off: int64(bp)}
		}
		if free && !reachable[bp] {
			return &errs.ErrILSEQ{Type: errs.ErrLostFreeBlock, Off: int64(bp)}
		}
		if free {
			delete(reachable, bp)
		}

		prevFree = free
		bp = a.nextBlock(bp)
	}

	for bp := range reachable {
		return &errs.ErrILSEQ{Type: errs.ErrLostFreeBlock, Off: int64(bp), More: &errs.ErrINVAL{Msg: "block filed in a free list but absent from the heap walk"}}
	}

	return nil
}
