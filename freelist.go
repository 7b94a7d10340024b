// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

// insertFree files a free block into its size class's list. The list is
// only approximately ordered by size: a new node is spliced in front of
// the current head when it is no larger, after the head otherwise. This is
// a two-comparison insert, not a sort — a list can and will end up with a
// head smaller than some of its later nodes. This is a preserved property
// of the allocator, not a bug to fix.
func (a *Allocator) insertFree(bp Ptr, size int64) {
	class := pickClass(size)
	root := classRoot(class)
	head := a.rootHead(class)

	if head == NullPtr {
		a.setRootHead(class, bp)
		a.writeLink(bp, root)
		a.writeLink(bp+wordSize, NullPtr)
		return
	}

	if size <= a.blockSize(head) {
		a.setRootHead(class, bp)
		a.writeLink(bp, root)
		a.writeLink(bp+wordSize, head)
		a.writeLink(head, bp)
		return
	}

	headNext := a.readLink(head + wordSize)
	a.writeLink(head+wordSize, bp)
	a.writeLink(bp, head)
	a.writeLink(bp+wordSize, headNext)
	if headNext != NullPtr {
		a.writeLink(headNext, bp)
	}
}

// unlinkFree removes bp from whatever free list it is currently filed
// under. The class is recovered from bp's own header, so unlinkFree must
// be called before that header's size field is overwritten. If bp carries
// no links at all (both prev and next are NullPtr and bp is not itself a
// singleton list head) the call is a no-op — a block can reach here having
// never been inserted, e.g. a remainder produced mid-split.
func (a *Allocator) unlinkFree(bp Ptr) {
	prev := a.readLink(bp)
	next := a.readLink(bp + wordSize)
	if prev == NullPtr && next == NullPtr {
		return
	}

	class := pickClass(a.blockSize(bp))
	root := classRoot(class)

	if prev == root {
		a.setRootHead(class, next)
	} else {
		a.writeLink(prev+wordSize, next)
	}

	if next != NullPtr {
		a.writeLink(next, prev)
	}
}
