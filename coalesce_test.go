// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "testing"

// TestCoalesceIsolated: freeing a block with both neighbors allocated
// leaves it standing alone.
func TestCoalesceIsolated(t *testing.T) {
	a := newTestAllocator(t)

	p1 := a.Allocate(64)
	p2 := a.Allocate(64)
	p3 := a.Allocate(64)
	a.Free(p2)

	if !isAlloc(a.word(a.header(p1))) || !isAlloc(a.word(a.header(p3))) {
		t.Fatal("neighbors unexpectedly freed")
	}
	if isAlloc(a.word(a.header(p2))) {
		t.Fatal("p2 still marked allocated")
	}
}

// TestCoalesceRightJoin: freeing a block whose right neighbor is already
// free merges the two into one block, addressed by the left (lower)
// payload pointer.
func TestCoalesceRightJoin(t *testing.T) {
	a := newTestAllocator(t)

	p1 := a.Allocate(64)
	p2 := a.Allocate(64)
	p3 := a.Allocate(64)
	_ = p1

	a.Free(p3)
	sizeBefore := a.blockSize(p2)
	sizeP3 := a.blockSize(p3)
	a.Free(p2)

	if got, want := a.blockSize(p2), sizeBefore+sizeP3; got != want {
		t.Fatalf("merged size = %d, want %d", got, want)
	}
	if isAlloc(a.word(a.header(p2))) {
		t.Fatal("merged block marked allocated")
	}
}

// TestCoalesceLeftJoin: freeing a block whose left neighbor is already
// free merges the two, addressed by the left payload pointer, and the
// freed block's own pointer is absorbed (no longer a valid block start).
func TestCoalesceLeftJoin(t *testing.T) {
	a := newTestAllocator(t)

	p1 := a.Allocate(64)
	p2 := a.Allocate(64)
	p3 := a.Allocate(64)
	_ = p3

	a.Free(p1)
	a.Free(p2)

	// p1 now owns the merged block; its header size must equal the sum
	// of what p1 and p2 used to occupy.
	if isAlloc(a.word(a.header(p1))) {
		t.Fatal("merged block marked allocated")
	}
	merged := a.blockSize(p1)
	if merged <= 64 {
		t.Fatalf("merged size %d too small", merged)
	}
}

// TestCoalesceMiddleJoin: freeing a block with both neighbors already
// free merges all three into one, addressed by the leftmost pointer.
func TestCoalesceMiddleJoin(t *testing.T) {
	a := newTestAllocator(t)

	p1 := a.Allocate(64)
	p2 := a.Allocate(64)
	p3 := a.Allocate(64)
	p4 := a.Allocate(64)
	_ = p4

	a.Free(p1)
	a.Free(p3)
	sizeP2 := a.blockSize(p2)
	a.Free(p2)

	if isAlloc(a.word(a.header(p1))) {
		t.Fatal("merged block marked allocated")
	}
	merged := a.blockSize(p1)
	if merged < sizeP2 {
		t.Fatalf("merged size %d smaller than p2 alone (%d)", merged, sizeP2)
	}

	class := pickClass(merged)
	found := false
	for bp := a.rootHead(class); bp != NullPtr; bp = a.readLink(bp + wordSize) {
		if bp == p1 {
			found = true
		}
	}
	if !found {
		t.Fatal("merged block not filed in its class's free list")
	}
}
