// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"testing"

	"github.com/cznic/malloc/heap"
)

func newTestAllocator(t *testing.T) *Allocator {
	t.Helper()
	a, err := New(heap.NewMemHeap())
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestPackSizeAlloc(t *testing.T) {
	w := pack(64, 1)
	if got := sizeOf(w); got != 64 {
		t.Fatalf("sizeOf = %d, want 64", got)
	}
	if !isAlloc(w) {
		t.Fatal("isAlloc = false, want true")
	}
	if isPrevAlloc(w) {
		t.Fatal("isPrevAlloc = true, want false")
	}

	w = pack(128, 3)
	if !isAlloc(w) || !isPrevAlloc(w) {
		t.Fatal("expected both alloc and prev_alloc set")
	}
}

func TestAlign16(t *testing.T) {
	for _, tc := range []struct{ in, want int64 }{
		{0, 0}, {1, 16}, {15, 16}, {16, 16}, {17, 32}, {512, 512},
	} {
		if got := align16(tc.in); got != tc.want {
			t.Errorf("align16(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestHeaderFooterNextPrev(t *testing.T) {
	a := newTestAllocator(t)

	bp := a.Allocate(100)
	if bp == NullPtr {
		t.Fatal("Allocate failed")
	}

	h := a.header(bp)
	if h != bp-wordSize {
		t.Fatalf("header(bp) = %d, want %d", h, bp-wordSize)
	}

	total := a.blockSize(bp)
	f := a.footer(bp)
	if f != bp+Ptr(total)-dsize {
		t.Fatalf("footer(bp) = %d, want %d", f, bp+Ptr(total)-dsize)
	}

	next := a.nextBlock(bp)
	if next != bp+Ptr(total) {
		t.Fatalf("nextBlock(bp) = %d, want %d", next, bp+Ptr(total))
	}

	p2 := a.Allocate(32)
	if p2 == NullPtr {
		t.Fatal("Allocate failed")
	}
	if got := a.prevBlock(p2); got != bp {
		t.Fatalf("prevBlock(p2) = %d, want %d", got, bp)
	}
}

func TestFirstBlockPayloadOffset(t *testing.T) {
	a := newTestAllocator(t)
	bp := a.Allocate(8)
	if bp != firstBlockPayloadBytes {
		t.Fatalf("first allocation payload = %d, want %d", bp, firstBlockPayloadBytes)
	}
}
