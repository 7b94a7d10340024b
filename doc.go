// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Package malloc implements "raw" storage space management (allocation,
deallocation, reallocation) for a single contiguous, growable heap, in the
style of a general purpose dynamic memory allocator. All metadata is kept
in-band; the Allocator maintains no side tables of its own.

Heap

A heap is a linear, contiguous sequence of bytes provided by a
heap.Provider (package github.com/cznic/malloc/heap). The provider alone
knows how to grow the region; the Allocator only ever reads and writes
words inside whatever span the provider currently reports.

Words and blocks

A word is 8 bytes. A block is a contiguous range of the heap: a header
word, a user payload (at least 16 bytes when the block is free, to make
room for free-list links), and a footer word. Header and footer both carry
the block's total size (header+payload+footer, always a multiple of 16)
packed with two flag bits in the otherwise-unused low 4 bits of the size:

	bit 0 = alloc:      1 if the block is currently allocated.
	bit 1 = prev_alloc: 1 if the physically preceding block is allocated.

Free block payload layout

When a block is free its first two words of payload hold doubly linked
free-list pointers: word 0 is prev (pointing either to another free block
or to the list's root cell), word 1 is next (nil at the tail).

Heap prelude

The first 12 words of the heap are reserved: 9 free-list class root cells,
a 16-byte prologue block (header+footer, alloc=1), and an epilogue header
(size 0, alloc=1). With this layout every block payload starts on a
16-byte boundary. The prologue and epilogue bracket every
real block ever allocated from the heap; the epilogue's slot is reused as
the header of each newly extended block, with a fresh epilogue header
written immediately past it — the heap never carries more than one
epilogue sentinel at a time.

Size classes

Free blocks are segregated into 9 classes by total size (≤32, ≤64, ≤128,
≤256, ≤512, ≤1024, ≤8192, ≤16384, and everything larger). Each class root
is itself a list head: the root cell sits at a fixed heap offset and a
node's prev pointer may legally point at that cell instead of at another
node.

Concurrency

An Allocator is single-actor: all methods execute synchronously and
assume no other goroutine is touching the same heap concurrently. It
deliberately does not provide thread safety, OS-level heap shrinkage,
alignment stricter than 16 bytes, or defragmentation.

*/
package malloc
