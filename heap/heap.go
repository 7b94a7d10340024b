// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package heap provides the page-level heap providers consumed by the
// allocator in package malloc. A Provider is an assumed external
// collaborator: something that can report the current bounds of a single
// contiguous, growable region and extend it by N bytes. The allocator
// itself never allocates or addresses memory any other way; it reads and
// writes words exclusively through a Provider's Bytes slice.
package heap

import "github.com/cznic/mathutil"

// Sentinel is returned by Extend on failure, standing in for a failed
// extension where a real pointer would otherwise be returned.
const Sentinel = -1

// Provider is a single contiguous, growable heap region. It is not safe
// for concurrent use; the allocator built on top of it is single-actor by
// design.
type Provider interface {
	// Low is the inclusive low bound of the region, in bytes.
	Low() int64

	// High is the exclusive high bound of the region, in bytes. It
	// grows only via Extend.
	High() int64

	// Extend grows the region by exactly n bytes and returns the
	// region's High() before growing, or Sentinel if the provider
	// cannot grow (out of memory/disk/address space).
	Extend(n int64) int64

	// Bytes returns a slice aliasing the live region [Low(), High()).
	// Index 0 of the returned slice corresponds to byte offset Low().
	// The slice is only valid until the next call to Extend, which may
	// reallocate the backing storage.
	Bytes() []byte

	// MemCopy copies n bytes from src to dst, both byte offsets within
	// [Low(), High()). Ranges may overlap.
	MemCopy(dst, src, n int64)

	// MemSet fills n bytes starting at off, a byte offset within
	// [Low(), High()), with v.
	MemSet(off int64, v byte, n int64)
}

// clampGrowth rounds a requested growth up to at least min, guarding heap
// growth against under-sized requests.
func clampGrowth(n, min int64) int64 {
	return mathutil.MaxInt64(n, min)
}
