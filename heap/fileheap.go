// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"os"

	"github.com/cznic/fileutil"
)

var _ Provider = (*FileHeap)(nil)

// FileHeap is an *os.File backed Provider, in the manner of
// SimpleFileFiler: it makes no attempt at structural/transactional
// integrity on its own (no WAL, no 2PC) — it exists so a heap can outlive
// the process and so Discard can exercise cznic/fileutil.PunchHole, not to
// protect against crashes mid-update. An in-memory byte buffer holds the
// heap content so the allocator's word-level façade (Bytes) has something
// to address directly; writes reach the file only when Sync flushes it.
type FileHeap struct {
	file *os.File
	buf  []byte
}

// NewFileHeap returns a FileHeap backed by f, which must be empty
// (NewFileHeap does not load existing content).
func NewFileHeap(f *os.File) *FileHeap {
	return &FileHeap{file: f}
}

// Low implements Provider.
func (h *FileHeap) Low() int64 { return 0 }

// High implements Provider.
func (h *FileHeap) High() int64 { return int64(len(h.buf)) }

// Extend implements Provider.
func (h *FileHeap) Extend(n int64) int64 {
	if n <= 0 {
		return Sentinel
	}

	old := int64(len(h.buf))
	need := old + n
	if want := int64(cap(h.buf)); need > want {
		grown := make([]byte, old, clampGrowth(need, want*growthFactor))
		copy(grown, h.buf)
		h.buf = grown
	}
	h.buf = h.buf[:need]
	if err := h.file.Truncate(need); err != nil {
		h.buf = h.buf[:old]
		return Sentinel
	}

	return old
}

// Bytes implements Provider.
func (h *FileHeap) Bytes() []byte { return h.buf }

// MemCopy implements Provider.
func (h *FileHeap) MemCopy(dst, src, n int64) {
	if n <= 0 {
		return
	}

	copy(h.buf[dst:dst+n], h.buf[src:src+n])
}

// MemSet implements Provider.
func (h *FileHeap) MemSet(off int64, v byte, n int64) {
	if n <= 0 {
		return
	}

	b := h.buf[off : off+n]
	for i := range b {
		b[i] = v
	}
}

// Sync flushes the in-memory mirror to the backing file.
func (h *FileHeap) Sync() error {
	if _, err := h.file.WriteAt(h.buf, 0); err != nil {
		return err
	}

	return h.file.Sync()
}

// Discard punches a hole over [off, off+size) of the backing file. It is
// meant for a byte range the caller has already established is free and at
// the tail of the heap (a fully coalesced trailing free block); Discard
// itself trusts the caller and does not consult the allocator's free
// lists. It never runs as part of Allocator.Free or Allocator.Reallocate:
// shrinking the heap back to the OS is out of scope for the allocator
// itself; Discard is a separate, opt-in provider-level operation.
func (h *FileHeap) Discard(off, size int64) error {
	return fileutil.PunchHole(h.file, off, size)
}
