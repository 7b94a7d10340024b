// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

// classRoot returns the offset of a size class's root cell, the fixed
// prelude word a class's free list is anchored on. A node's prev link may
// legally point here instead of at another node; that's how the head of a
// list is told apart from an interior node during unlink.
func classRoot(class int) Ptr {
	return Ptr(class * wordSize)
}

// rootHead returns the first free block filed under class, or NullPtr if
// the class is empty.
func (a *Allocator) rootHead(class int) Ptr {
	return a.readLink(classRoot(class))
}

// setRootHead rewrites the head pointer of a class's free list.
func (a *Allocator) setRootHead(class int, bp Ptr) {
	a.writeLink(classRoot(class), bp)
}
