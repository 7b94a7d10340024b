// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errs collects the structured error types returned by the
// allocator and its heap providers. Every method that can fail reports
// enough context (an offset, an argument, an underlying cause) to diagnose
// a corrupted heap without resorting to ad hoc fmt.Errorf strings.
package errs

import "fmt"

// ErrINVAL reports an invalid argument passed to a public entry point, e.g.
// a handle out of bounds or a negative size.
type ErrINVAL struct {
	Msg string
	Arg interface{}
}

func (e *ErrINVAL) Error() string {
	return fmt.Sprintf("%s: %v", e.Msg, e.Arg)
}

// ErrType enumerates the kinds of structural inconsistency ErrILSEQ can
// report. The name (ill-formed sequence) follows a small typed-code plus
// name-table pattern; the members are specific to the allocator's
// word/block encoding.
type ErrType int

const (
	ErrOther ErrType = iota
	ErrExpFreeTag
	ErrExpUsedTag
	ErrHeadNonNil
	ErrTooSmall
	ErrAdjacentFree
	ErrWrongClass
	ErrBadSize
	ErrBadAlignment
	ErrOutOfBounds
	ErrLostFreeBlock
	ErrFreeChaining
)

var errTypeNames = map[ErrType]string{
	ErrOther:         "internal error",
	ErrExpFreeTag:    "expected a free block",
	ErrExpUsedTag:    "expected an allocated block",
	ErrHeadNonNil:    "free list head has a non-nil prev",
	ErrTooSmall:      "free block too small for request",
	ErrAdjacentFree:  "two physically adjacent free blocks",
	ErrWrongClass:    "free block filed under the wrong size class",
	ErrBadSize:       "block size is not a positive multiple of 16",
	ErrBadAlignment:  "pointer is not 16-byte aligned",
	ErrOutOfBounds:   "pointer lies outside the heap region",
	ErrLostFreeBlock: "free block unreachable from any class root",
	ErrFreeChaining:  "free list prev/next links do not agree",
}

// ErrILSEQ reports a structural inconsistency (ill-formed sequence)
// detected while walking the heap: a tag that doesn't match what the
// caller's state implied, a size class mismatch, broken free-list
// chaining, etc.
type ErrILSEQ struct {
	Type ErrType
	Off  int64
	Arg  int64
	Arg2 int64
	More error
}

func (e *ErrILSEQ) Error() string {
	name := errTypeNames[e.Type]
	s := fmt.Sprintf("%s at offset %#x (arg %d, arg2 %d)", name, e.Off, e.Arg, e.Arg2)
	if e.More != nil {
		s += ": " + e.More.Error()
	}
	return s
}

// ErrPERM reports an operation attempted out of its allowed sequence, e.g.
// an unbalanced heap extension bookkeeping call.
type ErrPERM struct {
	Msg string
}

func (e *ErrPERM) Error() string { return e.Msg }
