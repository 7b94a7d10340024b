// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Heapdemo exercises the malloc allocator against a file-backed or
// in-memory heap with random Allocate/Free calls, printing AllocStats at
// the end.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"

	"github.com/cznic/malloc"
	"github.com/cznic/malloc/heap"
)

var (
	oFile   = flag.String("f", "", "back the heap with this file instead of memory")
	oOps    = flag.Int("n", 10000, "number of allocate/free operations to run")
	oSeed   = flag.Int64("seed", 1, "random seed")
	oVerify = flag.Bool("verify", false, "run Verify after every operation (slow)")
)

func main() {
	log.SetFlags(log.Flags() | log.Lshortfile)
	flag.Parse()

	var provider heap.Provider
	if *oFile != "" {
		f, err := os.Create(*oFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		provider = heap.NewFileHeap(f)
	} else {
		provider = heap.NewMemHeap()
	}

	a, err := malloc.New(provider)
	if err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(*oSeed))
	live := make([]malloc.Ptr, 0, *oOps)
	for i := 0; i < *oOps; i++ {
		switch {
		case len(live) == 0 || rng.Intn(3) != 0:
			size := int64(1 + rng.Intn(512))
			p := a.Allocate(size)
			if p == malloc.NullPtr {
				log.Fatalf("op %d: Allocate(%d) failed", i, size)
			}
			live = append(live, p)

		default:
			idx := rng.Intn(len(live))
			a.Free(live[idx])
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
		}

		if *oVerify {
			if err := a.Verify(); err != nil {
				log.Fatalf("op %d: %v", i, err)
			}
		}
	}

	for _, p := range live {
		a.Free(p)
	}

	if err := a.Verify(); err != nil {
		log.Fatal(err)
	}

	stats := a.Stats()
	log.Printf("allocs=%d frees=%d grows=%d bytesLive=%d", stats.Allocs, stats.Frees, stats.Grows, stats.BytesLive)

	if fh, ok := provider.(*heap.FileHeap); ok {
		if err := fh.Sync(); err != nil {
			log.Fatal(err)
		}
	}
}
