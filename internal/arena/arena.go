// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package arena implements a fixed-block allocator for AIG objects.
//
// It is the Go counterpart of ABC's Aig_MmFixed_t together with the
// object table indexed by Aig_Obj_t.Id: every fetched slot's ID is its
// index in the table, and a live object is reachable by that ID for the
// rest of its life because the table never shrinks and never moves a
// live object to a different slot. New slots get increasing IDs; a
// recycled slot's ID is handed out again by a later Fetch.
//
// Derived from the pooling idiom in github.com/gaissmai/bart's pool.go
// (a type-safe, statistics-tracked wrapper that recycles node memory),
// adapted here to a slot-table allocator with a free list instead of a
// sync.Pool, because arena slots must be addressable by a stable integer
// ID, not handed out as opaque pointers.
package arena

import "sync/atomic"

// Arena is a fixed-block allocator for values of type T, indexed by an
// ID starting at 0. A recycled slot's ID is
// reused by the next Fetch, matching ABC's "holes are permitted, deleted
// objects become available again" object table.
type Arena[T any] struct {
	slots []T
	live  []bool // live[i] reports whether slots[i] is allocated
	free  []int  // stack of recycled, reusable slot indices

	totalAllocated atomic.Int64 // total slots ever fetched (for diagnostics)
	currentLive    atomic.Int64 // slots currently allocated
}

// New creates an Arena with capacity pre-sized to capHint slots, mirroring
// Aig_ManStart's soft limit on the expected node count (it grows past the
// hint without error; the hint only avoids early reallocation).
func New[T any](capHint int) *Arena[T] {
	if capHint <= 0 {
		capHint = 10007 // same default soft limit as Aig_ManStart
	}
	return &Arena[T]{
		slots: make([]T, 0, capHint),
		live:  make([]bool, 0, capHint),
	}
}

// Fetch returns the ID of a freshly zeroed slot, reusing a recycled slot
// if one is available.
func (a *Arena[T]) Fetch() int {
	a.totalAllocated.Add(1)
	a.currentLive.Add(1)

	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		var zero T
		a.slots[id] = zero
		a.live[id] = true
		return id
	}

	id := len(a.slots)
	var zero T
	a.slots = append(a.slots, zero)
	a.live = append(a.live, true)
	return id
}

// Recycle marks id's slot as dead and returns it to the free list. The
// slot's storage is retained (not zeroed here; Fetch zeroes it on reuse)
// so callers can still read it until the next Fetch claims it, matching
// ABC's habit of marking an object AIG_OBJ_VOID/Dead before returning its
// memory to the pool.
func (a *Arena[T]) Recycle(id int) {
	if id < 0 || id >= len(a.live) || !a.live[id] {
		return
	}
	a.live[id] = false
	a.free = append(a.free, id)
	a.currentLive.Add(-1)
}

// At returns the slot at id, or the zero value and false if id is out of
// range or has been recycled ("holes" that iterators must skip, per the
// spec's lifecycle invariant).
func (a *Arena[T]) At(id int) (T, bool) {
	if id < 0 || id >= len(a.slots) || !a.live[id] {
		var zero T
		return zero, false
	}
	return a.slots[id], true
}

// Ptr returns a pointer into the slot at id for in-place mutation, or nil
// if id is out of range or recycled.
func (a *Arena[T]) Ptr(id int) *T {
	if id < 0 || id >= len(a.slots) || !a.live[id] {
		return nil
	}
	return &a.slots[id]
}

// IsLive reports whether id currently names an allocated slot.
func (a *Arena[T]) IsLive(id int) bool {
	return id >= 0 && id < len(a.live) && a.live[id]
}

// Len returns one past the highest ID ever fetched (the upper bound for
// an iteration over all slot indices, live or not).
func (a *Arena[T]) Len() int {
	return len(a.slots)
}

// Stats returns the number of currently live slots and the number ever
// fetched, for verbose/statistics reporting.
func (a *Arena[T]) Stats() (live, total int64) {
	return a.currentLive.Load(), a.totalAllocated.Load()
}
