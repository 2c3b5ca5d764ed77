// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package arena

import "testing"

func TestFetchAssignsIncreasingIDs(t *testing.T) {
	t.Parallel()

	a := New[int](0)
	ids := make([]int, 5)
	for i := range ids {
		ids[i] = a.Fetch()
	}
	for i, id := range ids {
		if id != i {
			t.Fatalf("Fetch()[%d] = %d, want %d", i, id, i)
		}
	}
}

func TestRecycleReusesSlot(t *testing.T) {
	t.Parallel()

	a := New[int](0)
	id0 := a.Fetch()
	id1 := a.Fetch()

	a.Recycle(id0)
	if a.IsLive(id0) {
		t.Fatalf("id %d should not be live after Recycle", id0)
	}

	id2 := a.Fetch()
	if id2 != id0 {
		t.Fatalf("Fetch() after Recycle = %d, want reused id %d", id2, id0)
	}
	if !a.IsLive(id1) {
		t.Fatalf("id %d should still be live", id1)
	}
}

func TestAtSkipsHoles(t *testing.T) {
	t.Parallel()

	a := New[string](0)
	id := a.Fetch()
	*a.Ptr(id) = "hello"

	if v, ok := a.At(id); !ok || v != "hello" {
		t.Fatalf("At(%d) = %q, %v, want %q, true", id, v, ok, "hello")
	}

	a.Recycle(id)
	if _, ok := a.At(id); ok {
		t.Fatalf("At(%d) should report absent after Recycle", id)
	}
	if _, ok := a.At(id + 100); ok {
		t.Fatalf("At() out of range should report absent")
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	a := New[int](0)
	a.Fetch()
	id := a.Fetch()
	a.Recycle(id)

	live, total := a.Stats()
	if live != 1 {
		t.Errorf("live = %d, want 1", live)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
}
