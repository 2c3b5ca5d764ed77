package aig

import "testing"

// FindWindow on a bare two-input AND has nowhere to grow: both fanins
// are CIs, so the leaf set stays exactly {a, b}.
func TestFindWindowOnMinimalAnd(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	n := m.And(a, b)

	w := m.FindWindow(n.ID, 10, 1<<30, false, 0, 0)
	leaves := sortedCopy(w.Leaves)
	if len(leaves) != 2 || leaves[0] != a.ID || leaves[1] != b.ID {
		t.Fatalf("FindWindow leaves = %v, want [%d %d]", leaves, a.ID, b.ID)
	}
}

// A reconverging fanout structure (a&b) and (a&c) under a common root
// should pull a, b, c into the leaf set rather than stopping at the
// two direct fanins of the root.
func TestFindWindowGrowsThroughReconvergence(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()
	ab := m.And(a, b)
	ac := m.And(a, c)
	n := m.And(ab, ac)

	w := m.FindWindow(n.ID, 10, 1<<30, false, 0, 0)
	leaves := sortedCopy(w.Leaves)
	want := []int32{a.ID, b.ID, c.ID}
	if len(leaves) != len(want) {
		t.Fatalf("FindWindow leaves = %v, want %v", leaves, want)
	}
	for i := range want {
		if leaves[i] != want[i] {
			t.Fatalf("FindWindow leaves = %v, want %v", leaves, want)
		}
	}
}

// A tight leaf budget must stop growth before it fully expands past
// the direct fanins, and must leave every MarkB scratch bit cleared
// behind it regardless of where growth stopped.
func TestFindWindowRespectsSizeLimitAndClearsMarks(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()
	ab := m.And(a, b)
	ac := m.And(a, c)
	n := m.And(ab, ac)

	w := m.FindWindow(n.ID, 2, 1<<30, false, 0, 0)
	if len(w.Leaves) > 2 {
		t.Fatalf("FindWindow exceeded the leaf budget: %v", w.Leaves)
	}
	for _, id := range w.Visited {
		if o := m.Object(id); o != nil && o.MarkB {
			t.Fatalf("FindWindow left MarkB set on node %d", id)
		}
	}
}

// growContaining must leave Cone empty when not requested, and must
// grow Cone past the (here, frozen) Leaves boundary when requested
// with a larger budget - reaching all the way to the primary inputs
// when the budget allows it.
func TestFindWindowContainingCone(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()
	d := m.CreateCI()
	ab := m.And(a, b)
	cd := m.And(c, d)
	n := m.And(ab, cd)

	w := m.FindWindow(n.ID, 0, 1<<30, false, 10, 1<<30)
	if len(w.Cone) != 0 {
		t.Fatalf("FindWindow populated Cone when growContaining=false: %v", w.Cone)
	}

	// nodeSizeMax=0 freezes the inner Leaves at the root's direct
	// fanins; coneSizeMax=10 lets the independently-grown Cone expand
	// all the way down to the primary inputs.
	w = m.FindWindow(n.ID, 0, 1<<30, true, 10, 1<<30)
	leaves := sortedCopy(w.Leaves)
	wantLeaves := []int32{ab.ID, cd.ID}
	if len(leaves) != len(wantLeaves) || leaves[0] != wantLeaves[0] || leaves[1] != wantLeaves[1] {
		t.Fatalf("FindWindow Leaves = %v, want %v", leaves, wantLeaves)
	}

	cone := sortedCopy(w.Cone)
	wantCone := []int32{a.ID, b.ID, c.ID, d.ID}
	if len(cone) != len(wantCone) {
		t.Fatalf("FindWindow Cone = %v, want %v", cone, wantCone)
	}
	for i := range wantCone {
		if cone[i] != wantCone[i] {
			t.Fatalf("FindWindow Cone = %v, want %v", cone, wantCone)
		}
	}
}
