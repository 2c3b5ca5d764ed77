package aig

import "testing"

func TestMffcOfUnsharedChainIsWholeCone(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()
	ab := m.And(a, b)
	abc := m.And(ab, c)
	m.CreateCO(abc)

	nodes := m.Mffc(abc, nil)
	if len(nodes) != 2 {
		t.Fatalf("Mffc size = %d, want 2 (ab and abc)", len(nodes))
	}

	// Refcounts must be restored exactly: a second Mffc call from the
	// same root must report the same size.
	again := m.Mffc(abc, nil)
	if len(again) != 2 {
		t.Fatalf("second Mffc size = %d, want 2 (refs not restored)", len(again))
	}
}

func TestMffcStopsAtExternallyReferencedNode(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()
	ab := m.And(a, b)
	abc := m.And(ab, c)
	m.CreateCO(ab) // external reference into the middle of the cone
	m.CreateCO(abc)

	nodes := m.Mffc(abc, nil)
	if len(nodes) != 1 || nodes[0] != abc.ID {
		t.Fatalf("Mffc = %v, want just [abc] since ab is referenced elsewhere", nodes)
	}
}

func TestMffcRespectsCutLeafBoundary(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()
	ab := m.And(a, b)
	abc := m.And(ab, c)
	m.CreateCO(abc)

	// Treat ab as a cut leaf: the cone-constrained MFFC must not descend
	// into it, even though nothing else references it.
	nodes := m.Mffc(abc, []int32{ab.ID})
	if len(nodes) != 1 || nodes[0] != abc.ID {
		t.Fatalf("cut-constrained Mffc = %v, want just [abc]", nodes)
	}
}

// Regression: a root with more than one fanout (Refs > 1, the common
// case once strashing creates sharing) must still be counted as part
// of its own MFFC, and its own Refs must be left untouched - only its
// fanins' refcounts are decremented/restored by the dereference pass.
func TestMffcOfRootWithMultipleFanoutsCountsRootAndLeavesItsRefsAlone(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()
	ab := m.And(a, b)
	abc := m.And(ab, c)
	m.CreateCO(abc) // two fanouts of abc itself: Refs(abc) == 2
	m.CreateCO(abc)

	refsBefore := m.Object(abc.ID).Refs
	if refsBefore != 2 {
		t.Fatalf("setup: Refs(abc) = %d, want 2", refsBefore)
	}

	nodes := m.Mffc(abc, nil)
	if len(nodes) != 2 {
		t.Fatalf("Mffc size = %d, want 2 (abc itself and ab), got %v", len(nodes), nodes)
	}
	foundRoot := false
	for _, id := range nodes {
		if id == abc.ID {
			foundRoot = true
		}
	}
	if !foundRoot {
		t.Fatalf("Mffc(abc) = %v, did not include the root itself", nodes)
	}

	if got := m.Object(abc.ID).Refs; got != refsBefore {
		t.Fatalf("Mffc corrupted the root's own Refs: before=%d after=%d", refsBefore, got)
	}
	if err := m.checkRefCounts(); err != nil {
		t.Fatalf("checkRefCounts after Mffc: %v", err)
	}

	// A second call must report the identical size: if the root's Refs
	// had leaked, this would previously regress to 0.
	again := m.Mffc(abc, nil)
	if len(again) != 2 {
		t.Fatalf("second Mffc size = %d, want 2 (refs not restored)", len(again))
	}
}

func TestSuppReturnsDistinctCIs(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	n := m.And(a, m.And(a, b))
	support := m.Supp(n)
	if len(support) != 2 {
		t.Fatalf("Supp = %v, want 2 distinct CIs", support)
	}
}
