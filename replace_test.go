package aig

import "testing"

func TestReplaceRewiresFanoutsAndDeletesOld(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()

	old := m.And(a, b)
	top := m.And(old, c)
	co := m.CreateCO(top)

	// Replace old with a structurally unrelated existing signal (c),
	// inverted, and check the consumer's fanin and the CO driver.
	newEdge := c.Not()
	m.Replace(old, newEdge)

	topObj := m.Object(top.ID)
	if topObj.Fanin0 != newEdge && topObj.Fanin1 != newEdge {
		t.Fatalf("neither fanin of top was rewired to %+v: %+v", newEdge, topObj)
	}
	if o := m.Object(old.ID); o != nil && o.Type != TypeDead {
		t.Fatalf("old node %d was not deleted after Replace", old.ID)
	}
	if !m.IsAcyclic() {
		t.Fatal("graph became cyclic after Replace")
	}
	_ = co
}

func TestReplacePanicsOnDependencyCycle(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	old := m.And(a, b)
	top := m.And(old, a) // top depends on old

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when new depends on old's own cone")
		}
	}()
	m.Replace(old, top) // top's cone contains old: illegal
}

func TestCleanupRemovesDanglingNodes(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	dangling := m.And(a, b) // never connected to a CO
	before := m.NumAnds()
	removed := m.Cleanup()
	if removed != 1 {
		t.Fatalf("Cleanup removed %d nodes, want 1", removed)
	}
	if m.NumAnds() != before-1 {
		t.Fatalf("NumAnds() = %d, want %d", m.NumAnds(), before-1)
	}
	if o := m.Object(dangling.ID); o != nil && o.Type != TypeDead {
		t.Fatal("dangling node survived Cleanup")
	}
}
