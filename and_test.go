package aig

import "testing"

func TestAndTrivialSimplifications(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()

	if got := m.And(a, a); got != a {
		t.Errorf("And(a,a) = %+v, want a", got)
	}
	if got := m.And(a, a.Not()); got != m.Const0() {
		t.Errorf("And(a,!a) = %+v, want Const0", got)
	}
	if got := m.And(m.Const1(), a); got != a {
		t.Errorf("And(1,a) = %+v, want a", got)
	}
	if got := m.And(m.Const0(), a); got != m.Const0() {
		t.Errorf("And(0,a) = %+v, want Const0", got)
	}
}

func TestAndStrashingDedup(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()

	n1 := m.And(a, b)
	n2 := m.And(a, b)
	n3 := m.And(b, a) // commuted order must hash to the same node

	if n1 != n2 || n1 != n3 {
		t.Fatalf("And(a,b) not deduplicated: %+v %+v %+v", n1, n2, n3)
	}
	if m.NumAnds() != 1 {
		t.Fatalf("NumAnds() = %d, want 1", m.NumAnds())
	}
}

func TestAndCanonicalFaninOrder(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	n := m.And(b, a)
	o := m.Object(n.ID)
	if o.Fanin0.ID > o.Fanin1.ID {
		t.Fatalf("fanins not canonically ordered: %+v, %+v", o.Fanin0, o.Fanin1)
	}
}

func TestAndPhaseComputation(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI() // phase(a) = false under all-0 pattern (CI objects default false)
	b := m.CreateCI()
	n := m.And(a, b)
	o := m.Object(n.ID)
	want := (o.Phase) // sanity: just recompute and compare
	got := m.computePhase(o.Fanin0, o.Fanin1)
	if got != want {
		t.Fatalf("phase mismatch: stored=%v recomputed=%v", want, got)
	}
}

func TestProbeAndDoesNotAllocate(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()

	if _, ok := m.probeAnd(a, b); ok {
		t.Fatal("probeAnd found a hit before the node was ever created")
	}
	before := m.NumAnds()
	m.And(a, b)
	if _, ok := m.probeAnd(a, b); !ok {
		t.Fatal("probeAnd missed an existing node")
	}
	if m.NumAnds() != before+1 {
		t.Fatalf("NumAnds() = %d, want %d", m.NumAnds(), before+1)
	}
}

func TestXorAndMuxTruthTables(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()

	// Xor(a,a) must simplify to Const0 through the underlying Ands/Ors.
	if got := m.Xor(a, a); got != m.Const0() {
		t.Errorf("Xor(a,a) = %+v, want Const0", got)
	}
	// Mux(1,t,e) == t and Mux(0,t,e) == e, reducible through trivial rules
	// alone (no Boolean reasoning beyond strashing is attempted).
	if got := m.Mux(m.Const1(), a, b); got != a {
		t.Errorf("Mux(1,a,b) = %+v, want a", got)
	}
	if got := m.Mux(m.Const0(), a, b); got != b {
		t.Errorf("Mux(0,a,b) = %+v, want b", got)
	}
}
