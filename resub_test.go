package aig

import "testing"

func TestResubFindsRedundantDivisor(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	// n duplicates an existing divisor's function (a&b) through a
	// differently-shaped but logically identical expression, giving
	// Resub a same-function divisor to substitute.
	ab := m.And(a, b)
	n := m.And(ab, a)
	co := m.CreateCO(n)

	before := m.simulateCone(n, []int32{a.ID, b.ID})

	accepted, err := m.Resub(DefaultResubParams())
	if err != nil {
		t.Fatalf("Resub: %v", err)
	}
	if accepted == 0 {
		t.Fatal("Resub did not substitute the redundant node")
	}

	after := m.simulateCone(m.Object(co.ID).Fanin0, []int32{a.ID, b.ID})
	if before != after {
		t.Fatalf("Resub changed the function: before=%#x after=%#x", before, after)
	}
	if !m.IsAcyclic() {
		t.Fatal("graph became cyclic after Resub")
	}
}

func TestResubPreservesFunctionOnUnrelatedGraph(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()
	n := m.Xor(a, m.Xor(b, c))
	co := m.CreateCO(n)

	leaves := []int32{a.ID, b.ID, c.ID}
	before := m.simulateCone(n, leaves)

	if _, err := m.Resub(DefaultResubParams()); err != nil {
		t.Fatalf("Resub: %v", err)
	}

	after := m.simulateCone(m.Object(co.ID).Fanin0, leaves)
	if before != after {
		t.Fatalf("Resub changed the function: before=%#x after=%#x", before, after)
	}
	if !m.IsAcyclic() {
		t.Fatal("graph became cyclic after Resub")
	}
	if err := m.Check(); err != nil {
		t.Fatalf("Check after Resub: %v", err)
	}
}

func TestFindResub0MatchesExactDivisor(t *testing.T) {
	t.Parallel()
	divs := []divisor{
		{edge: Edge{ID: 5}, tt: 0xAAAA},
		{edge: Edge{ID: 6}, tt: 0x5555}, // complement of divs[0]
	}
	care := uint16(0xFFFF)

	got, ok := findResub0(0xAAAA, care, divs)
	if !ok || got.ID != 5 || got.Compl {
		t.Fatalf("findResub0 direct match: got %+v, ok=%v", got, ok)
	}

	got, ok = findResub0(0x5555, care, divs)
	if !ok || got.ID != 5 || !got.Compl {
		t.Fatalf("findResub0 complemented match: got %+v, ok=%v", got, ok)
	}
}

func TestCollectDivisorsExcludesRootsOwnCone(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	ab := m.And(a, b)
	m.CreateCO(ab)

	divs := m.collectDivisors(ab.ID, []int32{a.ID, b.ID})
	for _, d := range divs {
		if d.edge.ID == ab.ID {
			t.Fatalf("collectDivisors included the root itself")
		}
	}
}
