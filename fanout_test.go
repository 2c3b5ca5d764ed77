package aig

import (
	"sort"
	"testing"
)

func TestFanoutsFindsAllConsumers(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	ab := m.And(a, b)
	abc := m.And(ab, b) // a second consumer of both ab and b
	m.CreateCO(ab)
	m.CreateCO(abc)

	fo := m.Fanouts(ab.ID)
	sort.Slice(fo, func(i, j int) bool { return fo[i] < fo[j] })
	if len(fo) != 2 {
		t.Fatalf("Fanouts(ab) = %v, want 2 entries (one CO, one AND)", fo)
	}

	foB := m.Fanouts(b.ID)
	wantConsumers := map[int32]bool{ab.ID: true, abc.ID: true}
	if len(foB) != len(wantConsumers) {
		t.Fatalf("Fanouts(b) = %v, want exactly %v", foB, wantConsumers)
	}
	for _, id := range foB {
		if !wantConsumers[id] {
			t.Fatalf("Fanouts(b) contains unexpected consumer %d", id)
		}
	}
}

func TestFanoutsInvalidatedByMutation(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	ab := m.And(a, b)
	co := m.CreateCO(ab)

	if got := m.Fanouts(ab.ID); len(got) != 1 || got[0] != co.ID {
		t.Fatalf("Fanouts(ab) before mutation = %v, want [%d]", got, co.ID)
	}

	c := m.CreateCI()
	m.Replace(ab, c)

	if got := m.Fanouts(ab.ID); len(got) != 0 {
		t.Fatalf("Fanouts(ab) after Replace = %v, want none (ab is dead)", got)
	}
	if got := m.Fanouts(c.ID); len(got) != 1 || got[0] != co.ID {
		t.Fatalf("Fanouts(c) after Replace = %v, want [%d]", got, co.ID)
	}
}

func TestFanoutsEmptyForUnreferencedNode(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	if got := m.Fanouts(a.ID); len(got) != 0 {
		t.Fatalf("Fanouts(a) = %v, want none", got)
	}
}
