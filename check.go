package aig

import "fmt"

// CheckError names which invariant (1-6 from the data model) a Check
// call found broken, and at which object.
type CheckError struct {
	Invariant int
	NodeID    int32
	Detail    string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("aig: invariant %d violated at object %d: %s", e.Invariant, e.NodeID, e.Detail)
}

// Check walks the whole AIG and verifies invariants 1 through 6,
// reporting the first violation found. A pass that produces a graph
// failing Check is a bug in that pass, not a recoverable runtime error;
// callers treat a non-nil return as fatal for the current command.
func (m *Manager) Check() error {
	if err := m.checkCanonicalAndTrivial(); err != nil {
		return err
	}
	if err := m.checkStrashing(); err != nil {
		return err
	}
	if err := m.checkRefCounts(); err != nil {
		return err
	}
	if !m.IsAcyclic() {
		return &CheckError{Invariant: 5, Detail: "combinational cycle detected"}
	}
	if err := m.checkPhase(); err != nil {
		return err
	}
	return nil
}

// checkCanonicalAndTrivial verifies invariants 1 and 2 for every live
// AND node.
func (m *Manager) checkCanonicalAndTrivial() error {
	n := m.objs.Len()
	for id := int32(0); id < int32(n); id++ {
		o := m.Object(id)
		if o == nil || !o.IsAnd() {
			continue
		}
		if o.Fanin0.ID > o.Fanin1.ID {
			return &CheckError{1, id, "fanin0.ID must be <= fanin1.ID"}
		}
		if o.Fanin0.ID == o.Fanin1.ID {
			return &CheckError{2, id, "fanins target the same node"}
		}
		if o.Fanin0.ID == m.const1ID || o.Fanin1.ID == m.const1ID {
			return &CheckError{2, id, "a fanin regularizes to the constant"}
		}
	}
	return nil
}

// checkStrashing verifies invariant 3: no two live AND nodes share a
// (fanin0, fanin1) pair, by collecting every AND's canonical fanin key
// into a fresh map, independent of the hash table.
func (m *Manager) checkStrashing() error {
	seen := make(map[[4]int32]int32)
	n := m.objs.Len()
	for id := int32(0); id < int32(n); id++ {
		o := m.Object(id)
		if o == nil || !o.IsAnd() {
			continue
		}
		key := [4]int32{o.Fanin0.ID, b2i32(o.Fanin0.Compl), o.Fanin1.ID, b2i32(o.Fanin1.Compl)}
		if other, ok := seen[key]; ok {
			return &CheckError{3, id, fmt.Sprintf("duplicates object %d's fanin pair", other)}
		}
		seen[key] = id
	}
	return nil
}

func b2i32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// checkRefCounts verifies invariant 4 by recomputing every non-terminal
// node's reference count from scratch and comparing against the stored
// value; the constant, CIs and COs are not compared.
func (m *Manager) checkRefCounts() error {
	n := m.objs.Len()
	computed := make(map[int32]int32, n)
	for id := int32(0); id < int32(n); id++ {
		o := m.Object(id)
		if o == nil {
			continue
		}
		if !o.Fanin0.IsNil() {
			computed[o.Fanin0.ID]++
		}
		if o.IsAnd() && !o.Fanin1.IsNil() {
			computed[o.Fanin1.ID]++
		}
	}
	for id := int32(0); id < int32(n); id++ {
		o := m.Object(id)
		if o == nil || isTerminal(o) {
			continue
		}
		if o.Refs != computed[id] {
			return &CheckError{4, id, fmt.Sprintf("stored refs=%d, computed=%d", o.Refs, computed[id])}
		}
	}
	return nil
}

// checkPhase verifies invariant 6 for every live AND node.
func (m *Manager) checkPhase() error {
	n := m.objs.Len()
	for id := int32(0); id < int32(n); id++ {
		o := m.Object(id)
		if o == nil || !o.IsAnd() {
			continue
		}
		want := m.computePhase(o.Fanin0, o.Fanin1)
		if o.Phase != want {
			return &CheckError{6, id, fmt.Sprintf("stored phase=%v, computed=%v", o.Phase, want)}
		}
	}
	return nil
}
