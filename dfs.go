package aig

import "fmt"

// CycleError reports that following fanin edges from a CO revisited a
// node still on the current DFS path - a combinational cycle, which
// violates invariant 5 and is always an engine bug, not a user error.
type CycleError struct {
	NodeID int32
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("aig: combinational cycle detected at node %d", e.NodeID)
}

// isTerminal reports whether o is one of the object kinds that the
// reference-counting sweep and the deletion work-list must never touch:
// the constant, a combinational input, or a combinational output.
func isTerminal(o *Object) bool {
	return o.Type == TypeConst1 || o.Type == TypeCI || o.Type == TypeCO
}

// DFS returns every object reachable from the combinational outputs, in
// post-order (a node's fanins always precede it), using two traversal
// IDs in one pass to additionally detect combinational cycles, per the
// "Cycle detection" design: the current counter marks "on the current
// path", counter-1 marks "fully processed, not on the path". If
// nodesOnly is true, only internal AND (and Buf) nodes are returned;
// otherwise the constant, every CI reached from a CO, and the COs
// themselves are included too.
func (m *Manager) DFS(nodesOnly bool) ([]int32, error) {
	// Two bumps, so that "processed" (cur-1) is an ID no earlier
	// traversal has stamped on any object.
	m.incrementTravID()
	cur := m.incrementTravID()
	processed := cur - 1

	var result []int32
	if !nodesOnly {
		result = append(result, m.const1ID)
		if o := m.Object(m.const1ID); o != nil {
			o.TravID = processed
		}
	} else {
		for _, ci := range m.cis {
			if o := m.Object(ci); o != nil {
				o.TravID = processed
			}
		}
	}

	var visit func(id int32) error
	visit = func(id int32) error {
		o := m.Object(id)
		if o == nil {
			return nil
		}
		if o.TravID == processed {
			return nil // fully processed on an earlier branch
		}
		if o.TravID == cur {
			return &CycleError{NodeID: id} // still on the current path
		}
		o.TravID = cur // mark "on path"
		// Only ANDs, COs and Bufs have fanins; the constant and CIs are
		// leaves whatever their fanin fields hold.
		if (o.IsAnd() || o.IsCO() || o.IsBuf()) && !o.Fanin0.IsNil() {
			if err := visit(o.Fanin0.ID); err != nil {
				return err
			}
		}
		if o.IsAnd() && !o.Fanin1.IsNil() {
			if err := visit(o.Fanin1.ID); err != nil {
				return err
			}
		}
		o.TravID = processed // fully processed, off the path
		if !nodesOnly || o.IsAnd() || o.IsBuf() {
			result = append(result, id)
		}
		return nil
	}

	for _, co := range m.cos {
		o := m.Object(co)
		if o == nil {
			continue
		}
		start := o.Fanin0.ID
		if !nodesOnly {
			// a CO itself is visited too when collecting all objects.
			if o.TravID != processed {
				if err := visit(start); err != nil {
					return nil, err
				}
				o.TravID = cur
				result = append(result, co)
				o.TravID = processed
			}
			continue
		}
		if err := visit(start); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// IsAcyclic runs a DFS purely to check for cycles and discards the
// result, for use by Check and by the test-suite property "after every
// pass, IsAcyclic(net) holds".
func (m *Manager) IsAcyclic() bool {
	_, err := m.DFS(true)
	return err == nil
}

// coneContains reports whether target is reachable by following fanin
// edges from root (root included). It is the defensive cycle check the
// design notes call for before Replace commits a rewiring: "new" must
// never depend on "old"'s cone.
func (m *Manager) coneContains(root, target int32) bool {
	if root == target {
		return true
	}
	cur := m.incrementTravID()
	visited := make(map[int32]bool)
	stack := []int32{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		if id == target {
			return true
		}
		o := m.Object(id)
		if o == nil {
			continue
		}
		o.TravID = cur
		if !o.Fanin0.IsNil() {
			stack = append(stack, o.Fanin0.ID)
		}
		if o.IsAnd() && !o.Fanin1.IsNil() {
			stack = append(stack, o.Fanin1.ID)
		}
	}
	return false
}

// ConeSize counts the number of distinct AND nodes in the cone rooted at
// e (e's own inversion is irrelevant; the cone is a set of objects, not
// edges), via Aig_DagSize's mark/unmark pattern adapted to the object's
// MarkA bit.
func (m *Manager) ConeSize(e Edge) int {
	root := m.Object(e.ID)
	if root == nil {
		return 0
	}
	n := m.coneCountAndMark(root)
	m.coneUnmark(root)
	return n
}

func (m *Manager) coneCountAndMark(o *Object) int {
	if !o.IsAnd() || o.MarkA {
		return 0
	}
	count := 1
	if f0 := m.Object(o.Fanin0.ID); f0 != nil {
		count += m.coneCountAndMark(f0)
	}
	if f1 := m.Object(o.Fanin1.ID); f1 != nil {
		count += m.coneCountAndMark(f1)
	}
	o.MarkA = true
	return count
}

func (m *Manager) coneUnmark(o *Object) {
	if !o.IsAnd() || !o.MarkA {
		return
	}
	if f0 := m.Object(o.Fanin0.ID); f0 != nil {
		m.coneUnmark(f0)
	}
	if f1 := m.Object(o.Fanin1.ID); f1 != nil {
		m.coneUnmark(f1)
	}
	o.MarkA = false
}
