package aig

// deleteNode removes id and the dangling portion of its MFFC: once id's
// own reference count has dropped to zero, its fanins are dereferenced
// and, for any fanin that itself reaches zero references, queued for the
// same treatment. The design notes call for the recursion implicit in
// the C source's Aig_ObjDelete_rec to be converted to an explicit
// work-list to avoid stack overflow on the deep MFFCs real netlists
// produce; this is that work-list. Returns the number of objects
// removed.
func (m *Manager) deleteNode(id int32) int {
	removed := 0
	stack := []int32{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		o := m.Object(cur)
		if o == nil || o.Refs != 0 || isTerminal(o) {
			continue // re-referenced meanwhile, already gone, or never deletable
		}

		if o.IsAnd() {
			m.hash.delete(m, o)
		}
		for _, fin := range [2]Edge{o.Fanin0, o.Fanin1} {
			if fin.IsNil() {
				continue
			}
			if fo := m.Object(fin.ID); fo != nil {
				fo.Refs--
				if fo.Refs == 0 && !isTerminal(fo) {
					stack = append(stack, fo.ID)
				}
			}
		}

		m.counts[o.Type]--
		m.nDeleted++
		o.Type = TypeDead
		m.objs.Recycle(int(cur))
		removed++
	}
	if removed > 0 {
		m.invalidateFanout()
	}
	return removed
}

// Cleanup sweeps every live AND/Buf object with zero references and
// deletes it (cascading through the work-list above), mirroring
// Aig_ManCleanup. It returns the number of objects removed. Callers run
// this after any bulk edit that may have orphaned nodes without routing
// each one through Replace - e.g. after reconstructing a window's
// output.
func (m *Manager) Cleanup() int {
	total := 0
	n := m.objs.Len()
	for id := int32(0); id < int32(n); id++ {
		o := m.Object(id)
		if o == nil || isTerminal(o) || o.Refs != 0 {
			continue
		}
		total += m.deleteNode(id)
	}
	return total
}

// patchFanin rewires the given fanin slot (0 or 1) of consumer to
// newEdge, maintaining every invariant the structural-hash table
// depends on: the table entry for a hashed (AND) consumer is removed
// before the mutation and reinserted after, fanin order is restored if
// the patch broke it, and phase is recomputed. If, after patching, the
// resulting (fanin0, fanin1) pair collides with a *different* existing
// AND object (an extremely rare case which can only arise if the
// replacement driver introduces a new structural coincidence), the
// caller gets that existing object back instead of having patchFanin
// insert a duplicate: the fix-up is to replace consumer wholesale with
// it, which the caller's work-list does.
func (m *Manager) patchFanin(consumer *Object, slot int, newEdge Edge) (collidedWith int32, collided bool) {
	var oldEdge Edge
	if slot == 0 {
		oldEdge = consumer.Fanin0
	} else {
		oldEdge = consumer.Fanin1
	}
	m.deref(oldEdge)

	hashed := consumer.IsAnd()
	if hashed {
		m.hash.delete(m, consumer)
	}

	if slot == 0 {
		consumer.Fanin0 = newEdge
	} else {
		consumer.Fanin1 = newEdge
	}
	m.ref(newEdge)

	if hashed {
		if consumer.Fanin1.ID < consumer.Fanin0.ID {
			consumer.Fanin0, consumer.Fanin1 = consumer.Fanin1, consumer.Fanin0
		}
		consumer.Phase = m.computePhase(consumer.Fanin0, consumer.Fanin1)

		if existing, ok := m.hash.lookup(m, consumer.Fanin0, consumer.Fanin1); ok && existing != consumer.ID {
			// Don't reinsert consumer: it now duplicates existing. Leave it
			// out of the table; the caller will replace it wholesale.
			return existing, true
		}
		m.hash.insert(m, consumer)
	}
	m.invalidateFanout()
	return 0, false
}

// Replace substitutes new for every occurrence of old across the AIG:
// every fanin edge pointing at old.ID is rewired to new.ID, XORing the
// edge's own complement bit with new's (new may be a differently phased
// equivalent of old), and old's now-dangling MFFC is recursively
// deleted. Replace panics if new's cone depends on old, which would
// create a combinational cycle; this check is always on, not just in
// debug builds, per the design note that a dependency cycle here is
// always an engine bug worth catching immediately rather than
// discovering later as a corrupted graph.
//
// old must name a node directly (Replace ignores old's own complement
// bit: it is the object, not a signal, being replaced). Replacing the
// constant or a CI is not supported.
func (m *Manager) Replace(old, new Edge) {
	oldObj := m.Object(old.ID)
	if oldObj == nil {
		panic("aig: Replace: old object not found")
	}
	if isTerminal(oldObj) {
		panic("aig: Replace: cannot replace a constant, CI, or CO")
	}
	if m.coneContains(new.ID, old.ID) {
		panic("aig: Replace: new depends on old's own cone")
	}

	type pending struct {
		oldID int32
		edge  Edge
	}
	queue := []pending{{old.ID, new}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if o := m.Object(cur.oldID); o == nil || isTerminal(o) {
			continue
		}

		fanouts := append([]int32(nil), m.Fanouts(cur.oldID)...)
		for _, consumerID := range fanouts {
			consumer := m.Object(consumerID)
			if consumer == nil {
				continue
			}
			if !consumer.Fanin0.IsNil() && consumer.Fanin0.ID == cur.oldID {
				ne := Edge{ID: cur.edge.ID, Compl: consumer.Fanin0.Compl != cur.edge.Compl}
				if existing, collided := m.patchFanin(consumer, 0, ne); collided {
					queue = append(queue, pending{consumer.ID, Edge{ID: existing}})
					continue
				}
			}
			if consumer.IsAnd() && !consumer.Fanin1.IsNil() && consumer.Fanin1.ID == cur.oldID {
				ne := Edge{ID: cur.edge.ID, Compl: consumer.Fanin1.Compl != cur.edge.Compl}
				if existing, collided := m.patchFanin(consumer, 1, ne); collided {
					queue = append(queue, pending{consumer.ID, Edge{ID: existing}})
				}
			}
		}

		m.deleteNode(cur.oldID)
	}
}
