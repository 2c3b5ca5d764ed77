package aig

// fanoutIndex is the optional, lazily built fanout index from the data
// model: for every node it holds the list of (consumer, slot) pairs that
// reference it, where slot is 0 or 1 depending on which fanin position
// of the consumer holds the edge.
//
// The C source packs this as an intrusive doubly linked list through a
// shared int array (pFanData) so that adding one fanout entry needs no
// allocation. A Go port doesn't need that trick (the "Cyclic pNext
// chains" design note already recommends dropping pointer-chasing
// tricks that aren't interface, just implementation, for the strash
// table; the same reasoning applies here): a plain map of slices is
// simpler, and just as easily built lazily and torn down, while keeping
// the same amortized cost per query once built.
type fanoutIndex struct {
	byTarget map[int32][]fanoutEdge
}

type fanoutEdge struct {
	consumer int32
	slot     uint8 // 0 or 1: which fanin slot of consumer holds the edge
}

// invalidateFanout tears down the fanout index. Every mutation that adds
// or removes a fanin edge calls this; the next FanoutIndex rebuilds it
// from scratch. This mirrors "the fanout index is built lazily and torn
// down when no longer needed".
func (m *Manager) invalidateFanout() { m.fanout = nil }

// buildFanout constructs the fanout index by one pass over all live
// objects.
func (m *Manager) buildFanout() *fanoutIndex {
	idx := &fanoutIndex{byTarget: make(map[int32][]fanoutEdge)}
	n := m.objs.Len()
	for id := int32(0); id < int32(n); id++ {
		o := m.Object(id)
		if o == nil {
			continue
		}
		if !o.Fanin0.IsNil() {
			t := o.Fanin0.ID
			idx.byTarget[t] = append(idx.byTarget[t], fanoutEdge{consumer: id, slot: 0})
		}
		if o.IsAnd() && !o.Fanin1.IsNil() {
			t := o.Fanin1.ID
			idx.byTarget[t] = append(idx.byTarget[t], fanoutEdge{consumer: id, slot: 1})
		}
	}
	return idx
}

// Fanouts returns the IDs of every object with a fanin edge pointing at
// node, building the fanout index on first use and caching it until the
// next structural mutation.
func (m *Manager) Fanouts(node int32) []int32 {
	if m.fanout == nil {
		m.fanout = m.buildFanout()
	}
	edges := m.fanout.byTarget[node]
	out := make([]int32, 0, len(edges))
	seen := make(map[int32]bool, len(edges))
	for _, e := range edges {
		if !seen[e.consumer] {
			seen[e.consumer] = true
			out = append(out, e.consumer)
		}
	}
	return out
}
