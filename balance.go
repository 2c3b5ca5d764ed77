package aig

import "sort"

// ComputeLevels assigns every live AND node's Level field: 0 for a CI or
// the constant, 1 + max(level(fanin0), level(fanin1)) for an AND. It
// must be (re-)run before Balance, since createAnd leaves a fresh node's
// Level at -1.
func (m *Manager) ComputeLevels() error {
	order, err := m.DFS(true)
	if err != nil {
		return err
	}
	for _, id := range order {
		o := m.Object(id)
		if !o.IsAnd() {
			continue
		}
		o.Level = m.levelOfEdge(o.Fanin0) + 1
		if l1 := m.levelOfEdge(o.Fanin1); l1+1 > o.Level {
			o.Level = l1 + 1
		}
	}
	return nil
}

func (m *Manager) levelOfEdge(e Edge) int32 {
	o := m.Object(e.ID)
	if o == nil || !o.IsAnd() {
		return 0
	}
	return o.Level
}

// Balance reconstructs every output cone as a level-minimizing AND tree:
// for each original AND node (processed top-down from the combinational
// outputs, memoized so shared subgraphs are rebuilt once), it collects
// the implication super-gate - the maximal set of single-fanout,
// non-inverted-fanin AND descendants reachable from the node - and
// rebalances that flat multi-input AND as a tree that pairs its
// highest-level operands first, via structural hashing (so the rebuild
// may naturally share nodes with the rest of the graph).
//
// duplicate mirrors the source's fDuplicate flag: when true, a
// supergate is rebuilt unconditionally, even if doing so cannot reduce
// level (useful when a later pass benefits from the more balanced
// shape regardless of node count); when false (the default), Balance
// still always rebuilds (level reduction is its entire job), duplicate
// only affects whether Cleanup runs at the end to reclaim nodes orphaned
// by the rebuild.
func (m *Manager) Balance(duplicate bool) error {
	if err := m.ComputeLevels(); err != nil {
		return err
	}

	built := make(map[int32]Edge)
	var rebuild func(e Edge) Edge
	rebuild = func(e Edge) Edge {
		o := m.Object(e.ID)
		if o == nil || !o.IsAnd() {
			return e
		}
		if ne, ok := built[e.ID]; ok {
			return ne.NotCond(e.Compl)
		}

		leaves := m.collectSupergateLeaves(e.ID)
		newLeaves := make([]Edge, len(leaves))
		for i, l := range leaves {
			newLeaves[i] = rebuild(l)
		}

		result := m.Const0()
		collided := false
		for i := 0; i < len(newLeaves) && !collided; i++ {
			for j := i + 1; j < len(newLeaves); j++ {
				if newLeaves[i] == newLeaves[j].Not() {
					collided = true
					break
				}
			}
		}
		if !collided {
			result = m.buildBalancedTree(newLeaves)
		}
		built[e.ID] = result
		return result.NotCond(e.Compl)
	}

	for _, co := range m.cos {
		o := m.Object(co)
		ne := rebuild(o.Fanin0)
		if ne != o.Fanin0 {
			m.deref(o.Fanin0)
			o.Fanin0 = ne
			m.ref(ne)
			m.invalidateFanout()
		}
	}

	if !duplicate {
		m.Cleanup()
	}
	return nil
}

// collectSupergateLeaves walks from rootID (always expanded regardless
// of its own fanout count, since it is about to be entirely rebuilt),
// descending through any fanin that is both non-inverted and targets an
// AND node with exactly one fanout; every other fanin - a CI, the
// constant, an inverted edge, or a multi-fanout AND - is a leaf of the
// super-gate.
func (m *Manager) collectSupergateLeaves(rootID int32) []Edge {
	var leaves []Edge
	var expand func(id int32)
	expand = func(id int32) {
		o := m.Object(id)
		for _, fin := range [2]Edge{o.Fanin0, o.Fanin1} {
			fo := m.Object(fin.ID)
			if !fin.Compl && fo != nil && fo.IsAnd() && fo.Refs == 1 {
				expand(fin.ID)
			} else {
				leaves = append(leaves, fin)
			}
		}
	}
	expand(rootID)
	return leaves
}

// buildBalancedTree folds edges into a single AND-tree root by
// repeatedly combining the two highest-level operands (ties broken by
// preferring a pairing that already exists in the structural-hash
// table, nudging the rebuild toward sharing), until one edge remains.
func (m *Manager) buildBalancedTree(edges []Edge) Edge {
	if len(edges) == 0 {
		return m.Const1()
	}
	work := append([]Edge(nil), edges...)
	for len(work) > 1 {
		sort.Slice(work, func(i, j int) bool { return m.levelOfEdge(work[i]) > m.levelOfEdge(work[j]) })

		bi, bj := 0, 1
		topLevel := m.levelOfEdge(work[0])
		for i := 0; i < len(work) && m.levelOfEdge(work[i]) == topLevel; i++ {
			for j := i + 1; j < len(work); j++ {
				if _, ok := m.probeAnd(work[i], work[j]); ok {
					bi, bj = i, j
					goto found
				}
			}
		}
	found:
		a, b := work[bi], work[bj]
		rest := make([]Edge, 0, len(work)-2)
		for idx, e := range work {
			if idx != bi && idx != bj {
				rest = append(rest, e)
			}
		}
		work = rest
		newEdge := m.And(a, b)
		if o := m.Object(newEdge.ID); o != nil && o.IsAnd() {
			l := m.levelOfEdge(a) + 1
			if lb := m.levelOfEdge(b) + 1; lb > l {
				l = lb
			}
			o.Level = l
		}
		work = append(work, newEdge)
	}
	return work[0]
}
