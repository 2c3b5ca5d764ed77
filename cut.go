package aig

import "sort"

// Cut is a k-feasible cut: a bounded-support subgraph boundary rooted at
// one node. Leaves is kept sorted ascending by ID; Sig is the bitwise-OR
// of 1<<(leafID mod 32) over the leaves, a cheap pre-filter for
// dominance checks; TT is the cut's 16-bit truth table, populated only
// when the enumerator was built with useTruth.
type Cut struct {
	Root   int32
	Leaves []int32
	Sig    uint32
	Cost   int
	TT     uint16
}

// isTrivial reports whether c is a node's own one-leaf cut (the base
// case every other cut at that node is built from).
func (c *Cut) isTrivial() bool { return len(c.Leaves) == 1 && c.Leaves[0] == c.Root }

func leafSignature(id int32) uint32 { return uint32(1) << (uint32(id) % 32) }

// isSubset reports whether a (sorted ascending) is a subset of b (sorted
// ascending).
func isSubset(a, b []int32) bool {
	if len(a) > len(b) {
		return false
	}
	j := 0
	for _, x := range a {
		for j < len(b) && b[j] < x {
			j++
		}
		if j >= len(b) || b[j] != x {
			return false
		}
		j++
	}
	return true
}

func unionSorted(a, b []int32) []int32 {
	out := make([]int32, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// CutEnumerator computes and memoizes k-feasible cuts across one
// manager, per the design note that replaces the source's shared
// pData/Scratch convention with a per-pass side table keyed by node ID.
type CutEnumerator struct {
	m        *Manager
	NLeafMax int
	NCutsMax int
	UseTruth bool

	cuts map[int32][]*Cut
}

// NewCutEnumerator creates an enumerator bounded to nLeafMax leaves and
// nCutsMax kept cuts per node. useTruth additionally computes and
// stretches truth tables, needed by the rewrite-library matcher but
// wasted work for a caller that only cares about leaf sets.
func NewCutEnumerator(m *Manager, leafMax, cutsMax int, useTruth bool) *CutEnumerator {
	if leafMax > nLeafMax {
		panic("aig: NewCutEnumerator: leaf budget exceeds the 16-bit truth table width")
	}
	return &CutEnumerator{
		m:        m,
		NLeafMax: leafMax,
		NCutsMax: cutsMax,
		UseTruth: useTruth,
		cuts:     make(map[int32][]*Cut),
	}
}

// Cuts returns the cut list for id (root id, not an Edge - cuts describe
// a node's structure, not a signal's polarity), computing it (and every
// ancestor cut it depends on) on first request.
func (ce *CutEnumerator) Cuts(id int32) []*Cut {
	if cached, ok := ce.cuts[id]; ok {
		return cached
	}
	return ce.computeCuts(id)
}

func (ce *CutEnumerator) trivialCut(id int32) *Cut {
	c := &Cut{Root: id, Leaves: []int32{id}, Sig: leafSignature(id), Cost: 0}
	if ce.UseTruth {
		c.TT = elemTT[0]
	}
	return c
}

func (ce *CutEnumerator) computeCuts(id int32) []*Cut {
	o := ce.m.Object(id)
	if o == nil {
		return nil
	}
	if !o.IsAnd() {
		list := []*Cut{ce.trivialCut(id)}
		ce.cuts[id] = list
		return list
	}

	cuts0 := ce.Cuts(o.Fanin0.ID)
	cuts1 := ce.Cuts(o.Fanin1.ID)

	var merged []*Cut
	for _, c0 := range cuts0 {
		for _, c1 := range cuts1 {
			nc, ok := ce.merge(id, c0, c1, o.Fanin0.Compl, o.Fanin1.Compl)
			if !ok {
				continue
			}
			merged = insertFiltered(merged, nc)
		}
	}
	merged = append(merged, ce.trivialCut(id))

	if len(merged) > ce.NCutsMax {
		sort.Slice(merged, func(i, j int) bool { return merged[i].Cost < merged[j].Cost })
		merged = merged[:ce.NCutsMax]
	}
	sort.SliceStable(merged, func(i, j int) bool { return len(merged[i].Leaves) < len(merged[j].Leaves) })

	ce.cuts[id] = merged
	return merged
}

// merge combines a cut from each child into a candidate cut rooted at
// id, per §4.4: union the (sorted) leaf lists, discard if over budget,
// OR the signatures, and - if truth tables are enabled - stretch each
// child's table over the merged leaf set, apply that child's edge
// inversion, and AND the two together.
func (ce *CutEnumerator) merge(id int32, c0, c1 *Cut, compl0, compl1 bool) (*Cut, bool) {
	leaves := unionSorted(c0.Leaves, c1.Leaves)
	if len(leaves) > ce.NLeafMax {
		return nil, false
	}
	nc := &Cut{
		Root:   id,
		Leaves: leaves,
		Sig:    c0.Sig | c1.Sig,
		Cost:   len(leaves),
	}
	if ce.UseTruth {
		tt0 := stretchTruth(c0.TT, c0.Leaves, leaves)
		tt1 := stretchTruth(c1.TT, c1.Leaves, leaves)
		if compl0 {
			tt0 = ^tt0
		}
		if compl1 {
			tt1 = ^tt1
		}
		nc.TT = tt0 & tt1
	}
	return nc, true
}

// insertFiltered adds nc to list, applying the dominance filter: if an
// existing cut already dominates nc, nc is dropped; otherwise any
// existing cuts nc dominates are dropped and nc is kept.
func insertFiltered(list []*Cut, nc *Cut) []*Cut {
	for _, existing := range list {
		if dominates(existing, nc) {
			return list
		}
	}
	kept := list[:0:0]
	for _, existing := range list {
		if !dominates(nc, existing) {
			kept = append(kept, existing)
		}
	}
	return append(kept, nc)
}

// dominates reports whether a dominates b: a's leaf set is a subset of
// b's, so b is redundant once a exists (any separating assignment for
// b's support also separates a's, and a costs no more leaves). The
// signature check is a cheap pre-filter before the explicit subset walk.
func dominates(a, b *Cut) bool {
	if a.Sig&^b.Sig != 0 {
		return false
	}
	if len(a.Leaves) > len(b.Leaves) {
		return false
	}
	return isSubset(a.Leaves, b.Leaves)
}

// Invalidate discards all memoized cuts, forcing recomputation; callers
// run this after any structural mutation (And, Replace, Cleanup) that
// could have invalidated cached cuts.
func (ce *CutEnumerator) Invalidate() { ce.cuts = make(map[int32][]*Cut) }
