package aig

import "sort"

// Window is a reconvergence-driven cut grown one level at a time around
// a root node: Leaves are its current cut boundary, Cone is the larger
// containing boundary grown past it (filled only when FindWindow is
// called with growContaining; refactor and resub do not request it),
// and Visited is every node touched while growing either,
// kept so the caller - or FindWindow itself - can clear the MarkB scratch
// bits it used.
type Window struct {
	Leaves  []int32
	Cone    []int32
	Visited []int32
}

// FindWindow grows a fanin-limited, reconvergence-driven cut around root
// (which must be a live AND node), then optionally continues growing a
// second, larger containing cut from the same starting boundary.
// nodeSizeMax/nodeFanStop bound the inner cut; coneSizeMax/coneFanStop
// (only used when growContaining is true) bound the outer one, and must
// be larger than the inner bounds for the outer growth to do anything.
func (m *Manager) FindWindow(root int32, nodeSizeMax, nodeFanStop int, growContaining bool, coneSizeMax, coneFanStop int) *Window {
	rootObj := m.Object(root)
	if rootObj == nil || !rootObj.IsAnd() {
		return &Window{}
	}

	w := &Window{}
	mark := func(id int32) {
		if o := m.Object(id); o != nil && !o.MarkB {
			o.MarkB = true
			w.Visited = append(w.Visited, id)
		}
	}
	mark(root)
	mark(rootObj.Fanin0.ID)
	mark(rootObj.Fanin1.ID)
	w.Leaves = []int32{rootObj.Fanin0.ID, rootObj.Fanin1.ID}

	for m.buildCutLevelOne(&w.Leaves, &w.Visited, nodeSizeMax, nodeFanStop) {
	}

	if growContaining {
		w.Cone = append([]int32(nil), w.Leaves...)
		for m.buildCutLevelOne(&w.Cone, &w.Visited, coneSizeMax, coneFanStop) {
		}
	}

	for _, id := range w.Visited {
		if o := m.Object(id); o != nil {
			o.MarkB = false
		}
	}
	return w
}

// leafCost returns the number of new leaves admitting id into the
// window would require, or a large sentinel if id cannot be expanded at
// all (it is a CI) or has too many fanouts to be worth expanding
// through.
func (m *Manager) leafCost(id int32, fanStop int) int {
	o := m.Object(id)
	if o == nil || o.IsCI() || o.IsConst1() {
		return 999
	}
	cost := 0
	if f0 := m.Object(o.Fanin0.ID); f0 == nil || !f0.MarkB {
		cost++
	}
	if f1 := m.Object(o.Fanin1.ID); f1 == nil || !f1.MarkB {
		cost++
	}
	if cost < 2 {
		return cost
	}
	if len(m.Fanouts(id)) > fanStop {
		return 999
	}
	return cost
}

// buildCutLevelOne looks at the current leaves and tries to replace the
// cheapest one with its own fanins, growing the cut by as little as
// possible; it reports whether it made progress (the caller loops until
// it returns false).
func (m *Manager) buildCutLevelOne(leaves *[]int32, visited *[]int32, sizeLimit, fanStop int) bool {
	costBest := 100
	bestIdx := -1
	var bestLevel int32 = -1
	for i, id := range *leaves {
		cost := m.leafCost(id, fanStop)
		o := m.Object(id)
		var level int32
		if o != nil {
			level = o.Level
		}
		if cost < costBest || (cost == costBest && level > bestLevel) {
			costBest = cost
			bestIdx = i
			bestLevel = level
		}
		if costBest == 0 {
			break
		}
	}
	if bestIdx < 0 {
		return false
	}
	if len(*leaves)-1+costBest > sizeLimit {
		return false
	}

	best := (*leaves)[bestIdx]
	*leaves = append((*leaves)[:bestIdx], (*leaves)[bestIdx+1:]...)

	bo := m.Object(best)
	for _, fin := range [2]Edge{bo.Fanin0, bo.Fanin1} {
		fo := m.Object(fin.ID)
		if fo == nil || fo.MarkB {
			continue
		}
		fo.MarkB = true
		*leaves = append(*leaves, fin.ID)
		*visited = append(*visited, fin.ID)
	}
	return true
}

// sortedCopy is a small helper refactor and resub share for producing
// a stable, comparable leaf ordering out of a freshly grown window (ABC relies on the insertion order of its
// Vec_Ptr_t; a Go port makes the same determinism explicit instead).
func sortedCopy(ids []int32) []int32 {
	out := append([]int32(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
