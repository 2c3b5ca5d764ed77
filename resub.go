package aig

import "github.com/aigopt/aig/internal/bitset"

// ResubParams bounds the cut size and the extra-node budget, mirroring
// the `resub` command's -K and -N flags.
type ResubParams struct {
	CutSize   int // leaf budget for the resubstitution window, in [4,16]
	ExtraNode int // extra nodes the replacement may cost, in [0,3]
}

// DefaultResubParams matches the command's documented defaults.
func DefaultResubParams() ResubParams { return ResubParams{CutSize: 8, ExtraNode: 1} }

// div2Max caps the number of divisors collected for a window; div1Max
// caps how many of them findResub1 and findResub2 combine.
const (
	div1Max = 150
	div2Max = 500
)

// divisor is a single resubstitution candidate: an edge in the live AIG
// together with the truth table it simulates to over the window's
// leaves, so repeated candidate evaluation never re-simulates.
type divisor struct {
	edge Edge
	tt   uint16
}

// Resub runs one pass of resubstitution over every AND node, per §4.8.
// Nodes are not filtered by MFFC size: each one is tried.
func (m *Manager) Resub(p ResubParams) (accepted int, err error) {
	upper := m.ObjIDUpperBound()
	for id := int32(0); id < upper; id++ {
		o := m.Object(id)
		if o == nil || !o.IsAnd() {
			continue
		}
		if m.resubNode(id, p) {
			accepted++
		}
	}
	return accepted, nil
}

func (m *Manager) resubNode(id int32, p ResubParams) bool {
	leafMax := p.CutSize
	if leafMax > nLeafMax {
		leafMax = nLeafMax // the 16-bit truth table format bounds this engine to 4 in practice
	}
	win := m.FindWindow(id, leafMax, 1<<30, false, 0, 0)
	leaves := sortedCopy(win.Leaves)
	if len(leaves) == 0 || len(leaves) > nLeafMax {
		return false
	}

	mffcLeaves := leaves
	mffcSize := m.MffcSize(Edge{ID: id}, mffcLeaves)
	if mffcSize == 0 {
		return false
	}

	rootTT := m.simulateCone(Edge{ID: id}, leaves)
	width := 1 << uint(len(leaves))
	careMask := uint16((1 << uint(width)) - 1) // whole window simulated: every pattern is "cared about"

	divs := m.collectDivisors(id, leaves)
	if len(divs) > div2Max {
		divs = divs[:div2Max]
	}

	if cand, ok := findResub0(rootTT, careMask, divs); ok {
		return m.applyResub(id, cand)
	}
	if p.ExtraNode >= 1 {
		before := m.NumAnds()
		if cand, ok := findResub1(m, rootTT, careMask, divs); ok {
			if m.applyResub(id, cand) {
				return true
			}
			m.reclaimAbove(before)
		}
	}
	if p.ExtraNode >= 2 {
		bound := divs
		if len(bound) > div1Max {
			bound = bound[:div1Max]
		}
		before := m.NumAnds()
		if cand, ok := findResub2(m, rootTT, careMask, bound); ok {
			if m.applyResub(id, cand) {
				return true
			}
			m.reclaimAbove(before)
		}
	}
	return false
}

// applyResub commits a candidate replacement edge for node id, rejecting
// (without touching it) if it would create a dependency cycle; any
// freshly built candidate nodes are reclaimed by the caller via
// reclaimAbove.
func (m *Manager) applyResub(id int32, edge Edge) bool {
	if edge.ID == id {
		return false
	}
	if m.coneContains(edge.ID, id) {
		return false
	}
	m.Replace(Edge{ID: id}, edge)
	return true
}

// reclaimAbove deletes every currently-zero-ref AND node created since
// the NumAnds() snapshot before. Searching/building a resub candidate
// via And/Or may allocate new nodes that strashing didn't dedup away;
// if the candidate is ultimately rejected those nodes are orphaned, and
// deleteNode is a safe no-op on anything still referenced elsewhere.
func (m *Manager) reclaimAbove(before int) {
	if m.NumAnds() == before {
		return
	}
	upper := m.ObjIDUpperBound()
	for id := upper - 1; id >= 0; id-- {
		o := m.Object(id)
		if o == nil || !o.IsAnd() {
			continue
		}
		if o.Refs == 0 {
			m.deleteNode(id)
		}
	}
}

// collectDivisors gathers candidate divisor nodes for id's window: the
// cut leaves themselves, then (per §4.8) every AND node inside the
// window whose both fanins are already divisors, found by a bounded
// scan of the manager in ID order (an approximation of the source's
// fanout-driven BFS that is simpler and, for the modest window sizes
// this engine targets, visits the same practical candidate set).
func (m *Manager) collectDivisors(rootID int32, leaves []int32) []divisor {
	divs := make([]divisor, 0, len(leaves)+8)

	// isDivisor starts empty and grows as larger IDs are set: a plain,
	// word-backed bit vector (internal/bitset, the teacher's own
	// bits-and-blooms-derived type) rather than a map, since membership
	// here is a dense, ID-indexed predicate, exactly what bitset.BitSet
	// is for.
	isDivisor := make(bitset.BitSet, 0)
	for i, l := range leaves {
		isDivisor.Set(uint(l))
		divs = append(divs, divisor{edge: Edge{ID: l}, tt: elemTT[i]})
	}

	upper := m.ObjIDUpperBound()
	for id := int32(0); id < upper && len(divs) < div2Max; id++ {
		if id == rootID || isDivisor.Test(uint(id)) {
			continue
		}
		o := m.Object(id)
		if o == nil || !o.IsAnd() {
			continue
		}
		if !isDivisor.Test(uint(o.Fanin0.ID)) || !isDivisor.Test(uint(o.Fanin1.ID)) {
			continue
		}
		if m.coneContains(id, rootID) {
			continue // would cross back into the root's own cone
		}
		tt := m.simulateCone(Edge{ID: id}, leaves)
		isDivisor.Set(uint(id))
		divs = append(divs, divisor{edge: Edge{ID: id}, tt: tt})
	}
	return divs
}

// findResub0 looks for a single divisor (possibly inverted) that matches
// root exactly over the cared-about patterns - a zero-extra-node
// replacement.
func findResub0(rootTT, care uint16, divs []divisor) (Edge, bool) {
	for _, d := range divs {
		if (d.tt&care) == (rootTT & care) {
			return d.edge, true
		}
		if (^d.tt&care) == (rootTT & care) {
			return d.edge.Not(), true
		}
	}
	return Edge{}, false
}

// findResub1 searches for a one-node (AND or OR of two divisors, with
// independent input inversions) replacement, bounded by div1Max
// candidates per §4.8. On a match it builds the real edge in the live
// graph via m.And/m.Or before returning.
func findResub1(m *Manager, rootTT, care uint16, divs []divisor) (Edge, bool) {
	n := len(divs)
	if n > div1Max {
		n = div1Max
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := divs[i], divs[j]
			for _, na := range [2]bool{false, true} {
				for _, nb := range [2]bool{false, true} {
					ea, eb := a.edge, b.edge
					ta, tb := a.tt, b.tt
					if na {
						ta = ^ta
						ea = ea.Not()
					}
					if nb {
						tb = ^tb
						eb = eb.Not()
					}
					if (ta&tb)&care == rootTT&care {
						return m.And(ea, eb), true
					}
					if (ta|tb)&care == rootTT&care {
						return m.Or(ea, eb), true
					}
				}
			}
		}
	}
	return Edge{}, false
}

// findResub2 searches two-node (AND/OR combinations of three divisors)
// replacements, bounded to div1Max candidates to keep the search
// tractable. Only the two shapes that cover the common cases cheaply -
// (a OP b) OP c for both choices of the outer/inner operator - are
// tried; the source's full Boolean-difference-guided search is not
// reproduced here (see DESIGN.md).
func findResub2(m *Manager, rootTT, care uint16, divs []divisor) (Edge, bool) {
	n := len(divs)
	if n > div1Max {
		n = div1Max
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				a, b, c := divs[i], divs[j], divs[k]
				if edge, ok := tryTripleCombine(m, rootTT, care, a, b, c); ok {
					return edge, true
				}
			}
		}
	}
	return Edge{}, false
}

// tryTripleCombine checks the two-level AND/OR combinations of three
// divisors (inversions included) that §4.8's bounded search covers.
func tryTripleCombine(m *Manager, rootTT, care uint16, a, b, c divisor) (Edge, bool) {
	for _, na := range [2]bool{false, true} {
		for _, nb := range [2]bool{false, true} {
			for _, nc := range [2]bool{false, true} {
				ta, tb, tc := a.tt, b.tt, c.tt
				if na {
					ta = ^ta
				}
				if nb {
					tb = ^tb
				}
				if nc {
					tc = ^tc
				}
				inner := ta & tb
				if (inner|tc)&care == rootTT&care {
					return m.Or(m.And(notIf(a.edge, na), notIf(b.edge, nb)), notIf(c.edge, nc)), true
				}
				if (inner&tc)&care == rootTT&care {
					return m.And(m.And(notIf(a.edge, na), notIf(b.edge, nb)), notIf(c.edge, nc)), true
				}
				outer := ta | tb
				if (outer|tc)&care == rootTT&care {
					return m.Or(m.Or(notIf(a.edge, na), notIf(b.edge, nb)), notIf(c.edge, nc)), true
				}
				if (outer&tc)&care == rootTT&care {
					return m.And(m.Or(notIf(a.edge, na), notIf(b.edge, nb)), notIf(c.edge, nc)), true
				}
			}
		}
	}
	return Edge{}, false
}

func notIf(e Edge, neg bool) Edge {
	if neg {
		return e.Not()
	}
	return e
}
