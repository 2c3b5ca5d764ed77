package aig

import "github.com/aigopt/aig/internal/rewritelib"

// RewriteParams mirrors the `rewrite` command's flags (spec.md §6).
type RewriteParams struct {
	ZeroCost       bool // -z: accept replacements that don't increase node count
	PrecomputeOnly bool // -x: match and score candidates, but never commit
}

// DefaultRewriteParams matches the command's documented defaults.
func DefaultRewriteParams() RewriteParams { return RewriteParams{} }

// PresetDeep tunes Rewrite/Refactor for the `drw`/`drf` command
// variants: a wider cut/window budget and zero-cost acceptance, the
// same "same engine, different defaults" relationship abcDar.c's
// Dar_ManRewrite/Dar_ManRefactor have to their plain counterparts.
func PresetDeep() (RewriteParams, RefactorParams) {
	return RewriteParams{ZeroCost: true},
		RefactorParams{NodeSizeMax: 12, ConeSizeMax: 20, ZeroCost: true}
}

// Rewrite runs one pass of library-based 4-cut rewriting over every AND
// node, per §4.5.
func (m *Manager) Rewrite(p RewriteParams) (accepted int, err error) {
	if err := m.ComputeLevels(); err != nil {
		return 0, err
	}
	lib := rewritelib.NewLibrary()
	ce := NewCutEnumerator(m, 4, 8, true)

	upper := m.ObjIDUpperBound()
	for id := int32(0); id < upper; id++ {
		o := m.Object(id)
		if o == nil || !o.IsAnd() {
			continue
		}
		if m.rewriteNode(id, ce, lib, p) {
			accepted++
			ce.Invalidate()
		}
	}
	return accepted, nil
}

// rewriteCandidate is a fully-built replacement edge together with the
// bookkeeping needed to pick the best one.
type rewriteCandidate struct {
	edge     Edge
	newNodes int
	level    int32
}

// rewriteNode evaluates every cut at id against the NPN-class library
// and commits the best profitable match, if any. Every candidate is
// actually built via And (so sharing is measured exactly, not
// estimated) and reclaimed through deleteNode the moment it stops being
// the best one seen so far; deleteNode only ever touches zero-ref,
// non-terminal nodes, so a candidate that turned out to already be
// shared with live structure is never disturbed.
func (m *Manager) rewriteNode(id int32, ce *CutEnumerator, lib *rewritelib.Library, p RewriteParams) bool {
	var best *rewriteCandidate

	for _, cut := range ce.Cuts(id) {
		if cut.isTrivial() || len(cut.Leaves) == 0 {
			continue
		}
		tmpl, tr, ok := lib.Match(cut.TT, len(cut.Leaves))
		if !ok {
			continue
		}
		mffcSize := m.MffcSize(Edge{ID: id}, cut.Leaves)
		if mffcSize == 0 {
			continue
		}

		leafEdges := make([]Edge, tmpl.NumLeaves)
		for j := 0; j < tmpl.NumLeaves; j++ {
			srcIdx := tr.SourceVar(j)
			if srcIdx >= len(cut.Leaves) {
				// The template reasons over a full 4-variable canonical
				// space; a cut with fewer leaves maps any surplus
				// canonical variable back onto leaf 0, which replicate()
				// in the library already made safe to do (the function
				// provably doesn't depend on that variable).
				srcIdx = 0
			}
			e := Edge{ID: cut.Leaves[srcIdx]}
			if tr.SourceNeg(j) {
				e = e.Not()
			}
			leafEdges[j] = e
		}

		before := m.NumAnds()
		built := m.buildTemplateEdge(tmpl, leafEdges)
		cost := m.NumAnds() - before
		if tmpl.RootCompl {
			built = built.Not()
		}

		threshold := mffcSize
		profitable := cost < threshold || (p.ZeroCost && cost <= threshold)
		if !profitable || built.ID == id || m.coneContains(built.ID, id) {
			m.deleteNode(built.ID)
			continue
		}

		level := m.levelOfEdge(built)
		if best == nil || cost < best.newNodes || (cost == best.newNodes && level < best.level) {
			if best != nil {
				m.deleteNode(best.edge.ID)
			}
			best = &rewriteCandidate{edge: built, newNodes: cost, level: level}
		} else {
			m.deleteNode(built.ID)
		}
	}

	if best == nil {
		return false
	}
	if p.PrecomputeOnly {
		m.deleteNode(best.edge.ID)
		return false
	}
	m.Replace(Edge{ID: id}, best.edge)
	return true
}

// buildTemplateEdge walks tmpl's nodes bottom-up (they are already
// topologically ordered by construction) materializing each as a real
// AND node via m.And, then returns the root's (uninverted relative to
// RootCompl, applied by the caller) edge.
func (m *Manager) buildTemplateEdge(tmpl *rewritelib.Template, leafEdges []Edge) Edge {
	built := make([]Edge, len(tmpl.Nodes))
	resolve := func(ref int) Edge {
		if rewritelib.IsLeafRef(ref) {
			return leafEdges[rewritelib.LeafIndex(ref)]
		}
		return built[rewritelib.NodeIndex(ref)]
	}
	for i, n := range tmpl.Nodes {
		e0 := resolve(n.Fanin0)
		if n.Compl0 {
			e0 = e0.Not()
		}
		e1 := resolve(n.Fanin1)
		if n.Compl1 {
			e1 = e1.Not()
		}
		built[i] = m.And(e0, e1)
	}
	if rewritelib.IsLeafRef(tmpl.RootRef) {
		return leafEdges[rewritelib.LeafIndex(tmpl.RootRef)]
	}
	return built[rewritelib.NodeIndex(tmpl.RootRef)]
}
