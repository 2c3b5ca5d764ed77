package aig

// RefactorParams bounds the reconvergence window and acceptance rule
// §4.7 and the `refactor` command's flags draw from.
type RefactorParams struct {
	NodeSizeMax int  // window leaf budget (command flag -N, <= 15)
	ConeSizeMax int  // containing-cone budget (command flag -C)
	ZeroCost    bool // accept replacements that don't increase node count (-z)
	UseDontCare bool // -d: accepted but not read; refactorNode uses no don't-cares (see DESIGN.md)
}

// DefaultRefactorParams matches the command's documented defaults.
func DefaultRefactorParams() RefactorParams {
	return RefactorParams{NodeSizeMax: 10, ConeSizeMax: 16}
}

// Refactor runs one pass of factored-form rewriting over every AND node
// in current-graph (increasing-ID) order, per §4.7. The scan stops at
// the ID bound taken when the pass starts. The arena reuses the IDs of
// deleted nodes, so a node created by an earlier acceptance may take an
// ID below that bound; such a node is visited by the same pass if its ID
// is still ahead of the scan.
func (m *Manager) Refactor(p RefactorParams) (accepted int, err error) {
	if err := m.ComputeLevels(); err != nil {
		return 0, err
	}
	upper := m.ObjIDUpperBound()
	for id := int32(0); id < upper; id++ {
		o := m.Object(id)
		if o == nil || !o.IsAnd() {
			continue
		}
		if m.refactorNode(id, p) {
			accepted++
		}
	}
	return accepted, nil
}

// refactorNode attempts to replace the AND node id with a factored-form
// rebuild of its reconvergence window; it reports whether the
// replacement was accepted.
func (m *Manager) refactorNode(id int32, p RefactorParams) bool {
	o := m.Object(id)
	if o == nil || !o.IsAnd() {
		return false
	}

	win := m.FindWindow(id, p.NodeSizeMax, 1<<30, false, p.ConeSizeMax, 1<<30)
	leaves := sortedCopy(win.Leaves)
	if len(leaves) == 0 || len(leaves) > nLeafMax {
		return false
	}

	mffcSize := m.MffcSize(Edge{ID: id}, leaves)
	if mffcSize == 0 {
		return false
	}

	tt := m.simulateCone(Edge{ID: id}, leaves)
	expr := FactorTruth(tt, len(leaves))

	leafEdges := make([]Edge, len(leaves))
	for i, l := range leaves {
		leafEdges[i] = Edge{ID: l}
	}

	before := m.NumAnds()
	candidate := m.buildExpr(expr, leafEdges)
	newNodes := m.NumAnds() - before

	threshold := mffcSize
	accept := newNodes < threshold || (p.ZeroCost && newNodes <= threshold)
	if !accept || candidate.ID == id {
		m.deleteNode(candidate.ID)
		return false
	}
	if m.coneContains(candidate.ID, id) {
		// Defensive: the window's own leaves should make this impossible,
		// but never hand Replace a candidate that would panic.
		m.deleteNode(candidate.ID)
		return false
	}

	m.Replace(Edge{ID: id}, candidate)
	return true
}

// buildExpr materializes a factored-form expression tree into the live
// AIG, mapping each Var index to leaves[Var] (leaves sorted ascending,
// matching the positional convention simulateCone and FactorTruth share
// with the truth table's variable order).
func (m *Manager) buildExpr(e *Expr, leaves []Edge) Edge {
	switch e.Kind {
	case ExprConst:
		if e.ConstValue {
			return m.Const1()
		}
		return m.Const0()
	case ExprLit:
		edge := leaves[e.Var]
		if e.Neg {
			return edge.Not()
		}
		return edge
	case ExprAnd:
		return m.And(m.buildExpr(e.Left, leaves), m.buildExpr(e.Right, leaves))
	case ExprOr:
		return m.Or(m.buildExpr(e.Left, leaves), m.buildExpr(e.Right, leaves))
	}
	panic("aig: buildExpr: unreachable expression kind")
}
