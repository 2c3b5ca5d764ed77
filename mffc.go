package aig

// Mffc computes the Maximum Fanout-Free Cone of root: the set of AND
// nodes that exist only to feed root, and would become dead if root
// were removed. It does this without mutating the graph, via the
// dereference/reference idiom: walk down decrementing reference counts
// and recording every node whose count reaches zero, then walk the same
// recorded set back up incrementing the counts again to restore them
// exactly. Leaves - nodes still referenced from outside the cone, or
// CIs/the constant - stop the recursion.
//
// leaves, when non-nil, additionally treats every listed object ID as a
// cut boundary: its reference count is bumped before the dereference
// pass so the recursion never crosses it, matching the cut-constrained
// MFFC used by refactor and resubstitution to bound a candidate's cone
// to exactly the nodes inside a chosen cut.
func (m *Manager) Mffc(root Edge, leaves []int32) []int32 {
	for _, l := range leaves {
		if o := m.Object(l); o != nil {
			o.Refs++
		}
	}

	var nodes []int32
	rootObj := m.Object(root.ID)
	if rootObj != nil && rootObj.IsAnd() {
		m.mffcDeref(rootObj, &nodes)
		m.mffcRef(rootObj)
	}

	for _, l := range leaves {
		if o := m.Object(l); o != nil {
			o.Refs--
		}
	}
	return nodes
}

// MffcSize is a convenience wrapper returning len(Mffc(root, leaves)),
// the metric the rewrite passes actually optimize: the node count saved
// by removing root's MFFC.
func (m *Manager) MffcSize(root Edge, leaves []int32) int {
	return len(m.Mffc(root, leaves))
}

// mffcDeref unconditionally records o - the root, or any node reached
// because one of its fanouts' refs just hit zero - and then decrements
// both of o's own fanins' reference counts, recursing into whichever
// ones reach zero. o must be an AND node; it is always counted here
// regardless of its own Refs, matching Abc_NodeDeref_rec's structure:
// the node passed in is always part of the cone, only its fanins are
// subject to the decrement-and-gate rule.
func (m *Manager) mffcDeref(o *Object, nodes *[]int32) {
	*nodes = append(*nodes, o.ID)
	m.mffcDerefFanin(o.Fanin0, nodes)
	m.mffcDerefFanin(o.Fanin1, nodes)
}

// mffcDerefFanin decrements the reference count of the object e points
// to and, if it reaches zero, recurses into mffcDeref to count it and
// continue down through its own fanins. CIs and the constant are never
// recorded (they cannot become dangling - they have no fanins to free,
// and the manager, not a pass, owns their lifetime).
func (m *Manager) mffcDerefFanin(e Edge, nodes *[]int32) {
	o := m.Object(e.ID)
	if o == nil || !o.IsAnd() {
		return
	}
	o.Refs--
	if o.Refs == 0 {
		m.mffcDeref(o, nodes)
	}
}

// mffcRef is the exact dual of mffcDeref: called on the same node o
// (root, or any node reached via a fanin restored from zero), it never
// touches o's own Refs - only mffcDeref's decrements ever touched
// those, for fanins, never for the node passed in - and instead
// restores both of o's fanins' reference counts, recursing into
// whichever ones were at zero before the increment.
func (m *Manager) mffcRef(o *Object) {
	m.mffcRefFanin(o.Fanin0)
	m.mffcRefFanin(o.Fanin1)
}

func (m *Manager) mffcRefFanin(e Edge) {
	o := m.Object(e.ID)
	if o == nil || !o.IsAnd() {
		return
	}
	wasZero := o.Refs == 0
	o.Refs++
	if wasZero {
		m.mffcRef(o)
	}
}

// Supp returns the set of CIs and the constant, if used, driving the
// cone rooted at e - its combinational support - using the same
// mark/unmark approach as ConeSize but recording CI object IDs instead
// of counting AND nodes.
func (m *Manager) Supp(e Edge) []int32 {
	root := m.Object(e.ID)
	if root == nil {
		return nil
	}
	var support []int32
	m.suppCollect(root, &support)
	m.suppUnmark(root)
	return support
}

func (m *Manager) suppCollect(o *Object, support *[]int32) {
	if o.MarkA {
		return
	}
	o.MarkA = true
	if o.IsCI() || o.IsConst1() {
		*support = append(*support, o.ID)
		return
	}
	if !o.IsAnd() {
		return
	}
	if f0 := m.Object(o.Fanin0.ID); f0 != nil {
		m.suppCollect(f0, support)
	}
	if f1 := m.Object(o.Fanin1.ID); f1 != nil {
		m.suppCollect(f1, support)
	}
}

func (m *Manager) suppUnmark(o *Object) {
	if !o.MarkA {
		return
	}
	o.MarkA = false
	if !o.IsAnd() {
		return
	}
	if f0 := m.Object(o.Fanin0.ID); f0 != nil {
		m.suppUnmark(f0)
	}
	if f1 := m.Object(o.Fanin1.ID); f1 != nil {
		m.suppUnmark(f1)
	}
}
