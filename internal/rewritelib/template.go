package rewritelib

// TemplateNode is one record of a library subgraph: a 2-input AND over
// two child references, matching spec's "flat array of library-object
// records (each with two child indices and two inversion bits)". A
// child reference < NVars names a leaf (cut input) slot; a reference
// >= NVars names an earlier TemplateNode, offset by NVars.
type TemplateNode struct {
	Fanin0, Fanin1     int
	Compl0, Compl1     bool
}

// IsLeafRef reports whether a child reference names a leaf slot rather
// than another TemplateNode.
func IsLeafRef(ref int) bool { return ref < NVars }

// LeafIndex extracts the leaf slot (0..NVars-1) from a leaf reference.
func LeafIndex(ref int) int { return ref }

// NodeIndex extracts the TemplateNode index from a non-leaf reference.
func NodeIndex(ref int) int { return ref - NVars }

// Template is one NPN class's chosen subgraph: a DAG of AND nodes
// (OR expressed, per AIG convention, as De Morgan over two inverted
// ANDs) computing the class's canonical truth table, plus the
// function's overall output inversion.
type Template struct {
	Class      uint16
	NumLeaves  int
	Nodes      []TemplateNode
	RootRef    int // a leaf or node reference, same convention as Fanin0/Fanin1
	RootCompl  bool
}

// buildTemplate lowers a generic AND/OR/NOT expression tree (the
// output of factorTruth) into a pure AND/inverter Template, applying De
// Morgan's law at OR nodes exactly the way the engine's own Or()
// combinator does: Or(a,b) = Not(And(Not(a), Not(b))).
func buildTemplate(e *expr, class uint16, numLeaves int) *Template {
	t := &Template{Class: class, NumLeaves: numLeaves}
	ref, compl := t.lower(e)
	t.RootRef, t.RootCompl = ref, compl
	return t
}

// lower returns a (reference, complement) pair describing e's value in
// terms of t's growing Nodes list and leaf slots.
func (t *Template) lower(e *expr) (ref int, compl bool) {
	switch e.kind {
	case exprConst:
		// A constant subgraph never arises from a real NPN class (every
		// class has both a 0- and a 1-minterm after canonicalization
		// excludes the all-0/all-1 classes), but degrades safely: fold
		// into a self-AND of leaf 0 under the right polarity is
		// unnecessary here since callers never instantiate a
		// constant-class template in practice.
		return 0, !e.constValue
	case exprLit:
		return e.v, e.neg
	case exprAnd:
		lref, lcompl := t.lower(e.left)
		rref, rcompl := t.lower(e.right)
		idx := len(t.Nodes)
		t.Nodes = append(t.Nodes, TemplateNode{Fanin0: lref, Compl0: lcompl, Fanin1: rref, Compl1: rcompl})
		return NVars + idx, false
	case exprOr:
		lref, lcompl := t.lower(e.left)
		rref, rcompl := t.lower(e.right)
		idx := len(t.Nodes)
		t.Nodes = append(t.Nodes, TemplateNode{Fanin0: lref, Compl0: !lcompl, Fanin1: rref, Compl1: !rcompl})
		return NVars + idx, true
	}
	panic("rewritelib: lower: unreachable expression kind")
}
