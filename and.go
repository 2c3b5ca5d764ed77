package aig

// And is the workhorse of the AIG: it returns the (possibly existing)
// AND node computing p & q, after the trivial simplifications and
// canonicalization described in the data model. Creating a node that
// already exists always returns the existing node (invariant 3,
// strashing); no And node ever has a constant, self, or complementary
// fanin (invariant 2, trivial-freeness).
func (m *Manager) And(p, q Edge) Edge {
	// 1: p == q
	if p == q {
		return p
	}
	// 2: p == Not(q)
	if p == q.Not() {
		return m.Const0()
	}
	// 3: p regularizes to the constant
	if p.ID == m.const1ID {
		if !p.Compl {
			return q
		}
		return m.Const0()
	}
	// 4: q regularizes to the constant (symmetric)
	if q.ID == m.const1ID {
		if !q.Compl {
			return p
		}
		return m.Const0()
	}

	// 5: fill the ghost object with canonical fanins.
	fanin0, fanin1 := canonicalizeFanins(p, q)

	// 6: look up the ghost in the structural-hash table.
	if id, ok := m.hash.lookup(m, fanin0, fanin1); ok {
		return Edge{ID: id}
	}

	// 7: miss - allocate a fresh AND node.
	return m.createAnd(fanin0, fanin1)
}

// canonicalizeFanins orders p and q so the smaller regular ID comes
// first, satisfying invariant 1 (binary canonicalization), which in
// turn makes the structural-hash key commutative.
func canonicalizeFanins(p, q Edge) (Edge, Edge) {
	if p.ID <= q.ID {
		return p, q
	}
	return q, p
}

// createAnd allocates a fresh AND object for the already-canonicalized,
// already-trivial-checked fanin pair, computes its phase, connects its
// fanins (incrementing their reference counts), inserts it into the
// structural-hash table, and returns it.
func (m *Manager) createAnd(fanin0, fanin1 Edge) Edge {
	id := m.objs.Fetch()
	o := m.objs.Ptr(id)
	o.ID = int32(id)
	o.Type = TypeAnd
	o.Fanin0 = fanin0
	o.Fanin1 = fanin1
	o.Level = -1
	o.Phase = m.computePhase(fanin0, fanin1)

	m.ref(fanin0)
	m.ref(fanin1)
	m.counts[TypeAnd]++
	m.hash.insert(m, o)
	m.invalidateFanout()

	return Edge{ID: o.ID}
}

// computePhase implements invariant 6: phase(and) = (fanin0.phase XOR
// fanin0.compl) AND (fanin1.phase XOR fanin1.compl).
func (m *Manager) computePhase(fanin0, fanin1 Edge) bool {
	p0 := m.edgePhase(fanin0)
	p1 := m.edgePhase(fanin1)
	return p0 && p1
}

// edgePhase returns the value edge e takes under the all-zero input
// pattern: the referenced object's phase, XORed with e's own inversion
// bit.
func (m *Manager) edgePhase(e Edge) bool {
	o := m.Object(e.ID)
	if o == nil {
		return e.Compl // constant-0/unreachable edge degrades safely
	}
	return o.Phase != e.Compl
}

// probeAnd is used by passes (balance, library rewrite) that want to
// probe the hash table for a pair without risking an allocation, per the
// data model's "ghost object" concept. It performs the same trivial
// simplification and canonicalization steps as And, but returns
// (edge, true) only on a direct hash hit or trivial simplification, and
// (zero, false) when the pair would require allocating a new node.
func (m *Manager) probeAnd(p, q Edge) (Edge, bool) {
	if p == q {
		return p, true
	}
	if p == q.Not() {
		return m.Const0(), true
	}
	if p.ID == m.const1ID {
		if !p.Compl {
			return q, true
		}
		return m.Const0(), true
	}
	if q.ID == m.const1ID {
		if !q.Compl {
			return p, true
		}
		return m.Const0(), true
	}
	fanin0, fanin1 := canonicalizeFanins(p, q)
	if id, ok := m.hash.lookup(m, fanin0, fanin1); ok {
		return Edge{ID: id}, true
	}
	return Edge{}, false
}

// Or and Xor are convenience combinators built from And and De Morgan's
// law / the standard two-AND XOR decomposition; they are used by
// refactor's SOP rebuild and resubstitution's candidate builder, both of
// which reason about OR-of-ANDs and XOR-ish divisor combinations.
func (m *Manager) Or(p, q Edge) Edge {
	return m.And(p.Not(), q.Not()).Not()
}

func (m *Manager) Xor(p, q Edge) Edge {
	return m.Or(m.And(p, q.Not()), m.And(p.Not(), q))
}

// Mux builds c ? t : e as is done throughout the library and the
// resubstitution candidate search.
func (m *Manager) Mux(c, t, e Edge) Edge {
	return m.Or(m.And(c, t), m.And(c.Not(), e))
}
