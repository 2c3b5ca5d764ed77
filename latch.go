package aig

// LatchReset names a register's declared reset kind, the three forms
// AIGER's latch lines can express (spec.md §6): a concrete 0 or 1, or
// "don't care" via the format's self-literal convention.
type LatchReset int8

const (
	LatchReset0 LatchReset = iota
	LatchReset1
	LatchResetDC
)

// ZeroLatches rebuilds the manager so every register's declared reset
// value is 0 (the `zero` command).
//
// A register with LatchReset1 is normalized by pushing an inverter
// through it: q'(t) = NOT(q(t)) satisfies q'(0) = 0, its next-state
// function is the complement of the original's, and every existing use
// of the register's Q output is rewritten to read NOT(q') in its
// place, so the function computed at every combinational output is
// unchanged.
//
// A register with LatchResetDC has its initial value declared
// don't-care, so pinning its reset to a concrete 0 outright would be a
// strictly weaker netlist: every downstream consumer would see a fixed
// constant at time 0 instead of an unconstrained value. Per the
// original's own technique, the engine instead inserts a fresh free PI
// standing in for the don't-care value and a one-bit "first cycle"
// flag latch (reset 0, next const-1, so it reads 0 only at time 0 and 1
// on every later frame): every existing use of the register's Q output
// is rewritten to read Mux(flag, Q, freshPI) in its place, so at time 0
// the apparent value is the free (unconstrained) input, and at every
// later time it is exactly the original register's real value - the
// two netlists compute the same function for every concrete resolution
// of the original don't-care, and the new register's own reset is a
// genuine, not fabricated, 0.
func (m *Manager) ZeroLatches() {
	regLOs := append([]int32(nil), m.cis[len(m.cis)-m.nRegs:]...)
	regCOs := append([]int32(nil), m.cos[len(m.cos)-m.nRegs:]...)
	inits := append([]LatchReset(nil), m.latchInit...)

	for i, kind := range inits {
		switch kind {
		case LatchReset1:
			m.invertLatchEdges(regLOs[i], regCOs[i])
		case LatchResetDC:
			m.insertDcPI(regLOs[i])
		}
	}

	newInits := make([]LatchReset, m.nRegs)
	m.latchInit = newInits
}

// invertLatchEdges flips the register driven by (loID, coID)'s declared
// reset from 1 to 0 by pushing an inverter through both its D-input and
// every use of its Q output.
func (m *Manager) invertLatchEdges(loID, coID int32) {
	co := m.Object(coID)
	co.Fanin0 = co.Fanin0.Not()

	m.invertCIUsages(loID)
}

// invertCIUsages flips the complement bit of every existing edge that
// references ci, preserving every invariant the structural-hash table
// depends on (via patchFanin) and folding away any AND node that
// happens to collide with an already-existing one as a result.
func (m *Manager) invertCIUsages(ci int32) {
	for _, consumerID := range append([]int32(nil), m.Fanouts(ci)...) {
		consumer := m.Object(consumerID)
		if consumer == nil {
			continue
		}
		if !consumer.Fanin0.IsNil() && consumer.Fanin0.ID == ci {
			ne := consumer.Fanin0
			ne.Compl = !ne.Compl
			if existing, collided := m.patchFanin(consumer, 0, ne); collided {
				m.Replace(Edge{ID: consumer.ID}, Edge{ID: existing})
				continue
			}
		}
		if consumer.IsAnd() && !consumer.Fanin1.IsNil() && consumer.Fanin1.ID == ci {
			ne := consumer.Fanin1
			ne.Compl = !ne.Compl
			if existing, collided := m.patchFanin(consumer, 1, ne); collided {
				m.Replace(Edge{ID: consumer.ID}, Edge{ID: existing})
			}
		}
	}
}

// insertDcPI implements the don't-care-preserving half of ZeroLatches
// for the register whose Q output is loID: it builds
// Mux(flag, Q, freshPI) from the register's own current output before
// retargeting every existing consumer of Q to that mux, so the mux's
// own fanin edges (which do reference Q) are left untouched.
func (m *Manager) insertDcPI(loID int32) {
	loEdge := Edge{ID: loID}
	consumers := append([]int32(nil), m.Fanouts(loID)...)

	freshPI := m.createFreePI()
	flag := m.CreateCI()
	m.CreateCO(m.Const1())
	qeff := m.Mux(flag, loEdge, freshPI)

	for _, consumerID := range consumers {
		consumer := m.Object(consumerID)
		if consumer == nil {
			continue
		}
		if !consumer.Fanin0.IsNil() && consumer.Fanin0.ID == loID {
			ne := qeff.NotCond(consumer.Fanin0.Compl)
			if existing, collided := m.patchFanin(consumer, 0, ne); collided {
				m.Replace(Edge{ID: consumer.ID}, Edge{ID: existing})
				continue
			}
		}
		if consumer.IsAnd() && !consumer.Fanin1.IsNil() && consumer.Fanin1.ID == loID {
			ne := qeff.NotCond(consumer.Fanin1.Compl)
			if existing, collided := m.patchFanin(consumer, 1, ne); collided {
				m.Replace(Edge{ID: consumer.ID}, Edge{ID: existing})
			}
		}
	}

	m.nRegs++
}
