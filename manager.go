// Package aig implements an And-Inverter Graph (AIG) and the structural
// rewrites used to reduce its node count: balance, library-based
// rewrite, refactor, and resubstitution.
//
// The package follows the layering of ABC's AIG package (see
// DESIGN.md): a fixed-block node arena (internal/arena), a structural
// hash table enforcing strashing, a DFS/MFFC layer, a k-feasible cut
// enumerator, and the four rewrite passes built on top of them.
//
// Package layout and idiom (flat root package, a couple of internal/
// helper packages, a cmd/ driver) are carried from the teacher module
// github.com/gaissmai/bart; see TEACHER.txt and DESIGN.md.
package aig

import (
	"log"

	"github.com/aigopt/aig/internal/arena"
)

// maxTravID is the point at which the traversal-ID counter wraps: all
// objects' stored TravID are zeroed and the counter restarts at 1, per
// the design notes ("the source zeros all node IDs when the counter
// saturates; a port should do the same at i32::MAX-1").
const maxTravID = int32(1<<31 - 2)

// Manager owns every object of one AIG: the arena, the combinational
// input/output lists, the constant-1 node, the structural-hash table,
// per-type counters, and the traversal-ID counter.
//
// A Manager must not be copied by value once in use (it holds internal
// slice/pointer state); pass *Manager.
type Manager struct {
	objs *arena.Arena[Object]

	// cis/cos hold object IDs. Registers are the last nRegs entries of
	// each: PIs precede LOs in cis, POs precede LIs in cos.
	cis   []int32
	cos   []int32
	nRegs int

	const1ID int32 // always 0; kept as a field to mirror pConst1 in the C source

	hash *hashTable

	// counts[t] is the number of live objects of Type t.
	counts   [TypeDead + 1]int32
	nDeleted int32

	travCounter int32

	// fanout is the lazily built, lazily torn down fanout index
	// described in the data model. nil when not built.
	fanout *fanoutIndex

	// latchInit holds the per-register reset kind, indexed the same way
	// as the trailing nRegs entries of cis/cos; set by the AIGER reader
	// and consulted by both ZeroLatches and the AIGER writer. Empty
	// until a file with latches has been read, or SetLatchInit is
	// called directly.
	latchInit []LatchReset

	// propBads/propConstraints/propJustices/propFairness hold the
	// object IDs of property-terminal COs: bad-state, invariant-
	// constraint, justice, and fairness literals from an AIGER file's
	// optional B/C/J/F sections. Each is a real CO-type terminal (so
	// its driver stays referenced and survives Cleanup/sweeps) created
	// via createPropertyCO rather than CreateCO, so these never appear
	// in cis/cos/SetRegNum's PI/LO/PO/LI partitioning: the core
	// optimization passes only ever touch ordinary outputs (spec.md
	// §9's open question; SPEC_FULL.md's supplemented feature #2
	// resolves it as "preserved, not dropped").
	propBads        []int32
	propConstraints []int32
	propJustices    [][]int32
	propFairness    []int32

	// Logger is an optional destination for verbose/statistics lines;
	// none of the passes in this package write to it.
	// Nil-safe: a nil Logger simply means no output, matching the
	// nil-safe pool idiom carried from the teacher (pool.Get/Put are
	// no-ops on a nil *pool).
	Logger *log.Logger
}

// NewManager creates an empty manager with the constant-1 node already
// created, mirroring Aig_ManStart.
func NewManager() *Manager {
	m := &Manager{
		objs: arena.New[Object](10007),
		hash: newHashTable(4999), // next prime >= a small initial capacity
	}
	id := m.objs.Fetch()
	if id != 0 {
		panic("aig: constant-1 node must be object 0")
	}
	obj := m.objs.Ptr(id)
	obj.ID = 0
	obj.Type = TypeConst1
	obj.Phase = true
	m.const1ID = 0
	m.counts[TypeConst1]++
	return m
}

// Const1 returns the edge representing logical true.
func (m *Manager) Const1() Edge { return Edge{ID: m.const1ID} }

// Const0 returns the edge representing logical false: the inverted
// reference to the constant-1 node. There is no separate constant-0
// object.
func (m *Manager) Const0() Edge { return Edge{ID: m.const1ID, Compl: true} }

// Object returns a pointer to the live object named by id, or nil if id
// is out of range or has been recycled.
func (m *Manager) Object(id int32) *Object { return m.objs.Ptr(int(id)) }

// Deref resolves an Edge to its (possibly inverted) object pointer.
func (m *Manager) Deref(e Edge) *Object { return m.Object(e.ID) }

// NumObjs returns the number of currently live objects across all types.
func (m *Manager) NumObjs() int {
	n := 0
	for _, c := range m.counts {
		n += int(c)
	}
	return n
}

// NumAnds, NumCis, NumCos return the live count of the corresponding
// type, mirroring Aig_ManAndNum/Aig_ManCiNum/Aig_ManCoNum.
func (m *Manager) NumAnds() int { return int(m.counts[TypeAnd]) }
func (m *Manager) NumCis() int  { return int(m.counts[TypeCI]) }
func (m *Manager) NumCos() int  { return int(m.counts[TypeCO]) }

// NumRegs returns the number of registers (flip-flops); the last NumRegs
// entries of the CI and CO lists are the register outputs/inputs.
func (m *Manager) NumRegs() int { return m.nRegs }

// ObjIDUpperBound returns one past the highest object ID ever allocated;
// iterating id in [0, ObjIDUpperBound) and skipping holes (via Object)
// visits every live object in increasing-ID order. The arena reuses the
// IDs of deleted objects, so this is creation order only while nothing
// has been deleted.
func (m *Manager) ObjIDUpperBound() int32 { return int32(m.objs.Len()) }

// CIs returns the object IDs of the combinational inputs, PIs first.
func (m *Manager) CIs() []int32 { return m.cis }

// COs returns the object IDs of the combinational outputs, POs first.
func (m *Manager) COs() []int32 { return m.cos }

// CreateCI allocates a new combinational input and appends it to the CI
// list.
func (m *Manager) CreateCI() Edge {
	id := m.objs.Fetch()
	o := m.objs.Ptr(id)
	o.ID = int32(id)
	o.Type = TypeCI
	o.CioID = int32(len(m.cis))
	m.cis = append(m.cis, o.ID)
	m.counts[TypeCI]++
	m.invalidateFanout()
	return Edge{ID: o.ID}
}

// createFreePI allocates a fresh CI exactly like CreateCI, but splices
// it into the CI list immediately before the register block (if any)
// instead of appending it: unlike an ordinary new PI, this is used by
// ZeroLatches to insert a stand-in for a don't-care latch's initial
// value after registers already exist, and the "PIs precede LOs"
// invariant must keep holding.
func (m *Manager) createFreePI() Edge {
	id := m.objs.Fetch()
	o := m.objs.Ptr(id)
	o.ID = int32(id)
	o.Type = TypeCI

	at := len(m.cis) - m.nRegs
	m.cis = append(m.cis, 0)
	copy(m.cis[at+1:], m.cis[at:len(m.cis)-1])
	m.cis[at] = o.ID
	for i := at; i < len(m.cis); i++ {
		m.Object(m.cis[i]).CioID = int32(i)
	}

	m.counts[TypeCI]++
	m.invalidateFanout()
	return Edge{ID: o.ID}
}

// CreateCO allocates a new combinational output whose sole fanin is
// driver (which may be complemented), and appends it to the CO list.
// The driver's reference count is incremented immediately, matching
// Aig_ObjCreateCo's eager Aig_ObjConnect.
func (m *Manager) CreateCO(driver Edge) Edge {
	id := m.objs.Fetch()
	o := m.objs.Ptr(id)
	o.ID = int32(id)
	o.Type = TypeCO
	o.Fanin0 = driver
	o.Fanin1 = NoEdge
	o.CioID = int32(len(m.cos))
	m.cos = append(m.cos, o.ID)
	m.counts[TypeCO]++
	m.ref(driver)
	m.invalidateFanout()
	return Edge{ID: o.ID}
}

// createPropertyCO allocates a CO-type terminal exactly like CreateCO
// (same eager Aig_ObjConnect ref-bump, same fanout-index invalidation)
// but does not append it to the cis/cos lists: it exists purely to keep
// a property driver (bad/constraint/justice/fairness) referenced, and
// carries CioID -1 so it is never mistaken for a PI/LO/PO/LI slot.
func (m *Manager) createPropertyCO(driver Edge) int32 {
	id := m.objs.Fetch()
	o := m.objs.Ptr(id)
	o.ID = int32(id)
	o.Type = TypeCO
	o.Fanin0 = driver
	o.Fanin1 = NoEdge
	o.CioID = -1
	m.counts[TypeCO]++
	m.ref(driver)
	m.invalidateFanout()
	return o.ID
}

// AddBad records a new bad-state property driven by e.
func (m *Manager) AddBad(e Edge) { m.propBads = append(m.propBads, m.createPropertyCO(e)) }

// AddConstraint records a new invariant-constraint property driven by e.
func (m *Manager) AddConstraint(e Edge) {
	m.propConstraints = append(m.propConstraints, m.createPropertyCO(e))
}

// AddJustice records one justice property: a list of driving edges, one
// per accepting condition.
func (m *Manager) AddJustice(es []Edge) {
	ids := make([]int32, len(es))
	for i, e := range es {
		ids[i] = m.createPropertyCO(e)
	}
	m.propJustices = append(m.propJustices, ids)
}

// AddFairness records a new fairness property driven by e.
func (m *Manager) AddFairness(e Edge) {
	m.propFairness = append(m.propFairness, m.createPropertyCO(e))
}

// propEdge resolves a property-terminal object ID back to its driving
// edge.
func (m *Manager) propEdge(id int32) Edge { return m.Object(id).Fanin0 }

// Bads, Constraints, Fairness return the driving edge of each recorded
// property, in recording order.
func (m *Manager) Bads() []Edge        { return m.propEdgesOf(m.propBads) }
func (m *Manager) Constraints() []Edge { return m.propEdgesOf(m.propConstraints) }
func (m *Manager) Fairness() []Edge    { return m.propEdgesOf(m.propFairness) }

// Justices returns the driving edges of each recorded justice property,
// outer slice per property, in recording order.
func (m *Manager) Justices() [][]Edge {
	out := make([][]Edge, len(m.propJustices))
	for i, ids := range m.propJustices {
		out[i] = m.propEdgesOf(ids)
	}
	return out
}

func (m *Manager) propEdgesOf(ids []int32) []Edge {
	if len(ids) == 0 {
		return nil
	}
	out := make([]Edge, len(ids))
	for i, id := range ids {
		out[i] = m.propEdge(id)
	}
	return out
}

// SetRegNum partitions the trailing n entries of the CI and CO lists
// into the latch boundary: the AIG manager itself treats registers as
// ordinary combinational endpoints; n is recorded only for the benefit
// of callers like the AIGER writer and the zero-normalization pass.
func (m *Manager) SetRegNum(n int) {
	if n < 0 || n > len(m.cis) || n > len(m.cos) {
		panic("aig: SetRegNum: register count exceeds CI/CO list length")
	}
	m.nRegs = n
}

// SetLatchInit records each register's reset kind, in the same order as
// the trailing NumRegs() entries of CIs()/COs(). Must be called with a
// slice of exactly NumRegs() entries after SetRegNum.
func (m *Manager) SetLatchInit(inits []LatchReset) {
	if len(inits) != m.nRegs {
		panic("aig: SetLatchInit: length does not match register count")
	}
	m.latchInit = append([]LatchReset(nil), inits...)
}

// LatchInit returns the recorded reset kind for register i (0-based,
// within the register range), or LatchReset0 if none was ever set.
func (m *Manager) LatchInit(i int) LatchReset {
	if i < 0 || i >= len(m.latchInit) {
		return LatchReset0
	}
	return m.latchInit[i]
}

// ref increments the reference count of the object e regularizes to,
// unless e is a "no edge" or the constant (which has no bounded
// lifetime to track via refcounting for our purposes, but we still track
// it for Check's sake).
func (m *Manager) ref(e Edge) {
	if e.IsNil() {
		return
	}
	if o := m.Object(e.ID); o != nil {
		o.Refs++
	}
}

// deref decrements the reference count of the object e regularizes to.
func (m *Manager) deref(e Edge) {
	if e.IsNil() {
		return
	}
	if o := m.Object(e.ID); o != nil {
		o.Refs--
	}
}

// incrementTravID bumps the traversal-ID counter, wrapping per
// maxTravID by zeroing every object's stored TravID and restarting at 1.
func (m *Manager) incrementTravID() int32 {
	m.travCounter++
	if m.travCounter >= maxTravID {
		for id := int32(0); id < int32(m.objs.Len()); id++ {
			if o := m.Object(id); o != nil {
				o.TravID = 0
			}
		}
		m.travCounter = 1
	}
	return m.travCounter
}

// isTravIDCurrent reports whether o was last visited on the current
// traversal.
func (m *Manager) isTravIDCurrent(o *Object) bool { return o.TravID == m.travCounter }

// setTravIDCurrent marks o as visited on the current traversal.
func (m *Manager) setTravIDCurrent(o *Object) { o.TravID = m.travCounter }

// CleanData clears the Scratch field of every live object, the
// convention every pass that uses Scratch must follow before relying on
// it, per the shared-resource rules in the design.
func (m *Manager) CleanData() {
	for id := int32(0); id < int32(m.objs.Len()); id++ {
		if o := m.Object(id); o != nil {
			o.Scratch = nil
		}
	}
}

// Stats reports live/total object counts from the underlying arena, for
// verbose diagnostics.
func (m *Manager) Stats() (live, total int64) { return m.objs.Stats() }
