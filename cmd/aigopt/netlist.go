package main

import (
	"fmt"

	"github.com/aigopt/aig"
	"github.com/aigopt/aig/aiger"
)

// fromFile builds a fresh *aig.Manager from a parsed AIGER file,
// wiring PIs, latches (LOs/LIs), ANDs, and POs in the format's own
// variable-numbering order (0 = const, 1..I = inputs, I+1..I+L =
// latches, I+L+1..M = ANDs), the same order Manager.ObjIDUpperBound's
// creation-order guarantee relies on.
func fromFile(f *aiger.File) (*aig.Manager, error) {
	m := aig.NewManager()

	// var -> edge, indexed 0..M; var 0 is the constant, already in place.
	varEdge := make([]aig.Edge, f.M()+1)
	varEdge[0] = m.Const1()

	for v := 1; v <= f.I; v++ {
		varEdge[v] = m.CreateCI()
	}
	for v := f.I + 1; v <= f.I+f.L; v++ {
		varEdge[v] = m.CreateCI()
	}

	for k, a := range f.Ands {
		v := f.I + f.L + 1 + k
		if v*2 != a.Lhs {
			return nil, fmt.Errorf("aigopt: AND gate %d has literal %d, want %d (file is not in increasing-LHS order)", k, a.Lhs, v*2)
		}
		e0, err := litToEdge(varEdge, a.Rhs0)
		if err != nil {
			return nil, err
		}
		e1, err := litToEdge(varEdge, a.Rhs1)
		if err != nil {
			return nil, err
		}
		varEdge[v] = m.And(e0, e1)
	}

	for _, lit := range f.Outputs {
		e, err := litToEdge(varEdge, lit)
		if err != nil {
			return nil, err
		}
		m.CreateCO(e)
	}

	for _, lit := range f.Bads {
		e, err := litToEdge(varEdge, lit)
		if err != nil {
			return nil, err
		}
		m.AddBad(e)
	}
	for _, lit := range f.Constraints {
		e, err := litToEdge(varEdge, lit)
		if err != nil {
			return nil, err
		}
		m.AddConstraint(e)
	}
	for _, j := range f.Justices {
		es := make([]aig.Edge, len(j.Lits))
		for k, lit := range j.Lits {
			e, err := litToEdge(varEdge, lit)
			if err != nil {
				return nil, err
			}
			es[k] = e
		}
		m.AddJustice(es)
	}
	for _, lit := range f.Fairness {
		e, err := litToEdge(varEdge, lit)
		if err != nil {
			return nil, err
		}
		m.AddFairness(e)
	}

	inits := make([]aig.LatchReset, f.L)
	for i, lt := range f.Latches {
		loVar := f.I + 1 + i
		next, err := litToEdge(varEdge, lt.Next)
		if err != nil {
			return nil, err
		}
		m.CreateCO(next)
		switch {
		case lt.Reset == 0:
			inits[i] = aig.LatchReset0
		case lt.Reset == 1:
			inits[i] = aig.LatchReset1
		case lt.Reset == 2*loVar:
			inits[i] = aig.LatchResetDC
		default:
			return nil, fmt.Errorf("aigopt: latch %d has unrecognized reset literal %d", i, lt.Reset)
		}
	}
	m.SetRegNum(f.L)
	m.SetLatchInit(inits)

	return m, nil
}

func litToEdge(varEdge []aig.Edge, lit int) (aig.Edge, error) {
	v := lit >> 1
	if v < 0 || v >= len(varEdge) {
		return aig.Edge{}, fmt.Errorf("aigopt: literal %d references undefined variable %d", lit, v)
	}
	e := varEdge[v]
	if lit&1 != 0 {
		e = e.Not()
	}
	return e, nil
}

// toFile serializes m's current network into an aiger.File, assigning
// AIGER variable numbers in the same order fromFile expects: inputs,
// then latches, then ANDs numbered so that every AND comes after its
// fanins. Object-ID order alone is not used for this, since Replace can
// rewire a node onto a newer, higher-ID driver.
func toFile(m *aig.Manager, withSymbols bool, orig []aiger.Symbol) *aiger.File {
	nRegs := m.NumRegs()
	pis := m.CIs()[:len(m.CIs())-nRegs]
	los := m.CIs()[len(m.CIs())-nRegs:]
	pos := m.COs()[:len(m.COs())-nRegs]
	lis := m.COs()[len(m.COs())-nRegs:]

	varOf := make(map[int32]int, m.NumCis()+m.NumAnds()+1)
	varOf[0] = 0 // constant
	for i, id := range pis {
		varOf[id] = i + 1
	}
	for i, id := range los {
		varOf[id] = len(pis) + 1 + i
	}

	andIDs := make([]int32, 0, m.NumAnds())
	upper := m.ObjIDUpperBound()
	nextVar := len(pis) + len(los) + 1
	var number func(id int32)
	number = func(id int32) {
		o := m.Object(id)
		if _, done := varOf[id]; done || o == nil || !o.IsAnd() {
			return
		}
		number(o.Fanin0.ID)
		number(o.Fanin1.ID)
		varOf[id] = nextVar
		nextVar++
		andIDs = append(andIDs, id)
	}
	for id := int32(0); id < upper; id++ {
		number(id)
	}

	lit := func(e aig.Edge) int {
		v := varOf[e.ID]
		l := v * 2
		if e.Compl {
			l++
		}
		return l
	}

	f := &aiger.File{I: len(pis), L: nRegs, O: len(pos)}
	for _, id := range andIDs {
		o := m.Object(id)
		f.Ands = append(f.Ands, aiger.AndGate{
			Lhs:  varOf[id] * 2,
			Rhs0: lit(o.Fanin0),
			Rhs1: lit(o.Fanin1),
		})
	}
	for _, id := range pos {
		f.Outputs = append(f.Outputs, lit(m.Object(id).Fanin0))
	}
	for _, e := range m.Bads() {
		f.Bads = append(f.Bads, lit(e))
	}
	for _, e := range m.Constraints() {
		f.Constraints = append(f.Constraints, lit(e))
	}
	for _, es := range m.Justices() {
		lits := make([]int, len(es))
		for k, e := range es {
			lits[k] = lit(e)
		}
		f.Justices = append(f.Justices, aiger.Justice{Lits: lits})
	}
	for _, e := range m.Fairness() {
		f.Fairness = append(f.Fairness, lit(e))
	}
	for i, id := range lis {
		loVar := len(pis) + 1 + i
		l := aiger.Latch{Lit: loVar * 2, Next: lit(m.Object(id).Fanin0)}
		switch m.LatchInit(i) {
		case aig.LatchReset0:
			l.Reset = 0
		case aig.LatchReset1:
			l.Reset = 1
		case aig.LatchResetDC:
			l.Reset = l.Lit
		}
		f.Latches = append(f.Latches, l)
	}

	if withSymbols {
		names := make(map[[2]any]string, len(orig))
		for _, s := range orig {
			names[[2]any{s.Kind, s.Index}] = s.Name
		}
		nameOr := func(kind byte, i int, def string) string {
			if n, ok := names[[2]any{kind, i}]; ok {
				return n
			}
			return def
		}
		for i := range pis {
			f.Symbols = append(f.Symbols, aiger.Symbol{Kind: 'i', Index: i, Name: nameOr('i', i, fmt.Sprintf("pi%d", i))})
		}
		for i := range pos {
			f.Symbols = append(f.Symbols, aiger.Symbol{Kind: 'o', Index: i, Name: nameOr('o', i, fmt.Sprintf("po%d", i))})
		}
		for i := range lis {
			f.Symbols = append(f.Symbols, aiger.Symbol{Kind: 'l', Index: i, Name: nameOr('l', i, fmt.Sprintf("latch%d", i))})
		}
	}

	return f
}
