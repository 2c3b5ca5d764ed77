package main

import (
	"bytes"
	"testing"

	"github.com/aigopt/aig"
	"github.com/aigopt/aig/aiger"
)

func TestFromFileToFileRoundTripsFunction(t *testing.T) {
	t.Parallel()
	m := aig.NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()
	n := m.Or(m.And(a, b), c)
	m.CreateCO(n)

	f1 := toFile(m, false, nil)

	var buf bytes.Buffer
	if err := aiger.Write(&buf, f1, aiger.WriteOptions{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	f2, err := aiger.Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	m2, err := fromFile(f2)
	if err != nil {
		t.Fatalf("fromFile: %v", err)
	}

	leaves := []int32{m.CIs()[0], m.CIs()[1], m.CIs()[2]}
	want := evalAll(m, n, leaves)

	co2 := m2.Object(m2.COs()[0])
	leaves2 := []int32{m2.CIs()[0], m2.CIs()[1], m2.CIs()[2]}
	got := evalAll(m2, co2.Fanin0, leaves2)

	if want != got {
		t.Fatalf("function changed across aiger round trip: want %#x got %#x", want, got)
	}
	if err := m2.Check(); err != nil {
		t.Fatalf("Check after round trip: %v", err)
	}
}

// evalAll brute-forces e's truth table over leaves by direct graph
// evaluation, one minterm at a time; standalone from the root
// package's own truth-table machinery since that's unexported.
func evalAll(m *aig.Manager, e aig.Edge, leaves []int32) uint16 {
	var tt uint16
	n := len(leaves)
	for pat := 0; pat < 1<<uint(n); pat++ {
		vals := make(map[int32]bool, n)
		for i, id := range leaves {
			vals[id] = (pat>>uint(i))&1 != 0
		}
		if evalEdge(m, e, vals) {
			tt |= 1 << uint(pat)
		}
	}
	return tt
}

func evalEdge(m *aig.Manager, e aig.Edge, vals map[int32]bool) bool {
	o := m.Object(e.ID)
	var v bool
	switch {
	case o.IsConst1():
		v = true
	case o.IsCI():
		v = vals[e.ID]
	case o.IsAnd():
		v = evalEdge(m, o.Fanin0, vals) && evalEdge(m, o.Fanin1, vals)
	default:
		v = evalEdge(m, o.Fanin0, vals)
	}
	if e.Compl {
		v = !v
	}
	return v
}

func TestZeroCommandNormalizesReset(t *testing.T) {
	t.Parallel()
	m := aig.NewManager()
	pi := m.CreateCI()
	lo := m.CreateCI() // register output
	next := m.And(pi, lo)
	m.CreateCO(next) // PO, unused driver aside from exercising lo's fanout
	m.CreateCO(next) // LI (next-state input)
	m.SetRegNum(1)
	m.SetLatchInit([]aig.LatchReset{aig.LatchReset1})

	m.ZeroLatches()

	if m.LatchInit(0) != aig.LatchReset0 {
		t.Fatalf("LatchInit(0) = %v, want LatchReset0", m.LatchInit(0))
	}
	if err := m.Check(); err != nil {
		t.Fatalf("Check after ZeroLatches: %v", err)
	}
}

func TestZeroCommandInsertsFreePIForDontCareReset(t *testing.T) {
	t.Parallel()
	m := aig.NewManager()
	pi := m.CreateCI()
	lo := m.CreateCI() // register output, init don't-care
	next := m.And(pi, lo)
	po := m.CreateCO(lo) // exercises a direct (non-AND) fanout of lo
	m.CreateCO(next)     // LI (next-state input)
	m.SetRegNum(1)
	m.SetLatchInit([]aig.LatchReset{aig.LatchResetDC})

	nRegsBefore := m.NumRegs()
	nCisBefore := m.NumCis()

	m.ZeroLatches()

	if got, want := m.NumRegs(), nRegsBefore+1; got != want {
		t.Fatalf("NumRegs() = %d, want %d (original register plus the first-cycle flag)", got, want)
	}
	if got, want := m.NumCis(), nCisBefore+2; got != want {
		t.Fatalf("NumCis() = %d, want %d (fresh stand-in PI plus the flag latch's LO)", got, want)
	}
	for i := 0; i < m.NumRegs(); i++ {
		if m.LatchInit(i) != aig.LatchReset0 {
			t.Fatalf("LatchInit(%d) = %v, want LatchReset0 after zero", i, m.LatchInit(i))
		}
	}
	if m.Object(po.ID).Fanin0.ID == lo.ID {
		t.Fatalf("CO driven by the don't-care register still targets the old LO directly; want it retargeted to the mux")
	}
	if err := m.Check(); err != nil {
		t.Fatalf("Check after ZeroLatches: %v", err)
	}
}
