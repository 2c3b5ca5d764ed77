// Package aiger reads and writes the binary AIGER format (spec.md §6):
// a literal-level And-Inverter Graph interchange file, independent of
// any particular in-memory graph representation. File is the format's
// own model (header counts, latches, outputs, AND gates, all addressed
// by AIGER literal, not by any package's object ID); translating
// between a File and a live graph is the caller's job (see
// cmd/aigopt/netlist.go), matching how the reference implementation
// keeps Io_ReadAiger a pure parser and leaves graph construction to its
// caller.
package aiger

// Latch is one register: Next is the literal driving the register
// (i.e. the D input), Reset is one of:
//   - 0: the register resets to constant 0 (init-0)
//   - 1: the register resets to constant 1 (init-1)
//   - Lit itself: the register's reset value is don't-care (the
//     self-literal convention the format uses in place of a third
//     bit)
type Latch struct {
	Lit   int // this register's own literal (always even: 2*var)
	Next  int
	Reset int
}

// AndGate is one two-input AND, addressed by its own (even) literal and
// its two fanin literals.
type AndGate struct {
	Lhs, Rhs0, Rhs1 int
}

// Justice is one justice property: a list of literals, one per
// accepting condition.
type Justice struct {
	Lits []int
}

// Symbol is one symbol-table line: `i3 foo`, `o0 done`, and so on.
type Symbol struct {
	Kind  byte // 'i', 'l', 'o', 'b', 'c', 'j', or 'f'
	Index int
	Name  string
}

// File is the parsed (or to-be-written) contents of one AIGER file.
// Latches, Outputs, Bads, Constraints, Fairness and the AND gates are
// all expressed as literals over the format's own variable numbering
// (0 = constant, 1..I = inputs, I+1..I+L = latches, I+L+1..M = ANDs,
// in that order) — the same numbering ToLit/EdgeFromLit already use
// for object ID 0 being the constant, which is why no renumbering
// trick is needed at the edges of this package.
type File struct {
	I, L, O, A int // header counts; M = I + L + A is derived, not stored

	Latches     []Latch
	Outputs     []int
	Bads        []int
	Constraints []int
	Justices    []Justice
	Fairness    []int
	Ands        []AndGate

	Symbols []Symbol
	Comment string // text following a lone "c" line, if present
}

// M returns the header's total variable count.
func (f *File) M() int { return f.I + f.L + len(f.Ands) }
