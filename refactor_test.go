package aig

import "testing"

// S6 from spec.md §8: refactor must not change a minimal two-PI,
// one-AND graph (there is no window that yields a smaller rebuild).
func TestRefactorIdempotentOnMinimalGraph(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	n := m.And(a, b)
	m.CreateCO(n)

	before := m.NumAnds()
	accepted, err := m.Refactor(DefaultRefactorParams())
	if err != nil {
		t.Fatalf("Refactor: %v", err)
	}
	if accepted != 0 {
		t.Fatalf("Refactor accepted %d replacements on a minimal graph", accepted)
	}
	if got := m.NumAnds(); got != before {
		t.Fatalf("Refactor changed AND count on a minimal graph: before=%d after=%d", before, got)
	}
}

// Property 6 / S6: refactor must preserve the function computed at
// every output, even when it does find a cheaper factored form.
func TestRefactorPreservesFunction(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()
	d := m.CreateCI()

	// (a&b) | (a&c) | (a&d): expands into several single-fanout ANDs
	// sharing the literal a, giving refactor's algebraic factoring a
	// genuine common-factor opportunity ( a&(b|c|d) ).
	n := m.Or(m.Or(m.And(a, b), m.And(a, c)), m.And(a, d))
	co := m.CreateCO(n)

	leaves := []int32{a.ID, b.ID, c.ID, d.ID}
	before := m.simulateCone(n, leaves)

	if _, err := m.Refactor(DefaultRefactorParams()); err != nil {
		t.Fatalf("Refactor: %v", err)
	}

	after := m.simulateCone(m.Object(co.ID).Fanin0, leaves)
	if before != after {
		t.Fatalf("Refactor changed the function: before=%#x after=%#x", before, after)
	}
	if !m.IsAcyclic() {
		t.Fatal("graph became cyclic after Refactor")
	}
	if err := m.Check(); err != nil {
		t.Fatalf("Check after Refactor: %v", err)
	}
}

// Refactor must never shrink an unrelated output's function even when
// another part of the graph gets rebuilt in the same pass.
func TestRefactorPreservesFunctionMultiOutput(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	c := m.CreateCI()

	n1 := m.Or(m.Or(m.And(a, b), m.And(a, c)), m.And(b, c))
	n2 := m.Xor(a, m.Xor(b, c))
	co1 := m.CreateCO(n1)
	co2 := m.CreateCO(n2)

	leaves := []int32{a.ID, b.ID, c.ID}
	before1 := m.simulateCone(n1, leaves)
	before2 := m.simulateCone(n2, leaves)

	if _, err := m.Refactor(DefaultRefactorParams()); err != nil {
		t.Fatalf("Refactor: %v", err)
	}

	after1 := m.simulateCone(m.Object(co1.ID).Fanin0, leaves)
	after2 := m.simulateCone(m.Object(co2.ID).Fanin0, leaves)
	if before1 != after1 {
		t.Fatalf("Refactor changed output 1: before=%#x after=%#x", before1, after1)
	}
	if before2 != after2 {
		t.Fatalf("Refactor changed output 2: before=%#x after=%#x", before2, after2)
	}
	if err := m.Check(); err != nil {
		t.Fatalf("Check after Refactor: %v", err)
	}
}

// buildExpr must round-trip every factored expression kind: constants,
// bare/negated literals, AND, and OR.
func TestBuildExprRoundTrips(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	leaves := []Edge{a, b}

	if got := m.buildExpr(&Expr{Kind: ExprConst, ConstValue: true}, leaves); got != m.Const1() {
		t.Fatalf("buildExpr(const true) = %+v, want Const1", got)
	}
	if got := m.buildExpr(&Expr{Kind: ExprConst, ConstValue: false}, leaves); got != m.Const0() {
		t.Fatalf("buildExpr(const false) = %+v, want Const0", got)
	}
	if got := m.buildExpr(&Expr{Kind: ExprLit, Var: 0}, leaves); got != a {
		t.Fatalf("buildExpr(lit 0) = %+v, want %+v", got, a)
	}
	if got := m.buildExpr(&Expr{Kind: ExprLit, Var: 1, Neg: true}, leaves); got != b.Not() {
		t.Fatalf("buildExpr(lit 1, neg) = %+v, want %+v", got, b.Not())
	}

	andExpr := &Expr{Kind: ExprAnd,
		Left:  &Expr{Kind: ExprLit, Var: 0},
		Right: &Expr{Kind: ExprLit, Var: 1},
	}
	if got, want := m.buildExpr(andExpr, leaves), m.And(a, b); got != want {
		t.Fatalf("buildExpr(and) = %+v, want %+v", got, want)
	}

	orExpr := &Expr{Kind: ExprOr,
		Left:  &Expr{Kind: ExprLit, Var: 0},
		Right: &Expr{Kind: ExprLit, Var: 1},
	}
	if got, want := m.buildExpr(orExpr, leaves), m.Or(a, b); got != want {
		t.Fatalf("buildExpr(or) = %+v, want %+v", got, want)
	}
}
