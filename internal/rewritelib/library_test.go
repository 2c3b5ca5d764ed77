package rewritelib

import "testing"

var testElemTT = [NVars]uint16{0xAAAA, 0xCCCC, 0xF0F0, 0xFF00}

// evalTemplate computes the truth table tmpl's subgraph realizes when
// canonical-space leaf i is bound to leafTTs[i], the same bottom-up
// walk buildTemplateEdge in the root package performs against a live
// AIG, done here against plain truth tables instead.
func evalTemplate(tmpl *Template, leafTTs []uint16) uint16 {
	built := make([]uint16, len(tmpl.Nodes))
	resolve := func(ref int) uint16 {
		if IsLeafRef(ref) {
			return leafTTs[LeafIndex(ref)]
		}
		return built[NodeIndex(ref)]
	}
	for i, n := range tmpl.Nodes {
		a := resolve(n.Fanin0)
		if n.Compl0 {
			a = ^a
		}
		b := resolve(n.Fanin1)
		if n.Compl1 {
			b = ^b
		}
		built[i] = a & b
	}
	out := resolve(tmpl.RootRef)
	if tmpl.RootCompl {
		out = ^out
	}
	return out
}

func TestLibraryMatchReproducesFourVarFunction(t *testing.T) {
	t.Parallel()
	lib := NewLibrary()
	tt := testElemTT[0] & testElemTT[1] & testElemTT[2] & testElemTT[3]

	tmpl, tr, ok := lib.Match(tt, NVars)
	if !ok {
		t.Fatal("Match: no match for and4")
	}

	leafTTs := make([]uint16, NVars)
	for j := 0; j < NVars; j++ {
		src := tr.SourceVar(j)
		v := testElemTT[src]
		if tr.SourceNeg(j) {
			v = ^v
		}
		leafTTs[j] = v
	}
	got := evalTemplate(tmpl, leafTTs)
	if got&0xFFFF != tt&0xFFFF {
		t.Fatalf("evalTemplate = %#x, want %#x", got&0xFFFF, tt&0xFFFF)
	}
}

func TestLibraryMatchReproducesTwoVarFunction(t *testing.T) {
	t.Parallel()
	lib := NewLibrary()
	// xor2 as a function of 2 variables, width-4 low-bit convention:
	// minterm m (bit0=v0,bit1=v1) -> v0^v1.
	var xor2 uint16
	for m := 0; m < 4; m++ {
		v0, v1 := m&1, (m>>1)&1
		if v0^v1 != 0 {
			xor2 |= 1 << uint(m)
		}
	}

	tmpl, tr, ok := lib.Match(xor2, 2)
	if !ok {
		t.Fatal("Match: no match for xor2")
	}

	leafTTs := make([]uint16, NVars)
	for j := 0; j < NVars; j++ {
		src := tr.SourceVar(j)
		if src >= 2 {
			src = 0
		}
		v := testElemTT[src]
		if tr.SourceNeg(j) {
			v = ^v
		}
		leafTTs[j] = v
	}
	got := evalTemplate(tmpl, leafTTs) & 0xFFFF

	want := testElemTT[0] ^ testElemTT[1]
	if got != want {
		t.Fatalf("evalTemplate = %#x, want %#x", got, want)
	}
}

func TestMatchRejectsConstantFunction(t *testing.T) {
	t.Parallel()
	lib := NewLibrary()
	if _, _, ok := lib.Match(0, 3); ok {
		t.Fatal("Match accepted the all-zero function")
	}
	if _, _, ok := lib.Match(0x0F, 2); ok {
		t.Fatal("Match accepted the all-one function (width 2: mask 0x0F)")
	}
}

func TestCanonicalizeIsStableUnderNPNEquivalence(t *testing.T) {
	t.Parallel()
	a := testElemTT[0] & testElemTT[1]
	b := (^testElemTT[0]) & testElemTT[1] // a permutation/negation of a's class (and with one input negated)

	ca, _ := Canonicalize(a)
	cb, _ := Canonicalize(b)
	if ca != cb {
		t.Fatalf("NPN-equivalent functions landed in different classes: %#x vs %#x", ca, cb)
	}
}
