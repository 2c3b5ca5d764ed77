// Package rewritelib implements the rewrite pass's NPN-class library:
// a classifier that maps any 4-variable (16-bit) truth table to a
// canonical representative under input permutation, input negation,
// and output negation, and a per-class library of small AND/inverter
// subgraphs a caller can instantiate against a live cut.
package rewritelib

// NVars is the fixed cut width this library supports, matching the
// engine's 4-leaf truth-table format.
const NVars = 4

// perm4 enumerates every permutation of {0,1,2,3} once, computed at
// package init instead of shipped as a literal table.
var perm4 = generatePermutations(NVars)

func generatePermutations(n int) [][NVars]int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	var out [][NVars]int
	var rec func(k int)
	rec = func(k int) {
		if k == n {
			var p [NVars]int
			copy(p[:], idx)
			out = append(out, p)
			return
		}
		for i := k; i < n; i++ {
			idx[k], idx[i] = idx[i], idx[k]
			rec(k + 1)
			idx[k], idx[i] = idx[i], idx[k]
		}
	}
	rec(0)
	return out
}

// permuteTruth re-expresses tt (a function of variables 0..NVars-1,
// minterm bit m's variable v taken from bit v of m) under the
// permutation perm: the returned table's variable perm[i] is tt's
// variable i.
func permuteTruth(tt uint16, perm [NVars]int) uint16 {
	var result uint16
	for m := 0; m < 1<<NVars; m++ {
		if (tt>>uint(m))&1 == 0 {
			continue
		}
		var m2 int
		for i := 0; i < NVars; i++ {
			if (m>>uint(i))&1 != 0 {
				m2 |= 1 << uint(perm[i])
			}
		}
		result |= 1 << uint(m2)
	}
	return result
}

// negateInput flips variable v's polarity throughout the table.
func negateInput(tt uint16, v int) uint16 {
	var result uint16
	for m := 0; m < 1<<NVars; m++ {
		m2 := m ^ (1 << uint(v))
		if (tt>>uint(m))&1 != 0 {
			result |= 1 << uint(m2)
		}
	}
	return result
}

// Transform is one element of the NPN group this library canonicalizes
// under: a variable permutation, a per-input negation mask, and an
// output negation flag.
type Transform struct {
	Perm   [NVars]int
	NegIn  uint8 // bit v set: input v is negated
	NegOut bool
}

// Apply realizes the transform against tt.
func (tr Transform) Apply(tt uint16) uint16 {
	out := tt
	for v := 0; v < NVars; v++ {
		if tr.NegIn&(1<<uint(v)) != 0 {
			out = negateInput(out, v)
		}
	}
	out = permuteTruth(out, tr.Perm)
	if tr.NegOut {
		out = ^out & 0xFFFF
	}
	return out
}

// Canonicalize finds the lexicographically-smallest truth table
// reachable from tt under input permutation, input negation, and
// output negation, together with the transform that reaches it. This
// stands in for the source's precomputed 65536-entry class/permutation/
// negation tables (see DESIGN.md): the class boundary is identical,
// computed on demand instead of loaded from a literal data table.
func Canonicalize(tt uint16) (class uint16, tr Transform) {
	best := uint16(0xFFFF)
	var bestTr Transform
	for _, perm := range perm4 {
		for negIn := 0; negIn < 1<<NVars; negIn++ {
			for _, negOut := range [2]bool{false, true} {
				t := Transform{Perm: perm, NegIn: uint8(negIn), NegOut: negOut}
				cand := t.Apply(tt)
				if cand < best {
					best = cand
					bestTr = t
				}
			}
		}
	}
	return best, bestTr
}

// SourceVar and SourceNeg tell a caller, for canonical-space variable
// j, which original variable it came from and whether Canonicalize
// negated it. permuteTruth sets new_var_{Perm[i]} = old_var_i, so
// canonical variable j equals original variable i where Perm[i] == j
// (the inverse permutation); NegIn is indexed in the original variable
// space, since negation happens before permutation in Apply.
func (tr Transform) SourceVar(canonicalVar int) int {
	for i, p := range tr.Perm {
		if p == canonicalVar {
			return i
		}
	}
	panic("rewritelib: SourceVar: Perm is not a permutation")
}

func (tr Transform) SourceNeg(canonicalVar int) bool {
	return tr.NegIn&(1<<uint(tr.SourceVar(canonicalVar))) != 0
}
