package rewritelib

// This file generates one candidate AND/inverter subgraph per NPN
// class, by the same brute-force prime-implicant-cover-then-factor
// approach the refactor pass uses against live cuts (see
// ../../sop.go), duplicated here in a package-boundary-local form: this
// package cannot import the root aig package (aig imports rewritelib,
// and a dependency back the other way would cycle), and the library's
// template generation is conceptually the offline counterpart of the
// same algorithm - turning a truth table into a small AND/OR/inverter
// DAG - rather than the same call reused.

type cube [NVars]int8 // 0 = don't-care, 1 = positive literal, 2 = negative literal

type exprKind uint8

const (
	exprConst exprKind = iota
	exprLit
	exprAnd
	exprOr
)

type expr struct {
	kind        exprKind
	v           int
	neg         bool
	constValue  bool
	left, right *expr
}

func constExpr(v bool) *expr { return &expr{kind: exprConst, constValue: v} }
func litExpr(v int, neg bool) *expr { return &expr{kind: exprLit, v: v, neg: neg} }

func andExpr(a, b *expr) *expr {
	if a.kind == exprConst {
		if !a.constValue {
			return constExpr(false)
		}
		return b
	}
	if b.kind == exprConst {
		if !b.constValue {
			return constExpr(false)
		}
		return a
	}
	return &expr{kind: exprAnd, left: a, right: b}
}

func orExpr(a, b *expr) *expr {
	if a.kind == exprConst {
		if a.constValue {
			return constExpr(true)
		}
		return b
	}
	if b.kind == exprConst {
		if b.constValue {
			return constExpr(true)
		}
		return a
	}
	return &expr{kind: exprOr, left: a, right: b}
}

// factorTruth is the same shape as the root package's FactorTruth.
func factorTruth(tt uint16, numVars int) *expr {
	tt &= uint16((1 << uint(1<<uint(numVars))) - 1)
	cubes := primeImplicantCover(tt, numVars)
	if len(cubes) == 0 {
		return constExpr(false)
	}
	return factorCubes(cubes, numVars)
}

func primeImplicantCover(tt uint16, numVars int) []cube {
	width := 1 << uint(numVars)
	anyOne := false
	for m := 0; m < width; m++ {
		if (tt>>uint(m))&1 != 0 {
			anyOne = true
			break
		}
	}
	if !anyOne {
		return nil
	}

	var candidates []cube
	var gen func(pos int, c cube)
	gen = func(pos int, c cube) {
		if pos == numVars {
			if cubeValid(tt, numVars, c) {
				candidates = append(candidates, c)
			}
			return
		}
		for _, v := range [3]int8{0, 1, 2} {
			c[pos] = v
			gen(pos+1, c)
		}
	}
	gen(0, cube{})

	var primes []cube
	for _, c := range candidates {
		if cubeIsPrime(tt, numVars, c) {
			primes = append(primes, c)
		}
	}

	covered := make(map[int]bool, width)
	var cover []cube
	for {
		bestIdx, bestGain := -1, 0
		for i, c := range primes {
			gain := 0
			for m := 0; m < width; m++ {
				if (tt>>uint(m))&1 != 0 && !covered[m] && cubeCovers(c, numVars, m) {
					gain++
				}
			}
			if gain > bestGain {
				bestGain = gain
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		cover = append(cover, primes[bestIdx])
		for m := 0; m < width; m++ {
			if cubeCovers(primes[bestIdx], numVars, m) {
				covered[m] = true
			}
		}
	}
	return cover
}

func cubeCovers(c cube, numVars, minterm int) bool {
	for v := 0; v < numVars; v++ {
		bit := (minterm >> uint(v)) & 1
		switch c[v] {
		case 1:
			if bit != 1 {
				return false
			}
		case 2:
			if bit != 0 {
				return false
			}
		}
	}
	return true
}

func cubeValid(tt uint16, numVars int, c cube) bool {
	for m := 0; m < (1 << uint(numVars)); m++ {
		if cubeCovers(c, numVars, m) && (tt>>uint(m))&1 == 0 {
			return false
		}
	}
	return true
}

func cubeIsPrime(tt uint16, numVars int, c cube) bool {
	for v := 0; v < numVars; v++ {
		if c[v] == 0 {
			continue
		}
		relaxed := c
		relaxed[v] = 0
		if cubeValid(tt, numVars, relaxed) {
			return false
		}
	}
	return true
}

func factorCubes(cubes []cube, numVars int) *expr {
	if len(cubes) == 0 {
		return constExpr(false)
	}
	if len(cubes) == 1 {
		return cubeToAndExpr(cubes[0], numVars)
	}

	bestVar, bestNeg, bestCount := -1, false, 0
	for v := 0; v < numVars; v++ {
		pos, neg := 0, 0
		for _, c := range cubes {
			switch c[v] {
			case 1:
				pos++
			case 2:
				neg++
			}
		}
		if pos > bestCount {
			bestCount, bestVar, bestNeg = pos, v, false
		}
		if neg > bestCount {
			bestCount, bestVar, bestNeg = neg, v, true
		}
	}
	if bestVar < 0 {
		return constExpr(true)
	}

	lit := int8(1)
	if bestNeg {
		lit = 2
	}
	var withLit, withoutLit []cube
	for _, c := range cubes {
		if c[bestVar] == lit {
			c2 := c
			c2[bestVar] = 0
			withLit = append(withLit, c2)
		} else {
			withoutLit = append(withoutLit, c)
		}
	}

	term := andExpr(litExpr(bestVar, bestNeg), factorCubes(withLit, numVars))
	if len(withoutLit) == 0 {
		return term
	}
	return orExpr(term, factorCubes(withoutLit, numVars))
}

func cubeToAndExpr(c cube, numVars int) *expr {
	result := constExpr(true)
	for v := 0; v < numVars; v++ {
		switch c[v] {
		case 1:
			result = andExpr(result, litExpr(v, false))
		case 2:
			result = andExpr(result, litExpr(v, true))
		}
	}
	return result
}
