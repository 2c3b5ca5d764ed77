package aig

// cube is a product term over up to nLeafMax variables: cube[v] is 0 for
// "don't care", 1 for "variable v appears positive", 2 for "variable v
// appears negated".
type cube [nLeafMax]int8

// ExprKind tags the node kind of a factored-form expression tree.
type ExprKind uint8

const (
	ExprConst ExprKind = iota
	ExprLit
	ExprAnd
	ExprOr
)

// Expr is the algebraic factored form produced from a truth table: an
// AND/OR tree over literals of the cut's leaves, exactly what §4.7 calls
// "a DAG of AND/OR/inverter operations over the leaves". It is evaluated
// against the live AIG by refactor.go, which maps each Var index to the
// corresponding leaf edge.
type Expr struct {
	Kind        ExprKind
	Var         int  // valid when Kind == ExprLit
	Neg         bool // valid when Kind == ExprLit: true = negated literal
	ConstValue  bool // valid when Kind == ExprConst
	Left, Right *Expr
}

func constExpr(v bool) *Expr { return &Expr{Kind: ExprConst, ConstValue: v} }
func litExpr(v int, neg bool) *Expr {
	return &Expr{Kind: ExprLit, Var: v, Neg: neg}
}

func andExpr(a, b *Expr) *Expr {
	if a.Kind == ExprConst {
		if !a.ConstValue {
			return constExpr(false)
		}
		return b
	}
	if b.Kind == ExprConst {
		if !b.ConstValue {
			return constExpr(false)
		}
		return a
	}
	return &Expr{Kind: ExprAnd, Left: a, Right: b}
}

func orExpr(a, b *Expr) *Expr {
	if a.Kind == ExprConst {
		if a.ConstValue {
			return constExpr(true)
		}
		return b
	}
	if b.Kind == ExprConst {
		if b.ConstValue {
			return constExpr(true)
		}
		return a
	}
	return &Expr{Kind: ExprOr, Left: a, Right: b}
}

// FactorTruth decomposes a truth table over numVars variables into an
// irredundant sum-of-products (via prime-implicant extraction and a
// greedy cover) and then algebraically factors that SOP into an AND/OR
// tree, per §4.7 step 3.
func FactorTruth(tt uint16, numVars int) *Expr {
	tt &= uint16((1 << uint(1<<uint(numVars))) - 1)
	cubes := primeImplicantCover(tt, numVars)
	if len(cubes) == 0 {
		return constExpr(false)
	}
	return factorCubes(cubes, numVars)
}

// primeImplicantCover computes every prime implicant of tt and greedily
// selects a cover of all its true minterms, largest-coverage first.
// With numVars <= 4 the whole 3^numVars candidate space (81 cubes at
// most) is cheap to enumerate exhaustively.
func primeImplicantCover(tt uint16, numVars int) []cube {
	width := 1 << uint(numVars)
	var anyOne bool
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

// factorCubes implements a literal-based algebraic factoring (a
// simplified relative of Kit_Factor's Boolean-division approach): it
// repeatedly picks the literal appearing in the most remaining cubes,
// splits the cube set into those containing it (the quotient, with that
// literal removed) and those that don't (the remainder), and returns
// literal AND factor(quotient) OR factor(remainder).
func factorCubes(cubes []cube, numVars int) *Expr {
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
		// every cube is the all-don't-care cube: the function is constant 1.
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

func cubeToAndExpr(c cube, numVars int) *Expr {
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
