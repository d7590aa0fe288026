package smv

// Define is a DEFINE-section macro binding.
type Define struct {
	Ident string
	Expr  Expr
}

// Var is a VAR/IVAR-section Boolean latch declaration.
type Var struct{ Ident string }

// Smv is a fully parsed SMV module body (spec.md section 6).
type Smv struct {
	Defines    map[string]Define
	Vars       []Var
	Inits      []Expr
	Trans      []Expr
	Invariants []Expr
	Fairness   []Expr
	LtlSpecs   []Expr
}

func newSmv() *Smv {
	return &Smv{Defines: make(map[string]Define)}
}

func (s *Smv) dedupTrans() {
	seen := make([]Expr, 0, len(s.Trans))
	for _, t := range s.Trans {
		dup := false
		for _, o := range seen {
			if exprEqual(t, o) {
				dup = true
				break
			}
		}
		if !dup {
			seen = append(seen, t)
		}
	}
	s.Trans = seen
}

func exprEqual(a, b Expr) bool {
	return a.String() == b.String()
}

func (s *Smv) clone() *Smv {
	defines := make(map[string]Define, len(s.Defines))
	for k, v := range s.Defines {
		defines[k] = v
	}
	return &Smv{
		Defines:    defines,
		Vars:       append([]Var(nil), s.Vars...),
		Inits:      append([]Expr(nil), s.Inits...),
		Trans:      append([]Expr(nil), s.Trans...),
		Invariants: append([]Expr(nil), s.Invariants...),
		Fairness:   append([]Expr(nil), s.Fairness...),
		LtlSpecs:   append([]Expr(nil), s.LtlSpecs...),
	}
}

func (s *Smv) isVar(ident string) bool {
	for _, v := range s.Vars {
		if v.Ident == ident {
			return true
		}
	}
	return false
}

// flattenExpr recursively substitutes DEFINE identifiers with their
// (itself-flattened) expansion, memoizing each define after its first
// expansion (mirroring Smv::flatten_expr). It panics if an identifier is
// neither a define nor a declared variable; Parse does not check
// identifiers, and NewSmvBdd reports the same case as an error.
func (s *Smv) flattenExpr(e Expr, flattened map[string]bool) Expr {
	switch x := e.(type) {
	case LitExpr:
		return x
	case IdentExpr:
		if def, ok := s.Defines[x.Name]; ok {
			if !flattened[x.Name] {
				def.Expr = s.flattenExpr(def.Expr, flattened)
				s.Defines[x.Name] = def
				flattened[x.Name] = true
				return s.Defines[x.Name].Expr
			}
			return def.Expr
		}
		if s.isVar(x.Name) {
			return x
		}
		panic("smv: identifier " + x.Name + " is neither a define nor a declared variable")
	case PrefixExpr:
		return PrefixExpr{Op: x.Op, X: s.flattenExpr(x.X, flattened)}
	case InfixExpr:
		return InfixExpr{Op: x.Op, Left: s.flattenExpr(x.Left, flattened), Right: s.flattenExpr(x.Right, flattened)}
	case CaseExpr:
		n := len(x.Branches)
		ans := s.flattenExpr(x.Branches[n-1].Result, flattened)
		for i := n - 2; i >= 0; i-- {
			cond := s.flattenExpr(x.Branches[i].Cond, flattened)
			res := s.flattenExpr(x.Branches[i].Result, flattened)
			ans = Or(And(cond, res), And(Not(cond), ans))
		}
		return ans
	default:
		panic("smv: unknown expression kind")
	}
}

// FlattenDefines returns a copy of s with every DEFINE identifier expanded
// away in Inits/Trans/Invariants/Fairness/LtlSpecs (spec.md section 6,
// "--fd flattens defines").
func (s *Smv) FlattenDefines() *Smv {
	res := s.clone()
	flattened := make(map[string]bool)
	for i := range res.Inits {
		res.Inits[i] = res.flattenExpr(res.Inits[i], flattened)
	}
	for i := range res.Trans {
		res.Trans[i] = res.flattenExpr(res.Trans[i], flattened)
	}
	for i := range res.Invariants {
		res.Invariants[i] = res.flattenExpr(res.Invariants[i], flattened)
	}
	for i := range res.Fairness {
		res.Fairness[i] = res.flattenExpr(res.Fairness[i], flattened)
	}
	for i := range res.LtlSpecs {
		res.LtlSpecs[i] = res.flattenExpr(res.LtlSpecs[i], flattened)
	}
	return res
}

// flattenToPropositionalDefineRec expands only the DEFINE identifiers
// reachable through a subtree, leaving the subtree otherwise untouched; it
// returns (expr, true) when a substitution actually occurred anywhere
// below, and also for a prefix operator other than negation, which it
// rebuilds unchanged around its original operand. Otherwise it returns
// false (with nil, or with the rebuilt node for an infix operator other
// than and, or, iff and implication),
// mirroring the reference's Option-returning recursion.
func (s *Smv) flattenToPropositionalDefineRec(e Expr) (Expr, bool) {
	switch x := e.(type) {
	case IdentExpr:
		if def, ok := s.Defines[x.Name]; ok {
			if flat, _ := s.flattenToPropositionalDefineRec(def.Expr); flat != nil {
				return flat, true
			}
			return def.Expr, true
		}
		return nil, false
	case LitExpr:
		return nil, false
	case PrefixExpr:
		sub, changed := s.flattenToPropositionalDefineRec(x.X)
		if !changed {
			if x.Op == PrefixNot {
				return nil, false
			}
			sub = x.X
		}
		return PrefixExpr{Op: x.Op, X: sub}, true
	case InfixExpr:
		leftFlat, leftChanged := s.flattenToPropositionalDefineRec(x.Left)
		rightFlat, rightChanged := s.flattenToPropositionalDefineRec(x.Right)
		if !leftChanged && !rightChanged {
			switch x.Op {
			case InfixAnd, InfixOr, InfixIff, InfixImply:
				return nil, false
			}
			return InfixExpr{Op: x.Op, Left: x.Left, Right: x.Right}, false
		}
		left, right := x.Left, x.Right
		if leftChanged {
			left = leftFlat
		}
		if rightChanged {
			right = rightFlat
		}
		return InfixExpr{Op: x.Op, Left: left, Right: right}, true
	case CaseExpr:
		update := false
		branches := make([]CaseBranch, len(x.Branches))
		for i, b := range x.Branches {
			cond := b.Cond
			if flat, changed := s.flattenToPropositionalDefineRec(b.Cond); changed {
				cond = flat
				update = true
			}
			res := b.Result
			if flat, changed := s.flattenToPropositionalDefineRec(b.Result); changed {
				res = flat
				update = true
			}
			branches[i] = CaseBranch{Cond: cond, Result: res}
		}
		if !update {
			return nil, false
		}
		return CaseExpr{Branches: branches}, true
	default:
		return nil, false
	}
}

// FlattenToPropositionalDefine expands DEFINE identifiers appearing
// directly in e (but does not touch Not's non-define operands), used when
// building the LTL check formula so the automaton translator sees
// propositional atoms rather than bare macro names.
func (s *Smv) FlattenToPropositionalDefine(e Expr) Expr {
	if res, changed := s.flattenToPropositionalDefineRec(e); changed {
		return res
	}
	return e
}

// FlattenCase eliminates every CaseExpr in e by expanding it into nested
// if-then-else Boolean structure, recursively.
func (s *Smv) FlattenCase(e Expr) Expr {
	switch x := e.(type) {
	case IdentExpr, LitExpr:
		return x
	case PrefixExpr:
		return PrefixExpr{Op: x.Op, X: s.FlattenCase(x.X)}
	case InfixExpr:
		return InfixExpr{Op: x.Op, Left: s.FlattenCase(x.Left), Right: s.FlattenCase(x.Right)}
	case CaseExpr:
		n := len(x.Branches)
		ans := s.FlattenCase(x.Branches[n-1].Result)
		for i := n - 2; i >= 0; i-- {
			cond := s.FlattenCase(x.Branches[i].Cond)
			res := s.FlattenCase(x.Branches[i].Result)
			ans = Or(And(cond, res), And(Not(cond), ans))
		}
		return ans
	default:
		return e
	}
}
