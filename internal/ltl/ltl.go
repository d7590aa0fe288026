// Package ltl builds the LTL check formula handed to the external
// LTL-to-Büchi translator and preprocesses it into the translator's
// expected shape (spec.md section 4.3, "from_ltl"/"ltl_to_automata_preprocess").
package ltl

import (
	"github.com/joeycumines/go-ppsmc/internal/smv"
)

// transExprToLtl rewrites every smv.PrefixNext in e into smv.PrefixLtlNext
// (next() in a TRANS expression means "X" once the expression is read as
// an LTL formula); everything else recurses unchanged.
func transExprToLtl(e smv.Expr) smv.Expr {
	switch x := e.(type) {
	case smv.IdentExpr, smv.LitExpr:
		return x
	case smv.PrefixExpr:
		op := x.Op
		if op == smv.PrefixNext {
			op = smv.PrefixLtlNext
		}
		return smv.PrefixExpr{Op: op, X: transExprToLtl(x.X)}
	case smv.InfixExpr:
		return smv.InfixExpr{Op: x.Op, Left: transExprToLtl(x.Left), Right: transExprToLtl(x.Right)}
	case smv.CaseExpr:
		panic("ltl: case expressions must be flattened before LTL translation")
	default:
		panic("ltl: unknown expression kind")
	}
}

// Preprocess flattens DEFINE references and CASE expressions out of e, then
// rewrites next() to X, preparing e for textual handoff to the external
// translator (mirrors ltl_to_automata_preprocess).
func Preprocess(s *smv.Smv, e smv.Expr) smv.Expr {
	e = s.FlattenToPropositionalDefine(e)
	e = s.FlattenCase(e)
	return transExprToLtl(e)
}

// BuildCheckFormula assembles the formula that must be unsatisfiable for
// the property to hold: ¬((extend-trans conjuncts, each wrapped G) ∧
// (fairness conjuncts, each wrapped G F) → ltlspec[0]), then preprocessed
// (spec.md section 4.3 / 4.5, "get_ltl"). extendTrans selects TRANS
// conjuncts (by index into s.Trans) to fold in as always-globally
// clauses -- a refinement that narrows the automaton to runs consistent
// with a chosen subset of the transition relation, used for performance
// tuning on some benchmarks (`--ltl-extend-trans`).
func BuildCheckFormula(s *smv.Smv, extendTrans []int, flattenDefines bool) smv.Expr {
	if flattenDefines {
		s = s.FlattenDefines()
	}

	transLtl := smv.Expr(smv.LitExpr{Value: true})
	for _, idx := range extendTrans {
		transLtl = smv.And(transLtl, smv.Globally(s.Trans[idx]))
	}

	fairness := smv.Expr(smv.LitExpr{Value: true})
	for _, fair := range s.Fairness {
		fairness = smv.And(fairness, smv.Globally(smv.Finally(fair)))
	}

	ltl := s.LtlSpecs[0]
	negated := smv.Not(smv.Imply(smv.And(transLtl, fairness), ltl))
	return Preprocess(s, negated)
}
