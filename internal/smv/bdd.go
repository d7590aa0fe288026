package smv

import (
	"fmt"

	"github.com/joeycumines/go-ppsmc/internal/bdd"
	"github.com/joeycumines/go-ppsmc/internal/fsmbdd"
)

// SmvBdd is a parsed Smv module with every expression compiled down to
// BDDs over a shared Manager: one present/next variable pair per declared
// latch, symbol table name -> present-state variable index (spec.md
// section 6, "to_fsmbdd").
type SmvBdd struct {
	Manager    *bdd.Manager
	Symbols    map[string]int
	Defines    map[string]bdd.Bdd
	TransParts []bdd.Bdd
	Init       bdd.Bdd
	Invariants bdd.Bdd
	Justice    []bdd.Bdd
}

// NewSmvBdd allocates one present/next variable pair per declared latch
// and compiles every Inits/Trans/Invariants/Fairness expression to a BDD,
// resolving DEFINE identifiers lazily and caching each one once.
func NewSmvBdd(m *bdd.Manager, s *Smv) (*SmvBdd, error) {
	symbols := make(map[string]int, len(s.Vars))
	for i, v := range s.Vars {
		current := i * 2
		next := current + 1
		symbols[v.Ident] = current
		m.IthVar(next)
	}

	defines := make(map[string]bdd.Bdd)
	conv := &bddConverter{m: m, symbols: symbols, defines: s.Defines, cache: defines}

	invariants := m.Constant(true)
	for _, e := range s.Invariants {
		b, err := conv.toBdd(e)
		if err != nil {
			return nil, err
		}
		invariants = invariants.And(b)
	}

	trans := make([]bdd.Bdd, 0, len(s.Trans))
	for _, e := range s.Trans {
		b, err := conv.toBdd(e)
		if err != nil {
			return nil, err
		}
		trans = append(trans, b)
	}

	init := m.Constant(true)
	for _, e := range s.Inits {
		b, err := conv.toBdd(e)
		if err != nil {
			return nil, err
		}
		init = init.And(b)
	}

	justice := make([]bdd.Bdd, 0, len(s.Fairness))
	for _, e := range s.Fairness {
		b, err := conv.toBdd(e)
		if err != nil {
			return nil, err
		}
		justice = append(justice, b)
	}

	return &SmvBdd{
		Manager:    m,
		Symbols:    symbols,
		Defines:    conv.cache,
		TransParts: trans,
		Init:       init,
		Invariants: invariants,
		Justice:    justice,
	}, nil
}

// ToFsmBdd builds the partitioned FsmBdd for this module, per the chosen
// transition-relation construction method.
func (s *SmvBdd) ToFsmBdd(method fsmbdd.Method) *fsmbdd.FsmBdd {
	trans := fsmbdd.NewTrans(s.Manager, s.TransParts, method)
	return fsmbdd.New(s.Manager, s.Init, s.Invariants, trans, s.Justice)
}

type bddConverter struct {
	m       *bdd.Manager
	symbols map[string]int
	defines map[string]Define
	cache   map[string]bdd.Bdd
}

func (c *bddConverter) toBdd(e Expr) (bdd.Bdd, error) {
	switch x := e.(type) {
	case IdentExpr:
		if def, ok := c.defines[x.Name]; ok {
			if cached, ok := c.cache[x.Name]; ok {
				return cached, nil
			}
			b, err := c.toBdd(def.Expr)
			if err != nil {
				return bdd.Bdd{}, err
			}
			c.cache[x.Name] = b
			return b, nil
		}
		idx, ok := c.symbols[x.Name]
		if !ok {
			return bdd.Bdd{}, fmt.Errorf("smv: unknown identifier %q", x.Name)
		}
		return c.m.IthVar(idx), nil
	case LitExpr:
		return c.m.Constant(x.Value), nil
	case PrefixExpr:
		sub, err := c.toBdd(x.X)
		if err != nil {
			return bdd.Bdd{}, err
		}
		switch x.Op {
		case PrefixNot:
			return sub.Not(), nil
		case PrefixNext:
			return sub.NextState(), nil
		default:
			return bdd.Bdd{}, fmt.Errorf("smv: operator %s has no direct BDD encoding", x.Op)
		}
	case InfixExpr:
		left, err := c.toBdd(x.Left)
		if err != nil {
			return bdd.Bdd{}, err
		}
		right, err := c.toBdd(x.Right)
		if err != nil {
			return bdd.Bdd{}, err
		}
		switch x.Op {
		case InfixAnd:
			return left.And(right), nil
		case InfixOr:
			return left.Or(right), nil
		case InfixXor:
			return left.Xor(right), nil
		case InfixImply:
			return left.Not().Or(right), nil
		case InfixIff:
			return left.Xor(right).Not(), nil
		default:
			return bdd.Bdd{}, fmt.Errorf("smv: operator %s has no direct BDD encoding", x.Op)
		}
	case CaseExpr:
		n := len(x.Branches)
		ans, err := c.toBdd(x.Branches[n-1].Result)
		if err != nil {
			return bdd.Bdd{}, err
		}
		for i := n - 2; i >= 0; i-- {
			cond, err := c.toBdd(x.Branches[i].Cond)
			if err != nil {
				return bdd.Bdd{}, err
			}
			res, err := c.toBdd(x.Branches[i].Result)
			if err != nil {
				return bdd.Bdd{}, err
			}
			ans = cond.IfThenElse(res, ans)
		}
		return ans, nil
	default:
		return bdd.Bdd{}, fmt.Errorf("smv: unknown expression kind")
	}
}
