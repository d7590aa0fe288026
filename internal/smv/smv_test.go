package smv_test

import (
	"testing"

	"github.com/joeycumines/go-ppsmc/internal/bdd"
	"github.com/joeycumines/go-ppsmc/internal/fsmbdd"
	"github.com/joeycumines/go-ppsmc/internal/smv"
	"github.com/stretchr/testify/require"
)

const flipFlopSrc = `
MODULE main
VAR
  a: boolean;
  b: boolean;
INIT
  !a & !b
TRANS
  next(a) <-> !a
TRANS
  next(b) <-> a
FAIRNESS
  a
LTLSPEC
  G F a
`

func TestParseFlipFlop(t *testing.T) {
	s, err := smv.Parse(flipFlopSrc)
	require.NoError(t, err)
	require.Len(t, s.Vars, 2)
	require.Len(t, s.Inits, 1)
	require.Len(t, s.Trans, 2)
	require.Len(t, s.Fairness, 1)
	require.Len(t, s.LtlSpecs, 1)
}

func TestSmvBddReachabilityFlipFlop(t *testing.T) {
	s, err := smv.Parse(flipFlopSrc)
	require.NoError(t, err)

	m := bdd.New()
	sb, err := smv.NewSmvBdd(m, s)
	require.NoError(t, err)

	fsm := sb.ToFsmBdd(fsmbdd.Monolithic)
	reached := fsm.ReachableFromInit()

	a := m.IthVar(sb.Symbols["a"])
	b := m.IthVar(sb.Symbols["b"])

	// the orbit from (!a,!b) is (!a,!b) -> (a,!b) -> (!a,b) -> (a,!b) ...;
	// check the three states it visits are reachable: (F,F), (T,F), (F,T).
	require.False(t, reached.And(a.Not()).And(b.Not()).IsConstant(false))
	require.False(t, reached.And(a).And(b.Not()).IsConstant(false))
	require.False(t, reached.And(a.Not()).And(b).IsConstant(false))
}

const defineAndCaseSrc = `
MODULE main
VAR
  x: boolean;
DEFINE
  notx := !x;
INIT
  !x
TRANS
  next(x) <-> case
    notx : TRUE;
    TRUE : FALSE;
  esac
`

func TestFlattenDefinesAndCase(t *testing.T) {
	s, err := smv.Parse(defineAndCaseSrc)
	require.NoError(t, err)
	flat := s.FlattenDefines()
	require.Contains(t, flat.Defines, "notx")

	// FlattenDefines has already expanded the define and the case in the
	// TRANS expression; the explicit passes below leave no define behind.
	flattenedTrans := flat.FlattenToPropositionalDefine(flat.Trans[0])
	flattenedTrans = flat.FlattenCase(flattenedTrans)

	m := bdd.New()
	sb, err := smv.NewSmvBdd(m, s)
	require.NoError(t, err)
	require.False(t, sb.Init.IsConstant(false))
	require.NotContains(t, flattenedTrans.String(), "notx")
}

func TestIdentifierNormalization(t *testing.T) {
	src := `
MODULE main
VAR
  __a.b: boolean;
INIT
  a_b
TRANS
  next(a_b) <-> a_b
`
	s, err := smv.Parse(src)
	require.NoError(t, err)
	require.Equal(t, "a_b", s.Vars[0].Ident)
}
