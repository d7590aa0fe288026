package ltl_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/joeycumines/go-ppsmc/internal/ltl"
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

func TestBuildCheckFormulaNegatesImplication(t *testing.T) {
	s, err := smv.Parse(flipFlopSrc)
	require.NoError(t, err)

	formula := ltl.BuildCheckFormula(s, nil, false)
	// the outermost structure must be a negation (property-fails formula).
	pre, ok := formula.(smv.PrefixExpr)
	require.True(t, ok)
	require.Equal(t, smv.PrefixNot, pre.Op)
}

func TestBuildCheckFormulaRewritesNextToLtlNext(t *testing.T) {
	s, err := smv.Parse(`
MODULE main
VAR
  a: boolean;
INIT
  !a
TRANS
  next(a) <-> !a
LTLSPEC
  G F a
`)
	require.NoError(t, err)

	formula := ltl.BuildCheckFormula(s, []int{0}, false)
	require.NotContains(t, formula.String(), "next(")
}

func TestTranslateRequiresExternalTool(t *testing.T) {
	if _, err := exec.LookPath(ltl.TranslatorPath); err != nil {
		t.Skip("ltl2tgba not installed in this environment")
	}
	s, err := smv.Parse(flipFlopSrc)
	require.NoError(t, err)
	formula := ltl.BuildCheckFormula(s, nil, false)
	_, err = ltl.Translate(context.Background(), formula)
	require.NoError(t, err)
}
