package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joeycumines/go-ppsmc/internal/automata"
	"github.com/joeycumines/go-ppsmc/internal/bdd"
	"github.com/joeycumines/go-ppsmc/internal/engine"
	"github.com/joeycumines/go-ppsmc/internal/fsmbdd"
	"github.com/joeycumines/go-ppsmc/internal/ltl"
	"github.com/joeycumines/go-ppsmc/internal/ppsmclog"
	"github.com/joeycumines/go-ppsmc/internal/smv"
	"github.com/joeycumines/go-ppsmc/internal/workpool"
)

func main() {
	args, err := ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if args.Verbose {
		ppsmclog.SetLogger(ppsmclog.NewStderrLogger())
	}

	verified, stat, err := run(args)
	stat.Log()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("verified: %t\n", verified)
	if !verified {
		os.Exit(1)
	}
}

// run wires the whole pipeline (spec.md section 1's end-to-end flow): SMV
// parse, LTL formula assembly, external translation, never-claim parsing,
// optional variable-split refinement, and the chosen checking engine.
// Mirrors ppsmc/src/{property_driven/mod.rs,traditional.rs}'s check
// functions.
func run(args *Args) (bool, *engine.Statistic, error) {
	stat := &engine.Statistic{}

	raw, err := os.ReadFile(args.File)
	if err != nil {
		return false, stat, fmt.Errorf("ppsmc: reading %s: %w", args.File, err)
	}

	s, err := smv.Parse(string(raw))
	if err != nil {
		return false, stat, fmt.Errorf("ppsmc: parsing %s: %w", args.File, err)
	}

	m := bdd.New()
	smvBdd, err := smv.NewSmvBdd(m, s)
	if err != nil {
		return false, stat, fmt.Errorf("ppsmc: compiling %s: %w", args.File, err)
	}

	sysFsm := smvBdd.ToFsmBdd(args.TransMethod.toFsmbddMethod())
	atoms := buildAtoms(m, smvBdd)

	ctx := context.Background()
	if args.Algorithm == AlgorithmTraditional {
		return checkTraditional(ctx, args, s, sysFsm, smvBdd, atoms, stat)
	}
	return checkPropertyDriven(ctx, args, s, sysFsm, smvBdd, atoms, stat)
}

func checkPropertyDriven(ctx context.Context, args *Args, s *smv.Smv, sysFsm *fsmbdd.FsmBdd, smvBdd *smv.SmvBdd, atoms map[string]bdd.Bdd, stat *engine.Statistic) (bool, *engine.Statistic, error) {
	sysFsm.Justice = nil

	formula := ltl.BuildCheckFormula(s, args.LtlExtendTrans, args.FlattenDefine)
	ba, err := translateAndParse(ctx, formula, sysFsm.Manager, smvBdd.Symbols, atoms)
	if err != nil {
		return false, stat, err
	}
	for _, v := range args.LtlExtendVars {
		ba = ba.Partition(v)
	}

	p := &engine.PPSMC{
		FSM:       sysFsm,
		Automaton: ba,
		Barrier:   args.OldImpl,
		Pool:      workpool.New(args.Parallel),
		Statistic: *stat,
	}
	verified := p.Check()
	*stat = p.Statistic
	return verified, stat, nil
}

func checkTraditional(ctx context.Context, args *Args, s *smv.Smv, sysFsm *fsmbdd.FsmBdd, smvBdd *smv.SmvBdd, atoms map[string]bdd.Bdd, stat *engine.Statistic) (bool, *engine.Statistic, error) {
	var formula smv.Expr
	if args.GeneralizeAutomata {
		formula = ltl.Preprocess(s, smv.Not(s.LtlSpecs[0]))
	} else {
		sysFsm.Justice = nil
		formula = ltl.BuildCheckFormula(s, nil, args.FlattenDefine)
	}

	ba, err := translateAndParse(ctx, formula, sysFsm.Manager, smvBdd.Symbols, atoms)
	if err != nil {
		return false, stat, err
	}

	start := time.Now()
	verified := engine.TraditionalCheck(sysFsm, ba)
	stat.FairCycleTime += time.Since(start)
	return verified, stat, nil
}

// translateAndParse hands formula to the external ltl2tgba translator and
// parses its never-claim output into an explicit-state automaton, resolving
// atomic propositions against the merged symbols+defines atom table.
func translateAndParse(ctx context.Context, formula smv.Expr, m *bdd.Manager, symbols map[string]int, atoms map[string]bdd.Bdd) (*automata.BuchiAutomata, error) {
	text, err := ltl.Translate(ctx, formula)
	if err != nil {
		return nil, fmt.Errorf("ppsmc: translating LTL formula: %w", err)
	}
	ba, err := automata.Parse(text, m, symbols, atoms)
	if err != nil {
		return nil, fmt.Errorf("ppsmc: parsing never claim: %w", err)
	}
	return ba, nil
}

// buildAtoms merges smvBdd's plain state-variable symbol table with its
// DEFINE cache into one atom-resolution table: the external translator's
// never-claim output references both kinds of identifier indistinguishably
// (automata.rs's BuchiAutomata::from_ltl merges symbols and defines the
// same way before parsing).
func buildAtoms(m *bdd.Manager, smvBdd *smv.SmvBdd) map[string]bdd.Bdd {
	atoms := make(map[string]bdd.Bdd, len(smvBdd.Symbols)+len(smvBdd.Defines))
	for name, idx := range smvBdd.Symbols {
		atoms[name] = m.IthVar(idx)
	}
	for name, b := range smvBdd.Defines {
		atoms[name] = b
	}
	return atoms
}
