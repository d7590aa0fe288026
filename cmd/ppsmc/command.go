// Command ppsmc is the property-driven symbolic model checker's CLI entry
// point (spec.md section 1, "External subprocess" / "CLI"), mirroring
// ppsmc/src/command.rs's Args struct field-for-field.
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/joeycumines/go-ppsmc/internal/fsmbdd"
)

// Algorithm selects the top-level checking strategy (spec.md section 4).
type Algorithm int

const (
	AlgorithmPropertyDriven Algorithm = iota
	AlgorithmTraditional
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmPropertyDriven:
		return "property-driven"
	case AlgorithmTraditional:
		return "traditional"
	default:
		return "unknown"
	}
}

func parseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "", "property-driven":
		return AlgorithmPropertyDriven, nil
	case "traditional":
		return AlgorithmTraditional, nil
	default:
		return 0, fmt.Errorf("ppsmc: unknown algorithm %q (want property-driven or traditional)", s)
	}
}

// TransMethod selects how Trans combines per-conjunct transition BDDs
// (fsmbdd.Method, spec.md section 4.2).
type TransMethod int

const (
	TransMonolithic TransMethod = iota
	TransPartition
)

func parseTransMethod(s string) (TransMethod, error) {
	switch s {
	case "", "monolithic":
		return TransMonolithic, nil
	case "partition":
		return TransPartition, nil
	default:
		return 0, fmt.Errorf("ppsmc: unknown trans-method %q (want monolithic or partition)", s)
	}
}

func (m TransMethod) toFsmbddMethod() fsmbdd.Method {
	if m == TransPartition {
		return fsmbdd.Partition
	}
	return fsmbdd.Monolithic
}

// Args mirrors command.rs's Args: every field is a direct translation of a
// clap-parsed CLI flag.
type Args struct {
	File               string
	Algorithm          Algorithm
	TransMethod        TransMethod
	Parallel           int
	LtlExtendTrans     []int
	LtlExtendVars      []int
	Verbose            bool
	OldImpl            bool // --op: use the barrier-synchronous engine
	GeneralizeAutomata bool // --ga
	FlattenDefine      bool // --fd
}

// intListFlag accumulates into a []int across repeated flag occurrences,
// each occurrence optionally holding a comma-separated list -- there is no
// repeatable-flag-with-Vec<T> primitive in the standard flag package, so
// this is the idiomatic stand-in.
type intListFlag struct{ vals *[]int }

func (f intListFlag) String() string {
	if f.vals == nil || *f.vals == nil {
		return ""
	}
	parts := make([]string, len(*f.vals))
	for i, v := range *f.vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (f intListFlag) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("ppsmc: invalid integer %q: %w", part, err)
		}
		*f.vals = append(*f.vals, v)
	}
	return nil
}

// ParseArgs parses argv (excluding the program name) into Args, applying
// the same defaults as command.rs: property-driven algorithm, monolithic
// trans method, parallel=1, every boolean flag false.
func ParseArgs(argv []string) (*Args, error) {
	fs := flag.NewFlagSet("ppsmc", flag.ContinueOnError)

	args := &Args{
		Algorithm:   AlgorithmPropertyDriven,
		TransMethod: TransMonolithic,
		Parallel:    1,
	}

	var algorithmStr, transMethodStr string
	fs.StringVar(&args.File, "file", "", "input SMV file")
	fs.StringVar(&algorithmStr, "algorithm", "", "model checking algorithm: property-driven or traditional")
	fs.StringVar(&transMethodStr, "trans-method", "", "trans partition method: monolithic or partition")
	fs.IntVar(&args.Parallel, "parallel", 1, "parallel worker-pool width")
	fs.Var(intListFlag{&args.LtlExtendTrans}, "ltl-extend-trans", "TRANS conjunct indices to fold in as G(...) clauses (comma-separated, repeatable)")
	fs.Var(intListFlag{&args.LtlExtendVars}, "ev", "present-state variable indices to apply automata.Partition on, in order (comma-separated, repeatable)")
	fs.BoolVar(&args.Verbose, "v", false, "verbose: install a stderr JSON logger")
	fs.BoolVar(&args.OldImpl, "op", false, "use the barrier-synchronous engine instead of the message-driven default")
	fs.BoolVar(&args.GeneralizeAutomata, "ga", false, "traditional algorithm: skip LTL-fairness folding, use the raw negated LTLSPEC")
	fs.BoolVar(&args.FlattenDefine, "fd", false, "flatten every DEFINE identifier before building the check formula")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}

	var err error
	if args.Algorithm, err = parseAlgorithm(algorithmStr); err != nil {
		return nil, err
	}
	if args.TransMethod, err = parseTransMethod(transMethodStr); err != nil {
		return nil, err
	}
	if args.File == "" {
		return nil, fmt.Errorf("ppsmc: -file is required")
	}
	return args, nil
}
