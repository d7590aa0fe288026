package automata

import (
	"fmt"
	"strings"

	"github.com/joeycumines/go-ppsmc/internal/bdd"
)

// Parse reads a never-claim-shaped textual automaton -- the output of an
// LTL-to-Büchi translator invoked with `-s` -- into an explicit-state
// BuchiAutomata (spec.md section 4.3, "Parsing").
//
// Shape: a header line (discarded), then one block per state --
// `state_id:` followed either by a single `skip` line (a self-loop under
// constant true) or an `if` line, one-or-more `:: cond -> goto next`
// lines, and a closing `fi;` line -- then a trailing line (discarded,
// typically the closing `}`).
//
// symbols records the present-state variable table (used only for
// ToFsmBdd's fresh-variable offset). atoms resolves each atomic
// proposition the translator's output may reference -- both plain state
// variables and DEFINE'd compound propositions -- to its defining BDD; a
// nil atoms builds one from symbols via IthVar, sufficient whenever no
// DEFINE appears in the property.
func Parse(text string, m *bdd.Manager, symbols map[string]int, atoms map[string]bdd.Bdd) (*BuchiAutomata, error) {
	if atoms == nil {
		atoms = make(map[string]bdd.Bdd, len(symbols))
		for name, idx := range symbols {
			atoms[name] = m.IthVar(idx)
		}
	}
	lines := splitNonEmptyLines(text)
	if len(lines) < 2 {
		return nil, fmt.Errorf("automata: never-claim text too short")
	}
	lines = lines[1 : len(lines)-1] // drop header and trailing "}" line

	a := New(m, symbols)
	stateIDs := make(map[string]int)

	getID := func(ident string) int {
		if id, ok := stateIDs[ident]; ok {
			return id
		}
		id := a.NumState()
		stateIDs[ident] = id
		a.extendTo(id)
		return id
	}

	i := 0
	for i < len(lines) {
		ident, ok := parseStateHeader(lines[i])
		if !ok {
			return nil, fmt.Errorf("automata: expected state header, got %q", lines[i])
		}
		i++
		stateID := getID(ident)
		if strings.HasPrefix(ident, "accept_") {
			a.AddAcceptingState(stateID)
		}
		if strings.HasSuffix(ident, "_init") {
			a.AddInitState(stateID)
		}

		if i < len(lines) && strings.TrimSpace(lines[i]) == "skip" {
			trueBdd := m.Constant(true)
			a.AddEdge(stateID, stateID, trueBdd)
			i++
			continue
		}

		// A translator's non-"skip" block wraps its `:: cond -> goto dest`
		// options in `if ... fi;` (automata.rs's parse_state has two extra
		// skip_line calls bracketing many1(parse_trans) for exactly this
		// reason). Skip both bracketing lines; real ltl2tgba -s output
		// always has them.
		if i >= len(lines) || strings.TrimSpace(lines[i]) != "if" {
			return nil, fmt.Errorf("automata: state %q: expected %q, got %q", ident, "if", peekLine(lines, i))
		}
		i++

		sawEdge := false
		for i < len(lines) {
			cond, dest, ok := parseTransLine(lines[i])
			if !ok {
				break
			}
			i++
			sawEdge = true
			var label bdd.Bdd
			if cond == "(1)" {
				label = m.Constant(true)
			} else {
				var err error
				label, err = parseCond(m, atoms, cond)
				if err != nil {
					return nil, err
				}
			}
			a.AddEdge(stateID, getID(dest), label)
		}
		if !sawEdge {
			return nil, fmt.Errorf("automata: state %q has no transitions", ident)
		}

		if i >= len(lines) || strings.TrimSpace(lines[i]) != "fi;" {
			return nil, fmt.Errorf("automata: state %q: expected %q, got %q", ident, "fi;", peekLine(lines, i))
		}
		i++
	}
	return a, nil
}

// peekLine returns lines[i] for an error message, or "<eof>" past the end.
func peekLine(lines []string, i int) string {
	if i >= len(lines) {
		return "<eof>"
	}
	return lines[i]
}

// splitNonEmptyLines splits on newlines, trims trailing carriage returns,
// and drops blank lines (the external translator's output is line-based
// but occasionally pads with blank separators).
func splitNonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	res := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		res = append(res, l)
	}
	return res
}

// parseStateHeader recognizes a line of the form "ident:".
func parseStateHeader(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasSuffix(line, ":") {
		return "", false
	}
	ident := strings.TrimSuffix(line, ":")
	if ident == "" || strings.ContainsAny(ident, " \t") {
		return "", false
	}
	return ident, true
}

// parseTransLine recognizes a line of the form ":: cond -> goto dest",
// tolerating a trailing ";".
func parseTransLine(line string) (cond, dest string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "::") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "::"))
	const sep = "-> goto "
	idx := strings.Index(line, sep)
	if idx < 0 {
		return "", "", false
	}
	cond = strings.TrimSpace(line[:idx])
	dest = strings.TrimSpace(line[idx+len(sep):])
	dest = strings.TrimSuffix(dest, ";")
	dest = strings.TrimSpace(dest)
	return cond, dest, true
}
