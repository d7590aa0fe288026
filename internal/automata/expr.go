package automata

import (
	"fmt"
	"strings"

	"github.com/joeycumines/go-ppsmc/internal/bdd"
)

// parseCond parses a never-claim edge condition -- a small Boolean
// expression language over atomic propositions, !, &&, ||, and
// parentheses -- into a BDD, resolving atoms against atoms. Atoms maps an
// identifier to its defining BDD, covering both plain state variables and
// DEFINE'd compound propositions (the translator treats both identically
// as atomic propositions in its output, ppsmc/src/automata.rs's
// `BuchiAutomata::from_ltl` merging `symbols` and `defines` into one atom
// table before parsing). The literal "(1)" (and bare "1") denotes constant
// true; "0" denotes constant false (spec.md section 4.3: "a literal (1)
// becomes the constant true").
func parseCond(m *bdd.Manager, atoms map[string]bdd.Bdd, cond string) (bdd.Bdd, error) {
	p := &condParser{m: m, atoms: atoms, toks: tokenizeCond(cond)}
	res, err := p.parseOr()
	if err != nil {
		return bdd.Bdd{}, err
	}
	if p.pos != len(p.toks) {
		return bdd.Bdd{}, fmt.Errorf("automata: unexpected trailing tokens in condition %q", cond)
	}
	return res, nil
}

type condParser struct {
	m     *bdd.Manager
	atoms map[string]bdd.Bdd
	toks  []string
	pos   int
}

func (p *condParser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos]
}

func (p *condParser) next() string {
	t := p.peek()
	p.pos++
	return t
}

func (p *condParser) parseOr() (bdd.Bdd, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return bdd.Bdd{}, err
	}
	for p.peek() == "||" {
		p.next()
		rhs, err := p.parseAnd()
		if err != nil {
			return bdd.Bdd{}, err
		}
		lhs = lhs.Or(rhs)
	}
	return lhs, nil
}

func (p *condParser) parseAnd() (bdd.Bdd, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return bdd.Bdd{}, err
	}
	for p.peek() == "&&" {
		p.next()
		rhs, err := p.parseNot()
		if err != nil {
			return bdd.Bdd{}, err
		}
		lhs = lhs.And(rhs)
	}
	return lhs, nil
}

func (p *condParser) parseNot() (bdd.Bdd, error) {
	if p.peek() == "!" {
		p.next()
		operand, err := p.parseNot()
		if err != nil {
			return bdd.Bdd{}, err
		}
		return operand.Not(), nil
	}
	return p.parseAtom()
}

func (p *condParser) parseAtom() (bdd.Bdd, error) {
	tok := p.next()
	switch tok {
	case "":
		return bdd.Bdd{}, fmt.Errorf("automata: unexpected end of condition")
	case "(":
		inner, err := p.parseOr()
		if err != nil {
			return bdd.Bdd{}, err
		}
		if p.next() != ")" {
			return bdd.Bdd{}, fmt.Errorf("automata: unmatched '(' in condition")
		}
		return inner, nil
	case "1", "true":
		return p.m.Constant(true), nil
	case "0", "false":
		return p.m.Constant(false), nil
	default:
		b, ok := p.atoms[tok]
		if !ok {
			return bdd.Bdd{}, fmt.Errorf("automata: unknown atomic proposition %q", tok)
		}
		return b, nil
	}
}

// tokenizeCond splits a never-claim condition into tokens: "(", ")", "!",
// "&&", "||", and maximal runs of identifier/digit characters.
func tokenizeCond(s string) []string {
	var toks []string
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(' || c == ')':
			toks = append(toks, string(c))
			i++
		case c == '!':
			toks = append(toks, "!")
			i++
		case strings.HasPrefix(s[i:], "&&"):
			toks = append(toks, "&&")
			i += 2
		case c == '&':
			toks = append(toks, "&&")
			i++
		case strings.HasPrefix(s[i:], "||"):
			toks = append(toks, "||")
			i += 2
		case c == '|':
			toks = append(toks, "||")
			i++
		default:
			j := i
			for j < len(s) && isIdentByte(s[j]) {
				j++
			}
			if j == i {
				// unrecognized byte, skip it rather than looping forever.
				i++
				continue
			}
			toks = append(toks, s[i:j])
			i = j
		}
	}
	return toks
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
