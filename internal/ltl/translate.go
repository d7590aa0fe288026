package ltl

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/joeycumines/go-ppsmc/internal/smv"
)

// TranslatorPath is the external LTL-to-Büchi translator binary invoked by
// Translate. It defaults to the name expected on PATH; command-line
// plumbing in cmd/ppsmc may override it for a fixed install location.
var TranslatorPath = "ltl2tgba"

// Translate invokes the external translator as `ltl2tgba -s -f "<formula>"`
// and returns its stdout -- a never-claim-shaped textual Büchi automaton
// (spec.md section 4.1, "External subprocess"). The formula's
// smv.Expr.String() already matches the translator's accepted concrete
// syntax (infix operators, prefixed G/F/X/O, parenthesized operands).
func Translate(ctx context.Context, formula smv.Expr) (string, error) {
	cmd := exec.CommandContext(ctx, TranslatorPath, "-s", "-f", formula.String())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ltl: %s: %w (stderr: %s)", TranslatorPath, err, stderr.String())
	}
	return stdout.String(), nil
}
