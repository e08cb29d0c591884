package govlang_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gosuda/govlang"
)

func interpret(t *testing.T, src, stdin string) (string, string) {
	t.Helper()
	var out, diag bytes.Buffer
	err := govlang.Interpret(src, strings.NewReader(stdin), &out, &diag)
	if err != nil {
		t.Fatalf("interpret failed: %v", err)
	}
	return out.String(), diag.String()
}

func TestLiteralPrint(t *testing.T) {
	out, diag := interpret(t, `!I_LOVE_GOVERNMENT
PRAISE_LEADER "Hello, Citizen"
`, "")
	if out != "Hello, Citizen\n" {
		t.Fatalf("unexpected output: %q", out)
	}
	if diag != "" {
		t.Fatalf("unexpected diagnostics: %q", diag)
	}
}

func TestArithmeticPrecedence(t *testing.T) {
	out, _ := interpret(t, `!I_LOVE_GOVERNMENT
PLEASE DECLARE_VARIABLE "x" AS INTEGER
PLEASE SET x TO 2 + 3 * 4
PRAISE_LEADER x
`, "")
	if out != "14\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCountedLoop(t *testing.T) {
	out, _ := interpret(t, `!I_LOVE_GOVERNMENT
PLEASE DECLARE_VARIABLE "i" AS INTEGER
FOR_THE_PEOPLE i LESS_THAN 3 DO
  PRAISE_LEADER i
  PLEASE INCREMENT i BY 1
END_FOR_THE_PEOPLE
`, "")
	if out != "0\n1\n2\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestArrayDeclareAssignAccess(t *testing.T) {
	out, _ := interpret(t, `!I_LOVE_GOVERNMENT
PLEASE DECLARE_VARIABLE "names" AS ARRAY_OF_STRING SIZE 2
PLEASE SET names[0] TO "Alice"
PLEASE SET names[1] TO "Bob"
PRAISE_LEADER names[0] + " and " + names[1]
`, "")
	if out != "Alice and Bob\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestIfElseIfElseChain(t *testing.T) {
	out, _ := interpret(t, `!I_LOVE_GOVERNMENT
PLEASE DECLARE_VARIABLE "n" AS INTEGER
PLEASE SET n TO 5
IF n LESS_THAN 3 THEN
  PRAISE_LEADER "small"
ELSE_IF n LESS_THAN 7 THEN
  PRAISE_LEADER "medium"
ELSE
  PRAISE_LEADER "large"
END_IF
`, "")
	if out != "medium\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestReadThenArithmetic(t *testing.T) {
	out, _ := interpret(t, `!I_LOVE_GOVERNMENT
PLEASE DECLARE_VARIABLE "x" AS INTEGER
PLEASE READ x
PRAISE_LEADER x + 1
`, "41\n")
	if out != "42\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestIntegerRoundTripThroughRead(t *testing.T) {
	for _, n := range []string{"0", "7", "-13", "2147483648"} {
		out, _ := interpret(t, `!I_LOVE_GOVERNMENT
PLEASE READ x
PRAISE_LEADER x
`, n+"\n")
		if out != n+"\n" {
			t.Fatalf("read of %q printed %q", n, out)
		}
	}
}

func TestDiagnosticsDoNotStopExecution(t *testing.T) {
	out, diag := interpret(t, `!I_LOVE_GOVERNMENT
PRAISE_LEADER ghost
PRAISE_LEADER "still here"
`, "")
	if out != "0\nstill here\n" {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(diag, "Undefined variable: ghost") {
		t.Fatalf("missing diagnostic, got %q", diag)
	}
}

func TestCommentMechanismsCoexist(t *testing.T) {
	out, diag := interpret(t, `!I_LOVE_GOVERNMENT
// lexer comment
OBEY_PARTY_LINE parser comment with words 1 + 2
PRAISE_LEADER "ok"
DENOUNCE_IMPERIALIST_ERRORS trailing
`, "")
	if out != "ok\n" {
		t.Fatalf("unexpected output: %q", out)
	}
	if diag != "" {
		t.Fatalf("unexpected diagnostics: %q", diag)
	}
}

func TestParseReturnsProgram(t *testing.T) {
	prog, err := govlang.Parse(`!I_LOVE_GOVERNMENT
PLEASE SET x TO 1
PRAISE_LEADER x
`, nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("unexpected statement count: %d", len(prog.Statements))
	}
}
