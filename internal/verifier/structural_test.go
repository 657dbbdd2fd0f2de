package verifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spak-project/spak/internal/ast"
)

const validComponentSrc = `package fixtures

type Calculator struct{}

func (c *Calculator) Add(args map[string]any) (any, error) {
	return nil, nil
}
`

const missingMethodSrc = `package fixtures

type Calculator struct{}
`

const wrongArityMethodSrc = `package fixtures

type Calculator struct{}

func (c *Calculator) Add(a, b int) (any, error) {
	return nil, nil
}
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calculator.go")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func calculatorSpec() ast.ComponentSpec {
	return ast.ComponentSpec{
		Name:      "Calculator",
		Functions: []ast.FunctionSpec{{Name: "Add"}},
	}
}

func TestCheckStructuralPasses(t *testing.T) {
	path := writeFixture(t, validComponentSrc)
	if problems := CheckStructural(calculatorSpec(), path); len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
}

func TestCheckStructuralMissingMethod(t *testing.T) {
	path := writeFixture(t, missingMethodSrc)
	problems := CheckStructural(calculatorSpec(), path)
	if len(problems) == 0 {
		t.Fatal("expected a finding for the missing method")
	}
}

func TestCheckStructuralWrongArity(t *testing.T) {
	path := writeFixture(t, wrongArityMethodSrc)
	problems := CheckStructural(calculatorSpec(), path)
	if len(problems) == 0 {
		t.Fatal("expected a finding for the wrong-arity method")
	}
}

func TestCheckStructuralUnparsableSource(t *testing.T) {
	path := writeFixture(t, "this is not valid go {{{")
	problems := CheckStructural(calculatorSpec(), path)
	if len(problems) == 0 {
		t.Fatal("expected a finding for unparsable source")
	}
}

func TestCheckStructuralMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "never_written.go")
	problems := CheckStructural(calculatorSpec(), path)
	if len(problems) != 1 {
		t.Fatalf("expected exactly one finding for a missing file, got %v", problems)
	}
	want := "Missing implementation for Component 'Calculator'"
	if problems[0] != want {
		t.Fatalf("expected %q, got %q", want, problems[0])
	}
}
