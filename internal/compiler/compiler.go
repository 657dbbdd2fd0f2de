// Package compiler exposes the three entry points a host uses to turn
// AISpec source text into a validated SystemSpec: Compile, CompileFile, and
// ValidateSyntax.
package compiler

import (
	"fmt"
	"os"

	"github.com/spak-project/spak/internal/ast"
	apperrors "github.com/spak-project/spak/internal/errors"
	"github.com/spak-project/spak/internal/parser"
)

// Compiler parses and validates AISpec source.
type Compiler struct{}

// New returns a Compiler. It carries no configuration today; it exists as a
// value so callers have a stable place to hang future options without
// changing the Compile/CompileFile/ValidateSyntax signatures.
func New() *Compiler {
	return &Compiler{}
}

// Compile parses source and transforms it into a *ast.SystemSpec. On parse
// failure it returns no partial tree and an error whose text is every
// ParseError rendered by errors.FormatErrors (position, source line, caret,
// offending token); the *ParseError values themselves are not wrapped. On a
// structurally valid parse that still violates a naming or arity invariant,
// it returns that validation error instead.
func (c *Compiler) Compile(source string) (*ast.SystemSpec, error) {
	return c.compileNamed(source, "")
}

// CompileFile reads path and compiles its contents, attaching path to any
// resulting parse diagnostics.
func (c *Compiler) CompileFile(path string) (*ast.SystemSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file %s: %w", path, err)
	}
	return c.compileNamed(string(data), path)
}

func (c *Compiler) compileNamed(source, file string) (*ast.SystemSpec, error) {
	p := parser.New(source, file)
	spec, errs := p.ParseSystem()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s", apperrors.FormatErrors(errs, false))
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// ValidateSyntax parses source and discards the tree, reporting only
// whether it is syntactically well-formed AISpec.
func (c *Compiler) ValidateSyntax(source string) bool {
	p := parser.New(source, "")
	_, errs := p.ParseSystem()
	return len(errs) == 0
}
