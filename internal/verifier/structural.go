// Package verifier implements the two-pass check a candidate component
// implementation is put through: a structural pass confirming its shape
// matches the compiled ComponentSpec, and a dynamic pass actually invoking
// it against recorded test vectors.
package verifier

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"

	specast "github.com/spak-project/spak/internal/ast"
)

// CheckStructural parses the Go source file at path with go/parser and
// go/ast — parsing the host language's own syntax is not a concern any
// third-party library in the pack addresses, so the standard library is
// the only reasonable tool here — and confirms it declares a top-level
// `type <Component> struct` plus a method for every function the spec
// names, following the registry's calling convention
// `func (c *Component) Name(args map[string]any) (any, error)`.
func CheckStructural(component specast.ComponentSpec, path string) []string {
	var problems []string

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return []string{fmt.Sprintf("Missing implementation for Component '%s'", component.Name)}
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.AllErrors)
	if err != nil {
		return []string{fmt.Sprintf("parse %s: %s", path, err)}
	}

	if !hasStructDecl(file, component.Name) {
		problems = append(problems, fmt.Sprintf("missing `type %s struct` declaration", component.Name))
	}

	methods := methodsOn(file, component.Name)
	for _, fn := range component.Functions {
		decl, ok := methods[fn.Name]
		if !ok {
			problems = append(problems, fmt.Sprintf("missing method %s.%s", component.Name, fn.Name))
			continue
		}
		if msg := checkSignature(component.Name, fn.Name, decl); msg != "" {
			problems = append(problems, msg)
		}
	}
	return problems
}

func hasStructDecl(file *ast.File, name string) bool {
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Name.Name != name {
				continue
			}
			if _, ok := ts.Type.(*ast.StructType); ok {
				return true
			}
		}
	}
	return false
}

func methodsOn(file *ast.File, receiver string) map[string]*ast.FuncDecl {
	out := make(map[string]*ast.FuncDecl)
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 {
			continue
		}
		if receiverTypeName(fd.Recv.List[0].Type) == receiver {
			out[fd.Name.Name] = fd
		}
	}
	return out
}

func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.Ident:
		return t.Name
	default:
		return ""
	}
}

// checkSignature confirms decl has exactly the calling convention the
// registry's reflect-based dispatch requires: one parameter, two results.
// It does not check the parameter/result types themselves (that would
// require full type-checking via go/types, heavier than this pass needs);
// an arity mismatch alone is enough to predict reflect.Call would fail.
func checkSignature(component, function string, decl *ast.FuncDecl) string {
	params := 0
	if decl.Type.Params != nil {
		for _, p := range decl.Type.Params.List {
			n := len(p.Names)
			if n == 0 {
				n = 1
			}
			params += n
		}
	}
	results := 0
	if decl.Type.Results != nil {
		for _, r := range decl.Type.Results.List {
			n := len(r.Names)
			if n == 0 {
				n = 1
			}
			results += n
		}
	}
	if params != 1 {
		return fmt.Sprintf("%s.%s: expected exactly 1 parameter (map[string]any), found %d", component, function, params)
	}
	if results != 2 {
		return fmt.Sprintf("%s.%s: expected exactly 2 results (any, error), found %d", component, function, results)
	}
	return ""
}
