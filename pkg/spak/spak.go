// Package spak is the public facade over the kernel: compile an AISpec
// system, assemble a runtime from handlers, and verify a candidate
// component implementation — without an embedding program needing to
// reach into internal/ directly.
package spak

import (
	"github.com/spak-project/spak/internal/ast"
	"github.com/spak-project/spak/internal/compiler"
	"github.com/spak-project/spak/internal/effect"
	"github.com/spak-project/spak/internal/registry"
	"github.com/spak-project/spak/internal/testvectors"
	"github.com/spak-project/spak/internal/verifier"
)

// SystemSpec is the compiled AST of an AISpec system.
type SystemSpec = ast.SystemSpec

// Compile parses and validates AISpec source text.
func Compile(source string) (*SystemSpec, error) {
	return compiler.New().Compile(source)
}

// CompileFile reads and compiles the AISpec file at path.
func CompileFile(path string) (*SystemSpec, error) {
	return compiler.New().CompileFile(path)
}

// Effect, Handler, and Runtime re-export the effect package's core types so
// a caller assembling handlers doesn't need a separate import.
type (
	Effect  = effect.Effect
	Handler = effect.Handler
	Runtime = effect.Runtime
)

// NewRuntime returns an empty Runtime with no registered handlers.
func NewRuntime() *Runtime {
	return effect.NewRuntime()
}

// Registry is the component/entry-point factory store used by the
// Recursion handler and the dynamic verifier.
type Registry = registry.Registry

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return registry.New()
}

// TestVectors is the decoded shape of a component's YAML test-vector file.
type TestVectors = testvectors.File

// LoadTestVectors reads and decodes the test-vector file at path.
func LoadTestVectors(path string) (*TestVectors, error) {
	return testvectors.Load(path)
}

// VerificationResult accumulates the findings of a verification run.
type VerificationResult = verifier.Result

// VerificationOptions configures the ambient runtime a dynamic
// verification pass runs under.
type VerificationOptions = verifier.Options

// VerifyComponent runs the structural check against srcPath and, if it
// passes, the dynamic check against vectors using reg to resolve the
// candidate implementation.
func VerifyComponent(component ast.ComponentSpec, srcPath string, reg *Registry, vectors *TestVectors, opts VerificationOptions) VerificationResult {
	return verifier.VerifySpec(component, srcPath, reg, vectors, opts)
}
