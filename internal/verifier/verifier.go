package verifier

import (
	"fmt"
	"io"

	"github.com/spak-project/spak/internal/ast"
	"github.com/spak-project/spak/internal/effect"
	"github.com/spak-project/spak/internal/handlers"
	"github.com/spak-project/spak/internal/registry"
	"github.com/spak-project/spak/internal/testvectors"
)

// Result accumulates verification findings as human-readable strings. A
// normal verification run never panics or returns a Go error; Structural
// and Behavioral are both empty exactly when the candidate passes.
type Result struct {
	Structural []string
	Behavioral []string
}

// Passed reports whether neither pass produced a finding.
func (r Result) Passed() bool {
	return len(r.Structural) == 0 && len(r.Behavioral) == 0
}

// Options configures the ambient runtime the dynamic pass runs under. A
// zero-value Options registers no LLM handler, so a Generate effect
// performed during the run is unhandled, and seeds the user-interaction
// handler with an empty input queue.
type Options struct {
	Provider  handlers.Provider
	UserInput []string
}

// VerifySpec runs the structural check against srcPath. If it passes, it
// installs a fresh ambient runtime stocked with the arithmetic and
// user-interaction handlers (plus an LLM handler if Options.Provider is
// set), runs every case in vectors through the dynamic check, and clears
// the ambient runtime unconditionally before returning — matching "install
// LLM/math/mock-user handlers, clear on completion."
func VerifySpec(component ast.ComponentSpec, srcPath string, reg *registry.Registry, vectors *testvectors.File, opts Options) Result {
	var res Result
	res.Structural = CheckStructural(component, srcPath)
	if len(res.Structural) > 0 {
		return res
	}

	rt := effect.NewRuntime()
	rt.Register(handlers.NewArithmetic())
	rt.Register(handlers.NewUserIO(opts.UserInput, io.Discard, nil))
	if opts.Provider != nil {
		rt.Register(handlers.NewLLM(opts.Provider))
	}
	effect.SetAmbient(rt)
	defer effect.ClearAmbient()

	if vectors == nil {
		return res
	}
	for _, c := range vectors.Tests {
		pass, got, err := CheckDynamic(reg, component.Name, c.Function, c.Input, c.Expected)
		label := c.Name
		if label == "" {
			label = fmt.Sprintf("%s.%s", component.Name, c.Function)
		}
		if err != nil {
			res.Behavioral = append(res.Behavioral, fmt.Sprintf("%s: %s", label, err))
			continue
		}
		if !pass {
			res.Behavioral = append(res.Behavioral, fmt.Sprintf("%s: expected %v, got %v", label, c.Expected, got))
		}
	}
	return res
}
