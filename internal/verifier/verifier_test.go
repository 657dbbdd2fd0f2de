package verifier

import (
	"testing"

	"github.com/spak-project/spak/internal/effect"
	"github.com/spak-project/spak/internal/registry"
	"github.com/spak-project/spak/internal/testvectors"
)

func TestVerifySpecStopsAtStructuralFailure(t *testing.T) {
	path := writeFixture(t, missingMethodSrc)
	reg := registry.New()
	res := VerifySpec(calculatorSpec(), path, reg, nil, Options{})
	if res.Passed() {
		t.Fatal("expected structural failure to be reported")
	}
	if len(res.Behavioral) != 0 {
		t.Fatal("expected the dynamic pass to be skipped after a structural failure")
	}
}

func TestVerifySpecRunsDynamicPassAndClearsAmbient(t *testing.T) {
	path := writeFixture(t, validComponentSrc)
	reg := registry.New()
	reg.RegisterComponent("Calculator", func() any { return fixtureCalculator{} })

	vectors := &testvectors.File{
		System:    "Calc",
		Component: "Calculator",
		Tests: []testvectors.Case{
			{Name: "adds", Function: "Add", Input: map[string]any{"a": 2, "b": 3}, Expected: 5},
			{Name: "wrong", Function: "Add", Input: map[string]any{"a": 1, "b": 1}, Expected: 99},
		},
	}

	res := VerifySpec(calculatorSpec(), path, reg, vectors, Options{})
	if len(res.Structural) != 0 {
		t.Fatalf("expected no structural findings, got %v", res.Structural)
	}
	if len(res.Behavioral) != 1 {
		t.Fatalf("expected exactly one behavioral finding, got %v", res.Behavioral)
	}
	if effect.Ambient() != nil {
		t.Fatal("expected the ambient runtime to be cleared after verification")
	}
}
