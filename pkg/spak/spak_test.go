package spak

import "testing"

const sampleSystem = `system Greeter {
  component Welcomer {
    function greet(name: String) -> String;
  }
}`

func TestCompileReturnsNavigableSystemSpec(t *testing.T) {
	spec, err := Compile(sampleSystem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Name != "Greeter" {
		t.Fatalf("expected system name %q, got %q", "Greeter", spec.Name)
	}
	if len(spec.Components) != 1 || spec.Components[0].Name != "Welcomer" {
		t.Fatalf("unexpected components: %+v", spec.Components)
	}
}

func TestCompileInvalidSourceErrors(t *testing.T) {
	if _, err := Compile("not a system"); err == nil {
		t.Fatal("expected an error for invalid source")
	}
}

func TestNewRuntimeAndRegistryAreUsable(t *testing.T) {
	rt := NewRuntime()
	if rt == nil {
		t.Fatal("expected a non-nil runtime")
	}
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected a non-nil registry")
	}
}
