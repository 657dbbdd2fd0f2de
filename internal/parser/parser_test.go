package parser

import "testing"

func TestParseRoundtripScenario(t *testing.T) {
	src := `system Foo { component Bar { function baz(x: List[Int]) -> Result[Int]; } }`
	p := New(src, "")
	spec, errs := p.ParseSystem()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if spec.Name != "Foo" {
		t.Fatalf("system name = %q, want Foo", spec.Name)
	}
	if len(spec.Components) != 1 || spec.Components[0].Name != "Bar" {
		t.Fatalf("components = %+v", spec.Components)
	}
	fn := spec.Components[0].Functions[0]
	if fn.Name != "baz" || fn.Body != nil {
		t.Fatalf("function = %+v", fn)
	}
	if fn.Return.String() != "Result[Int]" {
		t.Fatalf("return type = %v", fn.Return)
	}
	if fn.Params[0].Type.String() != "List[Int]" {
		t.Fatalf("param type = %v", fn.Params[0].Type)
	}
}

func TestParseMetaOverridesEarlierKeys(t *testing.T) {
	src := `meta { author = "a" author = "b" } system Foo { }`
	p := New(src, "")
	spec, errs := p.ParseSystem()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if spec.Meta["author"] != "b" {
		t.Fatalf("meta[author] = %q, want b", spec.Meta["author"])
	}
	if len(spec.MetaKeys) != 1 {
		t.Fatalf("meta keys = %v, want single entry", spec.MetaKeys)
	}
}

func TestParseFunctionWithBracedBody(t *testing.T) {
	src := `system Foo {
		component Bar {
			function baz() -> Int { x = 1; return x + 1; }
		}
	}`
	p := New(src, "")
	spec, errs := p.ParseSystem()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn := spec.Components[0].Functions[0]
	if fn.Body == nil {
		t.Fatal("expected a function body")
	}
	want := "x = 1; return x + 1;"
	if *fn.Body != want {
		t.Fatalf("body = %q, want %q", *fn.Body, want)
	}
}

func TestParseComponentDescriptionInvariantConstraint(t *testing.T) {
	src := `system Foo {
		component Bar {
			description: "does a thing";
			invariant: x > 0;
			constraint: y < 10;
		}
	}`
	p := New(src, "")
	spec, errs := p.ParseSystem()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	c := spec.Components[0]
	if c.Description != "does a thing" {
		t.Fatalf("description = %q", c.Description)
	}
	if len(c.Invariants) != 1 || c.Invariants[0] != "x > 0" {
		t.Fatalf("invariants = %v", c.Invariants)
	}
	if len(c.Constraints) != 1 || c.Constraints[0] != "y < 10" {
		t.Fatalf("constraints = %v", c.Constraints)
	}
}

func TestParseInvariantWithoutSemiStopsAtComponentBrace(t *testing.T) {
	src := `system Foo { component Bar { invariant: x > 0 } }`
	p := New(src, "")
	spec, errs := p.ParseSystem()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if spec.Components[0].Invariants[0] != "x > 0" {
		t.Fatalf("invariant = %q", spec.Components[0].Invariants[0])
	}
}

func TestParseEffectOperations(t *testing.T) {
	src := `system Foo {
		effect Storage {
			operation read(path: String) -> String;
			operation write(path: String, content: String) -> Unit;
		}
	}`
	p := New(src, "")
	spec, errs := p.ParseSystem()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(spec.Effects) != 1 || len(spec.Effects[0].Operations) != 2 {
		t.Fatalf("effects = %+v", spec.Effects)
	}
	if spec.Effects[0].Operations[0].Body != nil {
		t.Fatal("effect operations must have no body")
	}
}

func TestParseWorkflowSteps(t *testing.T) {
	src := `system Foo {
		workflow Main(input: String) {
			step greet { perform(Reply(input)) }
			step done { return "ok" }
		}
	}`
	p := New(src, "")
	spec, errs := p.ParseSystem()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	wf := spec.Workflows[0]
	if wf.Name != "Main" || len(wf.Params) != 1 {
		t.Fatalf("workflow = %+v", wf)
	}
	if len(wf.Steps) != 2 || wf.Steps[0].Name != "greet" {
		t.Fatalf("steps = %+v", wf.Steps)
	}
	if wf.Steps[0].Body != "perform(Reply(input))" {
		t.Fatalf("step body = %q", wf.Steps[0].Body)
	}
}

func TestParseImport(t *testing.T) {
	src := `system Foo { import Shared }`
	p := New(src, "")
	spec, errs := p.ParseSystem()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(spec.Imports) != 1 || spec.Imports[0] != "Shared" {
		t.Fatalf("imports = %v", spec.Imports)
	}
}

func TestParseMissingSystemProducesError(t *testing.T) {
	p := New(`component Bar { }`, "test.md")
	_, errs := p.ParseSystem()
	if len(errs) == 0 {
		t.Fatal("expected a parse error for a missing system declaration")
	}
}

func TestParseStateBlock(t *testing.T) {
	src := `system Foo {
		component Bar {
			state Counter { value: Int, label: String }
		}
	}`
	p := New(src, "")
	spec, errs := p.ParseSystem()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	st := spec.Components[0].States[0]
	if st.Name != "Counter" || len(st.Fields) != 2 {
		t.Fatalf("state = %+v", st)
	}
	if st.Fields[1].Type.String() != "String" {
		t.Fatalf("field type = %v", st.Fields[1].Type)
	}
}
