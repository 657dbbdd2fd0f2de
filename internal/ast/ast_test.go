package ast

import "testing"

func TestTypeRefString(t *testing.T) {
	cases := []struct {
		in   TypeRef
		want string
	}{
		{TypeRef{Name: "Int"}, "Int"},
		{TypeRef{Name: "List", Args: []TypeRef{{Name: "Int"}}}, "List[Int]"},
		{TypeRef{Name: "Map", Args: []TypeRef{{Name: "String"}, {Name: "Int"}}}, "Map[String, Int]"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestTypeRefValidateArity(t *testing.T) {
	if err := (TypeRef{Name: "List"}).Validate(); err == nil {
		t.Error("expected error for List with no arguments")
	}
	if err := (TypeRef{Name: "Map", Args: []TypeRef{{Name: "Int"}}}).Validate(); err == nil {
		t.Error("expected error for Map with 1 argument")
	}
	if err := (TypeRef{Name: "Result"}).Validate(); err == nil {
		t.Error("expected error for Result with no arguments")
	}
	if err := (TypeRef{Name: "Int"}).Validate(); err != nil {
		t.Errorf("simple type should validate, got %v", err)
	}
}

func TestSystemSpecValidateDuplicateComponent(t *testing.T) {
	s := &SystemSpec{
		Name: "Foo",
		Components: []ComponentSpec{
			{Name: "Bar"},
			{Name: "Bar"},
		},
	}
	if err := s.Validate(); err == nil {
		t.Error("expected error for duplicate component name")
	}
}

func TestSystemSpecValidateBadIdentifier(t *testing.T) {
	s := &SystemSpec{Name: "1Bad"}
	if err := s.Validate(); err == nil {
		t.Error("expected error for invalid system identifier")
	}
}

func TestComponentSpecValidateDuplicateFunction(t *testing.T) {
	c := ComponentSpec{
		Name: "Bar",
		Functions: []FunctionSpec{
			{Name: "baz", Return: TypeRef{Name: "Int"}},
			{Name: "baz", Return: TypeRef{Name: "Int"}},
		},
	}
	if err := c.Validate(); err == nil {
		t.Error("expected error for duplicate function name")
	}
}

func TestParseRoundtripScenario(t *testing.T) {
	// Grounds the "Parse round-trip" concrete scenario: one system, one
	// component, one function with one List[Int] param, return Result[Int].
	s := &SystemSpec{
		Name: "Foo",
		Components: []ComponentSpec{
			{
				Name: "Bar",
				Functions: []FunctionSpec{
					{
						Name: "baz",
						Params: []Field{
							{Name: "x", Type: TypeRef{Name: "List", Args: []TypeRef{{Name: "Int"}}}},
						},
						Return: TypeRef{Name: "Result", Args: []TypeRef{{Name: "Int"}}},
					},
				},
			},
		},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if len(s.Components) != 1 || s.Components[0].Name != "Bar" {
		t.Fatalf("expected one component Bar, got %+v", s.Components)
	}
	fn := s.Components[0].Functions[0]
	if fn.Name != "baz" || fn.Return.String() != "Result[Int]" {
		t.Fatalf("unexpected function: %+v", fn)
	}
	if fn.Params[0].Type.String() != "List[Int]" {
		t.Fatalf("unexpected param type: %v", fn.Params[0].Type)
	}
}
