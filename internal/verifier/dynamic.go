package verifier

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/spak-project/spak/internal/registry"
)

// CallMethod resolves method by name on instance via reflection — the Go
// idiom for "call a method chosen by a string at runtime", with no
// third-party alternative in the pack that beats the standard library
// here — and invokes it with a single map[string]any argument, the
// registry's calling convention for synthesized components.
func CallMethod(instance any, method string, args map[string]any) (any, error) {
	v := reflect.ValueOf(instance)
	m := v.MethodByName(method)
	if !m.IsValid() {
		return nil, fmt.Errorf("no method %q on %T", method, instance)
	}
	mt := m.Type()
	if mt.NumIn() != 1 {
		return nil, fmt.Errorf("method %q takes %d parameters, want exactly 1 (map[string]any)", method, mt.NumIn())
	}
	if mt.NumOut() != 2 {
		return nil, fmt.Errorf("method %q returns %d results, want exactly 2 (any, error)", method, mt.NumOut())
	}
	results := m.Call([]reflect.Value{reflect.ValueOf(args)})
	var callErr error
	if e, ok := results[1].Interface().(error); ok && e != nil {
		callErr = e
	}
	return results[0].Interface(), callErr
}

// SoftMatch compares got against want as strings, after trimming
// surrounding whitespace and normalizing to Unicode NFC: the dynamic
// verifier's comparison is textual and forgiving rather than an exact
// structural equality check, since a component's output formatting — and,
// for LLM-produced text, its choice of composed vs. decomposed accent
// forms — is not itself part of its contract. A match is either side
// containing the other, or the two being equal outright, so a verbose
// LLM-produced response ("Here is your plan. Step 1: warm up.") still
// passes against a terse expectation ("Step 1: warm up").
func SoftMatch(got, want any) bool {
	g := norm.NFC.String(strings.TrimSpace(fmt.Sprintf("%v", got)))
	w := norm.NFC.String(strings.TrimSpace(fmt.Sprintf("%v", want)))
	return strings.Contains(g, w) || strings.Contains(w, g) || g == w
}

// CheckDynamic instantiates component from reg, invokes method with args,
// and soft-matches the result against want.
func CheckDynamic(reg *registry.Registry, component, method string, args map[string]any, want any) (pass bool, got any, err error) {
	instance, err := reg.Component(component)
	if err != nil {
		return false, nil, err
	}
	got, err = CallMethod(instance, method, args)
	if err != nil {
		return false, got, err
	}
	return SoftMatch(got, want), got, nil
}
