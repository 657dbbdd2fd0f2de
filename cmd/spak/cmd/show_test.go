package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spak-project/spak/internal/compiler"
)

const showFixture = `system Greeter {
    component Welcomer {
        description: "greets people";
        function greet(name: String) -> String { return name; }
    }
}`

func TestPrintComponentsPrintsFunctionBodyWhenPresent(t *testing.T) {
	spec, err := compiler.New().Compile(showFixture)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	stdout := os.Stdout
	os.Stdout = w
	printComponents(spec)
	w.Close()
	os.Stdout = stdout

	var buf bytes.Buffer
	io.Copy(&buf, r)
	out := buf.String()

	if !strings.Contains(out, "Welcomer") {
		t.Errorf("expected component name in output, got %q", out)
	}
	if !strings.Contains(out, "greets people") {
		t.Errorf("expected the description in output, got %q", out)
	}
	if !strings.Contains(out, "return name") {
		t.Errorf("expected the function body to be printed, got %q", out)
	}
}

func TestPrintComponentsHandlesNoComponents(t *testing.T) {
	spec, err := compiler.New().Compile(`system Empty {}`)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	stdout := os.Stdout
	os.Stdout = w
	printComponents(spec)
	w.Close()
	os.Stdout = stdout

	var buf bytes.Buffer
	io.Copy(&buf, r)
	if !strings.Contains(buf.String(), "no components declared") {
		t.Errorf("expected the empty-components message, got %q", buf.String())
	}
}
