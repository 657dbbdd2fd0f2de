package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"

	"github.com/spak-project/spak/internal/effect"
)

// DefaultOutputBudget is the character budget applied to a sandbox run's
// output when NewSandbox is given a budget <= 0.
const DefaultOutputBudget = 2000

// DefaultTimeout is applied when a CodeExecution payload leaves Timeout
// unset (zero).
const DefaultTimeout = 5 * time.Second

// Sandbox handles effect.ExecuteCode by evaluating the code string as a
// restricted CEL expression rather than a general-purpose scripting
// language: CEL has no I/O, no reflection, and no statement forms, so
// "whitelisted builtins only, guarded attribute/item access" is the
// language's baseline behavior rather than something this handler must
// police itself. Any identifier not declared as a CEL variable or function
// below is a compile error, which is what contains an attempt to reference
// something like a file-open or process-spawn builtin.
//
// The permitted surface mirrors the original restricted-Python handler's
// "re, math, json" allowlist: an unanchored regex search (re_match, backed
// by regexp.MatchString), a handful of scalar math
// functions (math_abs, math_max, math_min), json_encode/json_decode, and a
// print accumulator function standing in for captured stdout.
type Sandbox struct {
	outputBudget int
}

// NewSandbox returns a Sandbox handler. outputBudget <= 0 uses
// DefaultOutputBudget.
func NewSandbox(outputBudget int) *Sandbox {
	if outputBudget <= 0 {
		outputBudget = DefaultOutputBudget
	}
	return &Sandbox{outputBudget: outputBudget}
}

func (Sandbox) CanHandle(k effect.Kind) bool { return k == effect.ExecuteCode }

// Handle never returns a non-nil error for a sandboxed code failure:
// compile and runtime errors are folded into the effect's string result
// ("Compilation Error: …" / "Runtime Error: …"), per the kernel's sandbox
// error taxonomy. A non-nil error here means the payload itself was
// malformed, not that the sandboxed code failed.
func (s *Sandbox) Handle(ctx context.Context, e effect.Effect) (any, error) {
	req, ok := e.Payload.(effect.CodeExecution)
	if !ok {
		return nil, fmt.Errorf("sandbox handler: unexpected payload type %T", e.Payload)
	}

	var printed []string
	env, err := cel.NewEnv(sandboxLibrary(&printed)...)
	if err != nil {
		return nil, fmt.Errorf("sandbox handler: building CEL environment: %w", err)
	}

	ast, issues := env.Compile(req.Code)
	if issues != nil && issues.Err() != nil {
		return s.clip(fmt.Sprintf("Compilation Error: %s", issues.Err())), nil
	}

	program, err := env.Program(ast)
	if err != nil {
		return s.clip(fmt.Sprintf("Compilation Error: %s", err)), nil
	}

	timeout := DefaultTimeout
	if req.Timeout > 0 {
		timeout = time.Duration(req.Timeout) * time.Second
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, _, err := program.ContextEval(runCtx, map[string]any{})
	if err != nil {
		return s.clip(fmt.Sprintf("Runtime Error: %s", err)), nil
	}

	// Captured print() output takes precedence over the expression's own
	// value, mirroring the original handler's captured-stdout-plus-print-
	// collector output, which is returned in place of the evaluated result.
	var text string
	if len(printed) > 0 {
		text = strings.Join(printed, "\n")
	} else {
		text = fmt.Sprintf("%v", out.Value())
	}

	if text == "" || text == "<nil>" {
		return "Executed successfully (no output).", nil
	}
	return s.clip(text), nil
}

func (s *Sandbox) clip(text string) string {
	runes := []rune(text)
	if len(runes) <= s.outputBudget {
		return text
	}
	return string(runes[:s.outputBudget])
}

// sandboxLibrary returns the cel.EnvOption allowlist exposed to sandboxed
// code: re_match (regexp), math_abs/math_max/math_min (basic math),
// json_encode/json_decode, and print (accumulates into out rather than
// writing anywhere — the CEL analogue of the original's PrintCollector).
func sandboxLibrary(out *[]string) []cel.EnvOption {
	return []cel.EnvOption{
		cel.Function("re_match",
			cel.Overload("re_match_string_string",
				[]*cel.Type{cel.StringType, cel.StringType},
				cel.BoolType,
				cel.BinaryBinding(func(text, pattern ref.Val) ref.Val {
					t, ok := text.(types.String)
					if !ok {
						return types.NewErr("re_match: first argument must be a string")
					}
					p, ok := pattern.(types.String)
					if !ok {
						return types.NewErr("re_match: second argument must be a string")
					}
					matched, err := regexp.MatchString(string(p), string(t))
					if err != nil {
						return types.NewErr("re_match: %s", err)
					}
					return types.Bool(matched)
				}),
			),
		),
		cel.Function("math_abs",
			cel.Overload("math_abs_double", []*cel.Type{cel.DoubleType}, cel.DoubleType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					d, ok := val.(types.Double)
					if !ok {
						return types.NewErr("math_abs: argument must be a double")
					}
					if d < 0 {
						return -d
					}
					return d
				}),
			),
		),
		cel.Function("math_max",
			cel.Overload("math_max_double_double", []*cel.Type{cel.DoubleType, cel.DoubleType}, cel.DoubleType,
				cel.BinaryBinding(func(a, b ref.Val) ref.Val {
					x, ok1 := a.(types.Double)
					y, ok2 := b.(types.Double)
					if !ok1 || !ok2 {
						return types.NewErr("math_max: arguments must be doubles")
					}
					if x > y {
						return x
					}
					return y
				}),
			),
		),
		cel.Function("math_min",
			cel.Overload("math_min_double_double", []*cel.Type{cel.DoubleType, cel.DoubleType}, cel.DoubleType,
				cel.BinaryBinding(func(a, b ref.Val) ref.Val {
					x, ok1 := a.(types.Double)
					y, ok2 := b.(types.Double)
					if !ok1 || !ok2 {
						return types.NewErr("math_min: arguments must be doubles")
					}
					if x < y {
						return x
					}
					return y
				}),
			),
		),
		cel.Function("json_encode",
			cel.Overload("json_encode_dyn", []*cel.Type{cel.DynType}, cel.StringType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					native, err := celToGo(val)
					if err != nil {
						return types.NewErr("json_encode: %s", err)
					}
					encoded, err := json.Marshal(native)
					if err != nil {
						return types.NewErr("json_encode: %s", err)
					}
					return types.String(encoded)
				}),
			),
		),
		cel.Function("json_decode",
			cel.Overload("json_decode_string", []*cel.Type{cel.StringType}, cel.DynType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					s, ok := val.(types.String)
					if !ok {
						return types.NewErr("json_decode: argument must be a string")
					}
					var decoded any
					if err := json.Unmarshal([]byte(s), &decoded); err != nil {
						return types.NewErr("json_decode: %s", err)
					}
					return types.DefaultTypeAdapter.NativeToValue(decoded)
				}),
			),
		),
		cel.Function("print",
			cel.Overload("print_string", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					s, ok := val.(types.String)
					if !ok {
						return types.NewErr("print: argument must be a string")
					}
					*out = append(*out, string(s))
					return s
				}),
			),
		),
	}
}

// celToGo converts a CEL value produced by json_encode's argument
// expression into a plain Go value json.Marshal can serialize. CEL has no
// built-in JSON codec, so scalar and aggregate CEL types are converted by
// hand via the common/types/traits interfaces every CEL list/map value
// implements.
func celToGo(val ref.Val) (any, error) {
	switch v := val.(type) {
	case types.String:
		return string(v), nil
	case types.Int:
		return int64(v), nil
	case types.Uint:
		return uint64(v), nil
	case types.Double:
		return float64(v), nil
	case types.Bool:
		return bool(v), nil
	case types.Null:
		return nil, nil
	}

	if lister, ok := val.(traits.Lister); ok {
		size := int64(lister.Size().(types.Int))
		out := make([]any, 0, size)
		for i := int64(0); i < size; i++ {
			item, err := celToGo(lister.Get(types.Int(i)))
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	}

	if mapper, ok := val.(traits.Mapper); ok {
		out := make(map[string]any, int(mapper.Size().(types.Int)))
		it := mapper.Iterator()
		for it.HasNext() == types.True {
			key := it.Next()
			entry, found := mapper.Find(key)
			if !found {
				continue
			}
			goKey, err := celToGo(key)
			if err != nil {
				return nil, err
			}
			keyStr, ok := goKey.(string)
			if !ok {
				return nil, fmt.Errorf("map key must be a string, got %T", goKey)
			}
			goVal, err := celToGo(entry)
			if err != nil {
				return nil, err
			}
			out[keyStr] = goVal
		}
		return out, nil
	}

	return nil, fmt.Errorf("unsupported CEL value of type %T", val)
}
