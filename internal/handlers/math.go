// Package handlers implements the kernel's built-in effect handlers: LLM
// generation, restricted-code execution, filesystem access, arithmetic,
// user interaction, messaging, and recursion.
package handlers

import (
	"context"
	"fmt"
	"math"

	"github.com/spak-project/spak/internal/effect"
)

// Arithmetic handles effect.Math. Division by zero returns positive
// infinity rather than signalling an error; any other operator name is a
// handler failure.
type Arithmetic struct{}

// NewArithmetic returns a ready-to-register Arithmetic handler.
func NewArithmetic() Arithmetic { return Arithmetic{} }

func (Arithmetic) CanHandle(k effect.Kind) bool { return k == effect.Math }

func (Arithmetic) Handle(ctx context.Context, e effect.Effect) (any, error) {
	op, ok := e.Payload.(effect.MathOperation)
	if !ok {
		return nil, fmt.Errorf("math handler: unexpected payload type %T", e.Payload)
	}
	switch op.Op {
	case effect.Add:
		return op.A + op.B, nil
	case effect.Sub:
		return op.A - op.B, nil
	case effect.Mul:
		return op.A * op.B, nil
	case effect.Div:
		if op.B == 0 {
			return math.Inf(1), nil
		}
		return op.A / op.B, nil
	default:
		return nil, fmt.Errorf("unknown arithmetic operator %q", op.Op)
	}
}
