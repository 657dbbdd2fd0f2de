package handlers

import (
	"context"
	"fmt"

	"github.com/spak-project/spak/internal/effect"
)

// Completion is one candidate response from a Provider.
type Completion struct {
	Content string
}

// Provider is the seam between the LLM handler and a concrete model
// backend. Wiring a real provider (HTTP client to an inference endpoint)
// is external to the kernel; the kernel only depends on this interface.
type Provider interface {
	Complete(ctx context.Context, req effect.LLMRequest) ([]Completion, error)
}

// LLM handles effect.Generate by delegating to a configured Provider and
// returning the textual content of its first completion.
type LLM struct {
	provider Provider
}

// NewLLM returns a ready-to-register LLM handler backed by provider.
func NewLLM(provider Provider) LLM {
	return LLM{provider: provider}
}

func (LLM) CanHandle(k effect.Kind) bool { return k == effect.Generate }

func (l LLM) Handle(ctx context.Context, e effect.Effect) (any, error) {
	req, ok := e.Payload.(effect.LLMRequest)
	if !ok {
		return nil, fmt.Errorf("llm handler: unexpected payload type %T", e.Payload)
	}
	completions, err := l.provider.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(completions) == 0 {
		return nil, fmt.Errorf("llm handler: provider returned no completions")
	}
	return completions[0].Content, nil
}
