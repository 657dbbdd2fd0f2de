package effect

import (
	"context"
	"strconv"
	"sync"
)

// TraceEntry is one append-only record of an effect resolution.
type TraceEntry struct {
	Kind           Kind
	PayloadSummary string
}

// Runtime owns an ordered handler chain and an append-only trace log. The
// chain is walked newest-to-oldest on resolve: the most-recently-registered
// handler accepting an effect wins, an intentional last-writer-wins overlay
// that lets a host add a specialized handler without removing defaults.
type Runtime struct {
	mu       sync.Mutex
	handlers []Handler
	trace    []TraceEntry
}

// NewRuntime returns an empty Runtime with no registered handlers.
func NewRuntime() *Runtime {
	return &Runtime{}
}

// Register appends h to the handler chain, giving it the highest priority
// among currently registered handlers for any effect kind it accepts.
func (r *Runtime) Register(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, h)
}

// Trace returns a copy of the accumulated trace entries in resolution
// order.
func (r *Runtime) Trace() []TraceEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TraceEntry, len(r.trace))
	copy(out, r.trace)
	return out
}

// Resolve records e in the trace, then walks the handler chain from newest
// to oldest, offering e to each. The first non-declining handler's result
// is returned. If every handler declines, it returns *UnhandledEffect. ctx
// is forwarded to the accepting handler's Handle so a caller can cancel an
// effect that is mid-flight (an in-progress LLM call, a sandboxed
// evaluation running past its timeout) rather than only refusing to
// resolve the next one.
func (r *Runtime) Resolve(ctx context.Context, e Effect) (any, error) {
	r.mu.Lock()
	r.trace = append(r.trace, TraceEntry{Kind: e.Kind, PayloadSummary: summarize(e.Payload)})
	handlers := make([]Handler, len(r.handlers))
	copy(handlers, r.handlers)
	r.mu.Unlock()

	for i := len(handlers) - 1; i >= 0; i-- {
		h := handlers[i]
		if !h.CanHandle(e.Kind) {
			continue
		}
		result, err := h.Handle(ctx, e)
		if err != nil {
			return nil, &HandlerFailure{Kind: e.Kind, Err: err}
		}
		return result, nil
	}
	return nil, &UnhandledEffect{Kind: e.Kind}
}

func summarize(payload any) string {
	switch p := payload.(type) {
	case LLMRequest:
		return "messages=" + strconv.Itoa(len(p.Messages))
	case CodeExecution:
		return "code_len=" + strconv.Itoa(len(p.Code))
	case FileRead:
		return "path=" + p.Path
	case FileWrite:
		return "path=" + p.Path
	case MathOperation:
		return "op=" + string(p.Op)
	case UserInputRequest:
		return "prompt=" + p.Prompt
	case UserOutput:
		return "message=" + p.Message
	case Message:
		return "recipient=" + p.Recipient
	case SubTask:
		return "spec_path=" + p.SpecPath
	default:
		return ""
	}
}
