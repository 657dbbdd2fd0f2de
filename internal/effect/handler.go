package effect

import "context"

// Handler is a value that accepts some effect kinds and produces results
// for them. A handler that does not recognize an effect's Kind must
// decline rather than fail: CanHandle is consulted before Handle is ever
// called, so Handle itself only needs to deal with effects it claims.
type Handler interface {
	// CanHandle reports whether this handler accepts effects of kind k.
	CanHandle(k Kind) bool

	// Handle produces a result for e. It is only called when CanHandle(e.Kind)
	// is true; returning an error here is a HandlerFailure, not a decline.
	// ctx carries cancellation for handlers with work that can outlive a
	// single in-process call (an LLM request, a sandboxed evaluation with a
	// timeout); a handler with no such work may ignore it.
	Handle(ctx context.Context, e Effect) (any, error)
}
