// Package effect implements the algebraic effect runtime: effect values, an
// ordered handler chain, ambient-runtime dispatch, and the policy-coroutine
// shape an Agent uses to suspend at each perform and resume with the prior
// effect's result.
package effect

import "fmt"

// Kind identifies which of the kernel's pre-declared effect variants a
// value carries. Handlers are selected by Kind alone; payload content never
// participates in routing.
type Kind int

const (
	Generate Kind = iota
	ExecuteCode
	ReadFile
	WriteFile
	Math
	Listen
	Reply
	SendMessage
	Recurse
)

func (k Kind) String() string {
	switch k {
	case Generate:
		return "Generate"
	case ExecuteCode:
		return "ExecuteCode"
	case ReadFile:
		return "ReadFile"
	case WriteFile:
		return "WriteFile"
	case Math:
		return "Math"
	case Listen:
		return "Listen"
	case Reply:
		return "Reply"
	case SendMessage:
		return "SendMessage"
	case Recurse:
		return "Recurse"
	default:
		return "Unknown"
	}
}

// Effect is a tagged variant: a Kind plus an opaque payload. The payload's
// concrete type is determined by Kind (see LLMRequest, CodeExecution, etc.)
// and handlers type-assert it after accepting the Kind.
type Effect struct {
	Kind    Kind
	Payload any
}

// --- Payload types, one per effect kind ---

// LLMRequest is the payload of a Generate effect.
type LLMRequest struct {
	Messages []ChatMessage
	Model    string
	Stop     []string
}

// ChatMessage is one role/content turn in an LLMRequest's message list.
type ChatMessage struct {
	Role    string
	Content string
}

// CodeExecution is the payload of an ExecuteCode effect. Timeout is
// expressed in seconds; zero means the handler's default applies.
type CodeExecution struct {
	Code    string
	Timeout int
}

// FileRead is the payload of a ReadFile effect.
type FileRead struct {
	Path string
}

// FileWrite is the payload of a WriteFile effect.
type FileWrite struct {
	Path    string
	Content string
}

// MathOp names the arithmetic operation a MathOperation payload requests.
type MathOp string

const (
	Add MathOp = "add"
	Sub MathOp = "sub"
	Mul MathOp = "mul"
	Div MathOp = "div"
)

// MathOperation is the payload of a Math effect.
type MathOperation struct {
	Op MathOp
	A  float64
	B  float64
}

// UserInputRequest is the payload of a Listen effect.
type UserInputRequest struct {
	Prompt string
}

// UserOutput is the payload of a Reply effect.
type UserOutput struct {
	Message string
}

// Message is the payload of a SendMessage effect. Recipient is empty when
// Broadcast is true.
type Message struct {
	Recipient string
	Content   string
	Broadcast bool
}

// SubTask is the payload of a Recurse effect.
type SubTask struct {
	Query    string
	SpecPath string
	Context  string
}

// UnhandledEffect is raised when every handler in the chain declines an
// effect.
type UnhandledEffect struct {
	Kind Kind
}

func (e *UnhandledEffect) Error() string {
	return fmt.Sprintf("unhandled effect: %s", e.Kind)
}

// HandlerFailure wraps an error a handler produced after accepting an
// effect it recognized (as opposed to declining it).
type HandlerFailure struct {
	Kind Kind
	Err  error
}

func (e *HandlerFailure) Error() string {
	return fmt.Sprintf("handler failure for %s: %v", e.Kind, e.Err)
}

func (e *HandlerFailure) Unwrap() error { return e.Err }
