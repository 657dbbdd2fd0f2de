package handlers

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/spak-project/spak/internal/effect"
	"github.com/spak-project/spak/internal/log"
)

// listenSentinel is returned by Listen when the input queue is exhausted,
// keeping the handler total rather than blocking or erroring.
const listenSentinel = "<no input>"

// UserIO handles effect.Listen and effect.Reply against a configured,
// deterministic input queue: Listen pops the next queued input (or returns
// a sentinel when empty), Reply writes to an injected io.Writer and
// returns "Replied". The queue is what makes this handler reproducible
// under test, in place of reading from a live terminal.
type UserIO struct {
	mu      sync.Mutex
	queue   []string
	out     io.Writer
	Replies []string
	log     *log.Logger
}

// NewUserIO returns a UserIO handler seeded with the given input queue,
// consumed front-to-back by successive Listen effects, writing Reply
// output to w (pass io.Discard if the caller only cares about Replies).
// A nil logger defaults to log.Nop().
func NewUserIO(queue []string, w io.Writer, logger *log.Logger) *UserIO {
	q := make([]string, len(queue))
	copy(q, queue)
	if w == nil {
		w = io.Discard
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &UserIO{queue: q, out: w, log: logger}
}

func (u *UserIO) CanHandle(k effect.Kind) bool {
	return k == effect.Listen || k == effect.Reply
}

func (u *UserIO) Handle(ctx context.Context, e effect.Effect) (any, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch e.Kind {
	case effect.Listen:
		if len(u.queue) == 0 {
			return listenSentinel, nil
		}
		next := u.queue[0]
		u.queue = u.queue[1:]
		return next, nil

	case effect.Reply:
		reply, ok := e.Payload.(effect.UserOutput)
		if !ok {
			return nil, fmt.Errorf("user io handler: unexpected payload type %T", e.Payload)
		}
		u.Replies = append(u.Replies, reply.Message)
		fmt.Fprintln(u.out, reply.Message)
		u.log.Info("agent reply", "message", reply.Message)
		return "Replied", nil

	default:
		return nil, fmt.Errorf("user io handler: declined effect %s reached Handle", e.Kind)
	}
}
