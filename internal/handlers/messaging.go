package handlers

import (
	"context"
	"fmt"

	"github.com/spak-project/spak/internal/effect"
	"github.com/spak-project/spak/internal/log"
)

// Messaging handles effect.SendMessage, logging with a prefix that
// distinguishes a broadcast from a directed message.
type Messaging struct {
	log *log.Logger
}

// NewMessaging returns a ready-to-register Messaging handler.
func NewMessaging(logger *log.Logger) Messaging {
	if logger == nil {
		logger = log.Nop()
	}
	return Messaging{log: logger}
}

func (Messaging) CanHandle(k effect.Kind) bool { return k == effect.SendMessage }

func (m Messaging) Handle(ctx context.Context, e effect.Effect) (any, error) {
	msg, ok := e.Payload.(effect.Message)
	if !ok {
		return nil, fmt.Errorf("messaging handler: unexpected payload type %T", e.Payload)
	}
	if msg.Broadcast {
		m.log.Info("broadcast message", "content", msg.Content)
	} else {
		m.log.Info("directed message", "recipient", msg.Recipient, "content", msg.Content)
	}
	return "Sent", nil
}
