package engine

import (
	"context"
	"log/slog"
	"time"
)

// The primary interface exposed to detection rules.
type MessageContext struct {
	// Actual golang "context.Context", if needed for timeouts etc
	Ctx context.Context
	// Any errors encountered while processing methods on this struct get rolled up in this nullable field
	Err error
	// slog logger handle, with event-specific structured fields pre-populated. Pointer, but expected to never be nil.
	Logger *slog.Logger

	Account AccountMeta
	Message MessageRef

	engine  *Engine // NOTE: pointer, but expected never to be nil
	effects *Effects
}

// Immutable
type MessageRef struct {
	Text       string
	ReceivedAt time.Time
}

func NewMessageContext(ctx context.Context, eng *Engine, meta AccountMeta, text string, receivedAt time.Time) MessageContext {
	return MessageContext{
		Ctx:     ctx,
		Err:     nil,
		Logger:  eng.Logger.With("user", meta.UserID),
		Account: meta,
		Message: MessageRef{
			Text:       text,
			ReceivedAt: receivedAt,
		},
		engine:  eng,
		effects: &Effects{},
	}
}

// request external state via engine (indirect) ======

// The last n raw message bodies from this user, oldest first, including the
// message currently being evaluated.
func (c *MessageContext) RecentMessages(n int) []string {
	out, err := c.engine.Activity.RecentMessages(c.Ctx, c.Account.UserID, n)
	if err != nil {
		if nil == c.Err {
			c.Err = err
		}
		return []string{}
	}
	return out
}

// Number of messages from this user within the trailing window ending at the
// current message's receive time, including the message itself.
func (c *MessageContext) MessageCountWithin(window time.Duration) int {
	out, err := c.engine.Activity.CountWithin(c.Ctx, c.Account.UserID, c.Message.ReceivedAt, window)
	if err != nil {
		if nil == c.Err {
			c.Err = err
		}
		return 0
	}
	return out
}

// update effects (indirect) ======

func (c *MessageContext) IncrementSuspicion(points int, reason string) {
	c.effects.IncrementSuspicion(points, reason)
}

func (c *MessageContext) AddAccountFlag(val string) {
	c.effects.AddAccountFlag(val)
}
