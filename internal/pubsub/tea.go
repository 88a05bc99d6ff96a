package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd waits for the next event on ch and returns it as a tea.Msg, or
// nil once ctx is done or ch is closed.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			return ev
		}
	}
}

// Listener keeps one subscription open across Update calls. Call Listen
// again after handling each event to keep receiving.
type Listener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewListener subscribes to broker for the lifetime of ctx.
func NewListener[T any](ctx context.Context, broker *Broker[T]) *Listener[T] {
	return &Listener[T]{ctx: ctx, ch: broker.Subscribe(ctx)}
}

// Listen returns a command that receives the next event.
func (l *Listener[T]) Listen() tea.Cmd {
	return ListenCmd(l.ctx, l.ch)
}
