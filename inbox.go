package calpreview

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// CommandInbox decouples the remote-control transport from the store: the
// transport callback delivers into a bounded channel, and a drain
// goroutine applies commands in arrival order. Delivery never blocks the
// transport; when the inbox is full the command is dropped and counted,
// which is acceptable under the at-most-once delivery contract.
type CommandInbox struct {
	ch        chan Command
	delivered atomic.Uint64
	dropped   atomic.Uint64
	logger    *slog.Logger
}

// InboxOption adjusts inbox construction.
type InboxOption func(*CommandInbox)

// WithInboxLogger sets the logger used for decode warnings.
func WithInboxLogger(l *slog.Logger) InboxOption {
	return func(in *CommandInbox) { in.logger = l }
}

// NewCommandInbox returns an inbox holding up to capacity pending
// commands. A non-positive capacity falls back to 16.
func NewCommandInbox(capacity int, opts ...InboxOption) *CommandInbox {
	if capacity <= 0 {
		capacity = 16
	}
	in := &CommandInbox{
		ch:     make(chan Command, capacity),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Deliver enqueues a decoded command without blocking. Returns false when
// the inbox was full and the command was dropped.
func (in *CommandInbox) Deliver(cmd Command) bool {
	select {
	case in.ch <- cmd:
		in.delivered.Add(1)
		return true
	default:
		in.dropped.Add(1)
		return false
	}
}

// DeliverRaw decodes one JSON command record and enqueues it. Undecodable
// payloads are dropped with a warning.
func (in *CommandInbox) DeliverRaw(data []byte) bool {
	cmd, err := DecodeCommand(data)
	if err != nil {
		in.logger.Warn("dropping remote payload", "err", err)
		in.dropped.Add(1)
		return false
	}
	return in.Deliver(cmd)
}

// Drain applies queued commands to the store in arrival order until the
// context is cancelled.
func (in *CommandInbox) Drain(ctx context.Context, store *Store) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-in.ch:
			store.Apply(cmd)
		}
	}
}

// InboxStats counts delivered and dropped commands.
type InboxStats struct {
	Delivered uint64
	Dropped   uint64
}

// Stats returns the delivery counters.
func (in *CommandInbox) Stats() InboxStats {
	return InboxStats{Delivered: in.delivered.Load(), Dropped: in.dropped.Load()}
}
