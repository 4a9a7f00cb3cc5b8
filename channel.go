// Package channel implements a bounded, typed, multi-producer
// multi-consumer CSP-style channel, plus a multi-way Select across a
// heterogeneous set of channels of different element types.
//
// The synchronization protocol — blocking/non-blocking send & receive,
// close-broadcast, and multi-channel select with fair FIFO wakeup and no
// lost wakeups — lives in the untyped internal/chancore core. This package
// is the generic facade spec.md §9 calls for: "a strongly-typed
// implementation should wrap the core in a generic/parameterized facade
// that enforces element type at the binding boundary."
package channel

import (
	"github.com/Yousef-Rabiah/concurrency-in-go/internal/chancore"
	"go.uber.org/zap"
)

// Status mirrors chancore.Status; re-exported so callers never import the
// internal package directly.
type Status = chancore.Status

const (
	Success      = chancore.Success
	Closed       = chancore.Closed
	ChannelFull  = chancore.ChannelFull
	ChannelEmpty = chancore.ChannelEmpty
	DestroyError = chancore.DestroyError
	Generic      = chancore.Generic
)

// Option configures a Channel at creation time.
type Option = chancore.Option

// WithLogger attaches a *zap.Logger for Debug-level tracing of this
// channel's send/receive commits and its close. Select wakeups are traced
// through SelectWithLogger instead.
func WithLogger(l *zap.Logger) Option { return chancore.WithLogger(l) }

// Channel is a bounded, typed FIFO mailbox with synchronized
// multi-producer/multi-consumer access. The zero value is not usable; use
// New.
type Channel[T any] struct {
	core *chancore.Chan
}

// New creates a channel of the given positive capacity. Capacity zero
// (rendezvous channels) is out of scope per spec.md §1.
func New[T any](capacity int, opts ...Option) *Channel[T] {
	return &Channel[T]{core: chancore.New(capacity, opts...)}
}

// Send blocks until elem can be enqueued or the channel is observed closed.
func (c *Channel[T]) Send(elem T) Status {
	return c.core.Send(elem)
}

// Receive blocks until an element is available or the channel is observed
// closed. The zero value of T is returned alongside a non-Success status.
func (c *Channel[T]) Receive() (T, Status) {
	v, status := c.core.Receive()
	return asT[T](v, status)
}

// TrySend never blocks: it reports ChannelFull instead of waiting.
func (c *Channel[T]) TrySend(elem T) Status {
	return c.core.TrySend(elem)
}

// TryReceive never blocks: it reports ChannelEmpty instead of waiting.
func (c *Channel[T]) TryReceive() (T, Status) {
	v, status := c.core.TryReceive()
	return asT[T](v, status)
}

// Close closes the channel. A second and later call returns Closed.
func (c *Channel[T]) Close() Status {
	return c.core.Close()
}

// Destroy releases the channel's resources; valid only once the channel is
// closed and no goroutine remains inside a call on it.
func (c *Channel[T]) Destroy() Status {
	return c.core.Destroy()
}

// Core exposes the untyped channel backing this facade.
func (c *Channel[T]) Core() *chancore.Chan { return c.core }

func asT[T any](v any, status Status) (T, Status) {
	var zero T
	if status != Success || v == nil {
		return zero, status
	}
	return v.(T), status
}
