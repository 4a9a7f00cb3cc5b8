// Package chancore implements the untyped core of a bounded, multi-producer
// multi-consumer CSP channel plus a multi-way select over a heterogeneous
// set of such channels.
//
// Invariants (hold whenever mu is not held by any goroutine):
//  - 0 <= buf.currentSize() <= buf.capacity()
//  - every node in selSends or selRecvs corresponds to a Select call
//    currently sleeping, or in the narrow window between registration and
//    sleep (step 4 of the select algorithm in spec.md §4.4).
//  - open transitions exactly once, true -> false, via Close.
package chancore

import (
	"sync"

	"go.uber.org/zap"
)

// Chan is a bounded mailbox with synchronized multi-producer/multi-consumer
// access. It is the direct analogue of hchan in the teacher's
// runtime/chan.go, minus the parts only the scheduler itself can do
// (gopark/goready); those become mu/notFull/notEmpty, the same way the C
// reference this was ported from already expresses them.
type Chan struct {
	mu sync.Mutex

	notFull  *sync.Cond // paired with mu; blocking Send waits here
	notEmpty *sync.Cond // paired with mu; blocking Receive waits here

	buf  *ring
	open bool

	selSends waiterList // selects blocked awaiting send-opportunity
	selRecvs waiterList // selects blocked awaiting receive-opportunity

	log *zap.Logger
}

// Option configures a Chan at creation time.
type Option func(*Chan)

// WithLogger attaches a structured logger used for Debug-level tracing of
// send-core/receive-core commits and the open->closed transition. Select
// registration and wakeup are traced by the logger passed to Select, not
// this one. A nil logger is treated the same as not passing this option.
func WithLogger(l *zap.Logger) Option {
	return func(c *Chan) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a channel with the given positive capacity. Capacity zero
// (rendezvous channels) is out of scope per spec.md §1 and panics, the same
// way runtime.makechan rejects invalid sizes rather than returning a status
// — capacity is a construction-time precondition, not a recoverable error.
func New(capacity int, opts ...Option) *Chan {
	c := &Chan{
		buf:  newRing(capacity),
		open: true,
		log:  zap.NewNop(),
	}
	c.notFull = sync.NewCond(&c.mu)
	c.notEmpty = sync.NewCond(&c.mu)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// sendCore is the "common tail" shared by Send, TrySend, and a committing
// Select: precondition is mu held, open, buf not full. It enqueues, wakes
// at most one blocked classical receiver, then walks selRecvs so every
// select that might now be able to proceed re-evaluates its whole intent
// vector. Postcondition: mu still held.
func (c *Chan) sendCore(elem any) Status {
	if err := c.buf.add(elem); err != nil {
		c.log.Error("chancore: send-core buffer invariant violated", zap.Error(err))
		return Generic
	}
	c.notEmpty.Signal()
	c.selRecvs.wakeAll()
	c.log.Debug("chancore: send-core committed", zap.Int("size", c.buf.currentSize()))
	return Success
}

// receiveCore is symmetric to sendCore: precondition is mu held, open,
// buf not empty. *out receives the dequeued element.
func (c *Chan) receiveCore(out *any) Status {
	elem, err := c.buf.remove()
	if err != nil {
		c.log.Error("chancore: receive-core buffer invariant violated", zap.Error(err))
		return Generic
	}
	*out = elem
	c.notFull.Signal()
	c.selSends.wakeAll()
	c.log.Debug("chancore: receive-core committed", zap.Int("size", c.buf.currentSize()))
	return Success
}

// Send blocks until elem can be enqueued or the channel is observed closed.
func (c *Chan) Send(elem any) Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return Closed
	}
	for c.buf.currentSize() == c.buf.capacity() {
		c.notFull.Wait()
		if !c.open {
			return Closed
		}
	}
	return c.sendCore(elem)
}

// Receive blocks until an element is available or the channel is observed
// closed.
func (c *Chan) Receive() (any, Status) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil, Closed
	}
	for c.buf.currentSize() == 0 {
		c.notEmpty.Wait()
		if !c.open {
			return nil, Closed
		}
	}
	var out any
	status := c.receiveCore(&out)
	return out, status
}

// TrySend never blocks: it reports ChannelFull instead of waiting.
func (c *Chan) TrySend(elem any) Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return Closed
	}
	if c.buf.currentSize() == c.buf.capacity() {
		return ChannelFull
	}
	return c.sendCore(elem)
}

// TryReceive never blocks: it reports ChannelEmpty instead of waiting.
func (c *Chan) TryReceive() (any, Status) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil, Closed
	}
	if c.buf.currentSize() == 0 {
		return nil, ChannelEmpty
	}
	var out any
	status := c.receiveCore(&out)
	return out, status
}

// Close flips the channel to CLOSED, exactly once. Every blocked Send,
// Receive, and Select referencing this channel is guaranteed to wake:
// first by broadcasting notFull/notEmpty (wakes classical blockers), then
// by walking both waiter lists and signaling every registered select's
// private condition (wakes selects, possibly blocked on other channels
// too, so they can re-scan their whole intent vector).
func (c *Chan) Close() Status {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return Closed
	}
	c.open = false
	c.notFull.Broadcast()
	c.notEmpty.Broadcast()
	c.selRecvs.wakeAll()
	c.selSends.wakeAll()
	c.log.Debug("chancore: channel closed")
	c.mu.Unlock()
	return Success
}

// Destroy releases the channel's resources. It is only valid on an already
// closed channel; the caller is responsible for ensuring no goroutine is
// still inside Send/Receive/Select on this channel (spec.md §4.3).
func (c *Chan) Destroy() Status {
	c.mu.Lock()
	if c.open {
		c.mu.Unlock()
		return DestroyError
	}
	// Drop references so the ring's contents and any still-registered
	// (but, per the precondition above, no longer live) waiter nodes can
	// be collected. Nothing here can itself fail the way free() can in
	// the C original — destroy_error is the only failure mode Go needs.
	c.buf = nil
	c.selSends = waiterList{}
	c.selRecvs = waiterList{}
	c.mu.Unlock()
	return Success
}

// isOpenLocked reports whether the channel is open. Callers must already
// hold mu; exported only within the package for Select's readiness scan.
func (c *Chan) isOpenLocked() bool { return c.open }

// capacityLocked and sizeLocked expose buf's readers to Select while mu is
// already held by the caller, avoiding re-entrant locking.
func (c *Chan) capacityLocked() int { return c.buf.capacity() }
func (c *Chan) sizeLocked() int     { return c.buf.currentSize() }
