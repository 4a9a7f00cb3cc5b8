package chancore

import "github.com/pkg/errors"

// ring is a fixed-capacity circular buffer of opaque element handles.
//
// It is the direct analogue of hchan's buf/dataqsiz/qcount/sendx/recvx
// fields in the Go runtime's channel implementation: a contiguous slice
// used as a ring, written at sendx and read at recvx, wrapping modulo
// capacity. Unlike hchan, elements here are typed as `any` rather than
// laid out by the compiler, since this is a user-space library without
// access to the runtime's type descriptors.
//
// ring carries no lock of its own; every mutation happens with the owning
// Chan's mutex held.
type ring struct {
	buf   []any
	cap   int
	size  int
	sendx int // next write index
	recvx int // next read index
}

func newRing(capacity int) *ring {
	if capacity <= 0 {
		panic("chancore: ring capacity must be > 0")
	}
	return &ring{
		buf: make([]any, capacity),
		cap: capacity,
	}
}

// capacity returns the ring's fixed capacity.
func (r *ring) capacity() int { return r.cap }

// currentSize returns the number of elements presently queued.
func (r *ring) currentSize() int { return r.size }

var errRingFull = errors.New("chancore: ring buffer is full")
var errRingEmpty = errors.New("chancore: ring buffer is empty")

// add appends elem at the tail. Fails iff the ring is already at capacity;
// callers are expected to have checked currentSize() < capacity() under the
// channel lock, so a failure here indicates an invariant was violated.
func (r *ring) add(elem any) error {
	if r.size == r.cap {
		return errors.WithStack(errRingFull)
	}
	r.buf[r.sendx] = elem
	r.sendx++
	if r.sendx == r.cap {
		r.sendx = 0
	}
	r.size++
	return nil
}

// remove dequeues the oldest element. Fails iff the ring is empty; callers
// are expected to have checked currentSize() > 0 under the channel lock.
func (r *ring) remove() (any, error) {
	if r.size == 0 {
		return nil, errors.WithStack(errRingEmpty)
	}
	elem := r.buf[r.recvx]
	r.buf[r.recvx] = nil // drop the reference so GC can reclaim it
	r.recvx++
	if r.recvx == r.cap {
		r.recvx = 0
	}
	r.size--
	return elem, nil
}
