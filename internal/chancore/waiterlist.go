package chancore

import (
	"container/list"
	"sync"
)

// selSync is the per-select-call synchronization record described in
// spec.md as the "waiter record": one mutex and one condition variable
// owned by a single in-flight Select call, shared by reference with zero
// or more channels' waiter lists. Its identity (pointer value) is what
// waiterList.find matches on, exactly as the C original matches
// list_find(..., &sel_sync) by the address of a stack-local struct.
type selSync struct {
	mu   sync.Mutex
	cond *sync.Cond
}

func newSelSync() *selSync {
	s := &selSync{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// wake signals the select owning this record that it may be worth
// re-evaluating its intents. Any caller must NOT hold s.mu already.
func (s *selSync) wake() {
	s.mu.Lock()
	s.cond.Signal()
	s.mu.Unlock()
}

// waiterList is an intrusive, unordered-for-correctness-but-FIFO-for-
// fairness list of select registrations pending on one direction
// (send or receive) of one channel. It is the Go analogue of
// linked_list.c: insert-at-tail, find-by-identity, O(1) remove-by-node.
//
// container/list is used rather than a hand-rolled doubly-linked list
// because this is the exact need golang.org/x/sync/semaphore.Weighted
// already solves the same way in this dependency tree (a FIFO of blocked
// waiters that must support removal of an arbitrary, already-known node
// without rescanning) — there is no stdlib gap to fill with a bespoke
// structure here, only the C original's lack of one.
//
// No internal synchronization: callers hold the owning channel's lock.
type waiterList struct {
	l list.List
}

// insert appends data at the tail and returns the new node.
func (w *waiterList) insert(data *selSync) *list.Element {
	return w.l.PushBack(data)
}

// find returns the first node whose stored *selSync equals data by
// identity, or nil.
func (w *waiterList) find(data *selSync) *list.Element {
	for e := w.l.Front(); e != nil; e = e.Next() {
		if e.Value.(*selSync) == data {
			return e
		}
	}
	return nil
}

// remove unlinks node. It is a no-op on a node already removed.
func (w *waiterList) remove(node *list.Element) {
	if node == nil {
		return
	}
	w.l.Remove(node)
}

// count reports the number of registered waiters.
func (w *waiterList) count() int { return w.l.Len() }

// wakeAll signals every registered waiter's private condition variable,
// in FIFO (insertion) order. Used by send-core, receive-core, and close.
func (w *waiterList) wakeAll() {
	for e := w.l.Front(); e != nil; e = e.Next() {
		e.Value.(*selSync).wake()
	}
}
