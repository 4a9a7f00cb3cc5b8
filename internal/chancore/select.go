package chancore

import (
	"container/list"
	"sort"
	"unsafe"

	"go.uber.org/zap"
)

// ptrOf gives a stable, comparable identity for a *Chan, used only to
// establish a total lock order across concurrent Select calls.
func ptrOf(c *Chan) unsafe.Pointer { return unsafe.Pointer(c) }

// Direction tags one intent in a Select call.
type Direction int

const (
	// Send means the intent transmits Data into Channel.
	Send Direction = iota
	// Recv means the intent receives from Channel into Data.
	Recv
)

// Intent is one (channel, direction, data-slot) triple supplied to Select,
// per spec.md §4.4. For Send, Data is the element to transmit. For Recv,
// Data is overwritten in place with the dequeued element on success —
// this is the convention spec.md §9 adopts to resolve the reference
// source's ambiguity about where a receiving select case's result lands.
type Intent struct {
	Channel *Chan
	Dir     Direction
	Data    any
}

// chanOrder sorts the distinct channels referenced by intents by a stable
// identity (their address) before locking, per spec.md §4.4 step 1 /
// §9's "Lock-acquisition order in select": the reference C source locks
// in caller-supplied order, which is not deadlock-free across concurrent
// selects with differently-ordered intent vectors. Sorting by identity
// gives every concurrent Select call the same total lock order.
func chanOrder(intents []Intent) []*Chan {
	seen := make(map[*Chan]bool, len(intents))
	var chans []*Chan
	for _, in := range intents {
		if !seen[in.Channel] {
			seen[in.Channel] = true
			chans = append(chans, in.Channel)
		}
	}
	sort.Slice(chans, func(i, j int) bool {
		return uintptr(ptrOf(chans[i])) < uintptr(ptrOf(chans[j]))
	})
	return chans
}

// Select atomically evaluates intents and commits the lowest-indexed
// feasible one, blocking until at least one becomes feasible if none is
// immediately ready. See spec.md §4.4 for the full algorithm this
// implements round by round.
//
// Returns the committed (or closure-detecting) index and a Status:
// Success with selectedIndex set to the committed intent, or Closed with
// selectedIndex set to the first-scanned closed channel.
func Select(intents []Intent, log *zap.Logger) (selectedIndex int, status Status) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(intents) == 0 {
		return -1, Generic
	}

	priv := newSelSync()
	order := chanOrder(intents)

	// registered tracks, per intent index, the waiter-list node this
	// select inserted for that intent's (channel, direction) in a prior
	// round, so step 2's cleanup can find it again.
	registered := make([]*list.Element, len(intents))

	for {
		lockAll(order)

		// Step 2: waiter cleanup. Remove any node this select registered
		// in a previous round before re-scanning readiness, so a second
		// sleep doesn't double-insert (spec.md §4.4 step 2).
		for i, in := range intents {
			if registered[i] == nil {
				continue
			}
			listFor(in).remove(registered[i])
			registered[i] = nil
		}

		// Step 3: readiness scan, in input order; first feasible intent
		// wins, first closed channel aborts the whole call.
		committed := -1
		var committedStatus Status
		closedAt := -1
		for i, in := range intents {
			if !in.Channel.isOpenLocked() {
				closedAt = i
				break
			}
			switch in.Dir {
			case Send:
				if in.Channel.sizeLocked() < in.Channel.capacityLocked() {
					committedStatus = in.Channel.sendCore(in.Data)
					committed = i
				}
			case Recv:
				if in.Channel.sizeLocked() > 0 {
					var out any
					committedStatus = in.Channel.receiveCore(&out)
					intents[i].Data = out
					committed = i
				}
			}
			if committed != -1 {
				break
			}
		}

		if closedAt != -1 {
			unlockAll(order)
			log.Debug("chancore: select observed closed channel", zap.Int("index", closedAt))
			return closedAt, Closed
		}
		if committed != -1 {
			unlockAll(order)
			log.Debug("chancore: select committed", zap.Int("index", committed), zap.Stringer("status", committedStatus))
			return committed, committedStatus
		}

		// Step 4: registration & sleep. Acquire the private mutex before
		// releasing any channel lock, so no wake can be lost between
		// "about to sleep" and the actual Wait — see spec.md §4.4's
		// "Why the private lock" and the global channel-mutex ->
		// waiter-mutex lock order in spec.md §5.
		priv.mu.Lock()
		dup := make(map[chanDir]bool, len(intents))
		for i, in := range intents {
			key := chanDir{in.Channel, in.Dir}
			if !dup[key] {
				dup[key] = true
				registered[i] = listFor(in).insert(priv)
			}
		}
		log.Debug("chancore: select registered, sleeping", zap.Int("intents", len(intents)))
		unlockAll(order)
		priv.cond.Wait()
		priv.mu.Unlock()
		log.Debug("chancore: select woken, re-evaluating")
		// Loop: restart from step 1 (re-lock, re-clean, re-scan).
	}
}

// chanDir identifies one (channel, direction) pair, used to dedup
// registrations within a single select call per spec.md §4.4 step 4
// ("a select may have been waiting on this channel *and* others" — but
// never twice on the same (channel, direction)).
type chanDir struct {
	c   *Chan
	dir Direction
}

// listFor returns the waiter list an intent registers on: sel_sends for a
// Send intent (awaiting space), sel_recvs for a Recv intent (awaiting data).
func listFor(in Intent) *waiterList {
	if in.Dir == Send {
		return &in.Channel.selSends
	}
	return &in.Channel.selRecvs
}

func lockAll(order []*Chan) {
	for _, c := range order {
		c.mu.Lock()
	}
}

func unlockAll(order []*Chan) {
	for i := len(order) - 1; i >= 0; i-- {
		order[i].mu.Unlock()
	}
}
