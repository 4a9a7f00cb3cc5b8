package channel

import (
	"go.uber.org/zap"

	"github.com/Yousef-Rabiah/concurrency-in-go/internal/chancore"
)

// Direction mirrors chancore.Direction.
type Direction = chancore.Direction

const (
	SendDir = chancore.Send
	RecvDir = chancore.Recv
)

// SelectCase is one (channel, direction, data) intent in a Select call,
// shaped after the stdlib's own reflect.SelectCase — the precedent for a
// heterogeneous multi-way channel select over a slice of type-erased
// cases in an otherwise strongly-typed language.
type SelectCase struct {
	Dir  Direction
	core *chancore.Chan
	send any
}

// SendCase builds a SelectCase that attempts to send v on ch.
func SendCase[T any](ch *Channel[T], v T) SelectCase {
	return SelectCase{Dir: SendDir, core: ch.core, send: v}
}

// RecvCase builds a SelectCase that attempts to receive from ch.
func RecvCase[T any](ch *Channel[T]) SelectCase {
	return SelectCase{Dir: RecvDir, core: ch.core}
}

// SelectOption configures a Select call.
type SelectOption func(*selectConfig)

type selectConfig struct {
	log *zap.Logger
}

// SelectWithLogger attaches a logger for Debug-level tracing of this one
// Select call's registrations and commit.
func SelectWithLogger(l *zap.Logger) SelectOption {
	return func(cfg *selectConfig) { cfg.log = l }
}

// Select evaluates cases per spec.md §4.4: if any is immediately feasible,
// the lowest-indexed one commits; otherwise the call blocks until one
// becomes feasible or any referenced channel closes.
//
// recv holds the value received for a winning Recv case (nil otherwise);
// callers type-assert it to the element type of the channel at that index,
// the same way reflect.Select callers assert its returned reflect.Value.
func Select(cases []SelectCase, opts ...SelectOption) (chosen int, recv any, status Status) {
	cfg := selectConfig{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	intents := make([]chancore.Intent, len(cases))
	for i, c := range cases {
		intents[i] = chancore.Intent{Channel: c.core, Dir: c.Dir, Data: c.send}
	}

	idx, status := chancore.Select(intents, cfg.log)
	if idx < 0 {
		return idx, nil, status
	}
	if status == Success && cases[idx].Dir == RecvDir {
		recv = intents[idx].Data
	}
	return idx, recv, status
}
