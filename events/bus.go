// Package events provides the typed publisher/subscriber mediator every
// manager in the tactical core communicates through. There are no direct
// manager-to-manager references anywhere in this module (spec.md §4.4, §9
// "Manager cross-references becoming spaghetti").
package events

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/pfassina/grimdark/errs"
)

// Kind identifies an event type. The set of kinds this module emits is
// closed — see the KindXxx constants in kinds.go.
type Kind string

// Event is the interface every published payload satisfies.
type Event interface {
	Kind() Kind
}

// Handler processes one event. It returns an error only for conditions the
// publisher should treat as fatal; ordinary game-rule rejections never
// flow through here (they're returned directly from Action.Validate).
type Handler func(ctx context.Context, evt Event) error

// DefaultMaxDepth is the default nested-publish recursion ceiling.
// spec.md §4.4 sets this at 16, higher than the teacher's default of 10,
// because the tactical core's event graphs (attack -> damage -> wound ->
// morale -> objective) run a few hops deeper than a single rulebook
// feature cascade.
const DefaultMaxDepth = 16

type subscription struct {
	id       uint64
	priority int
	order    uint64
	handler  Handler
}

// Bus is the synchronous, single-threaded event dispatcher. Publish runs
// every matching handler to completion before returning (spec.md §4.4,
// §5 "execute completes atomically from the Bus's perspective").
type Bus struct {
	mu          sync.Mutex
	handlers    map[Kind][]subscription
	nextSubID   uint64
	nextOrder   uint64
	depth       int32
	maxDepth    int32
	queued      []Event
}

// NewBus creates a Bus with the default recursion ceiling.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Kind][]subscription),
		maxDepth: DefaultMaxDepth,
	}
}

// NewBusWithMaxDepth creates a Bus with a custom recursion ceiling.
func NewBusWithMaxDepth(maxDepth int32) *Bus {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Bus{
		handlers: make(map[Kind][]subscription),
		maxDepth: maxDepth,
	}
}

// Subscribe registers handler for events of the given kind at priority.
// Same-kind handlers run in descending priority; ties break by
// subscription order (spec.md §4.4). Returns a subscription id usable
// with Unsubscribe.
func (b *Bus) Subscribe(kind Kind, priority int, handler Handler) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSubID++
	b.nextOrder++
	sub := subscription{id: b.nextSubID, priority: priority, order: b.nextOrder, handler: handler}

	subs := append(b.handlers[kind], sub)
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].priority != subs[j].priority {
			return subs[i].priority > subs[j].priority
		}
		return subs[i].order < subs[j].order
	})
	b.handlers[kind] = subs

	return sub.id
}

// Unsubscribe removes a subscription by id. No-op if the id is unknown.
func (b *Bus) Unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for kind, subs := range b.handlers {
		for i, s := range subs {
			if s.id == id {
				b.handlers[kind] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish sends evt to every subscriber of its kind, in priority order,
// using context.Background(). See PublishCtx for the context-carrying
// form.
func (b *Bus) Publish(evt Event) error {
	return b.PublishCtx(context.Background(), evt)
}

// PublishCtx sends evt to every subscriber of its kind using ctx. Nested
// publishes from within a handler are allowed up to the bus's configured
// recursion ceiling; exceeding it is fatal and surfaces as a
// CodeEventRecursionLimit error (spec.md §4.4, §7).
func (b *Bus) PublishCtx(ctx context.Context, evt Event) error {
	depth := atomic.AddInt32(&b.depth, 1)
	defer atomic.AddInt32(&b.depth, -1)

	if depth > b.maxDepth {
		return errs.New(errs.CodeEventRecursionLimit, "event cascade depth exceeded",
			errs.WithMeta("depth", depth), errs.WithMeta("max_depth", b.maxDepth), errs.WithMeta("kind", string(evt.Kind())))
	}

	b.mu.Lock()
	subs := make([]subscription, len(b.handlers[evt.Kind()]))
	copy(subs, b.handlers[evt.Kind()])
	b.mu.Unlock()

	for _, s := range subs {
		if err := s.handler(ctx, evt); err != nil {
			return err
		}
	}
	return nil
}

// Enqueue defers evt for later processing via Drain, instead of
// dispatching it immediately. Used at end-of-activation to batch deferred
// objective/morale checks (spec.md §4.4).
func (b *Bus) Enqueue(evt Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queued = append(b.queued, evt)
}

// Drain publishes every queued event, in enqueue order, clearing the
// queue first so handlers that enqueue further events don't loop forever
// inside a single Drain call.
func (b *Bus) Drain(ctx context.Context) error {
	b.mu.Lock()
	pending := b.queued
	b.queued = nil
	b.mu.Unlock()

	for _, evt := range pending {
		if err := b.PublishCtx(ctx, evt); err != nil {
			return err
		}
	}
	return nil
}

// Depth returns the current nested-publish depth, for diagnostics.
func (b *Bus) Depth() int32 {
	return atomic.LoadInt32(&b.depth)
}
