package events

import "context"

// TopicDef declares a typed topic at package scope, connected to a live
// Bus at runtime via On. This mirrors the teacher's
// "define once, connect explicitly" pattern: the compile-time topic
// definition and the runtime bus connection are deliberately separate
// steps, so call sites read as `events.UnitAttackedTopic.On(bus)`.
type TopicDef[T Event] struct {
	kind Kind
}

// DefineTopic creates a new typed topic definition for the given kind.
func DefineTopic[T Event](kind Kind) *TopicDef[T] {
	return &TopicDef[T]{kind: kind}
}

// On connects this topic definition to a bus, returning a type-safe
// handle for publishing and subscribing.
func (d *TopicDef[T]) On(bus *Bus) Topic[T] {
	return Topic[T]{bus: bus, kind: d.kind}
}

// Topic is a type-safe view over a Bus for one event kind.
type Topic[T Event] struct {
	bus  *Bus
	kind Kind
}

// Subscribe registers a typed handler at the given priority.
func (t Topic[T]) Subscribe(priority int, handler func(context.Context, T) error) uint64 {
	return t.bus.Subscribe(t.kind, priority, func(ctx context.Context, evt Event) error {
		typed, ok := evt.(T)
		if !ok {
			return nil
		}
		return handler(ctx, typed)
	})
}

// Publish sends evt through the underlying Bus.
func (t Topic[T]) Publish(ctx context.Context, evt T) error {
	return t.bus.PublishCtx(ctx, evt)
}

// Unsubscribe removes a subscription by id.
func (t Topic[T]) Unsubscribe(id uint64) {
	t.bus.Unsubscribe(id)
}
