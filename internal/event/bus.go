package event

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Topic names an event stream on the bus.
type Topic string

// HandlerFunc consumes a published event. The sender is the component
// that published; data is topic-specific payload. A returned error is
// reported to the publisher but does not stop delivery to later handlers.
type HandlerFunc func(sender any, data any) error

// Subscription is a handle to a registered handler.
type Subscription struct {
	id    string
	topic Topic
	fn    HandlerFunc
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() Topic {
	return s.topic
}

// Bus is a synchronous, ordered publish/subscribe registry.
// Handlers for a topic run in registration order on the publisher's
// stack. The zero value is not usable; create buses with NewBus.
type Bus struct {
	mu   sync.Mutex
	subs map[Topic][]*Subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]*Subscription)}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic Topic, fn HandlerFunc) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	if topic == "" {
		return nil, ErrInvalidTopic
	}

	sub := &Subscription{id: generateID(), topic: topic, fn: fn}

	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], sub)
	b.mu.Unlock()

	return sub, nil
}

// Unsubscribe removes a subscription. Safe to call while a publish to the
// same topic is in flight; the in-flight delivery completes from its
// snapshot.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[sub.topic]
	for i, s := range subs {
		if s.id == sub.id {
			b.subs[sub.topic] = append(subs[:i], subs[i+1:]...)
			if len(b.subs[sub.topic]) == 0 {
				delete(b.subs, sub.topic)
			}
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers an event to every handler subscribed to the topic, in
// registration order, and returns any handler errors joined. Handlers
// registered after the snapshot is taken do not see this event.
func (b *Bus) Publish(topic Topic, sender, data any) error {
	b.mu.Lock()
	subs := b.subs[topic]
	snapshot := make([]*Subscription, len(subs))
	copy(snapshot, subs)
	b.mu.Unlock()

	var errs []error
	for _, sub := range snapshot {
		if err := b.dispatch(sub, topic, sender, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// dispatch invokes one handler, converting panics into PanicError.
func (b *Bus) dispatch(sub *Subscription, topic Topic, sender, data any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{SubscriptionID: sub.id, Topic: topic, Value: r}
		}
	}()

	if herr := sub.fn(sender, data); herr != nil {
		return &HandlerError{SubscriptionID: sub.id, Topic: topic, Err: herr}
	}
	return nil
}

// Count returns the total number of subscriptions.
func (b *Bus) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, subs := range b.subs {
		n += len(subs)
	}
	return n
}

// CountTopic returns the number of subscriptions for one topic.
func (b *Bus) CountTopic(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}

// generateID creates a random subscription identifier.
func generateID() string {
	return uuid.NewString()
}
