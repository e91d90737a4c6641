// Package events defines the domain event contract and an in-memory
// dispatcher used to decouple lifecycle side effects from use cases.
package events

// DomainEvent is implemented by every domain event.
type DomainEvent interface {
	GetEventType() string
}

// EventHandler processes a dispatched event.
type EventHandler func(event DomainEvent)

// EventDispatcher publishes domain events to registered handlers.
type EventDispatcher interface {
	Publish(event DomainEvent) error
	Subscribe(eventType string, handler EventHandler)
	Start() error
	Stop() error
}
