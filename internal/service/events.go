package service

import "sync"

// EventType defines the type of event
type EventType string

const (
	EventModelUpdated EventType = "model_updated"
	EventModelLoaded  EventType = "model_loaded"
	EventModelSaved   EventType = "model_saved"
)

// Event represents an event that occurred in the system
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// EventBus allows publishing and subscribing to events
type EventBus struct {
	mu          sync.RWMutex
	subscribers []chan<- Event
	dropped     func()
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]chan<- Event, 0),
	}
}

// OnDrop registers fn to be called whenever a slow subscriber misses an
// event
func (eb *EventBus) OnDrop(fn func()) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.dropped = fn
}

// Subscribe adds a subscriber to receive events
func (eb *EventBus) Subscribe(ch chan<- Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers = append(eb.subscribers, ch)
}

// Publish sends an event to all subscribers without blocking
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is slow, skip
			if eb.dropped != nil {
				eb.dropped()
			}
		}
	}
}
