// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Flight and session event types
const (
	Victory            Type = "victory"
	GameOver           Type = "game_over"
	WingFlapped        Type = "wing_flapped"
	FastDescentEntered Type = "fast_descent_entered"
	FastDescentExited  Type = "fast_descent_exited"
	SessionStarted     Type = "session_started"
	SessionPaused      Type = "session_paused"
	SessionResumed     Type = "session_resumed"
	SessionEnded       Type = "session_ended"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is the handle returned by Subscribe. Calling Cancel removes
// the handler; it is safe to call more than once.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	var once sync.Once
	return &Subscription{
		ID:   id,
		Type: eventType,
		Cancel: func() {
			once.Do(func() { b.remove(eventType, id) })
		},
	}
}

// Unsubscribe removes the handler behind sub. A nil subscription is ignored.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil || sub.Cancel == nil {
		return
	}
	sub.Cancel()
}

func (b *Bus) remove(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs, ok := b.handlers[eventType]
	if !ok {
		return
	}

	for i, r := range regs {
		if r.id == id {
			// copy so a Publish iterating the old slice is unaffected
			next := make([]registration, 0, len(regs)-1)
			next = append(next, regs[:i]...)
			next = append(next, regs[i+1:]...)
			if len(next) == 0 {
				delete(b.handlers, eventType)
			} else {
				b.handlers[eventType] = next
			}
			return
		}
	}
}

// HandlerCount returns the number of handlers registered for eventType.
func (b *Bus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, r := range regs {
		r.handler(event)
	}
}

// Specific event implementations

// FlapEvent is published for every detected wing flap.
type FlapEvent struct {
	BaseEvent
	Wing             string
	MagnitudePercent float64
}

// NewFlapEvent creates a new flap event
func NewFlapEvent(source interface{}, wing string, magnitude float64) *FlapEvent {
	return &FlapEvent{
		BaseEvent: BaseEvent{
			EventType: WingFlapped,
			Source:    source,
		},
		Wing:             wing,
		MagnitudePercent: magnitude,
	}
}

// DescentEvent carries the vertical force applied on a fast descent transition.
type DescentEvent struct {
	BaseEvent
	VerticalForce float64
}

// NewDescentEvent creates a new fast descent transition event
func NewDescentEvent(eventType Type, source interface{}, verticalForce float64) *DescentEvent {
	return &DescentEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		VerticalForce: verticalForce,
	}
}

// TerminalEvent is published once per session as Victory or GameOver.
type TerminalEvent struct {
	BaseEvent
	TraversedDistance float64
}

// NewTerminalEvent creates a new victory or game over event
func NewTerminalEvent(eventType Type, source interface{}, distance float64) *TerminalEvent {
	return &TerminalEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		TraversedDistance: distance,
	}
}

// SessionEvent contains session lifecycle information
type SessionEvent struct {
	BaseEvent
	SessionID string
	Tick      uint64
}

// NewSessionEvent creates a new session lifecycle event
func NewSessionEvent(eventType Type, source interface{}, sessionID string, tick uint64) *SessionEvent {
	return &SessionEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		SessionID: sessionID,
		Tick:      tick,
	}
}
