package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"outcomepicker/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventPickerOpened     = domain.EventPickerOpened
	EventPickerClosed     = domain.EventPickerClosed
	EventSelectionChanged = domain.EventSelectionChanged
	EventSelectionCleared = domain.EventSelectionCleared
	EventSearchStarted    = domain.EventSearchStarted
	EventResultsLoaded    = domain.EventResultsLoaded
	EventSearchFailed     = domain.EventSearchFailed
	EventPageChanged      = domain.EventPageChanged
	EventCursorMoved      = domain.EventCursorMoved
	EventConfigLoaded     = domain.EventConfigLoaded
	EventConfigSaved      = domain.EventConfigSaved
	EventError            = domain.EventError
)

// Re-export domain event types
type PickerOpenedEvent = domain.PickerOpenedEvent
type PickerClosedEvent = domain.PickerClosedEvent
type SelectionChangedEvent = domain.SelectionChangedEvent
type SelectionClearedEvent = domain.SelectionClearedEvent
type SearchStartedEvent = domain.SearchStartedEvent
type ResultsLoadedEvent = domain.ResultsLoadedEvent
type SearchFailedEvent = domain.SearchFailedEvent
type PageChangedEvent = domain.PageChangedEvent
type CursorMovedEvent = domain.CursorMovedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType]map[int]EventHandler
	nextID    int
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// Bus is an EventBus that can be shut down
type Bus interface {
	EventBus
	Close()
}

// New creates a new event bus
func New() Bus {
	b := &bus{
		handlers:  make(map[EventType]map[int]EventHandler),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Skip logging for high-frequency events
	switch event.Type() {
	case EventCursorMoved:
	default:
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	select {
	case b.eventChan <- event:
	case <-b.quit:
	default:
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[int]EventHandler)
	}
	id := b.nextID
	b.nextID++
	b.handlers[eventType][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[eventType], id)
	}
}

// Close stops the dispatcher; queued events are discarded
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			handlers := make([]EventHandler, 0, len(b.handlers[event.Type()]))
			for _, h := range b.handlers[event.Type()] {
				handlers = append(handlers, h)
			}
			b.mu.RUnlock()

			for _, handler := range handlers {
				// Call handler in a goroutine to avoid blocking
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("Event handler panic for %s: %v\nStack: %s", eventType, r, debug.Stack())
						}
					}()
					h(event)
				}(handler, event.Type())
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (NullBus) Publish(event DomainEvent) {}
func (NullBus) Subscribe(eventType EventType, handler EventHandler) func() {
	return func() {}
}

// Recorder is a synchronous EventBus that keeps every published event
type Recorder struct {
	mu     sync.Mutex
	events []DomainEvent
}

func (r *Recorder) Publish(event DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *Recorder) Subscribe(eventType EventType, handler EventHandler) func() {
	return func() {}
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Reset drops recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
