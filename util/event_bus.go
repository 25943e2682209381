// util/event_bus.go

package util

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	logger "github.com/pingwise/clinic-api/logging"
)

// Event is a domain notification, e.g. "patient.created" carrying the
// patient record as its payload.
type Event struct {
	Type    string
	Payload interface{}
}

// EventHandler processes a single published event.
type EventHandler func(context.Context, Event) error

const eventErrorBuffer = 100

// EventBus fans domain events out to registered handlers. Handlers run on
// their own goroutines; a slow or failing handler never blocks the
// publishing service.
type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
	errs     chan error
}

// NewEventBus creates a new EventBus
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
		errs:     make(chan error, eventErrorBuffer),
	}
}

// Subscribe registers a handler for an event type. Registration happens
// during service construction, before any publishing starts.
func (eb *EventBus) Subscribe(eventType string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
}

// Publish delivers an event to every subscribed handler asynchronously.
// Handler failures are funneled to the error drain, not to the publisher.
func (eb *EventBus) Publish(ctx context.Context, eventType string, payload interface{}) {
	eb.mu.RLock()
	handlers := eb.handlers[eventType]
	eb.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	event := Event{Type: eventType, Payload: payload}

	for _, handler := range handlers {
		go func(h EventHandler) {
			if err := h(ctx, event); err != nil {
				select {
				case eb.errs <- fmt.Errorf("event handler error: %w", err):
				default:
					logger.Error("Event error channel full, dropping to log",
						zap.Error(err),
						zap.String("eventType", eventType))
				}
			}
		}(handler)
	}
}

// Start launches the error drain. It runs until ctx is cancelled.
func (eb *EventBus) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case err := <-eb.errs:
				logger.Error("Event handler error", zap.Error(err))
			case <-ctx.Done():
				return
			}
		}
	}()
}
