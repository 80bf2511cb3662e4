package events

import (
	"sync"

	"github.com/retain-hq/retain/internal/shared/goroutine"
	"github.com/retain-hq/retain/internal/shared/logger"
)

// Dispatcher is an in-process event bus. Handlers run asynchronously so a
// slow subscriber never blocks the publishing operation.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      logger.Interface
}

func NewDispatcher(log logger.Interface) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for an event type.
func (d *Dispatcher) Subscribe(eventType string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

// Publish delivers the event to every registered handler. Delivery is
// best-effort: handler panics are recovered and logged.
func (d *Dispatcher) Publish(event DomainEvent) {
	d.mu.RLock()
	handlers := d.handlers[event.EventType()]
	d.mu.RUnlock()

	for _, h := range handlers {
		h := h
		goroutine.SafeGo(d.log, "event-handler:"+event.EventType(), func() {
			h(event)
		})
	}
	if len(handlers) > 0 {
		d.log.Debugw("event published", "type", event.EventType(), "aggregate", event.AggregateSID())
	}
}
