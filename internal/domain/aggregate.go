package domain

// AggregateRoot is an entity acting as a consistency boundary. It records
// applied events and dispatches them to handlers registered on the same
// instance. Dispatch is synchronous and happens inside ApplyEvent; a handler
// that applies another event recurses.
type AggregateRoot[ID Identifier] struct {
	Entity[ID]

	events   []DomainEvent
	seen     map[string]struct{}
	handlers map[string][]EventHandler
}

// NewAggregateRoot creates the aggregate base for id.
func NewAggregateRoot[ID Identifier](id ID) AggregateRoot[ID] {
	return AggregateRoot[ID]{
		Entity:   NewEntity(id),
		seen:     make(map[string]struct{}),
		handlers: make(map[string][]EventHandler),
	}
}

// RegisterHandler appends handler to the handlers of eventName.
func (a *AggregateRoot[ID]) RegisterHandler(eventName string, handler EventHandler) {
	if a.handlers == nil {
		a.handlers = make(map[string][]EventHandler)
	}

	a.handlers[eventName] = append(a.handlers[eventName], handler)
}

// ApplyEvent records event once and runs its handlers in registration order.
func (a *AggregateRoot[ID]) ApplyEvent(event DomainEvent) {
	if a.seen == nil {
		a.seen = make(map[string]struct{})
	}

	if _, ok := a.seen[event.EventID()]; !ok {
		a.seen[event.EventID()] = struct{}{}
		a.events = append(a.events, event)
	}

	for _, handler := range a.handlers[event.EventName()] {
		handler(event)
	}
}

// Events returns the recorded events in application order.
func (a *AggregateRoot[ID]) Events() []DomainEvent {
	out := make([]DomainEvent, len(a.events))
	copy(out, a.events)

	return out
}

// ClearEvents forgets every recorded event, typically once they are published.
func (a *AggregateRoot[ID]) ClearEvents() {
	a.events = nil
	a.seen = make(map[string]struct{})
}
