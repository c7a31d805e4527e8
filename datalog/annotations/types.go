// Package annotations provides a lightweight event system for tracing
// fixpoint evaluation: which SCC is running, which rule ran in which pass,
// and what each query resolved to.
package annotations

import "sync"

// Event name constants, hierarchically namespaced by evaluation phase.
const (
	SCCBegin    = "scc/begin"
	SCCComplete = "scc/complete"

	RuleEvaluated = "pass/rule.evaluated"

	QueryInvoked  = "query/invoked"
	QueryComplete = "query/completed"
)

// Event represents a single traced occurrence during evaluation.
type Event struct {
	Name string                 // one of the constants above
	Data map[string]interface{} // event-specific fields
}

// Handler processes events as they occur.
type Handler func(Event)

// Collector accumulates events during a run and forwards each one to an
// optional Handler as it is added.
type Collector struct {
	mu      sync.Mutex
	enabled bool
	handler Handler
	events  []Event
}

// NewCollector returns a Collector that calls handler for every event
// added; a nil handler disables collection entirely.
func NewCollector(handler Handler) *Collector {
	return &Collector{enabled: handler != nil, handler: handler}
}

// Handler returns the underlying event handler.
func (c *Collector) Handler() Handler {
	return c.handler
}

// Add records an event and, if a handler is set, invokes it.
func (c *Collector) Add(event Event) {
	if !c.enabled {
		return
	}
	c.mu.Lock()
	c.events = append(c.events, event)
	c.mu.Unlock()
	c.handler(event)
}

// Events returns a copy of every event recorded so far.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Reset clears recorded events without touching the handler.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
}
