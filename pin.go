package eventio

import "sync"

// PullMode selects a GPIO input pin's internal pull resistor configuration.
type PullMode uint8

const (
	PullNone PullMode = iota
	PullUp
	PullDown
)

// PinInput is the GPIO collaborator a PinEvent watches. Configure prepares
// the pin's pull resistor; OnEdge registers the callback the pin driver
// invokes on every relevant edge, from whatever goroutine the underlying
// driver uses for interrupts — PinEvent does not assume it runs on the
// dispatch goroutine.
type PinInput interface {
	Configure(pull PullMode) error
	OnEdge(handler func())
}

// PinEvent is a hardware-edge-triggered counterpart to Event: each edge on
// the watched pin wakes every task currently parked in Wait, with the
// trigger originating outside any task, from the pin driver's own interrupt
// goroutine. Unlike Event.Set, an edge does not set the level flag — an
// edge is a moment, not a level. A task that calls Wait after the edge has
// already fired parks until the next one; layer Set/Clear on top for
// level-triggered semantics.
type PinEvent struct {
	event *Event
	k     *Kernel
}

// NewPinEvent configures pin with the given pull mode and returns a
// PinEvent bound to c's kernel. Returns any error pin.Configure reports.
func NewPinEvent(c *Ctx, pin PinInput, pull PullMode) (*PinEvent, error) {
	if err := pin.Configure(pull); err != nil {
		return nil, err
	}
	pe := &PinEvent{event: NewEvent(), k: c.GetKernel()}
	pin.OnEdge(pe.trigger)
	return pe, nil
}

func (pe *PinEvent) trigger() {
	pe.event.wakeFromOutside(pe.k)
}

// Wait suspends the calling task until the next edge fires, or returns
// immediately if the underlying level flag has been raised via Set.
func (pe *PinEvent) Wait(c *Ctx) { pe.event.Wait(c) }

// Set raises the underlying level flag, for applications layering
// level-triggered semantics over the edge wakeups.
func (pe *PinEvent) Set(c *Ctx) { pe.event.Set(c) }

// Clear lowers the underlying level flag.
func (pe *PinEvent) Clear() { pe.event.Clear() }

// IsSet reports the underlying level flag. Edges never raise it; only Set
// does.
func (pe *PinEvent) IsSet() bool { return pe.event.IsSet() }

// FakePin is an in-memory PinInput for tests and simulation, standing in
// for a real digitalio-style input pin. Fire invokes the registered edge
// handler, simulating an interrupt; it is safe to call from any goroutine,
// matching how a real pin driver would invoke its callback.
type FakePin struct {
	mu      sync.Mutex
	pull    PullMode
	handler func()
}

// Configure records the pull mode. Always succeeds.
func (p *FakePin) Configure(pull PullMode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pull = pull
	return nil
}

// OnEdge registers the handler invoked by Fire.
func (p *FakePin) OnEdge(handler func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handler = handler
}

// Fire simulates an edge, invoking the registered handler if any.
func (p *FakePin) Fire() {
	p.mu.Lock()
	h := p.handler
	p.mu.Unlock()
	if h != nil {
		h()
	}
}

// Pull returns the pull mode most recently passed to Configure.
func (p *FakePin) Pull() PullMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pull
}
