package eventio

import "sync"

// Event is a level-triggered condition variable: once set, every current
// and future Wait returns immediately until the next Clear. It is the
// kernel-level analogue of a broadcast condition variable, used to let one
// task wake any number of others without polling.
type Event struct {
	mu      sync.Mutex
	isSet   bool
	waiters []*Task
}

// NewEvent returns a cleared Event.
func NewEvent() *Event {
	return &Event{}
}

// Wait suspends the calling task until the event is set. If the event is
// already set, the task is rescheduled immediately without actually
// blocking.
func (e *Event) Wait(c *Ctx) {
	c.suspend(func(k *Kernel) {
		e.mu.Lock()
		if e.isSet {
			e.mu.Unlock()
			k.readyPut(c.task)
			return
		}
		e.waiters = append(e.waiters, c.task)
		e.mu.Unlock()
	})
}

// Set marks the event as set and reschedules every current waiter.
//
// Set always suspends and resumes the calling task too, even when there
// were no waiters or the event was already set. It costs one extra
// ready-queue round-trip in that case but is otherwise harmless.
func (e *Event) Set(c *Ctx) {
	e.mu.Lock()
	e.isSet = true
	waiters := e.waiters
	e.waiters = nil
	e.mu.Unlock()

	k := c.GetKernel()
	for _, w := range waiters {
		k.readyPut(w)
	}

	c.suspend(func(k *Kernel) {
		k.readyPut(c.task)
	})
}

// Clear resets the event to unset. Does not affect tasks already woken by a
// prior Set.
func (e *Event) Clear() {
	e.mu.Lock()
	e.isSet = false
	e.mu.Unlock()
}

// IsSet reports whether the event is currently set.
func (e *Event) IsSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isSet
}

// wakeFromOutside hands the waiter list to k.Schedule rather than the
// suspend-based Set, for collaborators (PinEvent) whose trigger genuinely
// runs on a goroutine other than any task's. It deliberately does not touch
// the set flag: an edge is a moment, not a level, so only tasks already
// parked are woken.
func (e *Event) wakeFromOutside(k *Kernel) {
	e.mu.Lock()
	waiters := e.waiters
	e.waiters = nil
	e.mu.Unlock()

	for _, w := range waiters {
		_ = k.Schedule(w)
	}
}
