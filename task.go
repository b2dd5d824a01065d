package eventio

import "fmt"

// Task is a resumable computation dispatched by a Kernel. A Task is created
// by Run (the root task) or Ctx.Spawn (every other task); it is never
// constructed directly.
type Task struct {
	k    *Kernel
	name string

	status  Status
	nextArg any
	joiners []*Task

	resumeCh chan resumeMsg
	trapCh   chan Trap

	result any
	err    error
}

func newTask(k *Kernel, name string, fn func(*Ctx) (any, error)) *Task {
	t := &Task{
		k:        k,
		name:     name,
		resumeCh: make(chan resumeMsg),
		trapCh:   make(chan Trap),
	}
	go t.run(fn)
	return t
}

// run is the task's goroutine body. It blocks immediately for its first
// resume (sent once the kernel pulls this task off the ready queue),
// invokes fn, and reports exactly one terminal Trap back to the kernel
// regardless of how fn ended: return, error return, or panic.
func (t *Task) run(fn func(*Ctx) (any, error)) {
	first := <-t.resumeCh
	if first.signal != nil {
		t.trapCh <- func(k *Kernel) { k.finalizeTask(t, nil, nil, first.signal) }
		return
	}

	c := &Ctx{k: t.k, task: t}
	var result any
	var err error
	var cancelSig error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if sig, ok := asSignal(r); ok {
					cancelSig = sig
				} else {
					err = fmt.Errorf("eventio: task panic: %v", r)
				}
			}
		}()
		result, err = fn(c)
	}()

	t.trapCh <- func(k *Kernel) { k.finalizeTask(t, result, err, cancelSig) }
}

// Status returns the task's current lifecycle status.
func (t *Task) Status() Status { return t.status }

// Terminated reports whether the task has reached a terminal status
// (StatusCancelled or StatusTerminated).
func (t *Task) Terminated() bool { return t.status.Terminal() }

// Name returns the task's diagnostic name.
func (t *Task) Name() string { return t.name }

// Result returns the task's outcome. It returns ErrTaskNotTerminated if the
// task has not yet reached a terminal status, and ErrJoinCancelled if the
// task was cancelled rather than completing normally.
func (t *Task) Result() (any, error) {
	if !t.status.Terminal() {
		return nil, ErrTaskNotTerminated
	}
	if t.status == StatusCancelled {
		return nil, ErrJoinCancelled
	}
	return t.result, t.err
}

// Join suspends the calling task (c's owner) until t reaches a terminal
// status, then returns t's result and error, or ErrJoinCancelled if t was
// cancelled.
func (t *Task) Join(c *Ctx) (any, error) {
	c.suspend(func(k *Kernel) {
		if t.status.Terminal() {
			k.readyPut(c.task)
			return
		}
		t.joiners = append(t.joiners, c.task)
	})
	if t.status == StatusCancelled {
		return nil, ErrJoinCancelled
	}
	return t.result, t.err
}

// Cancel requests that t be cancelled. It returns true if this call is what
// triggered the cancellation (t was active), false if t was already
// cancel-pending or already terminal.
//
// If blocking is true, the caller also suspends until t has actually
// reached a terminal status; otherwise Cancel returns as soon as the
// request has been recorded, before t has necessarily unwound.
func (t *Task) Cancel(c *Ctx, blocking bool) bool {
	if t.status.Terminal() {
		return false
	}
	already := t.status == StatusCancelPending || t.status == StatusTimeoutPending
	c.suspend(func(k *Kernel) {
		k.requestCancel(t, nil)
		if blocking && !t.status.Terminal() {
			t.joiners = append(t.joiners, c.task)
			return
		}
		k.readyPut(c.task)
	})
	return !already
}

// cancelForTimeout is the internal variant TimeoutAfter uses, marking t
// with StatusTimeoutPending instead of StatusCancelPending so the eventual
// CancelledError delivered is a *TimeoutSentinelError.
func (t *Task) cancelForTimeout(c *Ctx) {
	if t.status.Terminal() {
		return
	}
	c.suspend(func(k *Kernel) {
		k.requestCancel(t, errTimeoutCause)
		if !t.status.Terminal() {
			t.joiners = append(t.joiners, c.task)
			return
		}
		k.readyPut(c.task)
	})
}

// errTimeoutCause marks a cancellation request as timeout-triggered; it is
// never returned to a caller directly, only used to select which signal
// type requestCancel constructs.
var errTimeoutCause = fmt.Errorf("eventio: timeout")
