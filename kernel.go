package eventio

import (
	"context"
	"sync/atomic"
	"time"
)

// currentKernel is the process-wide kernel handle. It is non-nil exactly
// while one Run invocation is inside its dispatch loop; a second concurrent
// Run observes it and fails with ErrKernelAlreadyRunning.
var currentKernel atomic.Pointer[Kernel]

// GetKernel returns the kernel currently inside a Run invocation, or
// ErrKernelNotRunning if there is none. Task code should prefer
// Ctx.GetKernel; this package-level form exists for code outside any task,
// such as interrupt-style callbacks.
func GetKernel() (*Kernel, error) {
	k := currentKernel.Load()
	if k == nil {
		return nil, ErrKernelNotRunning
	}
	return k, nil
}

// Kernel is the process-wide scheduler. A Kernel is constructed and driven
// entirely by Run; there is no exported constructor, matching the "one
// process, one kernel, one Run lifetime" contract this package's dispatch
// loop is built around.
type Kernel struct {
	state *fastState

	ready *readyQueue
	wait  *waitQueue

	clock       Clock
	logger      *DiagnosticLogger
	diagnostics *uncaughtDiagnostics

	uptime  *Chronometer
	working *Chronometer

	taskSeq     int
	activeCount int
}

// Run starts a Kernel, runs entry as its root task, and blocks until ctx is
// cancelled or both the ready and wait queues go empty — which normally
// means every task has terminated, but also happens if a task is parked only
// on an Event or Join with nothing left to drive the wait queue; see
// ActiveTaskCount and runLoop's handling of that case.
//
// At most one Run may be inside its dispatch loop at a time per process;
// any further call, including a reentrant one from inside a task, fails
// with ErrKernelAlreadyRunning.
func Run(ctx context.Context, entry func(*Ctx) (any, error), opts ...RunOption) error {
	cfg := resolveRunOptions(opts)

	k := &Kernel{
		state:   newFastState(),
		ready:   newReadyQueue(cfg.readyCapacity),
		wait:    newWaitQueue(cfg.waitCapacity),
		clock:   cfg.clock,
		logger:  cfg.logger,
		uptime:  NewChronometer(cfg.clock),
		working: NewChronometer(cfg.clock),
	}
	k.diagnostics = newUncaughtDiagnostics(k.logger, cfg.rateWindow)

	if !currentKernel.CompareAndSwap(nil, k) {
		return ErrKernelAlreadyRunning
	}
	defer currentKernel.Store(nil)

	if !k.state.TryTransition(stateIdle, stateRunning) {
		return ErrKernelAlreadyRunning
	}
	defer k.state.Store(stateTerminated)

	root := newTask(k, "main", entry)
	k.registerTask(root)
	k.readyPut(root)

	k.uptime.Start()
	k.working.Start()
	defer k.uptime.Stop()

	return k.runLoop(ctx)
}

func (k *Kernel) runLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		now := k.clock.NowMS()
		for _, t := range k.wait.PopDue(now) {
			if t.status.Terminal() {
				continue
			}
			k.readyPut(t)
		}

		if k.ready.Len() == 0 {
			wake, ok := k.wait.Peek()
			if !ok {
				// Both queues empty: nothing left that will ever become
				// ready on its own. Any task parked only on an Event/Join
				// with no sleeping task left to drive the wait queue is
				// simply never resumed again; real programs avoid this by
				// always keeping at least one task sleeping.
				return nil
			}
			d := time.Duration(wrapDiff(now, wake)) * time.Millisecond
			if d < 0 {
				d = 0
			}
			k.working.Stop()
			k.clock.DeepSleep(d)
			k.working.Start()
			continue
		}

		// Dispatch exactly the tasks that were ready when this pass began;
		// a task readied during the pass runs in the next one.
		for n := k.ready.Len(); n > 0; n-- {
			t, _ := k.ready.Get()
			if t.status.Terminal() {
				// A task can legitimately be scheduled after terminating, e.g.
				// when it was cancelled while still sitting on an Event's
				// waiter list; a later Set re-readies the stale entry. Drop it.
				continue
			}
			k.runOne(t)
		}
	}
}

// runOne resumes t exactly once: it sends t's pending argument or
// cancellation signal, then blocks until t suspends again (or finalizes)
// and runs the resulting Trap.
func (k *Kernel) runOne(t *Task) {
	var msg resumeMsg
	switch t.status {
	case StatusCancelPending, StatusTimeoutPending:
		sig, _ := t.nextArg.(error)
		msg = resumeMsg{signal: sig}
	default:
		msg = resumeMsg{arg: t.nextArg}
	}
	t.nextArg = nil
	t.resumeCh <- msg
	trap := <-t.trapCh
	trap(k)
}

// readyPut schedules t for its next resume. Logs and drops the schedule
// request if the ready queue is full, rather than blocking the dispatch
// loop — a full ready queue is a configuration problem (see
// WithReadyCapacity), not something the kernel can safely stall on.
func (k *Kernel) readyPut(t *Task) {
	if err := k.ready.Put(t); err != nil {
		k.logger.Error("ready queue full, task starved", "task", t.name)
	}
}

func (k *Kernel) registerTask(t *Task) {
	k.activeCount++
}

func (k *Kernel) nextTaskID() int {
	k.taskSeq++
	return k.taskSeq
}

// requestCancel marks t for cancellation and readies it so its next resume
// raises the signal inside its own computation. timeoutCause non-nil
// selects a *TimeoutSentinelError over a plain *CancelledError.
//
// If t already has a pending nextArg, that value is about to be discarded in
// favor of the cancellation signal; this is logged rather than allowed to
// pass unnoticed. Wakeups from a sleep, an Event or a joiners list leave
// nextArg nil, so they never trigger this warning.
func (k *Kernel) requestCancel(t *Task, timeoutCause error) {
	if t.status.Terminal() || t.status == StatusCancelPending || t.status == StatusTimeoutPending {
		return
	}
	if t.nextArg != nil {
		k.logger.Warn("cancelling task with a pending next_arg; it will be discarded", "task", t.name)
	}

	var sig error
	if timeoutCause != nil {
		t.status = StatusTimeoutPending
		sig = &TimeoutSentinelError{CancelledError{Cause: timeoutCause}}
	} else {
		t.status = StatusCancelPending
		sig = &CancelledError{}
	}
	t.nextArg = sig

	// The target may be sleeping (pull it out of the wait queue), already
	// scheduled (leave the existing ready entry to deliver the signal), or
	// parked on an Event waiter or joiners list (ready it directly; the
	// stale list entry is dropped at dispatch once the task is terminal).
	k.wait.Remove(t)
	if !k.ready.Contains(t) {
		k.readyPut(t)
	}
}

// finalizeTask records t's terminal outcome, emits the diagnostic for an
// uncaught task error, and schedules every joiner.
func (k *Kernel) finalizeTask(t *Task, result any, err error, cancelSignal error) {
	if cancelSignal != nil {
		t.status = StatusCancelled
		t.err = cancelSignal
	} else {
		t.status = StatusTerminated
		t.result = result
		t.err = err
		if err != nil {
			k.diagnostics.report(t.name, err)
		}
	}
	joiners := t.joiners
	t.joiners = nil
	for _, j := range joiners {
		k.readyPut(j)
	}
	k.activeCount--
}

// Schedule puts t directly onto the ready queue. Unlike every other kernel
// entry point, Schedule is safe to call from any goroutine — it exists for
// collaborators like PinEvent whose edge callback genuinely runs off the
// dispatch goroutine.
func (k *Kernel) Schedule(t *Task) error {
	if !k.state.IsRunning() {
		return ErrKernelNotRunning
	}
	return k.ready.Put(t)
}

// ActiveTaskCount returns the number of registered tasks that have not yet
// reached a terminal status. Handy as a liveness probe, e.g. to detect
// tasks left permanently parked when Run exits.
func (k *Kernel) ActiveTaskCount() int {
	return k.activeCount
}

// Uptime returns the number of seconds since Run started.
func (k *Kernel) Uptime() float64 {
	return float64(k.uptime.ElapsedMS()) / 1000
}

// LoadAverage returns the percentage of uptime spent awake running tasks,
// as opposed to deep-sleeping between ticks: 0 means the kernel slept the
// entire time, 100 means it never slept.
func (k *Kernel) LoadAverage() float64 {
	up := k.uptime.ElapsedMS()
	if up == 0 {
		return 0
	}
	return 100 * float64(k.working.ElapsedMS()) / float64(up)
}
