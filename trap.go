package eventio

// Trap is the closure a task hands the kernel at every suspension point. It
// runs once, synchronously, on the kernel's dispatch goroutine, and is
// responsible for deciding when (if ever) the suspended task becomes ready
// again — by putting it on the ready queue immediately, parking it in the
// wait queue, or appending it to another task's joiners list.
//
// This is the one mechanism every Ctx/Task/Event operation funnels through:
// Sleep parks via the wait queue, Spawn registers a child and immediately
// re-readies the caller, Join either re-readies the caller (target already
// terminal) or appends it as a joiner, and Cancel does its bookkeeping then
// either re-readies the caller or, for a blocking cancel, appends it as a
// joiner too.
type Trap func(*Kernel)

// resumeMsg is what the kernel sends a task's resumeCh to release it from
// suspend. A non-nil signal means the task's goroutine must panic with it
// instead of returning arg from the suspension point — this is how
// cancellation and timeout are delivered.
type resumeMsg struct {
	arg    any
	signal error
}

// asSignal reports whether r (a recovered panic value) is one of this
// package's own in-task cancellation signals, as opposed to a genuine task
// bug.
func asSignal(r any) (error, bool) {
	switch sig := r.(type) {
	case *TimeoutSentinelError:
		return sig, true
	case *CancelledError:
		return sig, true
	default:
		return nil, false
	}
}
