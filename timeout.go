package eventio

// TimeoutAfter runs fn in a spawned task and waits for it to finish, but
// cancels it if it hasn't finished within seconds. If the deadline fires,
// TimeoutAfter returns (nil, ErrTimedOut), distinct from any value or error
// fn itself might have returned had it run to completion.
//
// No new kernel mechanism is involved: TimeoutAfter is a composition of
// Spawn, Sleep, Cancel, and Join.
func TimeoutAfter(c *Ctx, seconds float64, fn func(*Ctx) (any, error)) (any, error) {
	if seconds < 0 || seconds > maxSleepSeconds {
		panic(&TypeError{Message: "eventio: timeout delay out of range [0, 1e6] seconds", Cause: ErrInvalidDelay})
	}

	child := c.SpawnNamed("timeout-body", fn)

	watchdog := c.SpawnNamed("timeout-watchdog", func(w *Ctx) (any, error) {
		w.Sleep(seconds)
		if !child.Terminated() {
			child.cancelForTimeout(w)
		}
		return nil, nil
	})

	result, err := child.Join(c)
	watchdog.Cancel(c, false)

	if child.Status() == StatusCancelled {
		if _, ok := child.err.(*TimeoutSentinelError); ok {
			return nil, ErrTimedOut
		}
	}
	return result, err
}
