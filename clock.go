package eventio

import "time"

// Clock is the kernel's time source and deep-sleep driver. Implementations
// must return a millisecond counter that may wrap around uint32, the same
// contract a microcontroller's hardware millisecond timer has; use
// wrapDiff, never plain subtraction, to compare two readings.
type Clock interface {
	// NowMS returns the current millisecond reading.
	NowMS() uint32
	// DeepSleep blocks the calling goroutine for approximately d, the way a
	// microcontroller would suspend its CPU between scheduler ticks. d is
	// never negative.
	DeepSleep(d time.Duration)
}

// wrapDiff returns b-a as a signed difference, correct even when the
// uint32 millisecond counter has wrapped between the two readings. It is
// the Go equivalent of the original kernel's ticks_diff.
func wrapDiff(a, b uint32) int32 {
	return int32(b - a)
}

// realClock is the production Clock: time.Now for readings, time.Sleep for
// deep sleep.
type realClock struct {
	epoch time.Time
}

// NewRealClock returns a Clock backed by the real wall clock.
func NewRealClock() Clock {
	return &realClock{epoch: time.Now()}
}

func (c *realClock) NowMS() uint32 {
	return uint32(time.Since(c.epoch).Milliseconds())
}

func (c *realClock) DeepSleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// SimClock is a manually-advanced Clock for deterministic tests. DeepSleep
// advances the clock by the requested duration instead of blocking, so a
// test can drive an entire scenario (e.g. a task sleeping for simulated
// hours) without waiting in real time.
type SimClock struct {
	nowMS uint32
}

// NewSimClock returns a SimClock starting at millisecond 0.
func NewSimClock() *SimClock {
	return &SimClock{}
}

func (c *SimClock) NowMS() uint32 {
	return c.nowMS
}

func (c *SimClock) DeepSleep(d time.Duration) {
	c.Advance(d)
}

// Advance moves the simulated clock forward by d.
func (c *SimClock) Advance(d time.Duration) {
	c.nowMS += uint32(d.Milliseconds())
}

// Chronometer accumulates elapsed time across start/stop cycles, used by
// the kernel to track both wall-clock uptime and time spent actually
// running tasks (as opposed to deep-sleeping) for LoadAverage.
type Chronometer struct {
	clock     Clock
	running   bool
	startedAt uint32
	total     uint32
}

// NewChronometer returns a stopped Chronometer reading from clock.
func NewChronometer(clock Clock) *Chronometer {
	return &Chronometer{clock: clock}
}

// Start begins accumulating elapsed time from now. A no-op if already
// running.
func (c *Chronometer) Start() {
	if c.running {
		return
	}
	c.running = true
	c.startedAt = c.clock.NowMS()
}

// Stop ends the current accumulation period, folding it into the total. A
// no-op if not running.
func (c *Chronometer) Stop() {
	if !c.running {
		return
	}
	c.running = false
	c.total += uint32(wrapDiff(c.startedAt, c.clock.NowMS()))
}

// ElapsedMS returns the total accumulated time in milliseconds, including
// any in-progress run.
func (c *Chronometer) ElapsedMS() uint32 {
	total := c.total
	if c.running {
		total += uint32(wrapDiff(c.startedAt, c.clock.NowMS()))
	}
	return total
}

// Reset zeroes the accumulated total. If running, the current period
// restarts from now.
func (c *Chronometer) Reset() {
	c.total = 0
	if c.running {
		c.startedAt = c.clock.NowMS()
	}
}
