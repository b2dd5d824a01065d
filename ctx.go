package eventio

import "fmt"

// Ctx is the task-side handle into the kernel, passed to every task
// function. A Ctx must only be used from the task goroutine it was created
// for.
type Ctx struct {
	k    *Kernel
	task *Task
}

// GetKernel returns the kernel this task is running under.
func (c *Ctx) GetKernel() *Kernel { return c.k }

// CurrentTask returns the Task handle for the calling task.
func (c *Ctx) CurrentTask() *Task { return c.task }

// suspend is the one mechanism every trap-protocol operation goes through:
// hand the kernel a Trap closure, then block until the kernel resumes this
// task. If the resume carries a signal (cancellation or timeout), suspend
// panics with it rather than returning normally.
func (c *Ctx) suspend(trap Trap) any {
	c.task.trapCh <- trap
	msg := <-c.task.resumeCh
	if msg.signal != nil {
		panic(msg.signal)
	}
	return msg.arg
}

// maxSleepSeconds bounds Sleep's delay to what a 32-bit millisecond counter
// can represent without ambiguity from wraparound.
const maxSleepSeconds = 1e6

// Sleep suspends the calling task until at least seconds have elapsed.
// Panics with a *TypeError if seconds is negative or exceeds the 32-bit
// millisecond horizon (1e6 seconds).
func (c *Ctx) Sleep(seconds float64) {
	if seconds < 0 || seconds > maxSleepSeconds {
		panic(&TypeError{Message: "eventio: sleep delay out of range [0, 1e6] seconds", Cause: ErrInvalidDelay})
	}
	c.suspend(func(k *Kernel) {
		wakeAt := k.clock.NowMS() + uint32(seconds*1000+0.5)
		if err := k.wait.Put(c.task, wakeAt); err != nil {
			k.logger.Warn("wait queue full, rescheduling immediately", "task", c.task.name)
			k.readyPut(c.task)
		}
	})
}

// Spawn creates a new task running fn and returns its handle once the
// kernel has registered it. The calling task is rescheduled to continue
// immediately afterwards; Spawn does not wait for the child to run.
func (c *Ctx) Spawn(fn func(*Ctx) (any, error)) *Task {
	return c.SpawnNamed(fmt.Sprintf("task-%d", c.k.nextTaskID()), fn)
}

// SpawnNamed is like Spawn but assigns the child task the given diagnostic
// name instead of an auto-generated one.
func (c *Ctx) SpawnNamed(name string, fn func(*Ctx) (any, error)) *Task {
	child := newTask(c.k, name, fn)
	c.suspend(func(k *Kernel) {
		k.registerTask(child)
		k.readyPut(child)
		k.readyPut(c.task)
	})
	return child
}
