// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package eventio provides a cooperative, single-threaded task kernel for
// resource-constrained control systems.
//
// # Architecture
//
// One goroutine, [Run]'s caller, runs the kernel's dispatch loop.
// Tasks are plain functions of the shape func(*Ctx) (any, error); each is
// given its own goroutine, but that goroutine only ever runs between a
// resume handed to it by the kernel and the next suspension point it
// reaches, so exactly one task body executes at a time. A suspension point
// is a call such as [Ctx.Sleep], [Ctx.Spawn], [Task.Join], [Task.Cancel] or
// [Event.Wait], which hands the kernel a [Trap] closure describing what to do
// before the task may run again. [Ctx.GetKernel] and [Ctx.CurrentTask] do
// not suspend.
//
// This is the idiomatic-Go substitute for the generator-based coroutines of
// the system this kernel's protocol is modeled on: a real generator yields a
// trap value and is resumed in place; a goroutine cannot be resumed in
// place, so it blocks on a rendezvous channel instead and is released by
// exactly one send per resumption.
//
// # Scheduling
//
// The kernel keeps two queues: a bounded ready queue (FIFO, [readyQueue])
// and a bounded wait queue (wake-time-ordered min-heap, [waitQueue]). Every
// tick moves due tasks from the wait queue to the ready queue, then runs
// every task currently on the ready queue exactly once. When nothing is
// ready but timed waits are pending, the kernel deep-sleeps via the
// injected [Clock] until the earliest wake time; once both queues are
// empty, [Run] returns.
//
// # Thread Safety
//
// [Kernel.Schedule] (used to wake a task from outside the dispatch
// goroutine, e.g. a [PinEvent] interrupt callback) is safe to call from any
// goroutine; it is the only kernel entry point meant to be called off the
// dispatch goroutine. Every [Ctx] method must only be called from within the
// task goroutine it was handed to.
//
// # Usage
//
//	err := eventio.Run(context.Background(), func(c *eventio.Ctx) (any, error) {
//	    for i := 3; i > 0; i-- {
//	        fmt.Println(i)
//	        c.Sleep(1)
//	    }
//	    fmt.Println("liftoff")
//	    return nil, nil
//	})
//
// # Error Types
//
// [CancelledError] and [TimeoutSentinelError] are in-task signals delivered
// by panic at the next suspension point. [ErrKernelNotRunning],
// [ErrKernelAlreadyRunning], [ErrInvalidDelay], and [ErrTaskNotTerminated]
// are returned or panicked synchronously to a misused API.
// [ErrJoinCancelled] is the error [Task.Join] and [Task.Result] return for a
// cancelled task. All satisfy [errors.Is]/[errors.As] via Unwrap where they
// wrap a cause.
package eventio
