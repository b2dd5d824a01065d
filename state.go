package eventio

import (
	"sync/atomic"
)

// runState represents the current lifecycle state of a Kernel.
//
// State Machine:
//
//	stateIdle (0) → stateRunning (1)      [Run()]
//	stateRunning (1) → stateTerminated (2) [run loop returns]
//
// There is no separate "sleeping" state: a kernel with an empty ready queue
// and a non-empty wait queue deep-sleeps via the injected Clock from inside
// stateRunning, it does not transition out of it.
type runState uint32

const (
	stateIdle runState = iota
	stateRunning
	stateTerminated
)

func (s runState) String() string {
	switch s {
	case stateIdle:
		return "Idle"
	case stateRunning:
		return "Running"
	case stateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// fastState is a lock-free state machine with cache-line padding, used for
// the kernel's single run-lifetime guard.
type fastState struct { //nolint:govet // betteralign:ignore
	_ [64]byte // cache line padding (before value) //nolint:unused
	v atomic.Uint32
	_ [60]byte // pad to complete cache line //nolint:unused
}

func newFastState() *fastState {
	s := &fastState{}
	s.v.Store(uint32(stateIdle))
	return s
}

func (s *fastState) Load() runState {
	return runState(s.v.Load())
}

func (s *fastState) Store(state runState) {
	s.v.Store(uint32(state))
}

// TryTransition attempts to atomically transition from one state to another.
func (s *fastState) TryTransition(from, to runState) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}

func (s *fastState) IsRunning() bool {
	return s.Load() == stateRunning
}
