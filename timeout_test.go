package eventio

import (
	"errors"
	"testing"
)

// TestTimeoutAfter_CompletesBeforeDeadline verifies that when fn finishes
// before the deadline, TimeoutAfter returns fn's own result.
func TestTimeoutAfter_CompletesBeforeDeadline(t *testing.T) {
	var result any
	var gotErr error
	err := runWithDeadline(t, func(c *Ctx) (any, error) {
		result, gotErr = TimeoutAfter(c, 1.0, func(inner *Ctx) (any, error) {
			inner.Sleep(0.1)
			return 7, nil
		})
		return nil, nil
	}, WithClock(NewSimClock()))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if gotErr != nil {
		t.Errorf("TimeoutAfter error = %v, want nil", gotErr)
	}
	if result != 7 {
		t.Errorf("TimeoutAfter result = %v, want 7", result)
	}
}

// TestTimeoutAfter_DeadlineFires verifies a deadline firing
// before fn completes returns (nil, ErrTimedOut), distinct from whatever
// fn would eventually have returned.
func TestTimeoutAfter_DeadlineFires(t *testing.T) {
	var result any
	var gotErr error
	clock := NewSimClock()
	err := runWithDeadline(t, func(c *Ctx) (any, error) {
		result, gotErr = TimeoutAfter(c, 0.2, func(inner *Ctx) (any, error) {
			inner.Sleep(1)
			return 42, nil
		})
		return nil, nil
	}, WithClock(clock))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !errors.Is(gotErr, ErrTimedOut) {
		t.Errorf("TimeoutAfter error = %v, want ErrTimedOut", gotErr)
	}
	if result != nil {
		t.Errorf("TimeoutAfter result = %v, want nil (not fn's 42)", result)
	}
}

// TestTimeoutAfter_PropagatesBodyError verifies a non-cancellation error
// from fn surfaces through TimeoutAfter unchanged when the deadline never
// fires.
func TestTimeoutAfter_PropagatesBodyError(t *testing.T) {
	boom := errors.New("boom")
	var gotErr error
	err := runWithDeadline(t, func(c *Ctx) (any, error) {
		_, gotErr = TimeoutAfter(c, 10, func(inner *Ctx) (any, error) {
			return nil, boom
		})
		return nil, nil
	}, WithClock(NewSimClock()))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !errors.Is(gotErr, boom) {
		t.Errorf("TimeoutAfter error = %v, want %v", gotErr, boom)
	}
}

// TestTimeoutAfter_RejectsNegativeDelay verifies the same delay validation
// as Sleep applies to TimeoutAfter's own seconds argument, here for a
// negative delay.
func TestTimeoutAfter_RejectsNegativeDelay(t *testing.T) {
	var paniced bool
	err := runWithDeadline(t, func(c *Ctx) (any, error) {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(*TypeError); ok {
					paniced = true
				}
			}
		}()
		_, _ = TimeoutAfter(c, -1, func(*Ctx) (any, error) { return nil, nil })
		return nil, nil
	}, WithClock(NewSimClock()))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !paniced {
		t.Error("TimeoutAfter with negative delay did not panic with *TypeError")
	}
}
