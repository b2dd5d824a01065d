package eventio

import (
	"testing"
)

// TestLoadAverage_BoundedZeroToHundred verifies LoadAverage stays within
// its percentage bounds at every sample point during a run.
func TestLoadAverage_BoundedZeroToHundred(t *testing.T) {
	clock := NewSimClock()
	var samples []float64
	err := runWithDeadline(t, func(c *Ctx) (any, error) {
		for i := 0; i < 5; i++ {
			samples = append(samples, c.GetKernel().LoadAverage())
			c.Sleep(0.5)
		}
		return nil, nil
	}, WithClock(clock))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(samples) == 0 {
		t.Fatal("no samples collected")
	}
	for i, s := range samples {
		if s < 0 || s > 100 {
			t.Errorf("sample %d: LoadAverage() = %v, want in [0, 100]", i, s)
		}
	}
}

// TestLoadAverage_ApproachesZeroOnPureSleep verifies a run that does
// nothing but sleep reports a load average at or near zero: all the elapsed
// time was spent deep-sleeping, not running tasks.
func TestLoadAverage_ApproachesZeroOnPureSleep(t *testing.T) {
	var finalLoad float64
	err := runWithDeadline(t, func(c *Ctx) (any, error) {
		c.Sleep(100) // one long sleep, dispatch overhead is negligible by comparison
		finalLoad = c.GetKernel().LoadAverage()
		return nil, nil
	}, WithClock(NewSimClock()))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if finalLoad > 5 {
		t.Errorf("LoadAverage() after pure sleep = %v%%, want near 0", finalLoad)
	}
}

// TestLoadAverage_ZeroBeforeAnyElapsedTime verifies LoadAverage does not
// divide by zero when uptime itself is zero.
func TestLoadAverage_ZeroBeforeAnyElapsedTime(t *testing.T) {
	clock := NewSimClock()
	k := &Kernel{
		clock:   clock,
		uptime:  NewChronometer(clock),
		working: NewChronometer(clock),
	}
	if got := k.LoadAverage(); got != 0 {
		t.Errorf("LoadAverage() with zero uptime = %v, want 0", got)
	}
}
