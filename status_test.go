package eventio

import "testing"

// TestStatus_String tests Status's String method across every value,
// including an out-of-range one.
func TestStatus_String(t *testing.T) {
	tests := []struct {
		name string
		s    Status
		want string
	}{
		{name: "active", s: StatusActive, want: "Active"},
		{name: "cancel pending", s: StatusCancelPending, want: "CancelPending"},
		{name: "timeout pending", s: StatusTimeoutPending, want: "TimeoutPending"},
		{name: "cancelled", s: StatusCancelled, want: "Cancelled"},
		{name: "terminated", s: StatusTerminated, want: "Terminated"},
		{name: "out of range", s: Status(255), want: "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestStatus_Terminal tests which statuses count as terminal.
func TestStatus_Terminal(t *testing.T) {
	tests := []struct {
		s    Status
		want bool
	}{
		{StatusActive, false},
		{StatusCancelPending, false},
		{StatusTimeoutPending, false},
		{StatusCancelled, true},
		{StatusTerminated, true},
	}
	for _, tt := range tests {
		if got := tt.s.Terminal(); got != tt.want {
			t.Errorf("%v.Terminal() = %v, want %v", tt.s, got, tt.want)
		}
	}
}
