package components

import "testing"

func TestCargoModeTransitions(t *testing.T) {
	var c Cargo

	if c.Mode() != ModeForaging {
		t.Fatalf("fresh cargo mode = %v, want Foraging", c.Mode())
	}

	c.PickUp()
	if c.Mode() != ModeReturning {
		t.Fatalf("after PickUp mode = %v, want Returning", c.Mode())
	}

	c.CarryingTime = 40
	c.StartForcedReturn()
	if c.Mode() != ModeForcedReturn {
		t.Fatalf("after StartForcedReturn mode = %v, want ForcedReturn", c.Mode())
	}
	if c.CarryingTime != 0 {
		t.Errorf("carry timer = %v after forced return, want 0", c.CarryingTime)
	}

	c.Deliver()
	if c.Mode() != ModeForaging {
		t.Fatalf("after Deliver mode = %v, want Foraging", c.Mode())
	}
	if c.ForceReturn {
		t.Error("ForceReturn still set after delivery")
	}
}

func TestForcedReturnRequiresCarrying(t *testing.T) {
	var c Cargo
	c.StartForcedReturn()
	if c.ForceReturn {
		t.Error("ForceReturn set without carrying food")
	}
	if c.Mode() != ModeForaging {
		t.Errorf("mode = %v, want Foraging", c.Mode())
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeForaging, "Foraging"},
		{ModeReturning, "Returning"},
		{ModeForcedReturn, "ForcedReturn"},
		{Mode(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
