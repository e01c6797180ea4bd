package timer

import "testing"

func TestMillisReached(t *testing.T) {
	tests := []struct {
		name     string
		now      Millis
		deadline Millis
		want     bool
	}{
		{"before", 100, 200, false},
		{"equal", 200, 200, true},
		{"after", 201, 200, true},
		{"wrapped past", 5, 0xFFFFFFF0, true},
		{"wrapped before", 0xFFFFFFF0, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.now.Reached(tt.deadline); got != tt.want {
				t.Errorf("Millis(%d).Reached(%d) = %v, want %v", tt.now, tt.deadline, got, tt.want)
			}
		})
	}
}

func TestMillisPassed(t *testing.T) {
	tests := []struct {
		name     string
		now      Millis
		deadline Millis
		want     bool
	}{
		{"before", 100, 200, false},
		{"equal", 200, 200, false},
		{"after", 201, 200, true},
		{"wrapped past", 5, 0xFFFFFFF0, true},
		{"wrapped equal", 0xFFFFFFF0, 0xFFFFFFF0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.now.Passed(tt.deadline); got != tt.want {
				t.Errorf("Millis(%d).Passed(%d) = %v, want %v", tt.now, tt.deadline, got, tt.want)
			}
		})
	}
}

func TestMillisSinceWraps(t *testing.T) {
	start := Millis(0xFFFFFF00)
	now := start.Add(0x200)
	if got := now.Since(start); got != 0x200 {
		t.Errorf("Since() = %d, want %d", got, 0x200)
	}
}

func TestManualClock(t *testing.T) {
	c := NewManual(10)
	if c.Now() != 10 {
		t.Errorf("Now() = %d, want 10", c.Now())
	}
	if got := c.Advance(15); got != 25 {
		t.Errorf("Advance(15) = %d, want 25", got)
	}
	if got := Elapsed(c, 5); got != 20 {
		t.Errorf("Elapsed() = %d, want 20", got)
	}
	c.Set(3)
	if c.Now() != 3 {
		t.Errorf("Now() after Set = %d, want 3", c.Now())
	}
}
