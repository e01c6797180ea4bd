package game

import (
	"testing"

	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/timer"
)

func testTargets() []Target {
	return []Target{
		{Code: key.KeyA, Pos: key.Pos(3, 1)},
		{Code: key.KeyS, Pos: key.Pos(3, 2)},
		{Code: key.KeyD, Pos: key.Pos(3, 3)},
		{Code: key.KeyF1, Pos: key.Pos(0, 1)},
	}
}

func newTestGame(values ...int) *Game {
	g := New(WithRandom(&Sequence{Values: values}))
	g.SetTargets(testTargets())
	return g
}

func TestSetTargetsFiltersAllowList(t *testing.T) {
	g := newTestGame()
	for _, target := range g.Targets() {
		if target.Code == key.KeyF1 {
			t.Errorf("Targets() contains KC_F1, want allow-listed keys only")
		}
	}
	if got := len(g.Targets()); got != 3 {
		t.Errorf("len(Targets()) = %d, want 3", got)
	}
}

func TestAllowList(t *testing.T) {
	g := New()
	if len(AllowList) != 51 {
		t.Errorf("len(AllowList) = %d, want 51", len(AllowList))
	}

	tests := []struct {
		code key.Code
		want bool
	}{
		{key.KeyA, true},
		{key.KeyGrave, true},
		{key.KeyBackspace, true},
		{key.KeyEnter, true},
		{key.KeySpace, true},
		{key.KeyEscape, false},
		{key.KeyF5, false},
		{key.KeyLeftShift, false},
		{key.KeyCapsLock, false},
		{key.KeyUp, false},
	}
	for _, tt := range tests {
		if got := g.Allowed(tt.code); got != tt.want {
			t.Errorf("Allowed(%v) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestStartPicksTarget(t *testing.T) {
	// target index, color index, deadline offset
	g := newTestGame(1, 4, 250)
	g.Start(100)

	s := g.State()
	if !s.Active {
		t.Fatal("Active = false after Start")
	}
	if s.Target.Code != key.KeyS {
		t.Errorf("Target = %v, want KC_S", s.Target.Code)
	}
	if s.Color != Colors[4] {
		t.Errorf("Color = %v, want %v", s.Color, Colors[4])
	}
	if s.Deadline != 100+1250 {
		t.Errorf("Deadline = %d, want 1350", s.Deadline)
	}
}

func TestDeadlineRange(t *testing.T) {
	g := New(WithRandom(NewLCG(42)))
	g.SetTargets(testTargets())
	now := timer.Millis(0)
	g.Start(now)
	for n := 0; n < 500; n++ {
		d := g.State().Deadline.Since(now)
		if d < MinRetarget || d >= MaxRetarget {
			t.Fatalf("deadline offset = %d, want [%d, %d)", d, MinRetarget, MaxRetarget)
		}
		now = g.State().Deadline
		g.Tick(now)
	}
}

func TestTickRetargetsAtDeadline(t *testing.T) {
	g := newTestGame(0, 0, 0, 2, 1, 0)
	g.Start(0)

	g.Tick(999)
	if got := g.State().Target.Code; got != key.KeyA {
		t.Fatalf("Target before deadline = %v, want KC_A", got)
	}
	g.Tick(1000)
	if got := g.State().Target.Code; got != key.KeyD {
		t.Errorf("Target after deadline = %v, want KC_D", got)
	}
}

func TestPressHit(t *testing.T) {
	g := newTestGame(0, 0, 0, 1, 0, 0)
	g.Start(0)

	if !g.Press(key.KeyA, key.Pos(3, 1), 300) {
		t.Fatal("Press(target) consumed = false, want true")
	}
	s := g.State()
	if !s.Celebrating || s.HitPos != key.Pos(3, 1) || s.HitStart != 300 || s.CelebrationEnd != 800 {
		t.Errorf("State() = %+v, want celebration at 3,1 from 300 to 800", s)
	}
	if s.Target.Code != key.KeyS {
		t.Errorf("Target after hit = %v, want immediate retarget to KC_S", s.Target.Code)
	}
	if s.Hits != 1 {
		t.Errorf("Hits = %d, want 1", s.Hits)
	}

	if elapsed, ok := g.Celebration(550); !ok || elapsed != 250 {
		t.Errorf("Celebration(550) = %d, %v, want 250, true", elapsed, ok)
	}
	g.Tick(800)
	if _, ok := g.Celebration(800); ok {
		t.Error("Celebration(800) = true, want ended")
	}
}

func TestPressMissConsumedSilently(t *testing.T) {
	g := newTestGame(0, 0, 0)
	g.Start(0)
	before := g.State()

	if !g.Press(key.KeyQ, key.Pos(2, 1), 100) {
		t.Error("Press(wrong allowed key) consumed = false, want true")
	}
	after := g.State()
	if after != before {
		t.Errorf("State() changed on miss: %+v -> %+v", before, after)
	}
}

func TestPressOutsideAllowList(t *testing.T) {
	g := newTestGame(0, 0, 0)
	g.Start(0)
	before := g.State()

	if g.Press(key.KeyF5, key.Pos(0, 5), 100) {
		t.Error("Press(F5) consumed = true, want false")
	}
	if g.State() != before {
		t.Error("State() changed on non-allow-listed press")
	}
}

func TestInactiveIgnoresPresses(t *testing.T) {
	g := newTestGame()
	if g.Press(key.KeyA, key.Pos(3, 1), 0) {
		t.Error("Press() while inactive consumed = true, want false")
	}
}

func TestRestartResetsState(t *testing.T) {
	g := newTestGame(0, 0, 0)
	g.Start(0)
	g.Press(key.KeyA, key.Pos(3, 1), 100)
	g.Stop()
	if g.Active() {
		t.Fatal("Active() after Stop = true")
	}

	g.Start(5000)
	s := g.State()
	if s.Celebrating || s.Hits != 0 {
		t.Errorf("State() after restart = %+v, want fresh state", s)
	}
}
