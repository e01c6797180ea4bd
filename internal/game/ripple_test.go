package game

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/rgb"
)

func TestRipple(t *testing.T) {
	tests := []struct {
		name string
		t    uint32
		lit  []int
		dark []int
	}{
		{"hit only at start", 0, []int{0}, []int{1, 2, 3}},
		{"quarter", 125, []int{1, 2, 3, 4}, []int{0, 5}},
		{"half", 250, []int{3, 4, 5, 6}, []int{0, 1, 2, 7}},
		{"late", 499, []int{6, 7, 8, 9}, []int{5, 10}},
		{"ended", 500, nil, []int{0, 7, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, d := range tt.lit {
				if _, ok := Ripple(tt.t, d); !ok {
					t.Errorf("Ripple(%d, %d) lit = false, want true", tt.t, d)
				}
			}
			for _, d := range tt.dark {
				if _, ok := Ripple(tt.t, d); ok {
					t.Errorf("Ripple(%d, %d) lit = true, want false", tt.t, d)
				}
			}
		})
	}
}

func TestRippleColor(t *testing.T) {
	got, _ := Ripple(0, 0)
	if want := (rgb.HSV{H: 0, S: 255, V: 255}).RGB(); got != want {
		t.Errorf("Ripple(0, 0) = %v, want %v", got, want)
	}

	got, _ = Ripple(250, 4)
	if want := (rgb.HSV{H: 128, S: 255, V: 128}).RGB(); got != want {
		t.Errorf("Ripple(250, 4) = %v, want %v", got, want)
	}
}

func TestRippleAt(t *testing.T) {
	if _, ok := RippleAt(250, key.Pos(2, 5), key.Pos(4, 7)); !ok {
		t.Error("RippleAt() distance 4 at t=250 lit = false, want true")
	}
	if _, ok := RippleAt(250, key.Pos(2, 5), key.Pos(2, 6)); ok {
		t.Error("RippleAt() distance 1 at t=250 lit = true, want false")
	}
}

func TestRippleBandProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("lit keys lie in the band around the radius", prop.ForAll(
		func(elapsed uint32, d int) bool {
			_, lit := Ripple(elapsed, d)
			r := int(elapsed * 8 / 500)
			if lit {
				return d >= r-1 && d <= r+2
			}
			return true
		},
		gen.UInt32Range(0, 499),
		gen.IntRange(0, 20),
	))

	properties.Property("band is at least two keys wide once grown", prop.ForAll(
		func(elapsed uint32) bool {
			r := int(elapsed * 8 / 500)
			if r < 2 {
				return true
			}
			lit := 0
			for d := 0; d < 20; d++ {
				if _, ok := Ripple(elapsed, d); ok {
					lit++
				}
			}
			return lit == 4
		},
		gen.UInt32Range(0, 499),
	))

	properties.TestingRun(t)
}

func TestLCGRange(t *testing.T) {
	l := NewLCG(1)
	seen := make(map[int]bool)
	for n := 0; n < 1000; n++ {
		v := l.Intn(8)
		if v < 0 || v >= 8 {
			t.Fatalf("Intn(8) = %d, want [0, 8)", v)
		}
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Errorf("Intn(8) produced %d distinct values, want 8", len(seen))
	}
}
