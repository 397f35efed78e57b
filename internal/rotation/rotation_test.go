package rotation

import (
	"math"
	"testing"

	"github.com/verte-zerg/tagcloud/internal/model"
)

func TestAnglesEvenlySpaced(t *testing.T) {
	got := Angles(model.RotationSettings{Probability: 1, Min: -math.Pi / 2, Max: math.Pi / 2, Steps: 3})
	want := []float64{-math.Pi / 2, 0, math.Pi / 2}
	if len(got) != len(want) {
		t.Fatalf("expected %d angles, got %v", len(want), got)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("angle %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if Angles(model.RotationSettings{Steps: 0}) != nil {
		t.Fatalf("expected continuous rotation for zero steps")
	}
	if one := Angles(model.RotationSettings{Min: 0.5, Max: 1, Steps: 1}); len(one) != 1 || one[0] != 0.5 {
		t.Fatalf("expected single min angle, got %v", one)
	}
}

func TestNormalizeClampsAndOrders(t *testing.T) {
	s := Normalize(model.RotationSettings{Probability: 3, Min: 5, Max: -5, Steps: -2})
	if s.Probability != 1 || s.Min != -math.Pi || s.Max != math.Pi || s.Steps != 0 {
		t.Fatalf("unexpected normalized settings %+v", s)
	}
}

func TestZeroProbabilityNeverRotates(t *testing.T) {
	c := New(model.RotationSettings{Probability: 0, Min: -1, Max: 1}, 1)
	for i := 0; i < 100; i++ {
		if c.Next() != 0 {
			t.Fatalf("expected no rotation")
		}
	}
}

func TestChooserStaysInRangeAndIsSeeded(t *testing.T) {
	s := model.RotationSettings{Probability: 1, Min: -0.5, Max: 0.25}
	a := New(s, 99)
	b := New(s, 99)
	for i := 0; i < 200; i++ {
		x, y := a.Next(), b.Next()
		if x != y {
			t.Fatalf("draw %d differs for same seed", i)
		}
		if x < -0.5 || x > 0.25 {
			t.Fatalf("angle %v outside range", x)
		}
	}
}

func TestChooserDiscrete(t *testing.T) {
	c := New(model.RotationSettings{Probability: 1, Min: 0, Max: math.Pi / 2, Steps: 2}, 5)
	for i := 0; i < 50; i++ {
		v := c.Next()
		if v != 0 && v != math.Pi/2 {
			t.Fatalf("unexpected angle %v", v)
		}
	}
}
