package transform

import "testing"

func TestSizeMapClamps(t *testing.T) {
	m := SizeMap{A: 1, B: 0, C: 0, Min: 4, Max: 50}
	cases := map[float64]float64{0: 4, 3: 9, 5: 25, 10: 50}
	for in, want := range cases {
		if got := m.Apply(in); got != want {
			t.Fatalf("Apply(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestSizeMapSwapsInvertedLimits(t *testing.T) {
	m := SizeMap{B: 1, Min: 20, Max: 10}
	if got := m.Apply(15); got != 15 {
		t.Fatalf("expected 15, got %v", got)
	}
	if got := m.Apply(1); got != 10 {
		t.Fatalf("expected floor 10, got %v", got)
	}
}

func TestDefaultIsClampedIdentity(t *testing.T) {
	got := Default().ApplyAll([]int{0, 7, 500})
	want := []float64{1, 7, 100}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
