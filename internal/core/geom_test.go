package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)
	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectIntersect(t *testing.T) {
	screen := NewRect(0, 0, 10, 5)

	tests := []struct {
		name  string
		r     Rect
		want  Rect
		empty bool
	}{
		{"inside", NewRect(2, 1, 3, 2), NewRect(2, 1, 3, 2), false},
		{"overhangs right", NewRect(8, 1, 5, 2), NewRect(8, 1, 2, 2), false},
		{"overhangs top left", NewRect(-3, -2, 5, 4), NewRect(0, 0, 2, 2), false},
		{"covers", NewRect(-1, -1, 20, 20), screen, false},
		{"outside", NewRect(12, 1, 3, 2), Rect{}, true},
		{"touching edge", NewRect(10, 0, 3, 3), Rect{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := screen.Intersect(tc.r)
			if got.Empty() != tc.empty {
				t.Fatalf("Intersect(%+v).Empty() = %v, expected %v", tc.r, got.Empty(), tc.empty)
			}
			if !tc.empty && got != tc.want {
				t.Errorf("Intersect(%+v) = %+v, expected %+v", tc.r, got, tc.want)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.1, 0, 1, 0},
		{1.7, 0, 1, 1},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}
