package geom

import "testing"

func TestRect_Empty(t *testing.T) {
	cases := []struct {
		name string
		r    Rect
		want bool
	}{
		{"positive area", Rect{Width: 10, Height: 5}, false},
		{"zero width", Rect{Width: 0, Height: 5}, true},
		{"zero height", Rect{Width: 10, Height: 0}, true},
		{"negative width", Rect{Width: -1, Height: 5}, true},
	}
	for _, tc := range cases {
		if got := tc.r.Empty(); got != tc.want {
			t.Errorf("%s: Empty() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRect_Edges(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	if got := r.Right(); got != 110 {
		t.Errorf("Right() = %v, want 110", got)
	}
	if got := r.Bottom(); got != 70 {
		t.Errorf("Bottom() = %v, want 70", got)
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	if !r.Contains(Point{X: 50, Y: 50}) {
		t.Error("expected interior point to be contained")
	}
	if r.Contains(Point{X: 100, Y: 50}) {
		t.Error("right edge is exclusive")
	}
	if r.Contains(Point{X: -1, Y: 50}) {
		t.Error("point left of rect must not be contained")
	}
}

func TestRect_Scaled(t *testing.T) {
	r := Rect{X: 5, Y: 5, Width: 40, Height: 20}
	s := r.Scaled(0.5)
	if s.X != 5 || s.Y != 5 {
		t.Errorf("Scaled must keep origin, got (%v,%v)", s.X, s.Y)
	}
	if s.Width != 20 || s.Height != 10 {
		t.Errorf("Scaled dimensions = %vx%v, want 20x10", s.Width, s.Height)
	}
}
