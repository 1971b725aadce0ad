package compositor

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if !m.IsIdentity() {
		t.Errorf("Identity().IsIdentity() = false, want true")
	}

	x, y := m.Apply(3.5, -2.25)
	if x != 3.5 || y != -2.25 {
		t.Errorf("Identity().Apply(3.5, -2.25) = (%v, %v), want (3.5, -2.25)", x, y)
	}
}

func TestMatrix_IsIdentity(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"translate", Translate(1, 0), false},
		{"scale", Scale(2, 2), false},
		{"rotate", Rotate(math.Pi / 4), false},
		{"near identity", Matrix{A: 1, B: 1e-12, C: 0, D: 0, E: 1, F: -1e-12}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsIdentity(); got != tt.want {
				t.Errorf("Matrix%+v.IsIdentity() = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestMatrix_Apply(t *testing.T) {
	tests := []struct {
		name    string
		m       Matrix
		x, y    float64
		wantX   float64
		wantY   float64
		epsilon float64
	}{
		{"translate", Translate(10, -5), 2, 3, 12, -2, 0},
		{"scale", Scale(2, 0.5), 4, 8, 8, 4, 0},
		{"rotate 90", Rotate(math.Pi / 2), 1, 0, 0, 1, 1e-12},
		{"rotate 180", Rotate(math.Pi), 1, 2, -1, -2, 1e-12},
		{"origin unmoved by scale", Scale(7, 7), 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := tt.m.Apply(tt.x, tt.y)
			if math.Abs(gotX-tt.wantX) > tt.epsilon || math.Abs(gotY-tt.wantY) > tt.epsilon {
				t.Errorf("Apply(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestMatrix_Multiply(t *testing.T) {
	// Multiply is matrix composition, so the argument applies to the
	// point first and the receiver second.
	m := Translate(5, 0).Multiply(Scale(2, 2))

	x, y := m.Apply(1, 1)
	if x != 7 || y != 2 {
		t.Errorf("scale-then-translate Apply(1, 1) = (%v, %v), want (7, 2)", x, y)
	}

	// Reversed order gives a different result.
	m2 := Scale(2, 2).Multiply(Translate(5, 0))
	x2, y2 := m2.Apply(1, 1)
	if x2 != 12 || y2 != 2 {
		t.Errorf("translate-then-scale Apply(1, 1) = (%v, %v), want (12, 2)", x2, y2)
	}
}

func TestMatrix_MultiplyIdentity(t *testing.T) {
	m := Rotate(0.3).Multiply(Translate(2, 4))

	if got := m.Multiply(Identity()); got != m {
		t.Errorf("m.Multiply(Identity()) = %+v, want %+v", got, m)
	}
	if got := Identity().Multiply(m); got != m {
		t.Errorf("Identity().Multiply(m) = %+v, want %+v", got, m)
	}
}

func TestMatrix_Invert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translate", Translate(13, -7)},
		{"scale", Scale(3, 0.25)},
		{"rotate", Rotate(1.1)},
		{"composed", Translate(4, 2).Multiply(Rotate(0.6)).Multiply(Scale(2, 5))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := tt.m.Invert()
			roundTrip := tt.m.Multiply(inv)

			x, y := roundTrip.Apply(3, -8)
			if math.Abs(x-3) > 1e-9 || math.Abs(y+8) > 1e-9 {
				t.Errorf("m.Multiply(m.Invert()).Apply(3, -8) = (%v, %v), want (3, -8)", x, y)
			}
		})
	}
}

func TestMatrix_InvertSingular(t *testing.T) {
	// Zero-determinant matrices cannot be inverted; the fallback is identity
	// so downstream transforms stay usable.
	singular := Matrix{A: 2, B: 4, C: 1, D: 1, E: 2, F: 0}
	if got := singular.Invert(); !got.IsIdentity() {
		t.Errorf("singular.Invert() = %+v, want identity", got)
	}

	if got := Scale(0, 5).Invert(); !got.IsIdentity() {
		t.Errorf("Scale(0, 5).Invert() = %+v, want identity", got)
	}
}

func TestMatrix_TransformRegion(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Region
		want Region
	}{
		{"identity", Identity(), Rect(2, 3, 10, 12), Rect(2, 3, 10, 12)},
		{"translate", Translate(5, -2), Rect(0, 0, 4, 4), Rect(5, -2, 9, 2)},
		{"scale", Scale(2, 3), Rect(1, 1, 3, 3), Rect(2, 3, 6, 9)},
		{"mirror", Scale(-1, 1), Rect(1, 2, 5, 6), Rect(-5, 2, -1, 6)},
		{"empty in", Identity(), Region{}, Region{}},
		{"empty stays empty under transform", Scale(10, 10), Region{}, Region{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformRegion(tt.in); got != tt.want {
				t.Errorf("Matrix%+v.TransformRegion(%v) = %v, want %v", tt.m, tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrix_TransformRegionCoversRotatedCorners(t *testing.T) {
	// A 45 degree rotation of a square must produce a bounding box that
	// contains every transformed corner.
	m := Rotate(math.Pi / 4)
	in := Rect(0, 0, 10, 10)
	got := m.TransformRegion(in)

	corners := [][2]float64{{0, 0}, {10, 0}, {0, 10}, {10, 10}}
	for _, c := range corners {
		x, y := m.Apply(c[0], c[1])
		if x < float64(got.MinX) || x > float64(got.MaxX) || y < float64(got.MinY) || y > float64(got.MaxY) {
			t.Errorf("corner (%v, %v) maps to (%v, %v) outside %v", c[0], c[1], x, y, got)
		}
	}
}
