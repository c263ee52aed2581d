package vectors

import (
	"math"
	"testing"
)

func near(a, b Vec3) bool {
	const eps = 1e-12
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestRotate(t *testing.T) {
	x, y, z := Vec3{X: 1}, Vec3{Y: 1}, Vec3{Z: 1}
	tests := []struct {
		name string
		v    Vec3
		axis Vec3
		deg  float64
		want Vec3
	}{
		{"x about z by 90", x, z, 90, y},
		{"x about z by -90", x, z, -90, Vec3{Y: -1}},
		{"y about x by 90", y, x, 90, z},
		{"axis is fixed", z, z, 37, z},
		{"full turn", Vec3{X: 1, Y: 2, Z: 3}, y, 360, Vec3{X: 1, Y: 2, Z: 3}},
	}
	for _, tt := range tests {
		if got := tt.v.Rotate(tt.axis, tt.deg); !near(got, tt.want) {
			t.Errorf("%s: got %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestCrossAndNormalize(t *testing.T) {
	if got := (Vec3{X: 1}).Cross(Vec3{Y: 1}); got != (Vec3{Z: 1}) {
		t.Errorf("x × y = %+v, want z", got)
	}
	if got := (Vec3{X: 3, Y: 4}).Normalize(); !near(got, Vec3{X: 0.6, Y: 0.8}) {
		t.Errorf("Normalize = %+v", got)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize(0) = %+v, want 0", got)
	}
}

func TestAzimuthAndArray(t *testing.T) {
	if got := (Vec3{X: -1}).Azimuth(); math.Abs(got-180) > 1e-12 {
		t.Errorf("Azimuth(-x) = %v, want 180", got)
	}
	if got := (Vec3{Y: -2}).Azimuth(); math.Abs(got+90) > 1e-12 {
		t.Errorf("Azimuth(-y) = %v, want -90", got)
	}
	if got := (Vec3{X: 1, Y: 2, Z: 3}).Array(); got != [3]float64{1, 2, 3} {
		t.Errorf("Array = %v", got)
	}
}
