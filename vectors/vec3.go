// Package vectors holds the ECEF vector math shared by the earth and view
// packages.
package vectors

import "math"

// Vec3 is a simple 3D vector with float64 components.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product v · o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Norm returns the Euclidean length ||v||.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector v / ||v||.
// If ||v|| == 0, it returns the zero vector (0,0,0).
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	inv := 1.0 / n
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Azimuth returns the angle of v in the XY plane, in degrees from +X
// towards +Y. For an ECEF vector this is its geocentric longitude.
func (v Vec3) Azimuth() float64 {
	return math.Atan2(v.Y, v.X) * 180.0 / math.Pi
}

// Array returns the components as [x, y, z], the layout viewers expect.
func (v Vec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Rotate applies Rodrigues' rotation formula: rotate v around the unit axis by deg.
func (v Vec3) Rotate(axis Vec3, deg float64) Vec3 {
	theta := deg * math.Pi / 180.0
	c, s := math.Cos(theta), math.Sin(theta)
	// v*cos + (axis x v)*sin + axis*(axis·v)*(1-cos)
	return v.Scale(c).
		Add(axis.Cross(v).Scale(s)).
		Add(axis.Scale(axis.Dot(v) * (1.0 - c)))
}
