package geometry

import "math"

// Quat is a rotation quaternion w + xi + yj + zk. Orientation state is
// always kept at unit norm; only unit quaternions represent rotations.
type Quat struct {
	W float64 `json:"w" yaml:"w"`
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Identity returns the identity rotation.
func Identity() Quat {
	return Quat{W: 1}
}

// FromAngleAxis returns the unit quaternion rotating by theta radians
// about axis. A zero axis yields the identity.
func FromAngleAxis(theta float64, axis Vec3) Quat {
	axis = axis.Normalize()
	if axis.IsZero() {
		return Identity()
	}
	half := theta / 2
	s := math.Sin(half)
	return Quat{W: math.Cos(half), X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s}
}

// Mul returns the Hamilton product q ⊗ o. Under the q·v·q⁻¹ rotation
// convention used throughout this package, the right-hand factor is the
// rotation applied first; this convention is fixed here and applied
// uniformly by every caller.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// Conjugate returns the quaternion with the vector part negated. For unit
// quaternions this is the inverse rotation.
func (q Quat) Conjugate() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Inverse returns the multiplicative inverse q⁻¹. The zero quaternion has
// no inverse and returns the identity.
func (q Quat) Inverse() Quat {
	n := q.NormSquared()
	if n == 0 {
		return Identity()
	}
	c := q.Conjugate()
	return Quat{W: c.W / n, X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}

// NormSquared returns the squared norm.
func (q Quat) NormSquared() float64 {
	return q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
}

// Norm returns the quaternion norm.
func (q Quat) Norm() float64 {
	return math.Sqrt(q.NormSquared())
}

// Normalize returns the unit quaternion in the same direction. The zero
// quaternion normalizes to the identity.
func (q Quat) Normalize() Quat {
	n := q.Norm()
	if n == 0 {
		return Identity()
	}
	return Quat{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// IsUnit reports whether the norm deviates from 1 by at most tol.
func (q Quat) IsUnit(tol float64) bool {
	return math.Abs(q.Norm()-1) <= tol
}

// AngleAxis decomposes a unit quaternion into a rotation angle in radians
// and a unit axis. The identity decomposes to a zero angle and zero axis.
func (q Quat) AngleAxis() (float64, Vec3) {
	w := math.Max(-1, math.Min(1, q.W))
	theta := 2 * math.Acos(w)
	s := math.Sqrt(1 - w*w)
	if s < 1e-12 {
		return 0, Vec3{}
	}
	return theta, Vec3{X: q.X / s, Y: q.Y / s, Z: q.Z / s}
}

// Pow returns the fractional rotor q^t: the rotation about the same axis
// with the angle scaled by t. Used to step a per-second spin by a tick
// duration. Pow of the identity is the identity for any t.
func (q Quat) Pow(t float64) Quat {
	theta, axis := q.AngleAxis()
	if axis.IsZero() {
		return Identity()
	}
	return FromAngleAxis(theta*t, axis)
}

// Rotate applies the rotation to v as q·(0,v)·q⁻¹. q must be unit norm.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// InverseRotate applies the inverse rotation, mapping a world-frame vector
// into the frame that q orients.
func (q Quat) InverseRotate(v Vec3) Vec3 {
	return q.Conjugate().Rotate(v)
}

// Facing returns the unit vector the rotation points along, defined as
// north (+Y) rotated by q.
func (q Quat) Facing() Vec3 {
	return q.Rotate(Vec3{Y: 1})
}
