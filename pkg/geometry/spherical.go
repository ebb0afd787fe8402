package geometry

import "math"

// Spherical is a bearing in the navigational convention: Rho is range,
// Theta is elevation in degrees above the horizon in [-90, 90], Phi is
// azimuth in degrees clockwise from north in [-180, 180].
type Spherical struct {
	Rho   float64 `json:"rho" yaml:"rho"`
	Theta float64 `json:"theta" yaml:"theta"`
	Phi   float64 `json:"phi" yaml:"phi"`
}

// Cylindrical is the same bearing flattened onto the horizon plane: Rho is
// horizontal range, Phi is azimuth in degrees clockwise from north, Z is
// height above the plane.
type Cylindrical struct {
	Rho float64 `json:"rho" yaml:"rho"`
	Phi float64 `json:"phi" yaml:"phi"`
	Z   float64 `json:"z" yaml:"z"`
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ToSpherical converts a Cartesian vector to the navigational spherical
// convention. The origin has no direction and maps to all zeros by
// definition, not as an error.
func ToSpherical(v Vec3) Spherical {
	rho := v.Length()
	if rho == 0 {
		return Spherical{}
	}
	sin := math.Max(-1, math.Min(1, v.Z/rho))
	return Spherical{
		Rho:   rho,
		Theta: Degrees(math.Asin(sin)),
		Phi:   Degrees(math.Atan2(v.X, v.Y)),
	}
}

// Cartesian converts the bearing back to a Cartesian vector.
func (s Spherical) Cartesian() Vec3 {
	theta := Radians(s.Theta)
	phi := Radians(s.Phi)
	return Vec3{
		X: s.Rho * math.Cos(theta) * math.Sin(phi),
		Y: s.Rho * math.Cos(theta) * math.Cos(phi),
		Z: s.Rho * math.Sin(theta),
	}
}

// Cylindrical flattens the bearing onto the horizon plane.
func (s Spherical) Cylindrical() Cylindrical {
	theta := Radians(s.Theta)
	return Cylindrical{
		Rho: s.Rho * math.Cos(theta),
		Phi: s.Phi,
		Z:   s.Rho * math.Sin(theta),
	}
}

// ToCylindrical converts a Cartesian vector to cylindrical coordinates.
func ToCylindrical(v Vec3) Cylindrical {
	return ToSpherical(v).Cylindrical()
}

// Cartesian converts the cylindrical bearing back to a Cartesian vector.
func (c Cylindrical) Cartesian() Vec3 {
	phi := Radians(c.Phi)
	return Vec3{
		X: c.Rho * math.Sin(phi),
		Y: c.Rho * math.Cos(phi),
		Z: c.Z,
	}
}
