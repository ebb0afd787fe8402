package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToSpherical_CompassPoints(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec3
		theta float64
		phi   float64
	}{
		{"North", Vec3{Y: 1}, 0, 0},
		{"East", Vec3{X: 1}, 0, 90},
		{"West", Vec3{X: -1}, 0, -90},
		{"Zenith", Vec3{Z: 1}, 90, 0},
		{"Nadir", Vec3{Z: -1}, -90, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ToSpherical(tt.v)
			require.InDelta(t, 1, s.Rho, 1e-12)
			require.InDelta(t, tt.theta, s.Theta, 1e-9)
			require.InDelta(t, tt.phi, s.Phi, 1e-9)
		})
	}
}

func TestToSpherical_Literal(t *testing.T) {
	s := ToSpherical(Vec3{X: 1, Y: 1, Z: 1})
	require.InDelta(t, math.Sqrt(3), s.Rho, 1e-9)
	require.InDelta(t, 35.26439, s.Theta, 1e-4)
	require.InDelta(t, 45, s.Phi, 1e-9)
}

func TestToSpherical_Origin(t *testing.T) {
	s := ToSpherical(Vec3{})
	require.Equal(t, Spherical{}, s)
	require.Equal(t, Vec3{}, s.Cartesian())
}

func TestSpherical_RoundTrip(t *testing.T) {
	vectors := []Vec3{
		{X: 1, Y: 1, Z: 1},
		{X: -3, Y: 0.2, Z: -7},
		{X: 0, Y: -2, Z: 0},
		{X: 1e-3, Y: 1e6, Z: -42},
		{X: 5, Y: -5, Z: 0.001},
		{Z: 12.5},
	}
	for _, v := range vectors {
		got := ToSpherical(v).Cartesian()
		require.InDelta(t, v.X, got.X, 1e-6)
		require.InDelta(t, v.Y, got.Y, 1e-6)
		require.InDelta(t, v.Z, got.Z, 1e-6)
	}
}

func TestSpherical_Ranges(t *testing.T) {
	for _, v := range []Vec3{
		{X: 1, Y: 2, Z: 3}, {X: -1, Y: -2, Z: -3}, {X: 9, Y: -0.1, Z: 0},
	} {
		s := ToSpherical(v)
		require.GreaterOrEqual(t, s.Theta, -90.0)
		require.LessOrEqual(t, s.Theta, 90.0)
		require.GreaterOrEqual(t, s.Phi, -180.0)
		require.LessOrEqual(t, s.Phi, 180.0)
	}
}

func TestCylindrical_RoundTrip(t *testing.T) {
	vectors := []Vec3{
		{X: 1, Y: 1, Z: 1},
		{X: -2, Y: 4, Z: -9},
		{Y: 3},
	}
	for _, v := range vectors {
		c := ToCylindrical(v)
		got := c.Cartesian()
		require.InDelta(t, v.X, got.X, 1e-9)
		require.InDelta(t, v.Y, got.Y, 1e-9)
		require.InDelta(t, v.Z, got.Z, 1e-9)
	}
}

func TestCylindrical_FlattensElevation(t *testing.T) {
	// 45° up at range √2 puts horizontal range and height both at 1.
	c := ToCylindrical(Vec3{Y: 1, Z: 1})
	require.InDelta(t, 1, c.Rho, 1e-12)
	require.InDelta(t, 0, c.Phi, 1e-12)
	require.InDelta(t, 1, c.Z, 1e-12)
}

func TestDegreesRadians(t *testing.T) {
	require.InDelta(t, 180, Degrees(math.Pi), 1e-12)
	require.InDelta(t, math.Pi/2, Radians(90), 1e-12)
}
