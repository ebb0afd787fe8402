package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireQuatInDelta(t *testing.T, want, got Quat, delta float64) {
	t.Helper()
	require.InDelta(t, want.W, got.W, delta)
	require.InDelta(t, want.X, got.X, delta)
	require.InDelta(t, want.Y, got.Y, delta)
	require.InDelta(t, want.Z, got.Z, delta)
}

func requireVecInDelta(t *testing.T, want, got Vec3, delta float64) {
	t.Helper()
	require.InDelta(t, want.X, got.X, delta)
	require.InDelta(t, want.Y, got.Y, delta)
	require.InDelta(t, want.Z, got.Z, delta)
}

func TestQuat_ConjugateIsInverse(t *testing.T) {
	rotors := []Quat{
		Identity(),
		FromAngleAxis(math.Pi/2, Vec3{Z: 1}),
		FromAngleAxis(1.3, Vec3{X: 1, Y: -2, Z: 0.5}),
		FromAngleAxis(-2.7, Vec3{X: 0.1, Y: 0.1, Z: 0.9}),
		FromAngleAxis(3*math.Pi/4, Vec3{Y: 1}),
	}
	for _, q := range rotors {
		got := q.Mul(q.Conjugate()).Normalize()
		requireQuatInDelta(t, Identity(), got, 1e-9)
	}
}

func TestQuat_MulConvention(t *testing.T) {
	// The right-hand factor applies first: rotating +X by 90° about Z and
	// then 90° about the new composition axis must equal the single
	// combined rotor applied as left⊗right.
	aboutZ := FromAngleAxis(math.Pi/2, Vec3{Z: 1})
	aboutX := FromAngleAxis(math.Pi/2, Vec3{X: 1})

	v := Vec3{X: 1}
	stepwise := aboutX.Rotate(aboutZ.Rotate(v))
	combined := aboutX.Mul(aboutZ).Rotate(v)
	requireVecInDelta(t, stepwise, combined, 1e-12)
}

func TestQuat_Rotate(t *testing.T) {
	quarter := FromAngleAxis(math.Pi/2, Vec3{Z: 1})

	// Right-handed: +90° about Z carries +X to +Y and +Y to -X.
	requireVecInDelta(t, Vec3{Y: 1}, quarter.Rotate(Vec3{X: 1}), 1e-12)
	requireVecInDelta(t, Vec3{X: -1}, quarter.Rotate(Vec3{Y: 1}), 1e-12)

	// The inverse rotation undoes it.
	v := Vec3{X: 0.3, Y: -1.2, Z: 4}
	requireVecInDelta(t, v, quarter.InverseRotate(quarter.Rotate(v)), 1e-12)
}

func TestQuat_Pow(t *testing.T) {
	t.Run("Half Angle", func(t *testing.T) {
		q := FromAngleAxis(math.Pi/2, Vec3{Z: 1})
		requireQuatInDelta(t, FromAngleAxis(math.Pi/4, Vec3{Z: 1}), q.Pow(0.5), 1e-12)
	})

	t.Run("Additivity", func(t *testing.T) {
		q := FromAngleAxis(0.8, Vec3{X: 1, Y: 1})
		split := q.Pow(0.3).Mul(q.Pow(0.7))
		requireQuatInDelta(t, q, split, 1e-12)
	})

	t.Run("Identity Spin", func(t *testing.T) {
		require.Equal(t, Identity(), Identity().Pow(0.25))
		require.Equal(t, Identity(), Identity().Pow(0))
	})
}

func TestQuat_NormalizeAndTolerance(t *testing.T) {
	q := Quat{W: 2}
	require.False(t, q.IsUnit(1e-6))
	require.Equal(t, Identity(), q.Normalize())
	require.Equal(t, Identity(), Quat{}.Normalize())

	drifted := Quat{W: 1 + 5e-7}
	require.True(t, drifted.IsUnit(1e-6))
}

func TestQuat_Facing(t *testing.T) {
	// Identity faces north; +90° about Z swings the nose to the west.
	requireVecInDelta(t, Vec3{Y: 1}, Identity().Facing(), 1e-12)
	requireVecInDelta(t, Vec3{X: -1}, FromAngleAxis(math.Pi/2, Vec3{Z: 1}).Facing(), 1e-12)
}

func TestQuat_AngleAxis(t *testing.T) {
	theta, axis := FromAngleAxis(1.1, Vec3{Z: 1}).AngleAxis()
	require.InDelta(t, 1.1, theta, 1e-12)
	requireVecInDelta(t, Vec3{Z: 1}, axis, 1e-12)

	theta, axis = Identity().AngleAxis()
	require.Zero(t, theta)
	require.True(t, axis.IsZero())
}
