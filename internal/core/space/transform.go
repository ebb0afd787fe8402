package space

import (
	"github.com/starframe/starframe/pkg/geometry"
)

// Snapshot is a detached, immutable copy of kinematic state as measured in
// some frame. It is not backed by a Space; mutating the live entity after
// the fact does not change it. The flat field layout is what the
// client-state-broadcast layer serializes.
type Snapshot struct {
	Position geometry.Vec3 `json:"pos" yaml:"pos"`
	Velocity geometry.Vec3 `json:"vel" yaml:"vel"`
	Heading  geometry.Quat `json:"hea" yaml:"hea"`
	Rotation geometry.Quat `json:"rot" yaml:"rot"`
}

// Bearing returns the snapshot position as a navigational bearing, the
// player-facing readout of a frame transform.
func (s Snapshot) Bearing() geometry.Spherical {
	return geometry.ToSpherical(s.Position)
}

// State captures the entity's absolute kinematic state.
func (c *Coordinates) State() (Snapshot, error) {
	pos, err := c.Position()
	if err != nil {
		return Snapshot{}, err
	}
	vel, err := c.Velocity()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Position: pos, Velocity: vel, Heading: c.heading, Rotation: c.rotation}, nil
}

// RelativeTo computes subject's state as measured by an observer
// co-located and co-oriented with viewer.
//
// Positions and velocities are translated into the viewer's origin and
// rotated into its orientation. The relative velocity is first-order: the
// viewer's own spin contributes no sweep term, only translational motion
// is corrected. The relative rotation is the subject's spin expressed in
// the viewer's frame with the viewer's own spin divided out, so an entity
// observed from itself reports the identity.
//
// Pure function over both inputs; neither entity is mutated.
func RelativeTo(subject, viewer *Coordinates) (Snapshot, error) {
	sp, err := subject.Position()
	if err != nil {
		return Snapshot{}, err
	}
	sv, err := subject.Velocity()
	if err != nil {
		return Snapshot{}, err
	}
	vp, err := viewer.Position()
	if err != nil {
		return Snapshot{}, err
	}
	vv, err := viewer.Velocity()
	if err != nil {
		return Snapshot{}, err
	}

	vh := viewer.heading
	inv := vh.Conjugate()

	// Spins expressed in the viewer's frame, then the subject's divided by
	// the viewer's. Quaternion products do not commute; the order here is
	// load-bearing.
	sr := inv.Mul(subject.rotation).Mul(vh)
	vr := inv.Mul(viewer.rotation).Mul(vh)

	return Snapshot{
		Position: vh.InverseRotate(sp.Sub(vp)),
		Velocity: vh.InverseRotate(sv.Sub(vv)),
		Heading:  inv.Mul(subject.heading).Normalize(),
		Rotation: sr.Mul(vr.Conjugate()).Normalize(),
	}, nil
}
