package space

import (
	"github.com/starframe/starframe/pkg/geometry"
)

// UnitTolerance is the maximum deviation from unit norm accepted when
// orientation state is set from outside. Integration renormalizes every
// step, so drift never accumulates past it.
const UnitTolerance = 1e-6

// Coordinates is the kinematic state of one entity: a non-owning slot in a
// Space holding its position and velocity, plus the entity's own
// orientation quaternions. Heading orients the entity relative to the
// universal frame; rotation is the spin applied to heading per second.
//
// A Coordinates touches only its own slot. Cross-entity reads go through
// RelativeTo, never through another entity's Coordinates.
type Coordinates struct {
	space    *Space
	slot     Slot
	heading  geometry.Quat
	rotation geometry.Quat
}

// New allocates a slot in s and returns Coordinates at the origin, at
// rest, with identity orientation.
func New(s *Space) (*Coordinates, error) {
	slot, err := s.Allocate()
	if err != nil {
		return nil, err
	}
	return &Coordinates{
		space:    s,
		slot:     slot,
		heading:  geometry.Identity(),
		rotation: geometry.Identity(),
	}, nil
}

// NewAt allocates a slot in s seeded with the given state. Both
// quaternions must be unit norm within UnitTolerance; the slot is released
// again if either is not.
func NewAt(s *Space, pos, vel geometry.Vec3, heading, rotation geometry.Quat) (*Coordinates, error) {
	c, err := New(s)
	if err != nil {
		return nil, err
	}
	if err = c.SetHeading(heading); err == nil {
		err = c.SetRotation(rotation)
	}
	if err != nil {
		_ = s.Free(c.slot)
		return nil, err
	}
	_ = s.SetPosition(c.slot, pos)
	_ = s.SetVelocity(c.slot, vel)
	return c, nil
}

// Slot returns the handle of the backing store record.
func (c *Coordinates) Slot() Slot {
	return c.slot
}

// Position reads the absolute position through the owning slot.
func (c *Coordinates) Position() (geometry.Vec3, error) {
	return c.space.Position(c.slot)
}

// SetPosition writes the absolute position through the owning slot.
func (c *Coordinates) SetPosition(v geometry.Vec3) error {
	return c.space.SetPosition(c.slot, v)
}

// Velocity reads the absolute velocity through the owning slot.
func (c *Coordinates) Velocity() (geometry.Vec3, error) {
	return c.space.Velocity(c.slot)
}

// SetVelocity writes the absolute velocity through the owning slot.
func (c *Coordinates) SetVelocity(v geometry.Vec3) error {
	return c.space.SetVelocity(c.slot, v)
}

// AddVelocity accumulates a velocity change from an external force.
func (c *Coordinates) AddVelocity(dv geometry.Vec3) error {
	return c.space.AddVelocity(c.slot, dv)
}

// Heading returns the orientation quaternion.
func (c *Coordinates) Heading() geometry.Quat {
	return c.heading
}

// Rotation returns the spin-per-second quaternion.
func (c *Coordinates) Rotation() geometry.Quat {
	return c.rotation
}

// SetHeading replaces the orientation. Fails with ErrNonUnitQuaternion if
// q deviates from unit norm beyond UnitTolerance.
func (c *Coordinates) SetHeading(q geometry.Quat) error {
	if !q.IsUnit(UnitTolerance) {
		return ErrNonUnitQuaternion
	}
	c.heading = q.Normalize()
	return nil
}

// SetRotation replaces the spin. Fails with ErrNonUnitQuaternion if q
// deviates from unit norm beyond UnitTolerance.
func (c *Coordinates) SetRotation(q geometry.Quat) error {
	if !q.IsUnit(UnitTolerance) {
		return ErrNonUnitQuaternion
	}
	c.rotation = q.Normalize()
	return nil
}

// Integrate advances the state by dt seconds: position moves by
// velocity·dt and heading composes with the spin scaled to dt. Velocity
// and rotation are not touched here; forces and torques are applied by the
// layers above between steps.
func (c *Coordinates) Integrate(dt float64) error {
	pos, err := c.space.Position(c.slot)
	if err != nil {
		return err
	}
	vel, err := c.space.Velocity(c.slot)
	if err != nil {
		return err
	}
	if err := c.space.SetPosition(c.slot, pos.Add(vel.Scale(dt))); err != nil {
		return err
	}
	c.heading = c.heading.Mul(c.rotation.Pow(dt)).Normalize()
	return nil
}

// PositionAfter predicts the position dt seconds ahead under the current
// velocity, without mutating anything.
func (c *Coordinates) PositionAfter(dt float64) (geometry.Vec3, error) {
	pos, err := c.space.Position(c.slot)
	if err != nil {
		return geometry.Vec3{}, err
	}
	vel, err := c.space.Velocity(c.slot)
	if err != nil {
		return geometry.Vec3{}, err
	}
	return pos.Add(vel.Scale(dt)), nil
}

// Facing returns the unit vector the entity's nose points along.
func (c *Coordinates) Facing() geometry.Vec3 {
	return c.heading.Facing()
}

// PositionSpherical returns the position as a navigational bearing from
// the universal origin.
func (c *Coordinates) PositionSpherical() (geometry.Spherical, error) {
	pos, err := c.Position()
	if err != nil {
		return geometry.Spherical{}, err
	}
	return geometry.ToSpherical(pos), nil
}

// VelocitySpherical returns the velocity as a navigational bearing.
func (c *Coordinates) VelocitySpherical() (geometry.Spherical, error) {
	vel, err := c.Velocity()
	if err != nil {
		return geometry.Spherical{}, err
	}
	return geometry.ToSpherical(vel), nil
}

// PositionCylindrical returns the position in cylindrical coordinates.
func (c *Coordinates) PositionCylindrical() (geometry.Cylindrical, error) {
	pos, err := c.Position()
	if err != nil {
		return geometry.Cylindrical{}, err
	}
	return geometry.ToCylindrical(pos), nil
}

// VelocityCylindrical returns the velocity in cylindrical coordinates.
func (c *Coordinates) VelocityCylindrical() (geometry.Cylindrical, error) {
	vel, err := c.Velocity()
	if err != nil {
		return geometry.Cylindrical{}, err
	}
	return geometry.ToCylindrical(vel), nil
}

// Release frees the backing slot. Every later access through this
// Coordinates or a copied handle fails with ErrInvalidIndex.
func (c *Coordinates) Release() error {
	return c.space.Free(c.slot)
}
