package space

import (
	"github.com/starframe/starframe/pkg/geometry"
)

// Space is the shared vector store for one simulation session: contiguous
// position and velocity arrays for every live entity, addressed by Slot.
// Entities hold slots, never copies of the vectors, so the batched tick
// update stays authoritative in one place.
//
// A Space is constructed explicitly and passed to whatever owns it; there
// is no package-level instance. The external tick scheduler is the sole
// writer during a tick; readers between ticks need no locking.
type Space struct {
	positions   []geometry.Vec3
	velocities  []geometry.Vec3
	generations []uint32
	live        []bool
	free        []uint32
	count       int
	capacity    int
}

// NewSpace returns an empty store. capacity bounds the number of live
// slots; zero means the store grows without bound.
func NewSpace(capacity int) *Space {
	return &Space{capacity: capacity}
}

// Allocate claims a fresh or reclaimed slot with zero position and
// velocity. Returns ErrOutOfCapacity when a bound is set and reached.
func (s *Space) Allocate() (Slot, error) {
	if s.capacity > 0 && s.count >= s.capacity {
		return 0, ErrOutOfCapacity
	}
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
		s.positions[idx] = geometry.Vec3{}
		s.velocities[idx] = geometry.Vec3{}
	} else {
		idx = uint32(len(s.positions))
		s.positions = append(s.positions, geometry.Vec3{})
		s.velocities = append(s.velocities, geometry.Vec3{})
		s.generations = append(s.generations, 0)
		s.live = append(s.live, false)
	}
	s.live[idx] = true
	s.count++
	return newSlot(idx, s.generations[idx]), nil
}

// Free releases the slot for reuse. Handles issued for the slot before the
// call become stale and fail every later access with ErrInvalidIndex.
func (s *Space) Free(slot Slot) error {
	if err := s.check(slot); err != nil {
		return err
	}
	i := slot.Index()
	s.generations[i]++
	s.live[i] = false
	s.free = append(s.free, i)
	s.count--
	return nil
}

// Position returns the absolute position stored in the slot.
func (s *Space) Position(slot Slot) (geometry.Vec3, error) {
	if err := s.check(slot); err != nil {
		return geometry.Vec3{}, err
	}
	return s.positions[slot.Index()], nil
}

// SetPosition overwrites the absolute position stored in the slot.
func (s *Space) SetPosition(slot Slot, v geometry.Vec3) error {
	if err := s.check(slot); err != nil {
		return err
	}
	s.positions[slot.Index()] = v
	return nil
}

// Velocity returns the absolute velocity stored in the slot.
func (s *Space) Velocity(slot Slot) (geometry.Vec3, error) {
	if err := s.check(slot); err != nil {
		return geometry.Vec3{}, err
	}
	return s.velocities[slot.Index()], nil
}

// SetVelocity overwrites the absolute velocity stored in the slot.
func (s *Space) SetVelocity(slot Slot, v geometry.Vec3) error {
	if err := s.check(slot); err != nil {
		return err
	}
	s.velocities[slot.Index()] = v
	return nil
}

// AddVelocity accumulates a velocity change, as applied by thrust or
// impact resolution between integration steps.
func (s *Space) AddVelocity(slot Slot, dv geometry.Vec3) error {
	if err := s.check(slot); err != nil {
		return err
	}
	i := slot.Index()
	s.velocities[i] = s.velocities[i].Add(dv)
	return nil
}

// ForEach calls fn once per live slot in storage order, a single pass over
// the contiguous arrays. fn must not allocate or free slots.
func (s *Space) ForEach(fn func(slot Slot, pos, vel geometry.Vec3)) {
	for i := range s.positions {
		if s.live[i] {
			fn(newSlot(uint32(i), s.generations[i]), s.positions[i], s.velocities[i])
		}
	}
}

// Len returns the number of live slots.
func (s *Space) Len() int {
	return s.count
}

// Cap returns the configured bound, zero when unbounded.
func (s *Space) Cap() int {
	return s.capacity
}

func (s *Space) check(slot Slot) error {
	i := int(slot.Index())
	if i >= len(s.positions) || !s.live[i] || s.generations[i] != slot.Generation() {
		return ErrInvalidIndex
	}
	return nil
}
