package sim

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
	"go.uber.org/zap"

	"github.com/starframe/starframe/internal/core/observability/log"
	"github.com/starframe/starframe/internal/core/space"
	"github.com/starframe/starframe/pkg/concurrent"
	"github.com/starframe/starframe/pkg/geometry"
)

// Handle identifies a live entity. It is the entity's store slot; after a
// despawn the handle goes stale and every access fails with
// space.ErrInvalidIndex rather than reading a reused slot.
type Handle = space.Slot

// SpawnState seeds a spawned entity. The zero value spawns at the origin,
// at rest, with identity orientation; zero-valued quaternions are treated
// as identity so callers only set what they care about.
type SpawnState struct {
	Position geometry.Vec3
	Velocity geometry.Vec3
	Heading  geometry.Quat
	Rotation geometry.Quat
}

// TickError reports the failure of a single entity's integration step.
// Other entities in the same pass are unaffected.
type TickError struct {
	Handle Handle
	Err    error
}

func (e TickError) Error() string {
	return fmt.Sprintf("entity %d: %v", uint64(e.Handle), e.Err)
}

func (e TickError) Unwrap() error {
	return e.Err
}

type entity struct {
	id     uuid.UUID
	coords *space.Coordinates
	order  int
}

// World owns the spatial state of one game session: the shared vector
// store, the live entities, and the UUID registry the session layer
// resolves against. Construct one per session; nothing here is
// process-global.
//
// The external scheduler driving Tick is the sole writer; queries take the
// read side of the world lock, which is the write-phase barrier the tick
// model requires.
type World struct {
	mx       sync.RWMutex
	cfg      Config
	log      *zap.Logger
	space    *space.Space
	entities *intmap.Map[Handle, *entity]
	order    []*entity
	registry *registry
}

// NewWorld builds a world from cfg. A nil logger builds one from
// cfg.LogLevel, falling back to a no-op logger if the level is invalid.
func NewWorld(cfg Config, logger *zap.Logger) *World {
	cfg = cfg.withDefaults()
	if logger == nil {
		var err error
		if logger, err = log.New(cfg.LogLevel); err != nil {
			logger = zap.NewNop()
		}
	}
	return &World{
		cfg:      cfg,
		log:      logger,
		space:    space.NewSpace(cfg.MaxEntities),
		entities: intmap.New[Handle, *entity](256),
		registry: newRegistry(cfg.RegistryShards),
	}
}

// Spawn creates an entity with the given state and returns its handle.
// Fails with space.ErrOutOfCapacity when the store bound is reached, or
// space.ErrNonUnitQuaternion when a seeded quaternion is not unit norm.
func (w *World) Spawn(st SpawnState) (Handle, error) {
	heading, rotation := st.Heading, st.Rotation
	if heading == (geometry.Quat{}) {
		heading = geometry.Identity()
	}
	if rotation == (geometry.Quat{}) {
		rotation = geometry.Identity()
	}

	w.mx.Lock()
	defer w.mx.Unlock()

	coords, err := space.NewAt(w.space, st.Position, st.Velocity, heading, rotation)
	if err != nil {
		return 0, err
	}
	e := &entity{id: uuid.New(), coords: coords, order: len(w.order)}
	w.entities.Put(coords.Slot(), e)
	w.order = append(w.order, e)
	w.registry.put(e.id, coords.Slot())

	w.log.Debug("entity spawned",
		zap.String("entity_id", e.id.String()),
		zap.Uint64("slot", uint64(coords.Slot())),
		zap.Int("live", len(w.order)),
	)
	return coords.Slot(), nil
}

// Despawn removes the entity and frees its slot. The handle and any copies
// of it are stale afterwards.
func (w *World) Despawn(h Handle) error {
	w.mx.Lock()
	defer w.mx.Unlock()

	e, ok := w.entities.Get(h)
	if !ok {
		return space.ErrInvalidIndex
	}
	if err := e.coords.Release(); err != nil {
		return err
	}
	w.entities.Del(h)
	w.registry.del(e.id)

	last := len(w.order) - 1
	w.order[e.order] = w.order[last]
	w.order[e.order].order = e.order
	w.order = w.order[:last]

	w.log.Debug("entity despawned",
		zap.String("entity_id", e.id.String()),
		zap.Uint64("slot", uint64(h)),
		zap.Int("live", len(w.order)),
	)
	return nil
}

// Tick integrates every live entity by dt seconds in one pass,
// parallelized across the configured workers. Each slot is written by
// exactly one worker. Failures are collected per entity and never abort
// the rest of the pass.
func (w *World) Tick(dt float64) []TickError {
	w.mx.Lock()
	defer w.mx.Unlock()

	var (
		mu   sync.Mutex
		errs []TickError
	)
	_ = concurrent.ForEach(w.order, w.cfg.TickWorkers, func(e *entity) error {
		if err := e.coords.Integrate(dt); err != nil {
			mu.Lock()
			errs = append(errs, TickError{Handle: e.coords.Slot(), Err: err})
			mu.Unlock()
		}
		return nil
	})

	w.log.Debug("tick integrated",
		zap.Float64("dt", dt),
		zap.Int("entities", len(w.order)),
		zap.Int("errors", len(errs)),
	)
	return errs
}

// Count returns the number of live entities.
func (w *World) Count() int {
	w.mx.RLock()
	defer w.mx.RUnlock()
	return len(w.order)
}

// EntityID returns the stable UUID assigned to the entity at spawn.
func (w *World) EntityID(h Handle) (uuid.UUID, error) {
	w.mx.RLock()
	defer w.mx.RUnlock()
	e, ok := w.entities.Get(h)
	if !ok {
		return uuid.UUID{}, space.ErrInvalidIndex
	}
	return e.id, nil
}

// Lookup resolves an entity UUID to its current handle.
func (w *World) Lookup(id uuid.UUID) (Handle, bool) {
	return w.registry.get(id)
}

// Position returns the entity's absolute position.
func (w *World) Position(h Handle) (geometry.Vec3, error) {
	w.mx.RLock()
	defer w.mx.RUnlock()
	return w.space.Position(h)
}

// SetPosition overwrites the entity's absolute position.
func (w *World) SetPosition(h Handle, v geometry.Vec3) error {
	w.mx.Lock()
	defer w.mx.Unlock()
	return w.space.SetPosition(h, v)
}

// Velocity returns the entity's absolute velocity.
func (w *World) Velocity(h Handle) (geometry.Vec3, error) {
	w.mx.RLock()
	defer w.mx.RUnlock()
	return w.space.Velocity(h)
}

// SetVelocity overwrites the entity's absolute velocity.
func (w *World) SetVelocity(h Handle, v geometry.Vec3) error {
	w.mx.Lock()
	defer w.mx.Unlock()
	return w.space.SetVelocity(h, v)
}

// AddVelocity accumulates a velocity change from an external force.
func (w *World) AddVelocity(h Handle, dv geometry.Vec3) error {
	w.mx.Lock()
	defer w.mx.Unlock()
	return w.space.AddVelocity(h, dv)
}

// Heading returns the entity's orientation quaternion.
func (w *World) Heading(h Handle) (geometry.Quat, error) {
	w.mx.RLock()
	defer w.mx.RUnlock()
	e, ok := w.entities.Get(h)
	if !ok {
		return geometry.Quat{}, space.ErrInvalidIndex
	}
	return e.coords.Heading(), nil
}

// SetHeading replaces the entity's orientation.
func (w *World) SetHeading(h Handle, q geometry.Quat) error {
	w.mx.Lock()
	defer w.mx.Unlock()
	e, ok := w.entities.Get(h)
	if !ok {
		return space.ErrInvalidIndex
	}
	return e.coords.SetHeading(q)
}

// Rotation returns the entity's spin-per-second quaternion.
func (w *World) Rotation(h Handle) (geometry.Quat, error) {
	w.mx.RLock()
	defer w.mx.RUnlock()
	e, ok := w.entities.Get(h)
	if !ok {
		return geometry.Quat{}, space.ErrInvalidIndex
	}
	return e.coords.Rotation(), nil
}

// SetRotation replaces the entity's spin.
func (w *World) SetRotation(h Handle, q geometry.Quat) error {
	w.mx.Lock()
	defer w.mx.Unlock()
	e, ok := w.entities.Get(h)
	if !ok {
		return space.ErrInvalidIndex
	}
	return e.coords.SetRotation(q)
}

// State captures the entity's absolute kinematic state as a detached
// snapshot for the broadcast layer.
func (w *World) State(h Handle) (space.Snapshot, error) {
	w.mx.RLock()
	defer w.mx.RUnlock()
	e, ok := w.entities.Get(h)
	if !ok {
		return space.Snapshot{}, space.ErrInvalidIndex
	}
	return e.coords.State()
}

// RelativeTo computes subject's state as measured from viewer's frame.
func (w *World) RelativeTo(subject, viewer Handle) (space.Snapshot, error) {
	w.mx.RLock()
	defer w.mx.RUnlock()
	s, ok := w.entities.Get(subject)
	if !ok {
		return space.Snapshot{}, space.ErrInvalidIndex
	}
	v, ok := w.entities.Get(viewer)
	if !ok {
		return space.Snapshot{}, space.ErrInvalidIndex
	}
	return space.RelativeTo(s.coords, v.coords)
}

// Bearing returns subject's position from viewer's frame as a navigational
// bearing, the readout shown to a targeting player.
func (w *World) Bearing(subject, viewer Handle) (geometry.Spherical, error) {
	snap, err := w.RelativeTo(subject, viewer)
	if err != nil {
		return geometry.Spherical{}, err
	}
	return snap.Bearing(), nil
}
