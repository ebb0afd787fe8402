package sim

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/starframe/starframe/internal/core/space"
)

// registry maps entity UUIDs to store slots for the session and broadcast
// layers. It is sharded by xxhash of the UUID so concurrent lookups from
// many readers do not contend on one lock.
type registry struct {
	shards []registryShard
}

type registryShard struct {
	mx    sync.RWMutex
	slots map[uuid.UUID]space.Slot
}

func newRegistry(shardCount int) *registry {
	if shardCount < 1 {
		shardCount = 1
	}
	r := &registry{shards: make([]registryShard, shardCount)}
	for i := range r.shards {
		r.shards[i].slots = make(map[uuid.UUID]space.Slot)
	}
	return r
}

func (r *registry) shard(id uuid.UUID) *registryShard {
	return &r.shards[xxhash.Sum64(id[:])%uint64(len(r.shards))]
}

func (r *registry) put(id uuid.UUID, slot space.Slot) {
	s := r.shard(id)
	s.mx.Lock()
	s.slots[id] = slot
	s.mx.Unlock()
}

func (r *registry) get(id uuid.UUID) (space.Slot, bool) {
	s := r.shard(id)
	s.mx.RLock()
	slot, ok := s.slots[id]
	s.mx.RUnlock()
	return slot, ok
}

func (r *registry) del(id uuid.UUID) {
	s := r.shard(id)
	s.mx.Lock()
	delete(s.slots, id)
	s.mx.Unlock()
}
