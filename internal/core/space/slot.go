package space

// Slot addresses one record in a Space. It packs the record index into the
// low 32 bits and a generation counter into the high 32 bits; the
// generation is bumped when the record is freed, so a handle that outlives
// its entity can never read the next occupant's data.
type Slot uint64

func newSlot(index, generation uint32) Slot {
	return Slot(uint64(generation)<<32 | uint64(index))
}

// Index extracts the record index.
func (s Slot) Index() uint32 {
	return uint32(s & 0xFFFFFFFF)
}

// Generation extracts the generation the handle was issued under.
func (s Slot) Generation() uint32 {
	return uint32(s >> 32)
}
