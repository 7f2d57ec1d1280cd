package core

import "fmt"

// EntityID identifies a slot in an EntityStore together with the
// generation it was allocated at, so a stale handle to a removed and
// reused slot is detected rather than silently aliasing the wrong value.
type EntityID struct {
	Index uint32
	Gen   uint32
}

func (id EntityID) String() string { return fmt.Sprintf("(%d,%d)", id.Index, id.Gen) }

type entityEntry[T any] struct {
	gen     uint32
	payload *T
}

// EntityStore is a generational slot container: Buildings, Constructions,
// Crews, Transports and GlobalTasks are all stored in one of these rather
// than in a plain slice or map, so handles taken before a remove remain
// detectably stale afterwards instead of resolving to whatever refilled
// the slot.
type EntityStore[T any] struct {
	slots []entityEntry[T]
	free  []uint32
}

// NewEntityStore returns an empty store.
func NewEntityStore[T any]() *EntityStore[T] {
	return &EntityStore[T]{}
}

// Len returns the number of live entries.
func (s *EntityStore[T]) Len() int {
	n := 0
	for _, e := range s.slots {
		if e.payload != nil {
			n++
		}
	}
	return n
}

// Insert stores a value, reusing the first free slot (bumping its
// generation) or appending a new one, and returns its handle.
func (s *EntityStore[T]) Insert(v T) EntityID {
	if len(s.free) > 0 {
		at := 0
		for i, f := range s.free {
			if f < s.free[at] {
				at = i
			}
		}
		idx := s.free[at]
		s.free = append(s.free[:at], s.free[at+1:]...)
		s.slots[idx].gen++
		s.slots[idx].payload = &v
		return EntityID{Index: idx, Gen: s.slots[idx].gen}
	}
	idx := uint32(len(s.slots))
	s.slots = append(s.slots, entityEntry[T]{gen: 0, payload: &v})
	return EntityID{Index: idx, Gen: 0}
}

// Remove deletes the entry identified by id if the generation matches,
// returning the removed value and true on success.
func (s *EntityStore[T]) Remove(id EntityID) (T, bool) {
	var zero T
	if int(id.Index) >= len(s.slots) {
		return zero, false
	}
	slot := &s.slots[id.Index]
	if slot.gen != id.Gen || slot.payload == nil {
		return zero, false
	}
	v := *slot.payload
	slot.payload = nil
	s.free = append(s.free, id.Index)
	return v, true
}

// Get returns a pointer to the live value for id, or nil if the handle is
// stale or out of range.
func (s *EntityStore[T]) Get(id EntityID) *T {
	if int(id.Index) >= len(s.slots) {
		return nil
	}
	slot := &s.slots[id.Index]
	if slot.gen != id.Gen || slot.payload == nil {
		return nil
	}
	return slot.payload
}

// Index returns the live value for id, panicking if missing — mirrors the
// original's panicking Index operator for call sites that already know
// the handle must be live.
func (s *EntityStore[T]) Index(id EntityID) T {
	v := s.Get(id)
	if v == nil {
		panic(fmt.Sprintf("entity %v does not exist", id))
	}
	return *v
}

// Items visits every live (id, value) pair in slot order.
func (s *EntityStore[T]) Items(fn func(EntityID, *T)) {
	for i := range s.slots {
		if s.slots[i].payload == nil {
			continue
		}
		fn(EntityID{Index: uint32(i), Gen: s.slots[i].gen}, s.slots[i].payload)
	}
}

// Iter calls fn for every live value in slot order.
func (s *EntityStore[T]) Iter(fn func(*T)) {
	for i := range s.slots {
		if s.slots[i].payload != nil {
			fn(s.slots[i].payload)
		}
	}
}

// Retain keeps only the entries for which keep returns true, freeing the
// slots of the rest. This is the per-tick cleanup idiom used by
// Transports, Constructions and GlobalTasks.
func (s *EntityStore[T]) Retain(keep func(*T) bool) {
	for i := range s.slots {
		if s.slots[i].payload == nil {
			continue
		}
		if !keep(s.slots[i].payload) {
			s.slots[i].payload = nil
			s.free = append(s.free, uint32(i))
		}
	}
}

// Ids returns the handles of every live entry in slot order. Go has no
// borrow checker, so unlike the original's split_mid helper (needed there
// to mutate one entity while reading its siblings) callers here can just
// re-enter the store by id while iterating.
func (s *EntityStore[T]) Ids() []EntityID {
	ids := make([]EntityID, 0, len(s.slots))
	for i := range s.slots {
		if s.slots[i].payload != nil {
			ids = append(ids, EntityID{Index: uint32(i), Gen: s.slots[i].gen})
		}
	}
	return ids
}
