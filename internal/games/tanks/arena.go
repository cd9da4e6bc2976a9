package tanks

// Handle addresses an entity stored in an Arena. A handle stays valid until
// its entity is removed; after that the slot's generation moves on and the
// handle no longer resolves, even if the slot is reused.
type Handle struct {
	Index uint32
	Gen   uint32
}

type slot[T any] struct {
	gen  uint32
	live bool
	val  T
}

// Arena stores entities in generation-stamped slots. Removal frees a slot
// without shifting the others, so handles and iteration order stay stable
// while entities are flagged and removed during a step.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// Insert stores v and returns its handle. Freed slots are reused.
func (a *Arena[T]) Insert(v T) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots)) //#nosec G115 -- arenas stay far below 2^32 entities
		a.slots = append(a.slots, slot[T]{})
	}

	s := &a.slots[idx]
	s.gen++ // generations start at 1 so the zero Handle never resolves
	s.live = true
	s.val = v
	a.live++
	return Handle{Index: idx, Gen: s.gen}
}

// Get returns a pointer to the entity behind h, or false if h is stale.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if int(h.Index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.Index]
	if !s.live || s.gen != h.Gen {
		return nil, false
	}
	return &s.val, true
}

// Remove frees the slot behind h. Returns false if h is stale.
func (a *Arena[T]) Remove(h Handle) bool {
	if _, ok := a.Get(h); !ok {
		return false
	}
	a.release(h.Index)
	return true
}

func (a *Arena[T]) release(idx uint32) {
	s := &a.slots[idx]
	var zero T
	s.val = zero
	s.live = false
	s.gen++
	a.free = append(a.free, idx)
	a.live--
}

// RemoveIf frees every live entity matching pred and returns how many were
// removed.
func (a *Arena[T]) RemoveIf(pred func(*T) bool) int {
	removed := 0
	for i := range a.slots {
		if a.slots[i].live && pred(&a.slots[i].val) {
			a.release(uint32(i)) //#nosec G115 -- index comes from the slot slice
			removed++
		}
	}
	return removed
}

// Clear frees every slot. Handles issued before Clear stop resolving.
func (a *Arena[T]) Clear() {
	for i := range a.slots {
		if a.slots[i].live {
			a.release(uint32(i)) //#nosec G115 -- index comes from the slot slice
		}
	}
}

// Len returns the number of live entities.
func (a *Arena[T]) Len() int {
	return a.live
}

// Each calls fn for every live entity in slot order. fn may flag entities
// but must not insert or remove.
func (a *Arena[T]) Each(fn func(h Handle, v *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.live {
			fn(Handle{Index: uint32(i), Gen: s.gen}, &s.val) //#nosec G115 -- index comes from the slot slice
		}
	}
}
