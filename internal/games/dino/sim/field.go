package sim

// Field is a collection of moving entities owned by the simulation.
type Field[T any] struct {
	items []T
}

// Add appends an entity.
func (f *Field[T]) Add(e T) {
	f.items = append(f.items, e)
}

// Items returns the live entities. The slice is only valid until the next
// mutation.
func (f *Field[T]) Items() []T {
	return f.items
}

// Len returns the number of live entities.
func (f *Field[T]) Len() int {
	return len(f.items)
}

// Clear removes every entity.
func (f *Field[T]) Clear() {
	clear(f.items)
	f.items = f.items[:0]
}

// Advance applies move to every entity, then culls those for which gone
// reports true. Culling walks indices in reverse so removal never skips an
// entity. culled may be nil.
func (f *Field[T]) Advance(move func(*T), gone func(*T) bool, culled func(T)) {
	for i := range f.items {
		move(&f.items[i])
	}
	for i := len(f.items) - 1; i >= 0; i-- {
		if !gone(&f.items[i]) {
			continue
		}
		e := f.items[i]
		f.RemoveAt(i)
		if culled != nil {
			culled(e)
		}
	}
}

// RemoveAt deletes the entity at index i, keeping order.
func (f *Field[T]) RemoveAt(i int) {
	copy(f.items[i:], f.items[i+1:])
	var zero T
	f.items[len(f.items)-1] = zero
	f.items = f.items[:len(f.items)-1]
}
