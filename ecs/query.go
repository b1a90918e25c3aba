package ecs

import (
	"iter"
	"unsafe"
)

// Query iterates entities matching the component struct T. Results are
// snapshotted by Execute; the Scheduler calls Execute before each system runs.
type Query[T any] struct {
	layout   viewLayout
	storage  *Storage
	entities []EntityId
	items    []T
	valid    bool
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. The Scheduler calls it on registration.
func (q *Query[T]) Init(storage *Storage) {
	q.layout = newViewLayout[T]()
	q.storage = storage
	q.valid = false
}

// Execute rebuilds the snapshot of matching entities.
func (q *Query[T]) Execute() {
	q.entities = q.entities[:0]
	q.items = q.items[:0]

	q.storage.forEachArchetype(func(archetype *Archetype) {
		if !q.layout.matches(archetype) || len(archetype.columns) == 0 {
			return
		}

		indices := q.layout.columnIndices(archetype)
		var result T
		resultPtr := unsafe.Pointer(&result)

		for index := range archetype.columns[0].Iter() {
			if !q.layout.fill(resultPtr, archetype, index, indices) {
				continue
			}
			q.entities = append(q.entities, NewEntityId(archetype.id, uint32(index)))
			q.items = append(q.items, result)
		}
	})

	q.valid = true
}

// Get fills T for a single entity, returning nil when required components are missing.
func (q *Query[T]) Get(id EntityId) *T {
	archetype, ok := q.storage.archetypes.Get(id.ArchetypeId())
	if !ok || !q.layout.matches(archetype) || !archetype.alive(id.Index()) {
		return nil
	}
	var result T
	if !q.layout.fill(unsafe.Pointer(&result), archetype, int(id.Index()), q.layout.columnIndices(archetype)) {
		return nil
	}
	return &result
}

// Iter yields the entities captured by the last Execute.
// Panics if Execute has not been called.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.valid {
		panic("ecs: Query.Iter() called before Query.Execute()")
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.entities {
			if !yield(q.entities[i], q.items[i]) {
				return
			}
		}
	}
}

// Values is Iter without entity IDs.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.valid {
		panic("ecs: Query.Values() called before Query.Execute()")
	}
	return func(yield func(T) bool) {
		for _, item := range q.items {
			if !yield(item) {
				return
			}
		}
	}
}

// Len returns the number of entities captured by the last Execute.
func (q *Query[T]) Len() int {
	return len(q.entities)
}
