package ecs

import (
	"reflect"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// RequiredComponents is implemented by components that need other components
// to be present. Each returned value is added at spawn time unless the entity
// already carries a component of the same type.
type RequiredComponents interface {
	RequiredComponents() []any
}

// Storage is the world: every archetype, plus singletons and event queues.
type Storage struct {
	archetypes *intmap.Map[uint32, *Archetype]
	registry   *ComponentRegistry
	singletons map[reflect.Type]any
	queues     []eventQueueSwapper
}

// NewStorage creates an empty world backed by registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: intmap.New[uint32, *Archetype](64),
		registry:   registry,
		singletons: make(map[reflect.Type]any),
	}
}

// Registry returns the registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates a new entity with the provided components.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	components = withRequired(components)
	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.spawn(components))
}

// Delete removes the entity and all of its components. Unknown IDs are ignored.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes.Get(id.ArchetypeId()); ok {
		archetype.delete(id.Index())
	}
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	return ok && archetype.alive(id.Index())
}

// AddComponent attaches component to the entity and returns the entity's new ID.
// If the entity already has a component of that type it is overwritten in place
// and the ID does not change.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	old, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok || !old.alive(id.Index()) {
		return 0
	}

	compType := componentType(component)
	if old.HasComponent(compType) {
		ptr := old.component(id.Index(), compType)
		reflect.ValueOf(ptr).Elem().Set(reflect.Indirect(reflect.ValueOf(component)))
		return id
	}

	components := make([]any, 0, len(old.types)+1)
	for _, typ := range old.types {
		components = append(components, old.component(id.Index(), typ))
	}
	components = append(components, component)

	archetype := s.archetypeFor(extractComponentTypes(components))
	newId := NewEntityId(archetype.id, archetype.spawn(components))
	old.delete(id.Index())
	return newId
}

// GetComponent returns a pointer to the entity's component of type compType, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.component(id.Index(), compType)
}

// HasComponent reports whether the live entity carries compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok || !archetype.alive(id.Index()) {
		return false
	}
	return archetype.HasComponent(compType)
}

// Len returns the number of live entities across all archetypes.
func (s *Storage) Len() int {
	total := 0
	s.archetypes.ForEach(func(_ uint32, a *Archetype) bool {
		total += a.Len()
		return true
	})
	return total
}

// ArchetypeCount returns how many distinct archetypes exist.
func (s *Storage) ArchetypeCount() int {
	return s.archetypes.Len()
}

// GetArchetypeById returns the archetype with the given ID, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	archetype, _ := s.archetypes.Get(id)
	return archetype
}

func (s *Storage) forEachArchetype(fn func(*Archetype)) {
	s.archetypes.ForEach(func(_ uint32, a *Archetype) bool {
		fn(a)
		return true
	})
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	archetype, ok := s.archetypes.Get(id)
	if !ok {
		archetype = newArchetype(id, types, s.registry)
		s.archetypes.Put(id, archetype)
	}
	return archetype
}

// withRequired appends the defaults requested by RequiredComponents
// implementations for any type not already present.
func withRequired(components []any) []any {
	present := make(map[reflect.Type]bool, len(components))
	for _, comp := range components {
		present[componentType(comp)] = true
	}

	out := components
	for i := 0; i < len(out); i++ {
		req, ok := out[i].(RequiredComponents)
		if !ok {
			continue
		}
		for _, dep := range req.RequiredComponents() {
			t := componentType(dep)
			if present[t] {
				continue
			}
			if len(out) == len(components) {
				out = append(make([]any, 0, len(components)+1), components...)
			}
			present[t] = true
			out = append(out, dep)
		}
	}
	return out
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes returns the sorted component types of components.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("ecs: components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

// eface mirrors the runtime layout of an interface value: a type word and a
// data word.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// hashTypesToUint32 is FNV-1a over the runtime type pointers of sorted types.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr((*eface)(unsafe.Pointer(&t)).data)
		h ^= uint32(ptr) ^ uint32(uint64(ptr)>>32)
		h *= prime
	}
	return h
}

// ComponentReader is satisfied by Storage.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	comp, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return comp
}
