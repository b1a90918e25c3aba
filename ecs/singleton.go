package ecs

import "reflect"

// AddSingleton stores value as the world's only instance of its type,
// replacing any previous instance.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.Indirect(reflect.ValueOf(value)))
	s.singletons[t] = ptr.Interface()
}

// RemoveSingleton drops the instance of type t, if any.
func (s *Storage) RemoveSingleton(t reflect.Type) {
	delete(s.singletons, t)
}

// SingletonCount returns the number of stored singletons.
func (s *Storage) SingletonCount() int {
	return len(s.singletons)
}

// ReadSingleton returns the stored T, or nil.
func ReadSingleton[T any](s *Storage) *T {
	ptr, _ := s.singletons[reflect.TypeFor[T]()].(*T)
	return ptr
}

// Singleton gives a system access to a single component instance that is not
// tied to any entity, such as configuration or global state.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton returns an accessor for T, creating the instance from
// initializer (or the zero value) when storage does not hold one yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if ReadSingleton[T](storage) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}
	return &Singleton[T]{storage: storage, ptr: ReadSingleton[T](storage)}
}

// Init binds the accessor to storage. The Scheduler calls it on registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = ReadSingleton[T](storage)
}

// Get returns the instance, or nil if none has been added.
func (s *Singleton[T]) Get() *T {
	if s.storage == nil {
		return nil
	}
	// Re-resolve so a replaced instance is picked up.
	s.ptr = ReadSingleton[T](s.storage)
	return s.ptr
}

// Exists reports whether an instance is present.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
