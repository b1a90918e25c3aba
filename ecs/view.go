package ecs

import (
	"reflect"
	"unsafe"
)

// viewLayout describes a struct of component pointers used by Query.
// Embedded fields are required; named fields may carry `ecs:"optional"`.
type viewLayout struct {
	types    []reflect.Type
	optional []bool
	offsets  []uintptr
}

func newViewLayout[T any]() viewLayout {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("ecs: query type parameter must be a struct")
	}

	layout := viewLayout{
		types:    make([]reflect.Type, 0, structType.NumField()),
		optional: make([]bool, 0, structType.NumField()),
		offsets:  make([]uintptr, 0, structType.NumField()),
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("ecs: query struct fields must be pointer types")
		}

		isOptional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("ecs: invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			isOptional = true
		}

		layout.types = append(layout.types, field.Type.Elem())
		layout.optional = append(layout.optional, isOptional)
		layout.offsets = append(layout.offsets, field.Offset)
	}
	return layout
}

// matches reports whether archetype has every required type.
func (l *viewLayout) matches(archetype *Archetype) bool {
	for i, t := range l.types {
		if !l.optional[i] && !archetype.HasComponent(t) {
			return false
		}
	}
	return true
}

func (l *viewLayout) columnIndices(archetype *Archetype) []int {
	indices := make([]int, len(l.types))
	for i, t := range l.types {
		indices[i] = archetype.columnIndex(t)
	}
	return indices
}

// fill points each field of the struct at resultPtr to the entity's component.
func (l *viewLayout) fill(resultPtr unsafe.Pointer, archetype *Archetype, index int, indices []int) bool {
	for i, colIdx := range indices {
		fieldPtr := unsafe.Add(resultPtr, l.offsets[i])

		var component any
		if colIdx != -1 {
			component = archetype.columns[colIdx].Get(index)
		}
		if component == nil {
			if !l.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = (*eface)(unsafe.Pointer(&component)).data
	}
	return true
}
