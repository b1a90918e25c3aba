package ecs_test

import "github.com/plus3/wherewasi/ecs"

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type Name string

// Labelled requires a Position, like a tag that needs a transform.
type Labelled struct {
	Label string
}

func (Labelled) RequiredComponents() []any {
	return []any{Position{X: -1, Y: -1}}
}

func newTestStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Labelled](registry)
	return ecs.NewStorage(registry)
}
