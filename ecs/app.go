package ecs

import (
	"context"
	"errors"
	"io"
	"time"
)

// WindowClosing is sent when the host window (or process) is about to close.
// Systems that persist state on exit listen for it.
type WindowClosing struct{}

// Plugin bundles component registration, singletons and systems.
type Plugin interface {
	Build(app *App)
}

// PluginFunc adapts a function to the Plugin interface.
type PluginFunc func(app *App)

// Build calls f.
func (f PluginFunc) Build(app *App) {
	f(app)
}

// App wires a registry, storage and scheduler together.
type App struct {
	Registry  *ComponentRegistry
	Storage   *Storage
	Scheduler *Scheduler

	plugins []Plugin
	closed  bool
}

// NewApp creates an empty app.
func NewApp() *App {
	registry := NewComponentRegistry()
	storage := NewStorage(registry)
	return &App{
		Registry:  registry,
		Storage:   storage,
		Scheduler: NewScheduler(storage),
	}
}

// AddPlugins builds each plugin immediately, in order.
func (a *App) AddPlugins(plugins ...Plugin) *App {
	for _, p := range plugins {
		p.Build(a)
		a.plugins = append(a.plugins, p)
	}
	return a
}

// AddSystems registers systems into stage.
func (a *App) AddSystems(stage Stage, systems ...System) *App {
	for _, system := range systems {
		a.Scheduler.RegisterStage(stage, system)
	}
	return a
}

// Spawn creates an entity directly in storage.
func (a *App) Spawn(components ...any) EntityId {
	return a.Storage.Spawn(components...)
}

// Update runs one frame.
func (a *App) Update(dt float64) {
	a.Scheduler.Once(dt)
}

// RequestClose sends WindowClosing; systems observe it on the next frame.
func (a *App) RequestClose() {
	SendEvent(a.Storage, WindowClosing{})
}

// Shutdown sends WindowClosing, runs a final frame so that exit hooks see it,
// then closes every plugin implementing io.Closer. Calling it twice is a no-op.
func (a *App) Shutdown() error {
	return a.ShutdownWithin(nil)
}

// ShutdownWithin is Shutdown with the final frame run inside wrap, for hosts
// that must bracket every frame (an ImGui frame, for example). A nil wrap runs
// the frame directly.
func (a *App) ShutdownWithin(wrap func(frame func())) error {
	if a.closed {
		return nil
	}
	a.closed = true

	a.RequestClose()
	frame := func() { a.Update(0) }
	if wrap != nil {
		wrap(frame)
	} else {
		frame()
	}

	var errs []error
	for _, p := range a.plugins {
		if c, ok := p.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

// Run drives frames at interval until ctx is cancelled, then shuts down.
func (a *App) Run(ctx context.Context, interval time.Duration) error {
	a.Scheduler.Run(ctx, interval)
	return a.Shutdown()
}
