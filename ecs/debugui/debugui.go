// Package debugui draws Dear ImGui windows from ECS systems: a panel listing
// the transforms wherewasi persists and a scheduler statistics window.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/wherewasi/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether ImGui is consuming mouse or keyboard input.
// Game input systems should ignore input while it is captured.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and defers every ImguiItem render.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.ImguiItem.Render)
	}
}

// Plugin registers the ImGui components and systems. It must be added after
// wherewasi.Plugin so the save panel finds its settings.
type Plugin struct {
	// Stats adds the scheduler statistics window.
	Stats bool
}

func (p Plugin) Build(app *ecs.App) {
	ecs.RegisterComponent[ImguiItem](app.Registry)
	ecs.NewSingleton(app.Storage, ImguiInputState{})

	app.AddSystems(ecs.Update, &ImguiSystem{}, &SavePanelSystem{})
	if p.Stats {
		app.AddSystems(ecs.Last, NewStatsPanelSystem(app.Scheduler, 120))
	}
}
