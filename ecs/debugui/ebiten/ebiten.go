// Package ebiten runs the Dear ImGui backend for Ebiten around ecs frames.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/wherewasi/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. ImGui's own ini file is
// disabled; window layout is not persisted.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Update runs one app frame inside an ImGui frame, so systems may issue
// ImGui calls from deferred commands.
func (b *ImguiBackend) Update(app *ecs.App, dt float64) {
	b.frame(func() { app.Update(dt) })
}

// Shutdown runs app.Shutdown with its final frame inside an ImGui frame, so
// the panels drawn during that frame stay valid while exit hooks save.
func (b *ImguiBackend) Shutdown(app *ecs.App) error {
	return app.ShutdownWithin(b.frame)
}

func (b *ImguiBackend) frame(run func()) {
	b.BeginFrame()
	defer b.EndFrame()
	run()
}
