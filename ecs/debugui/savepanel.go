package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/wherewasi/ecs"
	"github.com/plus3/wherewasi/transform"
	"github.com/plus3/wherewasi/wherewasi"
)

type panelRow struct {
	name      string
	transform transform.Transform
}

// SavePanelSystem shows every tracked entity with its current transform, and
// lets the user save or reload them without restarting.
type SavePanelSystem struct {
	Tracked  ecs.Query[wherewasi.Tracked]
	Settings ecs.Singleton[wherewasi.Settings]
	Saves    ecs.Events[wherewasi.SaveRequest]
	Loads    ecs.Events[wherewasi.LoadRequest]
}

func (s *SavePanelSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Settings.Get()
	if settings == nil {
		return
	}

	rows := make([]panelRow, 0, s.Tracked.Len())
	for item := range s.Tracked.Values() {
		rows = append(rows, panelRow{name: item.Name, transform: *item.Transform})
	}
	slices.SortFunc(rows, func(a, b panelRow) int { return strings.Compare(a.name, b.name) })

	frame.Commands.Defer(func() { s.render(settings, rows) })
}

func (s *SavePanelSystem) render(settings *wherewasi.Settings, rows []panelRow) {
	if !imgui.BeginV("Where Was I", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Directory: %s", settings.Store.Dir()))
	imgui.Text(fmt.Sprintf("Format: %s", settings.Config.Format))

	if imgui.Button("Save now") {
		s.Saves.Send(wherewasi.SaveRequest{})
	}
	imgui.SameLine()
	if imgui.Button("Reload") {
		s.Loads.Send(wherewasi.LoadRequest{})
	}
	imgui.Separator()

	if len(rows) == 0 {
		imgui.Text("No tracked entities")
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("TrackedTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Translation")
		imgui.TableSetupColumn("Rotation (xyzw)")
		imgui.TableSetupColumn("Scale")
		imgui.TableHeadersRow()

		for _, row := range rows {
			t := row.transform
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(row.name)
			imgui.TableNextColumn()
			imgui.Text(formatFloats(t.Translation[:]...))
			imgui.TableNextColumn()
			imgui.Text(formatFloats(t.Rotation.V[0], t.Rotation.V[1], t.Rotation.V[2], t.Rotation.W))
			imgui.TableNextColumn()
			imgui.Text(formatFloats(t.Scale[:]...))
		}
		imgui.EndTable()
	}

	imgui.End()
}

func formatFloats(values ...float32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return strings.Join(parts, ", ")
}
