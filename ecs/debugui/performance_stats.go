package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/wherewasi/ecs"
)

// StatsPanelSystem plots frame times and lists per-system timings.
type StatsPanelSystem struct {
	scheduler    *ecs.Scheduler
	frameHistory []float32
	frameIndex   int
}

// NewStatsPanelSystem keeps historyFrames frame times for the graph.
func NewStatsPanelSystem(scheduler *ecs.Scheduler, historyFrames int) *StatsPanelSystem {
	return &StatsPanelSystem{
		scheduler:    scheduler,
		frameHistory: make([]float32, max(historyFrames, 1)),
	}
}

func (ps *StatsPanelSystem) Execute(frame *ecs.UpdateFrame) {
	ps.frameHistory[ps.frameIndex] = float32(frame.DeltaTime * 1000.0)
	ps.frameIndex = (ps.frameIndex + 1) % len(ps.frameHistory)

	storage := frame.Storage
	frame.Commands.Defer(func() { ps.render(storage) })
}

func (ps *StatsPanelSystem) render(storage *ecs.Storage) {
	if !imgui.BeginV("Scheduler Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ps.scheduler.GetStats()

	imgui.Text(fmt.Sprintf("Entities: %d", storage.Len()))
	imgui.Text(fmt.Sprintf("Archetypes: %d", storage.ArchetypeCount()))
	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))

	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(len(ps.frameHistory))
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Stage")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Last")
		imgui.TableHeadersRow()

		for _, sys := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(sys.Stage.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(sys.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(sys.LastDuration.String())
		}
		imgui.EndTable()
	}

	imgui.End()
}
