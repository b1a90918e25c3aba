package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/wherewasi/ecs"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type stageRecorder struct {
	log *[]string
}

func (s stageRecorder) Execute(frame *ecs.UpdateFrame) {
	*s.log = append(*s.log, frame.Stage.String())
}

type settings struct {
	Speed float32
}

type singletonSystem struct {
	Settings ecs.Singleton[settings]
	seen     float32
}

func (s *singletonSystem) Execute(frame *ecs.UpdateFrame) {
	s.seen = s.Settings.Get().Speed
}

func TestScheduler(t *testing.T) {
	t.Run("queries are initialised and executed", func(t *testing.T) {
		storage := newTestStorage()
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		scheduler.Register(movement)

		id := storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 2})
		scheduler.Once(1.0)
		scheduler.Once(1.0)

		assert.Equal(t, 2, movement.ExecuteCount)
		assert.Equal(t, Position{X: 2, Y: 4}, *ecs.ReadComponent[Position](storage, id))
	})

	t.Run("stage order", func(t *testing.T) {
		storage := newTestStorage()
		scheduler := ecs.NewScheduler(storage)

		var log []string
		rec := stageRecorder{log: &log}
		scheduler.RegisterStage(ecs.Last, rec)
		scheduler.RegisterStage(ecs.Update, rec)
		scheduler.RegisterStage(ecs.PostStartup, rec)
		scheduler.RegisterStage(ecs.Startup, rec)

		assert.False(t, scheduler.Started())
		scheduler.Once(0)
		scheduler.Once(0)
		assert.True(t, scheduler.Started())

		assert.Equal(t, []string{
			"Startup", "PostStartup", "Update", "Last",
			"Update", "Last",
		}, log)
	})

	t.Run("startup commands are visible in post startup", func(t *testing.T) {
		storage := newTestStorage()
		scheduler := ecs.NewScheduler(storage)

		scheduler.RegisterStage(ecs.Startup, &testSpawnSystem{})
		counter := &testCountSystem{}
		scheduler.RegisterStage(ecs.PostStartup, counter)

		scheduler.Once(0)
		assert.Equal(t, []int{2}, counter.counts)
	})

	t.Run("singleton fields", func(t *testing.T) {
		storage := newTestStorage()
		ecs.NewSingleton(storage, settings{Speed: 3})
		scheduler := ecs.NewScheduler(storage)

		system := &singletonSystem{}
		scheduler.Register(system)
		scheduler.Once(0)

		assert.Equal(t, float32(3), system.seen)
	})

	t.Run("unknown stage panics", func(t *testing.T) {
		scheduler := ecs.NewScheduler(newTestStorage())
		assert.Panics(t, func() { scheduler.RegisterStage(ecs.Stage(42), &MovementSystem{}) })
		assert.Equal(t, "Stage(42)", ecs.Stage(42).String())
	})

	t.Run("stats", func(t *testing.T) {
		scheduler := ecs.NewScheduler(newTestStorage())
		scheduler.Register(&MovementSystem{})
		scheduler.RegisterStage(ecs.Startup, ecs.SystemFunc(func(*ecs.UpdateFrame) {}))

		for range 3 {
			scheduler.Once(0.016)
		}

		stats := scheduler.GetStats()
		require.Equal(t, 2, stats.SystemCount)
		assert.Equal(t, int64(3), stats.Frames)
		assert.Equal(t, int64(4), stats.TotalExecutions)

		assert.Equal(t, ecs.Startup, stats.Systems[0].Stage)
		assert.Equal(t, int64(1), stats.Systems[0].ExecutionCount)
		assert.Equal(t, "MovementSystem", stats.Systems[1].Name)
		assert.Equal(t, int64(3), stats.Systems[1].ExecutionCount)
		assert.LessOrEqual(t, stats.Systems[1].MinDuration, stats.Systems[1].MaxDuration)
	})

	t.Run("run until cancelled", func(t *testing.T) {
		scheduler := ecs.NewScheduler(newTestStorage())
		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		scheduler.Run(ctx, 5*time.Millisecond)

		assert.Greater(t, movement.ExecuteCount, 0)
	})
}
