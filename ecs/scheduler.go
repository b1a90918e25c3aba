package ecs

import (
	"context"
	"reflect"
	"strconv"
	"time"
)

// Stage orders groups of systems within a frame.
type Stage int

const (
	// Startup systems run once, before the first Update.
	Startup Stage = iota
	// PostStartup systems run once, after Startup commands have been applied.
	PostStartup
	// Update systems run every frame.
	Update
	// Last systems run every frame after Update.
	Last

	stageCount
)

func (s Stage) String() string {
	switch s {
	case Startup:
		return "Startup"
	case PostStartup:
		return "PostStartup"
	case Update:
		return "Update"
	case Last:
		return "Last"
	}
	return "Stage(" + strconv.Itoa(int(s)) + ")"
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Stage          Stage
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type storageBinder interface {
	Init(storage *Storage)
}

type queryExecutor interface {
	Execute()
}

type systemEntry struct {
	system  System
	name    string
	stage   Stage
	queries []queryExecutor

	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs registered systems stage by stage.
type Scheduler struct {
	storage *Storage
	stages  [stageCount][]*systemEntry
	started bool
	frames  int64
}

// NewScheduler creates a scheduler for storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Register adds system to the Update stage.
func (s *Scheduler) Register(system System) {
	s.RegisterStage(Update, system)
}

// RegisterStage adds system to stage and binds its Query, Singleton and
// Events fields to the scheduler's storage.
func (s *Scheduler) RegisterStage(stage Stage, system System) {
	if stage < 0 || stage >= stageCount {
		panic("ecs: unknown stage " + stage.String())
	}

	entry := &systemEntry{
		system:      system,
		name:        systemName(system),
		stage:       stage,
		queries:     s.bindFields(system),
		minDuration: time.Duration(1<<63 - 1),
	}
	s.stages[stage] = append(s.stages[stage], entry)
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

func (s *Scheduler) bindFields(system System) []queryExecutor {
	value := reflect.ValueOf(system)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return nil
	}
	value = value.Elem()

	var queries []queryExecutor
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		addr := field.Addr().Interface()
		if binder, ok := addr.(storageBinder); ok {
			binder.Init(s.storage)
		}
		if q, ok := addr.(queryExecutor); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Started reports whether the startup stages have run.
func (s *Scheduler) Started() bool {
	return s.started
}

// Once runs one frame. The first call also runs Startup and PostStartup.
func (s *Scheduler) Once(dt float64) {
	s.storage.swapEvents()

	if !s.started {
		s.started = true
		s.runStage(Startup, dt)
		s.runStage(PostStartup, dt)
	}
	s.runStage(Update, dt)
	s.runStage(Last, dt)
	s.frames++
}

func (s *Scheduler) runStage(stage Stage, dt float64) {
	frame := newUpdateFrame(dt, stage, s.storage)

	for _, entry := range s.stages[stage] {
		for _, q := range entry.queries {
			q.Execute()
		}

		start := time.Now()
		entry.system.Execute(frame)
		entry.record(time.Since(start))
	}

	frame.Commands.Flush(s.storage)
}

func (e *systemEntry) record(d time.Duration) {
	e.executionCount++
	e.lastDuration = d
	e.totalDuration += d
	e.minDuration = min(e.minDuration, d)
	e.maxDuration = max(e.maxDuration, d)
}

// Run executes frames at the given interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution, in stage order.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{Frames: s.frames}

	for _, entries := range s.stages {
		for _, e := range entries {
			var avg time.Duration
			if e.executionCount > 0 {
				avg = e.totalDuration / time.Duration(e.executionCount)
			}
			stats.Systems = append(stats.Systems, SystemStats{
				Name:           e.name,
				Stage:          e.stage,
				ExecutionCount: e.executionCount,
				MinDuration:    e.minDuration,
				MaxDuration:    e.maxDuration,
				AvgDuration:    avg,
				LastDuration:   e.lastDuration,
				TotalDuration:  e.totalDuration,
			})
			stats.TotalExecutions += e.executionCount
		}
	}
	stats.SystemCount = len(stats.Systems)
	return stats
}
