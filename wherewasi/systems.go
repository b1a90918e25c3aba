package wherewasi

import (
	"errors"
	"iter"

	"github.com/plus3/wherewasi/ecs"
)

// LoadSystem applies saved transforms to tracked entities. In PostStartup it
// runs unconditionally; in any other stage it waits for a LoadRequest.
type LoadSystem struct {
	Tracked  ecs.Query[Tracked]
	Requests ecs.Events[LoadRequest]
	Settings ecs.Singleton[Settings]
}

func (s *LoadSystem) Execute(frame *ecs.UpdateFrame) {
	requested := s.Requests.Drain()
	if frame.Stage != ecs.PostStartup && !requested {
		return
	}

	settings := s.Settings.Get()
	if settings == nil {
		return
	}

	initialized := 0
	for _, item := range s.Tracked.Iter() {
		if applySaved(settings, item) {
			initialized++
		}
	}
	settings.Logger.Printf("initialized %d transform(s)", initialized)
}

// applySaved overwrites item's transform with the saved one. A missing file
// is silent; any other failure is logged and leaves the transform untouched.
func applySaved(settings *Settings, item Tracked) bool {
	t, err := settings.Store.Load(item.Name)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		settings.Logger.Printf("could not load transform %q: %v", item.Name, err)
		return false
	}
	*item.Transform = t
	return true
}

// SaveSystem writes every tracked transform when the window is closing or a
// SaveRequest arrives.
type SaveSystem struct {
	Tracked  ecs.Query[Tracked]
	Closing  ecs.Events[ecs.WindowClosing]
	Requests ecs.Events[SaveRequest]
	Settings ecs.Singleton[Settings]
}

func (s *SaveSystem) Execute(frame *ecs.UpdateFrame) {
	closing := s.Closing.Drain()
	requested := s.Requests.Drain()
	if !closing && !requested {
		return
	}

	settings := s.Settings.Get()
	if settings == nil {
		return
	}
	SaveAll(settings, s.Tracked.Values())
}

// SaveAll writes each item and returns how many were saved. A failed write is
// logged and does not stop the remaining ones. Files written here are not
// reported back by the settings' Watcher.
func SaveAll(settings *Settings, items iter.Seq[Tracked]) int {
	saved := 0
	for item := range items {
		if settings.Watcher != nil {
			settings.Watcher.Expect(item.Name)
		}
		if err := settings.Store.Save(item.Name, *item.Transform); err != nil {
			if settings.Watcher != nil {
				settings.Watcher.Forget(item.Name)
			}
			settings.Logger.Printf("could not save transform %q: %v", item.Name, err)
			continue
		}
		saved++
	}
	settings.Logger.Printf("saved %d transform(s) to: %s", saved, settings.Store.Dir())
	return saved
}

// WatchSystem re-applies save files edited while the app is running.
type WatchSystem struct {
	Tracked  ecs.Query[Tracked]
	Settings ecs.Singleton[Settings]

	watcher *Watcher
}

// NewWatchSystem returns a system fed by w.
func NewWatchSystem(w *Watcher) *WatchSystem {
	return &WatchSystem{watcher: w}
}

func (s *WatchSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Settings.Get()
	if settings == nil || s.watcher == nil {
		return
	}

	for {
		select {
		case name := <-s.watcher.Events:
			for _, item := range s.Tracked.Iter() {
				if item.Name == name && applySaved(settings, item) {
					settings.Logger.Printf("reloaded transform %q", name)
				}
			}
		case err := <-s.watcher.Errors:
			settings.Logger.Printf("watch %s: %v", settings.Store.Dir(), err)
		default:
			return
		}
	}
}
