package wherewasi

import (
	"log"
	"os"

	"github.com/plus3/wherewasi/ecs"
	"github.com/plus3/wherewasi/transform"
)

// Plugin saves tagged transforms on WindowClosing and restores them in
// PostStartup. Zero fields fall back to DefaultConfig; WHEREWASI_DIR and
// WHEREWASI_FORMAT override both.
type Plugin struct {
	// Directory where save files are stored and loaded from.
	Directory string
	Format    Format
	// Watch re-applies save files edited while the app runs.
	Watch  bool
	Logger *log.Logger

	watcher *Watcher
}

func (p *Plugin) Build(app *ecs.App) {
	logger := p.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "wherewasi: ", log.LstdFlags)
	}

	ecs.RegisterComponent[WhereWasI](app.Registry)
	ecs.RegisterComponent[transform.Transform](app.Registry)

	cfg, err := LoadConfig(Config{Directory: p.Directory, Format: p.Format})
	if err != nil {
		logger.Printf("invalid configuration, falling back to text format: %v", err)
		cfg.Format = FormatText
	}
	store, err := cfg.NewStore()
	if err != nil {
		logger.Printf("invalid configuration, using defaults: %v", err)
		cfg = DefaultConfig()
		store = NewStore(cfg.Directory, TextCodec{})
	}

	settings := Settings{Config: cfg, Store: store, Logger: logger}
	if p.Watch {
		w, err := NewWatcher(store)
		if err != nil {
			logger.Printf("could not watch %s: %v", store.Dir(), err)
		} else {
			p.watcher = w
			settings.Watcher = w
		}
	}
	app.Storage.AddSingleton(settings)

	app.AddSystems(ecs.PostStartup, &LoadSystem{})
	app.AddSystems(ecs.Update, &LoadSystem{})
	app.AddSystems(ecs.Last, &SaveSystem{})
	if p.watcher != nil {
		app.AddSystems(ecs.Update, NewWatchSystem(p.watcher))
	}
}

// Close stops the file watcher, if any. App.Shutdown calls it.
func (p *Plugin) Close() error {
	if p.watcher == nil {
		return nil
	}
	return p.watcher.Close()
}
