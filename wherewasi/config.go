package wherewasi

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
)

// DefaultDirectory is used when neither the plugin nor the environment sets one.
const DefaultDirectory = "./assets/saves"

// Config controls where and how transforms are stored. Environment variables
// take precedence over values set in code.
type Config struct {
	Directory string `env:"WHEREWASI_DIR"`
	Format    Format `env:"WHEREWASI_FORMAT"`
}

// DefaultConfig returns the text format in DefaultDirectory.
func DefaultConfig() Config {
	return Config{Directory: DefaultDirectory, Format: FormatText}
}

// LoadConfig fills the unset fields of base with defaults, then applies
// environment overrides.
func LoadConfig(base Config) (Config, error) {
	cfg := DefaultConfig()
	if base.Directory != "" {
		cfg.Directory = base.Directory
	}
	if base.Format != "" {
		cfg.Format = base.Format
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if _, err := ParseFormat(string(cfg.Format)); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// NewStore builds the Store described by c.
func (c Config) NewStore() (*Store, error) {
	codec, err := CodecFor(c.Format)
	if err != nil {
		return nil, err
	}
	return NewStore(c.Directory, codec), nil
}

// Settings is the singleton the plugin's systems read. Watcher is nil unless
// the plugin watches the save directory.
type Settings struct {
	Config  Config
	Store   *Store
	Logger  *log.Logger
	Watcher *Watcher
}
