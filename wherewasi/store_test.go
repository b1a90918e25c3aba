package wherewasi_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/wherewasi/transform"
	"github.com/plus3/wherewasi/wherewasi"
)

func TestValidateName(t *testing.T) {
	for _, name := range []string{"camera", "player.1", "debug cam", "ünïcode"} {
		assert.NoError(t, wherewasi.ValidateName(name), name)
	}
	for _, name := range []string{"", ".", "..", "a/b", `a\b`, "../camera"} {
		assert.ErrorIs(t, wherewasi.ValidateName(name), wherewasi.ErrInvalidName, name)
	}
}

func TestStore(t *testing.T) {
	t.Run("save creates the directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "saves")
		store := wherewasi.NewStore(dir, nil)

		require.NoError(t, store.Save("camera", sample))

		assert.Equal(t, filepath.Join(dir, "camera.state"), store.Path("camera"))
		assert.FileExists(t, store.Path("camera"))

		loaded, err := store.Load("camera")
		require.NoError(t, err)
		assert.Equal(t, sample, loaded)
	})

	t.Run("save overwrites", func(t *testing.T) {
		store := wherewasi.NewStore(t.TempDir(), wherewasi.TextCodec{})
		require.NoError(t, store.Save("camera", sample))
		require.NoError(t, store.Save("camera", transform.Identity()))

		loaded, err := store.Load("camera")
		require.NoError(t, err)
		assert.Equal(t, transform.Identity(), loaded)
	})

	t.Run("missing file", func(t *testing.T) {
		store := wherewasi.NewStore(t.TempDir(), nil)
		_, err := store.Load("nobody")
		assert.ErrorIs(t, err, wherewasi.ErrNotFound)
	})

	t.Run("corrupt file", func(t *testing.T) {
		store := wherewasi.NewStore(t.TempDir(), nil)
		require.NoError(t, os.WriteFile(store.Path("camera"), []byte("v7\n"), 0o644))

		_, err := store.Load("camera")
		assert.ErrorIs(t, err, wherewasi.ErrWrongVersion)
		assert.NotErrorIs(t, err, wherewasi.ErrNotFound)
	})

	t.Run("invalid names are rejected", func(t *testing.T) {
		store := wherewasi.NewStore(t.TempDir(), nil)
		assert.ErrorIs(t, store.Save("../escape", sample), wherewasi.ErrInvalidName)
		_, err := store.Load("")
		assert.ErrorIs(t, err, wherewasi.ErrInvalidName)
	})

	t.Run("list and remove", func(t *testing.T) {
		dir := t.TempDir()
		store := wherewasi.NewStore(dir, wherewasi.YAMLCodec{})

		names, err := store.List()
		require.NoError(t, err)
		assert.Empty(t, names)

		require.NoError(t, store.Save("player", sample))
		require.NoError(t, store.Save("camera", sample))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

		names, err = store.List()
		require.NoError(t, err)
		assert.Equal(t, []string{"camera", "player"}, names)

		require.NoError(t, store.Remove("player"))
		assert.ErrorIs(t, store.Remove("player"), wherewasi.ErrNotFound)

		names, err = store.List()
		require.NoError(t, err)
		assert.Equal(t, []string{"camera"}, names)
	})

	t.Run("list sorts by name and skips invalid files", func(t *testing.T) {
		dir := t.TempDir()
		store := wherewasi.NewStore(dir, nil)
		for _, name := range []string{"cam", "a-b", "a"} {
			require.NoError(t, store.Save(name, sample))
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".state"), nil, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "..state"), nil, 0o644))

		names, err := store.List()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "a-b", "cam"}, names)
	})

	t.Run("list of missing directory", func(t *testing.T) {
		store := wherewasi.NewStore(filepath.Join(t.TempDir(), "absent"), nil)
		names, err := store.List()
		assert.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("name from path", func(t *testing.T) {
		dir := t.TempDir()
		store := wherewasi.NewStore(dir, nil)

		name, ok := store.NameFromPath(filepath.Join(dir, "camera.state"))
		assert.True(t, ok)
		assert.Equal(t, "camera", name)

		_, ok = store.NameFromPath(filepath.Join(dir, "camera.yaml"))
		assert.False(t, ok)
		_, ok = store.NameFromPath(filepath.Join(dir, "sub", "camera.state"))
		assert.False(t, ok)
		_, ok = store.NameFromPath(filepath.Join(dir, ".state"))
		assert.False(t, ok)
	})
}

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("WHEREWASI_DIR", "")
		t.Setenv("WHEREWASI_FORMAT", "")

		cfg, err := wherewasi.LoadConfig(wherewasi.Config{})
		require.NoError(t, err)
		assert.Equal(t, wherewasi.DefaultConfig(), cfg)
		assert.Equal(t, "./assets/saves", cfg.Directory)
	})

	t.Run("code values kept", func(t *testing.T) {
		t.Setenv("WHEREWASI_DIR", "")
		t.Setenv("WHEREWASI_FORMAT", "")

		cfg, err := wherewasi.LoadConfig(wherewasi.Config{Directory: "saves/basic", Format: wherewasi.FormatYAML})
		require.NoError(t, err)
		assert.Equal(t, "saves/basic", cfg.Directory)
		assert.Equal(t, wherewasi.FormatYAML, cfg.Format)
	})

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv("WHEREWASI_DIR", "/tmp/elsewhere")
		t.Setenv("WHEREWASI_FORMAT", "yaml")

		cfg, err := wherewasi.LoadConfig(wherewasi.Config{Directory: "saves/basic"})
		require.NoError(t, err)
		assert.Equal(t, "/tmp/elsewhere", cfg.Directory)
		assert.Equal(t, wherewasi.FormatYAML, cfg.Format)

		store, err := cfg.NewStore()
		require.NoError(t, err)
		assert.Equal(t, ".yaml", store.Codec().Extension())
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Setenv("WHEREWASI_DIR", "")
		t.Setenv("WHEREWASI_FORMAT", "xml")

		_, err := wherewasi.LoadConfig(wherewasi.Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})

	t.Run("invalid format in code", func(t *testing.T) {
		t.Setenv("WHEREWASI_DIR", "")
		t.Setenv("WHEREWASI_FORMAT", "")

		_, err := wherewasi.LoadConfig(wherewasi.Config{Format: "xml"})
		assert.ErrorIs(t, err, wherewasi.ErrUnknownFormat)
	})
}
