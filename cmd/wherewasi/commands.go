package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/plus3/wherewasi/transform"
	"github.com/plus3/wherewasi/wherewasi"
)

func openStore(dir, format string) (*wherewasi.Store, error) {
	base := wherewasi.Config{Directory: dir}
	if format != "" {
		f, err := wherewasi.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		base.Format = f
	}

	cfg, err := wherewasi.LoadConfig(base)
	if err != nil {
		return nil, err
	}
	return cfg.NewStore()
}

type command struct {
	store *wherewasi.Store
	out   io.Writer
}

func (c *command) list() error {
	names, err := c.store.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(c.out, name)
	}
	return nil
}

func (c *command) show(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show NAME")
	}
	t, err := c.store.Load(args[0])
	if err != nil {
		return err
	}
	return wherewasi.YAMLCodec{}.Encode(c.out, t)
}

// set moves NAME to X Y Z, keeping its saved rotation and scale when a save
// file exists.
func (c *command) set(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: set NAME X Y Z")
	}

	var xyz [3]float32
	for i, arg := range args[1:] {
		v, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q", arg)
		}
		xyz[i] = float32(v)
	}

	t, err := c.store.Load(args[0])
	if err != nil {
		if !errors.Is(err, wherewasi.ErrNotFound) {
			return err
		}
		t = transform.Identity()
	}
	t.Translation = xyz

	if err := c.store.Save(args[0], t); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s -> %v\n", c.store.Path(args[0]), t.Translation)
	return nil
}

func (c *command) remove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rm NAME")
	}
	return c.store.Remove(args[0])
}

// convert rewrites every save file in the other format, leaving the originals.
func (c *command) convert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	to := fs.String("to", "yaml", "Target format: text or yaml.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	format, err := wherewasi.ParseFormat(*to)
	if err != nil {
		return err
	}
	codec, err := wherewasi.CodecFor(format)
	if err != nil {
		return err
	}
	if codec.Extension() == c.store.Codec().Extension() {
		return fmt.Errorf("save files are already in %s format", format)
	}
	target := wherewasi.NewStore(c.store.Dir(), codec)

	names, err := c.store.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		t, err := c.store.Load(name)
		if err != nil {
			return err
		}
		if err := target.Save(name, t); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s -> %s\n", c.store.Path(name), target.Path(name))
	}
	return nil
}
