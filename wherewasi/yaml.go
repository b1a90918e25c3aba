package wherewasi

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/plus3/wherewasi/transform"
)

// YAMLCodec stores the same record as TextCodec in a ".yaml" document.
type YAMLCodec struct{}

type yamlRecord struct {
	Version     string    `yaml:"version"`
	Translation []float32 `yaml:"translation,flow"`
	Rotation    []float32 `yaml:"rotation,flow"`
	Scale       []float32 `yaml:"scale,flow"`
}

func (YAMLCodec) Extension() string {
	return ".yaml"
}

func (YAMLCodec) Encode(w io.Writer, t transform.Transform) error {
	rec := yamlRecord{
		Version:     Version,
		Translation: t.Translation[:],
		Rotation:    []float32{t.Rotation.V[0], t.Rotation.V[1], t.Rotation.V[2], t.Rotation.W},
		Scale:       t.Scale[:],
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func (YAMLCodec) Decode(r io.Reader) (transform.Transform, error) {
	var rec yamlRecord
	if err := yaml.NewDecoder(r).Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return transform.Transform{}, &ParseError{Line: 1, Err: ErrExpectedLine}
		}
		return transform.Transform{}, fmt.Errorf("decode yaml: %w", err)
	}

	if rec.Version != Version {
		return transform.Transform{}, fmt.Errorf("%w: %s", ErrWrongVersion, rec.Version)
	}

	for _, field := range []struct {
		name string
		got  []float32
		want int
	}{
		{"translation", rec.Translation, 3},
		{"rotation", rec.Rotation, 4},
		{"scale", rec.Scale, 3},
	} {
		if len(field.got) != field.want {
			return transform.Transform{}, fmt.Errorf("%w: %s has %d values, want %d", ErrExpectedLine, field.name, len(field.got), field.want)
		}
	}

	return transform.Transform{
		Translation: mgl32.Vec3(rec.Translation),
		Rotation:    mgl32.Quat{W: rec.Rotation[3], V: mgl32.Vec3(rec.Rotation[:3])},
		Scale:       mgl32.Vec3(rec.Scale),
	}, nil
}
