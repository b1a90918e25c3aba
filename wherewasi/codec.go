package wherewasi

import (
	"fmt"
	"io"
	"strings"

	"github.com/plus3/wherewasi/transform"
)

// Version is written at the top of every save file.
const Version = "v0"

// Format selects the on-disk encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "text", "yaml" or "" (text).
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// UnmarshalText lets env and flag parsing validate the format.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f Format) String() string {
	return string(f)
}

// Codec converts a transform to and from its file representation.
type Codec interface {
	Extension() string
	Encode(w io.Writer, t transform.Transform) error
	Decode(r io.Reader) (transform.Transform, error)
}

// CodecFor returns the codec for f.
func CodecFor(f Format) (Codec, error) {
	f, err := ParseFormat(string(f))
	if err != nil {
		return nil, err
	}
	if f == FormatYAML {
		return YAMLCodec{}, nil
	}
	return TextCodec{}, nil
}
