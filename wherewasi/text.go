package wherewasi

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/wherewasi/transform"
)

// TextCodec is the line-oriented ".state" format: a version line, then the
// translation, rotation (x, y, z, w) and scale sections, one float per line,
// each section preceded by a blank line and a header.
type TextCodec struct{}

func (TextCodec) Extension() string {
	return ".state"
}

func (TextCodec) Encode(w io.Writer, t transform.Transform) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(Version + "\n\n")
	writeSection(bw, "translation", t.Translation[:]...)
	bw.WriteString("\n")
	writeSection(bw, "rotation", t.Rotation.V[0], t.Rotation.V[1], t.Rotation.V[2], t.Rotation.W)
	bw.WriteString("\n")
	writeSection(bw, "scale", t.Scale[:]...)

	return bw.Flush()
}

func writeSection(bw *bufio.Writer, header string, values ...float32) {
	bw.WriteString(header + ":\n")
	for _, v := range values {
		bw.WriteString(formatFloat(v))
		bw.WriteByte('\n')
	}
}

// formatFloat writes the shortest decimal that reads back to the same float32,
// without an exponent.
func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

func (TextCodec) Decode(r io.Reader) (transform.Transform, error) {
	lr := &lineReader{scanner: bufio.NewScanner(r)}

	version, err := lr.next()
	if err != nil {
		return transform.Transform{}, err
	}
	if version != Version {
		return transform.Transform{}, &ParseError{Line: lr.line, Err: fmt.Errorf("%w: %s", ErrWrongVersion, version)}
	}

	var t transform.Transform
	var rotation [4]float32
	for _, dst := range [][]float32{t.Translation[:], rotation[:], t.Scale[:]} {
		// blank separator and header
		if err := lr.skip(2); err != nil {
			return transform.Transform{}, err
		}
		for i := range dst {
			if dst[i], err = lr.float(); err != nil {
				return transform.Transform{}, err
			}
		}
	}

	t.Rotation = mgl32.Quat{W: rotation[3], V: mgl32.Vec3{rotation[0], rotation[1], rotation[2]}}
	return t, nil
}

type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func (lr *lineReader) next() (string, error) {
	lr.line++
	if !lr.scanner.Scan() {
		if err := lr.scanner.Err(); err != nil {
			return "", &ParseError{Line: lr.line, Err: err}
		}
		return "", &ParseError{Line: lr.line, Err: ErrExpectedLine}
	}
	return strings.TrimSuffix(lr.scanner.Text(), "\r"), nil
}

func (lr *lineReader) skip(n int) error {
	for range n {
		if _, err := lr.next(); err != nil {
			return err
		}
	}
	return nil
}

func (lr *lineReader) float() (float32, error) {
	text, err := lr.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 32)
	if err != nil {
		return 0, &ParseError{Line: lr.line, Err: fmt.Errorf("invalid float %q", text)}
	}
	return float32(v), nil
}
