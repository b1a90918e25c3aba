package wherewasi

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("wherewasi: no saved transform")
	ErrInvalidName   = errors.New("wherewasi: invalid name")
	ErrWrongVersion  = errors.New("wherewasi: wrong version")
	ErrExpectedLine  = errors.New("wherewasi: expected line to be there, but it wasn't there")
	ErrUnknownFormat = errors.New("wherewasi: unknown format")
)

// ParseError reports where decoding a save file failed.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
