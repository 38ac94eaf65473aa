package jpgpdf

import (
	"errors"
	"fmt"
)

var (
	// ErrInputNotFound is returned when the input directory is missing or unreadable
	ErrInputNotFound = errors.New("input directory not found")

	// ErrEmptyInput is returned when there are no images to convert
	ErrEmptyInput = errors.New("no input images")
)

// DecodeError is returned when an input file cannot be read or parsed as an image.
type DecodeError struct {
	File string // Base name of the offending file
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %v: %v", e.File, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError is returned when the output document cannot be produced or written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %v: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
