package types

import "fmt"

// ErrInvalidPath is returned when a library root is missing or unreadable.
type ErrInvalidPath struct {
	Path string
	Err  error
}

func (e ErrInvalidPath) Error() string {
	return fmt.Sprintf("invalid library path %s: %v", e.Path, e.Err)
}

func (e ErrInvalidPath) Unwrap() error { return e.Err }

// ErrArchive is returned when an archive cannot be read or extracted.
type ErrArchive struct {
	Path string
	Err  error
}

func (e ErrArchive) Error() string {
	return fmt.Sprintf("archive %s: %v", e.Path, e.Err)
}

func (e ErrArchive) Unwrap() error { return e.Err }

// ErrImageDecode is returned when an image's header or pixels cannot be decoded.
type ErrImageDecode struct {
	Path string
	Err  error
}

func (e ErrImageDecode) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e ErrImageDecode) Unwrap() error { return e.Err }

// ErrUnitNotFound is returned when no unit in the library has the given name.
type ErrUnitNotFound struct {
	Name string
}

func (e ErrUnitNotFound) Error() string {
	return fmt.Sprintf("texture %q not found in library", e.Name)
}

// ErrPassNotFound is returned when a unit has no file to offer.
type ErrPassNotFound struct {
	Unit string
}

func (e ErrPassNotFound) Error() string {
	return fmt.Sprintf("texture %q has no usable pass", e.Unit)
}
