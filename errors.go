package bongo

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the loader and the input capture wraps
// exactly one of these, so callers can branch with errors.Is.
var (
	ErrIO                  = errors.New("bongo: i/o error")
	ErrParse               = errors.New("bongo: parse error")
	ErrInvalidConfig       = errors.New("bongo: invalid config")
	ErrMissingFile         = errors.New("bongo: missing file")
	ErrUnsupportedPlatform = errors.New("bongo: unsupported platform")
)

// LoadError describes a failure while loading an asset pack. Kind is one of
// the Err* sentinels above; Path names the file or directory involved.
type LoadError struct {
	Kind error
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func ioError(path string, err error) *LoadError {
	return &LoadError{Kind: ErrIO, Path: path, Err: err}
}

func parseError(path string, err error) *LoadError {
	return &LoadError{Kind: ErrParse, Path: path, Err: err}
}

func invalidConfig(path, format string, args ...any) *LoadError {
	return &LoadError{Kind: ErrInvalidConfig, Path: path, Err: fmt.Errorf(format, args...)}
}

func missingFile(path string, err error) *LoadError {
	return &LoadError{Kind: ErrMissingFile, Path: path, Err: err}
}
