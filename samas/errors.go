package samas

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrEmptyInput      = errors.New("input text is empty")
	ErrNoRows          = errors.New("no dataset rows")
	ErrMissingColumn   = errors.New("required column not found")
	ErrUnsupportedType = errors.New("unsupported dataset source")
	ErrModelDisabled   = errors.New("model artifact not configured")
)

// LoadError reports a dataset source that could not be read or parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadErr(source string, err error) error {
	if err == nil {
		return nil
	}
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return &LoadError{Source: source, Err: err}
}
