package envfile

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound = errors.New("env file not found")
	ErrParse        = errors.New("malformed env line")
)

// ParseError reports a line that could not be split into a key and a value.
type ParseError struct {
	File string
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %q", e.File, e.Line, ErrParse, e.Text)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}
