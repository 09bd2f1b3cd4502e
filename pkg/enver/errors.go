package enver

import "fmt"

// ElementError is returned by ListOf when one list element fails conversion.
type ElementError struct {
	Key   string
	Index int
	Value string
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("env var %s: element %d (%q): %v", e.Key, e.Index, e.Value, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}
