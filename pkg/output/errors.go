package output

import (
	"errors"
	"fmt"
)

// ErrDestinationExists is returned when the destination exists and the sink
// is not allowed to overwrite it.
var ErrDestinationExists = errors.New("destination already exists")

// WriteError reports a destination that could not be created or written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
