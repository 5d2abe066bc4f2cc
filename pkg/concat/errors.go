package concat

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a merge is requested with no files.
var ErrEmptyInput = errors.New("no files to concatenate")

// FileReadError reports a source file that could not be opened or read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}
