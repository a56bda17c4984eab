package files

import (
	"errors"
	"os"
)

var (
	// ErrNotFound is returned when the org file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrNotText is returned when the file is not valid UTF-8.
	ErrNotText = errors.New("file is not UTF-8 text")
)

// notFound wraps both sentinels so callers can match either.
type notFound struct {
	path string
}

func (e notFound) Error() string {
	return ErrNotFound.Error() + ": " + e.path
}

func (e notFound) Is(target error) bool {
	return target == ErrNotFound || target == os.ErrNotExist
}
