package palc

import "github.com/pkg/errors"

var (
	// ErrInputNotFound is returned when an input file does not exist
	ErrInputNotFound = errors.New("input file not found")
	// ErrInputUnreadable is returned when an input file cannot be decoded
	ErrInputUnreadable = errors.New("input file unreadable")
	// ErrMalformedFrame is returned when a frame of an image cannot be
	// converted
	ErrMalformedFrame = errors.New("malformed frame data")
	// ErrOutputDirectoryMissing is returned when an output directory does
	// not exist
	ErrOutputDirectoryMissing = errors.New("output directory missing")
	// ErrWriteFailure is returned when an output file cannot be written
	ErrWriteFailure = errors.New("write failure")
)
