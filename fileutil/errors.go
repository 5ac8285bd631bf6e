package fileutil

import "errors"

// Errors raised by the package's own argument checks. Platform errors are
// never wrapped in these.
var (
	// ErrPathMissing is returned when a required path is empty.
	ErrPathMissing = errors.New("path is missing")
	// ErrSourcePathMissing is returned when the source of a move or copy is empty.
	ErrSourcePathMissing = errors.New("source path is missing")
	// ErrTargetPathMissing is returned when the target of a move or copy is empty.
	ErrTargetPathMissing = errors.New("target path is missing")
	// ErrLoaderMissing is returned when a resource is read without a loader.
	ErrLoaderMissing = errors.New("resource loader is missing")
)
