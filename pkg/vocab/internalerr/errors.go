package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNoSorter      = errors.New("no usable external sort mechanism")
	ErrSpoolClosed   = errors.New("spool already closed")
	ErrInvalidConfig = errors.New("invalid configuration")
)
