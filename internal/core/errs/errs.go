// Package errs holds the error categories shared by every engine package.
// Concrete errors wrap one of these so callers can branch with errors.Is.
package errs

import "errors"

var (
	// ErrConfig marks invalid startup configuration. Fatal for the subsystem
	// that reported it.
	ErrConfig = errors.New("config error")

	// ErrLookup marks a runtime lookup against an unknown template or handle.
	// Logged and absorbed; the game loop continues.
	ErrLookup = errors.New("lookup error")

	// ErrState marks a request that is invalid for the current state, such as a
	// double release. Callers normally ignore it.
	ErrState = errors.New("state error")
)
