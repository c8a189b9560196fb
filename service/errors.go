package service

import "errors"

var (
	// ErrLawNotFound is returned when a law number cannot be resolved.
	ErrLawNotFound = errors.New("law not found")

	// ErrNoSession is returned for operations that require an existing
	// navigation session.
	ErrNoSession = errors.New("no active session")

	// ErrCannotGoBack is returned when history has no earlier entry.
	ErrCannotGoBack = errors.New("cannot go back")

	// ErrCannotGoForward is returned when history has no later entry.
	ErrCannotGoForward = errors.New("cannot go forward")

	// ErrConfirmationRequired is returned when a bulk table clear is
	// requested without the explicit confirmation flag.
	ErrConfirmationRequired = errors.New("table clearing requires confirmation")
)
