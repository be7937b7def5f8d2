// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
)

var (
	ErrBadCommand      = errors.New("bad command")
	ErrMissingParam    = errors.New("missing parameter")
	ErrUnknownParam    = errors.New("unknown parameter")
	ErrPollExists      = errors.New("poll already exists")
	ErrPollNotFound    = errors.New("poll not found")
	ErrOptionExists    = errors.New("option already exists")
	// ErrOptionNotFound is not returned by the engine, which reports missing
	// vote options in VoteResult.NotExists. It keeps its reply text for callers
	// that reject a single option.
	ErrOptionNotFound  = errors.New("option not found")
	ErrInvalidPollName = errors.New("invalid poll name")
	ErrUnimplemented   = errors.New("unimplemented")
)

// NameError attaches the offending poll or option name to one of the errors above
type NameError struct {
	Name string
	Err  error
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Name)
}

func (e *NameError) Unwrap() error {
	return e.Err
}

// WithName wraps err with the name it refers to
func WithName(err error, name string) error {
	return &NameError{Name: name, Err: err}
}

// NameOf returns the name carried by err, if any
func NameOf(err error) string {
	var ne *NameError
	if errors.As(err, &ne) {
		return ne.Name
	}
	return ""
}

// IsUserError reports whether err comes from bad input rather than a failure of the bot
func IsUserError(err error) bool {
	for _, target := range []error{
		ErrBadCommand,
		ErrMissingParam,
		ErrUnknownParam,
		ErrPollExists,
		ErrPollNotFound,
		ErrOptionExists,
		ErrOptionNotFound,
		ErrInvalidPollName,
		ErrUnimplemented,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
