// Copyright (C) 2021-2026, The Revault Developers. All rights reserved.
// See the file LICENSE for licensing terms.

package revaultd

import (
	"errors"
	"fmt"
)

// ErrorKind partitions every failure this package can surface. Callers
// branch on the kind; the underlying cause stays reachable through
// errors.Is/errors.As.
type ErrorKind int

const (
	// KindUnexpected is an internal failure unrelated to the wire
	// protocol, such as an unresolvable socket path or a result payload
	// that does not match the expected shape.
	KindUnexpected ErrorKind = iota

	// KindStart means the daemon process could not be launched or its
	// launcher exited non-zero.
	KindStart

	// KindRPC means the daemon replied with an explicit error payload.
	KindRPC

	// KindIO is a transport-level failure: the socket is missing, the
	// connection was refused or reset, or it closed before a full
	// response arrived.
	KindIO

	// KindNoAnswer means a response was received but carried neither a
	// result nor an error.
	KindNoAnswer
)

func (k ErrorKind) String() string {
	switch k {
	case KindStart:
		return "start error"
	case KindRPC:
		return "rpc error"
	case KindIO:
		return "io error"
	case KindNoAnswer:
		return "no answer"
	default:
		return "unexpected error"
	}
}

// Error is the single error type crossing the package boundary. No raw
// transport or decoding error leaves this package unclassified.
type Error struct {
	Kind    ErrorKind
	Message string

	// Err is the underlying cause, if any. For KindIO it carries the OS
	// error so errors.Is(err, syscall.ECONNREFUSED) and friends work.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("revaultd: %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("revaultd: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a client Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func newError(kind ErrorKind, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

func startError(cause error, format string, args ...interface{}) *Error {
	return newError(KindStart, cause, format, args...)
}

func ioError(cause error, format string, args ...interface{}) *Error {
	return newError(KindIO, cause, format, args...)
}
