package sysmon

import (
	"errors"
	"fmt"
)

// Code classifies a sysmon failure.
type Code int

const (
	// CodeInvalidArgument means the caller violated a precondition.
	CodeInvalidArgument Code = iota + 1
	// CodeIO means a system read failed.
	CodeIO
	// CodeParse means malformed config or an unexpected OS text format.
	CodeParse
	// CodeNotSupported means the feature is absent on this host.
	CodeNotSupported
	// CodeOutOfMemory exists for parity with the result-code surface; Go
	// programs do not observe allocation failure, so it is never produced.
	CodeOutOfMemory
	// CodeInternal means an invariant was violated.
	CodeInternal
)

func (c Code) String() string {
	switch c {
	case CodeInvalidArgument:
		return "invalid_argument"
	case CodeIO:
		return "io"
	case CodeParse:
		return "parse"
	case CodeNotSupported:
		return "not_supported"
	case CodeOutOfMemory:
		return "out_of_memory"
	case CodeInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error couples a result code with a human-readable cause.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}

// CodeOf extracts the result code from an error returned by this package.
// Errors without a code report CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
