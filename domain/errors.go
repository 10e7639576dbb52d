package domain

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrorFetchFailed         ErrorCode = "FETCH_FAILED"
	ErrorNotConfigured       ErrorCode = "PROVIDER_NOT_CONFIGURED"
	ErrorGenerationProvider  ErrorCode = "GENERATION_PROVIDER"
	ErrorSynthesisProvider   ErrorCode = "SYNTHESIS_PROVIDER"
	ErrorCloneCreation       ErrorCode = "CLONE_CREATION"
	ErrorVoiceNotConfigured  ErrorCode = "VOICE_NOT_CONFIGURED"
	ErrorEmptyScript         ErrorCode = "EMPTY_SCRIPT"
	ErrorNoScriptProvided    ErrorCode = "NO_SCRIPT_PROVIDED"
	ErrorInvalidSample       ErrorCode = "INVALID_SAMPLE"
	ErrorNotFound            ErrorCode = "NOT_FOUND"
	ErrorRateLimited         ErrorCode = "RATE_LIMITED"
	ErrorInternal            ErrorCode = "INTERNAL"
)

// Error carries a stable code for the route layer plus a human-readable
// reason for the caller.
type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func NewError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

func Errorf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the domain error code from err, or ErrorInternal when err
// carries none.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrorInternal
}
