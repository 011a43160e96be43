// Package apperr defines the error categories surfaced to API callers.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the caller-facing category of a failure.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindExtraction    Kind = "extraction"
	KindConfiguration Kind = "configuration"
	KindUpstream      Kind = "upstream"
	KindTimeout       Kind = "timeout"
	KindInternal      Kind = "internal"
)

// Error is a categorized failure. Code is a stable machine-readable identifier,
// Hint is an optional remediation for the caller.
type Error struct {
	Kind           Kind
	Code           string
	Message        string
	Hint           string
	UpstreamStatus int
	Err            error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" {
		msg = e.Code
	}
	if e.UpstreamStatus != 0 {
		msg = fmt.Sprintf("%s (upstream status %d)", msg, e.UpstreamStatus)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same Kind and Code. An empty Code on the
// target matches any code of that Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

// WithErr returns a copy of e wrapping cause.
func (e *Error) WithErr(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

// WithMessage returns a copy of e with a different message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func Extraction(code, message, hint string) *Error {
	return &Error{Kind: KindExtraction, Code: code, Message: message, Hint: hint}
}

func Configuration(code, message string) *Error {
	return &Error{Kind: KindConfiguration, Code: code, Message: message}
}

func Upstream(code, message string, status int, cause error) *Error {
	return &Error{Kind: KindUpstream, Code: code, Message: message, UpstreamStatus: status, Err: cause}
}

func Timeout(code, message string, cause error) *Error {
	return &Error{Kind: KindTimeout, Code: code, Message: message, Err: cause}
}

func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Code: "internal", Message: message, Err: cause}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// KindOf reports the category of err, KindInternal when uncategorized.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}
