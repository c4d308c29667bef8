// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures that are the caller's fault.
type ErrorKind string

const (
	KindInvalidInput   ErrorKind = "invalid_input"
	KindOutOfRange     ErrorKind = "out_of_range"
	KindMalformedRange ErrorKind = "malformed_range"
)

// Sentinels for errors.Is. Every OperationError unwraps to the sentinel of
// its kind.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrOutOfRange     = errors.New("page out of range")
	ErrMalformedRange = errors.New("malformed page range")
)

// OperationError reports a rejected input. Subject names what was rejected:
// a file name, a range, a parameter value.
type OperationError struct {
	Kind    ErrorKind
	Subject string
	Msg     string
	Err     error
}

func (e *OperationError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *OperationError) Unwrap() []error {
	errs := []error{e.Kind.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindOutOfRange:
		return ErrOutOfRange
	case KindMalformedRange:
		return ErrMalformedRange
	default:
		return ErrInvalidInput
	}
}

// Errorf builds an OperationError with a formatted message.
func Errorf(kind ErrorKind, subject, format string, args ...any) *OperationError {
	return &OperationError{Kind: kind, Subject: subject, Msg: fmt.Sprintf(format, args...)}
}

// WrapInvalid marks err as an InvalidInput failure concerning subject.
func WrapInvalid(subject string, err error) *OperationError {
	return &OperationError{
		Kind:    KindInvalidInput,
		Subject: subject,
		Msg:     fmt.Sprintf("%s is not a readable PDF or supported image", subject),
		Err:     err,
	}
}

// KindOf returns the kind of err, or "" when err is not an OperationError
// and matches no sentinel.
func KindOf(err error) ErrorKind {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	switch {
	case errors.Is(err, ErrMalformedRange):
		return KindMalformedRange
	case errors.Is(err, ErrOutOfRange):
		return KindOutOfRange
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	}
	return ""
}
