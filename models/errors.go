// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"strings"

	"github.com/danielhkuo/meo-custom/validation"
)

// ErrorKind classifies a user-visible failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindDevice
	KindTransport
	KindBusinessRejected
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDevice:
		return "device"
	case KindTransport:
		return "transport"
	case KindBusinessRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Error is a classified failure carrying a message fit to show a user.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Err != nil && e.Err.Error() != e.Message {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a classified error.
func NewError(kind ErrorKind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// DeviceError reports an unavailable or denied capture device.
func DeviceError(op string, err error) *Error {
	return NewError(KindDevice, op, "microphone unavailable or permission denied", err)
}

// ValidationError aggregates every failing field rule.
type ValidationError struct {
	Failures []validation.Failure
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.String())
	}
	return "invalid intake: " + strings.Join(parts, "; ")
}

// Fields lists the failing field names in order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		fields = append(fields, f.Field)
	}
	return fields
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) ErrorKind {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return KindValidation
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// UserMessage returns the text to show for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
