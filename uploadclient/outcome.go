// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package uploadclient

import "github.com/danielhkuo/meo-custom/models"

// Status discriminates an Outcome.
type Status int

const (
	Confirmed Status = iota + 1
	Rejected
	TransportFailed
)

func (s Status) String() string {
	switch s {
	case Confirmed:
		return "confirmed"
	case Rejected:
		return "rejected"
	case TransportFailed:
		return "transport_failed"
	default:
		return "unknown"
	}
}

// Outcome is the uniform result of every remote call. Value is meaningful
// only when Status is Confirmed; Reason is the user-facing message otherwise.
type Outcome[T any] struct {
	Status    Status
	Value     T
	Reason    string
	RequestID string
}

// Media is the confirmed resource of an upload.
type Media struct {
	URL      string
	FileName string
	FileSize int64
	FileType string
}

// OK reports whether the call was confirmed.
func (o Outcome[T]) OK() bool { return o.Status == Confirmed }

// Err maps a failed outcome onto the error taxonomy. It returns nil when
// confirmed.
func (o Outcome[T]) Err() error {
	switch o.Status {
	case Confirmed:
		return nil
	case Rejected:
		return models.NewError(models.KindBusinessRejected, "", o.Reason, nil)
	default:
		return models.NewError(models.KindTransport, "", o.Reason, nil)
	}
}

func confirmed[T any](v T, requestID string) Outcome[T] {
	return Outcome[T]{Status: Confirmed, Value: v, RequestID: requestID}
}

func rejected[T any](reason, requestID string) Outcome[T] {
	return Outcome[T]{Status: Rejected, Reason: reason, RequestID: requestID}
}

func transportFailed[T any](reason, requestID string) Outcome[T] {
	return Outcome[T]{Status: TransportFailed, Reason: reason, RequestID: requestID}
}
