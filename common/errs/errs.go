package errs

import "fmt"

type HttpError struct {
	Code    int
	Message string
	Data    any
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("code %d: %s, data: %v", e.Code, e.Message, e.Data)
}

// NotFoundError reports an absent event, booth, order or transaction.
// Ref carries the id the client asked for so it can re-quote.
type NotFoundError struct {
	Entity string
	Ref    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Ref)
}

// ConflictError reports a state the request cannot proceed against:
// a reserved booth, an already settled transaction, or an exceeded cap.
type ConflictError struct {
	Entity  string
	Ref     string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.Ref, e.Message)
}

// UpstreamError wraps a payment gateway failure. Retryable by the caller.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// InvariantError reports a booth double-allocation detected at
// settlement time. It is never resolved silently; the whole settlement
// unit aborts and the condition is surfaced to the caller.
type InvariantError struct {
	BoothID int64
	OrderNo string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("booth %d already reserved by another order, order %s cannot settle", e.BoothID, e.OrderNo)
}
