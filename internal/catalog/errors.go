package catalog

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures without committing to a transport. The
// HTTP boundary maps kinds to status codes; nothing below it knows about
// status codes at all.
type ErrorKind int

const (
	KindStore ErrorKind = iota
	KindValidation
	KindNotFound
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Invalid(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func StoreFailure(message string, err error) *Error {
	return &Error{Kind: KindStore, Message: message, Err: err}
}

// KindOfError extracts the classification from an error chain. Anything
// unclassified counts as a store failure.
func KindOfError(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

var (
	ErrInvalidName     = Invalid("productName is required")
	ErrInvalidURL      = Invalid("productUrl must be an absolute url")
	ErrProductNotFound = NotFound("product not found")
)
