package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError is the InvalidRequest kind: the input was rejected before
// any generation call or store write happened.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type UnauthorizedError struct {
	Msg string
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "unauthorized"
}

// TransportError means the generative client call itself failed
// (network, timeout, upstream status, empty candidate list).
type TransportError struct {
	Provider string
	Err      error
}

func (e TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s generation failed", e.providerName())
	}
	return fmt.Sprintf("%s generation failed: %v", e.providerName(), e.Err)
}

func (e TransportError) Unwrap() error { return e.Err }

func (e TransportError) providerName() string {
	if e.Provider == "" {
		return "genai"
	}
	return e.Provider
}

// UnparsableError means no JSON value of the expected kind could be
// extracted from the model output, even after repairs. NoJSON is set when
// the text did not contain an opening bracket at all.
type UnparsableError struct {
	Raw    string
	NoJSON bool
	Err    error
}

func (e UnparsableError) Error() string {
	if e.NoJSON {
		return "no json found in model response"
	}
	if e.Err != nil {
		return fmt.Sprintf("unparsable model response: %v", e.Err)
	}
	return "unparsable model response"
}

func (e UnparsableError) Unwrap() error { return e.Err }

// SchemaError means the model output parsed as JSON but lacks required keys
// or carries values of the wrong type.
type SchemaError struct {
	Field string
	Msg   string
	Raw   string
	Err   error
}

func (e SchemaError) Error() string {
	switch {
	case e.Field != "" && e.Msg != "":
		return fmt.Sprintf("schema mismatch at %s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return "schema mismatch: " + e.Msg
	case e.Field != "":
		return fmt.Sprintf("schema mismatch at %s", e.Field)
	default:
		return "schema mismatch"
	}
}

func (e SchemaError) Unwrap() error { return e.Err }

type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("persistence failed: %v", e.Err)
	}
	return fmt.Sprintf("persistence failed (%s): %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target TransportError
	return errors.As(err, &target)
}

func IsUnparsable(err error) bool {
	var target UnparsableError
	return errors.As(err, &target)
}

func IsSchemaMismatch(err error) bool {
	var target SchemaError
	return errors.As(err, &target)
}

func IsPersistence(err error) bool {
	var target PersistenceError
	return errors.As(err, &target)
}

// RawResponse returns the model output attached to an extraction failure.
func RawResponse(err error) (string, bool) {
	var unparsable UnparsableError
	if errors.As(err, &unparsable) {
		return unparsable.Raw, true
	}
	var schema SchemaError
	if errors.As(err, &schema) {
		return schema.Raw, true
	}
	return "", false
}
