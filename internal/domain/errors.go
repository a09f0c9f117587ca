// Package domain holds the error vocabulary shared by repositories,
// services and HTTP handlers. Handlers map each kind to a status code.
package domain

import (
	"errors"
	"fmt"
)

// NotFoundError reports a missing row. Key is the id, route or driver
// name that was looked up.
type NotFoundError struct {
	Resource string
	Key      string
	Err      error
}

func (e NotFoundError) Error() string {
	what := e.Resource
	if what == "" {
		what = "record"
	}
	if e.Key == "" {
		return what + " not found"
	}
	return fmt.Sprintf("%s %s not found", what, e.Key)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError rejects caller input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	switch {
	case e.Field == "" && e.Msg == "":
		return "invalid input"
	case e.Field == "":
		return e.Msg
	case e.Msg == "":
		return "invalid " + e.Field
	}
	return e.Field + ": " + e.Msg
}

// ConflictError is a write that collides with an existing row.
type ConflictError struct {
	Resource string
	Err      error
}

func (e ConflictError) Error() string {
	if e.Resource == "" {
		return "already exists"
	}
	return e.Resource + " already exists"
}

func (e ConflictError) Unwrap() error { return e.Err }

// InternalError hides a store or I/O failure behind a safe message.
type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg == "" {
		return "internal error"
	}
	return e.Msg
}

func (e InternalError) Unwrap() error { return e.Err }

// NotFound builds a NotFoundError; key is formatted with %v so numeric
// ids can be passed as they are.
func NotFound(resource string, key any) error {
	return NotFoundError{Resource: resource, Key: fmt.Sprint(key)}
}

func Invalid(field, msg string) error { return ValidationError{Field: field, Msg: msg} }

func Conflict(resource string, err error) error { return ConflictError{Resource: resource, Err: err} }

func Internal(msg string, err error) error { return InternalError{Msg: msg, Err: err} }

func IsNotFound(err error) bool   { return as[NotFoundError](err) }
func IsValidation(err error) bool { return as[ValidationError](err) }
func IsConflict(err error) bool   { return as[ConflictError](err) }
func IsInternal(err error) bool   { return as[InternalError](err) }

// FieldOf returns the input field a validation error names, if any.
func FieldOf(err error) string {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve.Field
	}
	return ""
}

func as[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
