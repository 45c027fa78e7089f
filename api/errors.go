// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-kit.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrDisposed        = fmt.Errorf("pooled handle already disposed")
	ErrIndexOutOfRange = fmt.Errorf("index out of range")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrEmpty           = fmt.Errorf("collection is empty")
	ErrNotFound        = fmt.Errorf("resource not found")
	ErrAlreadyExists   = fmt.Errorf("resource already exists")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeDisposed
	ErrCodeIndexOutOfRange
	ErrCodeNotFound
	ErrCodeAlreadyExists
	ErrCodeInternal
)

var codeSentinels = map[ErrorCode]error{
	ErrCodeInvalidArgument: ErrInvalidArgument,
	ErrCodeDisposed:        ErrDisposed,
	ErrCodeIndexOutOfRange: ErrIndexOutOfRange,
	ErrCodeNotFound:        ErrNotFound,
	ErrCodeAlreadyExists:   ErrAlreadyExists,
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap exposes the sentinel matching Code so errors.Is works on structured errors.
func (e *Error) Unwrap() error {
	return codeSentinels[e.Code]
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// IndexError builds the error returned by bounds-checked accessors.
func IndexError(index, length int) *Error {
	return NewError(ErrCodeIndexOutOfRange, "index out of range").
		WithContext("index", index).
		WithContext("length", length)
}

// CodeOf extracts the ErrorCode of err, or ErrCodeInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	for code, sentinel := range codeSentinels {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ErrCodeInternal
}
