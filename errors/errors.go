/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an addressed row is absent
	ErrNotFound = errors.New("entity not found")

	// ErrMalformedKey is returned when a composite key cannot be decoded
	ErrMalformedKey = errors.New("malformed key")

	// ErrEmptyUpdate is returned when a change-set carries no effective change
	ErrEmptyUpdate = errors.New("empty update")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConditionFailed is returned when a conditional write is rejected by the store
	ErrConditionFailed = errors.New("condition check failed")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type  string
	Key   string
	Cause error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// MalformedKeyError is returned by key decoding when the input is present but does not parse.
type MalformedKeyError struct {
	Key    string
	Reason string
}

func (e *MalformedKeyError) Error() string {
	return fmt.Sprintf("malformed key %q: %s", e.Key, e.Reason)
}

func (e *MalformedKeyError) Is(target error) bool {
	return target == ErrMalformedKey
}

// EmptyUpdateError is returned when an update would not change any attribute.
type EmptyUpdateError struct {
	Type string
}

func (e *EmptyUpdateError) Error() string {
	if e.Type == "" {
		return "update contains no changes"
	}
	return fmt.Sprintf("update of %s contains no changes", e.Type)
}

func (e *EmptyUpdateError) Is(target error) bool {
	return target == ErrEmptyUpdate
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConditionFailedError represents a failed conditional operation
type ConditionFailedError struct {
	Operation string
	Condition string
}

func (e *ConditionFailedError) Error() string {
	return fmt.Sprintf("condition check failed for %s operation: %s", e.Operation, e.Condition)
}

func (e *ConditionFailedError) Is(target error) bool {
	return target == ErrConditionFailed
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewMalformedKeyError creates a new MalformedKeyError
func NewMalformedKeyError(key, reason string) error {
	return &MalformedKeyError{Key: key, Reason: reason}
}

// NewEmptyUpdateError creates a new EmptyUpdateError
func NewEmptyUpdateError(entityType string) error {
	return &EmptyUpdateError{Type: entityType}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConditionFailedError creates a new ConditionFailedError
func NewConditionFailedError(operation, condition string) error {
	return &ConditionFailedError{Operation: operation, Condition: condition}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsMalformedKey checks if an error is a malformed key error
func IsMalformedKey(err error) bool {
	return errors.Is(err, ErrMalformedKey)
}

// IsEmptyUpdate checks if an error is an empty update error
func IsEmptyUpdate(err error) bool {
	return errors.Is(err, ErrEmptyUpdate)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConditionFailed checks if an error is a condition failed error
func IsConditionFailed(err error) bool {
	return errors.Is(err, ErrConditionFailed)
}

// IsStoreError reports whether err originates from the store API
// (throttling, validation, conditional failures and the like).
func IsStoreError(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr)
}

// StoreErrorCode returns the store API error code carried by err, or "" when
// err did not come from the store.
func StoreErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
