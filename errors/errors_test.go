/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("Bot", "bot#42")

	assert.Equal(t, `Bot with key "bot#42" not found`, err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsEmptyUpdate(err))
}

func TestMalformedKeyError(t *testing.T) {
	err := NewMalformedKeyError("Bot#%zz", "invalid escape")

	assert.Equal(t, `malformed key "Bot#%zz": invalid escape`, err.Error())
	assert.True(t, IsMalformedKey(err))

	var mk *MalformedKeyError
	assert.True(t, errors.As(fmt.Errorf("decode: %w", err), &mk))
	assert.Equal(t, "Bot#%zz", mk.Key)
}

func TestEmptyUpdateError(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		expected string
	}{
		{name: "with type", typ: "TestSet", expected: "update of TestSet contains no changes"},
		{name: "without type", typ: "", expected: "update contains no changes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEmptyUpdateError(tt.typ)
			assert.Equal(t, tt.expected, err.Error())
			assert.True(t, IsEmptyUpdate(err))
		})
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "token",
			message:  "not a valid cursor",
			expected: `validation failed for field "token": not a valid cursor`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "expected 2 identifier components, got 1",
			expected: "validation failed: expected 2 identifier components, got 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)
			assert.Equal(t, tt.expected, err.Error())
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestConditionFailedError(t *testing.T) {
	err := NewConditionFailedError("update", "attribute_exists(PK)")

	assert.Equal(t, "condition check failed for update operation: attribute_exists(PK)", err.Error())
	assert.True(t, IsConditionFailed(err))
}

func TestNotFoundUnwrapsCause(t *testing.T) {
	err := &NotFoundError{Type: "Bot", Key: "Bot#1", Cause: NewConditionFailedError("update", "attribute_exists(PK)")}

	assert.True(t, IsNotFound(err))
	assert.True(t, IsConditionFailed(err))
	assert.False(t, IsConditionFailed(NewNotFoundError("Bot", "1")))
}

func TestErrorWrapping(t *testing.T) {
	wrapped := fmt.Errorf("repository get: %w", NewNotFoundError("Bot", "1"))

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.True(t, IsNotFound(wrapped))
}

func TestStoreErrorCode(t *testing.T) {
	throttled := fmt.Errorf("query: %w", &smithy.GenericAPIError{Code: "ThrottlingException", Message: "slow down"})
	assert.True(t, IsStoreError(throttled))
	assert.Equal(t, "ThrottlingException", StoreErrorCode(throttled))

	ccf := fmt.Errorf("update: %w", &types.ConditionalCheckFailedException{Message: new(string)})
	assert.Equal(t, "ConditionalCheckFailedException", StoreErrorCode(ccf))

	plain := errors.New("boom")
	assert.False(t, IsStoreError(plain))
	assert.Empty(t, StoreErrorCode(plain))
	assert.False(t, IsStoreError(NewNotFoundError("Bot", "1")))
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrMalformedKey,
		ErrEmptyUpdate,
		ErrInvalidInput,
		ErrConditionFailed,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j {
				assert.False(t, errors.Is(err1, err2), "%v should not match %v", err1, err2)
			}
		}
	}
}
