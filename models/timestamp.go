/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
)

// Timestamp is a date-time stored as an RFC 3339 string attribute. The zero
// Timestamp is stored as NULL.
type Timestamp strfmt.DateTime

// NewTimestamp converts t, truncated to milliseconds.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(strfmt.DateTime(t.UTC().Truncate(time.Millisecond)))
}

// Time returns t as a time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// IsZero reports whether t is unset.
func (t Timestamp) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Timestamp) String() string {
	return strfmt.DateTime(t).String()
}

// MarshalDynamoDBAttributeValue implements attributevalue.Marshaler.
func (t Timestamp) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	if t.IsZero() {
		return &types.AttributeValueMemberNULL{Value: true}, nil
	}
	return &types.AttributeValueMemberS{Value: t.String()}, nil
}

// UnmarshalDynamoDBAttributeValue implements attributevalue.Unmarshaler.
func (t *Timestamp) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberNULL:
		*t = Timestamp{}
		return nil
	case *types.AttributeValueMemberS:
		dt, err := strfmt.ParseDateTime(v.Value)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", v.Value, err)
		}
		*t = Timestamp(dt)
		return nil
	default:
		return fmt.Errorf("timestamp must be a string attribute, got %T", av)
	}
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return strfmt.DateTime(t).MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	return (*strfmt.DateTime)(t).UnmarshalJSON(data)
}
