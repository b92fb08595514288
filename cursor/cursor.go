/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package cursor converts between DynamoDB LastEvaluatedKey positions and the
// opaque page tokens handed to callers. Tokens carry only the identifier of
// the last row of a page; the partition and tag are rebuilt from the listing
// itself, so tokens hold no server-side state and never expose key layout.
package cursor

import (
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/adminstore/errors"
	"github.com/suparena/adminstore/keys"
)

var encoding = base64.RawURLEncoding

// FromStorePosition returns the token for a query's LastEvaluatedKey, or ""
// when the query reported no further position.
func FromStorePosition(lastEvaluatedKey map[string]types.AttributeValue) (string, error) {
	if len(lastEvaluatedKey) == 0 {
		return "", nil
	}
	sk, ok := lastEvaluatedKey[keys.AttrSK].(*types.AttributeValueMemberS)
	if !ok {
		return "", errors.NewMalformedKeyError("", "last evaluated key has no string sort key")
	}
	parts, err := keys.Decode(sk.Value)
	if err != nil {
		return "", err
	}
	if len(parts) < 2 {
		return "", errors.NewMalformedKeyError(sk.Value, "sort key has no identifier component")
	}
	return encoding.EncodeToString([]byte(parts[len(parts)-1])), nil
}

// ToStorePosition rebuilds the ExclusiveStartKey for a listing of tag under
// parents that resumes after the row that produced token. An empty token
// starts at the beginning of the partition and yields nil.
func ToStorePosition(tag keys.Tag, parents []string, token string) (map[string]types.AttributeValue, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := encoding.DecodeString(token)
	if err != nil || len(raw) == 0 {
		return nil, errors.NewValidationError("token", fmt.Sprintf("not a valid page token: %q", token))
	}

	pk := keys.Encode(tag, components(parents)...)
	sk := keys.Encode(tag, append(components(parents), string(raw))...)
	return map[string]types.AttributeValue{
		keys.AttrPK: &types.AttributeValueMemberS{Value: pk},
		keys.AttrSK: &types.AttributeValueMemberS{Value: sk},
	}, nil
}

func components(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
