/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/adminstore/cursor"
	"github.com/suparena/adminstore/errors"
	"github.com/suparena/adminstore/keys"
	"github.com/suparena/adminstore/storagemodels"
)

// List returns one page of the rows under parents, in ascending sort-key order.
func (r *Repository[T]) List(ctx context.Context, opts storagemodels.ListOptions, parents ...string) (*storagemodels.Page[T], error) {
	if opts.Count < 0 {
		return nil, errors.NewValidationError("count", "must not be negative")
	}

	count := opts.Count
	if count == 0 {
		count = r.schema.PageSize
	}

	input, err := r.queryInput(parents, count, opts.Token)
	if err != nil {
		return nil, err
	}

	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	items, err := r.unmarshalItems(out.Items)
	if err != nil {
		return nil, err
	}

	next, err := cursor.FromStorePosition(out.LastEvaluatedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode page token: %w", err)
	}

	return &storagemodels.Page[T]{Items: items, NextToken: next}, nil
}

// queryInput builds the prefix query for the partition of parents, resuming
// after token when one is given.
func (r *Repository[T]) queryInput(parents []string, limit int32, token string) (*sdk.QueryInput, error) {
	if want := r.shape.Parents(); len(parents) != want {
		return nil, errors.NewValidationError("", fmt.Sprintf(
			"%s listing expects %d parent components, got %d", r.schema.Tag, want, len(parents)))
	}

	start, err := cursor.ToStorePosition(r.schema.Tag, parents, token)
	if err != nil {
		return nil, err
	}

	pk := keys.Encode(r.schema.Tag, components(parents)...)
	prefix := keys.EncodePrefix(r.schema.Tag, components(parents)...)

	keyCond := expression.Key(keys.AttrPK).Equal(expression.Value(pk)).
		And(expression.Key(keys.AttrSK).BeginsWith(prefix))

	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if r.projection != nil {
		builder = builder.WithProjection(*r.projection)
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	input := &sdk.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ProjectionExpression:      expr.Projection(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ExclusiveStartKey:         start,
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}
	return input, nil
}

func (r *Repository[T]) unmarshalItems(raw []map[string]types.AttributeValue) ([]T, error) {
	items := make([]T, 0, len(raw))
	for _, item := range raw {
		var t T
		if err := attributevalue.UnmarshalMap(item, &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item: %w", err)
		}
		items = append(items, t)
	}
	return items, nil
}
