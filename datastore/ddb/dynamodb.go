/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/adminstore/datastore"
	"github.com/suparena/adminstore/errors"
	"github.com/suparena/adminstore/keys"
	"github.com/suparena/adminstore/update"
)

// Client is the subset of the DynamoDB API the repository uses.
// *dynamodb.Client satisfies it.
type Client interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
}

// existsCondition makes updates fail instead of creating a row.
const existsCondition = "attribute_exists(" + keys.AttrPK + ")"

// Schema describes how an entity type is laid out in the table.
type Schema[T any] struct {
	// Tag prefixes every key of the type and fixes its key shape.
	Tag keys.Tag
	// IDFields are the attribute names holding the identifier components.
	// They are never assigned by an update.
	IDFields []string
	// Identify returns the identifier components of an entity, in key order.
	Identify func(T) []string
	// Projection lists the attributes read back into T. Empty reads all.
	Projection []string
	// PageSize bounds List pages that ask for no count and is the default
	// Stream page size. Zero leaves such listings unbounded.
	PageSize int32
}

// Repository implements datastore.Repository[T] over one shared DynamoDB table.
type Repository[T any] struct {
	client     Client
	tableName  string
	schema     Schema[T]
	shape      keys.Shape
	projection *expression.ProjectionBuilder
	getExpr    *expression.Expression
}

var _ datastore.Repository[struct{}] = (*Repository[struct{}])(nil)

// New constructs a Repository for entity type T. The client is shared and not
// owned by the repository.
func New[T any](client Client, tableName string, schema Schema[T]) (*Repository[T], error) {
	if client == nil {
		return nil, stderrors.New("ddb: client is required")
	}
	if tableName == "" {
		return nil, stderrors.New("ddb: table name is required")
	}
	if schema.Tag.IsZero() {
		return nil, stderrors.New("ddb: schema tag is required")
	}
	if schema.PageSize < 0 {
		return nil, fmt.Errorf("ddb: negative page size %d for %s", schema.PageSize, schema.Tag)
	}
	if schema.Identify == nil {
		return nil, fmt.Errorf("ddb: schema for %s has no Identify func", schema.Tag)
	}

	r := &Repository[T]{
		client:    client,
		tableName: tableName,
		schema:    schema,
		shape:     schema.Tag.Shape(),
	}

	if len(schema.Projection) > 0 {
		names := make([]expression.NameBuilder, len(schema.Projection))
		for i, p := range schema.Projection {
			names[i] = expression.Name(p)
		}
		proj := expression.NamesList(names[0], names[1:]...)
		expr, err := expression.NewBuilder().WithProjection(proj).Build()
		if err != nil {
			return nil, fmt.Errorf("ddb: invalid projection for %s: %w", schema.Tag, err)
		}
		r.projection = &proj
		r.getExpr = &expr
	}
	return r, nil
}

// Tag returns the entity tag the repository serves.
func (r *Repository[T]) Tag() keys.Tag {
	return r.schema.Tag
}

// Get retrieves a single row. It returns nil, nil when no row exists.
func (r *Repository[T]) Get(ctx context.Context, ids ...string) (*T, error) {
	key, err := r.key(ids)
	if err != nil {
		return nil, err
	}

	input := &sdk.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	}
	if r.getExpr != nil {
		input.ProjectionExpression = r.getExpr.Projection()
		input.ExpressionAttributeNames = r.getExpr.Names()
	}

	out, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("GetItem failed: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Create stores entity under the key derived from its own identifiers.
// Any existing row with that key is replaced.
func (r *Repository[T]) Create(ctx context.Context, entity T) (T, error) {
	var zero T

	key, err := r.key(r.schema.Identify(entity))
	if err != nil {
		return zero, err
	}

	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal entity: %w", err)
	}
	for k, v := range key {
		av[k] = v
	}
	av[keys.AttrEntityType] = &types.AttributeValueMemberS{Value: r.schema.Tag.String()}

	_, err = r.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return zero, fmt.Errorf("PutItem failed: %w", err)
	}
	return entity, nil
}

// Update applies changes to an existing row and returns the row as stored
// afterwards.
func (r *Repository[T]) Update(ctx context.Context, changes update.ChangeSet, ids ...string) (T, error) {
	var zero T

	key, err := r.key(ids)
	if err != nil {
		return zero, err
	}

	inst, err := update.Build(r.schema.IDFields, changes)
	if err != nil {
		if errors.IsEmptyUpdate(err) {
			return zero, errors.NewEmptyUpdateError(r.schema.Tag.String())
		}
		return zero, fmt.Errorf("failed to build update expression: %w", err)
	}

	out, err := r.client.UpdateItem(ctx, &sdk.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       key,
		UpdateExpression:          aws.String(inst.Expression()),
		ExpressionAttributeNames:  inst.Names,
		ExpressionAttributeValues: inst.Values,
		ConditionExpression:       aws.String(existsCondition),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return zero, &errors.NotFoundError{
				Type:  r.schema.Tag.String(),
				Key:   sortKey(key),
				Cause: errors.NewConditionFailedError("update", existsCondition),
			}
		}
		return zero, fmt.Errorf("UpdateItem failed: %w", err)
	}

	var result T
	if err := attributevalue.UnmarshalMap(out.Attributes, &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal updated item: %w", err)
	}
	return result, nil
}

// Delete removes a row. Deleting a row that does not exist is not an error.
func (r *Repository[T]) Delete(ctx context.Context, ids ...string) error {
	key, err := r.key(ids)
	if err != nil {
		return err
	}

	_, err = r.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("DeleteItem failed: %w", err)
	}
	return nil
}

// key builds the primary key of the row addressed by ids.
func (r *Repository[T]) key(ids []string) (map[string]types.AttributeValue, error) {
	if len(ids) != int(r.shape) {
		return nil, errors.NewValidationError("", fmt.Sprintf(
			"%s expects %d identifier components, got %d", r.schema.Tag, r.shape, len(ids)))
	}
	for i, id := range ids {
		if id == "" {
			return nil, errors.NewValidationError("", fmt.Sprintf(
				"%s identifier component %d is empty", r.schema.Tag, i))
		}
	}

	parents := r.shape.Parents()
	pk := keys.Encode(r.schema.Tag, components(ids[:parents])...)
	sk := keys.Encode(r.schema.Tag, components(ids)...)

	return map[string]types.AttributeValue{
		keys.AttrPK: &types.AttributeValueMemberS{Value: pk},
		keys.AttrSK: &types.AttributeValueMemberS{Value: sk},
	}, nil
}

func sortKey(key map[string]types.AttributeValue) string {
	if sk, ok := key[keys.AttrSK].(*types.AttributeValueMemberS); ok {
		return sk.Value
	}
	return ""
}

func components(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
