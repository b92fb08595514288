/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package ddbtest provides an in-memory DynamoDB client for tests.
//
// It understands the subset of the API the repositories issue: point reads,
// writes and deletes on the PK/SK primary key, SET updates guarded by
// attribute_exists/attribute_not_exists conditions, and key-condition queries
// of the form PK = :v [AND begins_with(SK, :p)] with Limit, ExclusiveStartKey
// and projections.
package ddbtest

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/adminstore/keys"
)

// Item is a stored row.
type Item = map[string]types.AttributeValue

// Client is an in-memory stand-in for *dynamodb.Client.
type Client struct {
	mu     sync.RWMutex
	tables map[string]map[string]map[string]Item // table -> PK -> SK -> item
	calls  map[string]int

	getError    error
	putError    error
	updateError error
	deleteError error
	queryError  error
}

// New creates an empty client.
func New() *Client {
	return &Client{
		tables: make(map[string]map[string]map[string]Item),
		calls:  make(map[string]int),
	}
}

// WithGetError makes GetItem calls return err
func (c *Client) WithGetError(err error) *Client {
	c.getError = err
	return c
}

// WithPutError makes PutItem calls return err
func (c *Client) WithPutError(err error) *Client {
	c.putError = err
	return c
}

// WithUpdateError makes UpdateItem calls return err
func (c *Client) WithUpdateError(err error) *Client {
	c.updateError = err
	return c
}

// WithDeleteError makes DeleteItem calls return err
func (c *Client) WithDeleteError(err error) *Client {
	c.deleteError = err
	return c
}

// WithQueryError makes Query calls return err
func (c *Client) WithQueryError(err error) *Client {
	c.queryError = err
	return c
}

// GetItem returns the row stored under params.Key.
func (c *Client) GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	c.record("GetItem")
	if c.getError != nil {
		return nil, c.getError
	}
	pk, sk, err := primaryKey(params.Key)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.partition(aws.ToString(params.TableName), pk)[sk]
	if !ok {
		return &sdk.GetItemOutput{}, nil
	}
	out, err := project(item, aws.ToString(params.ProjectionExpression), params.ExpressionAttributeNames)
	if err != nil {
		return nil, err
	}
	return &sdk.GetItemOutput{Item: out}, nil
}

// PutItem replaces the row with the item's primary key.
func (c *Client) PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	c.record("PutItem")
	if c.putError != nil {
		return nil, c.putError
	}
	c.Put(aws.ToString(params.TableName), params.Item)
	return &sdk.PutItemOutput{}, nil
}

// UpdateItem applies a SET expression to an existing or new row.
func (c *Client) UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error) {
	c.record("UpdateItem")
	if c.updateError != nil {
		return nil, c.updateError
	}
	pk, sk, err := primaryKey(params.Key)
	if err != nil {
		return nil, err
	}
	assignments, err := parseSet(aws.ToString(params.UpdateExpression), params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	table := aws.ToString(params.TableName)
	existing, exists := c.partition(table, pk)[sk]
	if cond := aws.ToString(params.ConditionExpression); cond != "" {
		ok, err := evalCondition(cond, params.ExpressionAttributeNames, existing)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}
	}

	item := make(Item, len(existing)+len(assignments)+2)
	if exists {
		for k, v := range existing {
			item[k] = v
		}
	} else {
		for k, v := range params.Key {
			item[k] = v
		}
	}
	for name, v := range assignments {
		item[name] = v
	}
	c.store(table, pk, sk, item)

	out := &sdk.UpdateItemOutput{}
	if params.ReturnValues == types.ReturnValueAllNew {
		out.Attributes = clone(item)
	}
	return out, nil
}

// DeleteItem removes the row under params.Key if present.
func (c *Client) DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	c.record("DeleteItem")
	if c.deleteError != nil {
		return nil, c.deleteError
	}
	pk, sk, err := primaryKey(params.Key)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.partition(aws.ToString(params.TableName), pk), sk)
	return &sdk.DeleteItemOutput{}, nil
}

var (
	equalsPattern     = regexp.MustCompile(`([#\w]+)\s*=\s*(:\w+)`)
	beginsWithPattern = regexp.MustCompile(`begins_with\s*\(\s*([#\w]+)\s*,\s*(:\w+)\s*\)`)
)

// Query returns the rows of one partition in sort-key order. Like DynamoDB it
// reports a LastEvaluatedKey whenever Limit stops the page, even when no
// further rows exist.
func (c *Client) Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	c.record("Query")
	if c.queryError != nil {
		return nil, c.queryError
	}
	if params.IndexName != nil {
		return nil, fmt.Errorf("ddbtest: secondary indexes are not supported")
	}

	expr := aws.ToString(params.KeyConditionExpression)
	names, values := params.ExpressionAttributeNames, params.ExpressionAttributeValues

	eq := equalsPattern.FindStringSubmatch(expr)
	if eq == nil || resolve(eq[1], names) != keys.AttrPK {
		return nil, fmt.Errorf("ddbtest: key condition %q has no partition key equality", expr)
	}
	pk, err := stringValue(values, eq[2])
	if err != nil {
		return nil, err
	}
	var prefix string
	if bw := beginsWithPattern.FindStringSubmatch(expr); bw != nil {
		if resolve(bw[1], names) != keys.AttrSK {
			return nil, fmt.Errorf("ddbtest: begins_with on %q is not supported", resolve(bw[1], names))
		}
		if prefix, err = stringValue(values, bw[2]); err != nil {
			return nil, err
		}
	}

	var start string
	if params.ExclusiveStartKey != nil {
		_, start, err = primaryKey(params.ExclusiveStartKey)
		if err != nil {
			return nil, err
		}
	}
	forward := params.ScanIndexForward == nil || *params.ScanIndexForward

	c.mu.RLock()
	defer c.mu.RUnlock()

	partition := c.partition(aws.ToString(params.TableName), pk)
	sortKeys := make([]string, 0, len(partition))
	for sk := range partition {
		if strings.HasPrefix(sk, prefix) {
			sortKeys = append(sortKeys, sk)
		}
	}
	sort.Strings(sortKeys)
	if !forward {
		for i, j := 0, len(sortKeys)-1; i < j; i, j = i+1, j-1 {
			sortKeys[i], sortKeys[j] = sortKeys[j], sortKeys[i]
		}
	}

	limit := int(aws.ToInt32(params.Limit))
	out := &sdk.QueryOutput{Items: []Item{}}
	for _, sk := range sortKeys {
		if start != "" && ((forward && sk <= start) || (!forward && sk >= start)) {
			continue
		}
		item := partition[sk]
		projected, err := project(item, aws.ToString(params.ProjectionExpression), names)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, projected)
		if limit > 0 && len(out.Items) == limit {
			out.LastEvaluatedKey = Item{
				keys.AttrPK: item[keys.AttrPK],
				keys.AttrSK: item[keys.AttrSK],
			}
			break
		}
	}
	out.Count = int32(len(out.Items))
	out.ScannedCount = out.Count
	return out, nil
}

// Put stores item directly, bypassing error injection and call counting.
func (c *Client) Put(table string, item Item) {
	pk, sk, err := primaryKey(item)
	if err != nil {
		panic(err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(table, pk, sk, clone(item))
}

// Item returns a copy of the stored row, or nil.
func (c *Client) Item(table, pk, sk string) Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.partition(table, pk)[sk]
	if !ok {
		return nil
	}
	return clone(item)
}

// Count returns the number of rows stored in table
func (c *Client) Count(table string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, p := range c.tables[table] {
		n += len(p)
	}
	return n
}

// Calls returns how many times the named API operation was invoked.
func (c *Client) Calls(op string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calls[op]
}

// Clear removes all rows and call counts
func (c *Client) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables = make(map[string]map[string]map[string]Item)
	c.calls = make(map[string]int)
}

func (c *Client) record(op string) {
	c.mu.Lock()
	c.calls[op]++
	c.mu.Unlock()
}

// partition must be called with mu held.
func (c *Client) partition(table, pk string) map[string]Item {
	return c.tables[table][pk]
}

// store must be called with mu held for writing.
func (c *Client) store(table, pk, sk string, item Item) {
	t, ok := c.tables[table]
	if !ok {
		t = make(map[string]map[string]Item)
		c.tables[table] = t
	}
	p, ok := t[pk]
	if !ok {
		p = make(map[string]Item)
		t[pk] = p
	}
	p[sk] = item
}

func primaryKey(key Item) (string, string, error) {
	pk, ok := key[keys.AttrPK].(*types.AttributeValueMemberS)
	if !ok {
		return "", "", fmt.Errorf("ddbtest: key has no string %s", keys.AttrPK)
	}
	sk, ok := key[keys.AttrSK].(*types.AttributeValueMemberS)
	if !ok {
		return "", "", fmt.Errorf("ddbtest: key has no string %s", keys.AttrSK)
	}
	return pk.Value, sk.Value, nil
}

func resolve(name string, names map[string]string) string {
	if strings.HasPrefix(name, "#") {
		if n, ok := names[name]; ok {
			return n
		}
	}
	return name
}

func stringValue(values map[string]types.AttributeValue, placeholder string) (string, error) {
	s, ok := values[placeholder].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("ddbtest: %s is not bound to a string value", placeholder)
	}
	return s.Value, nil
}

func parseSet(expr string, names map[string]string, values map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	expr = strings.TrimSpace(expr)
	if len(expr) < 4 || !strings.EqualFold(expr[:4], "SET ") {
		return nil, fmt.Errorf("ddbtest: only SET update expressions are supported: %q", expr)
	}
	out := make(map[string]types.AttributeValue)
	for _, clause := range strings.Split(expr[4:], ",") {
		lhs, rhs, ok := strings.Cut(clause, "=")
		if !ok {
			return nil, fmt.Errorf("ddbtest: malformed assignment %q", clause)
		}
		placeholder := strings.TrimSpace(rhs)
		v, ok := values[placeholder]
		if !ok {
			return nil, fmt.Errorf("ddbtest: %s is not bound", placeholder)
		}
		out[resolve(strings.TrimSpace(lhs), names)] = v
	}
	return out, nil
}

var conditionPattern = regexp.MustCompile(`^(attribute_exists|attribute_not_exists)\s*\(\s*([#\w]+)\s*\)$`)

func evalCondition(cond string, names map[string]string, item Item) (bool, error) {
	m := conditionPattern.FindStringSubmatch(strings.TrimSpace(cond))
	if m == nil {
		return false, fmt.Errorf("ddbtest: unsupported condition %q", cond)
	}
	_, present := item[resolve(m[2], names)]
	if m[1] == "attribute_exists" {
		return present, nil
	}
	return !present, nil
}

func project(item Item, projection string, names map[string]string) (Item, error) {
	if projection == "" {
		return clone(item), nil
	}
	out := make(Item)
	for _, p := range strings.Split(projection, ",") {
		name := resolve(strings.TrimSpace(p), names)
		if name == "" {
			return nil, fmt.Errorf("ddbtest: malformed projection %q", projection)
		}
		if v, ok := item[name]; ok {
			out[name] = v
		}
	}
	return out, nil
}

func clone(item Item) Item {
	out := make(Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
