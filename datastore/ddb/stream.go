/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/adminstore/cursor"
	"github.com/suparena/adminstore/storagemodels"
)

// Stream walks every row under parents page by page and delivers them on the
// returned channel, which is closed when the partition is exhausted, a query
// fails, or ctx is cancelled. A failed query is delivered as a final result
// carrying Error; it is not retried.
func (r *Repository[T]) Stream(ctx context.Context, parents []string, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.DefaultStreamOptions()
	if r.schema.PageSize > 0 {
		options.PageSize = r.schema.PageSize
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.BufferSize < 0 {
		options.BufferSize = 0
	}

	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)
	go r.streamWorker(ctx, parents, options, resultCh)
	return resultCh
}

func (r *Repository[T]) streamWorker(
	ctx context.Context,
	parents []string,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[T],
) {
	defer close(resultCh)

	var itemIndex int64
	var pageNumber int
	startTime := time.Now()

	send := func(result storagemodels.StreamResult[T]) bool {
		if ctx.Err() != nil {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case resultCh <- result:
			return true
		}
	}
	fail := func(err error) {
		send(storagemodels.StreamResult[T]{
			Error: err,
			Meta: storagemodels.StreamMeta{
				Index:      itemIndex,
				PageNumber: pageNumber,
				Timestamp:  time.Now(),
			},
		})
	}

	input, err := r.queryInput(parents, options.PageSize, "")
	if err != nil {
		fail(err)
		return
	}

	paginator := sdk.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() && ctx.Err() == nil {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			fail(fmt.Errorf("query failed: %w", err))
			return
		}
		pageNumber++

		for _, item := range out.Items {
			if !send(r.processItem(item, itemIndex, pageNumber)) {
				return
			}
			itemIndex++
		}

		if options.ProgressHandler != nil {
			next, err := cursor.FromStorePosition(out.LastEvaluatedKey)
			if err != nil {
				fail(fmt.Errorf("failed to encode page token: %w", err))
				return
			}
			progress := storagemodels.StreamProgress{
				ItemsProcessed: itemIndex,
				PagesProcessed: pageNumber,
				NextToken:      next,
				StartTime:      startTime,
			}
			if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
				progress.CurrentRate = float64(itemIndex) / elapsed
			}
			options.ProgressHandler(progress)
		}
	}
}

// processItem converts a DynamoDB item to a typed result
func (r *Repository[T]) processItem(item map[string]types.AttributeValue, index int64, pageNumber int) storagemodels.StreamResult[T] {
	meta := storagemodels.StreamMeta{
		Index:      index,
		PageNumber: pageNumber,
		Timestamp:  time.Now(),
	}

	rawCopy := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		rawCopy[k] = v
	}

	var result T
	if err := attributevalue.UnmarshalMap(item, &result); err != nil {
		return storagemodels.StreamResult[T]{
			Error: fmt.Errorf("failed to unmarshal item to type %T: %w", result, err),
			Raw:   rawCopy,
			Meta:  meta,
		}
	}
	return storagemodels.StreamResult[T]{Item: result, Raw: rawCopy, Meta: meta}
}
