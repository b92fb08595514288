/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/adminstore/datastore/ddb"
	"github.com/suparena/adminstore/datastore/ddbtest"
	"github.com/suparena/adminstore/errors"
	"github.com/suparena/adminstore/storagemodels"
)

func seedWidgets(t *testing.T, repo *ddb.Repository[widget], n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := repo.Create(context.Background(), widget{ID: fmt.Sprintf("w-%02d", i), Count: i})
		require.NoError(t, err)
	}
}

func TestStreamDeliversEveryRow(t *testing.T) {
	repo, client := newWidgets(t)
	seedWidgets(t, repo, 25)

	var progress []storagemodels.StreamProgress
	startTime := time.Now()
	results := repo.Stream(context.Background(), nil,
		storagemodels.WithPageSize(10),
		storagemodels.WithBufferSize(4),
		storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
			progress = append(progress, p)
		}),
	)

	var lastIndex int64 = -1
	seen := make(map[string]bool)
	for result := range results {
		require.NoError(t, result.Error)
		assert.Greater(t, result.Meta.Index, lastIndex)
		lastIndex = result.Meta.Index
		assert.GreaterOrEqual(t, result.Meta.PageNumber, 1)
		assert.False(t, result.Meta.Timestamp.Before(startTime))
		assert.NotNil(t, result.Raw)
		seen[result.Item.ID] = true
	}

	assert.Len(t, seen, 25)
	assert.Equal(t, 3, client.Calls("Query"))
	require.Len(t, progress, 3)
	assert.Equal(t, int64(25), progress[2].ItemsProcessed)
	assert.Equal(t, 3, progress[2].PagesProcessed)
	assert.NotEmpty(t, progress[0].NextToken)
	assert.Empty(t, progress[2].NextToken)
}

func TestStreamProgressTokenResumesListing(t *testing.T) {
	repo, _ := newWidgets(t)
	seedWidgets(t, repo, 6)

	var first storagemodels.StreamProgress
	results := repo.Stream(context.Background(), nil,
		storagemodels.WithPageSize(4),
		storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
			if p.PagesProcessed == 1 {
				first = p
			}
		}),
	)
	for range results {
	}

	page, err := repo.List(context.Background(), storagemodels.ListOptions{Token: first.NextToken})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "w-04", page.Items[0].ID)
}

func TestStreamQueryFailureIsTerminal(t *testing.T) {
	repo, client := newWidgets(t)
	boom := stderrors.New("throttled")
	client.WithQueryError(boom)

	var results []storagemodels.StreamResult[widget]
	for r := range repo.Stream(context.Background(), nil) {
		results = append(results, r)
	}

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Error, boom)
	assert.Equal(t, 1, client.Calls("Query"))
}

func TestStreamRejectsWrongParents(t *testing.T) {
	repo, client := newWidgets(t)

	var results []storagemodels.StreamResult[widget]
	for r := range repo.Stream(context.Background(), []string{"unexpected"}) {
		results = append(results, r)
	}

	require.Len(t, results, 1)
	assert.True(t, errors.IsValidationError(results[0].Error))
	assert.Zero(t, client.Calls("Query"))
}

func TestStreamStopsOnCancel(t *testing.T) {
	repo, _ := newWidgets(t)
	seedWidgets(t, repo, 20)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	results := repo.Stream(ctx, nil,
		storagemodels.WithPageSize(1),
		storagemodels.WithBufferSize(0),
	)

	received := 0
	for range results {
		received++
		if received == 1 {
			cancel()
		}
	}
	assert.Less(t, received, 20)
}

func TestStreamPagesBySchemaPageSize(t *testing.T) {
	client := ddbtest.New()
	schema := widgetSchema()
	schema.PageSize = 10
	repo, err := ddb.New(client, table, schema)
	require.NoError(t, err)
	seedWidgets(t, repo, 25)

	var count int
	for result := range repo.Stream(context.Background(), nil) {
		require.NoError(t, result.Error)
		count++
	}
	assert.Equal(t, 25, count)
	assert.Equal(t, 3, client.Calls("Query"))

	client.Clear()
	seedWidgets(t, repo, 25)
	for result := range repo.Stream(context.Background(), nil, storagemodels.WithPageSize(5)) {
		require.NoError(t, result.Error)
	}
	// the fifth page is full, so one empty page ends the stream
	assert.Equal(t, 6, client.Calls("Query"))
}
