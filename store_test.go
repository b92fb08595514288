/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package adminstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/adminstore/datastore/ddbtest"
	"github.com/suparena/adminstore/errors"
	"github.com/suparena/adminstore/models"
	"github.com/suparena/adminstore/storagemodels"
	"github.com/suparena/adminstore/update"
)

const testTable = "admin-test"

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, opts ...Option) (*Store, *ddbtest.Client) {
	t.Helper()
	client := ddbtest.New()
	seq := 0
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%03d", seq)
		}),
	}, opts...)
	store, err := New(client, testTable, opts...)
	require.NoError(t, err)
	return store, client
}

func TestNewRejectsMissingTable(t *testing.T) {
	_, err := New(ddbtest.New(), "")
	assert.Error(t, err)
}

func TestPageSizeBoundsListings(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore(t, WithPageSize(2))
	for i := 0; i < 3; i++ {
		_, err := store.Tasks.Create(ctx, models.Task{Title: fmt.Sprintf("task %d", i), Status: "open"})
		require.NoError(t, err)
	}

	page, err := store.Tasks.List(ctx, storagemodels.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasMore())

	page, err = store.Tasks.List(ctx, storagemodels.ListOptions{Count: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)

	before := client.Calls("Query")
	var streamed int
	for result := range store.Tasks.Stream(ctx, nil) {
		require.NoError(t, result.Error)
		streamed++
	}
	assert.Equal(t, 3, streamed)
	assert.Equal(t, 2, client.Calls("Query")-before)
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore(t)

	bot, err := store.Bots.Create(ctx, models.Bot{Name: "Greeter", Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, "id-001", bot.ID)
	assert.True(t, bot.CreatedAt.Time().Equal(fixedNow))
	assert.Equal(t, bot.CreatedAt, bot.UpdatedAt)
	assert.NotNil(t, client.Item(testTable, "Bot", "Bot#id-001"))

	kept, err := store.Bots.Create(ctx, models.Bot{ID: "Custom", Name: "Kept", Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, "Custom", kept.ID)

	got, err := store.Bots.Get(ctx, "custom")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Kept", got.Name)
}

func TestCreateValidates(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore(t)

	_, err := store.Bots.Create(ctx, models.Bot{Name: "NoStatus"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, err = store.TestExecutions.Create(ctx, models.TestExecution{TestSetID: "s", Status: "pending"})
	assert.True(t, errors.IsValidationError(err))

	assert.Zero(t, client.Calls("PutItem"))
}

func TestPatch(t *testing.T) {
	ctx := context.Background()
	later := fixedNow.Add(time.Hour)
	now := fixedNow
	store, client := newTestStore(t, WithClock(func() time.Time { return now }))

	bot, err := store.Bots.Create(ctx, models.Bot{Name: "Greeter", Description: "says hi", Status: "active"})
	require.NoError(t, err)

	now = later
	patched, err := store.Bots.Patch(ctx, models.BotPatch{Status: update.Some("archived")}, bot.ID)
	require.NoError(t, err)
	assert.Equal(t, "archived", patched.Status)
	assert.Equal(t, "says hi", patched.Description)
	assert.True(t, patched.CreatedAt.Time().Equal(fixedNow))
	assert.True(t, patched.UpdatedAt.Time().Equal(later))

	t.Run("empty patch", func(t *testing.T) {
		before := client.Calls("UpdateItem")
		_, err := store.Bots.Patch(ctx, models.BotPatch{}, bot.ID)
		assert.True(t, errors.IsEmptyUpdate(err))
		assert.Equal(t, before, client.Calls("UpdateItem"))
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := store.Bots.Patch(ctx, models.BotPatch{Status: update.Some("sleeping")}, bot.ID)
		require.Error(t, err)
		var ve *errors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "status", ve.Field)
	})

	t.Run("absent row", func(t *testing.T) {
		_, err := store.Bots.Patch(ctx, models.BotPatch{Name: update.Some("x")}, "nobody")
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestNestedEntities(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	for _, botID := range []string{"b-1", "b-2"} {
		for i := 0; i < 3; i++ {
			_, err := store.TestExecutions.Create(ctx, models.TestExecution{
				BotID:     botID,
				ID:        fmt.Sprintf("%s-run-%d", botID, i),
				TestSetID: "greetings",
				Status:    "pending",
			})
			require.NoError(t, err)
		}
	}

	page, err := store.TestExecutions.List(ctx, storagemodels.ListOptions{Count: 2}, "b-1")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.True(t, page.HasMore())

	rest, err := store.TestExecutions.List(ctx, storagemodels.ListOptions{Count: 2, Token: page.NextToken}, "b-1")
	require.NoError(t, err)
	require.Len(t, rest.Items, 1)
	assert.Equal(t, "b-1-run-2", rest.Items[0].ID)
	assert.False(t, rest.HasMore())

	finished := models.NewTimestamp(fixedNow)
	run, err := store.TestExecutions.Patch(ctx, models.TestExecutionPatch{
		Status:     update.Some("passed"),
		Passed:     update.Some(12),
		FinishedAt: update.Some(finished),
	}, "b-2", "b-2-run-0")
	require.NoError(t, err)
	assert.Equal(t, "b-2", run.BotID)
	assert.Equal(t, 12, run.Passed)
	assert.True(t, run.FinishedAt.Time().Equal(fixedNow))

	_, err = store.TestExecutions.Patch(ctx, models.TestExecutionPatch{Passed: update.Some(-1)}, "b-2", "b-2-run-0")
	assert.True(t, errors.IsValidationError(err))
}

func TestTasksAndItems(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	task, err := store.Tasks.Create(ctx, models.Task{Title: "Review failures", Status: "open"})
	require.NoError(t, err)

	for i, text := range []string{"collect logs", "triage", "file bugs"} {
		_, err := store.TaskItems.Create(ctx, models.TaskItem{TaskID: task.ID, Text: text, Position: i})
		require.NoError(t, err)
	}

	var items []models.TaskItem
	for r := range store.TaskItems.Stream(ctx, []string{task.ID}, storagemodels.WithPageSize(2)) {
		require.NoError(t, r.Error)
		items = append(items, r.Item)
	}
	require.Len(t, items, 3)

	done, err := store.TaskItems.Patch(ctx, models.TaskItemPatch{Done: update.Some(true)}, task.ID, items[0].ID)
	require.NoError(t, err)
	assert.True(t, done.Done)

	require.NoError(t, store.TaskItems.Delete(ctx, task.ID, items[0].ID))
	page, err := store.TaskItems.List(ctx, storagemodels.ListOptions{}, task.ID)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestFieldRules(t *testing.T) {
	rules := fieldRules[models.Bot]()
	assert.Equal(t, "required,oneof=active inactive archived", rules["status"])
	assert.NotContains(t, rules, "createdAt")
	assert.Empty(t, fieldRules[string]())
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GitCommit)
}
