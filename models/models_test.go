/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/adminstore/update"
)

func TestTimestampAttribute(t *testing.T) {
	now := NewTimestamp(time.Date(2025, 3, 4, 5, 6, 7, 891234567, time.UTC))

	av, err := attributevalue.Marshal(now)
	require.NoError(t, err)
	s, ok := av.(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "2025-03-04T05:06:07.891Z", s.Value)

	var back Timestamp
	require.NoError(t, attributevalue.Unmarshal(av, &back))
	assert.True(t, now.Time().Equal(back.Time()))

	av, err = attributevalue.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.IsType(t, &types.AttributeValueMemberNULL{}, av)

	assert.Error(t, back.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberS{Value: "yesterday"}))
	assert.Error(t, back.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberN{Value: "1"}))
}

func TestBotRoundTrip(t *testing.T) {
	now := NewTimestamp(time.Now())
	bot := Bot{ID: "b-1", Name: "Greeter", Status: "active", CreatedAt: now, UpdatedAt: now}

	item, err := attributevalue.MarshalMap(bot)
	require.NoError(t, err)
	assert.Contains(t, item, "createdAt")
	assert.NotContains(t, item, "description")

	var back Bot
	require.NoError(t, attributevalue.UnmarshalMap(item, &back))
	assert.Equal(t, bot.Name, back.Name)
	assert.True(t, bot.CreatedAt.Time().Equal(back.CreatedAt.Time()))

	data, err := json.Marshal(bot)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"createdAt":"`)
}

func TestPrepareKeepsExistingID(t *testing.T) {
	now := NewTimestamp(time.Now())
	gen := func() string { return "generated" }

	var b Bot
	b.Prepare(gen, now)
	assert.Equal(t, "generated", b.ID)
	assert.Equal(t, now, b.CreatedAt)
	assert.Equal(t, now, b.UpdatedAt)

	item := TaskItem{TaskID: "t-1", ID: "fixed"}
	item.Prepare(gen, now)
	assert.Equal(t, "fixed", item.ID)
	assert.Equal(t, "t-1", item.TaskID)
}

func TestValidation(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(Bot{ID: "b", Name: "n", Status: "active"}))
	assert.Error(t, v.Struct(Bot{ID: "b", Name: "n", Status: "sleeping"}))
	assert.Error(t, v.Struct(Bot{ID: "b", Name: "n", Status: "active", Endpoint: "not a url"}))

	assert.Error(t, v.Struct(TestSet{ID: "s", Name: "n", Cases: []TestCase{{Prompt: ""}}}))
	assert.Error(t, v.Struct(TestExecution{ID: "e", TestSetID: "s", Status: "running"}))
	assert.Error(t, v.Struct(Task{ID: "t", Title: "x", Status: "open", Assignee: "nobody"}))
	assert.NoError(t, v.Struct(TaskItem{TaskID: "t", ID: "i", Text: "do it"}))
}

func TestPatchChangeSets(t *testing.T) {
	assert.Empty(t, BotPatch{}.ChangeSet().Fields())

	cs := BotPatch{Name: update.Some("renamed"), Description: update.Some("")}.ChangeSet()
	assert.Equal(t, []string{"description", "name"}, cs.Fields())
	assert.Equal(t, "", cs["description"].Value())

	finished := NewTimestamp(time.Now())
	cs = TestExecutionPatch{Status: update.Some("passed"), Passed: update.Some(3), FinishedAt: update.Some(finished)}.ChangeSet()
	assert.Equal(t, []string{"finishedAt", "passed", "status"}, cs.Fields())

	cs = TaskItemPatch{Done: update.Some(false)}.ChangeSet()
	assert.Equal(t, []string{"done"}, cs.Fields())
	assert.Equal(t, false, cs["done"].Value())

	assert.Equal(t, []string{"cases"}, TestSetPatch{Cases: update.Some([]TestCase(nil))}.ChangeSet().Fields())
	assert.Equal(t, []string{"assignee"}, TaskPatch{Assignee: update.Some("a@b.co")}.ChangeSet().Fields())
}
