/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/adminstore/errors"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name       string
		tag        Tag
		components []any
		expected   string
	}{
		{name: "partition marker", tag: Bot, expected: "Bot"},
		{name: "flat row", tag: Bot, components: []any{"ABC123"}, expected: "Bot#abc123"},
		{name: "nested row", tag: TestExecution, components: []any{"bot-1", "exec-9"}, expected: "TestExecution#bot-1#exec-9"},
		{name: "delimiter escaped", tag: TaskItem, components: []any{"a#b"}, expected: "TaskItem#a%23b"},
		{name: "space and slash escaped", tag: TestSet, components: []any{"Greeting Flow/EN"}, expected: "TestSet#greeting%20flow%2fen"},
		{name: "percent escaped", tag: TestSet, components: []any{"100%"}, expected: "TestSet#100%25"},
		{name: "numbers pass through", tag: Task, components: []any{42, int64(-7), uint8(3), 1.5}, expected: "Task#42#-7#3#1.5"},
		{name: "booleans pass through", tag: Task, components: []any{true, false}, expected: "Task#true#false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Encode(tt.tag, tt.components...))
		})
	}
}

func TestEncodeFoldsCase(t *testing.T) {
	assert.Equal(t, Encode(Bot, "ABC123"), Encode(Bot, "abc123"))
	assert.Equal(t, Encode(Bot, "Émile"), Encode(Bot, "émile"))
}

func TestEncodePrefix(t *testing.T) {
	assert.Equal(t, "Bot#", EncodePrefix(Bot))
	assert.Equal(t, "TestExecution#bot-1#", EncodePrefix(TestExecution, "BOT-1"))
	assert.True(t, strings.HasPrefix(Encode(TestExecution, "bot-1", "x"), EncodePrefix(TestExecution, "bot-1")))
	assert.False(t, strings.HasPrefix(Encode(TestExecution, "bot-10", "x"), EncodePrefix(TestExecution, "bot-1")))
}

func TestDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		tag        Tag
		components []any
		expected   []string
	}{
		{name: "tag only", tag: Bot, expected: []string{"Bot"}},
		{name: "plain", tag: Bot, components: []any{"abc"}, expected: []string{"Bot", "abc"}},
		{name: "mixed case", tag: Bot, components: []any{"MiXeD"}, expected: []string{"Bot", "mixed"}},
		{name: "contains delimiter", tag: TaskItem, components: []any{"task#1", "item#2"}, expected: []string{"TaskItem", "task#1", "item#2"}},
		{name: "spaces", tag: TestSet, components: []any{"hello world"}, expected: []string{"TestSet", "hello world"}},
		{name: "escape-looking text", tag: TestSet, components: []any{"%23"}, expected: []string{"TestSet", "%23"}},
		{name: "numbers", tag: Task, components: []any{7, true}, expected: []string{"Task", "7", "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(Encode(tt.tag, tt.components...))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeAbsentKey(t *testing.T) {
	got, err := Decode("")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestDecodeMalformed(t *testing.T) {
	for _, key := range []string{"Bot#%zz", "Bot#%4", "#orphan"} {
		t.Run(key, func(t *testing.T) {
			_, err := Decode(key)
			require.Error(t, err)
			assert.True(t, errors.IsMalformedKey(err))
		})
	}
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, HasPrefix(Encode(Bot, "X"), Bot))
	assert.False(t, HasPrefix(Encode(TestSet, "X"), Bot))
	assert.False(t, HasPrefix(Encode(Bot), Bot))
	assert.False(t, HasPrefix(Encode(Task, "1"), TaskItem))
	assert.True(t, HasPrefix(Encode(TaskItem, "1", "2"), TaskItem))
}

func TestParseTag(t *testing.T) {
	for _, tag := range Tags() {
		parsed, err := ParseTag(tag.String())
		require.NoError(t, err)
		assert.Equal(t, tag, parsed)
	}

	_, err := ParseTag("Widget")
	assert.Error(t, err)
	assert.True(t, Tag{}.IsZero())
	assert.False(t, Bot.IsZero())
}

func TestShapeParents(t *testing.T) {
	assert.Equal(t, 0, Singleton.Parents())
	assert.Equal(t, 0, Flat.Parents())
	assert.Equal(t, 1, Nested.Parents())
}

func TestTagShapes(t *testing.T) {
	assert.Equal(t, Flat, Bot.Shape())
	assert.Equal(t, Flat, TestSet.Shape())
	assert.Equal(t, Nested, TestExecution.Shape())
	assert.Equal(t, Flat, Task.Shape())
	assert.Equal(t, Nested, TaskItem.Shape())
}
