/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

// Record is implemented by every stored entity.
type Record interface {
	// Prepare assigns a generated identifier when none is set and stamps
	// both timestamps with now.
	Prepare(newID func() string, now Timestamp)
}

// Bot is a conversational bot under test.
type Bot struct {

	// Unique identifier for the bot.
	// Required: true
	ID string `json:"id" dynamodbav:"id" validate:"required,max=128"`

	// Display name of the bot.
	// Required: true
	Name string `json:"name" dynamodbav:"name" validate:"required,max=256"`

	// A description of the bot.
	Description string `json:"description,omitempty" dynamodbav:"description,omitempty" validate:"max=2048"`

	// Endpoint the bot answers on.
	Endpoint string `json:"endpoint,omitempty" dynamodbav:"endpoint,omitempty" validate:"omitempty,url"`

	// Lifecycle status.
	// Enum: [active inactive archived]
	Status string `json:"status" dynamodbav:"status" validate:"required,oneof=active inactive archived"`

	// Format: date-time
	CreatedAt Timestamp `json:"createdAt" dynamodbav:"createdAt"`

	// Format: date-time
	UpdatedAt Timestamp `json:"updatedAt" dynamodbav:"updatedAt"`
}

// TestCase is one prompt of a test set with the answer it expects.
type TestCase struct {
	Prompt   string `json:"prompt" dynamodbav:"prompt" validate:"required"`
	Expected string `json:"expected,omitempty" dynamodbav:"expected,omitempty"`
}

// TestSet is a reusable collection of test cases.
type TestSet struct {

	// Unique identifier for the test set.
	// Required: true
	ID string `json:"id" dynamodbav:"id" validate:"required,max=128"`

	// Required: true
	Name string `json:"name" dynamodbav:"name" validate:"required,max=256"`

	Description string `json:"description,omitempty" dynamodbav:"description,omitempty" validate:"max=2048"`

	// BCP 47 language of the prompts.
	Language string `json:"language,omitempty" dynamodbav:"language,omitempty" validate:"omitempty,bcp47_language_tag"`

	Cases []TestCase `json:"cases,omitempty" dynamodbav:"cases,omitempty" validate:"dive"`

	// Format: date-time
	CreatedAt Timestamp `json:"createdAt" dynamodbav:"createdAt"`

	// Format: date-time
	UpdatedAt Timestamp `json:"updatedAt" dynamodbav:"updatedAt"`
}

// TestExecution records one run of a test set against a bot. Executions are
// stored under their bot.
type TestExecution struct {

	// Bot the test set was run against.
	// Required: true
	BotID string `json:"botId" dynamodbav:"botId" validate:"required,max=128"`

	// Required: true
	ID string `json:"id" dynamodbav:"id" validate:"required,max=128"`

	// Required: true
	TestSetID string `json:"testSetId" dynamodbav:"testSetId" validate:"required,max=128"`

	// Enum: [pending running passed failed]
	Status string `json:"status" dynamodbav:"status" validate:"required,oneof=pending running passed failed"`

	Passed int `json:"passed" dynamodbav:"passed" validate:"min=0"`

	Failed int `json:"failed" dynamodbav:"failed" validate:"min=0"`

	// Format: date-time
	FinishedAt Timestamp `json:"finishedAt,omitempty" dynamodbav:"finishedAt,omitempty"`

	// Format: date-time
	CreatedAt Timestamp `json:"createdAt" dynamodbav:"createdAt"`

	// Format: date-time
	UpdatedAt Timestamp `json:"updatedAt" dynamodbav:"updatedAt"`
}

// Task is an administrative work item.
type Task struct {

	// Required: true
	ID string `json:"id" dynamodbav:"id" validate:"required,max=128"`

	// Required: true
	Title string `json:"title" dynamodbav:"title" validate:"required,max=256"`

	Description string `json:"description,omitempty" dynamodbav:"description,omitempty" validate:"max=4096"`

	// Enum: [open in_progress done]
	Status string `json:"status" dynamodbav:"status" validate:"required,oneof=open in_progress done"`

	Assignee string `json:"assignee,omitempty" dynamodbav:"assignee,omitempty" validate:"omitempty,email"`

	// Format: date-time
	CreatedAt Timestamp `json:"createdAt" dynamodbav:"createdAt"`

	// Format: date-time
	UpdatedAt Timestamp `json:"updatedAt" dynamodbav:"updatedAt"`
}

// TaskItem is a checklist entry of a task, stored under the task.
type TaskItem struct {

	// Required: true
	TaskID string `json:"taskId" dynamodbav:"taskId" validate:"required,max=128"`

	// Required: true
	ID string `json:"id" dynamodbav:"id" validate:"required,max=128"`

	// Required: true
	Text string `json:"text" dynamodbav:"text" validate:"required,max=1024"`

	Done bool `json:"done" dynamodbav:"done"`

	Position int `json:"position" dynamodbav:"position" validate:"min=0"`

	// Format: date-time
	CreatedAt Timestamp `json:"createdAt" dynamodbav:"createdAt"`

	// Format: date-time
	UpdatedAt Timestamp `json:"updatedAt" dynamodbav:"updatedAt"`
}

func prepare(id *string, created, updated *Timestamp, newID func() string, now Timestamp) {
	if *id == "" {
		*id = newID()
	}
	*created = now
	*updated = now
}

func (b *Bot) Prepare(newID func() string, now Timestamp) {
	prepare(&b.ID, &b.CreatedAt, &b.UpdatedAt, newID, now)
}

func (s *TestSet) Prepare(newID func() string, now Timestamp) {
	prepare(&s.ID, &s.CreatedAt, &s.UpdatedAt, newID, now)
}

func (e *TestExecution) Prepare(newID func() string, now Timestamp) {
	prepare(&e.ID, &e.CreatedAt, &e.UpdatedAt, newID, now)
}

func (t *Task) Prepare(newID func() string, now Timestamp) {
	prepare(&t.ID, &t.CreatedAt, &t.UpdatedAt, newID, now)
}

func (i *TaskItem) Prepare(newID func() string, now Timestamp) {
	prepare(&i.ID, &i.CreatedAt, &i.UpdatedAt, newID, now)
}
