/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package adminstore

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/suparena/adminstore/config"
	"github.com/suparena/adminstore/datastore"
	"github.com/suparena/adminstore/datastore/ddb"
	"github.com/suparena/adminstore/keys"
	"github.com/suparena/adminstore/models"
	"github.com/suparena/adminstore/observe"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Store bundles the repositories of every entity type sharing one table.
type Store struct {
	Bots           *Service[models.Bot]
	TestSets       *Service[models.TestSet]
	TestExecutions *Service[models.TestExecution]
	Tasks          *Service[models.Task]
	TaskItems      *Service[models.TaskItem]
}

type options struct {
	observe  []observe.Option
	validate *validator.Validate
	newID    func() string
	now      func() time.Time
	pageSize int32
}

// Option configures New.
type Option func(*options)

// WithLogger logs every repository operation to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.observe = append(o.observe, observe.WithLogger(logger))
	}
}

// WithMetrics records every repository operation in m.
func WithMetrics(m *observe.Metrics) Option {
	return func(o *options) {
		o.observe = append(o.observe, observe.WithMetrics(m))
	}
}

// WithTracer traces repository operations with tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.observe = append(o.observe, observe.WithTracer(tracer))
	}
}

// WithValidator replaces the validator used on create and patch.
func WithValidator(v *validator.Validate) Option {
	return func(o *options) {
		o.validate = v
	}
}

// WithIDGenerator replaces the generator of new entity identifiers.
func WithIDGenerator(f func() string) Option {
	return func(o *options) {
		o.newID = f
	}
}

// WithClock replaces the source of CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithPageSize bounds listings that ask for no count and sets the default
// page size of streams. Zero leaves such listings unbounded.
func WithPageSize(n int32) Option {
	return func(o *options) {
		o.pageSize = n
	}
}

// New builds the store over table. The client is shared by all repositories
// and remains owned by the caller.
func New(client ddb.Client, table string, opts ...Option) (*Store, error) {
	o := &options{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		newID:    func() string { return uuid.NewString() },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	s := &Store{}
	var err error
	if s.Bots, err = register(client, table, BotSchema(), o); err != nil {
		return nil, err
	}
	if s.TestSets, err = register(client, table, TestSetSchema(), o); err != nil {
		return nil, err
	}
	if s.TestExecutions, err = register(client, table, TestExecutionSchema(), o); err != nil {
		return nil, err
	}
	if s.Tasks, err = register(client, table, TaskSchema(), o); err != nil {
		return nil, err
	}
	if s.TaskItems, err = register(client, table, TaskItemSchema(), o); err != nil {
		return nil, err
	}
	return s, nil
}

// NewFromConfig validates cfg, connects to DynamoDB and builds the store.
// Operations are logged with a logger built from cfg and paged by
// cfg.PageSize unless opts override them.
func NewFromConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	client, err := config.NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	defaults := []Option{WithLogger(logger), WithPageSize(cfg.PageSize)}
	return New(client, cfg.Table, append(defaults, opts...)...)
}

func register[T any](client ddb.Client, table string, schema ddb.Schema[T], o *options) (*Service[T], error) {
	schema.PageSize = o.pageSize
	repo, err := ddb.New(client, table, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s repository: %w", schema.Tag, err)
	}
	var r datastore.Repository[T] = repo
	if len(o.observe) > 0 {
		r = observe.Wrap(r, schema.Tag.String(), o.observe...)
	}
	return newService(r, schema.Tag.String(), o), nil
}

// BotSchema lays out bots in the shared partition of the Bot tag.
func BotSchema() ddb.Schema[models.Bot] {
	return ddb.Schema[models.Bot]{
		Tag:      keys.Bot,
		IDFields: []string{"id"},
		Identify: func(b models.Bot) []string { return []string{b.ID} },
	}
}

func TestSetSchema() ddb.Schema[models.TestSet] {
	return ddb.Schema[models.TestSet]{
		Tag:      keys.TestSet,
		IDFields: []string{"id"},
		Identify: func(s models.TestSet) []string { return []string{s.ID} },
	}
}

// TestExecutionSchema partitions executions by bot.
func TestExecutionSchema() ddb.Schema[models.TestExecution] {
	return ddb.Schema[models.TestExecution]{
		Tag:      keys.TestExecution,
		IDFields: []string{"botId", "id"},
		Identify: func(e models.TestExecution) []string { return []string{e.BotID, e.ID} },
	}
}

func TaskSchema() ddb.Schema[models.Task] {
	return ddb.Schema[models.Task]{
		Tag:      keys.Task,
		IDFields: []string{"id"},
		Identify: func(t models.Task) []string { return []string{t.ID} },
	}
}

// TaskItemSchema partitions items by task.
func TaskItemSchema() ddb.Schema[models.TaskItem] {
	return ddb.Schema[models.TaskItem]{
		Tag:      keys.TaskItem,
		IDFields: []string{"taskId", "id"},
		Identify: func(i models.TaskItem) []string { return []string{i.TaskID, i.ID} },
	}
}
