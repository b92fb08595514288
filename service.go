/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package adminstore

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/suparena/adminstore/datastore"
	"github.com/suparena/adminstore/errors"
	"github.com/suparena/adminstore/models"
	"github.com/suparena/adminstore/update"
)

// Service is the repository of one entity type with identifier assignment,
// validation and timestamps layered on top. Reads, deletes, listings and raw
// updates go straight to the embedded repository.
type Service[T any] struct {
	datastore.Repository[T]

	entity   string
	rules    map[string]string
	validate *validator.Validate
	newID    func() string
	now      func() time.Time
}

func newService[T any](repo datastore.Repository[T], entity string, o *options) *Service[T] {
	return &Service[T]{
		Repository: repo,
		entity:     entity,
		rules:      fieldRules[T](),
		validate:   o.validate,
		newID:      o.newID,
		now:        o.now,
	}
}

// Create assigns an identifier when entity has none, stamps CreatedAt and
// UpdatedAt, validates the result and stores it.
func (s *Service[T]) Create(ctx context.Context, entity T) (T, error) {
	var zero T

	if rec, ok := any(&entity).(models.Record); ok {
		rec.Prepare(s.newID, models.NewTimestamp(s.now()))
	}
	if err := s.validate.StructCtx(ctx, entity); err != nil {
		return zero, validationError("", err)
	}
	return s.Repository.Create(ctx, entity)
}

// Patch applies a typed partial update and stamps UpdatedAt. A patch that
// changes nothing fails with errors.ErrEmptyUpdate without touching the
// store.
func (s *Service[T]) Patch(ctx context.Context, patch models.Patch, ids ...string) (T, error) {
	var zero T

	changes := patch.ChangeSet()
	if len(changes.Fields()) == 0 {
		return zero, errors.NewEmptyUpdateError(s.entity)
	}
	if err := s.validatePatch(changes); err != nil {
		return zero, err
	}
	changes[updatedAtField] = update.Set(models.NewTimestamp(s.now()))
	return s.Repository.Update(ctx, changes, ids...)
}

const updatedAtField = "updatedAt"

// validatePatch checks each changed value against the rule of the entity
// field it is stored in.
func (s *Service[T]) validatePatch(changes update.ChangeSet) error {
	for _, name := range changes.Fields() {
		rule, ok := s.rules[name]
		if !ok {
			continue
		}
		if err := s.validate.Var(changes[name].Value(), rule); err != nil {
			return validationError(name, err)
		}
	}
	return nil
}

// fieldRules maps the attribute names of T to their validate tags.
func fieldRules[T any]() map[string]string {
	rules := make(map[string]string)
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		return rules
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		rule := f.Tag.Get("validate")
		if rule == "" || !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("dynamodbav"), ",")
		if name == "" {
			name = f.Name
		}
		rules[name] = rule
	}
	return rules
}

// validationError reports the first failed rule of err. field names the
// value when err came from validating a single variable.
func validationError(field string, err error) error {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if field == "" {
			field = fe.Namespace()
		}
		return errors.NewValidationError(field, fmt.Sprintf("failed on the '%s' rule", fe.Tag()))
	}
	return errors.NewValidationError(field, err.Error())
}
