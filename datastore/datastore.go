/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/adminstore/storagemodels"
	"github.com/suparena/adminstore/update"
)

// Repository is the per-entity access contract over the shared table.
// ids are the identifier components of one row, parents those of a partition.
type Repository[T any] interface {
	// Get returns nil, nil when the row does not exist.
	Get(ctx context.Context, ids ...string) (*T, error)

	// Create writes entity unconditionally; an existing row is overwritten.
	Create(ctx context.Context, entity T) (T, error)

	// Update applies changes to an existing row and returns the stored result.
	// It fails with errors.ErrNotFound when the row is absent.
	Update(ctx context.Context, changes update.ChangeSet, ids ...string) (T, error)

	// Delete removes the row. Deleting an absent row succeeds.
	Delete(ctx context.Context, ids ...string) error

	List(ctx context.Context, opts storagemodels.ListOptions, parents ...string) (*storagemodels.Page[T], error)

	Stream(ctx context.Context, parents []string, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
}
