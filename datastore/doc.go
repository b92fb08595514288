/*
Package datastore defines the repository interface every entity type of the
admin table is accessed through:

	type Repository[T any] interface {
	    Get(ctx context.Context, ids ...string) (*T, error)
	    Create(ctx context.Context, entity T) (T, error)
	    Update(ctx context.Context, changes update.ChangeSet, ids ...string) (T, error)
	    Delete(ctx context.Context, ids ...string) error
	    List(ctx context.Context, opts storagemodels.ListOptions, parents ...string) (*storagemodels.Page[T], error)
	    Stream(ctx context.Context, parents []string, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
	}

Implementations:
  - ddb: DynamoDB single-table implementation
  - ddbtest: in-memory DynamoDB client for exercising ddb without AWS

Each operation is one request to the store. Nothing is retried, cached or
locked here; concurrent writers to the same row race and the last write wins.
*/
package datastore
