/*
Package ddb provides the DynamoDB implementation of datastore.Repository.

Every entity type shares one table. A Schema names the type's tag, which
fixes how many identifier components address a row, and which attributes are
read back:

	bots, err := ddb.New(client, "admin", ddb.Schema[models.Bot]{
	    Tag:      keys.Bot,
	    IDFields: []string{"id"},
	    Identify: func(b models.Bot) []string { return []string{b.ID} },
	    PageSize: 100,
	})

Rows are keyed PK = Tag#parents..., SK = Tag#parents...#id and carry an
EntityType attribute holding the tag name. Listings query one partition with
a begins_with prefix on SK and hand back opaque page tokens. A listing that
asks for no count is bounded by the schema's PageSize, which is also the
default page size of a stream.

Streaming walks a whole partition through the SDK query paginator:

	results := bots.Stream(ctx, nil,
	    storagemodels.WithBufferSize(100),
	    storagemodels.WithPageSize(25),
	    storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
	        log.Printf("Processed %d items", p.ItemsProcessed)
	    }),
	)

Nothing is retried and no locks are held; the Client is owned by the caller.
*/
package ddb
