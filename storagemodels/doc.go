/*
Package storagemodels defines the value types exchanged across the adminstore
repository interface.

ListOptions and Page carry one page of a listing:

	page, err := store.Bots.List(ctx, storagemodels.ListOptions{Count: 10})
	// page.Items, page.NextToken

	next, err := store.Bots.List(ctx, storagemodels.ListOptions{Count: 10, Token: page.NextToken})

StreamResult and StreamOptions configure walking a whole partition:

	for r := range store.TestExecutions.Stream(ctx, []string{botID}, storagemodels.WithPageSize(25)) {
	    if r.Error != nil { ... }
	}
*/
package storagemodels
