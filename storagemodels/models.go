/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// ListOptions bounds one page of a listing.
type ListOptions struct {
	// Count is the page-size ceiling. Zero leaves the page size to the store.
	Count int32
	// Token resumes a listing after the last row of a previous page.
	Token string
}

// Page is one page of a listing.
type Page[T any] struct {
	Items []T
	// NextToken is empty when the listing is exhausted.
	NextToken string
}

// HasMore reports whether another page may follow.
func (p *Page[T]) HasMore() bool {
	return p.NextToken != ""
}
