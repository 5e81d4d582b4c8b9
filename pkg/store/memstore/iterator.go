/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package memstore

import (
	"net/url"

	"github.com/fedikit/fedikit/pkg/store/spi"
)

// ReferenceIterator iterates over an in-memory result set.
type ReferenceIterator struct {
	results    []*url.URL
	totalItems int
	current    int
}

// NewReferenceIterator creates a new ReferenceIterator.
func NewReferenceIterator(results []*url.URL, totalItems int) *ReferenceIterator {
	return &ReferenceIterator{
		results:    results,
		totalItems: totalItems,
		current:    -1,
	}
}

// TotalItems returns the total number of items matching the query, regardless of paging.
func (it *ReferenceIterator) TotalItems() (int, error) {
	return it.totalItems, nil
}

// Next returns the next reference or an ErrNotFound error if there are no more items.
func (it *ReferenceIterator) Next() (*url.URL, error) {
	if it.current >= len(it.results)-1 {
		return nil, spi.ErrNotFound
	}

	it.current++

	return it.results[it.current], nil
}

// Close closes the iterator.
func (it *ReferenceIterator) Close() error {
	return nil
}
