/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package spi

import (
	"context"
	"errors"
	"net/url"

	"github.com/fedikit/fedikit/pkg/vocab"
)

// ErrNotFound is returned from various store functions when a requested
// object is not found in the store.
var ErrNotFound = errors.New("not found")

// SortOrder specifies the order in which references are sorted.
type SortOrder int

const (
	// SortAscending indicates that references are returned in ascending order, i.e. oldest first.
	SortAscending SortOrder = iota
	// SortDescending indicates that references are returned in descending order, i.e. newest first.
	SortDescending
)

// QueryOptions holds options for a collection query.
type QueryOptions struct {
	PageNumber int
	PageSize   int
	SortOrder  SortOrder
}

// QueryOpt sets a query option.
type QueryOpt func(options *QueryOptions)

// WithPageSize sets the page size of the query results.
func WithPageSize(pageSize int) QueryOpt {
	return func(options *QueryOptions) {
		options.PageSize = pageSize
	}
}

// WithPageNum sets the page number of the query results.
func WithPageNum(pageNum int) QueryOpt {
	return func(options *QueryOptions) {
		options.PageNumber = pageNum
	}
}

// WithSortOrder sets the sort order of the query results. (Default is ascending.)
func WithSortOrder(sortOrder SortOrder) QueryOpt {
	return func(options *QueryOptions) {
		options.SortOrder = sortOrder
	}
}

// ReferenceIterator iterates over the references in a collection query result set.
type ReferenceIterator interface {
	// TotalItems returns the total number of items matching the query, regardless of paging.
	TotalItems() (int, error)
	// Next returns the next reference or ErrNotFound if there are no more references.
	Next() (*url.URL, error)
	// Close closes the iterator.
	Close() error
}

// Store manages ActivityStreams objects, activities, and actors, along with the
// ordered reference collections (inbox, outbox, followers, etc.) that tie them together.
type Store interface {
	ObjectStore
	ActorStore
	CollectionStore
}

// ObjectStore stores ActivityStreams documents, keyed by their 'id' property. Activities
// and plain objects share the same key space. Documents are stored raw so that
// application-defined properties survive a round trip.
type ObjectStore interface {
	// Create stores the given document, keyed by its 'id' property. An existing
	// document with the same id is replaced.
	Create(ctx context.Context, doc vocab.Document) error

	// Update replaces the document stored under the given document's 'id' property.
	Update(ctx context.Context, doc vocab.Document) error

	// Delete removes the document with the given IRI.
	Delete(ctx context.Context, id *url.URL) error

	// Get returns the document with the given IRI. Returns ErrNotFound if it isn't in the store.
	Get(ctx context.Context, id *url.URL) (vocab.Document, error)

	// GetActivity returns the activity with the given IRI. Returns ErrNotFound
	// if it isn't in the store.
	GetActivity(ctx context.Context, id *url.URL) (*vocab.ActivityType, error)

	// Exists returns true if a document with the given IRI is in the store.
	Exists(ctx context.Context, id *url.URL) (bool, error)

	// Owns returns true if the given IRI is managed by this server.
	Owns(ctx context.Context, id *url.URL) (bool, error)

	// NewID mints a new, unique IRI under this server's endpoint for the given document.
	// The document is not stored.
	NewID(ctx context.Context, doc vocab.Document) (*url.URL, error)
}

// ActorStore stores actors along with the mappings from their well-known
// collections (inbox, outbox, followers, following, liked) back to the actor.
type ActorStore interface {
	// PutActor stores the given actor and indexes its inbox, outbox, and
	// collection IRIs. An existing actor with the same id is replaced.
	PutActor(ctx context.Context, actor *vocab.ActorType) error

	// GetActor returns the actor with the given IRI. Returns ErrNotFound
	// if it isn't in the store.
	GetActor(ctx context.Context, actorIRI *url.URL) (*vocab.ActorType, error)

	// ActorForCollection returns the IRI of the actor that owns the given
	// inbox, outbox, followers, following, or liked collection.
	ActorForCollection(ctx context.Context, collIRI *url.URL) (*url.URL, error)

	// ActorForInbox returns the IRI of the actor that owns the given inbox.
	ActorForInbox(ctx context.Context, inboxIRI *url.URL) (*url.URL, error)

	// ActorForOutbox returns the IRI of the actor that owns the given outbox.
	ActorForOutbox(ctx context.Context, outboxIRI *url.URL) (*url.URL, error)

	// OutboxForInbox returns the IRI of the outbox that belongs to the same
	// actor as the given inbox.
	OutboxForInbox(ctx context.Context, inboxIRI *url.URL) (*url.URL, error)

	// InboxForActor returns the inbox IRI of the given actor, along with the actor's
	// shared inbox IRI (which may be nil). Returns ErrNotFound if the actor is unknown.
	InboxForActor(ctx context.Context, actorIRI *url.URL) (inbox, sharedInbox *url.URL, err error)
}

// CollectionStore manages ordered collections of IRI references, keyed by
// collection IRI. References are maintained in the order in which they were added.
type CollectionStore interface {
	// UpdateCollection adds and removes the given references. The collection is
	// created if it doesn't exist. Adding a reference that's already in the
	// collection is a no-op, as is removing one that isn't.
	UpdateCollection(ctx context.Context, collIRI *url.URL, add, remove []*url.URL) error

	// CollectionContains returns true if the given collection contains the given reference.
	CollectionContains(ctx context.Context, collIRI, iri *url.URL) (bool, error)

	// QueryCollection returns an iterator over the references in the given collection.
	// Querying a collection that doesn't exist returns an empty iterator.
	QueryCollection(ctx context.Context, collIRI *url.URL, opts ...QueryOpt) (ReferenceIterator, error)
}

// PublicCollectionIRI returns the IRI under which the public subset of the given
// collection is tracked. Activities addressed to the public IRI are added to this
// subset so that reads by unauthorized clients may be served from it. The fragment
// keeps the IRI off of any routable path.
func PublicCollectionIRI(collIRI *url.URL) *url.URL {
	publicIRI := *collIRI
	publicIRI.Fragment = "public"

	return &publicIRI
}
