/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package memstore

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"sync"

	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/store/spi"
	"github.com/fedikit/fedikit/pkg/store/storeutil"
	"github.com/fedikit/fedikit/pkg/vocab"
)

var logger = log.New("activitypub_store")

// Store implements an in-memory ActivityPub store.
type Store struct {
	serviceName     string
	serviceEndpoint *url.URL

	documents   map[string][]byte
	collections map[string]*collection
	actors      map[string]*vocab.ActorType
	actorByColl map[string]*url.URL
	boxMappings map[string]*boxMapping
	mutex       sync.RWMutex
}

type boxMapping struct {
	actor       *url.URL
	inbox       *url.URL
	outbox      *url.URL
	sharedInbox *url.URL
}

// New returns a new in-memory ActivityPub store. The service endpoint determines
// which IRIs are owned by this server and is the base under which new IRIs are minted.
func New(serviceName string, serviceEndpoint *url.URL) *Store {
	return &Store{
		serviceName:     serviceName,
		serviceEndpoint: serviceEndpoint,
		documents:       make(map[string][]byte),
		collections:     make(map[string]*collection),
		actors:          make(map[string]*vocab.ActorType),
		actorByColl:     make(map[string]*url.URL),
		boxMappings:     make(map[string]*boxMapping),
	}
}

// Create stores the given document, keyed by its 'id' property.
func (s *Store) Create(_ context.Context, doc vocab.Document) error {
	id, docBytes, err := marshalDoc(doc)
	if err != nil {
		return err
	}

	logger.Debug("Storing document", logfields.WithServiceName(s.serviceName), logfields.WithObjectIRI(id))

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.documents[id.String()] = docBytes

	return nil
}

// Update replaces the document stored under the given document's 'id' property.
func (s *Store) Update(_ context.Context, doc vocab.Document) error {
	id, docBytes, err := marshalDoc(doc)
	if err != nil {
		return err
	}

	logger.Debug("Updating document", logfields.WithServiceName(s.serviceName), logfields.WithObjectIRI(id))

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.documents[id.String()]; !ok {
		return spi.ErrNotFound
	}

	s.documents[id.String()] = docBytes

	return nil
}

// Delete removes the document with the given IRI.
func (s *Store) Delete(_ context.Context, id *url.URL) error {
	logger.Debug("Deleting document", logfields.WithServiceName(s.serviceName), logfields.WithObjectIRI(id))

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.documents[id.String()]; !ok {
		return spi.ErrNotFound
	}

	delete(s.documents, id.String())

	return nil
}

// Get returns the document with the given IRI. Returns ErrNotFound if it isn't in the store.
func (s *Store) Get(_ context.Context, id *url.URL) (vocab.Document, error) {
	s.mutex.RLock()
	docBytes, ok := s.documents[id.String()]
	s.mutex.RUnlock()

	if !ok {
		return nil, spi.ErrNotFound
	}

	return vocab.UnmarshalToDoc(docBytes)
}

// GetActivity returns the activity with the given IRI. Returns ErrNotFound
// if it isn't in the store.
func (s *Store) GetActivity(_ context.Context, id *url.URL) (*vocab.ActivityType, error) {
	s.mutex.RLock()
	docBytes, ok := s.documents[id.String()]
	s.mutex.RUnlock()

	if !ok {
		return nil, spi.ErrNotFound
	}

	activity := &vocab.ActivityType{}

	err := activity.UnmarshalJSON(docBytes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal activity [%s]: %w", id, err)
	}

	return activity, nil
}

// Exists returns true if a document with the given IRI is in the store.
func (s *Store) Exists(_ context.Context, id *url.URL) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	_, ok := s.documents[id.String()]

	return ok, nil
}

// Owns returns true if the given IRI is managed by this server.
func (s *Store) Owns(_ context.Context, id *url.URL) (bool, error) {
	if id == nil {
		return false, nil
	}

	return id.Host == s.serviceEndpoint.Host, nil
}

// NewID mints a new, unique IRI under this server's endpoint for the given document.
func (s *Store) NewID(_ context.Context, doc vocab.Document) (*url.URL, error) {
	return storeutil.MintID(s.serviceEndpoint, doc)
}

// PutActor stores the given actor and indexes its inbox, outbox, and collection IRIs.
func (s *Store) PutActor(_ context.Context, actor *vocab.ActorType) error {
	if actor.ID() == nil {
		return errors.ErrMissingID
	}

	logger.Debug("Storing actor", logfields.WithServiceName(s.serviceName), logfields.WithActorIRI(actor.ID().URL()))

	s.mutex.Lock()
	defer s.mutex.Unlock()

	actorIRI := actor.ID().URL()

	s.actors[actorIRI.String()] = actor

	mapping := &boxMapping{
		actor:       actorIRI,
		inbox:       actor.Inbox(),
		outbox:      actor.Outbox(),
		sharedInbox: actor.SharedInbox(),
	}

	s.boxMappings[actorIRI.String()] = mapping

	for _, coll := range []*url.URL{
		actor.Inbox(), actor.Outbox(), actor.Followers(), actor.Following(), actor.Liked(),
	} {
		if coll != nil {
			s.actorByColl[coll.String()] = actorIRI
		}
	}

	return nil
}

// GetActor returns the actor with the given IRI. Returns ErrNotFound if it isn't in the store.
func (s *Store) GetActor(_ context.Context, actorIRI *url.URL) (*vocab.ActorType, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	actor, ok := s.actors[actorIRI.String()]
	if !ok {
		return nil, spi.ErrNotFound
	}

	return actor, nil
}

// ActorForCollection returns the IRI of the actor that owns the given collection.
func (s *Store) ActorForCollection(_ context.Context, collIRI *url.URL) (*url.URL, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	actorIRI, ok := s.actorByColl[collIRI.String()]
	if !ok {
		return nil, spi.ErrNotFound
	}

	return actorIRI, nil
}

// ActorForInbox returns the IRI of the actor that owns the given inbox.
func (s *Store) ActorForInbox(_ context.Context, inboxIRI *url.URL) (*url.URL, error) {
	mapping, err := s.mappingForBox(inboxIRI, func(m *boxMapping) *url.URL { return m.inbox })
	if err != nil {
		return nil, err
	}

	return mapping.actor, nil
}

// ActorForOutbox returns the IRI of the actor that owns the given outbox.
func (s *Store) ActorForOutbox(_ context.Context, outboxIRI *url.URL) (*url.URL, error) {
	mapping, err := s.mappingForBox(outboxIRI, func(m *boxMapping) *url.URL { return m.outbox })
	if err != nil {
		return nil, err
	}

	return mapping.actor, nil
}

// OutboxForInbox returns the IRI of the outbox that belongs to the same actor as the given inbox.
func (s *Store) OutboxForInbox(_ context.Context, inboxIRI *url.URL) (*url.URL, error) {
	mapping, err := s.mappingForBox(inboxIRI, func(m *boxMapping) *url.URL { return m.inbox })
	if err != nil {
		return nil, err
	}

	if mapping.outbox == nil {
		return nil, spi.ErrNotFound
	}

	return mapping.outbox, nil
}

// InboxForActor returns the inbox IRI of the given actor, along with the actor's
// shared inbox IRI (which may be nil). Returns ErrNotFound if the actor is unknown.
func (s *Store) InboxForActor(_ context.Context, actorIRI *url.URL) (*url.URL, *url.URL, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	mapping, ok := s.boxMappings[actorIRI.String()]
	if !ok || mapping.inbox == nil {
		return nil, nil, spi.ErrNotFound
	}

	return mapping.inbox, mapping.sharedInbox, nil
}

// UpdateCollection adds and removes the given references. The collection is created
// if it doesn't exist.
func (s *Store) UpdateCollection(_ context.Context, collIRI *url.URL, add, remove []*url.URL) error {
	logger.Debug("Updating collection", logfields.WithServiceName(s.serviceName),
		logfields.WithCollectionIRI(collIRI), logfields.WithAdditions(add...), logfields.WithDeletions(remove...))

	s.mutex.Lock()
	coll, ok := s.collections[collIRI.String()]
	if !ok {
		coll = newCollection()

		s.collections[collIRI.String()] = coll
	}
	s.mutex.Unlock()

	coll.update(add, remove)

	return nil
}

// CollectionContains returns true if the given collection contains the given reference.
func (s *Store) CollectionContains(_ context.Context, collIRI, iri *url.URL) (bool, error) {
	s.mutex.RLock()
	coll, ok := s.collections[collIRI.String()]
	s.mutex.RUnlock()

	if !ok {
		return false, nil
	}

	return coll.contains(iri), nil
}

// QueryCollection returns an iterator over the references in the given collection.
func (s *Store) QueryCollection(_ context.Context, collIRI *url.URL,
	opts ...spi.QueryOpt) (spi.ReferenceIterator, error) {
	s.mutex.RLock()
	coll, ok := s.collections[collIRI.String()]
	s.mutex.RUnlock()

	if !ok {
		return NewReferenceIterator(nil, 0), nil
	}

	refs, totalItems := coll.query(opts...)

	return NewReferenceIterator(refs, totalItems), nil
}

func (s *Store) mappingForBox(boxIRI *url.URL, box func(*boxMapping) *url.URL) (*boxMapping, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, mapping := range s.boxMappings {
		if b := box(mapping); b != nil && b.String() == boxIRI.String() {
			return mapping, nil
		}
	}

	return nil, spi.ErrNotFound
}

type collection struct {
	refs    []*url.URL
	members map[string]struct{}
	mutex   sync.RWMutex
}

func newCollection() *collection {
	return &collection{
		members: make(map[string]struct{}),
	}
}

func (c *collection) update(add, remove []*url.URL) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, iri := range add {
		if _, ok := c.members[iri.String()]; ok {
			continue
		}

		c.refs = append(c.refs, iri)
		c.members[iri.String()] = struct{}{}
	}

	for _, iri := range remove {
		if _, ok := c.members[iri.String()]; !ok {
			continue
		}

		delete(c.members, iri.String())

		for i, ref := range c.refs {
			if ref.String() == iri.String() {
				c.refs = append(c.refs[0:i], c.refs[i+1:]...)

				break
			}
		}
	}
}

func (c *collection) contains(iri *url.URL) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	_, ok := c.members[iri.String()]

	return ok
}

func (c *collection) query(opts ...spi.QueryOpt) ([]*url.URL, int) {
	c.mutex.RLock()

	results := make([]*url.URL, len(c.refs))
	copy(results, c.refs)

	c.mutex.RUnlock()

	options := storeutil.GetQueryOptions(opts...)

	if options.SortOrder == spi.SortDescending {
		reverseSort(results)
	}

	startIdx := getStartIndex(len(results), options)
	if startIdx == -1 {
		return nil, len(results)
	}

	return results[startIdx:], len(results)
}

func marshalDoc(doc vocab.Document) (*url.URL, []byte, error) {
	id, err := storeutil.DocumentID(doc)
	if err != nil {
		return nil, nil, err
	}

	docBytes, err := vocab.Marshal(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal document: %w", err)
	}

	return id, docBytes, nil
}

func getFirstPageNum(totalItems, pageSize int) int {
	if totalItems%pageSize > 0 {
		return totalItems / pageSize
	}

	return totalItems/pageSize - 1
}

func getStartIndex(totalItems int, options *spi.QueryOptions) int {
	if options.PageSize <= 0 {
		return 0
	}

	startIdx := startIndex(totalItems, options)
	if startIdx < 0 || startIdx >= totalItems {
		return -1
	}

	return startIdx
}

func startIndex(totalItems int, options *spi.QueryOptions) int {
	if options.PageNumber < 0 {
		return 0
	}

	if options.SortOrder == spi.SortAscending {
		return options.PageNumber * options.PageSize
	}

	return (getFirstPageNum(totalItems, options.PageSize) - options.PageNumber) * options.PageSize
}

func reverseSort(results []*url.URL) {
	sort.SliceStable(results, func(i, j int) bool { return i > j }) //nolint:gocritic
}
