/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ariesstore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	ariesstorage "github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	fedierrors "github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/store"
	"github.com/fedikit/fedikit/pkg/store/spi"
	"github.com/fedikit/fedikit/pkg/store/storeutil"
	"github.com/fedikit/fedikit/pkg/vocab"
)

const (
	documentStoreName  = "document"
	referenceStoreName = "reference"
	actorStoreName     = "actor"
	mappingStoreName   = "box-mapping"

	// The tag names double as the field names of the stored reference document,
	// so that the same query expression works against MongoDB field indexes and
	// against generic tag-based providers.
	collectionTagName = "collection"
	timeAddedTagName  = "timeAdded"
)

var logger = log.New("activitypub_store")

// Provider implements an ActivityPub store backed by an Aries storage provider.
// Collection queries require a storage provider that supports sorting by tag
// (such as MongoDB).
type Provider struct {
	serviceName     string
	serviceEndpoint *url.URL
	documentStore   ariesstorage.Store
	referenceStore  ariesstorage.Store
	actorStore      ariesstorage.Store
	mappingStore    ariesstorage.Store
}

// New returns a new ActivityPub storage provider. The service endpoint determines
// which IRIs are owned by this server and is the base under which new IRIs are minted.
func New(serviceName string, serviceEndpoint *url.URL, provider ariesstorage.Provider) (*Provider, error) {
	stores, err := openStores(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to open stores: %w", err)
	}

	return &Provider{
		serviceName:     serviceName,
		serviceEndpoint: serviceEndpoint,
		documentStore:   stores.document,
		referenceStore:  stores.reference,
		actorStore:      stores.actor,
		mappingStore:    stores.mapping,
	}, nil
}

// Create stores the given document, keyed by its 'id' property.
func (s *Provider) Create(_ context.Context, doc vocab.Document) error {
	id, docBytes, err := marshalDoc(doc)
	if err != nil {
		return err
	}

	logger.Debug("Storing document", logfields.WithServiceName(s.serviceName), logfields.WithObjectIRI(id))

	err = s.documentStore.Put(id.String(), docBytes)
	if err != nil {
		return fedierrors.NewTransient(fmt.Errorf("failed to store document: %w", err))
	}

	return nil
}

// Update replaces the document stored under the given document's 'id' property.
func (s *Provider) Update(ctx context.Context, doc vocab.Document) error {
	id, docBytes, err := marshalDoc(doc)
	if err != nil {
		return err
	}

	logger.Debug("Updating document", logfields.WithServiceName(s.serviceName), logfields.WithObjectIRI(id))

	exists, err := s.Exists(ctx, id)
	if err != nil {
		return err
	}

	if !exists {
		return spi.ErrNotFound
	}

	err = s.documentStore.Put(id.String(), docBytes)
	if err != nil {
		return fedierrors.NewTransient(fmt.Errorf("failed to update document: %w", err))
	}

	return nil
}

// Delete removes the document with the given IRI.
func (s *Provider) Delete(ctx context.Context, id *url.URL) error {
	logger.Debug("Deleting document", logfields.WithServiceName(s.serviceName), logfields.WithObjectIRI(id))

	exists, err := s.Exists(ctx, id)
	if err != nil {
		return err
	}

	if !exists {
		return spi.ErrNotFound
	}

	err = s.documentStore.Delete(id.String())
	if err != nil {
		return fedierrors.NewTransient(fmt.Errorf("failed to delete document: %w", err))
	}

	return nil
}

// Get returns the document with the given IRI. Returns ErrNotFound if it isn't in the store.
func (s *Provider) Get(_ context.Context, id *url.URL) (vocab.Document, error) {
	docBytes, err := s.documentStore.Get(id.String())
	if err != nil {
		if errors.Is(err, ariesstorage.ErrDataNotFound) {
			return nil, spi.ErrNotFound
		}

		return nil,
			fedierrors.NewTransient(fmt.Errorf("unexpected failure while getting document from store: %w", err))
	}

	return vocab.UnmarshalToDoc(docBytes)
}

// GetActivity returns the activity with the given IRI. Returns ErrNotFound
// if it isn't in the store.
func (s *Provider) GetActivity(_ context.Context, id *url.URL) (*vocab.ActivityType, error) {
	activityBytes, err := s.documentStore.Get(id.String())
	if err != nil {
		if errors.Is(err, ariesstorage.ErrDataNotFound) {
			return nil, spi.ErrNotFound
		}

		return nil,
			fedierrors.NewTransient(fmt.Errorf("unexpected failure while getting activity from store: %w", err))
	}

	activity := &vocab.ActivityType{}

	err = activity.UnmarshalJSON(activityBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal activity bytes: %w", err)
	}

	return activity, nil
}

// Exists returns true if a document with the given IRI is in the store.
func (s *Provider) Exists(_ context.Context, id *url.URL) (bool, error) {
	_, err := s.documentStore.Get(id.String())
	if err != nil {
		if errors.Is(err, ariesstorage.ErrDataNotFound) {
			return false, nil
		}

		return false,
			fedierrors.NewTransient(fmt.Errorf("unexpected failure while getting document from store: %w", err))
	}

	return true, nil
}

// Owns returns true if the given IRI is managed by this server.
func (s *Provider) Owns(_ context.Context, id *url.URL) (bool, error) {
	if id == nil {
		return false, nil
	}

	return id.Host == s.serviceEndpoint.Host, nil
}

// NewID mints a new, unique IRI under this server's endpoint for the given document.
func (s *Provider) NewID(_ context.Context, doc vocab.Document) (*url.URL, error) {
	return storeutil.MintID(s.serviceEndpoint, doc)
}

// PutActor stores the given actor and indexes its inbox, outbox, and collection IRIs.
func (s *Provider) PutActor(_ context.Context, actor *vocab.ActorType) error {
	if actor.ID() == nil {
		return fedierrors.ErrMissingID
	}

	logger.Debug("Storing actor", logfields.WithServiceName(s.serviceName),
		logfields.WithActorIRI(actor.ID().URL()))

	actorBytes, err := json.Marshal(actor)
	if err != nil {
		return fmt.Errorf("failed to marshal actor: %w", err)
	}

	err = s.actorStore.Put(actor.ID().String(), actorBytes)
	if err != nil {
		return fedierrors.NewTransient(fmt.Errorf("failed to store actor: %w", err))
	}

	return s.putMappings(actor)
}

// GetActor returns the actor with the given IRI. Returns ErrNotFound if it isn't in the store.
func (s *Provider) GetActor(_ context.Context, actorIRI *url.URL) (*vocab.ActorType, error) {
	actorBytes, err := s.actorStore.Get(actorIRI.String())
	if err != nil {
		if errors.Is(err, ariesstorage.ErrDataNotFound) {
			return nil, spi.ErrNotFound
		}

		return nil,
			fedierrors.NewTransient(fmt.Errorf("unexpected failure while getting actor from store: %w", err))
	}

	var actor vocab.ActorType

	err = json.Unmarshal(actorBytes, &actor)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal actor bytes: %w", err)
	}

	return &actor, nil
}

// ActorForCollection returns the IRI of the actor that owns the given collection.
func (s *Provider) ActorForCollection(_ context.Context, collIRI *url.URL) (*url.URL, error) {
	mapping, err := s.getMapping(collIRI)
	if err != nil {
		return nil, err
	}

	return url.Parse(mapping.Actor)
}

// ActorForInbox returns the IRI of the actor that owns the given inbox.
func (s *Provider) ActorForInbox(_ context.Context, inboxIRI *url.URL) (*url.URL, error) {
	mapping, err := s.getMapping(inboxIRI)
	if err != nil {
		return nil, err
	}

	if mapping.Inbox != inboxIRI.String() {
		return nil, spi.ErrNotFound
	}

	return url.Parse(mapping.Actor)
}

// ActorForOutbox returns the IRI of the actor that owns the given outbox.
func (s *Provider) ActorForOutbox(_ context.Context, outboxIRI *url.URL) (*url.URL, error) {
	mapping, err := s.getMapping(outboxIRI)
	if err != nil {
		return nil, err
	}

	if mapping.Outbox != outboxIRI.String() {
		return nil, spi.ErrNotFound
	}

	return url.Parse(mapping.Actor)
}

// OutboxForInbox returns the IRI of the outbox that belongs to the same actor as the given inbox.
func (s *Provider) OutboxForInbox(_ context.Context, inboxIRI *url.URL) (*url.URL, error) {
	mapping, err := s.getMapping(inboxIRI)
	if err != nil {
		return nil, err
	}

	if mapping.Inbox != inboxIRI.String() || mapping.Outbox == "" {
		return nil, spi.ErrNotFound
	}

	return url.Parse(mapping.Outbox)
}

// InboxForActor returns the inbox IRI of the given actor, along with the actor's
// shared inbox IRI (which may be nil). Returns ErrNotFound if the actor is unknown.
func (s *Provider) InboxForActor(_ context.Context, actorIRI *url.URL) (*url.URL, *url.URL, error) {
	mapping, err := s.getMapping(actorIRI)
	if err != nil {
		return nil, nil, err
	}

	if mapping.Actor != actorIRI.String() || mapping.Inbox == "" {
		return nil, nil, spi.ErrNotFound
	}

	inbox, err := url.Parse(mapping.Inbox)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse inbox IRI from storage: %w", err)
	}

	if mapping.SharedInbox == "" {
		return inbox, nil, nil
	}

	sharedInbox, err := url.Parse(mapping.SharedInbox)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse shared inbox IRI from storage: %w", err)
	}

	return inbox, sharedInbox, nil
}

// UpdateCollection adds and removes the given references. The collection is created
// if it doesn't exist.
func (s *Provider) UpdateCollection(_ context.Context, collIRI *url.URL, add, remove []*url.URL) error {
	logger.Debug("Updating collection", logfields.WithServiceName(s.serviceName),
		logfields.WithCollectionIRI(collIRI), logfields.WithAdditions(add...), logfields.WithDeletions(remove...))

	for _, iri := range add {
		ref := &collectionRef{
			Collection: encodeCollectionIRI(collIRI),
			IRI:        iri.String(),
			TimeAdded:  strconv.FormatInt(time.Now().UnixNano(), 10),
		}

		valueBytes, err := json.Marshal(ref)
		if err != nil {
			return fmt.Errorf("marshal reference: %w", err)
		}

		err = s.referenceStore.Put(getRefKey(collIRI, iri), valueBytes,
			ariesstorage.Tag{
				Name:  collectionTagName,
				Value: ref.Collection,
			}, ariesstorage.Tag{
				Name:  timeAddedTagName,
				Value: ref.TimeAdded,
			})
		if err != nil {
			return fedierrors.NewTransient(fmt.Errorf("failed to store reference: %w", err))
		}
	}

	for _, iri := range remove {
		err := s.referenceStore.Delete(getRefKey(collIRI, iri))
		if err != nil {
			return fedierrors.NewTransient(fmt.Errorf("failed to delete reference: %w", err))
		}
	}

	return nil
}

// CollectionContains returns true if the given collection contains the given reference.
func (s *Provider) CollectionContains(_ context.Context, collIRI, iri *url.URL) (bool, error) {
	_, err := s.referenceStore.Get(getRefKey(collIRI, iri))
	if err != nil {
		if errors.Is(err, ariesstorage.ErrDataNotFound) {
			return false, nil
		}

		return false,
			fedierrors.NewTransient(fmt.Errorf("unexpected failure while getting reference: %w", err))
	}

	return true, nil
}

// QueryCollection returns an iterator over the references in the given collection.
func (s *Provider) QueryCollection(_ context.Context, collIRI *url.URL,
	opts ...spi.QueryOpt) (spi.ReferenceIterator, error) {
	options := storeutil.GetQueryOptions(opts...)

	iterator, err := s.referenceStore.Query(
		fmt.Sprintf("%s:%s", collectionTagName, encodeCollectionIRI(collIRI)),
		ariesstorage.WithSortOrder(&ariesstorage.SortOptions{
			Order:   ariesstorage.SortOrder(options.SortOrder),
			TagName: timeAddedTagName,
		}),
		ariesstorage.WithPageSize(options.PageSize),
		ariesstorage.WithInitialPageNum(options.PageNumber),
	)
	if err != nil {
		return nil, fedierrors.NewTransient(fmt.Errorf("failed to query store: %w", err))
	}

	return &referenceIterator{ariesIterator: iterator}, nil
}

// collectionRef is a single entry of a collection. The 'collection' and 'timeAdded'
// fields mirror the tags of the same names.
type collectionRef struct {
	Collection string `json:"collection"`
	IRI        string `json:"iri"`
	TimeAdded  string `json:"timeAdded"`
}

type boxMapping struct {
	Actor       string `json:"actor"`
	Inbox       string `json:"inbox,omitempty"`
	Outbox      string `json:"outbox,omitempty"`
	SharedInbox string `json:"sharedInbox,omitempty"`
}

// putMappings indexes the actor's boxes and collections so that they may be
// resolved back to the actor. The mapping is stored under the actor IRI and
// under each box/collection IRI.
func (s *Provider) putMappings(actor *vocab.ActorType) error {
	mapping := &boxMapping{
		Actor:       actor.ID().String(),
		Inbox:       urlString(actor.Inbox()),
		Outbox:      urlString(actor.Outbox()),
		SharedInbox: urlString(actor.SharedInbox()),
	}

	mappingBytes, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal box mapping: %w", err)
	}

	keys := []*url.URL{
		actor.ID().URL(), actor.Inbox(), actor.Outbox(),
		actor.Followers(), actor.Following(), actor.Liked(),
	}

	for _, key := range keys {
		if key == nil {
			continue
		}

		err = s.mappingStore.Put(key.String(), mappingBytes)
		if err != nil {
			return fedierrors.NewTransient(fmt.Errorf("failed to store box mapping: %w", err))
		}
	}

	return nil
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}

	return u.String()
}

func (s *Provider) getMapping(iri *url.URL) (*boxMapping, error) {
	mappingBytes, err := s.mappingStore.Get(iri.String())
	if err != nil {
		if errors.Is(err, ariesstorage.ErrDataNotFound) {
			return nil, spi.ErrNotFound
		}

		return nil,
			fedierrors.NewTransient(fmt.Errorf("unexpected failure while getting box mapping: %w", err))
	}

	mapping := &boxMapping{}

	err = json.Unmarshal(mappingBytes, mapping)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal box mapping: %w", err)
	}

	return mapping, nil
}

type referenceIterator struct {
	ariesIterator ariesstorage.Iterator
}

func (r *referenceIterator) TotalItems() (int, error) {
	return r.ariesIterator.TotalItems()
}

func (r *referenceIterator) Next() (*url.URL, error) {
	areMoreResults, err := r.ariesIterator.Next()
	if err != nil {
		return nil, fedierrors.NewTransient(fmt.Errorf("failed to determine if there are more results: %w", err))
	}

	if areMoreResults {
		refBytes, err := r.ariesIterator.Value()
		if err != nil {
			return nil, fedierrors.NewTransient(fmt.Errorf("failed to get value: %w", err))
		}

		ref := &collectionRef{}

		err = json.Unmarshal(refBytes, ref)
		if err != nil {
			return nil, fmt.Errorf("unmarshal reference: %w", err)
		}

		retrievedURL, err := url.Parse(ref.IRI)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored value as a URL: %w", err)
		}

		return retrievedURL, nil
	}

	return nil, spi.ErrNotFound
}

func (r *referenceIterator) Close() error {
	return r.ariesIterator.Close()
}

type stores struct {
	document  ariesstorage.Store
	reference ariesstorage.Store
	actor     ariesstorage.Store
	mapping   ariesstorage.Store
}

func openStores(provider ariesstorage.Provider) (stores, error) {
	documentStore, err := store.Open(provider, documentStoreName)
	if err != nil {
		return stores{}, fmt.Errorf("failed to open document store: %w", err)
	}

	referenceStore, err := store.Open(provider, referenceStoreName,
		store.NewTagGroup(collectionTagName, timeAddedTagName))
	if err != nil {
		return stores{}, fmt.Errorf("failed to open reference store: %w", err)
	}

	actorStore, err := store.Open(provider, actorStoreName)
	if err != nil {
		return stores{}, fmt.Errorf("failed to open actor store: %w", err)
	}

	mappingStore, err := store.Open(provider, mappingStoreName)
	if err != nil {
		return stores{}, fmt.Errorf("failed to open box-mapping store: %w", err)
	}

	return stores{
		document:  documentStore,
		reference: referenceStore,
		actor:     actorStore,
		mapping:   mappingStore,
	}, nil
}

// encodeCollectionIRI encodes a collection IRI for use as a tag value, since
// tag values may not contain a ':' character.
func encodeCollectionIRI(collIRI *url.URL) string {
	return base64.RawStdEncoding.EncodeToString([]byte(collIRI.String()))
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

func getRefKey(collIRI, refIRI *url.URL) string {
	return fmt.Sprintf("%s-%s", collIRI, refIRI)
}
