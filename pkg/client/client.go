/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bluele/gcache"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/client/transport"
	fedierrors "github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/vocab"
)

var logger = log.New("activitypub_client")

const (
	defaultCacheSize       = 100
	defaultCacheExpiration = time.Minute
)

// ErrNotFound is returned when the object is not found or the iterator has reached the end.
var ErrNotFound = fmt.Errorf("not found")

// Order is the order in which activities are returned.
type Order string

const (
	// Forward indicates that activities should be returned in the same order that they were retrieved
	// from the REST endpoint.
	Forward Order = "forward"
	// Reverse indicates that activities should be returned in reverse order that they were retrieved
	// from the REST endpoint.
	Reverse Order = "reverse"
)

// ReferenceIterator iterates over the references in a result set.
type ReferenceIterator interface {
	Next() (*url.URL, error)
	TotalItems() int
}

// ActivityIterator iterates over the activities in a result set.
type ActivityIterator interface {
	// Next returns the next activity or the ErrNotFound error if no more items are available.
	Next() (*vocab.ActivityType, error)
	// NextPage advances to the next page. If there are no more pages then an ErrNotFound error is returned.
	NextPage() (*url.URL, error)
	// SetNextIndex sets the index of the next activity within the current page that Next will return.
	SetNextIndex(int)
	// TotalItems returns the total number of items available at the moment the iterator was created.
	// This value remains constant throughout the lifetime of the iterator.
	TotalItems() int
	// CurrentPage returns the ID of the current page that the iterator is processing.
	CurrentPage() *url.URL
	// NextIndex returns the next index of the current page that will be processed. This function does not
	// advance the iterator.
	NextIndex() int
}

type httpTransport interface {
	Get(ctx context.Context, req *transport.Request) (*http.Response, error)
}

// Config contains configuration parameters for the client.
type Config struct {
	CacheSize       int
	CacheExpiration time.Duration
}

// Client implements an ActivityPub client which retrieves ActivityPub objects (such as actors, activities,
// and collections) from remote sources.
type Client struct {
	httpTransport

	actorCache     gcache.Cache
	publicKeyCache gcache.Cache
}

// New returns a new ActivityPub client.
func New(cfg Config, t httpTransport) *Client {
	cacheSize := cfg.CacheSize
	if cacheSize == 0 {
		cacheSize = defaultCacheSize
	}

	cacheExpiration := cfg.CacheExpiration
	if cacheExpiration == 0 {
		cacheExpiration = defaultCacheExpiration
	}

	logger.Debug("Creating actor cache.", logfields.WithSize(cacheSize),
		logfields.WithCacheExpiration(cacheExpiration))

	c := &Client{httpTransport: t}

	c.actorCache = newLoadingCache(cacheSize, cacheExpiration,
		func(iri *url.URL) (interface{}, error) {
			return c.fetchActor(iri)
		})

	c.publicKeyCache = newLoadingCache(cacheSize, cacheExpiration,
		func(iri *url.URL) (interface{}, error) {
			return c.fetchPublicKey(iri)
		})

	return c
}

func newLoadingCache(size int, expiration time.Duration,
	load func(*url.URL) (interface{}, error)) gcache.Cache {
	return gcache.New(size).ARC().
		Expiration(expiration).
		LoaderFunc(func(key interface{}) (interface{}, error) {
			return load(key.(*url.URL))
		}).Build()
}

// GetActor retrieves the actor at the given IRI.
//nolint:interfacer
func (c *Client) GetActor(actorIRI *url.URL) (*vocab.ActorType, error) {
	result, err := c.actorCache.Get(actorIRI)
	if err != nil {
		logger.Debug("Error retrieving actor from cache.", logfields.WithActorIRI(actorIRI),
			logfields.WithError(err))

		return nil, err
	}

	return result.(*vocab.ActorType), nil
}

func (c *Client) fetchActor(actorIRI *url.URL) (*vocab.ActorType, error) {
	actor := &vocab.ActorType{}

	if err := c.fetchAndUnmarshal(actorIRI, actor); err != nil {
		return nil, fmt.Errorf("invalid actor in response from %s: %w", actorIRI, err)
	}

	return actor, nil
}

// GetPublicKey retrieves the public key at the given IRI.
//nolint:interfacer
func (c *Client) GetPublicKey(keyIRI *url.URL) (*vocab.PublicKeyType, error) {
	result, err := c.publicKeyCache.Get(keyIRI)
	if err != nil {
		logger.Debug("Error retrieving public key from cache.", logfields.WithKeyIRI(keyIRI),
			logfields.WithError(err))

		return nil, err
	}

	return result.(*vocab.PublicKeyType), nil
}

func (c *Client) fetchPublicKey(keyIRI *url.URL) (*vocab.PublicKeyType, error) {
	pubKey := &vocab.PublicKeyType{}

	if err := c.fetchAndUnmarshal(keyIRI, pubKey); err != nil {
		return nil, fmt.Errorf("invalid public key in response from %s: %w", keyIRI, err)
	}

	return pubKey, nil
}

func (c *Client) fetchAndUnmarshal(iri *url.URL, obj interface{}) error {
	respBytes, err := c.fetch(iri)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	logger.Debug("Got response.", logfields.WithRequestURL(iri), logfields.WithResponse(respBytes))

	return json.Unmarshal(respBytes, obj)
}

// GetReferences returns an iterator that reads all references at the given IRI. The IRI either resolves
// to an ActivityPub actor, collection or ordered collection.
func (c *Client) GetReferences(iri *url.URL) (ReferenceIterator, error) {
	respBytes, err := c.fetch(iri)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", iri, err)
	}

	logger.Debug("Got response.", logfields.WithRequestURL(iri), logfields.WithResponse(respBytes))

	info, err := parseCollection(respBytes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal response from %s: %w", iri, err)
	}

	items := make([]*url.URL, len(info.items))

	for i, prop := range info.items {
		items[i] = prop.IRI()
	}

	return &referenceIterator{
		currentItems: items,
		totalItems:   info.totalItems,
		nextPage:     info.first,
		fetch:        c.fetch,
	}, nil
}

// GetActivities returns an iterator that reads activities at the given IRI. The IRI may reference a
// Collection, OrderedCollection, CollectionPage, or OrderedCollectionPage.
func (c *Client) GetActivities(iri *url.URL, order Order) (ActivityIterator, error) {
	if order != Forward && order != Reverse {
		return nil, fmt.Errorf("invalid order [%s]", order)
	}

	respBytes, err := c.fetch(iri)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", iri, err)
	}

	logger.Debug("Got response.", logfields.WithRequestURL(iri), logfields.WithResponse(respBytes))

	obj := &vocab.ObjectType{}

	if err := json.Unmarshal(respBytes, &obj); err != nil {
		return nil, err
	}

	switch {
	case obj.Type().IsAny(vocab.TypeCollection, vocab.TypeOrderedCollection):
		return c.activityIteratorFromCollection(respBytes, order)
	case obj.Type().IsAny(vocab.TypeCollectionPage, vocab.TypeOrderedCollectionPage):
		return c.activityIteratorFromCollectionPage(respBytes, order)
	default:
		return nil, fmt.Errorf("invalid collection type %s", obj.Type())
	}
}

func (c *Client) activityIteratorFromCollection(collBytes []byte, order Order) (ActivityIterator, error) {
	info, err := parseCollection(collBytes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal collection: %w", err)
	}

	// A forward iterator starts at the first page, a reverse iterator at the last.
	startPage := info.first
	if order == Reverse {
		startPage = info.last
	}

	logger.Debug("Creating activity iterator.", logfields.WithNextIRI(startPage),
		logfields.WithTotal(info.totalItems))

	return &activityIterator{
		order:      order,
		nextPage:   startPage,
		totalItems: info.totalItems,
		fetch:      c.fetch,
	}, nil
}

func (c *Client) activityIteratorFromCollectionPage(collBytes []byte, order Order) (ActivityIterator, error) {
	page, err := parseCollectionPage(collBytes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal collection page: %w", err)
	}

	activities := make([]*vocab.ActivityType, len(page.items))

	for i, prop := range page.items {
		activities[i] = prop.Activity()
	}

	nextPage := page.next

	if order == Reverse {
		reverse(activities)

		nextPage = page.prev
	}

	logger.Debug("Creating activity iterator.", logfields.WithCurrentIRI(page.current),
		logfields.WithSize(len(activities)), logfields.WithTotal(page.totalItems))

	return &activityIterator{
		order:        order,
		currentItems: activities,
		currentPage:  page.current,
		nextPage:     nextPage,
		totalItems:   page.totalItems,
		fetch:        c.fetch,
	}, nil
}

func (c *Client) fetch(iri *url.URL) ([]byte, error) {
	resp, err := c.Get(context.Background(), transport.NewRequest(iri,
		transport.WithHeader(transport.AcceptHeader, transport.ActivityStreamsContentType)))
	if err != nil {
		return nil, fedierrors.NewTransientf("transient http error: request to %s failed: %w",
			iri, err)
	}

	defer func() {
		if e := resp.Body.Close(); e != nil {
			logfields.CloseResponseBodyError(logger, e)
		}
	}()

	logger.Debug("Got response.", logfields.WithRequestURL(iri), logfields.WithHTTPStatus(resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fedierrors.NewTransientf("transient http error: status code %d from %s",
				resp.StatusCode, iri)
		}

		return nil, fmt.Errorf("request to %s returned status code %d", iri, resp.StatusCode)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fedierrors.NewTransientf("transient http error: read response body from %s: %w",
			iri, err)
	}

	return respBytes, nil
}

type fetchFunc func(iri *url.URL) ([]byte, error)

type referenceIterator struct {
	totalItems   int
	currentItems []*url.URL
	currentIndex int
	nextPage     *url.URL
	fetch        fetchFunc
}

func (it *referenceIterator) Next() (*url.URL, error) {
	if it.currentIndex >= len(it.currentItems) {
		if err := it.loadNextPage(); err != nil {
			return nil, err
		}
	}

	item := it.currentItems[it.currentIndex]

	it.currentIndex++

	return item, nil
}

func (it *referenceIterator) TotalItems() int {
	return it.totalItems
}

func (it *referenceIterator) loadNextPage() error {
	if it.nextPage == nil {
		logger.Debug("No more pages")

		return ErrNotFound
	}

	logger.Debug("Retrieving next page.", logfields.WithNextIRI(it.nextPage))

	respBytes, err := it.fetch(it.nextPage)
	if err != nil {
		return fmt.Errorf("get references from %s: %w", it.nextPage, err)
	}

	logger.Debug("Got response.", logfields.WithRequestURL(it.nextPage), logfields.WithResponse(respBytes))

	page, err := parseCollectionPage(respBytes)
	if err != nil {
		return err
	}

	var refs []*url.URL

	for _, item := range page.items {
		if item.IRI() == nil {
			logger.Warn("Expecting IRI item in collection page.", logfields.WithType(item.Type().String()))

			continue
		}

		logger.Debug("Adding reference to result set.", logfields.WithReferenceIRI(item.IRI()))

		refs = append(refs, item.IRI())
	}

	it.currentItems = refs
	it.currentIndex = 0
	it.nextPage = page.next

	if len(it.currentItems) == 0 {
		return ErrNotFound
	}

	return nil
}

// activityIterator iterates over the activities in a paged collection, either
// from the first page forward or from the last page backward. In reverse order,
// the activities within each page are also returned in reverse.
type activityIterator struct {
	order        Order
	currentItems []*vocab.ActivityType
	currentPage  *url.URL
	nextPage     *url.URL
	totalItems   int
	currentIndex int
	numProcessed int
	fetch        fetchFunc
}

func (it *activityIterator) CurrentPage() *url.URL {
	return it.currentPage
}

func (it *activityIterator) SetNextIndex(index int) {
	it.numProcessed += index - it.currentIndex
	it.currentIndex = index
}

func (it *activityIterator) NextIndex() int {
	return it.currentIndex
}

func (it *activityIterator) NextPage() (*url.URL, error) {
	unprocessedCount := len(it.currentItems) - it.currentIndex

	if err := it.loadNextPage(); err != nil {
		if errors.Is(err, ErrNotFound) {
			it.numProcessed += unprocessedCount
		}

		return nil, err
	}

	it.numProcessed += unprocessedCount

	return it.CurrentPage(), nil
}

func (it *activityIterator) Next() (*vocab.ActivityType, error) {
	if it.numProcessed >= it.totalItems {
		// All items were already processed. There may actually be additional items if we retrieve
		// another page (since items keep being added in a running system) but we want to process
		// only the items that were available when the iterator was created.
		return nil, ErrNotFound
	}

	if it.currentIndex >= len(it.currentItems) {
		if err := it.loadNextPage(); err != nil {
			return nil, err
		}
	}

	item := it.currentItems[it.currentIndex]

	it.currentIndex++
	it.numProcessed++

	return item, nil
}

func (it *activityIterator) TotalItems() int {
	return it.totalItems
}

func (it *activityIterator) loadNextPage() error {
	if it.nextPage == nil {
		logger.Debug("No more pages")

		return ErrNotFound
	}

	logger.Debug("Retrieving next page.", logfields.WithNextIRI(it.nextPage))

	respBytes, err := it.fetch(it.nextPage)
	if err != nil {
		return fmt.Errorf("get activities from %s: %w", it.nextPage, err)
	}

	logger.Debug("Got response.", logfields.WithRequestURL(it.nextPage), logfields.WithResponse(respBytes))

	page, err := parseCollectionPage(respBytes)
	if err != nil {
		return err
	}

	var activities []*vocab.ActivityType

	for _, item := range page.items {
		if item.Activity() == nil {
			logger.Warn("Expecting activity item in collection page.", logfields.WithType(item.Type().String()))

			continue
		}

		logger.Debug("Adding activity to result set.",
			logfields.WithActivityID(item.Activity().ID()),
			logfields.WithType(item.Activity().Type().String()))

		activities = append(activities, item.Activity())
	}

	nextPage := page.next

	if it.order == Reverse {
		reverse(activities)

		nextPage = page.prev
	}

	it.currentIndex = 0
	it.currentItems = activities
	it.currentPage = page.current
	it.nextPage = nextPage

	if len(it.currentItems) == 0 {
		return ErrNotFound
	}

	return nil
}

// collectionInfo holds the attributes of a Collection or OrderedCollection.
type collectionInfo struct {
	items       []*vocab.ObjectProperty
	first, last *url.URL
	totalItems  int
}

func parseCollection(respBytes []byte) (*collectionInfo, error) {
	obj := &vocab.ObjectType{}

	if err := json.Unmarshal(respBytes, &obj); err != nil {
		return nil, err
	}

	switch {
	case obj.Type().Is(vocab.TypeService):
		actor := &vocab.ActorType{}
		if err := json.Unmarshal(respBytes, actor); err != nil {
			return nil, fmt.Errorf("invalid service in response: %w", err)
		}

		return &collectionInfo{
			items:      []*vocab.ObjectProperty{vocab.NewObjectProperty(vocab.WithIRI(actor.ID().URL()))},
			totalItems: 1,
		}, nil

	case obj.Type().Is(vocab.TypeCollection):
		coll := &vocab.CollectionType{}
		if err := json.Unmarshal(respBytes, coll); err != nil {
			return nil, fmt.Errorf("invalid collection in response: %w", err)
		}

		return &collectionInfo{first: coll.First(), last: coll.Last(), totalItems: coll.TotalItems()}, nil

	case obj.Type().Is(vocab.TypeOrderedCollection):
		coll := &vocab.OrderedCollectionType{}
		if err := json.Unmarshal(respBytes, coll); err != nil {
			return nil, fmt.Errorf("invalid ordered collection in response: %w", err)
		}

		return &collectionInfo{first: coll.First(), last: coll.Last(), totalItems: coll.TotalItems()}, nil

	default:
		return nil, fmt.Errorf("expecting Service, Collection or OrderedCollection in response payload")
	}
}

type page struct {
	items               []*vocab.ObjectProperty
	current, next, prev *url.URL
	totalItems          int
}

func parseCollectionPage(respBytes []byte) (*page, error) {
	obj := &vocab.ObjectType{}

	if err := json.Unmarshal(respBytes, &obj); err != nil {
		return nil, err
	}

	switch {
	case obj.Type().Is(vocab.TypeCollectionPage):
		coll := &vocab.CollectionType{}

		if err := json.Unmarshal(respBytes, coll); err != nil {
			return nil, fmt.Errorf("invalid collection page in response: %w", err)
		}

		return &page{
			items:      coll.Items(),
			current:    coll.ID().URL(),
			next:       coll.Next(),
			prev:       coll.Prev(),
			totalItems: coll.TotalItems(),
		}, nil

	case obj.Type().Is(vocab.TypeOrderedCollectionPage):
		coll := &vocab.OrderedCollectionType{}

		if err := json.Unmarshal(respBytes, coll); err != nil {
			return nil, fmt.Errorf("invalid ordered collection page in response: %w", err)
		}

		return &page{
			items:      coll.Items(),
			current:    coll.ID().URL(),
			next:       coll.Next(),
			prev:       coll.Prev(),
			totalItems: coll.TotalItems(),
		}, nil

	default:
		return nil, fmt.Errorf("expecting CollectionPage or OrderedCollectionPage in response payload")
	}
}

func reverse(activities []*vocab.ActivityType) {
	for i, j := 0, len(activities)-1; i < j; i, j = i+1, j-1 {
		activities[i], activities[j] = activities[j], activities[i]
	}
}
