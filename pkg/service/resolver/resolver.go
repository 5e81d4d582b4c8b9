/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package resolver resolves the recipients of an activity to inbox IRIs.
// Actor IRIs are looked up in the store first and dereferenced with a signed
// GET on a miss. Collection recipients are expanded up to a maximum depth.
// A shared inbox that serves two or more recipients replaces their direct
// inboxes, except for hidden (bto/bcc) recipients which are always delivered
// to directly.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/bluele/gcache"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/addressing"
	"github.com/fedikit/fedikit/pkg/service/spi"
	store "github.com/fedikit/fedikit/pkg/store/spi"
	"github.com/fedikit/fedikit/pkg/store/storeutil"
	"github.com/fedikit/fedikit/pkg/vocab"
)

var logger = log.New("activitypub_resolver")

const (
	defaultMaxConcurrentRequests = 10
	defaultCacheSize             = 100
	defaultCacheExpiration       = time.Minute
)

// Config holds the configuration parameters for the resolver.
type Config struct {
	// ServiceName is the name of the service (used for logging).
	ServiceName string

	// MaxConcurrentRequests bounds the number of concurrent resolutions.
	MaxConcurrentRequests int

	// CacheSize is the maximum size of the inbox cache.
	CacheSize int

	// CacheExpiration is the expiry time of entries in the inbox cache.
	CacheExpiration time.Duration
}

// Resolver resolves actor and collection IRIs to inbox IRIs.
type Resolver struct {
	*Config

	store      store.Store
	inboxCache gcache.Cache
}

// New returns a new inbox resolver.
func New(cnfg *Config, s store.Store) *Resolver {
	cfg := populateConfigDefaults(cnfg)

	r := &Resolver{
		Config: &cfg,
		store:  s,
	}

	r.inboxCache = gcache.New(cfg.CacheSize).ARC().Build()

	return r
}

// inboxRef is a resolved inbox for a single recipient.
type inboxRef struct {
	actor  *url.URL
	inbox  *url.URL
	shared *url.URL
	hidden bool
}

// ResolveInboxes resolves the given recipients to a deduplicated list of
// inbox IRIs, excluding the given inbox. Recipients in the hidden list were
// addressed via bto/bcc and are never folded into a shared inbox. Failed
// resolutions do not abort the overall resolution: the resolved inboxes are
// returned along with an aggregated error for the failures.
func (r *Resolver) ResolveInboxes(ctx context.Context, t spi.Transport, recipients, hidden []*url.URL,
	excludeInbox *url.URL, maxDepth int) ([]*url.URL, error) {
	hiddenSet := make(map[string]bool, len(hidden))
	for _, iri := range hidden {
		hiddenSet[iri.String()] = true
	}

	all := make([]*url.URL, 0, len(recipients)+len(hidden))
	all = append(all, recipients...)
	all = append(all, hidden...)

	refs, errs := r.resolveAll(ctx, t, all, hiddenSet, maxDepth)

	return foldInboxes(refs, excludeInbox), errs
}

// resolveAll resolves each recipient in parallel, bounded by
// MaxConcurrentRequests. The order of the results follows the order of the
// recipients.
func (r *Resolver) resolveAll(ctx context.Context, t spi.Transport, recipients []*url.URL,
	hidden map[string]bool, maxDepth int) ([]*inboxRef, error) {
	var wg sync.WaitGroup

	sem := make(chan struct{}, r.MaxConcurrentRequests)

	results := make([][]*inboxRef, len(recipients))
	errs := make([]error, len(recipients))

	for i, iri := range recipients {
		wg.Add(1)

		sem <- struct{}{}

		go func(i int, iri *url.URL) {
			defer wg.Done()
			defer func() { <-sem }()

			refs, err := r.resolve(ctx, t, iri, hidden[iri.String()], maxDepth)
			if err != nil {
				errs[i] = fmt.Errorf("resolve inbox for %s: %w", iri, err)

				return
			}

			results[i] = refs
		}(i, iri)
	}

	wg.Wait()

	var refs []*inboxRef

	for _, rr := range results {
		refs = append(refs, rr...)
	}

	return refs, joinErrors(errs)
}

// resolve resolves a single recipient IRI, which may be an actor or a
// collection of actors.
func (r *Resolver) resolve(ctx context.Context, t spi.Transport, iri *url.URL,
	hidden bool, maxDepth int) ([]*inboxRef, error) {
	if addressing.IsPublic(iri) {
		return nil, nil
	}

	inbox, shared, err := r.store.InboxForActor(ctx, iri)
	if err == nil {
		return []*inboxRef{{actor: iri, inbox: inbox, shared: shared, hidden: hidden}}, nil
	}

	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("get inbox for actor [%s]: %w", iri, err)
	}

	// An owned IRI that is not a known actor may be one of our collections
	// (e.g. the actor's followers). It is expanded from the store rather
	// than through an HTTP request to ourselves.
	owns, err := r.store.Owns(ctx, iri)
	if err != nil {
		return nil, fmt.Errorf("check ownership of [%s]: %w", iri, err)
	}

	if owns {
		return r.resolveLocalCollection(ctx, t, iri, hidden, maxDepth)
	}

	return r.dereference(ctx, t, iri, hidden, maxDepth)
}

func (r *Resolver) resolveLocalCollection(ctx context.Context, t spi.Transport, collIRI *url.URL,
	hidden bool, maxDepth int) ([]*inboxRef, error) {
	if maxDepth <= 0 {
		logger.Debug("Maximum recursion depth reached. Not expanding collection.",
			logfields.WithCollectionIRI(collIRI))

		return nil, nil
	}

	it, err := r.store.QueryCollection(ctx, collIRI)
	if err != nil {
		return nil, fmt.Errorf("query collection [%s]: %w", collIRI, err)
	}

	refs, err := storeutil.ReadReferences(it, -1)
	if err != nil {
		return nil, fmt.Errorf("read references of collection [%s]: %w", collIRI, err)
	}

	return r.resolveContained(ctx, t, refs, hidden, maxDepth-1)
}

// dereference performs a signed GET of the given IRI. A document with an
// inbox is an actor; a document with items or orderedItems is a collection
// whose contained IRIs are resolved another level down.
func (r *Resolver) dereference(ctx context.Context, t spi.Transport, iri *url.URL,
	hidden bool, maxDepth int) ([]*inboxRef, error) {
	if ref, ok := r.fromCache(iri); ok {
		ref.hidden = hidden

		return []*inboxRef{ref}, nil
	}

	payload, err := t.Dereference(ctx, iri)
	if err != nil {
		return nil, fmt.Errorf("dereference [%s]: %w", iri, err)
	}

	doc, err := vocab.UnmarshalToDoc(payload)
	if err != nil {
		return nil, fmt.Errorf("unmarshal document from [%s]: %w", iri, err)
	}

	if _, ok := doc["inbox"]; ok {
		actor := &vocab.ActorType{}

		if err := vocab.UnmarshalFromDoc(doc, actor); err != nil {
			return nil, fmt.Errorf("unmarshal actor from [%s]: %w", iri, err)
		}

		if actor.Inbox() == nil {
			return nil, fmt.Errorf("actor [%s] has no inbox", iri)
		}

		ref := &inboxRef{actor: iri, inbox: actor.Inbox(), shared: actor.SharedInbox(), hidden: hidden}

		r.toCache(iri, ref)

		return []*inboxRef{ref}, nil
	}

	if _, ok := doc["items"]; !ok {
		if _, ok := doc["orderedItems"]; !ok {
			return nil, fmt.Errorf("document at [%s] is neither an actor nor a collection", iri)
		}
	}

	if maxDepth <= 0 {
		logger.Debug("Maximum recursion depth reached. Not expanding collection.",
			logfields.WithCollectionIRI(iri))

		return nil, nil
	}

	contained, err := containedIRIs(doc)
	if err != nil {
		return nil, fmt.Errorf("contained IRIs of collection [%s]: %w", iri, err)
	}

	return r.resolveContained(ctx, t, contained, hidden, maxDepth-1)
}

func (r *Resolver) resolveContained(ctx context.Context, t spi.Transport, iris []*url.URL,
	hidden bool, maxDepth int) ([]*inboxRef, error) {
	var (
		refs []*inboxRef
		errs []error
	)

	for _, iri := range iris {
		rr, err := r.resolve(ctx, t, iri, hidden, maxDepth)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		refs = append(refs, rr...)
	}

	return refs, joinErrors(errs)
}

func (r *Resolver) fromCache(iri *url.URL) (*inboxRef, bool) {
	v, err := r.inboxCache.Get(iri.String())
	if err != nil {
		return nil, false
	}

	cached, ok := v.(*inboxRef)
	if !ok {
		return nil, false
	}

	// Copy so that the caller may set the hidden flag.
	ref := *cached

	return &ref, true
}

func (r *Resolver) toCache(iri *url.URL, ref *inboxRef) {
	if err := r.inboxCache.SetWithExpire(iri.String(), ref, r.CacheExpiration); err != nil {
		logger.Warn("Error caching inbox reference.", logfields.WithActorIRI(iri), logfields.WithError(err))
	}
}

// foldInboxes applies shared-inbox folding, drops the excluded inbox and
// deduplicates, preserving first-occurrence order. A shared inbox replaces
// the direct inboxes of the recipients it serves only when it serves at
// least two of them, and never for hidden recipients.
func foldInboxes(refs []*inboxRef, excludeInbox *url.URL) []*url.URL {
	sharedCount := make(map[string]int)

	for _, ref := range refs {
		if ref.shared != nil && !ref.hidden {
			sharedCount[ref.shared.String()]++
		}
	}

	var (
		inboxes []*url.URL
		seen    = make(map[string]bool)
	)

	for _, ref := range refs {
		inbox := ref.inbox

		if ref.shared != nil && !ref.hidden && sharedCount[ref.shared.String()] >= 2 {
			inbox = ref.shared
		}

		if inbox == nil || addressing.IsPublic(inbox) {
			continue
		}

		if excludeInbox != nil && inbox.String() == excludeInbox.String() {
			continue
		}

		if seen[inbox.String()] {
			continue
		}

		seen[inbox.String()] = true

		inboxes = append(inboxes, inbox)
	}

	return inboxes
}

// containedIRIs extracts the IRIs in the items or orderedItems of a raw
// collection document.
func containedIRIs(doc vocab.Document) ([]*url.URL, error) {
	items, ok := doc["items"]
	if !ok {
		items = doc["orderedItems"]
	}

	rawItems, ok := items.([]interface{})
	if !ok {
		if s, isString := items.(string); isString {
			iri, err := url.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("parse IRI [%s]: %w", s, err)
			}

			return []*url.URL{iri}, nil
		}

		return nil, nil
	}

	var iris []*url.URL

	for _, item := range rawItems {
		s, isString := item.(string)
		if !isString {
			// An embedded object. Take its id if it has one.
			if m, isMap := item.(map[string]interface{}); isMap {
				if id, hasID := m["id"].(string); hasID {
					s = id
				}
			}
		}

		if s == "" {
			continue
		}

		iri, err := url.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parse IRI [%s]: %w", s, err)
		}

		iris = append(iris, iri)
	}

	return iris, nil
}

func joinErrors(errs []error) error {
	var nonNil []error

	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err)
		}
	}

	if len(nonNil) == 0 {
		return nil
	}

	return errors.Join(nonNil...)
}

func populateConfigDefaults(cnfg *Config) Config {
	cfg := *cnfg

	if cfg.MaxConcurrentRequests <= 0 {
		cfg.MaxConcurrentRequests = defaultMaxConcurrentRequests
	}

	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}

	if cfg.CacheExpiration <= 0 {
		cfg.CacheExpiration = defaultCacheExpiration
	}

	return cfg
}
