/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resthandler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	store "github.com/fedikit/fedikit/pkg/store/spi"
	"github.com/fedikit/fedikit/pkg/store/storeutil"
	"github.com/fedikit/fedikit/pkg/vocab"
)

// collectionSource names the collection to read. The stored IRI keys the
// collection in the store and the displayed IRI is the one written to the
// 'id', 'first', 'last', 'next' and 'prev' properties of the response.
type collectionSource struct {
	stored    *url.URL
	displayed *url.URL
}

type getSourceFunc func(req *http.Request, authorized bool) (*collectionSource, error)

// Reference implements a REST handler that serves an ordered collection of
// IRI references, with paging.
type Reference struct {
	*handler

	authRequired bool
	getSource    getSourceFunc
}

// NewInbox returns a REST handler that retrieves a service's inbox. The
// request must be authorized.
func NewInbox(cfg *Config, s store.Store, verifier signatureVerifier) *Reference {
	inboxIRI := cfg.ServiceEndpointURL.JoinPath("inbox")

	return newReference(InboxPath, cfg, s, verifier, true,
		func(*http.Request, bool) (*collectionSource, error) {
			return &collectionSource{stored: inboxIRI, displayed: inboxIRI}, nil
		})
}

// NewOutbox returns a REST handler that retrieves a service's outbox. An
// unauthorized request is served the public subset of the collection.
func NewOutbox(cfg *Config, s store.Store, verifier signatureVerifier) *Reference {
	outboxIRI := cfg.ServiceEndpointURL.JoinPath("outbox")

	return newReference(OutboxPath, cfg, s, verifier, false,
		func(_ *http.Request, authorized bool) (*collectionSource, error) {
			if authorized {
				return &collectionSource{stored: outboxIRI, displayed: outboxIRI}, nil
			}

			return &collectionSource{stored: store.PublicCollectionIRI(outboxIRI), displayed: outboxIRI}, nil
		})
}

// NewFollowers returns a REST handler that retrieves a service's followers.
func NewFollowers(cfg *Config, s store.Store, verifier signatureVerifier) *Reference {
	return newActorReference(FollowersPath, "followers", cfg, s, verifier)
}

// NewFollowing returns a REST handler that retrieves the actors that a service is following.
func NewFollowing(cfg *Config, s store.Store, verifier signatureVerifier) *Reference {
	return newActorReference(FollowingPath, "following", cfg, s, verifier)
}

// NewLiked returns a REST handler that retrieves the objects that a service has liked.
func NewLiked(cfg *Config, s store.Store, verifier signatureVerifier) *Reference {
	return newActorReference(LikedPath, "liked", cfg, s, verifier)
}

// NewLikes returns a REST handler that retrieves an object's 'likes' collection.
func NewLikes(cfg *Config, s store.Store, verifier signatureVerifier) *Reference {
	return newObjectReference(LikesPath, "likes", cfg, s, verifier)
}

// NewShares returns a REST handler that retrieves an object's 'shares' collection.
func NewShares(cfg *Config, s store.Store, verifier signatureVerifier) *Reference {
	return newObjectReference(SharesPath, "shares", cfg, s, verifier)
}

func newActorReference(path, collection string, cfg *Config, s store.Store,
	verifier signatureVerifier) *Reference {
	collIRI := cfg.ObjectIRI.JoinPath(collection)

	return newReference(path, cfg, s, verifier, false,
		func(*http.Request, bool) (*collectionSource, error) {
			return &collectionSource{stored: collIRI, displayed: collIRI}, nil
		})
}

func newObjectReference(path, collection string, cfg *Config, s store.Store,
	verifier signatureVerifier) *Reference {
	return newReference(path, cfg, s, verifier, false,
		func(req *http.Request, _ bool) (*collectionSource, error) {
			objIRI, err := getObjectIRIFromIDParam(req)
			if err != nil {
				return nil, err
			}

			collIRI := objIRI.JoinPath(collection)

			return &collectionSource{stored: collIRI, displayed: collIRI}, nil
		})
}

func newReference(path string, cfg *Config, s store.Store, verifier signatureVerifier,
	authRequired bool, getSource getSourceFunc) *Reference {
	h := &Reference{
		authRequired: authRequired,
		getSource:    getSource,
	}

	h.handler = newHandler(path, cfg, s, h.handle, verifier, nil)

	return h
}

func (h *Reference) handle(w http.ResponseWriter, req *http.Request) {
	authorized, _, err := h.auth.Authorize(req)
	if err != nil {
		h.logger.Error("Error authorizing request", log.WithError(err))

		h.writeResponse(w, http.StatusInternalServerError, []byte(internalServerErrorResponse))

		return
	}

	if h.authRequired && !authorized {
		h.writeResponse(w, http.StatusUnauthorized, []byte(unauthorizedResponse))

		return
	}

	source, err := h.getSource(req, authorized)
	if err != nil {
		h.logger.Debug("Error resolving collection IRI", log.WithError(err))

		h.writeResponse(w, http.StatusBadRequest, []byte(badRequestResponse))

		return
	}

	if h.isPaging(req) {
		h.handlePage(w, req, source)
	} else {
		h.handleCollection(w, req, source)
	}
}

func (h *Reference) handleCollection(w http.ResponseWriter, req *http.Request, source *collectionSource) {
	totalItems, err := h.totalItems(req.Context(), source.stored)
	if err != nil {
		h.logger.Error("Error retrieving total items for collection",
			logfields.WithCollectionIRI(source.stored), log.WithError(err))

		h.writeResponse(w, http.StatusInternalServerError, []byte(internalServerErrorResponse))

		return
	}

	coll := vocab.NewOrderedCollection(nil,
		vocab.WithContext(vocab.ContextActivityStreams),
		vocab.WithID(source.displayed),
		vocab.WithTotalItems(totalItems),
		vocab.WithFirst(pageURL(source.displayed, -1)),
		vocab.WithLast(pageURL(source.displayed, h.lastPageNum(totalItems))),
	)

	collBytes, err := h.marshal(coll)
	if err != nil {
		h.logger.Error("Unable to marshal collection", logfields.WithCollectionIRI(source.stored),
			log.WithError(err))

		h.writeResponse(w, http.StatusInternalServerError, []byte(internalServerErrorResponse))

		return
	}

	h.writeResponse(w, http.StatusOK, collBytes)
}

func (h *Reference) handlePage(w http.ResponseWriter, req *http.Request, source *collectionSource) {
	pageNum, _ := h.getPageNum(req)

	it, err := h.activityStore.QueryCollection(req.Context(), source.stored,
		store.WithPageSize(h.PageSize),
		store.WithPageNum(pageNum),
		store.WithSortOrder(h.SortOrder),
	)
	if err != nil {
		h.logger.Error("Error querying collection", logfields.WithCollectionIRI(source.stored),
			log.WithError(err))

		h.writeResponse(w, http.StatusInternalServerError, []byte(internalServerErrorResponse))

		return
	}

	defer func() {
		if err := it.Close(); err != nil {
			h.logger.Warn("Error closing iterator", log.WithError(err))
		}
	}()

	totalItems, err := it.TotalItems()
	if err != nil {
		h.logger.Error("Error retrieving total items for collection",
			logfields.WithCollectionIRI(source.stored), log.WithError(err))

		h.writeResponse(w, http.StatusInternalServerError, []byte(internalServerErrorResponse))

		return
	}

	refs, err := storeutil.ReadReferences(it, h.PageSize)
	if err != nil {
		h.logger.Error("Error reading references", logfields.WithCollectionIRI(source.stored),
			log.WithError(err))

		h.writeResponse(w, http.StatusInternalServerError, []byte(internalServerErrorResponse))

		return
	}

	items := make([]*vocab.ObjectProperty, len(refs))

	for i, ref := range refs {
		items[i] = vocab.NewObjectProperty(vocab.WithIRI(ref))
	}

	opts := []vocab.Opt{
		vocab.WithContext(vocab.ContextActivityStreams),
		vocab.WithID(pageURL(source.displayed, pageNum)),
		vocab.WithPartOf(source.displayed),
		vocab.WithTotalItems(totalItems),
	}

	if pageNum < h.lastPageNum(totalItems) {
		opts = append(opts, vocab.WithNext(pageURL(source.displayed, pageNum+1)))
	}

	if pageNum > 0 {
		opts = append(opts, vocab.WithPrev(pageURL(source.displayed, pageNum-1)))
	}

	page := vocab.NewOrderedCollectionPage(items, opts...)

	pageBytes, err := h.marshal(page)
	if err != nil {
		h.logger.Error("Unable to marshal page", logfields.WithCollectionIRI(source.stored),
			log.WithError(err))

		h.writeResponse(w, http.StatusInternalServerError, []byte(internalServerErrorResponse))

		return
	}

	h.writeResponse(w, http.StatusOK, pageBytes)
}

func (h *Reference) totalItems(ctx context.Context, collIRI *url.URL) (int, error) {
	it, err := h.activityStore.QueryCollection(ctx, collIRI)
	if err != nil {
		return 0, err
	}

	defer func() {
		if err := it.Close(); err != nil {
			h.logger.Warn("Error closing iterator", log.WithError(err))
		}
	}()

	return it.TotalItems()
}

func (h *Reference) lastPageNum(totalItems int) int {
	if totalItems <= 0 {
		return 0
	}

	return (totalItems - 1) / h.PageSize
}

func getObjectIRIFromIDParam(req *http.Request) (*url.URL, error) {
	id := mux.Vars(req)[idParam]
	if id == "" {
		return nil, fmt.Errorf("object id not specified")
	}

	objIRI, err := url.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse object IRI [%s]: %w", id, err)
	}

	if !objIRI.IsAbs() {
		return nil, fmt.Errorf("object IRI [%s] is not absolute", id)
	}

	return objIRI, nil
}
