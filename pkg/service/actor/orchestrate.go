/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package actor

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/addressing"
	"github.com/fedikit/fedikit/pkg/client/transport"
	apperrors "github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/service/spi"
	"github.com/fedikit/fedikit/pkg/vocab"
)

const (
	dateHeader     = "Date"
	digestHeader   = "Digest"
	locationHeader = "Location"

	// httpDateFormat is the RFC 7231 date format.
	httpDateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"
)

// HandlePostInbox processes an inbound POST to the given inbox. The return
// value reports whether the request was an ActivityPub request; a false
// return means the caller should pass the request on to its next handler.
func (a *Actor) HandlePostInbox(w http.ResponseWriter, r *http.Request, inboxIRI *url.URL) (bool, error) {
	if !IsActivityPubPost(r) {
		return false, nil
	}

	actx := a.base

	if !actx.FederatedEnabled() {
		w.WriteHeader(http.StatusMethodNotAllowed)

		return true, nil
	}

	actx, authenticated, err := a.authenticatePostInbox(actx, w, r)
	if err != nil {
		return true, err
	}

	if !authenticated {
		return true, nil
	}

	activity, _, err := readActivity(r.Body)
	if err != nil {
		writeBadRequest(w, err)

		return true, nil
	}

	if !activity.Type().IsActivity() {
		writeBadRequest(w, apperrors.ErrUnmatchedType)

		return true, nil
	}

	if activity.ID().URL() == nil {
		writeBadRequest(w, apperrors.ErrMissingID)

		return true, nil
	}

	actx = actx.WithS2S(&spi.S2SContext{
		InboxIRI: inboxIRI,
		OnFollow: a.onFollow(actx),
	})

	actx, err = a.postInboxRequestBodyHook(actx, r, activity)
	if err != nil {
		return true, err
	}

	authorized, err := a.authorizePostInbox(actx, w, activity)
	if err != nil {
		return true, err
	}

	if !authorized {
		return true, nil
	}

	novel, err := a.PostInbox(r.Context(), actx, inboxIRI, activity)
	if err != nil {
		if isBadRequest(err) {
			writeBadRequest(w, err)

			return true, nil
		}

		return true, err
	}

	if novel {
		if err := a.InboxForwarding(r.Context(), actx, inboxIRI, activity); err != nil {
			return true, err
		}
	}

	w.WriteHeader(http.StatusOK)

	return true, nil
}

// HandlePostOutbox processes a POST of an activity to the given outbox. A
// bare object is wrapped in a Create attributed to the outbox's actor.
// Success responds 201 with a Location header carrying the new activity id.
func (a *Actor) HandlePostOutbox(w http.ResponseWriter, r *http.Request, outboxIRI *url.URL) (bool, error) {
	if !IsActivityPubPost(r) {
		return false, nil
	}

	actx := a.base

	if !actx.SocialEnabled() {
		w.WriteHeader(http.StatusMethodNotAllowed)

		return true, nil
	}

	actx, authenticated, err := a.authenticatePostOutbox(actx, w, r)
	if err != nil {
		return true, err
	}

	if !authenticated {
		return true, nil
	}

	activity, raw, err := readActivity(r.Body)
	if err != nil {
		writeBadRequest(w, err)

		return true, nil
	}

	if !activity.Type().IsActivity() {
		activity, err = a.wrapInCreate(r, actx, raw, outboxIRI)
		if err != nil {
			if isBadRequest(err) {
				writeBadRequest(w, err)

				return true, nil
			}

			return true, err
		}
	}

	if err := a.AddNewIDs(r.Context(), actx, activity); err != nil {
		return true, err
	}

	actx, err = a.postOutboxRequestBodyHook(actx, r, activity)
	if err != nil {
		return true, err
	}

	deliverable, err := a.PostOutbox(r.Context(), actx, outboxIRI, activity, raw)
	if err != nil {
		if isBadRequest(err) {
			writeBadRequest(w, err)

			return true, nil
		}

		return true, err
	}

	if deliverable && actx.FederatedEnabled() {
		if err := a.Deliver(r.Context(), actx, outboxIRI, activity); err != nil {
			return true, err
		}
	}

	w.Header().Set(locationHeader, activity.ID().String())
	w.WriteHeader(http.StatusCreated)

	return true, nil
}

// HandleGetInbox serves a GET of the inbox: the delegate supplies the
// collection, the ordered items are deduplicated by id, and the response
// carries ActivityPub content-type, date and digest headers.
func (a *Actor) HandleGetInbox(w http.ResponseWriter, r *http.Request) (bool, error) {
	if !IsActivityPubGet(r) {
		return false, nil
	}

	actx, authenticated, err := a.authenticateGetInbox(a.base, w, r)
	if err != nil {
		return true, err
	}

	if !authenticated {
		return true, nil
	}

	coll, err := a.getInbox(actx, r)
	if err != nil {
		return true, err
	}

	return true, writeCollection(w, coll)
}

// HandleGetOutbox serves a GET of the outbox.
func (a *Actor) HandleGetOutbox(w http.ResponseWriter, r *http.Request) (bool, error) {
	if !IsActivityPubGet(r) {
		return false, nil
	}

	actx, authenticated, err := a.authenticateGetOutbox(a.base, w, r)
	if err != nil {
		return true, err
	}

	if !authenticated {
		return true, nil
	}

	coll, err := a.getOutbox(actx, r)
	if err != nil {
		return true, err
	}

	return true, writeCollection(w, coll)
}

// wrapInCreate wraps a bare posted object in a Create activity attributed to
// the actor that owns the outbox.
func (a *Actor) wrapInCreate(r *http.Request, actx *spi.Context, raw vocab.Document,
	outboxIRI *url.URL) (*vocab.ActivityType, error) {
	actorIRI, err := actx.Store.ActorForOutbox(r.Context(), outboxIRI)
	if err != nil {
		return nil, fmt.Errorf("get actor for outbox [%s]: %w", outboxIRI, err)
	}

	obj, err := vocab.NewObjectWithDocument(raw)
	if err != nil {
		return nil, apperrors.NewBadRequest(fmt.Errorf("invalid object: %w", err))
	}

	return addressing.WrapInCreate(obj, actorIRI), nil
}

// readActivity reads and parses the request body into a typed activity and
// its raw document.
func readActivity(body io.Reader) (*vocab.ActivityType, vocab.Document, error) {
	payload, err := io.ReadAll(body)
	if err != nil {
		return nil, nil, apperrors.NewBadRequest(fmt.Errorf("read request body: %w", err))
	}

	raw, err := vocab.UnmarshalToDoc(payload)
	if err != nil {
		return nil, nil, apperrors.NewBadRequest(fmt.Errorf("invalid JSON payload: %w", err))
	}

	activity := &vocab.ActivityType{}
	if err := vocab.UnmarshalFromDoc(raw, activity); err != nil {
		return nil, nil, apperrors.NewBadRequest(fmt.Errorf("invalid activity: %w", err))
	}

	return activity, raw, nil
}

// IsActivityPubPost reports whether the request is a POST with an
// ActivityPub content type.
func IsActivityPubPost(r *http.Request) bool {
	return r.Method == http.MethodPost && isActivityPubMediaType(r.Header.Get("Content-Type"))
}

// IsActivityPubGet reports whether the request is a GET with an ActivityPub
// accept header.
func IsActivityPubGet(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}

	for _, accept := range strings.Split(r.Header.Get("Accept"), ",") {
		if isActivityPubMediaType(accept) {
			return true
		}
	}

	return false
}

func isActivityPubMediaType(value string) bool {
	mediaType, params, err := mime.ParseMediaType(value)
	if err != nil {
		return false
	}

	switch mediaType {
	case transport.ActivityContentType:
		return true
	case "application/ld+json":
		return params["profile"] == "https://www.w3.org/ns/activitystreams"
	default:
		return false
	}
}

// AddResponseHeaders sets the ActivityPub content-type along with the date
// and digest of the response body.
func AddResponseHeaders(w http.ResponseWriter, body []byte) {
	sum := sha256.Sum256(body)

	w.Header().Set(transport.ContentTypeHeader, transport.ActivityStreamsContentType)
	w.Header().Set(dateHeader, time.Now().UTC().Format(httpDateFormat))
	w.Header().Set(digestHeader, "SHA-256="+base64.StdEncoding.EncodeToString(sum[:]))
}

func writeCollection(w http.ResponseWriter, coll *vocab.OrderedCollectionType) error {
	if err := addressing.DedupeOrderedItems(coll); err != nil {
		return err
	}

	payload, err := vocab.Marshal(coll)
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}

	AddResponseHeaders(w, payload)

	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(payload); err != nil {
		logger.Warn("Error writing response.", logfields.WithError(err))
	}

	return nil
}

func writeBadRequest(w http.ResponseWriter, err error) {
	logger.Debug("Bad request.", logfields.WithError(err))

	http.Error(w, "Bad Request.", http.StatusBadRequest)
}

func isBadRequest(err error) bool {
	return apperrors.IsBadRequest(err) ||
		isAny(err,
			apperrors.ErrMissingID,
			apperrors.ErrUnmatchedType,
			apperrors.ErrMissingObject,
			apperrors.ErrMissingTarget,
			apperrors.ErrMissingActor,
		)
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
