/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package actor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/addressing"
	apperrors "github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/service/spi"
	store "github.com/fedikit/fedikit/pkg/store/spi"
	"github.com/fedikit/fedikit/pkg/store/storeutil"
	"github.com/fedikit/fedikit/pkg/vocab"
)

func delegateNotFound(protocol, function string) error {
	return fmt.Errorf("function %s not found in %s or fallback delegates", function, protocol)
}

// PostInbox applies the receive-side effects of an activity: the activity is
// persisted, prepended to the inbox, and handed to the S2S activity handler.
// It is idempotent: an activity whose id is already in the inbox collection
// is not processed again. The return value reports whether the activity was
// novel.
func (a *Actor) PostInbox(ctx context.Context, actx *spi.Context, inboxIRI *url.URL,
	activity *vocab.ActivityType) (bool, error) {
	id := activity.ID().URL()
	if id == nil {
		return false, apperrors.ErrMissingID
	}

	contains, err := actx.Store.CollectionContains(ctx, inboxIRI, id)
	if err != nil {
		return false, fmt.Errorf("check inbox [%s] for activity [%s]: %w", inboxIRI, id, err)
	}

	if contains {
		logger.Debug("Activity already in inbox. Ignoring duplicate.",
			logfields.WithActivityID(id), logfields.WithInboxIRI(inboxIRI))

		return false, nil
	}

	if err := a.storeActivity(ctx, actx, activity); err != nil {
		return false, err
	}

	if err := actx.Store.UpdateCollection(ctx, inboxIRI, []*url.URL{id}, nil); err != nil {
		return false, fmt.Errorf("add activity [%s] to inbox [%s]: %w", id, inboxIRI, err)
	}

	derived := actx
	if derived.S2S == nil {
		derived = actx.WithS2S(&spi.S2SContext{
			InboxIRI: inboxIRI,
			OnFollow: a.onFollow(actx),
		})
	}

	// The id just added to the box is treated as not yet seen by inbox
	// forwarding.
	derived.S2S.NewActivityID = id

	if err := a.inboxHandler.HandleActivity(ctx, derived, inboxIRI, activity); err != nil {
		return false, fmt.Errorf("handle %s activity [%s]: %w", activity.Type(), id, err)
	}

	return true, nil
}

// InboxForwarding implements the inbox forwarding mechanism: a novel
// activity addressed to an owned collection, that references an owned value
// within the configured recursion depth, is forwarded to the members of the
// addressed collections.
func (a *Actor) InboxForwarding(ctx context.Context, actx *spi.Context, inboxIRI *url.URL,
	activity *vocab.ActivityType) error {
	id := activity.ID().URL()
	if id == nil {
		return apperrors.ErrMissingID
	}

	seen, err := a.alreadySeen(ctx, actx, id)
	if err != nil {
		return err
	}

	if seen {
		return nil
	}

	if err := a.storeActivity(ctx, actx, activity); err != nil {
		return err
	}

	myIRIs, err := a.ownedRecipients(ctx, actx, activity)
	if err != nil {
		return err
	}

	if len(myIRIs) == 0 {
		return nil
	}

	collIRIs, err := a.ownedCollections(ctx, actx, myIRIs)
	if err != nil {
		return err
	}

	if len(collIRIs) == 0 {
		return nil
	}

	t, err := actx.Transport.NewTransport(inboxIRI, actx.AppAgent)
	if err != nil {
		return fmt.Errorf("new transport for inbox [%s]: %w", inboxIRI, err)
	}

	maxDepth := a.maxInboxForwardingRecursionDepth(actx)

	if !a.hasOwnedReference(ctx, actx, t, activity, maxDepth) {
		logger.Debug("Activity references nothing we own. Not forwarding.", logfields.WithActivityID(id))

		return nil
	}

	filtered, err := a.filterForwarding(ctx, actx, collIRIs, activity)
	if err != nil {
		return err
	}

	if len(filtered) == 0 {
		return nil
	}

	recipients, err := a.collectionMembers(ctx, actx, filtered)
	if err != nil {
		return err
	}

	inboxes, err := a.resolver.ResolveInboxes(ctx, t, recipients, nil, inboxIRI,
		a.maxDeliveryRecursionDepth(actx))
	if err != nil {
		logger.Warn("Error resolving some forwarding recipients.",
			logfields.WithActivityID(id), logfields.WithError(err))
	}

	if len(inboxes) == 0 {
		return nil
	}

	payload, err := vocab.Marshal(activity)
	if err != nil {
		return fmt.Errorf("marshal activity [%s]: %w", id, err)
	}

	logger.Debug("Forwarding activity.", logfields.WithActivityID(id), logfields.WithTotal(len(inboxes)))

	return t.BatchDeliver(ctx, payload, inboxes)
}

// Receive runs the full receive-side pipeline for an already-authenticated
// activity: PostInbox followed, for a novel activity, by InboxForwarding.
// It is the entry point for transports that bypass the HTTP handlers, such
// as the message-queue inbox.
func (a *Actor) Receive(ctx context.Context, actx *spi.Context, inboxIRI *url.URL,
	activity *vocab.ActivityType) error {
	derived := actx
	if derived.S2S == nil {
		derived = actx.WithS2S(&spi.S2SContext{
			InboxIRI: inboxIRI,
			OnFollow: a.onFollow(actx),
		})
	}

	novel, err := a.PostInbox(ctx, derived, inboxIRI, activity)
	if err != nil {
		return err
	}

	if !novel {
		return nil
	}

	return a.InboxForwarding(ctx, derived, inboxIRI, activity)
}

// PostOutbox applies the send-side effects of an activity: the C2S side
// effects run (when the social protocol is enabled), and the activity is
// persisted and prepended to the outbox. The return value reports whether
// the activity should federate.
func (a *Actor) PostOutbox(ctx context.Context, actx *spi.Context, outboxIRI *url.URL,
	activity *vocab.ActivityType, raw vocab.Document) (bool, error) {
	deliverable := true

	if actx.SocialEnabled() {
		c2s := &spi.C2SContext{
			OutboxIRI:   outboxIRI,
			RawActivity: raw,
			Deliverable: true,
		}

		if err := a.outboxHandler.HandleActivity(ctx, actx.WithC2S(c2s), nil, activity); err != nil {
			return false, fmt.Errorf("handle %s activity: %w", activity.Type(), err)
		}

		deliverable = c2s.Deliverable
	}

	id := activity.ID().URL()
	if id == nil {
		return false, apperrors.ErrMissingID
	}

	if err := a.storeActivity(ctx, actx, activity); err != nil {
		return false, err
	}

	if err := actx.Store.UpdateCollection(ctx, outboxIRI, []*url.URL{id}, nil); err != nil {
		return false, fmt.Errorf("add activity [%s] to outbox [%s]: %w", id, outboxIRI, err)
	}

	// Public activities are additionally referenced from the public outbox
	// so that unauthenticated reads see only public items.
	if _, public := addressing.ExcludePublic(addressing.Recipients(activity.ObjectType)); public {
		publicIRI := store.PublicCollectionIRI(outboxIRI)

		if err := actx.Store.UpdateCollection(ctx, publicIRI, []*url.URL{id}, nil); err != nil {
			return false, fmt.Errorf("add activity [%s] to public outbox [%s]: %w", id, publicIRI, err)
		}
	}

	return deliverable, nil
}

// Deliver federates an activity posted to the outbox: the recipients are
// resolved to inboxes, hidden recipients are stripped from the outgoing
// payload, and the activity is delivered to every inbox except the sender's
// own.
func (a *Actor) Deliver(ctx context.Context, actx *spi.Context, outboxIRI *url.URL,
	activity *vocab.ActivityType) error {
	id := activity.ID().URL()
	if id == nil {
		return apperrors.ErrMissingID
	}

	hidden := addressing.HiddenRecipients(activity.ObjectType)

	recipients, _ := addressing.ExcludePublic(addressing.Recipients(activity.ObjectType))
	recipients = addressing.DedupeIRIs(recipients, hidden)

	t, err := actx.Transport.NewTransport(outboxIRI, actx.AppAgent)
	if err != nil {
		return fmt.Errorf("new transport for outbox [%s]: %w", outboxIRI, err)
	}

	ourInbox, err := a.inboxForOutbox(ctx, actx, outboxIRI)
	if err != nil {
		return err
	}

	inboxes, err := a.resolver.ResolveInboxes(ctx, t, recipients, hidden, ourInbox,
		a.maxDeliveryRecursionDepth(actx))
	if err != nil {
		logger.Warn("Error resolving some recipients.", logfields.WithActivityID(id),
			logfields.WithError(err))
	}

	if len(inboxes) == 0 {
		logger.Debug("No inboxes resolved for activity. Nothing to deliver.",
			logfields.WithActivityID(id))

		return nil
	}

	addressing.StripHiddenRecipients(activity)

	doc, err := vocab.MarshalToDoc(activity)
	if err != nil {
		return fmt.Errorf("marshal activity [%s]: %w", id, err)
	}

	if err := verifyNoHiddenRecipients(doc); err != nil {
		return fmt.Errorf("activity [%s]: %w", id, err)
	}

	payload, err := vocab.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal activity [%s]: %w", id, err)
	}

	logger.Debug("Delivering activity.", logfields.WithActivityID(id),
		logfields.WithTotal(len(inboxes)))

	return t.BatchDeliver(ctx, payload, inboxes)
}

// verifyNoHiddenRecipients ensures that the serialized activity carries no
// hidden recipients, which must never appear on the wire.
func verifyNoHiddenRecipients(doc vocab.Document) error {
	for _, property := range []string{"bto", "bcc"} {
		if _, ok := doc[property]; ok {
			return fmt.Errorf("property [%s] must not be present in an outgoing activity", property)
		}
	}

	return nil
}

// AddNewIDs mints an id for the activity and, for a Create, for each of its
// wrapped objects that lacks one.
func (a *Actor) AddNewIDs(ctx context.Context, actx *spi.Context, activity *vocab.ActivityType) error {
	doc, err := vocab.MarshalToDoc(activity)
	if err != nil {
		return fmt.Errorf("marshal activity: %w", err)
	}

	id, err := actx.Store.NewID(ctx, doc)
	if err != nil {
		return fmt.Errorf("mint activity id: %w", err)
	}

	activity.SetID(id)

	if !activity.Type().Is(vocab.TypeCreate) || activity.Object() == nil {
		return nil
	}

	for _, obj := range addressing.EmbeddedObjects(activity.Object()) {
		if obj.ID().URL() != nil {
			continue
		}

		objDoc, err := vocab.MarshalToDoc(obj)
		if err != nil {
			return fmt.Errorf("marshal object: %w", err)
		}

		objID, err := actx.Store.NewID(ctx, objDoc)
		if err != nil {
			return fmt.Errorf("mint object id: %w", err)
		}

		obj.SetID(objID)
	}

	return nil
}

// deliverReply is handed to the S2S activity handler so that built-in side
// effects (such as the automatic Accept of a Follow) can post a reply from
// our actor's outbox and deliver it to the remote peer.
func (a *Actor) deliverReply(ctx context.Context, actx *spi.Context, activity *vocab.ActivityType,
	toIRI *url.URL) error {
	if actx.S2S == nil || actx.S2S.InboxIRI == nil {
		return errors.New("no inbox IRI in actor context")
	}

	outboxIRI, err := actx.Store.OutboxForInbox(ctx, actx.S2S.InboxIRI)
	if err != nil {
		return fmt.Errorf("get outbox for inbox [%s]: %w", actx.S2S.InboxIRI, err)
	}

	if err := a.AddNewIDs(ctx, actx, activity); err != nil {
		return err
	}

	id := activity.ID().URL()

	if err := a.storeActivity(ctx, actx, activity); err != nil {
		return err
	}

	if err := actx.Store.UpdateCollection(ctx, outboxIRI, []*url.URL{id}, nil); err != nil {
		return fmt.Errorf("add activity [%s] to outbox [%s]: %w", id, outboxIRI, err)
	}

	// The reply is an outbox echo: inbox forwarding must treat it as not yet
	// seen.
	actx.S2S.NewActivityID = id

	t, err := actx.Transport.NewTransport(outboxIRI, actx.AppAgent)
	if err != nil {
		return fmt.Errorf("new transport for outbox [%s]: %w", outboxIRI, err)
	}

	payload, err := vocab.Marshal(activity)
	if err != nil {
		return fmt.Errorf("marshal activity [%s]: %w", id, err)
	}

	inboxes, err := a.resolver.ResolveInboxes(ctx, t, []*url.URL{toIRI}, nil, nil,
		a.maxDeliveryRecursionDepth(actx))
	if err != nil {
		return fmt.Errorf("resolve inbox of [%s]: %w", toIRI, err)
	}

	return t.BatchDeliver(ctx, payload, inboxes)
}

func (a *Actor) storeActivity(ctx context.Context, actx *spi.Context, activity *vocab.ActivityType) error {
	doc, err := vocab.MarshalToDoc(activity)
	if err != nil {
		return fmt.Errorf("marshal activity: %w", err)
	}

	id, err := storeutil.DocumentID(doc)
	if err != nil {
		return err
	}

	exists, err := actx.Store.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check existence of activity [%s]: %w", id, err)
	}

	if exists {
		return nil
	}

	if err := actx.Store.Create(ctx, doc); err != nil {
		return fmt.Errorf("store activity [%s]: %w", id, err)
	}

	return nil
}

// alreadySeen reports whether the activity was already processed. The
// activity just added to our own outbox is treated as not yet seen so that
// the outbox echo still forwards.
func (a *Actor) alreadySeen(ctx context.Context, actx *spi.Context, id *url.URL) (bool, error) {
	if actx.S2S != nil && actx.S2S.NewActivityID != nil && actx.S2S.NewActivityID.String() == id.String() {
		return false, nil
	}

	exists, err := actx.Store.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check existence of activity [%s]: %w", id, err)
	}

	return exists, nil
}

// ownedRecipients returns the direct recipients of the activity (to, cc and
// audience, but not the hidden bto/bcc) that we own.
func (a *Actor) ownedRecipients(ctx context.Context, actx *spi.Context,
	activity *vocab.ActivityType) ([]*url.URL, error) {
	var direct []*url.URL

	direct = append(direct, activity.To()...)
	direct = append(direct, activity.CC()...)
	direct = append(direct, activity.Audience()...)

	var owned []*url.URL

	for _, iri := range addressing.DedupeIRIs(direct, nil) {
		if addressing.IsPublic(iri) {
			continue
		}

		owns, err := actx.Store.Owns(ctx, iri)
		if err != nil {
			return nil, fmt.Errorf("check ownership of [%s]: %w", iri, err)
		}

		if owns {
			owned = append(owned, iri)
		}
	}

	return owned, nil
}

// ownedCollections returns the IRIs among myIRIs whose stored value is a
// Collection or OrderedCollection.
func (a *Actor) ownedCollections(ctx context.Context, actx *spi.Context,
	myIRIs []*url.URL) ([]*url.URL, error) {
	var collIRIs []*url.URL

	for _, iri := range myIRIs {
		doc, err := actx.Store.Get(ctx, iri)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}

			return nil, fmt.Errorf("get [%s]: %w", iri, err)
		}

		obj := &vocab.ObjectType{}
		if err := vocab.UnmarshalFromDoc(doc, obj); err != nil {
			return nil, fmt.Errorf("unmarshal [%s]: %w", iri, err)
		}

		if obj.Type().IsAny(vocab.TypeCollection, vocab.TypeOrderedCollection) {
			collIRIs = append(collIRIs, iri)
		}
	}

	return collIRIs, nil
}

// hasOwnedReference recursively examines the object, target, inReplyTo and
// tag values of the given value: the condition holds if any referenced or
// embedded id is owned. IRI references are dereferenced through the
// transport up to the given depth; dereference failures are swallowed and
// the traversal continues with what it has.
func (a *Actor) hasOwnedReference(ctx context.Context, actx *spi.Context, t spi.Transport,
	value interface{}, depth int) bool {
	// References beyond the configured depth are not inspected at all.
	if depth <= 0 {
		return false
	}

	embedded, iris := addressing.ForwardingValues(value)

	for _, v := range embedded {
		if a.owns(ctx, actx, v.ID()) {
			return true
		}
	}

	for _, iri := range iris {
		if a.owns(ctx, actx, iri) {
			return true
		}
	}

	for _, v := range embedded {
		var next interface{}

		if activity := v.Activity(); activity != nil {
			next = activity
		} else if obj := v.Object(); obj != nil {
			next = obj
		}

		if next != nil && a.hasOwnedReference(ctx, actx, t, next, depth-1) {
			return true
		}
	}

	for _, iri := range iris {
		payload, err := t.Dereference(ctx, iri)
		if err != nil {
			logger.Debug("Error dereferencing IRI during forwarding traversal. Continuing.",
				logfields.WithURI(iri), logfields.WithError(err))

			continue
		}

		next := &vocab.ActivityType{}
		if err := vocab.UnmarshalJSON(payload, next); err != nil {
			logger.Debug("Error unmarshalling value during forwarding traversal. Continuing.",
				logfields.WithURI(iri), logfields.WithError(err))

			continue
		}

		if a.hasOwnedReference(ctx, actx, t, next, depth-1) {
			return true
		}
	}

	return false
}

func (a *Actor) owns(ctx context.Context, actx *spi.Context, iri *url.URL) bool {
	if iri == nil {
		return false
	}

	owns, err := actx.Store.Owns(ctx, iri)
	if err != nil {
		logger.Warn("Error checking ownership.", logfields.WithURI(iri), logfields.WithError(err))

		return false
	}

	return owns
}

// collectionMembers returns the ids contained in the given owned
// collections.
func (a *Actor) collectionMembers(ctx context.Context, actx *spi.Context,
	collIRIs []*url.URL) ([]*url.URL, error) {
	var members []*url.URL

	for _, collIRI := range collIRIs {
		it, err := actx.Store.QueryCollection(ctx, collIRI)
		if err != nil {
			return nil, fmt.Errorf("query collection [%s]: %w", collIRI, err)
		}

		refs, err := storeutil.ReadReferences(it, -1)
		if err != nil {
			return nil, fmt.Errorf("read references of collection [%s]: %w", collIRI, err)
		}

		members = append(members, refs...)
	}

	return addressing.DedupeIRIs(members, nil), nil
}

func (a *Actor) inboxForOutbox(ctx context.Context, actx *spi.Context, outboxIRI *url.URL) (*url.URL, error) {
	actorIRI, err := actx.Store.ActorForOutbox(ctx, outboxIRI)
	if err != nil {
		return nil, fmt.Errorf("get actor for outbox [%s]: %w", outboxIRI, err)
	}

	inboxIRI, _, err := actx.Store.InboxForActor(ctx, actorIRI)
	if err != nil {
		return nil, fmt.Errorf("get inbox for actor [%s]: %w", actorIRI, err)
	}

	return inboxIRI, nil
}

func (a *Actor) filterForwarding(ctx context.Context, actx *spi.Context, recipients []*url.URL,
	activity *vocab.ActivityType) ([]*url.URL, error) {
	if o := actx.Overrides; o != nil && o.FilterForwarding != nil {
		if filtered, handled, err := o.FilterForwarding(ctx, actx, recipients, activity); handled {
			return filtered, err
		}
	}

	if actx.Federated != nil {
		return actx.Federated.FilterForwarding(ctx, actx, recipients, activity)
	}

	if f, ok := actx.Fallback.(interface {
		FilterForwarding(context.Context, *spi.Context, []*url.URL, *vocab.ActivityType) ([]*url.URL, error)
	}); ok {
		return f.FilterForwarding(ctx, actx, recipients, activity)
	}

	return nil, delegateNotFound("s2s", "FilterForwarding")
}

func (a *Actor) postInboxRequestBodyHook(actx *spi.Context, r *http.Request,
	activity *vocab.ActivityType) (*spi.Context, error) {
	if actx.Federated != nil {
		return actx.Federated.PostInboxRequestBodyHook(actx, r, activity)
	}

	if f, ok := actx.Fallback.(interface {
		PostInboxRequestBodyHook(*spi.Context, *http.Request, *vocab.ActivityType) (*spi.Context, error)
	}); ok {
		return f.PostInboxRequestBodyHook(actx, r, activity)
	}

	return nil, delegateNotFound("s2s", "PostInboxRequestBodyHook")
}

func (a *Actor) postOutboxRequestBodyHook(actx *spi.Context, r *http.Request,
	activity *vocab.ActivityType) (*spi.Context, error) {
	if actx.Social != nil {
		return actx.Social.PostOutboxRequestBodyHook(actx, r, activity)
	}

	if f, ok := actx.Fallback.(interface {
		PostOutboxRequestBodyHook(*spi.Context, *http.Request, *vocab.ActivityType) (*spi.Context, error)
	}); ok {
		return f.PostOutboxRequestBodyHook(actx, r, activity)
	}

	return nil, delegateNotFound("c2s", "PostOutboxRequestBodyHook")
}

func (a *Actor) getInbox(actx *spi.Context, r *http.Request) (*vocab.OrderedCollectionType, error) {
	if o := actx.Overrides; o != nil && o.GetInbox != nil {
		if coll, handled, err := o.GetInbox(actx, r); handled {
			return coll, err
		}
	}

	if actx.Common != nil {
		return actx.Common.GetInbox(actx, r)
	}

	if f, ok := actx.Fallback.(interface {
		GetInbox(*spi.Context, *http.Request) (*vocab.OrderedCollectionType, error)
	}); ok {
		return f.GetInbox(actx, r)
	}

	return nil, delegateNotFound("common", "GetInbox")
}

func (a *Actor) getOutbox(actx *spi.Context, r *http.Request) (*vocab.OrderedCollectionType, error) {
	if o := actx.Overrides; o != nil && o.GetOutbox != nil {
		if coll, handled, err := o.GetOutbox(actx, r); handled {
			return coll, err
		}
	}

	if actx.Common != nil {
		return actx.Common.GetOutbox(actx, r)
	}

	if f, ok := actx.Fallback.(interface {
		GetOutbox(*spi.Context, *http.Request) (*vocab.OrderedCollectionType, error)
	}); ok {
		return f.GetOutbox(actx, r)
	}

	return nil, delegateNotFound("common", "GetOutbox")
}
