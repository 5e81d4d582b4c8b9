/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package activityhandler

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/addressing"
	apperrors "github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/service/spi"
	store "github.com/fedikit/fedikit/pkg/store/spi"
	"github.com/fedikit/fedikit/pkg/vocab"
)

// DeliverFunc delivers an activity originating from one of our actors to the
// given target inbox. It is supplied by the engine so that built-in side
// effects (such as the automatic Accept of a Follow) can federate replies.
type DeliverFunc func(ctx context.Context, actx *spi.Context, activity *vocab.ActivityType, toIRI *url.URL) error

// Inbox applies the server-to-server side effects prescribed for each
// activity type and then invokes the application's callback for that type.
type Inbox struct {
	*handler

	deliver DeliverFunc
}

// NewInbox returns a new inbox (server-to-server) activity handler.
func NewInbox(cfg *Config, deliver DeliverFunc) *Inbox {
	return &Inbox{
		handler: newHandler(cfg),
		deliver: deliver,
	}
}

// HandleActivity runs the built-in server-to-server side effects for the
// given activity and invokes the application callback for its type.
func (h *Inbox) HandleActivity(ctx context.Context, actx *spi.Context, source *url.URL,
	activity *vocab.ActivityType) error {
	if actx.S2S == nil {
		return errors.New("no S2S data in actor context")
	}

	typeProp := activity.Type()

	var err error

	switch {
	case typeProp.Is(vocab.TypeCreate):
		err = h.handleCreate(ctx, actx, activity)
	case typeProp.Is(vocab.TypeUpdate):
		err = h.handleUpdate(ctx, actx, activity)
	case typeProp.Is(vocab.TypeDelete):
		err = h.handleDelete(ctx, actx, activity)
	case typeProp.Is(vocab.TypeFollow):
		err = h.handleFollow(ctx, actx, activity)
	case typeProp.Is(vocab.TypeAccept):
		err = h.handleAccept(ctx, actx, activity)
	case typeProp.Is(vocab.TypeAdd):
		err = h.handleAdd(ctx, actx, activity)
	case typeProp.Is(vocab.TypeRemove):
		err = h.handleRemove(ctx, actx, activity)
	case typeProp.Is(vocab.TypeLike):
		err = h.handleLike(ctx, actx, activity)
	case typeProp.Is(vocab.TypeAnnounce):
		err = h.handleAnnounce(ctx, actx, activity)
	case typeProp.Is(vocab.TypeUndo):
		err = h.handleUndo(ctx, actx, activity)
	case typeProp.Is(vocab.TypeReject), typeProp.Is(vocab.TypeBlock):
		// No default side effect.
	default:
		// Types without built-in side effects still reach the application.
		logger.Debug("No built-in side effect for activity type.",
			logfields.WithActivityType(typeProp.String()), logfields.WithActivityID(activity.ID()))
	}

	if err != nil {
		return err
	}

	table, err := h.callbacks(actx)
	if err != nil {
		return err
	}

	if err := invoke(ctx, table, actx, activity); err != nil {
		return err
	}

	h.notify(activity)

	return nil
}

// callbacks returns the S2S callback table: the table configured on the
// context takes precedence over the one supplied by the federated delegate.
func (h *Inbox) callbacks(actx *spi.Context) (*spi.Callbacks, error) {
	if actx.FederatedCallbacks != nil {
		return actx.FederatedCallbacks, nil
	}

	if actx.Federated != nil {
		return actx.Federated.FederatedCallbacks(actx)
	}

	return nil, nil
}

// handleCreate persists every object wrapped in the Create. Objects that are
// referenced only by IRI are dereferenced first.
func (h *Inbox) handleCreate(ctx context.Context, actx *spi.Context, create *vocab.ActivityType) error {
	obj := create.Object()
	if obj == nil {
		return apperrors.ErrMissingObject
	}

	for _, value := range obj.Values() {
		doc, err := h.objectDocument(ctx, actx, value)
		if err != nil {
			return err
		}

		if doc == nil {
			continue
		}

		if err := createOrUpdate(ctx, actx.Store, doc); err != nil {
			return fmt.Errorf("store object of Create activity: %w", err)
		}
	}

	return nil
}

// objectDocument returns the raw document of an object property value,
// dereferencing it through the transport if only an IRI is given.
func (h *Inbox) objectDocument(ctx context.Context, actx *spi.Context,
	value *vocab.ObjectPropertyValue) (vocab.Document, error) {
	if obj := value.Object(); obj != nil {
		return vocab.MarshalToDoc(obj)
	}

	if activity := value.Activity(); activity != nil {
		return vocab.MarshalToDoc(activity)
	}

	iri := value.IRI()
	if iri == nil {
		return nil, nil
	}

	t, err := actx.Transport.NewTransport(actx.S2S.InboxIRI, actx.AppAgent)
	if err != nil {
		return nil, fmt.Errorf("new transport for inbox [%s]: %w", actx.S2S.InboxIRI, err)
	}

	payload, err := t.Dereference(ctx, iri)
	if err != nil {
		return nil, fmt.Errorf("dereference object [%s]: %w", iri, err)
	}

	doc, err := vocab.UnmarshalToDoc(payload)
	if err != nil {
		return nil, fmt.Errorf("unmarshal object [%s]: %w", iri, err)
	}

	return doc, nil
}

// handleUpdate requires that the origin of the activity matches the origin
// of every object and then updates the stored objects.
func (h *Inbox) handleUpdate(ctx context.Context, actx *spi.Context, update *vocab.ActivityType) error {
	if update.Object() == nil {
		return apperrors.ErrMissingObject
	}

	if err := addressing.VerifySameOrigin(update); err != nil {
		return err
	}

	for _, obj := range addressing.EmbeddedObjects(update.Object()) {
		doc, err := vocab.MarshalToDoc(obj)
		if err != nil {
			return fmt.Errorf("marshal object of Update activity: %w", err)
		}

		if err := actx.Store.Update(ctx, doc); err != nil {
			return fmt.Errorf("update object of Update activity: %w", err)
		}
	}

	return nil
}

// handleDelete requires a matching origin and deletes the referenced
// objects.
func (h *Inbox) handleDelete(ctx context.Context, actx *spi.Context, del *vocab.ActivityType) error {
	obj := del.Object()
	if obj == nil {
		return apperrors.ErrMissingObject
	}

	if err := addressing.VerifySameOrigin(del); err != nil {
		return err
	}

	for _, id := range obj.IDs() {
		if err := actx.Store.Delete(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("delete object [%s]: %w", id, err)
		}
	}

	return nil
}

// handleFollow applies the OnFollow policy: auto-accept replies with an
// Accept and records the follower; auto-reject replies with a Reject.
func (h *Inbox) handleFollow(ctx context.Context, actx *spi.Context, follow *vocab.ActivityType) error {
	policy := actx.S2S.OnFollow
	if policy == spi.OnFollowDoNothing {
		return nil
	}

	obj := follow.Object()
	if obj == nil {
		return apperrors.ErrMissingObject
	}

	followers := follow.Actors()
	if len(followers) == 0 {
		return apperrors.ErrMissingActor
	}

	ourActorIRI, err := actx.Store.ActorForInbox(ctx, actx.S2S.InboxIRI)
	if err != nil {
		return fmt.Errorf("get actor for inbox [%s]: %w", actx.S2S.InboxIRI, err)
	}

	followed := false

	for _, id := range obj.IDs() {
		if id.String() == ourActorIRI.String() {
			followed = true

			break
		}
	}

	if !followed {
		return nil
	}

	switch policy {
	case spi.OnFollowAutoAccept:
		return h.acceptFollow(ctx, actx, follow, ourActorIRI, followers)
	case spi.OnFollowAutoReject:
		return h.rejectFollow(ctx, actx, follow, ourActorIRI, followers)
	default:
		return nil
	}
}

func (h *Inbox) acceptFollow(ctx context.Context, actx *spi.Context, follow *vocab.ActivityType,
	ourActorIRI *url.URL, followers []*url.URL) error {
	accept := vocab.NewAcceptActivity(
		vocab.NewObjectProperty(vocab.WithActivity(follow)),
		vocab.WithActor(ourActorIRI),
		vocab.WithTo(followers...),
	)

	// Every actor of the Follow gets the reply.
	for _, follower := range followers {
		if err := h.deliver(ctx, actx, accept, follower); err != nil {
			return fmt.Errorf("deliver Accept to %s: %w", follower, err)
		}
	}

	followersIRI, err := actorCollectionIRI(ctx, actx.Store, ourActorIRI,
		func(actor *vocab.ActorType) *url.URL { return actor.Followers() }, "followers")
	if err != nil {
		return err
	}

	if err := actx.Store.UpdateCollection(ctx, followersIRI, followers, nil); err != nil {
		return fmt.Errorf("add followers to collection [%s]: %w", followersIRI, err)
	}

	logger.Debug("Accepted Follow request.", logfields.WithCollectionIRI(followersIRI),
		logfields.WithTotal(len(followers)))

	return nil
}

func (h *Inbox) rejectFollow(ctx context.Context, actx *spi.Context, follow *vocab.ActivityType,
	ourActorIRI *url.URL, followers []*url.URL) error {
	reject := vocab.NewRejectActivity(
		vocab.NewObjectProperty(vocab.WithActivity(follow)),
		vocab.WithActor(ourActorIRI),
		vocab.WithTo(followers...),
	)

	for _, follower := range followers {
		if err := h.deliver(ctx, actx, reject, follower); err != nil {
			return fmt.Errorf("deliver Reject to %s: %w", follower, err)
		}
	}

	logger.Debug("Rejected Follow request.", logfields.WithTotal(len(followers)))

	return nil
}

// handleAccept records the accepting actors in our actor's following
// collection, provided the Accept references one of our outstanding Follows
// and every accepting actor was an object of it.
func (h *Inbox) handleAccept(ctx context.Context, actx *spi.Context, accept *vocab.ActivityType) error {
	obj := accept.Object()
	if obj == nil {
		return apperrors.ErrMissingObject
	}

	follow, err := h.acceptedFollow(ctx, actx, obj)
	if err != nil || follow == nil {
		return err
	}

	ourActorIRI, err := actx.Store.ActorForInbox(ctx, actx.S2S.InboxIRI)
	if err != nil {
		return fmt.Errorf("get actor for inbox [%s]: %w", actx.S2S.InboxIRI, err)
	}

	ours := false

	for _, actorIRI := range follow.Actors() {
		if actorIRI.String() == ourActorIRI.String() {
			ours = true

			break
		}
	}

	if !ours {
		logger.Debug("Accept does not reference a Follow by our actor. Ignoring.",
			logfields.WithActivityID(accept.ID()))

		return nil
	}

	followObjects := make(map[string]bool)

	if followObj := follow.Object(); followObj != nil {
		for _, id := range followObj.IDs() {
			followObjects[id.String()] = true
		}
	}

	acceptingActors := accept.Actors()

	for _, actorIRI := range acceptingActors {
		if !followObjects[actorIRI.String()] {
			return fmt.Errorf("actor [%s] of Accept was not an object of the original Follow", actorIRI)
		}
	}

	followingIRI, err := actorCollectionIRI(ctx, actx.Store, ourActorIRI,
		func(actor *vocab.ActorType) *url.URL { return actor.Following() }, "following")
	if err != nil {
		return err
	}

	if err := actx.Store.UpdateCollection(ctx, followingIRI, acceptingActors, nil); err != nil {
		return fmt.Errorf("add to following collection [%s]: %w", followingIRI, err)
	}

	return nil
}

// acceptedFollow returns the Follow referenced by the Accept, either
// embedded or loaded from the store. A nil return with no error means the
// reference could not be resolved to a Follow.
func (h *Inbox) acceptedFollow(ctx context.Context, actx *spi.Context,
	obj *vocab.ObjectProperty) (*vocab.ActivityType, error) {
	if follow := obj.Activity(); follow != nil {
		if !follow.Type().Is(vocab.TypeFollow) {
			return nil, nil
		}

		return follow, nil
	}

	iri := obj.IRI()
	if iri == nil {
		return nil, nil
	}

	follow, err := actx.Store.GetActivity(ctx, iri)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Debug("Accepted activity not found in store. Ignoring.", logfields.WithActivityID(iri))

			return nil, nil
		}

		return nil, fmt.Errorf("get accepted activity [%s]: %w", iri, err)
	}

	if !follow.Type().Is(vocab.TypeFollow) {
		return nil, nil
	}

	return follow, nil
}

func (h *Inbox) handleAdd(ctx context.Context, actx *spi.Context, add *vocab.ActivityType) error {
	return updateTargetCollection(ctx, actx, add, true)
}

func (h *Inbox) handleRemove(ctx context.Context, actx *spi.Context, remove *vocab.ActivityType) error {
	return updateTargetCollection(ctx, actx, remove, false)
}

// handleLike prepends the Like's id to the likes collection of each owned
// object.
func (h *Inbox) handleLike(ctx context.Context, actx *spi.Context, like *vocab.ActivityType) error {
	return h.updateObjectCollection(ctx, actx, like, "likes")
}

// handleAnnounce prepends the Announce's id to the shares collection of each
// owned object.
func (h *Inbox) handleAnnounce(ctx context.Context, actx *spi.Context, announce *vocab.ActivityType) error {
	return h.updateObjectCollection(ctx, actx, announce, "shares")
}

func (h *Inbox) updateObjectCollection(ctx context.Context, actx *spi.Context,
	activity *vocab.ActivityType, property string) error {
	obj := activity.Object()
	if obj == nil {
		return apperrors.ErrMissingObject
	}

	activityID := activity.ID().URL()
	if activityID == nil {
		return apperrors.ErrMissingID
	}

	for _, objIRI := range obj.IDs() {
		owns, err := actx.Store.Owns(ctx, objIRI)
		if err != nil {
			return fmt.Errorf("check ownership of object [%s]: %w", objIRI, err)
		}

		if !owns {
			continue
		}

		collIRI, err := objectCollectionIRI(ctx, actx.Store, objIRI, property)
		if err != nil {
			return err
		}

		if err := actx.Store.UpdateCollection(ctx, collIRI, []*url.URL{activityID}, nil); err != nil {
			return fmt.Errorf("update %s collection [%s]: %w", property, collIRI, err)
		}
	}

	return nil
}

// handleUndo requires that the actors of the Undo cover the actors of every
// referenced activity being undone.
func (h *Inbox) handleUndo(ctx context.Context, actx *spi.Context, undo *vocab.ActivityType) error {
	return verifyUndoActors(ctx, actx, undo, func(ctx context.Context, iri *url.URL) (*vocab.ActivityType, error) {
		activity, err := actx.Store.GetActivity(ctx, iri)
		if err == nil {
			return activity, nil
		}

		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}

		t, err := actx.Transport.NewTransport(actx.S2S.InboxIRI, actx.AppAgent)
		if err != nil {
			return nil, fmt.Errorf("new transport for inbox [%s]: %w", actx.S2S.InboxIRI, err)
		}

		return dereferenceActivity(ctx, t, iri)
	})
}
