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
	"time"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/addressing"
	apperrors "github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/service/spi"
	store "github.com/fedikit/fedikit/pkg/store/spi"
	"github.com/fedikit/fedikit/pkg/vocab"
)

// Outbox applies the client-to-server side effects prescribed for each
// activity type and then invokes the application's callback for that type.
// Side effects may veto federation of the activity by clearing the
// Deliverable flag on the context's C2S data.
type Outbox struct {
	*handler
}

// NewOutbox returns a new outbox (client-to-server) activity handler.
func NewOutbox(cfg *Config) *Outbox {
	return &Outbox{
		handler: newHandler(cfg),
	}
}

// HandleActivity runs the built-in client-to-server side effects for the
// given activity and invokes the application callback for its type.
func (h *Outbox) HandleActivity(ctx context.Context, actx *spi.Context, _ *url.URL,
	activity *vocab.ActivityType) error {
	if actx.C2S == nil {
		return errors.New("no C2S data in actor context")
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
	case typeProp.Is(vocab.TypeAdd):
		err = updateTargetCollection(ctx, actx, activity, true)
	case typeProp.Is(vocab.TypeRemove):
		err = updateTargetCollection(ctx, actx, activity, false)
	case typeProp.Is(vocab.TypeLike):
		err = h.handleLike(ctx, actx, activity)
	case typeProp.Is(vocab.TypeUndo):
		err = h.handleUndo(ctx, actx, activity)
	case typeProp.Is(vocab.TypeBlock):
		// A Block must never federate.
		actx.C2S.Deliverable = false
	default:
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

// callbacks returns the C2S callback table: the table configured on the
// context takes precedence over the one supplied by the social delegate.
func (h *Outbox) callbacks(actx *spi.Context) (*spi.Callbacks, error) {
	if actx.SocialCallbacks != nil {
		return actx.SocialCallbacks, nil
	}

	if actx.Social != nil {
		return actx.Social.SocialCallbacks(actx)
	}

	return nil, nil
}

// handleCreate unions the activity's actors into each wrapped object's
// attributedTo (and the reverse), normalizes the recipients between the
// activity and its objects, and persists every wrapped object.
func (h *Outbox) handleCreate(ctx context.Context, actx *spi.Context, create *vocab.ActivityType) error {
	obj := create.Object()
	if obj == nil {
		return apperrors.ErrMissingObject
	}

	actors := create.Actors()
	if len(actors) == 0 {
		return apperrors.ErrMissingActor
	}

	objects := addressing.EmbeddedObjects(obj)

	for _, wrapped := range objects {
		unionAttributedTo(create, wrapped)
	}

	addressing.NormalizeRecipients(create)

	for _, wrapped := range objects {
		doc, err := vocab.MarshalToDoc(wrapped)
		if err != nil {
			return fmt.Errorf("marshal object of Create activity: %w", err)
		}

		if err := createOrUpdate(ctx, actx.Store, doc); err != nil {
			return fmt.Errorf("store object of Create activity: %w", err)
		}
	}

	return nil
}

// unionAttributedTo adds the activity's actors to the object's attributedTo
// and the object's attributedTo to the activity's actors, without
// duplicates.
func unionAttributedTo(create *vocab.ActivityType, obj *vocab.ObjectType) {
	obj.SetAttributedTo(addressing.DedupeIRIs(append(obj.AttributedTo(), create.Actors()...), nil)...)
	create.SetActor(addressing.DedupeIRIs(append(create.Actors(), obj.AttributedTo()...), nil)...)
}

// handleUpdate merges each wrapped object over its stored value. A key whose
// value is literally null in the raw posted JSON is removed from the stored
// object; that distinction is lost in the typed value, which is why the raw
// document rides along on the context.
func (h *Outbox) handleUpdate(ctx context.Context, actx *spi.Context, update *vocab.ActivityType) error {
	obj := update.Object()
	if obj == nil {
		return apperrors.ErrMissingObject
	}

	rawByID, rawList := rawObjects(actx.C2S.RawActivity)

	for _, wrapped := range addressing.EmbeddedObjects(obj) {
		id := wrapped.ID().URL()
		if id == nil {
			return apperrors.ErrMissingID
		}

		newDoc, err := vocab.MarshalToDoc(wrapped)
		if err != nil {
			return fmt.Errorf("marshal object of Update activity: %w", err)
		}

		stored, err := actx.Store.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get stored object [%s]: %w", id, err)
		}

		merged := vocab.Document{}
		merged.MergeWith(newDoc)
		merged.MergeWith(stored)

		raw, ok := rawByID[id.String()]
		if !ok && len(rawList) == 1 {
			raw = rawList[0]
		}

		for key, value := range raw {
			if value == nil {
				delete(merged, key)
			}
		}

		if err := actx.Store.Update(ctx, merged); err != nil {
			return fmt.Errorf("update object [%s]: %w", id, err)
		}
	}

	return nil
}

// handleDelete replaces each referenced object with a Tombstone carrying the
// same id.
func (h *Outbox) handleDelete(ctx context.Context, actx *spi.Context, del *vocab.ActivityType) error {
	obj := del.Object()
	if obj == nil {
		return apperrors.ErrMissingObject
	}

	for _, id := range obj.IDs() {
		stored, err := actx.Store.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get stored object [%s]: %w", id, err)
		}

		storedObj := &vocab.ObjectType{}
		if err := vocab.UnmarshalFromDoc(stored, storedObj); err != nil {
			return fmt.Errorf("unmarshal stored object [%s]: %w", id, err)
		}

		tombstone := addressing.ToTombstone(storedObj, time.Now())

		doc, err := vocab.MarshalToDoc(tombstone)
		if err != nil {
			return fmt.Errorf("marshal tombstone for [%s]: %w", id, err)
		}

		if err := actx.Store.Update(ctx, doc); err != nil {
			return fmt.Errorf("replace object [%s] with tombstone: %w", id, err)
		}
	}

	return nil
}

// handleLike appends the liked object ids to the actor's liked collection.
func (h *Outbox) handleLike(ctx context.Context, actx *spi.Context, like *vocab.ActivityType) error {
	obj := like.Object()
	if obj == nil {
		return apperrors.ErrMissingObject
	}

	ids := obj.IDs()
	if len(ids) == 0 {
		return apperrors.ErrMissingObject
	}

	ourActorIRI, err := actx.Store.ActorForOutbox(ctx, actx.C2S.OutboxIRI)
	if err != nil {
		return fmt.Errorf("get actor for outbox [%s]: %w", actx.C2S.OutboxIRI, err)
	}

	likedIRI, err := actorCollectionIRI(ctx, actx.Store, ourActorIRI,
		func(actor *vocab.ActorType) *url.URL { return actor.Liked() }, "liked")
	if err != nil {
		return err
	}

	if err := actx.Store.UpdateCollection(ctx, likedIRI, ids, nil); err != nil {
		return fmt.Errorf("add to liked collection [%s]: %w", likedIRI, err)
	}

	return nil
}

// handleUndo requires that the actors of the Undo cover the actors of every
// referenced activity being undone.
func (h *Outbox) handleUndo(ctx context.Context, actx *spi.Context, undo *vocab.ActivityType) error {
	return verifyUndoActors(ctx, actx, undo, func(ctx context.Context, iri *url.URL) (*vocab.ActivityType, error) {
		activity, err := actx.Store.GetActivity(ctx, iri)
		if err == nil {
			return activity, nil
		}

		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}

		t, err := actx.Transport.NewTransport(actx.C2S.OutboxIRI, actx.AppAgent)
		if err != nil {
			return nil, fmt.Errorf("new transport for outbox [%s]: %w", actx.C2S.OutboxIRI, err)
		}

		return dereferenceActivity(ctx, t, iri)
	})
}

// rawObjects extracts the object entries of a raw activity document, indexed
// by id where one is present.
func rawObjects(raw vocab.Document) (map[string]vocab.Document, []vocab.Document) {
	if raw == nil {
		return nil, nil
	}

	value, ok := raw["object"]
	if !ok {
		return nil, nil
	}

	var entries []interface{}

	switch v := value.(type) {
	case []interface{}:
		entries = v
	default:
		entries = []interface{}{v}
	}

	byID := make(map[string]vocab.Document)

	var list []vocab.Document

	for _, entry := range entries {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}

		doc := vocab.Document(m)

		list = append(list, doc)

		if id, ok := m["id"].(string); ok && id != "" {
			byID[id] = doc
		}
	}

	return byID, list
}
