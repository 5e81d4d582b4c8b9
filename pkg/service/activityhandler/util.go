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

	apperrors "github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/service/spi"
	store "github.com/fedikit/fedikit/pkg/store/spi"
	"github.com/fedikit/fedikit/pkg/store/storeutil"
	"github.com/fedikit/fedikit/pkg/vocab"
)

// createOrUpdate persists the given document, updating it if it already
// exists.
func createOrUpdate(ctx context.Context, s store.Store, doc vocab.Document) error {
	id, err := storeutil.DocumentID(doc)
	if err != nil {
		return err
	}

	exists, err := s.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check existence of [%s]: %w", id, err)
	}

	if exists {
		return s.Update(ctx, doc)
	}

	return s.Create(ctx, doc)
}

// actorCollectionIRI returns the IRI of one of an actor's named collections
// (followers, following, liked). The IRI advertised in the stored actor
// document is preferred; absent that, the conventional path under the actor
// IRI is used.
func actorCollectionIRI(ctx context.Context, s store.Store, actorIRI *url.URL,
	collection func(*vocab.ActorType) *url.URL, path string) (*url.URL, error) {
	actor, err := s.GetActor(ctx, actorIRI)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("get actor [%s]: %w", actorIRI, err)
	}

	if actor != nil {
		if iri := collection(actor); iri != nil {
			return iri, nil
		}
	}

	return actorIRI.JoinPath(path), nil
}

// objectCollectionIRI returns the IRI of one of an object's activity
// collections (likes, shares). The IRI advertised in the stored object is
// preferred; absent that, the conventional path under the object IRI.
func objectCollectionIRI(ctx context.Context, s store.Store, objIRI *url.URL, property string) (*url.URL, error) {
	doc, err := s.Get(ctx, objIRI)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return objIRI.JoinPath(property), nil
		}

		return nil, fmt.Errorf("get object [%s]: %w", objIRI, err)
	}

	if iriStr, ok := doc[property].(string); ok && iriStr != "" {
		iri, err := url.Parse(iriStr)
		if err != nil {
			return nil, fmt.Errorf("parse %s IRI of object [%s]: %w", property, objIRI, err)
		}

		return iri, nil
	}

	return objIRI.JoinPath(property), nil
}

// isCollection reports whether the stored value at the given IRI is a
// Collection or OrderedCollection. An IRI with no stored value is treated as
// a collection, since named collections exist implicitly until first
// written.
func isCollection(ctx context.Context, s store.Store, iri *url.URL) (bool, error) {
	doc, err := s.Get(ctx, iri)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return true, nil
		}

		return false, fmt.Errorf("get [%s]: %w", iri, err)
	}

	obj := &vocab.ObjectType{}
	if err := vocab.UnmarshalFromDoc(doc, obj); err != nil {
		return false, fmt.Errorf("unmarshal object [%s]: %w", iri, err)
	}

	return obj.Type().IsAny(vocab.TypeCollection, vocab.TypeOrderedCollection), nil
}

// dereferenceActivity fetches an activity through the transport.
func dereferenceActivity(ctx context.Context, t spi.Transport, iri *url.URL) (*vocab.ActivityType, error) {
	payload, err := t.Dereference(ctx, iri)
	if err != nil {
		return nil, fmt.Errorf("dereference activity [%s]: %w", iri, err)
	}

	activity := &vocab.ActivityType{}
	if err := vocab.UnmarshalJSON(payload, activity); err != nil {
		return nil, fmt.Errorf("unmarshal activity [%s]: %w", iri, err)
	}

	return activity, nil
}

// updateTargetCollection applies an Add or Remove: if the target is an owned
// collection, the object ids are added to (removed from) it. A target that
// is not owned or not a collection is a no-op.
func updateTargetCollection(ctx context.Context, actx *spi.Context,
	activity *vocab.ActivityType, add bool) error {
	obj := activity.Object()
	if obj == nil {
		return apperrors.ErrMissingObject
	}

	target := activity.Target()
	if target == nil || target.IRI() == nil && len(target.IDs()) == 0 {
		return apperrors.ErrMissingTarget
	}

	ids := obj.IDs()
	if len(ids) == 0 {
		return apperrors.ErrMissingObject
	}

	for _, targetIRI := range target.IDs() {
		owns, err := actx.Store.Owns(ctx, targetIRI)
		if err != nil {
			return fmt.Errorf("check ownership of target [%s]: %w", targetIRI, err)
		}

		if !owns {
			continue
		}

		isColl, err := isCollection(ctx, actx.Store, targetIRI)
		if err != nil {
			return err
		}

		if !isColl {
			continue
		}

		var addIDs, removeIDs []*url.URL

		if add {
			addIDs = ids
		} else {
			removeIDs = ids
		}

		if err := actx.Store.UpdateCollection(ctx, targetIRI, addIDs, removeIDs); err != nil {
			return fmt.Errorf("update collection [%s]: %w", targetIRI, err)
		}
	}

	return nil
}

// verifyUndoActors requires that the actors of an Undo cover the actors of
// every referenced activity being undone. Referenced activities are resolved
// with the given function.
func verifyUndoActors(ctx context.Context, actx *spi.Context, undo *vocab.ActivityType,
	resolve func(ctx context.Context, iri *url.URL) (*vocab.ActivityType, error)) error {
	obj := undo.Object()
	if obj == nil {
		return apperrors.ErrMissingObject
	}

	undoActors := make(map[string]bool)

	for _, actorIRI := range undo.Actors() {
		undoActors[actorIRI.String()] = true
	}

	if len(undoActors) == 0 {
		return apperrors.ErrMissingActor
	}

	for _, value := range obj.Values() {
		undone := value.Activity()

		if undone == nil {
			iri := value.IRI()
			if iri == nil {
				continue
			}

			var err error

			undone, err = resolve(ctx, iri)
			if err != nil {
				return fmt.Errorf("resolve undone activity [%s]: %w", iri, err)
			}
		}

		for _, actorIRI := range undone.Actors() {
			if !undoActors[actorIRI.String()] {
				return fmt.Errorf("actor [%s] of undone activity is not an actor of the Undo", actorIRI)
			}
		}
	}

	return nil
}
