/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package addressing provides utilities for working with the addressing
// properties of ActivityStreams values: recipient extraction and
// deduplication, the public pseudo-IRI, hidden (bto/bcc) recipients,
// recipient normalization between an activity and its wrapped objects,
// and tombstone construction.
package addressing

import (
	"fmt"
	"net/url"
	"time"

	fedierrors "github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/vocab"
)

// The public collection may be spelled as the full IRI or in either of the
// JSON-LD compliant short forms.
const (
	publicJSONLD   = "Public"
	publicJSONLDAS = "as:Public"
)

// IsPublic returns true if the given IRI refers to the public pseudo-collection,
// in any of its three spellings.
func IsPublic(iri *url.URL) bool {
	if iri == nil {
		return false
	}

	s := iri.String()

	return s == vocab.PublicIRI || s == publicJSONLD || s == publicJSONLDAS
}

// Recipients returns the to, bto, cc, bcc, and audience recipients of the
// given value, in that order.
func Recipients(obj *vocab.ObjectType) []*url.URL {
	var recipients []*url.URL

	recipients = append(recipients, obj.To()...)
	recipients = append(recipients, obj.Bto()...)
	recipients = append(recipients, obj.CC()...)
	recipients = append(recipients, obj.BCC()...)
	recipients = append(recipients, obj.Audience()...)

	return recipients
}

// HiddenRecipients returns the bto and bcc recipients of the given value.
// Hidden recipients are delivered to directly and never folded into a
// shared inbox.
func HiddenRecipients(obj *vocab.ObjectType) []*url.URL {
	var recipients []*url.URL

	recipients = append(recipients, obj.Bto()...)
	recipients = append(recipients, obj.BCC()...)

	return recipients
}

// ExcludePublic returns the given IRIs with the public pseudo-IRI removed,
// along with a flag indicating whether it was present. The public collection
// is never delivered to.
func ExcludePublic(iris []*url.URL) ([]*url.URL, bool) {
	var out []*url.URL

	public := false

	for _, iri := range iris {
		if IsPublic(iri) {
			public = true

			continue
		}

		out = append(out, iri)
	}

	return out, public
}

// DedupeIRIs deduplicates the given IRIs, preserving first-occurrence order.
// The ignore list is applied to the final list.
func DedupeIRIs(iris, ignored []*url.URL) []*url.URL {
	ignoredSet := make(map[string]bool, len(ignored))

	for _, iri := range ignored {
		ignoredSet[iri.String()] = true
	}

	var out []*url.URL

	seen := make(map[string]bool, len(iris))

	for _, iri := range iris {
		s := iri.String()

		if !ignoredSet[s] && !seen[s] {
			out = append(out, iri)
			seen[s] = true
		}
	}

	return out
}

// DedupeOrderedItems deduplicates the items of the given ordered collection
// by ID, preserving first-occurrence order. An item that has neither an ID
// nor is a simple IRI is an error.
func DedupeOrderedItems(coll *vocab.OrderedCollectionType) error {
	items := coll.Items()
	if len(items) == 0 {
		return nil
	}

	var deduped []*vocab.ObjectProperty

	seen := make(map[string]bool, len(items))

	for i, item := range items {
		ids := item.IDs()
		if len(ids) == 0 {
			return fmt.Errorf("item %d in ordered collection has no ID: %w", i, fedierrors.ErrMissingID)
		}

		if seen[ids[0].String()] {
			continue
		}

		seen[ids[0].String()] = true

		deduped = append(deduped, item)
	}

	coll.SetItems(deduped)

	return nil
}

// WrapInCreate wraps the given object in a 'Create' activity attributed to
// the given actor, copying over the object's to, bto, cc, bcc, and audience
// recipients as well as its published time.
func WrapInCreate(obj *vocab.ObjectType, actorIRI *url.URL) *vocab.ActivityType {
	return vocab.NewCreateActivity(
		vocab.NewObjectProperty(vocab.WithObject(obj)),
		vocab.WithActor(actorIRI),
		vocab.WithTo(obj.To()...),
		vocab.WithBto(obj.Bto()...),
		vocab.WithCC(obj.CC()...),
		vocab.WithBCC(obj.BCC()...),
		vocab.WithAudience(obj.Audience()...),
		vocab.WithPublishedTime(obj.Published()),
	)
}

// recipientAccessor reads and replaces one addressing property on a value.
type recipientAccessor struct {
	get func(*vocab.ObjectType) []*url.URL
	set func(*vocab.ObjectType, ...*url.URL)
}

func recipientAccessors() []recipientAccessor {
	return []recipientAccessor{
		{get: (*vocab.ObjectType).To, set: (*vocab.ObjectType).SetTo},
		{get: (*vocab.ObjectType).Bto, set: (*vocab.ObjectType).SetBto},
		{get: (*vocab.ObjectType).CC, set: (*vocab.ObjectType).SetCC},
		{get: (*vocab.ObjectType).BCC, set: (*vocab.ObjectType).SetBCC},
		{get: (*vocab.ObjectType).Audience, set: (*vocab.ObjectType).SetAudience},
	}
}

// NormalizeRecipients ensures that the activity and its wrapped objects have
// the same to, bto, cc, bcc, and audience recipients: the activity's
// recipients are copied to each object and each object's recipients are
// copied to the activity, but never between sibling objects.
func NormalizeRecipients(activity *vocab.ActivityType) {
	objects := EmbeddedObjects(activity.Object())
	if len(objects) == 0 {
		return
	}

	for _, accessor := range recipientAccessors() {
		activityRecipients := accessor.get(activity.ObjectType)
		activitySet := iriSet(activityRecipients)

		// The recipients each object had before any were copied over from
		// the activity. Only these flow back up, so siblings never merge.
		originals := make([][]*url.URL, len(objects))

		for i, obj := range objects {
			originals[i] = accessor.get(obj)
		}

		for i, obj := range objects {
			merged := originals[i]
			objectSet := iriSet(originals[i])

			for _, iri := range activityRecipients {
				if _, ok := objectSet[iri.String()]; !ok {
					merged = append(merged, iri)
					objectSet[iri.String()] = iri
				}
			}

			accessor.set(obj, merged...)
		}

		merged := activityRecipients

		for i := range objects {
			for _, iri := range originals[i] {
				if _, ok := activitySet[iri.String()]; !ok {
					merged = append(merged, iri)
					activitySet[iri.String()] = iri
				}
			}
		}

		accessor.set(activity.ObjectType, merged...)
	}
}

// StripHiddenRecipients removes the bto and bcc properties from the given
// activity and, recursively, from all of its embedded objects.
func StripHiddenRecipients(activity *vocab.ActivityType) {
	clearHiddenRecipients(activity.ObjectType)

	for _, v := range activity.Object().Values() {
		switch {
		case v.Activity() != nil:
			StripHiddenRecipients(v.Activity())
		case v.Object() != nil:
			clearHiddenRecipients(v.Object())
		}
	}
}

func clearHiddenRecipients(obj *vocab.ObjectType) {
	obj.SetBto()
	obj.SetBCC()
}

// ToTombstone returns a 'Tombstone' that replaces the given object, carrying
// the object's ID and former type and preserving its published and updated
// times. The deleted time is set to the given time.
func ToTombstone(obj *vocab.ObjectType, deleted time.Time) *vocab.TombstoneType {
	return vocab.NewTombstone(
		vocab.WithID(obj.ID().URL()),
		vocab.WithFormerType(obj.Type().Types()...),
		vocab.WithPublishedTime(obj.Published()),
		vocab.WithUpdatedTime(obj.Updated()),
		vocab.WithDeletedTime(&deleted),
	)
}

// VerifySameOrigin ensures that the host of every object ID on the activity
// matches the host of the activity's own ID.
func VerifySameOrigin(activity *vocab.ActivityType) error {
	id := activity.ID().URL()
	if id == nil {
		return fedierrors.ErrMissingID
	}

	for _, objID := range activity.Object().IDs() {
		if objID.Host != id.Host {
			return fmt.Errorf("object [%s] is not in the origin of activity [%s]: %w",
				objID, id, fedierrors.ErrWrongOrigin)
		}
	}

	return nil
}

// Inboxes extracts the inbox IRI from each of the given actors. An actor
// without an inbox is an error.
func Inboxes(actors []*vocab.ActorType) ([]*url.URL, error) {
	inboxes := make([]*url.URL, len(actors))

	for i, actor := range actors {
		if actor.Inbox() == nil {
			return nil, fmt.Errorf("actor [%s] has no inbox", actor.ID())
		}

		inboxes[i] = actor.Inbox()
	}

	return inboxes, nil
}

// EmbeddedObjects returns the embedded values of the given property. An
// embedded activity contributes its object header. IRI-only values are
// skipped.
func EmbeddedObjects(prop *vocab.ObjectProperty) []*vocab.ObjectType {
	var objects []*vocab.ObjectType

	for _, v := range prop.Values() {
		switch {
		case v.Activity() != nil:
			objects = append(objects, v.Activity().ObjectType)
		case v.Object() != nil:
			objects = append(objects, v.Object())
		}
	}

	return objects
}

// ForwardingValues returns the values of the inReplyTo, tag, object, and
// target properties of the given value, partitioned into embedded values
// and IRI-only references. These are the properties traversed when deciding
// whether an incoming activity concerns an owned object.
func ForwardingValues(value interface{}) ([]*vocab.ObjectPropertyValue, []*url.URL) {
	var props []*vocab.ObjectProperty

	if p, ok := value.(interface{ InReplyTo() *vocab.ObjectProperty }); ok {
		props = append(props, p.InReplyTo())
	}

	if p, ok := value.(interface{ Tag() *vocab.ObjectProperty }); ok {
		props = append(props, p.Tag())
	}

	if p, ok := value.(interface{ Object() *vocab.ObjectProperty }); ok {
		props = append(props, p.Object())
	}

	if p, ok := value.(interface{ Target() *vocab.ObjectProperty }); ok {
		props = append(props, p.Target())
	}

	var (
		embedded []*vocab.ObjectPropertyValue
		iris     []*url.URL
	)

	for _, prop := range props {
		for _, v := range prop.Values() {
			if iri := v.IRI(); iri != nil {
				iris = append(iris, iri)
			} else if v.Object() != nil || v.Activity() != nil {
				embedded = append(embedded, v)
			}
		}
	}

	return embedded, iris
}

func iriSet(iris []*url.URL) map[string]*url.URL {
	set := make(map[string]*url.URL, len(iris))

	for _, iri := range iris {
		set[iri.String()] = iri
	}

	return set
}
