/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vocab

import (
	"net/url"
)

// ActivityType defines an 'activity'.
type ActivityType struct {
	*ObjectType

	activity *activityType
}

type activityType struct {
	Actor  *ObjectProperty `json:"actor,omitempty"`
	Object *ObjectProperty `json:"object,omitempty"`
	Target *ObjectProperty `json:"target,omitempty"`
	Result *ObjectProperty `json:"result,omitempty"`
}

// Actor returns the IRI of the first actor of the activity.
func (t *ActivityType) Actor() *url.URL {
	if t == nil || t.activity.Actor == nil {
		return nil
	}

	ids := t.activity.Actor.IDs()
	if len(ids) == 0 {
		return nil
	}

	return ids[0]
}

// Actors returns the IRIs of all actors of the activity.
func (t *ActivityType) Actors() []*url.URL {
	if t == nil || t.activity.Actor == nil {
		return nil
	}

	return t.activity.Actor.IDs()
}

// SetActor sets the 'actor' property to the given IRIs.
func (t *ActivityType) SetActor(iris ...*url.URL) {
	t.activity.Actor = NewObjectProperty(WithIRIs(iris...))
}

// Object returns the object of the activity.
func (t *ActivityType) Object() *ObjectProperty {
	if t == nil {
		return nil
	}

	return t.activity.Object
}

// SetObject sets the 'object' property.
func (t *ActivityType) SetObject(obj *ObjectProperty) {
	t.activity.Object = obj
}

// Target returns the target of the activity.
func (t *ActivityType) Target() *ObjectProperty {
	if t == nil {
		return nil
	}

	return t.activity.Target
}

// Result returns the result of the activity.
func (t *ActivityType) Result() *ObjectProperty {
	if t == nil {
		return nil
	}

	return t.activity.Result
}

// MarshalJSON marshals the activity.
func (t *ActivityType) MarshalJSON() ([]byte, error) {
	return MarshalJSON(t.ObjectType, t.activity)
}

// UnmarshalJSON unmarshals the activity.
func (t *ActivityType) UnmarshalJSON(bytes []byte) error {
	t.ObjectType = NewObject()
	t.activity = &activityType{}

	return UnmarshalJSON(bytes, t.ObjectType, t.activity)
}

// NewActivity returns a new activity of the given type.
func NewActivity(aType Type, opts ...Opt) *ActivityType {
	options := NewOptions(opts...)

	return newActivity(aType, options, NewObjectProperty(
		WithIRIs(options.Iris...),
		WithObjects(options.Objects...),
		WithActivities(options.Activities...),
	))
}

// NewCreateActivity returns a new 'Create' activity.
func NewCreateActivity(obj *ObjectProperty, opts ...Opt) *ActivityType {
	return newActivity(TypeCreate, NewOptions(opts...), obj)
}

// NewUpdateActivity returns a new 'Update' activity.
func NewUpdateActivity(obj *ObjectProperty, opts ...Opt) *ActivityType {
	return newActivity(TypeUpdate, NewOptions(opts...), obj)
}

// NewDeleteActivity returns a new 'Delete' activity.
func NewDeleteActivity(obj *ObjectProperty, opts ...Opt) *ActivityType {
	return newActivity(TypeDelete, NewOptions(opts...), obj)
}

// NewFollowActivity returns a new 'Follow' activity.
func NewFollowActivity(obj *ObjectProperty, opts ...Opt) *ActivityType {
	return newActivity(TypeFollow, NewOptions(opts...), obj)
}

// NewAcceptActivity returns a new 'Accept' activity.
func NewAcceptActivity(obj *ObjectProperty, opts ...Opt) *ActivityType {
	return newActivity(TypeAccept, NewOptions(opts...), obj)
}

// NewRejectActivity returns a new 'Reject' activity.
func NewRejectActivity(obj *ObjectProperty, opts ...Opt) *ActivityType {
	return newActivity(TypeReject, NewOptions(opts...), obj)
}

// NewAddActivity returns a new 'Add' activity.
func NewAddActivity(obj *ObjectProperty, opts ...Opt) *ActivityType {
	return newActivity(TypeAdd, NewOptions(opts...), obj)
}

// NewRemoveActivity returns a new 'Remove' activity.
func NewRemoveActivity(obj *ObjectProperty, opts ...Opt) *ActivityType {
	return newActivity(TypeRemove, NewOptions(opts...), obj)
}

// NewLikeActivity returns a new 'Like' activity.
func NewLikeActivity(obj *ObjectProperty, opts ...Opt) *ActivityType {
	return newActivity(TypeLike, NewOptions(opts...), obj)
}

// NewAnnounceActivity returns a new 'Announce' activity.
func NewAnnounceActivity(obj *ObjectProperty, opts ...Opt) *ActivityType {
	return newActivity(TypeAnnounce, NewOptions(opts...), obj)
}

// NewUndoActivity returns a new 'Undo' activity.
func NewUndoActivity(obj *ObjectProperty, opts ...Opt) *ActivityType {
	return newActivity(TypeUndo, NewOptions(opts...), obj)
}

// NewBlockActivity returns a new 'Block' activity.
func NewBlockActivity(obj *ObjectProperty, opts ...Opt) *ActivityType {
	return newActivity(TypeBlock, NewOptions(opts...), obj)
}

func newActivity(aType Type, options *Options, obj *ObjectProperty) *ActivityType {
	var actor *ObjectProperty

	if len(options.Actor) > 0 {
		actor = NewObjectProperty(WithIRIs(options.Actor...))
	}

	return &ActivityType{
		ObjectType: NewObject(
			WithContext(getContexts(options, ContextActivityStreams)...),
			WithID(options.ID),
			WithType(aType),
			WithTo(options.To...),
			WithBto(options.Bto...),
			WithCC(options.CC...),
			WithBCC(options.BCC...),
			WithAudience(options.Audience...),
			WithInReplyTo(options.InReplyTo),
			WithTag(options.Tag),
			WithPublishedTime(options.Published),
		),
		activity: &activityType{
			Actor:  actor,
			Object: obj,
			Target: options.Target,
			Result: options.Result,
		},
	}
}
