/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vocab

import (
	"net/url"
	"time"
)

// Options holds all of the options for building an ActivityPub object.
type Options struct {
	Context      []Context
	ID           *url.URL
	Types        []Type
	To           []*url.URL
	Bto          []*url.URL
	CC           []*url.URL
	BCC          []*url.URL
	Audience     []*url.URL
	AttributedTo []*url.URL
	InReplyTo    *ObjectProperty
	Tag          *ObjectProperty
	Published    *time.Time
	Updated      *time.Time
	Deleted      *time.Time
	FormerTypes  []Type

	Actor  []*url.URL
	Target *ObjectProperty
	Result *ObjectProperty

	Current    *url.URL
	First      *url.URL
	Last       *url.URL
	PartOf     *url.URL
	Next       *url.URL
	Prev       *url.URL
	TotalItems int

	PreferredUsername string
	PublicKey         *PublicKeyType
	Owner             *url.URL
	PublicKeyPem      string
	Inbox             *url.URL
	Outbox            *url.URL
	Followers         *url.URL
	Following         *url.URL
	Liked             *url.URL
	SharedInbox       *url.URL

	ObjectPropertyOptions
}

// Opt is an option for an object, activity, etc.
type Opt func(opts *Options)

// NewOptions returns an Options struct which is populated with the provided options.
func NewOptions(opts ...Opt) *Options {
	options := &Options{}

	for _, opt := range opts {
		opt(options)
	}

	return options
}

// getContexts returns the contexts of the given options, using the given
// defaults if none were specified.
func getContexts(options *Options, defaults ...Context) []Context {
	if len(options.Context) > 0 {
		return options.Context
	}

	return defaults
}

// WithContext sets the '@context' property on the object.
func WithContext(context ...Context) Opt {
	return func(opts *Options) {
		opts.Context = context
	}
}

// WithID sets the 'id' property on the object.
func WithID(id *url.URL) Opt {
	return func(opts *Options) {
		opts.ID = id
	}
}

// WithType sets the 'type' property on the object.
func WithType(t ...Type) Opt {
	return func(opts *Options) {
		opts.Types = t
	}
}

// WithTo sets the 'to' property on the object.
func WithTo(to ...*url.URL) Opt {
	return func(opts *Options) {
		opts.To = append(opts.To, to...)
	}
}

// WithBto sets the 'bto' property on the object.
func WithBto(bto ...*url.URL) Opt {
	return func(opts *Options) {
		opts.Bto = append(opts.Bto, bto...)
	}
}

// WithCC sets the 'cc' property on the object.
func WithCC(cc ...*url.URL) Opt {
	return func(opts *Options) {
		opts.CC = append(opts.CC, cc...)
	}
}

// WithBCC sets the 'bcc' property on the object.
func WithBCC(bcc ...*url.URL) Opt {
	return func(opts *Options) {
		opts.BCC = append(opts.BCC, bcc...)
	}
}

// WithAudience sets the 'audience' property on the object.
func WithAudience(audience ...*url.URL) Opt {
	return func(opts *Options) {
		opts.Audience = append(opts.Audience, audience...)
	}
}

// WithAttributedTo sets the 'attributedTo' property on the object.
func WithAttributedTo(iris ...*url.URL) Opt {
	return func(opts *Options) {
		opts.AttributedTo = append(opts.AttributedTo, iris...)
	}
}

// WithInReplyTo sets the 'inReplyTo' property on the object.
func WithInReplyTo(p *ObjectProperty) Opt {
	return func(opts *Options) {
		opts.InReplyTo = p
	}
}

// WithTag sets the 'tag' property on the object.
func WithTag(p *ObjectProperty) Opt {
	return func(opts *Options) {
		opts.Tag = p
	}
}

// WithPublishedTime sets the 'published' property on the object.
func WithPublishedTime(t *time.Time) Opt {
	return func(opts *Options) {
		opts.Published = t
	}
}

// WithUpdatedTime sets the 'updated' property on the object.
func WithUpdatedTime(t *time.Time) Opt {
	return func(opts *Options) {
		opts.Updated = t
	}
}

// WithDeletedTime sets the 'deleted' property on a tombstone.
func WithDeletedTime(t *time.Time) Opt {
	return func(opts *Options) {
		opts.Deleted = t
	}
}

// WithFormerType sets the 'formerType' property on a tombstone.
func WithFormerType(t ...Type) Opt {
	return func(opts *Options) {
		opts.FormerTypes = t
	}
}

// WithActor sets the 'actor' property on the activity.
func WithActor(actor ...*url.URL) Opt {
	return func(opts *Options) {
		opts.Actor = append(opts.Actor, actor...)
	}
}

// WithTarget sets the 'target' property on the activity.
func WithTarget(target *ObjectProperty) Opt {
	return func(opts *Options) {
		opts.Target = target
	}
}

// WithResult sets the 'result' property on the activity.
func WithResult(result *ObjectProperty) Opt {
	return func(opts *Options) {
		opts.Result = result
	}
}

// WithCurrent sets the 'current' property on a collection.
func WithCurrent(iri *url.URL) Opt {
	return func(opts *Options) {
		opts.Current = iri
	}
}

// WithFirst sets the 'first' property on a collection.
func WithFirst(iri *url.URL) Opt {
	return func(opts *Options) {
		opts.First = iri
	}
}

// WithLast sets the 'last' property on a collection.
func WithLast(iri *url.URL) Opt {
	return func(opts *Options) {
		opts.Last = iri
	}
}

// WithPartOf sets the 'partOf' property on a collection page.
func WithPartOf(iri *url.URL) Opt {
	return func(opts *Options) {
		opts.PartOf = iri
	}
}

// WithNext sets the 'next' property on a collection page.
func WithNext(iri *url.URL) Opt {
	return func(opts *Options) {
		opts.Next = iri
	}
}

// WithPrev sets the 'prev' property on a collection page.
func WithPrev(iri *url.URL) Opt {
	return func(opts *Options) {
		opts.Prev = iri
	}
}

// WithTotalItems sets the 'totalItems' property on a collection.
func WithTotalItems(count int) Opt {
	return func(opts *Options) {
		opts.TotalItems = count
	}
}

// WithPreferredUsername sets the 'preferredUsername' property on an actor.
func WithPreferredUsername(name string) Opt {
	return func(opts *Options) {
		opts.PreferredUsername = name
	}
}

// WithPublicKey sets the 'publicKey' property on an actor.
func WithPublicKey(publicKey *PublicKeyType) Opt {
	return func(opts *Options) {
		opts.PublicKey = publicKey
	}
}

// WithOwner sets the 'owner' property on a public key.
func WithOwner(iri *url.URL) Opt {
	return func(opts *Options) {
		opts.Owner = iri
	}
}

// WithPublicKeyPem sets the 'publicKeyPem' property on a public key.
func WithPublicKeyPem(pem string) Opt {
	return func(opts *Options) {
		opts.PublicKeyPem = pem
	}
}

// WithInbox sets the 'inbox' property on an actor.
func WithInbox(iri *url.URL) Opt {
	return func(opts *Options) {
		opts.Inbox = iri
	}
}

// WithOutbox sets the 'outbox' property on an actor.
func WithOutbox(iri *url.URL) Opt {
	return func(opts *Options) {
		opts.Outbox = iri
	}
}

// WithFollowers sets the 'followers' property on an actor.
func WithFollowers(iri *url.URL) Opt {
	return func(opts *Options) {
		opts.Followers = iri
	}
}

// WithFollowing sets the 'following' property on an actor.
func WithFollowing(iri *url.URL) Opt {
	return func(opts *Options) {
		opts.Following = iri
	}
}

// WithLiked sets the 'liked' property on an actor.
func WithLiked(iri *url.URL) Opt {
	return func(opts *Options) {
		opts.Liked = iri
	}
}

// WithSharedInbox sets the 'endpoints.sharedInbox' property on an actor.
func WithSharedInbox(iri *url.URL) Opt {
	return func(opts *Options) {
		opts.SharedInbox = iri
	}
}

// ObjectPropertyOptions holds options for an 'object' property.
type ObjectPropertyOptions struct {
	Iris       []*url.URL
	Objects    []*ObjectType
	Activities []*ActivityType
}

// WithIRI adds an IRI value to the 'object' property.
func WithIRI(iri *url.URL) Opt {
	return func(opts *Options) {
		if iri != nil {
			opts.Iris = append(opts.Iris, iri)
		}
	}
}

// WithIRIs adds IRI values to the 'object' property.
func WithIRIs(iris ...*url.URL) Opt {
	return func(opts *Options) {
		opts.Iris = append(opts.Iris, iris...)
	}
}

// WithObject adds embedded objects to the 'object' property.
func WithObject(obj ...*ObjectType) Opt {
	return func(opts *Options) {
		opts.Objects = append(opts.Objects, obj...)
	}
}

// WithObjects adds embedded objects to the 'object' property.
func WithObjects(objs ...*ObjectType) Opt {
	return func(opts *Options) {
		opts.Objects = append(opts.Objects, objs...)
	}
}

// WithActivity adds an embedded activity to the 'object' property.
func WithActivity(activity *ActivityType) Opt {
	return func(opts *Options) {
		if activity != nil {
			opts.Activities = append(opts.Activities, activity)
		}
	}
}

// WithActivities adds embedded activities to the 'object' property.
func WithActivities(activities ...*ActivityType) Opt {
	return func(opts *Options) {
		opts.Activities = append(opts.Activities, activities...)
	}
}
