/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package aptestutil contains ActivityPub test utilities.
package aptestutil

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/fedikit/fedikit/pkg/internal/testutil"
	"github.com/fedikit/fedikit/pkg/vocab"
)

// ServiceOptions are options passed in to NewMockService.
type ServiceOptions struct {
	PublicKey   *vocab.PublicKeyType
	SharedInbox *url.URL
}

// ServiceOpt is a mock service option.
type ServiceOpt func(options *ServiceOptions)

// WithPublicKey sets the public key on the mock service.
func WithPublicKey(pubKey *vocab.PublicKeyType) ServiceOpt {
	return func(options *ServiceOptions) {
		options.PublicKey = pubKey
	}
}

// WithSharedInbox sets the shared inbox endpoint on the mock service.
func WithSharedInbox(sharedInbox *url.URL) ServiceOpt {
	return func(options *ServiceOptions) {
		options.SharedInbox = sharedInbox
	}
}

// NewMockService returns a mock 'Service' type actor with the given IRI and options.
func NewMockService(serviceIRI *url.URL, opts ...ServiceOpt) *vocab.ActorType {
	options := &ServiceOptions{
		PublicKey: NewMockPublicKey(serviceIRI),
	}

	for _, opt := range opts {
		opt(options)
	}

	vocabOpts := []vocab.Opt{
		vocab.WithPublicKey(options.PublicKey),
		vocab.WithInbox(testutil.NewMockID(serviceIRI, "/inbox")),
		vocab.WithOutbox(testutil.NewMockID(serviceIRI, "/outbox")),
		vocab.WithFollowers(testutil.NewMockID(serviceIRI, "/followers")),
		vocab.WithFollowing(testutil.NewMockID(serviceIRI, "/following")),
		vocab.WithLiked(testutil.NewMockID(serviceIRI, "/liked")),
	}

	if options.SharedInbox != nil {
		vocabOpts = append(vocabOpts, vocab.WithSharedInbox(options.SharedInbox))
	}

	return vocab.NewService(serviceIRI, vocabOpts...)
}

// NewMockPublicKey returns a mock public key using the given service IRI.
func NewMockPublicKey(serviceIRI *url.URL) *vocab.PublicKeyType {
	const keyPem = "-----BEGIN PUBLIC KEY-----\nMIIBIjANBgkqhki....."

	return vocab.NewPublicKey(
		vocab.WithID(testutil.NewMockID(serviceIRI, "/keys/main-key")),
		vocab.WithOwner(serviceIRI),
		vocab.WithPublicKeyPem(keyPem),
	)
}

// NewMockObject returns a mock 'Note' object with randomly generated content.
func NewMockObject(t *testing.T, serviceIRI *url.URL) *vocab.ObjectType {
	t.Helper()

	obj, err := vocab.NewObjectWithDocument(
		vocab.Document{"content": uuid.New().String()},
		vocab.WithType(vocab.TypeNote),
		vocab.WithID(NewObjectID(serviceIRI)),
	)
	require.NoError(t, err)

	return obj
}

// NewMockCollection returns a mock 'Collection' with the given ID.
func NewMockCollection(id, first, last *url.URL, totalItems int) *vocab.CollectionType {
	return vocab.NewCollection(nil,
		vocab.WithContext(vocab.ContextActivityStreams),
		vocab.WithID(id),
		vocab.WithTotalItems(totalItems),
		vocab.WithFirst(first),
		vocab.WithLast(last),
	)
}

// NewMockOrderedCollection returns a mock 'OrderedCollection' with the given ID.
func NewMockOrderedCollection(id, first, last *url.URL, totalItems int) *vocab.OrderedCollectionType {
	return vocab.NewOrderedCollection(nil,
		vocab.WithContext(vocab.ContextActivityStreams),
		vocab.WithID(id),
		vocab.WithTotalItems(totalItems),
		vocab.WithFirst(first),
		vocab.WithLast(last),
	)
}

// NewMockCollectionPage returns a mock 'CollectionPage' with the given ID and items.
func NewMockCollectionPage(id, next, prev, collID *url.URL, totalItems int,
	items ...*vocab.ObjectProperty) *vocab.CollectionType {
	return vocab.NewCollectionPage(items,
		vocab.WithContext(vocab.ContextActivityStreams),
		vocab.WithID(id),
		vocab.WithPartOf(collID),
		vocab.WithNext(next),
		vocab.WithPrev(prev),
		vocab.WithTotalItems(totalItems),
	)
}

// NewMockOrderedCollectionPage returns a mock 'OrderedCollectionPage' with the given ID and items.
func NewMockOrderedCollectionPage(id, next, prev, collID *url.URL, totalItems int,
	items ...*vocab.ObjectProperty) *vocab.OrderedCollectionType {
	return vocab.NewOrderedCollectionPage(items,
		vocab.WithContext(vocab.ContextActivityStreams),
		vocab.WithID(id),
		vocab.WithPartOf(collID),
		vocab.WithNext(next),
		vocab.WithPrev(prev),
		vocab.WithTotalItems(totalItems),
	)
}

// NewMockCreateActivities returns the given number of mock 'Create' activities.
func NewMockCreateActivities(t *testing.T, num int) []*vocab.ActivityType {
	t.Helper()

	activities := make([]*vocab.ActivityType, num)

	for i := 0; i < num; i++ {
		serviceIRI := testutil.MustParseURL(fmt.Sprintf("https://create_%d.example.com/services/svc", i))

		activities[i] = NewMockCreateActivity(serviceIRI,
			testutil.MustParseURL(fmt.Sprintf("https://to_%d.example.com/services/svc", i)),
			vocab.NewObjectProperty(vocab.WithObject(NewMockObject(t, serviceIRI))),
		)
	}

	return activities
}

// NewMockAnnounceActivities returns the given number of mock 'Announce' activities.
func NewMockAnnounceActivities(num int) []*vocab.ActivityType {
	activities := make([]*vocab.ActivityType, num)

	for i := 0; i < num; i++ {
		serviceIRI := testutil.MustParseURL(fmt.Sprintf("https://announce_%d.example.com/services/svc", i))

		activities[i] = NewMockAnnounceActivity(serviceIRI,
			testutil.MustParseURL(fmt.Sprintf("https://to_%d.example.com/services/svc", i)),
			vocab.NewObjectProperty(vocab.WithIRI(NewObjectID(serviceIRI))),
		)
	}

	return activities
}

// NewMockCreateActivity returns a new mock Create activity.
func NewMockCreateActivity(actorIRI, toIRI *url.URL, obj *vocab.ObjectProperty) *vocab.ActivityType {
	published := time.Now()

	return vocab.NewCreateActivity(
		obj,
		vocab.WithID(NewActivityID(actorIRI)),
		vocab.WithActor(actorIRI),
		vocab.WithTo(toIRI),
		vocab.WithPublishedTime(&published),
	)
}

// NewMockAnnounceActivity returns a new mock Announce activity.
func NewMockAnnounceActivity(actorIRI, toIRI *url.URL, obj *vocab.ObjectProperty) *vocab.ActivityType {
	published := time.Now()

	return vocab.NewAnnounceActivity(
		obj,
		vocab.WithID(NewActivityID(actorIRI)),
		vocab.WithActor(actorIRI),
		vocab.WithTo(toIRI),
		vocab.WithPublishedTime(&published),
	)
}

// NewMockLikeActivities returns the given number of mock 'Like' activities.
func NewMockLikeActivities(num int) []*vocab.ActivityType {
	activities := make([]*vocab.ActivityType, num)

	for i := 0; i < num; i++ {
		serviceIRI := testutil.MustParseURL(fmt.Sprintf("https://like_%d.example.com/services/svc", i))

		activities[i] = NewMockLikeActivity(serviceIRI, NewObjectID(serviceIRI))
	}

	return activities
}

// NewMockLikeActivity returns a mock 'Like' activity.
func NewMockLikeActivity(actorIRI, objIRI *url.URL) *vocab.ActivityType {
	return vocab.NewLikeActivity(
		vocab.NewObjectProperty(vocab.WithIRI(objIRI)),
		vocab.WithID(NewActivityID(actorIRI)),
		vocab.WithActor(actorIRI),
	)
}

// NewActivityID returns a generated activity ID.
func NewActivityID(id fmt.Stringer) *url.URL {
	return testutil.NewMockID(id, fmt.Sprintf("/activities/%s", uuid.New().String()))
}

// NewObjectID returns a generated object ID.
func NewObjectID(id fmt.Stringer) *url.URL {
	return testutil.NewMockID(id, fmt.Sprintf("/objects/%s", uuid.New().String()))
}