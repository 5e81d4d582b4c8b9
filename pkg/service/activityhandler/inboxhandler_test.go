/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package activityhandler

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/internal/aptestutil"
	"github.com/fedikit/fedikit/pkg/internal/testutil"
	"github.com/fedikit/fedikit/pkg/service/mocks"
	"github.com/fedikit/fedikit/pkg/service/spi"
	"github.com/fedikit/fedikit/pkg/store/memstore"
	"github.com/fedikit/fedikit/pkg/vocab"
)

var (
	service1IRI = testutil.MustParseURL("https://service1.example.com/services/actor")
	service2IRI = testutil.MustParseURL("https://service2.example.com/services/actor")
	service3IRI = testutil.MustParseURL("https://service3.example.com/services/actor")
)

var errExpected = errors.New("injected error")

func TestInbox_HandleActivity(t *testing.T) {
	env := newInboxEnv(t, spi.OnFollowDoNothing)

	t.Run("No S2S data -> error", func(t *testing.T) {
		actx := &spi.Context{Store: env.activityStore}

		err := env.handler.HandleActivity(context.Background(), actx, env.inboxIRI,
			aptestutil.NewMockCreateActivity(service2IRI, service1IRI,
				vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service2IRI)))))
		require.Error(t, err)
		require.Contains(t, err.Error(), "no S2S data")
	})

	t.Run("Callback is invoked", func(t *testing.T) {
		var (
			mutex    sync.Mutex
			received []*vocab.ActivityType
		)

		env.actx.FederatedCallbacks = &spi.Callbacks{
			Create: func(_ context.Context, _ *spi.Context, activity *vocab.ActivityType) error {
				mutex.Lock()
				defer mutex.Unlock()

				received = append(received, activity)

				return nil
			},
		}

		defer func() {
			env.actx.FederatedCallbacks = &spi.Callbacks{}
		}()

		activity := aptestutil.NewMockCreateActivity(service2IRI, service1IRI,
			vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service2IRI))))

		require.NoError(t, env.handler.HandleActivity(context.Background(), env.actx, env.inboxIRI, activity))

		mutex.Lock()
		defer mutex.Unlock()

		require.Len(t, received, 1)
		require.Equal(t, activity.ID().String(), received[0].ID().String())
	})

	t.Run("Callback error is propagated", func(t *testing.T) {
		env.actx.FederatedCallbacks = &spi.Callbacks{
			Default: func(context.Context, *spi.Context, *vocab.ActivityType) error {
				return errExpected
			},
		}

		defer func() {
			env.actx.FederatedCallbacks = &spi.Callbacks{}
		}()

		activity := aptestutil.NewMockCreateActivity(service2IRI, service1IRI,
			vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service2IRI))))

		require.ErrorIs(t,
			env.handler.HandleActivity(context.Background(), env.actx, env.inboxIRI, activity),
			errExpected)
	})

	t.Run("Subscriber is notified", func(t *testing.T) {
		received := env.handler.Subscribe()

		activity := aptestutil.NewMockCreateActivity(service2IRI, service1IRI,
			vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service2IRI))))

		require.NoError(t, env.handler.HandleActivity(context.Background(), env.actx, env.inboxIRI, activity))

		select {
		case a := <-received:
			require.Equal(t, activity.ID().String(), a.ID().String())
		default:
			t.Fatal("expected a notification for the handled activity")
		}
	})
}

func TestInbox_Create(t *testing.T) {
	env := newInboxEnv(t, spi.OnFollowDoNothing)

	ctx := context.Background()

	t.Run("Embedded object is stored", func(t *testing.T) {
		obj := aptestutil.NewMockObject(t, service2IRI)

		activity := aptestutil.NewMockCreateActivity(service2IRI, service1IRI,
			vocab.NewObjectProperty(vocab.WithObject(obj)))

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, activity))

		exists, err := env.activityStore.Exists(ctx, obj.ID().URL())
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("Object referenced by IRI is dereferenced", func(t *testing.T) {
		obj := aptestutil.NewMockObject(t, service2IRI)

		payload, err := vocab.Marshal(obj)
		require.NoError(t, err)

		env.transport.WithDocument(obj.ID().String(), payload)

		activity := aptestutil.NewMockCreateActivity(service2IRI, service1IRI,
			vocab.NewObjectProperty(vocab.WithIRI(obj.ID().URL())))

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, activity))

		exists, err := env.activityStore.Exists(ctx, obj.ID().URL())
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("Dereference error", func(t *testing.T) {
		activity := aptestutil.NewMockCreateActivity(service2IRI, service1IRI,
			vocab.NewObjectProperty(vocab.WithIRI(aptestutil.NewObjectID(service2IRI))))

		require.Error(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, activity))
	})

	t.Run("Missing object -> error", func(t *testing.T) {
		activity := vocab.NewCreateActivity(nil,
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.ErrorIs(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, activity),
			apperrors.ErrMissingObject)
	})
}

func TestInbox_Update(t *testing.T) {
	env := newInboxEnv(t, spi.OnFollowDoNothing)

	ctx := context.Background()

	obj := aptestutil.NewMockObject(t, service2IRI)

	storeObject(t, env.activityStore, obj)

	t.Run("Success", func(t *testing.T) {
		updated, err := vocab.NewObjectWithDocument(
			vocab.Document{"content": "updated content"},
			vocab.WithType(vocab.TypeNote),
			vocab.WithID(obj.ID().URL()),
		)
		require.NoError(t, err)

		activity := vocab.NewUpdateActivity(
			vocab.NewObjectProperty(vocab.WithObject(updated)),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
			vocab.WithTo(service1IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, activity))

		doc, err := env.activityStore.Get(ctx, obj.ID().URL())
		require.NoError(t, err)
		require.Equal(t, "updated content", doc["content"])
	})

	t.Run("Wrong origin -> error", func(t *testing.T) {
		foreign := aptestutil.NewMockObject(t, service3IRI)

		activity := vocab.NewUpdateActivity(
			vocab.NewObjectProperty(vocab.WithObject(foreign)),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.ErrorIs(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, activity),
			apperrors.ErrWrongOrigin)
	})

	t.Run("Unknown object -> error", func(t *testing.T) {
		unknown := aptestutil.NewMockObject(t, service2IRI)

		activity := vocab.NewUpdateActivity(
			vocab.NewObjectProperty(vocab.WithObject(unknown)),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.Error(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, activity))
	})
}

func TestInbox_Delete(t *testing.T) {
	env := newInboxEnv(t, spi.OnFollowDoNothing)

	ctx := context.Background()

	obj := aptestutil.NewMockObject(t, service2IRI)

	storeObject(t, env.activityStore, obj)

	t.Run("Wrong origin -> error", func(t *testing.T) {
		activity := vocab.NewDeleteActivity(
			vocab.NewObjectProperty(vocab.WithIRI(obj.ID().URL())),
			vocab.WithID(aptestutil.NewActivityID(service3IRI)),
			vocab.WithActor(service3IRI),
		)

		require.ErrorIs(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, activity),
			apperrors.ErrWrongOrigin)
	})

	t.Run("Success", func(t *testing.T) {
		activity := vocab.NewDeleteActivity(
			vocab.NewObjectProperty(vocab.WithIRI(obj.ID().URL())),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, activity))

		exists, err := env.activityStore.Exists(ctx, obj.ID().URL())
		require.NoError(t, err)
		require.False(t, exists)
	})
}

func TestInbox_Follow(t *testing.T) {
	ctx := context.Background()

	newFollow := func() *vocab.ActivityType {
		return vocab.NewFollowActivity(
			vocab.NewObjectProperty(vocab.WithIRI(service1IRI)),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
			vocab.WithTo(service1IRI),
		)
	}

	t.Run("Auto-accept", func(t *testing.T) {
		env := newInboxEnv(t, spi.OnFollowAutoAccept)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, newFollow()))

		require.Len(t, env.deliver.activities, 1)
		require.True(t, env.deliver.activities[0].Type().Is(vocab.TypeAccept))
		require.Equal(t, service2IRI.String(), env.deliver.toIRIs[0].String())

		containsRef(t, env.activityStore, testutil.NewMockID(service1IRI, "/followers"), service2IRI)
	})

	t.Run("Auto-reject", func(t *testing.T) {
		env := newInboxEnv(t, spi.OnFollowAutoReject)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, newFollow()))

		require.Len(t, env.deliver.activities, 1)
		require.True(t, env.deliver.activities[0].Type().Is(vocab.TypeReject))

		contains, err := env.activityStore.CollectionContains(ctx,
			testutil.NewMockID(service1IRI, "/followers"), service2IRI)
		require.NoError(t, err)
		require.False(t, contains)
	})

	t.Run("Do nothing", func(t *testing.T) {
		env := newInboxEnv(t, spi.OnFollowDoNothing)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, newFollow()))

		require.Empty(t, env.deliver.activities)
	})

	t.Run("Follow of a different actor is ignored", func(t *testing.T) {
		env := newInboxEnv(t, spi.OnFollowAutoAccept)

		follow := vocab.NewFollowActivity(
			vocab.NewObjectProperty(vocab.WithIRI(service3IRI)),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, follow))

		require.Empty(t, env.deliver.activities)
	})

	t.Run("Multiple actors all receive the Accept", func(t *testing.T) {
		env := newInboxEnv(t, spi.OnFollowAutoAccept)

		follow := vocab.NewFollowActivity(
			vocab.NewObjectProperty(vocab.WithIRI(service1IRI)),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI, service3IRI),
			vocab.WithTo(service1IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, follow))

		require.Len(t, env.deliver.activities, 2)
		require.True(t, env.deliver.activities[0].Type().Is(vocab.TypeAccept))
		require.True(t, env.deliver.activities[1].Type().Is(vocab.TypeAccept))
		require.Equal(t, service2IRI.String(), env.deliver.toIRIs[0].String())
		require.Equal(t, service3IRI.String(), env.deliver.toIRIs[1].String())

		containsRef(t, env.activityStore, testutil.NewMockID(service1IRI, "/followers"), service2IRI)
		containsRef(t, env.activityStore, testutil.NewMockID(service1IRI, "/followers"), service3IRI)
	})

	t.Run("Multiple actors all receive the Reject", func(t *testing.T) {
		env := newInboxEnv(t, spi.OnFollowAutoReject)

		follow := vocab.NewFollowActivity(
			vocab.NewObjectProperty(vocab.WithIRI(service1IRI)),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI, service3IRI),
			vocab.WithTo(service1IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, follow))

		require.Len(t, env.deliver.activities, 2)
		require.True(t, env.deliver.activities[0].Type().Is(vocab.TypeReject))
		require.Equal(t, service2IRI.String(), env.deliver.toIRIs[0].String())
		require.Equal(t, service3IRI.String(), env.deliver.toIRIs[1].String())
	})

	t.Run("Missing actor -> error", func(t *testing.T) {
		env := newInboxEnv(t, spi.OnFollowAutoAccept)

		follow := vocab.NewFollowActivity(
			vocab.NewObjectProperty(vocab.WithIRI(service1IRI)),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
		)

		require.ErrorIs(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, follow),
			apperrors.ErrMissingActor)
	})
}

func TestInbox_Accept(t *testing.T) {
	ctx := context.Background()

	newOurFollow := func() *vocab.ActivityType {
		return vocab.NewFollowActivity(
			vocab.NewObjectProperty(vocab.WithIRI(service2IRI)),
			vocab.WithID(aptestutil.NewActivityID(service1IRI)),
			vocab.WithActor(service1IRI),
			vocab.WithTo(service2IRI),
		)
	}

	t.Run("Embedded Follow", func(t *testing.T) {
		env := newInboxEnv(t, spi.OnFollowDoNothing)

		accept := vocab.NewAcceptActivity(
			vocab.NewObjectProperty(vocab.WithActivity(newOurFollow())),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
			vocab.WithTo(service1IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, accept))

		containsRef(t, env.activityStore, testutil.NewMockID(service1IRI, "/following"), service2IRI)
	})

	t.Run("Follow referenced by IRI", func(t *testing.T) {
		env := newInboxEnv(t, spi.OnFollowDoNothing)

		follow := newOurFollow()

		followDoc, err := vocab.MarshalToDoc(follow)
		require.NoError(t, err)

		require.NoError(t, env.activityStore.Create(ctx, followDoc))

		accept := vocab.NewAcceptActivity(
			vocab.NewObjectProperty(vocab.WithIRI(follow.ID().URL())),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, accept))

		containsRef(t, env.activityStore, testutil.NewMockID(service1IRI, "/following"), service2IRI)
	})

	t.Run("Accept of a foreign Follow is ignored", func(t *testing.T) {
		env := newInboxEnv(t, spi.OnFollowDoNothing)

		foreignFollow := vocab.NewFollowActivity(
			vocab.NewObjectProperty(vocab.WithIRI(service2IRI)),
			vocab.WithID(aptestutil.NewActivityID(service3IRI)),
			vocab.WithActor(service3IRI),
		)

		accept := vocab.NewAcceptActivity(
			vocab.NewObjectProperty(vocab.WithActivity(foreignFollow)),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, accept))

		contains, err := env.activityStore.CollectionContains(ctx,
			testutil.NewMockID(service1IRI, "/following"), service2IRI)
		require.NoError(t, err)
		require.False(t, contains)
	})

	t.Run("Accepting actor was not an object of the Follow -> error", func(t *testing.T) {
		env := newInboxEnv(t, spi.OnFollowDoNothing)

		accept := vocab.NewAcceptActivity(
			vocab.NewObjectProperty(vocab.WithActivity(newOurFollow())),
			vocab.WithID(aptestutil.NewActivityID(service3IRI)),
			vocab.WithActor(service3IRI),
		)

		require.Error(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, accept))
	})
}

func TestInbox_AddRemove(t *testing.T) {
	env := newInboxEnv(t, spi.OnFollowDoNothing)

	ctx := context.Background()

	collIRI := testutil.NewMockID(service1IRI, "/resources")
	objIRI := aptestutil.NewObjectID(service2IRI)

	t.Run("Add", func(t *testing.T) {
		add := vocab.NewAddActivity(
			vocab.NewObjectProperty(vocab.WithIRI(objIRI)),
			vocab.WithTarget(vocab.NewObjectProperty(vocab.WithIRI(collIRI))),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, add))

		containsRef(t, env.activityStore, collIRI, objIRI)
	})

	t.Run("Remove", func(t *testing.T) {
		remove := vocab.NewRemoveActivity(
			vocab.NewObjectProperty(vocab.WithIRI(objIRI)),
			vocab.WithTarget(vocab.NewObjectProperty(vocab.WithIRI(collIRI))),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, remove))

		contains, err := env.activityStore.CollectionContains(ctx, collIRI, objIRI)
		require.NoError(t, err)
		require.False(t, contains)
	})

	t.Run("Unowned target is ignored", func(t *testing.T) {
		add := vocab.NewAddActivity(
			vocab.NewObjectProperty(vocab.WithIRI(objIRI)),
			vocab.WithTarget(vocab.NewObjectProperty(vocab.WithIRI(testutil.NewMockID(service2IRI, "/resources")))),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, add))
	})

	t.Run("Missing target -> error", func(t *testing.T) {
		add := vocab.NewAddActivity(
			vocab.NewObjectProperty(vocab.WithIRI(objIRI)),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.ErrorIs(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, add),
			apperrors.ErrMissingTarget)
	})
}

func TestInbox_LikeAndAnnounce(t *testing.T) {
	env := newInboxEnv(t, spi.OnFollowDoNothing)

	ctx := context.Background()

	objIRI := aptestutil.NewObjectID(service1IRI)

	t.Run("Like is added to the likes collection", func(t *testing.T) {
		like := vocab.NewLikeActivity(
			vocab.NewObjectProperty(vocab.WithIRI(objIRI)),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, like))

		containsRef(t, env.activityStore, objIRI.JoinPath("likes"), like.ID().URL())
	})

	t.Run("Announce is added to the shares collection", func(t *testing.T) {
		announce := vocab.NewAnnounceActivity(
			vocab.NewObjectProperty(vocab.WithIRI(objIRI)),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, announce))

		containsRef(t, env.activityStore, objIRI.JoinPath("shares"), announce.ID().URL())
	})

	t.Run("Unowned object is ignored", func(t *testing.T) {
		foreignObjIRI := aptestutil.NewObjectID(service2IRI)

		like := vocab.NewLikeActivity(
			vocab.NewObjectProperty(vocab.WithIRI(foreignObjIRI)),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, like))

		contains, err := env.activityStore.CollectionContains(ctx,
			foreignObjIRI.JoinPath("likes"), like.ID().URL())
		require.NoError(t, err)
		require.False(t, contains)
	})
}

func TestInbox_Undo(t *testing.T) {
	env := newInboxEnv(t, spi.OnFollowDoNothing)

	ctx := context.Background()

	like := vocab.NewLikeActivity(
		vocab.NewObjectProperty(vocab.WithIRI(aptestutil.NewObjectID(service1IRI))),
		vocab.WithID(aptestutil.NewActivityID(service2IRI)),
		vocab.WithActor(service2IRI),
	)

	likeDoc, err := vocab.MarshalToDoc(like)
	require.NoError(t, err)

	require.NoError(t, env.activityStore.Create(ctx, likeDoc))

	t.Run("Success", func(t *testing.T) {
		undo := vocab.NewUndoActivity(
			vocab.NewObjectProperty(vocab.WithIRI(like.ID().URL())),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, undo))
	})

	t.Run("Undone activity is dereferenced when not stored", func(t *testing.T) {
		remote := vocab.NewLikeActivity(
			vocab.NewObjectProperty(vocab.WithIRI(aptestutil.NewObjectID(service1IRI))),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		payload, err := vocab.Marshal(remote)
		require.NoError(t, err)

		env.transport.WithDocument(remote.ID().String(), payload)

		undo := vocab.NewUndoActivity(
			vocab.NewObjectProperty(vocab.WithIRI(remote.ID().URL())),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, undo))
	})

	t.Run("Actor mismatch -> error", func(t *testing.T) {
		undo := vocab.NewUndoActivity(
			vocab.NewObjectProperty(vocab.WithIRI(like.ID().URL())),
			vocab.WithID(aptestutil.NewActivityID(service3IRI)),
			vocab.WithActor(service3IRI),
		)

		require.Error(t, env.handler.HandleActivity(ctx, env.actx, env.inboxIRI, undo))
	})
}

// capturingDeliver records the replies that the inbox handler posts on
// behalf of our actor.
type capturingDeliver struct {
	mutex      sync.Mutex
	activities []*vocab.ActivityType
	toIRIs     []*url.URL
	err        error
}

func (d *capturingDeliver) deliver(_ context.Context, _ *spi.Context, activity *vocab.ActivityType,
	toIRI *url.URL) error {
	if d.err != nil {
		return d.err
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.activities = append(d.activities, activity)
	d.toIRIs = append(d.toIRIs, toIRI)

	return nil
}

type inboxEnv struct {
	handler       *Inbox
	actx          *spi.Context
	activityStore *memstore.Store
	transport     *mocks.Transport
	deliver       *capturingDeliver
	inboxIRI      *url.URL
}

func newInboxEnv(t *testing.T, onFollow spi.OnFollowPolicy) *inboxEnv {
	t.Helper()

	activityStore := memstore.New("service1", service1IRI)
	require.NoError(t, activityStore.PutActor(context.Background(), aptestutil.NewMockService(service1IRI)))

	tr := mocks.NewTransport()

	deliver := &capturingDeliver{}

	handler := NewInbox(&Config{ServiceName: "service1"}, deliver.deliver)
	handler.Start()

	t.Cleanup(handler.Stop)

	inboxIRI := testutil.NewMockID(service1IRI, "/inbox")

	actx := &spi.Context{
		FederatedCallbacks: &spi.Callbacks{},
		Store:              activityStore,
		Transport:          mocks.NewTransportProvider(tr),
		AppAgent:           "FediKit",
		S2S: &spi.S2SContext{
			InboxIRI: inboxIRI,
			OnFollow: onFollow,
		},
	}

	return &inboxEnv{
		handler:       handler,
		actx:          actx,
		activityStore: activityStore,
		transport:     tr,
		deliver:       deliver,
		inboxIRI:      inboxIRI,
	}
}

func storeObject(t *testing.T, s *memstore.Store, obj *vocab.ObjectType) {
	t.Helper()

	doc, err := vocab.MarshalToDoc(obj)
	require.NoError(t, err)

	require.NoError(t, s.Create(context.Background(), doc))
}

func containsRef(t *testing.T, s *memstore.Store, collIRI, iri *url.URL) {
	t.Helper()

	contains, err := s.CollectionContains(context.Background(), collIRI, iri)
	require.NoError(t, err)
	require.True(t, contains)
}
