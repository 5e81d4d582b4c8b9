/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package activityhandler

import (
	"context"
	"net/url"
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

func TestOutbox_HandleActivity(t *testing.T) {
	env := newOutboxEnv(t)

	t.Run("No C2S data -> error", func(t *testing.T) {
		actx := &spi.Context{Store: env.activityStore}

		err := env.handler.HandleActivity(context.Background(), actx, nil,
			aptestutil.NewMockCreateActivity(service1IRI, service2IRI,
				vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service1IRI)))))
		require.Error(t, err)
		require.Contains(t, err.Error(), "no C2S data")
	})

	t.Run("Callback is invoked", func(t *testing.T) {
		var received *vocab.ActivityType

		actx := env.newContext(nil)
		actx.SocialCallbacks = &spi.Callbacks{
			Create: func(_ context.Context, _ *spi.Context, activity *vocab.ActivityType) error {
				received = activity

				return nil
			},
		}

		activity := aptestutil.NewMockCreateActivity(service1IRI, service2IRI,
			vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service1IRI))))

		require.NoError(t, env.handler.HandleActivity(context.Background(), actx, nil, activity))

		require.NotNil(t, received)
		require.Equal(t, activity.ID().String(), received.ID().String())
	})
}

func TestOutbox_Create(t *testing.T) {
	env := newOutboxEnv(t)

	ctx := context.Background()

	t.Run("Object is stored with attributedTo", func(t *testing.T) {
		obj := aptestutil.NewMockObject(t, service1IRI)

		activity := vocab.NewCreateActivity(
			vocab.NewObjectProperty(vocab.WithObject(obj)),
			vocab.WithID(aptestutil.NewActivityID(service1IRI)),
			vocab.WithActor(service1IRI),
			vocab.WithTo(service2IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.newContext(nil), nil, activity))

		doc, err := env.activityStore.Get(ctx, obj.ID().URL())
		require.NoError(t, err)
		require.Contains(t, doc, "attributedTo")

		require.Contains(t, urlsToStrings(obj.AttributedTo()), service1IRI.String())
	})

	t.Run("Missing object -> error", func(t *testing.T) {
		activity := vocab.NewCreateActivity(nil,
			vocab.WithID(aptestutil.NewActivityID(service1IRI)),
			vocab.WithActor(service1IRI),
		)

		require.ErrorIs(t, env.handler.HandleActivity(ctx, env.newContext(nil), nil, activity),
			apperrors.ErrMissingObject)
	})

	t.Run("Missing actor -> error", func(t *testing.T) {
		activity := vocab.NewCreateActivity(
			vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service1IRI))),
			vocab.WithID(aptestutil.NewActivityID(service1IRI)),
		)

		require.ErrorIs(t, env.handler.HandleActivity(ctx, env.newContext(nil), nil, activity),
			apperrors.ErrMissingActor)
	})
}

func TestOutbox_Update(t *testing.T) {
	env := newOutboxEnv(t)

	ctx := context.Background()

	objID := aptestutil.NewObjectID(service1IRI)

	stored, err := vocab.NewObjectWithDocument(
		vocab.Document{"content": "original content", "summary": "a summary"},
		vocab.WithType(vocab.TypeNote),
		vocab.WithID(objID),
	)
	require.NoError(t, err)

	storeObject(t, env.activityStore, stored)

	t.Run("Null in the raw document removes the key", func(t *testing.T) {
		updated, err := vocab.NewObjectWithDocument(
			vocab.Document{"content": "updated content"},
			vocab.WithType(vocab.TypeNote),
			vocab.WithID(objID),
		)
		require.NoError(t, err)

		activity := vocab.NewUpdateActivity(
			vocab.NewObjectProperty(vocab.WithObject(updated)),
			vocab.WithID(aptestutil.NewActivityID(service1IRI)),
			vocab.WithActor(service1IRI),
		)

		raw := vocab.Document{
			"object": map[string]interface{}{
				"id":      objID.String(),
				"content": "updated content",
				"summary": nil,
			},
		}

		require.NoError(t, env.handler.HandleActivity(ctx, env.newContext(raw), nil, activity))

		doc, err := env.activityStore.Get(ctx, objID)
		require.NoError(t, err)
		require.Equal(t, "updated content", doc["content"])
		require.NotContains(t, doc, "summary")
	})

	t.Run("Unknown object -> error", func(t *testing.T) {
		unknown := aptestutil.NewMockObject(t, service1IRI)

		activity := vocab.NewUpdateActivity(
			vocab.NewObjectProperty(vocab.WithObject(unknown)),
			vocab.WithID(aptestutil.NewActivityID(service1IRI)),
			vocab.WithActor(service1IRI),
		)

		require.Error(t, env.handler.HandleActivity(ctx, env.newContext(nil), nil, activity))
	})
}

func TestOutbox_Delete(t *testing.T) {
	env := newOutboxEnv(t)

	ctx := context.Background()

	obj := aptestutil.NewMockObject(t, service1IRI)

	storeObject(t, env.activityStore, obj)

	t.Run("Object is replaced with a tombstone", func(t *testing.T) {
		activity := vocab.NewDeleteActivity(
			vocab.NewObjectProperty(vocab.WithIRI(obj.ID().URL())),
			vocab.WithID(aptestutil.NewActivityID(service1IRI)),
			vocab.WithActor(service1IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.newContext(nil), nil, activity))

		doc, err := env.activityStore.Get(ctx, obj.ID().URL())
		require.NoError(t, err)

		tombstone := &vocab.ObjectType{}
		require.NoError(t, vocab.UnmarshalFromDoc(doc, tombstone))
		require.True(t, tombstone.Type().Is(vocab.TypeTombstone))
	})

	t.Run("Unknown object -> error", func(t *testing.T) {
		activity := vocab.NewDeleteActivity(
			vocab.NewObjectProperty(vocab.WithIRI(aptestutil.NewObjectID(service1IRI))),
			vocab.WithID(aptestutil.NewActivityID(service1IRI)),
			vocab.WithActor(service1IRI),
		)

		require.Error(t, env.handler.HandleActivity(ctx, env.newContext(nil), nil, activity))
	})
}

func TestOutbox_Like(t *testing.T) {
	env := newOutboxEnv(t)

	ctx := context.Background()

	t.Run("Object is added to the liked collection", func(t *testing.T) {
		objIRI := aptestutil.NewObjectID(service2IRI)

		like := vocab.NewLikeActivity(
			vocab.NewObjectProperty(vocab.WithIRI(objIRI)),
			vocab.WithID(aptestutil.NewActivityID(service1IRI)),
			vocab.WithActor(service1IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.newContext(nil), nil, like))

		containsRef(t, env.activityStore, testutil.NewMockID(service1IRI, "/liked"), objIRI)
	})

	t.Run("Missing object -> error", func(t *testing.T) {
		like := vocab.NewLikeActivity(nil,
			vocab.WithID(aptestutil.NewActivityID(service1IRI)),
			vocab.WithActor(service1IRI),
		)

		require.ErrorIs(t, env.handler.HandleActivity(ctx, env.newContext(nil), nil, like),
			apperrors.ErrMissingObject)
	})
}

func TestOutbox_Block(t *testing.T) {
	env := newOutboxEnv(t)

	block := vocab.NewBlockActivity(
		vocab.NewObjectProperty(vocab.WithIRI(service2IRI)),
		vocab.WithID(aptestutil.NewActivityID(service1IRI)),
		vocab.WithActor(service1IRI),
	)

	actx := env.newContext(nil)

	require.NoError(t, env.handler.HandleActivity(context.Background(), actx, nil, block))

	require.False(t, actx.C2S.Deliverable)
}

func TestOutbox_Undo(t *testing.T) {
	env := newOutboxEnv(t)

	ctx := context.Background()

	like := vocab.NewLikeActivity(
		vocab.NewObjectProperty(vocab.WithIRI(aptestutil.NewObjectID(service2IRI))),
		vocab.WithID(aptestutil.NewActivityID(service1IRI)),
		vocab.WithActor(service1IRI),
	)

	likeDoc, err := vocab.MarshalToDoc(like)
	require.NoError(t, err)

	require.NoError(t, env.activityStore.Create(ctx, likeDoc))

	t.Run("Success", func(t *testing.T) {
		undo := vocab.NewUndoActivity(
			vocab.NewObjectProperty(vocab.WithIRI(like.ID().URL())),
			vocab.WithID(aptestutil.NewActivityID(service1IRI)),
			vocab.WithActor(service1IRI),
		)

		require.NoError(t, env.handler.HandleActivity(ctx, env.newContext(nil), nil, undo))
	})

	t.Run("Actor mismatch -> error", func(t *testing.T) {
		undo := vocab.NewUndoActivity(
			vocab.NewObjectProperty(vocab.WithActivity(like)),
			vocab.WithID(aptestutil.NewActivityID(service2IRI)),
			vocab.WithActor(service2IRI),
		)

		require.Error(t, env.handler.HandleActivity(ctx, env.newContext(nil), nil, undo))
	})
}

type outboxEnv struct {
	handler       *Outbox
	activityStore *memstore.Store
	transport     *mocks.Transport
	outboxIRI     *url.URL
}

func newOutboxEnv(t *testing.T) *outboxEnv {
	t.Helper()

	activityStore := memstore.New("service1", service1IRI)
	require.NoError(t, activityStore.PutActor(context.Background(), aptestutil.NewMockService(service1IRI)))

	handler := NewOutbox(&Config{ServiceName: "service1"})
	handler.Start()

	t.Cleanup(handler.Stop)

	return &outboxEnv{
		handler:       handler,
		activityStore: activityStore,
		transport:     mocks.NewTransport(),
		outboxIRI:     testutil.NewMockID(service1IRI, "/outbox"),
	}
}

func (e *outboxEnv) newContext(raw vocab.Document) *spi.Context {
	return &spi.Context{
		SocialCallbacks: &spi.Callbacks{},
		Store:           e.activityStore,
		Transport:       mocks.NewTransportProvider(e.transport),
		AppAgent:        "FediKit",
		C2S: &spi.C2SContext{
			OutboxIRI:   e.outboxIRI,
			RawActivity: raw,
			Deliverable: true,
		},
	}
}

func urlsToStrings(urls []*url.URL) []string {
	strs := make([]string, len(urls))

	for i, u := range urls {
		strs[i] = u.String()
	}

	return strs
}
