/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package actor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fedikit/fedikit/pkg/client/transport"
	"github.com/fedikit/fedikit/pkg/internal/aptestutil"
	"github.com/fedikit/fedikit/pkg/internal/testutil"
	"github.com/fedikit/fedikit/pkg/service/spi"
	"github.com/fedikit/fedikit/pkg/vocab"
)

func TestIsActivityPubPost(t *testing.T) {
	t.Run("ActivityPub content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/services/actor/inbox", nil)
		req.Header.Set(transport.ContentTypeHeader, transport.ActivityContentType)

		require.True(t, IsActivityPubPost(req))
	})

	t.Run("JSON-LD with ActivityStreams profile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/services/actor/inbox", nil)
		req.Header.Set(transport.ContentTypeHeader, transport.ActivityStreamsContentType)

		require.True(t, IsActivityPubPost(req))
	})

	t.Run("JSON-LD without profile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/services/actor/inbox", nil)
		req.Header.Set(transport.ContentTypeHeader, "application/ld+json")

		require.False(t, IsActivityPubPost(req))
	})

	t.Run("Not a POST", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/services/actor/inbox", nil)
		req.Header.Set(transport.ContentTypeHeader, transport.ActivityContentType)

		require.False(t, IsActivityPubPost(req))
	})
}

func TestIsActivityPubGet(t *testing.T) {
	t.Run("ActivityPub accept header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/services/actor/inbox", nil)
		req.Header.Set("Accept", "text/html, "+transport.ActivityContentType)

		require.True(t, IsActivityPubGet(req))
	})

	t.Run("No matching accept header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/services/actor/inbox", nil)
		req.Header.Set("Accept", "text/html")

		require.False(t, IsActivityPubGet(req))
	})

	t.Run("Not a GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/services/actor/inbox", nil)
		req.Header.Set("Accept", transport.ActivityContentType)

		require.False(t, IsActivityPubGet(req))
	})
}

func TestActor_HandlePostInbox(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := newTestEnv(t, nil)

		activity := aptestutil.NewMockCreateActivity(service2IRI, service1IRI,
			vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service2IRI))))

		rw := httptest.NewRecorder()

		handled, err := env.engine.HandlePostInbox(rw, newPostRequest(t, activity), env.inboxIRI)
		require.NoError(t, err)
		require.True(t, handled)
		require.Equal(t, http.StatusOK, rw.Code)

		containsRef(t, env.activityStore, env.inboxIRI, activity.ID().URL())
	})

	t.Run("Not an ActivityPub request", func(t *testing.T) {
		env := newTestEnv(t, nil)

		req := httptest.NewRequest(http.MethodPost, "/services/actor/inbox", bytes.NewReader([]byte("{}")))
		req.Header.Set(transport.ContentTypeHeader, "text/plain")

		handled, err := env.engine.HandlePostInbox(httptest.NewRecorder(), req, env.inboxIRI)
		require.NoError(t, err)
		require.False(t, handled)
	})

	t.Run("Federation disabled -> method not allowed", func(t *testing.T) {
		env := newTestEnv(t, func(actx *spi.Context) {
			actx.Federated = nil
		})

		activity := aptestutil.NewMockCreateActivity(service2IRI, service1IRI,
			vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service2IRI))))

		rw := httptest.NewRecorder()

		handled, err := env.engine.HandlePostInbox(rw, newPostRequest(t, activity), env.inboxIRI)
		require.NoError(t, err)
		require.True(t, handled)
		require.Equal(t, http.StatusMethodNotAllowed, rw.Code)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		env := newTestEnv(t, func(actx *spi.Context) {
			actx.Federated = &mockFederated{unauthenticated: true}
		})

		activity := aptestutil.NewMockCreateActivity(service2IRI, service1IRI,
			vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service2IRI))))

		handled, err := env.engine.HandlePostInbox(httptest.NewRecorder(), newPostRequest(t, activity), env.inboxIRI)
		require.NoError(t, err)
		require.True(t, handled)

		contains, err := env.activityStore.CollectionContains(context.Background(), env.inboxIRI, activity.ID().URL())
		require.NoError(t, err)
		require.False(t, contains)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		env := newTestEnv(t, func(actx *spi.Context) {
			actx.Federated = &mockFederated{unauthorized: true}
		})

		activity := aptestutil.NewMockCreateActivity(service2IRI, service1IRI,
			vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service2IRI))))

		handled, err := env.engine.HandlePostInbox(httptest.NewRecorder(), newPostRequest(t, activity), env.inboxIRI)
		require.NoError(t, err)
		require.True(t, handled)

		contains, err := env.activityStore.CollectionContains(context.Background(), env.inboxIRI, activity.ID().URL())
		require.NoError(t, err)
		require.False(t, contains)
	})

	t.Run("Invalid payload -> bad request", func(t *testing.T) {
		env := newTestEnv(t, nil)

		request := httptest.NewRequest(http.MethodPost, "/services/actor/inbox", bytes.NewReader([]byte("{")))
		request.Header.Set(transport.ContentTypeHeader, transport.ActivityContentType)

		rw := httptest.NewRecorder()

		handled, err := env.engine.HandlePostInbox(rw, request, env.inboxIRI)
		require.NoError(t, err)
		require.True(t, handled)
		require.Equal(t, http.StatusBadRequest, rw.Code)
	})

	t.Run("Non-activity payload -> bad request", func(t *testing.T) {
		env := newTestEnv(t, nil)

		payload, err := vocab.Marshal(aptestutil.NewMockObject(t, service2IRI))
		require.NoError(t, err)

		request := httptest.NewRequest(http.MethodPost, "/services/actor/inbox", bytes.NewReader(payload))
		request.Header.Set(transport.ContentTypeHeader, transport.ActivityContentType)

		rw := httptest.NewRecorder()

		handled, err := env.engine.HandlePostInbox(rw, request, env.inboxIRI)
		require.NoError(t, err)
		require.True(t, handled)
		require.Equal(t, http.StatusBadRequest, rw.Code)
	})

	t.Run("Missing ID -> bad request", func(t *testing.T) {
		env := newTestEnv(t, nil)

		activity := vocab.NewCreateActivity(
			vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service2IRI))),
			vocab.WithActor(service2IRI),
			vocab.WithTo(service1IRI),
		)

		rw := httptest.NewRecorder()

		handled, err := env.engine.HandlePostInbox(rw, newPostRequest(t, activity), env.inboxIRI)
		require.NoError(t, err)
		require.True(t, handled)
		require.Equal(t, http.StatusBadRequest, rw.Code)
	})
}

func TestActor_HandlePostOutbox(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := newTestEnv(t, func(actx *spi.Context) {
			actx.Social = &mockSocial{}
		})

		activity := vocab.NewCreateActivity(
			vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service1IRI))),
			vocab.WithActor(service1IRI),
			vocab.WithTo(service2IRI),
		)

		rw := httptest.NewRecorder()

		handled, err := env.engine.HandlePostOutbox(rw, newPostRequest(t, activity), env.outboxIRI)
		require.NoError(t, err)
		require.True(t, handled)
		require.Equal(t, http.StatusCreated, rw.Code)

		location := rw.Header().Get("Location")
		require.NotEmpty(t, location)

		containsRef(t, env.activityStore, env.outboxIRI, testutil.MustParseURL(location))

		// The social and federated protocols are both enabled, so the
		// activity federates to its recipient.
		require.Len(t, env.transport.Delivered(testutil.NewMockID(service2IRI, "/inbox").String()), 1)
	})

	t.Run("Bare object is wrapped in a Create", func(t *testing.T) {
		env := newTestEnv(t, func(actx *spi.Context) {
			actx.Social = &mockSocial{}
		})

		obj, err := vocab.NewObjectWithDocument(
			vocab.Document{"content": "hello"},
			vocab.WithType(vocab.TypeNote),
			vocab.WithTo(service2IRI),
		)
		require.NoError(t, err)

		payload, err := vocab.Marshal(obj)
		require.NoError(t, err)

		request := httptest.NewRequest(http.MethodPost, "/services/actor/outbox", bytes.NewReader(payload))
		request.Header.Set(transport.ContentTypeHeader, transport.ActivityContentType)

		rw := httptest.NewRecorder()

		handled, err := env.engine.HandlePostOutbox(rw, request, env.outboxIRI)
		require.NoError(t, err)
		require.True(t, handled)
		require.Equal(t, http.StatusCreated, rw.Code)

		location := rw.Header().Get("Location")
		require.NotEmpty(t, location)

		activity, err := env.activityStore.GetActivity(request.Context(), testutil.MustParseURL(location))
		require.NoError(t, err)
		require.True(t, activity.Type().Is(vocab.TypeCreate))
		require.Equal(t, service1IRI.String(), activity.Actor().String())
	})

	t.Run("Social protocol disabled -> method not allowed", func(t *testing.T) {
		env := newTestEnv(t, nil)

		activity := aptestutil.NewMockCreateActivity(service1IRI, service2IRI,
			vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service1IRI))))

		rw := httptest.NewRecorder()

		handled, err := env.engine.HandlePostOutbox(rw, newPostRequest(t, activity), env.outboxIRI)
		require.NoError(t, err)
		require.True(t, handled)
		require.Equal(t, http.StatusMethodNotAllowed, rw.Code)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		env := newTestEnv(t, func(actx *spi.Context) {
			actx.Social = &mockSocial{unauthenticated: true}
		})

		activity := aptestutil.NewMockCreateActivity(service1IRI, service2IRI,
			vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service1IRI))))

		rw := httptest.NewRecorder()

		handled, err := env.engine.HandlePostOutbox(rw, newPostRequest(t, activity), env.outboxIRI)
		require.NoError(t, err)
		require.True(t, handled)
		require.Empty(t, rw.Header().Get("Location"))
	})

	t.Run("Not an ActivityPub request", func(t *testing.T) {
		env := newTestEnv(t, nil)

		request := httptest.NewRequest(http.MethodPost, "/services/actor/outbox", bytes.NewReader([]byte("{}")))
		request.Header.Set(transport.ContentTypeHeader, "application/json")

		handled, err := env.engine.HandlePostOutbox(httptest.NewRecorder(), request, env.outboxIRI)
		require.NoError(t, err)
		require.False(t, handled)
	})
}

func TestActor_HandleGetInbox(t *testing.T) {
	inboxIRI := testutil.NewMockID(service1IRI, "/inbox")

	t.Run("Success", func(t *testing.T) {
		env := newTestEnv(t, func(actx *spi.Context) {
			actx.Common = &mockCommon{
				inbox: aptestutil.NewMockOrderedCollection(inboxIRI, nil, nil, 0),
			}
		})

		rw := httptest.NewRecorder()

		handled, err := env.engine.HandleGetInbox(rw, newGetRequest())
		require.NoError(t, err)
		require.True(t, handled)
		require.Equal(t, http.StatusOK, rw.Code)
		require.Equal(t, transport.ActivityStreamsContentType, rw.Header().Get(transport.ContentTypeHeader))

		coll := &vocab.OrderedCollectionType{}
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), coll))
		require.Equal(t, inboxIRI.String(), coll.ID().String())
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		env := newTestEnv(t, func(actx *spi.Context) {
			actx.Common = &mockCommon{unauthenticated: true}
		})

		rw := httptest.NewRecorder()

		handled, err := env.engine.HandleGetInbox(rw, newGetRequest())
		require.NoError(t, err)
		require.True(t, handled)
		require.Empty(t, rw.Body.Bytes())
	})

	t.Run("Not an ActivityPub request", func(t *testing.T) {
		env := newTestEnv(t, nil)

		request := httptest.NewRequest(http.MethodGet, "/services/actor/inbox", nil)
		request.Header.Set("Accept", "text/html")

		handled, err := env.engine.HandleGetInbox(httptest.NewRecorder(), request)
		require.NoError(t, err)
		require.False(t, handled)
	})
}

func TestActor_HandleGetOutbox(t *testing.T) {
	outboxIRI := testutil.NewMockID(service1IRI, "/outbox")

	t.Run("Success", func(t *testing.T) {
		env := newTestEnv(t, func(actx *spi.Context) {
			actx.Common = &mockCommon{
				outbox: aptestutil.NewMockOrderedCollection(outboxIRI, nil, nil, 0),
			}
		})

		rw := httptest.NewRecorder()

		handled, err := env.engine.HandleGetOutbox(rw, newGetRequest())
		require.NoError(t, err)
		require.True(t, handled)
		require.Equal(t, http.StatusOK, rw.Code)

		coll := &vocab.OrderedCollectionType{}
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), coll))
		require.Equal(t, outboxIRI.String(), coll.ID().String())
	})

	t.Run("Delegate error", func(t *testing.T) {
		env := newTestEnv(t, func(actx *spi.Context) {
			actx.Common = &mockCommon{err: errExpected}
		})

		handled, err := env.engine.HandleGetOutbox(httptest.NewRecorder(), newGetRequest())
		require.ErrorIs(t, err, errExpected)
		require.True(t, handled)
	})
}

func newPostRequest(t *testing.T, activity *vocab.ActivityType) *http.Request {
	t.Helper()

	payload, err := vocab.Marshal(activity)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/services/actor/inbox", bytes.NewReader(payload))
	request.Header.Set(transport.ContentTypeHeader, transport.ActivityContentType)

	return request
}

func newGetRequest() *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/services/actor/inbox", nil)
	request.Header.Set("Accept", transport.ActivityContentType)

	return request
}
