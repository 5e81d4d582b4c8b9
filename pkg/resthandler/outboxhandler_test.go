/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resthandler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/internal/aptestutil"
	"github.com/fedikit/fedikit/pkg/internal/testutil"
	"github.com/fedikit/fedikit/pkg/service/mocks"
	"github.com/fedikit/fedikit/pkg/vocab"
)

func TestNewPostOutbox(t *testing.T) {
	cfg := &Config{
		ObjectIRI:          serviceIRI,
		ServiceEndpointURL: serviceIRI,
	}

	h := NewPostOutbox(cfg, &mockOutbox{}, mocks.NewSignatureVerifier(serviceIRI))
	require.NotNil(t, h)
	require.Equal(t, "/services/actor/outbox", h.Path())
	require.Equal(t, http.MethodPost, h.Method())
	require.NotNil(t, h.Handler())
}

func TestOutbox_HandlePost(t *testing.T) {
	const outboxURL = "https://example.com/services/actor/outbox"

	cfg := &Config{
		ObjectIRI:          serviceIRI,
		ServiceEndpointURL: serviceIRI,
		AuthTokens:         newAuthConfig(),
	}

	activity := aptestutil.NewMockCreateActivity(serviceIRI,
		testutil.MustParseURL("https://example2.com/services/actor"),
		vocab.NewObjectProperty(vocab.WithIRI(
			testutil.MustParseURL("https://example.com/objects/o1"))),
	)

	activityBytes, err := vocab.Marshal(activity)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		ob := &mockOutbox{activityID: activity.ID().URL()}

		h := NewPostOutbox(cfg, ob, mocks.NewSignatureVerifier(serviceIRI))

		rw := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, outboxURL, bytes.NewReader(activityBytes))

		h.handlePost(rw, req)

		result := rw.Result()
		require.Equal(t, http.StatusCreated, result.StatusCode)
		require.Equal(t, activity.ID().String(), result.Header.Get("Location"))
		require.NoError(t, result.Body.Close())

		require.NotNil(t, ob.postedActivity)
		require.Equal(t, activity.ID().String(), ob.postedActivity.ID().String())
	})

	t.Run("Plain object is wrapped in a Create", func(t *testing.T) {
		obj, e := vocab.NewObjectWithDocument(
			vocab.Document{"content": "Hello"},
			vocab.WithType(vocab.TypeNote),
			vocab.WithID(testutil.MustParseURL("https://example.com/objects/note1")),
		)
		require.NoError(t, e)

		objBytes, e := vocab.Marshal(obj)
		require.NoError(t, e)

		ob := &mockOutbox{activityID: aptestutil.NewActivityID(serviceIRI)}

		h := NewPostOutbox(cfg, ob, mocks.NewSignatureVerifier(serviceIRI))

		rw := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, outboxURL, bytes.NewReader(objBytes))

		h.handlePost(rw, req)

		result := rw.Result()
		require.Equal(t, http.StatusCreated, result.StatusCode)
		require.NoError(t, result.Body.Close())

		require.NotNil(t, ob.postedActivity)
		require.True(t, ob.postedActivity.Type().Is(vocab.TypeCreate))
		require.Equal(t, serviceIRI.String(), ob.postedActivity.Actor().String())
	})

	t.Run("Unauthorized", func(t *testing.T) {
		h := NewPostOutbox(cfg, &mockOutbox{}, mocks.NewSignatureVerifier(nil))

		rw := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, outboxURL, bytes.NewReader(activityBytes))

		h.handlePost(rw, req)

		result := rw.Result()
		require.Equal(t, http.StatusUnauthorized, result.StatusCode)
		require.NoError(t, result.Body.Close())
	})

	t.Run("Signature of another actor -> unauthorized", func(t *testing.T) {
		h := NewPostOutbox(cfg, &mockOutbox{},
			mocks.NewSignatureVerifier(testutil.MustParseURL("https://other.example.com/services/actor")))

		rw := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, outboxURL, bytes.NewReader(activityBytes))

		h.handlePost(rw, req)

		result := rw.Result()
		require.Equal(t, http.StatusUnauthorized, result.StatusCode)
		require.NoError(t, result.Body.Close())
	})

	t.Run("Invalid activity -> bad request", func(t *testing.T) {
		h := NewPostOutbox(cfg, &mockOutbox{}, mocks.NewSignatureVerifier(serviceIRI))

		rw := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, outboxURL, bytes.NewReader([]byte("[")))

		h.handlePost(rw, req)

		result := rw.Result()
		require.Equal(t, http.StatusBadRequest, result.StatusCode)
		require.NoError(t, result.Body.Close())
	})

	t.Run("Outbox bad request error", func(t *testing.T) {
		ob := &mockOutbox{err: apperrors.NewBadRequestf("missing actor")}

		h := NewPostOutbox(cfg, ob, mocks.NewSignatureVerifier(serviceIRI))

		rw := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, outboxURL, bytes.NewReader(activityBytes))

		h.handlePost(rw, req)

		result := rw.Result()
		require.Equal(t, http.StatusBadRequest, result.StatusCode)
		require.NoError(t, result.Body.Close())
	})

	t.Run("Outbox error", func(t *testing.T) {
		ob := &mockOutbox{err: errors.New("injected outbox error")}

		h := NewPostOutbox(cfg, ob, mocks.NewSignatureVerifier(serviceIRI))

		rw := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, outboxURL, bytes.NewReader(activityBytes))

		h.handlePost(rw, req)

		result := rw.Result()
		require.Equal(t, http.StatusInternalServerError, result.StatusCode)
		require.NoError(t, result.Body.Close())
	})
}

type mockOutbox struct {
	activityID     *url.URL
	err            error
	postedActivity *vocab.ActivityType
}

func (m *mockOutbox) Post(_ context.Context, activity *vocab.ActivityType,
	_ ...*url.URL) (*url.URL, error) {
	if m.err != nil {
		return nil, m.err
	}

	m.postedActivity = activity

	return m.activityID, nil
}
