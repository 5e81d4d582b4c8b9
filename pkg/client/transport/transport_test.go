/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package transport

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fedikit/fedikit/pkg/client/mocks"
	"github.com/fedikit/fedikit/pkg/internal/testutil"
)

const (
	publicKeyID = "https://alice.example.com/services/activity/keys/main-key"
	inboxURL    = "https://bob.example.com/services/activity/inbox"
	actorURL    = "https://bob.example.com/services/activity"
)

func TestNew(t *testing.T) {
	_, privKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	tp := New(http.DefaultClient, privKey, testutil.MustParseURL(publicKeyID),
		DefaultSigner(), DefaultSigner())
	require.NotNil(t, tp)
}

func TestNewRequest(t *testing.T) {
	req := NewRequest(
		testutil.MustParseURL(actorURL),
		WithHeader(AcceptHeader, ActivityStreamsContentType),
	)
	require.NotNil(t, req)
	require.Equal(t, []string{ActivityStreamsContentType}, req.Header[AcceptHeader])
}

func TestDefault(t *testing.T) {
	require.NotNil(t, Default())
}

func TestTransportPost(t *testing.T) {
	httpClient := &mocks.HTTPClient{}
	httpClient.DoReturns(&http.Response{StatusCode: http.StatusOK}, nil)

	_, privKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		tp := New(httpClient, privKey, testutil.MustParseURL(publicKeyID),
			DefaultSigner(), DefaultSigner())
		require.NotNil(t, tp)

		payload := []byte(`{"@context":"https://www.w3.org/ns/activitystreams","type":"Create"}`)

		req := NewRequest(testutil.MustParseURL(inboxURL),
			WithHeader(ContentTypeHeader, ActivityStreamsContentType))

		//nolint:bodyclose
		resp, err := tp.Post(context.Background(), req, payload)
		require.NoError(t, err)
		require.NotNil(t, resp)

		httpReq := httpClient.DoArgsForCall(httpClient.DoCallCount() - 1)
		require.Equal(t, http.MethodPost, httpReq.Method)
		require.Equal(t, inboxURL, httpReq.URL.String())
		require.Equal(t, ActivityStreamsContentType, httpReq.Header.Get(ContentTypeHeader))

		body, err := io.ReadAll(httpReq.Body)
		require.NoError(t, err)
		require.Equal(t, payload, body)
	})

	t.Run("Sign error", func(t *testing.T) {
		errExpected := errors.New("injected signer error")

		signer := &mocks.HTTPSigner{}
		signer.SignRequestReturns(errExpected)

		tp := New(httpClient, privKey, testutil.MustParseURL(publicKeyID), signer, signer)
		require.NotNil(t, tp)

		//nolint:bodyclose
		resp, err := tp.Post(context.Background(), NewRequest(testutil.MustParseURL(inboxURL)), nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), errExpected.Error())
		require.Nil(t, resp)
	})
}

func TestTransportGet(t *testing.T) {
	httpClient := &mocks.HTTPClient{}
	httpClient.DoReturns(&http.Response{StatusCode: http.StatusOK}, nil)

	_, privKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		tp := New(httpClient, privKey, testutil.MustParseURL(publicKeyID),
			DefaultSigner(), DefaultSigner())
		require.NotNil(t, tp)

		req := NewRequest(testutil.MustParseURL(actorURL),
			WithHeader(AcceptHeader, ActivityStreamsContentType))

		//nolint:bodyclose
		resp, err := tp.Get(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, resp)

		httpReq := httpClient.DoArgsForCall(httpClient.DoCallCount() - 1)
		require.Equal(t, http.MethodGet, httpReq.Method)
		require.Equal(t, actorURL, httpReq.URL.String())
		require.Equal(t, ActivityStreamsContentType, httpReq.Header.Get(AcceptHeader))
	})

	t.Run("Sign error", func(t *testing.T) {
		errExpected := errors.New("injected signer error")

		signer := &mocks.HTTPSigner{}
		signer.SignRequestReturns(errExpected)

		tp := New(httpClient, privKey, testutil.MustParseURL(publicKeyID), signer, signer)
		require.NotNil(t, tp)

		//nolint:bodyclose
		resp, err := tp.Get(context.Background(), NewRequest(testutil.MustParseURL(actorURL)))
		require.Error(t, err)
		require.Contains(t, err.Error(), errExpected.Error())
		require.Nil(t, resp)
	})
}
