/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resthandler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fedikit/fedikit/pkg/httpserver/auth"
	"github.com/fedikit/fedikit/pkg/internal/testutil"
	"github.com/fedikit/fedikit/pkg/store/memstore"
)

var serviceIRI = testutil.MustParseURL("https://example.com/services/actor")

const adminToken = "ADMIN_TOKEN"

// newAuthConfig returns a token configuration that protects every endpoint
// under the actor path. Without it the token verifier grants open access,
// which would bypass the signature verifier.
func newAuthConfig() auth.Config {
	return auth.Config{
		AuthTokensDef: []*auth.TokenDef{
			{
				EndpointExpression: "/services/actor",
				ReadTokens:         []string{"admin"},
				WriteTokens:        []string{"admin"},
			},
		},
		AuthTokens: map[string]string{"admin": adminToken},
	}
}

func TestHandler_Accessors(t *testing.T) {
	cfg := &Config{
		ObjectIRI:          serviceIRI,
		ServiceEndpointURL: serviceIRI,
	}

	h := newHandler(FollowersPath, cfg, memstore.New("service1", serviceIRI),
		func(http.ResponseWriter, *http.Request) {}, nil, nil)

	require.Equal(t, "/services/actor/followers", h.Path())
	require.Equal(t, http.MethodGet, h.Method())
	require.NotNil(t, h.Handler())
	require.Equal(t, defaultPageSize, h.PageSize)
}

func TestHandler_BasePath(t *testing.T) {
	cfg := &Config{
		BasePath:           "/instance1",
		ObjectIRI:          serviceIRI,
		ServiceEndpointURL: serviceIRI,
		PageSize:           4,
	}

	h := newHandler(InboxPath, cfg, memstore.New("service1", serviceIRI),
		func(http.ResponseWriter, *http.Request) {}, nil, nil)

	require.Equal(t, "/instance1/services/actor/inbox", h.Path())
	require.Equal(t, 4, h.PageSize)
}

func TestHandler_PageParams(t *testing.T) {
	cfg := &Config{
		ObjectIRI:          serviceIRI,
		ServiceEndpointURL: serviceIRI,
		PageSize:           4,
	}

	h := newHandler(OutboxPath, cfg, memstore.New("service1", serviceIRI),
		func(http.ResponseWriter, *http.Request) {}, nil, nil)

	t.Run("No paging", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "https://example.com/services/actor/outbox", nil)

		require.False(t, h.isPaging(req))
	})

	t.Run("Paging with page-num", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"https://example.com/services/actor/outbox?page=true&page-num=3", nil)

		require.True(t, h.isPaging(req))

		pageNum, ok := h.getPageNum(req)
		require.True(t, ok)
		require.Equal(t, 3, pageNum)
	})

	t.Run("Invalid page-num", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"https://example.com/services/actor/outbox?page=true&page-num=invalid", nil)

		pageNum, ok := h.getPageNum(req)
		require.False(t, ok)
		require.Equal(t, 0, pageNum)
	})

	t.Run("Negative page-num", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"https://example.com/services/actor/outbox?page=true&page-num=-2", nil)

		pageNum, ok := h.getPageNum(req)
		require.False(t, ok)
		require.Equal(t, 0, pageNum)
	})
}

func TestPageURL(t *testing.T) {
	collIRI := testutil.MustParseURL("https://example.com/services/actor/followers")

	require.Equal(t, "https://example.com/services/actor/followers?page=true",
		pageURL(collIRI, -1).String())

	require.Equal(t, "https://example.com/services/actor/followers?page=true&page-num=2",
		pageURL(collIRI, 2).String())
}
