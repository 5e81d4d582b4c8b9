/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenVerifier(t *testing.T) {
	cfg := Config{
		AuthTokensDef: []*TokenDef{
			{
				EndpointExpression: "/services/actor/outbox",
				ReadTokens:         []string{"admin", "read"},
				WriteTokens:        []string{"admin"},
			},
			{
				EndpointExpression: "/services/actor/inbox",
				ReadTokens:         []string{"admin", "read"},
				WriteTokens:        []string{"admin"},
			},
		},
		AuthTokens: map[string]string{
			"read":  "READ_TOKEN",
			"admin": "ADMIN_TOKEN",
		},
	}

	t.Run("Success", func(t *testing.T) {
		v := NewTokenVerifier(cfg, "/services/actor/outbox", http.MethodPost)
		require.NotNil(t, v)

		req := httptest.NewRequest(http.MethodPost, "/services/actor/outbox", nil)
		req.Header[authHeader] = []string{tokenPrefix + "ADMIN_TOKEN"}

		require.True(t, v.Verify(req))
	})

	t.Run("Read token on POST -> unauthorized", func(t *testing.T) {
		v := NewTokenVerifier(cfg, "/services/actor/outbox", http.MethodPost)
		require.NotNil(t, v)

		req := httptest.NewRequest(http.MethodPost, "/services/actor/outbox", nil)
		req.Header[authHeader] = []string{tokenPrefix + "READ_TOKEN"}

		require.False(t, v.Verify(req))
	})

	t.Run("No auth token -> unauthorized", func(t *testing.T) {
		v := NewTokenVerifier(cfg, "/services/actor/inbox", http.MethodGet)
		require.NotNil(t, v)

		req := httptest.NewRequest(http.MethodGet, "/services/actor/inbox", nil)

		require.False(t, v.Verify(req))
	})

	t.Run("Invalid auth token -> unauthorized", func(t *testing.T) {
		v := NewTokenVerifier(cfg, "/services/actor/inbox", http.MethodGet)
		require.NotNil(t, v)

		req := httptest.NewRequest(http.MethodGet, "/services/actor/inbox", nil)
		req.Header[authHeader] = []string{tokenPrefix + "INVALID_TOKEN"}

		require.False(t, v.Verify(req))
	})

	t.Run("Open access -> success", func(t *testing.T) {
		v := NewTokenVerifier(cfg, "/services/actor/followers", http.MethodGet)
		require.NotNil(t, v)

		req := httptest.NewRequest(http.MethodGet, "/services/actor/followers", nil)

		require.True(t, v.Verify(req))
	})

	t.Run("Token not found -> panic", func(t *testing.T) {
		badCfg := Config{
			AuthTokensDef: []*TokenDef{
				{
					EndpointExpression: "/services/actor/outbox",
					WriteTokens:        []string{"undefined"},
				},
			},
		}

		require.Panics(t, func() {
			NewTokenVerifier(badCfg, "/services/actor/outbox", http.MethodPost)
		})
	})

	t.Run("Invalid endpoint expression -> panic", func(t *testing.T) {
		badCfg := Config{
			AuthTokensDef: []*TokenDef{
				{
					EndpointExpression: "(",
				},
			},
		}

		require.Panics(t, func() {
			NewTokenVerifier(badCfg, "/services/actor/outbox", http.MethodPost)
		})
	})
}
