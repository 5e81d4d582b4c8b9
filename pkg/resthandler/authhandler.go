/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resthandler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/httpserver/auth"
)

type signatureVerifier interface {
	VerifyRequest(req *http.Request) (bool, *url.URL, error)
}

type authorizeActorFunc func(actorIRI *url.URL) (bool, error)

// AuthHandler authorizes requests with bearer tokens or HTTP signatures.
type AuthHandler struct {
	*Config

	endpoint       string
	tokenVerifier  *auth.TokenVerifier
	verifier       signatureVerifier
	authorizeActor authorizeActorFunc
	logger         *log.Log
}

// NewAuthHandler returns an AuthHandler for the given endpoint and method. A
// nil authorizeActor allows any actor whose signature verifies.
func NewAuthHandler(cfg *Config, endpoint, method string, verifier signatureVerifier,
	authorizeActor authorizeActorFunc) *AuthHandler {
	if authorizeActor == nil {
		authorizeActor = func(*url.URL) (bool, error) { return true, nil }
	}

	return &AuthHandler{
		Config:         cfg,
		endpoint:       endpoint,
		tokenVerifier:  auth.NewTokenVerifier(cfg.AuthTokens, endpoint, method),
		verifier:       verifier,
		authorizeActor: authorizeActor,
		logger:         log.New(loggerModule, log.WithFields(logfields.WithServiceEndpoint(endpoint))),
	}
}

// Authorize authorizes the request with a bearer token or, failing that, an
// HTTP signature. The returned actor IRI is the IRI of the actor that signed
// the request (the service itself for a bearer token).
func (h *AuthHandler) Authorize(req *http.Request) (bool, *url.URL, error) {
	if h.tokenVerifier.Verify(req) {
		h.logger.Debug("Authorization succeeded using bearer token")

		// The bearer of the token is assumed to be this service. If it isn't
		// then validation should fail in subsequent checks.
		return true, h.ObjectIRI, nil
	}

	if h.verifier == nil {
		return false, nil, nil
	}

	ok, actorIRI, err := h.verifier.VerifyRequest(req)
	if err != nil {
		return false, nil, fmt.Errorf("verify HTTP signature: %w", err)
	}

	if !ok {
		h.logger.Debug("Authorization failed using HTTP signature.")

		return false, nil, nil
	}

	ok, err = h.authorizeActor(actorIRI)
	if err != nil {
		return false, nil, fmt.Errorf("authorize actor [%s]: %w", actorIRI, err)
	}

	return ok, actorIRI, nil
}
