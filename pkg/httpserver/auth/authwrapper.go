/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package auth

import (
	"net/http"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/fedikit/fedikit/pkg/restapi/common"
)

const unauthorizedResponse = "Unauthorized.\n"

// HandlerWrapper performs bearer token authorization before invoking the
// wrapped handler.
type HandlerWrapper struct {
	common.HTTPHandler

	verifier *TokenVerifier
}

// NewHandlerWrapper returns a handler that authorizes the request with a bearer token and,
// if authorized, invokes the wrapped handler.
func NewHandlerWrapper(cfg Config, handler common.HTTPHandler) *HandlerWrapper {
	return &HandlerWrapper{
		HTTPHandler: handler,
		verifier:    NewTokenVerifier(cfg, handler.Path(), handler.Method()),
	}
}

// Handler returns the authorizing handler.
func (h *HandlerWrapper) Handler() common.HTTPRequestHandler {
	handleRequest := h.HTTPHandler.Handler()

	return func(w http.ResponseWriter, req *http.Request) {
		if !h.verifier.Verify(req) {
			w.WriteHeader(http.StatusUnauthorized)

			if _, err := w.Write([]byte(unauthorizedResponse)); err != nil {
				logger.Warn("Unable to write response", log.WithError(err))
			}

			return
		}

		handleRequest(w, req)
	}
}
