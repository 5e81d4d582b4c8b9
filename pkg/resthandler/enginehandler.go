/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resthandler

import (
	"net/http"
	"net/url"

	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/restapi/common"
)

type engine interface {
	HandlePostInbox(w http.ResponseWriter, r *http.Request, inboxIRI *url.URL) (bool, error)
	HandlePostOutbox(w http.ResponseWriter, r *http.Request, outboxIRI *url.URL) (bool, error)
	HandleGetInbox(w http.ResponseWriter, r *http.Request) (bool, error)
	HandleGetOutbox(w http.ResponseWriter, r *http.Request) (bool, error)
}

// EngineHandler adapts one of the engine's HTTP orchestration functions to an
// endpoint handler. The engine performs its own authentication via the
// configured delegates and writes the full response; a request that is not an
// ActivityPub request is rejected with 415.
type EngineHandler struct {
	endpoint string
	method   string
	handle   func(w http.ResponseWriter, r *http.Request) (bool, error)
	logger   *log.Log
}

// NewEnginePostInbox returns an endpoint handler that runs the engine's
// inbox POST orchestration synchronously, without a message queue.
func NewEnginePostInbox(cfg *Config, eng engine) *EngineHandler {
	inboxIRI := cfg.ServiceEndpointURL.JoinPath("inbox")

	return newEngineHandler(cfg, InboxPath, http.MethodPost,
		func(w http.ResponseWriter, r *http.Request) (bool, error) {
			return eng.HandlePostInbox(w, r, inboxIRI)
		})
}

// NewEnginePostOutbox returns an endpoint handler that runs the engine's
// outbox POST orchestration synchronously, without a message queue.
func NewEnginePostOutbox(cfg *Config, eng engine) *EngineHandler {
	outboxIRI := cfg.ServiceEndpointURL.JoinPath("outbox")

	return newEngineHandler(cfg, OutboxPath, http.MethodPost,
		func(w http.ResponseWriter, r *http.Request) (bool, error) {
			return eng.HandlePostOutbox(w, r, outboxIRI)
		})
}

// NewEngineGetInbox returns an endpoint handler that serves the inbox
// collection through the engine's GetInbox delegate.
func NewEngineGetInbox(cfg *Config, eng engine) *EngineHandler {
	return newEngineHandler(cfg, InboxPath, http.MethodGet, eng.HandleGetInbox)
}

// NewEngineGetOutbox returns an endpoint handler that serves the outbox
// collection through the engine's GetOutbox delegate.
func NewEngineGetOutbox(cfg *Config, eng engine) *EngineHandler {
	return newEngineHandler(cfg, OutboxPath, http.MethodGet, eng.HandleGetOutbox)
}

func newEngineHandler(cfg *Config, path, method string,
	handle func(w http.ResponseWriter, r *http.Request) (bool, error)) *EngineHandler {
	ep := cfg.BasePath + path

	return &EngineHandler{
		endpoint: ep,
		method:   method,
		handle:   handle,
		logger:   log.New(loggerModule, log.WithFields(logfields.WithServiceEndpoint(ep))),
	}
}

// Path returns the base path of the target URL for this handler.
func (h *EngineHandler) Path() string {
	return h.endpoint
}

// Method returns the HTTP method.
func (h *EngineHandler) Method() string {
	return h.method
}

// Handler returns the handler function. This handler must be registered with
// an HTTP server.
func (h *EngineHandler) Handler() common.HTTPRequestHandler {
	return h.handleRequest
}

func (h *EngineHandler) handleRequest(w http.ResponseWriter, r *http.Request) {
	handled, err := h.handle(w, r)
	if err != nil {
		h.logger.Warn("Error handling request", logfields.WithRequestURL(r.URL), log.WithError(err))

		w.WriteHeader(http.StatusInternalServerError)

		if _, e := w.Write([]byte(internalServerErrorResponse)); e != nil {
			h.logger.Warn("Unable to write response", log.WithError(e))
		}

		return
	}

	if !handled {
		// Not an ActivityPub request.
		w.WriteHeader(http.StatusUnsupportedMediaType)
	}
}
