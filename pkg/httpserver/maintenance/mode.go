/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package maintenance takes endpoints out of service without shutting the
// server down: a wrapped handler answers every request with 503 (Service
// Unavailable) while the remaining endpoints stay registered as usual.
package maintenance

import (
	"net/http"

	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/restapi/common"
)

var logger = log.New("maintenance")

const serviceUnavailableResponse = "Service Unavailable.\n"

// HandlerWrapper answers requests to the wrapped endpoint with 503.
type HandlerWrapper struct {
	common.HTTPHandler
}

// NewMaintenanceWrapper returns a wrapper that takes the given handler's endpoint out of service.
func NewMaintenanceWrapper(handler common.HTTPHandler) *HandlerWrapper {
	logger.Info("Endpoint is in maintenance mode", logfields.WithServiceEndpoint(handler.Path()))

	return &HandlerWrapper{HTTPHandler: handler}
}

// Handler returns a handler that responds with 503 (Service Unavailable).
func (h *HandlerWrapper) Handler() common.HTTPRequestHandler {
	return func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)

		if _, err := w.Write([]byte(serviceUnavailableResponse)); err != nil {
			logfields.WriteResponseBodyError(logger, err)
		}
	}
}
