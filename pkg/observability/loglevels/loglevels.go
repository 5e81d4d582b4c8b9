/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package loglevels exposes the logging spec over REST so that log levels can
// be inspected and changed on a running server. The spec has the format
// "module1=level1:module2=level2:defaultLevel".
package loglevels

import (
	"io"
	"net/http"

	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/restapi/common"
)

const (
	logLevelsPath               = "/loglevels"
	internalServerErrorResponse = "Internal Server Error.\n"
	badRequestResponse          = "Bad Request.\n"
)

type endpoint struct {
	method string
	logger *log.Log
}

// Method returns the HTTP method.
func (e *endpoint) Method() string {
	return e.method
}

// Path returns the HTTP path.
func (e *endpoint) Path() string {
	return logLevelsPath
}

func (e *endpoint) writeResponse(w http.ResponseWriter, status int, body []byte) {
	w.WriteHeader(status)

	if len(body) == 0 {
		return
	}

	if _, err := w.Write(body); err != nil {
		e.logger.Warn("Unable to write response", log.WithError(err))

		return
	}

	e.logger.Debug("Wrote response", log.WithResponse(body))
}

// WriteHandler updates the logging spec from the POSTed request body.
type WriteHandler struct {
	endpoint
}

// NewWriteHandler returns a new log levels POST handler.
func NewWriteHandler() *WriteHandler {
	return &WriteHandler{
		endpoint: endpoint{
			method: http.MethodPost,
			logger: log.New("loglevels", log.WithFields(logfields.WithServiceEndpoint(logLevelsPath))),
		},
	}
}

// Handler returns the HTTP handler.
func (h *WriteHandler) Handler() common.HTTPRequestHandler {
	return h.handlePost
}

func (h *WriteHandler) handlePost(w http.ResponseWriter, req *http.Request) {
	specBytes, err := io.ReadAll(req.Body)
	if err != nil {
		h.logger.Error("Error reading request body", log.WithError(err))

		h.writeResponse(w, http.StatusInternalServerError, []byte(internalServerErrorResponse))

		return
	}

	spec := string(specBytes)

	if err := log.SetSpec(spec); err != nil {
		h.logger.Warn("Error setting logging spec", logfields.WithLogSpec(spec), log.WithError(err))

		h.writeResponse(w, http.StatusBadRequest, []byte(badRequestResponse))

		return
	}

	h.logger.Info("Updated logging spec", logfields.WithLogSpec(log.GetSpec()))

	h.writeResponse(w, http.StatusOK, nil)
}

// ReadHandler returns the current logging spec.
type ReadHandler struct {
	endpoint
}

// NewReadHandler returns a new log levels GET handler.
func NewReadHandler() *ReadHandler {
	return &ReadHandler{
		endpoint: endpoint{
			method: http.MethodGet,
			logger: log.New("loglevels", log.WithFields(logfields.WithServiceEndpoint(logLevelsPath))),
		},
	}
}

// Handler returns the HTTP handler.
func (h *ReadHandler) Handler() common.HTTPRequestHandler {
	return h.handleGet
}

func (h *ReadHandler) handleGet(w http.ResponseWriter, _ *http.Request) {
	h.writeResponse(w, http.StatusOK, []byte(log.GetSpec()))
}
