/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resthandler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/addressing"
	apperrors "github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/restapi/common"
	"github.com/fedikit/fedikit/pkg/vocab"
)

type outbox interface {
	Post(ctx context.Context, activity *vocab.ActivityType, exclude ...*url.URL) (*url.URL, error)
}

// Outbox implements a REST handler for posts to a service's outbox. The
// activity is posted to the outbox service, which applies the side effects
// and delivers the activity asynchronously.
type Outbox struct {
	*Config

	endpoint      string
	ob            outbox
	auth          *AuthHandler
	marshal       func(v interface{}) ([]byte, error)
	writeResponse func(w http.ResponseWriter, status int, body []byte)
	logger        *log.Log
}

// NewPostOutbox returns a new REST handler to post activities to the outbox.
func NewPostOutbox(cfg *Config, ob outbox, verifier signatureVerifier) *Outbox {
	ep := cfg.BasePath + OutboxPath

	hLogger := log.New(loggerModule, log.WithFields(logfields.WithServiceEndpoint(ep)))

	h := &Outbox{
		Config:   cfg,
		endpoint: ep,
		ob:       ob,
		marshal:  json.Marshal,
		writeResponse: func(w http.ResponseWriter, status int, body []byte) {
			w.WriteHeader(status)

			if len(body) > 0 {
				if _, err := w.Write(body); err != nil {
					hLogger.Warn("Unable to write response", log.WithError(err))
				}
			}
		},
		logger: hLogger,
	}

	// Only this service's own actor may post to the outbox.
	h.auth = NewAuthHandler(cfg, ep, http.MethodPost, verifier,
		func(actorIRI *url.URL) (bool, error) {
			return actorIRI.String() == cfg.ObjectIRI.String(), nil
		})

	return h
}

// Method returns the HTTP method, which is always POST.
func (h *Outbox) Method() string {
	return http.MethodPost
}

// Path returns the base path of the target URL for this handler.
func (h *Outbox) Path() string {
	return h.endpoint
}

// Handler returns the handler that should be invoked when an HTTP POST is
// requested to the target endpoint. This handler must be registered with an
// HTTP server.
func (h *Outbox) Handler() common.HTTPRequestHandler {
	return h.handlePost
}

func (h *Outbox) handlePost(w http.ResponseWriter, req *http.Request) {
	ok, _, err := h.auth.Authorize(req)
	if err != nil {
		h.logger.Error("Error authorizing request", log.WithError(err), logfields.WithRequestURL(req.URL))

		h.writeResponse(w, http.StatusInternalServerError, []byte(internalServerErrorResponse))

		return
	}

	if !ok {
		h.logger.Info("Unauthorized", logfields.WithRequestURL(req.URL))

		h.writeResponse(w, http.StatusUnauthorized, []byte(unauthorizedResponse))

		return
	}

	activityBytes, err := io.ReadAll(req.Body)
	if err != nil {
		h.logger.Error("Error reading request body", log.WithError(err), logfields.WithRequestURL(req.URL))

		h.writeResponse(w, http.StatusInternalServerError, []byte(internalServerErrorResponse))

		return
	}

	activity, err := h.unmarshalActivity(activityBytes)
	if err != nil {
		h.logger.Debug("Invalid activity", log.WithError(err))

		h.writeResponse(w, http.StatusBadRequest, []byte(badRequestResponse))

		return
	}

	activityID, err := h.ob.Post(req.Context(), activity)
	if err != nil {
		if apperrors.IsBadRequest(err) {
			h.logger.Debug("Error posting activity", log.WithError(err))

			h.writeResponse(w, http.StatusBadRequest, []byte(badRequestResponse))
		} else {
			h.logger.Error("Error posting activity", log.WithError(err))

			h.writeResponse(w, http.StatusInternalServerError, []byte(internalServerErrorResponse))
		}

		return
	}

	w.Header().Set("Location", activityID.String())

	h.writeResponse(w, http.StatusCreated, nil)
}

// unmarshalActivity unmarshals the posted document. A document that is not an
// activity is wrapped in a Create, attributed to this service's actor.
func (h *Outbox) unmarshalActivity(activityBytes []byte) (*vocab.ActivityType, error) {
	activity := &vocab.ActivityType{}

	if err := vocab.UnmarshalJSON(activityBytes, activity); err != nil {
		return nil, err
	}

	if activity.Type().IsActivity() {
		return activity, nil
	}

	obj := &vocab.ObjectType{}

	if err := vocab.UnmarshalJSON(activityBytes, obj); err != nil {
		return nil, err
	}

	return addressing.WrapInCreate(obj, h.ObjectIRI), nil
}
