/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resthandler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	store "github.com/fedikit/fedikit/pkg/store/spi"
)

// Actor implements the REST handler that retrieves the actor (service) document.
type Actor struct {
	*handler
}

// NewActor returns a new actor document REST handler.
func NewActor(cfg *Config, s store.Store) *Actor {
	h := &Actor{}

	h.handler = newHandler(ActorPath, cfg, s, h.handle, nil, nil)

	return h
}

func (h *Actor) handle(w http.ResponseWriter, req *http.Request) {
	actor, err := h.activityStore.GetActor(req.Context(), h.ObjectIRI)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeResponse(w, http.StatusNotFound, []byte(notFoundResponse))

			return
		}

		h.logger.Error("Error retrieving actor", logfields.WithActorIRI(h.ObjectIRI), log.WithError(err))

		h.writeResponse(w, http.StatusInternalServerError, []byte(internalServerErrorResponse))

		return
	}

	actorBytes, err := h.marshal(actor)
	if err != nil {
		h.logger.Error("Unable to marshal actor", logfields.WithActorIRI(h.ObjectIRI), log.WithError(err))

		h.writeResponse(w, http.StatusInternalServerError, []byte(internalServerErrorResponse))

		return
	}

	h.writeResponse(w, http.StatusOK, actorBytes)
}

// Activity implements the REST handler that retrieves a single activity by id.
type Activity struct {
	*handler
}

// NewActivity returns a new activity REST handler.
func NewActivity(cfg *Config, s store.Store, verifier signatureVerifier) *Activity {
	h := &Activity{}

	h.handler = newHandler(ActivitiesPath, cfg, s, h.handle, verifier, nil)

	return h
}

func (h *Activity) handle(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)[idParam]
	if id == "" {
		h.writeResponse(w, http.StatusBadRequest, []byte(badRequestResponse))

		return
	}

	activityIRI := h.ServiceEndpointURL.JoinPath("activities", id)

	activity, err := h.activityStore.GetActivity(req.Context(), activityIRI)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.logger.Debug("Activity not found", logfields.WithActivityID(activityIRI))

			h.writeResponse(w, http.StatusNotFound, []byte(notFoundResponse))

			return
		}

		h.logger.Error("Error retrieving activity", logfields.WithActivityID(activityIRI), log.WithError(err))

		h.writeResponse(w, http.StatusInternalServerError, []byte(internalServerErrorResponse))

		return
	}

	activityBytes, err := h.marshal(activity)
	if err != nil {
		h.logger.Error("Unable to marshal activity", logfields.WithActivityID(activityIRI), log.WithError(err))

		h.writeResponse(w, http.StatusInternalServerError, []byte(internalServerErrorResponse))

		return
	}

	h.writeResponse(w, http.StatusOK, activityBytes)
}
