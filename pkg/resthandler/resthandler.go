/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package resthandler provides the REST endpoints of an ActivityPub service:
// the actor document, the inbox and outbox collections, and the reference
// collections (followers, following, liked, likes, shares).
package resthandler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/httpserver/auth"
	"github.com/fedikit/fedikit/pkg/restapi/common"
	store "github.com/fedikit/fedikit/pkg/store/spi"
)

var logger = log.New("activitypub_resthandler")

const (
	// ActorPath is the base path of the actor document endpoint.
	ActorPath = "/services/actor"
	// InboxPath is the base path of the inbox endpoint.
	InboxPath = ActorPath + "/inbox"
	// OutboxPath is the base path of the outbox endpoint.
	OutboxPath = ActorPath + "/outbox"
	// FollowersPath is the base path of the followers endpoint.
	FollowersPath = ActorPath + "/followers"
	// FollowingPath is the base path of the following endpoint.
	FollowingPath = ActorPath + "/following"
	// LikedPath is the base path of the liked endpoint.
	LikedPath = ActorPath + "/liked"
	// SharesPath is the base path of the shares endpoint.
	SharesPath = "/shares/{id}"
	// LikesPath is the base path of the likes endpoint.
	LikesPath = "/likes/{id}"
	// ActivitiesPath is the base path of the activities endpoint.
	ActivitiesPath = "/activities/{id}"
)

const (
	pageParam    = "page"
	pageNumParam = "page-num"
	idParam      = "id"

	defaultPageSize = 50

	notFoundResponse            = "Not Found.\n"
	unauthorizedResponse        = "Unauthorized.\n"
	badRequestResponse          = "Bad Request.\n"
	internalServerErrorResponse = "Internal Server Error.\n"
)

// Config holds the configuration parameters for the REST handlers.
type Config struct {
	BasePath           string
	ObjectIRI          *url.URL
	ServiceEndpointURL *url.URL
	PageSize           int
	SortOrder          store.SortOrder
	AuthTokens         auth.Config
}

type handler struct {
	*Config

	endpoint      string
	activityStore store.Store
	handleRequest common.HTTPRequestHandler
	auth          *AuthHandler
	marshal       func(v interface{}) ([]byte, error)
	writeResponse func(w http.ResponseWriter, status int, body []byte)
	logger        *log.Log
}

func newHandler(endpoint string, cfg *Config, s store.Store, h common.HTTPRequestHandler,
	verifier signatureVerifier, authorizeActor authorizeActorFunc) *handler {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}

	ep := cfg.BasePath + endpoint

	hLogger := log.New(loggerModule, log.WithFields(logfields.WithServiceEndpoint(ep)))

	return &handler{
		Config:        cfg,
		endpoint:      ep,
		activityStore: s,
		handleRequest: h,
		auth:          NewAuthHandler(cfg, ep, http.MethodGet, verifier, authorizeActor),
		marshal:       json.Marshal,
		writeResponse: func(w http.ResponseWriter, status int, body []byte) {
			w.Header().Set(contentTypeHeader, activityStreamsContentType)

			w.WriteHeader(status)

			if len(body) > 0 {
				if _, err := w.Write(body); err != nil {
					hLogger.Warn("Unable to write response", log.WithError(err))
				}
			}
		},
		logger: hLogger,
	}
}

// Path returns the base path of the target URL for this handler.
func (h *handler) Path() string {
	return h.endpoint
}

// Method returns the HTTP method, which is always GET.
func (h *handler) Method() string {
	return http.MethodGet
}

// Handler returns the handler that should be invoked when an HTTP GET is
// requested to the target endpoint. This handler must be registered with an
// HTTP server.
func (h *handler) Handler() common.HTTPRequestHandler {
	return h.handleRequest
}

func (h *handler) isPaging(req *http.Request) bool {
	return req.URL.Query().Get(pageParam) == "true"
}

func (h *handler) getPageNum(req *http.Request) (int, bool) {
	values := req.URL.Query()[pageNumParam]
	if len(values) == 0 || values[0] == "" {
		return 0, false
	}

	pageNum, err := strconv.Atoi(values[0])
	if err != nil {
		h.logger.Debug("Invalid page-num parameter. Will use the first page.",
			logfields.WithParameter(values[0]), log.WithError(err))

		return 0, false
	}

	if pageNum < 0 {
		return 0, false
	}

	return pageNum, true
}

const (
	loggerModule = "activitypub_resthandler"

	contentTypeHeader          = "Content-Type"
	activityStreamsContentType = `application/ld+json; profile="https://www.w3.org/ns/activitystreams"`
)

func pageURL(collIRI *url.URL, pageNum int) *url.URL {
	pageURL := *collIRI

	q := pageURL.Query()
	q.Set(pageParam, "true")

	if pageNum >= 0 {
		q.Set(pageNumParam, strconv.Itoa(pageNum))
	}

	pageURL.RawQuery = q.Encode()

	return &pageURL
}
