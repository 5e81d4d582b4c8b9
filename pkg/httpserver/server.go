/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/restapi/common"
)

var (
	logger = log.New("httpserver")

	// BuildVersion contains the version of the FediKit build.
	BuildVersion string
)

const healthCheckEndpoint = "/healthcheck"

// HTTPHandler defines an HTTP request handler that may be registered with the server.
type HTTPHandler = common.HTTPHandler

type mqService interface {
	IsConnected() bool
}

type dbService interface {
	Ping() error
}

// Server implements an HTTP server.
type Server struct {
	httpServer *http.Server
	started    uint32
	certFile   string
	keyFile    string
	mqService  mqService
	dbService  dbService
}

// New returns a new HTTP server. The MQ and DB services (either of which may be nil)
// are probed by the health check endpoint.
func New(url, certFile, keyFile string, serverIdleTimeout, serverReadHeaderTimeout time.Duration,
	mqSvc mqService, dbSvc dbService, handlers ...HTTPHandler) *Server {
	s := &Server{
		certFile:  certFile,
		keyFile:   keyFile,
		mqService: mqSvc,
		dbService: dbSvc,
	}

	router := mux.NewRouter()

	router.Use(otelmux.Middleware("fedikit"))

	for _, handler := range handlers {
		logger.Info("Registering handler", logfields.WithServiceEndpoint(handler.Path()))

		router.HandleFunc(handler.Path(), handler.Handler()).
			Methods(handler.Method()).
			Queries(params(handler)...)
	}

	router.HandleFunc(healthCheckEndpoint, s.healthCheckHandler).Methods(http.MethodGet)

	handler := cors.New(
		cors.Options{
			AllowedMethods: []string{
				http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
			},
			AllowedHeaders: []string{"*"},
		},
	).Handler(router)

	http2Server := &http2.Server{
		IdleTimeout: serverIdleTimeout,
		CountError: func(errType string) {
			logger.Error("HTTP2 server error", logfields.WithError(errors.New(errType)))
		},
	}

	httpServ := &http.Server{
		Addr:              url,
		Handler:           h2c.NewHandler(handler, http2Server),
		IdleTimeout:       serverIdleTimeout,
		ReadHeaderTimeout: serverReadHeaderTimeout,
	}

	s.httpServer = httpServ

	return s
}

// Start starts the HTTP server in a separate Go routine.
func (s *Server) Start() error {
	if !atomic.CompareAndSwapUint32(&s.started, 0, 1) {
		return fmt.Errorf("server already started")
	}

	go func() {
		logger.Info("Listening for requests", logfields.WithAddress(s.httpServer.Addr))

		var err error
		if s.keyFile != "" && s.certFile != "" {
			err = s.httpServer.ListenAndServeTLS(s.certFile, s.keyFile)
		} else {
			err = s.httpServer.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(fmt.Sprintf("Failed to start server on [%s]: %s", s.httpServer.Addr, err))
		}

		atomic.StoreUint32(&s.started, 0)

		logger.Info("Server has stopped")
	}()

	return nil
}

// Stop stops the REST service.
func (s *Server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapUint32(&s.started, 1, 0) {
		return fmt.Errorf("cannot stop HTTP server since it hasn't been started")
	}

	return s.httpServer.Shutdown(ctx)
}

type healthCheckResp struct {
	MQStatus    string    `json:"mqStatus,omitempty"`
	DBStatus    string    `json:"dbStatus,omitempty"`
	CurrentTime time.Time `json:"currentTime,omitempty"`
}

const (
	statusSuccess      = "success"
	statusNotConnected = "not connected"
	statusUnknownError = "unknown error"
)

func (s *Server) healthCheckHandler(rw http.ResponseWriter, _ *http.Request) {
	status := http.StatusOK

	resp := &healthCheckResp{
		CurrentTime: time.Now(),
	}

	if s.mqService != nil {
		if s.mqService.IsConnected() {
			resp.MQStatus = statusSuccess
		} else {
			resp.MQStatus = statusNotConnected
			status = http.StatusServiceUnavailable
		}
	}

	if s.dbService != nil {
		if err := s.dbService.Ping(); err != nil {
			resp.DBStatus = err.Error()
			if resp.DBStatus == "" {
				resp.DBStatus = statusUnknownError
			}

			status = http.StatusServiceUnavailable
		} else {
			resp.DBStatus = statusSuccess
		}
	}

	rw.WriteHeader(status)

	if err := json.NewEncoder(rw).Encode(resp); err != nil {
		logger.Error("Healthcheck response failure", logfields.WithError(err))
	}
}

type paramHolder interface {
	Params() map[string]string
}

func params(handler HTTPHandler) []string {
	var queries []string

	if p, ok := handler.(paramHolder); ok {
		for name, value := range p.Params() {
			queries = append(queries, name, value)
		}
	}

	return queries
}
