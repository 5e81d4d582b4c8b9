/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package httpsubscriber

import (
	"context"
	"net/http"
	"net/url"

	wmhttp "github.com/ThreeDotsLabs/watermill-http/pkg/http"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/httpserver/auth"
	"github.com/fedikit/fedikit/pkg/lifecycle"
	"github.com/fedikit/fedikit/pkg/pubsub"
	"github.com/fedikit/fedikit/pkg/restapi/common"
)

const (
	// ActorIRIKey is the metadata key under which the authenticated actor IRI is passed
	// along with the message.
	ActorIRIKey = "actor-iri"

	defaultBufferSize = 100

	loggerModule = "activitypub_service"
)

// Config holds the HTTP subscriber configuration parameters.
type Config struct {
	ServiceEndpoint string
	BufferSize      int
	AuthTokens      auth.Config
}

type signatureVerifier interface {
	VerifyRequest(req *http.Request) (bool, *url.URL, error)
}

// Subscriber is a Watermill subscriber fed by HTTP requests. A request that passes
// authentication is converted to a message and published to the subscriber channel,
// and the HTTP response is held until the message is acked or nacked.
type Subscriber struct {
	*lifecycle.Lifecycle
	*Config

	pubChan          chan *message.Message
	msgChan          chan *message.Message
	stopped          chan struct{}
	done             chan struct{}
	unmarshalMessage wmhttp.UnmarshalMessageFunc
	verifier         signatureVerifier
	tokenVerifier    *auth.TokenVerifier
	logger           *log.Log
}

// New returns a new HTTP subscriber.
func New(cfg *Config, sigVerifier signatureVerifier) *Subscriber {
	if cfg.BufferSize == 0 {
		cfg.BufferSize = defaultBufferSize
	}

	s := &Subscriber{
		Config:           cfg,
		unmarshalMessage: wmhttp.DefaultUnmarshalMessageFunc,
		verifier:         sigVerifier,
		pubChan:          make(chan *message.Message, cfg.BufferSize),
		msgChan:          make(chan *message.Message, cfg.BufferSize),
		stopped:          make(chan struct{}),
		done:             make(chan struct{}),
		tokenVerifier:    auth.NewTokenVerifier(cfg.AuthTokens, cfg.ServiceEndpoint, http.MethodPost),
		logger:           log.New(loggerModule, log.WithFields(logfields.WithServiceEndpoint(cfg.ServiceEndpoint))),
	}

	s.Lifecycle = lifecycle.New("httpsubscriber-"+cfg.ServiceEndpoint,
		lifecycle.WithStop(s.stop),
		lifecycle.WithStart(func() {
			go s.publisher()
		}),
	)

	// Start the service immediately.
	s.Start()

	return s
}

// Subscribe returns the channel over which incoming messages are sent.
func (s *Subscriber) Subscribe(_ context.Context, _ string) (<-chan *message.Message, error) {
	return s.msgChan, nil
}

// Close stops the subscriber.
func (s *Subscriber) Close() error {
	s.Stop()

	return nil
}

// Path returns the base path of the target endpoint for this subscriber.
func (s *Subscriber) Path() string {
	return s.ServiceEndpoint
}

// Method returns the HTTP method, which is always POST.
func (s *Subscriber) Method() string {
	return http.MethodPost
}

// Handler returns the handler that should be invoked when an HTTP request is posted
// to the target endpoint. This handler must be registered with an HTTP server.
func (s *Subscriber) Handler() common.HTTPRequestHandler {
	return s.handleMessage
}

func (s *Subscriber) handleMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorIRI, status := s.authenticate(r)
	if status != http.StatusOK {
		w.WriteHeader(status)

		return
	}

	msg, err := s.unmarshalMessage("", r)
	if err != nil {
		s.logger.Warnc(ctx, "Error reading message", log.WithError(err), logfields.WithSenderURL(r.URL))

		w.WriteHeader(http.StatusBadRequest)

		return
	}

	if actorIRI != nil {
		msg.Metadata[ActorIRIKey] = actorIRI.String()
	}

	s.logger.Debugc(ctx, "Handling message", logfields.WithMessageID(msg.UUID),
		logfields.WithActorIRI(actorIRI), logfields.WithSenderURL(r.URL))

	pubsub.InjectContext(ctx, msg)

	if err := s.publish(msg); err != nil {
		s.logger.Infoc(ctx, "Message wasn't sent", logfields.WithMessageID(msg.UUID), log.WithError(err),
			logfields.WithSenderURL(r.URL))

		w.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	s.respond(msg, w, r)
}

// authenticate authorizes the request with a bearer token or, failing that, an HTTP
// signature. The actor IRI is returned if the request was authenticated with an
// HTTP signature.
func (s *Subscriber) authenticate(r *http.Request) (*url.URL, int) {
	ctx := r.Context()

	if s.tokenVerifier.Verify(r) {
		s.logger.Debugc(ctx, "Request was verified with a bearer token or no authorization was required.",
			logfields.WithSenderURL(r.URL))

		return nil, http.StatusOK
	}

	s.logger.Debugc(ctx, "Request was not verified using authorization bearer tokens. Verifying request via HTTP signature",
		logfields.WithSenderURL(r.URL))

	verified, actorIRI, err := s.verifier.VerifyRequest(r)
	if err != nil {
		s.logger.Errorc(ctx, "Error verifying HTTP signature", log.WithError(err), logfields.WithSenderURL(r.URL))

		return nil, http.StatusInternalServerError
	}

	if !verified {
		s.logger.Infoc(ctx, "Invalid HTTP signature", logfields.WithSenderURL(r.URL))

		return nil, http.StatusUnauthorized
	}

	return actorIRI, http.StatusOK
}

func (s *Subscriber) publish(msg *message.Message) error {
	if s.State() != lifecycle.StateStarted {
		return lifecycle.ErrNotStarted
	}

	s.pubChan <- msg

	return nil
}

func (s *Subscriber) publisher() {
	s.logger.Info("Starting publisher.")

	for {
		select {
		case msg := <-s.pubChan:
			s.msgChan <- msg

			s.logger.Debug("Message was delivered to subscriber", logfields.WithMessageID(msg.UUID))

		case <-s.stopped:
			s.logger.Info("Stopping publisher.")

			close(s.done)

			return
		}
	}
}

func (s *Subscriber) respond(msg *message.Message, w http.ResponseWriter, r *http.Request) {
	select {
	case <-msg.Acked():
		s.logger.Debug("Ack received for message", logfields.WithMessageID(msg.UUID))

		w.WriteHeader(http.StatusOK)

	case <-msg.Nacked():
		s.logger.Warn("Nack received for message", logfields.WithMessageID(msg.UUID))

		w.WriteHeader(http.StatusInternalServerError)

	case <-r.Context().Done():
		s.logger.Info("Timed out waiting for ack or nack for message",
			logfields.WithMessageID(msg.UUID), log.WithError(r.Context().Err()))

		w.WriteHeader(http.StatusInternalServerError)

	case <-s.stopped:
		s.logger.Info("Message was not handled since service was stopped", logfields.WithMessageID(msg.UUID))

		w.WriteHeader(http.StatusServiceUnavailable)
	}
}

func (s *Subscriber) stop() {
	s.logger.Info("Stopping HTTP subscriber")

	close(s.stopped)

	// Wait for the publisher to stop so that we don't close the message channel
	// while we're trying to publish to it.
	<-s.done

	close(s.msgChan)

	s.logger.Info("... HTTP subscriber stopped.")
}
