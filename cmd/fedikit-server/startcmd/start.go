/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"context"
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hyperledger/aries-framework-go-ext/component/storage/mongodb"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/internal/pkg/tlsutil"
	"github.com/fedikit/fedikit/pkg/client"
	"github.com/fedikit/fedikit/pkg/client/transport"
	"github.com/fedikit/fedikit/pkg/httpserver"
	"github.com/fedikit/fedikit/pkg/httpserver/auth"
	"github.com/fedikit/fedikit/pkg/httpserver/maintenance"
	"github.com/fedikit/fedikit/pkg/httpsig"
	"github.com/fedikit/fedikit/pkg/observability/loglevels"
	"github.com/fedikit/fedikit/pkg/observability/metrics"
	"github.com/fedikit/fedikit/pkg/observability/metrics/noop"
	"github.com/fedikit/fedikit/pkg/observability/metrics/prometheus"
	"github.com/fedikit/fedikit/pkg/observability/tracing"
	"github.com/fedikit/fedikit/pkg/pubsub/amqp"
	"github.com/fedikit/fedikit/pkg/pubsub/mempubsub"
	pubsubspi "github.com/fedikit/fedikit/pkg/pubsub/spi"
	"github.com/fedikit/fedikit/pkg/restapi/common"
	"github.com/fedikit/fedikit/pkg/resthandler"
	"github.com/fedikit/fedikit/pkg/service"
	"github.com/fedikit/fedikit/pkg/service/spi"
	"github.com/fedikit/fedikit/pkg/store/ariesstore"
	"github.com/fedikit/fedikit/pkg/store/memstore"
	storespi "github.com/fedikit/fedikit/pkg/store/spi"
	"github.com/fedikit/fedikit/pkg/store/wrapper"
	"github.com/fedikit/fedikit/pkg/vocab"
)

var logger = log.New("fedikit-server")

const (
	serviceName = "fedikit"
	userAgent   = "FediKit"

	mainKeyFragment = "#main-key"

	serverIdleTimeout       = 20 * time.Second
	serverReadHeaderTimeout = 20 * time.Second

	stopTimeout = 10 * time.Second
)

type dbService interface {
	Ping() error
}

type pubSub interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	SubscribeWithOpts(ctx context.Context, topic string, opts ...pubsubspi.Option) (<-chan *message.Message, error)
	Publish(topic string, messages ...*message.Message) error
	IsConnected() bool
	Close() error
}

// GetStartCmd returns the Cobra start command.
func GetStartCmd() *cobra.Command {
	startCmd := createStartCmd()

	createFlags(startCmd)

	return startCmd
}

func createStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start fedikit-server",
		Long:  "Start fedikit-server",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := getStartCmdParams(cmd)
			if err != nil {
				return err
			}

			return startServer(params)
		},
	}
}

//nolint:funlen,cyclop
func startServer(params *serverParams) error {
	tracer, err := tracing.Initialize(params.tracingProvider, serviceName, params.tracingCollectorURL)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}

	tracer.Start()
	defer tracer.Stop()

	metricsProvider := newMetricsProvider(params)

	if err = metricsProvider.Create(); err != nil {
		return fmt.Errorf("create metrics provider: %w", err)
	}

	defer func() {
		if e := metricsProvider.Destroy(); e != nil {
			logger.Warn("Error destroying metrics provider", log.WithError(e))
		}
	}()

	serviceIRI := params.externalEndpoint.JoinPath(resthandler.ActorPath)
	inboxIRI := params.externalEndpoint.JoinPath(resthandler.InboxPath)
	outboxIRI := params.externalEndpoint.JoinPath(resthandler.OutboxPath)

	activityStore, mongoDBProvider, err := newActivityStore(params, serviceIRI, metricsProvider.Metrics())
	if err != nil {
		return fmt.Errorf("create activity store: %w", err)
	}

	var dbSvc dbService

	if mongoDBProvider != nil {
		dbSvc = mongoDBProvider
	}

	privateKey, publicKeyPEM, err := loadPrivateKey(params.privateKeyPEM)
	if err != nil {
		return fmt.Errorf("load private key: %w", err)
	}

	publicKeyIRI, err := url.Parse(serviceIRI.String() + mainKeyFragment)
	if err != nil {
		return fmt.Errorf("parse public key IRI: %w", err)
	}

	rootCAs, err := tlsutil.GetCertPool(params.tlsSystemCertPool, params.tlsCACerts)
	if err != nil {
		return fmt.Errorf("create TLS cert pool: %w", err)
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				RootCAs:    rootCAs,
				MinVersion: tls.VersionTLS12,
			},
		},
	}

	keyResolver := transport.KeyResolverFunc(
		func(*url.URL) (crypto.PrivateKey, *url.URL, error) {
			return privateKey, publicKeyIRI, nil
		})

	tp := transport.NewProvider(httpClient, keyResolver,
		httpsig.NewSigner(httpsig.DefaultGetSignerConfig()),
		httpsig.NewSigner(httpsig.DefaultPostSignerConfig()),
	)

	t, err := tp.NewTransport(outboxIRI, userAgent)
	if err != nil {
		return fmt.Errorf("create transport: %w", err)
	}

	sigVerifier := httpsig.NewVerifier(client.New(client.Config{}, t))

	if err = storeActorDocument(activityStore, serviceIRI, publicKeyIRI, publicKeyPEM); err != nil {
		return fmt.Errorf("store actor document: %w", err)
	}

	pubSub := newPubSub(params)
	defer func() {
		if e := pubSub.Close(); e != nil {
			logger.Warn("Error closing publisher/subscriber", log.WithError(e))
		}
	}()

	app := newApp(serviceIRI, activityStore, sigVerifier, params.authTokens, params.followPolicy)

	actx := &spi.Context{
		Common:    app,
		Social:    app,
		Federated: app,
		Store:     activityStore,
		AppAgent:  userAgent,
	}

	svc, err := service.New(
		&service.Config{
			ServiceName:       serviceName,
			ServiceEndpoint:   resthandler.InboxPath,
			InboxIRI:          inboxIRI,
			OutboxIRI:         outboxIRI,
			MaxRecursionDepth: maxDeliveryDepth,
			AuthTokens:        params.authTokens,
		},
		actx, pubSub, tp, sigVerifier, metricsProvider.Metrics(),
	)
	if err != nil {
		return fmt.Errorf("create ActivityPub service: %w", err)
	}

	restCfg := &resthandler.Config{
		ObjectIRI:          serviceIRI,
		ServiceEndpointURL: serviceIRI,
		PageSize:           params.pageSize,
		AuthTokens:         params.authTokens,
	}

	httpServer := httpserver.New(
		params.hostURL,
		params.tlsCertificate,
		params.tlsKey,
		serverIdleTimeout,
		serverReadHeaderTimeout,
		pubSub, dbSvc,
		resthandler.NewActor(restCfg, activityStore),
		resthandler.NewInbox(restCfg, activityStore, sigVerifier),
		resthandler.NewOutbox(restCfg, activityStore, sigVerifier),
		resthandler.NewFollowers(restCfg, activityStore, sigVerifier),
		resthandler.NewFollowing(restCfg, activityStore, sigVerifier),
		resthandler.NewLiked(restCfg, activityStore, sigVerifier),
		resthandler.NewLikes(restCfg, activityStore, sigVerifier),
		resthandler.NewShares(restCfg, activityStore, sigVerifier),
		resthandler.NewActivity(restCfg, activityStore, sigVerifier),
		wrapWithMaintenance(params.maintenanceMode,
			resthandler.NewPostOutbox(restCfg, svc.Outbox(), sigVerifier)),
		wrapWithMaintenance(params.maintenanceMode, svc.InboxHTTPHandler()),
		loglevels.NewReadHandler(),
		auth.NewHandlerWrapper(params.authTokens, loglevels.NewWriteHandler()),
	)

	svc.Start()

	if err = httpServer.Start(); err != nil {
		svc.Stop()

		return fmt.Errorf("start HTTP server: %w", err)
	}

	logger.Info("Started fedikit-server", logfields.WithServiceIRI(serviceIRI))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-interrupt

	logger.Info("Shutting down fedikit-server")

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if err = httpServer.Stop(stopCtx); err != nil {
		logger.Warn("Error stopping HTTP server", log.WithError(err))
	}

	svc.Stop()

	return nil
}

func wrapWithMaintenance(enabled bool, handler common.HTTPHandler) common.HTTPHandler {
	if !enabled {
		return handler
	}

	return maintenance.NewMaintenanceWrapper(handler)
}

func newMetricsProvider(params *serverParams) metrics.Provider {
	if params.hostMetricsURL == "" {
		return noop.NewProvider()
	}

	metricsServer := httpserver.New(params.hostMetricsURL, "", "",
		serverIdleTimeout, serverReadHeaderTimeout, nil, nil,
		newMetricsHandler(),
	)

	return prometheus.NewPrometheusProvider(metricsServer)
}

func newActivityStore(params *serverParams, serviceIRI *url.URL,
	m metrics.Metrics) (storespi.Store, *wrapper.ProviderWrapper, error) {
	if params.databaseType == databaseTypeMem {
		return memstore.New(serviceName, serviceIRI), nil, nil
	}

	mongoProvider, err := mongodb.NewProvider(params.databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("create MongoDB provider: %w", err)
	}

	provider := wrapper.NewProvider(mongoProvider, "MongoDB", m)

	s, err := ariesstore.New(serviceName, serviceIRI, provider)
	if err != nil {
		return nil, nil, fmt.Errorf("create MongoDB activity store: %w", err)
	}

	return s, provider, nil
}

func newPubSub(params *serverParams) pubSub {
	if params.mqURL == "" {
		return mempubsub.New(mempubsub.DefaultConfig())
	}

	return amqp.New(amqp.Config{
		URI:                   params.mqURL,
		MaxConnectionChannels: params.mqMaxConnectionChannels,
	})
}

// loadPrivateKey decodes the configured PEM-encoded ed25519 key or, if none
// was provided, generates an ephemeral one. The corresponding public key is
// returned in PEM form for publication in the actor document.
func loadPrivateKey(keyPEM string) (ed25519.PrivateKey, string, error) {
	var privateKey ed25519.PrivateKey

	if keyPEM == "" {
		logger.Warn("No private key was provided. An ephemeral signing key will be " +
			"generated, and outbound requests will fail signature verification after a restart.")

		_, key, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, "", fmt.Errorf("generate key: %w", err)
		}

		privateKey = key
	} else {
		block, _ := pem.Decode([]byte(keyPEM))
		if block == nil {
			return nil, "", fmt.Errorf("invalid PEM-encoded private key")
		}

		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, "", fmt.Errorf("parse private key: %w", err)
		}

		edKey, ok := key.(ed25519.PrivateKey)
		if !ok {
			return nil, "", fmt.Errorf("private key is not an ed25519 key")
		}

		privateKey = edKey
	}

	publicKeyBytes, err := x509.MarshalPKIXPublicKey(privateKey.Public())
	if err != nil {
		return nil, "", fmt.Errorf("marshal public key: %w", err)
	}

	publicKeyPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicKeyBytes})

	return privateKey, string(publicKeyPEM), nil
}

// storeActorDocument writes this service's actor document so that the REST
// endpoints and remote services can resolve it.
func storeActorDocument(s storespi.Store, serviceIRI, publicKeyIRI *url.URL, publicKeyPEM string) error {
	publicKey := vocab.NewPublicKey(
		vocab.WithID(publicKeyIRI),
		vocab.WithOwner(serviceIRI),
		vocab.WithPublicKeyPem(publicKeyPEM),
	)

	actorDoc := vocab.NewService(serviceIRI,
		vocab.WithPublicKey(publicKey),
		vocab.WithInbox(serviceIRI.JoinPath("inbox")),
		vocab.WithOutbox(serviceIRI.JoinPath("outbox")),
		vocab.WithFollowers(serviceIRI.JoinPath("followers")),
		vocab.WithFollowing(serviceIRI.JoinPath("following")),
		vocab.WithLiked(serviceIRI.JoinPath("liked")),
	)

	return s.PutActor(context.Background(), actorDoc)
}

type metricsHandler struct{}

func newMetricsHandler() *metricsHandler {
	return &metricsHandler{}
}

func (h *metricsHandler) Path() string {
	return "/metrics"
}

func (h *metricsHandler) Method() string {
	return http.MethodGet
}

func (h *metricsHandler) Handler() common.HTTPRequestHandler {
	return promhttp.Handler().ServeHTTP
}
