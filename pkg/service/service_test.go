/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fedikit/fedikit/pkg/internal/aptestutil"
	"github.com/fedikit/fedikit/pkg/internal/testutil"
	"github.com/fedikit/fedikit/pkg/lifecycle"
	"github.com/fedikit/fedikit/pkg/observability/metrics/noop"
	"github.com/fedikit/fedikit/pkg/pubsub/mempubsub"
	"github.com/fedikit/fedikit/pkg/restapi/common"
	"github.com/fedikit/fedikit/pkg/service/mocks"
	"github.com/fedikit/fedikit/pkg/service/spi"
	"github.com/fedikit/fedikit/pkg/store/memstore"
	"github.com/fedikit/fedikit/pkg/vocab"
)

var (
	service1IRI = testutil.MustParseURL("https://service1.example.com/services/actor")
	service2IRI = testutil.MustParseURL("https://service2.example.com/services/actor")
)

func TestNew(t *testing.T) {
	cfg := &Config{
		ServiceName:     "service1",
		ServiceEndpoint: "/services/actor/inbox",
		InboxIRI:        service1IRI.JoinPath("inbox"),
		OutboxIRI:       service1IRI.JoinPath("outbox"),
	}

	actx := &spi.Context{Store: memstore.New("service1", service1IRI)}

	t.Run("Success", func(t *testing.T) {
		svc, err := New(cfg, actx, mocks.NewPubSub(), nil,
			mocks.NewSignatureVerifier(service2IRI), &noop.NoOpMetrics{})
		require.NoError(t, err)
		require.NotNil(t, svc)
		require.NotNil(t, svc.Engine())
		require.NotNil(t, svc.Outbox())
		require.NotNil(t, svc.InboxHTTPHandler())
		require.NotNil(t, svc.Subscribe())
	})

	t.Run("PubSub subscribe error", func(t *testing.T) {
		errExpected := errors.New("injected PubSub error")

		svc, err := New(cfg, actx, mocks.NewPubSub().WithError(errExpected), nil,
			mocks.NewSignatureVerifier(service2IRI), &noop.NoOpMetrics{})
		require.Error(t, err)
		require.True(t, errors.Is(err, errExpected))
		require.Nil(t, svc)
	})
}

// TestService_Federation posts an activity to service1's outbox and verifies
// that it lands in service2's inbox via the delivery pipeline: outbox side
// effects, recipient resolution, signed delivery to the remote inbox endpoint
// and the receive-side effects on the other end.
func TestService_Federation(t *testing.T) {
	bridge := newTransportBridge()

	svc1, store1 := newTestService(t, "service1", service1IRI, bridge)
	svc2, store2 := newTestService(t, "service2", service2IRI, bridge)

	bridge.addActor(t, service1IRI)
	bridge.addActor(t, service2IRI)

	bridge.addInboxHandler(service2IRI.JoinPath("inbox"), svc2.InboxHTTPHandler())
	bridge.addInboxHandler(service1IRI.JoinPath("inbox"), svc1.InboxHTTPHandler())

	svc1.Start()
	defer svc1.Stop()

	svc2.Start()
	defer svc2.Stop()

	require.Equal(t, lifecycle.StateStarted, svc1.State())
	require.Equal(t, lifecycle.StateStarted, svc2.State())

	received := svc2.Subscribe()

	activity := vocab.NewCreateActivity(
		vocab.NewObjectProperty(vocab.WithObject(aptestutil.NewMockObject(t, service1IRI))),
		vocab.WithActor(service1IRI),
		vocab.WithTo(service2IRI),
	)

	id, err := svc1.Outbox().Post(context.Background(), activity)
	require.NoError(t, err)
	require.NotNil(t, id)

	select {
	case a := <-received:
		require.Equal(t, id.String(), a.ID().String())
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for activity to be received by service2")
	}

	// The activity is in service1's outbox and service2's inbox.
	require.Eventually(t, func() bool {
		contains, e := store1.CollectionContains(context.Background(),
			service1IRI.JoinPath("outbox"), id)

		return e == nil && contains
	}, 5*time.Second, 50*time.Millisecond)

	require.Eventually(t, func() bool {
		contains, e := store2.CollectionContains(context.Background(),
			service2IRI.JoinPath("inbox"), id)

		return e == nil && contains
	}, 5*time.Second, 50*time.Millisecond)
}

func newTestService(t *testing.T, name string, serviceIRI *url.URL,
	bridge *transportBridge) (*Service, *memstore.Store) {
	t.Helper()

	activityStore := memstore.New(name, serviceIRI)

	require.NoError(t, activityStore.PutActor(context.Background(),
		vocab.NewService(serviceIRI,
			vocab.WithInbox(serviceIRI.JoinPath("inbox")),
			vocab.WithOutbox(serviceIRI.JoinPath("outbox")),
		)))

	pubSub := mempubsub.New(mempubsub.DefaultConfig())
	t.Cleanup(func() {
		require.NoError(t, pubSub.Close())
	})

	actx := &spi.Context{
		Federated:          &mockFederated{},
		FederatedCallbacks: &spi.Callbacks{},
		SocialCallbacks:    &spi.Callbacks{},
		Store:              activityStore,
		Transport:          bridge,
		AppAgent:           "FediKit",
	}

	svc, err := New(
		&Config{
			ServiceName:     name,
			ServiceEndpoint: "/services/actor/inbox",
			InboxIRI:        serviceIRI.JoinPath("inbox"),
			OutboxIRI:       serviceIRI.JoinPath("outbox"),
		},
		actx, pubSub, nil, mocks.NewSignatureVerifier(serviceIRI), &noop.NoOpMetrics{},
	)
	require.NoError(t, err)

	return svc, activityStore
}

// transportBridge connects the services in a test directly to each other's
// inbox handlers, standing in for the signed HTTP transport.
type transportBridge struct {
	mutex     sync.RWMutex
	documents map[string][]byte
	handlers  map[string]common.HTTPHandler
}

func newTransportBridge() *transportBridge {
	return &transportBridge{
		documents: make(map[string][]byte),
		handlers:  make(map[string]common.HTTPHandler),
	}
}

func (b *transportBridge) addActor(t *testing.T, serviceIRI *url.URL) {
	t.Helper()

	doc, err := vocab.Marshal(vocab.NewService(serviceIRI,
		vocab.WithInbox(serviceIRI.JoinPath("inbox")),
		vocab.WithOutbox(serviceIRI.JoinPath("outbox")),
	))
	require.NoError(t, err)

	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.documents[serviceIRI.String()] = doc
}

func (b *transportBridge) addInboxHandler(inboxIRI *url.URL, handler common.HTTPHandler) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.handlers[inboxIRI.String()] = handler
}

func (b *transportBridge) NewTransport(boxIRI *url.URL, appAgent string) (spi.Transport, error) {
	return b, nil
}

func (b *transportBridge) Dereference(ctx context.Context, iri *url.URL) ([]byte, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	doc, ok := b.documents[iri.String()]
	if !ok {
		return nil, fmt.Errorf("not found: %s", iri)
	}

	return doc, nil
}

func (b *transportBridge) Deliver(ctx context.Context, payload []byte, toIRI *url.URL) error {
	b.mutex.RLock()
	handler, ok := b.handlers[toIRI.String()]
	b.mutex.RUnlock()

	if !ok {
		return fmt.Errorf("no inbox handler for [%s]", toIRI)
	}

	rw := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, toIRI.String(), bytes.NewReader(payload))

	handler.Handler()(rw, req)

	result := rw.Result()
	defer result.Body.Close()

	if result.StatusCode != http.StatusOK {
		return fmt.Errorf("deliver to [%s]: status code %d", toIRI, result.StatusCode)
	}

	return nil
}

func (b *transportBridge) BatchDeliver(ctx context.Context, payload []byte, recipients []*url.URL) error {
	for _, r := range recipients {
		if err := b.Deliver(ctx, payload, r); err != nil {
			return err
		}
	}

	return nil
}

type mockFederated struct {
	spi.FederatedProtocol
}

func (m *mockFederated) Blocked(ctx context.Context, actx *spi.Context, actorIRIs []*url.URL) (bool, error) {
	return false, nil
}

func (m *mockFederated) OnFollow(actx *spi.Context) spi.OnFollowPolicy {
	return spi.OnFollowAutoAccept
}

func (m *mockFederated) FederatedCallbacks(actx *spi.Context) (*spi.Callbacks, error) {
	return &spi.Callbacks{}, nil
}

func (m *mockFederated) MaxInboxForwardingRecursionDepth(actx *spi.Context) int {
	return 4
}

func (m *mockFederated) MaxDeliveryRecursionDepth(actx *spi.Context) int {
	return 2
}

func (m *mockFederated) FilterForwarding(ctx context.Context, actx *spi.Context, recipients []*url.URL,
	activity *vocab.ActivityType) ([]*url.URL, error) {
	return nil, nil
}
