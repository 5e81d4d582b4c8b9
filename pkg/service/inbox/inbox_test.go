/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package inbox

import (
	"bytes"
	"context"
	"errors"
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
	"github.com/fedikit/fedikit/pkg/pubsub/mempubsub"
	"github.com/fedikit/fedikit/pkg/service/mocks"
	"github.com/fedikit/fedikit/pkg/service/spi"
	"github.com/fedikit/fedikit/pkg/vocab"
)

var (
	service1IRI = testutil.MustParseURL("https://service1.example.com/services/actor")
	service2IRI = testutil.MustParseURL("https://service2.example.com/services/actor")
)

func TestNew(t *testing.T) {
	cfg := &Config{
		ServiceEndpoint: "/services/actor/inbox",
		InboxIRI:        service1IRI.JoinPath("inbox"),
		Topic:           "inbox-activities",
	}

	t.Run("Success", func(t *testing.T) {
		ib, err := New(cfg, &spi.Context{}, mocks.NewPubSub(), &mockReceiver{},
			mocks.NewSignatureVerifier(service2IRI))
		require.NoError(t, err)
		require.NotNil(t, ib)
		require.NotNil(t, ib.HTTPHandler())
	})

	t.Run("PubSub subscribe error", func(t *testing.T) {
		errExpected := errors.New("injected PubSub error")

		ib, err := New(cfg, &spi.Context{}, mocks.NewPubSub().WithError(errExpected), &mockReceiver{},
			mocks.NewSignatureVerifier(service2IRI))
		require.Error(t, err)
		require.True(t, errors.Is(err, errExpected))
		require.Nil(t, ib)
	})
}

func TestInbox_ReceiveActivity(t *testing.T) {
	cfg := &Config{
		ServiceEndpoint: "/services/actor/inbox",
		InboxIRI:        service1IRI.JoinPath("inbox"),
		Topic:           "inbox-activities",
	}

	newInbox := func(t *testing.T, actx *spi.Context, rcv *mockReceiver) *Inbox {
		t.Helper()

		pubSub := mempubsub.New(mempubsub.DefaultConfig())
		t.Cleanup(func() {
			require.NoError(t, pubSub.Close())
		})

		ib, err := New(cfg, actx, pubSub, rcv, mocks.NewSignatureVerifier(service2IRI))
		require.NoError(t, err)

		ib.Start()
		t.Cleanup(ib.Stop)

		return ib
	}

	post := func(t *testing.T, ib *Inbox, payload []byte) int {
		t.Helper()

		rw := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, cfg.ServiceEndpoint, bytes.NewReader(payload))

		ib.HTTPHandler().Handler()(rw, req)

		result := rw.Result()
		require.NoError(t, result.Body.Close())

		return result.StatusCode
	}

	t.Run("Success", func(t *testing.T) {
		rcv := &mockReceiver{}
		ib := newInbox(t, &spi.Context{}, rcv)

		activity := aptestutil.NewMockCreateActivity(service2IRI, service1IRI,
			vocab.NewObjectProperty(vocab.WithIRI(aptestutil.NewObjectID(service2IRI))))

		payload, err := vocab.Marshal(activity)
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, post(t, ib, payload))

		require.Eventually(t, func() bool {
			return rcv.Received(activity.ID().String())
		}, 5*time.Second, 50*time.Millisecond)
	})

	t.Run("Invalid activity payload -> dropped", func(t *testing.T) {
		rcv := &mockReceiver{}
		ib := newInbox(t, &spi.Context{}, rcv)

		require.Equal(t, http.StatusOK, post(t, ib, []byte("invalid payload")))

		time.Sleep(100 * time.Millisecond)

		require.Equal(t, 0, rcv.Count())
	})

	t.Run("Blocked actor -> dropped", func(t *testing.T) {
		rcv := &mockReceiver{}
		ib := newInbox(t, &spi.Context{
			Federated: &mockFederated{blocked: true},
		}, rcv)

		activity := aptestutil.NewMockCreateActivity(service2IRI, service1IRI,
			vocab.NewObjectProperty(vocab.WithIRI(aptestutil.NewObjectID(service2IRI))))

		payload, err := vocab.Marshal(activity)
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, post(t, ib, payload))

		time.Sleep(100 * time.Millisecond)

		require.False(t, rcv.Received(activity.ID().String()))
	})

	t.Run("Persistent receiver error -> dropped", func(t *testing.T) {
		rcv := &mockReceiver{err: errors.New("injected receiver error")}
		ib := newInbox(t, &spi.Context{}, rcv)

		activity := aptestutil.NewMockCreateActivity(service2IRI, service1IRI,
			vocab.NewObjectProperty(vocab.WithIRI(aptestutil.NewObjectID(service2IRI))))

		payload, err := vocab.Marshal(activity)
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, post(t, ib, payload))

		require.Eventually(t, func() bool {
			return rcv.Received(activity.ID().String())
		}, 5*time.Second, 50*time.Millisecond)

		// The message is acked on a persistent error, so the receiver sees it
		// exactly once.
		time.Sleep(100 * time.Millisecond)

		require.Equal(t, 1, rcv.Count())
	})
}

func TestInbox_StartStop(t *testing.T) {
	cfg := &Config{
		ServiceEndpoint: "/services/actor/inbox",
		InboxIRI:        service1IRI.JoinPath("inbox"),
		Topic:           "inbox-activities",
	}

	pubSub := mempubsub.New(mempubsub.DefaultConfig())
	defer func() {
		require.NoError(t, pubSub.Close())
	}()

	ib, err := New(cfg, &spi.Context{}, pubSub, &mockReceiver{}, mocks.NewSignatureVerifier(service2IRI))
	require.NoError(t, err)

	ib.Start()

	require.Equal(t, lifecycle.StateStarted, ib.State())

	ib.Stop()

	require.Equal(t, lifecycle.StateStopped, ib.State())
}

type mockReceiver struct {
	err error

	mutex    sync.Mutex
	received map[string]struct{}
	count    int
}

func (m *mockReceiver) Receive(ctx context.Context, actx *spi.Context, inboxIRI *url.URL,
	activity *vocab.ActivityType) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.received == nil {
		m.received = make(map[string]struct{})
	}

	m.received[activity.ID().String()] = struct{}{}
	m.count++

	return m.err
}

func (m *mockReceiver) Received(activityID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, ok := m.received[activityID]

	return ok
}

func (m *mockReceiver) Count() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.count
}

type mockFederated struct {
	spi.FederatedProtocol

	blocked bool
}

func (m *mockFederated) Blocked(ctx context.Context, actx *spi.Context, actorIRIs []*url.URL) (bool, error) {
	return m.blocked, nil
}
