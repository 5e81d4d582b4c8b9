/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wrapper

import (
	"errors"
	"testing"

	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	noopmetrics "github.com/fedikit/fedikit/pkg/observability/metrics/noop"
	storemocks "github.com/fedikit/fedikit/pkg/store/mocks"
)

func TestProvider(t *testing.T) {
	s := NewProvider(&mockProvider{store: &storemocks.Store{}}, "Mem", &noopmetrics.NoOpMetrics{})
	require.NotNil(t, s)

	t.Run("open store", func(t *testing.T) {
		store, err := s.OpenStore("s1")
		require.NoError(t, err)
		require.IsType(t, &StoreWrapper{}, store)
	})

	t.Run("get store config", func(t *testing.T) {
		_, err := s.GetStoreConfig("s1")
		require.NoError(t, err)
	})

	t.Run("set store config", func(t *testing.T) {
		require.NoError(t, s.SetStoreConfig("s1", storage.StoreConfiguration{}))
	})

	t.Run("get open stores", func(t *testing.T) {
		require.Nil(t, s.GetOpenStores())
	})

	t.Run("create custom indexes", func(t *testing.T) {
		err := s.CreateCustomIndexes("s1", mongo.IndexModel{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "does not support custom indexes")
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, s.Ping())
	})

	t.Run("close", func(t *testing.T) {
		require.NoError(t, s.Close())
	})
}

func TestProvider_MongoDB(t *testing.T) {
	errExpected := errors.New("injected provider error")

	p := &mockMongoDBProvider{
		mockProvider: &mockProvider{store: &storemocks.MongoDBStore{}},
		pingErr:      errExpected,
		indexErr:     errExpected,
	}

	s := NewProvider(p, "MongoDB", &noopmetrics.NoOpMetrics{})
	require.NotNil(t, s)

	t.Run("open store", func(t *testing.T) {
		store, err := s.OpenStore("s1")
		require.NoError(t, err)
		require.IsType(t, &MongoDBStoreWrapper{}, store)
	})

	t.Run("open store error", func(t *testing.T) {
		p.openErr = errExpected
		defer func() { p.openErr = nil }()

		_, err := s.OpenStore("s1")
		require.ErrorIs(t, err, errExpected)
	})

	t.Run("create custom indexes", func(t *testing.T) {
		require.ErrorIs(t, s.CreateCustomIndexes("s1", mongo.IndexModel{}), errExpected)
	})

	t.Run("ping", func(t *testing.T) {
		require.ErrorIs(t, s.Ping(), errExpected)
	})
}

// mockProvider is a mocked implementation of the Aries storage provider.
type mockProvider struct {
	store   storage.Store
	openErr error
}

func (p *mockProvider) OpenStore(string) (storage.Store, error) {
	if p.openErr != nil {
		return nil, p.openErr
	}

	return p.store, nil
}

func (p *mockProvider) SetStoreConfig(string, storage.StoreConfiguration) error {
	return nil
}

func (p *mockProvider) GetStoreConfig(string) (storage.StoreConfiguration, error) {
	return storage.StoreConfiguration{}, nil
}

func (p *mockProvider) GetOpenStores() []storage.Store {
	return nil
}

func (p *mockProvider) Close() error {
	return nil
}

// mockMongoDBProvider also implements the MongoDB-specific provider API.
type mockMongoDBProvider struct {
	*mockProvider

	pingErr  error
	indexErr error
}

func (p *mockMongoDBProvider) CreateCustomIndexes(string, ...mongo.IndexModel) error {
	return p.indexErr
}

func (p *mockMongoDBProvider) Ping() error {
	return p.pingErr
}
