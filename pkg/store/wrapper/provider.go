/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wrapper

import (
	"fmt"

	"github.com/hyperledger/aries-framework-go/spi/storage"
	"go.mongodb.org/mongo-driver/mongo"
)

type indexProvider interface {
	CreateCustomIndexes(storeName string, model ...mongo.IndexModel) error
}

type pingProvider interface {
	Ping() error
}

// ProviderWrapper wraps an Aries storage provider. The stores that it opens
// record metrics on each operation.
type ProviderWrapper struct {
	p      storage.Provider
	m      metricsProvider
	dbType string
}

// NewProvider returns a new provider wrapper.
func NewProvider(p storage.Provider, dbType string, metrics metricsProvider) *ProviderWrapper {
	return &ProviderWrapper{p: p, m: metrics, dbType: dbType}
}

// OpenStore opens the store with the given name. If the underlying store supports
// the MongoDB-specific API then the returned store exposes that API as well.
func (prov *ProviderWrapper) OpenStore(name string) (storage.Store, error) {
	s, err := prov.p.OpenStore(name)
	if err != nil {
		return nil, err
	}

	if ms, ok := s.(mongoDBStore); ok {
		return NewMongoDBStore(ms, prov.m), nil
	}

	return NewStore(s, prov.dbType, prov.m), nil
}

// SetStoreConfig sets the configuration on the store with the given name.
func (prov *ProviderWrapper) SetStoreConfig(name string, config storage.StoreConfiguration) error {
	return prov.p.SetStoreConfig(name, config)
}

// GetStoreConfig returns the configuration of the store with the given name.
func (prov *ProviderWrapper) GetStoreConfig(name string) (storage.StoreConfiguration, error) {
	return prov.p.GetStoreConfig(name)
}

// GetOpenStores returns all stores that are currently open.
func (prov *ProviderWrapper) GetOpenStores() []storage.Store {
	return prov.p.GetOpenStores()
}

// CreateCustomIndexes creates indexes on the given store using the MongoDB-specific API
// of the underlying provider.
func (prov *ProviderWrapper) CreateCustomIndexes(storeName string, model ...mongo.IndexModel) error {
	p, ok := prov.p.(indexProvider)
	if !ok {
		return fmt.Errorf("provider [%s] does not support custom indexes", prov.dbType)
	}

	return p.CreateCustomIndexes(storeName, model...)
}

// Ping verifies that the database is reachable. Providers that have no notion of
// connectivity always succeed.
func (prov *ProviderWrapper) Ping() error {
	if p, ok := prov.p.(pingProvider); ok {
		return p.Ping()
	}

	return nil
}

// Close closes the provider.
func (prov *ProviderWrapper) Close() error {
	return prov.p.Close()
}
