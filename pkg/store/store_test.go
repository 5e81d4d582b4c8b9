/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package store

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/stretchr/testify/require"

	"github.com/fedikit/fedikit/pkg/store/mocks"
)

//nolint:lll
//go:generate counterfeiter -o ./mocks/store.gen.go --fake-name Store github.com/hyperledger/aries-framework-go/spi/storage.Store
//go:generate counterfeiter -o ./mocks/provider.gen.go --fake-name Provider github.com/hyperledger/aries-framework-go/spi/storage.Provider
//go:generate counterfeiter -o ./mocks/mongodbprovider.gen.go --fake-name MongoDBProvider . mongoDBTestProvider
//go:generate counterfeiter -o ./mocks/mongodbstore.gen.go --fake-name MongoDBStore . mongoDBTestStore
//go:generate counterfeiter -o ./mocks/mongodbiterator.gen.go --fake-name MongoDBIterator github.com/hyperledger/aries-framework-go-ext/component/storage/mongodb.Iterator

// mongoDBTestProvider is used to generate the mock MongoDBProvider.
//nolint:deadcode,unused
type mongoDBTestProvider interface {
	storage.Provider
	mongoDBProvider

	Ping() error
}

// mongoDBTestStore is used to generate the mock MongoDBStore.
//nolint:deadcode,unused
type mongoDBTestStore interface {
	mongoDBStore
}

const (
	testNamespace = "activity-ref"

	objectIRITag    = "objectIRI"
	refTypeTag      = "type"
	activityTypeTag = "activityType"
)

func TestOpen(t *testing.T) {
	t.Run("Standard store", func(t *testing.T) {
		t.Run("success", func(t *testing.T) {
			provider := &mocks.Provider{}
			provider.OpenStoreReturns(&mocks.Store{}, nil)

			s, err := Open(provider, testNamespace,
				NewTagGroup(objectIRITag, refTypeTag),
				NewTagGroup(activityTypeTag, objectIRITag),
			)
			require.NoError(t, err)
			require.NotNil(t, s)

			// A tag appearing in multiple groups must be registered only once.
			_, cfg := provider.SetStoreConfigArgsForCall(0)
			require.Equal(t, []string{objectIRITag, refTypeTag, activityTypeTag}, cfg.TagNames)
		})

		t.Run("SetStoreConfig error", func(t *testing.T) {
			errExpected := errors.New("injected SetStoreConfig error")

			provider := &mocks.Provider{}
			provider.OpenStoreReturns(&mocks.Store{}, nil)
			provider.SetStoreConfigReturns(errExpected)

			s, err := Open(provider, testNamespace, NewTagGroup(objectIRITag))
			require.Error(t, err)
			require.Contains(t, err.Error(), errExpected.Error())
			require.Nil(t, s)
		})
	})

	t.Run("MongoDB store", func(t *testing.T) {
		t.Run("No tags -> no indexes", func(t *testing.T) {
			provider := &mocks.MongoDBProvider{}
			provider.OpenStoreReturns(&mocks.MongoDBStore{}, nil)

			s, err := Open(provider, testNamespace)
			require.NoError(t, err)
			require.NotNil(t, s)
			require.Zero(t, provider.CreateCustomIndexesCallCount())
		})

		t.Run("One index per tag group", func(t *testing.T) {
			provider := &mocks.MongoDBProvider{}
			provider.OpenStoreReturns(&mocks.MongoDBStore{}, nil)

			s, err := Open(provider, testNamespace,
				NewTagGroup(objectIRITag, refTypeTag),
				NewTagGroup(activityTypeTag),
			)
			require.NoError(t, err)
			require.NotNil(t, s)
			require.Equal(t, 2, provider.CreateCustomIndexesCallCount())
		})

		t.Run("Non-MongoDB store from MongoDB provider -> generic store", func(t *testing.T) {
			provider := &mocks.MongoDBProvider{}
			provider.OpenStoreReturns(&mocks.Store{}, nil)

			s, err := Open(provider, testNamespace, NewTagGroup(objectIRITag))
			require.NoError(t, err)
			require.NotNil(t, s)
			require.Equal(t, 1, provider.SetStoreConfigCallCount())
		})

		t.Run("CreateCustomIndexes error", func(t *testing.T) {
			errExpected := errors.New("injected CreateCustomIndexes error")

			provider := &mocks.MongoDBProvider{}
			provider.OpenStoreReturns(&mocks.MongoDBStore{}, nil)
			provider.CreateCustomIndexesReturns(errExpected)

			s, err := Open(provider, testNamespace, NewTagGroup(objectIRITag))
			require.Error(t, err)
			require.Contains(t, err.Error(), errExpected.Error())
			require.Nil(t, s)
		})
	})

	t.Run("OpenStore error", func(t *testing.T) {
		errExpected := errors.New("injected OpenStore error")

		provider := &mocks.Provider{}
		provider.OpenStoreReturns(nil, errExpected)

		s, err := Open(provider, testNamespace, NewTagGroup(objectIRITag))
		require.Error(t, err)
		require.Contains(t, err.Error(), errExpected.Error())
		require.Nil(t, s)
	})
}

// openMongoDBStore opens a store backed by a mock MongoDB provider and returns
// the store along with the underlying mock.
func openMongoDBStore(t *testing.T) (storage.Store, *mocks.MongoDBStore) {
	t.Helper()

	store := &mocks.MongoDBStore{}

	provider := &mocks.MongoDBProvider{}
	provider.OpenStoreReturns(store, nil)

	s, err := Open(provider, testNamespace)
	require.NoError(t, err)
	require.NotNil(t, s)

	return s, store
}

func TestMongoDBPut(t *testing.T) {
	s, store := openMongoDBStore(t)

	const key = "https://alice.example.com/activities/77bdd005"

	t.Run("success", func(t *testing.T) {
		require.NoError(t, s.Put(key, []byte(`{"type":"Create"}`)))
	})

	t.Run("unmarshal error", func(t *testing.T) {
		require.Error(t, s.Put(key, []byte(`{`)))
	})

	t.Run("PutAsJSON error", func(t *testing.T) {
		errExpected := errors.New("injected PutAsJSON error")

		store.PutAsJSONReturns(errExpected)

		err := s.Put(key, []byte(`{"type":"Create"}`))
		require.Error(t, err)
		require.Contains(t, err.Error(), errExpected.Error())
	})
}

func TestMongoDBGet(t *testing.T) {
	s, store := openMongoDBStore(t)

	const key = "https://alice.example.com/activities/77bdd005"

	t.Run("success", func(t *testing.T) {
		store.GetAsRawMapReturns(map[string]interface{}{"type": "Follow"}, nil)

		docBytes, err := s.Get(key)
		require.NoError(t, err)
		require.NotEmpty(t, docBytes)

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal(docBytes, &doc))
		require.Equal(t, "Follow", doc["type"])
	})

	t.Run("marshal error", func(t *testing.T) {
		errExpected := errors.New("injected marshal error")

		s.(*mongoDBWrapper).marshal = func(v interface{}) ([]byte, error) {
			return nil, errExpected
		}
		defer func() {
			s.(*mongoDBWrapper).marshal = json.Marshal
		}()

		docBytes, err := s.Get(key)
		require.Error(t, err)
		require.Contains(t, err.Error(), errExpected.Error())
		require.Empty(t, docBytes)
	})

	t.Run("GetAsRawMap error", func(t *testing.T) {
		errExpected := errors.New("injected GetAsRawMap error")

		store.GetAsRawMapReturns(nil, errExpected)

		docBytes, err := s.Get(key)
		require.Error(t, err)
		require.Contains(t, err.Error(), errExpected.Error())
		require.Empty(t, docBytes)
	})
}

func TestMongoDBGetBulk(t *testing.T) {
	s, store := openMongoDBStore(t)

	const (
		key1 = "https://alice.example.com/activities/77bdd005"
		key2 = "https://alice.example.com/activities/9cb074fa"
	)

	t.Run("success", func(t *testing.T) {
		store.GetBulkAsRawMapReturns([]map[string]interface{}{
			{"type": "Create"},
			nil,
			{"type": "Announce"},
		}, nil)

		docBytes, err := s.GetBulk(key1, key2)
		require.NoError(t, err)

		// Missing documents are skipped.
		require.Len(t, docBytes, 2)

		var doc map[string]interface{}

		require.NoError(t, json.Unmarshal(docBytes[0], &doc))
		require.Equal(t, "Create", doc["type"])

		require.NoError(t, json.Unmarshal(docBytes[1], &doc))
		require.Equal(t, "Announce", doc["type"])
	})

	t.Run("marshal error", func(t *testing.T) {
		errExpected := errors.New("injected marshal error")

		s.(*mongoDBWrapper).marshal = func(v interface{}) ([]byte, error) {
			return nil, errExpected
		}
		defer func() {
			s.(*mongoDBWrapper).marshal = json.Marshal
		}()

		store.GetBulkAsRawMapReturns([]map[string]interface{}{{"type": "Create"}}, nil)

		docBytes, err := s.GetBulk(key1, key2)
		require.Error(t, err)
		require.Contains(t, err.Error(), errExpected.Error())
		require.Empty(t, docBytes)
	})

	t.Run("GetBulkAsRawMap error", func(t *testing.T) {
		errExpected := errors.New("injected GetBulkAsRawMap error")

		store.GetBulkAsRawMapReturns(nil, errExpected)

		docBytes, err := s.GetBulk(key1, key2)
		require.Error(t, err)
		require.Contains(t, err.Error(), errExpected.Error())
		require.Empty(t, docBytes)
	})
}

func TestMongoDBQuery(t *testing.T) {
	s, store := openMongoDBStore(t)

	t.Run("success", func(t *testing.T) {
		mit := &mocks.MongoDBIterator{}
		mit.NextReturns(true, nil)
		mit.ValueAsRawMapReturns(map[string]interface{}{"activityType": "Follow"}, nil)

		store.QueryCustomReturns(mit, nil)

		it, err := s.Query("activityType:Follow")
		require.NoError(t, err)
		require.NotNil(t, it)

		ok, err := it.Next()
		require.NoError(t, err)
		require.True(t, ok)

		value, err := it.Value()
		require.NoError(t, err)
		require.NotEmpty(t, value)

		var doc map[string]interface{}

		require.NoError(t, json.Unmarshal(value, &doc))
		require.Equal(t, "Follow", doc["activityType"])
	})

	t.Run("invalid expression", func(t *testing.T) {
		it, err := s.Query(">")
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid syntax")
		require.Nil(t, it)
	})

	t.Run("QueryCustom error", func(t *testing.T) {
		errExpected := errors.New("injected QueryCustom error")

		store.QueryCustomReturns(nil, errExpected)

		it, err := s.Query("activityType:Follow")
		require.Error(t, err)
		require.Contains(t, err.Error(), errExpected.Error())
		require.Nil(t, it)
	})

	t.Run("Iterator error", func(t *testing.T) {
		errExpected := errors.New("injected iterator error")

		mit := &mocks.MongoDBIterator{}
		mit.NextReturns(true, nil)
		mit.ValueAsRawMapReturns(nil, errExpected)

		store.QueryCustomReturns(mit, nil)

		it, err := s.Query("activityType:Follow")
		require.NoError(t, err)
		require.NotNil(t, it)

		_, err = it.Value()
		require.Error(t, err)
		require.Contains(t, err.Error(), errExpected.Error())
	})

	t.Run("Iterator marshal error", func(t *testing.T) {
		errExpected := errors.New("injected marshal error")

		mit := &mocks.MongoDBIterator{}
		mit.NextReturns(true, nil)
		mit.ValueAsRawMapReturns(map[string]interface{}{"activityType": "Follow"}, nil)

		store.QueryCustomReturns(mit, nil)

		it, err := s.Query("activityType:Follow")
		require.NoError(t, err)
		require.NotNil(t, it)

		it.(*mongoDBIteratorWrapper).marshal = func(v interface{}) ([]byte, error) {
			return nil, errExpected
		}

		_, err = it.Value()
		require.Error(t, err)
		require.Contains(t, err.Error(), errExpected.Error())
	})
}

func TestMongoDBGetTags(t *testing.T) {
	s, _ := openMongoDBStore(t)

	require.Panics(t, func() {
		_, err := s.GetTags("https://alice.example.com/activities/77bdd005")
		require.NoError(t, err)
	})
}

func TestMongoDBBatch(t *testing.T) {
	s, store := openMongoDBStore(t)

	const (
		key1 = "https://alice.example.com/activities/77bdd005"
		key2 = "https://alice.example.com/activities/9cb074fa"
		key3 = "https://alice.example.com/activities/41a23c55"
	)

	t.Run("success", func(t *testing.T) {
		require.NoError(t, s.Batch([]storage.Operation{
			{
				Key:   key1,
				Value: []byte(`{"type":"Create"}`),
			},
			{
				Key:        key2,
				Value:      []byte(`{"type":"Follow"}`),
				PutOptions: &storage.PutOptions{IsNewKey: true},
			},
			{
				// No value results in a delete.
				Key: key3,
			},
		}))
	})

	t.Run("unmarshal error", func(t *testing.T) {
		require.Error(t, s.Batch([]storage.Operation{
			{
				Key:   key1,
				Value: []byte(`{`),
			},
		}))
	})

	t.Run("BulkWrite error", func(t *testing.T) {
		errExpected := errors.New("injected BulkWrite error")

		store.BulkWriteReturns(errExpected)

		err := s.Batch([]storage.Operation{
			{
				Key:   key1,
				Value: []byte(`{"type":"Create"}`),
			},
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), errExpected.Error())
	})
}

func TestMongoDBNoOps(t *testing.T) {
	s, _ := openMongoDBStore(t)

	require.NoError(t, s.Delete("https://alice.example.com/activities/77bdd005"))
	require.NoError(t, s.Flush())
	require.NoError(t, s.Close())
}
