/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wrapper

import (
	"sync"
	"testing"
	"time"

	ariesmockstorage "github.com/hyperledger/aries-framework-go/component/storageutil/mock"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fedikit/fedikit/pkg/store/mocks"
)

// recordingMetrics counts the number of times each DB metric is recorded.
type recordingMetrics struct {
	mutex sync.Mutex
	calls map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{calls: make(map[string]int)}
}

func (m *recordingMetrics) record(op string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.calls[op]++
}

func (m *recordingMetrics) count(op string) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.calls[op]
}

func (m *recordingMetrics) DBPutTime(string, time.Duration)     { m.record("put") }
func (m *recordingMetrics) DBGetTime(string, time.Duration)     { m.record("get") }
func (m *recordingMetrics) DBGetTagsTime(string, time.Duration) { m.record("getTags") }
func (m *recordingMetrics) DBGetBulkTime(string, time.Duration) { m.record("getBulk") }
func (m *recordingMetrics) DBQueryTime(string, time.Duration)   { m.record("query") }
func (m *recordingMetrics) DBDeleteTime(string, time.Duration)  { m.record("delete") }
func (m *recordingMetrics) DBBatchTime(string, time.Duration)   { m.record("batch") }

func TestStoreWrapper(t *testing.T) {
	metrics := newRecordingMetrics()

	s := NewStore(&ariesmockstorage.Store{}, "Mem", metrics)
	require.NotNil(t, s)

	t.Run("Put", func(t *testing.T) {
		require.NoError(t, s.Put("https://alice.example.com/activities/77bdd005", []byte(`{"type":"Create"}`)))
		require.Equal(t, 1, metrics.count("put"))
	})

	t.Run("Get", func(t *testing.T) {
		_, err := s.Get("https://alice.example.com/activities/77bdd005")
		require.NoError(t, err)
		require.Equal(t, 1, metrics.count("get"))
	})

	t.Run("GetTags", func(t *testing.T) {
		_, err := s.GetTags("https://alice.example.com/activities/77bdd005")
		require.NoError(t, err)
		require.Equal(t, 1, metrics.count("getTags"))
	})

	t.Run("GetBulk", func(t *testing.T) {
		_, err := s.GetBulk("https://alice.example.com/activities/77bdd005")
		require.NoError(t, err)
		require.Equal(t, 1, metrics.count("getBulk"))
	})

	t.Run("Query", func(t *testing.T) {
		_, err := s.Query("activityType:Follow")
		require.NoError(t, err)
		require.Equal(t, 1, metrics.count("query"))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete("https://alice.example.com/activities/77bdd005"))
		require.Equal(t, 1, metrics.count("delete"))
	})

	t.Run("Batch", func(t *testing.T) {
		require.NoError(t, s.Batch(nil))
		require.Equal(t, 1, metrics.count("batch"))
	})

	t.Run("Flush and Close record no metrics", func(t *testing.T) {
		require.NoError(t, s.Flush())
		require.NoError(t, s.Close())
		require.Equal(t, 1, metrics.count("put"))
		require.Equal(t, 1, metrics.count("batch"))
	})
}

func TestMongoDBStoreWrapper(t *testing.T) {
	ms := &mocks.MongoDBStore{}
	metrics := newRecordingMetrics()

	s := NewMongoDBStore(ms, metrics)
	require.NotNil(t, s)

	doc := map[string]interface{}{
		"type":      "Follow",
		"objectIRI": "https://bob.example.com/services/activity",
	}

	t.Run("PutAsJSON", func(t *testing.T) {
		require.NoError(t, s.PutAsJSON("https://alice.example.com/activities/77bdd005", doc))
		require.Equal(t, 1, metrics.count("put"))
	})

	t.Run("BulkWrite", func(t *testing.T) {
		require.NoError(t, s.BulkWrite([]mongo.WriteModel{
			mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": "https://alice.example.com/activities/77bdd005"}),
		}))
		require.Equal(t, 1, metrics.count("batch"))
	})

	t.Run("GetAsRawMap", func(t *testing.T) {
		ms.GetAsRawMapReturns(doc, nil)

		value, err := s.GetAsRawMap("https://alice.example.com/activities/77bdd005")
		require.NoError(t, err)
		require.Equal(t, doc, value)
		require.Equal(t, 1, metrics.count("get"))
	})

	t.Run("GetBulkAsRawMap", func(t *testing.T) {
		ms.GetBulkAsRawMapReturns([]map[string]interface{}{doc}, nil)

		value, err := s.GetBulkAsRawMap("https://alice.example.com/activities/77bdd005")
		require.NoError(t, err)
		require.Len(t, value, 1)
		require.Equal(t, doc, value[0])
		require.Equal(t, 1, metrics.count("getBulk"))
	})

	t.Run("QueryCustom", func(t *testing.T) {
		mit := &mocks.MongoDBIterator{}
		mit.NextReturns(true, nil)
		mit.ValueAsRawMapReturns(doc, nil)

		ms.QueryCustomReturns(mit, nil)

		it, err := s.QueryCustom(bson.M{"activityType": "Follow"})
		require.NoError(t, err)
		require.NotNil(t, it)
		require.Equal(t, 1, metrics.count("query"))
	})

	t.Run("CreateMongoDBFindOptions", func(t *testing.T) {
		ms.CreateMongoDBFindOptionsReturns(&options.FindOptions{})

		mongoOpts := s.CreateMongoDBFindOptions([]storage.QueryOption{
			storage.WithPageSize(1000),
		}, true)
		require.NotNil(t, mongoOpts)
	})

	t.Run("Embedded store operations", func(t *testing.T) {
		require.NoError(t, s.Put("https://alice.example.com/activities/77bdd005", []byte(`{"type":"Create"}`)))

		_, err := s.Get("https://alice.example.com/activities/77bdd005")
		require.NoError(t, err)

		require.Equal(t, 2, metrics.count("put"))
		require.Equal(t, 2, metrics.count("get"))
	})
}
