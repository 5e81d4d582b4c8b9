/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wrapper

import (
	"time"

	"github.com/hyperledger/aries-framework-go-ext/component/storage/mongodb"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

const storeTypeMongoDB = "MongoDB"

type metricsProvider interface {
	DBPutTime(dbType string, duration time.Duration)
	DBGetTime(dbType string, duration time.Duration)
	DBGetTagsTime(dbType string, duration time.Duration)
	DBGetBulkTime(dbType string, duration time.Duration)
	DBQueryTime(dbType string, duration time.Duration)
	DBDeleteTime(dbType string, duration time.Duration)
	DBBatchTime(dbType string, duration time.Duration)
}

// StoreWrapper wraps an Aries store and records metrics on each operation.
type StoreWrapper struct {
	s      storage.Store
	m      metricsProvider
	dbType string
}

// NewStore returns a wrapper around the given store that records the duration
// of each operation.
func NewStore(s storage.Store, dbType string, metrics metricsProvider) *StoreWrapper {
	return &StoreWrapper{s: s, m: metrics, dbType: dbType}
}

// Put stores the key + value pair along with the (optional) tags.
func (store *StoreWrapper) Put(key string, value []byte, tags ...storage.Tag) error {
	start := time.Now()
	defer func() { store.m.DBPutTime(store.dbType, time.Since(start)) }()

	return store.s.Put(key, value, tags...)
}

// Get fetches the value associated with the given key.
func (store *StoreWrapper) Get(key string) ([]byte, error) {
	start := time.Now()
	defer func() { store.m.DBGetTime(store.dbType, time.Since(start)) }()

	return store.s.Get(key)
}

// GetTags fetches all tags associated with the given key.
func (store *StoreWrapper) GetTags(key string) ([]storage.Tag, error) {
	start := time.Now()
	defer func() { store.m.DBGetTagsTime(store.dbType, time.Since(start)) }()

	return store.s.GetTags(key)
}

// GetBulk fetches the values associated with the given keys.
func (store *StoreWrapper) GetBulk(keys ...string) ([][]byte, error) {
	start := time.Now()
	defer func() { store.m.DBGetBulkTime(store.dbType, time.Since(start)) }()

	return store.s.GetBulk(keys...)
}

// Query returns all data that satisfies the given query expression.
func (store *StoreWrapper) Query(expression string, options ...storage.QueryOption) (storage.Iterator, error) {
	start := time.Now()
	defer func() { store.m.DBQueryTime(store.dbType, time.Since(start)) }()

	return store.s.Query(expression, options...)
}

// Delete deletes the key + value pair (and all tags) associated with the given key.
func (store *StoreWrapper) Delete(key string) error {
	start := time.Now()
	defer func() { store.m.DBDeleteTime(store.dbType, time.Since(start)) }()

	return store.s.Delete(key)
}

// Batch performs multiple Put and/or Delete operations in order.
func (store *StoreWrapper) Batch(operations []storage.Operation) error {
	start := time.Now()
	defer func() { store.m.DBBatchTime(store.dbType, time.Since(start)) }()

	return store.s.Batch(operations)
}

// Flush forces any queued up Put and/or Delete operations to execute.
func (store *StoreWrapper) Flush() error {
	return store.s.Flush()
}

// Close closes this store object, freeing resources.
func (store *StoreWrapper) Close() error {
	return store.s.Close()
}

// mongoDBStore is the vendor-specific API exposed by the MongoDB store.
type mongoDBStore interface {
	storage.Store

	PutAsJSON(key string, value interface{}) error
	BulkWrite(models []mongo.WriteModel, opts ...*mongoopts.BulkWriteOptions) error
	GetAsRawMap(id string) (map[string]interface{}, error)
	GetBulkAsRawMap(ids ...string) ([]map[string]interface{}, error)
	QueryCustom(filter interface{}, options ...*mongoopts.FindOptions) (mongodb.Iterator, error)
	CreateMongoDBFindOptions(options []storage.QueryOption, isJSONQuery bool) *mongoopts.FindOptions
}

// MongoDBStoreWrapper wraps a MongoDB store and records metrics on each operation,
// including the MongoDB-specific operations.
type MongoDBStoreWrapper struct {
	*StoreWrapper

	s mongoDBStore
}

// NewMongoDBStore returns a wrapper around the given MongoDB store that records
// the duration of each operation.
func NewMongoDBStore(s mongoDBStore, metrics metricsProvider) *MongoDBStoreWrapper {
	return &MongoDBStoreWrapper{
		StoreWrapper: NewStore(s, storeTypeMongoDB, metrics),
		s:            s,
	}
}

// PutAsJSON stores the given key and value.
func (store *MongoDBStoreWrapper) PutAsJSON(key string, value interface{}) error {
	start := time.Now()
	defer func() { store.m.DBPutTime(store.dbType, time.Since(start)) }()

	return store.s.PutAsJSON(key, value)
}

// BulkWrite executes the given MongoDB write models in order.
func (store *MongoDBStoreWrapper) BulkWrite(models []mongo.WriteModel, opts ...*mongoopts.BulkWriteOptions) error {
	start := time.Now()
	defer func() { store.m.DBBatchTime(store.dbType, time.Since(start)) }()

	return store.s.BulkWrite(models, opts...)
}

// GetAsRawMap fetches the full MongoDB JSON document associated with the given id.
func (store *MongoDBStoreWrapper) GetAsRawMap(id string) (map[string]interface{}, error) {
	start := time.Now()
	defer func() { store.m.DBGetTime(store.dbType, time.Since(start)) }()

	return store.s.GetAsRawMap(id)
}

// GetBulkAsRawMap fetches the full MongoDB JSON documents associated with the given ids.
func (store *MongoDBStoreWrapper) GetBulkAsRawMap(ids ...string) ([]map[string]interface{}, error) {
	start := time.Now()
	defer func() { store.m.DBGetBulkTime(store.dbType, time.Since(start)) }()

	return store.s.GetBulkAsRawMap(ids...)
}

// QueryCustom queries for data using the MongoDB find command.
func (store *MongoDBStoreWrapper) QueryCustom(filter interface{},
	options ...*mongoopts.FindOptions) (mongodb.Iterator, error) {
	start := time.Now()
	defer func() { store.m.DBQueryTime(store.dbType, time.Since(start)) }()

	return store.s.QueryCustom(filter, options...)
}

// CreateMongoDBFindOptions converts the given storage options into MongoDB options.
func (store *MongoDBStoreWrapper) CreateMongoDBFindOptions(options []storage.QueryOption,
	isJSONQuery bool) *mongoopts.FindOptions {
	return store.s.CreateMongoDBFindOptions(options, isJSONQuery)
}
