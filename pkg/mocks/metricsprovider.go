/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import "time"

// MetricsProvider implements a mock metrics provider.
type MetricsProvider struct{}

// OutboxPostTime records the time it takes to post a message to the outbox.
func (m *MetricsProvider) OutboxPostTime(value time.Duration) {
}

// OutboxResolveInboxesTime records the time it takes to resolve inboxes for an outbox post.
func (m *MetricsProvider) OutboxResolveInboxesTime(value time.Duration) {
}

// InboxHandlerTime records the time it takes to handle an activity posted to the inbox.
func (m *MetricsProvider) InboxHandlerTime(activityType string, value time.Duration) {
}

// OutboxIncrementActivityCount increments the number of activities of the given type posted to the outbox.
func (m *MetricsProvider) OutboxIncrementActivityCount(activityType string) {
}

// DBPutTime records the time it takes to store data in the database.
func (m *MetricsProvider) DBPutTime(dbType string, value time.Duration) {
}

// DBGetTime records the time it takes to get data from the database.
func (m *MetricsProvider) DBGetTime(dbType string, value time.Duration) {
}

// DBGetTagsTime records the time it takes to get tags from the database.
func (m *MetricsProvider) DBGetTagsTime(dbType string, value time.Duration) {
}

// DBGetBulkTime records the time it takes to get bulk data from the database.
func (m *MetricsProvider) DBGetBulkTime(dbType string, value time.Duration) {
}

// DBQueryTime records the time it takes to query the database.
func (m *MetricsProvider) DBQueryTime(dbType string, value time.Duration) {
}

// DBDeleteTime records the time it takes to delete data from the database.
func (m *MetricsProvider) DBDeleteTime(dbType string, value time.Duration) {
}

// DBBatchTime records the time it takes to perform a batch operation on the database.
func (m *MetricsProvider) DBBatchTime(dbType string, value time.Duration) {
}
