/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package noop

import (
	"time"

	"github.com/fedikit/fedikit/pkg/observability/metrics"
)

// Provider implements a no-op metrics provider.
type Provider struct{}

// NewProvider creates a new no-op metrics provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Create does nothing.
func (p *Provider) Create() error {
	return nil
}

// Destroy does nothing.
func (p *Provider) Destroy() error {
	return nil
}

// Metrics returns supported metrics.
func (p *Provider) Metrics() metrics.Metrics {
	return &NoOpMetrics{}
}

// NoOpMetrics provides a default no-op implementation of the Metrics interface.
type NoOpMetrics struct{}

// InboxHandlerTime records the time it takes to handle an activity posted to the inbox.
func (nm NoOpMetrics) InboxHandlerTime(activityType string, value time.Duration) {}

// OutboxPostTime records the time it takes to post a message to the outbox.
func (nm NoOpMetrics) OutboxPostTime(value time.Duration) {}

// OutboxResolveInboxesTime records the time it takes to resolve inboxes for an outbox post.
func (nm NoOpMetrics) OutboxResolveInboxesTime(value time.Duration) {}

// OutboxIncrementActivityCount increments the number of activities of the given type posted to the outbox.
func (nm NoOpMetrics) OutboxIncrementActivityCount(activityType string) {}

// DBPutTime records the time it takes to store data in the DB.
func (nm NoOpMetrics) DBPutTime(dbType string, duration time.Duration) {}

// DBGetTime records the time it takes to get data from the DB.
func (nm NoOpMetrics) DBGetTime(dbType string, duration time.Duration) {}

// DBGetTagsTime records the time it takes to get tags from the DB.
func (nm NoOpMetrics) DBGetTagsTime(dbType string, duration time.Duration) {}

// DBGetBulkTime records the time it takes to get multiple values from the DB.
func (nm NoOpMetrics) DBGetBulkTime(dbType string, duration time.Duration) {}

// DBQueryTime records the time it takes to query the DB.
func (nm NoOpMetrics) DBQueryTime(dbType string, duration time.Duration) {}

// DBDeleteTime records the time it takes to delete from the DB.
func (nm NoOpMetrics) DBDeleteTime(dbType string, duration time.Duration) {}

// DBBatchTime records the time it takes to perform a batch operation in the DB.
func (nm NoOpMetrics) DBBatchTime(dbType string, duration time.Duration) {}
