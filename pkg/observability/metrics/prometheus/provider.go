/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/httpserver"
	"github.com/fedikit/fedikit/pkg/observability/metrics"
)

var logger = metrics.Logger

var (
	createOnce sync.Once       //nolint:gochecknoglobals
	instance   metrics.Metrics //nolint:gochecknoglobals
)

// Provider is a Prometheus-based metrics provider. The metrics are served by
// the given HTTP server (which is expected to expose promhttp's handler).
type Provider struct {
	httpServer *httpserver.Server
}

// NewPrometheusProvider creates a new Prometheus metrics provider.
func NewPrometheusProvider(httpServer *httpserver.Server) *Provider {
	return &Provider{httpServer: httpServer}
}

// Create starts the metrics HTTP server.
func (p *Provider) Create() error {
	if p.httpServer == nil {
		return nil
	}

	if err := p.httpServer.Start(); err != nil {
		return fmt.Errorf("start metrics HTTP server: %w", err)
	}

	return nil
}

// Destroy stops the metrics HTTP server.
func (p *Provider) Destroy() error {
	if p.httpServer == nil {
		return nil
	}

	return p.httpServer.Stop(context.Background())
}

// Metrics returns the metrics implementation.
func (p *Provider) Metrics() metrics.Metrics {
	return GetMetrics()
}

// GetMetrics returns the singleton metrics implementation. The instance is
// created on first use since metrics may only be registered once.
func GetMetrics() metrics.Metrics {
	createOnce.Do(func() {
		instance = NewMetrics()
	})

	return instance
}

// PromMetrics manages the Prometheus metrics for FediKit.
type PromMetrics struct {
	apOutboxPostTime           prometheus.Histogram
	apOutboxResolveInboxesTime prometheus.Histogram
	apInboxHandlerTimes        map[string]prometheus.Histogram
	apOutboxActivityCounts     map[string]prometheus.Counter

	dbPutTimes     map[string]prometheus.Histogram
	dbGetTimes     map[string]prometheus.Histogram
	dbGetTagsTimes map[string]prometheus.Histogram
	dbGetBulkTimes map[string]prometheus.Histogram
	dbQueryTimes   map[string]prometheus.Histogram
	dbDeleteTimes  map[string]prometheus.Histogram
	dbBatchTimes   map[string]prometheus.Histogram
}

// NewMetrics creates the Prometheus metrics and registers them with the
// default registerer.
func NewMetrics() metrics.Metrics {
	activityTypes := []string{
		"Create", "Update", "Delete", "Follow", "Accept", "Reject",
		"Add", "Remove", "Like", "Announce", "Undo", "Block",
	}
	dbTypes := []string{"MongoDB", "Mem"}

	pm := &PromMetrics{
		apOutboxPostTime:           newOutboxPostTime(),
		apOutboxResolveInboxesTime: newOutboxResolveInboxesTime(),
		apInboxHandlerTimes:        newInboxHandlerTimes(activityTypes),
		apOutboxActivityCounts:     newOutboxActivityCounts(activityTypes),
		dbPutTimes:                 newDBTimes(metrics.DBPutTimeMetric, "store data", dbTypes),
		dbGetTimes:                 newDBTimes(metrics.DBGetTimeMetric, "get data", dbTypes),
		dbGetTagsTimes:             newDBTimes(metrics.DBGetTagsTimeMetric, "get tags", dbTypes),
		dbGetBulkTimes:             newDBTimes(metrics.DBGetBulkTimeMetric, "get bulk", dbTypes),
		dbQueryTimes:               newDBTimes(metrics.DBQueryTimeMetric, "query", dbTypes),
		dbDeleteTimes:              newDBTimes(metrics.DBDeleteTimeMetric, "delete", dbTypes),
		dbBatchTimes:               newDBTimes(metrics.DBBatchTimeMetric, "batch", dbTypes),
	}

	registerMetrics(pm)

	return pm
}

func registerMetrics(pm *PromMetrics) {
	prometheus.MustRegister(pm.apOutboxPostTime, pm.apOutboxResolveInboxesTime)

	for _, c := range pm.apInboxHandlerTimes {
		prometheus.MustRegister(c)
	}

	for _, c := range pm.apOutboxActivityCounts {
		prometheus.MustRegister(c)
	}

	for _, histograms := range []map[string]prometheus.Histogram{
		pm.dbPutTimes, pm.dbGetTimes, pm.dbGetTagsTimes, pm.dbGetBulkTimes,
		pm.dbQueryTimes, pm.dbDeleteTimes, pm.dbBatchTimes,
	} {
		for _, c := range histograms {
			prometheus.MustRegister(c)
		}
	}
}

// OutboxPostTime records the time it takes to post a message to the outbox.
func (pm *PromMetrics) OutboxPostTime(value time.Duration) {
	pm.apOutboxPostTime.Observe(value.Seconds())

	logger.Debug("OutboxPost time", logfields.WithDuration(value))
}

// OutboxResolveInboxesTime records the time it takes to resolve inboxes for an outbox post.
func (pm *PromMetrics) OutboxResolveInboxesTime(value time.Duration) {
	pm.apOutboxResolveInboxesTime.Observe(value.Seconds())

	logger.Debug("OutboxResolveInboxes time", logfields.WithDuration(value))
}

// InboxHandlerTime records the time it takes to handle an activity posted to the inbox.
func (pm *PromMetrics) InboxHandlerTime(activityType string, value time.Duration) {
	if c, ok := pm.apInboxHandlerTimes[activityType]; ok {
		c.Observe(value.Seconds())
	}

	logger.Debug("InboxHandler time", logfields.WithActivityType(activityType),
		logfields.WithDuration(value))
}

// OutboxIncrementActivityCount increments the number of activities of the given type posted to the outbox.
func (pm *PromMetrics) OutboxIncrementActivityCount(activityType string) {
	if c, ok := pm.apOutboxActivityCounts[activityType]; ok {
		c.Inc()
	}
}

// DBPutTime records the time it takes to store data in the DB.
func (pm *PromMetrics) DBPutTime(dbType string, value time.Duration) {
	if c, ok := pm.dbPutTimes[dbType]; ok {
		c.Observe(value.Seconds())
	}
}

// DBGetTime records the time it takes to get data from the DB.
func (pm *PromMetrics) DBGetTime(dbType string, value time.Duration) {
	if c, ok := pm.dbGetTimes[dbType]; ok {
		c.Observe(value.Seconds())
	}
}

// DBGetTagsTime records the time it takes to get tags from the DB.
func (pm *PromMetrics) DBGetTagsTime(dbType string, value time.Duration) {
	if c, ok := pm.dbGetTagsTimes[dbType]; ok {
		c.Observe(value.Seconds())
	}
}

// DBGetBulkTime records the time it takes to get multiple values from the DB.
func (pm *PromMetrics) DBGetBulkTime(dbType string, value time.Duration) {
	if c, ok := pm.dbGetBulkTimes[dbType]; ok {
		c.Observe(value.Seconds())
	}
}

// DBQueryTime records the time it takes to query the DB.
func (pm *PromMetrics) DBQueryTime(dbType string, value time.Duration) {
	if c, ok := pm.dbQueryTimes[dbType]; ok {
		c.Observe(value.Seconds())
	}
}

// DBDeleteTime records the time it takes to delete from the DB.
func (pm *PromMetrics) DBDeleteTime(dbType string, value time.Duration) {
	if c, ok := pm.dbDeleteTimes[dbType]; ok {
		c.Observe(value.Seconds())
	}
}

// DBBatchTime records the time it takes to perform a batch operation in the DB.
func (pm *PromMetrics) DBBatchTime(dbType string, value time.Duration) {
	if c, ok := pm.dbBatchTimes[dbType]; ok {
		c.Observe(value.Seconds())
	}
}

func newCounter(subsystem, name, help string, labels prometheus.Labels) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}

func newHistogram(subsystem, name, help string, labels prometheus.Labels) prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}

func newOutboxPostTime() prometheus.Histogram {
	return newHistogram(
		metrics.ActivityPub, metrics.ApPostTimeMetric,
		"The time (in seconds) that it takes to post a message to the outbox.",
		nil,
	)
}

func newOutboxResolveInboxesTime() prometheus.Histogram {
	return newHistogram(
		metrics.ActivityPub, metrics.ApResolveInboxesTimeMetric,
		"The time (in seconds) that it takes to resolve the inboxes of the destinations when posting to the outbox.",
		nil,
	)
}

func newInboxHandlerTimes(activityTypes []string) map[string]prometheus.Histogram {
	histograms := make(map[string]prometheus.Histogram)

	for _, activityType := range activityTypes {
		histograms[activityType] = newHistogram(
			metrics.ActivityPub, metrics.ApInboxHandlerTimeMetric,
			"The time (in seconds) that it takes to handle an activity posted to the inbox.",
			prometheus.Labels{"type": activityType},
		)
	}

	return histograms
}

func newOutboxActivityCounts(activityTypes []string) map[string]prometheus.Counter {
	counters := make(map[string]prometheus.Counter)

	for _, activityType := range activityTypes {
		counters[activityType] = newCounter(
			metrics.ActivityPub, metrics.ApOutboxActivityCounterMetric,
			"The number of activities posted to the outbox.",
			prometheus.Labels{"type": activityType},
		)
	}

	return counters
}

func newDBTimes(name, operation string, dbTypes []string) map[string]prometheus.Histogram {
	histograms := make(map[string]prometheus.Histogram)

	for _, dbType := range dbTypes {
		histograms[dbType] = newHistogram(
			metrics.DB, name,
			fmt.Sprintf("The time (in seconds) it takes the DB to %s.", operation),
			prometheus.Labels{"type": dbType},
		)
	}

	return histograms
}
