/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package activityhandler implements the built-in per-type side effects of
// the engine: the Inbox handler applies server-to-server semantics to
// activities received from remote peers and the Outbox handler applies
// client-to-server semantics to activities posted by local clients. Each
// built-in handler finishes by invoking the application's callback for the
// activity's type, so applications layer their behavior on top of the
// prescribed one.
package activityhandler

import (
	"context"
	"fmt"
	"sync"

	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/lifecycle"
	"github.com/fedikit/fedikit/pkg/service/spi"
	"github.com/fedikit/fedikit/pkg/vocab"
)

var logger = log.New("activitypub_service")

const defaultBufferSize = 100

// Config holds the configuration parameters for an activity handler.
type Config struct {
	// ServiceName is the name of the service (used for logging).
	ServiceName string

	// BufferSize is the size of the channels created for subscribers.
	BufferSize int
}

type handler struct {
	*Config
	*lifecycle.Lifecycle

	mutex       sync.RWMutex
	subscribers []chan *vocab.ActivityType
}

func newHandler(cnfg *Config) *handler {
	cfg := *cnfg

	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}

	h := &handler{
		Config: &cfg,
	}

	h.Lifecycle = lifecycle.New(cfg.ServiceName, lifecycle.WithStop(h.stop))

	return h
}

func (h *handler) stop() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for _, ch := range h.subscribers {
		close(ch)
	}

	h.subscribers = nil

	logger.Info("Stopped activity handler.", logfields.WithServiceName(h.ServiceName))
}

// Subscribe allows a client to receive activities that were accepted by the
// handler.
func (h *handler) Subscribe() <-chan *vocab.ActivityType {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	ch := make(chan *vocab.ActivityType, h.BufferSize)

	h.subscribers = append(h.subscribers, ch)

	return ch
}

func (h *handler) notify(activity *vocab.ActivityType) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, ch := range h.subscribers {
		ch <- activity
	}
}

// invoke invokes the application callback for the given activity's type, if
// one is registered in the table. An activity with no matching callback
// passes through unchanged.
func invoke(ctx context.Context, table *spi.Callbacks, actx *spi.Context, activity *vocab.ActivityType) error {
	types := activity.Type().Types()
	if len(types) == 0 {
		return errors.ErrUnmatchedType
	}

	cb := table.Resolve(types[0])
	if cb == nil {
		logger.Debug("No callback registered for activity type. Passing through.",
			logfields.WithActivityType(activity.Type().String()))

		return nil
	}

	if err := cb(ctx, actx, activity); err != nil {
		return fmt.Errorf("callback for %s activity: %w", activity.Type(), err)
	}

	return nil
}
