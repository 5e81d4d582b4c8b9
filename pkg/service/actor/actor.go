/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package actor implements the side-effect engine of the ActivityPub
// protocol: PostInbox, InboxForwarding, PostOutbox and Deliver, along with
// the request-level orchestrators that drive them from HTTP handlers. The
// engine is configured with an actor context carrying the application's
// delegates; per-type side effects are applied by the activity handlers.
package actor

import (
	"net/http"
	"time"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/fedikit/fedikit/pkg/service/activityhandler"
	"github.com/fedikit/fedikit/pkg/service/resolver"
	"github.com/fedikit/fedikit/pkg/service/spi"
	"github.com/fedikit/fedikit/pkg/vocab"
)

var logger = log.New("activitypub_actor")

const (
	defaultMaxForwardingDepth = 4
	defaultMaxDeliveryDepth   = 2
)

// Config holds the configuration parameters for the engine.
type Config struct {
	// ServiceName is the name of the service (used for logging).
	ServiceName string

	// MaxConcurrentRequests bounds parallel recipient resolution.
	MaxConcurrentRequests int

	// CacheSize is the size of the resolver's inbox cache.
	CacheSize int

	// CacheExpiration is the expiry of entries in the resolver's inbox cache.
	CacheExpiration time.Duration
}

// Actor is the side-effect engine. It is safe for concurrent use; all
// per-request state rides on the actor context.
type Actor struct {
	*Config

	base          *spi.Context
	inboxHandler  *activityhandler.Inbox
	outboxHandler *activityhandler.Outbox
	resolver      *resolver.Resolver
}

// Opt sets an option on the engine.
type Opt func(a *Actor)

// WithResolver sets the recipient resolver.
func WithResolver(r *resolver.Resolver) Opt {
	return func(a *Actor) {
		a.resolver = r
	}
}

// WithInboxHandler sets the S2S activity handler.
func WithInboxHandler(h *activityhandler.Inbox) Opt {
	return func(a *Actor) {
		a.inboxHandler = h
	}
}

// WithOutboxHandler sets the C2S activity handler.
func WithOutboxHandler(h *activityhandler.Outbox) Opt {
	return func(a *Actor) {
		a.outboxHandler = h
	}
}

// New returns a new side-effect engine operating on the given base actor
// context.
func New(cnfg *Config, base *spi.Context, opts ...Opt) *Actor {
	cfg := *cnfg

	a := &Actor{
		Config: &cfg,
		base:   base,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.resolver == nil {
		a.resolver = resolver.New(&resolver.Config{
			ServiceName:           cfg.ServiceName,
			MaxConcurrentRequests: cfg.MaxConcurrentRequests,
			CacheSize:             cfg.CacheSize,
			CacheExpiration:       cfg.CacheExpiration,
		}, base.Store)
	}

	handlerCfg := &activityhandler.Config{ServiceName: cfg.ServiceName}

	if a.inboxHandler == nil {
		a.inboxHandler = activityhandler.NewInbox(handlerCfg, a.deliverReply)
	}

	if a.outboxHandler == nil {
		a.outboxHandler = activityhandler.NewOutbox(handlerCfg)
	}

	a.inboxHandler.Start()
	a.outboxHandler.Start()

	return a
}

// Stop stops the engine's activity handlers, closing their subscriber
// channels.
func (a *Actor) Stop() {
	a.inboxHandler.Stop()
	a.outboxHandler.Stop()
}

// Context returns the base actor context of the engine.
func (a *Actor) Context() *spi.Context {
	return a.base
}

// InboxHandler returns the S2S activity handler.
func (a *Actor) InboxHandler() *activityhandler.Inbox {
	return a.inboxHandler
}

// OutboxHandler returns the C2S activity handler.
func (a *Actor) OutboxHandler() *activityhandler.Outbox {
	return a.outboxHandler
}

// The functions below resolve delegate calls in the documented order: the
// context's Overrides record first (which may pass), then the protocol
// delegate, then the Fallback delegate.

func (a *Actor) authenticatePostInbox(actx *spi.Context, w http.ResponseWriter,
	r *http.Request) (*spi.Context, bool, error) {
	if o := actx.Overrides; o != nil && o.AuthenticatePostInbox != nil {
		if derived, authenticated, handled, err := o.AuthenticatePostInbox(actx, w, r); handled {
			return derived, authenticated, err
		}
	}

	if actx.Federated != nil {
		return actx.Federated.AuthenticatePostInbox(actx, w, r)
	}

	if f, ok := actx.Fallback.(interface {
		AuthenticatePostInbox(*spi.Context, http.ResponseWriter, *http.Request) (*spi.Context, bool, error)
	}); ok {
		return f.AuthenticatePostInbox(actx, w, r)
	}

	return nil, false, delegateNotFound("s2s", "AuthenticatePostInbox")
}

func (a *Actor) authorizePostInbox(actx *spi.Context, w http.ResponseWriter,
	activity *vocab.ActivityType) (bool, error) {
	if o := actx.Overrides; o != nil && o.AuthorizePostInbox != nil {
		if authorized, handled, err := o.AuthorizePostInbox(actx, w, activity); handled {
			return authorized, err
		}
	}

	if actx.Federated != nil {
		return actx.Federated.AuthorizePostInbox(actx, w, activity)
	}

	if f, ok := actx.Fallback.(interface {
		AuthorizePostInbox(*spi.Context, http.ResponseWriter, *vocab.ActivityType) (bool, error)
	}); ok {
		return f.AuthorizePostInbox(actx, w, activity)
	}

	return false, delegateNotFound("s2s", "AuthorizePostInbox")
}

func (a *Actor) authenticatePostOutbox(actx *spi.Context, w http.ResponseWriter,
	r *http.Request) (*spi.Context, bool, error) {
	if o := actx.Overrides; o != nil && o.AuthenticatePostOutbox != nil {
		if derived, authenticated, handled, err := o.AuthenticatePostOutbox(actx, w, r); handled {
			return derived, authenticated, err
		}
	}

	if actx.Social != nil {
		return actx.Social.AuthenticatePostOutbox(actx, w, r)
	}

	if f, ok := actx.Fallback.(interface {
		AuthenticatePostOutbox(*spi.Context, http.ResponseWriter, *http.Request) (*spi.Context, bool, error)
	}); ok {
		return f.AuthenticatePostOutbox(actx, w, r)
	}

	return nil, false, delegateNotFound("c2s", "AuthenticatePostOutbox")
}

func (a *Actor) authenticateGetInbox(actx *spi.Context, w http.ResponseWriter,
	r *http.Request) (*spi.Context, bool, error) {
	if o := actx.Overrides; o != nil && o.AuthenticateGetInbox != nil {
		if derived, authenticated, handled, err := o.AuthenticateGetInbox(actx, w, r); handled {
			return derived, authenticated, err
		}
	}

	if actx.Common != nil {
		return actx.Common.AuthenticateGetInbox(actx, w, r)
	}

	if f, ok := actx.Fallback.(interface {
		AuthenticateGetInbox(*spi.Context, http.ResponseWriter, *http.Request) (*spi.Context, bool, error)
	}); ok {
		return f.AuthenticateGetInbox(actx, w, r)
	}

	return nil, false, delegateNotFound("common", "AuthenticateGetInbox")
}

func (a *Actor) authenticateGetOutbox(actx *spi.Context, w http.ResponseWriter,
	r *http.Request) (*spi.Context, bool, error) {
	if o := actx.Overrides; o != nil && o.AuthenticateGetOutbox != nil {
		if derived, authenticated, handled, err := o.AuthenticateGetOutbox(actx, w, r); handled {
			return derived, authenticated, err
		}
	}

	if actx.Common != nil {
		return actx.Common.AuthenticateGetOutbox(actx, w, r)
	}

	if f, ok := actx.Fallback.(interface {
		AuthenticateGetOutbox(*spi.Context, http.ResponseWriter, *http.Request) (*spi.Context, bool, error)
	}); ok {
		return f.AuthenticateGetOutbox(actx, w, r)
	}

	return nil, false, delegateNotFound("common", "AuthenticateGetOutbox")
}

func (a *Actor) maxInboxForwardingRecursionDepth(actx *spi.Context) int {
	if o := actx.Overrides; o != nil && o.MaxInboxForwardingRecursionDepth != nil {
		if depth, handled := o.MaxInboxForwardingRecursionDepth(actx); handled {
			return depth
		}
	}

	if actx.Federated != nil {
		return actx.Federated.MaxInboxForwardingRecursionDepth(actx)
	}

	if f, ok := actx.Fallback.(interface {
		MaxInboxForwardingRecursionDepth(*spi.Context) int
	}); ok {
		return f.MaxInboxForwardingRecursionDepth(actx)
	}

	return defaultMaxForwardingDepth
}

func (a *Actor) maxDeliveryRecursionDepth(actx *spi.Context) int {
	if o := actx.Overrides; o != nil && o.MaxDeliveryRecursionDepth != nil {
		if depth, handled := o.MaxDeliveryRecursionDepth(actx); handled {
			return depth
		}
	}

	if actx.Federated != nil {
		return actx.Federated.MaxDeliveryRecursionDepth(actx)
	}

	if f, ok := actx.Fallback.(interface {
		MaxDeliveryRecursionDepth(*spi.Context) int
	}); ok {
		return f.MaxDeliveryRecursionDepth(actx)
	}

	return defaultMaxDeliveryDepth
}

func (a *Actor) onFollow(actx *spi.Context) spi.OnFollowPolicy {
	if o := actx.Overrides; o != nil && o.OnFollow != nil {
		if policy, handled := o.OnFollow(actx); handled {
			return policy
		}
	}

	if actx.Federated != nil {
		return actx.Federated.OnFollow(actx)
	}

	if f, ok := actx.Fallback.(interface {
		OnFollow(*spi.Context) spi.OnFollowPolicy
	}); ok {
		return f.OnFollow(actx)
	}

	return spi.OnFollowDoNothing
}
