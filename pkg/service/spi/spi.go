/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package spi defines the service provider interfaces of the ActivityPub
// engine: the actor context that flows through a request, the common, social
// (C2S) and federated (S2S) delegates supplied by the application, the
// per-activity-type callback tables, and the interfaces of the long-running
// inbox/outbox services.
package spi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fedikit/fedikit/pkg/lifecycle"
	store "github.com/fedikit/fedikit/pkg/store/spi"
	"github.com/fedikit/fedikit/pkg/vocab"
)

// State is the state of a service.
type State = lifecycle.State

const (
	// StateNotStarted indicates that the service has not been started.
	StateNotStarted = lifecycle.StateNotStarted
	// StateStarting indicates that the service is in the process of starting.
	StateStarting = lifecycle.StateStarting
	// StateStarted indicates that the service has been started.
	StateStarted = lifecycle.StateStarted
	// StateStopped indicates that the service has been stopped.
	StateStopped = lifecycle.StateStopped
)

// ServiceLifecycle defines the functions of a service lifecycle.
type ServiceLifecycle interface {
	// Start starts the service.
	Start()
	// Stop stops the service.
	Stop()
	// State returns the state of the service.
	State() State
}

// OnFollowPolicy indicates what the engine should do when a Follow activity
// addressed to one of our actors arrives in the inbox.
type OnFollowPolicy int

const (
	// OnFollowDoNothing leaves the Follow to the application callback.
	OnFollowDoNothing OnFollowPolicy = iota
	// OnFollowAutoAccept replies with an Accept and adds the follower to the
	// actor's followers collection.
	OnFollowAutoAccept
	// OnFollowAutoReject replies with a Reject.
	OnFollowAutoReject
)

// Transport defines the signed HTTP operations used by the engine. A
// Transport is bound to the actor that owns the inbox or outbox being
// processed and signs requests with that actor's key.
type Transport interface {
	// Dereference performs a signed GET of the given IRI with ActivityPub
	// Accept headers and returns the raw response payload.
	Dereference(ctx context.Context, iri *url.URL) ([]byte, error)

	// Deliver performs a signed POST of the given payload to the given IRI.
	Deliver(ctx context.Context, payload []byte, toIRI *url.URL) error

	// BatchDeliver posts the payload to each of the recipients in parallel.
	// It succeeds if and only if every delivery succeeded; otherwise an
	// aggregated error is returned.
	BatchDeliver(ctx context.Context, payload []byte, recipients []*url.URL) error
}

// TransportProvider mints a Transport that signs on behalf of the actor
// owning the given inbox or outbox IRI.
type TransportProvider interface {
	NewTransport(boxIRI *url.URL, appAgent string) (Transport, error)
}

// CallbackFunc is an application callback for a single activity type.
type CallbackFunc func(ctx context.Context, actx *Context, activity *vocab.ActivityType) error

// Callbacks maps activity types to application callbacks. The built-in side
// effects for a type run first and then invoke the matching callback, so the
// application layers on top of the prescribed behavior. A type with no
// callback falls back to Default; absent both, the activity passes through
// unchanged.
type Callbacks struct {
	Create   CallbackFunc
	Update   CallbackFunc
	Delete   CallbackFunc
	Follow   CallbackFunc
	Accept   CallbackFunc
	Reject   CallbackFunc
	Add      CallbackFunc
	Remove   CallbackFunc
	Like     CallbackFunc
	Announce CallbackFunc
	Undo     CallbackFunc
	Block    CallbackFunc

	// Default is invoked for any type without a dedicated callback.
	Default CallbackFunc
}

// Resolve returns the callback for the given activity type, falling back to
// Default. A nil return means no callback is registered.
func (c *Callbacks) Resolve(t vocab.Type) CallbackFunc {
	if c == nil {
		return nil
	}

	byType := map[vocab.Type]CallbackFunc{
		vocab.TypeCreate:   c.Create,
		vocab.TypeUpdate:   c.Update,
		vocab.TypeDelete:   c.Delete,
		vocab.TypeFollow:   c.Follow,
		vocab.TypeAccept:   c.Accept,
		vocab.TypeReject:   c.Reject,
		vocab.TypeAdd:      c.Add,
		vocab.TypeRemove:   c.Remove,
		vocab.TypeLike:     c.Like,
		vocab.TypeAnnounce: c.Announce,
		vocab.TypeUndo:     c.Undo,
		vocab.TypeBlock:    c.Block,
	}

	if cb, ok := byType[t]; ok && cb != nil {
		return cb
	}

	return c.Default
}

// CommonBehavior is the delegate for behavior shared by the social and
// federated halves of the protocol.
type CommonBehavior interface {
	// AuthenticateGetInbox authenticates a GET of an inbox. It returns a
	// derived context, whether the request is authenticated, and an error.
	// If authenticated is false and err is nil then the delegate has already
	// written the response.
	AuthenticateGetInbox(actx *Context, w http.ResponseWriter, r *http.Request) (*Context, bool, error)

	// GetInbox returns the inbox OrderedCollection for the given request,
	// scoped to the authenticated requester.
	GetInbox(actx *Context, r *http.Request) (*vocab.OrderedCollectionType, error)

	// AuthenticateGetOutbox authenticates a GET of an outbox.
	AuthenticateGetOutbox(actx *Context, w http.ResponseWriter, r *http.Request) (*Context, bool, error)

	// GetOutbox returns the outbox OrderedCollection for the given request.
	GetOutbox(actx *Context, r *http.Request) (*vocab.OrderedCollectionType, error)
}

// SocialProtocol is the delegate for the client-to-server (C2S) half of the
// protocol. Setting it on the actor context enables C2S.
type SocialProtocol interface {
	// AuthenticatePostOutbox authenticates a POST to an outbox.
	AuthenticatePostOutbox(actx *Context, w http.ResponseWriter, r *http.Request) (*Context, bool, error)

	// PostOutboxRequestBodyHook is called after the body has been parsed to a
	// typed activity but before any side effects run.
	PostOutboxRequestBodyHook(actx *Context, r *http.Request, activity *vocab.ActivityType) (*Context, error)

	// SocialCallbacks returns the application's C2S callback table.
	SocialCallbacks(actx *Context) (*Callbacks, error)
}

// FederatedProtocol is the delegate for the server-to-server (S2S) half of
// the protocol. Setting it on the actor context enables federation.
type FederatedProtocol interface {
	// AuthenticatePostInbox authenticates a POST to an inbox, typically by
	// verifying the HTTP signature.
	AuthenticatePostInbox(actx *Context, w http.ResponseWriter, r *http.Request) (*Context, bool, error)

	// AuthorizePostInbox authorizes an authenticated activity, typically by
	// consulting Blocked with the activity's actors. If authorized is false
	// and err is nil then the delegate has already written the response.
	AuthorizePostInbox(actx *Context, w http.ResponseWriter, activity *vocab.ActivityType) (bool, error)

	// PostInboxRequestBodyHook is called after the body has been parsed to a
	// typed activity but before any side effects run.
	PostInboxRequestBodyHook(actx *Context, r *http.Request, activity *vocab.ActivityType) (*Context, error)

	// Blocked reports whether any of the given actors is blocked.
	Blocked(ctx context.Context, actx *Context, actorIRIs []*url.URL) (bool, error)

	// MaxInboxForwardingRecursionDepth bounds the ownership traversal
	// performed during inbox forwarding.
	MaxInboxForwardingRecursionDepth(actx *Context) int

	// MaxDeliveryRecursionDepth bounds recipient-collection expansion during
	// delivery.
	MaxDeliveryRecursionDepth(actx *Context) int

	// FilterForwarding trims the owned collection recipients that an
	// activity may be forwarded to. Applications must filter to avoid
	// relaying spam.
	FilterForwarding(ctx context.Context, actx *Context, recipients []*url.URL, activity *vocab.ActivityType) ([]*url.URL, error)

	// OnFollow returns the policy applied to inbound Follow activities.
	OnFollow(actx *Context) OnFollowPolicy

	// FederatedCallbacks returns the application's S2S callback table.
	FederatedCallbacks(actx *Context) (*Callbacks, error)
}

// Overrides intercepts top-level delegate calls. Each function reports
// whether it handled the call; returning handled=false passes the call on to
// the protocol delegate. A nil field always passes.
type Overrides struct {
	AuthenticateGetInbox  func(actx *Context, w http.ResponseWriter, r *http.Request) (derived *Context, authenticated, handled bool, err error)
	AuthenticateGetOutbox func(actx *Context, w http.ResponseWriter, r *http.Request) (derived *Context, authenticated, handled bool, err error)
	AuthenticatePostInbox func(actx *Context, w http.ResponseWriter, r *http.Request) (derived *Context, authenticated, handled bool, err error)
	AuthorizePostInbox    func(actx *Context, w http.ResponseWriter, activity *vocab.ActivityType) (authorized, handled bool, err error)

	GetInbox  func(actx *Context, r *http.Request) (*vocab.OrderedCollectionType, bool, error)
	GetOutbox func(actx *Context, r *http.Request) (*vocab.OrderedCollectionType, bool, error)

	AuthenticatePostOutbox func(actx *Context, w http.ResponseWriter, r *http.Request) (derived *Context, authenticated, handled bool, err error)

	MaxInboxForwardingRecursionDepth func(actx *Context) (int, bool)
	MaxDeliveryRecursionDepth        func(actx *Context) (int, bool)
	OnFollow                         func(actx *Context) (OnFollowPolicy, bool)

	FilterForwarding func(ctx context.Context, actx *Context, recipients []*url.URL, activity *vocab.ActivityType) ([]*url.URL, bool, error)
}

// C2SContext holds the per-request data of a client-to-server call.
type C2SContext struct {
	// OutboxIRI is the outbox handling the call.
	OutboxIRI *url.URL

	// RawActivity is the original JSON document as posted by the client.
	// Update side effects need it to distinguish an absent key from a key
	// whose value is null.
	RawActivity vocab.Document

	// Deliverable indicates whether the activity should federate after the
	// C2S side effects have run. Side effects may veto delivery (a Block
	// must never federate).
	Deliverable bool
}

// S2SContext holds the per-request data of a server-to-server call.
type S2SContext struct {
	// InboxIRI is the inbox handling the call.
	InboxIRI *url.URL

	// OnFollow is the policy applied to inbound Follow activities.
	OnFollow OnFollowPolicy

	// NewActivityID is the id of an activity that was just added to the
	// outbox. Inbox forwarding treats the outbox echo as not yet seen.
	NewActivityID *url.URL
}

// Context is the actor context that flows through a single request. The
// delegate, store and transport fields are immutable after construction;
// the C2S and S2S fields are set per pipeline position. Components never
// mutate a Context in place - they derive copies.
type Context struct {
	Common    CommonBehavior
	Social    SocialProtocol
	Federated FederatedProtocol

	// Fallback may implement any subset of the delegate methods. It is
	// consulted when the selected protocol delegate is nil.
	Fallback interface{}

	// Overrides, when set, intercepts top-level delegate calls.
	Overrides *Overrides

	// SocialCallbacks and FederatedCallbacks, when set, take precedence over
	// the tables returned by the protocol delegates.
	SocialCallbacks    *Callbacks
	FederatedCallbacks *Callbacks

	Store     store.Store
	Transport TransportProvider

	// AppAgent is the application's User-Agent fragment.
	AppAgent string

	// Data is a free-form map for application use. It is carried, never
	// interpreted.
	Data map[string]interface{}

	C2S *C2SContext
	S2S *S2SContext
}

// SocialEnabled returns true if the client-to-server protocol is enabled.
func (c *Context) SocialEnabled() bool {
	return c.Social != nil
}

// FederatedEnabled returns true if the server-to-server protocol is enabled.
func (c *Context) FederatedEnabled() bool {
	return c.Federated != nil
}

// WithC2S returns a copy of the context carrying the given C2S data.
func (c *Context) WithC2S(data *C2SContext) *Context {
	derived := *c
	derived.C2S = data

	return &derived
}

// WithS2S returns a copy of the context carrying the given S2S data.
func (c *Context) WithS2S(data *S2SContext) *Context {
	derived := *c
	derived.S2S = data

	return &derived
}

// ActivityHandler performs the built-in side effects for an activity and
// invokes the application callback for its type.
type ActivityHandler interface {
	ServiceLifecycle

	// HandleActivity runs the side effects for the given activity. The
	// source is the IRI from which the activity was received (nil for
	// locally posted activities).
	HandleActivity(ctx context.Context, actx *Context, source *url.URL, activity *vocab.ActivityType) error

	// Subscribe allows a client to receive activities that were accepted by
	// the handler.
	Subscribe() <-chan *vocab.ActivityType
}

// Outbox posts activities to the local outbox and delivers them to their
// recipients.
type Outbox interface {
	ServiceLifecycle

	// Post posts an activity to the outbox and returns its id. The activity
	// is delivered to all of its resolved recipients except the ones in
	// exclude.
	Post(ctx context.Context, activity *vocab.ActivityType, exclude ...*url.URL) (*url.URL, error)
}

// Inbox receives activities from remote peers.
type Inbox interface {
	ServiceLifecycle
}

// UndeliverableActivityHandler is notified of activities that could not be
// delivered after all redelivery attempts were exhausted.
type UndeliverableActivityHandler interface {
	HandleUndeliverableActivity(activity *vocab.ActivityType, toURL string)
}

// Handlers holds the optional handlers of a service.
type Handlers struct {
	UndeliverableHandler UndeliverableActivityHandler
}

// HandlerOpt sets an optional handler.
type HandlerOpt func(options *Handlers)

// WithUndeliverableHandler sets the handler for undeliverable activities.
func WithUndeliverableHandler(handler UndeliverableActivityHandler) HandlerOpt {
	return func(options *Handlers) {
		options.UndeliverableHandler = handler
	}
}
