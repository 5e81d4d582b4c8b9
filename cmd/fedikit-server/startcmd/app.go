/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"context"
	"net/http"
	"net/url"

	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/httpserver/auth"
	"github.com/fedikit/fedikit/pkg/service/spi"
	storespi "github.com/fedikit/fedikit/pkg/store/spi"
	"github.com/fedikit/fedikit/pkg/vocab"
)

const (
	maxForwardingDepth = 4
	maxDeliveryDepth   = 2
)

type signatureVerifier interface {
	VerifyRequest(req *http.Request) (bool, *url.URL, error)
}

// app is the server's default implementation of the engine's delegate
// interfaces. Inbound requests are authenticated with HTTP signatures,
// client-to-server requests with bearer tokens, and the built-in side effects
// run without application callbacks.
type app struct {
	serviceIRI  *url.URL
	inboxIRI    *url.URL
	outboxIRI   *url.URL
	store       storespi.Store
	sigVerifier signatureVerifier

	inboxTokenVerifier  *auth.TokenVerifier
	outboxTokenVerifier *auth.TokenVerifier

	followPolicy spi.OnFollowPolicy
	logger       *log.Log
}

func newApp(serviceIRI *url.URL, s storespi.Store, sigVerifier signatureVerifier,
	authCfg auth.Config, followPolicy spi.OnFollowPolicy) *app {
	inboxIRI := serviceIRI.JoinPath("inbox")
	outboxIRI := serviceIRI.JoinPath("outbox")

	return &app{
		serviceIRI:          serviceIRI,
		inboxIRI:            inboxIRI,
		outboxIRI:           outboxIRI,
		store:               s,
		sigVerifier:         sigVerifier,
		inboxTokenVerifier:  auth.NewTokenVerifier(authCfg, inboxIRI.Path, http.MethodGet),
		outboxTokenVerifier: auth.NewTokenVerifier(authCfg, outboxIRI.Path, http.MethodPost),
		followPolicy:        followPolicy,
		logger:              log.New("fedikit-app", log.WithFields(logfields.WithServiceIRI(serviceIRI))),
	}
}

// AuthenticateGetInbox requires a bearer token for reads of the inbox, which
// contains activities addressed to this service only.
func (a *app) AuthenticateGetInbox(actx *spi.Context, w http.ResponseWriter,
	r *http.Request) (*spi.Context, bool, error) {
	if !a.inboxTokenVerifier.Verify(r) {
		w.WriteHeader(http.StatusUnauthorized)

		return actx, false, nil
	}

	return actx, true, nil
}

func (a *app) GetInbox(actx *spi.Context, r *http.Request) (*vocab.OrderedCollectionType, error) {
	return a.collection(r.Context(), a.inboxIRI, a.inboxIRI)
}

// AuthenticateGetOutbox allows anonymous reads. The outbox served to an
// unauthenticated requester holds only public activities.
func (a *app) AuthenticateGetOutbox(actx *spi.Context, w http.ResponseWriter,
	r *http.Request) (*spi.Context, bool, error) {
	return actx, true, nil
}

func (a *app) GetOutbox(actx *spi.Context, r *http.Request) (*vocab.OrderedCollectionType, error) {
	return a.collection(r.Context(), storespi.PublicCollectionIRI(a.outboxIRI), a.outboxIRI)
}

func (a *app) collection(ctx context.Context, storedIRI,
	displayedIRI *url.URL) (*vocab.OrderedCollectionType, error) {
	it, err := a.store.QueryCollection(ctx, storedIRI)
	if err != nil {
		return nil, err
	}

	defer func() {
		if e := it.Close(); e != nil {
			a.logger.Warn("Error closing iterator", log.WithError(e))
		}
	}()

	totalItems, err := it.TotalItems()
	if err != nil {
		return nil, err
	}

	return vocab.NewOrderedCollection(nil,
		vocab.WithContext(vocab.ContextActivityStreams),
		vocab.WithID(displayedIRI),
		vocab.WithTotalItems(totalItems),
	), nil
}

// AuthenticatePostOutbox requires a bearer token: only the owner of this
// service may post to its outbox.
func (a *app) AuthenticatePostOutbox(actx *spi.Context, w http.ResponseWriter,
	r *http.Request) (*spi.Context, bool, error) {
	if !a.outboxTokenVerifier.Verify(r) {
		w.WriteHeader(http.StatusUnauthorized)

		return actx, false, nil
	}

	return actx, true, nil
}

func (a *app) PostOutboxRequestBodyHook(actx *spi.Context, r *http.Request,
	activity *vocab.ActivityType) (*spi.Context, error) {
	return actx, nil
}

func (a *app) SocialCallbacks(actx *spi.Context) (*spi.Callbacks, error) {
	return &spi.Callbacks{}, nil
}

func (a *app) AuthenticatePostInbox(actx *spi.Context, w http.ResponseWriter,
	r *http.Request) (*spi.Context, bool, error) {
	ok, actorIRI, err := a.sigVerifier.VerifyRequest(r)
	if err != nil {
		return actx, false, err
	}

	if !ok {
		w.WriteHeader(http.StatusUnauthorized)

		return actx, false, nil
	}

	a.logger.Debug("Authenticated actor", logfields.WithActorIRI(actorIRI))

	return actx, true, nil
}

func (a *app) AuthorizePostInbox(actx *spi.Context, w http.ResponseWriter,
	activity *vocab.ActivityType) (bool, error) {
	blocked, err := a.Blocked(context.Background(), actx, activity.Actors())
	if err != nil {
		return false, err
	}

	if blocked {
		w.WriteHeader(http.StatusForbidden)

		return false, nil
	}

	return true, nil
}

func (a *app) PostInboxRequestBodyHook(actx *spi.Context, r *http.Request,
	activity *vocab.ActivityType) (*spi.Context, error) {
	return actx, nil
}

// Blocked reports no actor as blocked. Deployments with a denylist should
// embed this app and override.
func (a *app) Blocked(ctx context.Context, actx *spi.Context, actorIRIs []*url.URL) (bool, error) {
	return false, nil
}

func (a *app) MaxInboxForwardingRecursionDepth(actx *spi.Context) int {
	return maxForwardingDepth
}

func (a *app) MaxDeliveryRecursionDepth(actx *spi.Context) int {
	return maxDeliveryDepth
}

// FilterForwarding forwards only to the service's own followers collection,
// so that a relayed activity never reaches recipients its sender could not
// have addressed through us.
func (a *app) FilterForwarding(ctx context.Context, actx *spi.Context, recipients []*url.URL,
	activity *vocab.ActivityType) ([]*url.URL, error) {
	followersIRI := a.serviceIRI.JoinPath("followers").String()

	var filtered []*url.URL

	for _, r := range recipients {
		if r.String() == followersIRI {
			filtered = append(filtered, r)
		}
	}

	return filtered, nil
}

func (a *app) OnFollow(actx *spi.Context) spi.OnFollowPolicy {
	return a.followPolicy
}

func (a *app) FederatedCallbacks(actx *spi.Context) (*spi.Callbacks, error) {
	return &spi.Callbacks{}, nil
}
