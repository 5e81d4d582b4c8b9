/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package transport

import (
	"context"
	"crypto"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	apperrors "github.com/fedikit/fedikit/pkg/errors"
)

const defaultDeliveryConcurrency = 10

// KeyResolver resolves the signing key of the actor that owns the given
// inbox or outbox IRI.
type KeyResolver interface {
	ResolveKey(boxIRI *url.URL) (privateKey crypto.PrivateKey, publicKeyID *url.URL, err error)
}

// KeyResolverFunc is a function adapter for KeyResolver.
type KeyResolverFunc func(boxIRI *url.URL) (crypto.PrivateKey, *url.URL, error)

// ResolveKey invokes the function.
func (f KeyResolverFunc) ResolveKey(boxIRI *url.URL) (crypto.PrivateKey, *url.URL, error) {
	return f(boxIRI)
}

// Provider mints transports bound to the actor that owns a given inbox or
// outbox. All transports share the HTTP client and signers.
type Provider struct {
	client              httpClient
	keyResolver         KeyResolver
	getSigner           Signer
	postSigner          Signer
	deliveryConcurrency int
}

// ProviderOpt sets an option on a provider.
type ProviderOpt func(p *Provider)

// WithDeliveryConcurrency sets the maximum number of concurrent requests
// made by BatchDeliver.
func WithDeliveryConcurrency(n int) ProviderOpt {
	return func(p *Provider) {
		p.deliveryConcurrency = n
	}
}

// NewProvider returns a new transport provider.
func NewProvider(client httpClient, keyResolver KeyResolver, getSigner, postSigner Signer,
	opts ...ProviderOpt) *Provider {
	p := &Provider{
		client:              client,
		keyResolver:         keyResolver,
		getSigner:           getSigner,
		postSigner:          postSigner,
		deliveryConcurrency: defaultDeliveryConcurrency,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// NewTransport returns a transport that signs requests with the key of the
// actor owning the given box. The appAgent fragment is sent as the
// User-Agent of every request.
func (p *Provider) NewTransport(boxIRI *url.URL, appAgent string) (*Transport, error) {
	privateKey, publicKeyID, err := p.keyResolver.ResolveKey(boxIRI)
	if err != nil {
		return nil, fmt.Errorf("resolve key for box [%s]: %w", boxIRI, err)
	}

	t := New(p.client, privateKey, publicKeyID, p.getSigner, p.postSigner)
	t.userAgent = appAgent
	t.maxDeliveryConcurrency = p.deliveryConcurrency

	return t, nil
}

// Dereference performs a signed GET of the given IRI with ActivityPub Accept
// headers and returns the raw response payload.
func (t *Transport) Dereference(ctx context.Context, iri *url.URL) ([]byte, error) {
	resp, err := t.Get(ctx, NewRequest(iri,
		WithHeader(AcceptHeader, ActivityStreamsContentType, ActivityContentType)))
	if err != nil {
		return nil, apperrors.NewTransient(fmt.Errorf("get from %s: %w", iri, err))
	}

	defer func() {
		if e := resp.Body.Close(); e != nil {
			logfields.CloseResponseBodyError(logger, e)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(iri, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTransient(fmt.Errorf("read response from %s: %w", iri, err))
	}

	return payload, nil
}

// Deliver performs a signed POST of the given payload to the given IRI.
func (t *Transport) Deliver(ctx context.Context, payload []byte, toIRI *url.URL) error {
	resp, err := t.Post(ctx, NewRequest(toIRI,
		WithHeader(ContentTypeHeader, ActivityContentType)), payload)
	if err != nil {
		return apperrors.NewTransient(fmt.Errorf("post to %s: %w", toIRI, err))
	}

	if e := resp.Body.Close(); e != nil {
		logfields.CloseResponseBodyError(logger, e)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return statusError(toIRI, resp.StatusCode)
	}

	logger.Debug("Delivered payload.", logfields.WithTargetIRI(toIRI),
		logfields.WithHTTPStatus(resp.StatusCode))

	return nil
}

// BatchDeliver posts the payload to each of the recipients in parallel,
// bounded by the delivery concurrency of the transport. It succeeds if and
// only if every delivery succeeded; otherwise the errors are aggregated.
func (t *Transport) BatchDeliver(ctx context.Context, payload []byte, recipients []*url.URL) error {
	if len(recipients) == 0 {
		return nil
	}

	concurrency := t.maxDeliveryConcurrency
	if concurrency <= 0 {
		concurrency = defaultDeliveryConcurrency
	}

	var wg sync.WaitGroup

	sem := make(chan struct{}, concurrency)
	errs := make([]error, len(recipients))

	for i, toIRI := range recipients {
		wg.Add(1)

		sem <- struct{}{}

		go func(i int, toIRI *url.URL) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := t.Deliver(ctx, payload, toIRI); err != nil {
				errs[i] = fmt.Errorf("deliver to %s: %w", toIRI, err)
			}
		}(i, toIRI)
	}

	wg.Wait()

	return errors.Join(errs...)
}

// statusError maps a non-success HTTP status to an error. Server errors are
// transient (the delivery may be retried); client errors are persistent.
func statusError(iri *url.URL, status int) error {
	err := fmt.Errorf("request to %s returned status %d", iri, status)

	if status >= http.StatusInternalServerError {
		return apperrors.NewTransient(err)
	}

	return err
}
