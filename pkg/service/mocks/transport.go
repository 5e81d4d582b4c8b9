/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/fedikit/fedikit/pkg/service/spi"
)

// Transport implements a mock signed HTTP transport. Delivered payloads are
// recorded per target and dereferenced documents are served from a canned map.
type Transport struct {
	Err error

	mutex      sync.Mutex
	delivered  map[string][][]byte
	documents  map[string][]byte
}

// NewTransport returns a mock transport.
func NewTransport() *Transport {
	return &Transport{
		delivered: make(map[string][][]byte),
		documents: make(map[string][]byte),
	}
}

// WithError injects an error into the mock transport.
func (t *Transport) WithError(err error) *Transport {
	t.Err = err

	return t
}

// WithDocument sets the document that is returned when the given IRI is
// dereferenced.
func (t *Transport) WithDocument(iri string, doc []byte) *Transport {
	t.documents[iri] = doc

	return t
}

// Dereference returns the canned document for the given IRI.
func (t *Transport) Dereference(ctx context.Context, iri *url.URL) ([]byte, error) {
	if t.Err != nil {
		return nil, t.Err
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	doc, ok := t.documents[iri.String()]
	if !ok {
		return nil, fmt.Errorf("not found: %s", iri)
	}

	return doc, nil
}

// Deliver records the payload against the given target.
func (t *Transport) Deliver(ctx context.Context, payload []byte, toIRI *url.URL) error {
	if t.Err != nil {
		return t.Err
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.delivered[toIRI.String()] = append(t.delivered[toIRI.String()], payload)

	return nil
}

// BatchDeliver records the payload against each of the given recipients.
func (t *Transport) BatchDeliver(ctx context.Context, payload []byte, recipients []*url.URL) error {
	for _, r := range recipients {
		if err := t.Deliver(ctx, payload, r); err != nil {
			return err
		}
	}

	return nil
}

// Delivered returns the payloads that were delivered to the given target.
func (t *Transport) Delivered(target string) [][]byte {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.delivered[target]
}

// TransportProvider implements a mock transport provider that returns the
// same transport for every box IRI.
type TransportProvider struct {
	Err       error
	transport *Transport
}

// NewTransportProvider returns a mock transport provider for the given
// transport.
func NewTransportProvider(t *Transport) *TransportProvider {
	return &TransportProvider{transport: t}
}

// WithError injects an error into the mock transport provider.
func (p *TransportProvider) WithError(err error) *TransportProvider {
	p.Err = err

	return p
}

// NewTransport returns the mock transport.
func (p *TransportProvider) NewTransport(boxIRI *url.URL, appAgent string) (spi.Transport, error) {
	if p.Err != nil {
		return nil, p.Err
	}

	return p.transport, nil
}
