/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"net/http"
	"net/url"
)

// SignatureVerifier is a mock HTTP signature verifier.
type SignatureVerifier struct {
	actorIRI *url.URL
	err      error
}

// NewSignatureVerifier returns a mock signature verifier. If actorIRI is nil
// then VerifyRequest reports the request as unverified.
func NewSignatureVerifier(actorIRI *url.URL) *SignatureVerifier {
	return &SignatureVerifier{actorIRI: actorIRI}
}

// WithError injects an error into VerifyRequest.
func (m *SignatureVerifier) WithError(err error) *SignatureVerifier {
	m.err = err

	return m
}

// VerifyRequest returns the IRI of the actor configured on this mock.
func (m *SignatureVerifier) VerifyRequest(req *http.Request) (bool, *url.URL, error) {
	if m.err != nil {
		return false, nil, m.err
	}

	if m.actorIRI == nil {
		return false, nil, nil
	}

	return true, m.actorIRI, nil
}
