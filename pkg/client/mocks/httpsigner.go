/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"crypto"
	"net/http"
)

// HTTPSigner implements a mock HTTP signer.
type HTTPSigner struct {
	err error
}

// SignRequestReturns sets the error that is returned from SignRequest.
func (m *HTTPSigner) SignRequestReturns(err error) {
	m.err = err
}

// SignRequest returns the mock error.
func (m *HTTPSigner) SignRequest(crypto.PrivateKey, string, *http.Request, []byte) error {
	return m.err
}
