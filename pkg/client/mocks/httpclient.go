/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"net/http"
	"sync"
)

// HTTPClient implements a mock HTTP client.
type HTTPClient struct {
	mutex    sync.Mutex
	response *http.Response
	err      error
	requests []*http.Request
}

// DoReturns sets the response and error that are returned from Do.
func (m *HTTPClient) DoReturns(response *http.Response, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.response = response
	m.err = err
}

// Do records the request and returns the mock response.
func (m *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.requests = append(m.requests, req)

	return m.response, m.err
}

// DoCallCount returns the number of times Do was invoked.
func (m *HTTPClient) DoCallCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return len(m.requests)
}

// DoArgsForCall returns the request passed to the i'th invocation of Do.
func (m *HTTPClient) DoArgsForCall(i int) *http.Request {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.requests[i]
}
