/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"context"
	"net/http"
	"sync"

	"github.com/fedikit/fedikit/pkg/client/transport"
)

// HTTPTransport implements a mock HTTP transport.
type HTTPTransport struct {
	mutex        sync.Mutex
	getResponse  *http.Response
	getErr       error
	getByCall    map[int]*returnValues
	getCallCount int
	postResponse *http.Response
	postErr      error
	postRequests []*transport.Request
	postPayloads [][]byte
}

type returnValues struct {
	response *http.Response
	err      error
}

// GetReturns sets the response and error that are returned from Get.
func (m *HTTPTransport) GetReturns(response *http.Response, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.getResponse = response
	m.getErr = err
}

// GetReturnsOnCall sets the response and error that are returned from the i'th call to Get.
func (m *HTTPTransport) GetReturnsOnCall(i int, response *http.Response, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.getByCall == nil {
		m.getByCall = make(map[int]*returnValues)
	}

	m.getByCall[i] = &returnValues{response: response, err: err}
}

// Get returns the mock response.
func (m *HTTPTransport) Get(_ context.Context, _ *transport.Request) (*http.Response, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	i := m.getCallCount

	m.getCallCount++

	if ret, ok := m.getByCall[i]; ok {
		return ret.response, ret.err
	}

	return m.getResponse, m.getErr
}

// PostReturns sets the response and error that are returned from Post.
func (m *HTTPTransport) PostReturns(response *http.Response, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.postResponse = response
	m.postErr = err
}

// Post records the request and returns the mock response.
func (m *HTTPTransport) Post(_ context.Context, req *transport.Request, payload []byte) (*http.Response, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.postRequests = append(m.postRequests, req)
	m.postPayloads = append(m.postPayloads, payload)

	return m.postResponse, m.postErr
}

// PostRequests returns the requests that were posted.
func (m *HTTPTransport) PostRequests() []*transport.Request {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.postRequests
}

// PostPayloads returns the payloads that were posted.
func (m *HTTPTransport) PostPayloads() [][]byte {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.postPayloads
}
