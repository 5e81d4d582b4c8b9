/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package maintenance

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fedikit/fedikit/pkg/restapi/common"
)

func TestMaintenanceWrapper(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		method string
	}{
		{name: "Inbox POST", path: "/services/activity/inbox", method: http.MethodPost},
		{name: "Outbox GET", path: "/services/activity/outbox", method: http.MethodGet},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := NewMaintenanceWrapper(&mockHTTPHandler{
				path:   test.path,
				method: test.method,
			})
			require.NotNil(t, w)

			// Path and Method are delegated to the wrapped handler so that the
			// endpoint remains registered.
			require.Equal(t, test.path, w.Path())
			require.Equal(t, test.method, w.Method())

			rw := httptest.NewRecorder()

			w.Handler()(rw, httptest.NewRequest(test.method, test.path, nil))

			result := rw.Result()
			require.Equal(t, http.StatusServiceUnavailable, result.StatusCode)

			body, err := io.ReadAll(result.Body)
			require.NoError(t, err)
			require.NoError(t, result.Body.Close())
			require.Equal(t, serviceUnavailableResponse, string(body))
		})
	}
}

type mockHTTPHandler struct {
	path   string
	method string
}

func (m *mockHTTPHandler) Path() string {
	return m.path
}

func (m *mockHTTPHandler) Method() string {
	return m.method
}

func (m *mockHTTPHandler) Handler() common.HTTPRequestHandler {
	return func(http.ResponseWriter, *http.Request) {}
}
