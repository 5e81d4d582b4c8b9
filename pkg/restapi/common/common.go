/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import "net/http"

// HTTPRequestHandler is invoked to handle an HTTP request.
type HTTPRequestHandler func(http.ResponseWriter, *http.Request)

// HTTPHandler is implemented by handlers that may be registered with an HTTP server.
type HTTPHandler interface {
	// Path returns the base path of the endpoint.
	Path() string
	// Method returns the HTTP method.
	Method() string
	// Handler returns the handler function.
	Handler() HTTPRequestHandler
}
