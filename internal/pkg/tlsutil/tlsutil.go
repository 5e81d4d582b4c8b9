/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package tlsutil builds certificate pools for outbound TLS connections.
package tlsutil

import (
	"crypto/x509"
	"fmt"
	"os"
	"path"
)

// GetCertPool returns a certificate pool containing the given PEM-encoded CA certificates,
// optionally seeded with the system certificate pool.
func GetCertPool(useSystemCertPool bool, tlsCACerts []string) (*x509.CertPool, error) {
	certPool := x509.NewCertPool()

	if useSystemCertPool {
		systemPool, err := x509.SystemCertPool()
		if err != nil {
			return nil, fmt.Errorf("get system certificate pool: %w", err)
		}

		certPool = systemPool
	}

	for _, certFile := range tlsCACerts {
		pemBytes, err := os.ReadFile(path.Clean(certFile))
		if err != nil {
			return nil, fmt.Errorf("read CA certificate [%s]: %w", certFile, err)
		}

		if !certPool.AppendCertsFromPEM(pemBytes) {
			return nil, fmt.Errorf("no valid certificates found in [%s]", certFile)
		}
	}

	return certPool, nil
}
