/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package httpsig

import (
	"crypto"
	"fmt"
	"net/http"
	"time"

	"github.com/go-fed/httpsig"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
)

var logger = log.New("activitypub_httpsig")

const defaultExpiration = 60 * time.Second

// Signature algorithms accepted for outbound requests, in order of preference.
var signatureAlgorithms = []httpsig.Algorithm{"ed25519", "rsa-sha256", "rsa-sha512"}

// SignerConfig contains the configuration for signing HTTP requests.
type SignerConfig struct {
	Algorithms      []httpsig.Algorithm
	DigestAlgorithm httpsig.DigestAlgorithm
	Headers         []string
	Expiration      time.Duration
}

// DefaultGetSignerConfig returns the default configuration for signing HTTP GET requests.
func DefaultGetSignerConfig() SignerConfig {
	return SignerConfig{
		Algorithms: signatureAlgorithms,
		Headers:    []string{"(request-target)", "Date"},
	}
}

// DefaultPostSignerConfig returns the default configuration for signing HTTP POST
// requests. POST requests additionally carry a digest of the body.
func DefaultPostSignerConfig() SignerConfig {
	return SignerConfig{
		Algorithms:      signatureAlgorithms,
		DigestAlgorithm: "SHA-256",
		Headers:         []string{"(request-target)", "Date", "Digest"},
	}
}

// Signer signs HTTP requests.
type Signer struct {
	SignerConfig
}

// NewSigner returns a new signer.
func NewSigner(cfg SignerConfig) *Signer {
	if cfg.Expiration == 0 {
		cfg.Expiration = defaultExpiration
	}

	return &Signer{SignerConfig: cfg}
}

// SignRequest adds a Date header to the given request and signs it with the
// given private key. The signature is valid for the configured expiration period.
func (s *Signer) SignRequest(pKey crypto.PrivateKey, pubKeyID string, req *http.Request, body []byte) error {
	logger.Debug("Signing request.", logfields.WithRequestURL(req.URL), logfields.WithKeyID(pubKeyID))

	// The underlying signer is not safe for concurrent use, so create one per request.
	signer, _, err := httpsig.NewSigner(s.Algorithms, s.DigestAlgorithm, s.Headers,
		httpsig.Signature, int64(s.Expiration.Seconds()))
	if err != nil {
		return fmt.Errorf("new signer: %w", err)
	}

	req.Header.Add("Date", time.Now().UTC().Format(http.TimeFormat))

	if err := signer.SignRequest(pKey, pubKeyID, req, body); err != nil {
		return fmt.Errorf("sign request: %w", err)
	}

	return nil
}
