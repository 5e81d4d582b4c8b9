/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
)

var logger = log.New("httpserver")

const (
	authHeader  = "Authorization"
	tokenPrefix = "Bearer "
)

// TokenDef maps a set of endpoints (expressed as a regular expression) to the
// names of the bearer tokens that authorize read and write access to them.
type TokenDef struct {
	EndpointExpression string
	ReadTokens         []string
	WriteTokens        []string
}

// Config contains the bearer token definitions along with the token values,
// keyed by token name.
type Config struct {
	AuthTokensDef []*TokenDef
	AuthTokens    map[string]string
}

// TokenVerifier authorizes HTTP requests with bearer tokens.
type TokenVerifier struct {
	Config

	endpoint string
	tokens   []string
}

// NewTokenVerifier returns a verifier for the given endpoint and method. The tokens
// that apply to the endpoint are resolved from the configuration up front, so a
// bad configuration (an invalid endpoint expression or an undefined token name)
// causes a panic at startup.
func NewTokenVerifier(cfg Config, endpoint, method string) *TokenVerifier {
	tokens, err := tokensForEndpoint(cfg, endpoint, method)
	if err != nil {
		panic(fmt.Errorf("resolve authorization tokens: %w", err))
	}

	return &TokenVerifier{
		Config:   cfg,
		endpoint: endpoint,
		tokens:   tokens,
	}
}

// Verify returns true if the request carries one of the required bearer tokens,
// or if no token is required for the endpoint.
func (v *TokenVerifier) Verify(req *http.Request) bool {
	if len(v.tokens) == 0 {
		logger.Debug("No auth token required", logfields.WithServiceEndpoint(v.endpoint))

		return true
	}

	token, ok := bearerToken(req)
	if !ok {
		logger.Debug("Bearer token not found in header", logfields.WithServiceEndpoint(v.endpoint))

		return false
	}

	authorized := 0

	// Compare against all tokens so that the time taken does not depend on
	// which (if any) token matched.
	for _, t := range v.tokens {
		authorized |= subtle.ConstantTimeCompare([]byte(token), []byte(t))
	}

	return authorized == 1
}

func bearerToken(req *http.Request) (string, bool) {
	hdr := req.Header.Get(authHeader)
	if !strings.HasPrefix(hdr, tokenPrefix) {
		return "", false
	}

	return hdr[len(tokenPrefix):], true
}

func tokensForEndpoint(cfg Config, endpoint, method string) ([]string, error) {
	def, err := matchingDef(cfg.AuthTokensDef, endpoint)
	if err != nil {
		return nil, err
	}

	if def == nil {
		return nil, nil
	}

	names := def.ReadTokens
	if method == http.MethodPost {
		names = def.WriteTokens
	}

	tokens := make([]string, len(names))

	for i, name := range names {
		token, ok := cfg.AuthTokens[name]
		if !ok {
			return nil, fmt.Errorf("token not found: %s", name)
		}

		tokens[i] = token
	}

	return tokens, nil
}

func matchingDef(defs []*TokenDef, endpoint string) (*TokenDef, error) {
	for _, def := range defs {
		ok, err := regexp.MatchString(def.EndpointExpression, endpoint)
		if err != nil {
			return nil, fmt.Errorf("match endpoint pattern %s: %w", def.EndpointExpression, err)
		}

		if ok {
			return def, nil
		}
	}

	return nil, nil
}
