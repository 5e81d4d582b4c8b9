/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package httpsig

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/url"

	httpsig "github.com/igor-pavlenko/httpsignatures-go"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
)

const sigHashAlgorithm = "https://github.com/fedikit/fedikit/httpsig"

// ErrInvalidSignature indicates that the signature is not valid for the given data.
var ErrInvalidSignature = errors.New("invalid HTTP signature")

type keyResolver interface {
	// Resolve returns the ed25519 public key for the given key ID.
	Resolve(keyID string) (ed25519.PublicKey, error)
}

// SignatureHashAlgorithm is a custom httpsignatures.SignatureHashAlgorithm that signs and
// verifies HTTP requests with ed25519 keys.
type SignatureHashAlgorithm struct {
	privateKey  ed25519.PrivateKey
	keyResolver keyResolver
}

// NewSignerAlgorithm returns a new SignatureHashAlgorithm which signs HTTP requests
// with the given private key.
func NewSignerAlgorithm(privateKey ed25519.PrivateKey) *SignatureHashAlgorithm {
	return &SignatureHashAlgorithm{
		privateKey: privateKey,
	}
}

// NewVerifierAlgorithm returns a new SignatureHashAlgorithm which is used to verify the signature
// in the HTTP request header.
func NewVerifierAlgorithm(keyResolver keyResolver) *SignatureHashAlgorithm {
	return &SignatureHashAlgorithm{
		keyResolver: keyResolver,
	}
}

// Algorithm returns this algorithm's name.
func (a *SignatureHashAlgorithm) Algorithm() string {
	return sigHashAlgorithm
}

// Create signs data with the private key.
func (a *SignatureHashAlgorithm) Create(secret httpsig.Secret, data []byte) ([]byte, error) {
	if a.privateKey == nil {
		return nil, errors.New("no private key configured")
	}

	logger.Debug("Signing data.", logfields.WithKeyID(secret.KeyID))

	return ed25519.Sign(a.privateKey, data), nil
}

// Verify verifies the signature over data with the resolved public key.
func (a *SignatureHashAlgorithm) Verify(secret httpsig.Secret, data, signature []byte) error {
	pubKey, err := a.keyResolver.Resolve(secret.KeyID)
	if err != nil {
		return fmt.Errorf("resolve key %s: %w", secret.KeyID, err)
	}

	if !ed25519.Verify(pubKey, data, signature) {
		logger.Info("Signature verification failed.", logfields.WithKeyID(secret.KeyID))

		return ErrInvalidSignature
	}

	logger.Debug("Successfully verified signature.", logfields.WithKeyID(secret.KeyID))

	return nil
}

// KeyResolver resolves the public key of an ActivityPub actor.
type KeyResolver struct {
	retriever publicKeyRetriever
}

// NewKeyResolver returns a new KeyResolver.
func NewKeyResolver(retriever publicKeyRetriever) *KeyResolver {
	return &KeyResolver{retriever: retriever}
}

// Resolve returns the ed25519 public key for the given key ID.
func (r *KeyResolver) Resolve(keyID string) (ed25519.PublicKey, error) {
	keyIRI, err := url.Parse(keyID)
	if err != nil {
		return nil, fmt.Errorf("parse key IRI [%s]: %w", keyID, err)
	}

	logger.Debug("Retrieving public key.", logfields.WithKeyIRI(keyIRI))

	pubKey, err := r.retriever.GetPublicKey(keyIRI)
	if err != nil {
		return nil, fmt.Errorf("retrieve public key for ID [%s]: %w", keyID, err)
	}

	block, _ := pem.Decode([]byte(pubKey.PublicKeyPem))
	if block == nil {
		return nil, fmt.Errorf("invalid public key for ID [%s]: nil block", keyID)
	}

	pk, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key for ID [%s]: %w", keyID, err)
	}

	edKey, ok := pk.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("unsupported public key type for ID [%s]", keyID)
	}

	return edKey, nil
}

// SecretRetriever implements a custom key retriever to be used with the HTTP signature library.
type SecretRetriever struct{}

// Get returns a 'secret' that directs the HTTP signature library to use the custom
// SignatureHashAlgorithm above.
func (r *SecretRetriever) Get(keyID string) (httpsig.Secret, error) {
	return httpsig.Secret{
		KeyID:     keyID,
		Algorithm: sigHashAlgorithm,
	}, nil
}