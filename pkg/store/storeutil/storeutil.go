/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package storeutil

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	fedierrors "github.com/fedikit/fedikit/pkg/errors"
	store "github.com/fedikit/fedikit/pkg/store/spi"
	"github.com/fedikit/fedikit/pkg/vocab"
)

// GetQueryOptions populates and returns the QueryOptions struct with the given options.
func GetQueryOptions(opts ...store.QueryOpt) *store.QueryOptions {
	options := &store.QueryOptions{
		PageNumber: -1,
		PageSize:   -1,
	}

	for _, opt := range opts {
		opt(options)
	}

	return options
}

// ReadReferences reads at most maxItems references from the given iterator. If maxItems <= 0
// then all of the remaining references are read.
func ReadReferences(it store.ReferenceIterator, maxItems int) ([]*url.URL, error) {
	var refs []*url.URL

	for maxItems <= 0 || len(refs) < maxItems {
		ref, err := it.Next()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				break
			}

			return nil, fmt.Errorf("get next reference: %w", err)
		}

		refs = append(refs, ref)
	}

	return refs, nil
}

// DocumentID returns the 'id' property of the given document. Returns ErrMissingID
// if the document has no id.
func DocumentID(doc vocab.Document) (*url.URL, error) {
	obj := &vocab.ObjectType{}

	err := vocab.UnmarshalFromDoc(doc, obj)
	if err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}

	id := obj.ID()
	if id == nil || id.URL() == nil {
		return nil, fedierrors.ErrMissingID
	}

	return id.URL(), nil
}

// MintID returns a new, unique IRI for the given document under the given service endpoint.
// Activities are minted under ./activities and all other documents under ./objects.
func MintID(serviceEndpoint *url.URL, doc vocab.Document) (*url.URL, error) {
	obj := &vocab.ObjectType{}

	err := vocab.UnmarshalFromDoc(doc, obj)
	if err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}

	path := "objects"

	if obj.Type().IsActivity() {
		path = "activities"
	}

	id, err := url.Parse(fmt.Sprintf("%s/%s/%s",
		strings.TrimSuffix(serviceEndpoint.String(), "/"), path, uuid.NewString()))
	if err != nil {
		return nil, fmt.Errorf("parse minted IRI: %w", err)
	}

	return id, nil
}
