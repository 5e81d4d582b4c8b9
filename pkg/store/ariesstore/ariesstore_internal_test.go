/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ariesstore

import (
	"errors"
	"testing"

	"github.com/hyperledger/aries-framework-go/component/storageutil/mock"
	"github.com/stretchr/testify/require"
)

func TestReferenceIterator_FailureCases(t *testing.T) {
	it := referenceIterator{ariesIterator: &mock.Iterator{ErrNext: errors.New("next error")}}

	ref, err := it.Next()
	require.EqualError(t, err, "failed to determine if there are more results: next error")
	require.Nil(t, ref)

	it = referenceIterator{ariesIterator: &mock.Iterator{
		NextReturn: true, ErrValue: errors.New("value error"),
	}}

	ref, err = it.Next()
	require.EqualError(t, err, "failed to get value: value error")
	require.Nil(t, ref)
}
