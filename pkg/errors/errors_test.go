/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransientError(t *testing.T) {
	et := errors.New("some transient error")
	ep := errors.New("some persistent error")

	err := fmt.Errorf("got error: %w", NewTransient(et))

	require.True(t, IsTransient(err))
	require.True(t, errors.Is(err, et))
	require.False(t, IsTransient(ep))
	require.EqualError(t, err, "got error: some transient error")

	err = fmt.Errorf("got error: %w", NewTransientf("transient error [%d]", 1000))

	require.True(t, IsTransient(err))
	require.EqualError(t, err, "got error: transient error [1000]")
}

func TestBadRequestError(t *testing.T) {
	eb := errors.New("some bad request error")

	err := fmt.Errorf("got error: %w", NewBadRequest(eb))

	require.True(t, IsBadRequest(err))
	require.True(t, errors.Is(err, eb))
	require.False(t, IsBadRequest(errors.New("some other error")))
	require.EqualError(t, err, "got error: some bad request error")

	err = fmt.Errorf("got error: %w", NewBadRequestf("bad request [%d]", 400))

	require.True(t, IsBadRequest(err))
	require.EqualError(t, err, "got error: bad request [400]")
}

func TestSentinelErrors(t *testing.T) {
	err := fmt.Errorf("handle activity: %w", ErrMissingObject)

	require.True(t, errors.Is(err, ErrMissingObject))
	require.False(t, errors.Is(err, ErrMissingTarget))

	err = NewBadRequest(fmt.Errorf("validate: %w", ErrMissingID))

	require.True(t, IsBadRequest(err))
	require.True(t, errors.Is(err, ErrMissingID))
}
