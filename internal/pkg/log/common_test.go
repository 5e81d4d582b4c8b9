/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trustbloc/logutil-go/pkg/log"
)

func TestCommonLogs(t *testing.T) {
	const module = "test_module"

	t.Run("InvalidParameterValue", func(t *testing.T) {
		stdOut := newMockWriter()

		logger := log.New(module, log.WithStdOut(stdOut), log.WithEncoding(log.JSON))

		InvalidParameterValue(logger, "param1", errors.New("invalid integer"))

		l := unmarshalLogData(t, stdOut.Bytes())

		require.Equal(t, "Invalid parameter value", l.Msg)
		require.Equal(t, "param1", l.Parameter)
		require.Equal(t, "invalid integer", l.Error)
		require.Contains(t, l.Caller, "common_test.go")
	})

	t.Run("CloseIteratorError", func(t *testing.T) {
		stdOut := newMockWriter()

		logger := log.New(module, log.WithStdOut(stdOut), log.WithEncoding(log.JSON))

		CloseIteratorError(logger, errors.New("iterator error"))

		l := unmarshalLogData(t, stdOut.Bytes())

		require.Equal(t, "Error closing iterator", l.Msg)
		require.Equal(t, "iterator error", l.Error)
		require.Contains(t, l.Caller, "common_test.go")
	})

	t.Run("CloseResponseBodyError", func(t *testing.T) {
		stdOut := newMockWriter()

		logger := log.New(module, log.WithStdOut(stdOut), log.WithEncoding(log.JSON))

		CloseResponseBodyError(logger, errors.New("body error"))

		l := unmarshalLogData(t, stdOut.Bytes())

		require.Equal(t, "Error closing response body", l.Msg)
		require.Equal(t, "body error", l.Error)
	})

	t.Run("ReadRequestBodyError", func(t *testing.T) {
		stdOut := newMockWriter()

		logger := log.New(module, log.WithStdOut(stdOut), log.WithEncoding(log.JSON))

		ReadRequestBodyError(logger, errors.New("read error"))

		l := unmarshalLogData(t, stdOut.Bytes())

		require.Equal(t, "Error reading request body", l.Msg)
		require.Equal(t, "read error", l.Error)
	})

	t.Run("WriteResponseBodyError", func(t *testing.T) {
		stdOut := newMockWriter()

		logger := log.New(module, log.WithStdOut(stdOut), log.WithEncoding(log.JSON))

		WriteResponseBodyError(logger, errors.New("write error"))

		l := unmarshalLogData(t, stdOut.Bytes())

		require.Equal(t, "Error writing response body", l.Msg)
		require.Equal(t, "write error", l.Error)
	})

	t.Run("WroteResponse", func(t *testing.T) {
		stdOut := newMockWriter()

		log.SetLevel(module, log.DEBUG)
		defer log.SetLevel(module, log.INFO)

		logger := log.New(module, log.WithStdOut(stdOut), log.WithEncoding(log.JSON))

		WroteResponse(logger, []byte("some response"))

		l := unmarshalLogData(t, stdOut.Bytes())

		require.Equal(t, "Wrote response", l.Msg)
		require.Equal(t, "some response", l.Response)
	})
}
