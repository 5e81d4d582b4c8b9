/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package loglevels

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trustbloc/logutil-go/pkg/log"
)

const logSpecURL = "https://example.com/loglevels"

func TestWriteHandler(t *testing.T) {
	h := NewWriteHandler()
	require.Equal(t, logLevelsPath, h.Path())
	require.Equal(t, http.MethodPost, h.Method())
	require.NotNil(t, h.Handler())

	t.Run("Update spec", func(t *testing.T) {
		defer func() {
			log.SetDefaultLevel(log.INFO)
			log.SetLevel("module3", log.INFO)
		}()

		rw := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, logSpecURL,
			bytes.NewBufferString("module3=WARN:ERROR"))

		h.Handler()(rw, req)

		result := rw.Result()
		require.Equal(t, http.StatusOK, result.StatusCode)
		require.NoError(t, result.Body.Close())

		require.Equal(t, log.ERROR, log.GetLevel(""))
		require.Equal(t, log.WARNING, log.GetLevel("module3"))
	})

	t.Run("Invalid spec -> 400", func(t *testing.T) {
		rw := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, logSpecURL,
			bytes.NewBufferString("module2:INFO"))

		h.Handler()(rw, req)

		result := rw.Result()
		require.Equal(t, http.StatusBadRequest, result.StatusCode)
		require.NoError(t, result.Body.Close())
	})

	t.Run("Body read error -> 500", func(t *testing.T) {
		rw := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, logSpecURL,
			&failingReader{err: errors.New("injected read error")})

		h.Handler()(rw, req)

		result := rw.Result()
		require.Equal(t, http.StatusInternalServerError, result.StatusCode)
		require.NoError(t, result.Body.Close())
	})
}

func TestReadHandler(t *testing.T) {
	h := NewReadHandler()
	require.Equal(t, logLevelsPath, h.Path())
	require.Equal(t, http.MethodGet, h.Method())
	require.NotNil(t, h.Handler())

	defer func() {
		log.SetDefaultLevel(log.INFO)
		log.SetLevel("module3", log.INFO)
	}()

	require.NoError(t, log.SetSpec("module3=WARN:ERROR"))

	rw := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, logSpecURL, http.NoBody)

	h.Handler()(rw, req)

	result := rw.Result()
	require.Equal(t, http.StatusOK, result.StatusCode)

	respBytes, err := io.ReadAll(result.Body)
	require.NoError(t, err)
	require.NoError(t, result.Body.Close())

	require.Contains(t, string(respBytes), "module3=WARN")
	require.Contains(t, string(respBytes), ":ERROR")
}

type failingReader struct {
	err error
}

func (r *failingReader) Read([]byte) (int, error) {
	return 0, r.err
}
