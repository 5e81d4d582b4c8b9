/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wmlogger

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/require"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/fedikit/fedikit/pkg/pubsub/wmlogger/mocks"
)

//go:generate counterfeiter -o ./mocks/logger.gen.go --fake-name Logger . logger

func TestNew(t *testing.T) {
	require.NotNil(t, New())
}

func TestWMLogger(t *testing.T) {
	u, err := url.Parse("https://alice.example.com")
	require.NoError(t, err)

	fields := watermill.LogFields{"field1": "value1", "field2": u}

	errInjected := fmt.Errorf("injected error")

	tests := []struct {
		name           string
		level          log.Level
		wantErrorCalls int
		wantInfoCalls  int
		wantDebugCalls int
	}{
		// Trace is logged at debug level, so at DEBUG both Debug and Trace are counted.
		{name: "Debug level", level: log.DEBUG, wantErrorCalls: 1, wantInfoCalls: 1, wantDebugCalls: 2},
		{name: "Info level", level: log.INFO, wantErrorCalls: 1, wantInfoCalls: 1, wantDebugCalls: 0},
		{name: "Warn level", level: log.WARNING, wantErrorCalls: 1, wantInfoCalls: 0, wantDebugCalls: 0},
		{name: "Error level", level: log.ERROR, wantErrorCalls: 1, wantInfoCalls: 0, wantDebugCalls: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			log.SetLevel(Module, test.level)

			l := &mocks.Logger{}

			wmLogger := newWMLogger(l)
			require.NotNil(t, wmLogger)

			wmLogger.Error("message", errInjected, fields)
			wmLogger.Info("message", fields)
			wmLogger.Debug("message", fields)
			wmLogger.Trace("message", nil)

			require.Equal(t, test.wantErrorCalls, l.ErrorCallCount())
			require.Equal(t, test.wantInfoCalls, l.InfoCallCount())
			require.Equal(t, test.wantDebugCalls, l.DebugCallCount())
		})
	}

	t.Run("With", func(t *testing.T) {
		log.SetLevel(Module, log.DEBUG)

		l := &mocks.Logger{}

		wmLogger := newWMLogger(l).With(watermill.LogFields{"field3": "value3"})
		require.NotNil(t, wmLogger)

		wmLogger.Debug("message", fields)

		require.Equal(t, 1, l.DebugCallCount())
	})
}
