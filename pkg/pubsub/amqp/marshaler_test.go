/*
MIT License

Copyright (c) 2019 Three Dots Labs

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package amqp

import (
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/v2/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	stdAmqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

//nolint:lll
const xDeathHeader = `[{"count":1,"exchange":"fedikit","queue":"inbox_activities","reason":"rejected","routing-keys":["inbox_activities"],"time":"2021-10-25T17:26:24Z"}]`

func TestDefaultMarshaler(t *testing.T) {
	t.Run("Round trip with dead-letter header", func(t *testing.T) {
		marshaler := DefaultMarshaler{}

		msg := message.NewMessage(watermill.NewUUID(), []byte("payload"))
		msg.Metadata.Set("foo", "bar")
		msg.Metadata.Set("x-death", xDeathHeader)

		marshaled, err := marshaler.Marshal(msg)
		require.NoError(t, err)

		_, ok := marshaled.Headers[amqp.DefaultMessageUUIDHeaderKey]
		require.True(t, ok, "header %s doesn't exist", amqp.DefaultMessageUUIDHeaderKey)

		// The x-death metadata (a JSON array) must be converted to an array of AMQP tables.
		header, ok := marshaled.Headers["x-death"]
		require.True(t, ok, "header x-death doesn't exist")
		require.NotNil(t, header)

		arrHeader, ok := header.([]interface{})
		require.True(t, ok)
		require.Len(t, arrHeader, 1)

		xDeathValues, ok := arrHeader[0].(stdAmqp.Table)
		require.True(t, ok)
		require.Equal(t, float64(1), xDeathValues["count"])

		routingKeys, ok := xDeathValues["routing-keys"].([]interface{})
		require.True(t, ok)
		require.Len(t, routingKeys, 1)
		require.Equal(t, "inbox_activities", routingKeys[0])

		unmarshaledMsg, err := marshaler.Unmarshal(publishingToDelivery(&marshaled))
		require.NoError(t, err)

		require.True(t, msg.Equals(unmarshaledMsg))
		require.Equal(t, stdAmqp.Persistent, marshaled.DeliveryMode)
	})

	t.Run("Expiration metadata", func(t *testing.T) {
		marshaler := DefaultMarshaler{}

		msg := message.NewMessage(watermill.NewUUID(), []byte("payload"))
		msg.Metadata.Set(metadataExpiration, "10s")

		marshaled, err := marshaler.Marshal(msg)
		require.NoError(t, err)

		// The expiration is set on the publishing (in milliseconds) instead of in a header.
		require.Equal(t, "10000", marshaled.Expiration)

		_, ok := marshaled.Headers[metadataExpiration]
		require.False(t, ok)
	})

	t.Run("Invalid expiration metadata is ignored", func(t *testing.T) {
		marshaler := DefaultMarshaler{}

		msg := message.NewMessage(watermill.NewUUID(), []byte("payload"))
		msg.Metadata.Set(metadataExpiration, "not-a-duration")

		marshaled, err := marshaler.Marshal(msg)
		require.NoError(t, err)
		require.Empty(t, marshaled.Expiration)
	})

	t.Run("No message UUID header", func(t *testing.T) {
		marshaler := DefaultMarshaler{}

		msg := message.NewMessage(watermill.NewUUID(), nil)

		marshaled, err := marshaler.Marshal(msg)
		require.NoError(t, err)

		delete(marshaled.Headers, amqp.DefaultMessageUUIDHeaderKey)

		unmarshaledMsg, err := marshaler.Unmarshal(publishingToDelivery(&marshaled))
		require.NoError(t, err)
		require.Empty(t, unmarshaledMsg.UUID)
	})

	t.Run("Custom message UUID header", func(t *testing.T) {
		const headerKey = "custom_msg_uuid"

		marshaler := DefaultMarshaler{MessageUUIDHeaderKey: headerKey}

		msg := message.NewMessage(watermill.NewUUID(), nil)

		marshaled, err := marshaler.Marshal(msg)
		require.NoError(t, err)

		_, ok := marshaled.Headers[headerKey]
		require.True(t, ok, "header %s doesn't exist", headerKey)

		unmarshaledMsg, err := marshaler.Unmarshal(publishingToDelivery(&marshaled))
		require.NoError(t, err)
		require.Equal(t, msg.UUID, unmarshaledMsg.UUID)
	})

	t.Run("Transient delivery mode", func(t *testing.T) {
		marshaler := DefaultMarshaler{NotPersistentDeliveryMode: true}

		msg := message.NewMessage(watermill.NewUUID(), []byte("payload"))
		msg.Metadata.Set("foo", "bar")

		marshaled, err := marshaler.Marshal(msg)
		require.NoError(t, err)
		require.EqualValues(t, 0, marshaled.DeliveryMode)
	})

	t.Run("Postprocess publishing", func(t *testing.T) {
		marshaler := DefaultMarshaler{
			PostprocessPublishing: func(publishing stdAmqp.Publishing) stdAmqp.Publishing {
				publishing.CorrelationId = "correlation"
				publishing.ContentType = "application/json"

				return publishing
			},
		}

		msg := message.NewMessage(watermill.NewUUID(), []byte("payload"))
		msg.Metadata.Set("foo", "bar")

		marshaled, err := marshaler.Marshal(msg)
		require.NoError(t, err)

		require.Equal(t, "correlation", marshaled.CorrelationId)
		require.Equal(t, "application/json", marshaled.ContentType)
	})

	t.Run("Non-string header value -> error", func(t *testing.T) {
		marshaler := DefaultMarshaler{}

		delivery := stdAmqp.Delivery{
			Headers: stdAmqp.Table{"count": int32(7)},
		}

		_, err := marshaler.Unmarshal(delivery)
		require.Error(t, err)
		require.Contains(t, err.Error(), "not a string or an array")
	})
}

func publishingToDelivery(marshaled *stdAmqp.Publishing) stdAmqp.Delivery {
	return stdAmqp.Delivery{
		Body:    marshaled.Body,
		Headers: marshaled.Headers,
	}
}
