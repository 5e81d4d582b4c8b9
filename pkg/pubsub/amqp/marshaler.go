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
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/fedikit/fedikit/internal/pkg/log"
)

const defaultMessageUUIDHeaderKey = "_watermill_message_uuid"

// DefaultMarshaler converts between watermill messages and AMQP publishings.
// It is based on the marshaler in watermill-amqp but additionally supports
// array-valued metadata (required for dead-letter queue headers) and a
// per-message expiration set via the message metadata.
type DefaultMarshaler struct {
	// PostprocessPublishing allows fields such as CorrelationId and ContentType
	// to be set on the amqp.Publishing before it is sent.
	PostprocessPublishing func(amqp.Publishing) amqp.Publishing

	// NotPersistentDeliveryMode publishes messages in transient delivery mode.
	// Transient messages give higher throughput but are lost on broker restart.
	NotPersistentDeliveryMode bool

	// MessageUUIDHeaderKey is the header used to store the message UUID.
	// If empty then defaultMessageUUIDHeaderKey is used.
	MessageUUIDHeaderKey string
}

// Marshal converts a watermill message to an AMQP publishing. Message metadata
// is stored in the publishing headers, except for the expiration property which
// is set on the publishing itself.
func (d DefaultMarshaler) Marshal(msg *message.Message) (amqp.Publishing, error) {
	logger.Debug("Marshalling message with metadata", log.WithMessageID(msg.UUID),
		log.WithMetadata(msg.Metadata))

	headers := make(amqp.Table, len(msg.Metadata)+1)

	for key, value := range msg.Metadata {
		if key == metadataExpiration {
			logger.Debug("Ignoring metadata property since it will be set in the message directly",
				log.WithProperty(key))

			continue
		}

		headerValue, err := headerValueForMetadata(value)
		if err != nil {
			return amqp.Publishing{}, fmt.Errorf("unmarshal value for metadata %s: %w", key, err)
		}

		headers[key] = headerValue
	}

	headers[d.messageUUIDHeaderKey()] = msg.UUID

	publishing := amqp.Publishing{
		Body:       msg.Payload,
		Headers:    headers,
		Expiration: expirationFromMetadata(msg.Metadata),
	}

	if !d.NotPersistentDeliveryMode {
		publishing.DeliveryMode = amqp.Persistent
	}

	if d.PostprocessPublishing != nil {
		publishing = d.PostprocessPublishing(publishing)
	}

	return publishing, nil
}

// Unmarshal converts an AMQP delivery to a watermill message.
//
//nolint:gocritic
func (d DefaultMarshaler) Unmarshal(amqpMsg amqp.Delivery) (*message.Message, error) {
	uuidHeaderKey := d.messageUUIDHeaderKey()

	msgUUID, err := messageUUID(amqpMsg.Headers, uuidHeaderKey)
	if err != nil {
		return nil, err
	}

	msg := message.NewMessage(msgUUID, amqpMsg.Body)
	msg.Metadata = make(message.Metadata, len(amqpMsg.Headers)-1)

	for key, value := range amqpMsg.Headers {
		if key == uuidHeaderKey {
			continue
		}

		logger.Debug("Got metadata property", log.WithProperty(key), log.WithType(reflect.TypeOf(value).String()))

		msg.Metadata[key], err = metadataValueForHeader(value)
		if err != nil {
			return nil, fmt.Errorf("marshal header value for metadata [%s]: %w", key, err)
		}
	}

	return msg, nil
}

func (d DefaultMarshaler) messageUUIDHeaderKey() string {
	if d.MessageUUIDHeaderKey != "" {
		return d.MessageUUIDHeaderKey
	}

	return defaultMessageUUIDHeaderKey
}

func messageUUID(headers amqp.Table, headerKey string) (string, error) {
	value, ok := headers[headerKey]
	if !ok {
		return "", nil
	}

	msgUUID, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("message UUID is not a string, but: %#v", value)
	}

	return msgUUID, nil
}

// metadataValueForHeader converts an AMQP header value to a metadata string.
// Array values are marshalled to JSON.
func metadataValueForHeader(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []interface{}:
		valueBytes, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("marshal metadata: %w", err)
		}

		return string(valueBytes), nil
	default:
		return "", fmt.Errorf("value is not a string or an array, but %#v", value)
	}
}

// headerValueForMetadata converts a metadata string to an AMQP header value.
// If the string contains a JSON array then it is unmarshalled and returned as
// an array of AMQP tables, otherwise the string is returned as-is.
func headerValueForMetadata(value string) (interface{}, error) {
	var arrayValue []interface{}

	if err := json.Unmarshal([]byte(value), &arrayValue); err != nil {
		return value, nil //nolint:nilerr
	}

	headerValue := make([]interface{}, len(arrayValue))

	for i, value := range arrayValue {
		switch v := value.(type) {
		case amqp.Table:
			headerValue[i] = v
		case map[string]interface{}:
			tableValue := make(amqp.Table, len(v))

			for k, val := range v {
				tableValue[k] = val
			}

			headerValue[i] = tableValue
		default:
			return nil, fmt.Errorf("unsupported value type: %s", reflect.TypeOf(value))
		}
	}

	return headerValue, nil
}

func expirationFromMetadata(metadata message.Metadata) string {
	expirationValue, ok := metadata[metadataExpiration]
	if !ok {
		return ""
	}

	expiration, err := time.ParseDuration(expirationValue)
	if err != nil {
		logger.Warn("Invalid value for metadata property. No expiration will be set.",
			log.WithValue(expirationValue), log.WithProperty(metadataExpiration), log.WithError(err))

		return ""
	}

	return strconv.FormatInt(expiration.Milliseconds(), 10)
}
