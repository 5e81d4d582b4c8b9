/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log Fields.
const (
	FieldURI             = "uri"
	FieldSenderURL       = "sender"
	FieldConfig          = "config"
	FieldServiceName     = "service"
	FieldServiceIRI      = "service-iri"
	FieldServiceEndpoint = "service-endpoint"
	FieldActorID         = "actor-id"
	FieldActivityType    = "activity-type"
	FieldActivityID      = "activity-id"
	FieldMessageID       = "message-id"
	FieldPayload         = "payload"
	FieldRequestURL      = "request-url"
	FieldRequestHeaders  = "request-headers"
	FieldRequestBody     = "request-body"
	FieldResponse        = "response"
	FieldSize            = "size"
	FieldCacheExpiration = "cache-expiration"
	FieldTarget          = "target"
	FieldTopic           = "topic"
	FieldHTTPStatus      = "http-status"
	FieldHTTPMethod      = "http-method"
	FieldParameter       = "parameter"
	FieldAddress         = "address"
	FieldCollectionIRI   = "collection-iri"
	FieldObjectIRI       = "object-iri"
	FieldReferenceIRI    = "reference"
	FieldInboxIRI        = "inbox-iri"
	FieldOutboxIRI       = "outbox-iri"
	FieldKeyID           = "key-id"
	FieldKeyType         = "key-type"
	FieldKeyOwner        = "key-owner"
	FieldCurrent         = "current"
	FieldNext            = "next"
	FieldTotalItems      = "total"
	FieldType            = "type"
	FieldStoreName       = "store-name"
	FieldTags            = "tags"
	FieldAdditions       = "additions"
	FieldDeletions       = "deletions"
	FieldDeliveryDelay   = "delivery-delay"
	FieldDeliverAttempts = "deliver-attempts"
	FieldDuration        = "duration"
	FieldProperty        = "property"
	FieldValue           = "value"
	FieldMetadata        = "metadata"
	FieldIndex           = "index"
	FieldTimeout         = "timeout"
	FieldBackoff         = "backoff"
	FieldMaxRetries      = "maxRetries"
	FieldRetries         = "retries"
	FieldTracingProvider = "tracing-provider"
	FieldLogSpec         = "log-spec"
)

// WithError sets the error field.
func WithError(err error) zap.Field {
	return zap.Error(err)
}

// WithMessageID sets the message-id field.
func WithMessageID(value string) zap.Field {
	return zap.String(FieldMessageID, value)
}

// WithPayload sets the payload field.
func WithPayload(value []byte) zap.Field {
	return zap.String(FieldPayload, string(value))
}

// WithRequestURL sets the request-url field.
func WithRequestURL(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldRequestURL, value)
}

// WithRequestURLString sets the request-url field.
func WithRequestURLString(value string) zap.Field {
	return zap.String(FieldRequestURL, value)
}

// WithRequestHeaders sets the request-headers field.
func WithRequestHeaders(value http.Header) zap.Field {
	return zap.Object(FieldRequestHeaders, newHTTPHeaderMarshaller(value))
}

// WithRequestBody sets the request-body field.
func WithRequestBody(value []byte) zap.Field {
	return zap.String(FieldRequestBody, string(value))
}

// WithResponse sets the response field.
func WithResponse(value []byte) zap.Field {
	return zap.String(FieldResponse, string(value))
}

// WithServiceName sets the service field.
func WithServiceName(value string) zap.Field {
	return zap.String(FieldServiceName, value)
}

// WithServiceIRI sets the service-iri field.
func WithServiceIRI(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldServiceIRI, value)
}

// WithServiceEndpoint sets the service-endpoint field.
func WithServiceEndpoint(value string) zap.Field {
	return zap.String(FieldServiceEndpoint, value)
}

// WithActivityType sets the activity-type field.
func WithActivityType(value string) zap.Field {
	return zap.String(FieldActivityType, value)
}

// WithActivityID sets the activity-id field.
func WithActivityID(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldActivityID, value)
}

// WithActorIRI sets the actor-id field.
func WithActorIRI(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldActorID, value)
}

// WithActorID sets the actor-id field.
func WithActorID(value string) zap.Field {
	return zap.String(FieldActorID, value)
}

// WithConfig sets the config field. The value of the field is
// encoded as JSON.
func WithConfig(value interface{}) zap.Field {
	return zap.Inline(newJSONMarshaller(FieldConfig, value))
}

// WithSize sets the size field.
func WithSize(value int) zap.Field {
	return zap.Int(FieldSize, value)
}

// WithCacheExpiration sets the cache-expiration field.
func WithCacheExpiration(value time.Duration) zap.Field {
	return zap.Duration(FieldCacheExpiration, value)
}

// WithTarget sets the target field.
func WithTarget(value string) zap.Field {
	return zap.String(FieldTarget, value)
}

// WithTargetIRI sets the target field.
func WithTargetIRI(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldTarget, value)
}

// WithTopic sets the topic field.
func WithTopic(value string) zap.Field {
	return zap.String(FieldTopic, value)
}

// WithHTTPStatus sets the http-status field.
func WithHTTPStatus(value int) zap.Field {
	return zap.Int(FieldHTTPStatus, value)
}

// WithHTTPMethod sets the http-method field.
func WithHTTPMethod(value string) zap.Field {
	return zap.String(FieldHTTPMethod, value)
}

// WithParameter sets the parameter field.
func WithParameter(value string) zap.Field {
	return zap.String(FieldParameter, value)
}

// WithAddress sets the address field.
func WithAddress(value string) zap.Field {
	return zap.String(FieldAddress, value)
}

// WithCollectionIRI sets the collection-iri field.
func WithCollectionIRI(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldCollectionIRI, value)
}

// WithObjectIRI sets the object-iri field.
func WithObjectIRI(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldObjectIRI, value)
}

// WithReferenceIRI sets the reference field.
func WithReferenceIRI(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldReferenceIRI, value)
}

// WithInboxIRI sets the inbox-iri field.
func WithInboxIRI(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldInboxIRI, value)
}

// WithOutboxIRI sets the outbox-iri field.
func WithOutboxIRI(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldOutboxIRI, value)
}

// WithKeyID sets the key-id field.
func WithKeyID(value string) zap.Field {
	return zap.String(FieldKeyID, value)
}

// WithKeyIRI sets the key-id field.
func WithKeyIRI(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldKeyID, value)
}

// WithKeyOwnerIRI sets the key-owner field.
func WithKeyOwnerIRI(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldKeyOwner, value)
}

// WithKeyType sets the key-type field.
func WithKeyType(value string) zap.Field {
	return zap.String(FieldKeyType, value)
}

// WithCurrentIRI sets the current field.
func WithCurrentIRI(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldCurrent, value)
}

// WithNextIRI sets the next field.
func WithNextIRI(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldNext, value)
}

// WithTotal sets the total field.
func WithTotal(value int) zap.Field {
	return zap.Int(FieldTotalItems, value)
}

// WithType sets the type field.
func WithType(value string) zap.Field {
	return zap.String(FieldType, value)
}

// WithStoreName sets the store-name field.
func WithStoreName(value string) zap.Field {
	return zap.String(FieldStoreName, value)
}

// WithTags sets the tags field.
func WithTags(value ...string) zap.Field {
	return zap.Array(FieldTags, newStringArrayMarshaller(value))
}

// WithAdditions sets the additions field.
func WithAdditions(value ...*url.URL) zap.Field {
	return zap.Array(FieldAdditions, newURLArrayMarshaller(value))
}

// WithDeletions sets the deletions field.
func WithDeletions(value ...*url.URL) zap.Field {
	return zap.Array(FieldDeletions, newURLArrayMarshaller(value))
}

// WithDeliveryDelay sets the delivery-delay field.
func WithDeliveryDelay(value time.Duration) zap.Field {
	return zap.Duration(FieldDeliveryDelay, value)
}

// WithDeliveryAttempts sets the deliver-attempts field.
func WithDeliveryAttempts(value int) zap.Field {
	return zap.Int(FieldDeliverAttempts, value)
}

// WithDuration sets the duration field.
func WithDuration(value time.Duration) zap.Field {
	return zap.Duration(FieldDuration, value)
}

// WithProperty sets the property field.
func WithProperty(value string) zap.Field {
	return zap.String(FieldProperty, value)
}

// WithValue sets the value field.
func WithValue(value string) zap.Field {
	return zap.String(FieldValue, value)
}

// WithMetadata sets the metadata field. The value of the field is
// encoded as JSON.
func WithMetadata(value interface{}) zap.Field {
	return zap.Inline(newJSONMarshaller(FieldMetadata, value))
}

// WithIndex sets the index field.
func WithIndex(value int) zap.Field {
	return zap.Int(FieldIndex, value)
}

// WithTimeout sets the timeout field.
func WithTimeout(value time.Duration) zap.Field {
	return zap.Duration(FieldTimeout, value)
}

// WithBackoff sets the backoff field.
func WithBackoff(value time.Duration) zap.Field {
	return zap.Duration(FieldBackoff, value)
}

// WithMaxRetries sets the maxRetries field.
func WithMaxRetries(value int) zap.Field {
	return zap.Int(FieldMaxRetries, value)
}

// WithRetries sets the retries field.
func WithRetries(value int) zap.Field {
	return zap.Int(FieldRetries, value)
}

// WithSenderURL sets the sender field.
func WithSenderURL(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldSenderURL, value)
}

// WithURI sets the uri field.
func WithURI(value fmt.Stringer) zap.Field {
	return zap.Stringer(FieldURI, value)
}

// WithTracingProvider sets the tracing-provider field.
func WithTracingProvider(value string) zap.Field {
	return zap.String(FieldTracingProvider, value)
}

// WithLogSpec sets the log-spec field.
func WithLogSpec(value string) zap.Field {
	return zap.String(FieldLogSpec, value)
}

type jsonMarshaller struct {
	key string
	obj interface{}
}

func newJSONMarshaller(key string, value interface{}) *jsonMarshaller {
	return &jsonMarshaller{key: key, obj: value}
}

func (m *jsonMarshaller) MarshalLogObject(e zapcore.ObjectEncoder) error {
	if err := e.AddReflected(m.key, m.obj); err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	return nil
}

type urlArrayMarshaller struct {
	urls []*url.URL
}

func newURLArrayMarshaller(urls []*url.URL) *urlArrayMarshaller {
	return &urlArrayMarshaller{urls: urls}
}

func (m *urlArrayMarshaller) MarshalLogArray(e zapcore.ArrayEncoder) error {
	for _, u := range m.urls {
		e.AppendString(u.String())
	}

	return nil
}

type httpHeaderMarshaller struct {
	headers http.Header
}

func newHTTPHeaderMarshaller(headers http.Header) *httpHeaderMarshaller {
	return &httpHeaderMarshaller{headers: headers}
}

func (m *httpHeaderMarshaller) MarshalLogObject(e zapcore.ObjectEncoder) error {
	for k, values := range m.headers {
		if err := e.AddArray(k, newStringArrayMarshaller(values)); err != nil {
			return fmt.Errorf("marshal values: %w", err)
		}
	}

	return nil
}

type stringArrayMarshaller struct {
	values []string
}

func newStringArrayMarshaller(values []string) *stringArrayMarshaller {
	return &stringArrayMarshaller{values: values}
}

func (m *stringArrayMarshaller) MarshalLogArray(e zapcore.ArrayEncoder) error {
	for _, v := range m.values {
		e.AppendString(v)
	}

	return nil
}
