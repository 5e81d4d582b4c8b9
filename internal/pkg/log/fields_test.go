/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/trustbloc/logutil-go/pkg/log"
)

func TestStandardFields(t *testing.T) {
	const module = "test_module"

	u1 := parseURL(t, "https://example1.com")
	u2 := parseURL(t, "https://example2.com")
	u3 := parseURL(t, "https://example3.com")

	t.Run("json fields 1", func(t *testing.T) {
		stdOut := newMockWriter()

		logger := log.New(module, log.WithStdOut(stdOut), log.WithEncoding(log.JSON))

		logger.Info("Some message",
			WithMessageID("msg1"), WithPayload([]byte(`{"field":"value"}`)),
			WithActorIRI(u1), WithActivityID(u2), WithActivityType("Create"),
			WithServiceIRI(parseURL(t, u2.String())), WithServiceName("service1"),
			WithServiceEndpoint("/services/service1"),
			WithSize(1234), WithCacheExpiration(12*time.Second),
			WithTargetIRI(u1), WithParameter("param1"),
			WithCollectionIRI(u3), WithURI(u2), WithSenderURL(u1),
			WithAdditions(u1, u3), WithDeletions(u1),
			WithRequestURL(u1), WithRequestBody([]byte(`request body`)),
			WithRequestHeaders(map[string][]string{"key1": {"v1", "v2"}, "key2": {"v3"}}),
			WithObjectIRI(u1), WithReferenceIRI(u2),
			WithKeyIRI(u1), WithKeyOwnerIRI(u2), WithKeyType("ed25519"),
			WithCurrentIRI(u1), WithNextIRI(u2),
			WithTotal(12), WithType("type1"),
		)

		t.Logf(stdOut.String())
		l := unmarshalLogData(t, stdOut.Bytes())

		require.Equal(t, `Some message`, l.Msg)
		require.Equal(t, `msg1`, l.MessageID)
		require.Equal(t, `{"field":"value"}`, l.Payload)
		require.Equal(t, u1.String(), l.ActorID)
		require.Equal(t, u2.String(), l.ActivityID)
		require.Equal(t, `Create`, l.ActivityType)
		require.Equal(t, `service1`, l.Service)
		require.Equal(t, `/services/service1`, l.ServiceEndpoint)
		require.Equal(t, u2.String(), l.ServiceIri)
		require.Equal(t, 1234, l.Size)
		require.Equal(t, `12s`, l.CacheExpiration)
		require.Equal(t, u1.String(), l.Target)
		require.Equal(t, `param1`, l.Parameter)
		require.Equal(t, u3.String(), l.CollectionIRI)
		require.Equal(t, u2.String(), l.URI)
		require.Equal(t, u1.String(), l.Sender)
		require.Equal(t, []string{u1.String(), u3.String()}, l.Additions)
		require.Equal(t, []string{u1.String()}, l.Deletions)
		require.Equal(t, u1.String(), l.RequestURL)
		require.Equal(t, `request body`, l.RequestBody)
		require.Equal(t, map[string][]string{"key1": {"v1", "v2"}, "key2": {"v3"}}, l.RequestHeaders)
		require.Equal(t, u1.String(), l.ObjectIRI)
		require.Equal(t, u2.String(), l.Reference)
		require.Equal(t, u1.String(), l.KeyID)
		require.Equal(t, u2.String(), l.KeyOwnerID)
		require.Equal(t, "ed25519", l.KeyType)
		require.Equal(t, u1.String(), l.Current)
		require.Equal(t, u2.String(), l.Next)
		require.Equal(t, 12, l.Total)
		require.Equal(t, "type1", l.Type)
	})

	t.Run("json fields 2", func(t *testing.T) {
		stdOut := newMockWriter()

		logger := log.New(module, log.WithStdOut(stdOut), log.WithEncoding(log.JSON))

		cfg := &mockObject{Field1: "value1", Field2: 1234}
		metadata := &mockObject{Field1: "meta1", Field2: 7676}

		logger.Info("Some message",
			WithError(errors.New("some error")),
			WithConfig(cfg), WithTopic("topic1"), WithAddress("0.0.0.0:8080"),
			WithHTTPStatus(400), WithHTTPMethod("POST"),
			WithInboxIRI(u1), WithOutboxIRI(u2),
			WithStoreName("store1"), WithTags("tag1", "tag2"), WithProperty("prop1"),
			WithDeliveryDelay(10*time.Second), WithDeliveryAttempts(3), WithDuration(30*time.Second),
			WithActorID(u3.String()), WithKeyID("key1"),
			WithRequestURLString(u1.String()), WithResponse([]byte(`response`)),
			WithValue("value1"), WithMetadata(metadata), WithIndex(7),
			WithTimeout(2*time.Minute), WithBackoff(5*time.Second),
			WithMaxRetries(12), WithRetries(3),
			WithTracingProvider("JAEGER"), WithLogSpec("module1=DEBUG"),
		)

		t.Logf(stdOut.String())
		l := unmarshalLogData(t, stdOut.Bytes())

		require.Equal(t, `some error`, l.Error)
		require.Equal(t, cfg, l.Config)
		require.Equal(t, `topic1`, l.Topic)
		require.Equal(t, `0.0.0.0:8080`, l.Address)
		require.Equal(t, 400, l.HTTPStatus)
		require.Equal(t, `POST`, l.HTTPMethod)
		require.Equal(t, u1.String(), l.InboxIRI)
		require.Equal(t, u2.String(), l.OutboxIRI)
		require.Equal(t, `store1`, l.StoreName)
		require.Equal(t, []string{"tag1", "tag2"}, l.Tags)
		require.Equal(t, `prop1`, l.Property)
		require.Equal(t, `10s`, l.DeliveryDelay)
		require.Equal(t, 3, l.DeliveryAttempts)
		require.Equal(t, `30s`, l.Duration)
		require.Equal(t, u3.String(), l.ActorID)
		require.Equal(t, `key1`, l.KeyID)
		require.Equal(t, u1.String(), l.RequestURL)
		require.Equal(t, `response`, l.Response)
		require.Equal(t, `value1`, l.Value)
		require.Equal(t, metadata, l.Metadata)
		require.Equal(t, 7, l.Index)
		require.Equal(t, `2m0s`, l.Timeout)
		require.Equal(t, `5s`, l.Backoff)
		require.Equal(t, 12, l.MaxRetries)
		require.Equal(t, 3, l.Retries)
		require.Equal(t, `JAEGER`, l.TracingProvider)
		require.Equal(t, `module1=DEBUG`, l.LogSpec)
	})
}

type mockObject struct {
	Field1 string `json:"field1"`
	Field2 int    `json:"field2"`
}

type logData struct {
	Level  string `json:"level"`
	Time   string `json:"time"`
	Logger string `json:"logger"`
	Caller string `json:"caller"`
	Msg    string `json:"msg"`
	Error  string `json:"error"`

	MessageID        string              `json:"message-id"`
	Payload          string              `json:"payload"`
	ActorID          string              `json:"actor-id"`
	ActivityID       string              `json:"activity-id"`
	ActivityType     string              `json:"activity-type"`
	ServiceIri       string              `json:"service-iri"`
	Service          string              `json:"service"`
	ServiceEndpoint  string              `json:"service-endpoint"`
	Size             int                 `json:"size"`
	CacheExpiration  string              `json:"cache-expiration"`
	Target           string              `json:"target"`
	Topic            string              `json:"topic"`
	Parameter        string              `json:"parameter"`
	CollectionIRI    string              `json:"collection-iri"`
	URI              string              `json:"uri"`
	Sender           string              `json:"sender"`
	Config           *mockObject         `json:"config"`
	Additions        []string            `json:"additions"`
	Deletions        []string            `json:"deletions"`
	RequestURL       string              `json:"request-url"`
	RequestHeaders   map[string][]string `json:"request-headers"`
	RequestBody      string              `json:"request-body"`
	Response         string              `json:"response"`
	ObjectIRI        string              `json:"object-iri"`
	Reference        string              `json:"reference"`
	InboxIRI         string              `json:"inbox-iri"`
	OutboxIRI        string              `json:"outbox-iri"`
	KeyID            string              `json:"key-id"`
	KeyOwnerID       string              `json:"key-owner"`
	KeyType          string              `json:"key-type"`
	Current          string              `json:"current"`
	Next             string              `json:"next"`
	Total            int                 `json:"total"`
	Type             string              `json:"type"`
	StoreName        string              `json:"store-name"`
	Tags             []string            `json:"tags"`
	Property         string              `json:"property"`
	Address          string              `json:"address"`
	HTTPStatus       int                 `json:"http-status"`
	HTTPMethod       string              `json:"http-method"`
	DeliveryDelay    string              `json:"delivery-delay"`
	DeliveryAttempts int                 `json:"deliver-attempts"`
	Duration         string              `json:"duration"`
	Value            string              `json:"value"`
	Metadata         *mockObject         `json:"metadata"`
	Index            int                 `json:"index"`
	Timeout          string              `json:"timeout"`
	Backoff          string              `json:"backoff"`
	MaxRetries       int                 `json:"maxRetries"`
	Retries          int                 `json:"retries"`
	TracingProvider  string              `json:"tracing-provider"`
	LogSpec          string              `json:"log-spec"`
}

func unmarshalLogData(t *testing.T, b []byte) *logData {
	t.Helper()

	l := &logData{}

	require.NoError(t, json.Unmarshal(b, l))

	return l
}

func parseURL(t *testing.T, raw string) *url.URL {
	t.Helper()

	u, err := url.Parse(raw)
	require.NoError(t, err)

	return u
}

type mockWriter struct {
	*bytes.Buffer
}

func (m *mockWriter) Sync() error {
	return nil
}

func newMockWriter() *mockWriter {
	return &mockWriter{Buffer: bytes.NewBuffer(nil)}
}
