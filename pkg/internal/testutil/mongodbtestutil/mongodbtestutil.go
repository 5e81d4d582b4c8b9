/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mongodbtestutil

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	dctest "github.com/ory/dockertest/v3"
	dc "github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoDBImage = "mongo"
	mongoDBTag   = "4.0.0"

	startingPort = 27016
	maxAttempts  = 10
)

var currentPort uint32 = startingPort //nolint:gochecknoglobals

// StartMongoDB starts a MongoDB Docker container. The connection string is returned,
// as well as a function that should be invoked to stop the Docker container when it is
// no longer required.
func StartMongoDB(t *testing.T) (connection string, stop func()) {
	t.Helper()

	pool, err := dctest.NewPool("")
	require.NoError(t, err)

	resource, connString := runMongoDBContainer(t, pool)

	require.NoError(t, waitForMongoDB(t, connString))

	return connString, func() {
		require.NoError(t, pool.Purge(resource))
	}
}

func runMongoDBContainer(t *testing.T, pool *dctest.Pool) (*dctest.Resource, string) {
	t.Helper()

	for i := 0; i < maxAttempts; i++ {
		// Always use a new port since the tests periodically complain about port already in use.
		port := atomic.AddUint32(&currentPort, 1)

		resource, err := pool.RunWithOptions(&dctest.RunOptions{
			Repository: mongoDBImage,
			Tag:        mongoDBTag,
			PortBindings: map[dc.Port][]dc.PortBinding{
				"27017/tcp": {
					{HostIP: "", HostPort: fmt.Sprintf("%d", port)},
				},
			},
		})
		if err == nil {
			return resource, fmt.Sprintf("mongodb://localhost:%d", port)
		}

		if !strings.Contains(err.Error(), "port is already allocated") {
			t.Fatalf("Unable to start Docker container: %s", err)
		}

		t.Logf("Got error. Trying on another port: %s", err)
	}

	panic(fmt.Sprintf("Unable to start Docker container after %d attempts", maxAttempts))
}

func waitForMongoDB(t *testing.T, connString string) error {
	t.Helper()

	return backoff.Retry(func() error {
		return pingMongoDB(connString)
	}, backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), 5))
}

func pingMongoDB(connString string) error {
	client, err := mongo.NewClient(options.Client().ApplyURI(connString))
	if err != nil {
		return err
	}

	if err := client.Connect(context.Background()); err != nil {
		return err
	}

	const pingTimeout = 3 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	return client.Ping(ctx, nil)
}
