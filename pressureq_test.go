// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pressureq_test

import (
	"context"
	"testing"

	"code.hybscloud.com/pressureq"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

// newTestServer starts an embedded miniredis instance and a go-redis
// client pointed at it, closing both when the test ends.
func newTestServer(t *testing.T) *redis.Client {
	t.Helper()
	srv, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// openTestQueue opens a handle for a fresh, uniquely named queue against
// an embedded miniredis server.
func openTestQueue(t *testing.T, name string) *pressureq.Queue {
	t.Helper()
	client := newTestServer(t)
	return openTestQueueOnClient(t, client, name)
}

// openTestQueueOnClient opens another handle for the same (prefix, name)
// queue against an already-running client — used by tests that need two
// independent handles (e.g. one producer, one consumer) sharing the same
// backing store.
func openTestQueueOnClient(t *testing.T, client *redis.Client, name string) *pressureq.Queue {
	t.Helper()
	q, err := pressureq.Open(context.Background(), client, "__pressure_test__", name)
	require.NoError(t, err)
	return q
}

// testKey re-derives one of the queue's backing-store keys the same way
// keys.go's deriveKey does ("prefix:name[:suffix]"), so tests can
// inspect raw list lengths (producer_free, consumer_free, ...) without
// this external test package reaching into the unexported keySet.
func testKey(name, suffix string) string {
	if suffix == "" {
		return "__pressure_test__:" + name
	}
	return "__pressure_test__:" + name + ":" + suffix
}
