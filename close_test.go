// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pressureq_test

import (
	"context"
	"testing"
	"time"

	"code.hybscloud.com/pressureq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseRefusesFurtherPuts(t *testing.T) {
	ctx := context.Background()
	q := openTestQueue(t, "jobs")
	require.NoError(t, q.Create(ctx, 0))

	require.NoError(t, q.Close(ctx))

	err := q.Put(ctx, []byte("too late"))
	assert.True(t, pressureq.IsQueueClosed(err), "got %v", err)
}

func TestCloseTwiceReturnsQueueClosed(t *testing.T) {
	ctx := context.Background()
	q := openTestQueue(t, "jobs")
	require.NoError(t, q.Create(ctx, 0))

	require.NoError(t, q.Close(ctx))
	err := q.Close(ctx)
	assert.True(t, pressureq.IsQueueClosed(err), "got %v", err)
}

// TestCloseDrainsResidualMessages verifies that Get continues returning
// messages enqueued before Close, and only reports ErrQueueClosed once
// the backlog is exhausted.
func TestCloseDrainsResidualMessages(t *testing.T) {
	ctx := context.Background()
	q := openTestQueue(t, "jobs")
	require.NoError(t, q.Create(ctx, 0))

	require.NoError(t, q.Put(ctx, []byte("first")))
	require.NoError(t, q.Put(ctx, []byte("second")))
	require.NoError(t, q.Close(ctx))

	got, err := q.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)

	got, err = q.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)

	_, err = q.Get(ctx)
	assert.True(t, pressureq.IsQueueClosed(err), "got %v", err)
}

// TestCloseUnblocksConsumerWaitingForData verifies a consumer blocked in
// Get on an empty, open queue observes closure (rather than hanging
// forever) once another handle calls Close.
func TestCloseUnblocksConsumerWaitingForData(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)
	consumer := openTestQueueOnClient(t, client, "jobs")
	producer := openTestQueueOnClient(t, client, "jobs")
	require.NoError(t, producer.Create(ctx, 0))

	done := make(chan error, 1)
	go func() {
		_, err := consumer.Get(ctx)
		done <- err
	}()

	// Give the consumer goroutine time to block inside Get before closing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, producer.Close(ctx))

	select {
	case err := <-done:
		assert.True(t, pressureq.IsQueueClosed(err), "got %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not unblock after Close")
	}
}
