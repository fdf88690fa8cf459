// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pressureq_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBoundBlocksProducerUntilConsumerMakesRoom exercises a bounded
// queue's backpressure: a producer filling the queue to its bound
// blocks on the next Put until a consumer dequeues a message.
func TestBoundBlocksProducerUntilConsumerMakesRoom(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)
	producer := openTestQueueOnClient(t, client, "jobs")
	consumer := openTestQueueOnClient(t, client, "jobs")
	require.NoError(t, producer.Create(ctx, 1))

	require.NoError(t, producer.Put(ctx, []byte("first")))

	putReturned := make(chan error, 1)
	go func() {
		putReturned <- producer.Put(ctx, []byte("second"))
	}()

	select {
	case <-putReturned:
		t.Fatal("Put on a full bounded queue returned before any consumer drained it")
	case <-time.After(100 * time.Millisecond):
		// expected: still blocked
	}

	got, err := consumer.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)

	select {
	case err := <-putReturned:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Put did not unblock after Get made room")
	}

	got, err = consumer.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestUnboundedQueueNeverBlocksProducer(t *testing.T) {
	ctx := context.Background()
	q := openTestQueue(t, "jobs")
	require.NoError(t, q.Create(ctx, 0))

	done := make(chan error, 1)
	go func() {
		for i := 0; i < 1000; i++ {
			if err := q.Put(ctx, []byte("x")); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("unbounded Put loop did not complete — unexpected blocking")
	}

	length, err := q.Length(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1000, length)
}
