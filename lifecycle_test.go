// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pressureq_test

import (
	"context"
	"testing"

	"code.hybscloud.com/pressureq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateThenExistsAndLength(t *testing.T) {
	ctx := context.Background()
	q := openTestQueue(t, "jobs")

	exists, err := q.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, q.Create(ctx, 0))

	exists, err = q.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	length, err := q.Length(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, length)
}

func TestCreateTwiceFailsWithAlreadyExists(t *testing.T) {
	ctx := context.Background()
	q := openTestQueue(t, "jobs")

	require.NoError(t, q.Create(ctx, 0))

	err := q.Create(ctx, 0)
	assert.True(t, pressureq.IsQueueAlreadyExists(err), "got %v", err)
}

func TestOperationsOnMissingQueueReturnDoesNotExist(t *testing.T) {
	ctx := context.Background()
	q := openTestQueue(t, "ghost")

	_, err := q.Length(ctx)
	assert.True(t, pressureq.IsQueueDoesNotExist(err))

	_, err = q.IsClosed(ctx)
	assert.True(t, pressureq.IsQueueDoesNotExist(err))

	err = q.Put(ctx, []byte("x"))
	assert.True(t, pressureq.IsQueueDoesNotExist(err))

	_, err = q.Get(ctx)
	assert.True(t, pressureq.IsQueueDoesNotExist(err))

	err = q.Close(ctx)
	assert.True(t, pressureq.IsQueueDoesNotExist(err))

	err = q.Delete(ctx)
	assert.True(t, pressureq.IsQueueDoesNotExist(err))
}

func TestPutThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	q := openTestQueue(t, "jobs")
	require.NoError(t, q.Create(ctx, 0))

	payload := []byte("hello, pressure")
	require.NoError(t, q.Put(ctx, payload))

	got, err := q.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	length, err := q.Length(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, length)
}

func TestPutPreservesEmbeddedZeroBytes(t *testing.T) {
	ctx := context.Background()
	q := openTestQueue(t, "binary")
	require.NoError(t, q.Create(ctx, 0))

	payload := []byte{0x00, 0x01, 0x00, 0xff, 0x00}
	require.NoError(t, q.Put(ctx, payload))

	got, err := q.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestPutZeroLengthMessageIsDistinctFromClosed(t *testing.T) {
	ctx := context.Background()
	q := openTestQueue(t, "empties")
	require.NoError(t, q.Create(ctx, 0))

	require.NoError(t, q.Put(ctx, []byte{}))

	got, err := q.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{}, got)
}

func TestFIFOOrdering(t *testing.T) {
	ctx := context.Background()
	q := openTestQueue(t, "fifo")
	require.NoError(t, q.Create(ctx, 0))

	messages := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	for _, m := range messages {
		require.NoError(t, q.Put(ctx, m))
	}

	for _, want := range messages {
		got, err := q.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestStatsTrackMessagesAndBytes(t *testing.T) {
	ctx := context.Background()
	q := openTestQueue(t, "stats")
	require.NoError(t, q.Create(ctx, 0))

	require.NoError(t, q.Put(ctx, []byte("abc")))
	require.NoError(t, q.Put(ctx, []byte("de")))

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.ProducedMessages)
	assert.EqualValues(t, 5, stats.ProducedBytes)
	assert.EqualValues(t, 0, stats.ConsumedMessages)
	assert.EqualValues(t, 0, stats.ConsumedBytes)

	_, err = q.Get(ctx)
	require.NoError(t, err)

	stats, err = q.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ConsumedMessages)
	assert.EqualValues(t, 3, stats.ConsumedBytes)
}

func TestStatsDefaultToZeroBeforeAnyActivity(t *testing.T) {
	ctx := context.Background()
	q := openTestQueue(t, "fresh")
	require.NoError(t, q.Create(ctx, 0))

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.ProducedMessages)
	assert.Zero(t, stats.ProducedBytes)
	assert.Zero(t, stats.ConsumedMessages)
	assert.Zero(t, stats.ConsumedBytes)
}

// TestTicketsAreExactlyOneAtRest verifies property P4: with no
// operation in flight, producer_free and consumer_free each hold
// exactly one token — never zero (which would deadlock the next Put
// or Get) and never more than one (which would let two callers into
// the same critical section at once).
func TestTicketsAreExactlyOneAtRest(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)
	q := openTestQueueOnClient(t, client, "jobs")
	require.NoError(t, q.Create(ctx, 0))

	producerFree, err := client.LLen(ctx, testKey("jobs", "producer_free")).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, producerFree)

	consumerFree, err := client.LLen(ctx, testKey("jobs", "consumer_free")).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, consumerFree)

	require.NoError(t, q.Put(ctx, []byte("x")))
	_, err = q.Get(ctx)
	require.NoError(t, err)

	producerFree, err = client.LLen(ctx, testKey("jobs", "producer_free")).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, producerFree)

	consumerFree, err = client.LLen(ctx, testKey("jobs", "consumer_free")).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, consumerFree)
}
