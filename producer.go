// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pressureq

import (
	"context"
	"fmt"
)

// Put enqueues message onto the queue, blocking if the queue is
// bounded and currently full, until a consumer makes room.
//
// Put returns ErrQueueDoesNotExist if the queue does not exist, and
// ErrQueueClosed if the queue has been closed — in both cases no
// message is enqueued. Any other error is an unexpected driver failure;
// on every return path the producer ticket acquired in step 2 is
// released before returning, per the liveness rule in spec §7.
//
// message is copied into the backing store as an opaque byte string;
// embedded NUL bytes and non-UTF-8 content are legal and preserved
// exactly (spec §4.6's "output buffer semantics" applies symmetrically
// to what Put accepts).
func (q *Queue) Put(ctx context.Context, message []byte) error {
	bound, exists, err := q.drv.getInt(ctx, q.keys.bound)
	if err != nil {
		return fmt.Errorf("pressureq: put %s: probe bound: %w", q.keys.queue, err)
	}
	q.exists = exists
	if !exists {
		return ErrQueueDoesNotExist
	}
	q.bound = bound

	logEvent(q.logDebug(), "pressureq: waiting for producer ticket")
	if err := q.acquireProducerTicket(ctx); err != nil {
		return fmt.Errorf("pressureq: put %s: acquire producer ticket: %w", q.keys.queue, err)
	}
	logEvent(q.logDebug(), "pressureq: got producer ticket")

	if err := q.setProducerTag(ctx); err != nil {
		q.releaseProducerTicket(ctx)
		return err
	}

	closed, err := q.drv.exists(ctx, q.keys.closed)
	if err != nil {
		q.releaseProducerTicket(ctx)
		return fmt.Errorf("pressureq: put %s: probe closed: %w", q.keys.queue, err)
	}
	if closed {
		logEvent(q.logDebug(), "pressureq: close detected")
		q.releaseProducerTicket(ctx)
		return ErrQueueClosed
	}

	if q.bound > 0 {
		logEvent(q.logDebug(), "pressureq: waiting for not_full")
		if err := q.waitNotFull(ctx); err != nil {
			q.releaseProducerTicket(ctx)
			return fmt.Errorf("pressureq: put %s: wait not_full: %w", q.keys.queue, err)
		}
		logEvent(q.logDebug(), "pressureq: got not_full")
	}

	length, err := q.drv.lpush(ctx, q.keys.queue, message)
	if err != nil {
		q.releaseProducerTicket(ctx)
		return fmt.Errorf("pressureq: put %s: push message: %w", q.keys.queue, err)
	}

	if q.bound > 0 && length < int64(q.bound) {
		if err := q.signalNotFull(ctx); err != nil {
			q.releaseProducerTicket(ctx)
			return fmt.Errorf("pressureq: put %s: signal not_full: %w", q.keys.queue, err)
		}
	}

	if err := q.drv.incr(ctx, q.keys.statsProducedMessages); err != nil {
		q.releaseProducerTicket(ctx)
		return fmt.Errorf("pressureq: put %s: incr stats: %w", q.keys.queue, err)
	}
	if err := q.drv.incrBy(ctx, q.keys.statsProducedBytes, int64(len(message))); err != nil {
		q.releaseProducerTicket(ctx)
		return fmt.Errorf("pressureq: put %s: incrby stats: %w", q.keys.queue, err)
	}

	q.releaseProducerTicket(ctx)
	return nil
}

// waitNotFull blocks indefinitely for a not_full token.
func (q *Queue) waitNotFull(ctx context.Context) error {
	_, _, err := q.drv.brpop(ctx, q.keys.notFull)
	return err
}
