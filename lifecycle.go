// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pressureq

import (
	"context"
	"fmt"
)

// Create atomically establishes a new queue with the given bound
// (0 = unbounded, >0 = max in-flight messages). It is idempotent in the
// sense that a second Create call on an already-existing queue fails
// cleanly with ErrQueueAlreadyExists rather than corrupting state.
//
// Per spec invariant I3, bound is set iff the queue exists: Create
// first SETNX's the bound key, and only on success seeds
// producer_free, consumer_free, and not_full with one token each.
func (q *Queue) Create(ctx context.Context, bound int) error {
	set, err := q.drv.setNX(ctx, q.keys.bound, bound)
	if err != nil {
		return fmt.Errorf("pressureq: create %s: %w", q.keys.queue, err)
	}
	if !set {
		return ErrQueueAlreadyExists
	}

	for _, key := range []string{q.keys.producerFree, q.keys.consumerFree, q.keys.notFull} {
		length, err := q.drv.lpush(ctx, key, []byte{0})
		if err != nil {
			return fmt.Errorf("pressureq: create %s: seed %s: %w", q.keys.queue, key, err)
		}
		if length != 1 {
			return fmt.Errorf("%w: seeding %s reported length %d, want 1", ErrUnexpectedFailure, key, length)
		}
	}

	q.exists = true
	q.bound = bound

	if q.logger != nil {
		q.logger.Info().Str("queue", q.keys.queue).Int("bound", bound).Msg("pressureq: created queue")
	}
	return nil
}

// Exists reports whether the queue currently exists, i.e. whether its
// bound key is present.
func (q *Queue) Exists(ctx context.Context) (bool, error) {
	ok, err := q.drv.exists(ctx, q.keys.bound)
	if err != nil {
		return false, fmt.Errorf("pressureq: exists %s: %w", q.keys.queue, err)
	}
	q.exists = ok
	return ok, nil
}

// Length returns the number of messages currently in the queue list. If
// the queue exists but its list key is absent (empty queue), it returns
// 0. If the queue does not exist, it returns ErrQueueDoesNotExist.
func (q *Queue) Length(ctx context.Context) (int, error) {
	exists, err := q.Exists(ctx)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrQueueDoesNotExist
	}
	n, err := q.drv.llen(ctx, q.keys.queue)
	if err != nil {
		return 0, fmt.Errorf("pressureq: length %s: %w", q.keys.queue, err)
	}
	return int(n), nil
}

// IsClosed reports whether the queue has been closed. It requires the
// queue to exist.
func (q *Queue) IsClosed(ctx context.Context) (bool, error) {
	exists, err := q.Exists(ctx)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, ErrQueueDoesNotExist
	}
	closed, err := q.drv.exists(ctx, q.keys.closed)
	if err != nil {
		return false, fmt.Errorf("pressureq: is-closed %s: %w", q.keys.queue, err)
	}
	q.closed = closed
	return closed, nil
}

// Close is a privileged producer: it acquires the producer ticket like
// Put does, but instead of adding a message it pushes the close
// sentinel. It returns ErrQueueClosed if the queue was already closed,
// and ErrQueueDoesNotExist if the queue does not exist.
//
// The double LPUSH of the closed key is deliberate (spec §4.4): one
// token satisfies a consumer already blocked on the multi-key wait in
// Get's open branch; the second remains so the next consumer's
// existence probe still observes closure before it blocks.
func (q *Queue) Close(ctx context.Context) error {
	exists, err := q.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return ErrQueueDoesNotExist
	}

	logEvent(q.logDebug(), "pressureq: waiting for producer ticket (close)")
	if _, _, err := q.drv.brpop(ctx, q.keys.producerFree); err != nil {
		return fmt.Errorf("pressureq: close %s: acquire producer ticket: %w", q.keys.queue, err)
	}
	logEvent(q.logDebug(), "pressureq: got producer ticket (close)")

	if err := q.setProducerTag(ctx); err != nil {
		q.releaseProducerTicket(ctx)
		return err
	}

	closedAlready, err := q.drv.exists(ctx, q.keys.closed)
	if err != nil {
		q.releaseProducerTicket(ctx)
		return fmt.Errorf("pressureq: close %s: probe closed: %w", q.keys.queue, err)
	}
	if closedAlready {
		q.releaseProducerTicket(ctx)
		return ErrQueueClosed
	}

	for i := 0; i < 2; i++ {
		if _, err := q.drv.lpush(ctx, q.keys.closed, []byte{0}); err != nil {
			q.releaseProducerTicket(ctx)
			return fmt.Errorf("pressureq: close %s: push close sentinel: %w", q.keys.queue, err)
		}
	}
	q.closed = true

	q.releaseProducerTicket(ctx)

	if q.logger != nil {
		q.logger.Info().Str("queue", q.keys.queue).Msg("pressureq: closed queue")
	}
	return nil
}

// Delete tears down every key belonging to the queue. It unblocks any
// producer or consumer currently blocked inside Put or Get (spec §4.4),
// then drains both critical-section tickets (which may briefly block
// until any in-flight Put/Get finishes) before removing the remaining
// bookkeeping.
//
// Delete returns ErrQueueDoesNotExist if the bound key was already
// absent.
func (q *Queue) Delete(ctx context.Context) error {
	exists, err := q.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return ErrQueueDoesNotExist
	}

	if err := q.drv.del(ctx, q.keys.bound); err != nil {
		return fmt.Errorf("pressureq: delete %s: del bound: %w", q.keys.queue, err)
	}
	q.exists = false

	// Unblock a producer waiting on not_full.
	if _, err := q.drv.lpush(ctx, q.keys.notFull, []byte{0}); err != nil {
		return fmt.Errorf("pressureq: delete %s: unblock not_full: %w", q.keys.queue, err)
	}

	// Unblock a consumer waiting on the queue/closed multi-key BRPOP.
	for i := 0; i < 2; i++ {
		if _, err := q.drv.lpush(ctx, q.keys.closed, []byte{0}); err != nil {
			return fmt.Errorf("pressureq: delete %s: unblock closed: %w", q.keys.queue, err)
		}
	}
	q.closed = true

	// Acquire both critical sections — may block until any in-flight
	// Put/Get releases its ticket.
	logEvent(q.logDebug(), "pressureq: acquiring producer+consumer tickets (delete)")
	if _, _, err := q.drv.brpop(ctx, q.keys.producerFree); err != nil {
		return fmt.Errorf("pressureq: delete %s: acquire producer ticket: %w", q.keys.queue, err)
	}
	if _, _, err := q.drv.brpop(ctx, q.keys.consumerFree); err != nil {
		return fmt.Errorf("pressureq: delete %s: acquire consumer ticket: %w", q.keys.queue, err)
	}

	if err := q.drv.del(ctx, q.keys.producer, q.keys.consumer); err != nil {
		return fmt.Errorf("pressureq: delete %s: del tags: %w", q.keys.queue, err)
	}
	if err := q.drv.del(ctx, q.keys.bookkeeping()...); err != nil {
		return fmt.Errorf("pressureq: delete %s: del bookkeeping: %w", q.keys.queue, err)
	}

	if q.logger != nil {
		q.logger.Info().Str("queue", q.keys.queue).Msg("pressureq: deleted queue")
	}
	return nil
}

func (q *Queue) setProducerTag(ctx context.Context) error {
	if err := q.drv.set(ctx, q.keys.producer, q.clientUID); err != nil {
		return fmt.Errorf("pressureq: set producer tag: %w", err)
	}
	return nil
}
