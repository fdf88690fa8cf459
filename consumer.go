// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pressureq

import (
	"context"
	"fmt"
)

// Get blocks until a message is available and returns it, or until the
// queue is closed and fully drained, in which case it returns
// ErrQueueClosed. It returns ErrQueueDoesNotExist immediately if the
// queue does not exist.
//
// The returned byte slice is a fresh allocation of exactly the
// message's length — no NUL-termination is implied, and embedded zero
// bytes are preserved exactly (spec §4.6). A zero-length message is a
// legal payload and is distinguished from "queue closed" by an explicit
// flag internally, not by nil-checking the returned slice.
func (q *Queue) Get(ctx context.Context) ([]byte, error) {
	exists, err := q.drv.exists(ctx, q.keys.bound)
	if err != nil {
		return nil, fmt.Errorf("pressureq: get %s: probe bound: %w", q.keys.queue, err)
	}
	if !exists {
		return nil, ErrQueueDoesNotExist
	}

	logEvent(q.logDebug(), "pressureq: waiting for consumer ticket")
	if err := q.acquireConsumerTicket(ctx); err != nil {
		return nil, fmt.Errorf("pressureq: get %s: acquire consumer ticket: %w", q.keys.queue, err)
	}
	logEvent(q.logDebug(), "pressureq: got consumer ticket")

	if err := q.setConsumerTag(ctx); err != nil {
		q.releaseConsumerTicket(ctx)
		return nil, err
	}

	closedAlready, err := q.drv.exists(ctx, q.keys.closed)
	if err != nil {
		q.releaseConsumerTicket(ctx)
		return nil, fmt.Errorf("pressureq: get %s: probe closed: %w", q.keys.queue, err)
	}

	var message []byte
	var gotClosedSignal bool
	if closedAlready {
		message, gotClosedSignal, err = q.getClosedBranch(ctx)
	} else {
		message, gotClosedSignal, err = q.getOpenBranch(ctx)
	}
	if err != nil {
		q.releaseConsumerTicket(ctx)
		return nil, err
	}
	if gotClosedSignal {
		logEvent(q.logDebug(), "pressureq: close detected")
		q.releaseConsumerTicket(ctx)
		return nil, ErrQueueClosed
	}

	if err := q.signalNotFull(ctx); err != nil {
		q.releaseConsumerTicket(ctx)
		return nil, fmt.Errorf("pressureq: get %s: signal not_full: %w", q.keys.queue, err)
	}
	if err := q.drv.incr(ctx, q.keys.statsConsumedMessages); err != nil {
		q.releaseConsumerTicket(ctx)
		return nil, fmt.Errorf("pressureq: get %s: incr stats: %w", q.keys.queue, err)
	}
	if err := q.drv.incrBy(ctx, q.keys.statsConsumedBytes, int64(len(message))); err != nil {
		q.releaseConsumerTicket(ctx)
		return nil, fmt.Errorf("pressureq: get %s: incrby stats: %w", q.keys.queue, err)
	}

	q.releaseConsumerTicket(ctx)
	return message, nil
}

// getClosedBranch handles Get's "closed" branch (spec §4.6 step 4): the
// queue was already closed when this Get entered its critical section.
func (q *Queue) getClosedBranch(ctx context.Context) (message []byte, closedSignal bool, err error) {
	nonEmpty, err := q.drv.exists(ctx, q.keys.queue)
	if err != nil {
		return nil, false, fmt.Errorf("pressureq: get %s: probe queue list: %w", q.keys.queue, err)
	}
	if !nonEmpty {
		return nil, true, nil
	}
	logEvent(q.logDebug(), "pressureq: waiting for residual data (closed)")
	_, value, err := q.drv.brpop(ctx, q.keys.queue)
	if err != nil {
		return nil, false, fmt.Errorf("pressureq: get %s: pop residual message: %w", q.keys.queue, err)
	}
	return value, false, nil
}

// getOpenBranch handles Get's "open" branch (spec §4.6 step 4): the
// queue was not yet closed when this Get entered its critical section,
// so it races a message arriving against the queue being closed.
func (q *Queue) getOpenBranch(ctx context.Context) (message []byte, closedSignal bool, err error) {
	logEvent(q.logDebug(), "pressureq: waiting for data or close")
	firedKey, value, err := q.drv.brpop(ctx, q.keys.queue, q.keys.closed)
	if err != nil {
		return nil, false, fmt.Errorf("pressureq: get %s: wait for data or close: %w", q.keys.queue, err)
	}
	if firedKey == q.keys.closed {
		// The close sentinel token consumed here is one of the two
		// pushed by Close — the second remains so later arrivals still
		// observe closure via getClosedBranch's existence probe.
		return nil, true, nil
	}
	return value, false, nil
}

func (q *Queue) setConsumerTag(ctx context.Context) error {
	if err := q.drv.set(ctx, q.keys.consumer, q.clientUID); err != nil {
		return fmt.Errorf("pressureq: set consumer tag: %w", err)
	}
	return nil
}
