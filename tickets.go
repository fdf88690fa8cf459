// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pressureq

import (
	"context"
	"time"
)

// releaseTimeout bounds a ticket release issued on its own detached
// context (see releaseProducerTicket). It only guards against a wedged
// driver connection — under normal operation the release LPUSH returns
// immediately.
const releaseTimeout = 5 * time.Second

// acquireProducerTicket blocks indefinitely until producer_free yields
// a token — this client then owns the producer critical section.
func (q *Queue) acquireProducerTicket(ctx context.Context) error {
	_, _, err := q.drv.brpop(ctx, q.keys.producerFree)
	return err
}

// releaseProducerTicket restores the producer_free token. Every code
// path that successfully acquires the producer ticket must call this
// on every exit (success, ErrQueueClosed, or error) — the liveness rule
// in spec §7: an unreleased ticket deadlocks every future producer.
//
// This deliberately does not reuse the ctx the caller was working
// under: that ctx may be exactly the one whose cancellation is the
// reason we're releasing (spec §5's "a context cancellation arriving
// after a ticket was acquired must still release that ticket before
// returning"), and go-redis refuses to issue a command against an
// already-canceled context. The release always runs on a fresh
// context.Background() with its own short timeout instead.
func (q *Queue) releaseProducerTicket(ctx context.Context) {
	// Errors here are deliberately swallowed rather than propagated:
	// the caller is already on its way out with a result to return, and
	// there is no better recovery than "try once". A failed release
	// here means the driver connection itself is broken, in which case
	// the caller's own error (if any) already reports that.
	releaseCtx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()
	_, _ = q.drv.lpush(releaseCtx, q.keys.producerFree, []byte{0})
}

// acquireConsumerTicket blocks indefinitely until consumer_free yields
// a token — this client then owns the consumer critical section.
func (q *Queue) acquireConsumerTicket(ctx context.Context) error {
	_, _, err := q.drv.brpop(ctx, q.keys.consumerFree)
	return err
}

// releaseConsumerTicket restores the consumer_free token. See
// releaseProducerTicket for the liveness rationale and why it runs on
// a detached context rather than the caller's ctx.
func (q *Queue) releaseConsumerTicket(ctx context.Context) {
	releaseCtx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()
	_, _ = q.drv.lpush(releaseCtx, q.keys.consumerFree, []byte{0})
}

// signalNotFull re-signals not_full if the queue has room: pushes one
// token, then trims to length <= 1 to collapse accidental duplicates
// and preserve the binary-semaphore invariant (spec §9 resolves the
// "LTRIM 0 0 vs 0 1" ambiguity in favor of the stricter "at most one"
// form, so this always trims to [0, 0]).
func (q *Queue) signalNotFull(ctx context.Context) error {
	if _, err := q.drv.lpush(ctx, q.keys.notFull, []byte{0}); err != nil {
		return err
	}
	return q.drv.ltrim(ctx, q.keys.notFull, 0, 0)
}
