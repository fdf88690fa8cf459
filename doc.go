// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pressureq implements a distributed, bounded, blocking FIFO
// queue layered on a Redis-compatible backing store.
//
// Producers and consumers run as independent OS processes (possibly on
// different hosts) that agree only on a (prefix, name) pair and point
// at the same Redis server. There is no in-process coordination: every
// mutual-exclusion and blocking guarantee is enforced by atomic
// commands on the server (SETNX, BRPOP, LTRIM, ...), not by a mutex or
// channel inside this package.
//
// # Quick Start
//
//	client := pressureq.NewRedisClient(cfg)
//	q, err := pressureq.Open(ctx, client, "__pressure__", "jobs")
//	if err != nil {
//	    // connection refused, nil client, ...
//	}
//
//	switch err := q.Create(ctx, 100); {
//	case pressureq.IsQueueAlreadyExists(err):
//	    // fine — another process created it first
//	case err != nil:
//	    // unexpected failure
//	}
//
//	err = q.Put(ctx, []byte("hello"))
//	msg, err := q.Get(ctx)
//
// # Blocking semantics
//
// Put blocks indefinitely if the queue is bounded and full, until a
// consumer dequeues a message. Get blocks indefinitely if the queue is
// empty, until a producer enqueues a message or the queue is closed.
// Neither operation exposes a timeout at this layer — wrap ctx with
// context.WithTimeout/WithDeadline if a caller needs one; a cancelled
// context still releases any ticket the call had already acquired
// before returning (see "Liveness" below).
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//	msg, err := q.Get(ctx)
//	if errors.Is(err, context.DeadlineExceeded) {
//	    // no message within 5s
//	}
//
// # Closing a queue
//
// Close marks a queue closed: no further Put calls succeed, but Get
// continues to drain any messages already enqueued before returning
// ErrQueueClosed once the queue is empty.
//
//	err := q.Close(ctx)
//	for {
//	    msg, err := q.Get(ctx)
//	    if pressureq.IsQueueClosed(err) {
//	        break // fully drained
//	    }
//	    process(msg)
//	}
//
// # Error handling
//
// Every operation returns one of four sentinel statuses — checked with
// the Is* predicates, not ==, since driver errors may be wrapped:
//
//	pressureq.IsQueueDoesNotExist(err)  // bound key absent
//	pressureq.IsQueueAlreadyExists(err) // Create raced with another Create
//	pressureq.IsQueueClosed(err)        // Put refused, or Get fully drained
//	pressureq.IsUnexpectedFailure(err)  // a seed push reported a bad length — bug signal
//
// Any other non-nil error is a driver-level failure (connection
// refused, context deadline, ...) surfaced unwrapped or wrapped with
// %w — never coerced into one of the four statuses above.
//
// # Liveness
//
// Put, Get, and Close each acquire one of two per-queue tickets
// (producer_free, consumer_free) after their existence check, and
// release it on every exit path — success, a sentinel status, or an
// unexpected error. Delete takes both tickets and does not push them
// back: they are removed along with the queue. A client that crashes after acquiring a ticket but before
// releasing it leaves that side of the queue permanently stuck for
// every future caller; this package does not attempt to recover from
// that (no lease/TTL watchdog). This mirrors the reference C
// implementation's documented limitation and is treated as a non-goal,
// not a bug: recovering from mid-operation client crashes would require
// either a lease protocol (with its own false-expiry failure mode under
// GC pauses or scheduling delays) or a central coordinator, both of
// which this system's spec explicitly puts out of scope.
//
// # Dependencies
//
// This package uses github.com/go-redis/redis/v8 as its backing-store
// driver, github.com/rs/zerolog for optional structured logging,
// github.com/caarlos0/env/v11 and github.com/joho/godotenv for
// configuration, and github.com/spf13/cobra for the put/get CLI
// front-ends under cmd/pressureq. Tests use
// github.com/alicebob/miniredis/v2 as an embedded Redis-protocol server
// and github.com/stretchr/testify for assertions.
package pressureq
