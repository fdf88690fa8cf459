// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pressureq

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// boundNotSet marks a handle that has not yet observed an existing
// queue's bound. unbounded is the sentinel value meaning "no cap".
const (
	boundNotSet = -1
	unbounded   = 0
)

// Queue is a client-side handle to a named distributed queue. It caches
// the derived keyset, the client's identity tag, and the last-observed
// exists/connected/bound/closed flags — but every entry point
// (Put/Get/Close/Delete/...) re-verifies state against the backing
// store rather than trusting the cache, per spec §3 ("client handles
// cache last-observed values but must re-verify at each entry point").
//
// A Queue must not be used concurrently from multiple goroutines for
// overlapping operations — handle ownership is exclusive per operation
// (spec §5). Sharing one *redis.Client across multiple Queue handles,
// including from multiple goroutines, is fine; go-redis's client is
// safe for concurrent use.
type Queue struct {
	drv    driver
	prefix string
	name   string
	keys   keySet

	clientUID string
	logger    *zerolog.Logger

	exists    bool
	connected bool
	bound     int
	closed    bool
}

// Option configures a Queue at Open time.
type Option func(*Queue)

// WithLogger attaches a structured logger. Debug-level events are
// emitted at suspension points (ticket waits, not-full waits, close
// detection); info-level events at lifecycle transitions. Logging is
// purely observational: no Option changes protocol behavior.
func WithLogger(logger zerolog.Logger) Option {
	return func(q *Queue) { q.logger = &logger }
}

// Open establishes a handle for the named queue (prefix, name) against
// client. It pings the server, probes for an existing bound, and probes
// the closed flag — it does not create or mutate anything.
//
// Open returns an error (and a nil *Queue) if client is nil or the
// server is unreachable; this is the Go equivalent of spec §4.3's "null
// handle if the connection is absent or already in an error state".
func Open(ctx context.Context, client *redis.Client, prefix, name string, opts ...Option) (*Queue, error) {
	if client == nil {
		return nil, fmt.Errorf("pressureq: open %s:%s: nil redis client", prefix, name)
	}
	return open(ctx, newRedisDriver(client), prefix, name, opts...)
}

func open(ctx context.Context, drv driver, prefix, name string, opts ...Option) (*Queue, error) {
	q := &Queue{
		drv:       drv,
		prefix:    prefix,
		name:      name,
		keys:      newKeySet(prefix, name),
		clientUID: clientIdentity(),
		bound:     boundNotSet,
	}
	for _, opt := range opts {
		opt(q)
	}

	if err := q.drv.ping(ctx); err != nil {
		return nil, fmt.Errorf("pressureq: open %s:%s: ping: %w", prefix, name, err)
	}
	q.connected = true

	bound, ok, err := q.drv.getInt(ctx, q.keys.bound)
	if err != nil {
		return nil, fmt.Errorf("pressureq: open %s:%s: read bound: %w", prefix, name, err)
	}
	if ok {
		q.exists = true
		q.bound = bound
	}

	closedNow, err := q.drv.exists(ctx, q.keys.closed)
	if err != nil {
		return nil, fmt.Errorf("pressureq: open %s:%s: probe closed: %w", prefix, name, err)
	}
	q.closed = closedNow

	if q.logger != nil {
		q.logger.Info().
			Str("queue", q.keys.queue).
			Bool("exists", q.exists).
			Int("bound", q.bound).
			Bool("closed", q.closed).
			Msg("pressureq: opened queue handle")
	}

	return q, nil
}

// Disconnect releases the handle's own allocations and its reference to
// the backing-store connection. It never mutates queue state — the
// connection itself may outlive this handle if other handles share it.
func (q *Queue) Disconnect() {
	q.drv = nil
}

// String renders a diagnostic dump of the handle: name, exists/
// connected/bound flags, client UID, and the full derived keyset —
// restoring the C reference client's pressure_print for debugging and
// for the CLI front-ends' --debug flag.
func (q *Queue) String() string {
	s := "pressure queue {\n"
	s += fmt.Sprintf("\tname\t%s\n", q.name)
	s += fmt.Sprintf("\texists?\t%v\n", q.exists)
	s += fmt.Sprintf("\tconnected?\t%v\n", q.connected)
	if q.exists {
		s += fmt.Sprintf("\tbound\t%d\n", q.bound)
	}
	s += fmt.Sprintf("\tclient_uid:\t%s\n", q.clientUID)
	s += "\tkeys:\n"
	for _, k := range []string{
		q.keys.queue, q.keys.bound, q.keys.producer, q.keys.consumer,
		q.keys.producerFree, q.keys.consumerFree,
		q.keys.statsProducedMessages, q.keys.statsProducedBytes,
		q.keys.statsConsumedMessages, q.keys.statsConsumedBytes,
		q.keys.notFull, q.keys.closed,
	} {
		s += fmt.Sprintf("\t\t%s\n", k)
	}
	s += "}\n"
	return s
}

func (q *Queue) logDebug() *zerolog.Event {
	if q.logger == nil {
		return nil
	}
	return q.logger.Debug().Str("queue", q.keys.queue)
}

// logEvent is a nil-safe helper: ev may be nil if no logger is attached.
func logEvent(ev *zerolog.Event, msg string) {
	if ev == nil {
		return
	}
	ev.Msg(msg)
}
